// Copyright 2025 The CoolAMQP Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/coolamqp/coolamqp/cluster"
	"github.com/coolamqp/coolamqp/framing"
	"github.com/coolamqp/coolamqp/internal/sigs"
)

func newConsumeCommand() *cobra.Command {
	var queue string
	var noAck, exclusive bool
	var prefetch uint16

	c := &cobra.Command{
		Use:   "consume",
		Short: "consume a queue in pull mode until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, opts, err := resolveNodes()
			if err != nil {
				return err
			}
			cl, err := connectCluster(nodes, opts)
			if err != nil {
				return err
			}
			defer cl.Shutdown(true)

			consumeOpts := cluster.ConsumeOptions{NoAck: noAck, Exclusive: exclusive}
			if prefetch > 0 {
				consumeOpts.Qos = &cluster.BasicQos{PrefetchCount: prefetch}
			}
			if err := cl.Consume("cli-consumer", queue, consumeOpts); err != nil {
				return err
			}

			term := sigs.Terminate()
			for {
				select {
				case <-term:
					return nil
				default:
				}
				msg, ok := cl.Drain(time.Second)
				if !ok {
					continue
				}
				fmt.Printf("%s\n", msg.Body)
				if !noAck {
					if deliver, isDeliver := msg.Method.(*framing.BasicDeliver); isDeliver {
						cl.Ack(deliver.DeliveryTag, false)
					}
				}
			}
		},
	}

	c.Flags().StringVar(&queue, "queue", "", "queue to consume from")
	c.Flags().BoolVar(&noAck, "no-ack", false, "consume without requiring acknowledgements")
	c.Flags().BoolVar(&exclusive, "exclusive", false, "request exclusive consumer access")
	c.Flags().Uint16Var(&prefetch, "prefetch", 0, "basic.qos prefetch-count (0 disables)")
	_ = c.MarkFlagRequired("queue")
	return c
}
