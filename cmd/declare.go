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

	"github.com/spf13/cobra"

	"github.com/coolamqp/coolamqp/cluster"
)

func newDeclareCommand() *cobra.Command {
	var kind, name, exchangeType, bindExchange, bindRoutingKey string
	var durable, autoDelete, exclusive, passive bool

	c := &cobra.Command{
		Use:   "declare",
		Short: "declare an exchange, queue, or binding and exit",
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

			var d cluster.Declarable
			switch kind {
			case "exchange":
				d = cluster.Exchange{Name: name, Type: exchangeType, Durable: durable, AutoDelete: autoDelete, Passive: passive}
			case "queue":
				d = cluster.Queue{Name: name, Durable: durable, AutoDelete: autoDelete, Exclusive: exclusive, Passive: passive}
			case "binding":
				d = cluster.Binding{Queue: name, Exchange: bindExchange, RoutingKey: bindRoutingKey}
			default:
				return fmt.Errorf("cmd: unknown --kind %q (want exchange, queue, or binding)", kind)
			}
			return cl.Declare(d)
		},
	}

	c.Flags().StringVar(&kind, "kind", "", "exchange, queue, or binding")
	c.Flags().StringVar(&name, "name", "", "exchange or queue name")
	c.Flags().StringVar(&exchangeType, "type", "direct", "exchange type (direct, fanout, topic, headers)")
	c.Flags().StringVar(&bindExchange, "bind-exchange", "", "exchange to bind to (binding kind only)")
	c.Flags().StringVar(&bindRoutingKey, "bind-routing-key", "", "routing key (binding kind only)")
	c.Flags().BoolVar(&durable, "durable", false, "declare as durable")
	c.Flags().BoolVar(&autoDelete, "auto-delete", false, "declare as auto-delete")
	c.Flags().BoolVar(&exclusive, "exclusive", false, "declare as exclusive (queue kind only)")
	c.Flags().BoolVar(&passive, "passive", false, "passively assert the resource already exists")
	_ = c.MarkFlagRequired("kind")
	_ = c.MarkFlagRequired("name")
	return c
}
