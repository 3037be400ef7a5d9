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
	"github.com/spf13/cobra"

	"github.com/coolamqp/coolamqp/framing"
)

func newPublishCommand() *cobra.Command {
	var exchange, routingKey, body, contentType string
	var mandatory bool

	c := &cobra.Command{
		Use:   "publish",
		Short: "publish a single message and exit",
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

			var props *framing.Properties
			if contentType != "" {
				props = &framing.Properties{ContentType: &contentType}
			}
			cl.Publish(exchange, routingKey, props, []byte(body), mandatory, false)
			return nil
		},
	}

	c.Flags().StringVar(&exchange, "exchange", "", "target exchange (empty string for the default exchange)")
	c.Flags().StringVar(&routingKey, "routing-key", "", "routing key")
	c.Flags().StringVar(&body, "body", "", "message body")
	c.Flags().StringVar(&contentType, "content-type", "", "content-type property")
	c.Flags().BoolVar(&mandatory, "mandatory", false, "set the mandatory publish flag")
	return c
}
