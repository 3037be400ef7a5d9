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
	"os"

	"github.com/coolamqp/coolamqp/cluster"
)

// connectCluster dials nodes, printing a line to stderr on every failed
// node attempt so CLI users see reconnect activity without needing a log
// file.
func connectCluster(nodes []cluster.NodeDefinition, opts cluster.Options) (*cluster.Cluster, error) {
	opts.OnFail = func(err error) {
		fmt.Fprintf(os.Stderr, "coolamqp: %v\n", err)
	}
	return cluster.Connect(nodes, opts)
}
