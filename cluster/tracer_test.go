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

package cluster

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolamqp/coolamqp/cluster/clustertest"
	"github.com/coolamqp/coolamqp/framing"
)

// fakeTracer records every frame it observes, per
// original_source/tests/test_clustering/test_log_frames.py.
type fakeTracer struct {
	mu       sync.Mutex
	inbound  int
	outbound int
}

func (f *fakeTracer) OnFrame(channelID uint16, dir Direction, fr framing.Frame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if dir == DirectionInbound {
		f.inbound++
	} else {
		f.outbound++
	}
}

func (f *fakeTracer) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inbound, f.outbound
}

func TestFrameTracerObservesBothDirections(t *testing.T) {
	broker, err := clustertest.Listen()
	require.NoError(t, err)
	defer broker.Close()
	go func() {
		for {
			if err := broker.Accept(); err != nil {
				return
			}
		}
	}()

	tracer := &fakeTracer{}
	node, err := ParseNodeDefinition("amqp://guest:guest@" + broker.Addr() + "/")
	require.NoError(t, err)

	c, err := Connect([]NodeDefinition{node}, Options{LogFrames: tracer, DialTimeout: 2 * time.Second})
	require.NoError(t, err)
	defer c.Shutdown(false)

	require.Eventually(t, func() bool {
		in, out := tracer.counts()
		return in > 0 && out > 0
	}, 2*time.Second, 10*time.Millisecond)
}
