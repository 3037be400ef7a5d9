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

package sendframer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolamqp/coolamqp/framing"
)

func TestFlushOrdersPriorityBeforeNormal(t *testing.T) {
	f := New()
	f.Put(framing.Frame{Type: framing.FrameMethod, Channel: 1, Payload: []byte{0xAA}})
	f.PutPriority(framing.Frame{Type: framing.FrameHeartbeat, Channel: 0, Payload: nil})

	buf := f.Flush()
	defer buf.Reset()

	first, n1, ok, err := framing.ReadFrame(buf.B)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint8(framing.FrameHeartbeat), first.Type)

	second, _, ok, err := framing.ReadFrame(buf.B[n1:])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint8(framing.FrameMethod), second.Type)

	assert.False(t, f.Pending())
}

func TestPendingReflectsQueuedFrames(t *testing.T) {
	f := New()
	assert.False(t, f.Pending())
	f.Put(framing.Frame{Type: framing.FrameBody, Channel: 1})
	assert.True(t, f.Pending())
}
