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

package recvframer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolamqp/coolamqp/framing"
)

func TestNextYieldsWholeFramesAcrossSplitFeeds(t *testing.T) {
	var wire []byte
	wire = framing.WriteFrame(wire, framing.Frame{Type: framing.FrameMethod, Channel: 1, Payload: []byte{1, 2, 3}})
	wire = framing.WriteFrame(wire, framing.Frame{Type: framing.FrameBody, Channel: 1, Payload: []byte{4, 5}})

	f := New(4096)

	// Feed byte by byte to exercise the partial-read path.
	var got []framing.Frame
	for i := 0; i < len(wire); i++ {
		f.Feed(wire[i : i+1])
		for {
			fr, ok, err := f.Next()
			require.NoError(t, err)
			if !ok {
				break
			}
			got = append(got, fr)
		}
	}

	require.Len(t, got, 2)
	assert.Equal(t, uint8(framing.FrameMethod), got[0].Type)
	assert.Equal(t, []byte{1, 2, 3}, got[0].Payload)
	assert.Equal(t, uint8(framing.FrameBody), got[1].Type)
	assert.Equal(t, []byte{4, 5}, got[1].Payload)
	assert.False(t, f.Pending())
}

func TestNextRejectsOversizedFrame(t *testing.T) {
	wire := framing.WriteFrame(nil, framing.Frame{Type: framing.FrameBody, Channel: 1, Payload: make([]byte, 100)})

	f := New(50)
	f.Feed(wire)
	_, ok, err := f.Next()
	require.Error(t, err)
	assert.False(t, ok)
}

func TestCompactReclaimsConsumedPrefix(t *testing.T) {
	wire := framing.WriteFrame(nil, framing.Frame{Type: framing.FrameMethod, Channel: 0, Payload: []byte{9}})
	f := New(4096)
	f.Feed(wire)
	_, ok, err := f.Next()
	require.NoError(t, err)
	require.True(t, ok)

	f.Compact()
	assert.False(t, f.Pending())
}
