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

package framing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	f := Frame{Type: FrameMethod, Channel: 3, Payload: []byte{1, 2, 3, 4}}
	buf := WriteFrame(nil, f)

	assert.Equal(t, FrameEnd, buf[len(buf)-1], "every emitted frame must end in 0xCE")

	got, consumed, ok, err := ReadFrame(buf)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, len(buf), consumed)
	assert.Equal(t, f.Type, got.Type)
	assert.Equal(t, f.Channel, got.Channel)
	assert.Equal(t, f.Payload, got.Payload)
}

func TestReadFrameIncomplete(t *testing.T) {
	f := Frame{Type: FrameMethod, Channel: 0, Payload: []byte{1, 2, 3}}
	buf := WriteFrame(nil, f)

	for n := 0; n < len(buf)-1; n++ {
		_, consumed, ok, err := ReadFrame(buf[:n])
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, consumed)
	}
}

func TestReadFrameBadTerminator(t *testing.T) {
	f := Frame{Type: FrameMethod, Channel: 0, Payload: []byte{1}}
	buf := WriteFrame(nil, f)
	buf[len(buf)-1] = 0x00

	_, _, _, err := ReadFrame(buf)
	require.Error(t, err)
}

func TestReadFrameStitchesMultipleFrames(t *testing.T) {
	var buf []byte
	buf = WriteFrame(buf, Frame{Type: FrameMethod, Channel: 1, Payload: []byte{0xAA}})
	buf = WriteFrame(buf, Frame{Type: FrameBody, Channel: 1, Payload: []byte{0xBB, 0xCC}})

	f1, n1, ok, err := ReadFrame(buf)
	require.NoError(t, err)
	require.True(t, ok)

	f2, n2, ok, err := ReadFrame(buf[n1:])
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, uint8(FrameMethod), f1.Type)
	assert.Equal(t, uint8(FrameBody), f2.Type)
	assert.Equal(t, len(buf), n1+n2)
}
