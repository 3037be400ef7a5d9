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

package reactor

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolamqp/coolamqp/framing"
)

func TestReactorDispatchesInboundFrames(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	var mu sync.Mutex
	var got []framing.Frame
	done := make(chan struct{}, 1)

	r := New(server, 4096, func(f framing.Frame) {
		mu.Lock()
		got = append(got, f)
		mu.Unlock()
		done <- struct{}{}
	})
	r.Start()
	defer r.CloseNow()

	wire := framing.WriteFrame(nil, framing.Frame{Type: framing.FrameHeartbeat, Channel: 0})
	go func() { _, _ = client.Write(wire) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame dispatch")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, uint8(framing.FrameHeartbeat), got[0].Type)
}

func TestReactorSendFlushesToConn(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	r := New(server, 4096, func(framing.Frame) {})
	r.Start()
	defer r.CloseNow()

	readDone := make(chan framing.Frame, 1)
	go func() {
		buf := make([]byte, 256)
		n, err := client.Read(buf)
		if err != nil {
			return
		}
		f, _, ok, err := framing.ReadFrame(buf[:n])
		if err == nil && ok {
			readDone <- f
		}
	}()

	r.Send(framing.Frame{Type: framing.FrameMethod, Channel: 1, Payload: []byte{0xAB}}, false)

	select {
	case f := <-readDone:
		assert.Equal(t, uint8(framing.FrameMethod), f.Type)
		assert.Equal(t, []byte{0xAB}, f.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for write")
	}
}

func TestReactorStopsOnFrameDecodeError(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	r := New(server, 4096, func(framing.Frame) {})
	r.Start()
	defer r.CloseNow()

	wire := framing.WriteFrame(nil, framing.Frame{Type: framing.FrameHeartbeat, Channel: 0})
	wire[len(wire)-1] = 0x00 // corrupt the end marker
	go func() { _, _ = client.Write(wire) }()

	// runLoop must exit (closing closeCh) on a decode error, the same way
	// it does on a read error — it must not sit forever re-reading the
	// same undecodable bytes.
	select {
	case <-r.closeCh:
	case <-time.After(2 * time.Second):
		t.Fatal("reactor never stopped after a frame decode error")
	}
}

func TestOneshotFiresAndCancelPrevents(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	r := New(server, 4096, func(framing.Frame) {})
	r.Start()
	defer r.CloseNow()

	fired := make(chan struct{}, 1)
	r.Submit(func() {
		r.Oneshot(20*time.Millisecond, func() { fired <- struct{}{} })
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("oneshot never fired")
	}

	cancelled := make(chan struct{}, 1)
	r.Submit(func() {
		timer := r.Oneshot(20*time.Millisecond, func() { cancelled <- struct{}{} })
		timer.Cancel()
	})

	select {
	case <-cancelled:
		t.Fatal("cancelled timer fired")
	case <-time.After(100 * time.Millisecond):
	}
}
