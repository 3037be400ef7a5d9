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

package channel

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolamqp/coolamqp/framing"
	"github.com/coolamqp/coolamqp/reactor"
)

// fakeBroker reads frames off one end of a net.Pipe and replies according
// to a caller-supplied handler, mirroring the style of reactor_test.go.
func fakeBroker(t *testing.T, conn net.Conn, handle func(framing.Frame) []framing.Frame) {
	t.Helper()
	go func() {
		buf := make([]byte, 4096)
		var acc []byte
		for {
			n, err := conn.Read(buf)
			if err != nil {
				return
			}
			acc = append(acc, buf[:n]...)
			for {
				f, consumed, ok, err := framing.ReadFrame(acc)
				if err != nil || !ok {
					break
				}
				acc = acc[consumed:]
				for _, reply := range handle(f) {
					wire := framing.WriteFrame(nil, reply)
					if _, err := conn.Write(wire); err != nil {
						return
					}
				}
			}
		}
	}()
}

func methodFrame(channelID uint16, m framing.Method) framing.Frame {
	classID, methodID, payload, err := framing.EncodeMethod(m)
	if err != nil {
		panic(err)
	}
	full := make([]byte, 4+len(payload))
	full[0] = byte(classID >> 8)
	full[1] = byte(classID)
	full[2] = byte(methodID >> 8)
	full[3] = byte(methodID)
	copy(full[4:], payload)
	return framing.Frame{Type: framing.FrameMethod, Channel: channelID, Payload: full}
}

func decodeMethodFrame(f framing.Frame) framing.Method {
	classID := uint16(f.Payload[0])<<8 | uint16(f.Payload[1])
	methodID := uint16(f.Payload[2])<<8 | uint16(f.Payload[3])
	m, err := framing.DecodeMethod(classID, methodID, f.Payload[4:])
	if err != nil {
		panic(err)
	}
	return m
}

func TestChannelOpenHandshake(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	var ch *Channel
	r := reactor.New(server, 4096, func(f framing.Frame) {
		ch.DispatchMethod(decodeMethodFrame(f))
	})
	r.Start()
	defer r.CloseNow()

	fakeBroker(t, client, func(f framing.Frame) []framing.Frame {
		if _, ok := decodeMethodFrame(f).(*framing.ChannelOpen); ok {
			return []framing.Frame{methodFrame(f.Channel, &framing.ChannelOpenOk{})}
		}
		return nil
	})

	ch = New(1, r, false, 0)
	err := ch.Open(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, StateOpen, ch.State())
}

func TestChannelFlowTogglesStateAndReplies(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	r := reactor.New(server, 4096, func(framing.Frame) {})
	r.Start()
	defer r.CloseNow()

	ch := New(1, r, false, 0)

	replyCh := make(chan framing.Method, 1)
	fakeBroker(t, client, func(f framing.Frame) []framing.Frame {
		replyCh <- decodeMethodFrame(f)
		return nil
	})

	ch.DispatchMethod(&framing.ChannelFlow{Active: false})
	assert.Equal(t, StateFlowOff, ch.State())

	select {
	case reply := <-replyCh:
		flowOk, ok := reply.(*framing.ChannelFlowOk)
		require.True(t, ok)
		assert.False(t, flowOk.Active)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel.flow-ok")
	}
}

func TestDeliverAssemblesHeaderAndBody(t *testing.T) {
	r := reactor.New(mustPipe(t), 4096, func(framing.Frame) {})
	r.Start()
	defer r.CloseNow()

	ch := New(1, r, false, 0)

	tag := "ctag-test"
	got := make(chan Message, 1)
	ch.RegisterConsumer(tag, consumerFunc(func(m Message) { got <- m }))

	ch.DispatchMethod(&framing.BasicDeliver{ConsumerTag: tag, DeliveryTag: 1, Exchange: "x", RoutingKey: "rk"})
	ch.DispatchContentHeader(&framing.ContentHeader{ClassID: framing.ClassBasic, BodySize: 5, Properties: &framing.Properties{}})
	ch.DispatchBody([]byte("hel"))
	ch.DispatchBody([]byte("lo"))

	select {
	case msg := <-got:
		assert.Equal(t, []byte("hello"), msg.Body)
		deliver, ok := msg.Method.(*framing.BasicDeliver)
		require.True(t, ok)
		assert.Equal(t, tag, deliver.ConsumerTag)
	case <-time.After(time.Second):
		t.Fatal("consumer never received delivery")
	}
}

func TestDrainReceivesUnclaimedDeliveries(t *testing.T) {
	r := reactor.New(mustPipe(t), 4096, func(framing.Frame) {})
	r.Start()
	defer r.CloseNow()

	ch := New(1, r, false, 0)

	ch.DispatchMethod(&framing.BasicDeliver{ConsumerTag: "unregistered", DeliveryTag: 1})
	ch.DispatchContentHeader(&framing.ContentHeader{ClassID: framing.ClassBasic, BodySize: 0, Properties: &framing.Properties{}})

	msg, ok := ch.Drain(time.Second)
	require.True(t, ok)
	deliver, ok := msg.Method.(*framing.BasicDeliver)
	require.True(t, ok)
	assert.Equal(t, "unregistered", deliver.ConsumerTag)
}

func TestDrainReceivesReturnedMessages(t *testing.T) {
	r := reactor.New(mustPipe(t), 4096, func(framing.Frame) {})
	r.Start()
	defer r.CloseNow()

	ch := New(1, r, false, 0)

	ch.DispatchMethod(&framing.BasicReturn{ReplyCode: 312, ReplyText: "NO_ROUTE", Exchange: "x", RoutingKey: "rk"})
	ch.DispatchContentHeader(&framing.ContentHeader{ClassID: framing.ClassBasic, BodySize: 4, Properties: &framing.Properties{}})
	ch.DispatchBody([]byte("oops"))

	msg, ok := ch.Drain(time.Second)
	require.True(t, ok)
	ret, ok := msg.Method.(*framing.BasicReturn)
	require.True(t, ok)
	assert.Equal(t, uint16(312), ret.ReplyCode)
	assert.Equal(t, []byte("oops"), msg.Body)
}

func TestPublishFragmentsOnNegotiatedFrameMaxMinusOverhead(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	r := reactor.New(server, 4096, func(framing.Frame) {})
	r.Start()
	defer r.CloseNow()

	const frameMax = 16 // -8 overhead leaves 8-byte body chunks
	ch := New(1, r, false, frameMax)

	var bodyFrames [][]byte
	done := make(chan struct{})
	fakeBroker(t, client, func(f framing.Frame) []framing.Frame {
		if f.Type == framing.FrameBody {
			bodyFrames = append(bodyFrames, append([]byte(nil), f.Payload...))
			if len(bodyFrames) == 2 {
				close(done)
			}
		}
		return nil
	})

	ch.Publish("", "rk", false, false, nil, []byte("0123456789ABCDEF"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for body frames")
	}

	require.Len(t, bodyFrames, 2)
	assert.Equal(t, []byte("01234567"), bodyFrames[0])
	assert.Equal(t, []byte("89ABCDEF"), bodyFrames[1])
}

type consumerFunc func(Message)

func (f consumerFunc) Deliver(m Message) { f(m) }

func mustPipe(t *testing.T) net.Conn {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() { client.Close() })
	go func() {
		buf := make([]byte, 256)
		for {
			if _, err := client.Read(buf); err != nil {
				return
			}
		}
	}()
	return server
}
