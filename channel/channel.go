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

// Package channel implements the per-channel state machine and multiplexer
// of spec.md §4.8: OPENING -> OPEN -> (FLOW_OFF <-> OPEN) -> CLOSING ->
// CLOSED, with an at-most-one-outstanding-synchronous-RPC gate grounded on
// the teacher's protocol/role.SingleMatcher (a request/response pairing
// state machine), repurposed here from matching passively observed traffic
// to gating a channel's own outbound RPC against its inbound reply.
package channel

import (
	"sync"
	"time"

	"github.com/coolamqp/coolamqp/common"
	"github.com/coolamqp/coolamqp/framing"
	"github.com/coolamqp/coolamqp/internal/pubsub"
	"github.com/coolamqp/coolamqp/internal/zerocopy"
	"github.com/coolamqp/coolamqp/reactor"
)

// State is a channel's position in its lifecycle state machine.
type State int

const (
	StateOpening State = iota
	StateOpen
	StateFlowOff
	StateClosing
	StateClosed
)

// Message is a fully assembled inbound delivery: a Basic.Deliver/Return/Get-Ok
// method plus its content-header properties and concatenated body.
type Message struct {
	Method     framing.Method // *framing.BasicDeliver, *framing.BasicReturn or *framing.BasicGetOk
	Properties *framing.Properties
	Body       []byte
	ZeroCopy   zerocopy.Buffer // non-nil only when the channel was opened in zero-copy body delivery mode
}

// Consumer receives messages delivered under a Basic.Consume subscription.
type Consumer interface {
	Deliver(Message)
}

// pendingRPC gates "at most one outstanding synchronous RPC", the same
// invariant protocol/role.SingleMatcher enforces for passively observed
// request/response traffic — here the channel is the sole requester, so the
// gate is a single slot rather than a FIFO.
type pendingRPC struct {
	reqClass, reqMethod uint16
	done                chan framing.Method
}

// Channel multiplexes one AMQP channel over a shared connection reactor.
type Channel struct {
	id uint16
	r  *reactor.Reactor

	mu    sync.Mutex
	state State

	rpc *pendingRPC

	consumers map[string]Consumer

	pendingMethod framing.Method
	pendingHeader *framing.ContentHeader
	bodyAccum     []byte
	bodyExpected  uint64

	events pubsub.Queue // optional pull-mode event queue (spec.md §6 cluster.drain)

	zeroCopy bool
	frameMax uint32 // connection's negotiated frame-max, for Publish body chunking
}

// New returns a Channel bound to id over r. It still needs Open() called
// to perform the Channel.Open/Open-Ok handshake. frameMax is the
// connection's negotiated frame-max (from connection.Connection.
// NegotiatedFrameMax); a zero value falls back to common.DefaultFrameMax.
func New(id uint16, r *reactor.Reactor, zeroCopy bool, frameMax uint32) *Channel {
	if frameMax == 0 {
		frameMax = common.DefaultFrameMax
	}
	return &Channel{
		id:        id,
		r:         r,
		state:     StateOpening,
		consumers: make(map[string]Consumer),
		events:    pubsub.New().Subscribe(1024),
		zeroCopy:  zeroCopy,
		frameMax:  frameMax,
	}
}

// Open performs the Channel.Open/Open-Ok handshake, blocking until it
// completes or timeout elapses.
func (ch *Channel) Open(timeout time.Duration) error {
	_, err := ch.call(&framing.ChannelOpen{}, timeout)
	if err != nil {
		return err
	}
	ch.mu.Lock()
	ch.state = StateOpen
	ch.mu.Unlock()
	return nil
}

// ID returns the AMQP channel number.
func (ch *Channel) ID() uint16 { return ch.id }

// State returns the channel's current state.
func (ch *Channel) State() State {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.state
}

// call sends m as a synchronous RPC and blocks for its reply, enforcing the
// single-outstanding-RPC gate.
func (ch *Channel) call(m framing.Method, timeout time.Duration) (framing.Method, error) {
	done := make(chan framing.Method, 1)

	ch.mu.Lock()
	if ch.rpc != nil {
		ch.mu.Unlock()
		return nil, &common.ProtocolViolation{Reason: "channel already has an outstanding synchronous RPC"}
	}
	ch.rpc = &pendingRPC{reqClass: m.ClassID(), reqMethod: m.MethodID(), done: done}
	ch.mu.Unlock()

	ch.sendMethod(m, false)

	select {
	case reply := <-done:
		return reply, nil
	case <-time.After(timeout):
		ch.mu.Lock()
		ch.rpc = nil
		ch.mu.Unlock()
		return nil, &common.TimeoutError{Op: m.MethodName()}
	}
}

// Call is the exported synchronous-RPC entry point used by the cluster
// package for Exchange/Queue/Basic.Qos declare-style operations.
func (ch *Channel) Call(m framing.Method, timeout time.Duration) (framing.Method, error) {
	return ch.call(m, timeout)
}

func (ch *Channel) sendMethod(m framing.Method, priority bool) {
	classID, methodID, payload, err := framing.EncodeMethod(m)
	if err != nil {
		return
	}
	full := make([]byte, 4+len(payload))
	full[0] = byte(classID >> 8)
	full[1] = byte(classID)
	full[2] = byte(methodID >> 8)
	full[3] = byte(methodID)
	copy(full[4:], payload)
	ch.r.Send(framing.Frame{Type: framing.FrameMethod, Channel: ch.id, Payload: full}, priority)
}

// DispatchMethod is called by the connection/dispatcher for every method
// frame arriving on this channel.
func (ch *Channel) DispatchMethod(m framing.Method) {
	ch.mu.Lock()
	rpc := ch.rpc
	ch.mu.Unlock()

	if rpc != nil && framing.IsReplyTo(rpc.reqClass, rpc.reqMethod, m) {
		ch.mu.Lock()
		ch.rpc = nil
		ch.mu.Unlock()
		rpc.done <- m
		return
	}

	switch mm := m.(type) {
	case *framing.ChannelFlow:
		ch.mu.Lock()
		if mm.Active {
			ch.state = StateOpen
		} else {
			ch.state = StateFlowOff
		}
		ch.mu.Unlock()
		ch.sendMethod(&framing.ChannelFlowOk{Active: mm.Active}, true)

	case *framing.ChannelClose:
		ch.sendMethod(&framing.ChannelCloseOk{}, true)
		ch.mu.Lock()
		ch.state = StateClosed
		ch.mu.Unlock()

	default:
		// Driven off framing.HasContent rather than a hand-maintained type
		// list, so every method hasContent names (Basic.Publish/Return/
		// Deliver/Get-Ok) starts content-header/body assembly.
		if framing.HasContent(mm) {
			ch.pendingMethod = mm
			ch.bodyAccum = ch.bodyAccum[:0]
			ch.bodyExpected = 0
		}
	}
}

// DispatchContentHeader is called for the content-header frame following a
// content-bearing method (e.g. Basic.Deliver/Return/Get-Ok) on this channel.
func (ch *Channel) DispatchContentHeader(h *framing.ContentHeader) {
	ch.pendingHeader = h
	ch.bodyExpected = h.BodySize
	ch.bodyAccum = make([]byte, 0, h.BodySize)
	if h.BodySize == 0 {
		ch.completeDelivery(nil)
	}
}

// DispatchBody accumulates one body frame's fragment, completing delivery
// once bodyAccum reaches the content-header's declared size.
func (ch *Channel) DispatchBody(body []byte) {
	if ch.pendingMethod == nil {
		return
	}
	ch.bodyAccum = append(ch.bodyAccum, body...)
	if uint64(len(ch.bodyAccum)) >= ch.bodyExpected {
		ch.completeDelivery(ch.bodyAccum)
	}
}

func (ch *Channel) completeDelivery(body []byte) {
	method := ch.pendingMethod
	props := ch.pendingHeader
	ch.pendingMethod = nil
	ch.pendingHeader = nil
	ch.bodyAccum = nil
	ch.bodyExpected = 0

	if method == nil {
		return
	}
	var propsVal *framing.Properties
	if props != nil {
		propsVal = props.Properties
	}

	msg := Message{Method: method, Properties: propsVal, Body: body}
	if ch.zeroCopy && body != nil {
		msg.ZeroCopy = zerocopy.NewBuffer(body)
	}

	if deliver, ok := method.(*framing.BasicDeliver); ok {
		ch.mu.Lock()
		consumer, ok := ch.consumers[deliver.ConsumerTag]
		ch.mu.Unlock()
		if ok {
			consumer.Deliver(msg)
			return
		}
	}
	ch.events.Push(msg)
}

// RegisterConsumer associates tag with a Consumer, so inbound
// Basic.Deliver frames carrying that consumer-tag are pushed to it instead
// of the pull-mode event queue.
func (ch *Channel) RegisterConsumer(tag string, c Consumer) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.consumers[tag] = c
}

// UnregisterConsumer removes a consumer-tag registration (after Cancel-Ok).
func (ch *Channel) UnregisterConsumer(tag string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	delete(ch.consumers, tag)
}

// Drain pops one pull-mode event (a Message not claimed by a registered
// Consumer), blocking up to timeout.
func (ch *Channel) Drain(timeout time.Duration) (Message, bool) {
	v, ok := ch.events.PopTimeout(timeout)
	if !ok {
		return Message{}, false
	}
	return v.(Message), true
}

// SendFireAndForget sends m without waiting for a reply, for methods that
// carry no synchronous response (Basic.Ack/Nack/Reject).
func (ch *Channel) SendFireAndForget(m framing.Method) {
	ch.r.Submit(func() {
		ch.sendMethod(m, false)
	})
}

// Publish frames and sends Basic.Publish + content-header + body frames
// back-to-back with no other channel traffic interleaved between them, per
// spec.md §4.8's publish-framing invariant.
func (ch *Channel) Publish(exchange, routingKey string, mandatory, immediate bool, props *framing.Properties, body []byte) {
	ch.r.Submit(func() {
		ch.sendMethod(&framing.BasicPublish{
			Exchange:   exchange,
			RoutingKey: routingKey,
			Mandatory:  mandatory,
			Immediate:  immediate,
		}, false)

		if props == nil {
			props = &framing.Properties{}
		}
		headerPayload, err := framing.EncodeContentHeader(&framing.ContentHeader{
			ClassID:    framing.ClassBasic,
			BodySize:   uint64(len(body)),
			Properties: props,
		})
		if err != nil {
			return
		}
		ch.r.Send(framing.Frame{Type: framing.FrameHeader, Channel: ch.id, Payload: headerPayload}, false)

		// 8 bytes of frame overhead (1-byte type, 2-byte channel, 4-byte
		// payload-size header, 1-byte end-marker trailer) must come out of
		// the negotiated frame-max before chunking the body, per spec.md
		// §4.3/§8.
		frameMax := int(ch.frameMax) - 8
		if frameMax <= 0 {
			frameMax = len(body)
			if frameMax == 0 {
				frameMax = 1
			}
		}
		for off := 0; off < len(body) || (off == 0 && len(body) == 0); {
			end := off + frameMax
			if end > len(body) {
				end = len(body)
			}
			ch.r.Send(framing.Frame{Type: framing.FrameBody, Channel: ch.id, Payload: body[off:end]}, false)
			if end == off {
				break
			}
			off = end
		}
	})
}
