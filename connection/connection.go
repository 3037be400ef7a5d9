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

// Package connection drives the AMQP 0-9-1 connection-level handshake and
// heartbeat watchdog over a reactor.Reactor, per spec.md §4.7's state table:
// NEW -> STARTING -> SECURING* -> TUNING -> OPENING -> OPEN -> CLOSING -> CLOSED.
package connection

import (
	"net"
	"strings"
	"time"

	"github.com/coolamqp/coolamqp/common"
	"github.com/coolamqp/coolamqp/framing"
	"github.com/coolamqp/coolamqp/internal/fasttime"
	"github.com/coolamqp/coolamqp/logger"
	"github.com/coolamqp/coolamqp/reactor"
)

// State is a connection's position in the handshake/lifetime state machine.
type State int

const (
	StateNew State = iota
	StateStarting
	StateSecuring
	StateTuning
	StateOpening
	StateOpen
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateStarting:
		return "STARTING"
	case StateSecuring:
		return "SECURING"
	case StateTuning:
		return "TUNING"
	case StateOpening:
		return "OPENING"
	case StateOpen:
		return "OPEN"
	case StateClosing:
		return "CLOSING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// protocolHeader is the literal that starts every AMQP 0-9-1 connection.
var protocolHeader = []byte("AMQP\x00\x00\x09\x01")

// Config holds the parameters a caller proposes for a connection; the
// broker may negotiate FrameMax/ChannelMax/Heartbeat down during Tune.
type Config struct {
	VirtualHost string
	Username    string
	Password    string
	Locale      string
	FrameMax    uint32
	ChannelMax  uint16
	Heartbeat   uint16
}

// DefaultConfig returns a Config proposing the library's defaults.
func DefaultConfig() Config {
	return Config{
		VirtualHost: "/",
		Username:    "guest",
		Password:    "guest",
		Locale:      "en_US",
		FrameMax:    common.DefaultFrameMax,
		ChannelMax:  common.DefaultChannelMax,
		Heartbeat:   common.DefaultHeartbeat,
	}
}

// MethodDispatcher routes a decoded method arriving on some channel to
// whatever owns that channel (the connection itself for channel 0, or the
// channel package for channel > 0). Installed by the caller that composes
// connection+channel together (the cluster package).
type MethodDispatcher interface {
	DispatchMethod(channelID uint16, m framing.Method)
	DispatchContentHeader(channelID uint16, h *framing.ContentHeader)
	DispatchBody(channelID uint16, body []byte)
}

// Connection manages channel 0 and the connection-wide handshake/heartbeat;
// all other channels' frames are handed off to Dispatcher.
type Connection struct {
	cfg        Config
	r          *reactor.Reactor
	log        logger.Logger
	dispatcher MethodDispatcher

	state State

	negotiatedFrameMax   uint32
	negotiatedChannelMax uint16
	negotiatedHeartbeat  uint16

	lastTxUnix int64
	lastRxUnix int64

	openCh  chan error
	closeCh chan error
}

// Open dials addr, runs the handshake, and returns a ready Connection.
// dispatcher may be nil until channels are created — DispatchMethod etc.
// are only invoked for channel IDs > 0 once a channel exists to receive
// them, which is the caller's responsibility to wire up before opening any
// channel.
func Open(addr string, cfg Config, dispatcher MethodDispatcher, dialTimeout time.Duration) (*Connection, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, &common.ConnectionFailedError{Reason: err.Error()}
	}

	// The protocol header is the one thing on an AMQP 0-9-1 connection that
	// isn't itself a framed AMQP frame, so it's written directly before the
	// reactor (which only ever frames/deframes) takes over the socket.
	if _, err := conn.Write(protocolHeader); err != nil {
		_ = conn.Close()
		return nil, &common.ConnectionFailedError{Reason: err.Error()}
	}

	c := &Connection{
		cfg:        cfg,
		log:        logger.New(logger.Options{Stdout: true}),
		dispatcher: dispatcher,
		state:      StateStarting,
		openCh:     make(chan error, 1),
		closeCh:    make(chan error, 1),
	}
	c.r = reactor.New(conn, cfg.FrameMax, c.onFrame)
	c.r.Start()

	select {
	case err := <-c.openCh:
		if err != nil {
			return nil, err
		}
		return c, nil
	case <-time.After(dialTimeout):
		c.r.CloseNow()
		return nil, &common.TimeoutError{Op: "connection handshake"}
	}
}

// onFrame is invoked on the reactor's loop goroutine for every decoded
// inbound frame.
func (c *Connection) onFrame(f framing.Frame) {
	c.lastRxUnix = fasttime.UnixTimestamp()

	if f.Type == framing.FrameHeartbeat {
		return
	}

	if f.Channel != 0 {
		c.dispatchNonZero(f)
		return
	}

	if f.Type != framing.FrameMethod {
		return
	}

	classID := uint16(f.Payload[0])<<8 | uint16(f.Payload[1])
	methodID := uint16(f.Payload[2])<<8 | uint16(f.Payload[3])
	m, err := framing.DecodeMethod(classID, methodID, f.Payload[4:])
	if err != nil {
		c.log.Errorf("connection: failed to decode channel-0 method: %v", err)
		return
	}

	switch mm := m.(type) {
	case *framing.ConnectionStart:
		c.handleStart(mm)
	case *framing.ConnectionSecure:
		// This client only ever offers PLAIN, which never provokes a
		// Connection.Secure challenge from a compliant broker; there is no
		// Connection.Secure-Ok response to build, so fail the handshake
		// explicitly instead of stalling with no reply.
		c.failStartup(&common.ConnectionFailedError{Reason: "broker sent connection.secure, which this client cannot answer (PLAIN-only, no challenge-response support)"})
	case *framing.ConnectionTune:
		c.handleTune(mm)
	case *framing.ConnectionOpenOk:
		c.handleOpenOk()
	case *framing.ConnectionClose:
		c.handleRemoteClose(mm)
	case *framing.ConnectionCloseOk:
		c.state = StateClosed
		select {
		case c.closeCh <- nil:
		default:
		}
		c.r.CloseNow()
	}
}

func (c *Connection) dispatchNonZero(f framing.Frame) {
	if c.dispatcher == nil {
		return
	}
	switch f.Type {
	case framing.FrameMethod:
		classID := uint16(f.Payload[0])<<8 | uint16(f.Payload[1])
		methodID := uint16(f.Payload[2])<<8 | uint16(f.Payload[3])
		m, err := framing.DecodeMethod(classID, methodID, f.Payload[4:])
		if err != nil {
			c.log.Errorf("connection: failed to decode channel %d method: %v", f.Channel, err)
			return
		}
		c.dispatcher.DispatchMethod(f.Channel, m)
	case framing.FrameHeader:
		h, err := framing.DecodeContentHeader(f.Payload)
		if err != nil {
			c.log.Errorf("connection: failed to decode content header: %v", err)
			return
		}
		c.dispatcher.DispatchContentHeader(f.Channel, h)
	case framing.FrameBody:
		c.dispatcher.DispatchBody(f.Channel, f.Payload)
	}
}

func (c *Connection) handleStart(m *framing.ConnectionStart) {
	if !supportsPlain(m.Mechanisms) {
		c.failStartup(&common.ConnectionFailedError{Reason: "broker does not offer a PLAIN SASL mechanism (offered: " + m.Mechanisms + ")"})
		return
	}

	c.state = StateSecuring
	response := "\x00" + c.cfg.Username + "\x00" + c.cfg.Password
	startOk := &framing.ConnectionStartOk{
		ClientProperties: clientProperties(),
		Mechanism:        "PLAIN",
		Response:         response,
		Locale:           c.cfg.Locale,
	}
	c.sendMethod(0, startOk, false)
	c.state = StateTuning
}

// supportsPlain reports whether mechanisms (Connection.Start's
// space-separated SASL mechanism list) includes PLAIN, the only mechanism
// this client implements.
func supportsPlain(mechanisms string) bool {
	for _, mech := range strings.Fields(mechanisms) {
		if mech == "PLAIN" {
			return true
		}
	}
	return false
}

// failStartup aborts the handshake before OPEN is reached: it surfaces err
// through Open's openCh, same as handleRemoteClose does for a peer-sent
// Connection.Close, but for a locally detected problem with no peer reply
// to wait for.
func (c *Connection) failStartup(err error) {
	c.state = StateClosed
	select {
	case c.openCh <- err:
	default:
	}
	c.r.CloseNow()
}

func (c *Connection) handleTune(m *framing.ConnectionTune) {
	c.negotiatedChannelMax = negotiateMax(c.cfg.ChannelMax, m.ChannelMax)
	c.negotiatedFrameMax = negotiateFrameMax(c.cfg.FrameMax, m.FrameMax)
	c.negotiatedHeartbeat = negotiateMax16(c.cfg.Heartbeat, m.Heartbeat)

	tuneOk := &framing.ConnectionTuneOk{
		ChannelMax: c.negotiatedChannelMax,
		FrameMax:   c.negotiatedFrameMax,
		Heartbeat:  c.negotiatedHeartbeat,
	}
	c.sendMethod(0, tuneOk, false)

	c.state = StateOpening
	c.sendMethod(0, &framing.ConnectionOpen{VirtualHost: c.cfg.VirtualHost}, false)

	if c.negotiatedHeartbeat > 0 {
		c.scheduleHeartbeat()
	}
}

func (c *Connection) handleOpenOk() {
	c.state = StateOpen
	select {
	case c.openCh <- nil:
	default:
	}
}

// failHeartbeatTimeout tears the connection down locally after the
// watchdog observes no inbound bytes for 2x the negotiated heartbeat
// interval — the peer never sent a Connection.Close, so this doesn't go
// through the handleRemoteClose reply-code plumbing.
func (c *Connection) failHeartbeatTimeout() {
	c.state = StateClosed
	err := &common.TimeoutError{Op: "heartbeat"}
	select {
	case c.closeCh <- err:
	default:
	}
	c.r.CloseNow()
}

func (c *Connection) handleRemoteClose(m *framing.ConnectionClose) {
	c.sendMethod(0, &framing.ConnectionCloseOk{}, true)
	c.state = StateClosed
	err := &common.RemoteConnectionError{ReplyCode: m.ReplyCode, ReplyText: m.ReplyText}
	select {
	case c.openCh <- err:
	default:
	}
	select {
	case c.closeCh <- err:
	default:
	}
	c.r.CloseNow()
}

// Close starts a graceful Connection.Close/Close-Ok handshake, waiting up
// to the reactor's close budget for the peer's reply.
func (c *Connection) Close(replyCode uint16, replyText string) error {
	c.r.Submit(func() {
		if c.state == StateClosing || c.state == StateClosed {
			return
		}
		c.state = StateClosing
		c.sendMethod(0, &framing.ConnectionClose{ReplyCode: replyCode, ReplyText: replyText}, true)
	})
	c.r.Close()
	select {
	case err := <-c.closeCh:
		return err
	case <-time.After(time.Second):
		return nil
	}
}

// State returns the connection's current lifecycle state.
func (c *Connection) State() State { return c.state }

// NegotiatedFrameMax returns the frame-max agreed during Tune.
func (c *Connection) NegotiatedFrameMax() uint32 { return c.negotiatedFrameMax }

// Reactor exposes the underlying reactor so the channel package can share
// its loop goroutine for frame submission.
func (c *Connection) Reactor() *reactor.Reactor { return c.r }

func (c *Connection) sendMethod(channel uint16, m framing.Method, priority bool) {
	classID, methodID, payload, err := framing.EncodeMethod(m)
	if err != nil {
		c.log.Errorf("connection: failed to encode %s: %v", m.MethodName(), err)
		return
	}
	full := make([]byte, 4+len(payload))
	full[0] = byte(classID >> 8)
	full[1] = byte(classID)
	full[2] = byte(methodID >> 8)
	full[3] = byte(methodID)
	copy(full[4:], payload)
	c.lastTxUnix = fasttime.UnixTimestamp()
	c.r.Send(framing.Frame{Type: framing.FrameMethod, Channel: channel, Payload: full}, priority)
}

// scheduleHeartbeat arms the watchdog: every tick it sends a heartbeat if
// the connection has been silent, and fails the connection if no bytes at
// all (not just heartbeats) have arrived for 2x the negotiated interval.
func (c *Connection) scheduleHeartbeat() {
	interval := time.Duration(c.negotiatedHeartbeat) * time.Second
	tick := interval / 2
	if tick < time.Second {
		tick = time.Second
	}

	var watchdog func()
	watchdog = func() {
		if c.state != StateOpen {
			return
		}
		now := fasttime.UnixTimestamp()
		if now-c.lastTxUnix >= int64(c.negotiatedHeartbeat)/2 {
			c.r.Send(framing.Frame{Type: framing.FrameHeartbeat, Channel: 0}, true)
			c.lastTxUnix = now
		}
		if now-c.lastRxUnix > 2*int64(c.negotiatedHeartbeat) {
			c.failHeartbeatTimeout()
			return
		}
		c.r.Oneshot(tick, watchdog)
	}
	c.r.Oneshot(tick, watchdog)
}

func clientProperties() *framing.Table {
	return framing.NewTable().
		Set("product", common.App).
		Set("version", common.Version).
		Set("platform", "Go")
}

func negotiateMax(proposed, serverVal uint16) uint16 {
	if serverVal == 0 {
		return proposed
	}
	if proposed == 0 || serverVal < proposed {
		return serverVal
	}
	return proposed
}

func negotiateMax16(proposed, serverVal uint16) uint16 {
	return negotiateMax(proposed, serverVal)
}

func negotiateFrameMax(proposed, serverVal uint32) uint32 {
	v := proposed
	if serverVal != 0 && serverVal < v {
		v = serverVal
	}
	if v < common.MinFrameMax {
		v = common.MinFrameMax
	}
	return v
}
