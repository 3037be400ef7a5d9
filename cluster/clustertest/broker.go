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

// Package clustertest is an in-process fake AMQP broker, supplemented from
// original_source/stress_tests/server/__init__.py: it speaks just enough
// of the handshake plus Queue.Declare/Basic.Publish/Basic.Consume to drive
// the cluster package's own tests without a real broker. Test-only; not
// part of the public API.
package clustertest

import (
	"net"

	"github.com/coolamqp/coolamqp/framing"
)

// Broker accepts one connection at a time on a net.Listener and runs the
// AMQP 0-9-1 handshake plus a minimal method vocabulary against it.
type Broker struct {
	ln net.Listener

	// FrameMax is advertised in Connection.Tune; zero defaults to 131072.
	// Set before Accept to test how callers react to a negotiated value
	// lower than their own proposal.
	FrameMax uint32
}

// Listen starts a Broker on an OS-assigned loopback port.
func Listen() (*Broker, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	return &Broker{ln: ln}, nil
}

// Addr returns the dial address the cluster package should connect to.
func (b *Broker) Addr() string { return b.ln.Addr().String() }

// Close stops accepting new connections.
func (b *Broker) Close() error { return b.ln.Close() }

// Accept blocks for the next client connection and serves the handshake
// plus method vocabulary on it until the connection closes.
func (b *Broker) Accept() error {
	conn, err := b.ln.Accept()
	if err != nil {
		return err
	}
	go b.serve(conn)
	return nil
}

func (b *Broker) serve(conn net.Conn) {
	defer conn.Close()

	header := make([]byte, 8)
	if _, err := conn.Read(header); err != nil {
		return
	}

	write := func(channelID uint16, m framing.Method) error {
		classID, methodID, payload, err := framing.EncodeMethod(m)
		if err != nil {
			return err
		}
		full := make([]byte, 4+len(payload))
		full[0] = byte(classID >> 8)
		full[1] = byte(classID)
		full[2] = byte(methodID >> 8)
		full[3] = byte(methodID)
		copy(full[4:], payload)
		wire := framing.WriteFrame(nil, framing.Frame{Type: framing.FrameMethod, Channel: channelID, Payload: full})
		_, err = conn.Write(wire)
		return err
	}

	if err := write(0, &framing.ConnectionStart{
		VersionMajor:     0,
		VersionMinor:     9,
		ServerProperties: framing.NewTable(),
		Mechanisms:       "PLAIN",
		Locales:          "en_US",
	}); err != nil {
		return
	}

	buf := make([]byte, 8192)
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
			if f.Type != framing.FrameMethod {
				continue
			}
			classID := uint16(f.Payload[0])<<8 | uint16(f.Payload[1])
			methodID := uint16(f.Payload[2])<<8 | uint16(f.Payload[3])
			m, err := framing.DecodeMethod(classID, methodID, f.Payload[4:])
			if err != nil {
				continue
			}
			switch mm := m.(type) {
			case *framing.ConnectionStartOk:
				_ = mm
				frameMax := b.FrameMax
				if frameMax == 0 {
					frameMax = 131072
				}
				_ = write(0, &framing.ConnectionTune{ChannelMax: 2047, FrameMax: frameMax, Heartbeat: 0})
			case *framing.ConnectionTuneOk:
			case *framing.ConnectionOpen:
				_ = write(0, &framing.ConnectionOpenOk{})
			case *framing.ChannelOpen:
				_ = write(f.Channel, &framing.ChannelOpenOk{})
			case *framing.ExchangeDeclare:
				_ = write(f.Channel, &framing.ExchangeDeclareOk{})
			case *framing.QueueDeclare:
				_ = write(f.Channel, &framing.QueueDeclareOk{Queue: mm.Queue})
			case *framing.QueueBind:
				_ = write(f.Channel, &framing.QueueBindOk{})
			case *framing.BasicQos:
				_ = write(f.Channel, &framing.BasicQosOk{})
			case *framing.BasicConsume:
				tag := mm.ConsumerTag
				if tag == "" {
					tag = "server-tag-1"
				}
				_ = write(f.Channel, &framing.BasicConsumeOk{ConsumerTag: tag})
			case *framing.ConnectionClose:
				_ = write(0, &framing.ConnectionCloseOk{})
				return
			}
		}
	}
}
