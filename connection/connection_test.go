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

package connection

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolamqp/coolamqp/framing"
)

// fakeBroker accepts one TCP connection and drives it with a
// caller-supplied method handler, standing in for a real broker in the
// connection-level handshake tests.
func fakeBroker(t *testing.T, handle func(conn net.Conn, m framing.Method)) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		header := make([]byte, 8)
		if _, err := conn.Read(header); err != nil {
			return
		}

		write := func(channelID uint16, m framing.Method) {
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
			wire := framing.WriteFrame(nil, framing.Frame{Type: framing.FrameMethod, Channel: channelID, Payload: full})
			_, _ = conn.Write(wire)
		}

		write(0, &framing.ConnectionStart{
			VersionMajor:     0,
			VersionMinor:     9,
			ServerProperties: framing.NewTable(),
			Mechanisms:       "PLAIN",
			Locales:          "en_US",
		})

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
				handle(conn, m)
			}
		}
	}()

	return ln.Addr().String()
}

func writeMethod(conn net.Conn, channelID uint16, m framing.Method) {
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
	wire := framing.WriteFrame(nil, framing.Frame{Type: framing.FrameMethod, Channel: channelID, Payload: full})
	_, _ = conn.Write(wire)
}

func TestOpenHandshakeReachesStateOpen(t *testing.T) {
	addr := fakeBroker(t, func(conn net.Conn, m framing.Method) {
		switch m.(type) {
		case *framing.ConnectionStartOk:
			writeMethod(conn, 0, &framing.ConnectionTune{ChannelMax: 2047, FrameMax: 131072, Heartbeat: 0})
		case *framing.ConnectionOpen:
			writeMethod(conn, 0, &framing.ConnectionOpenOk{})
		}
	})

	cfg := DefaultConfig()
	c, err := Open(addr, cfg, nil, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, StateOpen, c.State())
	assert.Equal(t, uint32(131072), c.NegotiatedFrameMax())
}

func TestOpenFailsOnHandshakeTimeout(t *testing.T) {
	// Broker never replies to anything; Open must time out rather than hang.
	addr := fakeBroker(t, func(conn net.Conn, m framing.Method) {})

	cfg := DefaultConfig()
	_, err := Open(addr, cfg, nil, 200*time.Millisecond)
	require.Error(t, err)
}

func TestOpenFailsWhenBrokerDoesNotOfferPlain(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		header := make([]byte, 8)
		if _, err := conn.Read(header); err != nil {
			return
		}
		writeMethod(conn, 0, &framing.ConnectionStart{
			VersionMajor:     0,
			VersionMinor:     9,
			ServerProperties: framing.NewTable(),
			Mechanisms:       "AMQPLAIN EXTERNAL",
			Locales:          "en_US",
		})
	}()

	cfg := DefaultConfig()
	_, err = Open(ln.Addr().String(), cfg, nil, 2*time.Second)
	require.Error(t, err)
}

func TestOpenFailsOnConnectionSecure(t *testing.T) {
	addr := fakeBroker(t, func(conn net.Conn, m framing.Method) {
		switch m.(type) {
		case *framing.ConnectionStartOk:
			writeMethod(conn, 0, &framing.ConnectionSecure{Challenge: "more-please"})
		}
	})

	cfg := DefaultConfig()
	_, err := Open(addr, cfg, nil, 2*time.Second)
	require.Error(t, err)
}

func TestRemoteCloseTransitionsToClosed(t *testing.T) {
	var connRef net.Conn
	addr := fakeBroker(t, func(conn net.Conn, m framing.Method) {
		connRef = conn
		switch m.(type) {
		case *framing.ConnectionStartOk:
			writeMethod(conn, 0, &framing.ConnectionTune{ChannelMax: 2047, FrameMax: 131072, Heartbeat: 0})
		case *framing.ConnectionOpen:
			writeMethod(conn, 0, &framing.ConnectionOpenOk{})
		}
	})

	cfg := DefaultConfig()
	c, err := Open(addr, cfg, nil, 2*time.Second)
	require.NoError(t, err)
	require.Equal(t, StateOpen, c.State())

	writeMethod(connRef, 0, &framing.ConnectionClose{ReplyCode: 200, ReplyText: "bye"})

	require.Eventually(t, func() bool {
		return c.State() == StateClosed
	}, 2*time.Second, 10*time.Millisecond)
}
