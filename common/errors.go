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

package common

import "github.com/pkg/errors"

// RemoteConnectionError wraps a Connection.Close sent by the broker: every
// channel on the connection is dead along with it.
type RemoteConnectionError struct {
	ReplyCode uint16
	ReplyText string
}

func (e *RemoteConnectionError) Error() string {
	return errors.Errorf("connection closed by broker: %d %s", e.ReplyCode, e.ReplyText).Error()
}

// RemoteChannelError wraps a Channel.Close sent by the broker for one
// channel; the connection and its other channels are unaffected.
type RemoteChannelError struct {
	Channel   uint16
	ReplyCode uint16
	ReplyText string
}

func (e *RemoteChannelError) Error() string {
	return errors.Errorf("channel %d closed by broker: %d %s", e.Channel, e.ReplyCode, e.ReplyText).Error()
}

// ConnectionFailedError reports a failure to establish a connection (dial
// failure, handshake timeout, broker rejected credentials).
type ConnectionFailedError struct {
	Reason string
}

func (e *ConnectionFailedError) Error() string {
	return errors.Errorf("connection failed: %s", e.Reason).Error()
}

// TimeoutError reports a synchronous operation (RPC call, handshake step)
// that didn't complete within its deadline.
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string {
	return errors.Errorf("timed out waiting for %s", e.Op).Error()
}

// ProtocolViolation reports inbound data that doesn't conform to AMQP 0-9-1
// (not a truncated buffer — that's a framing.DecodeError — but a frame or
// method sequence the peer had no business sending, e.g. a reply to a
// method nobody issued). It is also returned locally when a channel is
// asked for a second synchronous RPC while one is still outstanding.
type ProtocolViolation struct {
	Reason string
}

func (e *ProtocolViolation) Error() string {
	return errors.Errorf("protocol violation: %s", e.Reason).Error()
}
