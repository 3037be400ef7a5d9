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

// Package framing implements the AMQP 0-9-1 wire codec: the typed
// field-table/primitive codec, the method registry, the frame codec, and
// the content-header property codec.
package framing

import (
	"github.com/pkg/errors"
)

// EncodeError is returned when a value cannot be represented on the wire
// (an oversized string, an out-of-range integer, an unsupported table value).
type EncodeError struct {
	Reason string
}

func (e *EncodeError) Error() string {
	return "framing: encode: " + e.Reason
}

func newEncodeError(format string, args ...any) error {
	return &EncodeError{Reason: errors.Errorf(format, args...).Error()}
}

// DecodeError is returned when a buffer is truncated or carries a value the
// codec doesn't understand (unknown type tag, unknown class/method id).
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "framing: decode: " + e.Reason
}

func newDecodeError(format string, args ...any) error {
	return &DecodeError{Reason: errors.Errorf(format, args...).Error()}
}

// Reply codes from the AMQP 0-9-1 spec, carried in Connection.Close and
// Channel.Close. Grounded on the teacher's errorcode.go table, expanded to
// the full set (the teacher only needed the handful its passive decoder
// surfaced in Packet.ErrCode).
const (
	ReplySuccess = 200

	ReplyContentTooLarge  = 311
	ReplyNoRoute          = 312
	ReplyNoConsumers      = 313
	ReplyConnectionForced = 320
	ReplyInvalidPath      = 402
	ReplyAccessRefused    = 403
	ReplyNotFound         = 404
	ReplyResourceLocked   = 405
	ReplyPreconditionFail = 406
	ReplyFrameError       = 501
	ReplySyntaxError      = 502
	ReplyCommandInvalid   = 503
	ReplyChannelError     = 504
	ReplyUnexpectedFrame  = 505
	ReplyResourceError    = 506
	ReplyNotAllowed       = 530
	ReplyNotImplemented   = 540
	ReplyInternalError    = 541
)

// HardErrors are connection-fatal per the AMQP 0-9-1 spec: any of these in a
// Connection.Close means the whole connection, not just a channel, is dead.
var HardErrors = map[uint16]bool{
	ReplyConnectionForced: true,
	ReplyInvalidPath:      true,
	ReplyFrameError:       true,
	ReplySyntaxError:      true,
	ReplyCommandInvalid:   true,
	ReplyChannelError:     true,
	ReplyUnexpectedFrame:  true,
	ReplyResourceError:    true,
	ReplyNotAllowed:       true,
	ReplyNotImplemented:   true,
	ReplyInternalError:    true,
}

// SoftErrors are channel-fatal: the broker closes only the offending channel.
var SoftErrors = map[uint16]bool{
	ReplyContentTooLarge:  true,
	ReplyNoConsumers:      true,
	ReplyAccessRefused:    true,
	ReplyNotFound:         true,
	ReplyResourceLocked:   true,
	ReplyPreconditionFail: true,
}

var replyNames = map[uint16]string{
	ReplySuccess:          "success",
	ReplyContentTooLarge:  "content-too-large",
	ReplyNoRoute:          "no-route",
	ReplyNoConsumers:      "no-consumers",
	ReplyConnectionForced: "connection-forced",
	ReplyInvalidPath:      "invalid-path",
	ReplyAccessRefused:    "access-refused",
	ReplyNotFound:         "not-found",
	ReplyResourceLocked:   "resource-locked",
	ReplyPreconditionFail: "precondition-failed",
	ReplyFrameError:       "frame-error",
	ReplySyntaxError:      "syntax-error",
	ReplyCommandInvalid:   "command-invalid",
	ReplyChannelError:     "channel-error",
	ReplyUnexpectedFrame:  "unexpected-frame",
	ReplyResourceError:    "resource-error",
	ReplyNotAllowed:       "not-allowed",
	ReplyNotImplemented:   "not-implemented",
	ReplyInternalError:    "internal-error",
}

// ReplyName returns the AMQP mnemonic for a reply code, or "unknown-reply".
func ReplyName(code uint16) string {
	if name, ok := replyNames[code]; ok {
		return name
	}
	return "unknown-reply"
}
