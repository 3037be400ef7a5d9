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

import "encoding/binary"

// Frame types, grounded on the AMQP 0-9-1 wire-level framing described in
// spec.md §3 (the old passive decoder in protocol/pamqp/decoder.go parsed
// the same layout but only ever needed to look inside METHOD frames).
const (
	FrameMethod    uint8 = 1
	FrameHeader    uint8 = 2
	FrameBody      uint8 = 3
	FrameHeartbeat uint8 = 8
)

// FrameEnd terminates every frame on the wire.
const FrameEnd uint8 = 0xCE

// HeaderSize is the fixed 7-byte frame header: type(1) + channel(2) + size(4).
const HeaderSize = 7

// Frame is a single AMQP frame: a typed, channel-addressed payload.
type Frame struct {
	Type    uint8
	Channel uint16
	Payload []byte
}

// WriteFrame appends f's wire encoding (header + payload + frame-end) to
// dst and returns the grown slice.
func WriteFrame(dst []byte, f Frame) []byte {
	var hdr [HeaderSize]byte
	hdr[0] = f.Type
	binary.BigEndian.PutUint16(hdr[1:3], f.Channel)
	binary.BigEndian.PutUint32(hdr[3:7], uint32(len(f.Payload)))
	dst = append(dst, hdr[:]...)
	dst = append(dst, f.Payload...)
	dst = append(dst, FrameEnd)
	return dst
}

// ReadFrame decodes one frame from the head of buf. It returns the frame,
// the number of bytes consumed, and ok=false if buf doesn't yet hold a
// complete frame (the caller should wait for more bytes, not an error —
// this is the normal steady-state of a streaming connection).
func ReadFrame(buf []byte) (f Frame, consumed int, ok bool, err error) {
	if len(buf) < HeaderSize {
		return Frame{}, 0, false, nil
	}
	size := binary.BigEndian.Uint32(buf[3:7])
	total := HeaderSize + int(size) + 1
	if len(buf) < total {
		return Frame{}, 0, false, nil
	}
	if buf[total-1] != FrameEnd {
		return Frame{}, 0, false, newDecodeError("frame missing 0x%02x end marker, got 0x%02x", FrameEnd, buf[total-1])
	}

	f = Frame{
		Type:    buf[0],
		Channel: binary.BigEndian.Uint16(buf[1:3]),
		Payload: buf[HeaderSize : HeaderSize+int(size)],
	}
	return f, total, true, nil
}
