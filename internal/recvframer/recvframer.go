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

// Package recvframer stream-parses a byte stream into whole AMQP frames,
// grounded on the teacher's protocol/pamqp/decoder.go (decodeHeader's
// tail/partial/lackN stitching of a frame header and payload split across
// reads) — simplified because framing.ReadFrame already reports "not enough
// bytes yet" as a plain ok=false rather than a multi-step partial state.
package recvframer

import (
	"encoding/binary"
	"fmt"

	"github.com/coolamqp/coolamqp/framing"
)

// Framer accumulates bytes read from the wire and yields complete frames.
// Not safe for concurrent use — the reactor's read goroutine owns it.
type Framer struct {
	buf      []byte
	maxFrame uint32
}

// New returns a Framer that rejects any frame whose declared payload size
// exceeds maxFrameSize. The reactor passes the frame-max its connection
// proposes before Connection.Tune; a smaller negotiated value is not
// enforced here.
func New(maxFrameSize uint32) *Framer {
	return &Framer{maxFrame: maxFrameSize}
}

// Feed appends newly-read bytes to the internal buffer.
func (f *Framer) Feed(p []byte) {
	f.buf = append(f.buf, p...)
}

// Next pops the next complete frame. ok is false when the buffer doesn't
// yet hold one — the caller should Feed more data and retry, not treat this
// as an error. The returned Frame's Payload is a zero-copy slice into the
// Framer's internal buffer: it is only valid until the next Feed or Compact
// call, so a consumer that wants to retain a message body past that point
// (internal/zerocopy.Buffer) must finish reading it first.
func (f *Framer) Next() (framing.Frame, bool, error) {
	if len(f.buf) < framing.HeaderSize {
		return framing.Frame{}, false, nil
	}

	size := binary.BigEndian.Uint32(f.buf[3:7])
	if size > f.maxFrame {
		return framing.Frame{}, false, &framing.DecodeError{
			Reason: fmt.Sprintf("frame payload of %d bytes exceeds frame_max %d", size, f.maxFrame),
		}
	}

	fr, consumed, ok, err := framing.ReadFrame(f.buf)
	if err != nil || !ok {
		return framing.Frame{}, false, err
	}

	f.buf = f.buf[consumed:]
	return fr, true, nil
}

// Pending reports whether any unconsumed bytes remain (a frame in flight).
func (f *Framer) Pending() bool {
	return len(f.buf) > 0
}

// Compact copies any unconsumed tail bytes down to a freshly allocated
// buffer, releasing the (possibly much larger) array accumulated by Feed.
// Call it once every complete frame from the latest reads has been drained
// via Next, mirroring the teacher's per-Decode-call rbuf.Reset().
func (f *Framer) Compact() {
	if len(f.buf) == 0 {
		f.buf = nil
		return
	}
	tail := make([]byte, len(f.buf))
	copy(tail, f.buf)
	f.buf = tail
}
