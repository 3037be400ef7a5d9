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

// Package sendframer batches a burst of outbound AMQP frames into one
// contiguous write, grounded on the original implementation's
// uplink/connection/send_framer.py (SendingFramer.send: sum frame sizes,
// write every frame into a single buffer, hand the buffer to the socket
// once). A normal lane carries method/header/body traffic; a priority lane
// lets the reactor jump heartbeats and Channel.Close replies to the front
// of the next write without reordering the normal lane's own frames.
package sendframer

import (
	"github.com/valyala/bytebufferpool"

	"github.com/coolamqp/coolamqp/framing"
)

// Framer accumulates frames across two lanes and flushes them as one slice.
// Not safe for concurrent use — the reactor goroutine is its only caller.
type Framer struct {
	normal   []framing.Frame
	priority []framing.Frame
}

// New returns an empty Framer.
func New() *Framer {
	return &Framer{}
}

// Put enqueues a frame on the normal lane.
func (f *Framer) Put(fr framing.Frame) {
	f.normal = append(f.normal, fr)
}

// PutPriority enqueues a frame on the priority lane, flushed ahead of any
// normal-lane frames already queued (heartbeats, Channel.Close-Ok replies).
func (f *Framer) PutPriority(fr framing.Frame) {
	f.priority = append(f.priority, fr)
}

// Pending reports whether any frame is queued.
func (f *Framer) Pending() bool {
	return len(f.normal) > 0 || len(f.priority) > 0
}

// Flush serializes every queued frame — priority lane first — into one
// contiguous buffer and clears both lanes. The returned ByteBuffer must be
// released via bytebufferpool.Put by the caller once the write completes.
func (f *Framer) Flush() *bytebufferpool.ByteBuffer {
	buf := bytebufferpool.Get()
	for _, fr := range f.priority {
		buf.B = framing.WriteFrame(buf.B, fr)
	}
	for _, fr := range f.normal {
		buf.B = framing.WriteFrame(buf.B, fr)
	}
	f.priority = f.priority[:0]
	f.normal = f.normal[:0]
	return buf
}
