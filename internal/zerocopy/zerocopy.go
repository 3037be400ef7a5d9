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

package zerocopy

import (
	"io"
)

// Reader reads n bytes without copying them.
type Reader interface {
	Read(n int) ([]byte, error)
}

// Writer installs a new backing slice. Never fails.
type Writer interface {
	Write(p []byte)
}

// Closer marks a Reader as exhausted (subsequent Read returns io.EOF).
type Closer interface {
	Close()
}

// Buffer composes Writer/Reader/Closer; every operation is copy-free.
type Buffer interface {
	Writer
	Reader
	Closer
}

type buffer struct {
	r int
	b []byte
}

// NewBuffer wraps p without copying it.
//
// The caller must not mutate p after handing it to NewBuffer: the Buffer
// reads p in place. channel.Channel uses it to hand a consumer its
// assembled message body in zero-copy body delivery mode.
func NewBuffer(p []byte) Buffer {
	return &buffer{
		b: p,
	}
}

// Read implements Reader.
func (buf *buffer) Read(n int) ([]byte, error) {
	if buf.r == len(buf.b) {
		return nil, io.EOF
	}

	if buf.r+n >= len(buf.b) {
		b := buf.b[buf.r:len(buf.b)]
		buf.r = len(buf.b)
		return b, nil
	}

	b := buf.b[buf.r : buf.r+n]
	buf.r += n
	return b, nil
}

// Write implements Writer.
func (buf *buffer) Write(p []byte) {
	buf.b = p
	buf.r = 0
}

// Close implements Closer.
func (buf *buffer) Close() {
	buf.r = len(buf.b)
}
