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

package channel

import (
	"sync"

	"github.com/coolamqp/coolamqp/common"
	"github.com/coolamqp/coolamqp/framing"
	"github.com/coolamqp/coolamqp/reactor"
)

// Manager allocates and tracks the channels multiplexed over one
// connection's reactor, and implements connection.MethodDispatcher by
// routing each frame to the Channel its channel-id names.
type Manager struct {
	r        *reactor.Reactor
	zeroCopy bool

	mu       sync.Mutex
	channels map[uint16]*Channel
	nextID   uint16
	frameMax uint32
}

// NewManager returns a Manager that allocates channels starting at id 1
// (channel 0 is reserved for the connection itself), proposing
// common.DefaultFrameMax for body chunking until SetFrameMax narrows it to
// whatever the connection actually negotiated.
func NewManager(r *reactor.Reactor, zeroCopy bool) *Manager {
	return &Manager{
		r:        r,
		zeroCopy: zeroCopy,
		channels: make(map[uint16]*Channel),
		nextID:   1,
		frameMax: common.DefaultFrameMax,
	}
}

// SetReactor binds the reactor a Manager allocates channels against. Used
// when the Manager must exist before the reactor does (it is installed as
// connection.MethodDispatcher before connection.Open returns the reactor
// it created) — safe because no non-zero-channel frame can arrive before
// any channel has been allocated.
func (m *Manager) SetReactor(r *reactor.Reactor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.r = r
}

// SetFrameMax records the connection's negotiated frame-max so every
// channel this Manager allocates afterward chunks Publish bodies against
// the value the broker actually agreed to, not the library's proposed
// default. Call once Tune completes (connection.Connection.
// NegotiatedFrameMax), before Allocate.
func (m *Manager) SetFrameMax(frameMax uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frameMax = frameMax
}

// FrameMax returns the frame-max new channels are currently allocated
// with.
func (m *Manager) FrameMax() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frameMax
}

// Allocate reserves the next channel id, registers it, and returns the
// (not-yet-opened) Channel.
func (m *Manager) Allocate() *Channel {
	m.mu.Lock()
	defer m.mu.Unlock()

	for {
		id := m.nextID
		m.nextID++
		if m.nextID == 0 {
			m.nextID = 1
		}
		if _, taken := m.channels[id]; !taken {
			ch := New(id, m.r, m.zeroCopy, m.frameMax)
			m.channels[id] = ch
			return ch
		}
	}
}

// Release forgets a closed channel, freeing its id for reuse.
func (m *Manager) Release(id uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.channels, id)
}

func (m *Manager) lookup(channelID uint16) *Channel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.channels[channelID]
}

// DispatchMethod implements connection.MethodDispatcher.
func (m *Manager) DispatchMethod(channelID uint16, mm framing.Method) {
	ch := m.lookup(channelID)
	if ch == nil {
		return
	}
	ch.DispatchMethod(mm)
	if _, ok := mm.(*framing.ChannelCloseOk); ok {
		m.Release(channelID)
	}
}

// DispatchContentHeader implements connection.MethodDispatcher.
func (m *Manager) DispatchContentHeader(channelID uint16, h *framing.ContentHeader) {
	if ch := m.lookup(channelID); ch != nil {
		ch.DispatchContentHeader(h)
	}
}

// DispatchBody implements connection.MethodDispatcher.
func (m *Manager) DispatchBody(channelID uint16, body []byte) {
	if ch := m.lookup(channelID); ch != nil {
		ch.DispatchBody(body)
	}
}

// Each calls fn for every currently tracked channel. The cluster's
// reconnect path does not use it: it replays its own mirrored state.
func (m *Manager) Each(fn func(*Channel)) {
	m.mu.Lock()
	channels := make([]*Channel, 0, len(m.channels))
	for _, ch := range m.channels {
		channels = append(channels, ch)
	}
	m.mu.Unlock()
	for _, ch := range channels {
		fn(ch)
	}
}
