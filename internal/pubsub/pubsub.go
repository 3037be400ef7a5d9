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

package pubsub

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Queue is a single subscriber's inbox, returned by PubSub.Subscribe.
type Queue interface {
	// ID uniquely identifies the queue.
	ID() string

	// PopTimeout blocks until an element is available or timeout elapses.
	PopTimeout(timeout time.Duration) (any, bool)

	// Push enqueues an element. Non-blocking: a full queue drops it.
	Push(data any)

	// Close releases the queue; further Push/PopTimeout are no-ops.
	Close()
}

// channel is the Queue implementation backing channel.Channel's optional
// pull-mode event queue (the reactor's command queue is a plain Go
// channel, not a Queue). Push and Close
// share a mutex rather than relying on an atomic "closed" flag alone: a
// flag check followed by a separate send on ch.ch leaves a window where
// Close can run in between, closing the channel out from under a Push
// already committed to sending on it.
type channel struct {
	id string

	mu     sync.Mutex
	ch     chan any
	closed bool
}

func newChannel(size int) Queue {
	if size <= 0 {
		size = 1
	}

	return &channel{
		id: uuid.New().String(),
		ch: make(chan any, size),
	}
}

func (ch *channel) ID() string {
	return ch.id
}

func (ch *channel) PopTimeout(timeout time.Duration) (any, bool) {
	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		return nil, false
	}
	c := ch.ch
	ch.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	select {
	case data, ok := <-c:
		return data, ok

	case <-ctx.Done():
		return nil, false
	}
}

func (ch *channel) Push(data any) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.closed {
		return
	}

	select {
	case ch.ch <- data:
	default:
	}
}

func (ch *channel) Close() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if !ch.closed {
		ch.closed = true
		close(ch.ch)
	}
}

type PubSub struct {
	mut    sync.RWMutex
	queues map[string]Queue
}

func New() *PubSub {
	return &PubSub{
		queues: make(map[string]Queue),
	}
}

func (p *PubSub) Num() int {
	p.mut.RLock()
	defer p.mut.RUnlock()

	return len(p.queues)
}

func (p *PubSub) Subscribe(size int) Queue {
	p.mut.Lock()
	defer p.mut.Unlock()

	ch := newChannel(size)
	p.queues[ch.ID()] = ch
	return ch
}

func (p *PubSub) Publish(msg any) {
	p.mut.RLock()
	defer p.mut.RUnlock()

	for _, q := range p.queues {
		q.Push(msg)
	}
}

func (p *PubSub) Unsubscribe(q Queue) {
	p.mut.Lock()
	defer p.mut.Unlock()

	delete(p.queues, q.ID())
}
