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

// Package reactor runs a single-goroutine event loop per connection: it
// multiplexes inbound frame dispatch, outbound frame batching, and timer
// callbacks, the way spec.md §4.6 describes an epoll/kqueue-driven reactor.
// Go's blocking net.Conn.Read has no non-blocking readiness-poll
// equivalent in the standard library, so a dedicated reader goroutine feeds
// the loop goroutine over a channel instead — see DESIGN.md for why no
// ecosystem alternative from the example pack fits here either.
package reactor

import (
	"container/heap"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/coolamqp/coolamqp/common"
	"github.com/coolamqp/coolamqp/framing"
	"github.com/coolamqp/coolamqp/internal/recvframer"
	"github.com/coolamqp/coolamqp/internal/rescue"
	"github.com/coolamqp/coolamqp/internal/sendframer"
	"github.com/coolamqp/coolamqp/logger"
)

// closeBudget bounds how long Close waits for a graceful handshake
// (Connection.Close/Close-Ok) before force-closing the socket.
const closeBudget = time.Second

// FrameHandler is invoked on the loop goroutine for every inbound frame.
type FrameHandler func(framing.Frame)

// command is a unit of work submitted to run on the loop goroutine, wrapped
// in rescue.HandleCrash so one bad callback can't take the reactor down.
type command func()

// Reactor owns a net.Conn and serializes every read dispatch, write, and
// timer callback onto one goroutine, removing the need for locks in the
// connection/channel state machines layered on top.
type Reactor struct {
	conn         net.Conn
	maxFrameSize uint32
	onFrame      FrameHandler
	log          logger.Logger

	cmdCh   chan command
	readCh  chan []byte
	readErr chan error
	closeCh chan struct{}

	sf *sendframer.Framer
	rf *recvframer.Framer

	timers  timerHeap
	timerMu sync.Mutex
	seq     uint64

	terminated atomic.Bool
	wg         sync.WaitGroup

	tracer atomic.Pointer[func(bool, framing.Frame)]
}

// SetTracer installs fn to observe every frame the reactor dispatches
// (outbound=false) or enqueues for write (outbound=true). Safe to call
// from any goroutine at any time.
func (r *Reactor) SetTracer(fn func(outbound bool, f framing.Frame)) {
	r.tracer.Store(&fn)
}

// New returns a Reactor bound to conn. onFrame is called synchronously on
// the loop goroutine for every decoded frame — it must not block.
func New(conn net.Conn, maxFrameSize uint32, onFrame FrameHandler) *Reactor {
	if maxFrameSize < common.MinFrameMax {
		maxFrameSize = common.MinFrameMax
	}
	return &Reactor{
		conn:         conn,
		maxFrameSize: maxFrameSize,
		onFrame:      onFrame,
		log:          logger.New(logger.Options{Stdout: true}),
		cmdCh:        make(chan command, 256),
		readCh:       make(chan []byte, 16),
		readErr:      make(chan error, 1),
		closeCh:      make(chan struct{}),
		sf:           sendframer.New(),
		rf:           recvframer.New(maxFrameSize),
	}
}

// Start spawns the reader goroutine and the loop goroutine. It returns
// immediately; use Submit/Send to interact with the reactor, and Wait to
// learn when it has stopped (on read error, protocol error, or Close).
func (r *Reactor) Start() {
	r.wg.Add(2)
	go r.readLoop()
	go r.runLoop()
}

// Wait blocks until the reactor has fully stopped (both goroutines
// exited).
func (r *Reactor) Wait() {
	r.wg.Wait()
}

// readLoop blocks on conn.Read in its own goroutine — the one place in this
// package that can't be driven from the single loop goroutine, since Go
// offers no way to select on "socket is readable" without blocking a
// goroutine on the read itself.
func (r *Reactor) readLoop() {
	defer r.wg.Done()
	buf := make([]byte, common.ReadWriteBlockSize)
	for {
		n, err := r.conn.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			select {
			case r.readCh <- cp:
			case <-r.closeCh:
				return
			}
		}
		if err != nil {
			select {
			case r.readErr <- err:
			default:
			}
			return
		}
	}
}

// runLoop is the single reactor goroutine: every frame dispatch, timer
// callback, and submitted command executes here, one at a time.
func (r *Reactor) runLoop() {
	defer r.wg.Done()
	defer close(r.closeCh)

	for {
		var timerC <-chan time.Time
		var nextTimer *time.Timer
		if d, ok := r.nextTimerDelay(); ok {
			nextTimer = time.NewTimer(d)
			timerC = nextTimer.C
		}

		select {
		case data := <-r.readCh:
			if !r.handleRead(data) {
				r.stopTimer(nextTimer)
				return
			}

		case err := <-r.readErr:
			r.log.Warnf("reactor: connection read failed: %v", err)
			r.stopTimer(nextTimer)
			return

		case cmd := <-r.cmdCh:
			r.runGuarded(cmd)
			r.flushWrites()

		case <-timerC:
			r.fireDueTimers()
			r.flushWrites()

		case <-r.closeCh:
			r.stopTimer(nextTimer)
			return
		}
		r.stopTimer(nextTimer)
	}
}

func (r *Reactor) stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}

// handleRead feeds data into the frame decoder and dispatches whatever
// complete frames it yields. It reports false if a malformed frame made the
// stream undecodable, in which case the caller must stop the reactor rather
// than loop forever re-reading the same bad bytes.
func (r *Reactor) handleRead(data []byte) bool {
	r.rf.Feed(data)
	for {
		f, ok, err := r.rf.Next()
		if err != nil {
			r.log.Errorf("reactor: frame decode error: %v", err)
			return false
		}
		if !ok {
			break
		}
		if fn := r.tracer.Load(); fn != nil {
			(*fn)(false, f)
		}
		r.runGuarded(func() { r.onFrame(f) })
	}
	if !r.rf.Pending() {
		r.rf.Compact()
	}
	r.flushWrites()
	return true
}

func (r *Reactor) runGuarded(fn func()) {
	defer rescue.HandleCrash()
	fn()
}

func (r *Reactor) flushWrites() {
	if !r.sf.Pending() {
		return
	}
	buf := r.sf.Flush()
	defer bytebufferpool.Put(buf)
	if _, err := r.conn.Write(buf.B); err != nil {
		r.log.Errorf("reactor: write failed: %v", err)
	}
}

// Submit queues fn to run on the loop goroutine. Blocks if the command
// queue is full — unlike internal/pubsub.Queue's drop-on-full semantics,
// a dropped command here would silently lose a publish or an RPC call, so
// this is a plain buffered channel instead (see DESIGN.md).
func (r *Reactor) Submit(fn func()) {
	select {
	case r.cmdCh <- fn:
	case <-r.closeCh:
	}
}

// Send enqueues a frame for the next write flush, from any goroutine.
func (r *Reactor) Send(f framing.Frame, priority bool) {
	if fn := r.tracer.Load(); fn != nil {
		(*fn)(true, f)
	}
	r.Submit(func() {
		if priority {
			r.sf.PutPriority(f)
		} else {
			r.sf.Put(f)
		}
	})
}

// Oneshot schedules fn to run once, after d, on the loop goroutine. Must be
// called from the loop goroutine (i.e. from within Submit/Send/onFrame).
func (r *Reactor) Oneshot(d time.Duration, fn func()) *Timer {
	r.seq++
	t := &Timer{at: time.Now().Add(d).UnixNano(), seq: r.seq, fn: fn}
	heap.Push(&r.timers, t)
	return t
}

// CancelAll cancels every pending timer. Must be called from the loop
// goroutine.
func (r *Reactor) CancelAll() {
	for _, t := range r.timers {
		t.cancelled = true
	}
}

func (r *Reactor) nextTimerDelay() (time.Duration, bool) {
	for r.timers.Len() > 0 && r.timers[0].cancelled {
		heap.Pop(&r.timers)
	}
	if r.timers.Len() == 0 {
		return 0, false
	}
	d := time.Until(time.Unix(0, r.timers[0].at))
	if d < 0 {
		d = 0
	}
	return d, true
}

func (r *Reactor) fireDueTimers() {
	now := time.Now().UnixNano()
	for r.timers.Len() > 0 {
		next := r.timers[0]
		if next.cancelled {
			heap.Pop(&r.timers)
			continue
		}
		if next.at > now {
			break
		}
		heap.Pop(&r.timers)
		r.runGuarded(next.fn)
	}
}

// Close requests a graceful shutdown: it gives the caller closeBudget to
// finish any in-flight handshake (e.g. Connection.Close/Close-Ok) via a
// final Submit, then force-closes the socket, which unblocks readLoop.
func (r *Reactor) Close() {
	if !r.terminated.CompareAndSwap(false, true) {
		return
	}
	time.AfterFunc(closeBudget, func() {
		_ = r.conn.Close()
	})
}

// CloseNow force-closes the socket immediately, skipping the close budget.
// Used once a graceful Connection.Close/Close-Ok handshake has completed.
func (r *Reactor) CloseNow() {
	r.terminated.Store(true)
	_ = r.conn.Close()
}
