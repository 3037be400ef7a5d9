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

// Package cluster is the public façade of spec.md §4.9: it hides the
// connection/channel/reactor machinery behind a declarative desired-state
// mirror that survives reconnection to any of a round-robin list of
// broker nodes, mirroring the original CoolAMQP's design of never handing
// the caller a raw AMQP channel.
package cluster

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/coolamqp/coolamqp/channel"
	"github.com/coolamqp/coolamqp/common"
	"github.com/coolamqp/coolamqp/connection"
	"github.com/coolamqp/coolamqp/framing"
	"github.com/coolamqp/coolamqp/logger"
)

// ConsumeOptions configures cluster.Consume.
type ConsumeOptions struct {
	NoAck     bool
	Exclusive bool
	Qos       *BasicQos
	OnMessage channel.Consumer
}

// BasicQos mirrors framing.BasicQos without exposing the framing package
// at the cluster API boundary.
type BasicQos struct {
	PrefetchCount uint16
	Global        bool
}

type consumerRegistration struct {
	queue   string
	opts    ConsumeOptions
	tag     string // current broker-assigned tag; mirror preserved across reconnect
}

// Cluster is a fault-tolerant AMQP client: it maintains desired exchanges,
// queues, bindings, QoS, and consumers, and replays them on every node it
// (re)connects to.
type Cluster struct {
	nodes []NodeDefinition
	opts  Options
	log   logger.Logger

	mu         sync.Mutex
	exchanges  []Exchange
	queues     []Queue
	bindings   []Binding
	qos        *BasicQos
	consumers  map[string]*consumerRegistration

	conn *connection.Connection
	mgr  *channel.Manager
	ch   *channel.Channel

	nodeIdx  int
	backoffs []*nodeBackoff

	closed     atomic.Bool
	shutdownCh chan struct{}
}

// Connect dials the given nodes round-robin until one succeeds, then
// starts the background reconnect loop. It returns once the first
// connection reaches OPEN.
func Connect(nodes []NodeDefinition, opts Options) (*Cluster, error) {
	if len(nodes) == 0 {
		return nil, errors.New("cluster: at least one node is required")
	}
	opts = opts.withDefaults()

	log := logger.New(logger.Options{Stdout: true})
	if opts.Logger != nil {
		log = *opts.Logger
	}

	c := &Cluster{
		nodes:      nodes,
		opts:       opts,
		log:        log,
		consumers:  make(map[string]*consumerRegistration),
		backoffs:   make([]*nodeBackoff, len(nodes)),
		shutdownCh: make(chan struct{}),
	}
	for i := range c.backoffs {
		c.backoffs[i] = newNodeBackoff()
	}

	first := make(chan error, 1)
	go c.reconnectLoop(first)

	select {
	case err := <-first:
		if err != nil {
			return nil, err
		}
		return c, nil
	case <-time.After(opts.DialTimeout * time.Duration(len(nodes)+1)):
		return nil, &common.TimeoutError{Op: "cluster initial connect"}
	}
}

// reconnectLoop owns the round-robin node selection and backoff, and runs
// for the lifetime of the Cluster.
func (c *Cluster) reconnectLoop(first chan<- error) {
	reportedFirst := false
	for !c.closed.Load() {
		idx := c.nodeIdx
		c.nodeIdx = (c.nodeIdx + 1) % len(c.nodes)
		node := c.nodes[idx]
		backoff := c.backoffs[idx]

		err := c.connectOnce(node)
		wasFirst := !reportedFirst
		if wasFirst && err != nil && idx < len(c.nodes)-1 {
			// Initial connect: try each remaining node once before giving up.
			c.log.Warnf("cluster: node %s failed: %v", node.Addr(), err)
			continue
		}
		if wasFirst {
			reportedFirst = true
			first <- err
			if err != nil {
				// The caller never got a *Cluster to retry with; don't
				// keep this goroutine retrying forever in the background.
				return
			}
		}
		if err != nil {
			c.log.Warnf("cluster: node %s failed: %v", node.Addr(), err)
			if c.opts.OnFail != nil {
				c.opts.OnFail(err)
			}
			select {
			case <-time.After(backoff.next()):
			case <-c.shutdownCh:
				return
			}
			continue
		}

		backoff.markOpen(time.Now())
		c.conn.Reactor().Wait() // blocks until this connection's reactor stops
		backoff.markClosed(time.Now())

		if c.closed.Load() {
			return
		}
	}
}

func (c *Cluster) connectOnce(node NodeDefinition) error {
	// mgr is installed as the connection's MethodDispatcher before
	// connection.Open returns the reactor it creates; that's fine since no
	// non-zero-channel frame can arrive before a channel is allocated below.
	mgr := channel.NewManager(nil, false)
	cfg := connection.DefaultConfig()
	cfg.VirtualHost = node.VirtualHost
	cfg.Username = node.Username
	cfg.Password = node.Password
	cfg.FrameMax = c.opts.FrameMax
	cfg.Heartbeat = uint16(c.opts.Heartbeat / time.Second)

	conn, err := connection.Open(node.Addr(), cfg, mgr, c.opts.DialTimeout)
	if err != nil {
		return err
	}
	mgr.SetReactor(conn.Reactor())
	mgr.SetFrameMax(conn.NegotiatedFrameMax())
	if c.opts.LogFrames != nil {
		tracer := c.opts.LogFrames
		conn.Reactor().SetTracer(func(outbound bool, f framing.Frame) {
			dir := DirectionInbound
			if outbound {
				dir = DirectionOutbound
			}
			tracer.OnFrame(f.Channel, dir, f)
		})
	}

	ch := mgr.Allocate()
	if err := ch.Open(c.opts.DialTimeout); err != nil {
		_ = conn.Close(0, "")
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mgr = mgr
	c.ch = ch
	c.mu.Unlock()

	if err := c.replayDesiredState(); err != nil {
		_ = conn.Close(0, "")
		return err
	}
	return nil
}

// replayDesiredState re-declares every mirrored exchange, then every queue,
// then every binding (each kind in its own declaration order; the original
// interleaving across kinds is not kept), reapplies QoS, and re-subscribes
// every consumer, per spec.md §4.9 steps 2-4.
func (c *Cluster) replayDesiredState() error {
	c.mu.Lock()
	exchanges := append([]Exchange(nil), c.exchanges...)
	queues := append([]Queue(nil), c.queues...)
	bindings := append([]Binding(nil), c.bindings...)
	qos := c.qos
	consumers := make(map[string]*consumerRegistration, len(c.consumers))
	for k, v := range c.consumers {
		consumers[k] = v
	}
	ch := c.ch
	c.mu.Unlock()

	for _, e := range exchanges {
		if _, err := ch.Call(e.toMethod(), c.opts.DialTimeout); err != nil {
			return err
		}
	}
	for _, q := range queues {
		if _, err := ch.Call(q.toMethod(), c.opts.DialTimeout); err != nil {
			return err
		}
	}
	for _, b := range bindings {
		if _, err := ch.Call(b.toMethod(), c.opts.DialTimeout); err != nil {
			return err
		}
	}
	if qos != nil {
		m := &framing.BasicQos{PrefetchCount: qos.PrefetchCount, Global: qos.Global}
		if _, err := ch.Call(m, c.opts.DialTimeout); err != nil {
			return err
		}
	}
	for identity, reg := range consumers {
		reply, err := ch.Call(&framing.BasicConsume{
			Queue:     reg.queue,
			NoAck:     reg.opts.NoAck,
			Exclusive: reg.opts.Exclusive,
		}, c.opts.DialTimeout)
		if err != nil {
			return err
		}
		if ok, isOk := reply.(*framing.BasicConsumeOk); isOk {
			reg.tag = ok.ConsumerTag
			if reg.opts.OnMessage != nil {
				ch.RegisterConsumer(ok.ConsumerTag, reg.opts.OnMessage)
			}
		}
		c.mu.Lock()
		c.consumers[identity] = reg
		c.mu.Unlock()
	}
	return nil
}

// Declare asks the broker to declare a resource, and remembers it so it
// survives reconnection.
func (c *Cluster) Declare(d Declarable) error {
	c.mu.Lock()
	switch v := d.(type) {
	case Exchange:
		c.exchanges = append(c.exchanges, v)
	case Queue:
		c.queues = append(c.queues, v)
	case Binding:
		c.bindings = append(c.bindings, v)
	}
	ch := c.ch
	c.mu.Unlock()

	_, err := ch.Call(d.toMethod(), c.opts.DialTimeout)
	return err
}

// Publish sends a message, framing method+header+body back-to-back on the
// cluster's internal channel.
func (c *Cluster) Publish(exchange, routingKey string, props *framing.Properties, body []byte, mandatory, immediate bool) {
	c.mu.Lock()
	ch := c.ch
	c.mu.Unlock()
	ch.Publish(exchange, routingKey, mandatory, immediate, props, body)
}

// Consume subscribes to a queue, registering identity as a stable handle
// that survives the broker reassigning a new consumer-tag on reconnect.
func (c *Cluster) Consume(identity, queue string, opts ConsumeOptions) error {
	c.mu.Lock()
	ch := c.ch
	if opts.Qos != nil {
		c.qos = opts.Qos
	}
	c.mu.Unlock()

	if opts.Qos != nil {
		if _, err := ch.Call(&framing.BasicQos{PrefetchCount: opts.Qos.PrefetchCount, Global: opts.Qos.Global}, c.opts.DialTimeout); err != nil {
			return err
		}
	}

	reply, err := ch.Call(&framing.BasicConsume{Queue: queue, NoAck: opts.NoAck, Exclusive: opts.Exclusive}, c.opts.DialTimeout)
	if err != nil {
		return err
	}
	ok, isOk := reply.(*framing.BasicConsumeOk)
	if !isOk {
		return errors.New("cluster: unexpected reply to basic.consume")
	}
	if opts.OnMessage != nil {
		ch.RegisterConsumer(ok.ConsumerTag, opts.OnMessage)
	}

	c.mu.Lock()
	c.consumers[identity] = &consumerRegistration{queue: queue, opts: opts, tag: ok.ConsumerTag}
	c.mu.Unlock()
	return nil
}

// Ack acknowledges a delivery on the cluster's internal channel.
func (c *Cluster) Ack(deliveryTag uint64, multiple bool) {
	c.sendBasic(&framing.BasicAck{DeliveryTag: deliveryTag, Multiple: multiple})
}

// Nack negatively acknowledges a delivery, optionally requeuing it.
func (c *Cluster) Nack(deliveryTag uint64, multiple, requeue bool) {
	c.sendBasic(&framing.BasicNack{DeliveryTag: deliveryTag, Multiple: multiple, Requeue: requeue})
}

// Reject rejects a single delivery, optionally requeuing it.
func (c *Cluster) Reject(deliveryTag uint64, requeue bool) {
	c.sendBasic(&framing.BasicReject{DeliveryTag: deliveryTag, Requeue: requeue})
}

func (c *Cluster) sendBasic(m framing.Method) {
	c.mu.Lock()
	ch := c.ch
	c.mu.Unlock()
	if ch == nil {
		return
	}
	ch.SendFireAndForget(m)
}

// Drain pulls one undelivered message from the cluster's pull-mode event
// queue, blocking up to timeout.
func (c *Cluster) Drain(timeout time.Duration) (channel.Message, bool) {
	c.mu.Lock()
	ch := c.ch
	c.mu.Unlock()
	if ch == nil {
		return channel.Message{}, false
	}
	return ch.Drain(timeout)
}

// Shutdown closes the current connection and stops the reconnect loop. If
// wait is true it blocks until the underlying reactor has fully stopped.
func (c *Cluster) Shutdown(wait bool) {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	close(c.shutdownCh)

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return
	}
	_ = conn.Close(0, "shutdown")
	if wait {
		conn.Reactor().Wait()
	}
}
