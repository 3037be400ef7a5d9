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

package cluster

import "time"

const (
	backoffStart = 500 * time.Millisecond
	backoffCap   = 30 * time.Second
	// stableAfter is how long a node must stay OPEN before its backoff
	// resets, per spec.md §4.9's "reset on a connection that stays OPEN
	// >= 60s" rule.
	stableAfter = 60 * time.Second
)

// nodeBackoff tracks one node's reconnect backoff state, following the
// shape of teacher protocol/pool.go's per-endpoint bookkeeping (state kept
// in a map entry, not a goroutine) adapted from connection leases to
// reconnect delay.
type nodeBackoff struct {
	current   time.Duration
	openSince time.Time
}

func newNodeBackoff() *nodeBackoff {
	return &nodeBackoff{current: backoffStart}
}

// next returns the delay to wait before the next dial attempt against this
// node, then doubles it (capped) for the attempt after that.
func (b *nodeBackoff) next() time.Duration {
	d := b.current
	b.current *= 2
	if b.current > backoffCap {
		b.current = backoffCap
	}
	return d
}

// markOpen records that the node's connection just reached OPEN.
func (b *nodeBackoff) markOpen(now time.Time) {
	b.openSince = now
}

// markClosed resets the backoff if the just-closed connection had been
// OPEN for at least stableAfter.
func (b *nodeBackoff) markClosed(now time.Time) {
	if !b.openSince.IsZero() && now.Sub(b.openSince) >= stableAfter {
		b.current = backoffStart
	}
	b.openSince = time.Time{}
}
