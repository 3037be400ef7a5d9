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

package reactor

import "container/heap"

// Timer is a handle to a scheduled, cancellable callback.
type Timer struct {
	at        int64 // unix nanoseconds
	seq       uint64
	fn        func()
	cancelled bool
	index     int
}

// Cancel prevents fn from firing, if it hasn't already. Safe to call from
// any goroutine, but the cancellation only takes effect on the next reactor
// tick — a fn already in flight on the loop goroutine still completes.
func (t *Timer) Cancel() {
	t.cancelled = true
}

// timerHeap is a min-heap ordered by deadline, breaking ties by insertion
// sequence so same-deadline timers fire in scheduling order.
type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

var _ heap.Interface = (*timerHeap)(nil)
