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

// Decimal is the AMQP `D` field type: value * 10^-scale.
type Decimal struct {
	Scale uint8
	Value int32
}

// Table is an AMQP field-table: an ordered sequence of named, typed values.
// Go map iteration order is randomized, which would violate both the wire
// requirement that entries are emitted in insertion order and the
// decode(encode(T)) == T round-trip law (spec.md §8) — so, unlike
// common.Options, Table keeps its own ordered index alongside the map.
type Table struct {
	keys   []string
	values map[string]any
}

// NewTable returns an empty, ready-to-use Table.
func NewTable() *Table {
	return &Table{values: make(map[string]any)}
}

// Set inserts or updates a named value, preserving first-insertion order.
func (t *Table) Set(name string, value any) *Table {
	if t.values == nil {
		t.values = make(map[string]any)
	}
	if _, ok := t.values[name]; !ok {
		t.keys = append(t.keys, name)
	}
	t.values[name] = value
	return t
}

// Get returns the named value and whether it was present.
func (t *Table) Get(name string) (any, bool) {
	if t == nil || t.values == nil {
		return nil, false
	}
	v, ok := t.values[name]
	return v, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the entry names in insertion order. Callers must not mutate
// the returned slice.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return t.keys
}

// Equal compares two tables by content, ignoring key order divergence that
// can't happen in practice (encode/decode always rebuild from Keys()) but
// tolerating nil vs empty.
func (t *Table) Equal(o *Table) bool {
	if t.Len() != o.Len() {
		return false
	}
	for _, k := range t.Keys() {
		a, _ := t.Get(k)
		b, ok := o.Get(k)
		if !ok {
			return false
		}
		if !valuesEqual(a, b) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case *Table:
		bv, ok := b.(*Table)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
