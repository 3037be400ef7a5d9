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

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRoundTrip(t *testing.T) {
	nested := NewTable().Set("inner", int32(7))
	tbl := NewTable().
		Set("bool", true).
		Set("i8", int8(-5)).
		Set("u8", uint8(5)).
		Set("i16", int16(-1000)).
		Set("u16", uint16(1000)).
		Set("i32", int32(-100000)).
		Set("u32", uint32(100000)).
		Set("i64", int64(-1<<40)).
		Set("u64", uint64(1<<40)).
		Set("f32", float32(1.5)).
		Set("f64", float64(2.5)).
		Set("decimal", Decimal{Scale: 2, Value: 12345}).
		Set("short", "hello").
		Set("long", strings.Repeat("x", 300)).
		Set("array", []any{int32(1), "two", true}).
		Set("table", nested).
		Set("void", nil)

	w := NewWriter(nil)
	require.NoError(t, w.WriteTable(tbl))

	r := NewReader(w.Bytes())
	got, err := r.ReadTable()
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
	assert.True(t, tbl.Equal(got), "decode(encode(T)) must equal T")
}

func TestTablePreservesInsertionOrder(t *testing.T) {
	tbl := NewTable().Set("z", int32(1)).Set("a", int32(2)).Set("m", int32(3))
	assert.Equal(t, []string{"z", "a", "m"}, tbl.Keys())
}

func TestShortStringOverLimitRejected(t *testing.T) {
	w := NewWriter(nil)
	err := w.WriteShortString(strings.Repeat("x", 256))
	require.Error(t, err)
	var encErr *EncodeError
	assert.ErrorAs(t, err, &encErr)
}

func TestShortStringAtLimitAccepted(t *testing.T) {
	w := NewWriter(nil)
	require.NoError(t, w.WriteShortString(strings.Repeat("x", 255)))
}

func TestDecodeTruncatedTableFails(t *testing.T) {
	w := NewWriter(nil)
	require.NoError(t, w.WriteTable(NewTable().Set("k", int32(1))))
	buf := w.Bytes()
	r := NewReader(buf[:len(buf)-1])
	_, err := r.ReadTable()
	require.Error(t, err)
	var decErr *DecodeError
	assert.ErrorAs(t, err, &decErr)
}

func TestDecodeUnknownTypeTagFails(t *testing.T) {
	r := NewReader([]byte{'?'})
	_, err := r.readFieldValue()
	require.Error(t, err)
	var decErr *DecodeError
	assert.ErrorAs(t, err, &decErr)
}
