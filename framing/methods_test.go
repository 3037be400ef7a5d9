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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, m Method) Method {
	t.Helper()
	classID, methodID, payload, err := EncodeMethod(m)
	require.NoError(t, err)
	got, err := DecodeMethod(classID, methodID, payload)
	require.NoError(t, err)
	return got
}

func TestMethodRoundTrip(t *testing.T) {
	cases := []Method{
		&ConnectionStart{VersionMajor: 0, VersionMinor: 9, ServerProperties: NewTable().Set("product", "coolamqp"), Mechanisms: "PLAIN", Locales: "en_US"},
		&ConnectionTune{ChannelMax: 2047, FrameMax: 131072, Heartbeat: 60},
		&ConnectionOpen{VirtualHost: "/"},
		&ConnectionClose{ReplyCode: 200, ReplyText: "ok", ClassId: 0, MethodId: 0},
		&ChannelFlow{Active: true},
		&ExchangeDeclare{Exchange: "logs", Type: "topic", Durable: true, Arguments: NewTable()},
		&QueueDeclare{Queue: "q1", Durable: true, Arguments: NewTable()},
		&QueueDeclareOk{Queue: "q1", MessageCount: 3, ConsumerCount: 1},
		&QueueBind{Queue: "q1", Exchange: "logs", RoutingKey: "#", Arguments: NewTable()},
		&BasicPublish{Exchange: "logs", RoutingKey: "info", Mandatory: true},
		&BasicDeliver{ConsumerTag: "ctag-1", DeliveryTag: 42, Redelivered: true, Exchange: "logs", RoutingKey: "info"},
		&BasicGetOk{DeliveryTag: 1, Exchange: "logs", RoutingKey: "info", MessageCount: 0},
		&BasicAck{DeliveryTag: 42, Multiple: true},
		&BasicNack{DeliveryTag: 42, Multiple: false, Requeue: true},
		&TxSelect{},
	}

	for _, want := range cases {
		got := roundTrip(t, want)
		assert.Equal(t, want, got, "decode(encode(%s)) must equal the original method", want.MethodName())
	}
}

// TestBasicAckFieldOrder pins the wire order of Basic.Ack's two arguments:
// delivery-tag (longlong) first, then multiple (bit). A transposed order
// would still round-trip through this package's own codec but would corrupt
// the field values any AMQP-0-9-1-compliant broker expects.
func TestBasicAckFieldOrder(t *testing.T) {
	ack := &BasicAck{DeliveryTag: 0x0102030405060708, Multiple: true}
	w := NewWriter(nil)
	require.NoError(t, ack.Encode(w))
	payload := w.Bytes()

	require.Len(t, payload, 9) // 8-byte longlong + 1-byte bit octet
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, payload[:8])
	assert.Equal(t, byte(1), payload[8]&1)
}

func TestDecodeUnknownMethodFails(t *testing.T) {
	_, err := DecodeMethod(999, 999, nil)
	require.Error(t, err)
	var decErr *DecodeError
	assert.ErrorAs(t, err, &decErr)
}

func TestIsReplyTo(t *testing.T) {
	assert.True(t, IsReplyTo(ClassConnection, 40, &ConnectionOpenOk{}))
	assert.False(t, IsReplyTo(ClassConnection, 40, &ConnectionTuneOk{}))
	assert.True(t, IsReplyTo(ClassBasic, 70, &BasicGetOk{}))
	assert.True(t, IsReplyTo(ClassBasic, 70, &BasicGetEmpty{}))
}

func TestHasContent(t *testing.T) {
	assert.True(t, HasContent(&BasicPublish{}))
	assert.True(t, HasContent(&BasicDeliver{}))
	assert.True(t, HasContent(&BasicGetOk{}))
	assert.True(t, HasContent(&BasicReturn{}))
	assert.False(t, HasContent(&BasicAck{}))
	assert.False(t, HasContent(&BasicGetEmpty{}))
}
