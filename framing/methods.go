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

// Class IDs, grounded on the teacher's classmethod.go classConnection..classTx
// constants, carried forward unchanged since they're wire-mandated values.
const (
	ClassConnection = 10
	ClassChannel    = 20
	ClassExchange   = 40
	ClassQueue      = 50
	ClassBasic      = 60
	ClassTx         = 90
)

// Method is implemented by one struct per (class-id, method-id) pair. Unlike
// the teacher's passive decoder — which only needed to pull a handful of
// fields out of methods it cared about (see fieldRequestMap in the old
// protocol/pamqp package) — an active client must both encode and decode
// every method, so every field is modeled.
type Method interface {
	ClassID() uint16
	MethodID() uint16
	MethodName() string
	Encode(w *Writer) error
	Decode(r *Reader) error
}

type classMethodID struct {
	class  uint16
	method uint16
}

var methodFactories = map[classMethodID]func() Method{}

func register(class, method uint16, factory func() Method) {
	methodFactories[classMethodID{class, method}] = factory
}

// DecodeMethod looks up the method registered for (classID, methodID),
// decodes payload into it, and returns it.
func DecodeMethod(classID, methodID uint16, payload []byte) (Method, error) {
	factory, ok := methodFactories[classMethodID{classID, methodID}]
	if !ok {
		return nil, newDecodeError("unknown method %d/%d", classID, methodID)
	}
	m := factory()
	r := NewReader(payload)
	if err := m.Decode(r); err != nil {
		return nil, err
	}
	return m, nil
}

// EncodeMethod serializes m's arguments, returning its class/method id
// alongside the payload.
func EncodeMethod(m Method) (classID, methodID uint16, payload []byte, err error) {
	w := NewWriter(make([]byte, 0, 64))
	if err = m.Encode(w); err != nil {
		return 0, 0, nil, err
	}
	return m.ClassID(), m.MethodID(), w.Bytes(), nil
}

// replyPairs maps a synchronous request's (class,method) to the (class,
// method) of the reply the channel's RPC slot should wait for, grounded on
// the teacher's classMethodPairs table (Open->Open-Ok, Declare->Declare-Ok,
// etc.) but keyed by id instead of name since every method is now modeled.
var replyPairs = map[classMethodID]classMethodID{
	{ClassConnection, 10}: {ClassConnection, 11}, // Start -> Start-Ok
	{ClassConnection, 20}: {ClassConnection, 21}, // Secure -> Secure-Ok
	{ClassConnection, 30}: {ClassConnection, 31}, // Tune -> Tune-Ok
	{ClassConnection, 40}: {ClassConnection, 41}, // Open -> Open-Ok
	{ClassConnection, 50}: {ClassConnection, 51}, // Close -> Close-Ok

	{ClassChannel, 10}: {ClassChannel, 11}, // Open -> Open-Ok
	{ClassChannel, 20}: {ClassChannel, 21}, // Flow -> Flow-Ok
	{ClassChannel, 40}: {ClassChannel, 41}, // Close -> Close-Ok

	{ClassExchange, 10}: {ClassExchange, 11}, // Declare -> Declare-Ok
	{ClassExchange, 20}: {ClassExchange, 21}, // Delete -> Delete-Ok

	{ClassQueue, 10}: {ClassQueue, 11}, // Declare -> Declare-Ok
	{ClassQueue, 20}: {ClassQueue, 21}, // Bind -> Bind-Ok
	{ClassQueue, 30}: {ClassQueue, 31}, // Purge -> Purge-Ok
	{ClassQueue, 40}: {ClassQueue, 41}, // Delete -> Delete-Ok
	{ClassQueue, 50}: {ClassQueue, 51}, // Unbind -> Unbind-Ok

	{ClassBasic, 10}:  {ClassBasic, 11},  // Qos -> Qos-Ok
	{ClassBasic, 20}:  {ClassBasic, 21},  // Consume -> Consume-Ok
	{ClassBasic, 30}:  {ClassBasic, 31},  // Cancel -> Cancel-Ok
	{ClassBasic, 70}:  {ClassBasic, 71},  // Get -> Get-Ok (or Get-Empty, handled by caller)
	{ClassBasic, 100}: {ClassBasic, 101}, // Recover -> Recover-Ok

	{ClassTx, 10}: {ClassTx, 11}, // Select -> Select-Ok
	{ClassTx, 20}: {ClassTx, 21}, // Commit -> Commit-Ok
	{ClassTx, 30}: {ClassTx, 31}, // Rollback -> Rollback-Ok
}

// IsReplyTo reports whether candidate is an acceptable synchronous reply to
// a request of (reqClass, reqMethod). Basic.Get is special-cased since its
// reply is either Get-Ok(71) or Get-Empty(72).
func IsReplyTo(reqClass, reqMethod uint16, candidate Method) bool {
	if reqClass == ClassBasic && reqMethod == 70 {
		return candidate.ClassID() == ClassBasic && (candidate.MethodID() == 71 || candidate.MethodID() == 72)
	}
	want, ok := replyPairs[classMethodID{reqClass, reqMethod}]
	if !ok {
		return false
	}
	return candidate.ClassID() == want.class && candidate.MethodID() == want.method
}

// hasContent reports whether a method carries a following content-header and
// body, grounded on the teacher's classMethodNeedContentHeader set (Publish,
// Return, Deliver, Get-Ok) — all four survive unchanged in an active client.
func hasContent(classID, methodID uint16) bool {
	switch (classMethodID{classID, methodID}) {
	case classMethodID{ClassBasic, 40}, classMethodID{ClassBasic, 50},
		classMethodID{ClassBasic, 60}, classMethodID{ClassBasic, 71}:
		return true
	default:
		return false
	}
}

// HasContent reports whether m is followed by a content-header/body.
func HasContent(m Method) bool {
	return hasContent(m.ClassID(), m.MethodID())
}

func init() {
	register(ClassConnection, 10, func() Method { return &ConnectionStart{} })
	register(ClassConnection, 11, func() Method { return &ConnectionStartOk{} })
	register(ClassConnection, 20, func() Method { return &ConnectionSecure{} })
	register(ClassConnection, 21, func() Method { return &ConnectionSecureOk{} })
	register(ClassConnection, 30, func() Method { return &ConnectionTune{} })
	register(ClassConnection, 31, func() Method { return &ConnectionTuneOk{} })
	register(ClassConnection, 40, func() Method { return &ConnectionOpen{} })
	register(ClassConnection, 41, func() Method { return &ConnectionOpenOk{} })
	register(ClassConnection, 50, func() Method { return &ConnectionClose{} })
	register(ClassConnection, 51, func() Method { return &ConnectionCloseOk{} })

	register(ClassChannel, 10, func() Method { return &ChannelOpen{} })
	register(ClassChannel, 11, func() Method { return &ChannelOpenOk{} })
	register(ClassChannel, 20, func() Method { return &ChannelFlow{} })
	register(ClassChannel, 21, func() Method { return &ChannelFlowOk{} })
	register(ClassChannel, 40, func() Method { return &ChannelClose{} })
	register(ClassChannel, 41, func() Method { return &ChannelCloseOk{} })

	register(ClassExchange, 10, func() Method { return &ExchangeDeclare{} })
	register(ClassExchange, 11, func() Method { return &ExchangeDeclareOk{} })
	register(ClassExchange, 20, func() Method { return &ExchangeDelete{} })
	register(ClassExchange, 21, func() Method { return &ExchangeDeleteOk{} })

	register(ClassQueue, 10, func() Method { return &QueueDeclare{} })
	register(ClassQueue, 11, func() Method { return &QueueDeclareOk{} })
	register(ClassQueue, 20, func() Method { return &QueueBind{} })
	register(ClassQueue, 21, func() Method { return &QueueBindOk{} })
	register(ClassQueue, 30, func() Method { return &QueuePurge{} })
	register(ClassQueue, 31, func() Method { return &QueuePurgeOk{} })
	register(ClassQueue, 40, func() Method { return &QueueDelete{} })
	register(ClassQueue, 41, func() Method { return &QueueDeleteOk{} })
	register(ClassQueue, 50, func() Method { return &QueueUnbind{} })
	register(ClassQueue, 51, func() Method { return &QueueUnbindOk{} })

	register(ClassBasic, 10, func() Method { return &BasicQos{} })
	register(ClassBasic, 11, func() Method { return &BasicQosOk{} })
	register(ClassBasic, 20, func() Method { return &BasicConsume{} })
	register(ClassBasic, 21, func() Method { return &BasicConsumeOk{} })
	register(ClassBasic, 30, func() Method { return &BasicCancel{} })
	register(ClassBasic, 31, func() Method { return &BasicCancelOk{} })
	register(ClassBasic, 40, func() Method { return &BasicPublish{} })
	register(ClassBasic, 50, func() Method { return &BasicReturn{} })
	register(ClassBasic, 60, func() Method { return &BasicDeliver{} })
	register(ClassBasic, 70, func() Method { return &BasicGet{} })
	register(ClassBasic, 71, func() Method { return &BasicGetOk{} })
	register(ClassBasic, 72, func() Method { return &BasicGetEmpty{} })
	register(ClassBasic, 80, func() Method { return &BasicAck{} })
	register(ClassBasic, 90, func() Method { return &BasicReject{} })
	register(ClassBasic, 100, func() Method { return &BasicRecover{} })
	register(ClassBasic, 101, func() Method { return &BasicRecoverOk{} })
	register(ClassBasic, 120, func() Method { return &BasicNack{} })

	register(ClassTx, 10, func() Method { return &TxSelect{} })
	register(ClassTx, 11, func() Method { return &TxSelectOk{} })
	register(ClassTx, 20, func() Method { return &TxCommit{} })
	register(ClassTx, 21, func() Method { return &TxCommitOk{} })
	register(ClassTx, 30, func() Method { return &TxRollback{} })
	register(ClassTx, 31, func() Method { return &TxRollbackOk{} })
}

// ---- Connection (10) ----

type ConnectionStart struct {
	VersionMajor     uint8
	VersionMinor     uint8
	ServerProperties *Table
	Mechanisms       string
	Locales          string
}

func (m *ConnectionStart) ClassID() uint16    { return ClassConnection }
func (m *ConnectionStart) MethodID() uint16   { return 10 }
func (m *ConnectionStart) MethodName() string { return "connection.start" }
func (m *ConnectionStart) Encode(w *Writer) error {
	w.WriteOctet(m.VersionMajor)
	w.WriteOctet(m.VersionMinor)
	if m.ServerProperties == nil {
		m.ServerProperties = NewTable()
	}
	if err := w.WriteTable(m.ServerProperties); err != nil {
		return err
	}
	if err := w.WriteLongString(m.Mechanisms); err != nil {
		return err
	}
	return w.WriteLongString(m.Locales)
}
func (m *ConnectionStart) Decode(r *Reader) error {
	var err error
	if m.VersionMajor, err = r.ReadOctet(); err != nil {
		return err
	}
	if m.VersionMinor, err = r.ReadOctet(); err != nil {
		return err
	}
	if m.ServerProperties, err = r.ReadTable(); err != nil {
		return err
	}
	if m.Mechanisms, err = r.ReadLongString(); err != nil {
		return err
	}
	m.Locales, err = r.ReadLongString()
	return err
}

type ConnectionStartOk struct {
	ClientProperties *Table
	Mechanism        string
	Response         string
	Locale           string
}

func (m *ConnectionStartOk) ClassID() uint16    { return ClassConnection }
func (m *ConnectionStartOk) MethodID() uint16   { return 11 }
func (m *ConnectionStartOk) MethodName() string { return "connection.start-ok" }
func (m *ConnectionStartOk) Encode(w *Writer) error {
	if m.ClientProperties == nil {
		m.ClientProperties = NewTable()
	}
	if err := w.WriteTable(m.ClientProperties); err != nil {
		return err
	}
	if err := w.WriteShortString(m.Mechanism); err != nil {
		return err
	}
	if err := w.WriteLongString(m.Response); err != nil {
		return err
	}
	return w.WriteShortString(m.Locale)
}
func (m *ConnectionStartOk) Decode(r *Reader) error {
	var err error
	if m.ClientProperties, err = r.ReadTable(); err != nil {
		return err
	}
	if m.Mechanism, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.Response, err = r.ReadLongString(); err != nil {
		return err
	}
	m.Locale, err = r.ReadShortString()
	return err
}

type ConnectionSecure struct {
	Challenge string
}

func (m *ConnectionSecure) ClassID() uint16        { return ClassConnection }
func (m *ConnectionSecure) MethodID() uint16       { return 20 }
func (m *ConnectionSecure) MethodName() string     { return "connection.secure" }
func (m *ConnectionSecure) Encode(w *Writer) error { return w.WriteLongString(m.Challenge) }
func (m *ConnectionSecure) Decode(r *Reader) error {
	var err error
	m.Challenge, err = r.ReadLongString()
	return err
}

type ConnectionSecureOk struct {
	Response string
}

func (m *ConnectionSecureOk) ClassID() uint16        { return ClassConnection }
func (m *ConnectionSecureOk) MethodID() uint16       { return 21 }
func (m *ConnectionSecureOk) MethodName() string     { return "connection.secure-ok" }
func (m *ConnectionSecureOk) Encode(w *Writer) error { return w.WriteLongString(m.Response) }
func (m *ConnectionSecureOk) Decode(r *Reader) error {
	var err error
	m.Response, err = r.ReadLongString()
	return err
}

type ConnectionTune struct {
	ChannelMax uint16
	FrameMax   uint32
	Heartbeat  uint16
}

func (m *ConnectionTune) ClassID() uint16    { return ClassConnection }
func (m *ConnectionTune) MethodID() uint16   { return 30 }
func (m *ConnectionTune) MethodName() string { return "connection.tune" }
func (m *ConnectionTune) Encode(w *Writer) error {
	w.WriteShort(m.ChannelMax)
	w.WriteLong(m.FrameMax)
	w.WriteShort(m.Heartbeat)
	return nil
}
func (m *ConnectionTune) Decode(r *Reader) error {
	var err error
	if m.ChannelMax, err = r.ReadShort(); err != nil {
		return err
	}
	if m.FrameMax, err = r.ReadLong(); err != nil {
		return err
	}
	m.Heartbeat, err = r.ReadShort()
	return err
}

type ConnectionTuneOk struct {
	ChannelMax uint16
	FrameMax   uint32
	Heartbeat  uint16
}

func (m *ConnectionTuneOk) ClassID() uint16    { return ClassConnection }
func (m *ConnectionTuneOk) MethodID() uint16   { return 31 }
func (m *ConnectionTuneOk) MethodName() string { return "connection.tune-ok" }
func (m *ConnectionTuneOk) Encode(w *Writer) error {
	w.WriteShort(m.ChannelMax)
	w.WriteLong(m.FrameMax)
	w.WriteShort(m.Heartbeat)
	return nil
}
func (m *ConnectionTuneOk) Decode(r *Reader) error {
	var err error
	if m.ChannelMax, err = r.ReadShort(); err != nil {
		return err
	}
	if m.FrameMax, err = r.ReadLong(); err != nil {
		return err
	}
	m.Heartbeat, err = r.ReadShort()
	return err
}

type ConnectionOpen struct {
	VirtualHost string
}

func (m *ConnectionOpen) ClassID() uint16    { return ClassConnection }
func (m *ConnectionOpen) MethodID() uint16   { return 40 }
func (m *ConnectionOpen) MethodName() string { return "connection.open" }
func (m *ConnectionOpen) Encode(w *Writer) error {
	if err := w.WriteShortString(m.VirtualHost); err != nil {
		return err
	}
	if err := w.WriteShortString(""); err != nil { // reserved capabilities
		return err
	}
	w.WriteBit(false) // reserved insist
	return nil
}
func (m *ConnectionOpen) Decode(r *Reader) error {
	var err error
	if m.VirtualHost, err = r.ReadShortString(); err != nil {
		return err
	}
	if _, err = r.ReadShortString(); err != nil {
		return err
	}
	_, err = r.ReadBit()
	return err
}

type ConnectionOpenOk struct{}

func (m *ConnectionOpenOk) ClassID() uint16    { return ClassConnection }
func (m *ConnectionOpenOk) MethodID() uint16   { return 41 }
func (m *ConnectionOpenOk) MethodName() string { return "connection.open-ok" }
func (m *ConnectionOpenOk) Encode(w *Writer) error {
	return w.WriteShortString("") // reserved known-hosts
}
func (m *ConnectionOpenOk) Decode(r *Reader) error {
	_, err := r.ReadShortString()
	return err
}

type ConnectionClose struct {
	ReplyCode uint16
	ReplyText string
	ClassId   uint16
	MethodId  uint16
}

func (m *ConnectionClose) ClassID() uint16    { return ClassConnection }
func (m *ConnectionClose) MethodID() uint16   { return 50 }
func (m *ConnectionClose) MethodName() string { return "connection.close" }
func (m *ConnectionClose) Encode(w *Writer) error {
	w.WriteShort(m.ReplyCode)
	if err := w.WriteShortString(m.ReplyText); err != nil {
		return err
	}
	w.WriteShort(m.ClassId)
	w.WriteShort(m.MethodId)
	return nil
}
func (m *ConnectionClose) Decode(r *Reader) error {
	var err error
	if m.ReplyCode, err = r.ReadShort(); err != nil {
		return err
	}
	if m.ReplyText, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.ClassId, err = r.ReadShort(); err != nil {
		return err
	}
	m.MethodId, err = r.ReadShort()
	return err
}

type ConnectionCloseOk struct{}

func (m *ConnectionCloseOk) ClassID() uint16        { return ClassConnection }
func (m *ConnectionCloseOk) MethodID() uint16       { return 51 }
func (m *ConnectionCloseOk) MethodName() string     { return "connection.close-ok" }
func (m *ConnectionCloseOk) Encode(w *Writer) error { return nil }
func (m *ConnectionCloseOk) Decode(r *Reader) error { return nil }

// ---- Channel (20) ----

type ChannelOpen struct{}

func (m *ChannelOpen) ClassID() uint16        { return ClassChannel }
func (m *ChannelOpen) MethodID() uint16       { return 10 }
func (m *ChannelOpen) MethodName() string     { return "channel.open" }
func (m *ChannelOpen) Encode(w *Writer) error { return w.WriteShortString("") }
func (m *ChannelOpen) Decode(r *Reader) error {
	_, err := r.ReadShortString()
	return err
}

type ChannelOpenOk struct{}

func (m *ChannelOpenOk) ClassID() uint16        { return ClassChannel }
func (m *ChannelOpenOk) MethodID() uint16       { return 11 }
func (m *ChannelOpenOk) MethodName() string     { return "channel.open-ok" }
func (m *ChannelOpenOk) Encode(w *Writer) error { return w.WriteLongString("") }
func (m *ChannelOpenOk) Decode(r *Reader) error {
	_, err := r.ReadLongString()
	return err
}

type ChannelFlow struct {
	Active bool
}

func (m *ChannelFlow) ClassID() uint16    { return ClassChannel }
func (m *ChannelFlow) MethodID() uint16   { return 20 }
func (m *ChannelFlow) MethodName() string { return "channel.flow" }
func (m *ChannelFlow) Encode(w *Writer) error {
	w.WriteBit(m.Active)
	return nil
}
func (m *ChannelFlow) Decode(r *Reader) error {
	var err error
	m.Active, err = r.ReadBit()
	return err
}

type ChannelFlowOk struct {
	Active bool
}

func (m *ChannelFlowOk) ClassID() uint16    { return ClassChannel }
func (m *ChannelFlowOk) MethodID() uint16   { return 21 }
func (m *ChannelFlowOk) MethodName() string { return "channel.flow-ok" }
func (m *ChannelFlowOk) Encode(w *Writer) error {
	w.WriteBit(m.Active)
	return nil
}
func (m *ChannelFlowOk) Decode(r *Reader) error {
	var err error
	m.Active, err = r.ReadBit()
	return err
}

type ChannelClose struct {
	ReplyCode uint16
	ReplyText string
	ClassId   uint16
	MethodId  uint16
}

func (m *ChannelClose) ClassID() uint16    { return ClassChannel }
func (m *ChannelClose) MethodID() uint16   { return 40 }
func (m *ChannelClose) MethodName() string { return "channel.close" }
func (m *ChannelClose) Encode(w *Writer) error {
	w.WriteShort(m.ReplyCode)
	if err := w.WriteShortString(m.ReplyText); err != nil {
		return err
	}
	w.WriteShort(m.ClassId)
	w.WriteShort(m.MethodId)
	return nil
}
func (m *ChannelClose) Decode(r *Reader) error {
	var err error
	if m.ReplyCode, err = r.ReadShort(); err != nil {
		return err
	}
	if m.ReplyText, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.ClassId, err = r.ReadShort(); err != nil {
		return err
	}
	m.MethodId, err = r.ReadShort()
	return err
}

type ChannelCloseOk struct{}

func (m *ChannelCloseOk) ClassID() uint16        { return ClassChannel }
func (m *ChannelCloseOk) MethodID() uint16       { return 41 }
func (m *ChannelCloseOk) MethodName() string     { return "channel.close-ok" }
func (m *ChannelCloseOk) Encode(w *Writer) error { return nil }
func (m *ChannelCloseOk) Decode(r *Reader) error { return nil }

// ---- Exchange (40) ----

type ExchangeDeclare struct {
	Exchange   string
	Type       string
	Passive    bool
	Durable    bool
	AutoDelete bool
	Internal   bool
	NoWait     bool
	Arguments  *Table
}

func (m *ExchangeDeclare) ClassID() uint16    { return ClassExchange }
func (m *ExchangeDeclare) MethodID() uint16   { return 10 }
func (m *ExchangeDeclare) MethodName() string { return "exchange.declare" }
func (m *ExchangeDeclare) Encode(w *Writer) error {
	w.WriteShort(0) // reserved-1
	if err := w.WriteShortString(m.Exchange); err != nil {
		return err
	}
	if err := w.WriteShortString(m.Type); err != nil {
		return err
	}
	w.WriteBit(m.Passive)
	w.WriteBit(m.Durable)
	w.WriteBit(m.AutoDelete)
	w.WriteBit(m.Internal)
	w.WriteBit(m.NoWait)
	if m.Arguments == nil {
		m.Arguments = NewTable()
	}
	return w.WriteTable(m.Arguments)
}
func (m *ExchangeDeclare) Decode(r *Reader) error {
	var err error
	if _, err = r.ReadShort(); err != nil {
		return err
	}
	if m.Exchange, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.Type, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.Passive, err = r.ReadBit(); err != nil {
		return err
	}
	if m.Durable, err = r.ReadBit(); err != nil {
		return err
	}
	if m.AutoDelete, err = r.ReadBit(); err != nil {
		return err
	}
	if m.Internal, err = r.ReadBit(); err != nil {
		return err
	}
	if m.NoWait, err = r.ReadBit(); err != nil {
		return err
	}
	m.Arguments, err = r.ReadTable()
	return err
}

type ExchangeDeclareOk struct{}

func (m *ExchangeDeclareOk) ClassID() uint16        { return ClassExchange }
func (m *ExchangeDeclareOk) MethodID() uint16       { return 11 }
func (m *ExchangeDeclareOk) MethodName() string     { return "exchange.declare-ok" }
func (m *ExchangeDeclareOk) Encode(w *Writer) error { return nil }
func (m *ExchangeDeclareOk) Decode(r *Reader) error { return nil }

type ExchangeDelete struct {
	Exchange string
	IfUnused bool
	NoWait   bool
}

func (m *ExchangeDelete) ClassID() uint16    { return ClassExchange }
func (m *ExchangeDelete) MethodID() uint16   { return 20 }
func (m *ExchangeDelete) MethodName() string { return "exchange.delete" }
func (m *ExchangeDelete) Encode(w *Writer) error {
	w.WriteShort(0)
	if err := w.WriteShortString(m.Exchange); err != nil {
		return err
	}
	w.WriteBit(m.IfUnused)
	w.WriteBit(m.NoWait)
	return nil
}
func (m *ExchangeDelete) Decode(r *Reader) error {
	var err error
	if _, err = r.ReadShort(); err != nil {
		return err
	}
	if m.Exchange, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.IfUnused, err = r.ReadBit(); err != nil {
		return err
	}
	m.NoWait, err = r.ReadBit()
	return err
}

type ExchangeDeleteOk struct{}

func (m *ExchangeDeleteOk) ClassID() uint16        { return ClassExchange }
func (m *ExchangeDeleteOk) MethodID() uint16       { return 21 }
func (m *ExchangeDeleteOk) MethodName() string     { return "exchange.delete-ok" }
func (m *ExchangeDeleteOk) Encode(w *Writer) error { return nil }
func (m *ExchangeDeleteOk) Decode(r *Reader) error { return nil }

// ---- Queue (50) ----

type QueueDeclare struct {
	Queue      string
	Passive    bool
	Durable    bool
	Exclusive  bool
	AutoDelete bool
	NoWait     bool
	Arguments  *Table
}

func (m *QueueDeclare) ClassID() uint16    { return ClassQueue }
func (m *QueueDeclare) MethodID() uint16   { return 10 }
func (m *QueueDeclare) MethodName() string { return "queue.declare" }
func (m *QueueDeclare) Encode(w *Writer) error {
	w.WriteShort(0)
	if err := w.WriteShortString(m.Queue); err != nil {
		return err
	}
	w.WriteBit(m.Passive)
	w.WriteBit(m.Durable)
	w.WriteBit(m.Exclusive)
	w.WriteBit(m.AutoDelete)
	w.WriteBit(m.NoWait)
	if m.Arguments == nil {
		m.Arguments = NewTable()
	}
	return w.WriteTable(m.Arguments)
}
func (m *QueueDeclare) Decode(r *Reader) error {
	var err error
	if _, err = r.ReadShort(); err != nil {
		return err
	}
	if m.Queue, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.Passive, err = r.ReadBit(); err != nil {
		return err
	}
	if m.Durable, err = r.ReadBit(); err != nil {
		return err
	}
	if m.Exclusive, err = r.ReadBit(); err != nil {
		return err
	}
	if m.AutoDelete, err = r.ReadBit(); err != nil {
		return err
	}
	if m.NoWait, err = r.ReadBit(); err != nil {
		return err
	}
	m.Arguments, err = r.ReadTable()
	return err
}

type QueueDeclareOk struct {
	Queue         string
	MessageCount  uint32
	ConsumerCount uint32
}

func (m *QueueDeclareOk) ClassID() uint16    { return ClassQueue }
func (m *QueueDeclareOk) MethodID() uint16   { return 11 }
func (m *QueueDeclareOk) MethodName() string { return "queue.declare-ok" }
func (m *QueueDeclareOk) Encode(w *Writer) error {
	if err := w.WriteShortString(m.Queue); err != nil {
		return err
	}
	w.WriteLong(m.MessageCount)
	w.WriteLong(m.ConsumerCount)
	return nil
}
func (m *QueueDeclareOk) Decode(r *Reader) error {
	var err error
	if m.Queue, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.MessageCount, err = r.ReadLong(); err != nil {
		return err
	}
	m.ConsumerCount, err = r.ReadLong()
	return err
}

type QueueBind struct {
	Queue      string
	Exchange   string
	RoutingKey string
	NoWait     bool
	Arguments  *Table
}

func (m *QueueBind) ClassID() uint16    { return ClassQueue }
func (m *QueueBind) MethodID() uint16   { return 20 }
func (m *QueueBind) MethodName() string { return "queue.bind" }
func (m *QueueBind) Encode(w *Writer) error {
	w.WriteShort(0)
	if err := w.WriteShortString(m.Queue); err != nil {
		return err
	}
	if err := w.WriteShortString(m.Exchange); err != nil {
		return err
	}
	if err := w.WriteShortString(m.RoutingKey); err != nil {
		return err
	}
	w.WriteBit(m.NoWait)
	if m.Arguments == nil {
		m.Arguments = NewTable()
	}
	return w.WriteTable(m.Arguments)
}
func (m *QueueBind) Decode(r *Reader) error {
	var err error
	if _, err = r.ReadShort(); err != nil {
		return err
	}
	if m.Queue, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.Exchange, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.RoutingKey, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.NoWait, err = r.ReadBit(); err != nil {
		return err
	}
	m.Arguments, err = r.ReadTable()
	return err
}

type QueueBindOk struct{}

func (m *QueueBindOk) ClassID() uint16        { return ClassQueue }
func (m *QueueBindOk) MethodID() uint16       { return 21 }
func (m *QueueBindOk) MethodName() string     { return "queue.bind-ok" }
func (m *QueueBindOk) Encode(w *Writer) error { return nil }
func (m *QueueBindOk) Decode(r *Reader) error { return nil }

type QueuePurge struct {
	Queue  string
	NoWait bool
}

func (m *QueuePurge) ClassID() uint16    { return ClassQueue }
func (m *QueuePurge) MethodID() uint16   { return 30 }
func (m *QueuePurge) MethodName() string { return "queue.purge" }
func (m *QueuePurge) Encode(w *Writer) error {
	w.WriteShort(0)
	if err := w.WriteShortString(m.Queue); err != nil {
		return err
	}
	w.WriteBit(m.NoWait)
	return nil
}
func (m *QueuePurge) Decode(r *Reader) error {
	var err error
	if _, err = r.ReadShort(); err != nil {
		return err
	}
	if m.Queue, err = r.ReadShortString(); err != nil {
		return err
	}
	m.NoWait, err = r.ReadBit()
	return err
}

type QueuePurgeOk struct {
	MessageCount uint32
}

func (m *QueuePurgeOk) ClassID() uint16    { return ClassQueue }
func (m *QueuePurgeOk) MethodID() uint16   { return 31 }
func (m *QueuePurgeOk) MethodName() string { return "queue.purge-ok" }
func (m *QueuePurgeOk) Encode(w *Writer) error {
	w.WriteLong(m.MessageCount)
	return nil
}
func (m *QueuePurgeOk) Decode(r *Reader) error {
	var err error
	m.MessageCount, err = r.ReadLong()
	return err
}

type QueueDelete struct {
	Queue    string
	IfUnused bool
	IfEmpty  bool
	NoWait   bool
}

func (m *QueueDelete) ClassID() uint16    { return ClassQueue }
func (m *QueueDelete) MethodID() uint16   { return 40 }
func (m *QueueDelete) MethodName() string { return "queue.delete" }
func (m *QueueDelete) Encode(w *Writer) error {
	w.WriteShort(0)
	if err := w.WriteShortString(m.Queue); err != nil {
		return err
	}
	w.WriteBit(m.IfUnused)
	w.WriteBit(m.IfEmpty)
	w.WriteBit(m.NoWait)
	return nil
}
func (m *QueueDelete) Decode(r *Reader) error {
	var err error
	if _, err = r.ReadShort(); err != nil {
		return err
	}
	if m.Queue, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.IfUnused, err = r.ReadBit(); err != nil {
		return err
	}
	if m.IfEmpty, err = r.ReadBit(); err != nil {
		return err
	}
	m.NoWait, err = r.ReadBit()
	return err
}

type QueueDeleteOk struct {
	MessageCount uint32
}

func (m *QueueDeleteOk) ClassID() uint16    { return ClassQueue }
func (m *QueueDeleteOk) MethodID() uint16   { return 41 }
func (m *QueueDeleteOk) MethodName() string { return "queue.delete-ok" }
func (m *QueueDeleteOk) Encode(w *Writer) error {
	w.WriteLong(m.MessageCount)
	return nil
}
func (m *QueueDeleteOk) Decode(r *Reader) error {
	var err error
	m.MessageCount, err = r.ReadLong()
	return err
}

type QueueUnbind struct {
	Queue      string
	Exchange   string
	RoutingKey string
	Arguments  *Table
}

func (m *QueueUnbind) ClassID() uint16    { return ClassQueue }
func (m *QueueUnbind) MethodID() uint16   { return 50 }
func (m *QueueUnbind) MethodName() string { return "queue.unbind" }
func (m *QueueUnbind) Encode(w *Writer) error {
	w.WriteShort(0)
	if err := w.WriteShortString(m.Queue); err != nil {
		return err
	}
	if err := w.WriteShortString(m.Exchange); err != nil {
		return err
	}
	if err := w.WriteShortString(m.RoutingKey); err != nil {
		return err
	}
	if m.Arguments == nil {
		m.Arguments = NewTable()
	}
	return w.WriteTable(m.Arguments)
}
func (m *QueueUnbind) Decode(r *Reader) error {
	var err error
	if _, err = r.ReadShort(); err != nil {
		return err
	}
	if m.Queue, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.Exchange, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.RoutingKey, err = r.ReadShortString(); err != nil {
		return err
	}
	m.Arguments, err = r.ReadTable()
	return err
}

type QueueUnbindOk struct{}

func (m *QueueUnbindOk) ClassID() uint16        { return ClassQueue }
func (m *QueueUnbindOk) MethodID() uint16       { return 51 }
func (m *QueueUnbindOk) MethodName() string     { return "queue.unbind-ok" }
func (m *QueueUnbindOk) Encode(w *Writer) error { return nil }
func (m *QueueUnbindOk) Decode(r *Reader) error { return nil }

// ---- Basic (60) ----

type BasicQos struct {
	PrefetchSize  uint32
	PrefetchCount uint16
	Global        bool
}

func (m *BasicQos) ClassID() uint16    { return ClassBasic }
func (m *BasicQos) MethodID() uint16   { return 10 }
func (m *BasicQos) MethodName() string { return "basic.qos" }
func (m *BasicQos) Encode(w *Writer) error {
	w.WriteLong(m.PrefetchSize)
	w.WriteShort(m.PrefetchCount)
	w.WriteBit(m.Global)
	return nil
}
func (m *BasicQos) Decode(r *Reader) error {
	var err error
	if m.PrefetchSize, err = r.ReadLong(); err != nil {
		return err
	}
	if m.PrefetchCount, err = r.ReadShort(); err != nil {
		return err
	}
	m.Global, err = r.ReadBit()
	return err
}

type BasicQosOk struct{}

func (m *BasicQosOk) ClassID() uint16        { return ClassBasic }
func (m *BasicQosOk) MethodID() uint16       { return 11 }
func (m *BasicQosOk) MethodName() string     { return "basic.qos-ok" }
func (m *BasicQosOk) Encode(w *Writer) error { return nil }
func (m *BasicQosOk) Decode(r *Reader) error { return nil }

type BasicConsume struct {
	Queue       string
	ConsumerTag string
	NoLocal     bool
	NoAck       bool
	Exclusive   bool
	NoWait      bool
	Arguments   *Table
}

func (m *BasicConsume) ClassID() uint16    { return ClassBasic }
func (m *BasicConsume) MethodID() uint16   { return 20 }
func (m *BasicConsume) MethodName() string { return "basic.consume" }
func (m *BasicConsume) Encode(w *Writer) error {
	w.WriteShort(0)
	if err := w.WriteShortString(m.Queue); err != nil {
		return err
	}
	if err := w.WriteShortString(m.ConsumerTag); err != nil {
		return err
	}
	w.WriteBit(m.NoLocal)
	w.WriteBit(m.NoAck)
	w.WriteBit(m.Exclusive)
	w.WriteBit(m.NoWait)
	if m.Arguments == nil {
		m.Arguments = NewTable()
	}
	return w.WriteTable(m.Arguments)
}
func (m *BasicConsume) Decode(r *Reader) error {
	var err error
	if _, err = r.ReadShort(); err != nil {
		return err
	}
	if m.Queue, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.ConsumerTag, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.NoLocal, err = r.ReadBit(); err != nil {
		return err
	}
	if m.NoAck, err = r.ReadBit(); err != nil {
		return err
	}
	if m.Exclusive, err = r.ReadBit(); err != nil {
		return err
	}
	if m.NoWait, err = r.ReadBit(); err != nil {
		return err
	}
	m.Arguments, err = r.ReadTable()
	return err
}

type BasicConsumeOk struct {
	ConsumerTag string
}

func (m *BasicConsumeOk) ClassID() uint16    { return ClassBasic }
func (m *BasicConsumeOk) MethodID() uint16   { return 21 }
func (m *BasicConsumeOk) MethodName() string { return "basic.consume-ok" }
func (m *BasicConsumeOk) Encode(w *Writer) error {
	return w.WriteShortString(m.ConsumerTag)
}
func (m *BasicConsumeOk) Decode(r *Reader) error {
	var err error
	m.ConsumerTag, err = r.ReadShortString()
	return err
}

type BasicCancel struct {
	ConsumerTag string
	NoWait      bool
}

func (m *BasicCancel) ClassID() uint16    { return ClassBasic }
func (m *BasicCancel) MethodID() uint16   { return 30 }
func (m *BasicCancel) MethodName() string { return "basic.cancel" }
func (m *BasicCancel) Encode(w *Writer) error {
	if err := w.WriteShortString(m.ConsumerTag); err != nil {
		return err
	}
	w.WriteBit(m.NoWait)
	return nil
}
func (m *BasicCancel) Decode(r *Reader) error {
	var err error
	if m.ConsumerTag, err = r.ReadShortString(); err != nil {
		return err
	}
	m.NoWait, err = r.ReadBit()
	return err
}

type BasicCancelOk struct {
	ConsumerTag string
}

func (m *BasicCancelOk) ClassID() uint16    { return ClassBasic }
func (m *BasicCancelOk) MethodID() uint16   { return 31 }
func (m *BasicCancelOk) MethodName() string { return "basic.cancel-ok" }
func (m *BasicCancelOk) Encode(w *Writer) error {
	return w.WriteShortString(m.ConsumerTag)
}
func (m *BasicCancelOk) Decode(r *Reader) error {
	var err error
	m.ConsumerTag, err = r.ReadShortString()
	return err
}

type BasicPublish struct {
	Exchange   string
	RoutingKey string
	Mandatory  bool
	Immediate  bool
}

func (m *BasicPublish) ClassID() uint16    { return ClassBasic }
func (m *BasicPublish) MethodID() uint16   { return 40 }
func (m *BasicPublish) MethodName() string { return "basic.publish" }
func (m *BasicPublish) Encode(w *Writer) error {
	w.WriteShort(0)
	if err := w.WriteShortString(m.Exchange); err != nil {
		return err
	}
	if err := w.WriteShortString(m.RoutingKey); err != nil {
		return err
	}
	w.WriteBit(m.Mandatory)
	w.WriteBit(m.Immediate)
	return nil
}
func (m *BasicPublish) Decode(r *Reader) error {
	var err error
	if _, err = r.ReadShort(); err != nil {
		return err
	}
	if m.Exchange, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.RoutingKey, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.Mandatory, err = r.ReadBit(); err != nil {
		return err
	}
	m.Immediate, err = r.ReadBit()
	return err
}

type BasicReturn struct {
	ReplyCode  uint16
	ReplyText  string
	Exchange   string
	RoutingKey string
}

func (m *BasicReturn) ClassID() uint16    { return ClassBasic }
func (m *BasicReturn) MethodID() uint16   { return 50 }
func (m *BasicReturn) MethodName() string { return "basic.return" }
func (m *BasicReturn) Encode(w *Writer) error {
	w.WriteShort(m.ReplyCode)
	if err := w.WriteShortString(m.ReplyText); err != nil {
		return err
	}
	if err := w.WriteShortString(m.Exchange); err != nil {
		return err
	}
	return w.WriteShortString(m.RoutingKey)
}
func (m *BasicReturn) Decode(r *Reader) error {
	var err error
	if m.ReplyCode, err = r.ReadShort(); err != nil {
		return err
	}
	if m.ReplyText, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.Exchange, err = r.ReadShortString(); err != nil {
		return err
	}
	m.RoutingKey, err = r.ReadShortString()
	return err
}

type BasicDeliver struct {
	ConsumerTag string
	DeliveryTag uint64
	Redelivered bool
	Exchange    string
	RoutingKey  string
}

func (m *BasicDeliver) ClassID() uint16    { return ClassBasic }
func (m *BasicDeliver) MethodID() uint16   { return 60 }
func (m *BasicDeliver) MethodName() string { return "basic.deliver" }
func (m *BasicDeliver) Encode(w *Writer) error {
	if err := w.WriteShortString(m.ConsumerTag); err != nil {
		return err
	}
	w.WriteLongLong(m.DeliveryTag)
	w.WriteBit(m.Redelivered)
	if err := w.WriteShortString(m.Exchange); err != nil {
		return err
	}
	return w.WriteShortString(m.RoutingKey)
}
func (m *BasicDeliver) Decode(r *Reader) error {
	var err error
	if m.ConsumerTag, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.DeliveryTag, err = r.ReadLongLong(); err != nil {
		return err
	}
	if m.Redelivered, err = r.ReadBit(); err != nil {
		return err
	}
	if m.Exchange, err = r.ReadShortString(); err != nil {
		return err
	}
	m.RoutingKey, err = r.ReadShortString()
	return err
}

type BasicGet struct {
	Queue string
	NoAck bool
}

func (m *BasicGet) ClassID() uint16    { return ClassBasic }
func (m *BasicGet) MethodID() uint16   { return 70 }
func (m *BasicGet) MethodName() string { return "basic.get" }
func (m *BasicGet) Encode(w *Writer) error {
	w.WriteShort(0)
	if err := w.WriteShortString(m.Queue); err != nil {
		return err
	}
	w.WriteBit(m.NoAck)
	return nil
}
func (m *BasicGet) Decode(r *Reader) error {
	var err error
	if _, err = r.ReadShort(); err != nil {
		return err
	}
	if m.Queue, err = r.ReadShortString(); err != nil {
		return err
	}
	m.NoAck, err = r.ReadBit()
	return err
}

type BasicGetOk struct {
	DeliveryTag  uint64
	Redelivered  bool
	Exchange     string
	RoutingKey   string
	MessageCount uint32
}

func (m *BasicGetOk) ClassID() uint16    { return ClassBasic }
func (m *BasicGetOk) MethodID() uint16   { return 71 }
func (m *BasicGetOk) MethodName() string { return "basic.get-ok" }
func (m *BasicGetOk) Encode(w *Writer) error {
	w.WriteLongLong(m.DeliveryTag)
	w.WriteBit(m.Redelivered)
	if err := w.WriteShortString(m.Exchange); err != nil {
		return err
	}
	if err := w.WriteShortString(m.RoutingKey); err != nil {
		return err
	}
	w.WriteLong(m.MessageCount)
	return nil
}
func (m *BasicGetOk) Decode(r *Reader) error {
	var err error
	if m.DeliveryTag, err = r.ReadLongLong(); err != nil {
		return err
	}
	if m.Redelivered, err = r.ReadBit(); err != nil {
		return err
	}
	if m.Exchange, err = r.ReadShortString(); err != nil {
		return err
	}
	if m.RoutingKey, err = r.ReadShortString(); err != nil {
		return err
	}
	m.MessageCount, err = r.ReadLong()
	return err
}

type BasicGetEmpty struct{}

func (m *BasicGetEmpty) ClassID() uint16        { return ClassBasic }
func (m *BasicGetEmpty) MethodID() uint16       { return 72 }
func (m *BasicGetEmpty) MethodName() string     { return "basic.get-empty" }
func (m *BasicGetEmpty) Encode(w *Writer) error { return w.WriteShortString("") }
func (m *BasicGetEmpty) Decode(r *Reader) error {
	_, err := r.ReadShortString()
	return err
}

// BasicAck's field order (delivery-tag longlong, then multiple bit) is
// fixed by the AMQP 0-9-1 spec; see methods_test.go's ack field-order
// regression test.
type BasicAck struct {
	DeliveryTag uint64
	Multiple    bool
}

func (m *BasicAck) ClassID() uint16    { return ClassBasic }
func (m *BasicAck) MethodID() uint16   { return 80 }
func (m *BasicAck) MethodName() string { return "basic.ack" }
func (m *BasicAck) Encode(w *Writer) error {
	w.WriteLongLong(m.DeliveryTag)
	w.WriteBit(m.Multiple)
	return nil
}
func (m *BasicAck) Decode(r *Reader) error {
	var err error
	if m.DeliveryTag, err = r.ReadLongLong(); err != nil {
		return err
	}
	m.Multiple, err = r.ReadBit()
	return err
}

type BasicReject struct {
	DeliveryTag uint64
	Requeue     bool
}

func (m *BasicReject) ClassID() uint16    { return ClassBasic }
func (m *BasicReject) MethodID() uint16   { return 90 }
func (m *BasicReject) MethodName() string { return "basic.reject" }
func (m *BasicReject) Encode(w *Writer) error {
	w.WriteLongLong(m.DeliveryTag)
	w.WriteBit(m.Requeue)
	return nil
}
func (m *BasicReject) Decode(r *Reader) error {
	var err error
	if m.DeliveryTag, err = r.ReadLongLong(); err != nil {
		return err
	}
	m.Requeue, err = r.ReadBit()
	return err
}

type BasicRecover struct {
	Requeue bool
}

func (m *BasicRecover) ClassID() uint16    { return ClassBasic }
func (m *BasicRecover) MethodID() uint16   { return 100 }
func (m *BasicRecover) MethodName() string { return "basic.recover" }
func (m *BasicRecover) Encode(w *Writer) error {
	w.WriteBit(m.Requeue)
	return nil
}
func (m *BasicRecover) Decode(r *Reader) error {
	var err error
	m.Requeue, err = r.ReadBit()
	return err
}

type BasicRecoverOk struct{}

func (m *BasicRecoverOk) ClassID() uint16        { return ClassBasic }
func (m *BasicRecoverOk) MethodID() uint16       { return 101 }
func (m *BasicRecoverOk) MethodName() string     { return "basic.recover-ok" }
func (m *BasicRecoverOk) Encode(w *Writer) error { return nil }
func (m *BasicRecoverOk) Decode(r *Reader) error { return nil }

type BasicNack struct {
	DeliveryTag uint64
	Multiple    bool
	Requeue     bool
}

func (m *BasicNack) ClassID() uint16    { return ClassBasic }
func (m *BasicNack) MethodID() uint16   { return 120 }
func (m *BasicNack) MethodName() string { return "basic.nack" }
func (m *BasicNack) Encode(w *Writer) error {
	w.WriteLongLong(m.DeliveryTag)
	w.WriteBit(m.Multiple)
	w.WriteBit(m.Requeue)
	return nil
}
func (m *BasicNack) Decode(r *Reader) error {
	var err error
	if m.DeliveryTag, err = r.ReadLongLong(); err != nil {
		return err
	}
	if m.Multiple, err = r.ReadBit(); err != nil {
		return err
	}
	m.Requeue, err = r.ReadBit()
	return err
}

// ---- Tx (90) ----

type TxSelect struct{}

func (m *TxSelect) ClassID() uint16        { return ClassTx }
func (m *TxSelect) MethodID() uint16       { return 10 }
func (m *TxSelect) MethodName() string     { return "tx.select" }
func (m *TxSelect) Encode(w *Writer) error { return nil }
func (m *TxSelect) Decode(r *Reader) error { return nil }

type TxSelectOk struct{}

func (m *TxSelectOk) ClassID() uint16        { return ClassTx }
func (m *TxSelectOk) MethodID() uint16       { return 11 }
func (m *TxSelectOk) MethodName() string     { return "tx.select-ok" }
func (m *TxSelectOk) Encode(w *Writer) error { return nil }
func (m *TxSelectOk) Decode(r *Reader) error { return nil }

type TxCommit struct{}

func (m *TxCommit) ClassID() uint16        { return ClassTx }
func (m *TxCommit) MethodID() uint16       { return 20 }
func (m *TxCommit) MethodName() string     { return "tx.commit" }
func (m *TxCommit) Encode(w *Writer) error { return nil }
func (m *TxCommit) Decode(r *Reader) error { return nil }

type TxCommitOk struct{}

func (m *TxCommitOk) ClassID() uint16        { return ClassTx }
func (m *TxCommitOk) MethodID() uint16       { return 21 }
func (m *TxCommitOk) MethodName() string     { return "tx.commit-ok" }
func (m *TxCommitOk) Encode(w *Writer) error { return nil }
func (m *TxCommitOk) Decode(r *Reader) error { return nil }

type TxRollback struct{}

func (m *TxRollback) ClassID() uint16        { return ClassTx }
func (m *TxRollback) MethodID() uint16       { return 30 }
func (m *TxRollback) MethodName() string     { return "tx.rollback" }
func (m *TxRollback) Encode(w *Writer) error { return nil }
func (m *TxRollback) Decode(r *Reader) error { return nil }

type TxRollbackOk struct{}

func (m *TxRollbackOk) ClassID() uint16        { return ClassTx }
func (m *TxRollbackOk) MethodID() uint16       { return 31 }
func (m *TxRollbackOk) MethodName() string     { return "tx.rollback-ok" }
func (m *TxRollbackOk) Encode(w *Writer) error { return nil }
func (m *TxRollbackOk) Decode(r *Reader) error { return nil }
