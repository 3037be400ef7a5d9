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

// Properties carries the optional fields of a Basic content-header, decoded
// table-driven from a 16-bit flag word rather than one struct field per
// flag bit combination (spec.md §3/§9: "no per-bitmask specialization").
// Every pointer field is nil when its flag bit is clear.
type Properties struct {
	ContentType     *string
	ContentEncoding *string
	Headers         *Table
	DeliveryMode    *uint8
	Priority        *uint8
	CorrelationId   *string
	ReplyTo         *string
	Expiration      *string
	MessageId       *string
	Timestamp       *uint64
	Type            *string
	UserId          *string
	AppId           *string
	ClusterId       *string
}

// propertyFlag is one entry of the ordered flag-bit table: bit position
// in the 16-bit flag word (bit 15 is the MSB, the first property) plus
// accessor closures so the codec loop needs no per-field switch.
type propertyFlag struct {
	bit    uint
	isSet  func(*Properties) bool
	encode func(*Writer, *Properties) error
	decode func(*Reader, *Properties) error
}

var propertyFlags = []propertyFlag{
	{15,
		func(p *Properties) bool { return p.ContentType != nil },
		func(w *Writer, p *Properties) error { return w.WriteShortString(*p.ContentType) },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadShortString()
			p.ContentType = &v
			return err
		}},
	{14,
		func(p *Properties) bool { return p.ContentEncoding != nil },
		func(w *Writer, p *Properties) error { return w.WriteShortString(*p.ContentEncoding) },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadShortString()
			p.ContentEncoding = &v
			return err
		}},
	{13,
		func(p *Properties) bool { return p.Headers != nil },
		func(w *Writer, p *Properties) error { return w.WriteTable(p.Headers) },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadTable()
			p.Headers = v
			return err
		}},
	{12,
		func(p *Properties) bool { return p.DeliveryMode != nil },
		func(w *Writer, p *Properties) error { w.WriteOctet(*p.DeliveryMode); return nil },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadOctet()
			p.DeliveryMode = &v
			return err
		}},
	{11,
		func(p *Properties) bool { return p.Priority != nil },
		func(w *Writer, p *Properties) error { w.WriteOctet(*p.Priority); return nil },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadOctet()
			p.Priority = &v
			return err
		}},
	{10,
		func(p *Properties) bool { return p.CorrelationId != nil },
		func(w *Writer, p *Properties) error { return w.WriteShortString(*p.CorrelationId) },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadShortString()
			p.CorrelationId = &v
			return err
		}},
	{9,
		func(p *Properties) bool { return p.ReplyTo != nil },
		func(w *Writer, p *Properties) error { return w.WriteShortString(*p.ReplyTo) },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadShortString()
			p.ReplyTo = &v
			return err
		}},
	{8,
		func(p *Properties) bool { return p.Expiration != nil },
		func(w *Writer, p *Properties) error { return w.WriteShortString(*p.Expiration) },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadShortString()
			p.Expiration = &v
			return err
		}},
	{7,
		func(p *Properties) bool { return p.MessageId != nil },
		func(w *Writer, p *Properties) error { return w.WriteShortString(*p.MessageId) },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadShortString()
			p.MessageId = &v
			return err
		}},
	{6,
		func(p *Properties) bool { return p.Timestamp != nil },
		func(w *Writer, p *Properties) error { w.WriteTimestamp(*p.Timestamp); return nil },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadTimestamp()
			p.Timestamp = &v
			return err
		}},
	{5,
		func(p *Properties) bool { return p.Type != nil },
		func(w *Writer, p *Properties) error { return w.WriteShortString(*p.Type) },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadShortString()
			p.Type = &v
			return err
		}},
	{4,
		func(p *Properties) bool { return p.UserId != nil },
		func(w *Writer, p *Properties) error { return w.WriteShortString(*p.UserId) },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadShortString()
			p.UserId = &v
			return err
		}},
	{3,
		func(p *Properties) bool { return p.AppId != nil },
		func(w *Writer, p *Properties) error { return w.WriteShortString(*p.AppId) },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadShortString()
			p.AppId = &v
			return err
		}},
	{2,
		func(p *Properties) bool { return p.ClusterId != nil },
		func(w *Writer, p *Properties) error { return w.WriteShortString(*p.ClusterId) },
		func(r *Reader, p *Properties) error {
			v, err := r.ReadShortString()
			p.ClusterId = &v
			return err
		}},
}

// EncodeProperties serializes the flag word followed by the present
// properties, in declaration order. The all-absent case still emits the
// two-byte flag word 0x0000 — this is the "no properties" boundary case
// from spec.md §8.
func EncodeProperties(p *Properties) ([]byte, error) {
	w := NewWriter(make([]byte, 0, 16))
	var flags uint16
	for _, pf := range propertyFlags {
		if pf.isSet(p) {
			flags |= 1 << pf.bit
		}
	}
	w.WriteShort(flags)
	for _, pf := range propertyFlags {
		if pf.isSet(p) {
			if err := pf.encode(w, p); err != nil {
				return nil, err
			}
		}
	}
	return w.Bytes(), nil
}

// DecodeProperties parses a content-header's property section.
func DecodeProperties(payload []byte) (*Properties, error) {
	r := NewReader(payload)
	flags, err := r.ReadShort()
	if err != nil {
		return nil, err
	}
	p := &Properties{}
	for _, pf := range propertyFlags {
		if flags&(1<<pf.bit) != 0 {
			if err := pf.decode(r, p); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

// ContentHeader is the frame carried between a content-bearing method
// (Basic.Publish/Return/Deliver/Get-Ok) and its body frames.
type ContentHeader struct {
	ClassID    uint16
	BodySize   uint64
	Properties *Properties
}

// EncodeContentHeader serializes a full content-header payload: class-id,
// weight (always 0), body-size, then the property section.
func EncodeContentHeader(h *ContentHeader) ([]byte, error) {
	propBytes, err := EncodeProperties(h.Properties)
	if err != nil {
		return nil, err
	}
	w := NewWriter(make([]byte, 0, 14+len(propBytes)))
	w.WriteShort(h.ClassID)
	w.WriteShort(0) // weight, always 0
	w.WriteLongLong(h.BodySize)
	w.WriteRawBytes(propBytes)
	return w.Bytes(), nil
}

// DecodeContentHeader parses a content-header frame's payload.
func DecodeContentHeader(payload []byte) (*ContentHeader, error) {
	r := NewReader(payload)
	classID, err := r.ReadShort()
	if err != nil {
		return nil, err
	}
	if _, err = r.ReadShort(); err != nil { // weight
		return nil, err
	}
	bodySize, err := r.ReadLongLong()
	if err != nil {
		return nil, err
	}
	rest, err := r.ReadRawBytes(r.Len())
	if err != nil {
		return nil, err
	}
	props, err := DecodeProperties(rest)
	if err != nil {
		return nil, err
	}
	return &ContentHeader{ClassID: classID, BodySize: bodySize, Properties: props}, nil
}
