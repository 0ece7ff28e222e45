// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cbor

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// EventType identifies the kind of an Event
type EventType int

const (
	EventBeginObject EventType = iota
	EventEndObject
	EventBeginArray
	EventEndArray
	EventName
	EventNull
	EventBool
	EventUint64
	EventInt64
	EventHalf
	EventDouble
	EventString
	EventByteString
	EventTypedArray
	EventBeginMultiDim
	EventEndMultiDim
)

func (t EventType) String() string {
	switch t {
	case EventBeginObject:
		return "BeginObject"
	case EventEndObject:
		return "EndObject"
	case EventBeginArray:
		return "BeginArray"
	case EventEndArray:
		return "EndArray"
	case EventName:
		return "Name"
	case EventNull:
		return "Null"
	case EventBool:
		return "Bool"
	case EventUint64:
		return "Uint64"
	case EventInt64:
		return "Int64"
	case EventHalf:
		return "Half"
	case EventDouble:
		return "Double"
	case EventString:
		return "String"
	case EventByteString:
		return "ByteString"
	case EventTypedArray:
		return "TypedArray"
	case EventBeginMultiDim:
		return "BeginMultiDim"
	case EventEndMultiDim:
		return "EndMultiDim"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is a self-contained copy of one visitor call. Only the fields that
// apply to Type are set
type Event struct {
	Type       EventType
	Tag        SemanticTag
	Length     uint64
	Definite   bool
	Bool       bool
	Uint64     uint64
	Int64      int64
	Half       uint16
	Double     float64
	String     string
	Bytes      []byte
	TypedArray *TypedArray
	Shape      []uint64
	// Offset is the source position just after the event's input
	Offset int64
	RawTag uint64
}

// Recorder is a Visitor that collects every event. Buffers reused by the
// parser are copied, so recorded events stay valid after parsing continues
type Recorder struct {
	Events []Event
}

func (r *Recorder) record(evt Event, ctx Context) (Action, error) {
	if ctx != nil {
		evt.Offset = ctx.Position()
		evt.RawTag = ctx.RawTag()
	}
	r.Events = append(r.Events, evt)
	return Continue, nil
}

func (r *Recorder) BeginObject(length uint64, definite bool, tag SemanticTag, ctx Context) (Action, error) {
	return r.record(
		Event{Type: EventBeginObject, Length: length, Definite: definite, Tag: tag},
		ctx,
	)
}

func (r *Recorder) EndObject(ctx Context) (Action, error) {
	return r.record(Event{Type: EventEndObject}, ctx)
}

func (r *Recorder) BeginArray(length uint64, definite bool, tag SemanticTag, ctx Context) (Action, error) {
	return r.record(
		Event{Type: EventBeginArray, Length: length, Definite: definite, Tag: tag},
		ctx,
	)
}

func (r *Recorder) EndArray(ctx Context) (Action, error) {
	return r.record(Event{Type: EventEndArray}, ctx)
}

func (r *Recorder) Name(name string, ctx Context) (Action, error) {
	return r.record(Event{Type: EventName, String: name}, ctx)
}

func (r *Recorder) NullValue(tag SemanticTag, ctx Context) (Action, error) {
	return r.record(Event{Type: EventNull, Tag: tag}, ctx)
}

func (r *Recorder) BoolValue(value bool, tag SemanticTag, ctx Context) (Action, error) {
	return r.record(Event{Type: EventBool, Bool: value, Tag: tag}, ctx)
}

func (r *Recorder) Uint64Value(value uint64, tag SemanticTag, ctx Context) (Action, error) {
	return r.record(Event{Type: EventUint64, Uint64: value, Tag: tag}, ctx)
}

func (r *Recorder) Int64Value(value int64, tag SemanticTag, ctx Context) (Action, error) {
	return r.record(Event{Type: EventInt64, Int64: value, Tag: tag}, ctx)
}

func (r *Recorder) HalfValue(bits uint16, tag SemanticTag, ctx Context) (Action, error) {
	return r.record(Event{Type: EventHalf, Half: bits, Tag: tag}, ctx)
}

func (r *Recorder) DoubleValue(value float64, tag SemanticTag, ctx Context) (Action, error) {
	return r.record(Event{Type: EventDouble, Double: value, Tag: tag}, ctx)
}

func (r *Recorder) StringValue(value string, tag SemanticTag, ctx Context) (Action, error) {
	return r.record(Event{Type: EventString, String: value, Tag: tag}, ctx)
}

func (r *Recorder) ByteStringValue(value []byte, tag SemanticTag, ctx Context) (Action, error) {
	return r.record(
		Event{Type: EventByteString, Bytes: append([]byte{}, value...), Tag: tag},
		ctx,
	)
}

func (r *Recorder) TypedArray(arr *TypedArray, tag SemanticTag, ctx Context) (Action, error) {
	tmp := &TypedArray{}
	if err := copier.CopyWithOption(tmp, arr, copier.Option{DeepCopy: true}); err != nil {
		return Stop, fmt.Errorf("copy typed array: %w", err)
	}
	return r.record(Event{Type: EventTypedArray, TypedArray: tmp, Tag: tag}, ctx)
}

func (r *Recorder) BeginMultiDim(shape []uint64, tag SemanticTag, ctx Context) (Action, error) {
	return r.record(
		Event{Type: EventBeginMultiDim, Shape: append([]uint64{}, shape...), Tag: tag},
		ctx,
	)
}

func (r *Recorder) EndMultiDim(ctx Context) (Action, error) {
	return r.record(Event{Type: EventEndMultiDim}, ctx)
}

func (r *Recorder) Flush() error {
	return nil
}
