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

// Action tells the parser whether to keep going after delivering an event
type Action int

const (
	Continue Action = iota
	Stop
)

// Context describes the parser state at the time of an event
type Context interface {
	// Position returns the number of source bytes consumed so far
	Position() int64
	// RawTag returns the tag number that selected the current value's
	// interpretation, or 0 when the value was untagged
	RawTag() uint64
}

// Visitor receives decoded events. Every method returns Stop to end parsing
// early or an error to fail it. Slices passed to a visitor are owned by the
// parser and are only valid for the duration of the call
type Visitor interface {
	BeginObject(length uint64, definite bool, tag SemanticTag, ctx Context) (Action, error)
	EndObject(ctx Context) (Action, error)
	BeginArray(length uint64, definite bool, tag SemanticTag, ctx Context) (Action, error)
	EndArray(ctx Context) (Action, error)
	Name(name string, ctx Context) (Action, error)
	NullValue(tag SemanticTag, ctx Context) (Action, error)
	BoolValue(value bool, tag SemanticTag, ctx Context) (Action, error)
	Uint64Value(value uint64, tag SemanticTag, ctx Context) (Action, error)
	Int64Value(value int64, tag SemanticTag, ctx Context) (Action, error)
	HalfValue(bits uint16, tag SemanticTag, ctx Context) (Action, error)
	DoubleValue(value float64, tag SemanticTag, ctx Context) (Action, error)
	StringValue(value string, tag SemanticTag, ctx Context) (Action, error)
	ByteStringValue(value []byte, tag SemanticTag, ctx Context) (Action, error)
	TypedArray(arr *TypedArray, tag SemanticTag, ctx Context) (Action, error)
	BeginMultiDim(shape []uint64, tag SemanticTag, ctx Context) (Action, error)
	EndMultiDim(ctx Context) (Action, error)
	// Flush is called once after the top-level item is complete
	Flush() error
}

// DefaultVisitor accepts every event and continues. Embed it to implement
// only the events you care about
type DefaultVisitor struct{}

func (DefaultVisitor) BeginObject(uint64, bool, SemanticTag, Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) EndObject(Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) BeginArray(uint64, bool, SemanticTag, Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) EndArray(Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) Name(string, Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) NullValue(SemanticTag, Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) BoolValue(bool, SemanticTag, Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) Uint64Value(uint64, SemanticTag, Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) Int64Value(int64, SemanticTag, Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) HalfValue(uint16, SemanticTag, Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) DoubleValue(float64, SemanticTag, Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) StringValue(string, SemanticTag, Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) ByteStringValue([]byte, SemanticTag, Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) TypedArray(*TypedArray, SemanticTag, Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) BeginMultiDim([]uint64, SemanticTag, Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) EndMultiDim(Context) (Action, error) {
	return Continue, nil
}

func (DefaultVisitor) Flush() error {
	return nil
}
