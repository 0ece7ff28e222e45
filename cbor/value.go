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
	"github.com/x448/float16"
)

type valueFrame struct {
	isMap bool
	list  []any
	items map[string]any
	key   string
}

// ValueBuilder is a Visitor that assembles the decoded item into plain Go
// values: nil, bool, uint64, int64, float64, string, []byte, []any and
// map[string]any. Bignums, decimal fractions and bigfloats are kept as their
// text form. Typed arrays become []any of their widened elements and
// multi-dimensional arrays become []any{shape, data}
type ValueBuilder struct {
	stack []valueFrame
	value any
}

// Value returns the assembled value
func (b *ValueBuilder) Value() any {
	return b.value
}

// Reset clears the builder so it can be reused for another item
func (b *ValueBuilder) Reset() {
	b.stack = b.stack[:0]
	b.value = nil
}

func (b *ValueBuilder) add(v any) (Action, error) {
	if len(b.stack) == 0 {
		b.value = v
		return Continue, nil
	}
	top := &b.stack[len(b.stack)-1]
	if top.isMap {
		top.items[top.key] = v
	} else {
		top.list = append(top.list, v)
	}
	return Continue, nil
}

func (b *ValueBuilder) pop() (Action, error) {
	if len(b.stack) == 0 {
		return Continue, nil
	}
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if top.isMap {
		return b.add(top.items)
	}
	return b.add(top.list)
}

func (b *ValueBuilder) BeginObject(length uint64, _ bool, _ SemanticTag, _ Context) (Action, error) {
	b.stack = append(b.stack, valueFrame{
		isMap: true,
		items: make(map[string]any, min(length, 1024)),
	})
	return Continue, nil
}

func (b *ValueBuilder) EndObject(Context) (Action, error) {
	return b.pop()
}

func (b *ValueBuilder) BeginArray(length uint64, _ bool, _ SemanticTag, _ Context) (Action, error) {
	b.stack = append(b.stack, valueFrame{
		list: make([]any, 0, min(length, 1024)),
	})
	return Continue, nil
}

func (b *ValueBuilder) EndArray(Context) (Action, error) {
	return b.pop()
}

func (b *ValueBuilder) Name(name string, _ Context) (Action, error) {
	if len(b.stack) > 0 {
		b.stack[len(b.stack)-1].key = name
	}
	return Continue, nil
}

func (b *ValueBuilder) NullValue(SemanticTag, Context) (Action, error) {
	return b.add(nil)
}

func (b *ValueBuilder) BoolValue(value bool, _ SemanticTag, _ Context) (Action, error) {
	return b.add(value)
}

func (b *ValueBuilder) Uint64Value(value uint64, _ SemanticTag, _ Context) (Action, error) {
	return b.add(value)
}

func (b *ValueBuilder) Int64Value(value int64, _ SemanticTag, _ Context) (Action, error) {
	return b.add(value)
}

func (b *ValueBuilder) HalfValue(bits uint16, _ SemanticTag, _ Context) (Action, error) {
	return b.add(float64(float16.Frombits(bits).Float32()))
}

func (b *ValueBuilder) DoubleValue(value float64, _ SemanticTag, _ Context) (Action, error) {
	return b.add(value)
}

func (b *ValueBuilder) StringValue(value string, _ SemanticTag, _ Context) (Action, error) {
	return b.add(value)
}

func (b *ValueBuilder) ByteStringValue(value []byte, _ SemanticTag, _ Context) (Action, error) {
	return b.add(append([]byte{}, value...))
}

func (b *ValueBuilder) TypedArray(arr *TypedArray, _ SemanticTag, _ Context) (Action, error) {
	ret := make([]any, 0, arr.Len())
	for i := range arr.Len() {
		switch arr.Type {
		case ElementUint8:
			ret = append(ret, uint64(arr.Uint8s[i]))
		case ElementUint16:
			ret = append(ret, uint64(arr.Uint16s[i]))
		case ElementUint32:
			ret = append(ret, uint64(arr.Uint32s[i]))
		case ElementUint64:
			ret = append(ret, arr.Uint64s[i])
		case ElementInt8:
			ret = append(ret, int64(arr.Int8s[i]))
		case ElementInt16:
			ret = append(ret, int64(arr.Int16s[i]))
		case ElementInt32:
			ret = append(ret, int64(arr.Int32s[i]))
		case ElementInt64:
			ret = append(ret, arr.Int64s[i])
		case ElementFloat16:
			ret = append(ret, float64(float16.Frombits(arr.Float16s[i]).Float32()))
		case ElementFloat32:
			ret = append(ret, float64(arr.Float32s[i]))
		case ElementFloat64:
			ret = append(ret, arr.Float64s[i])
		}
	}
	return b.add(ret)
}

func (b *ValueBuilder) BeginMultiDim(shape []uint64, _ SemanticTag, _ Context) (Action, error) {
	dims := make([]any, 0, len(shape))
	for _, dim := range shape {
		dims = append(dims, dim)
	}
	b.stack = append(b.stack, valueFrame{
		list: []any{dims},
	})
	return Continue, nil
}

func (b *ValueBuilder) EndMultiDim(Context) (Action, error) {
	return b.pop()
}

func (b *ValueBuilder) Flush() error {
	return nil
}
