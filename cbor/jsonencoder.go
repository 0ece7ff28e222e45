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
	"bufio"
	"encoding/base64"
	"encoding/hex"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/x448/float16"
)

type jsonLevel struct {
	object bool
	count  int
}

// JSONEncoder is a Visitor that writes compact JSON text. Bignums and decimal
// fractions are written as JSON numbers, bigfloats as strings, byte strings
// as base64url text unless tagged otherwise, and multi-dimensional arrays as
// [shape, data]. NaN and infinities become null
type JSONEncoder struct {
	w      *bufio.Writer
	levels []jsonLevel
	err    error
}

// NewJSONEncoder returns a JSONEncoder writing to w. Output is buffered until
// Flush, which the parser calls once the top-level item is complete
func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{
		w: bufio.NewWriter(w),
	}
}

func (e *JSONEncoder) writeString(s string) {
	if e.err == nil {
		_, e.err = e.w.WriteString(s)
	}
}

func (e *JSONEncoder) writeByte(b byte) {
	if e.err == nil {
		e.err = e.w.WriteByte(b)
	}
}

func (e *JSONEncoder) result() (Action, error) {
	if e.err != nil {
		return Stop, e.err
	}
	return Continue, nil
}

// beginValue writes the separator ahead of an array element
func (e *JSONEncoder) beginValue() {
	if len(e.levels) == 0 {
		return
	}
	top := &e.levels[len(e.levels)-1]
	if top.object {
		return
	}
	if top.count > 0 {
		e.writeByte(',')
	}
	top.count++
}

func (e *JSONEncoder) push(object bool) {
	e.levels = append(e.levels, jsonLevel{object: object})
}

func (e *JSONEncoder) pop() {
	if len(e.levels) > 0 {
		e.levels = e.levels[:len(e.levels)-1]
	}
}

func (e *JSONEncoder) BeginObject(uint64, bool, SemanticTag, Context) (Action, error) {
	e.beginValue()
	e.writeByte('{')
	e.push(true)
	return e.result()
}

func (e *JSONEncoder) EndObject(Context) (Action, error) {
	e.pop()
	e.writeByte('}')
	return e.result()
}

func (e *JSONEncoder) BeginArray(uint64, bool, SemanticTag, Context) (Action, error) {
	e.beginValue()
	e.writeByte('[')
	e.push(false)
	return e.result()
}

func (e *JSONEncoder) EndArray(Context) (Action, error) {
	e.pop()
	e.writeByte(']')
	return e.result()
}

func (e *JSONEncoder) Name(name string, _ Context) (Action, error) {
	if len(e.levels) > 0 {
		top := &e.levels[len(e.levels)-1]
		if top.count > 0 {
			e.writeByte(',')
		}
		top.count++
	}
	e.writeQuoted(name)
	e.writeByte(':')
	return e.result()
}

func (e *JSONEncoder) NullValue(SemanticTag, Context) (Action, error) {
	e.beginValue()
	e.writeString("null")
	return e.result()
}

func (e *JSONEncoder) BoolValue(value bool, _ SemanticTag, _ Context) (Action, error) {
	e.beginValue()
	e.writeString(strconv.FormatBool(value))
	return e.result()
}

func (e *JSONEncoder) Uint64Value(value uint64, _ SemanticTag, _ Context) (Action, error) {
	e.beginValue()
	e.writeString(strconv.FormatUint(value, 10))
	return e.result()
}

func (e *JSONEncoder) Int64Value(value int64, _ SemanticTag, _ Context) (Action, error) {
	e.beginValue()
	e.writeString(strconv.FormatInt(value, 10))
	return e.result()
}

func (e *JSONEncoder) HalfValue(bits uint16, _ SemanticTag, _ Context) (Action, error) {
	e.beginValue()
	e.writeFloat(float64(float16.Frombits(bits).Float32()), 32)
	return e.result()
}

func (e *JSONEncoder) DoubleValue(value float64, _ SemanticTag, _ Context) (Action, error) {
	e.beginValue()
	e.writeFloat(value, 64)
	return e.result()
}

func (e *JSONEncoder) StringValue(value string, tag SemanticTag, _ Context) (Action, error) {
	e.beginValue()
	switch tag {
	case SemanticTagBigint, SemanticTagBigdec:
		e.writeString(value)
	default:
		e.writeQuoted(value)
	}
	return e.result()
}

func (e *JSONEncoder) ByteStringValue(value []byte, tag SemanticTag, _ Context) (Action, error) {
	e.beginValue()
	e.writeByte('"')
	switch tag {
	case SemanticTagBase64:
		e.writeString(base64.StdEncoding.EncodeToString(value))
	case SemanticTagBase16:
		e.writeString(strings.ToUpper(hex.EncodeToString(value)))
	default:
		e.writeString(base64.RawURLEncoding.EncodeToString(value))
	}
	e.writeByte('"')
	return e.result()
}

func (e *JSONEncoder) TypedArray(arr *TypedArray, _ SemanticTag, _ Context) (Action, error) {
	e.beginValue()
	e.writeByte('[')
	for i := range arr.Len() {
		if i > 0 {
			e.writeByte(',')
		}
		switch arr.Type {
		case ElementUint8:
			e.writeString(strconv.FormatUint(uint64(arr.Uint8s[i]), 10))
		case ElementUint16:
			e.writeString(strconv.FormatUint(uint64(arr.Uint16s[i]), 10))
		case ElementUint32:
			e.writeString(strconv.FormatUint(uint64(arr.Uint32s[i]), 10))
		case ElementUint64:
			e.writeString(strconv.FormatUint(arr.Uint64s[i], 10))
		case ElementInt8:
			e.writeString(strconv.FormatInt(int64(arr.Int8s[i]), 10))
		case ElementInt16:
			e.writeString(strconv.FormatInt(int64(arr.Int16s[i]), 10))
		case ElementInt32:
			e.writeString(strconv.FormatInt(int64(arr.Int32s[i]), 10))
		case ElementInt64:
			e.writeString(strconv.FormatInt(arr.Int64s[i], 10))
		case ElementFloat16:
			e.writeFloat(float64(float16.Frombits(arr.Float16s[i]).Float32()), 32)
		case ElementFloat32:
			e.writeFloat(float64(arr.Float32s[i]), 32)
		case ElementFloat64:
			e.writeFloat(arr.Float64s[i], 64)
		}
	}
	e.writeByte(']')
	return e.result()
}

func (e *JSONEncoder) BeginMultiDim(shape []uint64, _ SemanticTag, _ Context) (Action, error) {
	e.beginValue()
	e.writeString("[[")
	for i, dim := range shape {
		if i > 0 {
			e.writeByte(',')
		}
		e.writeString(strconv.FormatUint(dim, 10))
	}
	e.writeByte(']')
	// The shape counts as the first element
	e.levels = append(e.levels, jsonLevel{count: 1})
	return e.result()
}

func (e *JSONEncoder) EndMultiDim(Context) (Action, error) {
	e.pop()
	e.writeByte(']')
	return e.result()
}

func (e *JSONEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

func (e *JSONEncoder) writeFloat(value float64, bitSize int) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		e.writeString("null")
		return
	}
	s := strconv.FormatFloat(value, 'g', -1, bitSize)
	e.writeString(s)
	if !strings.ContainsAny(s, ".e") {
		e.writeString(".0")
	}
}

const hexDigits = "0123456789abcdef"

// writeQuoted writes s as a JSON string literal
func (e *JSONEncoder) writeQuoted(s string) {
	e.writeByte('"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			e.writeString(s[start:i])
			switch c {
			case '"', '\\':
				e.writeByte('\\')
				e.writeByte(c)
			case '\n':
				e.writeString(`\n`)
			case '\r':
				e.writeString(`\r`)
			case '\t':
				e.writeString(`\t`)
			case '\b':
				e.writeString(`\b`)
			case '\f':
				e.writeString(`\f`)
			default:
				e.writeString(`\u00`)
				e.writeByte(hexDigits[c>>4])
				e.writeByte(hexDigits[c&0xf])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		// U+2028 and U+2029 are escaped for JavaScript consumers
		if r == '\u2028' || r == '\u2029' {
			e.writeString(s[start:i])
			e.writeString(`\u202`)
			e.writeByte(hexDigits[r&0xf])
			start = i + size
		}
		i += size
	}
	e.writeString(s[start:])
	e.writeByte('"')
}
