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
	"encoding/binary"
	"fmt"
	"math"
)

// Typed array tag layout: 0b010_f_s_e_ll
const (
	typedArrayFloatMask      = 0x10
	typedArrayFloatShift     = 4
	typedArraySignedMask     = 0x08
	typedArraySignedShift    = 3
	typedArrayEndianMask     = 0x04
	typedArrayEndianShift    = 2
	typedArrayLengthLog2Mask = 0x03
)

// ElementType identifies the element type of a TypedArray
type ElementType int

const (
	ElementUint8 ElementType = iota
	ElementUint16
	ElementUint32
	ElementUint64
	ElementInt8
	ElementInt16
	ElementInt32
	ElementInt64
	ElementFloat16
	ElementFloat32
	ElementFloat64
)

func (e ElementType) String() string {
	switch e {
	case ElementUint8:
		return "uint8"
	case ElementUint16:
		return "uint16"
	case ElementUint32:
		return "uint32"
	case ElementUint64:
		return "uint64"
	case ElementInt8:
		return "int8"
	case ElementInt16:
		return "int16"
	case ElementInt32:
		return "int32"
	case ElementInt64:
		return "int64"
	case ElementFloat16:
		return "float16"
	case ElementFloat32:
		return "float32"
	case ElementFloat64:
		return "float64"
	default:
		return fmt.Sprintf("unknown(%d)", int(e))
	}
}

// TypedArray holds the decoded elements of one typed array event. Only the
// slice matching Type is populated. The parser reuses a single TypedArray, so
// visitors must copy anything they keep past the TypedArray call
type TypedArray struct {
	Type     ElementType
	Uint8s   []uint8
	Uint16s  []uint16
	Uint32s  []uint32
	Uint64s  []uint64
	Int8s    []int8
	Int16s   []int16
	Int32s   []int32
	Int64s   []int64
	Float16s []uint16 // IEEE 754 half-precision bit patterns
	Float32s []float32
	Float64s []float64
}

// Len returns the number of elements
func (a *TypedArray) Len() int {
	switch a.Type {
	case ElementUint8:
		return len(a.Uint8s)
	case ElementUint16:
		return len(a.Uint16s)
	case ElementUint32:
		return len(a.Uint32s)
	case ElementUint64:
		return len(a.Uint64s)
	case ElementInt8:
		return len(a.Int8s)
	case ElementInt16:
		return len(a.Int16s)
	case ElementInt32:
		return len(a.Int32s)
	case ElementInt64:
		return len(a.Int64s)
	case ElementFloat16:
		return len(a.Float16s)
	case ElementFloat32:
		return len(a.Float32s)
	case ElementFloat64:
		return len(a.Float64s)
	}
	return 0
}

func (a *TypedArray) reset(elemType ElementType) {
	a.Type = elemType
	a.Uint8s = a.Uint8s[:0]
	a.Uint16s = a.Uint16s[:0]
	a.Uint32s = a.Uint32s[:0]
	a.Uint64s = a.Uint64s[:0]
	a.Int8s = a.Int8s[:0]
	a.Int16s = a.Int16s[:0]
	a.Int32s = a.Int32s[:0]
	a.Int64s = a.Int64s[:0]
	a.Float16s = a.Float16s[:0]
	a.Float32s = a.Float32s[:0]
	a.Float64s = a.Float64s[:0]
}

func isTypedArrayTag(tag uint64) bool {
	return tag >= CborTagTypedArrayMin && tag <= CborTagTypedArrayMax
}

// typedArrayElementType maps a typed array tag to its element type. The
// second return is false for tags this decoder does not handle (reserved
// 0x4c and the 128-bit float variants)
func typedArrayElementType(tag uint8) (ElementType, bool) {
	isFloat := (tag & typedArrayFloatMask) >> typedArrayFloatShift
	signed := (tag & typedArraySignedMask) >> typedArraySignedShift
	littleEndian := (tag & typedArrayEndianMask) >> typedArrayEndianShift
	ll := tag & typedArrayLengthLog2Mask
	switch {
	case isFloat == 1:
		switch ll {
		case 0:
			return ElementFloat16, true
		case 1:
			return ElementFloat32, true
		case 2:
			return ElementFloat64, true
		}
	case signed == 1:
		switch ll {
		case 0:
			// 0x4c would be a little-endian int8, which is reserved
			if littleEndian == 0 {
				return ElementInt8, true
			}
		case 1:
			return ElementInt16, true
		case 2:
			return ElementInt32, true
		case 3:
			return ElementInt64, true
		}
	default:
		switch ll {
		case 0:
			return ElementUint8, true
		case 1:
			return ElementUint16, true
		case 2:
			return ElementUint32, true
		case 3:
			return ElementUint64, true
		}
	}
	return 0, false
}

// typedArrayElementSize returns 1 << (f + ll) for a typed array tag
func typedArrayElementSize(tag uint8) int {
	f := (tag & typedArrayFloatMask) >> typedArrayFloatShift
	ll := tag & typedArrayLengthLog2Mask
	return 1 << (f + ll)
}

func typedArrayByteOrder(tag uint8) binary.ByteOrder {
	if (tag&typedArrayEndianMask)>>typedArrayEndianShift == 0 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// decodeTypedArray fills arr from payload according to tag. The tag must
// already have been accepted by typedArrayElementType
func decodeTypedArray(tag uint8, payload []byte, arr *TypedArray) error {
	elemType, _ := typedArrayElementType(tag)
	size := typedArrayElementSize(tag)
	if len(payload)%size != 0 {
		return ErrInvalidTypedArray
	}
	order := typedArrayByteOrder(tag)
	arr.reset(elemType)
	for off := 0; off < len(payload); off += size {
		elem := payload[off : off+size]
		switch elemType {
		case ElementUint8:
			arr.Uint8s = append(arr.Uint8s, elem[0])
		case ElementUint16:
			arr.Uint16s = append(arr.Uint16s, order.Uint16(elem))
		case ElementUint32:
			arr.Uint32s = append(arr.Uint32s, order.Uint32(elem))
		case ElementUint64:
			arr.Uint64s = append(arr.Uint64s, order.Uint64(elem))
		case ElementInt8:
			arr.Int8s = append(arr.Int8s, int8(elem[0]))
		case ElementInt16:
			arr.Int16s = append(arr.Int16s, int16(order.Uint16(elem)))
		case ElementInt32:
			arr.Int32s = append(arr.Int32s, int32(order.Uint32(elem)))
		case ElementInt64:
			arr.Int64s = append(arr.Int64s, int64(order.Uint64(elem)))
		case ElementFloat16:
			arr.Float16s = append(arr.Float16s, order.Uint16(elem))
		case ElementFloat32:
			arr.Float32s = append(
				arr.Float32s,
				math.Float32frombits(order.Uint32(elem)),
			)
		case ElementFloat64:
			arr.Float64s = append(
				arr.Float64s,
				math.Float64frombits(order.Uint64(elem)),
			)
		}
	}
	return nil
}
