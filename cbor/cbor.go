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

const (
	CborTypeUnsignedInt uint8 = 0x00
	CborTypeNegativeInt uint8 = 0x20
	CborTypeByteString  uint8 = 0x40
	CborTypeTextString  uint8 = 0x60
	CborTypeArray       uint8 = 0x80
	CborTypeMap         uint8 = 0xa0
	CborTypeTag         uint8 = 0xc0
	CborTypeSimple      uint8 = 0xe0

	// Only the top 3 bits are used to specify the type
	CborTypeMask uint8 = 0xe0

	// The low 5 bits carry the additional information
	CborInfoMask uint8 = 0x1f

	// Max value able to be stored in a single byte without type prefix
	CborMaxUintSimple uint8 = 0x17

	// Additional information values selecting an explicit argument width
	CborInfoUint8      uint8 = 0x18
	CborInfoUint16     uint8 = 0x19
	CborInfoUint32     uint8 = 0x1a
	CborInfoUint64     uint8 = 0x1b
	CborInfoIndefinite uint8 = 0x1f

	// Terminates indefinite-length strings and containers
	CborBreak uint8 = 0xff
)

// Simple values (major type 7)
const (
	CborSimpleFalse     uint8 = 0x14
	CborSimpleTrue      uint8 = 0x15
	CborSimpleNull      uint8 = 0x16
	CborSimpleUndefined uint8 = 0x17
	CborSimpleHalf      uint8 = 0x19
	CborSimpleFloat     uint8 = 0x1a
	CborSimpleDouble    uint8 = 0x1b
)

func majorType(b byte) uint8 {
	return b & CborTypeMask
}

func additionalInfo(b byte) uint8 {
	return b & CborInfoMask
}
