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

import "math"

// Stringref extension
// http://cbor.schmorp.de/stringref

type mappedStringKind int

const (
	mappedTextString mappedStringKind = iota
	mappedByteString
)

type mappedString struct {
	kind  mappedStringKind
	text  string
	bytes []byte
}

// stringRefTable is shared by pointer between every frame of the container
// that opened it. Entries are never modified or removed once appended
type stringRefTable struct {
	entries []mappedString
}

func (t *stringRefTable) size() int {
	return len(t.entries)
}

func (t *stringRefTable) addText(s string) {
	t.entries = append(t.entries, mappedString{kind: mappedTextString, text: s})
}

func (t *stringRefTable) addBytes(b []byte) {
	// The caller's buffer is reused between values
	tmp := make([]byte, len(b))
	copy(tmp, b)
	t.entries = append(t.entries, mappedString{kind: mappedByteString, bytes: tmp})
}

// lookup resolves a reference index read from the input
func (t *stringRefTable) lookup(index uint64) (*mappedString, error) {
	if index >= uint64(len(t.entries)) {
		return nil, ErrStringRefTooLarge
	}
	return &t.entries[int(index)], nil
}

// minLengthForStringRef returns the shortest string worth recording when the
// table already holds n entries. A reference is only shorter than the string
// itself once the string outgrows the encoded tag and index
func minLengthForStringRef(n uint64) int {
	switch {
	case n <= 23:
		return 3
	case n <= math.MaxUint8:
		return 4
	case n <= math.MaxUint16:
		return 5
	case n <= math.MaxUint32:
		return 7
	default:
		return 11
	}
}
