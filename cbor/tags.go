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
	// Useful tag numbers
	CborTagDateTime           = 0
	CborTagEpochTime          = 1
	CborTagPositiveBignum     = 2
	CborTagNegativeBignum     = 3
	CborTagDecimalFraction    = 4
	CborTagBigfloat           = 5
	CborTagExpectBase64URL    = 21
	CborTagExpectBase64       = 22
	CborTagExpectBase16       = 23
	CborTagStringRef          = 25
	CborTagURI                = 32
	CborTagBase64URL          = 33
	CborTagBase64             = 34
	CborTagMultiDimRowMajor   = 40
	CborTagStringRefNamespace = 256
	CborTagMultiDimColMajor   = 1040

	// Typed arrays (RFC 8746)
	// https://www.rfc-editor.org/rfc/rfc8746.html#name-typed-arrays
	CborTagTypedArrayMin          = 0x40
	CborTagTypedArrayMax          = 0x57
	CborTagTypedArrayUint8Clamped = 0x44
)

// SemanticTag is the interpretation the parser attaches to an emitted value
type SemanticTag int

const (
	SemanticTagNone SemanticTag = iota
	SemanticTagUndefined
	SemanticTagDateTime
	SemanticTagEpochSecond
	SemanticTagBigint
	SemanticTagBigdec
	SemanticTagBigfloat
	SemanticTagBase16
	SemanticTagBase64
	SemanticTagBase64URL
	SemanticTagURI
	SemanticTagClamped
	SemanticTagMultiDimRowMajor
	SemanticTagMultiDimColumnMajor
)

func (t SemanticTag) String() string {
	switch t {
	case SemanticTagNone:
		return "none"
	case SemanticTagUndefined:
		return "undefined"
	case SemanticTagDateTime:
		return "datetime"
	case SemanticTagEpochSecond:
		return "epoch-second"
	case SemanticTagBigint:
		return "bigint"
	case SemanticTagBigdec:
		return "bigdec"
	case SemanticTagBigfloat:
		return "bigfloat"
	case SemanticTagBase16:
		return "base16"
	case SemanticTagBase64:
		return "base64"
	case SemanticTagBase64URL:
		return "base64url"
	case SemanticTagURI:
		return "uri"
	case SemanticTagClamped:
		return "clamped"
	case SemanticTagMultiDimRowMajor:
		return "multi-dim-row-major"
	case SemanticTagMultiDimColumnMajor:
		return "multi-dim-column-major"
	default:
		return "unknown"
	}
}

// tagList accumulates the tags read ahead of a single item. Only the last tag
// other than the string reference tags selects the item's interpretation
type tagList struct {
	tags         []uint64
	itemTag      uint64
	hasItemTag   bool
	stringRef    bool
	refNamespace bool
}

func (l *tagList) push(tag uint64) {
	l.tags = append(l.tags, tag)
	switch tag {
	case CborTagStringRef:
		l.stringRef = true
	case CborTagStringRefNamespace:
		l.refNamespace = true
	default:
		l.itemTag = tag
		l.hasItemTag = true
	}
}

func (l *tagList) clear() {
	l.tags = l.tags[:0]
	l.itemTag = 0
	l.hasItemTag = false
	l.stringRef = false
	l.refNamespace = false
}

func (l *tagList) clone() tagList {
	ret := *l
	ret.tags = append([]uint64(nil), l.tags...)
	return ret
}

// takeStringRef reports and clears a pending string reference tag
func (l *tagList) takeStringRef() bool {
	ret := l.stringRef
	l.stringRef = false
	return ret
}

// takeNamespace reports and clears a pending string reference namespace tag
func (l *tagList) takeNamespace() bool {
	ret := l.refNamespace
	l.refNamespace = false
	return ret
}

// numericTag returns the semantic tag for integer and float values
func (l *tagList) numericTag() SemanticTag {
	if l.hasItemTag && l.itemTag == CborTagEpochTime {
		return SemanticTagEpochSecond
	}
	return SemanticTagNone
}

// textTag returns the semantic tag for text string values
func (l *tagList) textTag() SemanticTag {
	if !l.hasItemTag {
		return SemanticTagNone
	}
	switch l.itemTag {
	case CborTagDateTime:
		return SemanticTagDateTime
	case CborTagURI:
		return SemanticTagURI
	case CborTagBase64URL:
		return SemanticTagBase64URL
	case CborTagBase64:
		return SemanticTagBase64
	}
	return SemanticTagNone
}

// interpretsBytes reports whether the item tag turns a byte string into a
// bignum or typed array
func (l *tagList) interpretsBytes() bool {
	if !l.hasItemTag {
		return false
	}
	switch {
	case l.itemTag == CborTagPositiveBignum, l.itemTag == CborTagNegativeBignum:
		return true
	case isTypedArrayTag(l.itemTag):
		_, ok := typedArrayElementType(uint8(l.itemTag))
		return ok
	}
	return false
}

// byteStringTag returns the semantic tag for plain byte string values
func (l *tagList) byteStringTag() SemanticTag {
	if !l.hasItemTag {
		return SemanticTagNone
	}
	switch l.itemTag {
	case CborTagExpectBase64URL:
		return SemanticTagBase64URL
	case CborTagExpectBase64:
		return SemanticTagBase64
	case CborTagExpectBase16:
		return SemanticTagBase16
	}
	return SemanticTagNone
}
