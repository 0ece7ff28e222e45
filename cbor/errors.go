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
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF         = errors.New("unexpected end of CBOR input")
	ErrInvalidUTF8TextString = errors.New("text string contains invalid UTF-8")
	ErrStringRefTooLarge     = errors.New("string reference index is beyond the end of the string table")
	ErrNumberTooLarge        = errors.New("number too large for this platform")
	ErrInvalidBigDec         = errors.New("invalid decimal fraction")
	ErrInvalidBigFloat       = errors.New("invalid bigfloat")
)

// Malformed input detected beyond the core error kinds
var (
	ErrUnknownType             = errors.New("unknown CBOR type")
	ErrIllegalChunkedString    = errors.New("indefinite-length string chunk has the wrong major type")
	ErrMaxNestingDepthExceeded = errors.New("maximum nesting depth exceeded")
	ErrInvalidTypedArray       = errors.New("typed array payload is not a multiple of the element size")
	ErrInvalidMultiDim         = errors.New("multi-dimensional array must be a 2-element array of shape and data")
)

// DecodeError is returned by Parser.Parse. Offset is the source position at
// which decoding halted
type DecodeError struct {
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cbor: %s (at offset %d)", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
