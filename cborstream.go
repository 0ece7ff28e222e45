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

// Package cborstream provides convenience entry points over the streaming
// CBOR parser in the cbor package
package cborstream

import (
	"io"
	"slices"
	"strings"

	"github.com/blinklabs-io/cborstream/cbor"
	"github.com/blinklabs-io/cborstream/source"
)

// Decode reads one CBOR item from data and reports its events to v. It
// returns the number of bytes consumed. A visitor stop is not an error
func Decode(data []byte, v cbor.Visitor, opts ...cbor.ParserOptionFunc) (int, error) {
	src := source.NewBytes(data)
	p := cbor.NewParser(src, opts...)
	if err := p.Parse(v); err != nil {
		return int(src.Position()), err
	}
	return int(src.Position()), nil
}

// DecodeReader reads one CBOR item from r and reports its events to v
func DecodeReader(r io.Reader, v cbor.Visitor, opts ...cbor.ParserOptionFunc) error {
	p := cbor.NewParser(source.NewReader(r), opts...)
	return p.Parse(v)
}

// ToJSON decodes one CBOR item from data and returns it as compact JSON text.
// Cursor mode is always disabled so the whole item is rendered
func ToJSON(data []byte, opts ...cbor.ParserOptionFunc) (string, error) {
	var sb strings.Builder
	opts = append(slices.Clone(opts), cbor.WithCursorMode(false))
	p := cbor.NewParser(source.NewBytes(data), opts...)
	if err := p.Parse(cbor.NewJSONEncoder(&sb)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// DecodeSequence reads consecutive CBOR items (RFC 8742) from r until it is
// exhausted, reporting every item to v. Flush is called on v after each item.
// It returns the number of complete items decoded. A visitor stop ends the
// sequence early without error
func DecodeSequence(r io.Reader, v cbor.Visitor, opts ...cbor.ParserOptionFunc) (int, error) {
	src := source.NewReader(r)
	p := cbor.NewParser(src, opts...)
	count := 0
	for !src.EOF() {
		p.Reset()
		if err := p.Parse(v); err != nil {
			return count, err
		}
		if !p.Done() {
			return count, nil
		}
		count++
	}
	if err := src.Err(); err != nil {
		return count, err
	}
	return count, nil
}
