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
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
)

type parseMode int

const (
	modeRoot parseMode = iota
	modeBeforeDone
	modeArray
	modeIndefiniteArray
	modeMapKey
	modeMapValue
	modeIndefiniteMapKey
	modeIndefiniteMapValue
	modeMultiDim
)

// parseFrame tracks one open container. The bottom of the stack is always the
// root frame
type parseFrame struct {
	mode       parseMode
	length     uint64
	index      uint64
	stringRefs *stringRefTable
}

// Parser is a resumable, event-driven CBOR decoder. It reads one top-level
// data item from its Source and reports it to a Visitor as a sequence of
// events. A Parser is not safe for concurrent use
type Parser struct {
	src             Source
	logger          *slog.Logger
	maxNestingDepth int
	cursorMode      bool
	more            bool
	done            bool
	stack           []parseFrame
	tags            tagList
	rawTag          uint64
	scratch         [8]byte
	textBuf         []byte
	bytesBuf        []byte
	typedArray      TypedArray
	shape           []uint64
}

// NewParser returns a Parser reading from src
func NewParser(src Source, opts ...ParserOptionFunc) *Parser {
	p := &Parser{
		src:             src,
		maxNestingDepth: DefaultMaxNestingDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.Reset()
	return p
}

// Parse drives the state machine until the top-level item is complete, a
// visitor requests a stop, or an error occurs. A stop is not an error: Parse
// returns nil and Stopped reports true. Errors are returned as *DecodeError
func (p *Parser) Parse(v Visitor) error {
	for !p.done && p.more {
		var err error
		frame := &p.stack[len(p.stack)-1]
		switch frame.mode {
		case modeMultiDim:
			if frame.index == 0 {
				frame.index++
				err = p.readItem(v)
			} else {
				err = p.endMultiDim(v)
			}
		case modeArray:
			if frame.index < frame.length {
				frame.index++
				err = p.readItem(v)
			} else {
				err = p.endArray(v)
			}
		case modeIndefiniteArray:
			var brk bool
			if brk, err = p.atBreak(); err == nil {
				if brk {
					err = p.endArray(v)
				} else {
					err = p.readItem(v)
				}
			}
		case modeMapKey:
			if frame.index < frame.length {
				frame.index++
				frame.mode = modeMapValue
				err = p.readName(v)
			} else {
				err = p.endObject(v)
			}
		case modeMapValue:
			frame.mode = modeMapKey
			err = p.readItem(v)
		case modeIndefiniteMapKey:
			var brk bool
			if brk, err = p.atBreak(); err == nil {
				if brk {
					err = p.endObject(v)
				} else {
					frame.mode = modeIndefiniteMapValue
					err = p.readName(v)
				}
			}
		case modeIndefiniteMapValue:
			frame.mode = modeIndefiniteMapKey
			err = p.readItem(v)
		case modeRoot:
			frame.mode = modeBeforeDone
			err = p.readItem(v)
		case modeBeforeDone:
			p.more = false
			p.done = true
			err = v.Flush()
		}
		if err != nil {
			return p.fail(err)
		}
	}
	return nil
}

// Done reports whether the top-level item has been completely decoded
func (p *Parser) Done() bool {
	return p.done
}

// Stopped reports whether the last call to Parse returned before completion
func (p *Parser) Stopped() bool {
	return !p.more
}

// Restart allows Parse to resume after a visitor stop
func (p *Parser) Restart() {
	p.more = true
}

// Reset prepares the parser to decode the next item from the same source
func (p *Parser) Reset() {
	p.more = true
	p.done = false
	p.stack = append(p.stack[:0], parseFrame{mode: modeRoot})
	p.tags.clear()
	p.rawTag = 0
}

// ResetSource prepares the parser to decode a fresh item from src
func (p *Parser) ResetSource(src Source) {
	p.src = src
	p.Reset()
}

// Level returns the current depth of the frame stack, counting the root frame
func (p *Parser) Level() int {
	return len(p.stack)
}

// Position returns the number of source bytes consumed so far
func (p *Parser) Position() int64 {
	return p.src.Position()
}

// RawTag returns the tag number that selected the current value's
// interpretation, or 0 when the value was untagged
func (p *Parser) RawTag() uint64 {
	return p.rawTag
}

func (p *Parser) fail(err error) error {
	p.more = false
	p.tags.clear()
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return err
	}
	if errors.Is(err, ErrUnexpectedEOF) {
		if s, ok := p.src.(sourceErr); ok && s.Err() != nil {
			err = fmt.Errorf("%w: %w", err, s.Err())
		}
	}
	decErr = &DecodeError{
		Offset: p.src.Position(),
		Err:    err,
	}
	p.logger.Debug(
		"CBOR decode failed",
		"component", "cbor",
		"offset", decErr.Offset,
		"error", err,
	)
	return decErr
}

// emit applies the action returned by a visitor call
func (p *Parser) emit(action Action, err error) error {
	if err != nil {
		return err
	}
	if action == Stop {
		p.more = false
		p.logger.Debug(
			"visitor stopped parsing",
			"component", "cbor",
			"offset", p.src.Position(),
			"level", len(p.stack),
		)
	} else if p.cursorMode {
		p.more = false
	}
	return nil
}

// atBreak consumes a break byte if one is next
func (p *Parser) atBreak() (bool, error) {
	b, ok := p.src.Peek()
	if !ok {
		return false, ErrUnexpectedEOF
	}
	if b == CborBreak {
		p.src.Ignore(1)
		return true, nil
	}
	return false, nil
}

// stringRefs returns the string reference table in scope, if any
func (p *Parser) stringRefs() *stringRefTable {
	return p.stack[len(p.stack)-1].stringRefs
}

// readTags accumulates any tags ahead of the next item
func (p *Parser) readTags() error {
	for {
		b, ok := p.src.Peek()
		if !ok {
			return ErrUnexpectedEOF
		}
		if majorType(b) != CborTypeTag {
			return nil
		}
		tag, err := p.readUint64()
		if err != nil {
			return err
		}
		p.tags.push(tag)
	}
}

// endItem discards the tags of the item just read
func (p *Parser) endItem() {
	p.tags.clear()
	p.rawTag = 0
}

func (p *Parser) setRawTag() {
	p.rawTag = 0
	if p.tags.hasItemTag {
		p.rawTag = p.tags.itemTag
	}
}

func (p *Parser) readItem(v Visitor) error {
	defer p.endItem()
	if err := p.readTags(); err != nil {
		return err
	}
	b, ok := p.src.Peek()
	if !ok {
		return ErrUnexpectedEOF
	}
	p.setRawTag()
	switch majorType(b) {
	case CborTypeUnsignedInt:
		val, err := p.readUint64()
		if err != nil {
			return err
		}
		if table := p.stringRefs(); table != nil && p.tags.takeStringRef() {
			ref, err := table.lookup(val)
			if err != nil {
				return err
			}
			if ref.kind == mappedTextString {
				return p.emit(v.StringValue(ref.text, p.tags.textTag(), p))
			}
			return p.writeByteString(v, ref.bytes)
		}
		return p.emit(v.Uint64Value(val, p.tags.numericTag(), p))
	case CborTypeNegativeInt:
		val, err := p.readUint64()
		if err != nil {
			return err
		}
		if val > math.MaxInt64 {
			return p.emit(
				v.StringValue(negativeFromUint(val).String(), SemanticTagBigint, p),
			)
		}
		return p.emit(v.Int64Value(-1-int64(val), p.tags.numericTag(), p))
	case CborTypeByteString:
		data, err := p.readByteString()
		if err != nil {
			return err
		}
		return p.writeByteString(v, data)
	case CborTypeTextString:
		text, err := p.readTextString()
		if err != nil {
			return err
		}
		return p.emit(v.StringValue(text, p.tags.textTag(), p))
	case CborTypeArray:
		if p.tags.hasItemTag {
			switch p.tags.itemTag {
			case CborTagDecimalFraction:
				text, err := p.readDecimalFraction()
				if err != nil {
					return err
				}
				return p.emit(v.StringValue(text, SemanticTagBigdec, p))
			case CborTagBigfloat:
				text, err := p.readBigfloat()
				if err != nil {
					return err
				}
				return p.emit(v.StringValue(text, SemanticTagBigfloat, p))
			case CborTagMultiDimRowMajor:
				return p.beginMultiDim(v, SemanticTagMultiDimRowMajor)
			case CborTagMultiDimColMajor:
				return p.beginMultiDim(v, SemanticTagMultiDimColumnMajor)
			}
		}
		return p.beginArray(v)
	case CborTypeMap:
		return p.beginObject(v)
	case CborTypeSimple:
		return p.readSimple(v, additionalInfo(b))
	}
	return ErrUnknownType
}

func (p *Parser) readSimple(v Visitor, info uint8) error {
	switch info {
	case CborSimpleFalse, CborSimpleTrue:
		p.src.Ignore(1)
		return p.emit(v.BoolValue(info == CborSimpleTrue, SemanticTagNone, p))
	case CborSimpleNull:
		p.src.Ignore(1)
		return p.emit(v.NullValue(SemanticTagNone, p))
	case CborSimpleUndefined:
		p.src.Ignore(1)
		return p.emit(v.NullValue(SemanticTagUndefined, p))
	case CborSimpleHalf:
		bits, err := p.readUint64()
		if err != nil {
			return err
		}
		return p.emit(v.HalfValue(uint16(bits), p.tags.numericTag(), p))
	case CborSimpleFloat, CborSimpleDouble:
		val, err := p.readDouble()
		if err != nil {
			return err
		}
		return p.emit(v.DoubleValue(val, p.tags.numericTag(), p))
	}
	return ErrUnknownType
}

// writeByteString reports a byte string, interpreting bignum and typed array
// tags
func (p *Parser) writeByteString(v Visitor, data []byte) error {
	if p.tags.hasItemTag {
		tag := p.tags.itemTag
		switch {
		case tag == CborTagPositiveBignum || tag == CborTagNegativeBignum:
			n := bignumFromBytes(data, tag == CborTagNegativeBignum)
			return p.emit(v.StringValue(n.String(), SemanticTagBigint, p))
		case isTypedArrayTag(tag):
			if _, ok := typedArrayElementType(uint8(tag)); ok {
				if err := decodeTypedArray(uint8(tag), data, &p.typedArray); err != nil {
					return err
				}
				semantic := SemanticTagNone
				if tag == CborTagTypedArrayUint8Clamped {
					semantic = SemanticTagClamped
				}
				return p.emit(v.TypedArray(&p.typedArray, semantic, p))
			}
		}
	}
	return p.emit(v.ByteStringValue(data, p.tags.byteStringTag(), p))
}

func (p *Parser) pushFrame(frame parseFrame) error {
	if len(p.stack) > p.maxNestingDepth {
		return ErrMaxNestingDepthExceeded
	}
	p.stack = append(p.stack, frame)
	return nil
}

// containerRefs returns the string reference table for a container about to
// be opened. A namespace tag starts a fresh table
func (p *Parser) containerRefs() *stringRefTable {
	if p.tags.takeNamespace() {
		return &stringRefTable{}
	}
	return p.stringRefs()
}

func (p *Parser) beginArray(v Visitor) error {
	refs := p.containerRefs()
	_, info, length, err := p.readHead()
	if err != nil {
		return err
	}
	if info == CborInfoIndefinite {
		if err := p.pushFrame(parseFrame{mode: modeIndefiniteArray, stringRefs: refs}); err != nil {
			return err
		}
		return p.emit(v.BeginArray(0, false, SemanticTagNone, p))
	}
	if err := checkSize(length); err != nil {
		return err
	}
	if err := p.pushFrame(parseFrame{mode: modeArray, length: length, stringRefs: refs}); err != nil {
		return err
	}
	return p.emit(v.BeginArray(length, true, SemanticTagNone, p))
}

func (p *Parser) endArray(v Visitor) error {
	p.stack = p.stack[:len(p.stack)-1]
	return p.emit(v.EndArray(p))
}

func (p *Parser) beginObject(v Visitor) error {
	refs := p.containerRefs()
	_, info, length, err := p.readHead()
	if err != nil {
		return err
	}
	if info == CborInfoIndefinite {
		if err := p.pushFrame(parseFrame{mode: modeIndefiniteMapKey, stringRefs: refs}); err != nil {
			return err
		}
		return p.emit(v.BeginObject(0, false, SemanticTagNone, p))
	}
	if err := checkSize(length); err != nil {
		return err
	}
	if err := p.pushFrame(parseFrame{mode: modeMapKey, length: length, stringRefs: refs}); err != nil {
		return err
	}
	return p.emit(v.BeginObject(length, true, SemanticTagNone, p))
}

func (p *Parser) endObject(v Visitor) error {
	p.stack = p.stack[:len(p.stack)-1]
	return p.emit(v.EndObject(p))
}

// beginMultiDim reads the [shape, data] header of a tag 40 or 1040 array. The
// data item is then read as the single child of a multi-dim frame
func (p *Parser) beginMultiDim(v Visitor, tag SemanticTag) error {
	_, info, length, err := p.readHead()
	if err != nil {
		return err
	}
	if info == CborInfoIndefinite || length != 2 {
		return ErrInvalidMultiDim
	}
	if err := p.readShape(); err != nil {
		return err
	}
	if err := p.pushFrame(parseFrame{mode: modeMultiDim, stringRefs: p.stringRefs()}); err != nil {
		return err
	}
	return p.emit(v.BeginMultiDim(p.shape, tag, p))
}

func (p *Parser) endMultiDim(v Visitor) error {
	p.stack = p.stack[:len(p.stack)-1]
	return p.emit(v.EndMultiDim(p))
}

func (p *Parser) readName(v Visitor) error {
	defer p.endItem()
	if err := p.readTags(); err != nil {
		return err
	}
	b, ok := p.src.Peek()
	if !ok {
		return ErrUnexpectedEOF
	}
	p.setRawTag()
	switch majorType(b) {
	case CborTypeTextString:
		text, err := p.readTextString()
		if err != nil {
			return err
		}
		return p.emit(v.Name(text, p))
	case CborTypeByteString:
		if p.tags.interpretsBytes() {
			break
		}
		data, err := p.readByteString()
		if err != nil {
			return err
		}
		return p.emit(v.Name(encodeKeyBytes(data, p.tags.byteStringTag()), p))
	case CborTypeUnsignedInt:
		if table := p.stringRefs(); table != nil && p.tags.stringRef {
			val, err := p.readUint64()
			if err != nil {
				return err
			}
			ref, err := table.lookup(val)
			if err != nil {
				return err
			}
			if ref.kind == mappedTextString {
				return p.emit(v.Name(ref.text, p))
			}
			return p.emit(v.Name(encodeKeyBytes(ref.bytes, p.tags.byteStringTag()), p))
		}
	}
	return p.readNameAsJSON(v)
}

// readNameAsJSON decodes a key that is not a string with a child parser
// sharing this parser's source, string references and pending tags. The JSON
// text of the key becomes the name
func (p *Parser) readNameAsJSON(v Visitor) error {
	var sb strings.Builder
	child := &Parser{
		src:             p.src,
		logger:          p.logger,
		maxNestingDepth: p.maxNestingDepth - len(p.stack) + 1,
		more:            true,
		stack:           []parseFrame{{mode: modeRoot, stringRefs: p.stringRefs()}},
		tags:            p.tags.clone(),
	}
	if err := child.Parse(NewJSONEncoder(&sb)); err != nil {
		return err
	}
	if !child.done {
		p.more = false
		return nil
	}
	return p.emit(v.Name(sb.String(), p))
}

// encodeKeyBytes renders a byte string map key as text
func encodeKeyBytes(data []byte, tag SemanticTag) string {
	switch tag {
	case SemanticTagBase64:
		return base64.StdEncoding.EncodeToString(data)
	case SemanticTagBase16:
		return strings.ToUpper(hex.EncodeToString(data))
	default:
		return base64.RawURLEncoding.EncodeToString(data)
	}
}
