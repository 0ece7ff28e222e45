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
	"math"
	"math/big"
	"slices"
	"unicode/utf8"
)

// Large declared string lengths are read in pieces of this size so that a
// bogus length cannot force a huge allocation before EOF is noticed
const readChunkSize = 64 * 1024

// readHead consumes an initial byte and its argument. For indefinite lengths
// the returned argument is 0
func (p *Parser) readHead() (uint8, uint8, uint64, error) {
	b, ok := p.src.Get()
	if !ok {
		return 0, 0, 0, ErrUnexpectedEOF
	}
	major := majorType(b)
	info := additionalInfo(b)
	arg, err := p.readArgument(info)
	return major, info, arg, err
}

// readArgument reads the argument selected by the additional info bits of an
// initial byte that has already been consumed
func (p *Parser) readArgument(info uint8) (uint64, error) {
	var width int
	switch {
	case info <= CborMaxUintSimple:
		return uint64(info), nil
	case info == CborInfoUint8:
		width = 1
	case info == CborInfoUint16:
		width = 2
	case info == CborInfoUint32:
		width = 4
	case info == CborInfoUint64:
		width = 8
	case info == CborInfoIndefinite:
		return 0, nil
	default:
		return 0, ErrUnknownType
	}
	buf := p.scratch[:width]
	if p.src.Read(buf) != width {
		return 0, ErrUnexpectedEOF
	}
	switch width {
	case 1:
		return uint64(buf[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(buf)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(buf)), nil
	default:
		return binary.BigEndian.Uint64(buf), nil
	}
}

// readUint64 reads the argument of the next item, rejecting indefinite lengths
func (p *Parser) readUint64() (uint64, error) {
	_, info, arg, err := p.readHead()
	if err != nil {
		return 0, err
	}
	if info == CborInfoIndefinite {
		return 0, ErrUnknownType
	}
	return arg, nil
}

// checkSize rejects lengths that do not fit the platform int
func checkSize(n uint64) error {
	if n > math.MaxInt {
		return ErrNumberTooLarge
	}
	return nil
}

// readDouble reads a single or double precision float, widening singles
func (p *Parser) readDouble() (float64, error) {
	b, ok := p.src.Get()
	if !ok {
		return 0, ErrUnexpectedEOF
	}
	switch additionalInfo(b) {
	case CborSimpleFloat:
		buf := p.scratch[:4]
		if p.src.Read(buf) != 4 {
			return 0, ErrUnexpectedEOF
		}
		return float64(math.Float32frombits(binary.BigEndian.Uint32(buf))), nil
	case CborSimpleDouble:
		buf := p.scratch[:8]
		if p.src.Read(buf) != 8 {
			return 0, ErrUnexpectedEOF
		}
		return math.Float64frombits(binary.BigEndian.Uint64(buf)), nil
	}
	return 0, ErrUnknownType
}

// readBytes appends n bytes from the source to dst
func (p *Parser) readBytes(dst []byte, n uint64) ([]byte, error) {
	if err := checkSize(n); err != nil {
		return dst, err
	}
	for n > 0 {
		chunk := min(n, readChunkSize)
		start := len(dst)
		dst = slices.Grow(dst, int(chunk))[:start+int(chunk)]
		got := p.src.Read(dst[start:])
		if got != int(chunk) {
			return dst[:start+got], ErrUnexpectedEOF
		}
		n -= chunk
	}
	return dst, nil
}

// readStringChunks appends the chunks of an indefinite-length string whose
// initial byte has already been consumed. Every chunk must be a definite
// string of the same major type
func (p *Parser) readStringChunks(major uint8, dst []byte) ([]byte, error) {
	for {
		b, ok := p.src.Peek()
		if !ok {
			return dst, ErrUnexpectedEOF
		}
		if b == CborBreak {
			p.src.Ignore(1)
			return dst, nil
		}
		if majorType(b) != major || additionalInfo(b) == CborInfoIndefinite {
			return dst, ErrIllegalChunkedString
		}
		_, _, length, err := p.readHead()
		if err != nil {
			return dst, err
		}
		if dst, err = p.readBytes(dst, length); err != nil {
			return dst, err
		}
	}
}

// readStringBytes reads a definite or indefinite string of the given major
// type into dst. The additional info of the initial byte is returned so
// callers can tell the two forms apart
func (p *Parser) readStringBytes(major uint8, dst []byte) ([]byte, uint8, error) {
	_, info, length, err := p.readHead()
	if err != nil {
		return dst, info, err
	}
	if info == CborInfoIndefinite {
		dst, err = p.readStringChunks(major, dst)
		return dst, info, err
	}
	dst, err = p.readBytes(dst, length)
	return dst, info, err
}

// readTextString reads a UTF-8 text string and records it in the active
// string reference table when it qualifies
func (p *Parser) readTextString() (string, error) {
	buf, info, err := p.readStringBytes(CborTypeTextString, p.textBuf[:0])
	p.textBuf = buf
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", ErrInvalidUTF8TextString
	}
	s := string(buf)
	if table := p.stringRefs(); table != nil && info != CborInfoIndefinite &&
		len(s) >= minLengthForStringRef(uint64(table.size())) {
		table.addText(s)
	}
	return s, nil
}

// readByteString reads a byte string into the parser's reusable buffer and
// records it in the active string reference table when it qualifies
func (p *Parser) readByteString() ([]byte, error) {
	buf, info, err := p.readStringBytes(CborTypeByteString, p.bytesBuf[:0])
	p.bytesBuf = buf
	if err != nil {
		return nil, err
	}
	if table := p.stringRefs(); table != nil && info != CborInfoIndefinite &&
		len(buf) >= minLengthForStringRef(uint64(table.size())) {
		table.addBytes(buf)
	}
	return buf, nil
}

// readExponent reads the integer exponent of a decimal fraction or bigfloat
func (p *Parser) readExponent(invalid error) (int64, error) {
	b, ok := p.src.Peek()
	if !ok {
		return 0, ErrUnexpectedEOF
	}
	switch majorType(b) {
	case CborTypeUnsignedInt:
		val, err := p.readUint64()
		if err != nil {
			return 0, err
		}
		if val > math.MaxInt64 {
			return 0, invalid
		}
		return int64(val), nil
	case CborTypeNegativeInt:
		val, err := p.readUint64()
		if err != nil {
			return 0, err
		}
		if val > math.MaxInt64 {
			return 0, invalid
		}
		return -1 - int64(val), nil
	}
	return 0, invalid
}

// readMantissa reads the mantissa of a decimal fraction or bigfloat, which is
// either an integer or a tag 2/3 bignum
func (p *Parser) readMantissa(invalid error) (*big.Int, error) {
	b, ok := p.src.Peek()
	if !ok {
		return nil, ErrUnexpectedEOF
	}
	switch majorType(b) {
	case CborTypeUnsignedInt:
		val, err := p.readUint64()
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(val), nil
	case CborTypeNegativeInt:
		val, err := p.readUint64()
		if err != nil {
			return nil, err
		}
		return negativeFromUint(val), nil
	case CborTypeTag:
		tag, err := p.readUint64()
		if err != nil {
			return nil, err
		}
		if tag != CborTagPositiveBignum && tag != CborTagNegativeBignum {
			return nil, invalid
		}
		b, ok = p.src.Peek()
		if !ok {
			return nil, ErrUnexpectedEOF
		}
		if majorType(b) != CborTypeByteString {
			return nil, invalid
		}
		data, err := p.readByteString()
		if err != nil {
			return nil, err
		}
		return bignumFromBytes(data, tag == CborTagNegativeBignum), nil
	}
	return nil, invalid
}

// readFractionHeader consumes the array header of a decimal fraction or
// bigfloat, which must be a definite array of exactly two items
func (p *Parser) readFractionHeader(invalid error) error {
	_, info, length, err := p.readHead()
	if err != nil {
		return err
	}
	if info == CborInfoIndefinite || length != 2 {
		return invalid
	}
	return nil
}

// readDecimalFraction reads a tag 4 [exponent, mantissa] array and renders it
// as decimal text
func (p *Parser) readDecimalFraction() (string, error) {
	if err := p.readFractionHeader(ErrInvalidBigDec); err != nil {
		return "", err
	}
	exponent, err := p.readExponent(ErrInvalidBigDec)
	if err != nil {
		return "", err
	}
	mantissa, err := p.readMantissa(ErrInvalidBigDec)
	if err != nil {
		return "", err
	}
	return formatDecimalFraction(mantissa.String(), exponent)
}

// readBigfloat reads a tag 5 [exponent, mantissa] array and renders it as
// hex-float text
func (p *Parser) readBigfloat() (string, error) {
	if err := p.readFractionHeader(ErrInvalidBigFloat); err != nil {
		return "", err
	}
	exponent, err := p.readExponent(ErrInvalidBigFloat)
	if err != nil {
		return "", err
	}
	mantissa, err := p.readMantissa(ErrInvalidBigFloat)
	if err != nil {
		return "", err
	}
	return formatBigfloat(mantissa, exponent), nil
}

// readShape reads the dimensions array of a multi-dimensional array. The
// dimensions array may be definite or indefinite
func (p *Parser) readShape() error {
	p.shape = p.shape[:0]
	b, ok := p.src.Peek()
	if !ok {
		return ErrUnexpectedEOF
	}
	if majorType(b) != CborTypeArray {
		return ErrInvalidMultiDim
	}
	_, info, length, err := p.readHead()
	if err != nil {
		return err
	}
	if info == CborInfoIndefinite {
		for {
			b, ok := p.src.Peek()
			if !ok {
				return ErrUnexpectedEOF
			}
			if b == CborBreak {
				p.src.Ignore(1)
				return nil
			}
			if err := p.readDimension(); err != nil {
				return err
			}
		}
	}
	if err := checkSize(length); err != nil {
		return err
	}
	for range length {
		if err := p.readDimension(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) readDimension() error {
	b, ok := p.src.Peek()
	if !ok {
		return ErrUnexpectedEOF
	}
	if majorType(b) != CborTypeUnsignedInt {
		return ErrInvalidMultiDim
	}
	dim, err := p.readUint64()
	if err != nil {
		return err
	}
	p.shape = append(p.shape, dim)
	return nil
}
