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
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Limits applied when rendering decimal fractions
const (
	decimalMinExp = -4
	decimalMaxExp = 17
)

var bigOne = big.NewInt(1)

// bignumFromBytes interprets data as a big-endian unsigned magnitude. For
// negative bignums (tag 3) the value is -1 - n
func bignumFromBytes(data []byte, negative bool) *big.Int {
	n := new(big.Int).SetBytes(data)
	if negative {
		n.Add(n, bigOne)
		n.Neg(n)
	}
	return n
}

// negativeFromUint returns -1 - n for the argument of a major type 1 integer
func negativeFromUint(n uint64) *big.Int {
	ret := new(big.Int).SetUint64(n)
	ret.Add(ret, bigOne)
	return ret.Neg(ret)
}

// formatDecimalFraction renders mantissa * 10^exponent. mantissa is a base 10
// integer with an optional leading minus sign
func formatDecimalFraction(mantissa string, exponent int64) (string, error) {
	if mantissa == "" ||
		len(mantissa) >= math.MaxInt32 ||
		exponent >= math.MaxInt32 ||
		exponent <= math.MinInt32 {
		return "", ErrInvalidBigDec
	}
	var sb strings.Builder
	digits := mantissa
	if digits[0] == '-' {
		sb.WriteByte('-')
		digits = digits[1:]
	}
	if digits == "" {
		return "", ErrInvalidBigDec
	}
	prettifyDecimal(&sb, digits, int(exponent))
	return sb.String(), nil
}

// prettifyDecimal writes digits * 10^k, placing the decimal point inline
// when the result stays within decimalMinExp and decimalMaxExp and falling
// back to scientific notation otherwise
func prettifyDecimal(sb *strings.Builder, digits string, k int) {
	nbDigits := len(digits)
	// Position of the decimal point relative to the first digit
	kk := nbDigits + k
	switch {
	case nbDigits <= kk && kk <= decimalMaxExp:
		sb.WriteString(digits)
		for i := nbDigits; i < kk; i++ {
			sb.WriteByte('0')
		}
		sb.WriteString(".0")
	case 0 < kk && kk <= decimalMaxExp:
		sb.WriteString(digits[:kk])
		sb.WriteByte('.')
		sb.WriteString(digits[kk:])
	case decimalMinExp < kk && kk <= 0:
		sb.WriteString("0.")
		for i := kk; i < 0; i++ {
			sb.WriteByte('0')
		}
		sb.WriteString(digits)
	case nbDigits == 1:
		sb.WriteByte(digits[0])
		sb.WriteByte('e')
		writeExponent(sb, kk-1)
	default:
		sb.WriteByte(digits[0])
		sb.WriteByte('.')
		sb.WriteString(digits[1:])
		sb.WriteByte('e')
		writeExponent(sb, kk-1)
	}
}

// writeExponent writes a signed exponent with at least two digits
func writeExponent(sb *strings.Builder, exp int) {
	if exp < 0 {
		sb.WriteByte('-')
		exp = -exp
	} else {
		sb.WriteByte('+')
	}
	if exp < 10 {
		sb.WriteByte('0')
	}
	sb.WriteString(strconv.Itoa(exp))
}

// formatBigfloat renders mantissa * 2^exponent as hex-float text, for
// example 0x3p-1. The exponent is written in hexadecimal as well
func formatBigfloat(mantissa *big.Int, exponent int64) string {
	var sb strings.Builder
	if mantissa.Sign() < 0 {
		sb.WriteByte('-')
	}
	sb.WriteString("0x")
	sb.WriteString(strings.ToUpper(new(big.Int).Abs(mantissa).Text(16)))
	sb.WriteByte('p')
	if exponent < 0 {
		sb.WriteByte('-')
		// Negating through uint64 keeps math.MinInt64 intact
		sb.WriteString(
			strings.ToUpper(strconv.FormatUint(uint64(-(exponent+1))+1, 16)),
		)
	} else {
		sb.WriteString(strings.ToUpper(strconv.FormatUint(uint64(exponent), 16)))
	}
	return sb.String()
}
