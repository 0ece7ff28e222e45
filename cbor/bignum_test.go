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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDecimalFraction(t *testing.T) {
	testDefs := []struct {
		mantissa string
		exponent int64
		expected string
	}{
		{"27315", -2, "273.15"},
		{"-27315", -2, "-273.15"},
		{"15", 1, "150.0"},
		{"1", 0, "1.0"},
		{"1", -6, "1e-06"},
		{"5", -3, "0.005"},
		{"123", -3, "0.123"},
		{"1", 20, "1e+20"},
		{"12", 20, "1.2e+21"},
		{"12345", -10, "1.2345e-06"},
		{"1", 16, "10000000000000000.0"},
	}
	for _, testDef := range testDefs {
		out, err := formatDecimalFraction(testDef.mantissa, testDef.exponent)
		require.NoError(t, err)
		assert.Equal(
			t,
			testDef.expected,
			out,
			"mantissa %s exponent %d",
			testDef.mantissa,
			testDef.exponent,
		)
	}
}

func TestFormatDecimalFractionInvalid(t *testing.T) {
	_, err := formatDecimalFraction("", 0)
	assert.ErrorIs(t, err, ErrInvalidBigDec)
	_, err = formatDecimalFraction("-", 0)
	assert.ErrorIs(t, err, ErrInvalidBigDec)
	_, err = formatDecimalFraction("1", math.MaxInt32)
	assert.ErrorIs(t, err, ErrInvalidBigDec)
	_, err = formatDecimalFraction("1", math.MinInt32)
	assert.ErrorIs(t, err, ErrInvalidBigDec)
}

func TestFormatBigfloat(t *testing.T) {
	testDefs := []struct {
		mantissa int64
		exponent int64
		expected string
	}{
		{3, -1, "0x3p-1"},
		{-3, -1, "-0x3p-1"},
		{255, 16, "0xFFp10"},
		{1, 0, "0x1p0"},
		{1, math.MinInt64, "0x1p-8000000000000000"},
	}
	for _, testDef := range testDefs {
		assert.Equal(
			t,
			testDef.expected,
			formatBigfloat(big.NewInt(testDef.mantissa), testDef.exponent),
		)
	}
}

func TestBignumFromBytes(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	assert.Equal(t, "18446744073709551616", bignumFromBytes(data, false).String())
	assert.Equal(t, "-18446744073709551617", bignumFromBytes(data, true).String())
	assert.Equal(t, "0", bignumFromBytes(nil, false).String())
	assert.Equal(t, "-1", bignumFromBytes(nil, true).String())
	assert.Equal(t, "-18446744073709551616", negativeFromUint(math.MaxUint64).String())
}
