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

package cborstream_test

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/cborstream"
	"github.com/blinklabs-io/cborstream/cbor"
	"github.com/blinklabs-io/cborstream/internal/test"
)

type stopVisitor struct {
	cbor.DefaultVisitor
}

func (stopVisitor) BeginArray(uint64, bool, cbor.SemanticTag, cbor.Context) (cbor.Action, error) {
	return cbor.Stop, nil
}

func TestDecode(t *testing.T) {
	var b cbor.ValueBuilder
	n, err := cborstream.Decode(test.DecodeHexString("8201a1616102ff"), &b)
	require.NoError(t, err)
	// Trailing bytes are left alone
	assert.Equal(t, 6, n)
	assert.Equal(t, []any{uint64(1), map[string]any{"a": uint64(2)}}, b.Value())
}

func TestDecodeStop(t *testing.T) {
	n, err := cborstream.Decode(test.DecodeHexString("83010203"), stopVisitor{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDecodeError(t *testing.T) {
	n, err := cborstream.Decode(test.DecodeHexString("8301"), cbor.DefaultVisitor{})
	require.ErrorIs(t, err, cbor.ErrUnexpectedEOF)
	assert.Equal(t, 2, n)
}

func TestDecodeReader(t *testing.T) {
	var b cbor.ValueBuilder
	err := cborstream.DecodeReader(
		iotest.OneByteReader(bytes.NewReader(test.DecodeHexString("6568656c6c6f"))),
		&b,
	)
	require.NoError(t, err)
	assert.Equal(t, "hello", b.Value())
}

func TestToJSON(t *testing.T) {
	out, err := cborstream.ToJSON(test.DecodeHexString("a2616101616282f5f6"))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":[true,null]}`, out)
	_, err = cborstream.ToJSON(test.DecodeHexString("a261"))
	assert.Error(t, err)
	// Nesting limit is applied through the options
	_, err = cborstream.ToJSON(
		test.DecodeHexString("818181818101"),
		cbor.WithMaxNestingDepth(2),
	)
	assert.ErrorIs(t, err, cbor.ErrMaxNestingDepthExceeded)
	// Cursor mode cannot cut the rendering short
	out, err = cborstream.ToJSON(
		test.DecodeHexString("a2616101616282f5f6"),
		cbor.WithCursorMode(true),
	)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":[true,null]}`, out)
}

func TestDecodeSequence(t *testing.T) {
	var rec cbor.Recorder
	count, err := cborstream.DecodeSequence(
		bytes.NewReader(test.DecodeHexString("0182020363616263")),
		&rec,
	)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, rec.Events, 6)
	assert.Equal(t, uint64(1), rec.Events[0].Uint64)
	assert.Equal(t, "abc", rec.Events[5].String)
}

func TestDecodeSequenceEmpty(t *testing.T) {
	count, err := cborstream.DecodeSequence(bytes.NewReader(nil), cbor.DefaultVisitor{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDecodeSequenceTruncated(t *testing.T) {
	count, err := cborstream.DecodeSequence(
		bytes.NewReader(test.DecodeHexString("018202038201")),
		cbor.DefaultVisitor{},
	)
	assert.ErrorIs(t, err, cbor.ErrUnexpectedEOF)
	assert.Equal(t, 2, count)
}

func TestDecodeSequenceStop(t *testing.T) {
	count, err := cborstream.DecodeSequence(
		bytes.NewReader(test.DecodeHexString("01820203")),
		stopVisitor{},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDecodeSequenceReadError(t *testing.T) {
	errTest := errors.New("test error")
	count, err := cborstream.DecodeSequence(
		iotest.ErrReader(errTest),
		cbor.DefaultVisitor{},
	)
	assert.ErrorIs(t, err, errTest)
	assert.Equal(t, 0, count)
}
