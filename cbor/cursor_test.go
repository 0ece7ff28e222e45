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

package cbor_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/cborstream/cbor"
	"github.com/blinklabs-io/cborstream/internal/test"
	"github.com/blinklabs-io/cborstream/source"
)

func readCursor(t *testing.T, c *cbor.Cursor) []cbor.Event {
	t.Helper()
	var ret []cbor.Event
	for {
		evt, err := c.Next()
		if err == io.EOF {
			return ret
		}
		require.NoError(t, err)
		ret = append(ret, evt)
	}
}

func TestCursorMatchesParser(t *testing.T) {
	for _, testDef := range parserTestDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data := test.DecodeHexString(testDef.cborHex)
			var rec cbor.Recorder
			p := cbor.NewParser(source.NewBytes(data))
			require.NoError(t, p.Parse(&rec))
			c := cbor.NewCursor(source.NewBytes(data))
			assert.Equal(t, rec.Events, readCursor(t, c))
			assert.True(t, c.Done())
			assert.Equal(t, int64(len(data)), c.Position())
		})
	}
}

func TestCursorNonStringKeys(t *testing.T) {
	c := cbor.NewCursor(source.NewBytes(test.DecodeHexString("a2820102036161f5")))
	events := stripOffsets(readCursor(t, c))
	assert.Equal(
		t,
		[]cbor.Event{
			{Type: cbor.EventBeginObject, Length: 2, Definite: true},
			{Type: cbor.EventName, String: "[1,2]"},
			{Type: cbor.EventUint64, Uint64: 3},
			{Type: cbor.EventName, String: "a"},
			{Type: cbor.EventBool, Bool: true},
			{Type: cbor.EventEndObject},
		},
		events,
	)
}

func TestCursorEOF(t *testing.T) {
	c := cbor.NewCursor(source.NewBytes(test.DecodeHexString("01")))
	evt, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), evt.Uint64)
	_, err = c.Next()
	assert.Equal(t, io.EOF, err)
	// Still at the end
	_, err = c.Next()
	assert.Equal(t, io.EOF, err)
}

func TestCursorStickyError(t *testing.T) {
	c := cbor.NewCursor(source.NewBytes(test.DecodeHexString("8201")))
	evt, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, cbor.EventBeginArray, evt.Type)
	_, err = c.Next()
	require.NoError(t, err)
	_, err = c.Next()
	require.ErrorIs(t, err, cbor.ErrUnexpectedEOF)
	_, err2 := c.Next()
	assert.Equal(t, err, err2)
}

func TestCursorSequence(t *testing.T) {
	src := source.NewBytes(test.DecodeHexString("0181f5"))
	c := cbor.NewCursor(src)
	first := stripOffsets(readCursor(t, c))
	assert.Equal(t, []cbor.Event{{Type: cbor.EventUint64, Uint64: 1}}, first)
	c.Reset()
	second := stripOffsets(readCursor(t, c))
	assert.Equal(
		t,
		[]cbor.Event{
			{Type: cbor.EventBeginArray, Length: 1, Definite: true},
			{Type: cbor.EventBool, Bool: true},
			{Type: cbor.EventEndArray},
		},
		second,
	)
	assert.True(t, src.EOF())
}
