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
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/cborstream/cbor"
	"github.com/blinklabs-io/cborstream/internal/test"
	"github.com/blinklabs-io/cborstream/source"
)

var parserTestDefs = []struct {
	name    string
	cborHex string
	events  []cbor.Event
}{
	{
		name:    "small uint",
		cborHex: "17",
		events:  []cbor.Event{{Type: cbor.EventUint64, Uint64: 23}},
	},
	{
		name:    "uint64",
		cborHex: "1bffffffffffffffff",
		events:  []cbor.Event{{Type: cbor.EventUint64, Uint64: math.MaxUint64}},
	},
	{
		name:    "negative int",
		cborHex: "3903e7",
		events:  []cbor.Event{{Type: cbor.EventInt64, Int64: -1000}},
	},
	{
		name:    "most negative int64",
		cborHex: "3b7fffffffffffffff",
		events:  []cbor.Event{{Type: cbor.EventInt64, Int64: math.MinInt64}},
	},
	{
		name:    "negative int beyond int64",
		cborHex: "3bffffffffffffffff",
		events: []cbor.Event{
			{
				Type:   cbor.EventString,
				String: "-18446744073709551616",
				Tag:    cbor.SemanticTagBigint,
			},
		},
	},
	{
		name:    "epoch time",
		cborHex: "c11a514b67b0",
		events: []cbor.Event{
			{
				Type:   cbor.EventUint64,
				Uint64: 1363896240,
				Tag:    cbor.SemanticTagEpochSecond,
				RawTag: 1,
			},
		},
	},
	{
		name:    "epoch time as double",
		cborHex: "c1fb41d452d9ec200000",
		events: []cbor.Event{
			{
				Type:   cbor.EventDouble,
				Double: 1363896240.5,
				Tag:    cbor.SemanticTagEpochSecond,
				RawTag: 1,
			},
		},
	},
	{
		name:    "date time string",
		cborHex: "c074323031332d30332d32315432303a30343a30305a",
		events: []cbor.Event{
			{
				Type:   cbor.EventString,
				String: "2013-03-21T20:04:00Z",
				Tag:    cbor.SemanticTagDateTime,
			},
		},
	},
	{
		name:    "uri",
		cborHex: "d82076687474703a2f2f7777772e6578616d706c652e636f6d",
		events: []cbor.Event{
			{
				Type:   cbor.EventString,
				String: "http://www.example.com",
				Tag:    cbor.SemanticTagURI,
				RawTag: 32,
			},
		},
	},
	{
		name:    "unknown tag is ignored",
		cborHex: "d9d9f71863",
		events: []cbor.Event{
			{Type: cbor.EventUint64, Uint64: 99, RawTag: 55799},
		},
	},
	{
		name:    "simple values",
		cborHex: "84f4f5f6f7",
		events: []cbor.Event{
			{Type: cbor.EventBeginArray, Length: 4, Definite: true},
			{Type: cbor.EventBool, Bool: false},
			{Type: cbor.EventBool, Bool: true},
			{Type: cbor.EventNull},
			{Type: cbor.EventNull, Tag: cbor.SemanticTagUndefined},
			{Type: cbor.EventEndArray},
		},
	},
	{
		name:    "floats",
		cborHex: "83f93c00fa47c35000fb3ff199999999999a",
		events: []cbor.Event{
			{Type: cbor.EventBeginArray, Length: 3, Definite: true},
			{Type: cbor.EventHalf, Half: 0x3c00},
			{Type: cbor.EventDouble, Double: 100000},
			{Type: cbor.EventDouble, Double: 1.1},
			{Type: cbor.EventEndArray},
		},
	},
	{
		name:    "text and byte strings",
		cborHex: "826449455446430102ff",
		events: []cbor.Event{
			{Type: cbor.EventBeginArray, Length: 2, Definite: true},
			{Type: cbor.EventString, String: "IETF"},
			{Type: cbor.EventByteString, Bytes: []byte{0x01, 0x02, 0xff}},
			{Type: cbor.EventEndArray},
		},
	},
	{
		name:    "indefinite strings",
		cborHex: "827f6261616162ff5f4201024103ff",
		events: []cbor.Event{
			{Type: cbor.EventBeginArray, Length: 2, Definite: true},
			{Type: cbor.EventString, String: "aab"},
			{Type: cbor.EventByteString, Bytes: []byte{0x01, 0x02, 0x03}},
			{Type: cbor.EventEndArray},
		},
	},
	{
		name:    "expected encodings on byte strings",
		cborHex: "83d54101d64102d74103",
		events: []cbor.Event{
			{Type: cbor.EventBeginArray, Length: 3, Definite: true},
			{Type: cbor.EventByteString, Bytes: []byte{0x01}, Tag: cbor.SemanticTagBase64URL, RawTag: 21},
			{Type: cbor.EventByteString, Bytes: []byte{0x02}, Tag: cbor.SemanticTagBase64, RawTag: 22},
			{Type: cbor.EventByteString, Bytes: []byte{0x03}, Tag: cbor.SemanticTagBase16, RawTag: 23},
			{Type: cbor.EventEndArray},
		},
	},
	{
		name:    "nested definite containers",
		cborHex: "a26161016162820203",
		events: []cbor.Event{
			{Type: cbor.EventBeginObject, Length: 2, Definite: true},
			{Type: cbor.EventName, String: "a"},
			{Type: cbor.EventUint64, Uint64: 1},
			{Type: cbor.EventName, String: "b"},
			{Type: cbor.EventBeginArray, Length: 2, Definite: true},
			{Type: cbor.EventUint64, Uint64: 2},
			{Type: cbor.EventUint64, Uint64: 3},
			{Type: cbor.EventEndArray},
			{Type: cbor.EventEndObject},
		},
	},
	{
		name:    "nested indefinite containers",
		cborHex: "bf61619f0102ffff",
		events: []cbor.Event{
			{Type: cbor.EventBeginObject},
			{Type: cbor.EventName, String: "a"},
			{Type: cbor.EventBeginArray},
			{Type: cbor.EventUint64, Uint64: 1},
			{Type: cbor.EventUint64, Uint64: 2},
			{Type: cbor.EventEndArray},
			{Type: cbor.EventEndObject},
		},
	},
	{
		name:    "positive bignum",
		cborHex: "c2420100",
		events: []cbor.Event{
			{Type: cbor.EventString, String: "256", Tag: cbor.SemanticTagBigint, RawTag: 2},
		},
	},
	{
		name:    "negative bignum",
		cborHex: "c3420100",
		events: []cbor.Event{
			{Type: cbor.EventString, String: "-257", Tag: cbor.SemanticTagBigint, RawTag: 3},
		},
	},
	{
		name:    "decimal fraction",
		cborHex: "c48221196ab3",
		events: []cbor.Event{
			{Type: cbor.EventString, String: "273.15", Tag: cbor.SemanticTagBigdec, RawTag: 4},
		},
	},
	{
		name:    "decimal fraction with bignum mantissa",
		cborHex: "c48221c3420100",
		events: []cbor.Event{
			{Type: cbor.EventString, String: "-2.57", Tag: cbor.SemanticTagBigdec, RawTag: 4},
		},
	},
	{
		name:    "bigfloat",
		cborHex: "c5822003",
		events: []cbor.Event{
			{Type: cbor.EventString, String: "0x3p-1", Tag: cbor.SemanticTagBigfloat, RawTag: 5},
		},
	},
	{
		name:    "multi-dimensional row major",
		cborHex: "d8288282020386010203040506",
		events: []cbor.Event{
			{Type: cbor.EventBeginMultiDim, Shape: []uint64{2, 3}, Tag: cbor.SemanticTagMultiDimRowMajor, RawTag: 40},
			{Type: cbor.EventBeginArray, Length: 6, Definite: true},
			{Type: cbor.EventUint64, Uint64: 1},
			{Type: cbor.EventUint64, Uint64: 2},
			{Type: cbor.EventUint64, Uint64: 3},
			{Type: cbor.EventUint64, Uint64: 4},
			{Type: cbor.EventUint64, Uint64: 5},
			{Type: cbor.EventUint64, Uint64: 6},
			{Type: cbor.EventEndArray},
			{Type: cbor.EventEndMultiDim},
		},
	},
	{
		name:    "multi-dimensional column major with indefinite shape",
		cborHex: "d90410829f0201ff820102",
		events: []cbor.Event{
			{Type: cbor.EventBeginMultiDim, Shape: []uint64{2, 1}, Tag: cbor.SemanticTagMultiDimColumnMajor, RawTag: 1040},
			{Type: cbor.EventBeginArray, Length: 2, Definite: true},
			{Type: cbor.EventUint64, Uint64: 1},
			{Type: cbor.EventUint64, Uint64: 2},
			{Type: cbor.EventEndArray},
			{Type: cbor.EventEndMultiDim},
		},
	},
	{
		name:    "unsupported typed array falls back to byte string",
		cborHex: "d84c4101",
		events: []cbor.Event{
			{Type: cbor.EventByteString, Bytes: []byte{0x01}, RawTag: 0x4c},
		},
	},
}

func TestParserEvents(t *testing.T) {
	for _, testDef := range parserTestDefs {
		t.Run(testDef.name, func(t *testing.T) {
			events := recordEvents(t, testDef.cborHex)
			assert.Equal(t, testDef.events, events)
		})
	}
}

var parserErrorTestDefs = []struct {
	name    string
	cborHex string
	err     error
	offset  int64
}{
	{name: "empty input", cborHex: "", err: cbor.ErrUnexpectedEOF, offset: 0},
	{name: "truncated array", cborHex: "830102", err: cbor.ErrUnexpectedEOF, offset: 3},
	{name: "truncated argument", cborHex: "1901", err: cbor.ErrUnexpectedEOF, offset: 2},
	{name: "truncated uint64", cborHex: "1b0000", err: cbor.ErrUnexpectedEOF, offset: 3},
	{name: "truncated half", cborHex: "f93c", err: cbor.ErrUnexpectedEOF, offset: 2},
	{name: "truncated single", cborHex: "fa3f", err: cbor.ErrUnexpectedEOF, offset: 2},
	{name: "truncated double", cborHex: "fb3ff00000", err: cbor.ErrUnexpectedEOF, offset: 5},
	{name: "double marker only", cborHex: "fb", err: cbor.ErrUnexpectedEOF, offset: 1},
	{name: "truncated double in array", cborHex: "82fb3ff0", err: cbor.ErrUnexpectedEOF, offset: 4},
	{name: "truncated string", cborHex: "6261", err: cbor.ErrUnexpectedEOF, offset: 2},
	{name: "missing break", cborHex: "9f01", err: cbor.ErrUnexpectedEOF, offset: 2},
	{name: "missing map value", cborHex: "a16161", err: cbor.ErrUnexpectedEOF, offset: 3},
	{name: "invalid utf-8", cborHex: "62c328", err: cbor.ErrInvalidUTF8TextString, offset: 3},
	{name: "chunk of wrong type", cborHex: "7f4161ff", err: cbor.ErrIllegalChunkedString, offset: 1},
	{name: "nested indefinite chunk", cborHex: "5f5fffff", err: cbor.ErrIllegalChunkedString, offset: 1},
	{name: "reserved additional info", cborHex: "1c", err: cbor.ErrUnknownType, offset: 1},
	{name: "unassigned simple value", cborHex: "f0", err: cbor.ErrUnknownType, offset: 0},
	{name: "one byte simple value", cborHex: "f820", err: cbor.ErrUnknownType, offset: 0},
	{name: "stray break", cborHex: "ff", err: cbor.ErrUnknownType, offset: 0},
	{name: "huge array length", cborHex: "9bffffffffffffffff", err: cbor.ErrNumberTooLarge, offset: 9},
	{name: "huge string length", cborHex: "5bffffffffffffffff", err: cbor.ErrNumberTooLarge, offset: 9},
	{name: "string ref with empty table", cborHex: "d9010082626162d81900", err: cbor.ErrStringRefTooLarge, offset: 10},
	{name: "decimal fraction of wrong length", cborHex: "c4830102", err: cbor.ErrInvalidBigDec, offset: 2},
	{name: "decimal fraction with text mantissa", cborHex: "c482016161", err: cbor.ErrInvalidBigDec, offset: 3},
	{name: "decimal fraction with exponent too large", cborHex: "c4821a8000000001", err: cbor.ErrInvalidBigDec, offset: 8},
	{name: "bigfloat with wrong mantissa tag", cborHex: "c58201c14101", err: cbor.ErrInvalidBigFloat, offset: 4},
	{name: "typed array with partial element", cborHex: "d84143000102", err: cbor.ErrInvalidTypedArray, offset: 6},
	{name: "multi-dim of wrong length", cborHex: "d828838101010101", err: cbor.ErrInvalidMultiDim, offset: 3},
	{name: "multi-dim without shape array", cborHex: "d828820101", err: cbor.ErrInvalidMultiDim, offset: 3},
	{name: "multi-dim with negative dimension", cborHex: "d8288281208101", err: cbor.ErrInvalidMultiDim, offset: 4},
}

func TestParserErrors(t *testing.T) {
	for _, testDef := range parserErrorTestDefs {
		t.Run(testDef.name, func(t *testing.T) {
			p, err := parseError(testDef.cborHex)
			require.Error(t, err)
			assert.ErrorIs(t, err, testDef.err)
			var decErr *cbor.DecodeError
			require.ErrorAs(t, err, &decErr)
			assert.Equal(t, testDef.offset, decErr.Offset)
			assert.False(t, p.Done())
			assert.True(t, p.Stopped())
		})
	}
}

func TestParserMaxNestingDepth(t *testing.T) {
	_, err := parseError("818100", cbor.WithMaxNestingDepth(2))
	require.NoError(t, err)
	_, err = parseError("81818100", cbor.WithMaxNestingDepth(2))
	assert.ErrorIs(t, err, cbor.ErrMaxNestingDepthExceeded)
	// Keys decoded as JSON share the limit
	_, err = parseError("a1818100f6", cbor.WithMaxNestingDepth(2))
	assert.ErrorIs(t, err, cbor.ErrMaxNestingDepthExceeded)
	_, err = parseError("a18100f6", cbor.WithMaxNestingDepth(2))
	require.NoError(t, err)
}

func TestParserDefaultMaxNestingDepth(t *testing.T) {
	deep := bytes.Repeat([]byte{0x81}, cbor.DefaultMaxNestingDepth)
	deep = append(deep, 0x00)
	p := cbor.NewParser(source.NewBytes(deep))
	require.NoError(t, p.Parse(cbor.DefaultVisitor{}))
	tooDeep := append([]byte{0x81}, deep...)
	p = cbor.NewParser(source.NewBytes(tooDeep))
	assert.ErrorIs(t, p.Parse(cbor.DefaultVisitor{}), cbor.ErrMaxNestingDepthExceeded)
}

func TestParserDefiniteIndefiniteEquivalence(t *testing.T) {
	testDefs := []struct {
		definite   string
		indefinite string
	}{
		// [1, [2, 3]]
		{definite: "8201820203", indefinite: "9f019f0203ffff"},
		// {"a": 1, "b": [2]}
		{definite: "a261610161628102", indefinite: "bf61610161629f02ffff"},
		// "abc" and h'010203'
		{definite: "826361626343010203", indefinite: "9f7f6161626263ff5f4101420203ffff"},
	}
	normalize := func(events []cbor.Event) []cbor.Event {
		for i := range events {
			events[i].Length = 0
			events[i].Definite = false
		}
		return events
	}
	for _, testDef := range testDefs {
		definite := normalize(recordEvents(t, testDef.definite))
		indefinite := normalize(recordEvents(t, testDef.indefinite))
		assert.Equal(t, definite, indefinite)
	}
}

func TestParserRoundTrip(t *testing.T) {
	values := []any{
		uint64(0),
		int64(-24),
		"hello",
		[]byte{0xde, 0xad},
		true,
		nil,
		[]any{uint64(1), "two", []any{false}},
		map[string]any{"a": uint64(1), "b": []any{"c"}},
		float64(1.5),
	}
	for _, value := range values {
		var vb cbor.ValueBuilder
		p := cbor.NewParser(source.NewBytes(test.EncodeCbor(value)))
		require.NoError(t, p.Parse(&vb))
		require.True(t, p.Done())
		if value == nil {
			assert.Nil(t, vb.Value())
			continue
		}
		switch v := value.(type) {
		case float64:
			// The encoder picks the shortest float form
			assert.InDelta(t, v, vb.Value(), 0)
		default:
			assert.Equal(t, value, vb.Value())
		}
	}
}

type stopAfter struct {
	cbor.DefaultVisitor
	limit int
	count int
}

func (s *stopAfter) action() (cbor.Action, error) {
	s.count++
	if s.count == s.limit {
		return cbor.Stop, nil
	}
	return cbor.Continue, nil
}

func (s *stopAfter) BeginArray(uint64, bool, cbor.SemanticTag, cbor.Context) (cbor.Action, error) {
	return s.action()
}

func (s *stopAfter) EndArray(cbor.Context) (cbor.Action, error) {
	return s.action()
}

func (s *stopAfter) Uint64Value(uint64, cbor.SemanticTag, cbor.Context) (cbor.Action, error) {
	return s.action()
}

func TestParserStopAndRestart(t *testing.T) {
	sink := &stopAfter{limit: 3}
	src := source.NewBytes(test.DecodeHexString("8401020304"))
	p := cbor.NewParser(src)
	require.NoError(t, p.Parse(sink))
	assert.Equal(t, 3, sink.count)
	assert.True(t, p.Stopped())
	assert.False(t, p.Done())
	assert.Equal(t, int64(3), src.Position())
	// Parse without Restart does nothing
	require.NoError(t, p.Parse(sink))
	assert.Equal(t, 3, sink.count)
	p.Restart()
	require.NoError(t, p.Parse(sink))
	assert.Equal(t, 6, sink.count)
	assert.True(t, p.Done())
}

func TestParserStopOnBeginArray(t *testing.T) {
	sink := &stopAfter{limit: 1}
	src := source.NewBytes(test.DecodeHexString("8401020304"))
	p := cbor.NewParser(src)
	require.NoError(t, p.Parse(sink))
	// No element is read after the array header
	assert.Equal(t, 1, sink.count)
	assert.Equal(t, int64(1), src.Position())
	assert.True(t, p.Stopped())
	assert.False(t, p.Done())
}

type failOnString struct {
	cbor.DefaultVisitor
}

var errVisitor = errors.New("visitor failed")

func (failOnString) StringValue(string, cbor.SemanticTag, cbor.Context) (cbor.Action, error) {
	return cbor.Stop, errVisitor
}

func TestParserVisitorError(t *testing.T) {
	p := cbor.NewParser(source.NewBytes(test.DecodeHexString("82016161")))
	err := p.Parse(failOnString{})
	require.ErrorIs(t, err, errVisitor)
	var decErr *cbor.DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, int64(4), decErr.Offset)
	assert.False(t, p.Done())
}

func TestParserSequenceReset(t *testing.T) {
	src := source.NewBytes(test.DecodeHexString("0182020363616263"))
	p := cbor.NewParser(src)
	var items []any
	for !src.EOF() {
		var vb cbor.ValueBuilder
		p.Reset()
		require.NoError(t, p.Parse(&vb))
		require.True(t, p.Done())
		items = append(items, vb.Value())
	}
	assert.Equal(t, []any{uint64(1), []any{uint64(2), uint64(3)}, "abc"}, items)
	assert.Equal(t, 1, p.Level())
}

func TestParserResetSource(t *testing.T) {
	p := cbor.NewParser(source.NewBytes(test.DecodeHexString("8301")))
	require.Error(t, p.Parse(cbor.DefaultVisitor{}))
	var vb cbor.ValueBuilder
	p.ResetSource(source.NewBytes(test.DecodeHexString("820102")))
	require.NoError(t, p.Parse(&vb))
	assert.Equal(t, []any{uint64(1), uint64(2)}, vb.Value())
}

func TestParserReaderSource(t *testing.T) {
	data := test.DecodeHexString("a26161016162820203")
	var vb cbor.ValueBuilder
	p := cbor.NewParser(source.NewReader(iotest.OneByteReader(bytes.NewReader(data))))
	require.NoError(t, p.Parse(&vb))
	assert.Equal(
		t,
		map[string]any{"a": uint64(1), "b": []any{uint64(2), uint64(3)}},
		vb.Value(),
	)
}

func TestParserReaderError(t *testing.T) {
	errRead := errors.New("read failed")
	r := io.MultiReader(
		bytes.NewReader(test.DecodeHexString("8301")),
		iotest.ErrReader(errRead),
	)
	p := cbor.NewParser(source.NewReader(r))
	err := p.Parse(cbor.DefaultVisitor{})
	assert.ErrorIs(t, err, cbor.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, errRead)
}

type levelRecorder struct {
	cbor.DefaultVisitor
	parser *cbor.Parser
	levels []int
}

func (l *levelRecorder) Uint64Value(uint64, cbor.SemanticTag, cbor.Context) (cbor.Action, error) {
	l.levels = append(l.levels, l.parser.Level())
	return cbor.Continue, nil
}

func TestParserLevel(t *testing.T) {
	// [1, [2, {"a": 3}]]
	p := cbor.NewParser(source.NewBytes(test.DecodeHexString("82018202a1616103")))
	lr := &levelRecorder{parser: p}
	require.NoError(t, p.Parse(lr))
	assert.Equal(t, []int{2, 3, 4}, lr.levels)
}

func TestParserLargeDeclaredLength(t *testing.T) {
	// A 4 GiB byte string header followed by a few bytes
	_, err := parseError("5affffffff0102")
	assert.ErrorIs(t, err, cbor.ErrUnexpectedEOF)
}
