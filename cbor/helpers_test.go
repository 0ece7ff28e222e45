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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/cborstream/cbor"
	"github.com/blinklabs-io/cborstream/internal/test"
	"github.com/blinklabs-io/cborstream/source"
)

// recordEvents decodes one item and returns its events without offsets
func recordEvents(t *testing.T, cborHex string, opts ...cbor.ParserOptionFunc) []cbor.Event {
	t.Helper()
	var rec cbor.Recorder
	p := cbor.NewParser(source.NewBytes(test.DecodeHexString(cborHex)), opts...)
	require.NoError(t, p.Parse(&rec))
	require.True(t, p.Done())
	return stripOffsets(rec.Events)
}

func stripOffsets(events []cbor.Event) []cbor.Event {
	for i := range events {
		events[i].Offset = 0
	}
	return events
}

// decodeJSON decodes one item from data into JSON text
func decodeJSON(data []byte, opts ...cbor.ParserOptionFunc) (string, error) {
	var sb strings.Builder
	p := cbor.NewParser(source.NewBytes(data), opts...)
	if err := p.Parse(cbor.NewJSONEncoder(&sb)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// parseError decodes one item and returns the error from Parse
func parseError(cborHex string, opts ...cbor.ParserOptionFunc) (*cbor.Parser, error) {
	p := cbor.NewParser(source.NewBytes(test.DecodeHexString(cborHex)), opts...)
	return p, p.Parse(cbor.DefaultVisitor{})
}
