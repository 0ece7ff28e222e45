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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blinklabs-io/cborstream/cbor"
)

func TestDumpEvents(t *testing.T) {
	testDefs := []struct {
		cborHex  string
		expected string
	}{
		{
			cborHex: "a2616182f5206162c101",
			expected: `> BeginObject (length 2)
>   Name "a"
>   BeginArray (length 2)
>     Bool true
>     Int64 -1
>   EndArray
>   Name "b"
>   Uint64 0x1 (1) [epoch-second]
> EndObject
`,
		},
		{
			cborHex: "9f5f4201024103ffff",
			expected: `> BeginArray (indefinite)
>   ByteString <bytes> (length 3) 010203
> EndArray
`,
		},
		{
			cborHex: "d82882810282f93e00d84842ff01",
			expected: `> BeginMultiDim shape [2] [multi-dim-row-major]
>   BeginArray (length 2)
>     Half 1.5 (0x3e00)
>     TypedArray int8 (length 2)
>   EndArray
> EndMultiDim
`,
		},
	}
	for _, testDef := range testDefs {
		events := recordEvents(t, testDef.cborHex)
		assert.Equal(t, testDef.expected, cbor.DumpEvents(events, "> "), "CBOR: %s", testDef.cborHex)
	}
}
