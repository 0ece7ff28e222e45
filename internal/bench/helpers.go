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

// Package bench provides benchmarks and allocation regression tests for the
// streaming parser.
package bench

import (
	"fmt"

	"github.com/blinklabs-io/cborstream/cbor"
	"github.com/blinklabs-io/cborstream/internal/testdata"
	"github.com/blinklabs-io/cborstream/source"
)

// Fixture is a reusable parser bound to one test document. Decoding the same
// document repeatedly through a Fixture reuses the parser's buffers
type Fixture struct {
	Document testdata.Document
	src      *source.Bytes
	parser   *cbor.Parser
}

// LoadFixture returns a Fixture for the named test document
func LoadFixture(name string, opts ...cbor.ParserOptionFunc) (*Fixture, error) {
	doc, err := testdata.GetDocument(name)
	if err != nil {
		return nil, err
	}
	src := source.NewBytes(doc.Cbor)
	return &Fixture{
		Document: doc,
		src:      src,
		parser:   cbor.NewParser(src, opts...),
	}, nil
}

// MustLoadFixture loads a Fixture and panics on error.
// Use this in benchmark setup code.
func MustLoadFixture(name string, opts ...cbor.ParserOptionFunc) *Fixture {
	f, err := LoadFixture(name, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load %s fixture: %v", name, err))
	}
	return f
}

// Decode decodes the whole document into v
func (f *Fixture) Decode(v cbor.Visitor) error {
	f.src.Reset(f.Document.Cbor)
	f.parser.ResetSource(f.src)
	if err := f.parser.Parse(v); err != nil {
		return err
	}
	if !f.parser.Done() {
		return fmt.Errorf("%s: decoding stopped early", f.Document.Name)
	}
	return nil
}

// DocumentNames returns the names of all test documents
func DocumentNames() []string {
	docs := testdata.GetDocuments()
	ret := make([]string, 0, len(docs))
	for _, doc := range docs {
		ret = append(ret, doc.Name)
	}
	return ret
}
