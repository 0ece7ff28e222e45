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

// Package testdata provides generated CBOR documents shared by benchmarks and
// tests. Every document is deterministic so that allocation baselines and
// hashes stay stable between runs.
package testdata

import (
	"encoding/binary"
	"fmt"
	"math"

	_cbor "github.com/fxamacker/cbor/v2"
)

// Typed array tag for big-endian float64 elements
const tagFloat64BE = 0x52

// Document is a named CBOR test document
type Document struct {
	Name string
	Cbor []byte
	// Allocating is set when decoding necessarily allocates per item, for
	// example to materialize text strings
	Allocating bool
}

type txInput struct {
	_     struct{} `cbor:",toarray"`
	TxId  []byte
	Index uint64
}

type txOutput struct {
	Address []byte `cbor:"address"`
	Amount  uint64 `cbor:"amount"`
}

type transaction struct {
	Id       []byte            `cbor:"id"`
	Inputs   []txInput         `cbor:"inputs"`
	Outputs  []txOutput        `cbor:"outputs"`
	Fee      uint64            `cbor:"fee"`
	Ttl      int64             `cbor:"ttl"`
	Metadata map[uint64]string `cbor:"metadata"`
}

// fill returns n bytes derived from seed
func fill(seed uint64, n int) []byte {
	ret := make([]byte, n)
	state := seed*6364136223846793005 + 1442695040888963407
	for i := range ret {
		state = state*6364136223846793005 + 1442695040888963407
		ret[i] = byte(state >> 56)
	}
	return ret
}

func transactions(count int) []transaction {
	ret := make([]transaction, 0, count)
	for i := range count {
		seed := uint64(i)
		tx := transaction{
			Id:  fill(seed, 32),
			Fee: 150_000 + seed*17,
			Ttl: int64(i) - 50,
		}
		for j := range 3 {
			tx.Inputs = append(tx.Inputs, txInput{TxId: fill(seed+uint64(j)+1000, 32), Index: uint64(j)})
			tx.Outputs = append(tx.Outputs, txOutput{Address: fill(seed+uint64(j)+2000, 57), Amount: seed * 1_000_000})
		}
		if i%4 == 0 {
			tx.Metadata = map[uint64]string{
				674: fmt.Sprintf("message %d", i),
			}
		}
		ret = append(ret, tx)
	}
	return ret
}

func numericMatrix(rows, cols int) [][]any {
	ret := make([][]any, rows)
	for r := range rows {
		row := make([]any, cols)
		for c := range cols {
			v := int64(r*cols + c)
			switch c % 4 {
			case 0:
				row[c] = uint64(v) << (c % 40)
			case 1:
				row[c] = -v
			case 2:
				row[c] = float64(v) / 8
			default:
				row[c] = fill(uint64(v), c%16)
			}
		}
		ret[r] = row
	}
	return ret
}

func typedFloats(n int) _cbor.Tag {
	buf := make([]byte, 8*n)
	for i := range n {
		binary.BigEndian.PutUint64(buf[i*8:], math.Float64bits(math.Sqrt(float64(i))))
	}
	return _cbor.Tag{Number: tagFloat64BE, Content: buf}
}

func words(n int) []string {
	ret := make([]string, n)
	for i := range ret {
		ret[i] = fmt.Sprintf("word-%04d", i)
	}
	return ret
}

func mustEncode(v any) []byte {
	em, err := _cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("create encoder: %s", err))
	}
	data, err := em.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("encode document: %s", err))
	}
	return data
}

// GetDocuments returns the test documents
func GetDocuments() []Document {
	return []Document{
		{Name: "Transactions", Cbor: mustEncode(transactions(200)), Allocating: true},
		{Name: "Numeric", Cbor: mustEncode(numericMatrix(64, 64))},
		{Name: "TypedArray", Cbor: mustEncode(typedFloats(4096))},
		{Name: "Words", Cbor: mustEncode(words(1000)), Allocating: true},
	}
}

// GetDocument returns the named test document
func GetDocument(name string) (Document, error) {
	for _, doc := range GetDocuments() {
		if doc.Name == name {
			return doc, nil
		}
	}
	return Document{}, fmt.Errorf("unknown document: %s", name)
}
