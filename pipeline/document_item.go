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

package pipeline

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// DocumentItem represents a document as it moves through the pipeline.
// The decode stage owns the item until it is forwarded, so the output buffer
// is written without locking. Result fields are protected by a mutex.
type DocumentItem struct {
	// Immutable fields (set at construction, never modified)
	name           string
	data           []byte
	sequenceNumber uint64

	// Written only by the decode stage
	output bytes.Buffer

	mu sync.RWMutex

	// Decode stage results
	decoded        bool
	decodeError    error
	decodeDuration time.Duration

	// Emit stage results
	emitted   bool
	emitError error
}

// NewDocumentItem creates a new DocumentItem. The data slice is not copied
// and must not be modified while the item is in the pipeline.
func NewDocumentItem(name string, data []byte, seq uint64) *DocumentItem {
	return &DocumentItem{
		name:           name,
		data:           data,
		sequenceNumber: seq,
	}
}

// Name returns the document name, usually its file name.
func (d *DocumentItem) Name() string {
	return d.name
}

// Data returns the raw CBOR bytes of the document.
func (d *DocumentItem) Data() []byte {
	return d.data
}

// SequenceNumber returns the sequence number assigned to this document.
func (d *DocumentItem) SequenceNumber() uint64 {
	return d.sequenceNumber
}

// Writer returns the buffer the decode function renders its output into.
func (d *DocumentItem) Writer() io.Writer {
	return &d.output
}

// Output returns the rendered output. Only valid once the item has left the
// decode stage.
func (d *DocumentItem) Output() []byte {
	return d.output.Bytes()
}

// SetDecoded records the result of the decode stage.
func (d *DocumentItem) SetDecoded(err error, duration time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.decoded = err == nil
	d.decodeError = err
	d.decodeDuration = duration
}

// IsDecoded returns true if the document was decoded without error.
func (d *DocumentItem) IsDecoded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.decoded
}

// DecodeError returns the decode error, if any.
func (d *DocumentItem) DecodeError() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.decodeError
}

// DecodeDuration returns the time spent in the decode function.
func (d *DocumentItem) DecodeDuration() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.decodeDuration
}

// SetEmitted records the result of the emit stage.
func (d *DocumentItem) SetEmitted(emitted bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.emitted = emitted
	d.emitError = err
}

// IsEmitted returns true if the emit function accepted the document.
func (d *DocumentItem) IsEmitted() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.emitted
}

// EmitError returns the emit error, if any.
func (d *DocumentItem) EmitError() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.emitError
}

// Err returns the first error recorded for the document.
func (d *DocumentItem) Err() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.decodeError != nil {
		return d.decodeError
	}
	return d.emitError
}
