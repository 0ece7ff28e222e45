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

// Package source provides pull-based byte cursors for the streaming CBOR parser.
//
// Both implementations satisfy cbor.Source. Neither is safe for concurrent use.
package source

import (
	"bufio"
	"errors"
	"io"
)

// Bytes is a cursor over an in-memory buffer
type Bytes struct {
	data []byte
	pos  int
}

// NewBytes returns a cursor positioned at the start of data. The buffer is not copied
func NewBytes(data []byte) *Bytes {
	return &Bytes{data: data}
}

// Reset repositions the cursor at the start of data
func (b *Bytes) Reset(data []byte) {
	b.data = data
	b.pos = 0
}

// Peek returns the next byte without consuming it
func (b *Bytes) Peek() (byte, bool) {
	if b.pos >= len(b.data) {
		return 0, false
	}
	return b.data[b.pos], true
}

// Get consumes and returns the next byte
func (b *Bytes) Get() (byte, bool) {
	if b.pos >= len(b.data) {
		return 0, false
	}
	c := b.data[b.pos]
	b.pos++
	return c, true
}

// Read copies up to len(p) bytes into p and returns the number copied
func (b *Bytes) Read(p []byte) int {
	n := copy(p, b.data[b.pos:])
	b.pos += n
	return n
}

// Ignore skips up to n bytes
func (b *Bytes) Ignore(n int) {
	if n <= 0 {
		return
	}
	b.pos = min(b.pos+n, len(b.data))
}

// Position returns the number of bytes consumed so far
func (b *Bytes) Position() int64 {
	return int64(b.pos)
}

// EOF reports whether every byte has been consumed
func (b *Bytes) EOF() bool {
	return b.pos >= len(b.data)
}

// Remaining returns the number of unread bytes
func (b *Bytes) Remaining() int {
	return len(b.data) - b.pos
}

// Data returns the underlying buffer
func (b *Bytes) Data() []byte {
	return b.data
}

// Reader is a cursor over an io.Reader. Reads are buffered and the first
// non-EOF error from the underlying reader is kept for Err
type Reader struct {
	r   *bufio.Reader
	pos int64
	err error
}

// NewReader wraps r. If r is already a *bufio.Reader it is used as-is
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

// NewReaderSize wraps r with a buffer of at least size bytes
func NewReaderSize(r io.Reader, size int) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, size)}
}

func (r *Reader) setErr(err error) {
	if err != nil && !errors.Is(err, io.EOF) && r.err == nil {
		r.err = err
	}
}

// Peek returns the next byte without consuming it
func (r *Reader) Peek() (byte, bool) {
	buf, err := r.r.Peek(1)
	if len(buf) == 0 {
		r.setErr(err)
		return 0, false
	}
	return buf[0], true
}

// Get consumes and returns the next byte
func (r *Reader) Get() (byte, bool) {
	c, err := r.r.ReadByte()
	if err != nil {
		r.setErr(err)
		return 0, false
	}
	r.pos++
	return c, true
}

// Read fills p as far as the underlying reader allows and returns the number
// of bytes read. A short count means the input ended or failed
func (r *Reader) Read(p []byte) int {
	n, err := io.ReadFull(r.r, p)
	r.pos += int64(n)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		r.setErr(err)
	}
	return n
}

// Ignore skips up to n bytes
func (r *Reader) Ignore(n int) {
	if n <= 0 {
		return
	}
	discarded, err := r.r.Discard(n)
	r.pos += int64(discarded)
	r.setErr(err)
}

// Position returns the number of bytes consumed so far
func (r *Reader) Position() int64 {
	return r.pos
}

// EOF reports whether the underlying reader has no more bytes
func (r *Reader) EOF() bool {
	_, ok := r.Peek()
	return !ok
}

// Err returns the first read error other than io.EOF, if any
func (r *Reader) Err() error {
	return r.err
}
