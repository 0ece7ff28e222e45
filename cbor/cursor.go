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

import "io"

// Cursor provides pull-style iteration over the events of one top-level item
type Cursor struct {
	parser *Parser
	rec    Recorder
	err    error
}

// NewCursor returns a Cursor reading from src. The parser always runs in
// cursor mode regardless of opts
func NewCursor(src Source, opts ...ParserOptionFunc) *Cursor {
	opts = append(opts, WithCursorMode(true))
	return &Cursor{
		parser: NewParser(src, opts...),
	}
}

// Next returns the next event. It returns io.EOF once the item is complete.
// A decode error is returned again by every later call
func (c *Cursor) Next() (Event, error) {
	if c.err != nil {
		return Event{}, c.err
	}
	for !c.parser.Done() {
		c.rec.Events = c.rec.Events[:0]
		c.parser.Restart()
		if err := c.parser.Parse(&c.rec); err != nil {
			c.err = err
			return Event{}, err
		}
		if len(c.rec.Events) > 0 {
			return c.rec.Events[0], nil
		}
	}
	return Event{}, io.EOF
}

// Done reports whether the current item has been completely read
func (c *Cursor) Done() bool {
	return c.parser.Done()
}

// Reset prepares the cursor to read the next item from the same source
func (c *Cursor) Reset() {
	c.err = nil
	c.parser.Reset()
}

// Position returns the number of source bytes consumed so far
func (c *Cursor) Position() int64 {
	return c.parser.Position()
}
