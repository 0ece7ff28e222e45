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

import "log/slog"

// DefaultMaxNestingDepth is the container nesting limit used when none is given
const DefaultMaxNestingDepth = 1024

// ParserOptionFunc is a type that represents functions that modify the Parser config
type ParserOptionFunc func(*Parser)

// WithMaxNestingDepth specifies how deeply arrays, maps and multi-dimensional
// arrays may nest before decoding fails
func WithMaxNestingDepth(depth int) ParserOptionFunc {
	return func(p *Parser) {
		p.maxNestingDepth = depth
	}
}

// WithLogger specifies the logger to use. If none is provided, slog.Default() is used
func WithLogger(logger *slog.Logger) ParserOptionFunc {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithCursorMode specifies whether Parse returns after every event. This is
// what Cursor uses to provide pull-style iteration
func WithCursorMode(cursorMode bool) ParserOptionFunc {
	return func(p *Parser) {
		p.cursorMode = cursorMode
	}
}
