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

// Source is a forward-only byte cursor. See the source package for the
// in-memory and io.Reader implementations
type Source interface {
	// Peek returns the next byte without consuming it. ok is false at EOF
	Peek() (b byte, ok bool)
	// Get consumes and returns the next byte. ok is false at EOF
	Get() (b byte, ok bool)
	// Read fills p and returns the number of bytes read. A short count means EOF
	Read(p []byte) int
	// Ignore skips n bytes
	Ignore(n int)
	// Position returns the number of bytes consumed so far
	Position() int64
	EOF() bool
}

// sourceErr is implemented by sources that can fail for reasons other than EOF
type sourceErr interface {
	Err() error
}
