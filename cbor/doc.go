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

// Package cbor implements a streaming CBOR (RFC 8949) decoder.
//
// A Parser pulls bytes from a Source and delivers one event per decoded
// value to a Visitor, without building an intermediate tree. Containers are
// tracked on an explicit frame stack, so the depth of the input is bounded
// only by WithMaxNestingDepth and never by the goroutine stack.
//
// # Sinks
//
// Several visitors are provided:
//   - JSONEncoder: writes compact JSON text
//   - ValueBuilder: assembles nil, bool, numbers, strings, []any and map[string]any
//   - Recorder: keeps a copy of every event
//   - DefaultVisitor: ignores everything; embed it to handle a few events
//
// Cursor wraps a Parser in cursor mode to return one Event per call to Next.
//
// # Semantic tags
//
// Bignums (tags 2 and 3), decimal fractions (4) and bigfloats (5) are
// delivered as text. Typed arrays (RFC 8746 tags 64 to 87) are decoded into a
// reused TypedArray, and tags 40 and 1040 produce BeginMultiDim and
// EndMultiDim around the data item. String references (tags 25 and 256) are
// resolved before delivery, so visitors only ever see plain strings.
//
// Map keys that are not text are rendered as text: byte strings as base64url
// (or base64 or base16 under tags 22 and 23), anything else as its JSON text.
//
// # Stopping and resuming
//
// A visitor may return Stop to suspend decoding. Parse then returns nil and
// Stopped reports true; call Restart and Parse again to continue where it left
// off. Errors are returned as *DecodeError carrying the source offset.
//
// Diagnose renders data in diagnostic notation for debugging.
package cbor
