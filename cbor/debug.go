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

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/x448/float16"
)

// DumpEvents generates an indented listing of events for debugging purposes
func DumpEvents(events []Event, prefix string) string {
	var ret bytes.Buffer
	depth := 0
	for _, evt := range events {
		switch evt.Type {
		case EventEndObject, EventEndArray, EventEndMultiDim:
			if depth > 0 {
				depth--
			}
		}
		ret.WriteString(prefix)
		ret.WriteString(strings.Repeat("  ", depth))
		ret.WriteString(formatEvent(evt))
		ret.WriteString("\n")
		switch evt.Type {
		case EventBeginObject, EventBeginArray, EventBeginMultiDim:
			depth++
		}
	}
	return ret.String()
}

func formatEvent(evt Event) string {
	var detail string
	switch evt.Type {
	case EventBeginObject, EventBeginArray:
		if evt.Definite {
			detail = fmt.Sprintf("(length %d)", evt.Length)
		} else {
			detail = "(indefinite)"
		}
	case EventName:
		detail = fmt.Sprintf("%q", evt.String)
	case EventBool:
		detail = fmt.Sprintf("%t", evt.Bool)
	case EventUint64:
		detail = fmt.Sprintf("0x%x (%d)", evt.Uint64, evt.Uint64)
	case EventInt64:
		detail = fmt.Sprintf("%d", evt.Int64)
	case EventHalf:
		detail = fmt.Sprintf("%v (0x%04x)", float16.Frombits(evt.Half).Float32(), evt.Half)
	case EventDouble:
		detail = fmt.Sprintf("%v", evt.Double)
	case EventString:
		detail = fmt.Sprintf("%q", evt.String)
	case EventByteString:
		detail = fmt.Sprintf("<bytes> (length %d) %x", len(evt.Bytes), evt.Bytes)
	case EventTypedArray:
		if evt.TypedArray != nil {
			detail = fmt.Sprintf("%s (length %d)", evt.TypedArray.Type, evt.TypedArray.Len())
		}
	case EventBeginMultiDim:
		detail = fmt.Sprintf("shape %v", evt.Shape)
	}
	ret := evt.Type.String()
	if detail != "" {
		ret += " " + detail
	}
	if evt.Tag != SemanticTagNone {
		ret += " [" + evt.Tag.String() + "]"
	}
	return ret
}
