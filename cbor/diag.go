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
	"math"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	diagMode     _cbor.DiagMode
	diagModeErr  error
	diagModeOnce sync.Once
)

func getDiagMode() (_cbor.DiagMode, error) {
	diagModeOnce.Do(func() {
		opts := _cbor.DiagOptions{
			ByteStringEncoding: _cbor.ByteStringBase16Encoding,
			CBORSequence:       true,
			MaxNestedLevels:    DefaultMaxNestingDepth,
			MaxArrayElements:   math.MaxInt32,
			MaxMapPairs:        math.MaxInt32,
		}
		diagMode, diagModeErr = opts.DiagMode()
	})
	return diagMode, diagModeErr
}

// Diagnose returns the extended diagnostic notation (RFC 8949 section 8) for
// data, which may be a CBOR sequence
func Diagnose(data []byte) (string, error) {
	dm, err := getDiagMode()
	if err != nil {
		return "", err
	}
	return dm.Diagnose(data)
}

// DiagnoseFirst returns the diagnostic notation for the first item in data
// along with the remaining bytes
func DiagnoseFirst(data []byte) (string, []byte, error) {
	dm, err := getDiagMode()
	if err != nil {
		return "", nil, err
	}
	return dm.DiagnoseFirst(data)
}
