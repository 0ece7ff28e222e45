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

package common

import (
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// NewHasher returns a 256-bit hasher for the named algorithm
func NewHasher(name string) (hash.Hash, error) {
	switch name {
	case HashBlake2b:
		return blake2b.New256(nil)
	case HashBlake3:
		return blake3.New(), nil
	}
	return nil, fmt.Errorf("unknown hash: %q", name)
}

// Digest returns the hex digest of data using the named algorithm
func Digest(name string, data []byte) (string, error) {
	h, err := NewHasher(name)
	if err != nil {
		return "", err
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
