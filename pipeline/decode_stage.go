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
	"context"
	"errors"
	"time"
)

// ErrNilStage is returned when a nil stage is passed to a worker pool.
var ErrNilStage = errors.New("pipeline: nil stage")

// DecodeFunc renders a document into item.Writer(). It is called
// concurrently from several workers, each with a different item.
type DecodeFunc func(ctx context.Context, item *DocumentItem) error

// DecodeStage runs a DecodeFunc and records its result on the item.
type DecodeStage struct {
	decodeFunc DecodeFunc
}

// NewDecodeStage creates a new DecodeStage.
func NewDecodeStage(decodeFunc DecodeFunc) *DecodeStage {
	return &DecodeStage{
		decodeFunc: decodeFunc,
	}
}

// Name returns the stage name.
func (s *DecodeStage) Name() string {
	return "decode"
}

// Process decodes the document in the item.
func (s *DecodeStage) Process(ctx context.Context, item *DocumentItem) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	start := time.Now()
	err := s.decodeFunc(ctx, item)
	item.SetDecoded(err, time.Since(start))
	return err
}
