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

// Package pipeline decodes many CBOR documents concurrently and delivers the
// results in submission order. Each document is decoded by one worker with
// its own parser; parsers are never shared between goroutines.
package pipeline

import (
	"context"
	"time"
)

// Stage represents a processing stage in the document pipeline.
type Stage interface {
	// Name returns the name of the stage for logging and metrics.
	Name() string
	// Process processes a single document item. Returns an error if processing fails.
	Process(ctx context.Context, item *DocumentItem) error
}

// StageFunc is an adapter that allows using ordinary functions as Stage implementations.
type StageFunc struct {
	name string
	fn   func(ctx context.Context, item *DocumentItem) error
}

// NewStageFunc creates a new StageFunc with the given name and processing function.
func NewStageFunc(name string, fn func(ctx context.Context, item *DocumentItem) error) *StageFunc {
	return &StageFunc{
		name: name,
		fn:   fn,
	}
}

// Name returns the name of the stage.
func (s *StageFunc) Name() string {
	return s.name
}

// Process calls the underlying function.
func (s *StageFunc) Process(ctx context.Context, item *DocumentItem) error {
	return s.fn(ctx, item)
}

// PipelineStats contains statistics about pipeline performance.
type PipelineStats struct {
	// DocumentsSubmitted is the total number of documents submitted.
	DocumentsSubmitted uint64
	// DocumentsDecoded is the total number of documents decoded without error.
	DocumentsDecoded uint64
	// DocumentsEmitted is the total number of documents handed to the emit
	// function without error.
	DocumentsEmitted uint64
	// DecodeErrors is the total number of decode errors.
	DecodeErrors uint64
	// EmitErrors is the total number of emit errors.
	EmitErrors uint64
	// BytesDecoded is the total input size of successfully decoded documents.
	BytesDecoded uint64
	// DecodeTime is the sum of the decode durations of all documents.
	DecodeTime time.Duration

	// PeakPending is the largest number of out-of-order documents held back
	// by the emit stage.
	PeakPending int

	// StartTime is when the pipeline was started.
	StartTime time.Time
}
