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
	"log/slog"
	"sync"
)

// ErrPendingLimitExceeded is returned when the emit stage holds back more
// out-of-order documents than allowed.
var ErrPendingLimitExceeded = errors.New("pipeline: pending document limit exceeded")

// EmitFunc is called with every document in sequence order, whether or not
// it decoded successfully.
type EmitFunc func(*DocumentItem) error

// EmitStage buffers decoded documents and emits them in sequence order.
// Process must be called from a single goroutine; EmitStageRunner provides
// this guarantee.
type EmitStage struct {
	emitFunc   EmitFunc
	maxPending int
	mu         sync.Mutex
	// pending holds out-of-order items waiting to be emitted
	pending map[uint64]*DocumentItem
	// nextSequence is the next sequence number to emit
	nextSequence uint64
}

// NewEmitStage creates a new EmitStage. maxPending limits the number of
// out-of-order documents that can be buffered; 0 means unlimited.
func NewEmitStage(emitFunc EmitFunc, maxPending int) *EmitStage {
	return &EmitStage{
		emitFunc:   emitFunc,
		maxPending: maxPending,
		pending:    make(map[uint64]*DocumentItem),
	}
}

// Name returns the stage name.
func (s *EmitStage) Name() string {
	return "emit"
}

// Process buffers the item and returns every item that is now in order, each
// already passed to the emit function. The item stays buffered even when
// ErrPendingLimitExceeded is returned so that no sequence gap is created.
func (s *EmitStage) Process(ctx context.Context, item *DocumentItem) ([]*DocumentItem, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	s.pending[item.SequenceNumber()] = item
	var ready []*DocumentItem
	for {
		next, ok := s.pending[s.nextSequence]
		if !ok {
			break
		}
		delete(s.pending, s.nextSequence)
		s.nextSequence++
		ready = append(ready, next)
	}
	pendingCount := len(s.pending)
	s.mu.Unlock()

	for _, next := range ready {
		s.emit(next)
	}
	if s.maxPending > 0 && pendingCount > s.maxPending {
		return ready, ErrPendingLimitExceeded
	}
	return ready, nil
}

func (s *EmitStage) emit(item *DocumentItem) {
	if s.emitFunc == nil {
		item.SetEmitted(true, nil)
		return
	}
	err := s.emitFunc(item)
	item.SetEmitted(err == nil, err)
}

// PendingCount returns the number of items waiting to be emitted.
func (s *EmitStage) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// EmitStageRunner runs the emit stage as a single goroutine.
type EmitStageRunner struct {
	stage   *EmitStage
	input   <-chan *DocumentItem
	output  chan<- *DocumentItem
	metrics *PipelineMetrics
	logger  *slog.Logger
	done    chan struct{}
}

// NewEmitStageRunner creates a new runner for the emit stage. A nil output
// channel discards emitted items.
func NewEmitStageRunner(
	stage *EmitStage,
	input <-chan *DocumentItem,
	output chan<- *DocumentItem,
	metrics *PipelineMetrics,
	logger *slog.Logger,
) *EmitStageRunner {
	return &EmitStageRunner{
		stage:   stage,
		input:   input,
		output:  output,
		metrics: metrics,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Start starts the runner goroutine.
func (r *EmitStageRunner) Start(ctx context.Context) {
	go r.run(ctx)
}

// Stop waits for the runner to exit. The runner exits once its input
// channel is closed and drained, or the context is cancelled.
func (r *EmitStageRunner) Stop() {
	<-r.done
}

func (r *EmitStageRunner) run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-r.input:
			if !ok {
				return
			}
			ready, err := r.stage.Process(ctx, item)
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return
			}
			if errors.Is(err, ErrPendingLimitExceeded) {
				r.logger.Warn(
					"emit stage is holding back documents",
					"component", "pipeline",
					"pending", r.stage.PendingCount(),
					"error", err,
				)
			}
			if r.metrics != nil {
				r.metrics.UpdatePending(r.stage.PendingCount())
			}
			for _, next := range ready {
				if r.metrics != nil {
					r.metrics.RecordEmit(next.EmitError())
				}
				if r.output == nil {
					continue
				}
				select {
				case r.output <- next:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
