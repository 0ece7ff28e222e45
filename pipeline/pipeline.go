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
	"sync/atomic"
)

// ErrPipelineStopped is returned when trying to submit to a stopped pipeline.
var ErrPipelineStopped = errors.New("pipeline is stopped")

// ErrPipelineNotStarted is returned when trying to use a pipeline that hasn't been started.
var ErrPipelineNotStarted = errors.New("pipeline not started")

// ErrMissingDecodeFunc is returned by Start when no DecodeFunc is configured.
var ErrMissingDecodeFunc = errors.New("pipeline: no decode function configured")

// closedResultsChan is returned by Results() before Start() is called so
// callers never block on a nil channel.
var closedResultsChan = func() <-chan *DocumentItem {
	ch := make(chan *DocumentItem)
	close(ch)
	return ch
}()

// DocumentPipeline decodes documents in parallel and emits them in
// submission order.
type DocumentPipeline struct {
	config PipelineConfig

	// Stages
	decodeStage *DecodeStage
	emitStage   *EmitStage

	decodePool *workerPool
	emitRunner *EmitStageRunner

	// Channels
	submitChan  chan *DocumentItem
	decodedChan chan *DocumentItem
	resultsChan chan *DocumentItem

	metrics *PipelineMetrics

	// State
	sequenceCounter uint64
	ctx             context.Context
	cancel          context.CancelFunc
	started         atomic.Bool
	stopped         atomic.Bool
	mu              sync.Mutex   // protects Start/Close
	submitMu        sync.RWMutex // protects Submit against concurrent Close
}

// NewDocumentPipeline creates a new DocumentPipeline using functional options.
//
// Example:
//
//	p := NewDocumentPipeline(
//	    WithDecodeWorkers(4),
//	    WithDecodeFunc(render),
//	    WithEmitFunc(print),
//	)
func NewDocumentPipeline(opts ...PipelineOption) *DocumentPipeline {
	config := DefaultPipelineConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &DocumentPipeline{
		config:  config,
		metrics: NewPipelineMetrics(),
	}
}

// Start starts the pipeline processing.
func (p *DocumentPipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped.Load() {
		return ErrPipelineStopped
	}
	if p.started.Load() {
		return nil
	}
	if p.config.DecodeFunc == nil {
		return ErrMissingDecodeFunc
	}

	p.ctx, p.cancel = context.WithCancel(ctx)

	bufSize := p.config.BufferSize
	p.submitChan = make(chan *DocumentItem, bufSize)
	p.decodedChan = make(chan *DocumentItem, bufSize)
	p.resultsChan = make(chan *DocumentItem, bufSize)

	p.decodeStage = NewDecodeStage(p.config.DecodeFunc)
	p.emitStage = NewEmitStage(p.config.EmitFunc, p.config.MaxPendingDocuments)

	p.decodePool = newWorkerPool(
		p.decodeStage,
		p.config.DecodeWorkers,
		p.submitChan,
		p.decodedChan,
		p.metrics,
	)

	var output chan<- *DocumentItem
	if p.config.EmitFunc == nil {
		output = p.resultsChan
	}
	p.emitRunner = NewEmitStageRunner(
		p.emitStage,
		p.decodedChan,
		output,
		p.metrics,
		p.config.Logger,
	)

	p.decodePool.start(p.ctx) //nolint:contextcheck
	p.emitRunner.Start(p.ctx) //nolint:contextcheck

	p.config.Logger.Debug(
		"document pipeline started",
		"component", "pipeline",
		"workers", p.config.DecodeWorkers,
	)
	p.started.Store(true)
	return nil
}

// Submit submits a new document for processing.
// This method is safe to call concurrently with Close() and Stop().
// The context allows callers to give up when the pipeline is full and
// applying backpressure.
func (p *DocumentPipeline) Submit(ctx context.Context, name string, data []byte) error {
	if !p.started.Load() {
		return ErrPipelineNotStarted
	}

	// Close waits for in-flight submits before closing submitChan
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()

	if p.stopped.Load() {
		return ErrPipelineStopped
	}

	item := NewDocumentItem(name, data, atomic.AddUint64(&p.sequenceCounter, 1)-1)

	select {
	case p.submitChan <- item:
		p.metrics.RecordSubmit()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPipelineStopped
	}
}

// Results returns a channel of processed documents in submission order. It
// is only fed when no EmitFunc is configured, and must then be drained for
// the pipeline to make progress. If the pipeline has not been started,
// returns a closed channel.
func (p *DocumentPipeline) Results() <-chan *DocumentItem {
	if !p.started.Load() {
		return closedResultsChan
	}
	return p.resultsChan
}

// Close stops accepting documents and waits until every submitted document
// has been emitted.
func (p *DocumentPipeline) Close() error {
	return p.shutdown(false)
}

// Stop abandons documents still in flight and stops the pipeline.
func (p *DocumentPipeline) Stop() error {
	return p.shutdown(true)
}

func (p *DocumentPipeline) shutdown(abort bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started.Load() || p.stopped.Load() {
		return nil
	}

	// Cancel first so a Submit blocked on a full channel releases submitMu
	if abort {
		p.cancel()
	}

	p.submitMu.Lock()
	p.stopped.Store(true)
	close(p.submitChan)
	p.submitMu.Unlock()

	p.decodePool.wait()
	close(p.decodedChan)
	p.emitRunner.Stop()
	close(p.resultsChan)

	p.cancel()
	p.config.Logger.Debug(
		"document pipeline stopped",
		"component", "pipeline",
		"submitted", p.metrics.Stats().DocumentsSubmitted,
		"aborted", abort,
	)
	return nil
}

// Stats returns the current pipeline statistics.
func (p *DocumentPipeline) Stats() PipelineStats {
	return p.metrics.Stats()
}

// PendingCount returns the approximate number of documents still being
// processed.
func (p *DocumentPipeline) PendingCount() int {
	if !p.started.Load() {
		return 0
	}
	return len(p.submitChan) + len(p.decodedChan) + p.emitStage.PendingCount()
}
