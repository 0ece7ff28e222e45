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
	"sync"
)

// workerPool fans documents out to a fixed number of goroutines running the
// same stage. Every item read from in is written to out, including items
// whose stage failed, so the emit stage never waits on a missing sequence
// number.
type workerPool struct {
	stage   Stage
	workers int
	in      <-chan *DocumentItem
	out     chan<- *DocumentItem
	metrics *PipelineMetrics
	wg      sync.WaitGroup
	once    sync.Once
}

func newWorkerPool(
	stage Stage,
	workers int,
	in <-chan *DocumentItem,
	out chan<- *DocumentItem,
	metrics *PipelineMetrics,
) *workerPool {
	if stage == nil {
		panic(ErrNilStage)
	}
	return &workerPool{
		stage:   stage,
		workers: max(workers, 1),
		in:      in,
		out:     out,
		metrics: metrics,
	}
}

// start launches the workers once
func (w *workerPool) start(ctx context.Context) {
	w.once.Do(func() {
		w.wg.Add(w.workers)
		for range w.workers {
			go w.run(ctx)
		}
	})
}

// wait blocks until in is drained and closed or ctx is cancelled
func (w *workerPool) wait() {
	w.wg.Wait()
}

func (w *workerPool) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		var item *DocumentItem
		select {
		case <-ctx.Done():
			return
		case next, ok := <-w.in:
			if !ok {
				return
			}
			item = next
		}
		err := w.stage.Process(ctx, item)
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			// Abandoned, not a decode failure
			return
		}
		if w.metrics != nil {
			w.metrics.RecordDecode(len(item.Data()), item.DecodeDuration(), err)
		}
		select {
		case w.out <- item:
		case <-ctx.Done():
			return
		}
	}
}
