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
	"sync"
	"sync/atomic"
	"time"
)

// PipelineMetrics tracks metrics for the entire pipeline.
// Uses atomic counters for thread-safe operation.
type PipelineMetrics struct {
	// Counters (atomic)
	documentsSubmitted atomic.Uint64
	documentsDecoded   atomic.Uint64
	documentsEmitted   atomic.Uint64
	decodeErrors       atomic.Uint64
	emitErrors         atomic.Uint64
	bytesDecoded       atomic.Uint64
	decodeNanos        atomic.Int64

	// Pending tracking (requires mutex)
	mu          sync.RWMutex
	peakPending int
	startTime   time.Time
}

// NewPipelineMetrics creates a new PipelineMetrics.
func NewPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{
		startTime: time.Now(),
	}
}

// RecordSubmit increments the submitted counter.
func (m *PipelineMetrics) RecordSubmit() {
	m.documentsSubmitted.Add(1)
}

// RecordDecode records a decode result.
func (m *PipelineMetrics) RecordDecode(size int, duration time.Duration, err error) {
	m.decodeNanos.Add(int64(duration))
	if err != nil {
		m.decodeErrors.Add(1)
		return
	}
	m.documentsDecoded.Add(1)
	m.bytesDecoded.Add(uint64(size))
}

// RecordEmit records an emit result.
func (m *PipelineMetrics) RecordEmit(err error) {
	if err != nil {
		m.emitErrors.Add(1)
	} else {
		m.documentsEmitted.Add(1)
	}
}

// UpdatePending updates the peak count of held back documents.
func (m *PipelineMetrics) UpdatePending(pending int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pending > m.peakPending {
		m.peakPending = pending
	}
}

// Stats returns a snapshot of the current metrics.
func (m *PipelineMetrics) Stats() PipelineStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return PipelineStats{
		DocumentsSubmitted: m.documentsSubmitted.Load(),
		DocumentsDecoded:   m.documentsDecoded.Load(),
		DocumentsEmitted:   m.documentsEmitted.Load(),
		DecodeErrors:       m.decodeErrors.Load(),
		EmitErrors:         m.emitErrors.Load(),
		BytesDecoded:       m.bytesDecoded.Load(),
		DecodeTime:         time.Duration(m.decodeNanos.Load()),
		PeakPending:        m.peakPending,
		StartTime:          m.startTime,
	}
}
