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
	"log/slog"
	"runtime"
)

// DefaultMaxPendingDocuments is the default limit for out-of-order documents
// buffered in the emit stage.
const DefaultMaxPendingDocuments = 1024

// PipelineConfig holds configuration for a DocumentPipeline.
type PipelineConfig struct {
	// DecodeWorkers is the number of parallel decode workers.
	DecodeWorkers int
	// BufferSize is the buffer size for inter-stage channels.
	BufferSize int
	// MaxPendingDocuments limits out-of-order documents buffered in the
	// emit stage.
	MaxPendingDocuments int
	// DecodeFunc renders each document (required).
	DecodeFunc DecodeFunc
	// EmitFunc is called for every document in submission order. When set,
	// documents are not sent to Results.
	EmitFunc EmitFunc
	// Logger receives pipeline diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultPipelineConfig returns a PipelineConfig with sensible defaults.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		DecodeWorkers:       runtime.NumCPU(),
		BufferSize:          64,
		MaxPendingDocuments: DefaultMaxPendingDocuments,
	}
}

// PipelineOption is a functional option for configuring a DocumentPipeline.
type PipelineOption func(*PipelineConfig)

// WithDecodeWorkers sets the number of decode workers.
func WithDecodeWorkers(n int) PipelineOption {
	return func(c *PipelineConfig) {
		if n > 0 {
			c.DecodeWorkers = n
		}
	}
}

// WithBufferSize sets the buffer size for inter-stage channels.
func WithBufferSize(size int) PipelineOption {
	return func(c *PipelineConfig) {
		if size > 0 {
			c.BufferSize = size
		}
	}
}

// WithMaxPendingDocuments sets the limit for out-of-order documents held in
// the emit stage. Use 0 for unlimited.
func WithMaxPendingDocuments(n int) PipelineOption {
	return func(c *PipelineConfig) {
		if n >= 0 {
			c.MaxPendingDocuments = n
		}
	}
}

// WithDecodeFunc sets the function that renders each document.
func WithDecodeFunc(fn DecodeFunc) PipelineOption {
	return func(c *PipelineConfig) {
		c.DecodeFunc = fn
	}
}

// WithEmitFunc sets the function called for every document in order.
func WithEmitFunc(fn EmitFunc) PipelineOption {
	return func(c *PipelineConfig) {
		c.EmitFunc = fn
	}
}

// WithLogger sets the logger for pipeline diagnostics.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(c *PipelineConfig) {
		c.Logger = logger
	}
}
