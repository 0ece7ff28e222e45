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
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"

	"github.com/spf13/pflag"

	"github.com/blinklabs-io/cborstream/cbor"
)

// Output formats
const (
	FormatEvents = "events"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatDiag   = "diag"
)

// Digest algorithms
const (
	HashNone    = "none"
	HashBlake2b = "blake2b"
	HashBlake3  = "blake3"
)

var (
	validFormats   = []string{FormatEvents, FormatJSON, FormatYAML, FormatDiag}
	validHashes    = []string{HashNone, HashBlake2b, HashBlake3}
	validLogLevels = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

type GlobalFlags struct {
	Flagset     *pflag.FlagSet
	Format      string
	Hex         bool
	Compression string
	Sequence    bool
	MaxDepth    int
	Hash        string
	LogLevel    string
	Jobs        int
}

func NewGlobalFlags(name string) *GlobalFlags {
	f := &GlobalFlags{
		Flagset: pflag.NewFlagSet(name, pflag.ContinueOnError),
	}
	f.Flagset.StringVar(
		&f.Format,
		"format",
		FormatEvents,
		"output format: events, json, yaml or diag",
	)
	f.Flagset.BoolVar(&f.Hex, "hex", false, "input is hex text")
	f.Flagset.StringVar(
		&f.Compression,
		"compression",
		string(CompressionAuto),
		"input compression: auto, none, gzip, zstd or lz4",
	)
	f.Flagset.BoolVar(
		&f.Sequence,
		"sequence",
		false,
		"decode a CBOR sequence of multiple top-level items",
	)
	f.Flagset.IntVar(
		&f.MaxDepth,
		"max-depth",
		cbor.DefaultMaxNestingDepth,
		"maximum nesting depth of arrays and maps",
	)
	f.Flagset.StringVar(
		&f.Hash,
		"hash",
		HashNone,
		"print a digest of each item's raw bytes: none, blake2b or blake3",
	)
	f.Flagset.IntVarP(
		&f.Jobs,
		"jobs",
		"j",
		runtime.NumCPU(),
		"number of files decoded in parallel",
	)
	f.Flagset.StringVar(
		&f.LogLevel,
		"log-level",
		"warn",
		"log level: debug, info, warn or error",
	)
	return f
}

// Parse parses and validates args, which should not include the program name
func (f *GlobalFlags) Parse(args []string) error {
	if err := f.Flagset.Parse(args); err != nil {
		return err
	}
	if !slices.Contains(validFormats, f.Format) {
		return fmt.Errorf("invalid format: %s", f.Format)
	}
	if !slices.Contains(validHashes, f.Hash) {
		return fmt.Errorf("invalid hash: %s", f.Hash)
	}
	if _, err := ParseCompression(f.Compression); err != nil {
		return err
	}
	if _, ok := validLogLevels[f.LogLevel]; !ok {
		return fmt.Errorf("invalid log level: %s", f.LogLevel)
	}
	if f.MaxDepth < 1 {
		return fmt.Errorf("invalid max depth: %d", f.MaxDepth)
	}
	if f.Jobs < 1 {
		return fmt.Errorf("invalid jobs: %d", f.Jobs)
	}
	return nil
}

// Logger returns a text logger writing to w at the configured level
func (f *GlobalFlags) Logger(w io.Writer) *slog.Logger {
	return slog.New(
		slog.NewTextHandler(
			w,
			&slog.HandlerOptions{Level: validLogLevels[f.LogLevel]},
		),
	)
}
