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

// cbor-dump decodes CBOR files or a stream and prints their events, JSON,
// YAML or diagnostic notation
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/blinklabs-io/cborstream/cbor"
	"github.com/blinklabs-io/cborstream/cmd/common"
	"github.com/blinklabs-io/cborstream/pipeline"
	"github.com/blinklabs-io/cborstream/source"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	f := common.NewGlobalFlags("cbor-dump")
	f.Flagset.SetOutput(stderr)
	if err := f.Parse(args); err != nil {
		return err
	}
	compression, err := common.ParseCompression(f.Compression)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(stdout)
	defer out.Flush()
	logger := f.Logger(stderr)
	if f.Flagset.NArg() > 1 {
		return dumpFiles(f, f.Flagset.Args(), compression, out, logger)
	}
	data, err := common.ReadInput(f.Flagset.Arg(0), f.Hex, compression)
	if err != nil {
		return err
	}
	d := &dumper{
		flags:  f,
		out:    out,
		logger: logger,
	}
	return d.dump(data)
}

// dumpFiles decodes files in parallel and prints their output in argument
// order, each under a header line
func dumpFiles(
	f *common.GlobalFlags,
	paths []string,
	compression common.Compression,
	out io.Writer,
	logger *slog.Logger,
) error {
	var firstErr error
	p := pipeline.NewDocumentPipeline(
		pipeline.WithDecodeWorkers(f.Jobs),
		pipeline.WithLogger(logger),
		pipeline.WithDecodeFunc(
			func(_ context.Context, item *pipeline.DocumentItem) error {
				d := &dumper{
					flags:  f,
					out:    item.Writer(),
					logger: logger.With("file", item.Name()),
				}
				return d.dump(item.Data())
			},
		),
		pipeline.WithEmitFunc(func(item *pipeline.DocumentItem) error {
			if item.SequenceNumber() > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s <==\n", item.Name())
			if _, err := out.Write(item.Output()); err != nil {
				return err
			}
			if err := item.DecodeError(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", item.Name(), err)
			}
			return nil
		}),
	)
	ctx := context.Background()
	if err := p.Start(ctx); err != nil {
		return err
	}
	for _, path := range paths {
		data, err := common.ReadInput(path, f.Hex, compression)
		if err != nil {
			_ = p.Stop()
			return err
		}
		if err := p.Submit(ctx, path, data); err != nil {
			_ = p.Stop()
			return err
		}
	}
	if err := p.Close(); err != nil {
		return err
	}
	stats := p.Stats()
	logger.Debug(
		"decoded files",
		"files", stats.DocumentsSubmitted,
		"bytes", stats.BytesDecoded,
		"errors", stats.DecodeErrors,
		"decode_time", stats.DecodeTime,
	)
	return firstErr
}

type dumper struct {
	flags  *common.GlobalFlags
	out    io.Writer
	logger *slog.Logger
	parser *cbor.Parser
}

func (d *dumper) dump(data []byte) error {
	src := source.NewBytes(data)
	d.parser = cbor.NewParser(
		src,
		cbor.WithMaxNestingDepth(d.flags.MaxDepth),
		cbor.WithLogger(d.logger),
	)
	for item := 0; ; item++ {
		start := src.Position()
		if err := d.dumpItem(src); err != nil {
			return fmt.Errorf("item %d: %w", item, err)
		}
		if d.flags.Hash != common.HashNone {
			digest, err := common.Digest(d.flags.Hash, data[start:src.Position()])
			if err != nil {
				return err
			}
			fmt.Fprintf(d.out, "%s: %s\n", d.flags.Hash, digest)
		}
		if !d.flags.Sequence || src.EOF() {
			return nil
		}
		d.parser.Reset()
	}
}

func (d *dumper) dumpItem(src *source.Bytes) error {
	switch d.flags.Format {
	case common.FormatDiag:
		rest := src.Data()[src.Position():]
		notation, remaining, err := cbor.DiagnoseFirst(rest)
		if err != nil {
			return err
		}
		src.Ignore(len(rest) - len(remaining))
		fmt.Fprintln(d.out, notation)
		return nil
	case common.FormatJSON:
		if err := d.parser.Parse(cbor.NewJSONEncoder(d.out)); err != nil {
			return err
		}
		fmt.Fprintln(d.out)
		return nil
	case common.FormatYAML:
		var vb cbor.ValueBuilder
		if err := d.parser.Parse(&vb); err != nil {
			return err
		}
		enc := yaml.NewEncoder(d.out)
		if err := enc.Encode(vb.Value()); err != nil {
			return err
		}
		return enc.Close()
	default:
		var rec cbor.Recorder
		if err := d.parser.Parse(&rec); err != nil {
			return err
		}
		_, err := io.WriteString(d.out, cbor.DumpEvents(rec.Events, ""))
		return err
	}
}
