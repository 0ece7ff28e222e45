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
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how the input is compressed
type Compression string

const (
	CompressionAuto Compression = "auto"
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// Frame magic numbers used by auto detection
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// ParseCompression parses a compression name
func ParseCompression(name string) (Compression, error) {
	switch c := Compression(name); c {
	case CompressionAuto, CompressionNone, CompressionGzip, CompressionZstd, CompressionLZ4:
		return c, nil
	}
	return "", fmt.Errorf("unknown compression: %q", name)
}

// DetectCompression identifies the compression of data from its leading bytes
func DetectCompression(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(header, lz4Magic):
		return CompressionLZ4
	case bytes.HasPrefix(header, gzipMagic):
		return CompressionGzip
	}
	return CompressionNone
}

// Decompress wraps r with a decompressor. With CompressionAuto the format is
// detected from the first bytes of r
func Decompress(r io.Reader, compression Compression) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	if compression == CompressionAuto {
		// Short inputs simply yield a short header
		header, _ := br.Peek(len(zstdMagic))
		compression = DetectCompression(header)
	}
	switch compression {
	case CompressionNone:
		return io.NopCloser(br), nil
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zr.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(br)), nil
	}
	return nil, fmt.Errorf("unknown compression: %q", compression)
}

// ReadInput reads the whole input named by path, or stdin for "" and "-",
// decompressing it and decoding hex text when requested
func ReadInput(path string, hexInput bool, compression Compression) ([]byte, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return readAll(r, hexInput, compression)
}

func readAll(r io.Reader, hexInput bool, compression Compression) ([]byte, error) {
	dr, err := Decompress(r, compression)
	if err != nil {
		return nil, err
	}
	defer dr.Close()
	data, err := io.ReadAll(dr)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if hexInput {
		return DecodeHex(string(data))
	}
	return data, nil
}

// DecodeHex decodes hex text, ignoring whitespace
func DecodeHex(text string) ([]byte, error) {
	text = strings.Join(strings.Fields(text), "")
	data, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("decode hex input: %w", err)
	}
	return data, nil
}
