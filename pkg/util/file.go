package util

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/brotli"
)

// BrotliExt marks files that are stored brotli compressed
const BrotliExt = ".br"

// IsCompressedName reports whether a file name asks for brotli compression
func IsCompressedName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), BrotliExt)
}

// CompressBrotli compresses data at the best compression level
func CompressBrotli(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish compression: %w", err)
	}
	return buf.Bytes(), nil
}

// NewBrotliReader creates a brotli reader from the provided io.ReadCloser
func NewBrotliReader(r io.ReadCloser) io.ReadCloser {
	return struct {
		io.Reader
		io.Closer
	}{brotli.NewReader(r), r}
}

// WriteFile writes data to path, brotli compressing it when the name ends in .br
func WriteFile(path string, data []byte) error {
	if IsCompressedName(path) {
		var err error
		data, err = CompressBrotli(data)
		if err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads path, decompressing it when the name ends in .br
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	var r io.ReadCloser = f
	if IsCompressedName(path) {
		r = NewBrotliReader(f)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
