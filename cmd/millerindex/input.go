package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/hupe1980/millerindex/mask"
	"github.com/hupe1980/millerindex/miller"
)

// openInput opens path, or stdin for "-". Files ending in ".zst" are
// decompressed transparently.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	var r io.ReadCloser
	if path == "-" {
		r = io.NopCloser(stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		r = f
	}

	if !strings.HasSuffix(path, ".zst") {
		return r, nil
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("zstd %s: %w", path, err)
	}
	return &zstdReadCloser{dec: dec, under: r}, nil
}

type zstdReadCloser struct {
	dec   *zstd.Decoder
	under io.Closer
}

func (z *zstdReadCloser) Read(p []byte) (int, error) { return z.dec.Read(p) }

func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	return z.under.Close()
}

// scanLines calls fn for every non-blank line that is not a '#' comment.
func scanLines(r io.Reader, fn func(line string, n int) error) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(line, n); err != nil {
			return err
		}
	}
	return sc.Err()
}

// readIndices reads one "h k l" triple per line.
func readIndices(r io.Reader) ([]miller.Index, error) {
	var out []miller.Index
	err := scanLines(r, func(line string, n int) error {
		v, err := miller.Parse(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, v)
		return nil
	})
	return out, err
}

// readMask reads one boolean flag per line ("1", "0", "true", ...) and
// checks that there is exactly one flag per indexed position.
func readMask(r io.Reader, n int) (*mask.Mask, error) {
	flags := make([]bool, 0, n)
	err := scanLines(r, func(line string, ln int) error {
		b, err := strconv.ParseBool(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", ln, err)
		}
		flags = append(flags, b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	m := mask.FromBools(flags)
	if err := m.CheckLength(n); err != nil {
		return nil, err
	}
	return m, nil
}

func loadIndices(path string, stdin io.Reader) ([]miller.Index, error) {
	rc, err := openInput(path, stdin)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return readIndices(rc)
}

func loadMask(path string, stdin io.Reader, n int) (*mask.Mask, error) {
	rc, err := openInput(path, stdin)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return readMask(rc, n)
}
