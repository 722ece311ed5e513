package codec

import (
	"io"

	"github.com/hupe1980/millerindex/miller"
)

// Appender is implemented by codecs that encode into a caller-owned buffer.
type Appender interface {
	Append(dst []byte, v any) ([]byte, error)
}

// Writer writes values as newline-terminated records.
// A Writer is not safe for concurrent use.
type Writer struct {
	w   io.Writer
	c   Codec
	buf []byte
}

// NewWriter returns a Writer encoding with c. A nil c selects Default.
func NewWriter(w io.Writer, c Codec) *Writer {
	if c == nil {
		c = Default
	}
	return &Writer{w: w, c: c}
}

// Encode writes v as one line.
func (w *Writer) Encode(v any) error {
	buf, err := w.append(w.buf[:0], v)
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	w.buf = buf

	_, err = w.w.Write(buf)
	return err
}

// EncodeLists writes one ListRecord line per seed with a non-nil list, in
// position order.
func (w *Writer) EncodeLists(indices []miller.Index, lists [][]int) error {
	for _, rec := range ListRecords(indices, lists) {
		if err := w.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) append(dst []byte, v any) ([]byte, error) {
	if a, ok := w.c.(Appender); ok {
		return a.Append(dst, v)
	}
	b, err := w.c.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(dst, b...), nil
}
