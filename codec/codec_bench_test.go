package codec

import (
	"io"
	"testing"

	"github.com/hupe1980/millerindex/miller"
)

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	for b.Loop() {
		out, err := c.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func benchmarkCodecUnmarshal[T any](b *testing.B, c Codec, data []byte, dst *T) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var v T
	for b.Loop() {
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
	if dst != nil {
		*dst = v
	}
}

func benchAreas() []ListRecord {
	out := make([]ListRecord, 1000)
	for i := range out {
		area := make([]int, 25)
		for j := range area {
			area[j] = i*31 + j
		}
		out[i] = ListRecord{Position: i, Index: miller.New(i%7-3, i%5-2, i%3-1), List: area}
	}
	return out
}

func BenchmarkCodec_Marshal_Areas(b *testing.B) {
	areas := benchAreas()

	b.Run("stdlib", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, areas) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, areas) })
}

func BenchmarkCodec_Unmarshal_Areas(b *testing.B) {
	data := MustMarshal(JSON{}, benchAreas())

	b.Run("stdlib", func(b *testing.B) {
		var sink []ListRecord
		benchmarkCodecUnmarshal(b, JSON{}, data, &sink)
	})
	b.Run("go-json", func(b *testing.B) {
		var sink []ListRecord
		benchmarkCodecUnmarshal(b, GoJSON{}, data, &sink)
	})
}

func BenchmarkWriter_EncodeLists(b *testing.B) {
	records := benchAreas()
	indices := make([]miller.Index, len(records))
	lists := make([][]int, len(records))
	for i, r := range records {
		indices[i], lists[i] = r.Index, r.List
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b.Run(c.Name(), func(b *testing.B) {
			w := NewWriter(io.Discard, c)
			b.ReportAllocs()
			for b.Loop() {
				if err := w.EncodeLists(indices, lists); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
