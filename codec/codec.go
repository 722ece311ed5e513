// Package codec centralizes the encoding of query results.
//
// Codecs are selected by their stable name, so command-line tools and
// configuration files can refer to them as plain strings. FindRecord and
// ListRecord label raw positions with their Miller indices, and Writer
// streams values or records as one JSON document per line.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Names lists the names accepted by ByName.
func Names() []string {
	return []string{"json", "go-json"}
}

// MustMarshal is a helper for tests and benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
