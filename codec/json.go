package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Output is byte-identical to GoJSON for the record types of this package;
// use it when the lowest-dependency option is wanted.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Append encodes the value to JSON and appends it to dst.
func (JSON) Append(dst []byte, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(dst, b...), nil
}

// Default is the codec used when none is named.
var Default Codec = GoJSON{}
