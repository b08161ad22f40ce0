package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Extra holds the JSON keys of a stored object that have no struct field.
// They are written back unchanged on every rewrite.
type Extra map[string]json.RawMessage

// splitExtra returns the keys of the JSON object data that are not in known.
func splitExtra(data []byte, known []string) (Extra, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return Extra(raw), nil
}

// marshalWithExtra encodes v (a struct without custom marshalers on itself) and
// appends extra keys after the modeled ones, sorted by name.
func marshalWithExtra(v interface{}, extra Extra) ([]byte, error) {
	known, err := encodeUnescaped(v)
	if err != nil || len(extra) == 0 {
		return known, err
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(known[:len(known)-1])
	empty := bytes.Equal(bytes.TrimSpace(known), []byte("{}"))
	for _, k := range keys {
		name, err := encodeUnescaped(k)
		if err != nil {
			return nil, err
		}
		if !empty {
			buf.WriteByte(',')
		}
		empty = false
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeUnescaped(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
