package api

import (
	"bytes"
	"encoding/json"
)

// Object is a JSON object the API may send as {} or null instead of
// omitting it. Present is false for a missing, null or empty object.
type Object[T any] struct {
	Value   T
	Present bool
}

func (o *Object[T]) UnmarshalJSON(b []byte) error {
	*o = Object[T]{}
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
	}
	if err := json.Unmarshal(trimmed, &o.Value); err != nil {
		return err
	}
	o.Present = true
	return nil
}

func (o Object[T]) MarshalJSON() ([]byte, error) {
	if !o.Present {
		return []byte("{}"), nil
	}
	return json.Marshal(o.Value)
}
