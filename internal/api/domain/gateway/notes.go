package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Notes is the free-form key/value map the gateway attaches to payments and subscriptions.
// The gateway encodes an empty map as [] and passes numeric values through unquoted.
type Notes map[string]string

// Get returns a non-empty value for key.
func (n Notes) Get(key string) (string, bool) {
	v, ok := n[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (n *Notes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Notes{}
		return nil
	}

	if data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("notes: %w", err)
		}
		if len(items) > 0 {
			return fmt.Errorf("notes: expected object, got array of %d items", len(items))
		}
		*n = Notes{}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("notes: %w", err)
	}

	out := make(Notes, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
		case string:
			out[k] = val
		case json.Number:
			out[k] = val.String()
		case bool:
			out[k] = strconv.FormatBool(val)
		default:
			b, err := json.Marshal(val)
			if err != nil {
				return fmt.Errorf("notes: %s: %w", k, err)
			}
			out[k] = string(b)
		}
	}
	*n = out
	return nil
}
