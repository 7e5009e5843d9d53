package users

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Totals is the envelope returned when include_totals is set.
type Totals struct {
	Start  int `json:"start"`
	Limit  int `json:"limit"`
	Length int `json:"length"`
	Total  int `json:"total"`
}

// decodeList accepts either a bare array or a totals envelope holding the
// items under key. Totals is nil for a bare array.
func decodeList[T any](data []byte, key string, items *[]T) (*Totals, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty response body")
	}
	switch data[0] {
	case '[':
		return nil, json.Unmarshal(data, items)
	case '{':
		var env map[string]json.RawMessage
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, err
		}
		raw, ok := env[key]
		if !ok {
			return nil, fmt.Errorf("response object has no %q field", key)
		}
		if err := json.Unmarshal(raw, items); err != nil {
			return nil, err
		}
		var t Totals
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return &t, nil
	default:
		return nil, fmt.Errorf("expected a JSON array or object, got %q", data[:1])
	}
}

func encodeList[T any](key string, items []T, t *Totals) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	if t == nil {
		return json.Marshal(items)
	}
	return json.Marshal(map[string]any{
		"start":  t.Start,
		"limit":  t.Limit,
		"length": t.Length,
		"total":  t.Total,
		key:      items,
	})
}
