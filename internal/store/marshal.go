package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/cinder/internal/item"
	"github.com/roach88/cinder/internal/reconcile"
)

// marshalItems converts items to canonical JSON TEXT for storage.
func marshalItems(items []item.Item) (string, error) {
	arr := make([]any, len(items))
	for i, it := range items {
		props := it.Props
		if props == nil {
			props = map[string]any{}
		}
		arr[i] = map[string]any{"key": it.Key, "props": props}
	}
	data, err := item.Canonical(arr)
	if err != nil {
		return "", fmt.Errorf("marshal items: %w", err)
	}
	return string(data), nil
}

// unmarshalItems parses stored items. Numbers are decoded as int64 so that
// large integers survive and items stay valid for re-rendering.
func unmarshalItems(data string) ([]item.Item, error) {
	var raw []struct {
		Key   string         `json:"key"`
		Props map[string]any `json:"props"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}

	items := make([]item.Item, len(raw))
	for i, r := range raw {
		var props map[string]any
		if len(r.Props) > 0 {
			v, err := fromJSONNumbers(r.Props)
			if err != nil {
				return nil, fmt.Errorf("unmarshal items: [%d]: %w", i, err)
			}
			props = v.(map[string]any)
		}
		items[i] = item.Item{Key: r.Key, Props: props}
	}
	return items, nil
}

func fromJSONNumbers(v any) (any, error) {
	switch val := v.(type) {
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("non-integer number %s", val)
		}
		return n, nil
	case []any:
		for i, elem := range val {
			conv, err := fromJSONNumbers(elem)
			if err != nil {
				return nil, err
			}
			val[i] = conv
		}
		return val, nil
	case map[string]any:
		for k, elem := range val {
			conv, err := fromJSONNumbers(elem)
			if err != nil {
				return nil, err
			}
			val[k] = conv
		}
		return val, nil
	default:
		return v, nil
	}
}

func marshalCounts(c reconcile.Counts) (string, error) {
	data, err := item.Canonical(map[string]any{
		"recycled": c.Recycled,
		"removed":  c.Removed,
		"added":    c.Added,
	})
	if err != nil {
		return "", fmt.Errorf("marshal counts: %w", err)
	}
	return string(data), nil
}

func unmarshalCounts(data string, final string) (reconcile.Counts, error) {
	var c reconcile.Counts
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return c, fmt.Errorf("unmarshal counts: %w", err)
	}
	c.Final, _ = reconcile.ParseKind(final)
	return c, nil
}
