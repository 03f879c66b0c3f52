package item

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Item is one element of a list to render.
type Item struct {
	Key   string         `json:"key" yaml:"key"`
	Props map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
}

// New returns an item with a normalized key.
func New(key string, props map[string]any) Item {
	return Item{Key: NormalizeKey(key), Props: props}
}

// Keys builds property-less items, one per key.
func Keys(keys ...string) []Item {
	items := make([]Item, len(keys))
	for i, k := range keys {
		items[i] = New(k, nil)
	}
	return items
}

// NormalizeKey returns the NFC form of key. Two spellings of the same text
// always compare equal after normalization.
func NormalizeKey(key string) string {
	return norm.NFC.String(key)
}

// SameKey reports whether a and b are compatible.
func SameKey(a, b string) bool {
	return NormalizeKey(a) == NormalizeKey(b)
}

// KeysOf returns the keys of items in order.
func KeysOf(items []Item) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	return keys
}

// UnmarshalYAML accepts either a bare scalar (the key) or a mapping with
// "key" and optional "props".
func (it *Item) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*it = New(value.Value, nil)
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			switch name := value.Content[i].Value; name {
			case "key", "props":
			default:
				return fmt.Errorf("line %d: unknown item field %q", value.Content[i].Line, name)
			}
		}
		var raw struct {
			Key   string         `yaml:"key"`
			Props map[string]any `yaml:"props"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		if raw.Key == "" {
			return fmt.Errorf("line %d: item key is required", value.Line)
		}
		*it = New(raw.Key, raw.Props)
		return nil
	default:
		return fmt.Errorf("line %d: item must be a scalar key or a mapping", value.Line)
	}
}
