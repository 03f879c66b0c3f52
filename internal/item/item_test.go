package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNormalizeKey_ComposedAndDecomposed(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"

	assert.NotEqual(t, composed, decomposed)
	assert.Equal(t, composed, NormalizeKey(decomposed))
	assert.True(t, SameKey(composed, decomposed))
	assert.False(t, SameKey("cafe", composed))
}

func TestItem_UnmarshalYAML(t *testing.T) {
	src := `
- a
- 42
- key: b
  props:
    title: Bee
    count: 3
`
	var items []Item
	require.NoError(t, yaml.Unmarshal([]byte(src), &items))
	require.Len(t, items, 3)

	assert.Equal(t, []string{"a", "42", "b"}, KeysOf(items))
	assert.Nil(t, items[0].Props)
	assert.Equal(t, map[string]any{"title": "Bee", "count": 3}, items[2].Props)
}

func TestItem_UnmarshalYAMLNormalizesKey(t *testing.T) {
	var it Item
	require.NoError(t, yaml.Unmarshal([]byte("\"cafe\u0301\""), &it))
	assert.Equal(t, "caf\u00e9", it.Key)
}

func TestItem_UnmarshalYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown field", "key: a\ncolor: red\n", "unknown item field \"color\""},
		{"missing key", "props: {a: 1}\n", "item key is required"},
		{"sequence", "[a, b]\n", "scalar key or a mapping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var it Item
			err := yaml.Unmarshal([]byte(tt.src), &it)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestKeys(t *testing.T) {
	items := Keys("x", "y")
	assert.Equal(t, []Item{{Key: "x"}, {Key: "y"}}, items)
}
