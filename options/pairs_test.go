package options

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPairs_MarshalJSONKeepsOrder(t *testing.T) {
	p := Pairs{
		{Key: "zeta", Value: 1},
		{Key: "alpha", Value: "a"},
		{Key: "mid", Value: []string{"x"}},
	}

	data, err := json.Marshal(p)

	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":"a","mid":["x"]}`, string(data))
}

func TestPairs_MarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(Pairs(nil))

	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestPairs_UnmarshalJSONKeepsOrder(t *testing.T) {
	var p Pairs

	err := json.Unmarshal([]byte(`{"zeta": 1, "alpha": {"nested": true}, "mid": null}`), &p)

	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, p.Keys())
	assert.Equal(t, float64(1), p[0].Value)
	assert.Equal(t, map[string]any{"nested": true}, p[1].Value)
	assert.Nil(t, p[2].Value)
}

func TestPairs_UnmarshalJSONNotObject(t *testing.T) {
	var p Pairs

	err := json.Unmarshal([]byte(`[1, 2]`), &p)

	assert.Error(t, err)
}

func TestPairs_YAMLRoundTrip(t *testing.T) {
	p := Pairs{
		{Key: "zeta", Value: 1},
		{Key: "alpha", Value: "a"},
	}

	data, err := yaml.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, "zeta: 1\nalpha: a\n", string(data))

	var back Pairs
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, p, back)
}

func TestPairs_UnmarshalYAMLNotMapping(t *testing.T) {
	var p Pairs

	err := yaml.Unmarshal([]byte("- a\n- b\n"), &p)

	assert.Error(t, err)
}

func TestPairs_LookupAndMap(t *testing.T) {
	p := Pairs{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "a", Value: 3}}

	v, ok := p.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v, "Lookup returns the first match")

	_, ok = p.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, map[string]any{"a": 3, "b": 2}, p.Map(), "Map keeps the last duplicate")
}
