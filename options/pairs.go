package options

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	"gopkg.in/yaml.v3"
)

// Pair is a single option key and value.
type Pair struct {
	Key   string
	Value any
}

// Pairs is an ordered associative collection of options. It is what
// Container.Export returns and the preferred input to Container.Load,
// since unlike a Go map it keeps the order in which options are applied.
//
// Pairs marshals to and from JSON and YAML objects with key order intact.
type Pairs []Pair

// Iterable is implemented by ordered collections that Container.Load
// accepts in addition to maps and Pairs.
type Iterable interface {
	All() iter.Seq2[string, any]
}

var _ Iterable = Pairs(nil)

// All yields every pair in order.
func (p Pairs) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, kv := range p {
			if !yield(kv.Key, kv.Value) {
				return
			}
		}
	}
}

// Keys returns the keys in order.
func (p Pairs) Keys() []string {
	keys := make([]string, len(p))
	for i, kv := range p {
		keys[i] = kv.Key
	}
	return keys
}

// Lookup returns the value of the first pair with the given key.
func (p Pairs) Lookup(key string) (any, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Map returns the pairs as a Go map. Later duplicates win.
func (p Pairs) Map() map[string]any {
	m := make(map[string]any, len(p))
	for _, kv := range p {
		m[kv.Key] = kv.Value
	}
	return m
}

// MarshalJSON encodes the pairs as a JSON object in order.
func (p Pairs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", kv.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping its top-level key order.
// Nested objects decode to map[string]any.
func (p *Pairs) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("options must be a JSON object, got %v", tok)
	}

	out := Pairs{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected JSON object key %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("option %q: %w", key, err)
		}
		out = append(out, Pair{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = out
	return nil
}

// MarshalYAML encodes the pairs as a YAML mapping in order.
func (p Pairs) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, kv := range p {
		var key, value yaml.Node
		if err := key.Encode(kv.Key); err != nil {
			return nil, err
		}
		if err := value.Encode(kv.Value); err != nil {
			return nil, fmt.Errorf("option %q: %w", kv.Key, err)
		}
		node.Content = append(node.Content, &key, &value)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping, keeping its top-level key order.
func (p *Pairs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("options must be a YAML mapping (line %d)", node.Line)
	}

	out := make(Pairs, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("option key at line %d: %w", node.Content[i].Line, err)
		}
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("option %q: %w", key, err)
		}
		out = append(out, Pair{Key: key, Value: value})
	}

	*p = out
	return nil
}
