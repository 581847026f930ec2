package spec

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Object is a JSON object value with insertion order preserved, as required
// by [RFC 9535]'s default (deterministic) traversal order for the wildcard
// and descendant selectors. A Go map[string]any cannot satisfy this
// contract, so Object wraps an [orderedmap.OrderedMap].
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html
type Object struct {
	om *orderedmap.OrderedMap[string, any]
}

// NewObject returns a new, empty Object.
func NewObject() *Object {
	return &Object{om: orderedmap.New[string, any]()}
}

// Get returns the value stored for key and true, or nil and false if key is
// not present.
func (o *Object) Get(key string) (any, bool) {
	if o == nil || o.om == nil {
		return nil, false
	}
	return o.om.Get(key)
}

// Set stores value under key, appending key to the end of the iteration
// order if it's not already present.
func (o *Object) Set(key string, value any) {
	if o.om == nil {
		o.om = orderedmap.New[string, any]()
	}
	o.om.Set(key, value)
}

// Len returns the number of members in o.
func (o *Object) Len() int {
	if o == nil || o.om == nil {
		return 0
	}
	return o.om.Len()
}

// Keys returns o's member names in insertion order.
func (o *Object) Keys() []string {
	if o == nil || o.om == nil {
		return nil
	}
	keys := make([]string, 0, o.om.Len())
	for pair := o.om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Values returns o's member values in insertion order.
func (o *Object) Values() []any {
	if o == nil || o.om == nil {
		return nil
	}
	vals := make([]any, 0, o.om.Len())
	for pair := o.om.Oldest(); pair != nil; pair = pair.Next() {
		vals = append(vals, pair.Value)
	}
	return vals
}

// Range calls fn for each member of o in insertion order, stopping early if
// fn returns false.
func (o *Object) Range(fn func(key string, value any) bool) {
	if o == nil || o.om == nil {
		return
	}
	for pair := o.om.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// MarshalJSON encodes o as a JSON object, preserving member order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var encErr error
	o.Range(func(key string, value any) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		kb, err := json.Marshal(key)
		if err != nil {
			encErr = err
			return false
		}
		buf.Write(kb)
		buf.WriteByte(':')

		vb, err := json.Marshal(value)
		if err != nil {
			encErr = err
			return false
		}
		buf.Write(vb)
		return true
	})
	if encErr != nil {
		return nil, encErr
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into o, preserving member order, and
// recursively decoding nested objects into *Object and arrays into []any.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("jsonpath: expected JSON object, found %v", tok)
	}

	*o = Object{om: orderedmap.New[string, any]()}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("jsonpath: expected object key, found %v", keyTok)
		}

		val, err := decodeJSONValue(dec)
		if err != nil {
			return err
		}
		o.om.Set(key, val)
	}

	// Consume the closing '}'.
	_, err = dec.Token()
	return err
}

// decodeJSONValue decodes the next JSON value from dec into the JSONValue
// representation used throughout this module: nil, bool, json.Number,
// string, []any, or *Object.
func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("jsonpath: expected object key, found %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("jsonpath: unexpected delimiter %v", v)
		}
	default:
		return tok, nil
	}
}

// UnmarshalYAML decodes a YAML mapping node into o, preserving key order, and
// recursively decoding nested mappings into *Object and sequences into
// []any.
func (o *Object) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("jsonpath: expected YAML mapping, found kind %v", node.Kind)
	}

	*o = Object{om: orderedmap.New[string, any]()}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		val, err := decodeYAMLValue(node.Content[i+1])
		if err != nil {
			return err
		}
		o.om.Set(key, val)
	}
	return nil
}

// MarshalYAML encodes o as a YAML mapping node, preserving member order.
func (o *Object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	var encErr error
	o.Range(func(key string, value any) bool {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(key); err != nil {
			encErr = err
			return false
		}
		valNode := &yaml.Node{}
		if err := valNode.Encode(value); err != nil {
			encErr = err
			return false
		}
		node.Content = append(node.Content, keyNode, valNode)
		return true
	})
	if encErr != nil {
		return nil, encErr
	}
	return node, nil
}

// decodeYAMLValue decodes node into the JSONValue representation used
// throughout this module: nil, bool, int, float64, string, []any, or
// *Object.
func decodeYAMLValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		obj := &Object{}
		if err := obj.UnmarshalYAML(node); err != nil {
			return nil, err
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := decodeYAMLValue(child)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	default:
		var val any
		if err := node.Decode(&val); err != nil {
			return nil, err
		}
		return val, nil
	}
}
