package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Properties holds a resource's configuration keyed by the Management
// API's hyphenated property names. Models wrap one of these and layer
// typed accessors over the entries the library names; entries without
// accessors still survive a read/update round trip untouched.
type Properties map[string]interface{}

func (p Properties) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p Properties) Get(key string) interface{} {
	return p[key]
}

func (p Properties) Set(key string, value interface{}) {
	p[key] = value
}

func (p Properties) Remove(key string) {
	delete(p, key)
}

// String returns a property as a string, or "" when it is absent or not
// a string.
func (p Properties) String(key string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

// Format renders a property of any type, keeping json.Number literals
// intact. Absent properties render as "".
func (p Properties) Format(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// Int returns a numeric property. Depending on where the value came
// from it may be an int, a float64 or a json.Number.
func (p Properties) Int(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	}
	return 0
}

// Bool returns a boolean property. The API serializes some booleans as
// the strings "true" and "false"; both spellings are accepted.
func (p Properties) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// Strings returns a list-valued property. The API serializes one-item
// lists as bare values, so a lone string comes back as a one-item list.
func (p Properties) Strings(key string) []string {
	switch v := p[key].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	}
	return nil
}

// Map returns a nested object property.
func (p Properties) Map(key string) Properties {
	switch v := p[key].(type) {
	case Properties:
		return v
	case map[string]interface{}:
		return Properties(v)
	}
	return nil
}

// Clone makes a shallow copy, enough to drop keys from a payload
// without touching the model's own state.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Decode parses a JSON document into Properties. Numbers are kept as
// json.Number so 64-bit resource ids are not rounded through float64.
func Decode(data []byte) (Properties, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var p Properties
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	return p, nil
}
