package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/genum-ai/genum/internal/logger"
	"github.com/tidwall/gjson"
)

var log = logger.Discard

// SetLogger sets the logger used by the package-level helpers
func SetLogger(l logger.Logger) {
	log = logger.OrDiscard(l)
}

// Log returns the logger set with SetLogger
func Log() logger.Logger {
	return log
}

// OrderedObject is a JSON object that remembers key insertion order
type OrderedObject struct {
	keys   []string
	values map[string]any
}

// NewOrderedObject returns an empty OrderedObject
func NewOrderedObject() *OrderedObject {
	return &OrderedObject{values: make(map[string]any)}
}

// Set stores a value. Existing keys keep their position.
func (o *OrderedObject) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key
func (o *OrderedObject) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Delete removes a key
func (o *OrderedObject) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order
func (o *OrderedObject) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys
func (o *OrderedObject) Len() int {
	return len(o.keys)
}

// MarshalJSON writes the object with keys in insertion order
func (o *OrderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping its key order
func (o *OrderedObject) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid JSON object")
	}
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return fmt.Errorf("expected JSON object, got %s", r.Type)
	}
	parsed := fromResult(r).(*OrderedObject)
	o.keys, o.values = parsed.keys, parsed.values
	return nil
}

// ToMap converts the object into plain maps, recursively. Key order is lost.
func (o *OrderedObject) ToMap() map[string]any {
	out := make(map[string]any, len(o.keys))
	for _, k := range o.keys {
		out[k] = plain(o.values[k])
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case *OrderedObject:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

// NormalizeJSONSchema turns a schema into an order-preserving tree. Strings and raw bytes
// are parsed; on a parse failure the error is logged and the input comes back unchanged.
// Plain maps carry no order, so their keys are sorted.
func NormalizeJSONSchema(schema any) any {
	switch s := schema.(type) {
	case string:
		if !gjson.Valid(s) {
			log.Error("Failed to parse JSON schema", map[string]interface{}{
				logger.ErrorKey: fmt.Errorf("invalid JSON"),
				"schema":        s,
			})
			return s
		}
		return fromResult(gjson.Parse(s))
	case json.RawMessage:
		return normalizeBytes(s)
	case []byte:
		return normalizeBytes(s)
	case *OrderedObject:
		return walk(s)
	case map[string]any:
		return walk(s)
	case []any:
		return walk(s)
	default:
		return schema
	}
}

func normalizeBytes(b []byte) any {
	if !gjson.ValidBytes(b) {
		log.Error("Failed to parse JSON schema", map[string]interface{}{
			logger.ErrorKey: fmt.Errorf("invalid JSON"),
			"schema":        string(b),
		})
		return b
	}
	return fromResult(gjson.ParseBytes(b))
}

func walk(v any) any {
	switch t := v.(type) {
	case *OrderedObject:
		out := NewOrderedObject()
		for _, k := range t.keys {
			out.Set(k, walk(t.values[k]))
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := NewOrderedObject()
		for _, k := range keys {
			out.Set(k, walk(t[k]))
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = walk(item)
		}
		return out
	default:
		return v
	}
}

func fromResult(r gjson.Result) any {
	switch {
	case r.IsObject():
		obj := NewOrderedObject()
		r.ForEach(func(key, value gjson.Result) bool {
			obj.Set(key.String(), fromResult(value))
			return true
		})
		return obj
	case r.IsArray():
		items := r.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = fromResult(item)
		}
		return out
	}

	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return json.Number(r.Raw)
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}

// UnwrapSchemaEnvelope returns the inner schema of a {name, strict, schema} envelope.
// Anything else is returned as is.
func UnwrapSchemaEnvelope(v any) any {
	obj, ok := v.(*OrderedObject)
	if !ok {
		return v
	}
	inner, ok := obj.Get("schema")
	if !ok {
		return v
	}
	if innerObj, ok := inner.(*OrderedObject); ok {
		return innerObj
	}
	return v
}
