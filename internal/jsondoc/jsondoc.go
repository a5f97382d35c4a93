// Package jsondoc wraps hujson objects so that rewritten project files keep
// the author's key order and number formatting. tsconfig-style comments and
// trailing commas are accepted on read and dropped on write.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Indent is the indentation used when writing documents back to disk.
const Indent = "    "

var bom = []byte("\xef\xbb\xbf")

// Object is a JSON object that remembers key insertion order.
//
// Get returns *Object, []any, string, json.Number, bool or nil. Nested
// objects share storage with their parent; arrays are returned as copies.
type Object struct {
	obj *hujson.Object
}

// New creates an empty object.
func New() *Object {
	return &Object{obj: &hujson.Object{}}
}

// Parse decodes data into an Object. The top-level value must be an object.
// Comments and trailing commas (JSONC) are accepted.
func Parse(data []byte) (*Object, error) {
	v, err := hujson.Parse(bytes.TrimPrefix(data, bom))
	if err != nil {
		return nil, err
	}
	v.Standardize()

	obj, ok := v.Value.(*hujson.Object)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object at top level")
	}
	return &Object{obj: obj}, nil
}

// Standardize converts JSONC data to plain JSON.
func Standardize(data []byte) ([]byte, error) {
	v, err := hujson.Parse(bytes.TrimPrefix(data, bom))
	if err != nil {
		return nil, err
	}
	v.Standardize()
	return v.Pack(), nil
}

// ReadFile reads and parses the JSON object stored at path.
// A missing file yields an error satisfying errors.Is(err, fs.ErrNotExist).
func ReadFile(path string) (*Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	obj, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return obj, nil
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.obj.Members)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.obj.Members))
	for _, m := range o.obj.Members {
		keys = append(keys, memberName(m))
	}
	return keys
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	return o.index(key) >= 0
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	i := o.index(key)
	if i < 0 {
		return nil, false
	}
	return decode(o.obj.Members[i].Value.Value), true
}

// Object returns the nested object stored under key.
// The second result is false when the key is absent or holds a non-object.
func (o *Object) Object(key string) (*Object, bool) {
	i := o.index(key)
	if i < 0 {
		return nil, false
	}
	nested, ok := o.obj.Members[i].Value.Value.(*hujson.Object)
	if !ok {
		return nil, false
	}
	return &Object{obj: nested}, true
}

// Bool returns the boolean stored under key, false if absent or not a bool.
func (o *Object) Bool(key string) bool {
	v, _ := o.Get(key)
	b, _ := v.(bool)
	return b
}

// Set stores v under key. New keys are appended; existing keys keep their
// position. v must be an *Object or a value encoding/json can marshal.
func (o *Object) Set(key string, v any) error {
	val, err := encode(v)
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	if i := o.index(key); i >= 0 {
		o.obj.Members[i].Value = val
		return nil
	}
	name, err := literal(key)
	if err != nil {
		return err
	}
	o.obj.Members = append(o.obj.Members, hujson.ObjectMember{
		Name:  hujson.Value{Value: name},
		Value: val,
	})
	return nil
}

// Delete removes key if present.
func (o *Object) Delete(key string) {
	if i := o.index(key); i >= 0 {
		o.obj.Members = append(o.obj.Members[:i], o.obj.Members[i+1:]...)
	}
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	v := hujson.Value{Value: o.obj}
	c := v.Clone()
	return &Object{obj: c.Value.(*hujson.Object)}
}

// ToMap converts the object into plain maps and slices, dropping key order.
// Numbers stay json.Number.
func (o *Object) ToMap() map[string]any {
	m := make(map[string]any, o.Len())
	for _, member := range o.obj.Members {
		m[memberName(member)] = plain(decode(member.Value.Value))
	}
	return m
}

// MarshalJSON implements json.Marshaler, preserving key order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, o.pack()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Object) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*o = *parsed
	return nil
}

// Marshal renders the object with Indent and no trailing newline.
func (o *Object) Marshal() ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, o.pack(), "", Indent); err != nil {
		return nil, err
	}
	return bytes.TrimRight(out.Bytes(), " \t\r\n"), nil
}

// WriteFile renders the object and overwrites path.
func (o *Object) WriteFile(path string, perm os.FileMode) error {
	data, err := o.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (o *Object) pack() []byte {
	v := hujson.Value{Value: o.obj}
	return v.Pack()
}

func (o *Object) index(key string) int {
	for i, m := range o.obj.Members {
		if memberName(m) == key {
			return i
		}
	}
	return -1
}

func memberName(m hujson.ObjectMember) string {
	lit, _ := m.Name.Value.(hujson.Literal)
	var name string
	_ = json.Unmarshal(lit, &name)
	return name
}

// decode converts a hujson value into the types Get documents.
func decode(v hujson.ValueTrimmed) any {
	switch val := v.(type) {
	case *hujson.Object:
		return &Object{obj: val}
	case *hujson.Array:
		arr := make([]any, 0, len(val.Elements))
		for _, elem := range val.Elements {
			arr = append(arr, decode(elem.Value))
		}
		return arr
	case hujson.Literal:
		return decodeLiteral(val)
	default:
		return nil
	}
}

func decodeLiteral(lit hujson.Literal) any {
	if len(lit) == 0 {
		return nil
	}
	switch lit[0] {
	case '"':
		var s string
		_ = json.Unmarshal(lit, &s)
		return s
	case 't':
		return true
	case 'f':
		return false
	case 'n':
		return nil
	default:
		return json.Number(string(lit))
	}
}

func plain(v any) any {
	switch val := v.(type) {
	case *Object:
		return val.ToMap()
	case []any:
		arr := make([]any, len(val))
		for i, item := range val {
			arr[i] = plain(item)
		}
		return arr
	default:
		return val
	}
}

// encode turns v into a hujson value. *Object values are shared, not copied.
func encode(v any) (hujson.Value, error) {
	if obj, ok := v.(*Object); ok {
		return hujson.Value{Value: obj.obj}, nil
	}
	data, err := marshal(v)
	if err != nil {
		return hujson.Value{}, err
	}
	return hujson.Parse(data)
}

func literal(s string) (hujson.Literal, error) {
	data, err := marshal(s)
	if err != nil {
		return nil, err
	}
	return hujson.Literal(data), nil
}

// marshal encodes v without HTML escaping.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
