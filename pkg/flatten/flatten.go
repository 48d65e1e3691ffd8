package flatten

import (
	"bytes"
	"strconv"
	"strings"
)

// FlatMap maps flattened paths to scalar values and remembers the order in
// which paths were first set.
type FlatMap struct {
	paths  []string
	values map[string]Value
}

func NewFlatMap() *FlatMap {
	return &FlatMap{values: make(map[string]Value)}
}

// Set stores v under path. Overwriting a path keeps its original position.
func (m *FlatMap) Set(path string, v Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[path]; !ok {
		m.paths = append(m.paths, path)
	}
	m.values[path] = v
}

func (m *FlatMap) Get(path string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[path]
	return v, ok
}

func (m *FlatMap) Has(path string) bool {
	_, ok := m.Get(path)
	return ok
}

func (m *FlatMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.paths)
}

// Keys returns the paths in insertion order.
func (m *FlatMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.paths))
	copy(out, m.paths)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *FlatMap) Range(fn func(path string, v Value) bool) {
	if m == nil {
		return
	}
	for _, p := range m.paths {
		if !fn(p, m.values[p]) {
			return
		}
	}
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *FlatMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(&buf, p); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := m.values[p].encode(&buf); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Flatten parses raw and flattens it. Empty or whitespace-only input yields an
// empty map; any other invalid input fails with a *ParseError.
func Flatten(raw string) (*FlatMap, error) {
	if strings.TrimSpace(raw) == "" {
		return NewFlatMap(), nil
	}
	v, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return FlattenValue(v), nil
}

// FlattenValue flattens an already parsed document. Object members are joined
// with "." and array elements are addressed as "[i]". A scalar root is stored
// under the empty path. Empty arrays and objects produce no entries.
func FlattenValue(v Value) *FlatMap {
	out := NewFlatMap()
	flattenNode(v, make([]byte, 0, 64), out)
	return out
}

// flattenNode walks node with path as the current prefix. Children append to
// path in place; the bytes past len(path) are scratch space shared by
// siblings, so a path becomes a string only when a leaf is stored.
func flattenNode(node Value, path []byte, out *FlatMap) {
	switch node.Kind() {
	case KindArray:
		for i, item := range node.items {
			p := append(path, '[')
			p = strconv.AppendInt(p, int64(i), 10)
			p = append(p, ']')
			flattenNode(item, p, out)
		}
	case KindObject:
		for _, m := range node.members {
			p := path
			if len(p) > 0 {
				p = append(p, '.')
			}
			p = append(p, m.Key...)
			flattenNode(m.Value, p, out)
		}
	case KindNull, KindBool, KindNumber, KindString:
		out.Set(string(path), node)
	}
}
