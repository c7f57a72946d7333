package object

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Map is a mapping from string keys to Objects. It backs the Hollicode
// "object" value indexed by the LOOK instruction.
type Map struct {
	items map[string]Object
}

func (m *Map) Type() Type {
	return MAP
}

func (m *Map) Value() map[string]Object {
	return m.items
}

// Get returns the value for the given key. The second return value is
// false if the key is not present.
func (m *Map) Get(key string) (Object, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Set stores a value under the given key.
func (m *Map) Set(key string, value Object) {
	m.items[key] = value
}

func (m *Map) Len() int {
	return len(m.items)
}

func (m *Map) Inspect() string {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, k := range Keys(m.items) {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%q: %s", k, m.items[k].Inspect())
	}
	buf.WriteString("}")
	return buf.String()
}

func (m *Map) String() string {
	return m.Inspect()
}

func (m *Map) Interface() interface{} {
	result := make(map[string]interface{}, len(m.items))
	for k, v := range m.items {
		result[k] = v.Interface()
	}
	return result
}

func (m *Map) Equals(other Object) bool {
	otherMap, ok := other.(*Map)
	if !ok {
		return false
	}
	if len(m.items) != len(otherMap.items) {
		return false
	}
	for k, v := range m.items {
		otherV, ok := otherMap.items[k]
		if !ok || !v.Equals(otherV) {
			return false
		}
	}
	return true
}

func (m *Map) IsTruthy() bool {
	return true
}

func (m *Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Interface())
}

// NewMap creates a Map object around the given Go map. The map is used
// directly, not copied, so the host can mutate it between runs.
func NewMap(items map[string]Object) *Map {
	if items == nil {
		items = map[string]Object{}
	}
	return &Map{items: items}
}
