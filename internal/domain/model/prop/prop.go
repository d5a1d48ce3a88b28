package prop

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrEmptyComponent is returned when a component without props is added to a catalog
var ErrEmptyComponent = errors.New("component has no props")

// PropType is derived from the shape of a prop's options, never declared
type PropType string

const (
	PropTypeArray  PropType = "array"
	PropTypeObject PropType = "object"
	PropTypeString PropType = "string"
)

// Section is a titled span of document text
type Section struct {
	Title   string
	Content string
}

// Prop describes one configurable property of a documented component.
//
// Options holds nil, a string, a []any or an *OrderedMap.
// DefaultValue holds nil, bool, int64, json.Number, Float or string.
type Prop struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Required     bool     `json:"required"`
	Type         PropType `json:"type"`
	Options      any      `json:"options"`
	DefaultValue any      `json:"defaultValue"`
}

// TypeOf infers the prop type from resolved options
func TypeOf(options any) PropType {
	switch options.(type) {
	case []any:
		return PropTypeArray
	case *OrderedMap:
		return PropTypeObject
	default:
		return PropTypeString
	}
}

// Component is the exported record for a single documented component
type Component struct {
	Props []Prop `json:"props"`
}

// Float is a float64 that keeps its float shape when encoded (3 -> 3.0)
type Float float64

// MarshalJSON renders the shortest representation, switching to exponent
// form for very large and very small magnitudes.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, &json.UnsupportedValueError{Str: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return []byte(strconv.FormatFloat(v, 'e', -1, 64)), nil
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return []byte(s), nil
}

type entry struct {
	key   string
	value any
}

// OrderedMap is a string-keyed mapping that remembers insertion order.
// Setting an existing key replaces its value in place.
type OrderedMap struct {
	entries []entry
	index   map[string]int
}

// NewOrderedMap creates an empty OrderedMap
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{index: make(map[string]int)}
}

// Set stores value under key
func (m *OrderedMap) Set(key string, value any) {
	if i, ok := m.index[key]; ok {
		m.entries[i].value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, entry{key: key, value: value})
}

// Get returns the value stored under key
func (m *OrderedMap) Get(key string) (any, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].value, true
}

// Keys returns the keys in insertion order
func (m *OrderedMap) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return keys
}

// Len returns the number of entries
func (m *OrderedMap) Len() int {
	return len(m.entries)
}

// MarshalJSON encodes the map as a JSON object in insertion order
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	return marshalOrdered(len(m.entries), func(i int) (string, any) {
		return m.entries[i].key, m.entries[i].value
	})
}

// Catalog maps component titles to their props in first-seen order.
// A later Set for the same title overwrites the earlier component.
type Catalog struct {
	titles     []string
	components map[string]Component
}

// NewCatalog creates an empty Catalog
func NewCatalog() *Catalog {
	return &Catalog{components: make(map[string]Component)}
}

// Set records props under title. Empty prop lists are rejected so that no
// title ever maps to an empty component.
func (c *Catalog) Set(title string, props []Prop) error {
	if len(props) == 0 {
		return ErrEmptyComponent
	}
	if _, ok := c.components[title]; !ok {
		c.titles = append(c.titles, title)
	}
	c.components[title] = Component{Props: props}
	return nil
}

// Get returns the component stored under title
func (c *Catalog) Get(title string) (Component, bool) {
	comp, ok := c.components[title]
	return comp, ok
}

// Titles returns component titles in output order
func (c *Catalog) Titles() []string {
	return append([]string(nil), c.titles...)
}

// Len returns the number of components
func (c *Catalog) Len() int {
	return len(c.titles)
}

// MarshalJSON encodes the catalog as a JSON object keyed by title
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return marshalOrdered(len(c.titles), func(i int) (string, any) {
		title := c.titles[i]
		return title, c.components[title]
	})
}

func marshalOrdered(n int, at func(i int) (string, any)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, value := at(i)
		kb, err := marshalNoEscape(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := marshalNoEscape(value)
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalNoEscape is json.Marshal without HTML escaping; tag descriptions
// routinely contain markup like <Chart>.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
