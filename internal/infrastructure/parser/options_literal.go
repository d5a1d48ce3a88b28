package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/YoshitsuguKoike/propdoc/internal/domain/model/prop"
)

// ErrOptionsLiteral reports an options value that is not a plain data literal
var ErrOptionsLiteral = errors.New("invalid options literal")

// ParseOptionsLiteral parses a JSON-like literal: quoted strings, numbers,
// booleans, null, [lists] and {mappings}. Single-quoted strings are accepted.
// Bare identifiers and anything that would need evaluation are rejected.
//
// Lists decode to []any and mappings to *prop.OrderedMap.
func ParseOptionsLiteral(s string) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOptionsLiteral, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("%w: empty literal", ErrOptionsLiteral)
	}
	return literalValue(doc.Content[0])
}

func literalValue(n *yaml.Node) (any, error) {
	if n.Anchor != "" || n.Style&yaml.TaggedStyle != 0 {
		return nil, fmt.Errorf("%w: line %d: anchors and tags are not allowed", ErrOptionsLiteral, n.Line)
	}

	switch n.Kind {
	case yaml.SequenceNode:
		if n.Style&yaml.FlowStyle == 0 {
			return nil, fmt.Errorf("%w: line %d: list must use [ ]", ErrOptionsLiteral, n.Line)
		}
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := literalValue(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil

	case yaml.MappingNode:
		if n.Style&yaml.FlowStyle == 0 {
			return nil, fmt.Errorf("%w: line %d: mapping must use { }", ErrOptionsLiteral, n.Line)
		}
		m := prop.NewOrderedMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d: mapping key must be a scalar", ErrOptionsLiteral, n.Content[i].Line)
			}
			k, err := literalValue(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := literalValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(keyString(k), v)
		}
		return m, nil

	case yaml.ScalarNode:
		return literalScalar(n)

	default:
		return nil, fmt.Errorf("%w: line %d: unsupported node", ErrOptionsLiteral, n.Line)
	}
}

func literalScalar(n *yaml.Node) (any, error) {
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		return n.Value, nil
	}
	if n.Style != 0 {
		return nil, fmt.Errorf("%w: line %d: block scalars are not allowed", ErrOptionsLiteral, n.Line)
	}

	switch n.ShortTag() {
	case "!!int":
		if hasLeadingZero(n.Value) {
			return nil, fmt.Errorf("%w: line %d: leading zero in %q", ErrOptionsLiteral, n.Line, n.Value)
		}
		var v int64
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOptionsLiteral, err)
		}
		return v, nil
	case "!!float":
		// 09 is not valid octal, so YAML falls back to reading it as a float
		if !strings.ContainsAny(n.Value, ".eE") && hasLeadingZero(n.Value) {
			return nil, fmt.Errorf("%w: line %d: leading zero in %q", ErrOptionsLiteral, n.Line, n.Value)
		}
		var v float64
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOptionsLiteral, err)
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: line %d: %q is not a finite number", ErrOptionsLiteral, n.Line, n.Value)
		}
		return prop.Float(v), nil
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOptionsLiteral, err)
		}
		return v, nil
	case "!!null":
		if n.Value == "" || n.Value == "~" {
			return nil, fmt.Errorf("%w: line %d: missing value", ErrOptionsLiteral, n.Line)
		}
		return nil, nil
	case "!!str":
		if n.Value == "None" {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: line %d: bare word %q", ErrOptionsLiteral, n.Line, n.Value)
	default:
		return nil, fmt.Errorf("%w: line %d: bare word %q", ErrOptionsLiteral, n.Line, n.Value)
	}
}

// hasLeadingZero reports decimal integers like 010 or -007, which YAML would
// read as octal. A run of zeros is still plain zero.
func hasLeadingZero(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if len(s) < 2 || s[0] != '0' || s[1] < '0' || s[1] > '9' {
		return false
	}
	return strings.Trim(s, "0") != ""
}

// keyString renders a mapping key the way a JSON encoder would stringify it
func keyString(k any) string {
	switch v := k.(type) {
	case string:
		return v
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case prop.Float:
		b, _ := v.MarshalJSON()
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}
