package parser

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/YoshitsuguKoike/propdoc/internal/domain/model/prop"
)

const (
	openTag  = "<PropListing"
	closeTag = "</PropListing>"

	requiredMarker = "required"
)

// rawTag holds the attribute text of one matched tag before coercion
type rawTag struct {
	name         string
	description  *string
	options      *string
	defaultValue *string
	required     string // "true", "false" or "" when not given explicitly
	requiredBare bool
	inner        *string
	text         string
}

// ParsePropListings scans content left to right for PropListing tags and
// returns one prop per well-formed tag. Malformed tags are skipped.
//
// Accepted forms:
//
//	<PropListing name="x" description="..." required options=[...] defaultValue=y />
//	<PropListing name="x">description text</PropListing>
func ParsePropListings(content string) []prop.Prop {
	var props []prop.Prop
	pos := 0
	for {
		i := strings.Index(content[pos:], openTag)
		if i < 0 {
			break
		}
		start := pos + i

		tag, end, ok := scanTag(content, start)
		if !ok {
			pos = start + len(openTag)
			continue
		}
		props = append(props, tag.toProp())
		pos = end
	}
	return props
}

// scanTag reads one tag starting at src[start:] and returns the end offset
func scanTag(src string, start int) (*rawTag, int, bool) {
	s := &tagScanner{src: src, pos: start + len(openTag)}
	if s.eof() || !isSpace(s.peek()) {
		return nil, 0, false
	}

	tag := &rawTag{}
	seen := make(map[string]bool)
	haveName := false
	for {
		sawSpace := s.skipSpace()
		if s.eof() {
			return nil, 0, false
		}

		if s.hasPrefix("/>") {
			s.pos += 2
			break
		}
		if s.peek() == '>' {
			s.pos++
			idx := strings.Index(src[s.pos:], closeTag)
			if idx < 0 {
				return nil, 0, false
			}
			inner := src[s.pos : s.pos+idx]
			tag.inner = &inner
			s.pos += idx + len(closeTag)
			break
		}
		if !sawSpace {
			return nil, 0, false
		}

		key := s.readIdent()
		if key == "" || seen[key] {
			return nil, 0, false
		}
		seen[key] = true

		switch key {
		case "name":
			v, ok := s.readAssigned(s.readText)
			if !ok {
				return nil, 0, false
			}
			tag.name = v
			haveName = true
		case "description":
			v, ok := s.readAssigned(s.readText)
			if !ok {
				return nil, 0, false
			}
			tag.description = &v
		case "options":
			v, ok := s.readAssigned(s.readOptions)
			if !ok {
				return nil, 0, false
			}
			tag.options = &v
		case "defaultValue":
			v, ok := s.readAssigned(s.readDefault)
			if !ok {
				return nil, 0, false
			}
			tag.defaultValue = &v
		case requiredMarker:
			if s.eof() || s.peek() != '=' {
				tag.requiredBare = true
				continue
			}
			s.pos++
			v := s.readBare(false)
			if v != "true" && v != "false" {
				return nil, 0, false
			}
			tag.required = v
		default:
			return nil, 0, false
		}
	}

	if !haveName {
		return nil, 0, false
	}
	tag.text = src[start:s.pos]
	return tag, s.pos, true
}

func (t *rawTag) toProp() prop.Prop {
	var description *string
	switch {
	case t.description != nil:
		d := strings.Trim(*t.description, `"`)
		description = &d
	case t.inner != nil && *t.inner != "":
		d := strings.Trim(strings.TrimSpace(*t.inner), `"`)
		description = &d
	}

	var options any
	if t.options != nil {
		options = resolveOptions(*t.options)
	}

	var defaultValue any
	if t.defaultValue != nil {
		defaultValue = CoerceDefaultValue(*t.defaultValue)
	}

	var required bool
	switch t.required {
	case "true":
		required = true
	case "false":
		required = false
	default:
		required = t.requiredBare || strings.Contains(t.text, requiredMarker)
	}

	return prop.Prop{
		Name:         strings.Trim(t.name, `"`),
		Description:  description,
		Required:     required,
		Type:         prop.TypeOf(options),
		Options:      options,
		DefaultValue: defaultValue,
	}
}

// resolveOptions turns raw options text into a list, mapping or string.
// Text that fails to parse as a literal is kept as is.
func resolveOptions(raw string) any {
	s := strings.Trim(strings.TrimSpace(raw), `"`)
	if strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		if v, err := ParseOptionsLiteral(s); err == nil {
			return v
		}
	}
	return s
}

// CoerceDefaultValue converts a raw defaultValue attribute into a typed value.
// "-" means no default and yields nil.
func CoerceDefaultValue(raw string) any {
	switch {
	case raw == "-" || raw == `"-"`:
		return nil
	case raw == "true":
		return true
	case raw == "false":
		return false
	case isDigits(raw):
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
		trimmed := strings.TrimLeft(raw, "0")
		if trimmed == "" {
			trimmed = "0"
		}
		return json.Number(trimmed)
	case isDecimal(raw):
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return prop.Float(f)
		}
	}
	return strings.Trim(raw, `"`)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isDecimal reports whether s is digits with exactly one '.' somewhere
func isDecimal(s string) bool {
	i := strings.IndexByte(s, '.')
	if i < 0 || strings.IndexByte(s[i+1:], '.') >= 0 {
		return false
	}
	return isDigits(s[:i] + s[i+1:])
}
