package parser

import "strings"

// tagScanner is a cursor over tag source text. Readers advance pos past what
// they consume and report false when the text does not fit their form.
type tagScanner struct {
	src string
	pos int
}

func (s *tagScanner) eof() bool { return s.pos >= len(s.src) }

func (s *tagScanner) peek() byte { return s.src[s.pos] }

func (s *tagScanner) hasPrefix(p string) bool { return strings.HasPrefix(s.src[s.pos:], p) }

// skipSpace advances over whitespace and reports whether any was consumed
func (s *tagScanner) skipSpace() bool {
	start := s.pos
	for !s.eof() && isSpace(s.peek()) {
		s.pos++
	}
	return s.pos > start
}

func (s *tagScanner) readIdent() string {
	start := s.pos
	for !s.eof() {
		c := s.peek()
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			break
		}
		s.pos++
	}
	return s.src[start:s.pos]
}

// readAssigned consumes `=` and then a value using read
func (s *tagScanner) readAssigned(read func() (string, bool)) (string, bool) {
	if s.eof() || s.peek() != '=' {
		return "", false
	}
	s.pos++
	if s.eof() {
		return "", false
	}
	return read()
}

// readText reads a name or description: a non-empty quoted string or a bare token
func (s *tagScanner) readText() (string, bool) {
	if s.peek() == '"' {
		return s.readQuoted(false)
	}
	v := s.readBare(true)
	return v, v != ""
}

func (s *tagScanner) readDefault() (string, bool) {
	if s.peek() == '"' {
		return s.readQuoted(true)
	}
	v := s.readBare(false)
	return v, v != ""
}

func (s *tagScanner) readOptions() (string, bool) {
	switch s.peek() {
	case '[', '{':
		return s.readBalanced()
	case '"':
		return s.readQuoted(true)
	}
	v := s.readBare(false)
	return v, v != ""
}

// readQuoted reads a double-quoted string without escapes, quotes included
func (s *tagScanner) readQuoted(allowEmpty bool) (string, bool) {
	end := strings.IndexByte(s.src[s.pos+1:], '"')
	if end < 0 || (end == 0 && !allowEmpty) {
		return "", false
	}
	v := s.src[s.pos : s.pos+end+2]
	s.pos += end + 2
	return v, true
}

// readBare reads up to whitespace, '>' or "/>"
func (s *tagScanner) readBare(stopAtQuote bool) string {
	start := s.pos
	for !s.eof() {
		c := s.peek()
		if isSpace(c) || c == '>' || s.hasPrefix("/>") || (stopAtQuote && c == '"') {
			break
		}
		s.pos++
	}
	return s.src[start:s.pos]
}

// readBalanced reads a bracketed literal through its matching close,
// skipping over quoted strings
func (s *tagScanner) readBalanced() (string, bool) {
	start := s.pos
	depth := 0
	for !s.eof() {
		switch c := s.peek(); c {
		case '"', '\'':
			if end := quoteEnd(s.src, s.pos); end > 0 {
				s.pos = end + 1
				continue
			}
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				s.pos++
				return s.src[start:s.pos], true
			}
		}
		s.pos++
	}
	return "", false
}

// quoteEnd returns the index of the quote closing the one at src[open],
// honoring backslash escapes, or -1
func quoteEnd(src string, open int) int {
	q := src[open]
	for i := open + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case q:
			return i
		}
	}
	return -1
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
