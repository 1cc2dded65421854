package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const eof rune = -1

const maxFragment = 32

// scanner walks the input one rune at a time and tracks line and column.
type scanner struct {
	file         string
	input        string
	position     int  // offset of ch
	readPosition int  // offset after ch
	ch           rune // current rune, eof at the end of input
	line         int
	column       int
}

func newScanner(file, input string) *scanner {
	s := &scanner{file: file, input: input, line: 1}
	s.readChar()
	return s
}

func (s *scanner) readChar() {
	if s.ch == eof {
		return
	}
	if s.ch == '\n' {
		s.line++
		s.column = 0
	}
	s.column++
	if s.readPosition >= len(s.input) {
		s.ch = eof
		s.position = len(s.input)
		return
	}
	r, w := utf8.DecodeRuneInString(s.input[s.readPosition:])
	s.ch = r
	s.position = s.readPosition
	s.readPosition += w
}

func (s *scanner) pos() Pos {
	return Pos{File: s.file, Line: s.line, Column: s.column, Offset: s.position}
}

// hasPrefix reports whether the unread input, starting at ch, begins with p.
func (s *scanner) hasPrefix(p string) bool {
	if s.ch == eof {
		return false
	}
	return strings.HasPrefix(s.input[s.position:], p)
}

func (s *scanner) skipWhitespace() {
	for isSpace(s.ch) {
		s.readChar()
	}
}

func (s *scanner) readIdent() string {
	start := s.position
	for isIdentChar(s.ch) {
		s.readChar()
	}
	return s.input[start:s.position]
}

// readBare consumes everything up to whitespace, ';' or the end of input.
func (s *scanner) readBare() string {
	start := s.position
	for s.ch != eof && s.ch != ';' && !isSpace(s.ch) {
		s.readChar()
	}
	return s.input[start:s.position]
}

// fragment is the input at off cut at the next separator.
func (s *scanner) fragment(off int) string {
	if off >= len(s.input) {
		return ""
	}
	rest := s.input[off:]
	if i := strings.IndexAny(rest, "; \t\r\n"); i >= 0 {
		rest = rest[:i]
	}
	if len(rest) > maxFragment {
		cut := maxFragment
		for cut > 0 && !utf8.RuneStart(rest[cut]) {
			cut--
		}
		rest = rest[:cut]
	}
	return rest
}

func isSpace(r rune) bool {
	return r != eof && unicode.IsSpace(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentChar(r rune) bool {
	return r == '-' || r == '_' || isDigit(r) || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// atBoundary reports whether ch may legally follow a complete token.
func (s *scanner) atBoundary() bool {
	return s.ch == eof || s.ch == ';' || isSpace(s.ch)
}
