package syntax

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/imagineer/internal/operation"
)

const (
	keywordSet = "set"
	keywordDel = "del"
)

// Parse reads an unnamed script.
func Parse(src string) ([]Statement, error) {
	return ParseFile("", src)
}

// ParseFile reads a script. The filename only appears in positions.
// An empty or all-whitespace script yields no statements.
func ParseFile(filename, src string) ([]Statement, error) {
	p := &parser{s: newScanner(filename, src)}
	return p.parseScript()
}

// IsNumber reports whether s is exactly one number as a script spells it:
// an optional sign, digits, and an optional fraction.
func IsNumber(s string) bool {
	p := &parser{s: newScanner("", s)}
	_, err := p.parseNumber()
	return err == nil && p.s.ch == eof
}

type parser struct {
	s *scanner
}

func (p *parser) errorf(at Pos, format string, args ...any) *Error {
	return &Error{
		Pos:      at,
		Fragment: p.s.fragment(at.Offset),
		Msg:      fmt.Sprintf(format, args...),
	}
}

func (p *parser) parseScript() ([]Statement, error) {
	var stmts []Statement

	p.s.skipWhitespace()
	for p.s.ch != eof {
		stmt, err := p.parseStatement()
		if err != nil {
			var se *Error
			if errors.As(err, &se) {
				se.Statement = len(stmts) + 1
			}
			return nil, err
		}
		stmts = append(stmts, stmt)

		p.s.skipWhitespace()
		if p.s.ch == eof {
			break
		}
		if p.s.ch != ';' {
			err := p.errorf(p.s.pos(), "expected ';' or end of script after %s", describe(stmt))
			err.Statement = len(stmts)
			return nil, err
		}
		p.s.readChar()
		p.s.skipWhitespace()
	}

	return stmts, nil
}

func describe(stmt Statement) string {
	if stmt.Reset {
		return fmt.Sprintf("'%s %s'", keywordDel, stmt.ID.Name())
	}
	return fmt.Sprintf("%s, which takes %d argument(s)", stmt.ID.Name(), stmt.ID.Arity())
}

func (p *parser) parseStatement() (Statement, error) {
	start := p.s.pos()
	name := p.s.readIdent()
	if name == "" {
		return Statement{}, p.errorf(start, "expected an operation name")
	}

	switch name {
	case keywordSet:
		id, err := p.parseModifierName(name)
		if err != nil {
			return Statement{}, err
		}
		args, err := p.parseArgs(id)
		if err != nil {
			return Statement{}, err
		}
		return Statement{ID: id, Args: args, Pos: start}, nil

	case keywordDel:
		id, err := p.parseModifierName(name)
		if err != nil {
			return Statement{}, err
		}
		if !p.s.atBoundary() {
			return Statement{}, p.errorf(p.s.pos(), "unexpected input after '%s %s'", keywordDel, id.Name())
		}
		return Statement{ID: id, Reset: true, Pos: start}, nil
	}

	id, ok := operation.Lookup(name)
	if !ok {
		return Statement{}, p.errorf(start, "unknown operation %q", name)
	}
	args, err := p.parseArgs(id)
	if err != nil {
		return Statement{}, err
	}
	return Statement{ID: id, Args: args, Pos: start}, nil
}

func (p *parser) parseModifierName(keyword string) (operation.ID, error) {
	if p.s.ch != ' ' {
		return 0, p.errorf(p.s.pos(), "expected a single space after %q", keyword)
	}
	p.s.readChar()

	at := p.s.pos()
	name := p.s.readIdent()
	id, ok := operation.Lookup(name)
	if !ok || !id.IsModifier() {
		return 0, p.errorf(at, "%q is not a modifier", name)
	}
	return id, nil
}

// parseArgs reads one full argument block. Operations whose arguments are
// all numeric may repeat the block ("resize 1 2 3 4"); the extra tokens are
// appended and split into invocations later, so a trailing partial block is
// left for the arity check.
func (p *parser) parseArgs(id operation.ID) ([]Token, error) {
	slots := shapesFor(id)
	repeatable := len(slots) > 0
	for _, sh := range slots {
		repeatable = repeatable && sh.kind == Number
	}

	var args []Token
	piped := false
	for i := 0; i < len(slots) || (repeatable && p.moreNumbers(id, i)); i++ {
		slot := i % len(slots)
		sh := slots[slot]
		if slot == 0 {
			piped = false
		}
		if id == operation.Filter3x3 && (slot == 3 || slot == 6) {
			if err := p.parseKernelPipe(slot, &piped); err != nil {
				return nil, err
			}
		}
		if err := p.parseSeparator(id, i); err != nil {
			return nil, err
		}
		tok, err := p.parseArg(sh)
		if err != nil {
			return nil, err
		}
		if !p.s.atBoundary() {
			return nil, p.errorf(tok.Pos, "malformed %s argument for %s", sh.describe(), id.Name())
		}
		args = append(args, tok)
	}

	if id == operation.Filter3x3 && p.s.hasPrefix(" |") {
		return nil, p.errorf(p.s.pos(), "unexpected '|' after the last kernel row")
	}
	if !p.s.atBoundary() {
		return nil, p.errorf(p.s.pos(), "unexpected input after %s", id.Name())
	}
	return args, nil
}

// moreNumbers reports whether a single space and another number follow,
// allowing for a kernel pipe when argument next starts a new row.
func (p *parser) moreNumbers(id operation.ID, next int) bool {
	if p.s.ch == eof {
		return false
	}
	rest := p.s.input[p.s.position:]
	if id == operation.Filter3x3 && (next%9 == 3 || next%9 == 6) {
		rest = strings.TrimPrefix(rest, " |")
	}
	if len(rest) < 2 || rest[0] != ' ' {
		return false
	}
	c := rune(rest[1])
	return isDigit(c) || c == '-' || c == '+'
}

// parseSeparator consumes the single space that precedes argument i.
func (p *parser) parseSeparator(id operation.ID, i int) error {
	switch {
	case p.s.ch == eof || p.s.ch == ';':
		return p.errorf(p.s.pos(), "%s takes %d argument(s), got %d", id.Name(), id.Arity(), i)
	case p.s.ch != ' ':
		return p.errorf(p.s.pos(), "arguments of %s must be separated by a single space", id.Name())
	}
	p.s.readChar()
	if isSpace(p.s.ch) {
		return p.errorf(p.s.pos(), "arguments of %s must be separated by a single space", id.Name())
	}
	return nil
}

// parseKernelPipe handles the optional " |" in front of kernel rows two and
// three. The row after a pipe still needs its own separating space.
func (p *parser) parseKernelPipe(i int, piped *bool) error {
	at := p.s.pos()
	hasPipe := p.s.hasPrefix(" |")

	switch {
	case i == 3 && !hasPipe:
		return nil
	case i == 6 && !*piped && hasPipe:
		return p.errorf(at, "kernel rows must be separated by '|' everywhere or nowhere")
	case i == 6 && !*piped:
		return nil
	case i == 6 && !hasPipe:
		return p.errorf(at, "expected ' | ' before the third kernel row")
	}

	if !p.s.hasPrefix(" | ") {
		return p.errorf(at, "a kernel row separator must be written as ' | '")
	}
	p.s.readChar()
	p.s.readChar()
	*piped = true
	return nil
}

func (p *parser) parseArg(sh shape) (Token, error) {
	switch sh.kind {
	case Number:
		return p.parseNumber()
	case Bool:
		return p.parseBool()
	case String:
		return p.parseString()
	case Word:
		return p.parseWord()
	case Call:
		return p.parseCall(sh.call)
	default:
		panic(fmt.Sprintf("syntax: unhandled argument kind %v", sh.kind))
	}
}

func (p *parser) parseNumber() (Token, error) {
	at := p.s.pos()
	begin := p.s.position

	if p.s.ch == '+' || p.s.ch == '-' {
		p.s.readChar()
	}
	if !isDigit(p.s.ch) {
		return Token{}, p.errorf(at, "expected a number")
	}
	for isDigit(p.s.ch) {
		p.s.readChar()
	}
	if p.s.ch == '.' {
		p.s.readChar()
		if !isDigit(p.s.ch) {
			return Token{}, p.errorf(at, "a number cannot end with '.'")
		}
		for isDigit(p.s.ch) {
			p.s.readChar()
		}
	}

	return Token{Text: p.s.input[begin:p.s.position], Kind: Number, Pos: at}, nil
}

func (p *parser) parseBool() (Token, error) {
	at := p.s.pos()
	text := p.s.readIdent()
	if text != "true" && text != "false" {
		return Token{}, p.errorf(at, "expected true or false")
	}
	return Token{Text: text, Kind: Bool, Pos: at}, nil
}

func (p *parser) parseWord() (Token, error) {
	at := p.s.pos()
	text := p.s.readIdent()
	if text == "" {
		return Token{}, p.errorf(at, "expected a name")
	}
	return Token{Text: text, Kind: Word, Pos: at}, nil
}

// parseString accepts a Go style double quoted literal or a bare run of
// non-space characters.
func (p *parser) parseString() (Token, error) {
	at := p.s.pos()
	if p.s.ch != '"' {
		text := p.s.readBare()
		if text == "" {
			return Token{}, p.errorf(at, "expected a string")
		}
		return Token{Text: text, Kind: String, Pos: at}, nil
	}

	begin := p.s.position
	if err := p.skipQuoted(at); err != nil {
		return Token{}, err
	}
	text, err := strconv.Unquote(p.s.input[begin:p.s.position])
	if err != nil {
		return Token{}, p.errorf(at, "invalid string literal: %v", err)
	}
	return Token{Text: text, Kind: String, Pos: at}, nil
}

// skipQuoted consumes a double quoted literal starting at ch.
func (p *parser) skipQuoted(at Pos) error {
	p.s.readChar()
	for {
		switch p.s.ch {
		case eof, '\n':
			return p.errorf(at, "unterminated string")
		case '\\':
			p.s.readChar()
			if p.s.ch == eof {
				return p.errorf(at, "unterminated string")
			}
		case '"':
			p.s.readChar()
			return nil
		}
		p.s.readChar()
	}
}

// parseCall reads name(...) and keeps the full text. Quoted strings inside
// the parentheses may contain ')'.
func (p *parser) parseCall(want string) (Token, error) {
	at := p.s.pos()
	begin := p.s.position

	name := p.s.readIdent()
	if name != want {
		return Token{}, p.errorf(at, "expected %s(...)", want)
	}
	if p.s.ch != '(' {
		return Token{}, p.errorf(p.s.pos(), "expected '(' after %s", want)
	}
	p.s.readChar()

	for p.s.ch != ')' {
		switch p.s.ch {
		case eof, '\n', ';':
			return Token{}, p.errorf(at, "unclosed %s(", want)
		case '"':
			if err := p.skipQuoted(p.s.pos()); err != nil {
				return Token{}, err
			}
		default:
			p.s.readChar()
		}
	}
	p.s.readChar()

	return Token{Text: p.s.input[begin:p.s.position], Kind: Call, Pos: at}, nil
}

func (sh shape) describe() string {
	if sh.kind == Call {
		return sh.call + "(...)"
	}
	return sh.kind.String()
}
