package syntax

import (
	"fmt"

	"github.com/specialistvlad/imagineer/internal/operation"
)

// Pos is a location in a script. Line and Column are 1-based.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was set.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// TokenKind is the lexical shape of an argument.
type TokenKind int

const (
	Number TokenKind = iota + 1
	Bool
	String
	Word
	Call
)

func (k TokenKind) String() string {
	switch k {
	case Number:
		return "number"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Word:
		return "word"
	case Call:
		return "call"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is one raw argument. Text holds the value with quotes removed;
// call arguments such as rgba(1, 2, 3, 4) keep their full source text.
type Token struct {
	Text string
	Kind TokenKind
	Pos  Pos
}

// Statement is a single operation invocation as written in a script.
type Statement struct {
	ID operation.ID
	// Reset marks a "del <modifier>" statement. Args is empty when set.
	Reset bool
	// Args holds the raw tokens. Numeric operations may carry several
	// argument blocks back to back; coerce.Group splits them.
	Args []Token
	Pos   Pos
}
