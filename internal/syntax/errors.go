package syntax

import "fmt"

// Error is a malformed script. Fragment is the source text at Pos, trimmed to
// the next separator, so the message can quote what the user wrote.
type Error struct {
	Pos      Pos
	Fragment string
	Msg      string
	// Statement is the 1-based index of the statement being read.
	Statement int
}

func (e *Error) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("syntax error at %s near %q: %s", e.Pos, e.Fragment, e.Msg)
}
