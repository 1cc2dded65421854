package coerce

import (
	"github.com/specialistvlad/imagineer/internal/operation"
	"github.com/specialistvlad/imagineer/internal/syntax"
)

// Group splits a flat run of tokens into consecutive invocations of id, each
// taking exactly Arity tokens, left to right. A count that does not divide
// evenly is an *ArityError; nothing is inferred from a remainder.
//
// A nullary operation groups to a single invocation and accepts no tokens.
func Group(id operation.ID, toks []syntax.Token) ([][]syntax.Token, error) {
	k := id.Arity()
	if k == 0 {
		if len(toks) != 0 {
			return nil, &ArityError{Op: id, Want: 0, Got: len(toks)}
		}
		return [][]syntax.Token{nil}, nil
	}
	if len(toks) == 0 || len(toks)%k != 0 {
		return nil, &ArityError{Op: id, Want: k, Got: len(toks)}
	}

	groups := make([][]syntax.Token, 0, len(toks)/k)
	for i := 0; i < len(toks); i += k {
		groups = append(groups, toks[i:i+k:i+k])
	}
	return groups, nil
}
