// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package script compiles script text into an instr.Program.
//
// Compilation is pure: it never reads files or blocks. It either returns the
// complete program or a single *Error naming the statement that failed.
package script

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/imagineer/internal/coerce"
	"github.com/specialistvlad/imagineer/internal/instr"
	"github.com/specialistvlad/imagineer/internal/syntax"
)

// Stage is the compilation step that rejected a script.
type Stage int

const (
	StageSyntax Stage = iota + 1
	StageCoercion
)

func (s Stage) String() string {
	switch s {
	case StageSyntax:
		return "syntax"
	case StageCoercion:
		return "coercion"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Error describes why a script failed to compile. It unwraps to the
// *syntax.Error, *coerce.Error or *coerce.ArityError underneath.
type Error struct {
	Stage Stage
	// Statement is the 1-based statement index.
	Statement int
	// Op is the operation name, empty when the name itself was unreadable.
	Op string
	// Token is the offending source text.
	Token string
	Pos   syntax.Pos
	Err   error
}

func (e *Error) Error() string {
	if e.Stage == StageSyntax {
		return fmt.Sprintf("statement %d: %v", e.Statement, e.Err)
	}
	return fmt.Sprintf("statement %d at %s: %v", e.Statement, e.Pos, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Compile compiles an unnamed script.
func Compile(src string) (instr.Program, error) {
	return CompileFile("", src)
}

// CompileFile compiles src. The name only appears in error positions.
func CompileFile(name, src string) (instr.Program, error) {
	stmts, err := syntax.ParseFile(name, src)
	if err != nil {
		var se *syntax.Error
		if !errors.As(err, &se) {
			return nil, err
		}
		return nil, &Error{
			Stage:     StageSyntax,
			Statement: se.Statement,
			Token:     se.Fragment,
			Pos:       se.Pos,
			Err:       err,
		}
	}

	prog := make(instr.Program, 0, len(stmts))
	for i, stmt := range stmts {
		ins, err := coerce.Coerce(stmt)
		if err != nil {
			return nil, coercionError(i+1, stmt, err)
		}
		prog = append(prog, ins...)
	}
	return prog, nil
}

func coercionError(index int, stmt syntax.Statement, err error) *Error {
	e := &Error{
		Stage:     StageCoercion,
		Statement: index,
		Op:        stmt.ID.Name(),
		Pos:       stmt.Pos,
		Err:       err,
	}
	var ce *coerce.Error
	if errors.As(err, &ce) {
		e.Token = ce.Token.Text
		if ce.Token.Pos.IsValid() {
			e.Pos = ce.Token.Pos
		}
	}
	return e
}
