// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package instr defines the compiled form of a script: a straight-line list
// of instructions.
//
// An Instruction is either an Operation, which changes pixels, or an
// environment instruction (EnvUpdate, EnvReset), which changes the state
// that later operations read. Both unions are sealed so a type switch over
// them can be checked for exhaustiveness by linters.
//
// Every instruction prints itself in canonical script form. Compiling the
// output of Format yields the same Program.
package instr

import (
	"strings"

	"github.com/specialistvlad/imagineer/internal/operation"
)

// Instruction is one compiled statement.
type Instruction interface {
	isInstruction()
	String() string
}

// Program is an ordered instruction list. Order is execution order.
type Program []Instruction

// Operation transforms the image.
type Operation struct {
	Op Op
}

// EnvUpdate replaces one environment field.
type EnvUpdate struct {
	Item EnvItem
}

// EnvReset restores one environment field to its default.
type EnvReset struct {
	Modifier operation.ID
}

func (Operation) isInstruction() {}
func (EnvUpdate) isInstruction() {}
func (EnvReset) isInstruction()  {}

func (o Operation) String() string {
	return statement(o.Op.ID().Name(), o.Op.args())
}

func (u EnvUpdate) String() string {
	return statement("set "+u.Item.Modifier().Name(), []string{u.Item.value()})
}

func (r EnvReset) String() string {
	return "del " + r.Modifier.Name()
}

// ID is the operation or modifier the instruction refers to.
func ID(in Instruction) operation.ID {
	switch in := in.(type) {
	case Operation:
		return in.Op.ID()
	case EnvUpdate:
		return in.Item.Modifier()
	case EnvReset:
		return in.Modifier
	default:
		panic("instr: unknown instruction type")
	}
}

// Format renders prog as script text, one statement per line.
func Format(prog Program) string {
	lines := make([]string, len(prog))
	for i, in := range prog {
		lines[i] = in.String() + ";"
	}
	return strings.Join(lines, "\n")
}

func statement(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
