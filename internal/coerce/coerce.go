// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package coerce converts raw argument tokens into typed instructions.
//
// Each operation declares the type of every argument slot. Tokens are
// consumed left to right and the first one that fails to convert aborts the
// whole statement. No defaults are ever substituted for a bad or missing
// value, and file paths are kept as references without touching the disk.
package coerce

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/specialistvlad/imagineer/internal/instr"
	"github.com/specialistvlad/imagineer/internal/operation"
	"github.com/specialistvlad/imagineer/internal/syntax"
)

// Coerce converts one parsed statement. A statement that carries several
// argument blocks yields one instruction per block, in order.
func Coerce(stmt syntax.Statement) ([]instr.Instruction, error) {
	if stmt.Reset {
		if !stmt.ID.IsModifier() {
			return nil, fmt.Errorf("coerce: %s is not a modifier and cannot be reset", stmt.ID.Name())
		}
		if len(stmt.Args) != 0 {
			return nil, &ArityError{Op: stmt.ID, Want: 0, Got: len(stmt.Args)}
		}
		return []instr.Instruction{instr.EnvReset{Modifier: stmt.ID}}, nil
	}

	groups, err := Group(stmt.ID, stmt.Args)
	if err != nil {
		return nil, err
	}
	out := make([]instr.Instruction, 0, len(groups))
	for _, toks := range groups {
		in, err := Tokens(stmt.ID, toks)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

// Tokens converts exactly Arity tokens into the instruction for id.
func Tokens(id operation.ID, toks []syntax.Token) (instr.Instruction, error) {
	if len(toks) != id.Arity() {
		return nil, &ArityError{Op: id, Want: id.Arity(), Got: len(toks)}
	}

	r := &reader{id: id, toks: toks}
	var in instr.Instruction

	switch id {
	case operation.Blur:
		in = op(instr.Blur{Sigma: r.f32(0)})
	case operation.Brighten:
		in = op(instr.Brighten{Amount: r.i32(0)})
	case operation.Contrast:
		in = op(instr.Contrast{Percent: r.f32(0)})
	case operation.Crop:
		in = op(instr.Crop{X0: r.u32(0), Y0: r.u32(1), X1: r.u32(2), Y1: r.u32(3)})
	case operation.Diff:
		in = op(instr.Diff{Image: r.path(0)})
	case operation.DrawText:
		x, y := r.coord(1)
		in = op(instr.DrawText{
			Text:  r.text(0),
			X:     x,
			Y:     y,
			Color: r.rgba(2),
			Size:  r.size(3),
			Font:  r.font(4),
		})
	case operation.Filter3x3:
		var k [9]float32
		for i := range k {
			k[i] = r.f32(i)
		}
		in = op(instr.Filter3x3{Kernel: k})
	case operation.FlipHorizontal:
		in = op(instr.FlipHorizontal{})
	case operation.FlipVertical:
		in = op(instr.FlipVertical{})
	case operation.Grayscale:
		in = op(instr.Grayscale{})
	case operation.HueRotate:
		in = op(instr.HueRotate{Degrees: r.i32(0)})
	case operation.HorizontalGradient:
		in = op(instr.HorizontalGradient{Start: r.rgba(0), End: r.rgba(1)})
	case operation.Invert:
		in = op(instr.Invert{})
	case operation.Overlay:
		in = op(instr.Overlay{Image: r.path(0), X: r.u32(1), Y: r.u32(2)})
	case operation.Resize:
		in = op(instr.Resize{Width: r.u32(0), Height: r.u32(1)})
	case operation.Rotate90:
		in = op(instr.Rotate90{})
	case operation.Rotate180:
		in = op(instr.Rotate180{})
	case operation.Rotate270:
		in = op(instr.Rotate270{})
	case operation.Threshold:
		in = op(instr.Threshold{})
	case operation.Unsharpen:
		in = op(instr.Unsharpen{Sigma: r.f32(0), Threshold: r.i32(1)})
	case operation.VerticalGradient:
		in = op(instr.VerticalGradient{Start: r.rgba(0), End: r.rgba(1)})
	case operation.PreserveAspectRatio:
		in = instr.EnvUpdate{Item: instr.PreserveAspectRatio{Enabled: r.boolean(0)}}
	case operation.SamplingFilter:
		in = instr.EnvUpdate{Item: instr.SetSamplingFilter{Filter: r.filter(0)}}
	default:
		panic(fmt.Sprintf("coerce: no conversion for %v", id))
	}

	if r.err != nil {
		return nil, r.err
	}
	return in, nil
}

func op(o instr.Op) instr.Instruction {
	return instr.Operation{Op: o}
}

// reader converts tokens by index. The first failure sticks and later
// conversions return zero values.
type reader struct {
	id   operation.ID
	toks []syntax.Token
	err  error
}

func (r *reader) fail(i int, err error) {
	if r.err == nil {
		r.err = &Error{Op: r.id, Arg: i + 1, Token: r.toks[i], Err: err}
	}
}

func (r *reader) number(i int) (string, bool) {
	if r.err != nil {
		return "", false
	}
	tok := r.toks[i]
	if tok.Kind != syntax.Number {
		r.fail(i, fmt.Errorf("expected a number, got a %s", tok.Kind))
		return "", false
	}
	return tok.Text, true
}

func (r *reader) f32(i int) float32 {
	s, ok := r.number(i)
	if !ok {
		return 0
	}
	v, err := parseF32(s)
	if err != nil {
		r.fail(i, err)
	}
	return v
}

func (r *reader) i32(i int) int32 {
	s, ok := r.number(i)
	if !ok {
		return 0
	}
	v, err := parseI32(s)
	if err != nil {
		r.fail(i, err)
	}
	return v
}

func (r *reader) u32(i int) uint32 {
	s, ok := r.number(i)
	if !ok {
		return 0
	}
	v, err := parseUint(s, 32)
	if err != nil {
		r.fail(i, fmt.Errorf("not a 32-bit unsigned integer: %w", err))
	}
	return uint32(v)
}

func (r *reader) boolean(i int) bool {
	if r.err != nil {
		return false
	}
	switch r.toks[i].Text {
	case "true":
		return true
	case "false":
		return false
	}
	r.fail(i, errors.New("expected true or false"))
	return false
}

func (r *reader) filter(i int) instr.SamplingFilter {
	if r.err != nil {
		return 0
	}
	f, ok := instr.ParseSamplingFilter(r.toks[i].Text)
	if !ok {
		names := make([]string, 0, 5)
		for _, f := range instr.SamplingFilters() {
			names = append(names, f.String())
		}
		r.fail(i, fmt.Errorf("%w, want one of %s", ErrUnknownFilter, strings.Join(names, ", ")))
	}
	return f
}

func (r *reader) text(i int) string {
	if r.err != nil {
		return ""
	}
	return r.toks[i].Text
}

func (r *reader) path(i int) instr.ImagePath {
	p := r.text(i)
	if r.err == nil && p == "" {
		r.fail(i, errors.New("empty path"))
	}
	return instr.ImagePath{Path: p}
}

// call returns the comma separated arguments of name(...), trimmed.
func (r *reader) call(i int, name string, n int) []string {
	if r.err != nil {
		return nil
	}
	inner, ok := callBody(r.toks[i].Text, name)
	if !ok {
		r.fail(i, fmt.Errorf("expected %s(...)", name))
		return nil
	}
	parts := strings.Split(inner, ",")
	if len(parts) != n {
		r.fail(i, fmt.Errorf("%s takes %d value(s), got %d", name, n, len(parts)))
		return nil
	}
	for j := range parts {
		parts[j] = strings.TrimSpace(parts[j])
	}
	return parts
}

func (r *reader) coord(i int) (int32, int32) {
	parts := r.call(i, "coord", 2)
	if parts == nil {
		return 0, 0
	}
	x, err := parseI32(parts[0])
	if err != nil {
		r.fail(i, fmt.Errorf("coord x: %w", err))
		return 0, 0
	}
	y, err := parseI32(parts[1])
	if err != nil {
		r.fail(i, fmt.Errorf("coord y: %w", err))
		return 0, 0
	}
	return x, y
}

func (r *reader) rgba(i int) color.NRGBA {
	parts := r.call(i, "rgba", 4)
	if parts == nil {
		return color.NRGBA{}
	}
	var c [4]uint8
	for j, p := range parts {
		v, err := parseUint(p, 8)
		if err != nil {
			r.fail(i, fmt.Errorf("rgba channel %d: not an 8-bit unsigned integer: %w", j+1, err))
			return color.NRGBA{}
		}
		c[j] = uint8(v)
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func (r *reader) size(i int) float32 {
	parts := r.call(i, "size", 1)
	if parts == nil {
		return 0
	}
	v, err := parseF32(parts[0])
	if err != nil {
		r.fail(i, fmt.Errorf("size: %w", err))
	}
	return v
}

func (r *reader) font(i int) string {
	if r.err != nil {
		return ""
	}
	inner, ok := callBody(r.toks[i].Text, "font")
	if !ok {
		r.fail(i, errors.New("expected font(...)"))
		return ""
	}
	p := strings.TrimSpace(inner)
	if strings.HasPrefix(p, `"`) {
		unq, err := strconv.Unquote(p)
		if err != nil {
			r.fail(i, fmt.Errorf("font path: %w", err))
			return ""
		}
		p = unq
	}
	if p == "" {
		r.fail(i, errors.New("empty font path"))
	}
	return p
}

func callBody(text, name string) (string, bool) {
	if !strings.HasPrefix(text, name+"(") || !strings.HasSuffix(text, ")") {
		return "", false
	}
	return text[len(name)+1 : len(text)-1], true
}

func parseF32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("not a 32-bit float: %w", numErr(err))
	}
	return float32(v), nil
}

func parseI32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not a 32-bit signed integer: %w", numErr(err))
	}
	return int32(v), nil
}

// parseUint accepts an optional leading '+', which strconv.ParseUint does not.
func parseUint(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, bits)
	if err != nil {
		return 0, numErr(err)
	}
	return v, nil
}

// numErr drops the strconv prefix so messages read "invalid syntax" or
// "value out of range" while still matching strconv.ErrSyntax/ErrRange.
func numErr(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}
