// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package operation holds the closed table of operations a script may name.
//
// Every identifier maps to a fixed number of arguments. The table is total
// and immutable: an ID can only be obtained from the constants below or from
// Lookup, so Arity never has a failure path.
package operation

import "fmt"

// ID identifies a single operation or environment modifier.
type ID int

const (
	invalid ID = iota

	// image operations
	Blur
	Brighten
	Contrast
	Crop
	Diff
	DrawText
	Filter3x3
	FlipHorizontal
	FlipVertical
	Grayscale
	HueRotate
	HorizontalGradient
	Invert
	Overlay
	Resize
	Rotate90
	Rotate180
	Rotate270
	Threshold
	Unsharpen
	VerticalGradient

	// modifiers
	PreserveAspectRatio
	SamplingFilter

	sentinel
)

type entry struct {
	name     string
	arity    int
	modifier bool
}

var table = [...]entry{
	Blur:               {name: "blur", arity: 1},
	Brighten:           {name: "brighten", arity: 1},
	Contrast:           {name: "contrast", arity: 1},
	Crop:               {name: "crop", arity: 4},
	Diff:               {name: "diff", arity: 1},
	DrawText:           {name: "draw-text", arity: 5},
	Filter3x3:          {name: "filter3x3", arity: 9},
	FlipHorizontal:     {name: "fliph", arity: 0},
	FlipVertical:       {name: "flipv", arity: 0},
	Grayscale:          {name: "grayscale", arity: 0},
	HueRotate:          {name: "huerotate", arity: 1},
	HorizontalGradient: {name: "horizontal-gradient", arity: 2},
	Invert:             {name: "invert", arity: 0},
	Overlay:            {name: "overlay", arity: 3},
	Resize:             {name: "resize", arity: 2},
	Rotate90:           {name: "rotate90", arity: 0},
	Rotate180:          {name: "rotate180", arity: 0},
	Rotate270:          {name: "rotate270", arity: 0},
	Threshold:          {name: "threshold", arity: 0},
	Unsharpen:          {name: "unsharpen", arity: 2},
	VerticalGradient:   {name: "vertical-gradient", arity: 2},

	PreserveAspectRatio: {name: "preserve-aspect-ratio", arity: 1, modifier: true},
	SamplingFilter:      {name: "sampling-filter", arity: 1, modifier: true},
}

var byName = func() map[string]ID {
	m := make(map[string]ID, len(table))
	for id := Blur; id < sentinel; id++ {
		m[table[id].name] = id
	}
	return m
}()

// Lookup resolves a script name to its ID.
func Lookup(name string) (ID, bool) {
	id, ok := byName[name]
	return id, ok
}

// All returns every ID in declaration order.
func All() []ID {
	ids := make([]ID, 0, int(sentinel-Blur))
	for id := Blur; id < sentinel; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Modifiers returns the IDs of the environment modifiers.
func Modifiers() []ID {
	var ids []ID
	for _, id := range All() {
		if id.IsModifier() {
			ids = append(ids, id)
		}
	}
	return ids
}

// Arity is the exact number of arguments the operation consumes.
func (id ID) Arity() int {
	return table[id.checked()].arity
}

// Name is the identifier used in scripts.
func (id ID) Name() string {
	return table[id.checked()].name
}

// IsModifier reports whether the ID changes interpreter state instead of pixels.
func (id ID) IsModifier() bool {
	return table[id.checked()].modifier
}

// Valid reports whether id is one of the declared constants.
func (id ID) Valid() bool {
	return id > invalid && id < sentinel
}

func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("operation.ID(%d)", int(id))
	}
	return table[id].name
}

func (id ID) checked() ID {
	if !id.Valid() {
		// Only reachable through a conversion like operation.ID(42).
		panic(fmt.Sprintf("operation: invalid id %d", int(id)))
	}
	return id
}
