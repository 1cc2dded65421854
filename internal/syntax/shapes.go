package syntax

import "github.com/specialistvlad/imagineer/internal/operation"

// shape is the lexical form an argument slot accepts.
type shape struct {
	kind TokenKind
	// call is the required function name when kind is Call.
	call string
}

var (
	num   = shape{kind: Number}
	boolv = shape{kind: Bool}
	str   = shape{kind: String}
	word  = shape{kind: Word}
	coord = shape{kind: Call, call: "coord"}
	rgba  = shape{kind: Call, call: "rgba"}
	size  = shape{kind: Call, call: "size"}
	font  = shape{kind: Call, call: "font"}
)

var shapes = map[operation.ID][]shape{
	operation.Blur:               {num},
	operation.Brighten:           {num},
	operation.Contrast:           {num},
	operation.Crop:               {num, num, num, num},
	operation.Diff:               {str},
	operation.DrawText:           {str, coord, rgba, size, font},
	operation.Filter3x3:          {num, num, num, num, num, num, num, num, num},
	operation.HueRotate:          {num},
	operation.HorizontalGradient: {rgba, rgba},
	operation.Overlay:            {str, num, num},
	operation.Resize:             {num, num},
	operation.Unsharpen:          {num, num},
	operation.VerticalGradient:   {rgba, rgba},

	operation.PreserveAspectRatio: {boolv},
	operation.SamplingFilter:      {word},
}

func shapesFor(id operation.ID) []shape {
	s := shapes[id]
	if len(s) != id.Arity() {
		panic("syntax: shape table out of sync for " + id.Name())
	}
	return s
}
