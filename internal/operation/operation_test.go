package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArity(t *testing.T) {
	testCases := []struct {
		id    ID
		arity int
	}{
		{Blur, 1},
		{Brighten, 1},
		{Contrast, 1},
		{Crop, 4},
		{Diff, 1},
		{DrawText, 5},
		{Filter3x3, 9},
		{FlipHorizontal, 0},
		{FlipVertical, 0},
		{Grayscale, 0},
		{HueRotate, 1},
		{HorizontalGradient, 2},
		{Invert, 0},
		{Overlay, 3},
		{Resize, 2},
		{Rotate90, 0},
		{Rotate180, 0},
		{Rotate270, 0},
		{Threshold, 0},
		{Unsharpen, 2},
		{VerticalGradient, 2},
		{PreserveAspectRatio, 1},
		{SamplingFilter, 1},
	}

	require.Len(t, testCases, len(All()), "every operation must be covered")

	for _, tc := range testCases {
		t.Run(tc.id.Name(), func(t *testing.T) {
			assert.Equal(t, tc.arity, tc.id.Arity())
		})
	}
}

func TestLookup_RoundTripsNames(t *testing.T) {
	for _, id := range All() {
		got, ok := Lookup(id.Name())
		require.True(t, ok, "name %q must resolve", id.Name())
		assert.Equal(t, id, got)
	}
}

func TestLookup_RejectsUnknownAndLegacyNames(t *testing.T) {
	for _, name := range []string{"", "flip_horizontal", "flip_vertical", "Blur", "blur1", "set"} {
		_, ok := Lookup(name)
		assert.False(t, ok, "name %q must not resolve", name)
	}
}

func TestModifiers(t *testing.T) {
	assert.Equal(t, []ID{PreserveAspectRatio, SamplingFilter}, Modifiers())
	assert.False(t, Resize.IsModifier())
}

func TestInvalidID(t *testing.T) {
	var zero ID
	assert.False(t, zero.Valid())
	assert.Equal(t, "operation.ID(0)", zero.String())
	assert.Panics(t, func() { _ = ID(999).Arity() })
}
