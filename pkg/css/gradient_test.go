package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"red", Color{255, 0, 0}, true},
		{" Navy ", Color{0, 0, 128}, true},
		{"#ff8000", Color{255, 128, 0}, true},
		{"#0f0", Color{0, 255, 0}, true},
		{"#12345", Color{}, false},
		{"#zzzzzz", Color{}, false},
		{"chartreuse", Color{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTextColor(t *testing.T) {
	style, err := ParseRule(`color: "blue";`)
	require.NoError(t, err)
	assert.Equal(t, Color{0, 0, 255}, style.TextColor())
	assert.Equal(t, Color{}, Sealed().TextColor())
}

func TestParseLinearGradient(t *testing.T) {
	g, ok := ParseLinearGradient("linear-gradient(to right, red, blue 75%)")
	require.True(t, ok)
	assert.Equal(t, ToRight, g.Direction)
	assert.Equal(t, []ColorStop{
		{Color{255, 0, 0}, 0},
		{Color{0, 0, 255}, 0.75},
	}, g.ColorStops)
}

func TestParseLinearGradient_SpreadsMissingOffsets(t *testing.T) {
	g, ok := ParseLinearGradient("linear-gradient(red, lime, blue, white)")
	require.True(t, ok)
	assert.Equal(t, ToBottom, g.Direction)
	require.Len(t, g.ColorStops, 4)
	assert.InDelta(t, 0, g.ColorStops[0].Offset, 1e-9)
	assert.InDelta(t, 1.0/3, g.ColorStops[1].Offset, 1e-9)
	assert.InDelta(t, 2.0/3, g.ColorStops[2].Offset, 1e-9)
	assert.InDelta(t, 1, g.ColorStops[3].Offset, 1e-9)
}

func TestParseLinearGradient_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"url(a.png)",
		"linear-gradient(red)",
		"linear-gradient(to nowhere, red, blue)",
		"linear-gradient(red, bleu)",
		"linear-gradient(red 10px, blue)",
		"linear-gradient(red, blue",
	} {
		_, ok := ParseLinearGradient(in)
		assert.False(t, ok, in)
	}
}

func TestBackgroundGradient(t *testing.T) {
	style, err := ParseRule(`background-image: "linear-gradient(to top, black, white)";`)
	require.NoError(t, err)
	g, ok := style.BackgroundGradient()
	require.True(t, ok)
	assert.Equal(t, ToTop, g.Direction)
}
