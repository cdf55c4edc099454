package css

import (
	"strconv"
	"strings"
)

// GradientDirection is the side a linear gradient runs towards.
type GradientDirection int

const (
	ToBottom GradientDirection = iota
	ToTop
	ToRight
	ToLeft
)

var gradientDirections = map[string]GradientDirection{
	"to bottom": ToBottom,
	"to top":    ToTop,
	"to right":  ToRight,
	"to left":   ToLeft,
}

// ColorStop is a color at an offset in [0,1] along the gradient.
type ColorStop struct {
	Color  Color
	Offset float64
}

// Gradient is a parsed linear-gradient() background-image value.
type Gradient struct {
	Direction  GradientDirection
	ColorStops []ColorStop
}

// ParseLinearGradient parses values like
// "linear-gradient(to right, red, blue 75%)". Stops without an offset are
// spread evenly between their neighbours.
func ParseLinearGradient(value string) (*Gradient, bool) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "linear-gradient(") || !strings.HasSuffix(value, ")") {
		return nil, false
	}
	parts := strings.Split(value[len("linear-gradient("):len(value)-1], ",")

	g := &Gradient{Direction: ToBottom}
	first := strings.TrimSpace(parts[0])
	if strings.HasPrefix(first, "to ") {
		dir, ok := gradientDirections[strings.Join(strings.Fields(first), " ")]
		if !ok {
			return nil, false
		}
		g.Direction = dir
		parts = parts[1:]
	}
	for _, part := range parts {
		stop, ok := parseColorStop(part)
		if !ok {
			return nil, false
		}
		g.ColorStops = append(g.ColorStops, stop)
	}
	if len(g.ColorStops) < 2 {
		return nil, false
	}
	g.fillMissingOffsets()
	return g, true
}

// parseColorStop parses "blue" or "blue 50%". A missing offset is -1.
func parseColorStop(stop string) (ColorStop, bool) {
	fields := strings.Fields(stop)
	if len(fields) == 0 || len(fields) > 2 {
		return ColorStop{}, false
	}
	color, ok := ParseColor(fields[0])
	if !ok {
		return ColorStop{}, false
	}
	cs := ColorStop{Color: color, Offset: -1}
	if len(fields) == 2 {
		pct, ok := strings.CutSuffix(fields[1], "%")
		if !ok {
			return ColorStop{}, false
		}
		n, err := strconv.Atoi(pct)
		if err != nil {
			return ColorStop{}, false
		}
		cs.Offset = float64(n) / 100
	}
	return cs, true
}

func (g *Gradient) fillMissingOffsets() {
	stops := g.ColorStops
	last := len(stops) - 1
	if stops[0].Offset < 0 {
		stops[0].Offset = 0
	}
	if stops[last].Offset < 0 {
		stops[last].Offset = 1
	}
	prev := 0
	for i := 1; i <= last; i++ {
		if stops[i].Offset < 0 {
			continue
		}
		if gap := i - prev; gap > 1 {
			step := (stops[i].Offset - stops[prev].Offset) / float64(gap)
			for j := prev + 1; j < i; j++ {
				stops[j].Offset = stops[prev].Offset + step*float64(j-prev)
			}
		}
		prev = i
	}
}

// BackgroundGradient parses the background-image property as a gradient.
func (s *Style) BackgroundGradient() (*Gradient, bool) {
	return ParseLinearGradient(s.GetBackgroundImage())
}
