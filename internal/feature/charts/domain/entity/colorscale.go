package entity

import "image/color"

// ColorScale maps values in [Min, Max] onto a three-stop diverging gradient.
// Values outside the domain are clamped.
type ColorScale struct {
	Min, Max       float64
	Low, Mid, High color.RGBA
	Missing        color.RGBA // fill for undefined cells
}

// RdYlGn is a red-yellow-green diverging scale over [-1, 1] with the neutral
// stop at 0.
var RdYlGn = ColorScale{
	Min:     -1,
	Max:     1,
	Low:     color.RGBA{R: 0xd7, G: 0x30, B: 0x27, A: 0xff},
	Mid:     color.RGBA{R: 0xff, G: 0xff, B: 0xbf, A: 0xff},
	High:    color.RGBA{R: 0x1a, G: 0x98, B: 0x50, A: 0xff},
	Missing: color.RGBA{R: 0xd9, G: 0xd9, B: 0xd9, A: 0xff},
}

// At returns the colour for a coefficient.
func (s ColorScale) At(c Coefficient) color.RGBA {
	if !c.Defined || s.Max <= s.Min {
		return s.Missing
	}
	v := c.Value
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	mid := (s.Min + s.Max) / 2
	if v <= mid {
		return lerp(s.Low, s.Mid, (v-s.Min)/(mid-s.Min))
	}
	return lerp(s.Mid, s.High, (v-mid)/(s.Max-mid))
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}
