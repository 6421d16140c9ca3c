// Package colorconv converts colors between hex strings, RGB, and HSV.
package colorconv

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidFormat reports a hex color string that matches none of the
// accepted 3/4/6/8-digit forms.
var ErrInvalidFormat = errors.New("invalid hex color format")

// RGB is a color with integer channels in [0, 255].
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSV is a color with hue in degrees [0, 360) and saturation and value
// as percentages in [0, 100]. Hue of an achromatic color is 0.
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// HSVRadian is an HSV color with hue in radians [0, 2π). Radians are
// used only at the angular interpolation boundary; degrees are the
// storage unit everywhere else.
type HSVRadian struct {
	H, S, V float64
}

// RGBToHSV converts RGB channels in [0, 255] to HSV with hue in
// degrees. When max == min the hue is undefined and reported as 0.
func RGBToHSV(r, g, b int) (h, s, v float64) {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	mx := math.Max(rf, math.Max(gf, bf))
	mn := math.Min(rf, math.Min(gf, bf))
	d := mx - mn

	v = mx * 100
	if mx > 0 {
		s = d / mx * 100
	}
	if d == 0 {
		return 0, s, v
	}

	switch mx {
	case rf:
		h = 60 * math.Mod((gf-bf)/d, 6)
	case gf:
		h = 60 * ((bf-rf)/d + 2)
	default:
		h = 60 * ((rf-gf)/d + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

// HSVToRGB converts HSV (hue in degrees, saturation and value in
// [0, 100]) to RGB channels in [0, 255]. Hue is wrapped into [0, 360)
// first; zero saturation yields the achromatic gray r = g = b.
func HSVToRGB(h, s, v float64) (r, g, b int) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	sf := s / 100
	vf := v / 100

	if sf == 0 {
		gray := channel(vf)
		return gray, gray, gray
	}

	hh := h / 60
	sector := int(math.Floor(hh)) % 6
	f := hh - math.Floor(hh)
	p := vf * (1 - sf)
	q := vf * (1 - sf*f)
	t := vf * (1 - sf*(1-f))

	var rf, gf, bf float64
	switch sector {
	case 0:
		rf, gf, bf = vf, t, p
	case 1:
		rf, gf, bf = q, vf, p
	case 2:
		rf, gf, bf = p, vf, t
	case 3:
		rf, gf, bf = p, q, vf
	case 4:
		rf, gf, bf = t, p, vf
	default:
		rf, gf, bf = vf, p, q
	}
	return channel(rf), channel(gf), channel(bf)
}

// channel scales a [0, 1] fraction to a rounded, clamped byte value.
func channel(f float64) int {
	n := int(math.Round(f * 255))
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// RGBToHex formats RGB channels as a lowercase "#rrggbb" string.
// Out-of-range channels are clamped to [0, 255] rather than rejected.
func RGBToHex(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(r), clamp(g), clamp(b))
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// HexToRGB parses a hex color string into RGB channels. The leading
// "#" is optional. 8-digit and 4-digit forms have their alpha digits
// truncated; the 3-digit shorthand expands each digit ("abc" parses as
// "aabbcc"). Any other shape, or a non-hex digit, returns
// ErrInvalidFormat.
func HexToRGB(hex string) (r, g, b int, err error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	// Discard alpha before length checks so "#rrggbbaa" and "#rgba"
	// parse the same as their opaque counterparts.
	switch len(s) {
	case 8:
		s = s[:6]
	case 4:
		s = s[:3]
	}

	if len(s) == 3 {
		s = s[0:1] + s[0:1] + s[1:2] + s[1:2] + s[2:3] + s[2:3]
	}
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, hex)
	}

	channels := [3]int{}
	for i := 0; i < 3; i++ {
		n, perr := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, hex)
		}
		channels[i] = int(n)
	}
	return channels[0], channels[1], channels[2], nil
}

// ParseHex parses a hex color string into an RGB value.
func ParseHex(hex string) (RGB, error) {
	r, g, b, err := HexToRGB(hex)
	if err != nil {
		return RGB{}, err
	}
	return RGB{R: r, G: g, B: b}, nil
}

// Hex formats the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return RGBToHex(c.R, c.G, c.B)
}

// HSV converts the color to HSV with hue in degrees.
func (c RGB) HSV() HSV {
	h, s, v := RGBToHSV(c.R, c.G, c.B)
	return HSV{H: h, S: s, V: v}
}

// RGB converts the color back to RGB channels.
func (c HSV) RGB() RGB {
	r, g, b := HSVToRGB(c.H, c.S, c.V)
	return RGB{R: r, G: g, B: b}
}

// Radians converts the hue from degrees to radians.
func (c HSV) Radians() HSVRadian {
	return HSVRadian{H: c.H * math.Pi / 180, S: c.S, V: c.V}
}

// Degrees converts the hue from radians back to degrees.
func (c HSVRadian) Degrees() HSV {
	return HSV{H: c.H * 180 / math.Pi, S: c.S, V: c.V}
}
