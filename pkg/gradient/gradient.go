// Package gradient builds interpolated color gradients and multi-stop
// transitions over HSV and RGB space.
package gradient

import (
	"errors"
	"fmt"
	"math"

	"github.com/hueflow/server/pkg/colorconv"
)

var (
	// ErrBadCount reports a gradient request for fewer than one color.
	ErrBadCount = errors.New("gradient: count must be at least 1")
	// ErrTooFewColors reports a transition over fewer than two colors.
	ErrTooFewColors = errors.New("transition: need at least two colors")
	// ErrStepBudget reports a step budget smaller than the color count.
	ErrStepBudget = errors.New("transition: total steps must be at least the number of colors")
)

// Lerp interpolates linearly from one scalar to another. n is the step
// index in [0, steps] and steps is the interval count. steps == 0 is
// the degenerate single-point request and returns the endpoint rather
// than dividing by zero.
func Lerp(from, to float64, n, steps int) float64 {
	if steps == 0 {
		return to
	}
	return from + float64(n)*(to-from)/float64(steps)
}

// LerpAngle interpolates an angle in radians along the shorter of the
// two arcs between from and to. The naive difference is folded by 2π
// whenever its magnitude exceeds π, so a sweep from 350° to 10° passes
// through 0° rather than 180°. The result is normalized into [0, 2π).
// steps == 0 returns the endpoint, matching Lerp.
func LerpAngle(from, to float64, n, steps int) float64 {
	if steps == 0 {
		return to
	}

	diff := to - from
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}

	angle := from + diff*float64(n)/float64(steps)
	if angle < 0 {
		angle += 2 * math.Pi
	} else if angle >= 2*math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}

// Gradient produces count evenly spaced colors from fromHex to toHex,
// interpolating hue along the shortest arc and saturation and value
// linearly in HSV space. The first color equals fromHex and the last
// equals toHex (up to #rrggbb normalization). count == 1 returns only
// the destination color, a consequence of the steps == 0 rule that is
// kept deliberately.
func Gradient(fromHex, toHex string, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadCount, count)
	}

	from, err := decodeRadian(fromHex)
	if err != nil {
		return nil, err
	}
	to, err := decodeRadian(toHex)
	if err != nil {
		return nil, err
	}

	steps := count - 1
	out := make([]string, 0, count)
	for n := 0; n < count; n++ {
		c := colorconv.HSVRadian{
			H: LerpAngle(from.H, to.H, n, steps),
			S: Lerp(from.S, to.S, n, steps),
			V: Lerp(from.V, to.V, n, steps),
		}
		out = append(out, c.Degrees().RGB().Hex())
	}
	return out, nil
}

func decodeRadian(hex string) (colorconv.HSVRadian, error) {
	c, err := colorconv.ParseHex(hex)
	if err != nil {
		return colorconv.HSVRadian{}, err
	}
	return c.HSV().Radians(), nil
}

// splitSteps divides a total step budget across the gaps between
// pointCount ordered colors. Every gap gets the same baseline; the
// remainder is handed out one step at a time starting from the
// rightmost gap. The gaps plus the points themselves sum to
// totalSteps. Callers must ensure totalSteps >= pointCount.
func splitSteps(pointCount, totalSteps int) []int {
	gapCount := pointCount - 1
	base := (totalSteps - pointCount) / gapCount

	gaps := make([]int, gapCount)
	for i := range gaps {
		gaps[i] = base
	}
	rem := totalSteps - pointCount - base*gapCount
	for i := gapCount - 1; rem > 0; i-- {
		gaps[i]++
		rem--
	}
	return gaps
}

// Transition produces exactly totalSteps colors through the given
// ordered stops. Between each adjacent pair it inserts the pair's
// allocated share of intermediate colors, interpolated per RGB
// channel, with every stop itself appearing in the output. Requires at
// least two stops and totalSteps >= len(colors).
func Transition(colors []string, totalSteps int) ([]string, error) {
	if len(colors) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewColors, len(colors))
	}
	if totalSteps < len(colors) {
		return nil, fmt.Errorf("%w: %d steps for %d colors", ErrStepBudget, totalSteps, len(colors))
	}

	stops := make([]colorconv.RGB, len(colors))
	for i, hex := range colors {
		c, err := colorconv.ParseHex(hex)
		if err != nil {
			return nil, err
		}
		stops[i] = c
	}

	gaps := splitSteps(len(stops), totalSteps)

	out := make([]string, 0, totalSteps)
	out = append(out, stops[0].Hex())
	for i := 1; i < len(stops); i++ {
		from, to := stops[i-1], stops[i]
		gap := gaps[i-1]
		steps := gap + 1
		for n := 1; n <= gap; n++ {
			out = append(out, colorconv.RGB{
				R: roundChannel(Lerp(float64(from.R), float64(to.R), n, steps)),
				G: roundChannel(Lerp(float64(from.G), float64(to.G), n, steps)),
				B: roundChannel(Lerp(float64(from.B), float64(to.B), n, steps)),
			}.Hex())
		}
		out = append(out, to.Hex())
	}
	return out, nil
}

func roundChannel(f float64) int {
	return int(math.Round(f))
}
