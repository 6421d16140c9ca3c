package gradient

import (
	"errors"
	"math"
	"testing"

	"github.com/hueflow/server/pkg/colorconv"
)

func TestLerp(t *testing.T) {
	t.Parallel()

	if got := Lerp(0, 10, 3, 5); got != 6 {
		t.Fatalf("Lerp(0,10,3,5) = %v, want 6", got)
	}
	if got := Lerp(10, 0, 3, 5); got != 4 {
		t.Fatalf("Lerp(10,0,3,5) = %v, want 4", got)
	}
	if got := Lerp(2, 9, 0, 4); got != 2 {
		t.Fatalf("Lerp at n=0 must return from, got %v", got)
	}
	if got := Lerp(2, 9, 4, 4); got != 9 {
		t.Fatalf("Lerp at n=steps must return to, got %v", got)
	}
}

func TestLerpZeroSteps(t *testing.T) {
	t.Parallel()

	if got := Lerp(2, 9, 0, 0); got != 9 {
		t.Fatalf("Lerp with steps=0 must return to, got %v", got)
	}
	if got := LerpAngle(1, 2, 0, 0); got != 2 {
		t.Fatalf("LerpAngle with steps=0 must return to, got %v", got)
	}
}

func TestLerpAngleIdentity(t *testing.T) {
	t.Parallel()

	theta := 2.5
	for n := 0; n <= 10; n++ {
		if got := LerpAngle(theta, theta, n, 10); math.Abs(got-theta) > 1e-12 {
			t.Fatalf("LerpAngle(θ,θ,%d,10) = %v, want %v", n, got, theta)
		}
	}
}

func TestLerpAngleShortestArc(t *testing.T) {
	t.Parallel()

	deg := func(d float64) float64 { return d * math.Pi / 180 }

	// 350° -> 10° is 20° apart through 0°, not 340° through 180°.
	mid := LerpAngle(deg(350), deg(10), 1, 2)
	if !(mid >= deg(350) || mid <= deg(10)) {
		t.Fatalf("midpoint %v° left the short arc", mid*180/math.Pi)
	}
	if math.Abs(mid-0) > 1e-9 && math.Abs(mid-2*math.Pi) > 1e-9 {
		t.Fatalf("midpoint of 350°..10° should be 0°, got %v°", mid*180/math.Pi)
	}

	// Walking the arc never produces an angle inside the long arc.
	for n := 0; n <= 8; n++ {
		got := LerpAngle(deg(350), deg(10), n, 8)
		if got > deg(10)+1e-9 && got < deg(350)-1e-9 {
			t.Fatalf("step %d: %v° is inside the long arc", n, got*180/math.Pi)
		}
	}
}

func TestLerpAngleNormalizes(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 6; n++ {
		got := LerpAngle(0.2, 2*math.Pi-0.2, n, 6)
		if got < 0 || got >= 2*math.Pi {
			t.Fatalf("step %d: %v outside [0, 2π)", n, got)
		}
	}
}

func TestGradientEndpoints(t *testing.T) {
	t.Parallel()

	out, err := Gradient("#ff0000", "#0000ff", 2)
	if err != nil {
		t.Fatalf("Gradient: %v", err)
	}
	if len(out) != 2 || out[0] != "#ff0000" || out[1] != "#0000ff" {
		t.Fatalf("Gradient(red,blue,2) = %v", out)
	}
}

func TestGradientSameColor(t *testing.T) {
	t.Parallel()

	out, err := Gradient("#336699", "#336699", 5)
	if err != nil {
		t.Fatalf("Gradient: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected 5 colors, got %d", len(out))
	}
	for i, hex := range out {
		if hex != "#336699" {
			t.Fatalf("out[%d] = %q, want #336699", i, hex)
		}
	}
}

func TestGradientLength(t *testing.T) {
	t.Parallel()

	for _, count := range []int{1, 2, 3, 7, 64} {
		out, err := Gradient("#102030", "#a0b0c0", count)
		if err != nil {
			t.Fatalf("Gradient(count=%d): %v", count, err)
		}
		if len(out) != count {
			t.Fatalf("Gradient(count=%d) returned %d colors", count, len(out))
		}
	}
}

func TestGradientSingleColorReturnsDestination(t *testing.T) {
	t.Parallel()

	out, err := Gradient("#ff0000", "#0000ff", 1)
	if err != nil {
		t.Fatalf("Gradient: %v", err)
	}
	if len(out) != 1 || out[0] != "#0000ff" {
		t.Fatalf("Gradient(red,blue,1) = %v, want [#0000ff]", out)
	}
}

func TestGradientCrossesHueWrap(t *testing.T) {
	t.Parallel()

	// #ff0055 sits near hue 340°, #ff2b00 near hue 10°. The middle
	// color of the sweep must land near hue 355°, not near 175°.
	out, err := Gradient("#ff0055", "#ff2b00", 3)
	if err != nil {
		t.Fatalf("Gradient: %v", err)
	}
	r, g, b, err := colorconv.HexToRGB(out[1])
	if err != nil {
		t.Fatalf("bad middle color %q: %v", out[1], err)
	}
	if r < 200 || g > 100 || b > 100 {
		t.Fatalf("middle color %q (%d,%d,%d) is not in the red band", out[1], r, g, b)
	}
}

func TestGradientErrors(t *testing.T) {
	t.Parallel()

	if _, err := Gradient("#ff0000", "#0000ff", 0); !errors.Is(err, ErrBadCount) {
		t.Fatalf("count=0: got %v, want ErrBadCount", err)
	}
	if _, err := Gradient("bogus", "#0000ff", 3); err == nil {
		t.Fatal("expected error for invalid from color")
	}
	if _, err := Gradient("#ff0000", "bogus", 3); err == nil {
		t.Fatal("expected error for invalid to color")
	}
}

func TestSplitSteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		points     int
		totalSteps int
		want       []int
	}{
		{"twoPointsNoGap", 2, 2, []int{0}},
		{"twoPointsOneGap", 2, 3, []int{1}},
		{"evenSplit", 3, 7, []int{2, 2}},
		{"remainderGoesRight", 3, 8, []int{2, 3}},
		{"remainderFillsRightFirst", 4, 9, []int{1, 2, 2}},
		{"exactBudget", 5, 5, []int{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSteps(tt.points, tt.totalSteps)
			if len(got) != len(tt.want) {
				t.Fatalf("splitSteps(%d,%d) = %v, want %v", tt.points, tt.totalSteps, got, tt.want)
			}
			sum := tt.points
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("splitSteps(%d,%d) = %v, want %v", tt.points, tt.totalSteps, got, tt.want)
				}
				sum += got[i]
			}
			if sum != tt.totalSteps {
				t.Fatalf("gaps %v plus %d points sum to %d, want %d", got, tt.points, sum, tt.totalSteps)
			}
		})
	}
}

func TestSplitStepsSumProperty(t *testing.T) {
	t.Parallel()

	for points := 2; points <= 8; points++ {
		for total := points; total <= points+20; total++ {
			gaps := splitSteps(points, total)
			sum := points
			for _, g := range gaps {
				if g < 0 {
					t.Fatalf("splitSteps(%d,%d) produced negative gap: %v", points, total, gaps)
				}
				sum += g
			}
			if sum != total {
				t.Fatalf("splitSteps(%d,%d) = %v sums to %d", points, total, gaps, sum)
			}
		}
	}
}

func TestTransitionTwoColors(t *testing.T) {
	t.Parallel()

	out, err := Transition([]string{"#ff0000", "#0000ff"}, 3)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	want := []string{"#ff0000", "#800080", "#0000ff"}
	if len(out) != len(want) {
		t.Fatalf("Transition = %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("Transition = %v, want %v", out, want)
		}
	}
}

func TestTransitionLengthAndStops(t *testing.T) {
	t.Parallel()

	colors := []string{"#ff0000", "#00ff00", "#0000ff"}
	out, err := Transition(colors, 11)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if len(out) != 11 {
		t.Fatalf("expected 11 colors, got %d: %v", len(out), out)
	}
	if out[0] != colors[0] || out[len(out)-1] != colors[len(colors)-1] {
		t.Fatalf("outer stops missing: %v", out)
	}
	found := false
	for _, hex := range out {
		if hex == "#00ff00" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("middle stop missing from %v", out)
	}
}

func TestTransitionMinimalBudget(t *testing.T) {
	t.Parallel()

	colors := []string{"#ff0000", "#00ff00", "#0000ff"}
	out, err := Transition(colors, 3)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	for i := range colors {
		if out[i] != colors[i] {
			t.Fatalf("budget == len(colors) must return the stops themselves, got %v", out)
		}
	}
}

func TestTransitionPreconditions(t *testing.T) {
	t.Parallel()

	if _, err := Transition([]string{"#ff0000"}, 5); !errors.Is(err, ErrTooFewColors) {
		t.Fatalf("one color: got %v, want ErrTooFewColors", err)
	}
	if _, err := Transition([]string{"#ff0000", "#0000ff"}, 1); !errors.Is(err, ErrStepBudget) {
		t.Fatalf("tight budget: got %v, want ErrStepBudget", err)
	}
	if _, err := Transition([]string{"#ff0000", "nope"}, 4); err == nil {
		t.Fatal("expected decode error")
	}
}

