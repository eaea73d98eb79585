package grid

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/infinigrid/common"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestFalloffFactor(t *testing.T) {
	tests := []struct {
		name string
		dist float32
		want float32
	}{
		{"at fade distance", 50, 1},
		{"inside fade distance saturates", 25, 1},
		{"just inside fade distance saturates", 49.9, 1},
		{"double fade distance", 100, 0.25},
		{"quadruple fade distance", 200, 0.0625},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FalloffFactor(tt.dist)
			if !approxEqual(got, tt.want) {
				t.Errorf("FalloffFactor(%v) = %v, want %v", tt.dist, got, tt.want)
			}
		})
	}
}

func TestFalloffFactorMonotonicBeyondFadeDistance(t *testing.T) {
	prev := FalloffFactor(FadeDistance)
	for d := FadeDistance + 10; d <= 500; d += 10 {
		got := FalloffFactor(d)
		if got >= prev {
			t.Fatalf("FalloffFactor(%v) = %v, not strictly below FalloffFactor(%v) = %v", d, got, d-10, prev)
		}
		prev = got
	}
}

func TestFalloffFactorZeroDistance(t *testing.T) {
	got := FalloffFactor(0)
	if math.IsNaN(float64(got)) || math.IsInf(float64(got), 0) {
		t.Fatalf("FalloffFactor(0) = %v, want finite", got)
	}
	if got != 1 {
		t.Errorf("FalloffFactor(0) = %v, want 1 (clamped distance saturates)", got)
	}
}

func TestGrazingFactor(t *testing.T) {
	invSqrt2 := float32(1 / math.Sqrt2)
	tests := []struct {
		name      string
		direction [3]float32
		want      float32
	}{
		{"looking straight down", [3]float32{0, 1, 0}, 1},
		{"looking straight up", [3]float32{0, -1, 0}, 1},
		{"grazing along x", [3]float32{1, 0, 0}, 0},
		{"grazing along z", [3]float32{0, 0, -1}, 0},
		{"45 degrees", [3]float32{invSqrt2, invSqrt2, 0}, invSqrt2},
		{"45 degrees below", [3]float32{invSqrt2, -invSqrt2, 0}, invSqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrazingFactor(tt.direction)
			if !approxEqual(got, tt.want) {
				t.Errorf("GrazingFactor(%v) = %v, want %v", tt.direction, got, tt.want)
			}
		})
	}
}

func TestFadeAlpha(t *testing.T) {
	tests := []struct {
		name   string
		world  [3]float32
		camera [3]float32
		want   float32
	}{
		{"overhead at fade distance", [3]float32{0, 0, 0}, [3]float32{0, 50, 0}, 1},
		{"level with ground", [3]float32{0, 0, 0}, [3]float32{100, 0, 0}, 0},
		{"overhead at double fade distance", [3]float32{0, 0, 0}, [3]float32{0, 100, 0}, 0.25},
		{"close overhead saturates", [3]float32{5, 0, 5}, [3]float32{5, 10, 5}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FadeAlpha(tt.world, tt.camera)
			if !approxEqual(got, tt.want) {
				t.Errorf("FadeAlpha(%v, %v) = %v, want %v", tt.world, tt.camera, got, tt.want)
			}
		})
	}
}

func TestFadeAlphaCameraOnFragment(t *testing.T) {
	p := [3]float32{3, 0, -7}
	got := FadeAlpha(p, p)
	if math.IsNaN(float64(got)) || math.IsInf(float64(got), 0) {
		t.Fatalf("FadeAlpha at zero distance = %v, want finite", got)
	}
	if got < 0 || got > 1 {
		t.Errorf("FadeAlpha at zero distance = %v, want within [0, 1]", got)
	}
}

func TestFadeAlphaRange(t *testing.T) {
	cameras := [][3]float32{
		{0, 1, 0}, {30, 20, -10}, {0, 500, 0}, {1000, 1, 1000}, {-3, 0.01, 4},
	}
	worlds := [][3]float32{
		{0, 0, 0}, {100, 0, -100}, {-5, 0, 5}, {1e4, 0, 1e4},
	}
	for _, cam := range cameras {
		for _, w := range worlds {
			got := FadeAlpha(w, cam)
			if got < 0 || got > 1 || math.IsNaN(float64(got)) {
				t.Errorf("FadeAlpha(%v, %v) = %v, want within [0, 1]", w, cam, got)
			}
		}
	}
}

func TestShadeFragmentPreservesRGB(t *testing.T) {
	in := ShadingOutput{
		Color:         [4]float32{0.2, 0.4, 0.6, 1},
		WorldPosition: [3]float32{0, 0, 0},
	}
	cam := CameraState{WorldPosition: [3]float32{0, 100, 0}}

	got := ShadeFragment(in, cam)
	if got[0] != in.Color[0] || got[1] != in.Color[1] || got[2] != in.Color[2] {
		t.Errorf("ShadeFragment RGB = %v, want pass-through of %v", got[:3], in.Color[:3])
	}
	if !approxEqual(got[3], 0.25) {
		t.Errorf("ShadeFragment alpha = %v, want 0.25", got[3])
	}
}

func TestShadeFragmentIgnoresInputAlpha(t *testing.T) {
	in := ShadingOutput{
		Color:         [4]float32{1, 1, 1, 0.123},
		WorldPosition: [3]float32{0, 0, 0},
	}
	cam := CameraState{WorldPosition: [3]float32{0, 50, 0}}

	got := ShadeFragment(in, cam)
	if !approxEqual(got[3], 1) {
		t.Errorf("ShadeFragment alpha = %v, want fade alpha 1 regardless of vertex alpha", got[3])
	}
}

// An earlier revision of the fragment stage computed the fade but emitted a
// hardcoded alpha of 1.0. The computed fade is the shipped behavior; this test
// pins the difference so the opaque variant cannot silently come back.
func TestShadeFragmentNotAlwaysOpaque(t *testing.T) {
	in := ShadingOutput{
		Color:         [4]float32{1, 1, 1, 1},
		WorldPosition: [3]float32{0, 0, 0},
	}
	cam := CameraState{WorldPosition: [3]float32{0, 100, 0}}

	got := ShadeFragment(in, cam)
	if got[3] >= 1 {
		t.Errorf("ShadeFragment alpha = %v beyond the fade distance, want < 1", got[3])
	}
}

func TestTransformVertexScaleAndTranslate(t *testing.T) {
	var identity [16]float32
	common.Identity(identity[:])

	v := Vertex{
		Position:          [3]float32{1, 0, 0},
		Color:             [4]float32{1, 1, 1, 1},
		InstanceTransform: [4]float32{10, 0, 0, 2},
	}

	out := TransformVertex(v, identity[:], identity[:])
	want := [3]float32{12, 0, 0}
	if out.WorldPosition != want {
		t.Errorf("WorldPosition = %v, want %v", out.WorldPosition, want)
	}
	wantClip := [4]float32{12, 0, 0, 1}
	if out.ClipPosition != wantClip {
		t.Errorf("ClipPosition = %v, want %v", out.ClipPosition, wantClip)
	}
	if out.Color != v.Color {
		t.Errorf("Color = %v, want %v", out.Color, v.Color)
	}
}

func TestTransformVertexModelMatrixApplied(t *testing.T) {
	var identity, model [16]float32
	common.Identity(identity[:])
	common.BuildModelMatrix(model[:], 0, 5, 0, 0, 0, 0, 1, 1, 1)

	v := Vertex{
		Position:          [3]float32{0, 0, 0},
		InstanceTransform: [4]float32{3, 0, 0, 1},
	}

	out := TransformVertex(v, model[:], identity[:])
	// The model matrix shifts the clip position, not the world position the
	// fade reads.
	if out.WorldPosition != ([3]float32{3, 0, 0}) {
		t.Errorf("WorldPosition = %v, want [3 0 0]", out.WorldPosition)
	}
	wantClip := [4]float32{3, 5, 0, 1}
	if out.ClipPosition != wantClip {
		t.Errorf("ClipPosition = %v, want %v", out.ClipPosition, wantClip)
	}
}

func TestTransformVertexModelIndexDecoupledFromInstanceIndex(t *testing.T) {
	var identity [16]float32
	common.Identity(identity[:])

	v := Vertex{
		Position:          [3]float32{1, 2, 3},
		InstanceTransform: [4]float32{0, 0, 0, 1},
	}
	a := v
	a.InstanceIndex = 0
	b := v
	b.InstanceIndex = 899

	outA := TransformVertex(a, identity[:], identity[:])
	outB := TransformVertex(b, identity[:], identity[:])
	if outA != outB {
		t.Errorf("instance index changed the transform: %v vs %v", outA, outB)
	}
}
