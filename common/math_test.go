package common

import (
	"math"
	"testing"
)

const epsilon = 1e-4

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestMulVec4Identity(t *testing.T) {
	var m [16]float32
	Identity(m[:])

	v := []float32{1, 2, 3, 4}
	var out [4]float32
	MulVec4(out[:], m[:], v)
	if out != ([4]float32{1, 2, 3, 4}) {
		t.Errorf("MulVec4(identity, v) = %v, want %v", out, v)
	}
}

func TestMulVec4Translation(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 10, 20, 30, 0, 0, 0, 1, 1, 1)

	var out [4]float32
	MulVec4(out[:], m[:], []float32{1, 1, 1, 1})
	want := [4]float32{11, 21, 31, 1}
	for i := range want {
		if !approxEqual(out[i], want[i]) {
			t.Fatalf("MulVec4 = %v, want %v", out, want)
		}
	}
}

func TestMulVec4AliasedOutput(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 5, 0, 0, 0, 0, 0, 2, 2, 2)

	v := []float32{1, 0, 0, 1}
	MulVec4(v, m[:], v)
	want := [4]float32{7, 0, 0, 1}
	for i := range want {
		if !approxEqual(v[i], want[i]) {
			t.Fatalf("aliased MulVec4 = %v, want %v", v, want)
		}
	}
}

func TestInvert4Roundtrip(t *testing.T) {
	var m, inv, product [16]float32
	BuildModelMatrix(m[:], 3, -7, 2, 0.5, 1.2, -0.3, 2, 2, 2)

	if !Invert4(inv[:], m[:]) {
		t.Fatal("Invert4 reported a well-formed model matrix as singular")
	}
	Mul4(product[:], m[:], inv[:])

	var identity [16]float32
	Identity(identity[:])
	for i := range identity {
		if !approxEqual(product[i], identity[i]) {
			t.Fatalf("m * inv(m) element %d = %v, want %v", i, product[i], identity[i])
		}
	}
}

func TestInvert4Singular(t *testing.T) {
	var zero, out [16]float32
	out[3] = 42
	if Invert4(out[:], zero[:]) {
		t.Fatal("Invert4 inverted a singular matrix")
	}
	if out[3] != 42 {
		t.Fatal("Invert4 modified the output for a singular input")
	}
}

func TestInvert4ViewProjection(t *testing.T) {
	view := make([]float32, 16)
	proj := make([]float32, 16)
	viewProj := make([]float32, 16)
	inv := make([]float32, 16)

	LookAt(view, 0, 50, 30, 0, 0, 0, 0, 1, 0)
	Perspective(proj, float32(math.Pi/4), 16.0/9.0, 0.1, 1000)
	Mul4(viewProj, proj, view)

	if !Invert4(inv, viewProj) {
		t.Fatal("view-projection matrix reported singular")
	}

	// A world point projected and unprojected comes back unchanged.
	p := []float32{5, 0, -5, 1}
	var clip, back [4]float32
	MulVec4(clip[:], viewProj, p)
	MulVec4(back[:], inv, clip[:])
	for i := 0; i < 3; i++ {
		if !approxEqual(back[i]/back[3], p[i]) {
			t.Fatalf("roundtrip component %d = %v, want %v", i, back[i]/back[3], p[i])
		}
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := make([]float32, 16)
	near, far := float32(0.1), float32(100)
	Perspective(proj, float32(math.Pi/4), 1, near, far)

	// Points on the near and far planes map to z/w = 0 and 1 respectively.
	var clip [4]float32
	MulVec4(clip[:], proj, []float32{0, 0, -near, 1})
	if !approxEqual(clip[2]/clip[3], 0) {
		t.Errorf("near plane depth = %v, want 0", clip[2]/clip[3])
	}
	MulVec4(clip[:], proj, []float32{0, 0, -far, 1})
	if !approxEqual(clip[2]/clip[3], 1) {
		t.Errorf("far plane depth = %v, want 1", clip[2]/clip[3])
	}
}

func TestSnapHelpers(t *testing.T) {
	tests := []struct {
		value, step float32
		wantBelow   float32
		wantAbove   float32
	}{
		{95, 10, 90, 100},
		{-95, 10, -100, -90},
		{100, 10, 100, 100},
		{0, 10, 0, 0},
	}
	for _, tt := range tests {
		if got := LargestMultipleAtOrBelow(tt.value, tt.step); got != tt.wantBelow {
			t.Errorf("LargestMultipleAtOrBelow(%v, %v) = %v, want %v", tt.value, tt.step, got, tt.wantBelow)
		}
		if got := SmallestMultipleAtOrAbove(tt.value, tt.step); got != tt.wantAbove {
			t.Errorf("SmallestMultipleAtOrAbove(%v, %v) = %v, want %v", tt.value, tt.step, got, tt.wantAbove)
		}
	}
}

func TestVectorHelpers(t *testing.T) {
	a := [3]float32{3, 4, 0}
	b := [3]float32{1, 1, 1}

	if got := Sub3(a, b); got != ([3]float32{2, 3, -1}) {
		t.Errorf("Sub3 = %v", got)
	}
	if got := Dot3(a, b); got != 7 {
		t.Errorf("Dot3 = %v, want 7", got)
	}
	if got := Length3(a); got != 5 {
		t.Errorf("Length3 = %v, want 5", got)
	}
	if got := Scale3(a, 2); got != ([3]float32{6, 8, 0}) {
		t.Errorf("Scale3 = %v", got)
	}
	if got := Lerp3(a, b, 0.5); got != ([3]float32{2, 2.5, 0.5}) {
		t.Errorf("Lerp3 = %v", got)
	}
}
