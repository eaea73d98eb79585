package common

import (
	"math"
	"testing"
)

func invViewProjFor(t *testing.T, eyeX, eyeY, eyeZ, cX, cY, cZ, upX, upY, upZ float32) []float32 {
	t.Helper()
	view := make([]float32, 16)
	proj := make([]float32, 16)
	viewProj := make([]float32, 16)
	inv := make([]float32, 16)
	LookAt(view, eyeX, eyeY, eyeZ, cX, cY, cZ, upX, upY, upZ)
	Perspective(proj, float32(math.Pi/4), 16.0/9.0, 0.1, 1000)
	Mul4(viewProj, proj, view)
	if !Invert4(inv, viewProj) {
		t.Fatal("view-projection matrix reported singular")
	}
	return inv
}

func TestFrustumCornersNearPlane(t *testing.T) {
	inv := invViewProjFor(t, 0, 0, 10, 0, 0, 0, 0, 1, 0)
	corners := FrustumCorners(inv)

	// Near-plane corners sit at z = eye.z - near for a camera looking down -z.
	for i := 0; i < 4; i++ {
		if got := corners[i][2]; math.Abs(float64(got-9.9)) > 1e-3 {
			t.Errorf("near corner %d z = %v, want 9.9", i, got)
		}
	}
	// Far-plane corners are much further out and wider than the near plane.
	if corners[4][2] > corners[0][2] {
		t.Error("far corner not behind near corner along the view direction")
	}
	if math.Abs(float64(corners[4][0])) <= math.Abs(float64(corners[0][0])) {
		t.Error("far plane not wider than near plane")
	}
}

func TestGroundPlaneBoundsLookingDown(t *testing.T) {
	inv := invViewProjFor(t, 0, 50, 0, 0, 0, 0, 0, 0, 1)
	min, max, ok := GroundPlaneBounds(FrustumCorners(inv))
	if !ok {
		t.Fatal("ground not visible looking straight down from above")
	}
	if min[1] != 0 || max[1] != 0 {
		t.Errorf("bounds not on the ground plane: min.y = %v, max.y = %v", min[1], max[1])
	}
	// The view is centered on the origin, so the bounds must straddle it.
	if min[0] >= 0 || max[0] <= 0 || min[2] >= 0 || max[2] <= 0 {
		t.Errorf("bounds [%v, %v] do not contain the origin", min, max)
	}
}

func TestGroundPlaneBoundsLookingAway(t *testing.T) {
	inv := invViewProjFor(t, 0, 50, 0, 0, 100, 0, 0, 0, 1)
	_, _, ok := GroundPlaneBounds(FrustumCorners(inv))
	if ok {
		t.Fatal("ground reported visible while looking straight up from above it")
	}
}

func TestGroundPlaneBoundsObliqueView(t *testing.T) {
	inv := invViewProjFor(t, 0, 20, 60, 0, 0, 0, 0, 1, 0)
	min, max, ok := GroundPlaneBounds(FrustumCorners(inv))
	if !ok {
		t.Fatal("ground not visible from an oblique downward view")
	}
	if min[0] > max[0] || min[2] > max[2] {
		t.Errorf("degenerate bounds [%v, %v]", min, max)
	}
	// An oblique view covers ground ahead of the camera.
	if max[2] >= 60 {
		t.Errorf("bounds extend behind the camera: max.z = %v", max[2])
	}
}

func TestGroundPlaneBoundsEdgeInPlane(t *testing.T) {
	corners := [8][3]float32{
		{-1, 0, -1}, {1, 0, -1}, {1, 2, -1}, {-1, 2, -1},
		{-2, 0, -5}, {2, 0, -5}, {2, 4, -5}, {-2, 4, -5},
	}
	min, max, ok := GroundPlaneBounds(corners)
	if !ok {
		t.Fatal("edges lying in the plane not counted as intersections")
	}
	if min[0] != -2 || max[0] != 2 {
		t.Errorf("x bounds [%v, %v], want [-2, 2]", min[0], max[0])
	}
	if min[2] != -5 || max[2] != -1 {
		t.Errorf("z bounds [%v, %v], want [-5, -1]", min[2], max[2])
	}
}
