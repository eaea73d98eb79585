package camera

import (
	"math"
	"testing"
)

const epsilon = 1e-4

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestControllerSphericalPosition(t *testing.T) {
	cc := NewCameraController(
		WithRadius(100),
		WithAzimuth(0),
		WithElevation(float32(math.Pi/2-0.1)),
		WithElevationBounds(0.05, float32(math.Pi/2-0.1)),
	)

	x, y, z := cc.Position()
	// Near-vertical elevation puts the camera almost directly above the target.
	if !approxEqual(y, 100*float32(math.Sin(math.Pi/2-0.1))) {
		t.Errorf("position y = %v", y)
	}
	if math.Abs(float64(x)) > 1e-3 {
		t.Errorf("position x = %v, want ~0 at azimuth 0", x)
	}
	if z <= 0 {
		t.Errorf("position z = %v, want positive at azimuth 0", z)
	}

	dist := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if !approxEqual(dist, 100) {
		t.Errorf("distance from target = %v, want 100", dist)
	}
}

func TestControllerZoomMultiplicative(t *testing.T) {
	cc := NewCameraController(WithRadius(1000), WithZoomSpeed(0.1), WithRadiusBounds(1, 50000))

	cc.Zoom(1)
	if got := cc.Radius(); !approxEqual(got, 900) {
		t.Errorf("radius after zoom in = %v, want 900", got)
	}
	cc.Zoom(-1)
	if got := cc.Radius(); !approxEqual(got, 990) {
		t.Errorf("radius after zoom out = %v, want 990", got)
	}
}

func TestControllerZoomClamped(t *testing.T) {
	cc := NewCameraController(WithRadius(10), WithRadiusBounds(5, 20), WithZoomSpeed(0.5))

	for i := 0; i < 10; i++ {
		cc.Zoom(1)
	}
	if got := cc.Radius(); got != 5 {
		t.Errorf("radius = %v, want clamped to 5", got)
	}
	for i := 0; i < 10; i++ {
		cc.Zoom(-1)
	}
	if got := cc.Radius(); got != 20 {
		t.Errorf("radius = %v, want clamped to 20", got)
	}
}

func TestControllerElevationClamped(t *testing.T) {
	cc := NewCameraController(WithElevationBounds(0.05, 1.0))

	cc.SetElevation(2.0)
	if got := cc.Elevation(); got != 1.0 {
		t.Errorf("elevation = %v, want clamped to 1.0", got)
	}
	cc.SetElevation(-1.0)
	if got := cc.Elevation(); got != 0.05 {
		t.Errorf("elevation = %v, want clamped to 0.05", got)
	}
}

func TestControllerPanPreservesRadius(t *testing.T) {
	cc := NewCameraController(WithRadius(50))

	cc.PanRight(10)
	cc.PanUp(-3)
	px, py, pz := cc.Position()
	tx, ty, tz := cc.Target()
	dx, dy, dz := px-tx, py-ty, pz-tz
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
	if !approxEqual(dist, 50) {
		t.Errorf("orbit distance after pan = %v, want 50", dist)
	}
	if tx == 0 && ty == 0 && tz == 0 {
		t.Error("target did not move under pan")
	}
}

func TestCameraUniform(t *testing.T) {
	cc := NewCameraController(WithRadius(50), WithElevation(float32(math.Pi/4)))
	c := NewCamera(WithController(cc), WithAspect(16.0/9.0))

	u := c.Uniform()
	if u.ViewProj != c.ViewProjectionMatrix() {
		t.Error("uniform view-projection does not match camera matrix")
	}
	px, py, pz := cc.Position()
	if u.CameraPosition != ([3]float32{px, py, pz}) {
		t.Errorf("uniform camera position = %v, want (%v, %v, %v)", u.CameraPosition, px, py, pz)
	}

	buf := u.Marshal()
	if len(buf) != 80 {
		t.Fatalf("marshaled uniform = %d bytes, want 80", len(buf))
	}
}

func TestCameraInverseViewProjection(t *testing.T) {
	cc := NewCameraController(WithRadius(50))
	c := NewCamera(WithController(cc), WithAspect(16.0/9.0))

	vp := c.ViewProjectionMatrix()
	inv := c.InverseViewProjectionMatrix()

	// vp * inv must be the identity.
	var product [16]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += vp[k*4+j] * inv[i*4+k]
			}
			product[i*4+j] = sum
		}
	}
	for i := 0; i < 16; i++ {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if math.Abs(float64(product[i]-want)) > 1e-3 {
			t.Fatalf("vp*inv element %d = %v, want %v", i, product[i], want)
		}
	}
}

func TestCameraUpdateTracksController(t *testing.T) {
	cc := NewCameraController(WithRadius(50))
	c := NewCamera(WithController(cc))

	before := c.ViewProjectionMatrix()
	cc.OrbitRight()
	cc.OrbitRight()
	c.Update()
	after := c.ViewProjectionMatrix()
	if before == after {
		t.Error("view-projection unchanged after orbiting the controller")
	}
}
