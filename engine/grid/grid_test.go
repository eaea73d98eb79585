package grid

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/infinigrid/common"
)

// viewProjFor builds a perspective view-projection matrix for a camera at eye
// looking at center.
func viewProjFor(eye, center [3]float32) []float32 {
	view := make([]float32, 16)
	proj := make([]float32, 16)
	viewProj := make([]float32, 16)
	up := [3]float32{0, 1, 0}
	if eye[0] == center[0] && eye[2] == center[2] {
		up = [3]float32{0, 0, 1}
	}
	common.LookAt(view, eye[0], eye[1], eye[2], center[0], center[1], center[2], up[0], up[1], up[2])
	common.Perspective(proj, float32(math.Pi/4), 16.0/9.0, 0.1, 10000)
	common.Mul4(viewProj, proj, view)
	return viewProj
}

func TestGridUpdatePopulatesWhenGroundVisible(t *testing.T) {
	g := NewGrid(WithRebuildWorkers(2))
	viewProj := viewProjFor([3]float32{0, 50, 0}, [3]float32{0, 0, 0})

	changed := g.Update(viewProj, 50)
	if !changed {
		t.Fatal("Update did not report a change for the first visible frame")
	}
	if !g.Visible() {
		t.Fatal("grid not visible looking straight down at the ground")
	}
	if got := g.InstanceCount(); got != LatticeSize*LatticeSize {
		t.Fatalf("InstanceCount = %d, want %d", got, LatticeSize*LatticeSize)
	}
	if _, _, ok := g.Bounds(); !ok {
		t.Fatal("Bounds not available while visible")
	}
}

func TestGridBoundsSnapToCellBoundaries(t *testing.T) {
	g := NewGrid(WithRebuildWorkers(2))
	viewProj := viewProjFor([3]float32{0, 50, 0}, [3]float32{0, 0, 0})

	g.Update(viewProj, 50) // fine tier, cell size 10
	bmin, bmax, ok := g.Bounds()
	if !ok {
		t.Fatal("Bounds not available while visible")
	}
	for _, v := range []float32{bmin[0], bmin[2], bmax[0], bmax[2]} {
		if rem := math.Mod(float64(v), 10); rem != 0 {
			t.Errorf("bound %v not on a cell boundary (remainder %v)", v, rem)
		}
	}
	if bmin[0] >= 0 || bmax[0] <= 0 || bmin[2] >= 0 || bmax[2] <= 0 {
		t.Errorf("bounds [%v, %v] do not straddle the origin", bmin, bmax)
	}
}

func TestGridUpdateClearsWhenGroundHidden(t *testing.T) {
	g := NewGrid(WithRebuildWorkers(2))

	down := viewProjFor([3]float32{0, 50, 0}, [3]float32{0, 0, 0})
	if changed := g.Update(down, 50); !changed {
		t.Fatal("expected change on first visible frame")
	}

	// Looking straight up from above the plane, no frustum edge crosses Y=0.
	skyward := viewProjFor([3]float32{0, 50, 0}, [3]float32{0, 100, 0})
	if changed := g.Update(skyward, 50); !changed {
		t.Fatal("expected change when the ground leaves the view")
	}
	if g.Visible() {
		t.Fatal("grid still visible looking away from the ground")
	}
	if got := g.InstanceCount(); got != 0 {
		t.Fatalf("InstanceCount = %d, want 0 while hidden", got)
	}

	// Hidden and already empty: no further change to report.
	if changed := g.Update(skyward, 50); changed {
		t.Fatal("Update reported a change while hidden with an empty lattice")
	}
}

func TestGridUpdateStableWithinTier(t *testing.T) {
	g := NewGrid(WithRebuildWorkers(2))
	viewProj := viewProjFor([3]float32{0, 50, 0}, [3]float32{0, 0, 0})

	g.Update(viewProj, 50)
	if changed := g.Update(viewProj, 120); changed {
		t.Fatal("Update rebuilt the lattice within the same LOD tier")
	}
	if changed := g.Update(viewProj, 300); !changed {
		t.Fatal("Update did not rebuild the lattice after a tier change")
	}
	if got := g.Instances()[0].Scale; got != 10 {
		t.Errorf("instance scale after tier change = %v, want 10", got)
	}
}

func TestGridModelIndex(t *testing.T) {
	g := NewGrid(WithModelIndex(3))
	if got := g.ModelIndex(); got != 3 {
		t.Fatalf("ModelIndex = %d, want 3", got)
	}
	g.SetModelIndex(9)
	if got := g.Uniform().ModelIndex; got != 9 {
		t.Fatalf("Uniform().ModelIndex = %d, want 9", got)
	}
}

func TestGridInstanceData(t *testing.T) {
	g := NewGrid(WithRebuildWorkers(2))
	viewProj := viewProjFor([3]float32{0, 50, 0}, [3]float32{0, 0, 0})
	g.Update(viewProj, 50)

	data := g.InstanceData()
	wantLen := LatticeSize * LatticeSize * (&GPUGridInstance{}).Size()
	if len(data) != wantLen {
		t.Fatalf("InstanceData len = %d, want %d", len(data), wantLen)
	}
}

func TestGridBindGroupProviderDefault(t *testing.T) {
	g := NewGrid()
	if g.BindGroupProvider() == nil {
		t.Fatal("grid created without a bind group provider")
	}
}
