package common

// FrustumCorners unprojects the eight corners of the view frustum into world
// space using the inverse of the view-projection matrix. Corner order is the
// near plane first (bottom-left, bottom-right, top-right, top-left) followed
// by the far plane in the same winding. Depth follows the WebGPU clip space
// convention (near = 0, far = 1).
//
// Parameters:
//   - invViewProj: inverse view-projection matrix (16 elements, column-major)
//
// Returns:
//   - [8][3]float32: the world-space frustum corners
func FrustumCorners(invViewProj []float32) [8][3]float32 {
	ndc := [8][3]float32{
		{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}

	var corners [8][3]float32
	var out [4]float32
	for i, c := range ndc {
		MulVec4(out[:], invViewProj, []float32{c[0], c[1], c[2], 1})
		w := out[3]
		if w == 0 {
			w = 1
		}
		corners[i] = [3]float32{out[0] / w, out[1] / w, out[2] / w}
	}
	return corners
}

// frustumEdges lists the 12 corner-index pairs that form the frustum edges:
// four near-plane edges, four far-plane edges, and the four connecting edges.
var frustumEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// GroundPlaneBounds intersects the frustum edges with the horizontal ground
// plane (Y = 0) and returns the axis-aligned bounds of the intersection
// points. ok is false when no edge crosses the plane, meaning the ground is
// not visible from this view.
//
// Parameters:
//   - corners: world-space frustum corners from FrustumCorners
//
// Returns:
//   - min: minimum corner of the covered ground region (Y is always 0)
//   - max: maximum corner of the covered ground region (Y is always 0)
//   - ok: true if at least one frustum edge crosses the ground plane
func GroundPlaneBounds(corners [8][3]float32) (min, max [3]float32, ok bool) {
	for _, e := range frustumEdges {
		a := corners[e[0]]
		b := corners[e[1]]

		ya, yb := a[1], b[1]
		if (ya > 0 && yb > 0) || (ya < 0 && yb < 0) {
			continue
		}
		denom := ya - yb
		var p [3]float32
		if denom == 0 {
			// Edge lies in the plane; both endpoints count.
			p = a
			min, max, ok = accumulateBounds(min, max, ok, p)
			p = b
			min, max, ok = accumulateBounds(min, max, ok, p)
			continue
		}
		t := ya / denom
		p = Lerp3(a, b, t)
		p[1] = 0
		min, max, ok = accumulateBounds(min, max, ok, p)
	}
	return min, max, ok
}

func accumulateBounds(min, max [3]float32, ok bool, p [3]float32) ([3]float32, [3]float32, bool) {
	if !ok {
		return p, p, true
	}
	for i := 0; i < 3; i++ {
		if p[i] < min[i] {
			min[i] = p[i]
		}
		if p[i] > max[i] {
			max[i] = p[i]
		}
	}
	return min, max, true
}
