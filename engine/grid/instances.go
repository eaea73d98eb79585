package grid

// LatticeSize is the number of lattice cells along each axis of the instance
// grid. The lattice is always LatticeSize×LatticeSize instances centered on
// the origin; level of detail changes the cell size, not the cell count.
const LatticeSize = 30

// LODTier returns the lattice cell size and base-primitive scale for a given
// camera orbit radius. Cells snap between decades so the grid stays readable
// at any zoom level: the further out the camera orbits, the coarser (and
// larger) the cells.
//
// Parameters:
//   - radius: the camera's orbit radius (distance from its target)
//
// Returns:
//   - cellSize: world-unit spacing between adjacent lattice cells
//   - scale: uniform scale applied to the base primitive per instance
func LODTier(radius float32) (cellSize, scale float32) {
	switch {
	case radius > 12000:
		return 10000, 1000
	case radius > 800:
		return 1000, 100
	case radius > 200:
		return 100, 10
	default:
		return 10, 1
	}
}

// BuildLattice builds the full instance set for a camera at the given orbit
// radius: LatticeSize×LatticeSize cells centered on the origin, spaced and
// scaled by the radius LOD tier. Cell translations sit on cell centers so the
// lattice stays symmetric about the origin.
//
// Parameters:
//   - radius: the camera's orbit radius driving the LOD tier
//
// Returns:
//   - []GPUGridInstance: the instance records, row-major
func BuildLattice(radius float32) []GPUGridInstance {
	cellSize, scale := LODTier(radius)
	out := make([]GPUGridInstance, LatticeSize*LatticeSize)
	for row := 0; row < LatticeSize; row++ {
		latticeRow(cellSize, scale, row, out[row*LatticeSize:(row+1)*LatticeSize])
	}
	return out
}

// latticeRow fills one row of the instance lattice. Integer cell math keeps
// adjacent tiers exactly aligned on shared cell boundaries.
func latticeRow(cellSize, scale float32, row int, out []GPUGridInstance) {
	base := int32(cellSize)
	half := int32(LatticeSize) * base / 2
	z := int32(row)*base - half + base/2
	for col := 0; col < LatticeSize; col++ {
		x := int32(col)*base - half + base/2
		out[col] = GPUGridInstance{
			Translation: [3]float32{float32(x), 0, float32(z)},
			Scale:       scale,
		}
	}
}
