package grid

import "testing"

func TestLODTier(t *testing.T) {
	tests := []struct {
		name         string
		radius       float32
		wantCellSize float32
		wantScale    float32
	}{
		{"close orbit", 50, 10, 1},
		{"tier boundary stays fine", 200, 10, 1},
		{"medium orbit", 201, 100, 10},
		{"far orbit", 801, 1000, 100},
		{"very far orbit", 12001, 10000, 1000},
		{"zero radius", 0, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cellSize, scale := LODTier(tt.radius)
			if cellSize != tt.wantCellSize || scale != tt.wantScale {
				t.Errorf("LODTier(%v) = (%v, %v), want (%v, %v)",
					tt.radius, cellSize, scale, tt.wantCellSize, tt.wantScale)
			}
		})
	}
}

func TestBuildLatticeCount(t *testing.T) {
	got := BuildLattice(100)
	if len(got) != LatticeSize*LatticeSize {
		t.Fatalf("len = %d, want %d", len(got), LatticeSize*LatticeSize)
	}
}

func TestBuildLatticeCentered(t *testing.T) {
	instances := BuildLattice(100)

	var sumX, sumZ float32
	for _, inst := range instances {
		if inst.Translation[1] != 0 {
			t.Fatalf("instance translation Y = %v, want 0", inst.Translation[1])
		}
		if inst.Scale != 1 {
			t.Fatalf("instance scale = %v, want 1", inst.Scale)
		}
		sumX += inst.Translation[0]
		sumZ += inst.Translation[2]
	}
	if sumX != 0 || sumZ != 0 {
		t.Errorf("lattice not centered: sum of translations = (%v, %v), want (0, 0)", sumX, sumZ)
	}
}

func TestBuildLatticeCellPositions(t *testing.T) {
	instances := BuildLattice(0) // fine tier, cell size 10

	// First cell sits at the negative corner, offset to the cell center.
	first := instances[0].Translation
	if first != ([3]float32{-145, 0, -145}) {
		t.Errorf("first cell = %v, want [-145 0 -145]", first)
	}
	last := instances[len(instances)-1].Translation
	if last != ([3]float32{145, 0, 145}) {
		t.Errorf("last cell = %v, want [145 0 145]", last)
	}

	// Adjacent cells in a row are one cell size apart.
	for i := 1; i < LatticeSize; i++ {
		dx := instances[i].Translation[0] - instances[i-1].Translation[0]
		if dx != 10 {
			t.Fatalf("cell %d spacing = %v, want 10", i, dx)
		}
	}
}

func TestBuildLatticeTierScaling(t *testing.T) {
	fine := BuildLattice(0)
	coarse := BuildLattice(1000)

	// Coarse cells cover 100x the fine spacing with 100x the primitive scale.
	if coarse[0].Scale != 100*fine[0].Scale {
		t.Errorf("coarse scale = %v, want %v", coarse[0].Scale, 100*fine[0].Scale)
	}
	fineSpacing := fine[1].Translation[0] - fine[0].Translation[0]
	coarseSpacing := coarse[1].Translation[0] - coarse[0].Translation[0]
	if coarseSpacing != 100*fineSpacing {
		t.Errorf("coarse spacing = %v, want %v", coarseSpacing, 100*fineSpacing)
	}
}
