package grid

import (
	"github.com/Carmen-Shannon/infinigrid/engine/renderer/bind_group_provider"
)

type GridBuilderOption func(*gridImpl)

// WithModelIndex sets the index into the model transform table used by the
// grid's draw call.
//
// Parameters:
//   - index: the transform table index
//
// Returns:
//   - GridBuilderOption: a function that sets the model index
func WithModelIndex(index uint32) GridBuilderOption {
	return func(g *gridImpl) {
		g.modelIndex = index
	}
}

// WithRebuildWorkers sets the number of workers used for parallel lattice
// rebuilds. Values below 1 are ignored.
//
// Parameters:
//   - n: worker count
//
// Returns:
//   - GridBuilderOption: a function that sets the rebuild worker count
func WithRebuildWorkers(n int) GridBuilderOption {
	return func(g *gridImpl) {
		if n >= 1 {
			g.rebuildWorkers = n
		}
	}
}

// WithBindGroupProvider attaches a bind group provider to the grid.
// The provider describes the GPU binding requirements for the grid uniform.
//
// Parameters:
//   - provider: the bind group provider to attach
//
// Returns:
//   - GridBuilderOption: functional option to set the bind group provider
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) GridBuilderOption {
	return func(g *gridImpl) {
		g.bindGroupProvider = provider
	}
}
