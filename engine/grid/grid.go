package grid

import (
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/infinigrid/common"
	"github.com/Carmen-Shannon/infinigrid/engine/renderer/bind_group_provider"
)

// gridCount is an atomic counter used to generate unique bind group provider names for each grid instance.
var gridCount atomic.Uint64

type gridImpl struct {
	mu *sync.Mutex

	modelIndex uint32

	instances []GPUGridInstance
	visible   bool
	cellSize  float32
	boundsMin [3]float32
	boundsMax [3]float32

	rebuildWorkers int
	rebuildPool    worker.DynamicWorkerPool

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Grid defines the interface for the infinite ground grid.
// The grid owns the per-draw uniform (the model transform index), the
// level-of-detail instance lattice, and the ground visibility gate computed
// from the camera's view-projection matrix each frame via Update().
type Grid interface {
	// ModelIndex returns the index into the model transform table used by the
	// grid's draw call.
	//
	// Returns:
	//   - uint32: the transform table index
	ModelIndex() uint32

	// Uniform returns the per-draw uniform record holding the current model
	// index, ready to be marshaled into the grid uniform buffer.
	//
	// Returns:
	//   - GPUGridUniform: the per-draw uniform record
	Uniform() GPUGridUniform

	// Instances returns a copy of the current instance lattice. Empty when the
	// ground plane is not visible.
	//
	// Returns:
	//   - []GPUGridInstance: the instance records, row-major
	Instances() []GPUGridInstance

	// InstanceCount returns the number of instances in the current lattice.
	//
	// Returns:
	//   - int: the instance count
	InstanceCount() int

	// InstanceData returns the current lattice as raw bytes for GPU upload.
	// The returned slice aliases internal state; upload it before the next
	// Update call.
	//
	// Returns:
	//   - []byte: instance records, 16 bytes each
	InstanceData() []byte

	// Visible reports whether the ground plane intersected the view frustum
	// on the last Update.
	//
	// Returns:
	//   - bool: true if the grid should be drawn
	Visible() bool

	// Bounds returns the axis-aligned ground region covered by the view
	// frustum on the last Update, snapped outward to lattice cell boundaries.
	// ok is false when the ground was not visible.
	//
	// Returns:
	//   - min: minimum corner of the covered region (Y is always 0)
	//   - max: maximum corner of the covered region (Y is always 0)
	//   - ok: true if the ground plane was visible
	Bounds() (min, max [3]float32, ok bool)

	// BindGroupProvider returns the grid's bind group provider for GPU resources.
	// Returns nil if not set.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider or nil
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Update recomputes the visibility gate from the camera's view-projection
	// matrix and rebuilds the instance lattice when the LOD tier or visibility
	// changed. Should be called once per frame before uploading instance data.
	//
	// Parameters:
	//   - viewProj: the camera's combined view-projection matrix (16 elements, column-major)
	//   - orbitRadius: the camera's distance from its orbit target, drives the LOD tier
	//
	// Returns:
	//   - bool: true if the instance set changed and must be re-uploaded
	Update(viewProj []float32, orbitRadius float32) bool

	// SetModelIndex sets the index into the model transform table used by the
	// grid's draw call.
	//
	// Parameters:
	//   - index: the transform table index
	SetModelIndex(index uint32)

	// SetBindGroupProvider sets the grid's bind group provider.
	//
	// Parameters:
	//   - provider: the bind group provider to set
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Grid = &gridImpl{}

// NewGrid creates a new Grid with an empty lattice. The lattice is populated
// on the first Update call that sees the ground plane.
//
// Parameters:
//   - options: functional options to configure the grid
//
// Returns:
//   - Grid: the newly created grid
func NewGrid(options ...GridBuilderOption) Grid {
	g := &gridImpl{
		mu:             &sync.Mutex{},
		rebuildWorkers: max(runtime.NumCPU()-1, 1),
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"grid_" + strconv.FormatUint(gridCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(g)
	}
	g.rebuildPool = worker.NewDynamicWorkerPool(g.rebuildWorkers, 256, 1*time.Second)
	gridCount.Add(1)
	return g
}

func (g *gridImpl) ModelIndex() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.modelIndex
}

func (g *gridImpl) Uniform() GPUGridUniform {
	g.mu.Lock()
	defer g.mu.Unlock()
	return GPUGridUniform{ModelIndex: g.modelIndex}
}

func (g *gridImpl) Instances() []GPUGridInstance {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]GPUGridInstance, len(g.instances))
	copy(out, g.instances)
	return out
}

func (g *gridImpl) InstanceCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.instances)
}

func (g *gridImpl) InstanceData() []byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	return common.SliceToBytes(g.instances)
}

func (g *gridImpl) Visible() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.visible
}

func (g *gridImpl) Bounds() (min, max [3]float32, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.boundsMin, g.boundsMax, g.visible
}

func (g *gridImpl) SetModelIndex(index uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.modelIndex = index
}

func (g *gridImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bindGroupProvider
}

func (g *gridImpl) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.bindGroupProvider = provider
}

func (g *gridImpl) Update(viewProj []float32, orbitRadius float32) bool {
	var inv [16]float32
	var bmin, bmax [3]float32
	visible := false
	if common.Invert4(inv[:], viewProj) {
		bmin, bmax, visible = common.GroundPlaneBounds(common.FrustumCorners(inv[:]))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !visible {
		changed := len(g.instances) > 0
		g.visible = false
		g.instances = g.instances[:0]
		return changed
	}

	cellSize, scale := LODTier(orbitRadius)
	// Snap the covered region outward to cell boundaries so consumers see the
	// full set of cells the frustum touches, not a fractional-cell rectangle.
	g.boundsMin = [3]float32{
		common.LargestMultipleAtOrBelow(bmin[0], cellSize), 0,
		common.LargestMultipleAtOrBelow(bmin[2], cellSize),
	}
	g.boundsMax = [3]float32{
		common.SmallestMultipleAtOrAbove(bmax[0], cellSize), 0,
		common.SmallestMultipleAtOrAbove(bmax[2], cellSize),
	}
	if g.visible && cellSize == g.cellSize {
		return false
	}

	g.instances = g.rebuildLattice(cellSize, scale)
	g.cellSize = cellSize
	g.visible = true
	return true
}

// rebuildLattice fills a fresh lattice in parallel, one row per pool task.
// Workers are reused across rebuilds (no goroutine spawn overhead). A
// WaitGroup provides the rebuild barrier since pool.Wait() blocks until
// workers idle-exit which is unsuitable for frame-rate workloads.
// Caller must hold the mutex.
func (g *gridImpl) rebuildLattice(cellSize, scale float32) []GPUGridInstance {
	out := make([]GPUGridInstance, LatticeSize*LatticeSize)
	var wg sync.WaitGroup
	for row := 0; row < LatticeSize; row++ {
		wg.Add(1)
		r := row // capture for closure
		g.rebuildPool.SubmitTask(worker.Task{
			ID: r,
			Do: func() (any, error) {
				defer wg.Done()
				latticeRow(cellSize, scale, r, out[r*LatticeSize:(r+1)*LatticeSize])
				return nil, nil
			},
		})
	}
	wg.Wait()
	return out
}
