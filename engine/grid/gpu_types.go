package grid

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GridShaderSource is the WGSL source of the grid render pipeline, containing
// both the vs_main and fs_main entry points plus the canonical definitions of
// the CameraUniform, ModelData, and GridUniform structs the GPU-side layouts
// must match.
//
//go:embed assets/grid.wgsl
var GridShaderSource string

// GPUGridVertex is the GPU-aligned representation of a single grid line vertex.
// Matches the WGSL VertexInput locations 0-2 exactly (see GridShaderSource).
// Size: 40 bytes (tightly packed vertex buffer layout, no padding required).
type GPUGridVertex struct {
	Position [3]float32 // offset  0: vertex position in base primitive space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal, carried but unused by the grid math (12 bytes)
	Color    [4]float32 // offset 24: per-vertex RGBA color (16 bytes)
}

// Size returns the size of the GPUGridVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUGridVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUGridVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 40-byte buffer ready for GPU upload.
func (g *GPUGridVertex) Marshal() []byte {
	buf := make([]byte, 40)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Color[3]))
	return buf
}

// GPUGridInstance is the GPU-aligned per-instance record consumed at vertex
// buffer slot 1 with instance step mode. It occupies a single vec4 lane:
// xyz is the world-space translation of the lattice cell, w the uniform scale
// applied to the base primitive.
// Size: 16 bytes.
type GPUGridInstance struct {
	Translation [3]float32 // offset  0: world-space cell offset (12 bytes)
	Scale       float32    // offset 12: uniform scale of the base primitive (4 bytes)
}

// Size returns the size of the GPUGridInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUGridInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUGridInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUGridInstance) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Translation[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Translation[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Translation[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Scale))
	return buf
}

// GPUGridUniform is the GPU-aligned representation of the per-draw grid
// uniform. ModelIndex selects the draw's model matrix from the transform
// table bound at group 1; the trailing padding exists only to satisfy the
// 16-byte uniform buffer alignment and must never be read.
// Size: 16 bytes.
type GPUGridUniform struct {
	ModelIndex uint32    // offset 0: index into the model transform table (4 bytes)
	_pad       [3]uint32 // offset 4: alignment padding, no semantic meaning (12 bytes)
}

// Size returns the size of the GPUGridUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUGridUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUGridUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUGridUniform) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], g.ModelIndex)
	// bytes 4-16 are alignment padding, left zeroed
	return buf
}

// GPUModelData is a single entry of the model transform table bound at
// group 1. The table is owned by the integration layer; the grid only reads
// the entry addressed by GPUGridUniform.ModelIndex.
// Size: 64 bytes (mat4x4<f32>).
type GPUModelData struct {
	Model [16]float32 // offset 0: 4×4 model-to-world transform matrix (64 bytes)
}

// Size returns the size of the GPUModelData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUModelData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUModelData) Marshal() []byte {
	buf := make([]byte, 64)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	return buf
}
