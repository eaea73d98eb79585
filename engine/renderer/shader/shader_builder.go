package shader

import (
	"github.com/cogentcore/webgpu/wgpu"
)

type ShaderBuilderOption func(*shader)

// WithEntryPoint sets the entry point function name. Defaults to "vs_main" for
// vertex shaders and "fs_main" for fragment shaders when not set.
//
// Parameters:
//   - entryPoint: the entry point function name in the WGSL source
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point
func WithEntryPoint(entryPoint string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = entryPoint
	}
}

// WithVertexLayouts sets the vertex buffer layouts, one per vertex buffer slot
// in slot order. Only meaningful for vertex shaders.
//
// Parameters:
//   - layouts: the vertex buffer layouts in slot order
//
// Returns:
//   - ShaderBuilderOption: a function that sets the vertex layouts
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = layouts
	}
}

// WithBindGroupLayoutDescriptor declares the bind group layout for a group
// index. Declare one per @group the WGSL source binds.
//
// Parameters:
//   - group: the bind group index
//   - descriptor: the layout descriptor for the group
//
// Returns:
//   - ShaderBuilderOption: a function that registers the descriptor
func WithBindGroupLayoutDescriptor(group int, descriptor wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = descriptor
	}
}
