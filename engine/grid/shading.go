// package grid implements the infinite ground grid effect: instanced line
// geometry transformed and faded on the GPU by the embedded WGSL shader, with
// a matching pure-Go reference of both shading stages used for testing and
// CPU-side fade queries.
package grid

import (
	"github.com/Carmen-Shannon/infinigrid/common"
)

// FadeDistance is the distance in world units beyond which grid visibility
// falls off quadratically. Within this distance the distance term saturates
// at full opacity.
const FadeDistance float32 = 50.0

// MinCameraDistance is the smallest camera-to-fragment distance used by the
// fade computation. Distances below this are clamped so the falloff division
// and direction normalization stay finite; a NaN alpha would corrupt the
// blend stage for that pixel.
const MinCameraDistance float32 = 1e-4

// up is the world up axis the grazing term is measured against.
var up = [3]float32{0, 1, 0}

// Vertex is the per-invocation input of the vertex stage. It mirrors the
// vertex attribute contract of the grid pipeline: base geometry in locations
// 0-2, the per-instance translation+scale in location 3, and the draw-call
// supplied instance index.
type Vertex struct {
	// Position is the vertex position in the base primitive's local space.
	Position [3]float32

	// Normal is carried through the attribute layout but unused by the grid math.
	Normal [3]float32

	// Color is the per-vertex RGBA color in [0, 1]. Opaque pass-through data.
	Color [4]float32

	// InstanceIndex identifies which copy of the base primitive this is.
	// It only ever drives the geometric offset/scale lookup; it is NOT the
	// index into the model transform table.
	InstanceIndex uint32

	// InstanceTransform packs the instance's world translation (xyz) and a
	// uniform scale factor (w) applied to Position before translation.
	InstanceTransform [4]float32
}

// ShadingOutput is the record interpolated between the vertex and fragment
// stages.
type ShadingOutput struct {
	// ClipPosition is the post-projection position.
	ClipPosition [4]float32

	// Color is the vertex color, unchanged.
	Color [4]float32

	// WorldPosition is the pre-projection world position, interpolated across
	// the primitive for per-pixel fade evaluation.
	WorldPosition [3]float32
}

// CameraState is the read-only per-frame view data the fade computation
// consumes. Supplied by the surrounding pipeline, never mutated here.
type CameraState struct {
	// WorldPosition is the camera's world-space position.
	WorldPosition [3]float32
}

// TransformVertex is the vertex stage: it scales the base position uniformly
// by the instance's w component, offsets it by the instance translation, and
// projects the resulting world position through the supplied model and
// view-projection matrices. The model matrix is resolved by the caller from
// the transform table using the per-draw model index — never from
// Vertex.InstanceIndex.
//
// Parameters:
//   - v: the vertex stage input
//   - model: the model matrix selected for this draw (16 elements, column-major)
//   - viewProj: the combined view-projection matrix (16 elements, column-major)
//
// Returns:
//   - ShadingOutput: clip position, pass-through color, and world position
func TransformVertex(v Vertex, model, viewProj []float32) ShadingOutput {
	world := [3]float32{
		v.Position[0]*v.InstanceTransform[3] + v.InstanceTransform[0],
		v.Position[1]*v.InstanceTransform[3] + v.InstanceTransform[1],
		v.Position[2]*v.InstanceTransform[3] + v.InstanceTransform[2],
	}

	var clip [4]float32
	common.MulVec4(clip[:], model, []float32{world[0], world[1], world[2], 1})
	common.MulVec4(clip[:], viewProj, clip[:])

	return ShadingOutput{
		ClipPosition:  clip,
		Color:         v.Color,
		WorldPosition: world,
	}
}

// ShadeFragment is the fragment stage: it keeps the interpolated RGB
// unchanged and replaces alpha with the view-dependent fade factor.
//
// An earlier iteration of the shader computed the fade and then emitted a
// hardcoded alpha of 1.0; that opaque branch is superseded and the computed
// alpha is the shipped behavior.
//
// Parameters:
//   - in: the interpolated vertex stage output
//   - cam: the per-frame camera state
//
// Returns:
//   - [4]float32: final RGBA color with the fade alpha
func ShadeFragment(in ShadingOutput, cam CameraState) [4]float32 {
	alpha := FadeAlpha(in.WorldPosition, cam.WorldPosition)
	return [4]float32{in.Color[0], in.Color[1], in.Color[2], alpha}
}

// FadeAlpha computes the combined fade factor for a world-space point viewed
// from the given camera position: the grazing term attenuates fragments seen
// edge-on against the ground plane, the falloff term attenuates fragments
// beyond FadeDistance. The two multiply so the grid dissolves smoothly near
// the horizon where both effects coincide.
//
// Parameters:
//   - worldPosition: the fragment's world-space position
//   - cameraPosition: the camera's world-space position
//
// Returns:
//   - float32: alpha in [0, 1]
func FadeAlpha(worldPosition, cameraPosition [3]float32) float32 {
	cameraVector := common.Sub3(cameraPosition, worldPosition)
	dist := common.Length3(cameraVector)
	if dist < MinCameraDistance {
		dist = MinCameraDistance
	}
	direction := common.Scale3(cameraVector, 1/dist)
	return GrazingFactor(direction) * FalloffFactor(dist)
}

// GrazingFactor returns the angle term of the fade: the absolute dot product
// of the normalized view direction with the up axis. 0 when the view is
// parallel to the ground plane, 1 when looking straight down (or up).
func GrazingFactor(direction [3]float32) float32 {
	d := common.Dot3(direction, up)
	if d < 0 {
		d = -d
	}
	return d
}

// FalloffFactor returns the distance term of the fade: (FadeDistance/d)^2
// clamped to 1.0, so points within FadeDistance are not attenuated at all.
func FalloffFactor(dist float32) float32 {
	if dist < MinCameraDistance {
		dist = MinCameraDistance
	}
	ratio := FadeDistance / dist
	falloff := ratio * ratio
	if falloff > 1 {
		return 1
	}
	return falloff
}
