package grid

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"
)

func TestGridShaderSource(t *testing.T) {
	required := []string{
		"fn vs_main",
		"fn fs_main",
		"@group(0) @binding(0) var<uniform> camera",
		"@group(1) @binding(0) var<storage, read> models",
		"@group(2) @binding(0) var<uniform> grid",
		"@location(3) instance_transform",
		"const FADE_DISTANCE: f32 = 50.0;",
	}
	for _, want := range required {
		if !strings.Contains(GridShaderSource, want) {
			t.Errorf("shader source missing %q", want)
		}
	}
}

func TestGPUStructSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"GPUGridVertex", (&GPUGridVertex{}).Size(), 40},
		{"GPUGridInstance", (&GPUGridInstance{}).Size(), 16},
		{"GPUGridUniform", (&GPUGridUniform{}).Size(), 16},
		{"GPUModelData", (&GPUModelData{}).Size(), 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.size != tt.want {
				t.Errorf("Size() = %d, want %d", tt.size, tt.want)
			}
		})
	}
}

func TestGPUGridVertexMarshal(t *testing.T) {
	v := GPUGridVertex{
		Position: [3]float32{1, 2, 3},
		Normal:   [3]float32{0, 1, 0},
		Color:    [4]float32{0.1, 0.2, 0.3, 0.4},
	}
	buf := v.Marshal()
	if len(buf) != v.Size() {
		t.Fatalf("len = %d, want %d", len(buf), v.Size())
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])); got != 1 {
		t.Errorf("position x = %v, want 1", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20])); got != 1 {
		t.Errorf("normal y = %v, want 1", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[36:40])); got != 0.4 {
		t.Errorf("color a = %v, want 0.4", got)
	}
}

func TestGPUGridInstanceMarshal(t *testing.T) {
	inst := GPUGridInstance{
		Translation: [3]float32{-145, 0, 145},
		Scale:       10,
	}
	buf := inst.Marshal()
	if len(buf) != inst.Size() {
		t.Fatalf("len = %d, want %d", len(buf), inst.Size())
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])); got != -145 {
		t.Errorf("translation x = %v, want -145", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[12:16])); got != 10 {
		t.Errorf("scale = %v, want 10", got)
	}
}

func TestGPUGridUniformMarshal(t *testing.T) {
	u := GPUGridUniform{ModelIndex: 7}
	buf := u.Marshal()
	if len(buf) != u.Size() {
		t.Fatalf("len = %d, want %d", len(buf), u.Size())
	}
	if got := binary.LittleEndian.Uint32(buf[0:4]); got != 7 {
		t.Errorf("model index = %d, want 7", got)
	}
	for i := 4; i < 16; i++ {
		if buf[i] != 0 {
			t.Fatalf("padding byte %d = %d, want 0", i, buf[i])
		}
	}
}

func TestGPUModelDataMarshal(t *testing.T) {
	var m GPUModelData
	for i := range m.Model {
		m.Model[i] = float32(i)
	}
	buf := m.Marshal()
	if len(buf) != m.Size() {
		t.Fatalf("len = %d, want %d", len(buf), m.Size())
	}
	for i := 0; i < 16; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4 : (i+1)*4]))
		if got != float32(i) {
			t.Fatalf("element %d = %v, want %v", i, got, float32(i))
		}
	}
}
