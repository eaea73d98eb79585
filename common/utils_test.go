package common

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSliceToBytes(t *testing.T) {
	if got := SliceToBytes([]float32{}); got != nil {
		t.Errorf("empty slice: got %v, want nil", got)
	}

	data := []float32{1.5, -2.25}
	buf := SliceToBytes(data)
	if len(buf) != 8 {
		t.Fatalf("len = %d, want 8", len(buf))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])); got != 1.5 {
		t.Errorf("element 0 = %v, want 1.5", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])); got != -2.25 {
		t.Errorf("element 1 = %v, want -2.25", got)
	}

	// The view aliases the source slice.
	data[0] = 3
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])); got != 3 {
		t.Errorf("after write: element 0 = %v, want 3", got)
	}
}
