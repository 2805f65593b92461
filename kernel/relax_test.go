package kernel

import "testing"

func TestRelaxCondUpdate(t *testing.T) {
	r := Relax[uint32, uint32]{
		PackFn:   func(v uint32, _ float64) uint32 { return v },
		UnpackFn: func(m uint32) uint32 { return m },
	}

	if !r.Cond(5, 3) {
		t.Errorf("Cond(5, 3) = false, want true (3 < 5)")
	}
	if r.Cond(3, 5) {
		t.Errorf("Cond(3, 5) = true, want false (5 is not < 3)")
	}
	if r.Cond(5, 5) {
		t.Errorf("Cond(5, 5) = true, want false (not strictly smaller)")
	}
	if got := r.Update(5, 3); got != 3 {
		t.Errorf("Update(5, 3) = %d, want 3", got)
	}
}

func TestRelaxPackUnpackDelegates(t *testing.T) {
	r := Relax[float64, float64]{
		PackFn:   func(v float64, weight float64) float64 { return v + weight },
		UnpackFn: func(m float64) float64 { return m * 2 },
	}

	if got := r.Pack(1.0, 2.5); got != 3.5 {
		t.Errorf("Pack(1.0, 2.5) = %v, want 3.5", got)
	}
	if got := r.Unpack(4.0); got != 8.0 {
		t.Errorf("Unpack(4.0) = %v, want 8.0", got)
	}
}
