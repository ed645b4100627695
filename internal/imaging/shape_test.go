package imaging

import "testing"

func TestRoundedRectMask(t *testing.T) {
	m := RoundedRectMask(100, 50, 10)
	if b := m.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("size: got %v", b)
	}

	transparent := [][2]int{{0, 0}, {99, 0}, {0, 49}, {99, 49}, {1, 1}}
	for _, p := range transparent {
		if v := m.GrayAt(p[0], p[1]).Y; v != 0 {
			t.Errorf("corner pixel %v: got %d, want 0", p, v)
		}
	}
	opaque := [][2]int{{50, 25}, {50, 0}, {0, 25}, {99, 25}, {10, 10}, {89, 39}}
	for _, p := range opaque {
		if v := m.GrayAt(p[0], p[1]).Y; v != 255 {
			t.Errorf("inner pixel %v: got %d, want 255", p, v)
		}
	}

	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x++ {
			v := m.GrayAt(x, y).Y
			if v != m.GrayAt(99-x, y).Y || v != m.GrayAt(x, 49-y).Y {
				t.Fatalf("mask not symmetric at (%d,%d)", x, y)
			}
		}
	}
}

func TestRoundedRectMask_Antialiased(t *testing.T) {
	m := RoundedRectMask(200, 200, 40)
	partial := 0
	for x := 0; x < 40; x++ {
		if v := m.GrayAt(x, 5).Y; v > 0 && v < 255 {
			partial++
		}
	}
	if partial == 0 {
		t.Error("expected antialiased pixels along the corner arc")
	}
}

func TestRoundedRectMask_ZeroRadius(t *testing.T) {
	m := RoundedRectMask(20, 30, 0)
	for _, v := range m.Pix {
		if v != 255 {
			t.Fatal("zero radius mask must be fully opaque")
		}
	}
}

func TestRoundedRectMask_RadiusClamped(t *testing.T) {
	m := RoundedRectMask(20, 10, 100)
	if v := m.GrayAt(10, 5).Y; v != 255 {
		t.Errorf("center: got %d", v)
	}
	if v := m.GrayAt(0, 0).Y; v != 0 {
		t.Errorf("corner: got %d", v)
	}
}
