package imaging

import (
	"encoding/json"
	"testing"
)

func TestLinearGradient_Vertical(t *testing.T) {
	g := Gradient{Stops: []ColorStop{{"#000000", 0}, {"#FFFFFF", 1}}}
	img, err := LinearGradient(10, 100, g)
	if err != nil {
		t.Fatalf("LinearGradient failed: %v", err)
	}

	if top := img.NRGBAAt(5, 0); top.R > 5 {
		t.Errorf("top should be near black: %v", top)
	}
	if bottom := img.NRGBAAt(5, 99); bottom.R < 250 {
		t.Errorf("bottom should be near white: %v", bottom)
	}
	prev := -1
	for y := 0; y < 100; y++ {
		v := int(img.NRGBAAt(5, y).R)
		if v < prev {
			t.Fatalf("row %d is darker than the row above", y)
		}
		prev = v
	}
	// Rows are uniform for a vertical gradient.
	if img.NRGBAAt(0, 50) != img.NRGBAAt(9, 50) {
		t.Error("vertical gradient varies across a row")
	}
}

func TestLinearGradient_Horizontal(t *testing.T) {
	g := Gradient{Stops: []ColorStop{{"#FF0000", 0}, {"#0000FF", 1}}, Angle: Degrees(90)}
	img, err := LinearGradient(100, 10, g)
	if err != nil {
		t.Fatalf("LinearGradient failed: %v", err)
	}
	left, right := img.NRGBAAt(0, 5), img.NRGBAAt(99, 5)
	if left.R < 250 || left.B > 5 {
		t.Errorf("left should be red: %v", left)
	}
	if right.B < 250 || right.R > 5 {
		t.Errorf("right should be blue: %v", right)
	}
}

func TestLinearGradient_ZeroAnglePointsUp(t *testing.T) {
	stops := []ColorStop{{"#000000", 0}, {"#FFFFFF", 1}}
	up, err := LinearGradient(10, 100, Gradient{Stops: stops, Angle: Degrees(0)})
	if err != nil {
		t.Fatalf("LinearGradient failed: %v", err)
	}
	if top, bottom := up.NRGBAAt(5, 0), up.NRGBAAt(5, 99); top.R < 250 || bottom.R > 5 {
		t.Errorf("0deg should run black at the bottom to white at the top: top %v, bottom %v", top, bottom)
	}

	down, _ := LinearGradient(10, 100, Gradient{Stops: stops})
	if top := down.NRGBAAt(5, 0); top.R > 5 {
		t.Errorf("no angle should default to top-to-bottom: top %v", top)
	}
}

func TestGradient_AngleJSON(t *testing.T) {
	var g Gradient
	if err := json.Unmarshal([]byte(`{"stops":[{"color":"#000","position":0}],"angle":0}`), &g); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if g.Angle == nil || *g.Angle != 0 {
		t.Errorf("explicit 0 angle lost: %v", g.Angle)
	}
	g = Gradient{}
	if err := json.Unmarshal([]byte(`{"stops":[{"color":"#000","position":0}]}`), &g); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if g.Angle != nil {
		t.Errorf("missing angle should stay unset: %v", *g.Angle)
	}
}

func TestLinearGradient_StopsOutOfOrder(t *testing.T) {
	ordered := Gradient{Stops: []ColorStop{{"#000000", 0}, {"#808080", 0.5}, {"#FFFFFF", 1}}}
	shuffled := Gradient{Stops: []ColorStop{{"#FFFFFF", 1}, {"#000000", 0}, {"#808080", 0.5}}}
	a, _ := LinearGradient(4, 40, ordered)
	b, _ := LinearGradient(4, 40, shuffled)
	for y := 0; y < 40; y++ {
		if a.NRGBAAt(0, y) != b.NRGBAAt(0, y) {
			t.Fatalf("row %d differs", y)
		}
	}
}

func TestLinearGradient_SingleStop(t *testing.T) {
	img, err := LinearGradient(8, 8, Gradient{Stops: []ColorStop{{"#336699", 0.3}}})
	if err != nil {
		t.Fatalf("LinearGradient failed: %v", err)
	}
	for _, p := range [][2]int{{0, 0}, {7, 7}, {3, 4}} {
		if got := img.NRGBAAt(p[0], p[1]); got.R != 0x33 || got.G != 0x66 || got.B != 0x99 || got.A != 255 {
			t.Errorf("pixel %v: got %v", p, got)
		}
	}
}

func TestLinearGradient_Errors(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		g             Gradient
	}{
		{"no stops", 10, 10, Gradient{}},
		{"bad color", 10, 10, Gradient{Stops: []ColorStop{{"nope", 0}}}},
		{"zero size", 0, 10, DefaultGradient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LinearGradient(tt.width, tt.height, tt.g); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
