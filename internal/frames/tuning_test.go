package frames

import "testing"

func TestTuning_CornerRadiusPercent(t *testing.T) {
	tuning := DefaultTuning()
	tests := []struct {
		display string
		want    float64
	}{
		{"iPhone 16 Pro Max", 0.12},
		{"iPhone 15 Pro", 0.12},
		{"iPhone 14 Pro Max", 0.12},
		{"iPhone SE", 0},
		{"iPhone SE (3rd generation)", 0},
		{"iPhone 8 Plus", 0},
		{"iPhone 15", 0.10},
		{"iPhone 14 Plus", 0.10},
		{"iPhone 11 Pro Max", 0.10},
		{"iPhone 18", 0.10},
	}
	for _, tt := range tests {
		if got := tuning.CornerRadiusPercent(tt.display); got != tt.want {
			t.Errorf("CornerRadiusPercent(%q): got %v, want %v", tt.display, got, tt.want)
		}
	}
}

func TestTuning_ScaleMultiplier(t *testing.T) {
	tuning := DefaultTuning()
	tests := []struct {
		dt   DeviceType
		want float64
	}{
		{IPhone, 0.9},
		{Mac, 0.95},
		{Watch, 1.3},
		{IPad, 1.0},
		{DeviceUnknown, 1.0},
	}
	for _, tt := range tests {
		if got := tuning.ScaleMultiplier(tt.dt); got != tt.want {
			t.Errorf("ScaleMultiplier(%q): got %v, want %v", tt.dt, got, tt.want)
		}
	}
}

func TestTuning_IsolatedCopies(t *testing.T) {
	a := DefaultTuning()
	a.ScaleMultipliers[IPhone] = 2
	if b := DefaultTuning(); b.ScaleMultiplier(IPhone) != 0.9 {
		t.Error("DefaultTuning must return an independent table")
	}
}

func TestTuning_IsWatchCanvas(t *testing.T) {
	tuning := DefaultTuning()
	if !tuning.IsWatchCanvas(368) {
		t.Error("368px canvas should be a watch canvas")
	}
	if tuning.IsWatchCanvas(500) {
		t.Error("500px canvas should not be a watch canvas")
	}
}
