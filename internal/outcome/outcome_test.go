package outcome

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestResultConstructors(t *testing.T) {
	ok := Ok(42)
	if !ok.IsOK() || ok.Value != 42 || ok.Reason != nil {
		t.Errorf("Ok: got %+v", ok)
	}

	deg := Degraded("fallback", ErrAssetMissing)
	if !deg.IsDegraded() || deg.Value != "fallback" {
		t.Errorf("Degraded: got %+v", deg)
	}
	if !errors.Is(deg.Reason, ErrAssetMissing) {
		t.Errorf("Degraded reason: got %v", deg.Reason)
	}

	fatal := Fatal[int](ErrRenderFailure)
	if !fatal.IsFatal() || fatal.Value != 0 {
		t.Errorf("Fatal: got %+v", fatal)
	}
}

func TestResult_Unwrap(t *testing.T) {
	if _, err := Degraded(1, ErrAssetMissing).Unwrap(); err != nil {
		t.Errorf("degraded results should unwrap without error, got %v", err)
	}
	if _, err := Fatal[int](ErrRenderFailure).Unwrap(); !errors.Is(err, ErrRenderFailure) {
		t.Errorf("fatal results should unwrap to their reason, got %v", err)
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusOK, "ok"},
		{StatusDegraded, "degraded"},
		{StatusFatal, "fatal"},
		{Status(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String(): got %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestRenderError(t *testing.T) {
	err := &RenderError{Device: "iphone", Screenshot: "home.png", Err: io.ErrUnexpectedEOF}

	if !errors.Is(err, ErrRenderFailure) {
		t.Error("RenderError should match ErrRenderFailure")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("RenderError should match its cause")
	}
	msg := err.Error()
	if !strings.Contains(msg, "home.png") || !strings.Contains(msg, "iphone") {
		t.Errorf("message lacks context: %s", msg)
	}
}

func TestStatus_Text(t *testing.T) {
	for _, s := range []Status{StatusOK, StatusDegraded, StatusFatal} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", s, err)
		}
		var back Status
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Errorf("UnmarshalText(%s): got %d, %v", text, back, err)
		}
	}
	var s Status
	if err := s.UnmarshalText([]byte("partial")); err == nil {
		t.Error("unknown status names should be rejected")
	}
}
