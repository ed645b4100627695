package compose

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ironsheep/appshot-frames/internal/outcome"
)

func TestComposeBatch_OrderAndIsolation(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	var reqs []Request
	for i := 0; i < 5; i++ {
		req := framedRequest(t)
		req.ScreenshotID = fmt.Sprintf("shot-%d", i)
		reqs = append(reqs, req)
	}
	reqs[2].Screenshot = []byte("corrupt")

	results := e.ComposeBatch(context.Background(), reqs, 2)
	if len(results) != len(reqs) {
		t.Fatalf("got %d results", len(results))
	}
	for i, res := range results {
		if i == 2 {
			var rerr *outcome.RenderError
			if !res.IsFatal() || !errors.As(res.Reason, &rerr) || rerr.Screenshot != "shot-2" {
				t.Errorf("result 2: got %s (%v)", res.Status, res.Reason)
			}
			continue
		}
		if !res.IsOK() {
			t.Errorf("result %d: got %s (%v)", i, res.Status, res.Reason)
		}
	}
}

func TestComposeBatch_MatchesSequential(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	reqs := []Request{framedRequest(t), framedRequest(t), framedRequest(t)}
	reqs[1].Caption = "Track every rep"
	reqs[2].Overrides.PartialFrame = true

	results := e.ComposeBatch(context.Background(), reqs, 0)
	for i, req := range reqs {
		want := e.Compose(req)
		if string(results[i].Value.PNG) != string(want.Value.PNG) {
			t.Errorf("result %d differs from a sequential render", i)
		}
	}
}

func TestComposeBatch_Cancelled(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := e.ComposeBatch(ctx, []Request{framedRequest(t), framedRequest(t)}, 1)
	for i, res := range results {
		if !res.IsFatal() || !errors.Is(res.Reason, context.Canceled) {
			t.Errorf("result %d: got %s (%v)", i, res.Status, res.Reason)
		}
	}
}
