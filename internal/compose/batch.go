package compose

import (
	"context"
	"runtime"
	"sync"

	"github.com/ironsheep/appshot-frames/internal/outcome"
)

// ComposeBatch renders independent requests concurrently with at most
// workers compositions in flight (runtime.NumCPU() when workers <= 0).
//
// Results are in request order. A failed composition is recorded as its own
// Fatal result and never stops the others. When ctx is cancelled, requests
// not yet started are reported as Fatal with the context error; compositions
// already running finish.
func (e *Engine) ComposeBatch(ctx context.Context, reqs []Request, workers int) []outcome.Result[*Output] {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]outcome.Result[*Output], len(reqs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i := range reqs {
		select {
		case <-ctx.Done():
			results[i] = cancelled(ctx, reqs[i])
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			if ctx.Err() != nil {
				results[i] = cancelled(ctx, reqs[i])
				return
			}
			results[i] = e.Compose(reqs[i])
		}(i)
	}
	wg.Wait()
	return results
}

func cancelled(ctx context.Context, req Request) outcome.Result[*Output] {
	return outcome.Fatal[*Output](&outcome.RenderError{
		Device:     string(req.DeviceType),
		Screenshot: req.ScreenshotID,
		Err:        ctx.Err(),
	})
}
