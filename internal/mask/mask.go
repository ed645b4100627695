package mask

import (
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/appshot-frames/internal/frames"
	"github.com/ironsheep/appshot-frames/internal/imaging"
	"github.com/ironsheep/appshot-frames/internal/outcome"
)

// Method names how a screenshot was masked.
type Method string

const (
	// MethodFile used the frame's mask asset.
	MethodFile Method = "file"
	// MethodRoundedRect used a generated rounded-rectangle mask.
	MethodRoundedRect Method = "rounded-rect"
	// MethodNone left the screenshot untouched.
	MethodNone Method = "none"
)

// Masked is a screenshot prepared for insertion into a frame.
type Masked struct {
	Image  image.Image
	Method Method
	// Radius is the corner radius in pixels for MethodRoundedRect.
	Radius float64
}

// Engine applies screen masks. It is safe for concurrent use.
type Engine struct {
	ops    imaging.Ops
	cache  *imaging.ImageCache
	tuning frames.Tuning
	logger *log.Logger
}

// NewEngine creates a mask engine. Mask assets are decoded through cache,
// which may be shared with other components; nil creates a private one. A nil
// logger uses log.Default().
func NewEngine(ops imaging.Ops, cache *imaging.ImageCache, tuning frames.Tuning, logger *log.Logger) *Engine {
	if cache == nil {
		cache = imaging.NewImageCacheWithOps(ops)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{ops: ops, cache: cache, tuning: tuning, logger: logger}
}

// ApplyScreenMask shapes a screenshot to the frame's screen opening.
//
// A frame with a MaskPath uses the red channel of that asset, resized to the
// screenshot, as the screenshot's alpha. If the mask cannot be loaded the
// result is Degraded and the programmatic path is used instead: iPhones get
// rounded corners whose radius is a model-dependent fraction of the
// screenshot width, every other device passes through unchanged.
func (e *Engine) ApplyScreenMask(shot image.Image, frame frames.DeviceFrame) outcome.Result[Masked] {
	var degraded error
	if frame.MaskPath != "" {
		masked, err := e.applyFileMask(shot, frame.MaskPath)
		if err == nil {
			return outcome.Ok(Masked{Image: masked, Method: MethodFile})
		}
		degraded = fmt.Errorf("%w: mask for %s: %v", outcome.ErrAssetMissing, frame.Name, err)
		e.logger.Printf("Warning: %v; using programmatic mask", degraded)
	}

	m := e.programmatic(shot, frame)
	if degraded != nil {
		return outcome.Degraded(m, degraded)
	}
	return outcome.Ok(m)
}

func (e *Engine) applyFileMask(shot image.Image, path string) (image.Image, error) {
	asset, err := e.cache.Load(path)
	if err != nil {
		return nil, err
	}
	b := shot.Bounds()
	resized := e.ops.Resize(asset, b.Dx(), b.Dy())
	masked, err := e.ops.ApplyAlpha(shot, e.ops.RedChannel(resized))
	if err != nil {
		return nil, err
	}
	return masked, nil
}

func (e *Engine) programmatic(shot image.Image, frame frames.DeviceFrame) Masked {
	if frame.DeviceType != frames.IPhone {
		return Masked{Image: shot, Method: MethodNone}
	}
	b := shot.Bounds()
	radius := e.tuning.CornerRadiusPercent(frame.DisplayName) * float64(b.Dx())
	if radius <= 0 {
		return Masked{Image: shot, Method: MethodNone}
	}
	masked, err := e.ops.ApplyAlpha(shot, imaging.RoundedRectMask(b.Dx(), b.Dy(), radius))
	if err != nil {
		// The generated mask always matches the screenshot size.
		e.logger.Printf("Warning: rounded mask for %s: %v", frame.Name, err)
		return Masked{Image: shot, Method: MethodNone}
	}
	return Masked{Image: masked, Method: MethodRoundedRect, Radius: radius}
}
