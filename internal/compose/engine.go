package compose

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"path/filepath"

	"github.com/ironsheep/appshot-frames/internal/caption"
	"github.com/ironsheep/appshot-frames/internal/frames"
	"github.com/ironsheep/appshot-frames/internal/imaging"
	"github.com/ironsheep/appshot-frames/internal/mask"
	"github.com/ironsheep/appshot-frames/internal/outcome"
)

// flattenColor is drawn under any pixel still transparent at the end.
var flattenColor = color.NRGBA{A: 255}

// Options configures an Engine. Zero fields get working defaults.
type Options struct {
	Ops      imaging.Ops
	Registry *frames.Registry
	Tuning   *frames.Tuning
	Logger   *log.Logger
	// Cache decodes bezel and mask assets. Share it with frames.Load to
	// decode manifest assets once.
	Cache *imaging.ImageCache
	// AssetsDir resolves relative frame asset paths.
	AssetsDir string
	Renderer  *caption.Renderer
	Measurer  caption.Measurer
}

// Engine composes marketing images. Its collaborators are read-only after
// construction, so one Engine serves concurrent Compose calls.
type Engine struct {
	ops       imaging.Ops
	registry  *frames.Registry
	matcher   *frames.Matcher
	masks     *mask.Engine
	layouter  *caption.Layouter
	renderer  *caption.Renderer
	assets    *imaging.ImageCache
	assetsDir string
	tuning    frames.Tuning
	logger    *log.Logger
}

// NewEngine wires an Engine from opts.
func NewEngine(opts Options) *Engine {
	ops := opts.Ops
	if ops == nil {
		ops = imaging.NewRaster()
	}
	registry := opts.Registry
	if registry == nil {
		registry = frames.DefaultRegistry()
	}
	tuning := frames.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	cache := opts.Cache
	if cache == nil {
		cache = imaging.NewImageCacheWithOps(ops)
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = caption.NewRenderer()
	}
	return &Engine{
		ops:       ops,
		registry:  registry,
		matcher:   frames.NewMatcher(registry, tuning, logger),
		masks:     mask.NewEngine(ops, cache, tuning, logger),
		layouter:  caption.NewLayouter(tuning, opts.Measurer),
		renderer:  renderer,
		assets:    cache,
		assetsDir: opts.AssetsDir,
		tuning:    tuning,
		logger:    logger,
	}
}

// Registry returns the frame registry the engine matches against.
func (e *Engine) Registry() *frames.Registry { return e.registry }

// composition carries the state of one Compose call.
type composition struct {
	req      Request
	out      *Output
	reasons  []error
	shot     image.Image
	frame    *frames.DeviceFrame
	bezel    image.Image
	style    caption.Style
	captionH int
}

// warn records a non-fatal problem.
func (e *Engine) warn(c *composition, err error) {
	e.logger.Printf("Warning: %s: %v", c.req.ScreenshotID, err)
	c.out.Warnings = append(c.out.Warnings, err.Error())
	c.reasons = append(c.reasons, err)
}

// Compose renders one marketing image.
//
// Layers are added bottom-up: background, the framed (or unframed) device,
// then the caption, and the result is flattened to an opaque PNG of exactly
// OutputWidth x OutputHeight. A missing bezel, unusable mask, unmatched
// device or caption drawing failure degrades the result and is reported in
// Output.Warnings. Only a screenshot that cannot be decoded, an invalid
// output size or an encoding error is Fatal, with a *outcome.RenderError
// reason.
func (e *Engine) Compose(req Request) outcome.Result[*Output] {
	W, H := req.OutputWidth, req.OutputHeight
	c := &composition{
		req: req,
		out: &Output{Width: W, Height: H, DeviceType: req.DeviceType},
	}
	fatal := func(err error) outcome.Result[*Output] {
		rerr := &outcome.RenderError{Device: string(c.out.DeviceType), Screenshot: req.ScreenshotID, Err: err}
		e.logger.Printf("Error: %v", rerr)
		return outcome.Fatal[*Output](rerr)
	}

	if W <= 0 || H <= 0 {
		return fatal(fmt.Errorf("invalid output size %dx%d", W, H))
	}
	shot, err := e.ops.Decode(req.Screenshot)
	if err != nil {
		return fatal(fmt.Errorf("screenshot: %w", err))
	}
	c.shot = shot
	c.style = req.Overrides.applyTo(req.Style).WithDefaults()

	e.resolveFrame(c)

	canvas := e.background(c)
	layout := e.layoutCaption(c)

	var device *image.NRGBA
	if c.frame != nil {
		device = e.framedDevice(c)
	} else {
		device = e.unframedDevice(c)
	}
	canvas = e.ops.Overlay(canvas, device, image.Pt(c.out.Device.X, c.out.Device.Y))

	if len(layout.Lines) > 0 {
		layer, err := e.renderer.Render(layout, W, c.style)
		if err != nil {
			e.warn(c, fmt.Errorf("caption not drawn: %w", err))
		} else {
			canvas = e.ops.Overlay(canvas, layer, image.Point{})
		}
	}

	png, err := e.ops.Encode(e.ops.Flatten(canvas, flattenColor))
	if err != nil {
		return fatal(err)
	}
	c.out.PNG = png

	if len(c.reasons) > 0 {
		c.out.Status = outcome.StatusDegraded
		return outcome.Degraded(c.out, errors.Join(c.reasons...))
	}
	c.out.Status = outcome.StatusOK
	return outcome.Ok(c.out)
}

// resolveFrame decides the bezel for the composition, or leaves c.frame nil
// for the unframed path.
func (e *Engine) resolveFrame(c *composition) {
	b := c.shot.Bounds()
	req := c.req

	dt := req.DeviceType
	if req.FrameMeta != nil && req.FrameMeta.DeviceType != frames.DeviceUnknown {
		dt = req.FrameMeta.DeviceType
	}
	if dt == frames.DeviceUnknown {
		dt, _ = frames.ClassifyDeviceType(b.Dx(), b.Dy())
	}
	c.out.DeviceType = dt

	meta := req.FrameMeta
	if meta == nil {
		if !req.AutoFrame {
			return
		}
		match, err := e.matcher.Match(b.Dx(), b.Dy(), dt, req.PreferredFrame)
		if err != nil {
			e.warn(c, fmt.Errorf("no frame: %w", err))
			return
		}
		c.out.Warnings = append(c.out.Warnings, match.Warnings...)
		f := match.Frame
		meta = &f
	}

	bezel, err := e.loadBezel(req.Frame, *meta)
	if err != nil {
		e.warn(c, fmt.Errorf("%w: frame %s: %v; composing unframed", outcome.ErrAssetMissing, meta.Name, err))
		return
	}
	if bb := bezel.Bounds(); bb.Dx() != meta.FrameWidth || bb.Dy() != meta.FrameHeight {
		e.warn(c, fmt.Errorf("frame %s artwork is %dx%d, metadata says %dx%d; resizing",
			meta.Name, bb.Dx(), bb.Dy(), meta.FrameWidth, meta.FrameHeight))
		bezel = e.ops.Resize(bezel, meta.FrameWidth, meta.FrameHeight)
	}
	c.frame = meta
	c.bezel = bezel
	c.out.Frame = meta
}

func (e *Engine) loadBezel(data []byte, meta frames.DeviceFrame) (image.Image, error) {
	if len(data) > 0 {
		return e.ops.Decode(data)
	}
	if meta.AssetPath == "" {
		return nil, fmt.Errorf("no artwork supplied")
	}
	path := meta.AssetPath
	if !filepath.IsAbs(path) && e.assetsDir != "" {
		path = filepath.Join(e.assetsDir, path)
	}
	return e.assets.Load(path)
}

// background renders the bottom layer.
func (e *Engine) background(c *composition) *image.NRGBA {
	W, H := c.req.OutputWidth, c.req.OutputHeight
	bg := c.req.Background

	base := color.NRGBA{A: 255}
	if bg.Color != "" {
		parsed, err := imaging.ParseColor(bg.Color)
		if err != nil {
			e.warn(c, fmt.Errorf("background color: %w", err))
			bg.Color = ""
		} else {
			base = parsed
		}
	}

	if len(bg.Image) > 0 {
		img, err := e.ops.Decode(bg.Image)
		if err == nil {
			return imaging.FitBackground(e.ops, img, W, H, bg.Fit, base)
		}
		e.warn(c, fmt.Errorf("background image: %w", err))
	}
	if bg.Gradient != nil {
		img, err := imaging.LinearGradient(W, H, *bg.Gradient)
		if err == nil {
			return img
		}
		e.warn(c, fmt.Errorf("background gradient: %w", err))
	}
	if bg.Color != "" {
		return e.ops.New(W, H, base)
	}
	img, err := imaging.LinearGradient(W, H, imaging.DefaultGradient)
	if err != nil {
		// DefaultGradient is valid; only a broken build gets here.
		return e.ops.New(W, H, base)
	}
	return img
}

// deviceSize is the size of the device layer before scaling.
func (c *composition) deviceSize() (int, int) {
	if c.frame == nil {
		b := c.shot.Bounds()
		return b.Dx(), b.Dy()
	}
	h := c.frame.FrameHeight
	if c.req.Overrides.PartialFrame {
		h = PartialCropHeight(h, c.frameOffset())
	}
	return c.frame.FrameWidth, h
}

func (c *composition) frameOffset() float64 {
	if c.req.Overrides.FrameOffset > 0 {
		return c.req.Overrides.FrameOffset
	}
	return DefaultFrameOffset
}

// scale is the final device scale for the space left by the caption.
func (e *Engine) scale(c *composition, availableHeight int) float64 {
	dw, dh := c.deviceSize()
	s := FitScale(c.req.OutputWidth, availableHeight, dw, dh)
	if c.frame == nil {
		return math.Min(s, 1)
	}
	if c.req.Overrides.FrameScale > 0 {
		return s * c.req.Overrides.FrameScale
	}
	return s * e.tuning.ScaleMultiplier(c.out.DeviceType)
}

func (e *Engine) layoutCaption(c *composition) caption.Layout {
	W, H := c.req.OutputWidth, c.req.OutputHeight
	if c.req.Caption == "" {
		return caption.Layout{}
	}

	pos := c.req.Overrides.FramePosition

	// The device is sized for the space left by the caption's own padded
	// height, so bounding the caption by the device never eats its padding.
	reserve := 0
	if c.style.Position != caption.PositionOverlay {
		reserve = e.layouter.Layout(c.req.Caption, W, H, c.style, 0, 0, pos.String()).Height
	}
	_, dh := c.deviceSize()
	deviceH := int(math.Round(float64(dh) * e.scale(c, H-reserve)))
	deviceTop := 0
	if pos.Kind == PositionBottom {
		deviceTop = H - deviceH
	}

	layout := e.layouter.Layout(c.req.Caption, W, H, c.style, deviceTop, deviceH, pos.String())
	if c.style.Position != caption.PositionOverlay {
		c.captionH = layout.Height
	}
	c.out.Caption = layout
	c.out.CaptionTop = c.captionH
	return layout
}

func (e *Engine) framedDevice(c *composition) *image.NRGBA {
	f := *c.frame
	masked := e.masks.ApplyScreenMask(c.shot, f)
	if masked.IsDegraded() {
		e.warn(c, masked.Reason)
	}
	c.out.Mask = masked.Value.Method

	sr := f.ScreenRect
	layer := e.ops.New(f.FrameWidth, f.FrameHeight, color.NRGBA{})
	layer = e.ops.Insert(layer, masked.Value.Image, image.Rect(sr.X, sr.Y, sr.X+sr.Width, sr.Y+sr.Height))
	layer = e.ops.Overlay(layer, c.bezel, image.Point{})

	dw, dh := c.deviceSize()
	if dh != f.FrameHeight {
		layer = e.ops.Crop(layer, image.Rect(0, 0, dw, dh))
	}
	return e.place(c, layer, dw, dh, c.out.DeviceType == frames.Watch)
}

func (e *Engine) unframedDevice(c *composition) *image.NRGBA {
	b := c.shot.Bounds()
	return e.place(c, c.shot, b.Dx(), b.Dy(), false)
}

// place scales the device layer and records where it goes.
func (e *Engine) place(c *composition, layer image.Image, dw, dh int, watchBias bool) *image.NRGBA {
	W, H := c.req.OutputWidth, c.req.OutputHeight
	s := e.scale(c, H-c.captionH)
	sw := max(1, int(math.Round(float64(dw)*s)))
	sh := max(1, int(math.Round(float64(dh)*s)))
	scaled := e.ops.Resize(layer, sw, sh)

	c.out.Device = Placement{
		X:      (W - sw) / 2,
		Y:      DeviceY(c.req.Overrides.FramePosition, H, c.captionH, sh, watchBias, e.tuning.WatchVisibleFraction),
		Width:  sw,
		Height: sh,
		Scale:  s,
	}
	return scaled
}
