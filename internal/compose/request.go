package compose

import (
	"github.com/ironsheep/appshot-frames/internal/caption"
	"github.com/ironsheep/appshot-frames/internal/frames"
	"github.com/ironsheep/appshot-frames/internal/imaging"
	"github.com/ironsheep/appshot-frames/internal/mask"
	"github.com/ironsheep/appshot-frames/internal/outcome"
)

// Background selects the bottom layer of the canvas. The first set field
// wins: Image, then Gradient, then Color, then imaging.DefaultGradient.
type Background struct {
	// Image is an encoded background picture.
	Image []byte `json:"-"`
	// Fit maps Image onto the canvas; empty means cover.
	Fit      imaging.FitMode   `json:"fit,omitempty"`
	Gradient *imaging.Gradient `json:"gradient,omitempty"`
	Color    string            `json:"color,omitempty"`
}

// Overrides are per-device settings layered over the request defaults.
type Overrides struct {
	FramePosition Position `json:"frame_position"`
	// FrameScale replaces the device-type scale multiplier when positive.
	FrameScale float64 `json:"frame_scale,omitempty"`
	// PartialFrame keeps only the top part of the device.
	PartialFrame bool `json:"partial_frame,omitempty"`
	// FrameOffset is the percentage of the frame height cut from the
	// bottom by PartialFrame. Zero uses DefaultFrameOffset.
	FrameOffset float64 `json:"frame_offset,omitempty"`

	CaptionPosition string             `json:"caption_position,omitempty"`
	CaptionSize     float64            `json:"caption_size,omitempty"`
	CaptionFont     string             `json:"caption_font,omitempty"`
	CaptionBox      *caption.BoxConfig `json:"caption_box,omitempty"`
}

// applyTo layers the caption overrides over a style.
func (o Overrides) applyTo(s caption.Style) caption.Style {
	if o.CaptionPosition != "" {
		s.Position = o.CaptionPosition
	}
	if o.CaptionSize > 0 {
		s.FontSize = o.CaptionSize
	}
	if o.CaptionFont != "" {
		s.Font = o.CaptionFont
	}
	if o.CaptionBox != nil {
		s.Box = *o.CaptionBox
	}
	return s
}

// Request is everything needed to render one marketing image.
type Request struct {
	// Screenshot is the encoded app screenshot. Required.
	Screenshot []byte
	// ScreenshotID identifies the screenshot in errors and logs.
	ScreenshotID string

	// FrameMeta describes the bezel to use. With Frame empty the bezel is
	// loaded from FrameMeta.AssetPath.
	FrameMeta *frames.DeviceFrame
	// Frame is the encoded bezel artwork for FrameMeta.
	Frame []byte

	// DeviceType is the screenshot's device. Unknown types are classified
	// from the screenshot size.
	DeviceType frames.DeviceType
	// AutoFrame matches a frame from the registry when FrameMeta is nil.
	AutoFrame bool
	// PreferredFrame names a registry frame to try first with AutoFrame.
	PreferredFrame string

	Caption    string
	Style      caption.Style
	Background Background
	Overrides  Overrides

	OutputWidth  int
	OutputHeight int
}

// Output is a rendered image and a description of how it was built.
type Output struct {
	PNG    []byte `json:"-"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	DeviceType frames.DeviceType `json:"device_type"`
	// Frame is the bezel used, nil for an unframed composition.
	Frame  *frames.DeviceFrame `json:"frame,omitempty"`
	Mask   mask.Method         `json:"mask,omitempty"`
	Device Placement           `json:"device"`
	// CaptionTop is the vertical space reserved by the caption.
	CaptionTop int            `json:"caption_top"`
	Caption    caption.Layout `json:"caption"`

	Status   outcome.Status `json:"status"`
	Warnings []string       `json:"warnings,omitempty"`
}
