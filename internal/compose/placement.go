package compose

import "math"

// DefaultFrameOffset is the share of the frame height cut from the bottom
// when a partial frame is requested without an offset.
const DefaultFrameOffset = 25.0

// Placement is where the device layer landed on the canvas.
type Placement struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"`
}

// PartialCropHeight is the frame height kept by a partial-frame crop that
// removes offsetPercent of the height from the bottom.
func PartialCropHeight(frameHeight int, offsetPercent float64) int {
	keep := (100 - clampPercent(offsetPercent)) / 100
	return max(1, int(math.Round(float64(frameHeight)*keep)))
}

// FitScale is the factor that fits a device into the canvas width and the
// height left below the caption, before any device multiplier.
func FitScale(canvasWidth, availableHeight, deviceWidth, deviceHeight int) float64 {
	if deviceWidth <= 0 || deviceHeight <= 0 {
		return 0
	}
	return math.Min(float64(canvasWidth)/float64(deviceWidth), float64(availableHeight)/float64(deviceHeight))
}

// DeviceY is the top of a device of deviceHeight pixels on a canvas whose
// caption ends at captionBottom.
//
// "top" sits flush under the caption, "bottom" flush with the canvas bottom,
// a percentage interpolates between the two and "center" (the default)
// centers in the remaining space. With the default position, watchBias
// shows only the visibleFraction top part of the device, pushing the rest
// below the canvas. The result is clamped so the device never starts above
// the caption, nor lower than needed to show its visible part.
func DeviceY(pos Position, canvasHeight, captionBottom, deviceHeight int, watchBias bool, visibleFraction float64) int {
	free := canvasHeight - captionBottom - deviceHeight
	visible := deviceHeight

	var y int
	switch {
	case pos.IsDefault() && watchBias:
		visible = int(math.Round(float64(deviceHeight) * visibleFraction))
		y = canvasHeight - visible
	case pos.Kind == PositionTop:
		y = captionBottom
	case pos.Kind == PositionBottom:
		y = canvasHeight - deviceHeight
	case pos.Kind == PositionPercent:
		y = captionBottom + int(math.Round(float64(free)*pos.Percent/100))
	default:
		y = captionBottom + free/2
	}

	lo := captionBottom
	hi := max(lo, canvasHeight-visible)
	return max(lo, min(y, hi))
}
