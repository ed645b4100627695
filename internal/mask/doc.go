// Package mask shapes a screenshot to the physical screen of a device frame
// before it is inserted into the bezel.
//
// Two sources of shape are supported. A frame may carry a mask asset whose
// red channel becomes the screenshot's alpha; the asset is stretched to the
// screenshot size, so one mask serves every resolution of a device. Without
// a usable mask asset, iPhone screenshots get a generated rounded-rectangle
// mask:
//
//	16/15/14 Pro family   12% of the screenshot width
//	SE and 8 family       square corners (no mask)
//	other iPhones         10%
//
// The percentages live in frames.Tuning. iPad, Mac and Watch screenshots are
// left unchanged; their bezel art covers the screen corners.
//
// Mask failures never abort a composition: the result is reported as
// Degraded and the programmatic path is used.
package mask
