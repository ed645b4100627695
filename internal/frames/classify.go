package frames

// ClassifyOrientation returns Landscape iff width > height.
func ClassifyOrientation(width, height int) Orientation {
	if width > height {
		return Landscape
	}
	return Portrait
}

// Bucket thresholds for ClassifyDeviceType. Ratios are long side over short side.
const (
	watchMaxLongSide   = 600
	watchMaxRatio      = 1.35
	ipadMinRatio       = 1.30
	ipadMaxRatio       = 1.53
	ipadMinPixels      = 1_000_000
	macMinRatio        = 1.53
	macMaxRatio        = 1.70
	macMinPixels       = 1_000_000
	phoneMinRatio      = 1.70
	phoneMinPixels     = 500_000
	phoneMaxPixels     = 4_500_000
	largeDisplayPixels = 4_500_000
)

// ClassifyDeviceType guesses the device family from screenshot dimensions.
//
// It is a best-effort fallback for callers that do not know the device type:
//   - small and near-square: watch
//   - about 4:3 at tablet pixel counts: ipad
//   - landscape 16:10 or wider desktop sizes: mac
//   - tall ratios at phone pixel counts: iphone
//
// Unmatched inputs return DeviceUnknown and false.
func ClassifyDeviceType(width, height int) (DeviceType, bool) {
	if width <= 0 || height <= 0 {
		return DeviceUnknown, false
	}

	long, short := width, height
	if short > long {
		long, short = short, long
	}
	ratio := float64(long) / float64(short)
	pixels := width * height
	landscape := width > height

	switch {
	case long < watchMaxLongSide && ratio <= watchMaxRatio:
		return Watch, true
	case ratio >= ipadMinRatio && ratio < ipadMaxRatio && pixels >= ipadMinPixels:
		return IPad, true
	case landscape && ratio >= macMinRatio && ratio < macMaxRatio && pixels >= macMinPixels:
		return Mac, true
	case landscape && ratio >= phoneMinRatio && pixels > largeDisplayPixels:
		return Mac, true
	case ratio >= phoneMinRatio && pixels >= phoneMinPixels && pixels <= phoneMaxPixels:
		return IPhone, true
	}
	return DeviceUnknown, false
}
