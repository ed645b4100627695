package frames

// bundledModel is one row of the built-in bezel table. Screen sizes are
// given in portrait for handheld devices; frames are generated for every
// listed orientation by swapping axes.
type bundledModel struct {
	key          string
	display      string
	deviceType   DeviceType
	screenW      int
	screenH      int
	bezelX       int
	bezelY       int
	orientations []Orientation
}

var (
	both          = []Orientation{Portrait, Landscape}
	portraitOnly  = []Orientation{Portrait}
	landscapeOnly = []Orientation{Landscape}
)

var bundledModels = []bundledModel{
	{"iphone-16-pro-max", "iPhone 16 Pro Max", IPhone, 1320, 2868, 72, 69, both},
	{"iphone-16-pro", "iPhone 16 Pro", IPhone, 1206, 2622, 72, 69, both},
	{"iphone-15-pro-max", "iPhone 15 Pro Max", IPhone, 1290, 2796, 75, 72, both},
	{"iphone-15-pro", "iPhone 15 Pro", IPhone, 1179, 2556, 75, 72, both},
	{"iphone-15", "iPhone 15", IPhone, 1179, 2556, 90, 87, both},
	{"iphone-14-plus", "iPhone 14 Plus", IPhone, 1284, 2778, 96, 90, both},
	{"iphone-14", "iPhone 14", IPhone, 1170, 2532, 96, 90, both},
	{"iphone-11-pro-max", "iPhone 11 Pro Max", IPhone, 1242, 2688, 100, 96, both},
	{"iphone-8-plus", "iPhone 8 Plus", IPhone, 1242, 2208, 90, 300, both},
	{"iphone-se", "iPhone SE", IPhone, 750, 1334, 60, 230, both},
	{"ipad-pro-13-m4", `iPad Pro 13" (M4)`, IPad, 2064, 2752, 100, 100, both},
	{"ipad-pro-12-9-6th-gen", `iPad Pro 12.9" (6th generation)`, IPad, 2048, 2732, 110, 110, both},
	{"ipad-pro-11-m4", `iPad Pro 11" (M4)`, IPad, 1668, 2420, 100, 100, both},
	{"ipad-10th-gen", "iPad (10th generation)", IPad, 1640, 2360, 120, 120, both},
	{"ipad-mini", "iPad mini", IPad, 1488, 2266, 120, 150, both},
	{"macbook-air-13", "MacBook Air 13\"", Mac, 2560, 1664, 330, 120, landscapeOnly},
	{"macbook-pro-14", "MacBook Pro 14\"", Mac, 3024, 1964, 380, 130, landscapeOnly},
	{"macbook-pro-16", "MacBook Pro 16\"", Mac, 3456, 2234, 420, 140, landscapeOnly},
	{"imac-24", "iMac 24\"", Mac, 4480, 2520, 160, 160, landscapeOnly},
	{"watch-ultra-2", "Apple Watch Ultra 2", Watch, 410, 502, 60, 150, portraitOnly},
	{"watch-series-10-46", "Apple Watch Series 10 (46mm)", Watch, 416, 496, 50, 140, portraitOnly},
	{"watch-series-9-45", "Apple Watch Series 9 (45mm)", Watch, 396, 484, 50, 140, portraitOnly},
	{"watch-series-7-41", "Apple Watch Series 7 (41mm)", Watch, 352, 430, 46, 130, portraitOnly},
}

// bundledFrames expands the built-in table into DeviceFrames in table order.
func bundledFrames() []DeviceFrame {
	out := make([]DeviceFrame, 0, len(bundledModels)*2)
	for _, m := range bundledModels {
		for _, o := range m.orientations {
			out = append(out, m.frame(o))
		}
	}
	return out
}

func (m bundledModel) frame(o Orientation) DeviceFrame {
	sw, sh, bx, by := m.screenW, m.screenH, m.bezelX, m.bezelY
	// Mac and watch rows are already in their only orientation.
	if o == Landscape && (m.deviceType == IPhone || m.deviceType == IPad) {
		sw, sh, bx, by = sh, sw, by, bx
	}
	name := m.key + "-" + string(o)
	return DeviceFrame{
		Name:        name,
		DisplayName: m.display,
		Orientation: o,
		FrameWidth:  sw + 2*bx,
		FrameHeight: sh + 2*by,
		ScreenRect:  Rect{X: bx, Y: by, Width: sw, Height: sh},
		DeviceType:  m.deviceType,
		AssetPath:   name + ".png",
	}
}

// DefaultRegistry returns the bundled frame catalog.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(bundledFrames())
	if err != nil {
		// The bundled table is static; a failure here is a programming error.
		panic("frames: invalid bundled table: " + err.Error())
	}
	return r
}
