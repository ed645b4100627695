package frames

import "fmt"

// Registry is an ordered, read-only catalog of device frames keyed by name.
//
// A Registry is built once and never mutated afterwards, so it is safe for
// concurrent use by any number of goroutines without locking.
type Registry struct {
	frames []DeviceFrame
	byName map[string]int
}

// NewRegistry validates frames and builds a registry preserving their order.
// Duplicate names and frames violating DeviceFrame invariants are rejected.
func NewRegistry(frames []DeviceFrame) (*Registry, error) {
	r := &Registry{
		frames: make([]DeviceFrame, 0, len(frames)),
		byName: make(map[string]int, len(frames)),
	}
	for _, f := range frames {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byName[f.Name]; dup {
			return nil, fmt.Errorf("duplicate frame name: %s", f.Name)
		}
		r.byName[f.Name] = len(r.frames)
		r.frames = append(r.frames, f)
	}
	return r, nil
}

// Len returns the number of registered frames.
func (r *Registry) Len() int {
	return len(r.frames)
}

// Frames returns a copy of all frames in registration order.
func (r *Registry) Frames() []DeviceFrame {
	out := make([]DeviceFrame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Lookup returns the frame registered under name. The name is normalized
// first, so display-style names resolve as well.
func (r *Registry) Lookup(name string) (DeviceFrame, bool) {
	if i, ok := r.byName[name]; ok {
		return r.frames[i], true
	}
	if i, ok := r.byName[NormalizeName(name)]; ok {
		return r.frames[i], true
	}
	return DeviceFrame{}, false
}

// Filter returns the frames of a device type and orientation in registration
// order. An empty DeviceType or Orientation matches everything.
func (r *Registry) Filter(dt DeviceType, o Orientation) []DeviceFrame {
	var out []DeviceFrame
	for _, f := range r.frames {
		if dt != DeviceUnknown && f.DeviceType != dt {
			continue
		}
		if o != "" && f.Orientation != o {
			continue
		}
		out = append(out, f)
	}
	return out
}
