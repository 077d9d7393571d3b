package theme

// Scale holds the factors that map theme coordinates onto the display.
// A zero factor disables scaling.
type Scale struct {
	W, H float64
}

// NewScale derives factors from the theme's design resolution and the
// framebuffer size. Identical sizes (or unknown theme sizes) disable scaling.
func NewScale(themeW, themeH, fbW, fbH int) Scale {
	if themeW <= 0 || themeH <= 0 || fbW <= 0 || fbH <= 0 {
		return Scale{}
	}
	if themeW == fbW && themeH == fbH {
		return Scale{}
	}
	return Scale{W: float64(fbW) / float64(themeW), H: float64(fbH) / float64(themeH)}
}

// Enabled reports whether both factors are set.
func (s Scale) Enabled() bool { return s.W != 0 && s.H != 0 }

func (s Scale) X(v int) int {
	if !s.Enabled() {
		return v
	}
	return int(float64(v) * s.W)
}

func (s Scale) Y(v int) int {
	if !s.Enabled() {
		return v
	}
	return int(float64(v) * s.H)
}

// Min scales v by the smaller factor, for sizes that must keep proportions.
func (s Scale) Min(v int) int {
	if !s.Enabled() {
		return v
	}
	f := s.W
	if s.H < f {
		f = s.H
	}
	return int(float64(v) * f)
}
