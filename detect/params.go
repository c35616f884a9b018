package detect

// Parameters is a configuration of BlobDetector.
// Values are not validated: out-of-range settings just produce degenerate (possibly empty) results.
type Parameters struct {
	Mode Mode `yaml:"mode"`

	// Contour area must satisfy MinArea < area < MaxArea
	MinArea int `yaml:"min_area"`
	MaxArea int `yaml:"max_area"`

	// Gaussian kernel is (2*BlurRadius+1) x (2*BlurRadius+1). Zero means no blur
	BlurRadius int `yaml:"blur"`
	// Side of square dilation kernel. Zero means no dilation
	DilationSize int `yaml:"dilation"`

	// Grayscale mode: pixels darker than Threshold become foreground
	Threshold int `yaml:"threshold"`

	// Edges mode: Canny hysteresis thresholds
	CannyLow  int `yaml:"canny_low"`
	CannyHigh int `yaml:"canny_high"`

	// Color mode: inclusive HSV range. Hue is 0..179, no wraparound
	HueMin int `yaml:"h_min"`
	HueMax int `yaml:"h_max"`
	SatMin int `yaml:"s_min"`
	SatMax int `yaml:"s_max"`
	ValMin int `yaml:"v_min"`
	ValMax int `yaml:"v_max"`
}

// DefaultParameters returns parameters used when nothing is configured
func DefaultParameters() Parameters {
	return Parameters{
		Mode:         ModeEdges,
		MinArea:      100,
		MaxArea:      100000,
		BlurRadius:   0,
		DilationSize: 0,
		Threshold:    127,
		CannyLow:     50,
		CannyHigh:    150,
		HueMin:       0,
		HueMax:       179,
		SatMin:       0,
		SatMax:       255,
		ValMin:       0,
		ValMax:       255,
	}
}

// KernelSize returns side of Gaussian kernel. It is always odd
func (params Parameters) KernelSize() int {
	if params.BlurRadius < 0 {
		return 1
	}
	return 2*params.BlurRadius + 1
}

// AreaAllowed reports whether contour area passes the filter
func (params Parameters) AreaAllowed(area float64) bool {
	return float64(params.MinArea) < area && area < float64(params.MaxArea)
}
