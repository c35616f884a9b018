package visuals

import (
	"image/color"
	"strings"
)

// RGB is a color in YAML-friendly form: [r, g, b]
type RGB [3]uint8

// RGBA converts to opaque color.RGBA
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// Color modes
const (
	ColorModeSolid  = "Solid"
	ColorModeEffect = "Effect"
	ColorModeCustom = "Custom"
)

// Effect names
const (
	EffectNone     = "None"
	EffectRainbow  = "Rainbow"
	EffectCycle    = "Cycle"
	EffectBreathe  = "Breathe"
	EffectRipple   = "Ripple"
	EffectFirework = "Firework"
)

// Text modes
const (
	TextModeNone       = "None"
	TextModeIndex      = "Index"
	TextModeRandomWord = "Random Word"
)

// Text positions relative to the shape
const (
	TextRight  = "Right"
	TextTop    = "Top"
	TextBottom = "Bottom"
	TextCenter = "Center"
)

// Settings describes how tracked objects are drawn
type Settings struct {
	ColorMode       string `yaml:"color_mode"`
	SolidColor      RGB    `yaml:"solid_color"`
	EffectName      string `yaml:"effect_name"`
	EffectSpeed     int    `yaml:"effect_speed"`
	EffectIntensity int    `yaml:"effect_intensity"`
	PrimaryColor    RGB    `yaml:"primary_color"`

	TextMode     string `yaml:"text_mode"`
	TextSize     int    `yaml:"text_size"`
	TextColor    RGB    `yaml:"text_color"`
	TextPosition string `yaml:"text_position"`

	FixedSizeEnabled bool    `yaml:"fixed_size_enabled"`
	FixedSize        int     `yaml:"fixed_size"`
	ShowDot          bool    `yaml:"show_dot"`
	FillShape        bool    `yaml:"fill_shape"`
	FillOpacity      float64 `yaml:"fill_opacity"`
	BorderThickness  int     `yaml:"border_thickness"`
	Glow             bool    `yaml:"glow"`

	ShowTraces     bool `yaml:"show_traces"`
	TraceThickness int  `yaml:"trace_thickness"`
	TraceLifetime  int  `yaml:"trace_lifetime"`
	// Nil means traces use shape color
	TraceColor *RGB `yaml:"trace_color,omitempty"`

	MaxBlobs int `yaml:"max_blobs"`
}

// DefaultSettings returns settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		ColorMode:        ColorModeSolid,
		SolidColor:       RGB{255, 255, 255},
		EffectName:       EffectRainbow,
		EffectSpeed:      50,
		EffectIntensity:  75,
		PrimaryColor:     RGB{67, 160, 71},
		TextMode:         TextModeNone,
		TextSize:         14,
		TextColor:        RGB{255, 255, 255},
		TextPosition:     TextRight,
		FixedSizeEnabled: false,
		FixedSize:        50,
		ShowDot:          false,
		FillShape:        false,
		FillOpacity:      0.5,
		BorderThickness:  2,
		Glow:             true,
		ShowTraces:       true,
		TraceThickness:   3,
		TraceLifetime:    20,
		TraceColor:       nil,
		MaxBlobs:         50,
	}
}

// colorStrategy selects color strategy by mode and effect name. Unknown names fall back to white
func (s Settings) colorStrategy(firework func(speed, intensity int) ColorStrategy) ColorStrategy {
	switch s.ColorMode {
	case ColorModeSolid:
		return SolidColor{C: s.SolidColor.RGBA()}
	case ColorModeEffect:
		// Effect mode always runs at default intensity
		return s.effectStrategy(75, RGB{67, 160, 71}, firework)
	case ColorModeCustom:
		return s.effectStrategy(s.EffectIntensity, s.PrimaryColor, firework)
	default:
		return WhiteColor{}
	}
}

func (s Settings) effectStrategy(intensity int, base RGB, firework func(speed, intensity int) ColorStrategy) ColorStrategy {
	switch s.EffectName {
	case EffectRainbow:
		return RainbowColor{}
	case EffectCycle:
		return CycleColor{Speed: s.EffectSpeed}
	case EffectBreathe:
		return BreatheColor{Base: base.RGBA(), Speed: s.EffectSpeed, Intensity: intensity}
	case EffectRipple:
		return RippleColor{Speed: s.EffectSpeed, Intensity: intensity}
	case EffectFirework:
		return firework(s.EffectSpeed, intensity)
	default:
		return WhiteColor{}
	}
}

func (s Settings) shapeStrategy() ShapeStrategy {
	if s.FixedSizeEnabled {
		return FixedShape{}
	}
	return TrackedShape{}
}

func (s Settings) textStrategy(randomWord func() TextStrategy) TextStrategy {
	switch s.TextMode {
	case TextModeNone, "":
		return NoText{}
	case TextModeRandomWord:
		return randomWord()
	default:
		// Index and Custom
		return IndexText{}
	}
}

func (s Settings) textPosition() string {
	switch strings.ToLower(s.TextPosition) {
	case "top":
		return TextTop
	case "bottom":
		return TextBottom
	case "center":
		return TextCenter
	default:
		return TextRight
	}
}
