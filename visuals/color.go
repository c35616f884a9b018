package visuals

import (
	"image/color"
	"math"
	"math/rand"
)

// goldenRatioConjugate spreads hues of consecutive IDs around the color wheel
const goldenRatioConjugate = 0.618033988749895

// fireworkLifetime is number of frames a spark fades over before re-igniting
const fireworkLifetime = 30

// ColorStrategy picks overlay color for an object on a given frame
type ColorStrategy interface {
	Color(objectID, frameIdx int) color.RGBA
}

// WhiteColor paints everything white
type WhiteColor struct{}

func (WhiteColor) Color(objectID, frameIdx int) color.RGBA {
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// SolidColor paints everything with single color
type SolidColor struct {
	C color.RGBA
}

func (s SolidColor) Color(objectID, frameIdx int) color.RGBA {
	return s.C
}

// RainbowColor gives every object its own stable hue
type RainbowColor struct{}

func (RainbowColor) Color(objectID, frameIdx int) color.RGBA {
	hue := math.Mod(float64(objectID)*goldenRatioConjugate, 1)
	return hsvToRGB(hue, 0.8, 1.0)
}

// CycleColor rotates hue of all objects over time
type CycleColor struct {
	Speed int
}

func (c CycleColor) Color(objectID, frameIdx int) color.RGBA {
	hue := math.Mod(float64(frameIdx)*(float64(c.Speed)/5000), 1)
	return hsvToRGB(hue, 1.0, 1.0)
}

// BreatheColor pulses brightness of the base color.
// Intensity (0..100) controls how dark the color gets at the bottom of the pulse.
type BreatheColor struct {
	Base      color.RGBA
	Speed     int
	Intensity int
}

func (c BreatheColor) Color(objectID, frameIdx int) color.RGBA {
	factor := (math.Sin(float64(frameIdx)*(float64(c.Speed)/500)) + 1) / 2
	minBrightness := 1 - float64(c.Intensity)/100
	brightness := minBrightness + factor*(1-minBrightness)
	return color.RGBA{
		R: uint8(float64(c.Base.R) * brightness),
		G: uint8(float64(c.Base.G) * brightness),
		B: uint8(float64(c.Base.B) * brightness),
		A: 255,
	}
}

// RippleColor shifts hue in a wave; every object has phase offset based on its ID
type RippleColor struct {
	Speed     int
	Intensity int
}

func (c RippleColor) Color(objectID, frameIdx int) color.RGBA {
	phase := float64(frameIdx)*(float64(c.Speed)/500) + float64(objectID)*0.5
	hue := (math.Sin(phase) + 1) / 2
	return hsvToRGB(hue, float64(c.Intensity)/100, 1.0)
}

type spark struct {
	hue   float64
	start int
}

// FireworkColor ignites a random bright hue per object which fades out and re-ignites
type FireworkColor struct {
	Speed     int
	Intensity int
	rng       *rand.Rand
	sparks    map[int]spark
}

// NewFireworkColor creates FireworkColor. If rng is nil then fixed-seed source is used
func NewFireworkColor(speed, intensity int, rng *rand.Rand) *FireworkColor {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &FireworkColor{
		Speed:     speed,
		Intensity: intensity,
		rng:       rng,
		sparks:    make(map[int]spark),
	}
}

func (c *FireworkColor) Color(objectID, frameIdx int) color.RGBA {
	s, ok := c.sparks[objectID]
	if !ok || frameIdx-s.start > fireworkLifetime {
		s = spark{hue: c.rng.Float64(), start: frameIdx}
		c.sparks[objectID] = s
	}
	age := frameIdx - s.start
	brightness := math.Max(0, 1-float64(age)/fireworkLifetime)
	return hsvToRGB(s.hue, 1.0, brightness)
}

// hsvToRGB converts h, s, v in [0, 1] to 8-bit color (values are truncated)
func hsvToRGB(h, s, v float64) color.RGBA {
	var r, g, b float64
	if s == 0 {
		r, g, b = v, v, v
	} else {
		i := int(h * 6)
		f := h*6 - float64(i)
		p := v * (1 - s)
		q := v * (1 - s*f)
		t := v * (1 - s*(1-f))
		switch i % 6 {
		case 0:
			r, g, b = v, t, p
		case 1:
			r, g, b = q, v, p
		case 2:
			r, g, b = p, v, t
		case 3:
			r, g, b = p, q, v
		case 4:
			r, g, b = t, p, v
		default:
			r, g, b = v, p, q
		}
	}
	return color.RGBA{
		R: uint8(r * 255),
		G: uint8(g * 255),
		B: uint8(b * 255),
		A: 255,
	}
}
