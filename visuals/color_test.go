package visuals

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSVToRGB(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, hsvToRGB(0, 1, 1))
	assert.Equal(t, color.RGBA{R: 0, G: 255, B: 255, A: 255}, hsvToRGB(0.5, 1, 1))
	assert.Equal(t, color.RGBA{R: 127, G: 127, B: 127, A: 255}, hsvToRGB(0.7, 0, 0.5))
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 0, A: 255}, hsvToRGB(0.2, 1, 0))
}

func TestRainbowColor(t *testing.T) {
	strategy := RainbowColor{}
	first := strategy.Color(0, 0)
	assert.Equal(t, first, strategy.Color(0, 100), "rainbow color must not depend on frame")
	assert.NotEqual(t, first, strategy.Color(1, 0), "neighbour ids must get different hues")
	assert.NotEqual(t, strategy.Color(1, 0), strategy.Color(2, 0))
	for id := 0; id < 20; id++ {
		c := strategy.Color(id, 0)
		max := c.R
		if c.G > max {
			max = c.G
		}
		if c.B > max {
			max = c.B
		}
		assert.Equal(t, uint8(255), max, "rainbow colors have full value, id %d", id)
	}
}

func TestCycleColor(t *testing.T) {
	strategy := CycleColor{Speed: 50}
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, strategy.Color(7, 0))
	assert.Equal(t, strategy.Color(1, 42), strategy.Color(99, 42), "all objects share the hue")
	assert.NotEqual(t, strategy.Color(0, 0), strategy.Color(0, 30))
}

func TestBreatheColor(t *testing.T) {
	strategy := BreatheColor{Base: color.RGBA{R: 200, G: 100, B: 50, A: 255}, Speed: 50, Intensity: 100}
	assert.Equal(t, color.RGBA{R: 100, G: 50, B: 25, A: 255}, strategy.Color(0, 0))

	still := BreatheColor{Base: color.RGBA{R: 200, G: 100, B: 50, A: 255}, Speed: 50, Intensity: 0}
	for frame := 0; frame < 100; frame += 7 {
		assert.Equal(t, color.RGBA{R: 200, G: 100, B: 50, A: 255}, still.Color(0, frame))
	}
}

func TestRippleColor(t *testing.T) {
	strategy := RippleColor{Speed: 50, Intensity: 75}
	assert.Equal(t, strategy.Color(3, 10), strategy.Color(3, 10))
	assert.NotEqual(t, strategy.Color(0, 10), strategy.Color(1, 10), "ids are phase shifted")
}

func TestFireworkColor(t *testing.T) {
	strategy := NewFireworkColor(50, 75, rand.New(rand.NewSource(42)))
	brightest := func(c color.RGBA) uint8 {
		m := c.R
		if c.G > m {
			m = c.G
		}
		if c.B > m {
			m = c.B
		}
		return m
	}

	assert.Equal(t, uint8(255), brightest(strategy.Color(0, 0)))
	assert.Less(t, brightest(strategy.Color(0, 15)), uint8(200), "spark fades out")
	assert.Equal(t, uint8(0), brightest(strategy.Color(0, 30)), "spark is dark at the end of lifetime")
	assert.Equal(t, uint8(255), brightest(strategy.Color(0, 31)), "spark re-ignites")

	// Nil source is allowed
	assert.NotPanics(t, func() {
		NewFireworkColor(50, 75, nil).Color(1, 0)
	})
}
