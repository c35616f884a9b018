package visuals

import (
	"testing"

	"github.com/LdDl/blobtrack/mot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func blackFrame(width, height int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV8UC3)
}

func plainSettings() Settings {
	settings := DefaultSettings()
	settings.Glow = false
	settings.ShowTraces = false
	return settings
}

func TestDrawHollowSquare(t *testing.T) {
	frame := blackFrame(100, 100)
	defer frame.Close()

	v := NewVisualizer(plainSettings(), nil)
	objects := mot.Snapshot{
		0: {ID: 0, Centroid: mot.NewPoint(50, 50), Radius: 10},
	}
	v.Draw(&frame, objects, ShapeSquare, 0)

	border := frame.GetVecbAt(50, 40)
	assert.Equal(t, uint8(255), border[0])
	assert.Equal(t, uint8(255), border[1])
	assert.Equal(t, uint8(255), border[2])

	center := frame.GetVecbAt(50, 50)
	assert.Equal(t, uint8(0), center[0], "hollow shape keeps inside untouched")
	assert.Equal(t, 1, v.Traces().Len())
}

func TestDrawSolidColorIsRGB(t *testing.T) {
	frame := blackFrame(100, 100)
	defer frame.Close()

	settings := plainSettings()
	settings.SolidColor = RGB{255, 0, 0}
	v := NewVisualizer(settings, nil)
	v.Draw(&frame, mot.Snapshot{0: {ID: 0, Centroid: mot.NewPoint(50, 50), Radius: 10}}, ShapeSquare, 0)

	// Frame is BGR
	border := frame.GetVecbAt(50, 40)
	assert.Equal(t, uint8(0), border[0])
	assert.Equal(t, uint8(0), border[1])
	assert.Equal(t, uint8(255), border[2])
}

func TestDrawSemiTransparentFill(t *testing.T) {
	frame := blackFrame(100, 100)
	defer frame.Close()

	settings := plainSettings()
	settings.FillShape = true
	settings.FillOpacity = 0.5
	v := NewVisualizer(settings, nil)
	v.Draw(&frame, mot.Snapshot{0: {ID: 0, Centroid: mot.NewPoint(50, 50), Radius: 10}}, ShapeCircle, 0)

	center := frame.GetVecbAt(50, 50)
	assert.InDelta(t, 127, int(center[0]), 1)

	outside := frame.GetVecbAt(5, 5)
	assert.Equal(t, uint8(0), outside[0])
}

func TestDrawRespectsMaxBlobs(t *testing.T) {
	frame := blackFrame(200, 100)
	defer frame.Close()

	settings := plainSettings()
	settings.MaxBlobs = 1
	v := NewVisualizer(settings, nil)
	objects := mot.Snapshot{
		0: {ID: 0, Centroid: mot.NewPoint(50, 50), Radius: 10},
		1: {ID: 1, Centroid: mot.NewPoint(150, 50), Radius: 10},
	}
	v.Draw(&frame, objects, ShapeSquare, 0)

	assert.Equal(t, uint8(255), frame.GetVecbAt(50, 40)[0], "lowest id is drawn")
	assert.Equal(t, uint8(0), frame.GetVecbAt(50, 140)[0], "objects above limit are skipped")
}

func TestDrawWithEverythingEnabled(t *testing.T) {
	frame := blackFrame(160, 120)
	defer frame.Close()

	settings := DefaultSettings()
	settings.ColorMode = ColorModeCustom
	settings.EffectName = EffectFirework
	settings.TextMode = TextModeRandomWord
	settings.TextPosition = TextCenter
	settings.ShowDot = true
	settings.FillShape = true
	settings.TraceColor = &RGB{0, 255, 0}
	v := NewVisualizer(settings, nil)

	require.NotPanics(t, func() {
		for frameIdx := 0; frameIdx < 5; frameIdx++ {
			objects := mot.Snapshot{
				0: {ID: 0, Centroid: mot.NewPoint(40+frameIdx*5, 60), Radius: 15},
			}
			v.Draw(&frame, objects, ShapeCircle, frameIdx)
		}
	})
	assert.Len(t, v.Traces().Trace(0), 5)
	assert.False(t, frame.Empty())
}
