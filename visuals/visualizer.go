package visuals

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/LdDl/blobtrack/mot"
	"gocv.io/x/gocv"
)

const (
	glowAlpha = 0.3
	glowPad   = 2
	glowExtra = 4
	dotRadius = 2
)

var dotColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}

// Visualizer draws tracked objects onto frames. It is not safe for concurrent use
type Visualizer struct {
	settings Settings
	color    ColorStrategy
	shape    ShapeStrategy
	text     TextStrategy
	traces   *TraceStore
	rng      *rand.Rand
}

// NewVisualizer creates Visualizer. Randomized strategies draw from rng; nil means fixed seed
func NewVisualizer(settings Settings, rng *rand.Rand) *Visualizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	v := &Visualizer{
		traces: NewTraceStore(settings.TraceLifetime),
		rng:    rng,
	}
	v.Apply(settings)
	return v
}

// Apply replaces settings and re-selects strategies. Traces are kept
func (v *Visualizer) Apply(settings Settings) {
	v.settings = settings
	v.color = settings.colorStrategy(func(speed, intensity int) ColorStrategy {
		return NewFireworkColor(speed, intensity, v.rng)
	})
	v.shape = settings.shapeStrategy()
	v.text = settings.textStrategy(func() TextStrategy {
		return NewRandomWord(nil, v.rng)
	})
	v.traces.SetMaxLen(settings.TraceLifetime)
}

// Settings returns current settings
func (v *Visualizer) Settings() Settings {
	return v.settings
}

// Traces returns trace history of drawn objects
func (v *Visualizer) Traces() *TraceStore {
	return v.traces
}

// Draw renders objects onto BGR frame in place. At most MaxBlobs objects are drawn, lowest IDs first
func (v *Visualizer) Draw(frame *gocv.Mat, objects mot.Snapshot, kind ShapeKind, frameIdx int) {
	v.traces.Update(objects)
	s := v.settings

	useFillOverlay := s.FillShape && s.FillOpacity < 1.0
	var fillOverlay, glowOverlay gocv.Mat
	if useFillOverlay {
		fillOverlay = frame.Clone()
		defer fillOverlay.Close()
	}
	if s.Glow {
		glowOverlay = frame.Clone()
		defer glowOverlay.Close()
	}

	for i, objectID := range objects.SortedIDs() {
		if i >= s.MaxBlobs {
			break
		}
		object := objects[objectID]
		geom := v.shape.Geometry(object.Rect().Rect(), s.FixedSize)
		col := v.color.Color(objectID, frameIdx)

		if s.ShowTraces {
			traceCol := col
			if s.TraceColor != nil {
				traceCol = s.TraceColor.RGBA()
			}
			v.drawTrace(frame, v.traces.Trace(objectID), traceCol)
		}

		radius := geom.Dx() / 2
		center := image.Pt(geom.Min.X+radius, geom.Min.Y+radius)
		switch {
		case !s.FillShape:
			drawShape(frame, kind, geom, center, radius, col, s.BorderThickness)
		case useFillOverlay:
			drawShape(&fillOverlay, kind, geom, center, radius, col, -1)
			drawShape(frame, kind, geom, center, radius, col, s.BorderThickness)
		default:
			drawShape(frame, kind, geom, center, radius, col, -1)
		}

		if s.Glow {
			glowThickness := s.BorderThickness + glowExtra
			if s.FillShape {
				glowThickness = -1
			}
			if kind == ShapeCircle {
				gocv.Circle(&glowOverlay, center, radius+5, col, glowThickness)
			} else {
				gocv.Rectangle(&glowOverlay, geom.Inset(-glowPad), col, glowThickness)
			}
		}

		if s.ShowDot {
			gocv.Circle(frame, center, dotRadius, dotColor, -1)
		}

		if label := v.text.Text(objectID, frameIdx); label != "" {
			v.drawLabel(frame, label, geom, center)
		}
	}

	if useFillOverlay {
		gocv.AddWeighted(fillOverlay, s.FillOpacity, *frame, 1-s.FillOpacity, 0, frame)
	}
	if s.Glow {
		gocv.AddWeighted(glowOverlay, glowAlpha, *frame, 1-glowAlpha, 0, frame)
	}
}

// drawTrace draws polyline from newest to oldest point, thinning with age
func (v *Visualizer) drawTrace(frame *gocv.Mat, trace []image.Point, col color.RGBA) {
	limit := len(trace)
	if v.settings.TraceLifetime < limit {
		limit = v.settings.TraceLifetime
	}
	for i := 1; i < limit; i++ {
		ageFactor := 1 - float64(i)/float64(limit)
		thickness := int(float64(v.settings.TraceThickness) * ageFactor * 1.5)
		if thickness < 1 {
			thickness = 1
		}
		gocv.Line(frame, trace[i-1], trace[i], col, thickness)
	}
}

func (v *Visualizer) drawLabel(frame *gocv.Mat, label string, geom image.Rectangle, center image.Point) {
	fontScale := float64(v.settings.TextSize) / 24.0
	thickness := int(math.Max(1, float64(v.settings.TextSize/12)))
	var pos image.Point
	switch v.settings.textPosition() {
	case TextTop:
		pos = image.Pt(geom.Min.X, geom.Min.Y-10)
	case TextBottom:
		pos = image.Pt(geom.Min.X, geom.Max.Y+20)
	case TextCenter:
		size := gocv.GetTextSize(label, gocv.FontHersheySimplex, fontScale, thickness)
		pos = image.Pt(center.X-size.X/2, center.Y+size.Y/2)
	default:
		pos = image.Pt(geom.Max.X+5, geom.Min.Y+10)
	}
	gocv.PutText(frame, label, pos, gocv.FontHersheySimplex, fontScale, v.settings.TextColor.RGBA(), thickness)
}

func drawShape(img *gocv.Mat, kind ShapeKind, geom image.Rectangle, center image.Point, radius int, col color.RGBA, thickness int) {
	if kind == ShapeCircle {
		gocv.Circle(img, center, radius, col, thickness)
		return
	}
	gocv.Rectangle(img, geom, col, thickness)
}
