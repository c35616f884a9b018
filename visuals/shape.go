package visuals

import (
	"image"
	"strings"

	"github.com/pkg/errors"
)

const defaultFixedSize = 50

// ShapeKind is the outline drawn around tracked object
type ShapeKind uint16

const (
	ShapeSquare ShapeKind = iota
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSquare:
		return "Square"
	case ShapeCircle:
		return "Circle"
	default:
		return "Unknown"
	}
}

// ParseShapeKind converts case-insensitive "square" / "circle" to ShapeKind
func ParseShapeKind(s string) (ShapeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square":
		return ShapeSquare, nil
	case "circle":
		return ShapeCircle, nil
	default:
		return ShapeSquare, errors.Errorf("unknown shape '%s'", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (k ShapeKind) MarshalText() ([]byte, error) {
	if k > ShapeCircle {
		return nil, errors.Errorf("unknown shape %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *ShapeKind) UnmarshalText(text []byte) error {
	parsed, err := ParseShapeKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ShapeStrategy turns tracked geometry into the rectangle to be drawn
type ShapeStrategy interface {
	Geometry(rect image.Rectangle, fixedSize int) image.Rectangle
}

// TrackedShape follows the tracked size of the object
type TrackedShape struct{}

func (TrackedShape) Geometry(rect image.Rectangle, fixedSize int) image.Rectangle {
	return rect
}

// FixedShape draws square of fixed size centered on the object
type FixedShape struct{}

func (FixedShape) Geometry(rect image.Rectangle, fixedSize int) image.Rectangle {
	cx := rect.Min.X + rect.Dx()/2
	cy := rect.Min.Y + rect.Dy()/2
	size := fixedSize
	if size <= 0 {
		size = defaultFixedSize
	}
	x := cx - size/2
	y := cy - size/2
	return image.Rect(x, y, x+size, y+size)
}
