package mot

import (
	"image"
	"math"
)

// BoundingBox is an axis-aligned pixel rectangle (X1, Y1) - (X2, Y2) of a detected blob.
// A valid box has X1 < X2 and Y1 < Y2.
type BoundingBox struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

func NewBoundingBox(x1, y1, x2, y2 int) BoundingBox {
	return BoundingBox{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

func NewBoundingBoxFrom(rect image.Rectangle) BoundingBox {
	return BoundingBox{
		X1: rect.Min.X,
		Y1: rect.Min.Y,
		X2: rect.Max.X,
		Y2: rect.Max.Y,
	}
}

// Width returns horizontal extent of the box
func (box BoundingBox) Width() int {
	return box.X2 - box.X1
}

// Height returns vertical extent of the box
func (box BoundingBox) Height() int {
	return box.Y2 - box.Y1
}

// Valid reports whether box has positive width and height
func (box BoundingBox) Valid() bool {
	return box.X1 < box.X2 && box.Y1 < box.Y2
}

// Centroid returns geometric center of the box (truncated average of corners)
func (box BoundingBox) Centroid() Point {
	return Point{
		X: (box.X1 + box.X2) / 2,
		Y: (box.Y1 + box.Y2) / 2,
	}
}

// Radius returns approximate half-extent: max(width, height) / 2, truncated
func (box BoundingBox) Radius() int {
	return maxInt(box.Width(), box.Height()) / 2
}

// Rect converts box to image.Rectangle
func (box BoundingBox) Rect() image.Rectangle {
	return image.Rect(box.X1, box.Y1, box.X2, box.Y2)
}

type Point struct {
	X int
	Y int
}

func NewPoint(x, y int) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func NewPointFrom(point image.Point) Point {
	return Point{
		X: point.X,
		Y: point.Y,
	}
}

// ImagePoint converts point to image.Point
func (p Point) ImagePoint() image.Point {
	return image.Pt(p.X, p.Y)
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Sqrt(math.Pow(float64(p1.X-p2.X), 2) + math.Pow(float64(p1.Y-p2.Y), 2))
}
