package visuals

import (
	"image"

	"github.com/disintegration/imaging"
)

const (
	ambientWidth  = 40
	ambientHeight = 22
	ambientSigma  = 3.5
)

// Ambient shrinks frame to a tiny blurred thumbnail used as a glow strip around the preview
func Ambient(img image.Image) *image.NRGBA {
	small := imaging.Resize(img, ambientWidth, ambientHeight, imaging.Box)
	return imaging.Blur(small, ambientSigma)
}
