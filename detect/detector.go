// Package detect extracts candidate blobs from a single video frame.
//
// Pipeline:
//
//	Color mode:            BGR -> HSV -> in-range mask
//	Grayscale/Edges modes: BGR -> gray -> Gaussian blur -> inverted threshold | Canny
//	Then:                  optional dilation -> external contours -> area filter -> bounding boxes
//
// Detector keeps no state between frames except its configuration.
// Native images returned in Result must be released with Result.Close().
package detect

import (
	"image"

	"github.com/LdDl/blobtrack/mot"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Stage names an intermediate image produced while building the foreground mask
type Stage string

const (
	StageGray      Stage = "gray"
	StageBlurred   Stage = "blurred"
	StageThreshold Stage = "threshold"
	StageEdges     Stage = "edges"
	StageColorMask Stage = "color_mask"
	StageDilated   Stage = "dilated"
)

// debugPriority is the order in which stages are picked for debug view
var debugPriority = []Stage{StageDilated, StageColorMask, StageEdges, StageThreshold}

// Result is the output of BlobDetector.Detect
type Result struct {
	// Bounding boxes of contours which passed area filter, in discovery order
	Boxes []mot.BoundingBox
	// Final binary mask used for contour extraction
	Mask gocv.Mat
	// Intermediate images
	Stages map[Stage]gocv.Mat
}

// Debug returns the most relevant intermediate image for debug view.
// Returned Mat is owned by Result.
func (result *Result) Debug() gocv.Mat {
	for _, stage := range debugPriority {
		if mat, ok := result.Stages[stage]; ok {
			return mat
		}
	}
	return result.Mask
}

// Close releases native memory of every image in the result
func (result *Result) Close() error {
	for stage, mat := range result.Stages {
		mat.Close()
		delete(result.Stages, stage)
	}
	return result.Mask.Close()
}

// BlobDetector converts frames into bounding boxes of blobs.
// Configure and Detect must not be called concurrently: owner of the detector
// is expected to pass an immutable copy of parameters once per frame.
type BlobDetector struct {
	params Parameters
}

// NewBlobDetector creates detector with given configuration
func NewBlobDetector(params Parameters) *BlobDetector {
	return &BlobDetector{
		params: params,
	}
}

// NewBlobDetectorDefault creates detector with DefaultParameters
func NewBlobDetectorDefault() *BlobDetector {
	return NewBlobDetector(DefaultParameters())
}

// Configure replaces active configuration. It takes effect on the next Detect call
func (detector *BlobDetector) Configure(params Parameters) {
	detector.params = params
}

// Params returns active configuration
func (detector *BlobDetector) Params() Parameters {
	return detector.params
}

// Detect finds blobs on BGR frame.
//
// Empty frame (or frame with unsupported number of channels) is a programmer error and causes panic.
func (detector *BlobDetector) Detect(frame gocv.Mat) Result {
	if frame.Empty() {
		panic(errors.New("detect: empty frame"))
	}
	channels := frame.Channels()
	if channels != 3 && channels != 1 {
		panic(errors.Errorf("detect: unsupported number of channels %d", channels))
	}
	params := detector.params
	result := Result{
		Stages: make(map[Stage]gocv.Mat, 4),
	}

	var foreground gocv.Mat
	switch params.Mode {
	case ModeColor:
		foreground = colorMask(frame, params)
		result.Stages[StageColorMask] = foreground
	default:
		gray := gocv.NewMat()
		if channels == 1 {
			frame.CopyTo(&gray)
		} else {
			gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
		}
		result.Stages[StageGray] = gray

		blurred := gocv.NewMat()
		k := params.KernelSize()
		gocv.GaussianBlur(gray, &blurred, image.Pt(k, k), 0, 0, gocv.BorderDefault)
		result.Stages[StageBlurred] = blurred

		foreground = gocv.NewMat()
		if params.Mode == ModeEdges {
			gocv.Canny(blurred, &foreground, float32(params.CannyLow), float32(params.CannyHigh))
			result.Stages[StageEdges] = foreground
		} else {
			// Inverted: dark blobs on light background become white
			gocv.Threshold(blurred, &foreground, float32(params.Threshold), 255, gocv.ThresholdBinaryInv)
			result.Stages[StageThreshold] = foreground
		}
	}

	// Grouping: expand white regions so fragments of the same blob merge
	if params.DilationSize > 0 {
		kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(params.DilationSize, params.DilationSize))
		dilated := gocv.NewMat()
		gocv.Dilate(foreground, &dilated, kernel)
		kernel.Close()
		result.Stages[StageDilated] = dilated
		foreground = dilated
	}
	result.Mask = foreground.Clone()

	result.Boxes = findBoxes(result.Mask, params)
	return result
}

// colorMask builds binary mask of pixels inside inclusive HSV range
func colorMask(frame gocv.Mat, params Parameters) gocv.Mat {
	if frame.Channels() != 3 {
		panic(errors.Errorf("detect: color mode needs 3 channels, got %d", frame.Channels()))
	}
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)

	lower := gocv.NewScalar(float64(params.HueMin), float64(params.SatMin), float64(params.ValMin), 0)
	upper := gocv.NewScalar(float64(params.HueMax), float64(params.SatMax), float64(params.ValMax), 0)
	mask := gocv.NewMat()
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)
	return mask
}

// findBoxes extracts external contours of the mask and keeps those with allowed area
func findBoxes(mask gocv.Mat, params Parameters) []mot.BoundingBox {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	boxes := make([]mot.BoundingBox, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		if !params.AreaAllowed(gocv.ContourArea(contour)) {
			continue
		}
		boxes = append(boxes, mot.NewBoundingBoxFrom(gocv.BoundingRect(contour)))
	}
	return boxes
}
