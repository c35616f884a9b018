package pipeline

import (
	"image"

	"github.com/LdDl/blobtrack/mot"
)

// FrameUpdate is what Observer gets for every processed frame
type FrameUpdate struct {
	// Index of the frame in the source
	Index int
	// Rendered frame (or detector mask in debug preview). Nil if conversion failed
	Frame image.Image
	// Blurred thumbnail of the raw frame
	Ambient *image.NRGBA
	// Tracked objects after this frame
	Objects mot.Snapshot
}

// Observer receives notifications from Processor.Run. Methods are called from the Run goroutine
type Observer interface {
	// OnDuration is called once with frame count reported by the source
	OnDuration(totalFrames int)
	OnFrame(update FrameUpdate)
	// OnProgress reports export progress in percent
	OnProgress(percent int)
	// OnFinished is called once at the end of export
	OnFinished(message string)
}

type noopObserver struct{}

func (noopObserver) OnDuration(int)      {}
func (noopObserver) OnFrame(FrameUpdate) {}
func (noopObserver) OnProgress(int)      {}
func (noopObserver) OnFinished(string)   {}
