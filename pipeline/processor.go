package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/LdDl/blobtrack/detect"
	"github.com/LdDl/blobtrack/mot"
	"github.com/LdDl/blobtrack/visuals"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// noSeek marks absence of pending seek request
const noSeek = -1

// Options configures Processor
type Options struct {
	// Preview loops the stream forever and never writes to sink
	Preview bool
	// Debug shows the detector mask instead of rendered overlay (preview only)
	Debug bool
	Shape visuals.ShapeKind

	Detection      detect.Parameters
	Visuals        visuals.Settings
	MaxDisappeared int
	Unmatched      mot.UnmatchedPolicy

	// OutputPath is only used in the finish message
	OutputPath string
	// Nil means no notifications
	Observer Observer
	// Nil means slog.Default()
	Logger *slog.Logger
	// Source of randomness for visual effects. Nil means fixed seed
	Rand *rand.Rand
}

// DefaultOptions returns export options with default detection, tracking and visuals
func DefaultOptions() Options {
	return Options{
		Shape:          visuals.ShapeSquare,
		Detection:      detect.DefaultParameters(),
		Visuals:        visuals.DefaultSettings(),
		MaxDisappeared: mot.DefaultMaxDisappeared,
		Unmatched:      mot.UnmatchedDiscard,
	}
}

// Stats is a point-in-time view of a running Processor
type Stats struct {
	// RunID identifies the run in logs
	RunID string
	// FramesProcessed is the number of frames pushed through detection
	FramesProcessed uint64
	// CurrentFrame is the index of the latest processed frame
	CurrentFrame int
	// TotalFrames is frame count reported by the source
	TotalFrames int
	// Objects is the number of tracked objects after the latest frame
	Objects int
	// Paused indicates if preview is paused
	Paused bool
	// FPSReal is the measured processing rate
	FPSReal float64
}

// Processor owns the per-frame loop: read -> detect -> track -> draw -> write/notify.
// Control methods are safe to call from any goroutine while Run is active.
type Processor struct {
	src  FrameSource
	sink FrameSink
	opts Options

	observer Observer
	logger   *slog.Logger
	runID    string

	mu             sync.Mutex
	cond           *sync.Cond
	running        bool
	paused         bool
	debug          bool
	seekReq        int
	params         detect.Parameters
	pendingVisuals *visuals.Settings
	stats          Stats
	started        time.Time
}

// NewProcessor creates Processor. Sink may be nil in preview mode
func NewProcessor(src FrameSource, sink FrameSink, opts Options) *Processor {
	runID := uuid.New().String()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observer := opts.Observer
	if observer == nil {
		observer = noopObserver{}
	}
	p := &Processor{
		src:      src,
		sink:     sink,
		opts:     opts,
		observer: observer,
		logger:   logger.With("run_id", runID),
		runID:    runID,
		running:  true,
		debug:    opts.Debug,
		seekReq:  noSeek,
		params:   opts.Detection,
		stats: Stats{
			RunID: runID,
		},
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// RunID returns identifier attached to every log record of this processor
func (p *Processor) RunID() string {
	return p.runID
}

// TogglePause flips pause state and returns the new one. Pause only affects preview
func (p *Processor) TogglePause() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = !p.paused
	if !p.paused {
		p.cond.Broadcast()
	}
	p.logger.Info("pipeline: pause toggled", "paused", p.paused)
	return p.paused
}

// Seek requests repositioning to frameIdx before the next read. Wakes up paused loop
func (p *Processor) Seek(frameIdx int) {
	if frameIdx < 0 {
		frameIdx = 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seekReq = frameIdx
	p.cond.Broadcast()
}

// Stop requests loop termination. Current frame is finished first
func (p *Processor) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false
	p.cond.Broadcast()
}

// UpdateParams replaces detection parameters starting from the next frame
func (p *Processor) UpdateParams(params detect.Parameters) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.params = params
}

// Params returns current detection parameters
func (p *Processor) Params() detect.Parameters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.params
}

// UpdateVisuals replaces visual settings starting from the next frame
func (p *Processor) UpdateVisuals(settings visuals.Settings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingVisuals = &settings
}

// SetDebug switches preview between rendered overlay and detector mask
func (p *Processor) SetDebug(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.debug = enabled
}

// Stats returns copy of current statistics
func (p *Processor) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	stats := p.stats
	stats.Paused = p.paused
	if elapsed := time.Since(p.started).Seconds(); !p.started.IsZero() && elapsed > 0 {
		stats.FPSReal = float64(stats.FramesProcessed) / elapsed
	}
	return stats
}

// frameControl is state copied under the mutex once per frame
type frameControl struct {
	stop    bool
	seekTo  int
	params  detect.Parameters
	visuals *visuals.Settings
	debug   bool
}

// nextControl blocks while preview is paused and then takes a snapshot of control state
func (p *Processor) nextControl() frameControl {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.running && p.paused && p.opts.Preview && p.seekReq == noSeek {
		p.cond.Wait()
	}
	ctrl := frameControl{
		stop:    !p.running,
		seekTo:  p.seekReq,
		params:  p.params,
		visuals: p.pendingVisuals,
		debug:   p.debug,
	}
	p.seekReq = noSeek
	p.pendingVisuals = nil
	return ctrl
}

func (p *Processor) recordFrame(frameIdx, objects int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats.FramesProcessed++
	p.stats.CurrentFrame = frameIdx
	p.stats.Objects = objects
}

// Run processes the source until it ends (export), Stop is called or ctx is done.
// Processor runs once; source and sink are not closed by Run.
func (p *Processor) Run(ctx context.Context) error {
	if !p.opts.Preview && p.sink == nil {
		return errors.New("export requires frame sink")
	}
	stopOnCancel := context.AfterFunc(ctx, p.Stop)
	defer stopOnCancel()

	totalFrames := p.src.FrameCount()
	width, height := p.src.Size()
	p.mu.Lock()
	p.started = time.Now()
	p.stats.TotalFrames = totalFrames
	p.mu.Unlock()
	p.observer.OnDuration(totalFrames)

	p.logger.Info("pipeline: run started",
		"preview", p.opts.Preview,
		"total_frames", totalFrames,
		"resolution", fmt.Sprintf("%dx%d", width, height),
		"fps", p.src.FPS(),
		"shape", p.opts.Shape.String(),
		"mode", p.opts.Detection.Mode.String(),
	)

	detector := detect.NewBlobDetector(p.opts.Detection)
	tracker := mot.NewCentroidTracker(p.opts.MaxDisappeared, p.opts.Unmatched)
	visualizer := visuals.NewVisualizer(p.opts.Visuals, p.opts.Rand)

	frame := gocv.NewMat()
	defer frame.Close()
	debugView := gocv.NewMat()
	defer debugView.Close()

	frameIdx := 0
	for {
		ctrl := p.nextControl()
		if ctrl.stop {
			break
		}
		if ctrl.seekTo != noSeek {
			if err := p.src.Seek(ctrl.seekTo); err != nil {
				return errors.Wrapf(err, "can't seek to frame %d", ctrl.seekTo)
			}
			p.logger.Debug("pipeline: seek", "frame", ctrl.seekTo)
			frameIdx = ctrl.seekTo
		}

		if ok := p.src.Read(&frame); !ok || frame.Empty() {
			if !p.opts.Preview {
				break
			}
			if frameIdx == 0 {
				p.logger.Warn("pipeline: source has no readable frames")
				break
			}
			if err := p.src.Seek(0); err != nil {
				return errors.Wrap(err, "can't rewind source")
			}
			frameIdx = 0
			continue
		}

		_, silent := p.observer.(noopObserver)
		var ambient *image.NRGBA
		if !silent {
			ambient = p.ambient(frame)
		}

		detector.Configure(ctrl.params)
		result := detector.Detect(frame)
		if ctrl.visuals != nil {
			visualizer.Apply(*ctrl.visuals)
			p.logger.Debug("pipeline: visual settings applied", "color_mode", ctrl.visuals.ColorMode)
		}
		objects := tracker.Update(result.Boxes)

		rendered := frame.Clone()
		visualizer.Draw(&rendered, objects, p.opts.Shape, frameIdx)
		display := rendered
		if p.opts.Preview && ctrl.debug {
			debugMask := result.Debug()
			gocv.CvtColor(debugMask, &debugView, gocv.ColorGrayToBGR)
			display = debugView
		}
		if !silent {
			p.observer.OnFrame(FrameUpdate{
				Index:   frameIdx,
				Frame:   toImage(display),
				Ambient: ambient,
				Objects: objects,
			})
		}

		var writeErr error
		if !p.opts.Preview {
			writeErr = p.sink.Write(rendered)
		}
		result.Close()
		rendered.Close()
		if writeErr != nil {
			p.logger.Error("pipeline: write failed", "frame", frameIdx, "error", writeErr)
			return errors.Wrapf(writeErr, "can't write frame %d", frameIdx)
		}
		if !p.opts.Preview && totalFrames > 0 {
			progress := (frameIdx + 1) * 100 / totalFrames
			if progress > 100 {
				progress = 100
			}
			p.observer.OnProgress(progress)
		}

		p.recordFrame(frameIdx, len(objects))
		p.logger.Debug("pipeline: frame processed",
			"frame", frameIdx,
			"detections", len(result.Boxes),
			"objects", len(objects),
		)
		frameIdx++
	}

	stats := p.Stats()
	p.logger.Info("pipeline: run finished",
		"frames_processed", stats.FramesProcessed,
		"fps", fmt.Sprintf("%.1f", stats.FPSReal),
	)
	if !p.opts.Preview {
		p.observer.OnFinished(fmt.Sprintf("Processing complete! Saved to %s", p.opts.OutputPath))
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

// ambient builds glow thumbnail of the raw frame
func (p *Processor) ambient(frame gocv.Mat) *image.NRGBA {
	img := toImage(frame)
	if img == nil {
		return nil
	}
	return visuals.Ambient(img)
}

func toImage(mat gocv.Mat) image.Image {
	img, err := mat.ToImage()
	if err != nil {
		return nil
	}
	return img
}
