package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// OutputSuffix is appended to the input base name for exported videos
const OutputSuffix = "_tracked.mp4"

// exportCodec is FOURCC of exported videos
const exportCodec = "mp4v"

// FrameSource provides BGR frames
type FrameSource interface {
	// Read decodes next frame into dst. False means end of stream (or read failure)
	Read(dst *gocv.Mat) bool
	// Seek moves read position to the given zero-based frame index
	Seek(frameIdx int) error
	FrameCount() int
	FPS() float64
	Size() (width, height int)
	Close() error
}

// FrameSink consumes rendered frames
type FrameSink interface {
	Write(frame gocv.Mat) error
	Close() error
}

// VideoFile is FrameSource backed by gocv.VideoCapture
type VideoFile struct {
	path    string
	capture *gocv.VideoCapture
}

// OpenVideo opens video file for reading
func OpenVideo(path string) (*VideoFile, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open video '%s'", path)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, errors.Errorf("can't open video '%s'", path)
	}
	return &VideoFile{
		path:    path,
		capture: capture,
	}, nil
}

func (video *VideoFile) Read(dst *gocv.Mat) bool {
	return video.capture.Read(dst)
}

func (video *VideoFile) Seek(frameIdx int) error {
	if frameIdx < 0 {
		return errors.Errorf("negative frame index %d", frameIdx)
	}
	video.capture.Set(gocv.VideoCapturePosFrames, float64(frameIdx))
	return nil
}

func (video *VideoFile) FrameCount() int {
	return int(video.capture.Get(gocv.VideoCaptureFrameCount))
}

func (video *VideoFile) FPS() float64 {
	return video.capture.Get(gocv.VideoCaptureFPS)
}

func (video *VideoFile) Size() (int, int) {
	return int(video.capture.Get(gocv.VideoCaptureFrameWidth)), int(video.capture.Get(gocv.VideoCaptureFrameHeight))
}

func (video *VideoFile) Close() error {
	return errors.Wrapf(video.capture.Close(), "can't close video '%s'", video.path)
}

// VideoWriter is FrameSink backed by gocv.VideoWriter
type VideoWriter struct {
	path   string
	writer *gocv.VideoWriter
}

// CreateVideo creates mp4v-encoded video file
func CreateVideo(path string, fps float64, width, height int) (*VideoWriter, error) {
	writer, err := gocv.VideoWriterFile(path, exportCodec, fps, width, height, true)
	if err != nil {
		return nil, errors.Wrapf(err, "can't create video '%s'", path)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, errors.Errorf("can't create video '%s'", path)
	}
	return &VideoWriter{
		path:   path,
		writer: writer,
	}, nil
}

func (video *VideoWriter) Write(frame gocv.Mat) error {
	return errors.Wrapf(video.writer.Write(frame), "can't write frame to '%s'", video.path)
}

func (video *VideoWriter) Close() error {
	return errors.Wrapf(video.writer.Close(), "can't close video '%s'", video.path)
}

// OutputPath returns export path for the input video: "<base>_tracked.mp4"
func OutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + OutputSuffix
}
