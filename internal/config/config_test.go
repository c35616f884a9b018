package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/LdDl/blobtrack/detect"
	"github.com/LdDl/blobtrack/mot"
	"github.com/LdDl/blobtrack/visuals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blobtrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeFile(t, `
input: /videos/clip.avi
shape: circle
tracker:
  unmatched: register
detection:
  mode: hsv
  min_area: 250
visuals:
  color_mode: Effect
  effect_name: Ripple
  trace_color: [0, 255, 0]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/videos/clip.avi", cfg.Input)
	assert.Equal(t, visuals.ShapeCircle, cfg.Shape)
	assert.Equal(t, mot.UnmatchedRegister, cfg.Tracker.Unmatched)
	assert.Equal(t, mot.DefaultMaxDisappeared, cfg.Tracker.MaxDisappeared)

	assert.Equal(t, detect.ModeColor, cfg.Detection.Mode)
	assert.Equal(t, 250, cfg.Detection.MinArea)
	assert.Equal(t, detect.DefaultParameters().MaxArea, cfg.Detection.MaxArea)
	assert.Equal(t, 150, cfg.Detection.CannyHigh)

	assert.Equal(t, visuals.ColorModeEffect, cfg.Visuals.ColorMode)
	assert.Equal(t, visuals.EffectRipple, cfg.Visuals.EffectName)
	require.NotNil(t, cfg.Visuals.TraceColor)
	assert.Equal(t, visuals.RGB{0, 255, 0}, *cfg.Visuals.TraceColor)
	assert.Equal(t, 50, cfg.Visuals.MaxBlobs)

	assert.Equal(t, "/videos/clip_tracked.mp4", cfg.OutputPath())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "detection:\n  mode: sonar\n"))
	assert.Error(t, err, "unknown detection mode must be rejected")

	_, err = Load(writeFile(t, "shape: triangle\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "tracker:\n  unmatched: maybe\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "visuals:\n  solid_color: [1, 2]\n"))
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Input = "in.mp4"
	cfg.Output = "out.mp4"
	cfg.Detection.Mode = detect.ModeGrayscale
	cfg.Detection.DilationSize = 3
	cfg.Tracker.Unmatched = mot.UnmatchedRegister
	cfg.Visuals.TextMode = visuals.TextModeRandomWord

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mode: Grayscale")
	assert.Contains(t, string(data), "unmatched: register")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate(), "input is required")

	cfg.Input = "clip.mp4"
	assert.NoError(t, cfg.Validate())

	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())
	cfg.LogLevel = "debug"
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	cfg.Tracker.MaxDisappeared = -1
	assert.Error(t, cfg.Validate())
	cfg.Tracker.MaxDisappeared = 0
	assert.NoError(t, cfg.Validate())

	// Odd detection values are allowed
	cfg.Detection.MinArea = 500
	cfg.Detection.MaxArea = 10
	assert.NoError(t, cfg.Validate())
}

func TestProcessorOptions(t *testing.T) {
	cfg := Default()
	cfg.Input = "clip.mp4"
	cfg.Preview = true
	cfg.Shape = visuals.ShapeCircle
	cfg.Tracker.MaxDisappeared = 7
	opts := cfg.ProcessorOptions()

	assert.True(t, opts.Preview)
	assert.Equal(t, visuals.ShapeCircle, opts.Shape)
	assert.Equal(t, 7, opts.MaxDisappeared)
	assert.Equal(t, cfg.Detection, opts.Detection)
	assert.Equal(t, cfg.Visuals, opts.Visuals)
	assert.Equal(t, "clip_tracked.mp4", opts.OutputPath)
}
