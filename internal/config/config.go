package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/LdDl/blobtrack/detect"
	"github.com/LdDl/blobtrack/mot"
	"github.com/LdDl/blobtrack/pipeline"
	"github.com/LdDl/blobtrack/visuals"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the whole run configuration as stored in YAML file
type Config struct {
	Input string `yaml:"input"`
	// Empty means "<input base>_tracked.mp4"
	Output    string            `yaml:"output,omitempty"`
	Preview   bool              `yaml:"preview"`
	Debug     bool              `yaml:"debug"`
	Shape     visuals.ShapeKind `yaml:"shape"`
	LogLevel  string            `yaml:"log_level"`
	Tracker   Tracker           `yaml:"tracker"`
	Detection detect.Parameters `yaml:"detection"`
	Visuals   visuals.Settings  `yaml:"visuals"`
}

// Tracker holds CentroidTracker settings
type Tracker struct {
	MaxDisappeared int                 `yaml:"max_disappeared"`
	Unmatched      mot.UnmatchedPolicy `yaml:"unmatched"`
}

// Default returns configuration with every default value filled except input
func Default() Config {
	return Config{
		Shape:    visuals.ShapeSquare,
		LogLevel: "info",
		Tracker: Tracker{
			MaxDisappeared: mot.DefaultMaxDisappeared,
			Unmatched:      mot.UnmatchedDiscard,
		},
		Detection: detect.DefaultParameters(),
		Visuals:   visuals.DefaultSettings(),
	}
}

// Load reads YAML file on top of defaults: keys missing in the file keep default values
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "can't read config '%s'", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "can't parse config '%s'", path)
	}
	return cfg, nil
}

// Save writes configuration as YAML
func (cfg Config) Save(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "can't encode config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "can't write config '%s'", path)
}

// Validate rejects structurally broken configuration. Numeric values are not range-checked:
// detector treats odd values as "nothing passes"
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Input) == "" {
		return errors.New("input video is not set")
	}
	if _, err := cfg.Level(); err != nil {
		return err
	}
	if cfg.Tracker.MaxDisappeared < 0 {
		return errors.Errorf("max_disappeared must be non-negative, got %d", cfg.Tracker.MaxDisappeared)
	}
	if cfg.Visuals.MaxBlobs < 0 {
		return errors.Errorf("max_blobs must be non-negative, got %d", cfg.Visuals.MaxBlobs)
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error"). Empty means info
func (cfg Config) Level() (slog.Level, error) {
	var level slog.Level
	if cfg.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return slog.LevelInfo, errors.Wrapf(err, "bad log level '%s'", cfg.LogLevel)
	}
	return level, nil
}

// OutputPath returns export destination
func (cfg Config) OutputPath() string {
	if cfg.Output != "" {
		return cfg.Output
	}
	return pipeline.OutputPath(cfg.Input)
}

// ProcessorOptions converts configuration to pipeline options
func (cfg Config) ProcessorOptions() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Preview = cfg.Preview
	opts.Debug = cfg.Debug
	opts.Shape = cfg.Shape
	opts.Detection = cfg.Detection
	opts.Visuals = cfg.Visuals
	opts.MaxDisappeared = cfg.Tracker.MaxDisappeared
	opts.Unmatched = cfg.Tracker.Unmatched
	opts.OutputPath = cfg.OutputPath()
	return opts
}
