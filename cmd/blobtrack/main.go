package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/LdDl/blobtrack/detect"
	"github.com/LdDl/blobtrack/internal/config"
	"github.com/LdDl/blobtrack/mot"
	"github.com/LdDl/blobtrack/pipeline"
	"github.com/LdDl/blobtrack/visuals"
)

func main() {
	configPtr := flag.String("config", "", "Path to YAML configuration file")
	inputPtr := flag.String("input", "", "Input video")
	outputPtr := flag.String("output", "", "Output video (default: <input>_tracked.mp4)")
	modePtr := flag.String("mode", "", "Detection mode: grayscale, edges, color")
	shapePtr := flag.String("shape", "", "Overlay shape: square, circle")
	minAreaPtr := flag.Int("min-area", -1, "Minimum blob area (exclusive)")
	maxAreaPtr := flag.Int("max-area", -1, "Maximum blob area (exclusive)")
	unmatchedPtr := flag.String("unmatched", "", "Leftover detections policy: discard, register")
	logLevelPtr := flag.String("log-level", "", "Log level: debug, info, warn, error")
	dumpPtr := flag.String("dump-config", "", "Write effective configuration to this path and exit")
	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := applyFlags(&cfg, *inputPtr, *outputPtr, *modePtr, *shapePtr, *unmatchedPtr, *logLevelPtr, *minAreaPtr, *maxAreaPtr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *dumpPtr != "" {
		if err := cfg.Save(*dumpPtr); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("blobtrack: run failed", "error", err)
		os.Exit(1)
	}
}

func applyFlags(cfg *config.Config, input, output, mode, shape, unmatched, logLevel string, minArea, maxArea int) error {
	if input != "" {
		cfg.Input = input
	}
	if output != "" {
		cfg.Output = output
	}
	if mode != "" {
		parsed, err := detect.ParseMode(mode)
		if err != nil {
			return err
		}
		cfg.Detection.Mode = parsed
	}
	if shape != "" {
		parsed, err := visuals.ParseShapeKind(shape)
		if err != nil {
			return err
		}
		cfg.Shape = parsed
	}
	if unmatched != "" {
		parsed, err := mot.ParseUnmatchedPolicy(unmatched)
		if err != nil {
			return err
		}
		cfg.Tracker.Unmatched = parsed
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if minArea >= 0 {
		cfg.Detection.MinArea = minArea
	}
	if maxArea >= 0 {
		cfg.Detection.MaxArea = maxArea
	}
	return nil
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	src, err := pipeline.OpenVideo(cfg.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	var sink pipeline.FrameSink
	if !cfg.Preview {
		width, height := src.Size()
		writer, err := pipeline.CreateVideo(cfg.OutputPath(), src.FPS(), width, height)
		if err != nil {
			return err
		}
		defer writer.Close()
		sink = writer
	}

	opts := cfg.ProcessorOptions()
	opts.Logger = logger
	opts.Observer = &progressPrinter{logger: logger}
	return pipeline.NewProcessor(src, sink, opts).Run(ctx)
}

// progressPrinter logs export progress every 10 percent
type progressPrinter struct {
	logger *slog.Logger
	last   int
}

func (p *progressPrinter) OnDuration(totalFrames int) {
	p.logger.Info("blobtrack: video opened", "total_frames", totalFrames)
}

func (p *progressPrinter) OnFrame(update pipeline.FrameUpdate) {}

func (p *progressPrinter) OnProgress(percent int) {
	if percent/10 > p.last/10 {
		p.logger.Info("blobtrack: progress", "percent", percent)
	}
	p.last = percent
}

func (p *progressPrinter) OnFinished(message string) {
	p.logger.Info("blobtrack: " + message)
}
