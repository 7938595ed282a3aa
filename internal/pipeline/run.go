package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"gifmaker/internal/failures"
	"gifmaker/internal/frames"
	"gifmaker/internal/gifenc"
	"gifmaker/internal/logging"
	"gifmaker/internal/progress"
)

// DefaultOutputName is the artifact written beside the input directory.
const DefaultOutputName = "out.gif"

// Options carries the ambient collaborators and policies of a run.
type Options struct {
	// OutputName replaces DefaultOutputName when set.
	OutputName string
	Dimensions gifenc.DimensionPolicy
	Logger     *slog.Logger
	Reporter   progress.Reporter
}

// Result summarizes a successful run.
type Result struct {
	OutputPath string
	Frames     int
	Width      int
	Height     int
	Bytes      int64
	Elapsed    time.Duration
}

// OutputPath returns where a run over dir publishes its GIF: name inside the
// parent of dir. Relative directories are resolved against the working
// directory first, so "." writes beside the current directory.
func OutputPath(dir, name string) (string, error) {
	if name == "" {
		name = DefaultOutputName
	}
	abs, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return "", failures.Wrap(failures.ErrInvalidDirectory, "resolve output", fmt.Sprintf("resolve %s", dir), err)
	}
	return filepath.Join(filepath.Dir(abs), name), nil
}

// Run loads every frame in args.Dir and encodes them into a looping GIF.
func Run(ctx context.Context, args Args, opts Options) (Result, error) {
	start := time.Now()
	logger := logging.NewComponentLogger(opts.Logger, "pipeline")
	reporter := opts.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}

	outputPath, err := OutputPath(args.Dir, opts.OutputName)
	if err != nil {
		return Result{}, err
	}
	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_started"),
		logging.String(logging.FieldPath, args.Dir),
		logging.String("output_path", outputPath),
		logging.Int("interior_delay_cs", int(args.Policy.Interior)),
		logging.Int("boundary_delay_cs", int(args.Policy.Boundary)),
	)

	set, err := frames.Load(ctx, args.Dir, frames.Options{Logger: opts.Logger, Reporter: reporter})
	if err != nil {
		return Result{}, err
	}

	encoded, err := gifenc.EncodeSet(ctx, set, outputPath, args.Policy, gifenc.Options{
		Dimensions: opts.Dimensions,
		Logger:     opts.Logger,
		Reporter:   reporter,
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{
		OutputPath: encoded.Path,
		Frames:     encoded.Frames,
		Width:      encoded.Width,
		Height:     encoded.Height,
		Bytes:      encoded.Bytes,
		Elapsed:    time.Since(start),
	}
	logger.Info("gif written",
		logging.String(logging.FieldEventType, "run_completed"),
		logging.String(logging.FieldPath, result.OutputPath),
		logging.Int(logging.FieldFrameCount, result.Frames),
		logging.String("size", humanize.Bytes(uint64(result.Bytes))),
		logging.String("canvas", fmt.Sprintf("%dx%d", result.Width, result.Height)),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// Summary renders a one-line human description of r.
func (r Result) Summary() string {
	return fmt.Sprintf("%s: %d frames, %dx%d, %s in %s",
		r.OutputPath, r.Frames, r.Width, r.Height,
		humanize.Bytes(uint64(r.Bytes)), r.Elapsed.Round(time.Millisecond))
}
