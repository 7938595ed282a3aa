package gifenc

import (
	"context"

	"gifmaker/internal/failures"
	"gifmaker/internal/frames"
	"gifmaker/internal/logging"
	"gifmaker/internal/timing"
)

// Result describes a published GIF.
type Result struct {
	Path   string
	Frames int
	Width  int
	Height int
	Bytes  int64
}

// EncodeSet writes every frame of set to path in order, using policy for the
// per-frame delay. The canvas takes the first frame's size. Frames are
// released from set as they are written. Nothing is published unless every
// frame is written.
func EncodeSet(ctx context.Context, set frames.Set, path string, policy timing.Policy, opts Options) (Result, error) {
	if len(set) == 0 {
		return Result{}, failures.Wrap(failures.ErrEmptyDirectory, "encode", "no frames to encode", nil)
	}
	logger := opts.logger()
	reporter := opts.reporter()

	width, height := set[0].Width(), set[0].Height()
	enc, err := Create(path, width, height, opts)
	if err != nil {
		return Result{}, err
	}

	total := len(set)
	reporter.EncodeStarted(total)
	for i := range set {
		if err := ctx.Err(); err != nil {
			enc.Abort()
			return Result{}, err
		}
		index := i + 1
		delay := policy.DelayFor(index, total)
		if err := enc.WriteFrame(set[i].Image, delay); err != nil {
			enc.Abort()
			logging.ErrorWithContext(logger, "frame write failed", "frame_write_failed",
				logging.String(logging.FieldPath, set[i].Path),
				logging.Int(logging.FieldFrameIndex, index),
				logging.Int(logging.FieldFrameCount, total),
				logging.Error(err),
			)
			return Result{}, err
		}
		logger.Debug("frame written",
			logging.Int(logging.FieldFrameIndex, index),
			logging.Int(logging.FieldFrameCount, total),
			logging.Int(logging.FieldDelay, int(delay)),
			logging.String(logging.FieldPath, set[i].Path),
		)
		set[i].Image = nil
		reporter.FrameWritten(index, total)
	}

	size, err := enc.Close()
	if err != nil {
		return Result{}, err
	}
	reporter.Done()
	return Result{
		Path:   path,
		Frames: total,
		Width:  width,
		Height: height,
		Bytes:  size,
	}, nil
}
