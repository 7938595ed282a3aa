package gifenc

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"gifmaker/internal/failures"
	"gifmaker/internal/logging"
	"gifmaker/internal/progress"
	"gifmaker/internal/timing"
)

// DimensionPolicy decides what happens to a frame whose size differs from
// the canvas fixed by the first frame.
type DimensionPolicy string

const (
	// DimensionReject fails the run with failures.ErrDimensionMismatch.
	DimensionReject DimensionPolicy = "reject"
	// DimensionClip crops frames larger than the canvas and writes smaller
	// frames at the top-left corner.
	DimensionClip DimensionPolicy = "clip"
)

// ParseDimensionPolicy accepts "reject" or "clip"; empty selects reject.
func ParseDimensionPolicy(value string) (DimensionPolicy, error) {
	switch DimensionPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", DimensionReject:
		return DimensionReject, nil
	case DimensionClip:
		return DimensionClip, nil
	default:
		return "", fmt.Errorf("unknown dimension policy %q (want reject or clip)", value)
	}
}

// Options configures an encoder run.
type Options struct {
	Dimensions DimensionPolicy
	Logger     *slog.Logger
	Reporter   progress.Reporter
}

func (o Options) logger() *slog.Logger {
	return logging.NewComponentLogger(o.Logger, "gifenc")
}

func (o Options) reporter() progress.Reporter {
	if o.Reporter == nil {
		return progress.Nop{}
	}
	return o.Reporter
}

// Encoder writes frames to a temporary file and publishes it at its
// destination on Close.
type Encoder struct {
	path   string
	file   *os.File
	lock   *flock.Flock
	stream *streamWriter
	logger *slog.Logger
	done   bool
}

// Create prepares an encoder for a width x height canvas whose finished
// output will appear at path. The caller must call Close or Abort.
func Create(path string, width, height int, opts Options) (*Encoder, error) {
	logger := opts.logger()
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, failures.Wrap(failures.ErrOutputCreate, "create output", "acquire output lock", err)
	}
	if !locked {
		return nil, failures.Wrap(failures.ErrOutputCreate, "create output",
			fmt.Sprintf("%s is being written by another run", path), nil)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	pattern := "." + strings.TrimSuffix(base, ext) + "-*" + ext + ".tmp"
	file, err := os.CreateTemp(filepath.Dir(path), pattern)
	if err != nil {
		releaseLock(lock, logger)
		return nil, failures.Wrap(failures.ErrOutputCreate, "create output", "open temporary file", err)
	}

	stream, err := newStreamWriter(file, width, height, opts.Dimensions)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		releaseLock(lock, logger)
		return nil, failures.Wrap(failures.ErrEncoderInit, "create output", "write gif header", err)
	}

	logger.Debug("encoder created",
		logging.String(logging.FieldEventType, "encoder_created"),
		logging.String(logging.FieldPath, path),
		logging.String("temp_path", file.Name()),
		logging.Int("width", width),
		logging.Int("height", height),
		logging.Int("quantize_speed", QuantizeSpeed),
	)
	return &Encoder{
		path:   path,
		file:   file,
		lock:   lock,
		stream: stream,
		logger: logger,
	}, nil
}

// Path returns the destination the encoder publishes to.
func (e *Encoder) Path() string {
	return e.path
}

// WriteFrame quantizes img and appends it with the given delay. The encoder
// takes ownership of img; callers must not modify it afterwards.
func (e *Encoder) WriteFrame(img *image.NRGBA, delay timing.Delay) error {
	if e.done {
		return failures.Wrap(failures.ErrFrameWrite, "write frame", "encoder already closed", nil)
	}
	if img == nil || img.Rect.Empty() {
		return failures.Wrap(failures.ErrFrameWrite, "write frame", "frame has no pixels", nil)
	}
	fitted, err := e.stream.fit(img)
	if err != nil {
		return failures.Wrap(failures.ErrDimensionMismatch, "write frame", "frame size differs from canvas", err)
	}
	if err := e.stream.writeFrame(fitted, delay); err != nil {
		return failures.Wrap(failures.ErrFrameWrite, "write frame",
			fmt.Sprintf("write frame %d", e.stream.frames+1), err)
	}
	return nil
}

// Close writes the trailer and renames the temporary file onto the
// destination. It returns the size of the published file. On failure the
// temporary file is removed and nothing is published.
func (e *Encoder) Close() (int64, error) {
	if e.done {
		return 0, failures.Wrap(failures.ErrFrameWrite, "close output", "encoder already closed", nil)
	}
	if err := e.stream.finish(); err != nil {
		e.Abort()
		return 0, failures.Wrap(failures.ErrFrameWrite, "close output", "write gif trailer", err)
	}
	if err := e.file.Sync(); err != nil {
		e.Abort()
		return 0, failures.Wrap(failures.ErrFrameWrite, "close output", "sync output", err)
	}
	info, err := e.file.Stat()
	if err != nil {
		e.Abort()
		return 0, failures.Wrap(failures.ErrFrameWrite, "close output", "stat output", err)
	}
	tempPath := e.file.Name()
	if err := e.file.Close(); err != nil {
		e.Abort()
		return 0, failures.Wrap(failures.ErrFrameWrite, "close output", "close output", err)
	}
	if err := os.Chmod(tempPath, 0o644); err != nil {
		e.Abort()
		return 0, failures.Wrap(failures.ErrOutputCreate, "close output", "set output permissions", err)
	}
	if err := os.Rename(tempPath, e.path); err != nil {
		e.Abort()
		return 0, failures.Wrap(failures.ErrOutputCreate, "close output", "publish output", err)
	}
	e.done = true
	releaseLock(e.lock, e.logger)
	e.logger.Debug("output published",
		logging.String(logging.FieldEventType, "output_published"),
		logging.String(logging.FieldPath, e.path),
		logging.Int(logging.FieldFrameCount, e.stream.frames),
		logging.Int64("bytes", info.Size()),
	)
	return info.Size(), nil
}

// Abort discards everything written so far. It is safe to call more than
// once and after a failed Close.
func (e *Encoder) Abort() {
	if e.done {
		return
	}
	e.done = true
	tempPath := e.file.Name()
	_ = e.file.Close()
	if err := os.Remove(tempPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.WarnWithContext(e.logger, "temporary output not removed", "temp_cleanup",
			logging.String(logging.FieldPath, tempPath),
			logging.String(logging.FieldErrorHint, "delete the file manually"),
			logging.Error(err),
		)
	}
	releaseLock(e.lock, e.logger)
	e.logger.Debug("output discarded",
		logging.String(logging.FieldEventType, "output_discarded"),
		logging.String(logging.FieldPath, e.path),
	)
}

// releaseLock unlocks but leaves the lock file on disk. Removing it would let
// two later runs lock different inodes under the same name.
func releaseLock(lock *flock.Flock, logger *slog.Logger) {
	if err := lock.Unlock(); err != nil {
		logger.Debug("output lock release failed", logging.String(logging.FieldPath, lock.Path()), logging.Error(err))
	}
}
