package frames

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"log/slog"
	"os"

	// Registered decoders; any format image.Decode recognises is accepted.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"gifmaker/internal/failures"
	"gifmaker/internal/logging"
	"gifmaker/internal/progress"
)

// MaxDimension is the largest width or height a GIF logical screen can hold.
const MaxDimension = 65535

// Frame is one decoded image with straight (non-premultiplied) RGBA pixels
// anchored at the origin.
type Frame struct {
	Path  string
	Key   OrderKey
	Image *image.NRGBA
}

// Width returns the frame width in pixels.
func (f Frame) Width() int {
	if f.Image == nil {
		return 0
	}
	return f.Image.Rect.Dx()
}

// Height returns the frame height in pixels.
func (f Frame) Height() int {
	if f.Image == nil {
		return 0
	}
	return f.Image.Rect.Dy()
}

// Set is an ordered, non-empty sequence of frames.
type Set []Frame

// Options configures Load.
type Options struct {
	Logger   *slog.Logger
	Reporter progress.Reporter
}

// Load lists dir, orders its entries, and decodes every one of them. Any entry
// that is not a decodable image fails the whole load.
func Load(ctx context.Context, dir string, opts Options) (Set, error) {
	logger := logging.NewComponentLogger(opts.Logger, "frames")
	reporter := opts.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}

	candidates, err := Plan(dir)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, failures.Wrap(failures.ErrEmptyDirectory, "load frames", fmt.Sprintf("no images in %s", dir), nil)
	}

	reporter.LoadStarted(len(candidates))
	set := make(Set, 0, len(candidates))
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if candidate.Key.Fallback {
			logging.WarnWithContext(logger, "file name has no numeric prefix; ordering it as 0", "order_key_fallback",
				logging.String(logging.FieldPath, candidate.Path),
				logging.String(logging.FieldErrorHint, "name frames like 1.png, 2.png, 10.png"),
				logging.String(logging.FieldImpact, "frame may appear earlier than intended"),
			)
		}
		reporter.FileLoaded(candidate.Path)

		img, err := Decode(candidate.Path)
		if err != nil {
			return nil, err
		}
		set = append(set, Frame{Path: candidate.Path, Key: candidate.Key, Image: img})
		logger.Debug("frame decoded",
			logging.String(logging.FieldPath, candidate.Path),
			logging.String(logging.FieldOrderKey, candidate.Key.String()),
			logging.Int("width", img.Rect.Dx()),
			logging.Int("height", img.Rect.Dy()),
		)
	}

	logger.Info("frames loaded",
		logging.String(logging.FieldPath, dir),
		logging.Int(logging.FieldFrameCount, len(set)),
		logging.Int("width", set[0].Width()),
		logging.Int("height", set[0].Height()),
	)
	return set, nil
}

// Decode reads the image at path and converts it to NRGBA. Images wider or
// taller than MaxDimension are rejected before their pixels are decoded.
func Decode(path string) (*image.NRGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, failures.Wrap(failures.ErrCorruptImage, "decode frame", path, err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, failures.Wrap(failures.ErrCorruptImage, "decode frame", path, err)
	}
	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return nil, failures.Wrap(failures.ErrCorruptImage, "decode frame",
			fmt.Sprintf("%s is %dx%d; maximum is %d in either axis", path, cfg.Width, cfg.Height, MaxDimension), nil)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, failures.Wrap(failures.ErrCorruptImage, "decode frame", path, err)
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, failures.Wrap(failures.ErrCorruptImage, "decode frame", path, err)
	}
	return toNRGBA(img), nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}
