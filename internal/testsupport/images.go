package testsupport

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// FrameColor returns a distinct opaque colour for the 1-based frame number n.
func FrameColor(n int) color.NRGBA {
	return color.NRGBA{
		R: uint8(n * 37 % 256),
		G: uint8(255 - n*23%256),
		B: uint8(n * 71 % 256),
		A: 0xff,
	}
}

// SolidImage builds a width x height NRGBA image filled with c.
func SolidImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// WritePNG encodes img as a PNG at path, creating parent directories.
func WritePNG(t testing.TB, path string, img image.Image) {
	t.Helper()
	writeImage(t, path, func(f *os.File) error { return png.Encode(f, img) })
}

// WriteJPEG encodes img as a JPEG at path, creating parent directories.
func WriteJPEG(t testing.TB, path string, img image.Image) {
	t.Helper()
	writeImage(t, path, func(f *os.File) error { return jpeg.Encode(f, img, &jpeg.Options{Quality: 95}) })
}

// WriteNumberedPNGs writes 1.png .. count.png into dir, each a solid
// FrameColor(n) image of the given size, and returns their paths in order.
func WriteNumberedPNGs(t testing.TB, dir string, count, width, height int) []string {
	t.Helper()
	paths := make([]string, 0, count)
	for n := 1; n <= count; n++ {
		path := filepath.Join(dir, strconv.Itoa(n)+".png")
		WritePNG(t, path, SolidImage(width, height, FrameColor(n)))
		paths = append(paths, path)
	}
	return paths
}

func writeImage(t testing.TB, path string, encode func(*os.File) error) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}
