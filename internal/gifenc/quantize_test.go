package gifenc

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestQuantizeExactPaletteForFewColours(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff})
	img.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0xff})
	img.SetNRGBA(2, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff})

	paletted, transparent := quantize(img, QuantizeSpeed)
	if transparent != -1 {
		t.Fatalf("transparent index = %d, want -1", transparent)
	}
	if len(paletted.Palette) != 2 {
		t.Fatalf("palette size = %d, want 2", len(paletted.Palette))
	}
	if paletted.Pix[0] != paletted.Pix[2] || paletted.Pix[0] == paletted.Pix[1] {
		t.Fatalf("unexpected indices %v", paletted.Pix)
	}
	if got := paletted.Palette[paletted.Pix[1]]; got != (color.RGBA{R: 200, G: 100, B: 50, A: 0xff}) {
		t.Fatalf("palette entry = %v", got)
	}
}

func TestQuantizeReservesTransparentIndex(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff})

	paletted, transparent := quantize(img, QuantizeSpeed)
	if transparent < 0 {
		t.Fatal("expected a transparent index")
	}
	if int(paletted.Pix[1]) != transparent {
		t.Fatalf("transparent pixel index = %d, want %d", paletted.Pix[1], transparent)
	}
	if int(paletted.Pix[0]) == transparent {
		t.Fatal("opaque pixel mapped to the transparent index")
	}
}

func TestQuantizeFullyTransparentFrame(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	paletted, transparent := quantize(img, QuantizeSpeed)
	if transparent != 0 || len(paletted.Palette) != 1 {
		t.Fatalf("transparent=%d palette=%d, want 0 and 1", transparent, len(paletted.Palette))
	}
}

func TestQuantizeCapsPaletteAt256(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 2), G: uint8(y * 2), B: uint8((x + y) % 256), A: 0xff})
		}
	}
	for _, speed := range []int{1, QuantizeSpeed, 30, 500} {
		paletted, _ := quantize(img, speed)
		if len(paletted.Palette) > maxPaletteSize {
			t.Fatalf("speed %d: palette size %d", speed, len(paletted.Palette))
		}
	}
}

func TestQuantizeHonoursSubImageBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(3, 3, color.NRGBA{R: 255, A: 0xff})
	sub := img.SubImage(image.Rect(2, 2, 4, 4)).(*image.NRGBA)

	paletted, _ := quantize(sub, QuantizeSpeed)
	if paletted.Rect != image.Rect(0, 0, 2, 2) {
		t.Fatalf("rect = %v, want origin-based 2x2", paletted.Rect)
	}
	if got := paletted.Palette[paletted.Pix[3]]; got != (color.RGBA{R: 255, A: 0xff}) {
		t.Fatalf("bottom-right = %v", got)
	}
}

func TestMedianPaletteRespectsLimit(t *testing.T) {
	sample := image.NewNRGBA(image.Rect(0, 0, 1000, 1))
	for i := 0; i < 1000; i++ {
		sample.SetNRGBA(i, 0, color.NRGBA{R: uint8(i), G: uint8(i / 4), B: uint8(i / 8), A: 0xff})
	}
	palette := medianPalette(sample, 16)
	if len(palette) == 0 || len(palette) > 16 {
		t.Fatalf("palette size = %d, want 1..16", len(palette))
	}
	for i, c := range palette {
		if c.(color.RGBA).A != 0xff {
			t.Fatalf("entry %d = %v, want opaque", i, c)
		}
	}
	if got := medianPalette(image.NewNRGBA(image.Rect(0, 0, 0, 1)), 16); len(got) != 0 {
		t.Fatalf("empty sample produced %d entries", len(got))
	}
}

func TestSampleOpaqueUsesStride(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 4))
	for i := 0; i < 40; i++ {
		img.SetNRGBA(i%10, i/10, color.NRGBA{R: uint8(i), A: 0xff})
	}
	img.SetNRGBA(0, 2, color.NRGBA{}) // pixel 20 is transparent

	sample := sampleOpaque(img, QuantizeSpeed)
	if sample.Rect != image.Rect(0, 0, 1, 1) {
		t.Fatalf("sample rect = %v, want one pixel", sample.Rect)
	}
	if got := sample.NRGBAAt(0, 0); got != (color.NRGBA{R: 0, A: 0xff}) {
		t.Fatalf("sampled pixel = %v, want pixel 0", got)
	}
}

func TestSampleOpaqueFallsBackToEveryPixel(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	img.SetNRGBA(3, 0, color.NRGBA{G: 77, A: 0xff})

	sample := sampleOpaque(img, QuantizeSpeed)
	if sample.Rect.Dx() != 1 || sample.NRGBAAt(0, 0) != (color.NRGBA{G: 77, A: 0xff}) {
		t.Fatalf("sample = %v %v, want the single opaque pixel", sample.Rect, sample.Pix)
	}
}

func TestQuantizeManyColoursKeepsTransparentIndex(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 4), B: 128, A: 0xff})
		}
	}
	img.SetNRGBA(10, 10, color.NRGBA{})

	paletted, transparent := quantize(img, QuantizeSpeed)
	if transparent != len(paletted.Palette)-1 || len(paletted.Palette) > maxPaletteSize {
		t.Fatalf("transparent=%d palette=%d", transparent, len(paletted.Palette))
	}
	if int(paletted.ColorIndexAt(10, 10)) != transparent {
		t.Fatal("transparent pixel lost its reserved index")
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if x == 10 && y == 10 {
				continue
			}
			if int(paletted.ColorIndexAt(x, y)) == transparent {
				t.Fatalf("opaque pixel (%d,%d) mapped to the transparent index", x, y)
			}
		}
	}
}

func TestPaletteBits(t *testing.T) {
	tests := map[int]int{1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 16: 4, 17: 5, 255: 8, 256: 8}
	for n, want := range tests {
		if got := paletteBits(n); got != want {
			t.Fatalf("paletteBits(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestBlockWriterSplitsSubBlocks(t *testing.T) {
	var out bytes.Buffer
	bw := &blockWriter{w: &out}
	data := bytes.Repeat([]byte{0xab}, 600)
	if _, err := bw.Write(data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := bw.close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw := out.Bytes()
	var sizes []int
	for len(raw) > 0 {
		n := int(raw[0])
		sizes = append(sizes, n)
		raw = raw[1+n:]
	}
	want := []int{255, 255, 90, 0}
	if len(sizes) != len(want) {
		t.Fatalf("block sizes = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Fatalf("block sizes = %v, want %v", sizes, want)
		}
	}
}

type failingWriter struct {
	remaining int
}

var errDiskFull = errors.New("disk full")

func (f *failingWriter) Write(p []byte) (int, error) {
	if len(p) > f.remaining {
		n := f.remaining
		f.remaining = 0
		return n, errDiskFull
	}
	f.remaining -= len(p)
	return len(p), nil
}

func TestStreamWriterSurfacesWriteFailure(t *testing.T) {
	if _, err := newStreamWriter(&failingWriter{remaining: 4}, 2, 2, DimensionReject); !errors.Is(err, errDiskFull) {
		t.Fatalf("header failure = %v, want disk full", err)
	}

	sw, err := newStreamWriter(&failingWriter{remaining: 40}, 2, 2, DimensionReject)
	if err != nil {
		t.Fatalf("newStreamWriter: %v", err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	if err := sw.writeFrame(img, 10); !errors.Is(err, errDiskFull) {
		t.Fatalf("frame failure = %v, want disk full", err)
	}
}

func TestStreamWriterFitPolicies(t *testing.T) {
	reject, err := newStreamWriter(&bytes.Buffer{}, 4, 4, DimensionReject)
	if err != nil {
		t.Fatalf("newStreamWriter: %v", err)
	}
	if _, err := reject.fit(image.NewNRGBA(image.Rect(0, 0, 2, 4))); err == nil {
		t.Fatal("reject policy accepted a smaller frame")
	}

	clip, err := newStreamWriter(&bytes.Buffer{}, 4, 4, DimensionClip)
	if err != nil {
		t.Fatalf("newStreamWriter: %v", err)
	}
	got, err := clip.fit(image.NewNRGBA(image.Rect(0, 0, 8, 2)))
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if got.Rect != image.Rect(0, 0, 4, 2) {
		t.Fatalf("clipped rect = %v, want 4x2", got.Rect)
	}
}
