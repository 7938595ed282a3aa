package gifenc

import (
	"image"
	"image/color"

	"github.com/soniakeys/quant/median"
)

// QuantizeSpeed is the pixel sampling stride used to build each frame's
// palette when a frame has more than 256 colours. 1 samples every pixel; 30
// is the fastest setting.
const QuantizeSpeed = 20

const (
	maxPaletteSize = 256
	minSpeed       = 1
	maxSpeed       = 30
)

// quantize maps img onto a palette of at most 256 entries. Fully transparent
// pixels share one reserved entry whose index is returned, or -1 when the
// frame is opaque.
func quantize(img *image.NRGBA, speed int) (*image.Paletted, int) {
	speed = min(max(speed, minSpeed), maxSpeed)
	bounds := img.Rect
	width, height := bounds.Dx(), bounds.Dy()

	transparent := hasTransparency(img)
	limit := maxPaletteSize
	if transparent {
		limit--
	}

	palette := exactPalette(img, limit)
	if palette == nil {
		palette = medianPalette(sampleOpaque(img, speed), limit)
	}
	opaque := len(palette)

	transparentIndex := -1
	if transparent {
		transparentIndex = len(palette)
		palette = append(palette, color.RGBA{})
	}

	out := image.NewPaletted(image.Rect(0, 0, width, height), palette)
	cache := make(map[uint32]uint8, opaque)
	for y := 0; y < height; y++ {
		src := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		dst := out.Pix[y*out.Stride : y*out.Stride+width]
		for x := range dst {
			p := src[x*4 : x*4+4 : x*4+4]
			if p[3] == 0 {
				dst[x] = uint8(transparentIndex)
				continue
			}
			key := rgbKey(p[0], p[1], p[2])
			idx, ok := cache[key]
			if !ok {
				idx = nearest(palette[:opaque], p[0], p[1], p[2])
				cache[key] = idx
			}
			dst[x] = idx
		}
	}
	return out, transparentIndex
}

func hasTransparency(img *image.NRGBA) bool {
	bounds := img.Rect
	if bounds.Empty() {
		return false
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, y):img.PixOffset(bounds.Max.X-1, y)+4]
		for i := 3; i < len(row); i += 4 {
			if row[i] == 0 {
				return true
			}
		}
	}
	return false
}

// exactPalette returns every distinct opaque colour in first-seen order, or
// nil when there are more than limit of them.
func exactPalette(img *image.NRGBA, limit int) color.Palette {
	seen := make(map[uint32]struct{}, limit)
	palette := make(color.Palette, 0, limit)
	bounds := img.Rect
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			off := img.PixOffset(x, y)
			p := img.Pix[off : off+4 : off+4]
			if p[3] == 0 {
				continue
			}
			key := rgbKey(p[0], p[1], p[2])
			if _, ok := seen[key]; ok {
				continue
			}
			if len(palette) == limit {
				return nil
			}
			seen[key] = struct{}{}
			palette = append(palette, color.RGBA{R: p[0], G: p[1], B: p[2], A: 0xff})
		}
	}
	return palette
}

// sampleOpaque copies the opaque pixels found at every speed-th position into
// a single-row image. If the stride only lands on transparent pixels every
// pixel is sampled instead.
func sampleOpaque(img *image.NRGBA, speed int) *image.NRGBA {
	bounds := img.Rect
	width := bounds.Dx()
	total := width * bounds.Dy()
	for {
		pix := make([]uint8, 0, 4*(total/speed+1))
		for i := 0; i < total; i += speed {
			off := img.PixOffset(bounds.Min.X+i%width, bounds.Min.Y+i/width)
			p := img.Pix[off : off+4 : off+4]
			if p[3] == 0 {
				continue
			}
			pix = append(pix, p[0], p[1], p[2], 0xff)
		}
		if len(pix) > 0 || speed == 1 {
			n := len(pix) / 4
			return &image.NRGBA{Pix: pix, Stride: len(pix), Rect: image.Rect(0, 0, n, 1)}
		}
		speed = 1
	}
}

// medianPalette builds an adaptive palette of at most limit opaque colours
// from the sampled pixels.
func medianPalette(sample *image.NRGBA, limit int) color.Palette {
	if sample.Rect.Empty() {
		return color.Palette{}
	}
	raw := median.Quantizer(limit).Quantize(make(color.Palette, 0, limit), sample)
	palette := make(color.Palette, 0, min(len(raw), limit))
	for _, c := range raw {
		if len(palette) == limit {
			break
		}
		r, g, b, _ := c.RGBA()
		palette = append(palette, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff})
	}
	if len(palette) == 0 {
		p := sample.Pix
		palette = append(palette, color.RGBA{R: p[0], G: p[1], B: p[2], A: 0xff})
	}
	return palette
}

func nearest(palette color.Palette, r, g, b uint8) uint8 {
	best, bestDist := 0, 1<<31-1
	for i, entry := range palette {
		c := entry.(color.RGBA)
		dr := int(c.R) - int(r)
		dg := int(c.G) - int(g)
		db := int(c.B) - int(b)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			best, bestDist = i, dist
			if dist == 0 {
				break
			}
		}
	}
	return uint8(best)
}

func rgbKey(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}
