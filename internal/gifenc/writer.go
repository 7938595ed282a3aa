package gifenc

import (
	"bufio"
	"compress/lzw"
	"fmt"
	"image"
	"image/gif"
	"io"

	"gifmaker/internal/timing"
)

const (
	maxCanvas = 65535

	extensionIntroducer = 0x21
	imageSeparator      = 0x2c
	trailer             = 0x3b

	labelGraphicControl = 0xf9
	labelApplication    = 0xff

	flagColorTable   = 0x80
	flagTransparency = 0x01
)

// streamWriter emits GIF89a blocks to an underlying writer. It knows nothing
// about files; Encoder owns the temp file and publication.
type streamWriter struct {
	w      *bufio.Writer
	width  int
	height int
	policy DimensionPolicy
	speed  int
	frames int
	buf    [16]byte
}

func newStreamWriter(w io.Writer, width, height int, policy DimensionPolicy) (*streamWriter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas %dx%d has no area", width, height)
	}
	if width > maxCanvas || height > maxCanvas {
		return nil, fmt.Errorf("canvas %dx%d exceeds %d pixels per side", width, height, maxCanvas)
	}
	sw := &streamWriter{
		w:      bufio.NewWriter(w),
		width:  width,
		height: height,
		policy: policy,
		speed:  QuantizeSpeed,
	}
	if err := sw.writeHeader(); err != nil {
		return nil, err
	}
	return sw, nil
}

func (s *streamWriter) writeHeader() error {
	if _, err := s.w.WriteString("GIF89a"); err != nil {
		return err
	}
	// Logical screen descriptor. Every frame carries a local colour table so
	// the global table flag stays clear.
	putUint16(s.buf[0:], uint16(s.width))
	putUint16(s.buf[2:], uint16(s.height))
	s.buf[4] = 0x00
	s.buf[5] = 0x00
	s.buf[6] = 0x00
	if _, err := s.w.Write(s.buf[:7]); err != nil {
		return err
	}

	// NETSCAPE2.0 application extension, loop count 0 repeats forever.
	if _, err := s.w.Write([]byte{extensionIntroducer, labelApplication, 0x0b}); err != nil {
		return err
	}
	if _, err := s.w.WriteString("NETSCAPE2.0"); err != nil {
		return err
	}
	if _, err := s.w.Write([]byte{0x03, 0x01, 0x00, 0x00, 0x00}); err != nil {
		return err
	}
	return s.w.Flush()
}

// fit applies the dimension policy to one frame.
func (s *streamWriter) fit(img *image.NRGBA) (*image.NRGBA, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == s.width && h == s.height {
		return img, nil
	}
	if s.policy != DimensionClip {
		return nil, fmt.Errorf("frame is %dx%d, canvas is %dx%d", w, h, s.width, s.height)
	}
	if w <= s.width && h <= s.height {
		return img, nil
	}
	crop := image.Rect(img.Rect.Min.X, img.Rect.Min.Y, img.Rect.Min.X+min(w, s.width), img.Rect.Min.Y+min(h, s.height))
	return img.SubImage(crop).(*image.NRGBA), nil
}

func (s *streamWriter) writeFrame(img *image.NRGBA, delay timing.Delay) error {
	paletted, transparent := quantize(img, s.speed)
	if err := s.writeGraphicControl(delay, transparent); err != nil {
		return err
	}
	if err := s.writeImageDescriptor(paletted); err != nil {
		return err
	}
	if err := s.writeImageData(paletted); err != nil {
		return err
	}
	if err := s.w.Flush(); err != nil {
		return err
	}
	s.frames++
	return nil
}

func (s *streamWriter) writeGraphicControl(delay timing.Delay, transparent int) error {
	s.buf[0] = extensionIntroducer
	s.buf[1] = labelGraphicControl
	s.buf[2] = 0x04
	s.buf[3] = gif.DisposalNone << 2
	putUint16(s.buf[4:], uint16(delay))
	s.buf[6] = 0x00
	if transparent >= 0 {
		s.buf[3] |= flagTransparency
		s.buf[6] = uint8(transparent)
	}
	s.buf[7] = 0x00
	_, err := s.w.Write(s.buf[:8])
	return err
}

func (s *streamWriter) writeImageDescriptor(img *image.Paletted) error {
	bits := paletteBits(len(img.Palette))
	s.buf[0] = imageSeparator
	putUint16(s.buf[1:], 0)
	putUint16(s.buf[3:], 0)
	putUint16(s.buf[5:], uint16(img.Rect.Dx()))
	putUint16(s.buf[7:], uint16(img.Rect.Dy()))
	s.buf[9] = flagColorTable | uint8(bits-1)
	if _, err := s.w.Write(s.buf[:10]); err != nil {
		return err
	}

	table := make([]byte, 3<<bits)
	for i, c := range img.Palette {
		r, g, b, _ := c.RGBA()
		table[3*i+0] = uint8(r >> 8)
		table[3*i+1] = uint8(g >> 8)
		table[3*i+2] = uint8(b >> 8)
	}
	_, err := s.w.Write(table)
	return err
}

func (s *streamWriter) writeImageData(img *image.Paletted) error {
	litWidth := max(paletteBits(len(img.Palette)), 2)
	if err := s.w.WriteByte(uint8(litWidth)); err != nil {
		return err
	}
	bw := &blockWriter{w: s.w}
	lw := lzw.NewWriter(bw, lzw.LSB, litWidth)
	width := img.Rect.Dx()
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width]
		if _, err := lw.Write(row); err != nil {
			_ = lw.Close()
			return err
		}
	}
	if err := lw.Close(); err != nil {
		return err
	}
	return bw.close()
}

func (s *streamWriter) finish() error {
	if err := s.w.WriteByte(trailer); err != nil {
		return err
	}
	return s.w.Flush()
}

// blockWriter splits LZW output into data sub-blocks of at most 255 bytes
// and terminates the sequence with an empty block.
type blockWriter struct {
	w   io.Writer
	buf [256]byte
	n   int
	err error
}

func (b *blockWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		if b.err != nil {
			return written, b.err
		}
		n := copy(b.buf[1+b.n:], p)
		b.n += n
		written += n
		p = p[n:]
		if b.n == 255 {
			b.flush()
		}
	}
	return written, b.err
}

func (b *blockWriter) flush() {
	if b.n == 0 || b.err != nil {
		return
	}
	b.buf[0] = uint8(b.n)
	if _, err := b.w.Write(b.buf[:b.n+1]); err != nil {
		b.err = err
		return
	}
	b.n = 0
}

func (b *blockWriter) close() error {
	b.flush()
	if b.err != nil {
		return b.err
	}
	_, err := b.w.Write([]byte{0x00})
	return err
}

// paletteBits is the smallest colour table exponent holding n entries. GIF
// tables hold between 2 and 256 colours.
func paletteBits(n int) int {
	bits := 1
	for 1<<bits < n {
		bits++
	}
	return bits
}

func putUint16(b []byte, v uint16) {
	b[0] = uint8(v)
	b[1] = uint8(v >> 8)
}
