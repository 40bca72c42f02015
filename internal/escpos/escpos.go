// Package escpos encodes the small subset of ESC/POS commands print-relay needs:
// initialization, alignment, bit images, raster images, feeding and cutting.
package escpos

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
)

const (
	esc = 0x1b
	gs  = 0x1d
)

// Alignment is the ESC a argument.
type Alignment byte

const (
	AlignLeft   Alignment = 0
	AlignCenter Alignment = 1
	AlignRight  Alignment = 2
)

// ImageMode selects how an image is transferred to the printer.
type ImageMode string

const (
	ModeS8     ImageMode = "S8"
	ModeD8     ImageMode = "D8"
	ModeS24    ImageMode = "S24"
	ModeD24    ImageMode = "D24"
	ModeRaster ImageMode = "raster"
)

// CutMode selects the GS V function.
type CutMode string

const (
	CutFull    CutMode = "full"
	CutPartial CutMode = "partial"
)

// bitImageMode holds the ESC * m value, the dots per band and the ESC 3 line
// spacing used while the bands are sent.
type bitImageMode struct {
	m           byte
	bandHeight  int
	lineSpacing byte
}

var bitImageModes = map[ImageMode]bitImageMode{
	ModeS8:  {m: 0, bandHeight: 8, lineSpacing: 16},
	ModeD8:  {m: 1, bandHeight: 8, lineSpacing: 16},
	ModeS24: {m: 32, bandHeight: 24, lineSpacing: 24},
	ModeD24: {m: 33, bandHeight: 24, lineSpacing: 24},
}

// ParseImageMode validates a mode name.
func ParseImageMode(s string) (ImageMode, error) {
	m := ImageMode(s)
	if m == ModeRaster {
		return m, nil
	}
	if _, ok := bitImageModes[m]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unsupported image mode %q", s)
}

// Initialize resets the printer (ESC @).
func Initialize() []byte { return []byte{esc, '@'} }

// Align sets justification (ESC a n).
func Align(a Alignment) []byte { return []byte{esc, 'a', byte(a)} }

// Feed prints the buffer and feeds n lines (ESC d n).
func Feed(lines int) []byte {
	if lines <= 0 {
		return nil
	}
	if lines > 255 {
		lines = 255
	}
	return []byte{esc, 'd', byte(lines)}
}

// Cut cuts the paper (GS V 0 for full, GS V 1 for partial).
func Cut(mode CutMode) []byte {
	if mode == CutFull {
		return []byte{gs, 'V', 0}
	}
	return []byte{gs, 'V', 1}
}

// Bitmap is a monochrome image; true pixels are printed dots.
type Bitmap struct {
	Width, Height int
	Pix           []bool
}

// At reports whether the dot at (x, y) is printed. Out of range is blank.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Pix[y*b.Width+x]
}

// Threshold converts img into a Bitmap. A pixel prints when its luminance is
// below 128 and it is mostly opaque.
func Threshold(img image.Image) *Bitmap {
	bounds := img.Bounds()
	bm := &Bitmap{Width: bounds.Dx(), Height: bounds.Dy()}
	bm.Pix = make([]bool, bm.Width*bm.Height)

	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			if c.A < 128 {
				continue
			}
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
			bm.Pix[y*bm.Width+x] = lum < 128
		}
	}
	return bm
}

// Image encodes bm in the given mode.
func Image(bm *Bitmap, mode ImageMode) ([]byte, error) {
	if bm == nil || bm.Width == 0 || bm.Height == 0 {
		return nil, fmt.Errorf("empty image")
	}
	if mode == ModeRaster {
		return Raster(bm), nil
	}
	bim, ok := bitImageModes[mode]
	if !ok {
		return nil, fmt.Errorf("unsupported image mode %q", mode)
	}
	if bm.Width > 0xffff {
		return nil, fmt.Errorf("image too wide: %d dots", bm.Width)
	}
	return bitImage(bm, bim), nil
}

// bitImage emits one ESC * line per band under the mode's line spacing (24 for
// the 24-dot modes, 16 for the 8-dot modes), then restores the default spacing.
func bitImage(bm *Bitmap, mode bitImageMode) []byte {
	var buf bytes.Buffer
	bytesPerColumn := mode.bandHeight / 8

	buf.Write([]byte{esc, '3', mode.lineSpacing})
	for top := 0; top < bm.Height; top += mode.bandHeight {
		buf.Write([]byte{esc, '*', mode.m, byte(bm.Width & 0xff), byte(bm.Width >> 8)})
		for x := 0; x < bm.Width; x++ {
			for k := 0; k < bytesPerColumn; k++ {
				var b byte
				for bit := 0; bit < 8; bit++ {
					if bm.At(x, top+k*8+bit) {
						b |= 0x80 >> bit
					}
				}
				buf.WriteByte(b)
			}
		}
		buf.WriteByte('\n')
	}
	buf.Write([]byte{esc, '2'})
	return buf.Bytes()
}

// Raster encodes bm with GS v 0 in normal density.
func Raster(bm *Bitmap) []byte {
	widthBytes := (bm.Width + 7) / 8
	var buf bytes.Buffer
	buf.Grow(8 + widthBytes*bm.Height)
	buf.Write([]byte{
		gs, 'v', '0', 0,
		byte(widthBytes & 0xff), byte(widthBytes >> 8),
		byte(bm.Height & 0xff), byte(bm.Height >> 8),
	})
	for y := 0; y < bm.Height; y++ {
		for xb := 0; xb < widthBytes; xb++ {
			var b byte
			for bit := 0; bit < 8; bit++ {
				if bm.At(xb*8+bit, y) {
					b |= 0x80 >> bit
				}
			}
			buf.WriteByte(b)
		}
	}
	return buf.Bytes()
}
