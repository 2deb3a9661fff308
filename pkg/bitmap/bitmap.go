// Package bitmap converts raster images into the monochrome bit-packed
// buffers consumed by thermal printer raster commands.
package bitmap

import (
	"image"
	"io"

	// Register decoders for the formats the POS frontend uploads.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/ryanap7/diwan-print-agent/pkg/apperror"
)

// Conversion defaults for 58mm printers (384 dots wide).
const (
	DefaultMaxWidth  = 384
	DefaultThreshold = 128
)

// Monochrome is a 1-bit image packed 8 vertical pixels per byte, MSB on top,
// row-major by 8-pixel band. It is produced per print call and not persisted.
type Monochrome struct {
	Data   []byte
	Width  int
	Height int
}

// BytesPerRow returns the number of bytes covering one pixel row,
// as encoded in the raster command header.
func (m *Monochrome) BytesPerRow() int {
	return (m.Width + 7) / 8
}

// Decode reads and decodes an image from r.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, apperror.NewImageLoadError("failed to decode image: " + err.Error())
	}
	return img, nil
}

// Convert scales img so its longer dimension does not exceed maxWidth,
// converts each pixel to grayscale via channel average, and packs 8
// vertically stacked pixels per byte with the topmost pixel in the MSB.
// Rows past the image height inside the last band are zero-padded (white).
// A grayscale value below threshold is black (bit set).
func Convert(img image.Image, maxWidth, threshold int) *Monochrome {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if threshold <= 0 || threshold > 255 {
		threshold = DefaultThreshold
	}

	img = scaleToFit(img, maxWidth)
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	bands := (height + 7) / 8
	data := make([]byte, width*bands)

	for band := 0; band < bands; band++ {
		for x := 0; x < width; x++ {
			var b byte
			for bit := 0; bit < 8; bit++ {
				y := band*8 + bit
				if y >= height {
					break // white padding
				}
				if grayAt(img, bounds.Min.X+x, bounds.Min.Y+y) < threshold {
					b |= 0x80 >> bit
				}
			}
			data[band*width+x] = b
		}
	}

	return &Monochrome{Data: data, Width: width, Height: height}
}

// Raster wraps a monochrome buffer in a GS v 0 header. Width-bytes and
// height are encoded little-endian, two bytes each.
func Raster(m *Monochrome, mode byte) []byte {
	widthBytes := m.BytesPerRow()
	cmd := make([]byte, 0, len(m.Data)+8)
	cmd = append(cmd,
		0x1D, 'v', '0', mode&0x03,
		byte(widthBytes%256), byte(widthBytes/256),
		byte(m.Height%256), byte(m.Height/256),
	)
	return append(cmd, m.Data...)
}

func scaleToFit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longer := w
	if h > longer {
		longer = h
	}
	if longer <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(longer)
	dstW := int(float64(w) * scale)
	dstH := int(float64(h) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

func grayAt(img image.Image, x, y int) int {
	r, g, b, _ := img.At(x, y).RGBA()
	// 16-bit channels; average then scale down to 0..255.
	return int((r + g + b) / 3 >> 8)
}
