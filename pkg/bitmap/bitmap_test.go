package bitmap

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
)

func uniformImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestConvertAllWhite(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"aligned", 64, 16},
		{"ragged height", 20, 11},
		{"single row", 32, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Convert(uniformImage(tt.w, tt.h, color.White), DefaultMaxWidth, DefaultThreshold)
			if m.Width != tt.w || m.Height != tt.h {
				t.Fatalf("dimensions = %dx%d, want %dx%d", m.Width, m.Height, tt.w, tt.h)
			}
			bands := (tt.h + 7) / 8
			if len(m.Data) != tt.w*bands {
				t.Fatalf("data length = %d, want %d", len(m.Data), tt.w*bands)
			}
			for i, b := range m.Data {
				if b != 0 {
					t.Fatalf("byte %d = %x, want 0 (white)", i, b)
				}
			}
		})
	}
}

func TestConvertAllBlack(t *testing.T) {
	m := Convert(uniformImage(8, 8, color.Black), DefaultMaxWidth, DefaultThreshold)
	for i, b := range m.Data {
		if b != 0xFF {
			t.Fatalf("byte %d = %x, want ff", i, b)
		}
	}
}

func TestConvertMSBIsTopPixel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.White)
		}
	}
	img.Set(0, 0, color.Black) // topmost pixel of column 0

	m := Convert(img, DefaultMaxWidth, DefaultThreshold)
	if m.Data[0] != 0x80 {
		t.Errorf("column byte = %x, want 80 (MSB = top pixel)", m.Data[0])
	}
	for i := 1; i < len(m.Data); i++ {
		if m.Data[i] != 0 {
			t.Errorf("byte %d = %x, want 0", i, m.Data[i])
		}
	}
}

func TestConvertPadsLastBandWhite(t *testing.T) {
	// 3 rows of black: only the top 3 bits of each column byte may be set.
	m := Convert(uniformImage(2, 3, color.Black), DefaultMaxWidth, DefaultThreshold)
	for i, b := range m.Data {
		if b != 0xE0 {
			t.Errorf("byte %d = %x, want e0", i, b)
		}
	}
}

func TestConvertScalesDownLargeImages(t *testing.T) {
	m := Convert(uniformImage(768, 100, color.White), 384, DefaultThreshold)
	if m.Width != 384 {
		t.Errorf("width = %d, want 384", m.Width)
	}
	if m.Height != 50 {
		t.Errorf("height = %d, want 50 (aspect preserved)", m.Height)
	}
}

func TestConvertThreshold(t *testing.T) {
	gray := color.Gray{Y: 100}
	// Threshold above the gray value: pixel is black.
	m := Convert(uniformImage(8, 8, gray), DefaultMaxWidth, 128)
	if m.Data[0] != 0xFF {
		t.Errorf("gray 100 under threshold 128: byte = %x, want ff", m.Data[0])
	}
	// Threshold below the gray value: pixel is white.
	m = Convert(uniformImage(8, 8, gray), DefaultMaxWidth, 50)
	if m.Data[0] != 0x00 {
		t.Errorf("gray 100 under threshold 50: byte = %x, want 0", m.Data[0])
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not an image"))
	if err == nil {
		t.Fatal("expected error for undecodable input")
	}
}

func TestRasterHeader(t *testing.T) {
	m := &Monochrome{Data: make([]byte, 20), Width: 20, Height: 300}
	cmd := Raster(m, 0)

	wantPrefix := []byte{0x1D, 'v', '0', 0x00}
	if !bytes.HasPrefix(cmd, wantPrefix) {
		t.Fatalf("header prefix = %x", cmd[:4])
	}
	if cmd[4] != 3 || cmd[5] != 0 { // ceil(20/8) = 3 bytes per row
		t.Errorf("width bytes = %d %d, want 3 0", cmd[4], cmd[5])
	}
	if cmd[6] != 300%256 || cmd[7] != 300/256 {
		t.Errorf("height bytes = %d %d, want %d %d", cmd[6], cmd[7], 300%256, 300/256)
	}
	if len(cmd) != 8+len(m.Data) {
		t.Errorf("command length = %d, want %d", len(cmd), 8+len(m.Data))
	}
}
