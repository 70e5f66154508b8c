package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100">
  <rect x="0" y="0" width="200" height="100" fill="#1e3a5f"/>
</svg>`

func TestRasterizeSVGToImage(t *testing.T) {
	tests := []struct {
		name             string
		targetW, targetH int
		wantW, wantH     int
	}{
		{"intrinsic size", 0, 0, 200, 100},
		{"width only", 400, 0, 400, 200},
		{"height only", 0, 50, 100, 50},
		{"fit box", 400, 100, 200, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := RasterizeSVGToImage([]byte(testSVG), tt.targetW, tt.targetH)
			if err != nil {
				t.Fatalf("RasterizeSVGToImage() error = %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("bounds = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRasterizeSVGToImageBad(t *testing.T) {
	// Both decode to an icon without a single path, which must be rejected
	// rather than silently rendered as a blank image.
	t.Run("not xml", func(t *testing.T) {
		if _, err := RasterizeSVGToImage([]byte("not an svg"), 0, 0); err == nil {
			t.Error("Expected error for invalid SVG data")
		}
	})
	t.Run("no drawable content", func(t *testing.T) {
		empty := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"></svg>`
		if _, err := RasterizeSVGToImage([]byte(empty), 0, 0); err == nil {
			t.Error("Expected error for SVG without drawable elements")
		}
	})
}

func TestRasterizeSVGClampsDimensions(t *testing.T) {
	img, err := RasterizeSVGToImage([]byte(testSVG), 100000, 0)
	if err != nil {
		t.Fatalf("RasterizeSVGToImage() error = %v", err)
	}
	b := img.Bounds()
	if b.Dx() > maxRasterDim || b.Dy() > maxRasterDim {
		t.Errorf("bounds = %dx%d exceed clamp %d", b.Dx(), b.Dy(), maxRasterDim)
	}
}

func TestEncodeJPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 10))
	data, err := EncodeJPEG(src, 85)
	if err != nil {
		t.Fatalf("EncodeJPEG() error = %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("produced data does not decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("bounds = %v", b)
	}
}

func TestIsGrayscale(t *testing.T) {
	t.Run("gray type", func(t *testing.T) {
		if !IsGrayscale(image.NewGray(image.Rect(0, 0, 2, 2))) {
			t.Error("Gray image should be grayscale")
		}
	})

	t.Run("rgba gray content", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				img.Set(x, y, color.RGBA{120, 120, 120, 255})
			}
		}
		if !IsGrayscale(img) {
			t.Error("uniform gray RGBA should be grayscale")
		}
	})

	t.Run("colored", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		img.Set(1, 1, color.RGBA{200, 10, 10, 255})
		if IsGrayscale(img) {
			t.Error("colored image should not be grayscale")
		}
	})
}
