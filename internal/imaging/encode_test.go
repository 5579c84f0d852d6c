package imaging

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"testing"
)

func TestEncodePreview(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		maxSize int
		wantW   int
		wantH   int
	}{
		{"native size", 40, 20, 0, 40, 20},
		{"fits already", 40, 20, 64, 40, 20},
		{"shrink wide", 200, 100, 50, 50, 25},
		{"shrink tall", 100, 400, 100, 25, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(tt.w, tt.h, color.NRGBA{255, 255, 255, 255})

			result, err := EncodePreview(img, tt.maxSize)
			if err != nil {
				t.Fatalf("EncodePreview failed: %v", err)
			}
			if result.Width != tt.wantW || result.Height != tt.wantH {
				t.Errorf("size: got %dx%d, want %dx%d", result.Width, result.Height, tt.wantW, tt.wantH)
			}
			if result.MimeType != "image/png" {
				t.Errorf("MimeType: got %s", result.MimeType)
			}

			data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
			if err != nil {
				t.Fatalf("invalid base64: %v", err)
			}
			decoded, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("invalid PNG: %v", err)
			}
			if b := decoded.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("decoded size: got %dx%d", b.Dx(), b.Dy())
			}
		})
	}
}

func TestEncodePreview_KeepsTransparency(t *testing.T) {
	img := createInMemoryImage(8, 8, color.NRGBA{0, 0, 0, 0})

	result, err := EncodePreview(img, 0)
	if err != nil {
		t.Fatalf("EncodePreview failed: %v", err)
	}
	data, _ := base64.StdEncoding.DecodeString(result.ImageBase64)
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if _, _, _, a := decoded.At(3, 3).RGBA(); a != 0 {
		t.Errorf("alpha: got %d, want 0", a)
	}
}

func TestEncodePreview_NegativeSize(t *testing.T) {
	img := createInMemoryImage(8, 8, color.White)
	if _, err := EncodePreview(img, -1); err == nil {
		t.Error("EncodePreview should fail for negative size")
	}
}
