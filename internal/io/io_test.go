package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestImageService_Describe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.jpg")
	writePNG(t, path, 40, 20)

	info, err := NewImageService().Describe(path)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	// Extension says jpg, content is png.
	if info.Format != "png" || info.Width != 40 || info.Height != 20 {
		t.Errorf("Describe() = %+v, want png 40x20", info)
	}
	if info.String() != "png 40x20" {
		t.Errorf("String() = %q", info.String())
	}
}

func TestImageService_DescribeNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewImageService().Describe(path); err == nil {
		t.Error("Describe() expected error for non-image content")
	}
}

func TestImageService_WritePreview(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "image.jpg")
	dst := SiblingPath(src, "_preview")
	writePNG(t, src, 300, 150)

	if err := NewImageService().WritePreview(context.Background(), src, dst, 100); err != nil {
		t.Fatalf("WritePreview() error = %v", err)
	}

	info, err := NewImageService().Describe(dst)
	if err != nil {
		t.Fatalf("Describe(preview) error = %v", err)
	}
	if info.Format != "jpeg" {
		t.Errorf("preview format = %s, want jpeg", info.Format)
	}
	if info.Width != 100 || info.Height != 50 {
		t.Errorf("preview size = %dx%d, want 100x50", info.Width, info.Height)
	}
}

func TestSiblingPath(t *testing.T) {
	tests := []struct {
		path, suffix, want string
	}{
		{"./out/image.jpg", "_preview", "./out/image_preview.jpg"},
		{"image", "_x", "image_x"},
		{"/a.b/music.mp3", ".bak", "/a.b/music.bak.mp3"},
	}

	for _, tt := range tests {
		if got := SiblingPath(tt.path, tt.suffix); got != tt.want {
			t.Errorf("SiblingPath(%q, %q) = %q, want %q", tt.path, tt.suffix, got, tt.want)
		}
	}
}

func TestEnsureParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "played.m3u")
	if err := EnsureParentDir(path); err != nil {
		t.Fatalf("EnsureParentDir() error = %v", err)
	}
	if err := WriteFile(context.Background(), path, []byte("x")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}
