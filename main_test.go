package main

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/jmcgill/go-pathtracer/pkg/core"
	"github.com/jmcgill/go-pathtracer/pkg/renderer"
)

func TestBuildScene(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		expectErr bool
	}{
		{"cover scene", "cover", false},
		{"test scene", "test", false},
		{"unknown scene", "gallery", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := buildScene(tt.sceneType, 42)
			if tt.expectErr {
				if err == nil {
					t.Error("Expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected scene to build, got %v", err)
			}
			if len(sc.World.Spheres) == 0 {
				t.Error("Expected a non-empty scene")
			}
		})
	}
}

func TestWritePPM(t *testing.T) {
	fb := renderer.NewFramebuffer(2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			fb.AddSample(x, y, core.NewVec3(0.25, 0.25, 0.25))
		}
	}

	var buf bytes.Buffer
	if err := writePPM(&buf, fb); err != nil {
		t.Fatalf("Expected write to succeed, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3+4 {
		t.Fatalf("Expected header plus 4 pixel lines, got %d lines", len(lines))
	}
	if lines[0] != "P3" || lines[1] != "2 2" || lines[2] != "255" {
		t.Errorf("Unexpected header %q", lines[:3])
	}
	for _, line := range lines[3:] {
		if line != "128 128 128" {
			t.Errorf("Expected gamma-corrected gray pixel, got %q", line)
		}
	}
}

func TestWriteImage_FormatByExtension(t *testing.T) {
	fb := renderer.NewFramebuffer(2, 2)
	fb.AddSample(0, 0, core.NewVec3(1, 0, 0))
	fb.AddSample(1, 1, core.NewVec3(0, 0, 1))
	fb.AddSample(0, 1, core.NewVec3(0, 1, 0))
	fb.AddSample(1, 0, core.NewVec3(1, 1, 1))

	var pngBuf bytes.Buffer
	if err := writeImage(&pngBuf, "render.PNG", fb); err != nil {
		t.Fatalf("Expected png write to succeed, got %v", err)
	}
	img, err := png.Decode(&pngBuf)
	if err != nil {
		t.Fatalf("Expected valid png output, got %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("Expected 2x2 png, got %dx%d", b.Dx(), b.Dy())
	}

	var ppmBuf bytes.Buffer
	if err := writeImage(&ppmBuf, "render.ppm", fb); err != nil {
		t.Fatalf("Expected ppm write to succeed, got %v", err)
	}
	if !strings.HasPrefix(ppmBuf.String(), "P3\n") {
		t.Errorf("Expected ppm output, got %q", ppmBuf.String()[:10])
	}
}
