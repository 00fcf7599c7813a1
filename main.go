package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmcgill/go-pathtracer/pkg/ppm"
	"github.com/jmcgill/go-pathtracer/pkg/renderer"
	"github.com/jmcgill/go-pathtracer/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "cover", "Scene type: 'cover' or 'test'")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	depth := flag.Int("depth", 0, "Maximum ray bounce depth (0 = scene default)")
	workers := flag.Int("workers", 0, "Number of render workers (0 = CPU count)")
	tileSize := flag.Int("tile", 64, "Tile edge length in pixels")
	seed := flag.Int64("seed", 42, "Base random seed")
	output := flag.String("out", filepath.Join("output", "image.ppm"), "Output image path")
	checkpoint := flag.String("checkpoint", "", "Save a render checkpoint to this path")
	resume := flag.String("resume", "", "Resume from a render checkpoint")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Path Tracer")
		fmt.Println("Usage: pathtracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  cover - Ground sphere, three feature spheres and a field of small random spheres")
		fmt.Println("  test  - Small fixed scene with one sphere of each material")
		fmt.Println()
		fmt.Println("Output format is chosen by extension: .ppm (default) or .png")
		return
	}

	if err := run(*sceneType, *width, *samples, *depth, *workers, *tileSize, *seed, *output, *checkpoint, *resume); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sceneType string, width, samples, depth, workers, tileSize int, seed int64, output, checkpoint, resume string) error {
	sc, err := buildScene(sceneType, seed)
	if err != nil {
		return err
	}

	// Command-line overrides on top of the scene's camera defaults
	if width > 0 {
		sc.CameraConfig.ImageWidth = width
	}
	if samples > 0 {
		sc.CameraConfig.SamplesPerPixel = samples
	}
	if depth > 0 {
		sc.CameraConfig.MaxDepth = depth
	}

	camera := renderer.NewCamera(sc.CameraConfig)
	renderConfig := renderer.RenderConfig{
		TileSize:   tileSize,
		NumWorkers: workers,
		Seed:       seed,
	}
	raytracer := renderer.NewRaytracer(sc, camera, renderConfig, renderer.NewDefaultLogger())

	// Open the output before rendering so a bad path fails fast instead
	// of after minutes of work
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	outFile, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	fb := renderer.NewFramebuffer(camera.ImageWidth(), camera.ImageHeight())
	if resume != "" {
		fb, err = renderer.LoadCheckpoint(resume)
		if err != nil {
			return err
		}
		if fb.Width != camera.ImageWidth() || fb.Height != camera.ImageHeight() {
			return fmt.Errorf("checkpoint is %dx%d but camera renders %dx%d",
				fb.Width, fb.Height, camera.ImageWidth(), camera.ImageHeight())
		}
		fmt.Printf("Resuming from %s\n", resume)
	}

	fmt.Printf("Rendering %q scene at %dx%d, %d samples/pixel...\n",
		sceneType, camera.ImageWidth(), camera.ImageHeight(), camera.SamplesPerPixel())

	stats, err := raytracer.RenderInto(context.Background(), fb, camera.SamplesPerPixel())
	if err != nil {
		return err
	}
	fmt.Printf("Render completed in %v (%.1f samples/pixel)\n", stats.Elapsed, stats.AverageSamples)

	if checkpoint != "" {
		if err := renderer.SaveCheckpoint(checkpoint, fb); err != nil {
			return err
		}
		fmt.Printf("Checkpoint saved as %s\n", checkpoint)
	}

	if err := writeImage(outFile, output, fb); err != nil {
		return err
	}
	fmt.Printf("Image saved as %s\n", output)
	return nil
}

// buildScene maps a scene name to its builder
func buildScene(sceneType string, seed int64) (*scene.Scene, error) {
	switch sceneType {
	case "cover":
		return scene.NewCoverScene(seed), nil
	case "test":
		return scene.NewTestScene(), nil
	default:
		return nil, fmt.Errorf("unknown scene type %q", sceneType)
	}
}

// writeImage serializes the framebuffer, choosing the format by extension
func writeImage(w io.Writer, path string, fb *renderer.Framebuffer) error {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		if err := png.Encode(w, fb.ToImage()); err != nil {
			return fmt.Errorf("encoding png: %w", err)
		}
		return nil
	}
	return writePPM(w, fb)
}

// writePPM hands the linear pixels to the PPM sink in row-major order,
// top to bottom
func writePPM(w io.Writer, fb *renderer.Framebuffer) error {
	pw, err := ppm.NewWriter(w, fb.Width, fb.Height)
	if err != nil {
		return err
	}
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if err := pw.WriteColor(fb.ColorAt(x, y)); err != nil {
				return err
			}
		}
	}
	return pw.Flush()
}
