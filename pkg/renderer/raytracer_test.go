package renderer

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/jmcgill/go-pathtracer/pkg/core"
	"github.com/jmcgill/go-pathtracer/pkg/geometry"
	"github.com/jmcgill/go-pathtracer/pkg/material"
)

// testScene is a minimal renderer.Scene for unit tests
type testScene struct {
	world     *geometry.World
	materials []material.Material
}

func newTestScene() *testScene {
	return &testScene{world: geometry.NewWorld()}
}

func (s *testScene) addSphere(center core.Vec3, radius float64, m material.Material) {
	s.materials = append(s.materials, m)
	s.world.Add(geometry.NewSphere(center, radius, material.ID(len(s.materials)-1)))
}

func (s *testScene) Hit(ray core.Ray, tRange core.Interval) (material.HitRecord, bool) {
	return s.world.Hit(ray, tRange)
}

func (s *testScene) MaterialAt(id material.ID) material.Material {
	return s.materials[id]
}

func newTestRaytracer(scene Scene, config CameraConfig) *Raytracer {
	return NewRaytracer(scene, NewCamera(config), DefaultRenderConfig(), NewDefaultLogger())
}

func TestRayColor_DepthZeroIsBlack(t *testing.T) {
	scene := newTestScene()
	scene.addSphere(core.NewVec3(0, 0, -2), 1, material.Lambertian(core.NewVec3(0.5, 0.5, 0.5)))
	rt := newTestRaytracer(scene, DefaultCameraConfig())
	rng := rand.New(rand.NewSource(42))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if got := rt.RayColor(ray, rng, 0); got != (core.Vec3{}) {
		t.Errorf("Expected black at depth 0, got %v", got)
	}
}

func TestRayColor_BackgroundGradient(t *testing.T) {
	rt := newTestRaytracer(newTestScene(), DefaultCameraConfig())
	rng := rand.New(rand.NewSource(42))

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up is sky blue", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down is white", core.NewVec3(0, -1, 0), core.NewVec3(1.0, 1.0, 1.0)},
		{"horizon is the midpoint", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			got := rt.RayColor(ray, rng, 10)
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRayColor_HitReportsNearSurface(t *testing.T) {
	// A sphere one unit down the view axis: the near surface sits at t=1
	// with its normal facing back at the camera
	scene := newTestScene()
	scene.addSphere(core.NewVec3(0, 0, -2), 1, material.Lambertian(core.NewVec3(0.5, 0.5, 0.5)))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, ok := scene.Hit(ray, core.NewInterval(0.001, math.Inf(1)))
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected near surface at t=1, got t=%f", hit.T)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
}

func TestRayColor_SingleBounceIsAttenuatedBackground(t *testing.T) {
	// A perfect mirror makes the bounce deterministic: hitting the pole
	// of the sphere head-on reflects the ray straight back along +z,
	// which sees the horizon midpoint of the background
	scene := newTestScene()
	scene.addSphere(core.NewVec3(0, 0, -2), 1, material.Metal(core.NewVec3(0.8, 0.8, 0.8), 0))
	rt := newTestRaytracer(scene, DefaultCameraConfig())
	rng := rand.New(rand.NewSource(42))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	got := rt.RayColor(ray, rng, 5)

	horizon := core.NewVec3(0.75, 0.85, 1.0)
	expected := horizon.MultiplyVec(core.NewVec3(0.8, 0.8, 0.8))

	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected attenuated background %v, got %v", expected, got)
	}
}

func TestRayColor_AbsorptionIsBlack(t *testing.T) {
	// Depth 1 on a diffuse sphere: the scatter consumes the last depth
	// step, so no light is gathered
	scene := newTestScene()
	scene.addSphere(core.NewVec3(0, 0, -2), 1, material.Lambertian(core.NewVec3(0.5, 0.5, 0.5)))
	rt := newTestRaytracer(scene, DefaultCameraConfig())
	rng := rand.New(rand.NewSource(42))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if got := rt.RayColor(ray, rng, 1); got != (core.Vec3{}) {
		t.Errorf("Expected black when depth runs out on a bounce, got %v", got)
	}
}

func TestRender_Deterministic(t *testing.T) {
	config := CameraConfig{
		AspectRatio:     2.0,
		ImageWidth:      40,
		SamplesPerPixel: 4,
		MaxDepth:        5,
		VerticalFOV:     90,
		Position:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		Aperture:        0.1,
		FocusDistance:   2,
	}

	render := func(workers int) *Framebuffer {
		scene := newTestScene()
		scene.addSphere(core.NewVec3(0, 0, -2), 0.5, material.Lambertian(core.NewVec3(0.7, 0.3, 0.3)))
		scene.addSphere(core.NewVec3(0, -100.5, -2), 100, material.Metal(core.NewVec3(0.8, 0.8, 0.8), 0.2))
		rt := NewRaytracer(scene, NewCamera(config), RenderConfig{
			TileSize:   16,
			NumWorkers: workers,
			Seed:       42,
		}, NewDefaultLogger())
		fb, _, err := rt.Render(context.Background())
		if err != nil {
			t.Fatalf("Expected render to succeed, got %v", err)
		}
		return fb
	}

	first := render(1)
	second := render(1)
	parallel := render(4)

	for y := 0; y < first.Height; y++ {
		for x := 0; x < first.Width; x++ {
			if first.ColorAt(x, y) != second.ColorAt(x, y) {
				t.Fatalf("Expected identical renders for a fixed seed, pixel (%d,%d) differs", x, y)
			}
			if first.ColorAt(x, y) != parallel.ColorAt(x, y) {
				t.Fatalf("Expected worker count not to change output, pixel (%d,%d) differs", x, y)
			}
		}
	}
}

func TestRender_CoversEveryPixel(t *testing.T) {
	config := DefaultCameraConfig()
	config.ImageWidth = 30
	config.SamplesPerPixel = 2

	scene := newTestScene()
	scene.addSphere(core.NewVec3(0, 0, -2), 0.5, material.Lambertian(core.NewVec3(0.5, 0.5, 0.5)))
	rt := NewRaytracer(scene, NewCamera(config), RenderConfig{TileSize: 8, Seed: 1}, NewDefaultLogger())

	fb, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Expected render to succeed, got %v", err)
	}

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if got := fb.SampleCount(x, y); got != config.SamplesPerPixel {
				t.Fatalf("Expected %d samples at (%d,%d), got %d", config.SamplesPerPixel, x, y, got)
			}
		}
	}
	if expected := config.SamplesPerPixel * fb.Width * fb.Height; stats.TotalSamples != expected {
		t.Errorf("Expected %d total samples, got %d", expected, stats.TotalSamples)
	}
}

func TestRenderInto_ResumesToHigherTarget(t *testing.T) {
	config := DefaultCameraConfig()
	config.ImageWidth = 16
	config.SamplesPerPixel = 8

	scene := newTestScene()
	scene.addSphere(core.NewVec3(0, 0, -2), 0.5, material.Lambertian(core.NewVec3(0.5, 0.5, 0.5)))
	rt := NewRaytracer(scene, NewCamera(config), RenderConfig{TileSize: 8, Seed: 1}, NewDefaultLogger())

	fb := NewFramebuffer(16, 16)
	if _, err := rt.RenderInto(context.Background(), fb, 3); err != nil {
		t.Fatalf("Expected first pass to succeed, got %v", err)
	}
	if got := fb.SampleCount(0, 0); got != 3 {
		t.Fatalf("Expected 3 samples after first pass, got %d", got)
	}

	stats, err := rt.RenderInto(context.Background(), fb, 8)
	if err != nil {
		t.Fatalf("Expected second pass to succeed, got %v", err)
	}
	if got := fb.SampleCount(0, 0); got != 8 {
		t.Errorf("Expected 8 samples after second pass, got %d", got)
	}
	// Only the missing samples are rendered
	if expected := 5 * 16 * 16; stats.TotalSamples != expected {
		t.Errorf("Expected %d new samples, got %d", expected, stats.TotalSamples)
	}
}

func TestRenderInto_CanceledContext(t *testing.T) {
	config := DefaultCameraConfig()
	config.ImageWidth = 16

	scene := newTestScene()
	rt := NewRaytracer(scene, NewCamera(config), RenderConfig{TileSize: 8, Seed: 1}, NewDefaultLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rt.RenderInto(ctx, NewFramebuffer(16, 16), 2); err == nil {
		t.Error("Expected canceled context to surface an error")
	}
}
