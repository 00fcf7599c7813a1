package renderer

import (
	"math"
	"math/rand"

	"github.com/jmcgill/go-pathtracer/pkg/core"
	"github.com/jmcgill/go-pathtracer/pkg/material"
)

// Scene is what the raytracer needs from a scene: intersection against the
// aggregate and material lookup. Declared here to avoid a circular import
// with the scene package.
type Scene interface {
	Hit(ray core.Ray, tRange core.Interval) (material.HitRecord, bool)
	MaterialAt(id material.ID) material.Material
}

// RenderConfig controls how the work is partitioned, not what is rendered
type RenderConfig struct {
	TileSize   int   // Edge length of the square tiles handed to workers
	NumWorkers int   // Parallel workers; 0 means one per CPU
	Seed       int64 // Base seed for the per-tile random streams
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   64,
		NumWorkers: 0,
		Seed:       42, // Deterministic by default to keep renders reproducible
	}
}

// Background gradient endpoints: white at the horizon up to sky blue
var (
	backgroundBottom = core.NewVec3(1.0, 1.0, 1.0)
	backgroundTop    = core.NewVec3(0.5, 0.7, 1.0)
)

// Raytracer evaluates rays against a scene and renders into a framebuffer
type Raytracer struct {
	scene  Scene
	camera *Camera
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a raytracer for the given scene and camera
func NewRaytracer(scene Scene, camera *Camera, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:  scene,
		camera: camera,
		config: config,
		logger: logger,
	}
}

// Camera returns the camera this raytracer renders with
func (rt *Raytracer) Camera() *Camera { return rt.camera }

// RayColor evaluates the light transported back along a ray. The bounce
// recursion is unrolled into a loop carrying the ray, the remaining depth
// and the accumulated attenuation, so the depth cap is a hard counter.
func (rt *Raytracer) RayColor(ray core.Ray, rng *rand.Rand, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		// The lower bound skips hits immediately in front of the origin,
		// which would otherwise re-intersect the surface just left
		// (shadow acne).
		hit, ok := rt.scene.Hit(ray, core.NewInterval(0.001, math.Inf(1)))
		if !ok {
			return throughput.MultiplyVec(backgroundGradient(ray))
		}

		mat := rt.scene.MaterialAt(hit.Material)
		scattered, attenuation, ok := mat.Scatter(ray, hit, rng)
		if !ok {
			// Absorbed
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(attenuation)
		ray = scattered
	}

	// Bounce limit reached; no more light is gathered
	return core.Vec3{}
}

// backgroundGradient is the environment term: a vertical blend between
// white and sky blue based on the ray direction
func backgroundGradient(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return backgroundBottom.Multiply(1.0 - t).Add(backgroundTop.Multiply(t))
}

// renderTile takes samples for every pixel in the tile until each has
// target samples accumulated. Tiles are disjoint, so writing into the
// shared framebuffer needs no locking.
func (rt *Raytracer) renderTile(tile Tile, fb *Framebuffer, target int) int {
	// Mix the tile's existing progress into the seed so resumed renders
	// draw fresh sample sequences instead of replaying earlier ones.
	startCount := fb.SampleCount(tile.Bounds.Min.X, tile.Bounds.Min.Y)
	rng := rand.New(rand.NewSource(tile.Seed + int64(startCount)*0x9E3779B9))

	samples := 0
	maxDepth := rt.camera.MaxDepth()
	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			for fb.SampleCount(i, j) < target {
				ray := rt.camera.GetRay(i, j, rng)
				fb.AddSample(i, j, rt.RayColor(ray, rng, maxDepth))
				samples++
			}
		}
	}
	return samples
}
