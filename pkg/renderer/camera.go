package renderer

import (
	"math"
	"math/rand"

	"github.com/jmcgill/go-pathtracer/pkg/core"
)

// CameraConfig holds the user-facing rendering configuration
type CameraConfig struct {
	AspectRatio     float64   // Image width divided by height
	ImageWidth      int       // Width of the image in pixels
	SamplesPerPixel int       // Random samples per pixel for anti-aliasing
	MaxDepth        int       // Maximum bounce depth for a single ray
	VerticalFOV     float64   // Vertical field of view in degrees
	Position        core.Vec3 // Camera position in world space
	LookAt          core.Vec3 // Point the camera looks at
	Up              core.Vec3 // "Up" direction relative to the camera
	Aperture        float64   // Lens aperture angle in degrees; 0 disables defocus blur
	FocusDistance   float64   // Distance to the plane of sharp focus
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		VerticalFOV:     90,
		Position:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		Aperture:        0,
		FocusDistance:   10,
	}
}

// Camera generates the per-pixel sample rays. Its derived state (viewing
// basis, viewport steps, defocus disk) is computed once in NewCamera and
// is read-only afterward, so it is safely shared across workers.
type Camera struct {
	config CameraConfig

	imageHeight    int
	upperLeftPixel core.Vec3 // World position of the upper-left pixel center
	pixelDeltaU    core.Vec3 // Step one pixel to the right
	pixelDeltaV    core.Vec3 // Step one pixel down
	basisU, basisV core.Vec3 // Camera right and up
	basisW         core.Vec3 // Camera backward (position - lookAt)
	defocusDiskU   core.Vec3 // Aperture disk basis vectors
	defocusDiskV   core.Vec3
}

// NewCamera derives the viewing geometry from the configuration
func NewCamera(config CameraConfig) *Camera {
	c := &Camera{config: config}

	c.imageHeight = int(float64(config.ImageWidth) / config.AspectRatio)
	if c.imageHeight < 1 {
		c.imageHeight = 1
	}

	// Viewport sized from the vertical FOV at the focus distance
	theta := degreesToRadians(config.VerticalFOV)
	halfHeight := math.Tan(theta / 2)
	viewportHeight := 2.0 * halfHeight * config.FocusDistance
	viewportWidth := viewportHeight * config.AspectRatio

	// Orthonormal camera basis
	c.basisW = config.Position.Subtract(config.LookAt).Normalize()
	c.basisU = config.Up.Cross(c.basisW).Normalize()
	c.basisV = c.basisW.Cross(c.basisU)

	// Vectors spanning the viewport, vertical pointing down the image
	horizontalSpan := c.basisU.Multiply(viewportWidth)
	verticalSpan := c.basisV.Multiply(-viewportHeight)

	c.upperLeftPixel = config.Position.
		Subtract(c.basisW.Multiply(config.FocusDistance)).
		Subtract(horizontalSpan.Multiply(0.5)).
		Subtract(verticalSpan.Multiply(0.5))

	c.pixelDeltaU = horizontalSpan.Multiply(1.0 / float64(config.ImageWidth))
	c.pixelDeltaV = verticalSpan.Multiply(1.0 / float64(c.imageHeight))

	// Aperture disk for defocus blur
	apertureRadius := config.FocusDistance * math.Tan(degreesToRadians(config.Aperture/2))
	c.defocusDiskU = c.basisU.Multiply(apertureRadius)
	c.defocusDiskV = c.basisV.Multiply(apertureRadius)

	return c
}

// ImageWidth returns the configured image width in pixels
func (c *Camera) ImageWidth() int { return c.config.ImageWidth }

// ImageHeight returns the derived image height in pixels
func (c *Camera) ImageHeight() int { return c.imageHeight }

// SamplesPerPixel returns the configured sample count per pixel
func (c *Camera) SamplesPerPixel() int { return c.config.SamplesPerPixel }

// MaxDepth returns the configured bounce limit
func (c *Camera) MaxDepth() int { return c.config.MaxDepth }

// GetRay generates a sample ray for pixel (i, j): the pixel center is
// jittered by a uniform offset in [-0.5, 0.5]² for box-filter
// anti-aliasing, and with a positive aperture the origin is sampled from
// the defocus disk.
func (c *Camera) GetRay(i, j int, rng *rand.Rand) core.Ray {
	offsetX := rng.Float64() - 0.5
	offsetY := rng.Float64() - 0.5

	target := c.upperLeftPixel.
		Add(c.pixelDeltaU.Multiply(float64(i) + offsetX)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offsetY))

	origin := c.config.Position
	if c.config.Aperture > 0 {
		origin = c.sampleDefocusDisk(rng)
	}

	return core.NewRay(origin, target.Subtract(origin))
}

// sampleDefocusDisk picks a ray origin on the aperture disk
func (c *Camera) sampleDefocusDisk(rng *rand.Rand) core.Vec3 {
	p := core.RandomInUnitDisk(rng)
	return c.config.Position.
		Add(c.defocusDiskU.Multiply(p.X)).
		Add(c.defocusDiskV.Multiply(p.Y))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
