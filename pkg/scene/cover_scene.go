package scene

import (
	"math/rand"

	"github.com/jmcgill/go-pathtracer/pkg/core"
	"github.com/jmcgill/go-pathtracer/pkg/material"
	"github.com/jmcgill/go-pathtracer/pkg/renderer"
)

// NewCoverScene builds the classic cover scene: a gray ground sphere,
// three large feature spheres (glass, diffuse, metal) and a 22×22 grid of
// small spheres with randomized materials and positions. The layout is
// deterministic for a given seed.
func NewCoverScene(seed int64) *Scene {
	cameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      720,
		SamplesPerPixel: 10,
		MaxDepth:        25,
		VerticalFOV:     20,
		Position:        core.NewVec3(13, 2, 3),
		LookAt:          core.NewVec3(0, 0, 0),
		Up:              core.NewVec3(0, 1, 0),
		Aperture:        0.2,
		FocusDistance:   10.0,
	}

	s := NewScene(cameraConfig)
	rng := rand.New(rand.NewSource(seed))

	ground := s.AddMaterial(material.Lambertian(core.NewVec3(0.2, 0.2, 0.2)))
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground)

	const largeRadius = 1.0
	const smallRadius = 0.2

	glass := s.AddMaterial(material.Dielectric(1.5))
	s.AddSphere(core.NewVec3(0, 1, 0), largeRadius, glass)

	diffuse := s.AddMaterial(material.Lambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(-4, 1, 0), largeRadius, diffuse)

	metal := s.AddMaterial(material.Metal(core.NewVec3(0.7, 0.6, 0.5), 0.0))
	s.AddSphere(core.NewVec3(4, 1, 0), largeRadius, metal)

	// Small spheres on a jittered grid, skipping positions that would
	// overlap the feature spheres
	featureCenters := []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(-4, 1, 0),
		core.NewVec3(4, 1, 0),
	}
	clearance := largeRadius + smallRadius

	for x := -11; x < 11; x++ {
		for z := -11; z < 11; z++ {
			choice := rng.Float64()
			center := core.NewVec3(
				float64(x)+0.9*rng.Float64(),
				smallRadius,
				float64(z)+0.9*rng.Float64(),
			)

			tooClose := false
			for _, fc := range featureCenters {
				if center.Subtract(fc).Length() <= clearance {
					tooClose = true
					break
				}
			}
			if tooClose {
				continue
			}

			var mat material.ID
			switch {
			case choice < 0.3:
				albedo := core.RandomVec3(rng, 0, 1).MultiplyVec(core.RandomVec3(rng, 0, 1))
				mat = s.AddMaterial(material.Lambertian(albedo))
			case choice < 0.6:
				albedo := core.RandomVec3(rng, 0.5, 1)
				fuzz := 0.5 * rng.Float64()
				mat = s.AddMaterial(material.Metal(albedo, fuzz))
			default:
				mat = glass
			}
			s.AddSphere(center, smallRadius, mat)
		}
	}

	return s
}
