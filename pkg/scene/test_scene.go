package scene

import (
	"github.com/jmcgill/go-pathtracer/pkg/core"
	"github.com/jmcgill/go-pathtracer/pkg/material"
	"github.com/jmcgill/go-pathtracer/pkg/renderer"
)

// NewTestScene builds a small fixed scene for quick renders: a diffuse
// ground, a diffuse center sphere, a glass sphere on the left and a fuzzy
// metal sphere on the right.
func NewTestScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 50,
		MaxDepth:        25,
		VerticalFOV:     20,
		Position:        core.NewVec3(-2, 2, 1),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		Aperture:        0,
		FocusDistance:   3.4,
	}

	s := NewScene(cameraConfig)

	ground := s.AddMaterial(material.Lambertian(core.NewVec3(0.8, 0.8, 0.0)))
	center := s.AddMaterial(material.Lambertian(core.NewVec3(0.1, 0.2, 0.5)))
	glass := s.AddMaterial(material.Dielectric(1.5))
	metal := s.AddMaterial(material.Metal(core.NewVec3(0.8, 0.6, 0.2), 0.3))

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, center)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, metal)

	return s
}
