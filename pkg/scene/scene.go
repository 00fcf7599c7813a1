package scene

import (
	"github.com/jmcgill/go-pathtracer/pkg/core"
	"github.com/jmcgill/go-pathtracer/pkg/geometry"
	"github.com/jmcgill/go-pathtracer/pkg/material"
	"github.com/jmcgill/go-pathtracer/pkg/renderer"
)

// Scene owns everything a render needs: the geometry aggregate, the
// materials arena the spheres index into, and the camera configuration.
// Construction happens before rendering; the scene is read-only while a
// render is in flight.
type Scene struct {
	World        *geometry.World
	Materials    []material.Material
	CameraConfig renderer.CameraConfig
}

// NewScene creates an empty scene with the given camera configuration
func NewScene(cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		World:        geometry.NewWorld(),
		Materials:    make([]material.Material, 0),
		CameraConfig: cameraConfig,
	}
}

// AddMaterial appends a material to the arena and returns its handle.
// Many spheres may share one handle.
func (s *Scene) AddMaterial(m material.Material) material.ID {
	s.Materials = append(s.Materials, m)
	return material.ID(len(s.Materials) - 1)
}

// AddSphere creates a sphere around an arena material and adds it to the
// aggregate
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.ID) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// Hit implements renderer.Scene by delegating to the aggregate
func (s *Scene) Hit(ray core.Ray, tRange core.Interval) (material.HitRecord, bool) {
	return s.World.Hit(ray, tRange)
}

// MaterialAt implements renderer.Scene by indexing the arena
func (s *Scene) MaterialAt(id material.ID) material.Material {
	return s.Materials[id]
}
