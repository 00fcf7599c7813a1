package geometry

import (
	"math"

	"github.com/jmcgill/go-pathtracer/pkg/core"
	"github.com/jmcgill/go-pathtracer/pkg/material"
)

// Sphere is the only primitive. It is stored by value in the scene
// aggregate and references its material through an arena handle.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.ID
}

// NewSphere creates a sphere. Radius is clamped to be non-negative.
func NewSphere(center core.Vec3, radius float64, mat material.ID) Sphere {
	return Sphere{
		Center:   center,
		Radius:   math.Max(0, radius),
		Material: mat,
	}
}

// Hit tests if a ray intersects the sphere within tRange, returning the
// nearest accepted root. Roots exactly on a range boundary are rejected.
func (s Sphere) Hit(ray core.Ray, tRange core.Interval) (material.HitRecord, bool) {
	oc := s.Center.Subtract(ray.Origin)

	// Quadratic |O + tD - C|² = r² in reduced half-b form
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return material.HitRecord{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Prefer the closer root, fall back to the farther one
	root := (h - sqrtD) / a
	if !tRange.Surrounds(root) {
		root = (h + sqrtD) / a
		if !tRange.Surrounds(root) {
			return material.HitRecord{}, false
		}
	}

	rec := material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}
	outwardNormal := rec.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	rec.SetFaceNormal(ray, outwardNormal)

	return rec, true
}
