package geometry

import (
	"github.com/jmcgill/go-pathtracer/pkg/core"
	"github.com/jmcgill/go-pathtracer/pkg/material"
)

// World is the scene aggregate: an ordered collection of spheres scanned
// linearly per ray. It is mutated only during scene construction and is
// read-only while rendering, so workers share it without locking.
// There is no acceleration structure; cost is O(spheres) per ray.
type World struct {
	Spheres []Sphere
}

// NewWorld creates an empty aggregate
func NewWorld() *World {
	return &World{Spheres: make([]Sphere, 0)}
}

// Add appends a sphere to the aggregate
func (w *World) Add(s Sphere) {
	w.Spheres = append(w.Spheres, s)
}

// Clear empties the aggregate
func (w *World) Clear() {
	w.Spheres = w.Spheres[:0]
}

// Hit returns the nearest intersection within tRange across all members.
// Each test narrows the acceptable range to the closest t found so far,
// so farther candidates are rejected cheaply regardless of member order.
func (w *World) Hit(ray core.Ray, tRange core.Interval) (material.HitRecord, bool) {
	var closest material.HitRecord
	hitAnything := false
	closestSoFar := tRange.Max

	for _, sphere := range w.Spheres {
		if rec, ok := sphere.Hit(ray, core.NewInterval(tRange.Min, closestSoFar)); ok {
			hitAnything = true
			closestSoFar = rec.T
			closest = rec
		}
	}

	return closest, hitAnything
}
