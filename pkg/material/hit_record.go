package material

import "github.com/jmcgill/go-pathtracer/pkg/core"

// HitRecord contains information about a ray-surface intersection.
// It is output-only: a successful hit test fully overwrites it.
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, oriented against the ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether the ray struck the geometric front face
	Material  ID        // Handle into the scene's material arena
}

// SetFaceNormal orients the normal against the incoming ray and records
// which geometric side was struck, so materials can distinguish entering
// from exiting a volume.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
