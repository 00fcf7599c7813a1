package material

import (
	"math"
	"math/rand"

	"github.com/jmcgill/go-pathtracer/pkg/core"
)

// ID is a handle into a scene's material arena. Surfaces store an ID
// instead of a pointer, so many surfaces can share one material without
// tying its lifetime to any of them.
type ID int

// Kind discriminates the closed set of material variants
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

// Material is a tagged variant over {Lambertian, Metal, Dielectric}.
// Only the fields relevant to the Kind are meaningful.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian and Metal base color
	Fuzz            float64   // Metal reflection roughness in [0, 1]
	RefractionIndex float64   // Dielectric index of refraction
}

// Lambertian creates a perfectly diffuse material
func Lambertian(albedo core.Vec3) Material {
	return Material{Kind: KindLambertian, Albedo: albedo}
}

// Metal creates a reflective material. Fuzz is clamped to [0, 1].
func Metal(albedo core.Vec3, fuzz float64) Material {
	if fuzz > 1.0 {
		fuzz = 1.0
	}
	if fuzz < 0.0 {
		fuzz = 0.0
	}
	return Material{Kind: KindMetal, Albedo: albedo, Fuzz: fuzz}
}

// Dielectric creates a transparent material like glass that both reflects
// and refracts
func Dielectric(refractionIndex float64) Material {
	return Material{Kind: KindDielectric, RefractionIndex: refractionIndex}
}

// Scatter decides whether and how an incoming ray continues after hitting
// a surface with this material. It returns the scattered ray, the color
// attenuation applied along it, and false when the ray is absorbed.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, rng *rand.Rand) (core.Ray, core.Vec3, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, rng)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, rng)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, rng)
	}
	return core.Ray{}, core.Vec3{}, false
}

// scatterLambertian bounces the ray toward normal + random unit vector.
// This approximates a cosine-weighted hemisphere sample; if the sum
// cancels to near zero, fall back to the normal to avoid a degenerate ray.
func (m Material) scatterLambertian(hit HitRecord, rng *rand.Rand) (core.Ray, core.Vec3, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(rng))
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}
	return core.NewRay(hit.Point, scatterDirection), m.Albedo, true
}

// scatterMetal mirrors the ray about the normal, perturbed by Fuzz. Rays
// fuzzed below the surface are absorbed.
func (m Material) scatterMetal(rayIn core.Ray, hit HitRecord, rng *rand.Rand) (core.Ray, core.Vec3, bool) {
	reflected := core.Reflect(rayIn.Direction, hit.Normal)
	reflected = reflected.Normalize().Add(core.RandomUnitVector(rng).Multiply(m.Fuzz))
	scattered := core.NewRay(hit.Point, reflected)
	return scattered, m.Albedo, scattered.Direction.Dot(hit.Normal) > 0
}

// scatterDielectric refracts or reflects based on Snell's law, total
// internal reflection, and Schlick's reflectance. Clear glass absorbs
// nothing, so attenuation is always white.
func (m Material) scatterDielectric(rayIn core.Ray, hit HitRecord, rng *rand.Rand) (core.Ray, core.Vec3, bool) {
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	// Entering the surface crosses from air into the material
	refractionRatio := m.RefractionIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / m.RefractionIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > rng.Float64() {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, refractionRatio)
	}

	return core.NewRay(hit.Point, direction), attenuation, true
}

// Reflectance computes Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
