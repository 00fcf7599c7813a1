package core

import (
	"math"
	"math/rand"
)

// Vec3 represents a 3D vector, used for points, directions and RGB colors
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared magnitude of the vector.
// Cheaper than Length for distance comparisons.
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Normalize returns a unit vector in the same direction.
// A zero-length input produces non-finite components; callers must
// guarantee nonzero input (the rejection samplers below do).
func (v Vec3) Normalize() Vec3 {
	return v.Multiply(1.0 / v.Length())
}

// NearZero reports whether the vector is close to zero in all dimensions
func (v Vec3) NearZero() bool {
	const s = 1e-8
	return math.Abs(v.X) < s && math.Abs(v.Y) < s && math.Abs(v.Z) < s
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// GammaCorrect applies gamma correction to color values
func (v Vec3) GammaCorrect(gamma float64) Vec3 {
	invGamma := 1.0 / gamma
	return Vec3{
		X: math.Pow(v.X, invGamma),
		Y: math.Pow(v.Y, invGamma),
		Z: math.Pow(v.Z, invGamma),
	}
}

// RandomVec3 generates a vector with each component uniform in [min, max)
func RandomVec3(rng *rand.Rand, minVal, maxVal float64) Vec3 {
	span := maxVal - minVal
	return Vec3{
		X: minVal + span*rng.Float64(),
		Y: minVal + span*rng.Float64(),
		Z: minVal + span*rng.Float64(),
	}
}

// RandomUnitVector generates a uniform random direction on the unit sphere.
// Rejection-samples the unit cube, discarding points whose squared length
// falls outside (1e-160, 1] so normalization never divides by (near) zero.
func RandomUnitVector(rng *rand.Rand) Vec3 {
	for {
		p := RandomVec3(rng, -1, 1)
		lenSq := p.LengthSquared()
		if 1e-160 < lenSq && lenSq <= 1.0 {
			return p.Multiply(1.0 / math.Sqrt(lenSq))
		}
	}
}

// RandomInUnitDisk generates a random point in the z=0 unit disk,
// used for lens-aperture sampling
func RandomInUnitDisk(rng *rand.Rand) Vec3 {
	for {
		p := NewVec3(2*rng.Float64()-1, 2*rng.Float64()-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// Reflect mirrors vector v about normal n
func Reflect(v, n Vec3) Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends unit vector uv through a surface with unit normal n using
// Snell's law, decomposed into components perpendicular and parallel to n.
// etaiOverEtat is the ratio of refractive indices across the boundary.
func Refract(uv, n Vec3, etaiOverEtat float64) Vec3 {
	cosTheta := math.Min(uv.Negate().Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}
