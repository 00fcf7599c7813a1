package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	if got := a.Add(b); got != NewVec3(5, 7, 9) {
		t.Errorf("Expected Add to be (5,7,9), got %v", got)
	}
	if got := b.Subtract(a); got != NewVec3(3, 3, 3) {
		t.Errorf("Expected Subtract to be (3,3,3), got %v", got)
	}
	if got := a.Multiply(2); got != NewVec3(2, 4, 6) {
		t.Errorf("Expected Multiply to be (2,4,6), got %v", got)
	}
	if got := a.MultiplyVec(b); got != NewVec3(4, 10, 18) {
		t.Errorf("Expected MultiplyVec to be (4,10,18), got %v", got)
	}
	if got := a.Negate(); got != NewVec3(-1, -2, -3) {
		t.Errorf("Expected Negate to be (-1,-2,-3), got %v", got)
	}
}

func TestVec3_DotCross(t *testing.T) {
	a := NewVec3(1, 0, 0)
	b := NewVec3(0, 1, 0)

	if got := a.Dot(b); got != 0 {
		t.Errorf("Expected orthogonal dot product 0, got %f", got)
	}
	if got := a.Cross(b); got != NewVec3(0, 0, 1) {
		t.Errorf("Expected x cross y to be z, got %v", got)
	}
	if got := b.Cross(a); got != NewVec3(0, 0, -1) {
		t.Errorf("Expected y cross x to be -z, got %v", got)
	}
}

func TestVec3_Length(t *testing.T) {
	v := NewVec3(3, 4, 0)
	if got := v.Length(); got != 5 {
		t.Errorf("Expected length 5, got %f", got)
	}
	if got := v.LengthSquared(); got != 25 {
		t.Errorf("Expected squared length 25, got %f", got)
	}
	if got := v.Normalize().Length(); math.Abs(got-1) > 1e-12 {
		t.Errorf("Expected unit length after Normalize, got %f", got)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero vector", NewVec3(0, 0, 0), true},
		{"just below threshold", NewVec3(1e-9, -1e-9, 1e-9), true},
		{"one large component", NewVec3(1e-9, 1e-9, 1e-3), false},
		{"unit vector", NewVec3(0, 1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.NearZero(); got != tt.expected {
				t.Errorf("Expected NearZero=%v for %v, got %v", tt.expected, tt.v, got)
			}
		})
	}
}

func TestReflect(t *testing.T) {
	// 45 degree incidence onto a floor mirrors the vertical component
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	if got := Reflect(v, n); got != NewVec3(1, 1, 0) {
		t.Errorf("Expected reflection (1,1,0), got %v", got)
	}
}

func TestRefract_StraightThrough(t *testing.T) {
	// Normal incidence passes straight through regardless of the ratio
	uv := NewVec3(0, 0, -1)
	n := NewVec3(0, 0, 1)
	got := Refract(uv, n, 1.0/1.5)
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y) > 1e-12 || got.Z >= 0 {
		t.Errorf("Expected refraction along -z, got %v", got)
	}
	if math.Abs(got.Length()-1) > 1e-12 {
		t.Errorf("Expected unit refracted direction at normal incidence, got length %f", got.Length())
	}
}

func TestRandomUnitVector_IsUnit(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(rng)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit vector, got length %f", v.Length())
		}
	}
}

func TestRandomInUnitDisk_InDisk(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(rng)
		if p.Z != 0 {
			t.Fatalf("Expected point in z=0 plane, got %v", p)
		}
		if p.LengthSquared() >= 1 {
			t.Fatalf("Expected point inside unit disk, got %v", p)
		}
	}
}
