package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator.
// It is not safe for concurrent use: every render worker owns one.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own source seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// CoordinateSystem builds two unit vectors that complete v (unit length)
// into a right-handed orthonormal basis
func CoordinateSystem(v Vec3) (Vec3, Vec3) {
	var v2 Vec3
	if math.Abs(v.X) > math.Abs(v.Y) {
		invLen := 1.0 / math.Sqrt(v.X*v.X+v.Z*v.Z)
		v2 = NewVec3(-v.Z*invLen, 0, v.X*invLen)
	} else {
		invLen := 1.0 / math.Sqrt(v.Y*v.Y+v.Z*v.Z)
		v2 = NewVec3(0, v.Z*invLen, -v.Y*invLen)
	}
	return v2, v.Cross(v2)
}

// ToWorld maps a direction expressed in the local frame whose z axis is
// normal into world space
func ToWorld(local, normal Vec3) Vec3 {
	b, c := CoordinateSystem(normal)
	return b.Multiply(local.X).Add(c.Multiply(local.Y)).Add(normal.Multiply(local.Z))
}

// SampleConcentricDisk maps a unit square sample onto the unit disk with
// Shirley's concentric mapping
func SampleConcentricDisk(sample Vec2) Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	offset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if offset.X == 0 && offset.Y == 0 {
		return Vec2{}
	}

	var theta, r float64
	if math.Abs(offset.X) > math.Abs(offset.Y) {
		r = offset.X
		theta = math.Pi / 4 * (offset.Y / offset.X)
	} else {
		r = offset.Y
		theta = math.Pi/2 - math.Pi/4*(offset.X/offset.Y)
	}
	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// SampleCosineHemisphere generates a cosine-weighted direction in the
// hemisphere around normal by projecting a concentric disk sample up
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	d := SampleConcentricDisk(sample)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return ToWorld(NewVec3(d.X, d.Y, z), normal).Normalize()
}

// SampleUniformSphere generates a uniform random direction on the unit sphere
func SampleUniformSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SampleUniformTriangle returns barycentric weights (b0, b1, b2) uniformly
// distributed over a triangle's area
func SampleUniformTriangle(sample Vec2) (float64, float64, float64) {
	x := math.Sqrt(sample.X)
	y := sample.Y
	return 1 - x, x * (1 - y), x * y
}

// PowerHeuristic returns the MIS weight of strategy a against strategy b
// with exponent 2: pdfA² / (pdfA² + pdfB²)
func PowerHeuristic(pdfA, pdfB float64) float64 {
	a2 := pdfA * pdfA
	b2 := pdfB * pdfB
	if a2+b2 == 0 {
		return 0
	}
	return a2 / (a2 + b2)
}
