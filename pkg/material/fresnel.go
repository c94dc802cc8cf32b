package material

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

// Fresnel returns the unpolarized dielectric reflectance for an incident
// direction i (pointing towards the surface) at a boundary with normal n
// between air and a medium of refractive index ior. The side is inferred
// from the sign of i·n; total internal reflection returns 1.
func Fresnel(i, n core.Vec3, ior float64) float64 {
	cosi := math.Max(-1, math.Min(1, i.Dot(n)))
	etai, etat := 1.0, ior
	if cosi > 0 {
		etai, etat = etat, etai
	}

	// Snell's law
	sint := etai / etat * math.Sqrt(math.Max(0, 1-cosi*cosi))
	if sint >= 1 {
		return 1
	}

	cost := math.Sqrt(math.Max(0, 1-sint*sint))
	cosi = math.Abs(cosi)
	rs := (etat*cosi - etai*cost) / (etat*cosi + etai*cost)
	rp := (etai*cosi - etat*cost) / (etai*cosi + etat*cost)
	return (rs*rs + rp*rp) / 2
}

// Refract bends the incident direction i through the boundary with normal n.
// It returns the zero vector on total internal reflection.
func Refract(i, n core.Vec3, ior float64) core.Vec3 {
	cosi := math.Max(-1, math.Min(1, i.Dot(n)))
	etai, etat := 1.0, ior
	normal := n
	if cosi < 0 {
		cosi = -cosi
	} else {
		etai, etat = etat, etai
		normal = n.Negate()
	}

	eta := etai / etat
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return core.Vec3{}
	}
	return i.Multiply(eta).Add(normal.Multiply(eta*cosi - math.Sqrt(k))).Normalize()
}
