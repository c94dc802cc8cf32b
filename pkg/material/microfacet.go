package material

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

// MinRoughness keeps the GGX distribution finite
const MinRoughness = 1e-3

// Microfacet is a rough reflector: a GGX specular lobe with Schlick Fresnel
// and Smith shadowing, plus a Lambertian remainder weighted by 1-F
type Microfacet struct {
	Surface
	Roughness float64 // GGX alpha, clamped to [MinRoughness, 1]
}

// specularProbability is the chance Sample draws from the GGX lobe instead
// of the cosine-weighted diffuse lobe
const specularProbability = 0.5

// NewMicrofacet creates a microfacet material
func NewMicrofacet(albedo core.Vec3, roughness float64) *Microfacet {
	return &Microfacet{
		Surface:   Surface{Albedo: albedo},
		Roughness: math.Max(MinRoughness, math.Min(1, roughness)),
	}
}

// Sample draws either a GGX half vector reflected about wo or a
// cosine-weighted diffuse direction
func (m *Microfacet) Sample(wo, n core.Vec3, sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() >= specularProbability {
		return core.SampleCosineHemisphere(n, sampler.Get2D())
	}

	u := sampler.Get2D()
	phi := 2 * math.Pi * u.X
	theta := math.Atan(m.Roughness * math.Sqrt(u.Y/(1-u.Y)))
	sinTheta := math.Sin(theta)

	local := core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), math.Cos(theta))
	wh := core.ToWorld(local, n).Normalize()
	return Reflect(wo, wh)
}

// PDF returns the mixture density of the GGX and diffuse lobes
func (m *Microfacet) PDF(wi, wo, n core.Vec3) float64 {
	cosI := wi.Dot(n)
	if cosI <= 0 || wo.Dot(n) <= 0 {
		return 0
	}

	wh := wi.Add(wo).Normalize()
	specular := 0.0
	if woh := wo.Dot(wh); woh > 0 {
		cosH := wh.Dot(n)
		specular = m.distribution(cosH) * cosH / (4 * woh)
	}
	diffuse := cosI / math.Pi

	return specularProbability*specular + (1-specularProbability)*diffuse
}

// Eval returns F·G·D/(4 cosθi cosθo) + (1-F)·albedo/π
func (m *Microfacet) Eval(wi, wo, n core.Vec3, uv core.Vec2) core.Vec3 {
	cosI := wi.Dot(n)
	cosO := wo.Dot(n)
	if cosI <= 0 || cosO <= 0 {
		return core.Vec3{}
	}

	color := m.ColorAt(uv)
	f := schlick(color, cosO)
	g := m.geometry(cosI, cosO)
	d := m.distribution(wi.Add(wo).Normalize().Dot(n))

	specular := f.Multiply(g * d / (4 * cosI * cosO))
	diffuse := core.Splat(1).Subtract(f).MultiplyVec(color).Multiply(1 / math.Pi)
	return specular.Add(diffuse)
}

// distribution is the GGX normal distribution D(h) for cos(θh)
func (m *Microfacet) distribution(cosH float64) float64 {
	if cosH <= 0 {
		return 0
	}
	a2 := m.Roughness * m.Roughness
	denom := (a2-1)*cosH*cosH + 1
	return a2 / (math.Pi * denom * denom)
}

// geometry is the Smith shadowing-masking term 1/(1+Λ(wi)+Λ(wo))
func (m *Microfacet) geometry(cosI, cosO float64) float64 {
	lambda := func(cos float64) float64 {
		tan2 := (1 - cos*cos) / (cos * cos)
		return (-1 + math.Sqrt(1+m.Roughness*m.Roughness*tan2)) / 2
	}
	return 1 / (1 + lambda(cosI) + lambda(cosO))
}

// Type returns TypeMicrofacet
func (m *Microfacet) Type() Type { return TypeMicrofacet }

// IsSpecular returns false; even the smoothest lobe has a finite density
func (m *Microfacet) IsSpecular() bool { return false }

func (m *Microfacet) sealed() {}
