// Package medium implements the participating media a scene can be
// embedded in and their phase functions.
package medium

import (
	"math"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

// Medium is a participating medium filling the whole scene.
// The variant set is closed: Homogeneous is the only implementation.
type Medium interface {
	// Transmittance returns the fraction of radiance surviving distance d
	Transmittance(d float64) float64
	// Sample draws a free-flight distance along the ray (+Inf when the medium is empty)
	Sample(ray core.Ray, sampler core.Sampler) float64
	// Coefficient weights an interaction found by Sample at distance d
	// against the nearest surface at surfaceDistance
	Coefficient(d, surfaceDistance float64) float64
	// Phase returns the scattering phase function
	Phase() PhaseFunction

	sealed()
}

// Homogeneous is a medium with constant absorption and scattering
type Homogeneous struct {
	SigmaA float64 // Absorption coefficient
	SigmaS float64 // Scattering coefficient
	phase  PhaseFunction
}

// NewHomogeneous creates a homogeneous medium with the given phase function
func NewHomogeneous(sigmaA, sigmaS float64, phase PhaseFunction) *Homogeneous {
	return &Homogeneous{SigmaA: sigmaA, SigmaS: sigmaS, phase: phase}
}

// SigmaT returns the extinction coefficient σa+σs
func (h *Homogeneous) SigmaT() float64 {
	return h.SigmaA + h.SigmaS
}

// Albedo returns the single-scattering albedo σs/σt
func (h *Homogeneous) Albedo() float64 {
	sigmaT := h.SigmaT()
	if sigmaT <= 0 {
		return 0
	}
	return h.SigmaS / sigmaT
}

// Transmittance returns exp(-σt·d)
func (h *Homogeneous) Transmittance(d float64) float64 {
	return math.Exp(-h.SigmaT() * d)
}

// Sample inverts the exponential free-flight CDF: d = -ln(1-ξ)/σt
func (h *Homogeneous) Sample(ray core.Ray, sampler core.Sampler) float64 {
	sigmaT := h.SigmaT()
	if sigmaT <= 0 {
		return math.Inf(1)
	}
	return -math.Log(1-sampler.Get1D()) / sigmaT
}

// Coefficient returns σs/σt when the flight ended inside the medium and
// exactly 1 when it reached the surface. With distance sampling
// proportional to σt·Tr, the medium branch weight σs·Tr/(σt·Tr) and the
// surface branch weight Tr/Tr both cancel the transmittance.
func (h *Homogeneous) Coefficient(d, surfaceDistance float64) float64 {
	if d >= surfaceDistance {
		return 1
	}
	return h.Albedo()
}

// Phase returns the medium's phase function
func (h *Homogeneous) Phase() PhaseFunction {
	return h.phase
}

func (h *Homogeneous) sealed() {}
