package core

// Ray represents a ray with an origin and a unit direction.
// The inverse direction and per-axis sign are derived once so that
// slab tests against bounding boxes need no divisions.
type Ray struct {
	Origin       Vec3
	Direction    Vec3
	InvDirection Vec3
	Sign         [3]int // 1 when the direction component is negative
}

// NewRay creates a new ray, normalizing the direction
func NewRay(origin, direction Vec3) Ray {
	d := direction.Normalize()

	// Fold negative zeros so parallel axes get +Inf inverses
	if d.X == 0 {
		d.X = 0
	}
	if d.Y == 0 {
		d.Y = 0
	}
	if d.Z == 0 {
		d.Z = 0
	}

	inv := Vec3{X: 1.0 / d.X, Y: 1.0 / d.Y, Z: 1.0 / d.Z}

	var sign [3]int
	if d.X < 0 {
		sign[0] = 1
	}
	if d.Y < 0 {
		sign[1] = 1
	}
	if d.Z < 0 {
		sign[2] = 1
	}

	return Ray{Origin: origin, Direction: d, InvDirection: inv, Sign: sign}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
