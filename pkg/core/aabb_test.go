package core

import (
	"math"
	"testing"
)

func TestAABB_UnionAndCentroid(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(3, -1, 0.5), NewVec3(2, 0, 2))

	u := a.Union(b)
	if u.Min != NewVec3(0, -1, 0) || u.Max != NewVec3(3, 1, 2) {
		t.Errorf("Unexpected union bounds: %v", u)
	}
	if !u.Contains(a) || !u.Contains(b) {
		t.Errorf("Union should contain both inputs")
	}
	if c := u.Centroid(); c != NewVec3(1.5, 0, 1) {
		t.Errorf("Expected centroid (1.5,0,1), got %v", c)
	}

	// EmptyAABB is the identity of Union
	if e := EmptyAABB().Union(a); e != a {
		t.Errorf("Expected empty union to be identity, got %v", e)
	}
	if EmptyAABB().IsValid() {
		t.Errorf("Empty box should not be valid")
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		name     string
		box      AABB
		expected int
	}{
		{"X longest", NewAABB(Vec3{}, NewVec3(5, 1, 1)), 0},
		{"Y longest", NewAABB(Vec3{}, NewVec3(1, 5, 1)), 1},
		{"Z longest", NewAABB(Vec3{}, NewVec3(1, 1, 5)), 2},
		{"Flat in Y", NewAABB(Vec3{}, NewVec3(3, 0, 2)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.LongestAxis(); got != tt.expected {
				t.Errorf("Expected axis %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestAABB_Hit(t *testing.T) {
	unit := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	flat := NewAABB(NewVec3(-1, 0, -1), NewVec3(1, 0, 1))

	tests := []struct {
		name     string
		box      AABB
		ray      Ray
		tMax     float64
		expected bool
	}{
		{"Straight on", unit, NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), math.Inf(1), true},
		{"Miss to the side", unit, NewRay(NewVec3(3, 0, -5), NewVec3(0, 0, 1)), math.Inf(1), false},
		{"Pointing away", unit, NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), math.Inf(1), false},
		{"Origin inside", unit, NewRay(Vec3{}, NewVec3(1, 2, 3)), math.Inf(1), true},
		{"Clipped by tMax", unit, NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 3, false},
		{"Diagonal", unit, NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), math.Inf(1), true},
		{"Flat box from above", flat, NewRay(NewVec3(0.5, 4, 0.5), NewVec3(0, -1, 0)), math.Inf(1), true},
		{"Flat box oblique", flat, NewRay(NewVec3(-2, 2, 0), NewVec3(1, -1, 0)), math.Inf(1), true},
		{"Flat box parallel above", flat, NewRay(NewVec3(-3, 1, 0), NewVec3(1, 0, 0)), math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Hit(tt.ray, 0, tt.tMax); got != tt.expected {
				t.Errorf("Expected hit=%v, got %v", tt.expected, got)
			}
		})
	}
}
