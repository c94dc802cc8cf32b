package geometry

import (
	"math"
	"math/rand"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
)

// BVHNode is a node of the bounding volume hierarchy. Leaves hold exactly
// one primitive; internal nodes hold exactly two children.
type BVHNode struct {
	Bounds    core.AABB
	Area      float64 // Sum of the surface areas below this node
	Left      *BVHNode
	Right     *BVHNode
	Primitive Primitive // Set for leaves only
}

// IsLeaf reports whether the node holds a primitive
func (n *BVHNode) IsLeaf() bool {
	return n.Primitive != nil
}

// BVH is a binary bounding volume hierarchy over a primitive list.
// It is read-only after construction and safe for concurrent queries.
type BVH struct {
	Root  *BVHNode
	count int
}

// buildSeed seeds the pivot choice so a given primitive list always
// produces the same tree
const buildSeed = 0x5eed

var posInf = math.Inf(1)

// NewBVH builds a BVH that bisects the primitives down to single-primitive leaves
func NewBVH(primitives []Primitive) *BVH {
	if len(primitives) == 0 {
		return &BVH{}
	}

	// Work on a copy so the caller's ordering is untouched
	working := make([]Primitive, len(primitives))
	copy(working, primitives)

	random := rand.New(rand.NewSource(buildSeed))
	return &BVH{
		Root:  buildNode(working, random),
		count: len(primitives),
	}
}

// buildNode recursively partitions primitives at the median centroid along
// the axis of largest centroid extent
func buildNode(primitives []Primitive, random *rand.Rand) *BVHNode {
	switch len(primitives) {
	case 1:
		return &BVHNode{
			Bounds:    primitives[0].Bounds(),
			Area:      primitives[0].Area(),
			Primitive: primitives[0],
		}
	case 2:
		return newInternalNode(
			buildNode(primitives[:1], random),
			buildNode(primitives[1:], random),
		)
	}

	centroidBounds := core.EmptyAABB()
	for _, p := range primitives {
		centroidBounds = centroidBounds.UnionPoint(p.Bounds().Centroid())
	}
	axis := centroidBounds.LongestAxis()

	mid := len(primitives) / 2
	selectNth(primitives, mid, axis, random)

	return newInternalNode(
		buildNode(primitives[:mid], random),
		buildNode(primitives[mid:], random),
	)
}

func newInternalNode(left, right *BVHNode) *BVHNode {
	return &BVHNode{
		Bounds: left.Bounds.Union(right.Bounds),
		Area:   left.Area + right.Area,
		Left:   left,
		Right:  right,
	}
}

// selectNth reorders primitives so that index k holds the element of rank k
// by centroid along axis, with smaller elements before it and larger after.
// Randomized quickselect: expected linear time.
func selectNth(primitives []Primitive, k, axis int, random *rand.Rand) {
	key := func(i int) float64 {
		return primitives[i].Bounds().Centroid().Axis(axis)
	}

	lo, hi := 0, len(primitives)-1
	for lo < hi {
		// Move a random pivot to the end and partition around it
		pivotIndex := lo + random.Intn(hi-lo+1)
		primitives[pivotIndex], primitives[hi] = primitives[hi], primitives[pivotIndex]
		pivot := key(hi)

		store := lo
		for i := lo; i < hi; i++ {
			if key(i) < pivot {
				primitives[i], primitives[store] = primitives[store], primitives[i]
				store++
			}
		}
		primitives[store], primitives[hi] = primitives[hi], primitives[store]

		switch {
		case k < store:
			hi = store - 1
		case k > store:
			lo = store + 1
		default:
			return
		}
	}
}

// Bounds returns the bounds of the whole hierarchy
func (b *BVH) Bounds() core.AABB {
	if b.Root == nil {
		return core.EmptyAABB()
	}
	return b.Root.Bounds
}

// Area returns the total area of all primitives
func (b *BVH) Area() float64 {
	if b.Root == nil {
		return 0
	}
	return b.Root.Area
}

// Len returns the number of primitives in the hierarchy
func (b *BVH) Len() int {
	return b.count
}

// Intersect returns the nearest intersection along the ray
func (b *BVH) Intersect(ray core.Ray) Intersection {
	if b.Root == nil {
		return NoIntersection()
	}
	return intersectNode(b.Root, ray)
}

// intersectNode visits both children of every node whose bounds the ray
// crosses and keeps the closer result
func intersectNode(node *BVHNode, ray core.Ray) Intersection {
	if !node.Bounds.Hit(ray, 0, posInf) {
		return NoIntersection()
	}

	if node.IsLeaf() {
		return node.Primitive.Intersect(ray)
	}

	left := intersectNode(node.Left, ray)
	right := intersectNode(node.Right, ray)
	return Closer(left, right)
}

// Sample picks a point on one of the primitives with probability
// proportional to area. The pdf is per unit area over the whole hierarchy.
func (b *BVH) Sample(sampler core.Sampler) (Intersection, float64) {
	if b.Root == nil || b.Root.Area <= 0 {
		return NoIntersection(), 0
	}

	p := sampler.Get1D() * b.Root.Area
	hit, pdf := sampleNode(b.Root, p, sampler)
	return hit, pdf / b.Root.Area
}

// sampleNode descends towards the leaf whose area range contains p and
// returns the primitive's pdf scaled by the leaf's area
func sampleNode(node *BVHNode, p float64, sampler core.Sampler) (Intersection, float64) {
	if node.IsLeaf() {
		hit, pdf := node.Primitive.Sample(sampler)
		return hit, pdf * node.Area
	}

	// Zero-area subtrees are never entered, even through rounding in p
	if (p < node.Left.Area && node.Left.Area > 0) || node.Right.Area <= 0 {
		return sampleNode(node.Left, p, sampler)
	}
	return sampleNode(node.Right, p-node.Left.Area, sampler)
}

// BVHStats summarizes the shape of a hierarchy
type BVHStats struct {
	Nodes        int
	Leaves       int
	MaxDepth     int
	AvgLeafDepth float64
}

// Stats walks the tree and collects its statistics
func (b *BVH) Stats() BVHStats {
	var stats BVHStats
	if b.Root == nil {
		return stats
	}

	depthSum := 0
	var walk func(node *BVHNode, depth int)
	walk = func(node *BVHNode, depth int) {
		stats.Nodes++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if node.IsLeaf() {
			stats.Leaves++
			depthSum += depth
			return
		}
		walk(node.Left, depth+1)
		walk(node.Right, depth+1)
	}
	walk(b.Root, 0)

	stats.AvgLeafDepth = float64(depthSum) / float64(stats.Leaves)
	return stats
}
