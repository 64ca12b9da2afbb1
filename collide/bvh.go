package collide

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

type bvhNode struct {
	Min   mgl32.Vec3
	Max   mgl32.Vec3
	Left  int32
	Right int32
	// Leaf is the item index for leaves, -1 for inner nodes.
	Leaf int32
}

type aabbItem struct {
	Min      mgl32.Vec3
	Max      mgl32.Vec3
	Centroid mgl32.Vec3
	Index    int
}

// Tree is a bounding volume hierarchy over static collider bounds, one item
// per leaf.
type Tree struct {
	nodes []bvhNode
}

func BuildTree(bounds [][2]mgl32.Vec3) *Tree {
	t := &Tree{}
	if len(bounds) == 0 {
		return t
	}

	items := make([]aabbItem, len(bounds))
	for i, b := range bounds {
		items[i] = aabbItem{
			Min:      b[0],
			Max:      b[1],
			Centroid: b[0].Add(b[1]).Mul(0.5),
			Index:    i,
		}
	}
	t.nodes = make([]bvhNode, 0, 2*len(items)-1)
	t.build(items)
	return t
}

func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) build(items []aabbItem) int32 {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, bvhNode{Left: -1, Right: -1, Leaf: -1})

	inf := float32(math.Inf(1))
	minB := mgl32.Vec3{inf, inf, inf}
	maxB := mgl32.Vec3{-inf, -inf, -inf}
	for _, it := range items {
		for k := 0; k < 3; k++ {
			minB[k] = min(minB[k], it.Min[k])
			maxB[k] = max(maxB[k], it.Max[k])
		}
	}
	t.nodes[idx].Min = minB
	t.nodes[idx].Max = maxB

	if len(items) == 1 {
		t.nodes[idx].Leaf = int32(items[0].Index)
		return idx
	}

	// Split at the median centroid along the longest axis.
	extent := maxB.Sub(minB)
	axis := 0
	if extent.Y() > extent.X() {
		axis = 1
	}
	if extent.Z() > extent[axis] {
		axis = 2
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Centroid[axis] < items[j].Centroid[axis]
	})

	mid := len(items) / 2
	left := t.build(items[:mid])
	right := t.build(items[mid:])
	t.nodes[idx].Left = left
	t.nodes[idx].Right = right
	return idx
}

// Query calls fn with the item index of every leaf whose bounds overlap
// [minQ, maxQ]. Returning false stops the walk.
func (t *Tree) Query(minQ, maxQ mgl32.Vec3, fn func(index int) bool) {
	if len(t.nodes) == 0 {
		return
	}
	stack := make([]int32, 0, 32)
	stack = append(stack, 0)
	for len(stack) > 0 {
		n := &t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !overlaps(n.Min, n.Max, minQ, maxQ) {
			continue
		}
		if n.Leaf >= 0 {
			if !fn(int(n.Leaf)) {
				return
			}
			continue
		}
		stack = append(stack, n.Left, n.Right)
	}
}

func overlaps(aMin, aMax, bMin, bMax mgl32.Vec3) bool {
	return aMin.X() <= bMax.X() && aMax.X() >= bMin.X() &&
		aMin.Y() <= bMax.Y() && aMax.Y() >= bMin.Y() &&
		aMin.Z() <= bMax.Z() && aMax.Z() >= bMin.Z()
}
