// Package collide is an in-memory environment answering query.Port casts
// against static oriented boxes, one-sided planes and per-step body proxies.
package collide

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Kind int

const (
	KindBox Kind = iota
	KindPlane
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindPlane:
		return "plane"
	}
	return "unknown"
}

// Collider is a static obstacle. Boxes use Center, HalfExtents and Rotation.
// Planes use Normal and Offset (points x with Normal·x == Offset) and only
// block shapes whose center is in front of them.
type Collider struct {
	Kind        Kind
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
	Rotation    mgl32.Quat
	Normal      mgl32.Vec3
	Offset      float32
}

func NewBox(center, halfExtents mgl32.Vec3, rotation mgl32.Quat) Collider {
	if rotation.W == 0 && rotation.V.LenSqr() == 0 {
		rotation = mgl32.QuatIdent()
	}
	return Collider{
		Kind:        KindBox,
		Center:      center,
		HalfExtents: halfExtents,
		Rotation:    rotation.Normalize(),
	}
}

func NewPlane(normal mgl32.Vec3, offset float32) Collider {
	if normal.LenSqr() < 1e-12 {
		normal = mgl32.Vec3{0, 1, 0}
	}
	return Collider{Kind: KindPlane, Normal: normal.Normalize(), Offset: offset}
}

// PlaneThrough builds a plane passing through point.
func PlaneThrough(point, normal mgl32.Vec3) Collider {
	p := NewPlane(normal, 0)
	p.Offset = p.Normal.Dot(point)
	return p
}

func (c Collider) axes() [3]mgl32.Vec3 {
	return [3]mgl32.Vec3{
		c.Rotation.Rotate(mgl32.Vec3{1, 0, 0}),
		c.Rotation.Rotate(mgl32.Vec3{0, 1, 0}),
		c.Rotation.Rotate(mgl32.Vec3{0, 0, 1}),
	}
}

// Bounds returns the world AABB of a box. Planes are unbounded and report
// ok == false.
func (c Collider) Bounds() (minB, maxB mgl32.Vec3, ok bool) {
	if c.Kind != KindBox {
		return minB, maxB, false
	}
	ext := boxExtents(c.axes(), c.HalfExtents)
	return c.Center.Sub(ext), c.Center.Add(ext), true
}

// boxExtents is the world-axis half size of a box with the given axes.
func boxExtents(axes [3]mgl32.Vec3, half mgl32.Vec3) mgl32.Vec3 {
	var ext mgl32.Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ext[j] += abs32(axes[i][j]) * half[i]
		}
	}
	return ext
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
