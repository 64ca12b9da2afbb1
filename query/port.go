// Package query defines the spatial query contract that locomotion and
// suspension code uses to look at the environment.
package query

import (
	"github.com/go-gl/mathgl/mgl32"
)

type EntityId uint64

type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
)

// Shape is the volume swept by CastShape. A zero Rotation is treated as
// identity.
type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl32.Vec3
	Radius      float32
	Rotation    mgl32.Quat
}

func Box(halfExtents mgl32.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents, Rotation: mgl32.QuatIdent()}
}

func OrientedBox(halfExtents mgl32.Vec3, rotation mgl32.Quat) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents, Rotation: rotation}
}

func Sphere(radius float32) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius, Rotation: mgl32.QuatIdent()}
}

// Orientation returns the shape rotation, substituting identity for the zero
// quaternion.
func (s Shape) Orientation() mgl32.Quat {
	if s.Rotation.W == 0 && s.Rotation.V.LenSqr() == 0 {
		return mgl32.QuatIdent()
	}
	return s.Rotation.Normalize()
}

// Filter is a set of entities a query must ignore. The zero value excludes
// nothing.
type Filter struct {
	exclude map[EntityId]struct{}
}

func Exclude(ids ...EntityId) Filter {
	if len(ids) == 0 {
		return Filter{}
	}
	f := Filter{exclude: make(map[EntityId]struct{}, len(ids))}
	for _, id := range ids {
		f.exclude[id] = struct{}{}
	}
	return f
}

func (f Filter) Excludes(id EntityId) bool {
	if f.exclude == nil {
		return false
	}
	_, ok := f.exclude[id]
	return ok
}

// Hit describes the nearest obstacle along a cast. Hit is false when the path
// is clear.
type Hit struct {
	Hit      bool
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Entity   EntityId
}

// Port answers ray and shape casts against the environment. dir must be unit
// length. Implementations are read-only for the duration of a step and safe
// for concurrent queries.
type Port interface {
	CastRay(origin, dir mgl32.Vec3, maxDist float32, filter Filter) Hit
	CastShape(shape Shape, origin, dir mgl32.Vec3, maxDist float32, filter Filter) Hit
}
