package collide

import (
	"math"

	"github.com/gekko3d/traction/query"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	parallelEpsilon = 1e-8
	// Moving along a touching surface within this cosine does not count as
	// pushing into it.
	approachEpsilon = 1e-4
	supportEpsilon  = 1e-4
)

// sweeper is the moving volume of a cast. A ray is a sweeper with no extent.
type sweeper struct {
	sphere bool
	radius float32
	half   mgl32.Vec3
	axes   [3]mgl32.Vec3
}

func pointSweeper() sweeper {
	return sweeper{axes: identityAxes}
}

var identityAxes = [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

func newSweeper(shape query.Shape) sweeper {
	if shape.Kind == query.ShapeSphere {
		return sweeper{sphere: true, radius: shape.Radius, axes: identityAxes}
	}
	rot := shape.Orientation()
	return sweeper{
		half: shape.HalfExtents,
		axes: [3]mgl32.Vec3{
			rot.Rotate(mgl32.Vec3{1, 0, 0}),
			rot.Rotate(mgl32.Vec3{0, 1, 0}),
			rot.Rotate(mgl32.Vec3{0, 0, 1}),
		},
	}
}

// extentAlong is the support distance of the volume along unit axis n.
func (s sweeper) extentAlong(n mgl32.Vec3) float32 {
	if s.sphere {
		return s.radius
	}
	var e float32
	for i := 0; i < 3; i++ {
		e += abs32(n.Dot(s.axes[i])) * s.half[i]
	}
	return e
}

// bounds is the world-axis half size of the volume.
func (s sweeper) bounds() mgl32.Vec3 {
	if s.sphere {
		return mgl32.Vec3{s.radius, s.radius, s.radius}
	}
	return boxExtents(s.axes, s.half)
}

// contactOffset is the offset from the volume center to its deepest point
// against a surface with outward normal n. Axes nearly parallel to the
// surface contribute nothing, so a box resting on a face reports the center of
// its bottom face.
func (s sweeper) contactOffset(n mgl32.Vec3) mgl32.Vec3 {
	if s.sphere {
		return n.Mul(-s.radius)
	}
	var off mgl32.Vec3
	for i := 0; i < 3; i++ {
		d := n.Dot(s.axes[i])
		if abs32(d) < supportEpsilon {
			continue
		}
		if d > 0 {
			off = off.Sub(s.axes[i].Mul(s.half[i]))
		} else {
			off = off.Add(s.axes[i].Mul(s.half[i]))
		}
	}
	return off
}

// castBox sweeps s from origin along dir against an oriented box. The box is
// grown by the support of s along each of its own axes and the cast becomes a
// ray against the grown box, done with slabs in the box frame.
func castBox(box Collider, axes [3]mgl32.Vec3, s sweeper, origin, dir mgl32.Vec3, maxDist float32) (float32, mgl32.Vec3, bool) {
	rel := origin.Sub(box.Center)

	var o, d, e [3]float32
	for k := 0; k < 3; k++ {
		o[k] = rel.Dot(axes[k])
		d[k] = dir.Dot(axes[k])
		e[k] = box.HalfExtents[k] + s.extentAlong(axes[k])
	}

	// Already overlapping: block only motion that goes deeper along the
	// shallowest axis.
	if abs32(o[0]) < e[0] && abs32(o[1]) < e[1] && abs32(o[2]) < e[2] {
		best := 0
		bestPen := float32(math.Inf(1))
		for k := 0; k < 3; k++ {
			if pen := e[k] - abs32(o[k]); pen < bestPen {
				bestPen = pen
				best = k
			}
		}
		n := axes[best]
		if o[best] < 0 {
			n = n.Mul(-1)
		}
		if dir.Dot(n) < -approachEpsilon {
			return 0, n, true
		}
		return 0, mgl32.Vec3{}, false
	}

	tMin := float32(math.Inf(-1))
	tMax := float32(math.Inf(1))
	enterAxis := -1
	var enterSign float32

	for k := 0; k < 3; k++ {
		if abs32(d[k]) < parallelEpsilon {
			if abs32(o[k]) > e[k] {
				return 0, mgl32.Vec3{}, false
			}
			continue
		}
		t1 := (-e[k] - o[k]) / d[k]
		t2 := (e[k] - o[k]) / d[k]
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tMin {
			tMin = t1
			enterAxis = k
			enterSign = sign
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, mgl32.Vec3{}, false
		}
	}

	if enterAxis < 0 || tMin < 0 || tMin > maxDist {
		return 0, mgl32.Vec3{}, false
	}
	return tMin, axes[enterAxis].Mul(enterSign), true
}

// castPlane sweeps s against a one-sided plane. Shapes whose center is behind
// the plane never touch it.
func castPlane(plane Collider, s sweeper, origin, dir mgl32.Vec3, maxDist float32) (float32, bool) {
	n := plane.Normal
	height := n.Dot(origin) - plane.Offset
	if height < 0 {
		return 0, false
	}
	gap := height - s.extentAlong(n)
	approach := dir.Dot(n)
	if gap < 0 {
		return 0, approach < -approachEpsilon
	}
	if approach > -parallelEpsilon {
		return 0, false
	}
	t := gap / -approach
	if t > maxDist {
		return 0, false
	}
	return t, true
}
