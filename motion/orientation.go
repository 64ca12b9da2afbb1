package motion

import (
	"github.com/gekko3d/traction/query"
	"github.com/go-gl/mathgl/mgl32"
)

// Normals flatter than this are not used for tilt.
const minAlignNormalY = 1e-3

// Align eases the body rotation toward the ground normal under it while
// keeping the heading from Yaw. It must run after IntegrateVertical and
// reports whether ground was found.
func Align(b *Body, p Params, port query.Port) bool {
	target, aligned := alignTarget(b, p, port)

	current := b.Rotation
	if !finiteQuat(current) || current.Len() < 1e-6 {
		current = mgl32.QuatIdent()
	}
	current = current.Normalize()
	if current.Dot(target) < 0 {
		target = target.Scale(-1)
	}

	next := mgl32.QuatSlerp(current, target, clamp(p.AlignFactor, 0, 1)).Normalize()
	if !finiteQuat(next) {
		next = target
	}
	b.Rotation = next
	return aligned
}

// AlignTarget is the rotation Align converges to: the yaw rotation tilted
// onto the ground normal below the body, or the bare yaw rotation in the air.
func AlignTarget(b *Body, p Params, port query.Port) mgl32.Quat {
	q, _ := alignTarget(b, p, port)
	return q
}

func alignTarget(b *Body, p Params, port query.Port) (mgl32.Quat, bool) {
	yawRot := YawRotation(b.Yaw)
	reach := b.halfExtents.Y() + p.StepHeight + p.AlignReach
	hit := port.CastRay(b.Position, down, reach, b.Filter())
	if !hit.Hit || !finiteVec(hit.Normal) || hit.Normal.Y() <= minAlignNormalY {
		return yawRot, false
	}
	n := hit.Normal.Normalize()
	tilt := mgl32.QuatBetweenVectors(up, n)
	if !finiteQuat(tilt) {
		return yawRot, false
	}
	return tilt.Mul(yawRot).Normalize(), true
}
