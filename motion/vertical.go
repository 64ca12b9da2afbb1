package motion

import (
	"github.com/gekko3d/traction/query"
	"github.com/go-gl/mathgl/mgl32"
)

type VerticalResult struct {
	// Landed is set on the step a falling body touches walkable ground.
	Landed      bool
	ImpactSpeed float32
	// Ceiling is set when rising motion was cut short.
	Ceiling bool
	// Steep is set when descent was blocked by a non-walkable surface.
	Steep bool
}

// IntegrateVertical applies jump and gravity, moves the body vertically and
// snaps it onto walkable ground. It must run after MoveHorizontal.
func IntegrateVertical(b *Body, jump bool, p Params, port query.Port, dt float32) VerticalResult {
	var res VerticalResult

	shape := b.Shape()
	filter := b.Filter()
	half := b.halfExtents.Y()
	slopeCos := p.SlopeCos()

	if !finite(b.VerticalVelocity) {
		b.VerticalVelocity = 0
	}
	if !finite(b.Support) {
		b.Support = 0
	}

	// 1. Re-check grounding. Bodies that were on the ground follow it down
	// by up to a step.
	wasGrounded := b.Grounded
	if wasGrounded {
		hit := port.CastShape(shape, b.Position, down, 2*p.Skin+p.StepHeight, filter)
		b.Grounded = hit.Hit && hit.Normal.Y() > slopeCos
	}

	// 2. Jump
	if jump {
		b.VerticalVelocity = p.JumpImpulse
		b.Grounded = false
	}

	// 3. Gravity, offset by external support such as springs.
	accel := b.Support - p.Gravity
	b.Support = 0
	if !b.Grounded {
		b.VerticalVelocity += accel * dt
	} else if accel > 0 {
		b.VerticalVelocity = accel * dt
		b.Grounded = false
	} else if b.VerticalVelocity < 0 {
		b.VerticalVelocity = 0
	}
	supported := wasGrounded && b.Grounded

	// 4. Advance, cutting rising motion at ceilings.
	start := b.Position
	dy := b.VerticalVelocity * dt
	if dy > 0 {
		if c := port.CastShape(shape, start, up, dy+p.Skin, filter); c.Hit {
			dy = max(c.Distance-p.Skin, 0)
			b.VerticalVelocity = 0
			res.Ceiling = true
		}
	}
	target := start.Y() + dy

	// 5. Resolve against the ground from a position raised by the step
	// height, so ramps started this step are not missed.
	top := max(start.Y(), target)
	lift := p.StepHeight
	if lift > 0 {
		from := mgl32.Vec3{start.X(), top, start.Z()}
		if c := port.CastShape(shape, from, up, lift+p.Skin, filter); c.Hit {
			lift = max(c.Distance-p.Skin, 0)
		}
	}
	reach := p.Skin
	if supported {
		reach += p.StepHeight
	}
	origin := mgl32.Vec3{start.X(), top + lift, start.Z()}
	ground := port.CastShape(shape, origin, down, origin.Y()-target+reach, filter)
	if ground.Hit && ground.Normal.Y() <= slopeCos && lift > 0 {
		// The raised box may only be touching a steep face beside the body.
		origin[1] = top
		ground = port.CastShape(shape, origin, down, origin.Y()-target+reach, filter)
	}

	if !ground.Hit {
		b.Position[1] = target
		b.Grounded = false
		return res
	}

	if ground.Normal.Y() <= slopeCos {
		res.Steep = true
		b.Grounded = false
		slideSteep(b, start, dy, p, port, filter)
		return res
	}

	landY := ground.Point.Y() + half + p.Skin
	if b.VerticalVelocity > 0 && landY <= target {
		// Rising clear of the surface.
		b.Position[1] = target
		b.Grounded = false
		return res
	}

	impact := max(-b.VerticalVelocity, 0)
	b.Position[1] = landY
	b.Grounded = true
	b.VerticalVelocity = 0
	if impact > p.LandingImpactSpeed {
		b.Speed *= p.LandingSpeedFactor
	}
	if !supported {
		res.Landed = true
		res.ImpactSpeed = impact
	}
	return res
}

// slideSteep moves the body down a surface too steep to stand on, turning the
// blocked part of the vertical motion into motion along the surface.
func slideSteep(b *Body, start mgl32.Vec3, dy float32, p Params, port query.Port, filter query.Filter) {
	b.Position = start
	if dy >= 0 {
		b.Position[1] += dy
		return
	}

	shape := b.Shape()
	dist := -dy
	hit := port.CastShape(shape, start, down, dist+p.Skin, filter)
	if !hit.Hit {
		b.Position[1] += dy
		return
	}
	advance := max(hit.Distance-p.Skin, 0)
	b.Position[1] -= advance

	rest := down.Mul(dist - advance)
	n := hit.Normal
	slide := rest.Sub(n.Mul(rest.Dot(n)))
	l := slide.Len()
	if l < minMove || !finite(l) {
		return
	}
	dir := slide.Mul(1 / l)
	if s := port.CastShape(shape, b.Position, dir, l+p.Skin, filter); s.Hit {
		b.Position = b.Position.Add(dir.Mul(max(s.Distance-p.Skin, 0)))
		return
	}
	b.Position = b.Position.Add(slide)
}
