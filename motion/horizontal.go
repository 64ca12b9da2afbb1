package motion

import (
	"math"

	"github.com/gekko3d/traction/query"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxSweepIterations bounds the sweep-and-slide loop. Motion left over after
// the last iteration is dropped.
const MaxSweepIterations = 3

const minMove = 1e-5

type HorizontalResult struct {
	Iterations int
	Hits       int
	// Steps counts ledges climbed.
	Steps int
	// Dropped is the length of motion discarded after the last iteration.
	Dropped float32
}

// MoveHorizontal sweeps the body along its heading for one step, sliding along
// walls and following walkable slopes.
func MoveHorizontal(b *Body, p Params, port query.Port, dt float32) HorizontalResult {
	var res HorizontalResult

	remaining := b.Forward().Mul(b.Speed * dt)
	shape := b.Shape()
	filter := b.Filter()
	slopeCos := p.SlopeCos()
	grounded := b.Grounded

	for res.Iterations < MaxSweepIterations {
		dist := remaining.Len()
		if dist < minMove || !finite(dist) {
			return res
		}
		res.Iterations++
		dir := remaining.Mul(1 / dist)

		hit := port.CastShape(shape, b.Position, dir, dist+p.Skin, filter)
		if !hit.Hit {
			b.Position = b.Position.Add(remaining)
			return res
		}
		res.Hits++

		advance := max(hit.Distance-p.Skin, 0)
		b.Position = b.Position.Add(dir.Mul(advance))
		restLen := dist - advance
		rest := dir.Mul(restLen)
		n := hit.Normal

		if n.Y() > slopeCos {
			// Walkable: keep going along the surface.
			remaining = alongSurface(rest, n, restLen)
			continue
		}

		if grounded && p.StepHeight > 0 {
			if moved, ok := stepUp(b, dir, restLen, p, port); ok {
				res.Steps++
				remaining = dir.Mul(restLen - moved)
				continue
			}
		}

		wall := mgl32.Vec3{n.X(), 0, n.Z()}
		if wall.LenSqr() < 1e-8 {
			res.Dropped = restLen
			return res
		}
		wall = wall.Normalize()

		steepness := 1 - clamp(n.Y(), 0, 1)
		ease := p.SlopeDamping * float32(math.Pow(float64(steepness), float64(p.SlopeEase)))
		factor := clamp((1-p.CollisionDamping)*(1-ease), 0, 1)
		incidence := abs32(dir.Dot(wall))

		slide := rest.Sub(wall.Mul(rest.Dot(wall)))
		remaining = slide.Mul(factor).Add(wall.Mul(p.BounceFactor * incidence * restLen))
		b.Speed *= factor
	}

	res.Dropped = remaining.Len()
	return res
}

// stepUp lifts the body by up to StepHeight, sweeps it forward and sets it
// down on a higher walkable surface. It reports how far the body moved
// forward and leaves the body untouched when no ledge top is found.
func stepUp(b *Body, dir mgl32.Vec3, dist float32, p Params, port query.Port) (float32, bool) {
	shape := b.Shape()
	filter := b.Filter()

	lift := p.StepHeight
	if c := port.CastShape(shape, b.Position, up, lift+p.Skin, filter); c.Hit {
		lift = max(c.Distance-p.Skin, 0)
	}
	if lift < minMove {
		return 0, false
	}
	raised := b.Position.Add(up.Mul(lift))

	advance := dist
	if c := port.CastShape(shape, raised, dir, dist+p.Skin, filter); c.Hit {
		advance = max(c.Distance-p.Skin, 0)
	}
	if advance < minMove {
		return 0, false
	}
	moved := raised.Add(dir.Mul(advance))

	ground := port.CastShape(shape, moved, down, lift+p.Skin, filter)
	if !ground.Hit || ground.Normal.Y() <= p.SlopeCos() {
		return 0, false
	}
	drop := max(ground.Distance-p.Skin, 0)
	if lift-drop < minMove {
		// Nothing to climb: the ground ahead is no higher than here.
		return 0, false
	}
	moved[1] -= drop
	b.Position = moved
	return advance, true
}

// alongSurface projects v onto the plane with normal n and restores its
// length.
func alongSurface(v, n mgl32.Vec3, length float32) mgl32.Vec3 {
	proj := v.Sub(n.Mul(v.Dot(n)))
	l := proj.Len()
	if l < minMove {
		return mgl32.Vec3{}
	}
	return proj.Mul(length / l)
}
