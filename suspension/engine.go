package suspension

import (
	"math"

	"github.com/gekko3d/traction/query"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	up    = mgl32.Vec3{0, 1, 0}
	rollX = mgl32.Vec3{1, 0, 0}
	rollZ = mgl32.Vec3{0, 0, 1}
)

// Tilt is the suspension-driven roll and pitch of a chassis, layered on top
// of its ground-aligned rotation. Positive roll lifts the left side.
type Tilt struct {
	Roll      float32
	Pitch     float32
	RollRate  float32
	PitchRate float32
}

func (t Tilt) Rotation() mgl32.Quat {
	return mgl32.QuatRotate(t.Pitch, rollX).Mul(mgl32.QuatRotate(t.Roll, rollZ)).Normalize()
}

// Chassis is the slice of a vehicle body the suspension reads and writes.
type Chassis struct {
	Entity   query.EntityId
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Speed    float32
	// Steer is the normalized steering input in [-1, 1].
	Steer            float32
	VerticalVelocity float32
}

// BottomOut is raised when a wheel has been pinned at full travel for longer
// than Params.BottomOutFrames.
type BottomOut struct {
	Owner  query.EntityId
	Corner Corner
	Frames int
}

type Report struct {
	Grounded int
	// Force is the total upward spring force; DriveForce is the part carried
	// by driven wheels.
	Force      float32
	DriveForce float32
	BottomOuts []BottomOut
}

// Step runs one suspension tick: wheel rays, spring and damper forces,
// anti-roll, tilt integration and wheel poses. Nil wheels are skipped.
func Step(ch *Chassis, wheels [4]*Wheel, tilt *Tilt, p Params, port query.Port, dt float32) Report {
	var rep Report

	rot := chassisRotation(ch.Rotation).Mul(tilt.Rotation()).Normalize()
	chassisUp := rot.Rotate(up)
	down := chassisUp.Mul(-1)
	rayLen := p.RestLength + p.MaxTravel
	filter := query.Exclude(ch.Entity)

	var rollTorque, pitchTorque, lift float32
	for _, w := range wheels {
		if w == nil {
			continue
		}
		mount := ch.Position.Add(rot.Rotate(w.MountOffset))
		w.PrevCompression = w.Compression

		hit := port.CastRay(mount, down, rayLen, filter)
		if hit.Hit {
			w.Grounded = true
			w.Compression = clamp(p.RestLength-hit.Distance, 0, p.MaxTravel)
			w.ContactPoint = hit.Point
			w.ContactNormal = hit.Normal
			rep.Grounded++
		} else {
			w.Grounded = false
			w.Compression = 0
			w.ContactPoint = mount.Add(down.Mul(rayLen))
			w.ContactNormal = up
		}

		if w.Grounded && w.Compression >= p.MaxTravel {
			w.limitFrames++
			if w.limitFrames > p.BottomOutFrames {
				rep.BottomOuts = append(rep.BottomOuts, BottomOut{Owner: w.Owner, Corner: w.Corner, Frames: w.limitFrames})
				w.limitFrames = 0
			}
		} else {
			w.limitFrames = 0
		}

		if !w.Grounded {
			continue
		}
		x, z := w.MountOffset.X(), w.MountOffset.Z()
		var rate float32
		if dt > 0 {
			rate = (w.Compression - w.PrevCompression) / dt
		}
		f := p.SpringK*w.Compression + p.DampingC*rate
		if f < 0 || !finite(f) {
			f = 0
		}
		load := f * max(w.ContactNormal.Y(), 0)
		lift += load
		if p.DriveMode.Drives(w.Corner) {
			rep.DriveForce += load
		}
		rollTorque += f * x
		pitchTorque -= f * z
	}

	for axle, pair := range Axles {
		l, r := wheels[pair[0]], wheels[pair[1]]
		if l == nil || r == nil {
			continue
		}
		rollTorque += (l.Compression - r.Compression) * p.AntiRollStiffness[axle]
	}

	rep.Force = lift
	ch.VerticalVelocity += lift / p.Mass * dt
	integrateTilt(tilt, rollTorque, pitchTorque, p, dt)

	steer := clamp(ch.Steer, -1, 1) * p.MaxSteerAngle
	for _, w := range wheels {
		if w == nil {
			continue
		}
		if w.IsFront {
			w.Steer = steer
		}
		if w.Radius > 0 {
			w.Spin = wrapSpin(w.Spin + ch.Speed*dt/w.Radius)
		}
		w.updatePose(p)
	}

	return rep
}

func integrateTilt(t *Tilt, rollTorque, pitchTorque float32, p Params, dt float32) {
	t.RollRate += rollTorque / p.RollInertia * dt
	t.PitchRate += pitchTorque / p.PitchInertia * dt

	damp := max(1-p.TiltDamping*dt, 0)
	t.RollRate *= damp
	t.PitchRate *= damp

	if !finite(t.RollRate) || !finite(t.PitchRate) {
		t.RollRate, t.PitchRate = 0, 0
	}
	mag := float32(math.Hypot(float64(t.RollRate), float64(t.PitchRate)))
	if mag > p.MaxAngularVelocity {
		s := p.MaxAngularVelocity / mag
		t.RollRate *= s
		t.PitchRate *= s
	}

	t.Roll, t.RollRate = limitAngle(t.Roll+t.RollRate*dt, t.RollRate, p.MaxTilt)
	t.Pitch, t.PitchRate = limitAngle(t.Pitch+t.PitchRate*dt, t.PitchRate, p.MaxTilt)
}

// limitAngle clamps a to ±limit and kills the rate pushing past the stop.
func limitAngle(a, rate, limit float32) (float32, float32) {
	if a > limit {
		return limit, min(rate, 0)
	}
	if a < -limit {
		return -limit, max(rate, 0)
	}
	return a, rate
}

func chassisRotation(q mgl32.Quat) mgl32.Quat {
	if q.Len() < 1e-6 || !finite(q.W) {
		return mgl32.QuatIdent()
	}
	return q.Normalize()
}

func wrapSpin(a float32) float32 {
	s := float32(math.Mod(float64(a), 2*math.Pi))
	if s < 0 {
		s += 2 * math.Pi
	}
	return s
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
