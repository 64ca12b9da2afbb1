package motion

import "math"

// Intent is one step of control input. Throttle and Steer are in [-1, 1];
// Jump is a one-step latch. Handbrake holds while set.
type Intent struct {
	Throttle  float32 `json:"throttle"`
	Steer     float32 `json:"steer"`
	Jump      bool    `json:"jump"`
	Handbrake bool    `json:"handbrake"`
}

// ApplyIntent turns throttle and steer into speed and yaw. Positive throttle
// accelerates, negative throttle brakes and then reverses, and throttle inside
// the dead zone coasts toward zero without crossing it. Wheeled bodies are
// held to their traction.
func ApplyIntent(b *Body, in Intent, p Params, dt float32) {
	throttle := clamp(in.Throttle, -1, 1)
	steer := clamp(in.Steer, -1, 1)
	if !finite(throttle) {
		throttle = 0
	}
	if !finite(steer) {
		steer = 0
	}
	tr := b.Traction

	if steer != 0 {
		rate := steer * p.YawRate
		if tr.Wheeled {
			rate = turnLimit(rate, b.Speed, tr.Lateral)
		}
		b.Yaw = wrapAngle(b.Yaw + rate*dt)
	}

	switch {
	case throttle > p.CoastDeadzone:
		dv := throttle * p.Acceleration * dt
		if tr.Wheeled {
			dv = min(dv, tr.Drive*dt)
		}
		b.Speed += dv
	case throttle < -p.CoastDeadzone:
		dv := -throttle * p.BrakeDeceleration * dt
		if tr.Wheeled {
			grip := tr.Drive
			if b.Speed > 0 {
				grip = tr.Brake
			}
			dv = min(dv, grip*dt)
		}
		b.Speed -= dv
	default:
		mag := abs32(b.Speed) - p.Friction*dt
		if mag < 0 {
			mag = 0
		}
		if b.Speed < 0 {
			mag = -mag
		}
		b.Speed = mag
	}

	if in.Handbrake && p.HandbrakeHalfLife > 0 && (!tr.Wheeled || tr.Brake > 0) {
		b.Speed *= float32(math.Exp2(-float64(dt / p.HandbrakeHalfLife)))
	}

	if !finite(b.Speed) {
		b.Speed = 0
	}
	b.Speed = clamp(b.Speed, -p.MaxSpeed, p.MaxSpeed)
}

// turnLimit caps a yaw rate so the sideways acceleration speed*rate stays
// within grip.
func turnLimit(rate, speed, grip float32) float32 {
	v := abs32(speed)
	if v < minMove {
		if grip <= 0 {
			return 0
		}
		return rate
	}
	limit := grip / v
	return clamp(rate, -limit, limit)
}
