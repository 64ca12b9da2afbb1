package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	up   = mgl32.Vec3{0, 1, 0}
	down = mgl32.Vec3{0, -1, 0}
)

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

func finiteVec(v mgl32.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

func finiteQuat(q mgl32.Quat) bool {
	return finite(q.W) && finiteVec(q.V)
}

// wrapAngle maps an angle into (-pi, pi].
func wrapAngle(a float32) float32 {
	w := float32(math.Remainder(float64(a), 2*math.Pi))
	if w <= -math.Pi {
		w += 2 * math.Pi
	}
	return w
}

// Forward is the horizontal heading for a yaw about +Y; yaw 0 faces +Z.
func Forward(yaw float32) mgl32.Vec3 {
	s, c := math.Sincos(float64(yaw))
	return mgl32.Vec3{float32(s), 0, float32(c)}
}

func YawRotation(yaw float32) mgl32.Quat {
	return mgl32.QuatRotate(yaw, up)
}
