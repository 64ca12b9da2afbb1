// Package suspension drives four raycast wheels per vehicle: spring and
// damper forces, anti-roll, chassis tilt and wheel poses.
//
// Chassis-local axes: +Z forward, +Y up, +X left.
package suspension

import (
	"github.com/gekko3d/traction/query"
	"github.com/go-gl/mathgl/mgl32"
)

type Corner int

const (
	FrontLeft Corner = iota
	FrontRight
	RearLeft
	RearRight
)

// Axles pairs left and right wheels; index 0 is the front axle.
var Axles = [2][2]Corner{
	{FrontLeft, FrontRight},
	{RearLeft, RearRight},
}

func (c Corner) String() string {
	switch c {
	case FrontLeft:
		return "front-left"
	case FrontRight:
		return "front-right"
	case RearLeft:
		return "rear-left"
	case RearRight:
		return "rear-right"
	}
	return "unknown"
}

func (c Corner) IsFront() bool { return c == FrontLeft || c == FrontRight }
func (c Corner) IsLeft() bool  { return c == FrontLeft || c == RearLeft }

func (c Corner) Axle() int {
	if c.IsFront() {
		return 0
	}
	return 1
}

type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

type Wheel struct {
	Owner       query.EntityId
	Corner      Corner
	MountOffset mgl32.Vec3
	Radius      float32
	IsFront     bool
	IsLeft      bool

	Compression     float32
	PrevCompression float32
	ContactPoint    mgl32.Vec3
	ContactNormal   mgl32.Vec3
	Grounded        bool

	// Spin is the roll angle about the axle, Steer the yaw angle of the hub.
	Spin  float32
	Steer float32
	// Pose is chassis-local.
	Pose Pose

	limitFrames int
}

func NewWheel(owner query.EntityId, corner Corner, mount mgl32.Vec3, radius float32, p Params) Wheel {
	w := Wheel{
		Owner:       owner,
		Corner:      corner,
		MountOffset: mount,
		Radius:      radius,
		IsFront:     corner.IsFront(),
		IsLeft:      corner.IsLeft(),
	}
	w.Reset(p)
	return w
}

// Reset clears contact and spin state and puts the wheel at rest extension.
func (w *Wheel) Reset(p Params) {
	w.Compression = 0
	w.PrevCompression = 0
	w.ContactPoint = mgl32.Vec3{}
	w.ContactNormal = mgl32.Vec3{0, 1, 0}
	w.Grounded = false
	w.Spin = 0
	w.Steer = 0
	w.limitFrames = 0
	w.updatePose(p)
}

// BottomOutFrames is the current run of frames spent at full travel.
func (w *Wheel) BottomOutFrames() int {
	return w.limitFrames
}

func (w *Wheel) updatePose(p Params) {
	extension := p.RestLength - w.Compression
	w.Pose.Position = w.MountOffset.Sub(mgl32.Vec3{0, extension - w.Radius, 0})
	rot := mgl32.QuatRotate(w.Spin, mgl32.Vec3{1, 0, 0})
	if w.IsFront {
		rot = mgl32.QuatRotate(w.Steer, mgl32.Vec3{0, 1, 0}).Mul(rot)
	}
	w.Pose.Rotation = rot.Normalize()
}

// Layout is the wheel placement of a vehicle, indexed by Corner.
type Layout struct {
	Mounts [4]mgl32.Vec3
	Radius float32
}

func DefaultLayout() Layout {
	return Layout{
		Mounts: [4]mgl32.Vec3{
			FrontLeft:  {0.8, -0.3, 1.3},
			FrontRight: {-0.8, -0.3, 1.3},
			RearLeft:   {0.8, -0.3, -1.3},
			RearRight:  {-0.8, -0.3, -1.3},
		},
		Radius: 0.35,
	}
}

// Wheels builds the four wheels of a vehicle in Corner order.
func (l Layout) Wheels(owner query.EntityId, p Params) [4]Wheel {
	var ws [4]Wheel
	for c := FrontLeft; c <= RearRight; c++ {
		ws[c] = NewWheel(owner, c, l.Mounts[c], l.Radius, p)
	}
	return ws
}
