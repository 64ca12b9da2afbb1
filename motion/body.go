package motion

import (
	"github.com/gekko3d/traction/query"
	"github.com/go-gl/mathgl/mgl32"
)

type Profile int

const (
	ProfileCharacter Profile = iota
	ProfileVehicle
)

func (p Profile) String() string {
	switch p {
	case ProfileCharacter:
		return "character"
	case ProfileVehicle:
		return "vehicle"
	}
	return "unknown"
}

type Spawn struct {
	Position mgl32.Vec3
	Yaw      float32
}

func DefaultSpawn() Spawn {
	return Spawn{Position: mgl32.Vec3{0, 3, 0}}
}

// Traction is the tire grip a wheeled body has, as the largest acceleration
// the ground can take along and across the heading.
type Traction struct {
	Wheeled bool
	// Drive is the grip of the driven wheels, Brake that of every wheel.
	Drive   float32
	Brake   float32
	Lateral float32
}

// Body is the locomotion state of one character or vehicle. Yaw is the
// authoritative heading; Rotation is derived from yaw and ground tilt and is
// never read back into Yaw.
type Body struct {
	Entity  query.EntityId
	Profile Profile

	Position         mgl32.Vec3
	Rotation         mgl32.Quat
	Yaw              float32
	Speed            float32
	VerticalVelocity float32
	Grounded         bool

	// Support is upward acceleration from wheels, consumed by the next
	// vertical pass. Supported is set while any wheel touches ground.
	Support   float32
	Supported bool
	Traction  Traction

	// Charge and Cooldown belong to weapon collaborators; the guard resets
	// them with the rest of the state.
	Charge   float32
	Cooldown float32

	Spawn Spawn

	halfExtents mgl32.Vec3
}

func NewBody(entity query.EntityId, profile Profile, halfExtents mgl32.Vec3, spawn Spawn) Body {
	b := Body{
		Entity:      entity,
		Profile:     profile,
		Spawn:       spawn,
		halfExtents: halfExtents,
	}
	Respawn(&b)
	return b
}

func (b *Body) HalfExtents() mgl32.Vec3 {
	return b.halfExtents
}

// Shape is the axis-aligned query volume of the body.
func (b *Body) Shape() query.Shape {
	return query.Box(b.halfExtents)
}

func (b *Body) Forward() mgl32.Vec3 {
	return Forward(b.Yaw)
}

// Filter excludes the body's own proxy from its queries.
func (b *Body) Filter() query.Filter {
	return query.Exclude(b.Entity)
}

// Bounds is the world AABB of the body at its current position.
func (b *Body) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	return b.Position.Sub(b.halfExtents), b.Position.Add(b.halfExtents)
}
