package motion

import (
	"math"
	"testing"

	"github.com/gekko3d/traction/query"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFallGuard_ResetsEveryField(t *testing.T) {
	g := FallGuard{FloorY: -50}
	spawn := Spawn{Position: mgl32.Vec3{0, 3, 0}}
	b := NewBody(7, ProfileVehicle, mgl32.Vec3{1, 0.5, 2}, spawn)

	b.Position = mgl32.Vec3{12, -51, 4}
	b.Rotation = mgl32.QuatRotate(1, mgl32.Vec3{1, 0, 0})
	b.Yaw = 2
	b.Speed = 40
	b.VerticalVelocity = -30
	b.Grounded = true
	b.Support = 9
	b.Supported = true
	b.Traction = Traction{Wheeled: true, Drive: 20, Brake: 20, Lateral: 15}
	b.Charge = 0.2
	b.Cooldown = 0.7

	assert.True(t, g.Check(&b))
	assert.Equal(t, spawn.Position, b.Position)
	assert.Equal(t, float32(0), b.Yaw)
	assert.Equal(t, YawRotation(0), b.Rotation)
	assert.Equal(t, float32(0), b.Speed)
	assert.Equal(t, float32(0), b.VerticalVelocity)
	assert.False(t, b.Grounded)
	assert.Zero(t, b.Support)
	assert.False(t, b.Supported)
	assert.Equal(t, Traction{Wheeled: true}, b.Traction)
	assert.Equal(t, float32(1), b.Charge)
	assert.Equal(t, float32(0), b.Cooldown)

	assert.Equal(t, query.EntityId(7), b.Entity)
	assert.Equal(t, ProfileVehicle, b.Profile)
	assert.Equal(t, mgl32.Vec3{1, 0.5, 2}, b.HalfExtents())
}

func TestFallGuard_Idempotent(t *testing.T) {
	g := FallGuard{FloorY: -50}
	b := NewBody(1, ProfileCharacter, unitHalf, DefaultSpawn())

	b.Position = mgl32.Vec3{0, -60, 0}
	assert.True(t, g.Check(&b))
	after := b

	assert.False(t, g.Check(&b))
	assert.False(t, g.Check(&b))
	assert.Equal(t, after, b)
}

func TestFallGuard_AboveFloorUntouched(t *testing.T) {
	g := FallGuard{FloorY: -50}
	b := NewBody(1, ProfileCharacter, unitHalf, DefaultSpawn())
	b.Position = mgl32.Vec3{3, -49, 3}
	b.Speed = 5
	before := b

	assert.False(t, g.Check(&b))
	assert.Equal(t, before, b)
}

func TestFallGuard_NonFinitePosition(t *testing.T) {
	g := FallGuard{FloorY: -50}
	b := NewBody(1, ProfileCharacter, unitHalf, DefaultSpawn())
	b.Position = mgl32.Vec3{float32(math.NaN()), 0, 0}

	assert.True(t, g.Check(&b))
	assert.Equal(t, DefaultSpawn().Position, b.Position)
}
