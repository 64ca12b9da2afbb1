package motion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quatAngle(a, b mgl32.Quat) float64 {
	d := math.Abs(float64(a.Normalize().Dot(b.Normalize())))
	if d > 1 {
		d = 1
	}
	return 2 * math.Acos(d)
}

func TestAlign_FlatGroundKeepsYaw(t *testing.T) {
	w := newScene(t).floor(0).port()
	p := DefaultCharacterParams()
	p.AlignFactor = 1
	b := restingBody(p, 0, 0, 0)
	b.Yaw = 0.7

	require.True(t, Align(&b, p, w))
	assert.Less(t, quatAngle(YawRotation(0.7), b.Rotation), 1e-3)
}

func TestAlign_SlopeTiltsUpAndKeepsHeading(t *testing.T) {
	tilt := float32(-20 * math.Pi / 180)
	w := newScene(t).
		box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{5, 0.5, 5}, mgl32.QuatRotate(tilt, mgl32.Vec3{1, 0, 0})).
		port()
	p := DefaultCharacterParams()
	p.AlignFactor = 1

	b := NewBody(1, ProfileCharacter, unitHalf, Spawn{Position: mgl32.Vec3{0, 1.2, 0}})
	require.True(t, Align(&b, p, w))

	normal := mgl32.Vec3{0, float32(math.Cos(float64(tilt))), float32(math.Sin(float64(tilt)))}
	bodyUp := b.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
	assert.InDelta(t, 1, bodyUp.Dot(normal), 1e-4)

	fwd := b.Rotation.Rotate(mgl32.Vec3{0, 0, 1})
	assert.InDelta(t, 0, fwd.X(), 1e-4)
	assert.Greater(t, fwd.Z(), float32(0))
	assert.Equal(t, float32(0), b.Yaw)
}

func TestAlign_EasesTowardTarget(t *testing.T) {
	tilt := float32(-20 * math.Pi / 180)
	w := newScene(t).
		box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{5, 0.5, 5}, mgl32.QuatRotate(tilt, mgl32.Vec3{1, 0, 0})).
		port()
	p := DefaultCharacterParams()
	b := NewBody(1, ProfileCharacter, unitHalf, Spawn{Position: mgl32.Vec3{0, 1.2, 0}})
	target := AlignTarget(&b, p, w)

	prev := quatAngle(b.Rotation, target)
	for i := 0; i < 40; i++ {
		Align(&b, p, w)
		cur := quatAngle(b.Rotation, target)
		assert.Less(t, cur, prev+1e-6, "step %d", i)
		prev = cur
	}
	assert.Less(t, prev, 1e-2)
}

func TestAlign_AirborneUsesYaw(t *testing.T) {
	w := newScene(t).floor(0).port()
	p := DefaultCharacterParams()
	p.AlignFactor = 1
	b := NewBody(1, ProfileCharacter, unitHalf, Spawn{Position: mgl32.Vec3{0, 20, 0}, Yaw: -1.1})
	b.Rotation = mgl32.QuatRotate(0.4, mgl32.Vec3{1, 0, 0})

	assert.False(t, Align(&b, p, w))
	assert.Less(t, quatAngle(YawRotation(-1.1), b.Rotation), 1e-3)
}

func TestAlign_DegenerateRotation(t *testing.T) {
	w := newScene(t).floor(0).port()
	p := DefaultCharacterParams()
	b := restingBody(p, 0, 0, 0)
	b.Rotation = mgl32.Quat{}

	Align(&b, p, w)
	assert.True(t, finiteQuat(b.Rotation))
	assert.InDelta(t, 1, b.Rotation.Len(), 1e-4)
}
