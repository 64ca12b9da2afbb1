package collide

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gekko3d/traction/query"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var down = mgl32.Vec3{0, -1, 0}

func floorWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld(2)
	require.NoError(t, w.AddStatic(1, NewBox(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{10, 0.5, 10}, mgl32.QuatIdent())))
	w.Commit()
	return w
}

func assertVec(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], 1e-4, "component %d of %v", i, actual)
	}
}

func TestWorld_RayHitsFloor(t *testing.T) {
	w := floorWorld(t)

	hit := w.CastRay(mgl32.Vec3{0, 2, 0}, down, 5, query.Filter{})
	require.True(t, hit.Hit)
	assert.InDelta(t, 2.0, hit.Distance, 1e-5)
	assert.Equal(t, query.EntityId(1), hit.Entity)
	assertVec(t, mgl32.Vec3{0, 1, 0}, hit.Normal)
	assertVec(t, mgl32.Vec3{0, 0, 0}, hit.Point)

	miss := w.CastRay(mgl32.Vec3{0, 2, 0}, down, 1.5, query.Filter{})
	assert.False(t, miss.Hit)
}

func TestWorld_BoxCastContactPoint(t *testing.T) {
	w := floorWorld(t)

	hit := w.CastShape(query.Box(mgl32.Vec3{0.5, 0.5, 0.5}), mgl32.Vec3{1, 2, 1}, down, 5, query.Filter{})
	require.True(t, hit.Hit)
	assert.InDelta(t, 1.5, hit.Distance, 1e-5)
	// Bottom face center of the box at contact.
	assertVec(t, mgl32.Vec3{1, 0, 1}, hit.Point)
}

func TestWorld_SphereAgainstPlane(t *testing.T) {
	w := NewWorld(2)
	require.NoError(t, w.AddStatic(5, PlaneThrough(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})))

	hit := w.CastShape(query.Sphere(1), mgl32.Vec3{0, 3, 0}, down, 10, query.Filter{})
	require.True(t, hit.Hit)
	assert.InDelta(t, 2.0, hit.Distance, 1e-5)
	assertVec(t, mgl32.Vec3{0, 0, 0}, hit.Point)

	// One-sided: nothing below the plane is blocked.
	assert.False(t, w.CastRay(mgl32.Vec3{0, -1, 0}, down, 10, query.Filter{}).Hit)
}

func TestWorld_OrientedBoxNormal(t *testing.T) {
	w := NewWorld(2)
	tilt := float32(math.Pi / 6)
	require.NoError(t, w.AddStatic(2, NewBox(mgl32.Vec3{}, mgl32.Vec3{5, 0.5, 5}, mgl32.QuatRotate(tilt, mgl32.Vec3{1, 0, 0}))))
	w.Commit()

	hit := w.CastRay(mgl32.Vec3{0, 5, 0}, down, 10, query.Filter{})
	require.True(t, hit.Hit)
	cos, sin := float32(math.Cos(float64(tilt))), float32(math.Sin(float64(tilt)))
	assertVec(t, mgl32.Vec3{0, cos, sin}, hit.Normal)
	assert.InDelta(t, 5-0.5/cos, hit.Distance, 1e-4)
}

func TestWorld_FilterExcludes(t *testing.T) {
	w := floorWorld(t)
	assert.False(t, w.CastRay(mgl32.Vec3{0, 2, 0}, down, 5, query.Exclude(1)).Hit)
}

func TestWorld_InitialOverlap(t *testing.T) {
	w := floorWorld(t)
	shape := query.Box(mgl32.Vec3{0.5, 0.5, 0.5})
	origin := mgl32.Vec3{0, 0.2, 0}

	deeper := w.CastShape(shape, origin, down, 1, query.Filter{})
	require.True(t, deeper.Hit)
	assert.Equal(t, float32(0), deeper.Distance)
	assertVec(t, mgl32.Vec3{0, 1, 0}, deeper.Normal)

	assert.False(t, w.CastShape(shape, origin, mgl32.Vec3{0, 1, 0}, 1, query.Filter{}).Hit)
	assert.False(t, w.CastShape(shape, origin, mgl32.Vec3{1, 0, 0}, 1, query.Filter{}).Hit)
}

func TestWorld_NearestWins(t *testing.T) {
	w := NewWorld(2)
	require.NoError(t, w.AddStatic(1, NewBox(mgl32.Vec3{6, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.QuatIdent())))
	require.NoError(t, w.AddStatic(2, NewBox(mgl32.Vec3{3, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.QuatIdent())))
	w.Commit()

	hit := w.CastRay(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 10, query.Filter{})
	require.True(t, hit.Hit)
	assert.Equal(t, query.EntityId(2), hit.Entity)
	assert.InDelta(t, 2.5, hit.Distance, 1e-5)
	assertVec(t, mgl32.Vec3{-1, 0, 0}, hit.Normal)

	hit = w.CastRay(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 10, query.Exclude(2))
	assert.Equal(t, query.EntityId(1), hit.Entity)
}

func TestWorld_DynamicProxies(t *testing.T) {
	w := NewWorld(2)
	w.SetDynamic(9, mgl32.Vec3{3, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5})

	hit := w.CastRay(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 10, query.Filter{})
	require.True(t, hit.Hit)
	assert.Equal(t, query.EntityId(9), hit.Entity)
	assert.InDelta(t, 2.5, hit.Distance, 1e-5)

	w.ClearDynamic()
	assert.False(t, w.CastRay(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 10, query.Filter{}).Hit)

	assert.Error(t, func() error {
		w.SetDynamic(4, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})
		return w.AddStatic(4, NewBox(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent()))
	}())
}

func TestWorld_AddRemoveStatic(t *testing.T) {
	w := floorWorld(t)
	assert.Error(t, w.AddStatic(1, NewPlane(mgl32.Vec3{0, 1, 0}, 0)))
	assert.Equal(t, 1, w.StaticCount())

	assert.True(t, w.RemoveStatic(1))
	assert.False(t, w.RemoveStatic(1))
	w.Commit()
	assert.False(t, w.CastRay(mgl32.Vec3{0, 2, 0}, down, 5, query.Filter{}).Hit)
}

func TestWorld_CommittedMatchesScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	scan := NewWorld(2)
	tree := NewWorld(2)
	for i := 0; i < 40; i++ {
		c := NewBox(
			mgl32.Vec3{rng.Float32()*40 - 20, rng.Float32() * 4, rng.Float32()*40 - 20},
			mgl32.Vec3{0.5 + rng.Float32(), 0.5 + rng.Float32(), 0.5 + rng.Float32()},
			mgl32.QuatRotate(rng.Float32()*3, mgl32.Vec3{0, 1, 0}),
		)
		require.NoError(t, scan.AddStatic(query.EntityId(i+1), c))
		require.NoError(t, tree.AddStatic(query.EntityId(i+1), c))
	}
	tree.Commit()

	for i := 0; i < 200; i++ {
		origin := mgl32.Vec3{rng.Float32()*40 - 20, rng.Float32() * 4, rng.Float32()*40 - 20}
		dir := mgl32.Vec3{rng.Float32() - 0.5, rng.Float32() - 0.5, rng.Float32() - 0.5}
		if dir.Len() < 1e-3 {
			continue
		}
		dir = dir.Normalize()
		shape := query.Box(mgl32.Vec3{0.3, 0.3, 0.3})
		a := scan.CastShape(shape, origin, dir, 10, query.Filter{})
		b := tree.CastShape(shape, origin, dir, 10, query.Filter{})
		require.Equal(t, a.Hit, b.Hit, "cast %d", i)
		if a.Hit {
			assert.InDelta(t, a.Distance, b.Distance, 1e-5, "cast %d", i)
		}
	}
}
