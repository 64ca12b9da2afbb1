package traction

import (
	"testing"

	"github.com/gekko3d/traction/motion"
	"github.com/gekko3d/traction/suspension"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func character(eid EntityId) motion.Body {
	return motion.NewBody(eid, motion.ProfileCharacter, DefaultCharacterHalfExtents, motion.DefaultSpawn())
}

func vehicle(eid EntityId) (motion.Body, [4]suspension.Wheel) {
	b := motion.NewBody(eid, motion.ProfileVehicle, DefaultVehicleHalfExtents, motion.DefaultSpawn())
	return b, suspension.DefaultLayout().Wheels(eid, suspension.DefaultParams())
}

func TestArena_InsertLookupRemove(t *testing.T) {
	a := NewArena()
	a.insertBody(character(1))
	a.insertVehicle(vehicle(2))
	a.insertBody(character(3))

	require.Equal(t, 3, a.Len())
	require.Equal(t, 1, a.VehicleCount())

	v, ok := a.Vehicle(2)
	require.True(t, ok)
	for i, w := range a.Wheels(v) {
		assert.Equal(t, EntityId(2), w.Owner)
		assert.Equal(t, suspension.Corner(i), w.Corner)
	}
	_, ok = a.Vehicle(1)
	assert.False(t, ok)

	assert.True(t, a.remove(2))
	assert.False(t, a.remove(2))
	_, ok = a.Body(2)
	assert.False(t, ok)
	assert.Zero(t, a.VehicleCount())

	var ids []EntityId
	for _, b := range a.Bodies() {
		ids = append(ids, b.Entity)
	}
	assert.Equal(t, []EntityId{1, 3}, ids)
}

func TestArena_ReusesFreedSlots(t *testing.T) {
	a := NewArena()
	a.insertVehicle(vehicle(1))
	a.insertBody(character(2))
	require.True(t, a.remove(1))

	slot := a.insertBody(character(3))
	assert.Equal(t, 0, slot)
	assert.Len(t, a.bodies, 2)

	a.insertVehicle(vehicle(4))
	assert.Len(t, a.wheels, 4, "wheel slots reused")
	assert.Len(t, a.vehicles, 1, "vehicle slot reused")

	v, ok := a.Vehicle(4)
	require.True(t, ok)
	for _, w := range a.Wheels(v) {
		assert.Equal(t, EntityId(4), w.Owner)
	}
}

func TestArena_EachVehicleSkipsFreed(t *testing.T) {
	a := NewArena()
	a.insertVehicle(vehicle(1))
	a.insertVehicle(vehicle(2))
	a.insertVehicle(vehicle(3))
	a.remove(2)

	var seen []EntityId
	a.EachVehicle(func(v *Vehicle, b *motion.Body) bool {
		assert.Equal(t, v.Body, b.Entity)
		seen = append(seen, v.Body)
		return true
	})
	assert.Equal(t, []EntityId{1, 3}, seen)

	seen = nil
	a.EachVehicle(func(v *Vehicle, b *motion.Body) bool {
		seen = append(seen, v.Body)
		return false
	})
	assert.Len(t, seen, 1)
}
