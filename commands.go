package traction

import (
	"errors"
	"fmt"

	"github.com/gekko3d/traction/collide"
	"github.com/gekko3d/traction/motion"
	"github.com/gekko3d/traction/suspension"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrUnknownEntity = errors.New("unknown entity")

var (
	DefaultCharacterHalfExtents = mgl32.Vec3{0.4, 0.9, 0.4}
	DefaultVehicleHalfExtents   = mgl32.Vec3{1, 0.5, 2}
)

type CharacterSpec struct {
	Spawn       motion.Spawn
	HalfExtents mgl32.Vec3
}

type VehicleSpec struct {
	Spawn       motion.Spawn
	HalfExtents mgl32.Vec3
	Layout      suspension.Layout
}

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}

// SpawnCharacter queues a character body. Zero half extents use
// DefaultCharacterHalfExtents.
func (cmd *Commands) SpawnCharacter(spec CharacterSpec) EntityId {
	if spec.HalfExtents == (mgl32.Vec3{}) {
		spec.HalfExtents = DefaultCharacterHalfExtents
	}
	eid := cmd.app.nextEntityId()
	cmd.app.pendingSpawns = append(cmd.app.pendingSpawns, pendingSpawn{
		eid:     eid,
		profile: motion.ProfileCharacter,
		spawn:   spec.Spawn,
		half:    spec.HalfExtents,
	})
	return eid
}

// SpawnVehicle queues a vehicle body and its four wheels. Zero half extents
// and a zero layout use the defaults.
func (cmd *Commands) SpawnVehicle(spec VehicleSpec) EntityId {
	if spec.HalfExtents == (mgl32.Vec3{}) {
		spec.HalfExtents = DefaultVehicleHalfExtents
	}
	if spec.Layout == (suspension.Layout{}) {
		spec.Layout = suspension.DefaultLayout()
	}
	eid := cmd.app.nextEntityId()
	cmd.app.pendingSpawns = append(cmd.app.pendingSpawns, pendingSpawn{
		eid:     eid,
		profile: motion.ProfileVehicle,
		spawn:   spec.Spawn,
		half:    spec.HalfExtents,
		layout:  spec.Layout,
	})
	return eid
}

// AddCollider queues a static collider for the collision world.
func (cmd *Commands) AddCollider(c collide.Collider) EntityId {
	eid := cmd.app.nextEntityId()
	cmd.app.pendingColliders = append(cmd.app.pendingColliders, pendingCollider{
		eid:      eid,
		collider: c,
	})
	return eid
}

// Despawn queues removal of a body or a static collider.
func (cmd *Commands) Despawn(eid EntityId) {
	cmd.app.pendingRemovals = append(cmd.app.pendingRemovals, eid)
}

// RequestRespawn asks the respawn pass to reset a body at the end of the
// current step.
func (cmd *Commands) RequestRespawn(eid EntityId) error {
	if _, ok := cmd.app.arena.Body(eid); !ok && !cmd.app.isPending(eid) {
		return fmt.Errorf("request respawn %d: %w", eid, ErrUnknownEntity)
	}
	cmd.app.arena.respawns = append(cmd.app.arena.respawns, eid)
	return nil
}

// SetIntent replaces the held intent of a body. Jump stays latched until a
// vertical pass consumes it.
func (cmd *Commands) SetIntent(eid EntityId, in motion.Intent) error {
	if _, ok := cmd.app.arena.Body(eid); !ok && !cmd.app.isPending(eid) {
		return fmt.Errorf("set intent %d: %w", eid, ErrUnknownEntity)
	}
	cmd.app.intents.Set(eid, in)
	return nil
}
