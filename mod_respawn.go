package traction

import (
	"github.com/gekko3d/traction/motion"
	"github.com/gekko3d/traction/suspension"
)

// RespawnModule installs the fall guard and handles explicit respawn
// requests. The floor height comes from the tuning's respawn section.
type RespawnModule struct{}

func (RespawnModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(RespawnSystem).InStage(PostStep),
	)
}

func RespawnSystem(cmd *Commands, arena *Arena, store *TuningStore) {
	tuning := store.Current()
	guard := motion.FallGuard{FloorY: tuning.Respawn.FloorY}
	log := cmd.Logger()

	for _, b := range arena.Bodies() {
		if guard.Check(b) {
			resetVehicle(arena, b.Entity, tuning.Suspension)
			log.Infof("%s %d fell below %.1f; respawned", b.Profile, b.Entity, guard.FloorY)
		}
	}

	for _, eid := range arena.takeRespawns() {
		b, ok := arena.Body(eid)
		if !ok {
			log.Warnf("respawn: %v: %d", ErrUnknownEntity, eid)
			continue
		}
		motion.Respawn(b)
		resetVehicle(arena, eid, tuning.Suspension)
		log.Infof("%s %d respawned on request", b.Profile, eid)
	}
}

func resetVehicle(arena *Arena, eid EntityId, p suspension.Params) {
	v, ok := arena.Vehicle(eid)
	if !ok {
		return
	}
	v.Tilt = suspension.Tilt{}
	for _, w := range arena.Wheels(v) {
		w.Reset(p)
	}
}
