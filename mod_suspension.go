package traction

import (
	"github.com/gekko3d/traction/motion"
	"github.com/gekko3d/traction/suspension"
)

type SuspensionModule struct{}

func (SuspensionModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(SuspensionSystem).InStage(Suspension),
	)
}

// SuspensionSystem steps every vehicle's wheels against the post-motion
// chassis. The spring force reaches the body as support for the next
// vertical pass, so Grounded and VerticalVelocity stay owned by that pass.
func SuspensionSystem(cmd *Commands, arena *Arena, intents *IntentBuffer, store *TuningStore, sq *SpatialQuery, ft *FixedTime) {
	params := store.Current().Suspension
	log := cmd.Logger()

	arena.EachVehicle(func(v *Vehicle, b *motion.Body) bool {
		ch := suspension.Chassis{
			Entity:           b.Entity,
			Position:         b.Position,
			Rotation:         b.Rotation,
			Speed:            b.Speed,
			Steer:            intents.Get(b.Entity).Steer,
			VerticalVelocity: b.VerticalVelocity,
		}
		rep := suspension.Step(&ch, arena.Wheels(v), &v.Tilt, params, sq.Port, ft.Dt)

		b.Support = rep.Force / params.Mass
		b.Supported = rep.Grounded > 0
		b.Traction = motion.Traction{
			Wheeled: true,
			Drive:   params.GripLong * rep.DriveForce / params.Mass,
			Brake:   params.GripLong * rep.Force / params.Mass,
			Lateral: params.GripLat * rep.Force / params.Mass,
		}
		for _, bo := range rep.BottomOuts {
			log.Warnf("vehicle %d: %s wheel at full travel for %d frames", bo.Owner, bo.Corner, bo.Frames)
		}
		return true
	})
}
