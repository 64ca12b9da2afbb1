package traction

import (
	"github.com/gekko3d/traction/collide"
	"github.com/gekko3d/traction/query"
)

const defaultCellSize = 4.0

// SpatialQuery is the port every pass queries. Port defaults to World; a
// host engine may swap in its own implementation before the first step.
type SpatialQuery struct {
	World *collide.World
	Port  query.Port

	dirty bool
}

type SpatialGridModule struct {
	CellSize float32
}

func (m SpatialGridModule) Install(app *App, cmd *Commands) {
	cell := m.CellSize
	if cell <= 0 {
		cell = defaultCellSize
	}
	world := collide.NewWorld(cell)
	cmd.AddResources(&SpatialQuery{World: world, Port: world})

	app.UseSystem(
		System(UpdateSpatialGridSystem).InStage(Prelude),
	)
}

// UpdateSpatialGridSystem commits static changes and re-inserts every body
// as a dynamic proxy at its current position.
func UpdateSpatialGridSystem(cmd *Commands, sq *SpatialQuery, arena *Arena) {
	if sq.World == nil {
		return
	}
	if sq.dirty {
		sq.World.Commit()
		sq.dirty = false
		cmd.Logger().Debugf("collision world committed: %d colliders", sq.World.StaticCount())
	}

	sq.World.ClearDynamic()
	for _, b := range arena.Bodies() {
		sq.World.SetDynamic(b.Entity, b.Position, b.HalfExtents())
	}
}
