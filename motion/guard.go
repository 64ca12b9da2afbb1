package motion

// FallGuard respawns bodies that dropped below FloorY.
type FallGuard struct {
	FloorY float32
}

// Check resets b when it is below the floor or its position is no longer
// finite. It reports whether a reset happened.
func (g FallGuard) Check(b *Body) bool {
	if finiteVec(b.Position) && b.Position.Y() >= g.FloorY {
		return false
	}
	Respawn(b)
	return true
}

// Respawn puts b back at its spawn point with all motion cleared. A wheeled
// body stays wheeled but loses its grip until its wheels touch down again.
func Respawn(b *Body) {
	*b = Body{
		Entity:      b.Entity,
		Profile:     b.Profile,
		Position:    b.Spawn.Position,
		Rotation:    YawRotation(b.Spawn.Yaw),
		Yaw:         b.Spawn.Yaw,
		Charge:      1,
		Spawn:       b.Spawn,
		Traction:    Traction{Wheeled: b.Traction.Wheeled},
		halfExtents: b.halfExtents,
	}
}
