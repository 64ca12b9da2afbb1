package traction

import (
	"github.com/gekko3d/traction/motion"
)

// HierarchyModule derives chassis and wheel world transforms for renderers.
type HierarchyModule struct{}

func (HierarchyModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(TransformHierarchySystem).InStage(PostStep),
	)
}

// TransformHierarchySystem composes body → tilted chassis → wheel hub. The
// hierarchy is one level deep, so a single pass settles it.
func TransformHierarchySystem(arena *Arena) {
	arena.EachVehicle(func(v *Vehicle, b *motion.Body) bool {
		body := IdentityTransform()
		body.Position = b.Position
		body.Rotation = b.Rotation

		tilt := IdentityTransform()
		tilt.Rotation = v.Tilt.Rotation()
		v.ChassisWorld = body.Compose(tilt)

		for i, w := range arena.Wheels(v) {
			local := IdentityTransform()
			local.Position = w.Pose.Position
			local.Rotation = w.Pose.Rotation
			v.WheelWorld[i] = v.ChassisWorld.Compose(local)
		}
		return true
	})
}
