package motion

import "github.com/gekko3d/traction/query"

type StepResult struct {
	Horizontal HorizontalResult
	Vertical   VerticalResult
	Aligned    bool
}

// Step runs one body through intent, horizontal, vertical and orientation
// passes in that order.
func Step(b *Body, in Intent, p Params, port query.Port, dt float32) StepResult {
	var res StepResult
	ApplyIntent(b, in, p, dt)
	res.Horizontal = MoveHorizontal(b, p, port, dt)
	res.Vertical = IntegrateVertical(b, in.Jump, p, port, dt)
	res.Aligned = Align(b, p, port)
	return res
}
