package traction

import (
	"sync/atomic"

	"github.com/gekko3d/traction/motion"
	"github.com/gekko3d/traction/suspension"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Publish runs after PostStep and only reads simulation state.
var Publish = Stage{Name: "Publish"}

type BodyState struct {
	Entity           EntityId
	Profile          motion.Profile
	Position         mgl32.Vec3
	Rotation         mgl32.Quat
	Yaw              float32
	Speed            float32
	VerticalVelocity float32
	Grounded         bool
	// Supported is set while any wheel of a vehicle touches ground.
	Supported bool
}

type WheelState struct {
	Owner         EntityId
	Corner        suspension.Corner
	Compression   float32
	Grounded      bool
	ContactNormal mgl32.Vec3
	World         Transform
}

// Frame is an immutable copy of one step's results.
type Frame struct {
	Step     uint64
	Revision uuid.UUID
	Bodies   []BodyState
	Wheels   []WheelState
}

func (f *Frame) Body(eid EntityId) (BodyState, bool) {
	for _, b := range f.Bodies {
		if b.Entity == eid {
			return b, true
		}
	}
	return BodyState{}, false
}

// WheelsOf returns the wheels of a vehicle in corner order.
func (f *Frame) WheelsOf(eid EntityId) []WheelState {
	var out []WheelState
	for _, w := range f.Wheels {
		if w.Owner == eid {
			out = append(out, w)
		}
	}
	return out
}

// Snapshot hands the latest Frame to readers on other goroutines.
type Snapshot struct {
	latest atomic.Pointer[Frame]
}

// Latest returns the most recent frame, or nil before the first step.
func (s *Snapshot) Latest() *Frame {
	return s.latest.Load()
}

type SnapshotModule struct{}

func (SnapshotModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Snapshot{})
	app.UseStage(Publish, AfterStage(PostStep))
	app.UseSystem(
		System(SnapshotSystem).InStage(Publish),
	)
}

func SnapshotSystem(snap *Snapshot, arena *Arena, store *TuningStore, ft *FixedTime) {
	bodies := arena.Bodies()
	frame := &Frame{
		Step:     ft.Step,
		Revision: store.Revision(),
		Bodies:   make([]BodyState, 0, len(bodies)),
		Wheels:   make([]WheelState, 0, 4*arena.VehicleCount()),
	}
	for _, b := range bodies {
		frame.Bodies = append(frame.Bodies, BodyState{
			Entity:           b.Entity,
			Profile:          b.Profile,
			Position:         b.Position,
			Rotation:         b.Rotation,
			Yaw:              b.Yaw,
			Speed:            b.Speed,
			VerticalVelocity: b.VerticalVelocity,
			Grounded:         b.Grounded,
			Supported:        b.Supported,
		})
	}
	arena.EachVehicle(func(v *Vehicle, b *motion.Body) bool {
		for i, w := range arena.Wheels(v) {
			frame.Wheels = append(frame.Wheels, WheelState{
				Owner:         w.Owner,
				Corner:        w.Corner,
				Compression:   w.Compression,
				Grounded:      w.Grounded,
				ContactNormal: w.ContactNormal,
				World:         v.WheelWorld[i],
			})
		}
		return true
	})
	snap.latest.Store(frame)
}
