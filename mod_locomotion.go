package traction

import (
	"sync"

	"github.com/gekko3d/traction/motion"
)

// Workers is how many goroutines a per-body pass may use.
type Workers struct {
	N int
}

// forEach runs fn over bodies, fanned out when more than one worker is
// configured. fn receives the body's index in bodies.
func (w *Workers) forEach(bodies []*motion.Body, fn func(i int, b *motion.Body)) {
	n := w.N
	if n > len(bodies) {
		n = len(bodies)
	}
	if n <= 1 {
		for i, b := range bodies {
			fn(i, b)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (len(bodies) + n - 1) / n
	for start := 0; start < len(bodies); start += chunk {
		end := min(start+chunk, len(bodies))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i, bodies[i])
			}
		}(start, end)
	}
	wg.Wait()
}

// LocomotionModule installs the intent, horizontal, vertical and orientation
// passes.
type LocomotionModule struct {
	Workers int
}

func (m LocomotionModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Workers{N: m.Workers})

	app.UseSystem(
		System(IntentSystem).InStage(Intent),
	).UseSystem(
		System(HorizontalSystem).InStage(Horizontal),
	).UseSystem(
		System(VerticalSystem).InStage(Vertical),
	).UseSystem(
		System(OrientationSystem).InStage(Orientation),
	)
}

func IntentSystem(arena *Arena, intents *IntentBuffer, store *TuningStore, ft *FixedTime, workers *Workers) {
	tuning := store.Current()
	workers.forEach(arena.Bodies(), func(_ int, b *motion.Body) {
		motion.ApplyIntent(b, intents.Get(b.Entity), tuning.Params(b.Profile), ft.Dt)
	})
}

func HorizontalSystem(cmd *Commands, arena *Arena, store *TuningStore, sq *SpatialQuery, ft *FixedTime, workers *Workers) {
	tuning := store.Current()
	bodies := arena.Bodies()
	results := make([]motion.HorizontalResult, len(bodies))
	workers.forEach(bodies, func(i int, b *motion.Body) {
		results[i] = motion.MoveHorizontal(b, tuning.Params(b.Profile), sq.Port, ft.Dt)
	})

	log := cmd.Logger()
	if !log.DebugEnabled() {
		return
	}
	for i, r := range results {
		if r.Dropped > 0 {
			log.Debugf("body %d: horizontal motion dropped %.3f m after %d sweeps", bodies[i].Entity, r.Dropped, r.Iterations)
		}
	}
}

func VerticalSystem(cmd *Commands, arena *Arena, intents *IntentBuffer, store *TuningStore, sq *SpatialQuery, ft *FixedTime, workers *Workers) {
	tuning := store.Current()
	bodies := arena.Bodies()
	results := make([]motion.VerticalResult, len(bodies))
	workers.forEach(bodies, func(i int, b *motion.Body) {
		jump := intents.consumeJump(b.Entity)
		results[i] = motion.IntegrateVertical(b, jump, tuning.Params(b.Profile), sq.Port, ft.Dt)
	})

	log := cmd.Logger()
	if !log.DebugEnabled() {
		return
	}
	for i, r := range results {
		if r.Landed {
			log.Debugf("body %d landed at %.2f m/s", bodies[i].Entity, r.ImpactSpeed)
		}
	}
}

func OrientationSystem(arena *Arena, store *TuningStore, sq *SpatialQuery, workers *Workers) {
	tuning := store.Current()
	workers.forEach(arena.Bodies(), func(_ int, b *motion.Body) {
		motion.Align(b, tuning.Params(b.Profile), sq.Port)
	})
}
