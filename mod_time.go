package traction

import (
	"time"
)

const (
	defaultStepHz      = 60
	defaultMaxSubsteps = 5
)

// FixedTime is the simulation clock. Dt is constant for the app's lifetime.
type FixedTime struct {
	Dt          float32
	Step        uint64
	Elapsed     time.Duration
	MaxSubsteps int

	period      time.Duration
	accumulator time.Duration
	dropped     uint64
}

func NewFixedTime(hz, maxSubsteps int) *FixedTime {
	if hz <= 0 {
		hz = defaultStepHz
	}
	if maxSubsteps <= 0 {
		maxSubsteps = defaultMaxSubsteps
	}
	return &FixedTime{
		Dt:          1 / float32(hz),
		MaxSubsteps: maxSubsteps,
		period:      time.Second / time.Duration(hz),
	}
}

func (t *FixedTime) Period() time.Duration { return t.period }

// Dropped is the number of owed steps discarded because a frame needed more
// than MaxSubsteps.
func (t *FixedTime) Dropped() uint64 { return t.dropped }

type TimeModule struct {
	Hz          int
	MaxSubsteps int
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewFixedTime(mod.Hz, mod.MaxSubsteps))
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(t *FixedTime) {
	t.Step++
	t.Elapsed += t.period
}

// Update advances the clock by frame and runs every fixed step it owes, up to
// MaxSubsteps. It returns the number of steps run.
func (app *App) Update(frame time.Duration) int {
	t, ok := Resource[FixedTime](app)
	if !ok {
		app.Step()
		return 1
	}

	t.accumulator += frame
	steps := 0
	for t.accumulator >= t.period && steps < t.MaxSubsteps {
		app.Step()
		t.accumulator -= t.period
		steps++
	}
	if t.accumulator >= t.period {
		owed := uint64(t.accumulator / t.period)
		t.dropped += owed
		t.accumulator %= t.period
		app.Logger().Warnf("frame of %v owed %d more steps than the %d allowed; dropped", frame, owed, t.MaxSubsteps)
	}
	return steps
}
