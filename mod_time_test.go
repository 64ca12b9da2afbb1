package traction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedTime_Defaults(t *testing.T) {
	ft := NewFixedTime(0, 0)
	assert.InDelta(t, 1.0/60.0, ft.Dt, 1e-7)
	assert.Equal(t, defaultMaxSubsteps, ft.MaxSubsteps)
	assert.Equal(t, time.Second/60, ft.Period())
}

func TestApp_UpdateRunsOwedSteps(t *testing.T) {
	log := &recordLogger{}
	app := NewAppBuilder().UseModule(log, TimeModule{Hz: 50, MaxSubsteps: 4}).Build()
	ft, ok := Resource[FixedTime](app)
	require.True(t, ok)

	assert.Equal(t, 0, app.Update(10*time.Millisecond))
	assert.Equal(t, 1, app.Update(10*time.Millisecond))
	assert.Equal(t, 3, app.Update(60*time.Millisecond))
	assert.Equal(t, uint64(4), ft.Step)
	assert.Equal(t, 4*ft.Period(), ft.Elapsed)
	assert.Empty(t, log.with("WARN"))
}

func TestApp_UpdateDropsExcess(t *testing.T) {
	log := &recordLogger{}
	app := NewAppBuilder().UseModule(log, TimeModule{Hz: 50, MaxSubsteps: 4}).Build()
	ft, _ := Resource[FixedTime](app)

	assert.Equal(t, 4, app.Update(time.Second))
	assert.Equal(t, uint64(46), ft.Dropped())
	assert.Len(t, log.with("WARN"), 1)

	// the remainder was discarded with the dropped steps
	assert.Equal(t, 0, app.Update(10*time.Millisecond))
}

func TestApp_UpdateWithoutClock(t *testing.T) {
	app := NewApp()
	assert.Equal(t, 1, app.Update(time.Hour))
	assert.Equal(t, uint64(1), app.StepCount())
}
