package traction

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/gekko3d/traction/motion"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_RoundTrip(t *testing.T) {
	app, _ := newTestApp(t, nil)
	addFloor(app)
	cmd := app.Commands()
	cmd.SpawnCharacter(CharacterSpec{Spawn: motion.Spawn{Position: mgl32.Vec3{-3, 2, 0}}})
	car := cmd.SpawnVehicle(VehicleSpec{Spawn: motion.Spawn{Position: mgl32.Vec3{3, 1, 0}, Yaw: 0.4}})

	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	app.UseModules(RecordModule{Recorder: rec})

	require.NoError(t, cmd.SetIntent(car, motion.Intent{Throttle: 1, Steer: 0.3}))
	for i := 0; i < 30; i++ {
		app.Step()
	}
	assert.Equal(t, 30, rec.Frames())

	frames, err := ReadRecording(&buf)
	require.NoError(t, err)
	require.Len(t, frames, 30)
	for i, f := range frames {
		assert.Equal(t, uint64(i+1), f.Step)
	}
	assert.Equal(t, latest(t, app), frames[29])
	assert.Len(t, frames[29].WheelsOf(car), 4)
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errors.New("disk full")
}

func TestRecorder_StickyError(t *testing.T) {
	log := &recordLogger{}
	app := NewAppBuilder().UseModule(testModules(log, nil, 1)...).Build()
	w := &failingWriter{}
	rec := NewRecorder(w)
	app.UseModules(RecordModule{Recorder: rec})
	app.Commands().SpawnCharacter(CharacterSpec{Spawn: motion.DefaultSpawn()})

	for i := 0; i < 5; i++ {
		app.Step()
	}
	assert.ErrorContains(t, rec.Err(), "disk full")
	assert.Zero(t, rec.Frames())
	assert.Equal(t, 1, w.n, "no writes after the first failure")
	assert.Len(t, log.with("ERROR"), 1)
}

func TestReadRecording_Truncated(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	require.NoError(t, rec.Write(&Frame{Step: 1}))
	require.NoError(t, rec.Write(&Frame{Step: 2}))
	require.NoError(t, rec.Write(nil))

	data := buf.Bytes()
	frames, err := ReadRecording(bytes.NewReader(data[:len(data)-1]))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Len(t, frames, 1)

	frames, err = ReadRecording(bytes.NewReader(nil))
	assert.NoError(t, err)
	assert.Empty(t, frames)
}
