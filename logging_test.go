package traction

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogger_LevelsAndPrefix(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger("sim", LevelInfo, &out, &errOut)

	l.Debugf("hidden %d", 1)
	l.Infof("step %d", 2)
	l.Warnf("wheel %s", "front-left")
	l.Errorf("boom")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[sim] INFO: step 2")
	assert.Contains(t, errOut.String(), "[sim] WARN: wheel front-left")
	assert.Contains(t, errOut.String(), "[sim] ERROR: boom")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 3)
	assert.Contains(t, out.String(), "[sim] DEBUG: shown 3")
}

func TestDefaultLogger_Threshold(t *testing.T) {
	var out bytes.Buffer
	l := NewWriterLogger("", LevelWarn, &out, &out)
	l.Infof("quiet")
	l.Warnf("loud")
	assert.NotContains(t, out.String(), "quiet")
	assert.Contains(t, out.String(), " WARN: loud")
	assert.NotContains(t, out.String(), "[")

	l.SetDebug(false)
	assert.Equal(t, LevelWarn, l.Level(), "turning debug off keeps a higher threshold")
}

func TestParseLevel(t *testing.T) {
	lv, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, lv)

	lv, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, lv)

	_, err = ParseLevel("loud")
	assert.ErrorContains(t, err, `"loud"`)
	assert.Equal(t, "Level(7)", Level(7).String())
}

func TestApp_LoggerFallback(t *testing.T) {
	var nilApp *App
	assert.NotNil(t, nilApp.Logger())

	app := NewApp()
	assert.False(t, app.Logger().DebugEnabled())

	var out bytes.Buffer
	app.UseModules(LoggingModule{Prefix: "t", Level: LevelDebug, Out: &out, Err: &out})
	app.Logger().Debugf("hello")
	assert.Contains(t, out.String(), "[t] DEBUG: hello")
}
