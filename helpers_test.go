package traction

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/gekko3d/traction/collide"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

// recordLogger keeps every line so tests can assert on warnings.
type recordLogger struct {
	mu    sync.Mutex
	debug bool
	lines []string
}

func (l *recordLogger) Install(app *App, cmd *Commands) { cmd.AddResources(l) }

func (l *recordLogger) DebugEnabled() bool    { return l.debug }
func (l *recordLogger) SetDebug(enabled bool) { l.debug = enabled }

func (l *recordLogger) record(level, format string, args ...any) {
	l.mu.Lock()
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func (l *recordLogger) Debugf(format string, args ...any) {
	if l.debug {
		l.record("DEBUG", format, args...)
	}
}
func (l *recordLogger) Infof(format string, args ...any)  { l.record("INFO", format, args...) }
func (l *recordLogger) Warnf(format string, args ...any)  { l.record("WARN", format, args...) }
func (l *recordLogger) Errorf(format string, args ...any) { l.record("ERROR", format, args...) }

func (l *recordLogger) with(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, line := range l.lines {
		if strings.HasPrefix(line, level+": ") {
			out = append(out, line)
		}
	}
	return out
}

// testModules is DefaultModules with the logger swapped for log.
func testModules(log *recordLogger, tuning *Tuning, workers int) []Module {
	var mods []Module
	for _, m := range DefaultModules(tuning) {
		switch m.(type) {
		case LoggingModule:
			mods = append(mods, log)
		case LocomotionModule:
			mods = append(mods, LocomotionModule{Workers: workers})
		default:
			mods = append(mods, m)
		}
	}
	return mods
}

func newTestApp(t *testing.T, tuning *Tuning) (*App, *recordLogger) {
	t.Helper()
	log := &recordLogger{}
	app := NewAppBuilder().UseModule(testModules(log, tuning, 1)...).Build()
	return app, log
}

// addFloor queues a slab whose top face is at y = 0.
func addFloor(app *App) EntityId {
	return app.Commands().AddCollider(collide.NewBox(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{60, 0.5, 60}, mgl32.QuatIdent()))
}

func latest(t *testing.T, app *App) *Frame {
	t.Helper()
	snap, ok := Resource[Snapshot](app)
	require.True(t, ok)
	frame := snap.Latest()
	require.NotNil(t, frame)
	return frame
}
