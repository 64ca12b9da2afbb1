package traction

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Level is a logging threshold. The zero value is LevelInfo.
type Level int32

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("Level(%d)", int32(l))
}

func ParseLevel(s string) (Level, error) {
	for _, l := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// DefaultLogger prints lines at or above its level. Debug and info go to out,
// warnings and errors to errOut. Safe for concurrent use.
type DefaultLogger struct {
	prefix string
	level  atomic.Int32
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	level := LevelInfo
	if debug {
		level = LevelDebug
	}
	return NewWriterLogger(prefix, level, os.Stdout, os.Stderr)
}

func NewWriterLogger(prefix string, level Level, out, errOut io.Writer) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	l := &DefaultLogger{
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
	l.SetLevel(level)
	return l
}

func (l *DefaultLogger) Level() Level       { return Level(l.level.Load()) }
func (l *DefaultLogger) SetLevel(lv Level)  { l.level.Store(int32(lv)) }
func (l *DefaultLogger) DebugEnabled() bool { return l.Level() <= LevelDebug }

func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.SetLevel(LevelDebug)
	} else if l.Level() < LevelInfo {
		l.SetLevel(LevelInfo)
	}
}

func (l *DefaultLogger) print(lv Level, format string, args []any) {
	if lv < l.Level() {
		return
	}
	dst := l.out
	if lv >= LevelWarn {
		dst = l.err
	}
	msg := fmt.Sprintf(format, args...)
	if l.prefix == "" {
		dst.Printf("%s: %s", lv, msg)
		return
	}
	dst.Printf("[%s] %s: %s", l.prefix, lv, msg)
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.print(LevelDebug, format, args) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.print(LevelInfo, format, args) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.print(LevelWarn, format, args) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.print(LevelError, format, args) }

// LoggingModule installs a DefaultLogger as a resource. Nil writers fall back
// to stdout and stderr.
type LoggingModule struct {
	Prefix string
	Level  Level
	Out    io.Writer
	Err    io.Writer
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	out, errOut := m.Out, m.Err
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	cmd.AddResources(NewWriterLogger(m.Prefix, m.Level, out, errOut))
}

type nopLogger struct{}

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) SetDebug(bool)         {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Logger returns the first Logger resource, or a logger that drops
// everything. Never returns nil.
func (app *App) Logger() Logger {
	if app != nil {
		for _, r := range app.resources {
			if l, ok := r.(Logger); ok {
				return l
			}
		}
	}
	return nopLogger{}
}
