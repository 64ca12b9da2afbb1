// Command tractionsim runs a scene headless with a scripted drive and logs a
// trace of every body.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gekko3d/traction"
	"github.com/gekko3d/traction/motion"
)

type options struct {
	tuning   string
	scene    string
	record   string
	steps    int
	every    int
	watch    time.Duration
	realtime bool
	level    string
}

func main() {
	var opts options
	flag.StringVar(&opts.tuning, "tuning", "", "tuning YAML file (defaults when empty)")
	flag.StringVar(&opts.scene, "scene", "", "scene JSON file (built-in proving ground when empty)")
	flag.StringVar(&opts.record, "record", "", "write every frame to this msgpack file")
	flag.IntVar(&opts.steps, "steps", 600, "fixed steps to run")
	flag.IntVar(&opts.every, "trace", 60, "log the snapshot every n steps")
	flag.DurationVar(&opts.watch, "watch", 0, "reload the tuning file once writes settle for this long")
	flag.BoolVar(&opts.realtime, "realtime", false, "pace steps with the wall clock")
	flag.StringVar(&opts.level, "log-level", "info", "debug, info, warn or error")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "tractionsim: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) (err error) {
	if opts.steps <= 0 {
		return errors.New("-steps must be positive")
	}

	level := traction.LevelInfo
	if opts.level != "" {
		lv, err := traction.ParseLevel(opts.level)
		if err != nil {
			return err
		}
		level = lv
	}

	tuning := traction.DefaultTuning()
	if opts.tuning != "" {
		t, err := traction.LoadTuning(opts.tuning)
		if err != nil {
			return err
		}
		tuning = t
	}

	scene := traction.DefaultScene()
	if opts.scene != "" {
		s, err := traction.LoadScene(opts.scene)
		if err != nil {
			return err
		}
		scene = s
	}

	modules := traction.DefaultModules(&tuning)
	for i, m := range modules {
		switch m.(type) {
		case traction.LoggingModule:
			modules[i] = traction.LoggingModule{Prefix: "tractionsim", Level: level}
		case traction.TuningModule:
			modules[i] = traction.TuningModule{
				Tuning:      &tuning,
				Path:        opts.tuning,
				WatchSettle: opts.watch,
				Context:     ctx,
			}
		}
	}

	var rec *traction.Recorder
	if opts.record != "" {
		f, cerr := os.Create(opts.record)
		if cerr != nil {
			return cerr
		}
		buf := bufio.NewWriter(f)
		defer func() {
			if ferr := errors.Join(buf.Flush(), f.Close()); ferr != nil && err == nil {
				err = fmt.Errorf("recording %s: %w", opts.record, ferr)
			}
		}()
		rec = traction.NewRecorder(buf)
		modules = append(modules, traction.RecordModule{Recorder: rec})
	}

	app := traction.NewAppBuilder().UseModule(modules...).Build()
	log := app.Logger()
	if rec != nil {
		defer func() { log.Infof("recorded %d frames to %s", rec.Frames(), opts.record) }()
	}

	if store, ok := traction.Resource[traction.TuningStore](app); ok {
		defer store.Close()
	}

	cmd := app.Commands()
	ids, err := traction.SpawnScene(cmd, scene)
	if err != nil {
		return err
	}
	snap, _ := traction.Resource[traction.Snapshot](app)

	var ticker *time.Ticker
	if opts.realtime {
		ft, _ := traction.Resource[traction.FixedTime](app)
		ticker = time.NewTicker(ft.Period())
		defer ticker.Stop()
	}

	last := time.Now()
	for n := 0; n < opts.steps; {
		if err := ctx.Err(); err != nil {
			log.Infof("interrupted after %d steps", n)
			return nil
		}
		for i, eid := range ids {
			if err := cmd.SetIntent(eid, script(n, i)); err != nil {
				log.Warnf("intent for %d: %v", eid, err)
			}
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				continue
			case now := <-ticker.C:
				n += app.Update(now.Sub(last))
				last = now
			}
		} else {
			app.Step()
			n++
		}

		if opts.every > 0 && n%opts.every == 0 {
			trace(log, snap.Latest())
		}
	}
	trace(log, snap.Latest())
	return nil
}

// script drives every body forward with a slow weave and a jump every three
// seconds at 60 Hz. Bodies are phase-shifted by index.
func script(step, index int) motion.Intent {
	phase := float64(step)/90 + float64(index)
	return motion.Intent{
		Throttle: 1,
		Steer:    float32(0.6 * math.Sin(phase)),
		Jump:     (step+index*20)%180 == 179,
	}
}

func trace(log traction.Logger, frame *traction.Frame) {
	if frame == nil {
		return
	}
	for _, b := range frame.Bodies {
		log.Infof("step %d %s %d: pos=(%.2f, %.2f, %.2f) yaw=%.2f speed=%.2f vy=%.2f grounded=%t supported=%t",
			frame.Step, b.Profile, b.Entity,
			b.Position.X(), b.Position.Y(), b.Position.Z(),
			b.Yaw, b.Speed, b.VerticalVelocity, b.Grounded, b.Supported)
		for _, w := range frame.WheelsOf(b.Entity) {
			log.Debugf("  %s: compression=%.3f grounded=%t", w.Corner, w.Compression, w.Grounded)
		}
	}
}
