package traction

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// TuningStore holds the tuning in effect and at most one staged
// replacement. Submit may be called from any goroutine; the replacement
// takes effect at the next Prelude.
type TuningStore struct {
	current  Tuning
	revision uuid.UUID
	pending  atomic.Pointer[Tuning]

	stop context.CancelFunc
}

func NewTuningStore(t Tuning) *TuningStore {
	return &TuningStore{current: t, revision: uuid.New()}
}

func (s *TuningStore) Current() Tuning { return s.current }

// Revision identifies the tuning in effect; it changes on every apply.
func (s *TuningStore) Revision() uuid.UUID { return s.revision }

// Submit validates t and stages it, replacing any earlier staged tuning.
func (s *TuningStore) Submit(t Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.pending.Store(&t)
	return nil
}

func (s *TuningStore) Pending() bool { return s.pending.Load() != nil }

// Close stops the file watcher, if one is running.
func (s *TuningStore) Close() {
	if s.stop != nil {
		s.stop()
	}
}

func (s *TuningStore) apply() bool {
	next := s.pending.Swap(nil)
	if next == nil {
		return false
	}
	s.current = *next
	s.revision = uuid.New()
	return true
}

// TuningModule installs the TuningStore. With a Path it loads the file on
// install, and with a WatchSettle as well it reloads the file once writes to
// it have been quiet for WatchSettle, until Context is done or the store is
// closed.
type TuningModule struct {
	Tuning      *Tuning
	Path        string
	WatchSettle time.Duration
	Context     context.Context
}

func (mod TuningModule) Install(app *App, cmd *Commands) {
	log := cmd.Logger()

	t := DefaultTuning()
	if mod.Tuning != nil {
		t = *mod.Tuning
	}
	if mod.Path != "" {
		loaded, err := LoadTuning(mod.Path)
		if err != nil {
			log.Errorf("tuning: %v; using defaults", err)
		} else {
			t = loaded
		}
	}
	if err := t.Validate(); err != nil {
		log.Errorf("tuning: %v; using defaults", err)
		t = DefaultTuning()
	}

	store := NewTuningStore(t)
	cmd.AddResources(store)
	app.UseSystem(
		System(tuningSystem).
			InStage(Prelude),
	)

	if mod.Path != "" && mod.WatchSettle > 0 {
		w, err := fsnotify.NewWatcher()
		if err == nil {
			// Watch the directory so editors that replace the file by rename
			// keep being seen.
			err = w.Add(filepath.Dir(mod.Path))
		}
		if err != nil {
			log.Warnf("tuning watch %s: %v", mod.Path, err)
			if w != nil {
				w.Close()
			}
			return
		}
		parent := mod.Context
		if parent == nil {
			parent = context.Background()
		}
		ctx, cancel := context.WithCancel(parent)
		store.stop = cancel
		go watchTuning(ctx, w, mod.Path, mod.WatchSettle, store, log)
	}
}

func tuningSystem(cmd *Commands, store *TuningStore) {
	if store.apply() {
		cmd.Logger().Infof("tuning revision %s applied", store.Revision())
	}
}

func watchTuning(ctx context.Context, w *fsnotify.Watcher, path string, settle time.Duration, store *TuningStore, log Logger) {
	defer w.Close()
	name := filepath.Clean(path)

	var quiet <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warnf("tuning watch: %v", err)
			continue
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) == name && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				quiet = time.After(settle)
			}
			continue
		case <-quiet:
			quiet = nil
		}
		if ctx.Err() != nil {
			return
		}

		t, err := LoadTuning(path)
		if err != nil {
			log.Warnf("tuning reload: %v", err)
			continue
		}
		if err := store.Submit(t); err != nil {
			log.Warnf("tuning reload: %v", err)
			continue
		}
		log.Debugf("tuning reload staged from %s", path)
	}
}
