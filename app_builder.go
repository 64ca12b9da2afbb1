package traction

import (
	"reflect"
)

type Module interface {
	Install(app *App, cmd *Commands)
}

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	app := NewApp()
	return &AppBuilder{app: app}
}

// NewApp returns an app with the default stages, an empty arena and an intent
// buffer, and no modules.
func NewApp() *App {
	app := &App{
		stages:    defaultStages(),
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
		arena:     NewArena(),
		intents:   NewIntentBuffer(),
	}
	for _, s := range app.stages {
		app.systems[s.Name] = make([]systemFn, 0)
	}
	app.addResources(app.arena, app.intents)
	return app
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

func (b *AppBuilder) Build() *App {
	app := b.app
	app.UseModules(b.modules...)
	return app
}

func (app *App) UseModules(modules ...Module) *App {
	commands := &Commands{app: app}
	for _, module := range modules {
		module.Install(app, commands)
		app.modules = append(app.modules, module)
	}
	return app
}

// DefaultModules is the full pass stack in installation order. Passing a nil
// tuning uses DefaultTuning.
func DefaultModules(tuning *Tuning) []Module {
	t := DefaultTuning()
	if tuning != nil {
		t = *tuning
	}
	return []Module{
		LoggingModule{Prefix: "traction"},
		TimeModule{Hz: t.Step.Hz, MaxSubsteps: t.Step.MaxSubsteps},
		TuningModule{Tuning: &t},
		SpatialGridModule{},
		LocomotionModule{},
		SuspensionModule{},
		RespawnModule{},
		HierarchyModule{},
		SnapshotModule{},
	}
}
