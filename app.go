// Package traction runs grounded characters and four-wheeled vehicles
// through a fixed sequence of locomotion and suspension passes.
package traction

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/gekko3d/traction/collide"
	"github.com/gekko3d/traction/motion"
	"github.com/gekko3d/traction/suspension"
	"github.com/go-gl/mathgl/mgl32"
)

type systemFn any

type App struct {
	modules   []Module
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	arena     *Arena
	intents   *IntentBuffer

	nextId EntityId
	steps  uint64

	// Command Buffering
	pendingSpawns    []pendingSpawn
	pendingColliders []pendingCollider
	pendingRemovals  []EntityId
}

type pendingSpawn struct {
	eid     EntityId
	profile motion.Profile
	spawn   motion.Spawn
	half    mgl32.Vec3
	layout  suspension.Layout
}

type pendingCollider struct {
	eid      EntityId
	collider collide.Collider
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// StepCount is the number of fixed steps run so far.
func (app *App) StepCount() uint64 {
	return app.steps
}

func (app *App) Arena() *Arena {
	return app.arena
}

// Step runs one fixed step through every stage. Commands issued outside a
// system are applied before the first stage.
func (app *App) Step() {
	app.FlushCommands()
	app.steps++
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
		app.FlushCommands()
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the resource of type T, if the app has one.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

func (app *App) callSystem(system systemFn) {
	app.callSystemInternal(system)
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystemInternal(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			panic(msg)
		}
	}
	systemValue.Call(args)
}

// FlushCommands applies buffered removals, then spawns and colliders.
func (app *App) FlushCommands() {
	if len(app.pendingSpawns) == 0 && len(app.pendingRemovals) == 0 && len(app.pendingColliders) == 0 {
		return
	}
	log := app.Logger()
	sq, hasWorld := Resource[SpatialQuery](app)

	// 1. Removals first so a despawned id never receives a late spawn
	for _, eid := range app.pendingRemovals {
		switch {
		case app.arena.remove(eid):
			app.intents.remove(eid)
			log.Debugf("despawned body %d", eid)
		case hasWorld && sq.World != nil && sq.World.RemoveStatic(eid):
			sq.dirty = true
			log.Debugf("removed collider %d", eid)
		default:
			log.Warnf("despawn: %v: %d", ErrUnknownEntity, eid)
		}
	}
	app.pendingRemovals = app.pendingRemovals[:0]

	// 2. Bodies
	params := suspension.DefaultParams()
	if store, ok := Resource[TuningStore](app); ok {
		params = store.Current().Suspension
	}
	for _, s := range app.pendingSpawns {
		body := motion.NewBody(s.eid, s.profile, s.half, s.spawn)
		if s.profile == motion.ProfileVehicle {
			body.Traction.Wheeled = true
			app.arena.insertVehicle(body, s.layout.Wheels(s.eid, params))
		} else {
			app.arena.insertBody(body)
		}
		log.Debugf("spawned %s %d at %v", s.profile, s.eid, s.spawn.Position)
	}
	app.pendingSpawns = app.pendingSpawns[:0]

	// 3. Colliders
	for _, c := range app.pendingColliders {
		if !hasWorld || sq.World == nil {
			log.Errorf("collider %d dropped: no collision world installed", c.eid)
			continue
		}
		if err := sq.World.AddStatic(c.eid, c.collider); err != nil {
			log.Errorf("add collider: %v", err)
			continue
		}
		sq.dirty = true
	}
	app.pendingColliders = app.pendingColliders[:0]
}

func (app *App) nextEntityId() EntityId {
	app.nextId++
	return app.nextId
}

func (app *App) isPending(eid EntityId) bool {
	for _, s := range app.pendingSpawns {
		if s.eid == eid {
			return true
		}
	}
	return false
}
