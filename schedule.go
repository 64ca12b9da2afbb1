package traction

import (
	"fmt"
	"slices"
)

type Stage struct {
	Name string
}

// The fixed per-step pass order. Modules may add stages around these with
// UseStage but never reorder them.
var (
	Prelude     = Stage{Name: "Prelude"}
	Intent      = Stage{Name: "Intent"}
	Horizontal  = Stage{Name: "Horizontal"}
	Vertical    = Stage{Name: "Vertical"}
	Orientation = Stage{Name: "Orientation"}
	Suspension  = Stage{Name: "Suspension"}
	PostStep    = Stage{Name: "PostStep"}
)

func defaultStages() []Stage {
	return []Stage{Prelude, Intent, Horizontal, Vertical, Orientation, Suspension, PostStep}
}

type systemScheduleBuilder struct {
	inStage Stage
	system  systemFn
}

func System(system systemFn) systemScheduleBuilder {
	return systemScheduleBuilder{
		system:  system,
		inStage: PostStep,
	}
}

func (sched systemScheduleBuilder) InStage(s Stage) systemScheduleBuilder {
	return systemScheduleBuilder{
		system:  sched.system,
		inStage: s,
	}
}

type stagePosition int

const (
	stageBefore stagePosition = iota
	stageAfter
)

type stagePositionBuilder struct {
	position stagePosition
	target   Stage
}

func BeforeStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{
		position: stageBefore,
		target:   s,
	}
}

func AfterStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{
		position: stageAfter,
		target:   s,
	}
}

func (app *App) UseStage(stage Stage, where stagePositionBuilder) *App {
	if app.hasStage(stage.Name) {
		panic(fmt.Sprintf("Stage %v already exists", stage.Name))
	}
	stageIdx := slices.IndexFunc(app.stages, func(s Stage) bool { return s.Name == where.target.Name })
	if -1 == stageIdx {
		panic(fmt.Sprintf("Stage %v not found", where.target.Name))
	}

	insertAt := stageIdx
	if stageAfter == where.position {
		insertAt = stageIdx + 1
	}

	app.stages = slices.Insert(app.stages, insertAt, stage)
	app.systems[stage.Name] = make([]systemFn, 0)

	return app
}

func (app *App) UseSystem(system systemScheduleBuilder) *App {
	systems, ok := app.systems[system.inStage.Name]
	if !ok {
		panic(fmt.Sprintf("Stage %v doesn't exist", system.inStage.Name))
	}
	app.systems[system.inStage.Name] = append(systems, system.system)
	return app
}

func (app *App) hasStage(name string) bool {
	_, ok := app.systems[name]
	return ok
}

// Stages lists the stage names in execution order.
func (app *App) Stages() []string {
	names := make([]string, len(app.stages))
	for i, s := range app.stages {
		names[i] = s.Name
	}
	return names
}
