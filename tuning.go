package traction

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gekko3d/traction/motion"
	"github.com/gekko3d/traction/suspension"
	"gopkg.in/yaml.v3"
)

var ErrInvalidTuning = errors.New("invalid tuning")

type RespawnTuning struct {
	FloorY float32 `yaml:"floor_y" json:"floor_y"`
}

type StepTuning struct {
	Hz          int `yaml:"hz" json:"hz"`
	MaxSubsteps int `yaml:"max_substeps" json:"max_substeps"`
}

// Tuning is every tunable constant of a simulation. Fields missing from a
// YAML document keep their DefaultTuning values.
type Tuning struct {
	Character  motion.Params     `yaml:"character"`
	Vehicle    motion.Params     `yaml:"vehicle"`
	Suspension suspension.Params `yaml:"suspension"`
	Respawn    RespawnTuning     `yaml:"respawn"`
	Step       StepTuning        `yaml:"step"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Character:  motion.DefaultCharacterParams(),
		Vehicle:    motion.DefaultVehicleParams(),
		Suspension: suspension.DefaultParams(),
		Respawn:    RespawnTuning{FloorY: -50},
		Step:       StepTuning{Hz: defaultStepHz, MaxSubsteps: defaultMaxSubsteps},
	}
}

// Params returns the locomotion params for a body profile.
func (t *Tuning) Params(p motion.Profile) motion.Params {
	if p == motion.ProfileVehicle {
		return t.Vehicle
	}
	return t.Character
}

func (t Tuning) Validate() error {
	var errs []error
	wrap := func(section string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidTuning, section, err))
		}
	}
	wrap("character", t.Character.Validate())
	wrap("vehicle", t.Vehicle.Validate())
	wrap("suspension", t.Suspension.Validate())
	if t.Step.Hz <= 0 {
		errs = append(errs, fmt.Errorf("%w: step: hz must be positive, got %d", ErrInvalidTuning, t.Step.Hz))
	}
	if t.Step.MaxSubsteps <= 0 {
		errs = append(errs, fmt.Errorf("%w: step: max_substeps must be positive, got %d", ErrInvalidTuning, t.Step.MaxSubsteps))
	}
	return errors.Join(errs...)
}

// ParseTuning decodes a YAML document over DefaultTuning and validates the
// result. Unknown keys are rejected.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("load tuning: %w", err)
	}
	t, err := ParseTuning(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func SaveTuning(path string, t Tuning) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("save tuning: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
