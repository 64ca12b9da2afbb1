package motion

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidParams = errors.New("invalid locomotion params")

// Params tunes one control profile. Values are shared by every body of the
// profile and must not change during a step.
type Params struct {
	MaxSpeed          float32 `yaml:"max_speed" json:"max_speed"`
	Acceleration      float32 `yaml:"acceleration" json:"acceleration"`
	BrakeDeceleration float32 `yaml:"brake_deceleration" json:"brake_deceleration"`
	Friction          float32 `yaml:"friction" json:"friction"`
	YawRate           float32 `yaml:"yaw_rate" json:"yaw_rate"`
	CoastDeadzone     float32 `yaml:"coast_deadzone" json:"coast_deadzone"`
	// HandbrakeHalfLife is how long the handbrake takes to halve speed.
	// Zero disables it.
	HandbrakeHalfLife float32 `yaml:"handbrake_half_life" json:"handbrake_half_life"`

	Gravity     float32 `yaml:"gravity" json:"gravity"`
	JumpImpulse float32 `yaml:"jump_impulse" json:"jump_impulse"`

	CollisionDamping float32 `yaml:"collision_damping" json:"collision_damping"`
	SlopeDamping     float32 `yaml:"slope_damping" json:"slope_damping"`
	SlopeEase        float32 `yaml:"slope_ease" json:"slope_ease"`
	BounceFactor     float32 `yaml:"bounce_factor" json:"bounce_factor"`

	Skin          float32 `yaml:"skin" json:"skin"`
	StepHeight    float32 `yaml:"step_height" json:"step_height"`
	SlopeLimitDeg float32 `yaml:"slope_limit_deg" json:"slope_limit_deg"`

	AlignFactor float32 `yaml:"align_factor" json:"align_factor"`
	AlignReach  float32 `yaml:"align_reach" json:"align_reach"`

	// Falls faster than LandingImpactSpeed scale forward speed by
	// LandingSpeedFactor on touchdown.
	LandingImpactSpeed float32 `yaml:"landing_impact_speed" json:"landing_impact_speed"`
	LandingSpeedFactor float32 `yaml:"landing_speed_factor" json:"landing_speed_factor"`
}

func DefaultCharacterParams() Params {
	return Params{
		MaxSpeed:           10,
		Acceleration:       25,
		BrakeDeceleration:  30,
		Friction:           8,
		YawRate:            math.Pi,
		CoastDeadzone:      0.05,
		HandbrakeHalfLife:  1.0 / 60,
		Gravity:            9.81,
		JumpImpulse:        5,
		CollisionDamping:   0.2,
		SlopeDamping:       0.5,
		SlopeEase:          1,
		BounceFactor:       0.1,
		Skin:               0.02,
		StepHeight:         0.3,
		SlopeLimitDeg:      45,
		AlignFactor:        0.2,
		AlignReach:         0.5,
		LandingImpactSpeed: 12,
		LandingSpeedFactor: 0.6,
	}
}

// DefaultVehicleParams leaves step height at zero: the suspension carries the
// chassis over small obstacles.
func DefaultVehicleParams() Params {
	p := DefaultCharacterParams()
	p.MaxSpeed = 100
	p.Acceleration = 25
	p.BrakeDeceleration = 10
	p.Friction = 4
	p.YawRate = math.Pi / 2
	p.JumpImpulse = 6
	p.StepHeight = 0
	p.AlignReach = 1.5
	return p
}

func (p Params) SlopeCos() float32 {
	return float32(math.Cos(float64(p.SlopeLimitDeg) * math.Pi / 180))
}

func (p Params) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidParams}, args...)...))
		}
	}
	unit := func(v float32) bool { return v >= 0 && v <= 1 }

	check(p.MaxSpeed > 0, "max_speed must be positive, got %v", p.MaxSpeed)
	check(p.Acceleration >= 0, "acceleration must not be negative, got %v", p.Acceleration)
	check(p.BrakeDeceleration >= 0, "brake_deceleration must not be negative, got %v", p.BrakeDeceleration)
	check(p.Friction >= 0, "friction must not be negative, got %v", p.Friction)
	check(p.YawRate >= 0, "yaw_rate must not be negative, got %v", p.YawRate)
	check(p.CoastDeadzone >= 0 && p.CoastDeadzone < 1, "coast_deadzone must be in [0, 1), got %v", p.CoastDeadzone)
	check(p.HandbrakeHalfLife >= 0, "handbrake_half_life must not be negative, got %v", p.HandbrakeHalfLife)
	check(p.Gravity >= 0, "gravity must not be negative, got %v", p.Gravity)
	check(p.JumpImpulse >= 0, "jump_impulse must not be negative, got %v", p.JumpImpulse)
	check(unit(p.CollisionDamping), "collision_damping must be in [0, 1], got %v", p.CollisionDamping)
	check(unit(p.SlopeDamping), "slope_damping must be in [0, 1], got %v", p.SlopeDamping)
	check(p.SlopeEase > 0, "slope_ease must be positive, got %v", p.SlopeEase)
	check(unit(p.BounceFactor), "bounce_factor must be in [0, 1], got %v", p.BounceFactor)
	check(p.Skin > 0, "skin must be positive, got %v", p.Skin)
	check(p.StepHeight >= 0, "step_height must not be negative, got %v", p.StepHeight)
	check(p.SlopeLimitDeg > 0 && p.SlopeLimitDeg < 90, "slope_limit_deg must be in (0, 90), got %v", p.SlopeLimitDeg)
	check(unit(p.AlignFactor), "align_factor must be in [0, 1], got %v", p.AlignFactor)
	check(p.AlignReach >= 0, "align_reach must not be negative, got %v", p.AlignReach)
	check(p.LandingImpactSpeed >= 0, "landing_impact_speed must not be negative, got %v", p.LandingImpactSpeed)
	check(unit(p.LandingSpeedFactor), "landing_speed_factor must be in [0, 1], got %v", p.LandingSpeedFactor)

	return errors.Join(errs...)
}
