package suspension

import (
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("invalid suspension params")

// Params is shared by every vehicle. It is read-only during a step and
// replaced wholesale between steps.
type Params struct {
	SpringK    float32 `yaml:"spring_k" json:"spring_k"`
	DampingC   float32 `yaml:"damping_c" json:"damping_c"`
	RestLength float32 `yaml:"rest_length" json:"rest_length"`
	MaxTravel  float32 `yaml:"max_travel" json:"max_travel"`
	// AntiRollStiffness is indexed by axle: front, rear.
	AntiRollStiffness [2]float32 `yaml:"anti_roll_stiffness" json:"anti_roll_stiffness"`

	Mass         float32 `yaml:"mass" json:"mass"`
	RollInertia  float32 `yaml:"roll_inertia" json:"roll_inertia"`
	PitchInertia float32 `yaml:"pitch_inertia" json:"pitch_inertia"`
	// TiltDamping removes this fraction of tilt rate per second.
	TiltDamping        float32 `yaml:"tilt_damping" json:"tilt_damping"`
	MaxAngularVelocity float32 `yaml:"max_angular_velocity" json:"max_angular_velocity"`
	MaxTilt            float32 `yaml:"max_tilt" json:"max_tilt"`

	MaxSteerAngle float32 `yaml:"max_steer_angle" json:"max_steer_angle"`

	// Tire friction coefficients. Grip scales with the normal load each
	// wheel carries.
	GripLong  float32   `yaml:"grip_long" json:"grip_long"`
	GripLat   float32   `yaml:"grip_lat" json:"grip_lat"`
	DriveMode DriveMode `yaml:"drive_mode" json:"drive_mode"`

	// BottomOutFrames is how many consecutive frames a wheel may sit at full
	// travel before a diagnostic is raised.
	BottomOutFrames int `yaml:"bottom_out_frames" json:"bottom_out_frames"`
}

func DefaultParams() Params {
	return Params{
		SpringK:            4000,
		DampingC:           600,
		RestLength:         0.5,
		MaxTravel:          0.3,
		AntiRollStiffness:  [2]float32{1500, 1500},
		Mass:               160,
		RollInertia:        60,
		PitchInertia:       150,
		TiltDamping:        1,
		MaxAngularVelocity: 100,
		MaxTilt:            0.5,
		MaxSteerAngle:      0.5,
		GripLong:           3,
		GripLat:            2,
		DriveMode:          AllWheelDrive,
		BottomOutFrames:    10,
	}
}

func (p Params) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidParams}, args...)...))
		}
	}

	check(p.SpringK >= 0, "spring_k must not be negative, got %v", p.SpringK)
	check(p.DampingC >= 0, "damping_c must not be negative, got %v", p.DampingC)
	check(p.RestLength > 0, "rest_length must be positive, got %v", p.RestLength)
	check(p.MaxTravel > 0 && p.MaxTravel <= p.RestLength, "max_travel must be in (0, rest_length], got %v", p.MaxTravel)
	for i, k := range p.AntiRollStiffness {
		check(k >= 0, "anti_roll_stiffness[%d] must not be negative, got %v", i, k)
	}
	check(p.Mass > 0, "mass must be positive, got %v", p.Mass)
	check(p.RollInertia > 0, "roll_inertia must be positive, got %v", p.RollInertia)
	check(p.PitchInertia > 0, "pitch_inertia must be positive, got %v", p.PitchInertia)
	check(p.TiltDamping >= 0, "tilt_damping must not be negative, got %v", p.TiltDamping)
	check(p.MaxAngularVelocity > 0, "max_angular_velocity must be positive, got %v", p.MaxAngularVelocity)
	check(p.MaxTilt >= 0, "max_tilt must not be negative, got %v", p.MaxTilt)
	check(p.MaxSteerAngle >= 0, "max_steer_angle must not be negative, got %v", p.MaxSteerAngle)
	check(p.GripLong >= 0, "grip_long must not be negative, got %v", p.GripLong)
	check(p.GripLat >= 0, "grip_lat must not be negative, got %v", p.GripLat)
	check(p.DriveMode >= AllWheelDrive && p.DriveMode <= RearWheelDrive, "drive_mode %v is unknown", p.DriveMode)
	check(p.BottomOutFrames > 0, "bottom_out_frames must be positive, got %v", p.BottomOutFrames)

	return errors.Join(errs...)
}
