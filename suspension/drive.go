package suspension

import (
	"fmt"
	"strings"
)

// DriveMode selects which wheels put throttle on the ground.
type DriveMode int

const (
	AllWheelDrive DriveMode = iota
	FrontWheelDrive
	RearWheelDrive
)

var driveModeNames = [...]string{"awd", "fwd", "rwd"}

func (m DriveMode) String() string {
	if m < 0 || int(m) >= len(driveModeNames) {
		return fmt.Sprintf("DriveMode(%d)", int(m))
	}
	return driveModeNames[m]
}

// Drives reports whether the wheel at c is driven.
func (m DriveMode) Drives(c Corner) bool {
	switch m {
	case FrontWheelDrive:
		return c.IsFront()
	case RearWheelDrive:
		return !c.IsFront()
	}
	return true
}

func (m DriveMode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(driveModeNames) {
		return nil, fmt.Errorf("%w: unknown drive mode %d", ErrInvalidParams, int(m))
	}
	return []byte(driveModeNames[m]), nil
}

func (m *DriveMode) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, name := range driveModeNames {
		if s == name {
			*m = DriveMode(i)
			return nil
		}
	}
	return fmt.Errorf("%w: drive_mode must be one of awd, fwd, rwd, got %q", ErrInvalidParams, text)
}
