package traction

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/traction/collide"
	"github.com/gekko3d/traction/motion"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ColliderData is a static collider in a scene file. Rotation is Euler
// degrees applied about X, then Y, then Z.
type ColliderData struct {
	Name        string     `json:"name,omitempty"`
	Kind        string     `json:"kind"`
	Center      mgl32.Vec3 `json:"center"`
	HalfExtents mgl32.Vec3 `json:"half_extents"`
	RotationDeg mgl32.Vec3 `json:"rotation_deg"`
	Normal      mgl32.Vec3 `json:"normal"`
	Offset      float32    `json:"offset"`
}

type SpawnData struct {
	Name     string     `json:"name,omitempty"`
	Profile  string     `json:"profile"`
	Position mgl32.Vec3 `json:"position"`
	YawDeg   float32    `json:"yaw_deg"`
}

type SceneData struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Colliders []ColliderData `json:"colliders"`
	Spawns    []SpawnData    `json:"spawns"`
}

func eulerDeg(deg mgl32.Vec3) mgl32.Quat {
	rx := mgl32.QuatRotate(mgl32.DegToRad(deg.X()), mgl32.Vec3{1, 0, 0})
	ry := mgl32.QuatRotate(mgl32.DegToRad(deg.Y()), mgl32.Vec3{0, 1, 0})
	rz := mgl32.QuatRotate(mgl32.DegToRad(deg.Z()), mgl32.Vec3{0, 0, 1})
	return rz.Mul(ry).Mul(rx).Normalize()
}

func (c ColliderData) Collider() (collide.Collider, error) {
	switch c.Kind {
	case collide.KindBox.String():
		if c.HalfExtents.X() <= 0 || c.HalfExtents.Y() <= 0 || c.HalfExtents.Z() <= 0 {
			return collide.Collider{}, fmt.Errorf("collider %q: half extents must be positive, got %v", c.Name, c.HalfExtents)
		}
		return collide.NewBox(c.Center, c.HalfExtents, eulerDeg(c.RotationDeg)), nil
	case collide.KindPlane.String():
		return collide.NewPlane(c.Normal, c.Offset), nil
	}
	return collide.Collider{}, fmt.Errorf("collider %q: unknown kind %q", c.Name, c.Kind)
}

func (s SpawnData) Spawn() motion.Spawn {
	return motion.Spawn{Position: s.Position, Yaw: mgl32.DegToRad(s.YawDeg)}
}

func (s SpawnData) profile() (motion.Profile, error) {
	switch s.Profile {
	case motion.ProfileCharacter.String():
		return motion.ProfileCharacter, nil
	case motion.ProfileVehicle.String():
		return motion.ProfileVehicle, nil
	}
	return 0, fmt.Errorf("spawn %q: unknown profile %q", s.Name, s.Profile)
}

// Validate checks every collider and spawn, joining all problems.
func (scene SceneData) Validate() error {
	var errs []error
	for _, c := range scene.Colliders {
		if _, err := c.Collider(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, s := range scene.Spawns {
		if _, err := s.profile(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DefaultScene is a floor with a ramp, a wall and a bump, one character and
// one vehicle.
func DefaultScene() SceneData {
	return SceneData{
		ID:   uuid.New(),
		Name: "proving-ground",
		Colliders: []ColliderData{
			{Name: "floor", Kind: "box", Center: mgl32.Vec3{0, -0.5, 0}, HalfExtents: mgl32.Vec3{100, 0.5, 100}},
			{Name: "ramp", Kind: "box", Center: mgl32.Vec3{0, 0, 30}, HalfExtents: mgl32.Vec3{4, 0.5, 8}, RotationDeg: mgl32.Vec3{-15, 0, 0}},
			{Name: "wall", Kind: "box", Center: mgl32.Vec3{-20, 2, 0}, HalfExtents: mgl32.Vec3{0.5, 2, 20}},
			{Name: "bump", Kind: "box", Center: mgl32.Vec3{8, 0.05, 12}, HalfExtents: mgl32.Vec3{2, 0.05, 0.5}},
		},
		Spawns: []SpawnData{
			{Name: "runner", Profile: "character", Position: mgl32.Vec3{-5, 3, 0}},
			{Name: "buggy", Profile: "vehicle", Position: mgl32.Vec3{8, 3, 0}},
		},
	}
}

func SaveScene(filename string, scene SceneData) error {
	if scene.ID == uuid.Nil {
		scene.ID = uuid.New()
	}
	bytes, err := json.MarshalIndent(scene, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, bytes, 0644)
}

func LoadScene(filename string) (SceneData, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return SceneData{}, err
	}

	var scene SceneData
	if err := json.Unmarshal(bytes, &scene); err != nil {
		return SceneData{}, fmt.Errorf("scene %s: %w", filename, err)
	}
	if err := scene.Validate(); err != nil {
		return SceneData{}, fmt.Errorf("scene %s: %w", filename, err)
	}
	return scene, nil
}

// SpawnScene queues every collider and spawn of scene and returns the ids of
// the spawned bodies in file order.
func SpawnScene(cmd *Commands, scene SceneData) ([]EntityId, error) {
	if err := scene.Validate(); err != nil {
		return nil, err
	}

	for _, c := range scene.Colliders {
		collider, _ := c.Collider()
		cmd.AddCollider(collider)
	}

	ids := make([]EntityId, 0, len(scene.Spawns))
	for _, s := range scene.Spawns {
		profile, _ := s.profile()
		if profile == motion.ProfileVehicle {
			ids = append(ids, cmd.SpawnVehicle(VehicleSpec{Spawn: s.Spawn()}))
		} else {
			ids = append(ids, cmd.SpawnCharacter(CharacterSpec{Spawn: s.Spawn()}))
		}
	}
	cmd.Logger().Infof("scene %q (%s): %d colliders, %d bodies", scene.Name, scene.ID, len(scene.Colliders), len(ids))
	return ids, nil
}
