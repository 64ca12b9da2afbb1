package motion

import (
	"testing"

	"github.com/gekko3d/traction/collide"
	"github.com/gekko3d/traction/query"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

var unitHalf = mgl32.Vec3{0.5, 0.5, 0.5}

type scene struct {
	t    *testing.T
	w    *collide.World
	next query.EntityId
}

func newScene(t *testing.T) *scene {
	return &scene{t: t, w: collide.NewWorld(2), next: 100}
}

func (s *scene) box(center, half mgl32.Vec3, rot mgl32.Quat) *scene {
	s.t.Helper()
	s.next++
	require.NoError(s.t, s.w.AddStatic(s.next, collide.NewBox(center, half, rot)))
	return s
}

// floor adds a slab whose top face is at height y.
func (s *scene) floor(y float32) *scene {
	return s.box(mgl32.Vec3{0, y - 0.5, 0}, mgl32.Vec3{50, 0.5, 50}, mgl32.QuatIdent())
}

func (s *scene) port() query.Port {
	s.w.Commit()
	return s.w
}

func restingBody(p Params, x, floorY, z float32) Body {
	b := NewBody(1, ProfileCharacter, unitHalf, Spawn{Position: mgl32.Vec3{x, floorY + unitHalf.Y() + p.Skin, z}})
	b.Grounded = true
	return b
}
