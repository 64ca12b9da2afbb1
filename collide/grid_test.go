package collide

import (
	"testing"

	"github.com/gekko3d/traction/query"
	"github.com/go-gl/mathgl/mgl32"
)

func TestSpatialHashGrid_InsertionAndQuery(t *testing.T) {
	grid := NewSpatialHashGrid(2.0)

	grid.Insert(1, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	grid.Insert(2, mgl32.Vec3{3, 3, 3}, mgl32.Vec3{4, 4, 4})

	res1 := grid.QueryAABB(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	if len(res1) != 1 || res1[0] != query.EntityId(1) {
		t.Errorf("Expected id 1, got %v", res1)
	}

	res2 := grid.QueryAABB(mgl32.Vec3{3, 3, 3}, mgl32.Vec3{4, 4, 4})
	if len(res2) != 1 || res2[0] != query.EntityId(2) {
		t.Errorf("Expected id 2, got %v", res2)
	}

	// Cells 0 and 1 on every axis: both boxes.
	resMid := grid.QueryAABB(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{3, 3, 3})
	if len(resMid) != 2 {
		t.Errorf("Expected 2 ids, got %d: %v", len(resMid), resMid)
	}

	near := grid.QueryRadius(mgl32.Vec3{0.5, 0.5, 0.5}, 0.5)
	if len(near) != 1 {
		t.Errorf("Expected 1 id near origin, got %v", near)
	}

	grid.Clear()
	if res := grid.QueryAABB(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 4, 4}); len(res) != 0 {
		t.Errorf("Expected empty grid after Clear, got %v", res)
	}
}
