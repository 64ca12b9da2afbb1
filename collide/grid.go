package collide

import (
	"math"

	"github.com/gekko3d/traction/query"
	"github.com/go-gl/mathgl/mgl32"
)

// SpatialHashGrid buckets axis-aligned boxes into uniform cells. It stores
// ids only; callers keep the geometry.
type SpatialHashGrid struct {
	cellSize float32
	cells    map[uint64][]query.EntityId
}

func NewSpatialHashGrid(cellSize float32) *SpatialHashGrid {
	if cellSize <= 0 {
		cellSize = 2.0
	}
	return &SpatialHashGrid{
		cellSize: cellSize,
		cells:    make(map[uint64][]query.EntityId),
	}
}

func (grid *SpatialHashGrid) Clear() {
	clear(grid.cells)
}

func (grid *SpatialHashGrid) Insert(id query.EntityId, minB, maxB mgl32.Vec3) {
	minX, maxX := grid.cellIndex(minB.X()), grid.cellIndex(maxB.X())
	minY, maxY := grid.cellIndex(minB.Y()), grid.cellIndex(maxB.Y())
	minZ, maxZ := grid.cellIndex(minB.Z()), grid.cellIndex(maxB.Z())

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				key := grid.hashKey(x, y, z)
				grid.cells[key] = append(grid.cells[key], id)
			}
		}
	}
}

// QueryAABB returns each id whose cells touch the box, once. Results are
// broad-phase candidates.
func (grid *SpatialHashGrid) QueryAABB(minB, maxB mgl32.Vec3) []query.EntityId {
	if len(grid.cells) == 0 {
		return nil
	}
	minX, maxX := grid.cellIndex(minB.X()), grid.cellIndex(maxB.X())
	minY, maxY := grid.cellIndex(minB.Y()), grid.cellIndex(maxB.Y())
	minZ, maxZ := grid.cellIndex(minB.Z()), grid.cellIndex(maxB.Z())

	unique := make(map[query.EntityId]struct{})
	var results []query.EntityId

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				for _, id := range grid.cells[grid.hashKey(x, y, z)] {
					if _, ok := unique[id]; !ok {
						unique[id] = struct{}{}
						results = append(results, id)
					}
				}
			}
		}
	}
	return results
}

func (grid *SpatialHashGrid) QueryRadius(center mgl32.Vec3, radius float32) []query.EntityId {
	r := mgl32.Vec3{radius, radius, radius}
	return grid.QueryAABB(center.Sub(r), center.Add(r))
}

func (grid *SpatialHashGrid) cellIndex(pos float32) int {
	return int(math.Floor(float64(pos / grid.cellSize)))
}

func (grid *SpatialHashGrid) hashKey(x, y, z int) uint64 {
	const p1 = 73856093
	const p2 = 19349663
	const p3 = 83492791
	return uint64(x*p1 ^ y*p2 ^ z*p3)
}
