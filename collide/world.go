package collide

import (
	"fmt"

	"github.com/gekko3d/traction/query"
	"github.com/go-gl/mathgl/mgl32"
)

// Casts whose swept bounds cover more grid cells than this skip the grid and
// test every proxy.
const maxGridCells = 4096

type staticEntry struct {
	id       query.EntityId
	collider Collider
	axes     [3]mgl32.Vec3
	min      mgl32.Vec3
	max      mgl32.Vec3
}

type proxy struct {
	center mgl32.Vec3
	half   mgl32.Vec3
}

// World holds static colliders and per-step body proxies. Mutating methods
// are called between steps; casts only read and may run concurrently.
type World struct {
	boxes   []staticEntry
	planes  []staticEntry
	index   map[query.EntityId]struct{}
	tree    *Tree
	current bool

	proxies map[query.EntityId]proxy
	grid    *SpatialHashGrid
}

func NewWorld(cellSize float32) *World {
	return &World{
		index:   make(map[query.EntityId]struct{}),
		proxies: make(map[query.EntityId]proxy),
		grid:    NewSpatialHashGrid(cellSize),
	}
}

func (w *World) AddStatic(id query.EntityId, c Collider) error {
	if _, ok := w.index[id]; ok {
		return fmt.Errorf("collider %d already added", id)
	}
	if _, ok := w.proxies[id]; ok {
		return fmt.Errorf("collider %d collides with a dynamic proxy id", id)
	}
	e := staticEntry{id: id, collider: c}
	switch c.Kind {
	case KindBox:
		e.axes = c.axes()
		e.min, e.max, _ = c.Bounds()
		w.boxes = append(w.boxes, e)
	case KindPlane:
		w.planes = append(w.planes, e)
	default:
		return fmt.Errorf("collider %d has unknown kind %d", id, c.Kind)
	}
	w.index[id] = struct{}{}
	w.current = false
	return nil
}

func (w *World) RemoveStatic(id query.EntityId) bool {
	if _, ok := w.index[id]; !ok {
		return false
	}
	delete(w.index, id)
	w.boxes = removeEntry(w.boxes, id)
	w.planes = removeEntry(w.planes, id)
	w.current = false
	return true
}

func removeEntry(entries []staticEntry, id query.EntityId) []staticEntry {
	for i := range entries {
		if entries[i].id == id {
			return append(entries[:i], entries[i+1:]...)
		}
	}
	return entries
}

func (w *World) StaticCount() int { return len(w.index) }

// Commit rebuilds the hierarchy over static boxes when they changed since the
// last commit. Casts on an uncommitted world scan every box.
func (w *World) Commit() {
	if w.current {
		return
	}
	bounds := make([][2]mgl32.Vec3, len(w.boxes))
	for i, e := range w.boxes {
		bounds[i] = [2]mgl32.Vec3{e.min, e.max}
	}
	w.tree = BuildTree(bounds)
	w.current = true
}

func (w *World) SetDynamic(id query.EntityId, center, half mgl32.Vec3) {
	w.proxies[id] = proxy{center: center, half: half}
	w.grid.Insert(id, center.Sub(half), center.Add(half))
}

func (w *World) ClearDynamic() {
	clear(w.proxies)
	w.grid.Clear()
}

func (w *World) CastRay(origin, dir mgl32.Vec3, maxDist float32, filter query.Filter) query.Hit {
	return w.cast(pointSweeper(), origin, dir, maxDist, filter)
}

func (w *World) CastShape(shape query.Shape, origin, dir mgl32.Vec3, maxDist float32, filter query.Filter) query.Hit {
	return w.cast(newSweeper(shape), origin, dir, maxDist, filter)
}

func (w *World) cast(s sweeper, origin, dir mgl32.Vec3, maxDist float32, filter query.Filter) query.Hit {
	best := query.Hit{Distance: maxDist}
	if maxDist < 0 {
		return query.Hit{}
	}

	consider := func(id query.EntityId, t float32, n mgl32.Vec3) {
		if t > best.Distance || (best.Hit && t == best.Distance) {
			return
		}
		best = query.Hit{Hit: true, Distance: t, Normal: n, Entity: id}
	}

	// Swept bounds of the whole cast.
	ext := s.bounds()
	end := origin.Add(dir.Mul(maxDist))
	var minQ, maxQ mgl32.Vec3
	for k := 0; k < 3; k++ {
		minQ[k] = min(origin[k], end[k]) - ext[k]
		maxQ[k] = max(origin[k], end[k]) + ext[k]
	}

	testBox := func(e *staticEntry) {
		if filter.Excludes(e.id) {
			return
		}
		if t, n, ok := castBox(e.collider, e.axes, s, origin, dir, maxDist); ok {
			consider(e.id, t, n)
		}
	}

	if w.current && w.tree != nil {
		w.tree.Query(minQ, maxQ, func(i int) bool {
			testBox(&w.boxes[i])
			return true
		})
	} else {
		for i := range w.boxes {
			if overlaps(w.boxes[i].min, w.boxes[i].max, minQ, maxQ) {
				testBox(&w.boxes[i])
			}
		}
	}

	for i := range w.planes {
		e := &w.planes[i]
		if filter.Excludes(e.id) {
			continue
		}
		if t, ok := castPlane(e.collider, s, origin, dir, maxDist); ok {
			consider(e.id, t, e.collider.Normal)
		}
	}

	testProxy := func(id query.EntityId, p proxy) {
		if filter.Excludes(id) {
			return
		}
		c := Collider{Kind: KindBox, Center: p.center, HalfExtents: p.half}
		if t, n, ok := castBox(c, identityAxes, s, origin, dir, maxDist); ok {
			consider(id, t, n)
		}
	}
	if w.gridCells(minQ, maxQ) <= maxGridCells {
		for _, id := range w.grid.QueryAABB(minQ, maxQ) {
			if p, ok := w.proxies[id]; ok {
				testProxy(id, p)
			}
		}
	} else {
		for id, p := range w.proxies {
			testProxy(id, p)
		}
	}

	if !best.Hit {
		return query.Hit{}
	}
	best.Point = origin.Add(dir.Mul(best.Distance)).Add(s.contactOffset(best.Normal))
	return best
}

func (w *World) gridCells(minQ, maxQ mgl32.Vec3) int {
	n := 1
	for k := 0; k < 3; k++ {
		n *= w.grid.cellIndex(maxQ[k]) - w.grid.cellIndex(minQ[k]) + 1
		if n > maxGridCells {
			return n
		}
	}
	return n
}
