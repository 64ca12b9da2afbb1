package traction

import (
	"github.com/gekko3d/traction/motion"
	"github.com/gekko3d/traction/query"
	"github.com/gekko3d/traction/suspension"
)

type EntityId = query.EntityId

// Vehicle links a body to its four wheel slots. Wheel indices are in
// suspension.Corner order.
type Vehicle struct {
	Body   EntityId
	Wheels [4]int
	Tilt   suspension.Tilt

	// Written by the hierarchy pass.
	ChassisWorld Transform
	WheelWorld   [4]Transform
}

// Arena stores bodies, vehicles and wheels in slices indexed by entity id.
// Freed slots are reused by later spawns.
type Arena struct {
	bodies    []motion.Body
	live      []bool
	freeBody  []int
	bodyIndex map[EntityId]int

	vehicles     []Vehicle
	freeVehicle  []int
	vehicleIndex map[EntityId]int

	wheels    []suspension.Wheel
	freeWheel []int

	respawns []EntityId
}

func NewArena() *Arena {
	return &Arena{
		bodyIndex:    make(map[EntityId]int),
		vehicleIndex: make(map[EntityId]int),
	}
}

func (a *Arena) Len() int { return len(a.bodyIndex) }

func (a *Arena) VehicleCount() int { return len(a.vehicleIndex) }

func (a *Arena) Body(eid EntityId) (*motion.Body, bool) {
	slot, ok := a.bodyIndex[eid]
	if !ok {
		return nil, false
	}
	return &a.bodies[slot], true
}

func (a *Arena) Vehicle(eid EntityId) (*Vehicle, bool) {
	slot, ok := a.vehicleIndex[eid]
	if !ok {
		return nil, false
	}
	return &a.vehicles[slot], true
}

func (a *Arena) Wheels(v *Vehicle) [4]*suspension.Wheel {
	var ws [4]*suspension.Wheel
	for i, slot := range v.Wheels {
		ws[i] = &a.wheels[slot]
	}
	return ws
}

// Bodies returns the live bodies in slot order.
func (a *Arena) Bodies() []*motion.Body {
	out := make([]*motion.Body, 0, len(a.bodyIndex))
	for i := range a.bodies {
		if a.live[i] {
			out = append(out, &a.bodies[i])
		}
	}
	return out
}

// EachVehicle visits vehicles in slot order until fn returns false.
func (a *Arena) EachVehicle(fn func(v *Vehicle, b *motion.Body) bool) {
	for i := range a.vehicles {
		v := &a.vehicles[i]
		if slot, ok := a.vehicleIndex[v.Body]; !ok || slot != i {
			continue
		}
		b, ok := a.Body(v.Body)
		if !ok {
			continue
		}
		if !fn(v, b) {
			return
		}
	}
}

func (a *Arena) insertBody(b motion.Body) int {
	var slot int
	if n := len(a.freeBody); n > 0 {
		slot = a.freeBody[n-1]
		a.freeBody = a.freeBody[:n-1]
		a.bodies[slot] = b
		a.live[slot] = true
	} else {
		slot = len(a.bodies)
		a.bodies = append(a.bodies, b)
		a.live = append(a.live, true)
	}
	a.bodyIndex[b.Entity] = slot
	return slot
}

func (a *Arena) insertVehicle(b motion.Body, wheels [4]suspension.Wheel) {
	a.insertBody(b)

	v := Vehicle{Body: b.Entity}
	for i, w := range wheels {
		v.Wheels[i] = a.insertWheel(w)
	}

	if n := len(a.freeVehicle); n > 0 {
		slot := a.freeVehicle[n-1]
		a.freeVehicle = a.freeVehicle[:n-1]
		a.vehicles[slot] = v
		a.vehicleIndex[b.Entity] = slot
		return
	}
	a.vehicleIndex[b.Entity] = len(a.vehicles)
	a.vehicles = append(a.vehicles, v)
}

func (a *Arena) insertWheel(w suspension.Wheel) int {
	if n := len(a.freeWheel); n > 0 {
		slot := a.freeWheel[n-1]
		a.freeWheel = a.freeWheel[:n-1]
		a.wheels[slot] = w
		return slot
	}
	a.wheels = append(a.wheels, w)
	return len(a.wheels) - 1
}

func (a *Arena) remove(eid EntityId) bool {
	slot, ok := a.bodyIndex[eid]
	if !ok {
		return false
	}
	delete(a.bodyIndex, eid)
	a.bodies[slot] = motion.Body{}
	a.live[slot] = false
	a.freeBody = append(a.freeBody, slot)

	if vslot, ok := a.vehicleIndex[eid]; ok {
		delete(a.vehicleIndex, eid)
		v := a.vehicles[vslot]
		for _, w := range v.Wheels {
			a.wheels[w] = suspension.Wheel{}
			a.freeWheel = append(a.freeWheel, w)
		}
		a.vehicles[vslot] = Vehicle{}
		a.freeVehicle = append(a.freeVehicle, vslot)
	}
	return true
}

func (a *Arena) takeRespawns() []EntityId {
	out := a.respawns
	a.respawns = nil
	return out
}
