package traction

import (
	"sync"

	"github.com/gekko3d/traction/motion"
)

// IntentBuffer holds the latest intent per body. Throttle and steer persist
// until replaced; jump is a latch cleared once a vertical pass reads it.
type IntentBuffer struct {
	mu      sync.Mutex
	intents map[EntityId]motion.Intent
}

func NewIntentBuffer() *IntentBuffer {
	return &IntentBuffer{intents: make(map[EntityId]motion.Intent)}
}

// Set replaces the held intent. A pending jump survives a later Set without
// one.
func (b *IntentBuffer) Set(eid EntityId, in motion.Intent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.intents[eid]; ok && prev.Jump {
		in.Jump = true
	}
	b.intents[eid] = in
}

func (b *IntentBuffer) Get(eid EntityId) motion.Intent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.intents[eid]
}

// consumeJump reports and clears the jump latch of a body.
func (b *IntentBuffer) consumeJump(eid EntityId) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	in, ok := b.intents[eid]
	if !ok || !in.Jump {
		return false
	}
	in.Jump = false
	b.intents[eid] = in
	return true
}

func (b *IntentBuffer) remove(eid EntityId) {
	b.mu.Lock()
	delete(b.intents, eid)
	b.mu.Unlock()
}
