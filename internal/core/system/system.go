package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: swap and dispatch the event bus
	PhasePreUpdate               // 1: react to last tick's events
	PhaseUpdate                  // 2: gameplay
	PhasePostUpdate              // 3: spawn queued entities
	PhaseOutput                  // 4: render hand-off
	PhasePersist                 // 5: autosave
	PhaseCleanup                 // 6: destroy queued entities
)

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
