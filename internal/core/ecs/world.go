package ecs

// World owns the entity pool, the component registry and the set of
// entities doomed at the end of the tick.
type World struct {
	pool     *EntityPool
	registry *Registry

	// doomed keeps queue order for the flush and a set for lookups.
	doomedOrder []EntityID
	doomed      map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:        NewEntityPool(),
		registry:    NewRegistry(),
		doomedOrder: make([]EntityID, 0, 16),
		doomed:      make(map[EntityID]struct{}, 16),
	}
}

func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

// Alive reports whether id still resolves. A doomed entity stays alive
// until the flush.
func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Live returns the number of entities currently alive.
func (w *World) Live() int { return w.pool.Live() }

// MarkForDestruction dooms an entity. Its components stay readable until
// FlushDestroyQueue; marking twice is a no-op.
func (w *World) MarkForDestruction(id EntityID) {
	if _, ok := w.doomed[id]; ok || !w.pool.Alive(id) {
		return
	}
	w.doomed[id] = struct{}{}
	w.doomedOrder = append(w.doomedOrder, id)
}

// Doomed reports whether id is waiting for the end-of-tick flush.
func (w *World) Doomed(id EntityID) bool {
	_, ok := w.doomed[id]
	return ok
}

// FlushDestroyQueue destroys every doomed entity and drops its components.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.doomedOrder {
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
		delete(w.doomed, id)
	}
	w.doomedOrder = w.doomedOrder[:0]
}
