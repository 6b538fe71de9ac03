package ecs

// Each2 visits every entity holding both A and B. It walks the smaller store
// and looks each entity up in the larger one.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for id, a := range sa.data {
			if b, ok := sb.data[id]; ok {
				fn(id, a, b)
			}
		}
		return
	}
	for id, b := range sb.data {
		if a, ok := sa.data[id]; ok {
			fn(id, a, b)
		}
	}
}

// Count2 returns how many entities hold both A and B.
func Count2[A, B any](sa *Store[A], sb *Store[B]) int {
	n := 0
	Each2(sa, sb, func(EntityID, *A, *B) { n++ })
	return n
}
