package event

// Queue is an unbounded FIFO of intent values with a single consumer that
// drains it once per tick. Producers and the consumer never reference each
// other, only the queue.
type Queue[T any] struct {
	items []T
	head  int
}

func (q *Queue[T]) Push(v T) {
	q.items = append(q.items, v)
}

// Len returns the number of undrained values.
func (q *Queue[T]) Len() int {
	return len(q.items) - q.head
}

// Drain pops up to max values in FIFO order and hands each to fn. max <= 0
// drains everything queued when Drain was called; values pushed by fn wait
// for the next call. Returns the number of values handed out.
func (q *Queue[T]) Drain(max int, fn func(T)) int {
	n := q.Len()
	if max > 0 && max < n {
		n = max
	}
	var zero T
	for i := 0; i < n; i++ {
		v := q.items[q.head]
		q.items[q.head] = zero
		q.head++
		fn(v)
	}
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return n
}
