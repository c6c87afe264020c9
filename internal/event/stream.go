// Package event provides small push-based stream primitives: a generic
// Stream with synchronous delivery, subscriptions with idempotent release,
// and the filter/map/merge combinators used to carve per-window views out
// of global broadcast streams.
package event

import "sync"

// Handler receives values emitted on a stream.
type Handler[T any] func(T)

// Subscription is the registration of a single handler on a stream.
// Close detaches the handler; closing twice is a no-op.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Close releases the subscription. Safe to call multiple times and on nil.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Stream is a live, unbounded, non-restartable sequence of values.
// Subscribers added after an emission do not see it retroactively.
// Emit delivers synchronously on the caller's goroutine, so emissions
// from a single goroutine are observed in emission order.
type Stream[T any] struct {
	mu       sync.Mutex
	handlers map[uint64]Handler[T]
	order    []uint64
	next     uint64
	closed   bool

	// upstream subscriptions owned by derived streams (filter/map/merge).
	upstream []*Subscription
}

// NewStream creates an empty stream.
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{handlers: make(map[uint64]Handler[T])}
}

// Subscribe registers fn to receive every future emission. The returned
// subscription must be closed when the listener is no longer interested.
func (s *Stream[T]) Subscribe(fn Handler[T]) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return &Subscription{cancel: func() {}}
	}

	id := s.next
	s.next++
	s.handlers[id] = fn
	s.order = append(s.order, id)

	return &Subscription{cancel: func() { s.remove(id) }}
}

func (s *Stream[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handlers, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Emit delivers v to all current subscribers in subscription order.
// Handlers run outside the stream lock, so a handler may subscribe,
// unsubscribe, or emit on other streams without deadlocking.
func (s *Stream[T]) Emit(v T) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	fns := make([]Handler[T], 0, len(s.order))
	for _, id := range s.order {
		if fn, ok := s.handlers[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Close detaches all handlers and releases any upstream subscriptions a
// derived stream holds. Emissions after Close are dropped. Idempotent.
func (s *Stream[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.handlers = make(map[uint64]Handler[T])
	s.order = nil
	upstream := s.upstream
	s.upstream = nil
	s.mu.Unlock()

	for _, sub := range upstream {
		sub.Close()
	}
}

func (s *Stream[T]) addUpstream(sub *Subscription) {
	s.mu.Lock()
	closed := s.closed
	if !closed {
		s.upstream = append(s.upstream, sub)
	}
	s.mu.Unlock()
	if closed {
		sub.Close()
	}
}

// Filter returns a stream that re-emits the values of src matching pred,
// preserving arrival order. The result owns its subscription to src and
// releases it on Close.
func Filter[T any](src *Stream[T], pred func(T) bool) *Stream[T] {
	out := NewStream[T]()
	sub := src.Subscribe(func(v T) {
		if pred(v) {
			out.Emit(v)
		}
	})
	out.addUpstream(sub)
	return out
}

// Map returns a stream that emits fn(v) for every value of src, preserving
// arrival order. The result owns its subscription to src and releases it
// on Close.
func Map[T, U any](src *Stream[T], fn func(T) U) *Stream[U] {
	out := NewStream[U]()
	sub := src.Subscribe(func(v T) {
		out.Emit(fn(v))
	})
	out.addUpstream(sub)
	return out
}

// Merge returns a stream that emits every value of every source stream in
// arrival order. No buffering or deduplication is performed. The result
// owns its subscriptions to the sources and releases them on Close.
func Merge[T any](sources ...*Stream[T]) *Stream[T] {
	out := NewStream[T]()
	for _, src := range sources {
		sub := src.Subscribe(func(v T) {
			out.Emit(v)
		})
		out.addUpstream(sub)
	}
	return out
}
