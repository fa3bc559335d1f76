package hexmap

import "sync"

// Value is a read-only observable holding the latest value of a piece of
// renderer or store state.
//
// Subscribers are called synchronously, on the goroutine that changed the
// value, and only when the value actually changes.
type Value[T comparable] struct {
	mu   sync.RWMutex
	v    T
	next int
	subs map[int]func(T)
}

func newValue[T comparable](initial T) *Value[T] {
	return &Value[T]{v: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.v
}

// Subscribe registers fn for future changes. The returned function removes
// the subscription and may be called more than once.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.mu.Lock()
	id := v.next
	v.next++
	v.subs[id] = fn
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
		})
	}
}

func (v *Value[T]) set(x T) {
	v.mu.Lock()
	if v.v == x {
		v.mu.Unlock()
		return
	}
	v.v = x
	subs := make([]func(T), 0, len(v.subs))
	for id := 0; id < v.next; id++ {
		if fn, ok := v.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	v.mu.Unlock()

	for _, fn := range subs {
		fn(x)
	}
}
