// SPDX-License-Identifier: EPL-2.0

// Package notify is a minimal typed observer list.
package notify

import "sync"

// List holds observers of T. The zero value is ready to use.
type List[T any] struct {
	mtx sync.Mutex
	fns []func(T)
}

// Add registers fn. Observers are called in registration order.
func (l *List[T]) Add(fn func(T)) {
	if fn == nil {
		return
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.fns = append(l.fns, fn)
}

// Notify calls every observer with v. Observers run on the caller's
// goroutine, outside the lock, so they may register further observers.
func (l *List[T]) Notify(v T) {
	l.mtx.Lock()
	fns := l.fns[:len(l.fns):len(l.fns)]
	l.mtx.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len reports the number of registered observers.
func (l *List[T]) Len() int {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return len(l.fns)
}
