// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package reentrant provides locks whose holders are logical call trees
// rather than goroutines.
package reentrant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var _lastOwner uint64

// Owner identifies a holder of a KeyedMutex. Goroutines have no identity in
// Go, so the caller hands the same Owner to every Lock it makes on behalf of
// one logical call tree.
type Owner struct {
	id uint64
}

// NewOwner returns a fresh, unique Owner.
func NewOwner() *Owner {
	return &Owner{id: atomic.AddUint64(&_lastOwner, 1)}
}

func (o *Owner) String() string {
	return fmt.Sprintf("owner#%d", o.id)
}

var (
	// ErrHeld is returned by Lock when the owner already holds the key.
	ErrHeld = errors.New("reentrant: key is already held by this owner")

	// ErrDeadlock is returned by Lock when waiting for the key would never
	// end because its holder is itself waiting, directly or through other
	// owners, for a key the caller holds.
	ErrDeadlock = errors.New("reentrant: waiting for key would deadlock")
)

type hold struct {
	owner *Owner
	done  chan struct{}
}

// KeyedMutex is a set of mutual exclusion locks, one per key. An Owner may
// hold any number of keys at once. Locking a key held by another owner
// blocks until it is released; locking a key the caller already holds fails
// with ErrHeld instead of blocking.
//
// The zero value is ready to use.
type KeyedMutex[K comparable] struct {
	mu      sync.Mutex
	holds   map[K]*hold
	waiting map[*Owner]K
}

// Lock acquires key on behalf of o. It returns ctx.Err() if ctx ends first.
func (m *KeyedMutex[K]) Lock(ctx context.Context, o *Owner, key K) error {
	if o == nil {
		panic("reentrant: Lock called with a nil owner")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m.mu.Lock()
	if m.holds == nil {
		m.holds = make(map[K]*hold)
		m.waiting = make(map[*Owner]K)
	}
	for {
		h, ok := m.holds[key]
		if !ok {
			m.holds[key] = &hold{owner: o, done: make(chan struct{})}
			m.mu.Unlock()
			return nil
		}
		if h.owner == o {
			m.mu.Unlock()
			return ErrHeld
		}
		if m.waitsFor(h.owner, o) {
			m.mu.Unlock()
			return ErrDeadlock
		}

		m.waiting[o] = key
		m.mu.Unlock()

		var err error
		select {
		case <-h.done:
		case <-ctx.Done():
			err = ctx.Err()
		}

		m.mu.Lock()
		delete(m.waiting, o)
		if err != nil {
			m.mu.Unlock()
			return err
		}
	}
}

// waitsFor reports whether from is blocked, directly or through a chain of
// other owners, on a key held by to. m.mu must be held.
func (m *KeyedMutex[K]) waitsFor(from, to *Owner) bool {
	cur := from
	for i := 0; i <= len(m.waiting); i++ {
		key, ok := m.waiting[cur]
		if !ok {
			return false
		}
		h, ok := m.holds[key]
		if !ok {
			return false
		}
		if h.owner == to {
			return true
		}
		cur = h.owner
	}
	return false
}

// Unlock releases key, which o must hold, and wakes owners waiting for it.
func (m *KeyedMutex[K]) Unlock(o *Owner, key K) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.holds[key]
	if !ok || h.owner != o {
		panic(fmt.Sprintf("reentrant: Unlock by %v of a key it does not hold", o))
	}
	delete(m.holds, key)
	close(h.done)
}

// HeldBy reports whether o currently holds key.
func (m *KeyedMutex[K]) HeldBy(o *Owner, key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.holds[key]
	return ok && h.owner == o
}
