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

package pinject

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/objectgraph/pinject/internal/reentrant"
	"github.com/pkg/errors"
)

// ScopeID names a scope.
type ScopeID string

// Built-in scopes. Bindings that name no scope live in Singleton unless the
// graph was built with a different DefaultScope.
const (
	Singleton ScopeID = "singleton"
	Prototype ScopeID = "prototype"

	// _unscoped is the scope of the root injection context.
	_unscoped ScopeID = "\x00unscoped"
)

func (id ScopeID) String() string {
	if id == _unscoped {
		return "unscoped"
	}
	return string(id)
}

// Scope decides whether a binding's value is created afresh or reused.
//
// Provide returns the value for key, calling create when a new one is
// needed. The context identifies the resolution call tree the request
// belongs to and carries whatever the caller passed to
// ObjectGraph.ProvideContext, so request-style scopes may key their caches
// on it.
type Scope interface {
	Provide(ctx context.Context, key BindingKey, create func() (interface{}, error)) (interface{}, error)
}

// PrototypeScope creates a new value for every request.
type PrototypeScope struct{}

var _ Scope = PrototypeScope{}

// Provide calls create.
func (PrototypeScope) Provide(_ context.Context, _ BindingKey, create func() (interface{}, error)) (interface{}, error) {
	return create()
}

// SingletonScope creates at most one value per key.
//
// Each key is built under its own lock, held by the resolution call tree
// building it. Call trees asking for a key under construction wait until it
// is done; keys never wait on one another. A call tree asking again for a
// key it is itself building gets a CyclicInjection error. Failed
// constructions are not remembered.
type SingletonScope struct {
	locks reentrant.KeyedMutex[BindingKey]

	mu     sync.Mutex
	values map[BindingKey]interface{}
}

var _ Scope = (*SingletonScope)(nil)

// NewSingletonScope returns an empty singleton scope.
func NewSingletonScope() *SingletonScope {
	return &SingletonScope{values: make(map[BindingKey]interface{})}
}

// Provide returns the memoized value for key, creating it on first use.
func (s *SingletonScope) Provide(ctx context.Context, key BindingKey, create func() (interface{}, error)) (interface{}, error) {
	if v, ok := s.lookup(key); ok {
		return v, nil
	}

	owner := ownerOf(ctx)
	if err := s.locks.Lock(ctx, owner, key); err != nil {
		if errors.Is(err, reentrant.ErrHeld) || errors.Is(err, reentrant.ErrDeadlock) {
			return nil, newError(KindCyclicInjection, "singleton %s is required by its own construction", key)
		}
		return nil, err
	}
	defer s.locks.Unlock(owner, key)

	if v, ok := s.lookup(key); ok {
		return v, nil
	}
	v, err := create()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[BindingKey]interface{})
	}
	s.values[key] = v
	return v, nil
}

func (s *SingletonScope) lookup(key BindingKey) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

type ownerKey struct{}

// withOwner marks ctx as belonging to a resolution call tree. A context that
// already belongs to one, because ObjectGraph.ProvideContext was called from
// inside a provider with the context it was given, stays in it.
func withOwner(ctx context.Context) context.Context {
	if _, ok := ctx.Value(ownerKey{}).(*reentrant.Owner); ok {
		return ctx
	}
	return newCallTree(ctx)
}

// newCallTree starts a new resolution call tree under ctx, whether or not
// ctx already belongs to one.
func newCallTree(ctx context.Context) context.Context {
	return context.WithValue(ctx, ownerKey{}, reentrant.NewOwner())
}

func ownerOf(ctx context.Context) *reentrant.Owner {
	if ctx != nil {
		if o, ok := ctx.Value(ownerKey{}).(*reentrant.Owner); ok {
			return o
		}
	}
	return reentrant.NewOwner()
}

// ScopeUsableFromScopeFunc reports whether a binding in scope inScope may be
// injected into something being built in scope fromScope.
type ScopeUsableFromScopeFunc func(inScope, fromScope ScopeID) bool

// AllScopesUsable is the default scope policy: every scope may be used from
// every scope.
func AllScopesUsable(ScopeID, ScopeID) bool { return true }

// scopeRegistry holds the scopes of an object graph. It is read-only once
// built.
type scopeRegistry struct {
	scopes map[ScopeID]Scope
}

func newScopeRegistry(user map[ScopeID]Scope) (*scopeRegistry, error) {
	r := &scopeRegistry{scopes: map[ScopeID]Scope{
		Singleton: NewSingletonScope(),
		Prototype: PrototypeScope{},
	}}

	var overridden []string
	for id, s := range user {
		if _, ok := r.scopes[id]; ok {
			overridden = append(overridden, string(id))
			continue
		}
		r.scopes[id] = s
	}
	if len(overridden) > 0 {
		sort.Strings(overridden)
		return nil, newError(KindOverridingDefaultScope,
			"cannot override built-in scope(s) %s", strings.Join(overridden, ", "))
	}
	return r, nil
}

func (r *scopeRegistry) get(id ScopeID) (Scope, bool) {
	s, ok := r.scopes[id]
	return s, ok
}

func (r *scopeRegistry) has(id ScopeID) bool {
	_, ok := r.get(id)
	return ok
}

func (r *scopeRegistry) verify(id ScopeID, what string) error {
	if !r.has(id) {
		return newError(KindUnknownScope, "%s is in unknown scope %q; known scopes are %s", what, id, r)
	}
	return nil
}

func (r *scopeRegistry) String() string {
	ids := make([]string, 0, len(r.scopes))
	for id := range r.scopes {
		ids = append(ids, fmt.Sprintf("%q", string(id)))
	}
	sort.Strings(ids)
	return strings.Join(ids, ", ")
}
