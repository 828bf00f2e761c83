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
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrototypeScope(t *testing.T) {
	t.Parallel()

	var calls int
	create := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	var s PrototypeScope
	key := BindingKey{Name: "foo"}
	v1, err := s.Provide(context.Background(), key, create)
	require.NoError(t, err)
	v2, err := s.Provide(context.Background(), key, create)
	require.NoError(t, err)

	assert.Equal(t, 1, v1)
	assert.Equal(t, 2, v2)
}

func TestSingletonScope(t *testing.T) {
	t.Parallel()

	t.Run("memoizes per key", func(t *testing.T) {
		t.Parallel()

		s := NewSingletonScope()
		ctx := withOwner(context.Background())

		var calls int
		create := func() (interface{}, error) {
			calls++
			return calls, nil
		}

		foo, bar := BindingKey{Name: "foo"}, BindingKey{Name: "bar"}
		v, err := s.Provide(ctx, foo, create)
		require.NoError(t, err)
		assert.Equal(t, 1, v)

		v, err = s.Provide(ctx, foo, create)
		require.NoError(t, err)
		assert.Equal(t, 1, v)

		v, err = s.Provide(ctx, bar, create)
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("failures are not memoized", func(t *testing.T) {
		t.Parallel()

		s := NewSingletonScope()
		ctx := withOwner(context.Background())
		key := BindingKey{Name: "foo"}

		_, err := s.Provide(ctx, key, func() (interface{}, error) { return nil, errors.New("great sadness") })
		require.Error(t, err)

		v, err := s.Provide(ctx, key, func() (interface{}, error) { return "ok", nil })
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
	})

	t.Run("nested keys within one call tree", func(t *testing.T) {
		t.Parallel()

		s := NewSingletonScope()
		ctx := withOwner(context.Background())

		v, err := s.Provide(ctx, BindingKey{Name: "outer"}, func() (interface{}, error) {
			inner, err := s.Provide(ctx, BindingKey{Name: "inner"}, func() (interface{}, error) {
				return "inner", nil
			})
			return "outer+" + inner.(string), err
		})
		require.NoError(t, err)
		assert.Equal(t, "outer+inner", v)
	})

	t.Run("same key within one call tree", func(t *testing.T) {
		t.Parallel()

		s := NewSingletonScope()
		ctx := withOwner(context.Background())
		key := BindingKey{Name: "foo"}

		_, err := s.Provide(ctx, key, func() (interface{}, error) {
			return s.Provide(ctx, key, func() (interface{}, error) { return "inner", nil })
		})
		assert.ErrorIs(t, err, ErrCyclicInjection)

		v, err := s.Provide(ctx, key, func() (interface{}, error) { return "ok", nil })
		require.NoError(t, err)
		assert.Equal(t, "ok", v, "the key is released after a failure")
	})

	t.Run("keys do not wait on each other", func(t *testing.T) {
		t.Parallel()

		s := NewSingletonScope()
		v, err := s.Provide(withOwner(context.Background()), BindingKey{Name: "outer"}, func() (interface{}, error) {
			// A separate call tree, as when a provider calls Provide without
			// its context.
			return s.Provide(withOwner(context.Background()), BindingKey{Name: "inner"}, func() (interface{}, error) {
				return "inner", nil
			})
		})
		require.NoError(t, err)
		assert.Equal(t, "inner", v)
	})

	t.Run("waiting ends with the context", func(t *testing.T) {
		t.Parallel()

		s := NewSingletonScope()
		key := BindingKey{Name: "foo"}
		started, release := make(chan struct{}), make(chan struct{})

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, err := s.Provide(withOwner(context.Background()), key, func() (interface{}, error) {
				close(started)
				<-release
				return "slow", nil
			})
			assert.NoError(t, err)
		}()
		<-started

		ctx, cancel := context.WithCancel(withOwner(context.Background()))
		cancel()
		_, err := s.Provide(ctx, key, func() (interface{}, error) { return "fast", nil })
		assert.ErrorIs(t, err, context.Canceled)

		close(release)
		<-done
	})

	t.Run("zero value", func(t *testing.T) {
		t.Parallel()

		var s SingletonScope
		v, err := s.Provide(context.Background(), BindingKey{Name: "foo"}, func() (interface{}, error) {
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("concurrent call trees build once", func(t *testing.T) {
		t.Parallel()

		s := NewSingletonScope()
		key := BindingKey{Name: "foo"}

		var (
			mu    sync.Mutex
			calls int
			wg    sync.WaitGroup
		)
		results := make([]interface{}, 10)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v, err := s.Provide(withOwner(context.Background()), key, func() (interface{}, error) {
					mu.Lock()
					defer mu.Unlock()
					calls++
					return new(int), nil
				})
				assert.NoError(t, err)
				results[i] = v
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, calls)
		for _, r := range results[1:] {
			assert.Same(t, results[0], r)
		}
	})
}

func TestWithOwner(t *testing.T) {
	t.Parallel()

	ctx := withOwner(context.Background())
	assert.Same(t, ownerOf(ctx), ownerOf(withOwner(ctx)), "nested resolution stays in its call tree")
	assert.NotSame(t, ownerOf(ctx), ownerOf(withOwner(context.Background())))
	assert.NotNil(t, ownerOf(nil))
}

type requestScope struct{ PrototypeScope }

func TestScopeRegistry(t *testing.T) {
	t.Parallel()

	t.Run("built-ins", func(t *testing.T) {
		t.Parallel()

		r, err := newScopeRegistry(nil)
		require.NoError(t, err)
		assert.True(t, r.has(Singleton))
		assert.True(t, r.has(Prototype))
		assert.False(t, r.has("request"))
		assert.Equal(t, `"prototype", "singleton"`, r.String())
	})

	t.Run("user scopes", func(t *testing.T) {
		t.Parallel()

		r, err := newScopeRegistry(map[ScopeID]Scope{"request": requestScope{}})
		require.NoError(t, err)
		assert.True(t, r.has("request"))
		assert.NoError(t, r.verify("request", "test binding"))

		err = r.verify("session", "test binding")
		assert.ErrorIs(t, err, ErrUnknownScope)
		assert.Contains(t, err.Error(), `"session"`)
	})

	t.Run("overriding built-ins", func(t *testing.T) {
		t.Parallel()

		_, err := newScopeRegistry(map[ScopeID]Scope{
			Singleton: requestScope{},
			Prototype: requestScope{},
		})
		assert.ErrorIs(t, err, ErrOverridingDefaultScope)
		assert.Contains(t, err.Error(), "prototype, singleton")
	})

	t.Run("through the graph", func(t *testing.T) {
		t.Parallel()

		_, err := NewObjectGraph(Scopes(map[ScopeID]Scope{Singleton: requestScope{}}))
		assert.ErrorIs(t, err, ErrOverridingDefaultScope)

		_, err = NewObjectGraph(DefaultScope("request"))
		assert.ErrorIs(t, err, ErrUnknownScope)

		_, err = NewObjectGraph(Scopes(map[ScopeID]Scope{"request": requestScope{}}), DefaultScope("request"))
		assert.NoError(t, err)
	})
}

func TestScopeIDString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "singleton", Singleton.String())
	assert.Equal(t, "unscoped", _unscoped.String())
}
