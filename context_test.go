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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectionContext(t *testing.T) {
	t.Parallel()

	root := newRootContext(withOwner(context.Background()), "main.go:10", nil)
	foo := testBinding("foo", "a")
	bar := testBinding("bar", "b")

	t.Run("child records the stack", func(t *testing.T) {
		t.Parallel()

		c1, err := root.child(foo)
		require.NoError(t, err)
		c2, err := c1.child(bar)
		require.NoError(t, err)

		assert.Empty(t, root.stack, "parents are unchanged")
		assert.Equal(t, []string{`"foo" unannotated`}, c1.stackDescription())
		assert.Equal(t, []string{`"foo" unannotated`, `"bar" unannotated`}, c2.stackDescription())
		assert.Equal(t, Singleton, c2.scope)
		assert.Equal(t, root.ctx, c2.ctx)
	})

	t.Run("siblings do not share stacks", func(t *testing.T) {
		t.Parallel()

		c1, err := root.child(foo)
		require.NoError(t, err)
		a, err := c1.child(bar)
		require.NoError(t, err)
		b, err := c1.child(testBinding("baz", "c"))
		require.NoError(t, err)

		assert.Equal(t, `"bar" unannotated`, a.stackDescription()[1])
		assert.Equal(t, `"baz" unannotated`, b.stackDescription()[1])
	})

	t.Run("cycle", func(t *testing.T) {
		t.Parallel()

		c1, err := root.child(foo)
		require.NoError(t, err)
		c2, err := c1.child(bar)
		require.NoError(t, err)

		_, err = c2.child(foo)
		require.ErrorIs(t, err, ErrCyclicInjection)

		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "main.go:10", e.Site)
		assert.Equal(t, []string{`"foo" unannotated`, `"bar" unannotated`}, e.Stack)
	})

	t.Run("same key different binding is not a cycle", func(t *testing.T) {
		t.Parallel()

		c1, err := root.child(foo)
		require.NoError(t, err)
		_, err = c1.child(testBinding("foo", "other"))
		assert.NoError(t, err)
	})

	t.Run("scope policy", func(t *testing.T) {
		t.Parallel()

		usable := func(in, from ScopeID) bool { return !(in == Prototype && from == Singleton) }
		c := newRootContext(withOwner(context.Background()), "site", usable)

		proto := newInstanceBinding(BindingKey{Name: "p"}, 1, Prototype, "p")

		_, err := c.child(proto)
		require.NoError(t, err, "root contexts are unscoped")

		single, err := c.child(foo)
		require.NoError(t, err)
		_, err = single.child(proto)
		assert.ErrorIs(t, err, ErrBadDependencyScope)
	})

	t.Run("site", func(t *testing.T) {
		t.Parallel()

		c := root.withSite("parameter \"x\" of Foo")
		assert.Equal(t, "parameter \"x\" of Foo", c.site)
		assert.Equal(t, "main.go:10", root.site)
		assert.Contains(t, c.String(), `scope "unscoped"`)
	})
}
