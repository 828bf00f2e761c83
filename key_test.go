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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotation(t *testing.T) {
	t.Parallel()

	t.Run("nil token", func(t *testing.T) {
		a, err := NewAnnotation(nil)
		require.NoError(t, err)
		assert.Equal(t, NoAnnotation, a)
		assert.True(t, a.IsZero())
		assert.Equal(t, "unannotated", a.String())
	})

	t.Run("token", func(t *testing.T) {
		a, err := NewAnnotation("blue")
		require.NoError(t, err)
		assert.False(t, a.IsZero())
		assert.Equal(t, "blue", a.Token())
		assert.Equal(t, "annotated with blue", a.String())
	})

	t.Run("non-comparable token", func(t *testing.T) {
		_, err := NewAnnotation([]string{"blue"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrWrongArgType)
	})
}

func TestBindingKeyEquality(t *testing.T) {
	t.Parallel()

	plain, err := NewBindingKey("foo", nil)
	require.NoError(t, err)
	blue, err := NewBindingKey("foo", "blue")
	require.NoError(t, err)
	alsoBlue, err := NewBindingKey("foo", "blue")
	require.NoError(t, err)

	assert.Equal(t, blue, alsoBlue)
	assert.NotEqual(t, plain, blue)

	m := map[BindingKey]int{plain: 1, blue: 2}
	assert.Equal(t, 2, m[alsoBlue])

	assert.Equal(t, `"foo" unannotated`, plain.String())
	assert.Equal(t, `"foo" annotated with blue`, blue.String())
}

func TestNewArgKey(t *testing.T) {
	t.Parallel()

	blue := Annotation{token: "blue"}

	tests := []struct {
		give       string
		annotation Annotation
		want       argKey
	}{
		{"foo", NoAnnotation, argKey{key: BindingKey{Name: "foo"}, indirection: direct}},
		{"provide_foo", NoAnnotation, argKey{key: BindingKey{Name: "foo"}, indirection: viaProvider}},
		{"provide_foo", blue, argKey{key: BindingKey{Name: "foo", Annotation: blue}, indirection: viaProvider}},
		{"provider", NoAnnotation, argKey{key: BindingKey{Name: "provider"}, indirection: direct}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, newArgKey(tt.give, tt.annotation), tt.give)
	}
	assert.Equal(t, `provider of "foo" unannotated`, newArgKey("provide_foo", NoAnnotation).String())
}

func TestClassCacheKeyDiffersFromArgNames(t *testing.T) {
	t.Parallel()

	type Foo struct{ N int }
	newFoo := func() *Foo { return &Foo{N: 1} }
	newOtherFoo := func() *Foo { return &Foo{N: 2} }
	classFor := func(cls interface{}) *class {
		c, ok, err := newClass(cls)
		require.NoError(t, err)
		require.True(t, ok)
		return c
	}

	k := classCacheKey(classFor(Foo{}))
	assert.NotEqual(t, BindingKey{Name: k.Name}, k)
	assert.Equal(t, k, classCacheKey(classFor(&Foo{})))
	assert.Equal(t, k, classCacheKey(classFor(reflect.TypeOf(Foo{}))))

	ctor := classCacheKey(classFor(newFoo))
	assert.NotEqual(t, k, ctor, "a constructor is a class of its own")
	assert.Equal(t, ctor, classCacheKey(classFor(newFoo)))
	assert.NotEqual(t, ctor, classCacheKey(classFor(newOtherFoo)))
}
