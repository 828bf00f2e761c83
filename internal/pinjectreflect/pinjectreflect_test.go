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

package pinjectreflect

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type someSpec struct{}

func (*someSpec) ProvidePointer() int { return 1 }

func (someSpec) ProvideValue() int { return 2 }

func someFunc() {}

func TestFuncName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "github.com/objectgraph/pinject/internal/pinjectreflect.someFunc()", FuncName(someFunc))
	assert.Equal(t, "n/a", FuncName(42))
}

func TestFuncSymbol(t *testing.T) {
	t.Parallel()

	const pkg = "github.com/objectgraph/pinject/internal/pinjectreflect"
	ptr := reflect.TypeOf(&someSpec{})

	tests := []struct {
		desc string
		give interface{}
		want string
	}{
		{"func", someFunc, pkg + ".someFunc"},
		{"pointer method expression", (*someSpec).ProvidePointer, pkg + ".someSpec.ProvidePointer"},
		{"value method expression", someSpec.ProvideValue, pkg + ".someSpec.ProvideValue"},
		{"method value", (&someSpec{}).ProvidePointer, pkg + ".someSpec.ProvidePointer"},
		{"not a func", "foo", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FuncSymbol(tt.give))
		})
	}

	assert.Equal(t, FuncSymbol((*someSpec).ProvidePointer), MethodSymbol(ptr, "ProvidePointer"))
	assert.Equal(t, FuncSymbol(someSpec.ProvideValue), MethodSymbol(ptr, "ProvideValue"))
}

func TestTypeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"github.com/objectgraph/pinject/internal/pinjectreflect.someSpec",
		TypeName(reflect.TypeOf(&someSpec{})))
	assert.Equal(t, "int", TypeName(reflect.TypeOf(1)))
	assert.Equal(t, "struct {}", TypeName(reflect.TypeOf(struct{}{})))
}

func TestLocation(t *testing.T) {
	t.Parallel()

	assert.Contains(t, Location(someFunc), "pinjectreflect_test.go:")
	assert.Equal(t, "n/a", Location(nil))
}

func TestStack(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		frames := CallerStack(0, 0)
		require.NotEmpty(t, frames)
		f := frames[0]
		assert.Equal(t, "github.com/objectgraph/pinject/internal/pinjectreflect.TestStack.func1", f.Function)
		assert.Contains(t, f.File, "internal/pinjectreflect/pinjectreflect_test.go")
		assert.NotZero(t, f.Line)
	})

	t.Run("skip", func(t *testing.T) {
		frames := func() Stack {
			return CallerStack(1, 0)
		}()

		require.NotEmpty(t, frames)
		assert.Equal(t, "github.com/objectgraph/pinject/internal/pinjectreflect.TestStack.func2", frames[0].Function)
	})

	t.Run("caller", func(t *testing.T) {
		f := Caller()
		assert.True(t, strings.HasSuffix(f.Function, "TestStack.func3"), f.Function)
	})
}

func TestStackCallerName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give Stack
		want Frame
	}{
		{desc: "empty", want: Frame{}},
		{
			desc: "skip pinject components",
			give: Stack{
				{Function: "github.com/objectgraph/pinject.(*binder).bind", File: "pinject/binder.go"},
				{Function: "reflect.Value.Call", File: "reflect/value.go"},
				{Function: "mypackage.(*Spec).Configure", File: "mypackage/spec.go", Line: 12},
			},
			want: Frame{Function: "mypackage.(*Spec).Configure", File: "mypackage/spec.go", Line: 12},
		},
		{
			desc: "keep test files",
			give: Stack{
				{Function: "github.com/objectgraph/pinject.TestFoo", File: "pinject/foo_test.go", Line: 3},
			},
			want: Frame{Function: "github.com/objectgraph/pinject.TestFoo", File: "pinject/foo_test.go", Line: 3},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.give.CallerName())
		})
	}
}

func TestFrameString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "n/a", Frame{}.String())
	assert.Equal(t, "foo.Bar (foo/bar.go:3)", Frame{Function: "foo.Bar", File: "foo/bar.go", Line: 3}.String())
}
