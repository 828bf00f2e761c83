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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	t.Parallel()

	cause := errors.New("great sadness")
	tests := []struct {
		desc string
		give *Error
		want string
	}{
		{
			desc: "kind only",
			give: &Error{Kind: KindCyclicInjection},
			want: "cyclic injection",
		},
		{
			desc: "message",
			give: newError(KindNothingInjectableForArg, "nothing is bound to %q", "foo"),
			want: `nothing injectable for arg: nothing is bound to "foo"`,
		},
		{
			desc: "site and stack",
			give: &Error{
				Kind:    KindAmbiguousArgName,
				Message: "foo is ambiguous",
				Site:    `parameter "foo" of Bar`,
				Stack:   []string{`"bar"`, `"baz"`},
			},
			want: `ambiguous arg name: foo is ambiguous (at parameter "foo" of Bar); while providing "bar" -> "baz"`,
		},
		{
			desc: "cause",
			give: &Error{Kind: KindUnknown, Cause: cause},
			want: "unknown: great sadness",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.give.Error())
		})
	}
}

func TestErrorMatching(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("building graph: %w", newError(KindUnknownScope, "scope %q", "request"))
	assert.ErrorIs(t, err, ErrUnknownScope)
	assert.NotErrorIs(t, err, ErrCyclicInjection)
	assert.Equal(t, KindUnknownScope, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))

	cause := errors.New("cause")
	assert.ErrorIs(t, &Error{Kind: KindUnknown, Cause: cause}, cause)
}

func TestErrorKindString(t *testing.T) {
	t.Parallel()

	for k := KindUnknown; k <= KindWrongArgElementType; k++ {
		assert.NotContains(t, k.String(), "ErrorKind(", "kind %d has no name", k)
	}
	assert.Equal(t, "ErrorKind(200)", ErrorKind(200).String())
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	root := newRootContext(withOwner(context.Background()), "outer site", nil)
	ic, err := root.child(testBinding("foo", "a"))
	assert.NoError(t, err)

	e := newError(KindWrongArgType, "bad").withContext(ic.withSite("inner site"))
	assert.Equal(t, "inner site", e.Site)
	assert.Equal(t, []string{`"foo" unannotated`}, e.Stack)

	e.withContext(root)
	assert.Equal(t, "inner site", e.Site, "inner frames win")
	assert.Equal(t, []string{`"foo" unannotated`}, e.Stack)

	assert.Same(t, e, e.withContext(nil))
}

func TestUserError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")

	err := userError(cause, "NewDB()", nil)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "NewDB() failed: connection refused", err.Error())

	root := newRootContext(withOwner(context.Background()), "site", nil)
	ic, _ := root.child(testBinding("db", "a"))
	err = userError(cause, "NewDB()", ic)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, `while providing "db" unannotated: NewDB() failed: connection refused`, err.Error())
}
