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

package pinjectevent

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		give Event
		want string
	}{
		{
			name: "Bound",
			give: &Bound{Key: `"foo" unannotated`, Scope: "singleton", Origin: "spec.go:12"},
			want: "[pinject] BIND\t\"foo\" unannotated in scope \"singleton\" <= spec.go:12\n",
		},
		{
			name: "BoundImplicit",
			give: &Bound{Key: `"foo" unannotated`, Scope: "singleton", Origin: "class Foo", Implicit: true},
			want: "[pinject] IMPLICIT\t\"foo\" unannotated in scope \"singleton\" <= class Foo\n",
		},
		{
			name: "BindingSpecConfigured",
			give: &BindingSpecConfigured{Spec: "mypkg.Spec", Bindings: 2},
			want: "[pinject] SPEC\t\tmypkg.Spec contributed 2 binding(s)\n",
		},
		{
			name: "BindingSpecConfiguredError",
			give: &BindingSpecConfigured{Spec: "mypkg.Spec", Err: errors.New("great sadness")},
			want: "[pinject] ERROR\t\tFailed to configure mypkg.Spec: great sadness\n",
		},
		{
			name: "GraphBuilt",
			give: &GraphBuilt{Bindings: 3, Ambiguous: 1, Runtime: time.Millisecond},
			want: "[pinject] BUILT\t\t3 binding(s), 1 ambiguous, in 1ms\n",
		},
		{
			name: "GraphBuiltError",
			give: &GraphBuilt{Err: errors.New("great sadness")},
			want: "[pinject] ERROR\t\tFailed to build object graph: great sadness\n",
		},
		{
			name: "Provided",
			give: &Provided{Class: "mypkg.Foo", Runtime: 2 * time.Millisecond},
			want: "[pinject] PROVIDE\tmypkg.Foo in 2ms\n",
		},
		{
			name: "ProvidedError",
			give: &Provided{Class: "mypkg.Foo", Err: errors.New("great sadness")},
			want: "[pinject] ERROR\t\tFailed to provide mypkg.Foo: great sadness\n",
		},
		{
			name: "Wrapped",
			give: &Wrapped{Function: strings.ToUpper},
			want: "[pinject] WRAP\t\tstrings.ToUpper()\n",
		},
		{
			name: "Invoked",
			give: &Invoked{Function: strings.ToUpper, Runtime: time.Second},
			want: "[pinject] INVOKE\t\tstrings.ToUpper() in 1s\n",
		},
		{
			name: "InvokedError",
			give: &Invoked{Function: strings.ToUpper, Err: errors.New("great sadness")},
			want: "[pinject] ERROR\t\tFailed to inject strings.ToUpper(): great sadness\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buff bytes.Buffer
			(&ConsoleLogger{W: &buff}).LogEvent(tt.give)

			assert.Equal(t, tt.want, buff.String())
		})
	}
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { NopLogger.LogEvent(&GraphBuilt{}) })
}
