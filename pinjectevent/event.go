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
	"time"
)

// Event defines an event emitted by pinject.
type Event interface {
	event() // Only pinject can implement this interface.
}

// Passing events by type to make Event hashable in the future.
func (*Bound) event()                 {}
func (*BindingSpecConfigured) event() {}
func (*GraphBuilt) event()            {}
func (*Provided) event()              {}
func (*Wrapped) event()               {}
func (*Invoked) event()               {}

// Bound is emitted for every binding that takes part in the object graph,
// once composition has decided it is the one resolvable binding for its key.
type Bound struct {
	// Key describes the binding key, e.g. `"foo" annotated with "bar"`.
	Key string

	// Scope is the id of the scope the binding lives in.
	Scope string

	// Origin describes where the binding came from.
	Origin string

	// Implicit is true for bindings derived from class names.
	Implicit bool
}

// BindingSpecConfigured is emitted after a binding spec has been processed.
type BindingSpecConfigured struct {
	// Spec is the type name of the binding spec.
	Spec string

	// Bindings is the number of bindings the binding spec contributed.
	Bindings int

	// Err is non-nil if the binding spec could not be processed.
	Err error
}

// GraphBuilt is emitted once at the end of object graph construction.
type GraphBuilt struct {
	// Bindings is the number of resolvable binding keys.
	Bindings int

	// Ambiguous is the number of binding keys with more than one candidate.
	Ambiguous int

	Runtime time.Duration

	// Err is non-nil if construction failed.
	Err error
}

// Provided is emitted after ObjectGraph.Provide returns.
type Provided struct {
	// Class is the fully qualified name of the requested class.
	Class string

	Runtime time.Duration
	Err     error
}

// Wrapped is emitted when ObjectGraph.Wrap wraps a function.
type Wrapped struct {
	Function interface{}
}

// Invoked is emitted after a function returned by ObjectGraph.Wrap has been
// called.
type Invoked struct {
	Function interface{}
	Runtime  time.Duration

	// Err is non-nil if injecting the arguments of the function failed.
	// Errors returned by the function itself are not reported.
	Err error
}
