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
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// _modulePath prefixes every function symbol that belongs to pinject itself.
const _modulePath = "github.com/objectgraph/pinject"

// FuncName returns a funcs formatted name
func FuncName(fn interface{}) string {
	fnV := reflect.ValueOf(fn)
	if fnV.Kind() != reflect.Func {
		return "n/a"
	}
	return fmt.Sprintf("%s()", runtimeName(fnV))
}

// FuncSymbol returns the normalized symbol of a function: the package path,
// the receiver type if any, and the function name, joined with dots. Method
// expressions, method values and the methods found through reflection on a
// value all normalize to the same symbol, so
//
//	FuncSymbol((*Spec).ProvideFoo) == MethodSymbol(reflect.TypeOf(&Spec{}), "ProvideFoo")
//
// Returns "" for values that are not functions.
func FuncSymbol(fn interface{}) string {
	fnV := reflect.ValueOf(fn)
	if fnV.Kind() != reflect.Func || fnV.IsNil() {
		return ""
	}
	return NormalizeSymbol(runtimeName(fnV))
}

// MethodSymbol returns the symbol FuncSymbol would report for the named
// method of t.
func MethodSymbol(t reflect.Type, method string) string {
	return TypeName(t) + "." + method
}

// NormalizeSymbol strips method value suffixes and pointer receiver markers
// from a runtime function name.
func NormalizeSymbol(name string) string {
	name = strings.TrimSuffix(name, "-fm")
	name = strings.Replace(name, "(*", "", 1)
	name = strings.Replace(name, ").", ".", 1)
	return name
}

// TypeName returns the fully qualified name of t, dereferencing pointers.
// Unnamed types fall back to their string form.
func TypeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// Location returns "file:line" of where fn is defined.
func Location(fn interface{}) string {
	fnV := reflect.ValueOf(fn)
	if fnV.Kind() != reflect.Func || fnV.IsNil() {
		return "n/a"
	}
	f := runtime.FuncForPC(fnV.Pointer())
	if f == nil {
		return "n/a"
	}
	file, line := f.FileLine(f.Entry())
	return fmt.Sprintf("%s:%d", file, line)
}

func runtimeName(fnV reflect.Value) string {
	f := runtime.FuncForPC(fnV.Pointer())
	if f == nil {
		return "n/a"
	}
	return f.Name()
}

// Frame holds information about a single frame in the call stack.
type Frame struct {
	// Unique, package path-qualified name for the function of this call
	// frame.
	Function string

	// File and line number of our location in the frame.
	File string
	Line int
}

func (f Frame) String() string {
	if f.Function == "" {
		return "n/a"
	}
	return fmt.Sprintf("%s (%s:%d)", f.Function, f.File, f.Line)
}

// Stack is a stack of call frames, innermost first.
type Stack []Frame

// CallerStack returns the call stack leading to the caller, skipping skip
// additional frames and collecting at most depth frames. A depth of zero
// collects up to 8 frames.
func CallerStack(skip, depth int) Stack {
	if depth <= 0 {
		depth = 8
	}
	pcs := make([]uintptr, depth)

	// Don't include this frame or runtime.Callers.
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	var stack Stack
	frames := runtime.CallersFrames(pcs[:n])
	for f, more := frames.Next(); ; f, more = frames.Next() {
		stack = append(stack, Frame{
			Function: f.Function,
			File:     f.File,
			Line:     f.Line,
		})
		if !more {
			break
		}
	}
	return stack
}

// CallerName returns the first frame of the stack that is outside pinject
// and the reflection machinery it calls user code through, or a zero Frame.
func (s Stack) CallerName() Frame {
	for _, f := range s {
		if shouldIgnoreFrame(f) {
			continue
		}
		return f
	}
	return Frame{}
}

// Caller returns the first frame above the caller of Caller that is outside
// pinject.
func Caller() Frame {
	return CallerStack(1, 16).CallerName()
}

// Ascend the call stack until we leave the pinject production code. This
// allows us to avoid hard-coding a frame skip, which makes this code work
// well even when it's wrapped.
func shouldIgnoreFrame(f Frame) bool {
	if strings.HasSuffix(f.File, "_test.go") {
		return false
	}
	if strings.HasPrefix(f.Function, _modulePath+".") ||
		strings.HasPrefix(f.Function, _modulePath+"/") {
		return true
	}
	for _, prefix := range []string{"reflect.", "runtime."} {
		if strings.HasPrefix(f.Function, prefix) {
			return true
		}
	}
	return false
}
