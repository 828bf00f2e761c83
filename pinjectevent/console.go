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
	"fmt"
	"io"

	"github.com/objectgraph/pinject/internal/pinjectreflect"
)

// ConsoleLogger is a pinject event logger that attempts to write
// human-readable messages to the console.
//
// Use this during development.
type ConsoleLogger struct {
	W io.Writer
}

var _ Logger = (*ConsoleLogger)(nil)

func (l *ConsoleLogger) logf(msg string, args ...interface{}) {
	fmt.Fprintf(l.W, "[pinject] "+msg+"\n", args...)
}

// LogEvent logs the given event to the provided writer.
func (l *ConsoleLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Bound:
		kind := "BIND"
		if e.Implicit {
			kind = "IMPLICIT"
		}
		l.logf("%s\t%s in scope %q <= %s", kind, e.Key, e.Scope, e.Origin)
	case *BindingSpecConfigured:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to configure %s: %+v", e.Spec, e.Err)
		} else {
			l.logf("SPEC\t\t%s contributed %d binding(s)", e.Spec, e.Bindings)
		}
	case *GraphBuilt:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to build object graph: %+v", e.Err)
		} else {
			l.logf("BUILT\t\t%d binding(s), %d ambiguous, in %s", e.Bindings, e.Ambiguous, e.Runtime)
		}
	case *Provided:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to provide %s: %+v", e.Class, e.Err)
		} else {
			l.logf("PROVIDE\t%s in %s", e.Class, e.Runtime)
		}
	case *Wrapped:
		l.logf("WRAP\t\t%s", pinjectreflect.FuncName(e.Function))
	case *Invoked:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to inject %s: %+v", pinjectreflect.FuncName(e.Function), e.Err)
		} else {
			l.logf("INVOKE\t\t%s in %s", pinjectreflect.FuncName(e.Function), e.Runtime)
		}
	}
}
