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

// Package pinjecttest provides helpers for tests of code built on pinject
// object graphs.
package pinjecttest

import (
	"strings"

	"github.com/objectgraph/pinject"
	"github.com/objectgraph/pinject/pinjectevent"
)

// TB is a subset of the standard library's testing.TB interface. It's
// satisfied by both *testing.T and *testing.B.
type TB interface {
	Logf(string, ...interface{})
	Errorf(string, ...interface{})
	FailNow()
}

// testWriter forwards console log lines to the test log.
type testWriter struct{ tb TB }

func (w testWriter) Write(p []byte) (int, error) {
	w.tb.Logf("%s", strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// NewTestLogger returns a pinjectevent.Logger that writes human-readable
// events to the test log.
func NewTestLogger(t TB) pinjectevent.Logger {
	return &pinjectevent.ConsoleLogger{W: testWriter{t}}
}

// New builds an object graph that logs to the test log, failing the test
// immediately if the graph cannot be built. A WithLogger option among opts
// replaces the test logger.
func New(t TB, opts ...pinject.Option) *pinject.ObjectGraph {
	opts = append([]pinject.Option{pinject.WithLogger(NewTestLogger(t))}, opts...)
	g, err := pinject.NewObjectGraph(opts...)
	if err != nil {
		t.Errorf("pinject.NewObjectGraph failed: %+v", err)
		t.FailNow()
	}
	return g
}

// MustProvide provides an instance of cls, failing the test if it cannot.
func MustProvide(t TB, g *pinject.ObjectGraph, cls interface{}) interface{} {
	v, err := g.Provide(cls)
	if err != nil {
		t.Errorf("cannot provide %T: %+v", cls, err)
		t.FailNow()
	}
	return v
}

// MustProvideAs is the typed form of MustProvide.
//
//	server := pinjecttest.MustProvideAs[*Server](t, graph)
func MustProvideAs[T any](t TB, g *pinject.ObjectGraph) T {
	v, err := pinject.ProvideAs[T](g)
	if err != nil {
		var zero T
		t.Errorf("cannot provide %T: %+v", zero, err)
		t.FailNow()
	}
	return v
}
