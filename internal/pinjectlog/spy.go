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

// Package pinjectlog holds logging helpers shared by pinject's tests.
package pinjectlog

import (
	"reflect"
	"sync"

	"github.com/objectgraph/pinject/pinjectevent"
)

// Spy is a pinjectevent.Logger that captures events. It may be used in tests
// of pinject events, including ones that provide concurrently.
type Spy struct {
	mu     sync.Mutex
	events []pinjectevent.Event
}

var _ pinjectevent.Logger = (*Spy)(nil)

// LogEvent appends an Event.
func (s *Spy) LogEvent(event pinjectevent.Event) {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
}

// Events returns all captured events.
func (s *Spy) Events() []pinjectevent.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]pinjectevent.Event, len(s.events))
	copy(events, s.events)
	return events
}

// EventTypes returns the type names of all captured events.
func (s *Spy) EventTypes() []string {
	events := s.Events()
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = reflect.TypeOf(e).Elem().Name()
	}
	return types
}

// Reset clears all events from the Spy.
func (s *Spy) Reset() {
	s.mu.Lock()
	s.events = s.events[:0]
	s.mu.Unlock()
}
