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
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// bindingMapping is the composed set of bindings of an object graph. A key
// is either resolvable or ambiguous, never both.
type bindingMapping struct {
	bindings  map[BindingKey]*binding
	ambiguous map[BindingKey][]*binding
}

// newBindingMapping merges layers of bindings, lowest priority first. In
// every layer but the last, bindings that collide become ambiguous; in the
// last, a collision is an error. A key bound by a layer is no longer
// ambiguous because of lower layers.
func newBindingMapping(layers ...[]*binding) (*bindingMapping, error) {
	m := &bindingMapping{
		bindings:  make(map[BindingKey]*binding),
		ambiguous: make(map[BindingKey][]*binding),
	}

	for i, layer := range layers {
		final := i == len(layers)-1

		bound := make(map[BindingKey]*binding)
		ambiguous := make(map[BindingKey][]*binding)
		for _, b := range layer {
			if others, ok := ambiguous[b.key]; ok {
				ambiguous[b.key] = append(others, b)
				continue
			}
			prev, ok := bound[b.key]
			if !ok {
				bound[b.key] = b
				continue
			}
			if final {
				return nil, newError(KindConflictingExplicitBindings,
					"%s is bound by both %s and %s", b.key, prev.origin, b.origin)
			}
			ambiguous[b.key] = []*binding{prev, b}
			delete(bound, b.key)
		}

		for k, b := range bound {
			m.bindings[k] = b
			delete(m.ambiguous, k)
		}
		for k, bs := range ambiguous {
			m.ambiguous[k] = bs
			delete(m.bindings, k)
		}
	}
	return m, nil
}

// get returns the binding for key.
func (m *bindingMapping) get(key BindingKey) (*binding, error) {
	if b, ok := m.bindings[key]; ok {
		return b, nil
	}
	if bs, ok := m.ambiguous[key]; ok {
		return nil, newError(KindAmbiguousArgName, "%s is bound by %s", key, origins(bs))
	}
	return nil, newError(KindNothingInjectableForArg, "nothing is bound to %s", key)
}

func origins(bs []*binding) string {
	descs := make([]string, len(bs))
	for i, b := range bs {
		descs[i] = b.origin
	}
	sort.Strings(descs)
	return strings.Join(descs, ", ")
}

// requiredBinding is a claim made by a binding spec that key is bound once
// the graph is composed.
type requiredBinding struct {
	key    BindingKey
	origin string
}

// verify checks every claim and reports all that fail.
func (m *bindingMapping) verify(required []requiredBinding) error {
	var errs error
	for _, r := range required {
		if _, ok := m.bindings[r.key]; ok {
			continue
		}
		if bs, ok := m.ambiguous[r.key]; ok {
			errs = multierr.Append(errs, newError(KindConflictingRequiredBinding,
				"%s required by %s is bound by %s", r.key, r.origin, origins(bs)))
			continue
		}
		errs = multierr.Append(errs, newError(KindMissingRequiredBinding,
			"%s required by %s is not bound", r.key, r.origin))
	}
	return errs
}
