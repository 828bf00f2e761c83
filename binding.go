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
	"fmt"
	"reflect"

	"github.com/objectgraph/pinject/internal/pinjectreflect"
)

// directArgs are the arguments a caller passes to a provider function. They
// fill the pass-through parameters of the binding being provided.
type directArgs struct {
	positional []reflect.Value
	keyword    Args
}

func (d directArgs) empty() bool { return len(d.positional) == 0 && len(d.keyword) == 0 }

// binding associates a key with a way to build its value within a scope.
type binding struct {
	key   BindingKey
	scope ScopeID

	// cacheKey is the key the scope memoizes values under. Bindings that
	// target the same class share the class's cache key.
	cacheKey BindingKey

	// origin describes where the binding was declared.
	origin   string
	implicit bool

	// needsDirectArgs is set when the target has pass-through parameters
	// and can only be built through a provider function.
	needsDirectArgs bool

	provide func(ic *injectionContext, p *objectProvider, direct directArgs) (interface{}, error)
}

func (b *binding) String() string {
	return fmt.Sprintf("%s (%s)", b.key, b.origin)
}

func newClassBinding(key BindingKey, c *class, scope ScopeID, origin string, implicit bool) *binding {
	return &binding{
		key:             key,
		scope:           scope,
		cacheKey:        classCacheKey(c),
		origin:          origin,
		implicit:        implicit,
		needsDirectArgs: len(c.ctor.passThroughParams()) > 0,
		provide: func(ic *injectionContext, p *objectProvider, direct directArgs) (interface{}, error) {
			return p.provideClass(ic, c, direct)
		},
	}
}

func newInstanceBinding(key BindingKey, v interface{}, scope ScopeID, origin string) *binding {
	return &binding{
		key:      key,
		scope:    scope,
		cacheKey: key,
		origin:   origin,
		provide: func(_ *injectionContext, _ *objectProvider, direct directArgs) (interface{}, error) {
			if !direct.empty() {
				return nil, newError(KindDirectlyPassingInjectedArgs,
					"%s is bound to an instance and accepts no arguments", key)
			}
			return v, nil
		},
	}
}

// newFuncBinding binds key to the result of calling fn with injection. It
// serves ToProvider bindings and binding spec provider methods.
func newFuncBinding(key BindingKey, fn *injectable, scope ScopeID, origin string) *binding {
	return &binding{
		key:             key,
		scope:           scope,
		cacheKey:        key,
		origin:          origin,
		needsDirectArgs: len(fn.passThroughParams()) > 0,
		provide: func(ic *injectionContext, p *objectProvider, direct directArgs) (interface{}, error) {
			return p.callInjectable(ic, fn, direct)
		},
	}
}

// classBindings returns one binding per arg name the class is known by.
func classBindings(c *class, names func(string) []string, scope ScopeID, implicit bool) []*binding {
	var origin string
	if c.ctor.fn.IsValid() {
		origin = fmt.Sprintf("%s (%s)", c.ctor.name, pinjectreflect.Location(c.ctor.fn.Interface()))
	} else {
		origin = "class " + c.String()
	}

	var out []*binding
	for _, name := range names(c.Name()) {
		out = append(out, newClassBinding(BindingKey{Name: name}, c, scope, origin, implicit))
	}
	return out
}
