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
	"fmt"
	"reflect"

	"github.com/objectgraph/pinject/internal/pinjectclock"
	"github.com/objectgraph/pinject/internal/pinjectreflect"
	"github.com/objectgraph/pinject/pinjectevent"
)

// ObjectGraph builds instances of classes by injecting their parameters from
// the bindings it was created with. It is safe for concurrent use.
type ObjectGraph struct {
	provider     *objectProvider
	onlyExplicit bool
	usable       ScopeUsableFromScopeFunc
	log          pinjectevent.Logger
	clock        pinjectclock.Clock
}

// NewObjectGraph builds an object graph from classes, modules and binding
// specs.
//
// Every class is bound implicitly under the arg names ClassNameToArgNames
// derives from its type name, unless OnlyUseExplicitBindings is given.
// Classes marked with Injectable or Inject, the bindings declared by the
// Configure methods of the binding specs, and their provider methods form
// the explicit bindings, which take precedence over implicit ones. Two
// implicit bindings for the same key make it ambiguous; two explicit ones
// are an error.
func NewObjectGraph(opts ...Option) (g *ObjectGraph, err error) {
	c := newConfig(opts)
	start := c.clock.Now()

	var mapping *bindingMapping
	defer func() {
		built := &pinjectevent.GraphBuilt{Runtime: c.clock.Since(start), Err: err}
		if mapping != nil {
			built.Bindings, built.Ambiguous = len(mapping.bindings), len(mapping.ambiguous)
		}
		c.logger.LogEvent(built)
	}()

	if c.err != nil {
		return nil, c.err
	}

	scopes, err := newScopeRegistry(c.scopes)
	if err != nil {
		return nil, err
	}
	if err := scopes.verify(c.defaultScope, "the default scope"); err != nil {
		return nil, err
	}

	classes, err := collectClasses(c)
	if err != nil {
		return nil, err
	}

	var implicit, explicit []*binding
	for _, cls := range classes {
		if !c.onlyExplicit {
			implicit = append(implicit, classBindings(cls, c.classNames, c.defaultScope, true)...)
		}
		if cls.ctor.explicit {
			explicit = append(explicit, classBindings(cls, c.classNames, c.defaultScope, false)...)
		}
	}

	sp := &specProcessor{
		configureName:    c.configureName,
		dependenciesName: c.dependenciesName,
		providerNames:    c.providerNames,
		defaultScope:     c.defaultScope,
		log:              c.logger,
	}
	res, err := sp.process(c.specs)
	if err != nil {
		return nil, err
	}
	explicit = append(explicit, res.bindings...)

	for _, layer := range [][]*binding{implicit, explicit} {
		for _, b := range layer {
			if err := scopes.verify(b.scope, fmt.Sprintf("binding of %s at %s", b.key, b.origin)); err != nil {
				return nil, err
			}
		}
	}

	m, err := newBindingMapping(implicit, explicit)
	if err != nil {
		return nil, err
	}
	if err := m.verify(res.required); err != nil {
		return nil, err
	}
	mapping = m

	for _, layer := range [][]*binding{implicit, explicit} {
		for _, b := range layer {
			if m.bindings[b.key] != b {
				continue
			}
			c.logger.LogEvent(&pinjectevent.Bound{
				Key:      b.key.String(),
				Scope:    b.scope.String(),
				Origin:   b.origin,
				Implicit: b.implicit,
			})
		}
	}

	return &ObjectGraph{
		provider: &objectProvider{
			mapping:   m,
			scopes:    scopes,
			allowNone: c.allowNone,
		},
		onlyExplicit: c.onlyExplicit,
		usable:       c.usable,
		log:          c.logger,
		clock:        c.clock,
	}, nil
}

// collectClasses returns the classes of the modules followed by the listed
// classes, each struct type once.
func collectClasses(c *config) ([]*class, error) {
	designators := make([]interface{}, 0, len(c.classes))
	for _, m := range c.modules {
		for _, cls := range m.Classes() {
			if _, _, ok := classOf(cls); !ok {
				return nil, newError(KindWrongArgElementType,
					"module %q lists %T, which is not a struct class or constructor", m.Name(), cls)
			}
			designators = append(designators, cls)
		}
	}
	designators = append(designators, c.classes...)

	seen := make(map[interface{}]struct{}, len(designators))
	classes := make([]*class, 0, len(designators))
	for _, d := range designators {
		cls, _, err := newClass(d)
		if err != nil {
			return nil, err
		}
		id := cls.identity()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		classes = append(classes, cls)
	}
	return classes, nil
}

// Provide returns a new instance of cls, a pointer to the struct it
// designates, with its parameters injected.
//
//	v, err := graph.Provide(Server{})
//	server := v.(*Server)
func (g *ObjectGraph) Provide(cls interface{}) (interface{}, error) {
	return g.provide(context.Background(), cls)
}

// ProvideContext is Provide with a context. The context is passed to
// constructors and provider methods that accept one, and to scopes.
func (g *ObjectGraph) ProvideContext(ctx context.Context, cls interface{}) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return g.provide(ctx, cls)
}

func (g *ObjectGraph) provide(ctx context.Context, cls interface{}) (v interface{}, err error) {
	start := g.clock.Now()
	var name string
	defer func() {
		g.log.LogEvent(&pinjectevent.Provided{Class: name, Runtime: g.clock.Since(start), Err: err})
	}()

	c, ok, err := newClass(cls)
	if err != nil {
		return nil, err
	}
	if !ok {
		name = fmt.Sprintf("%T", cls)
		return nil, newError(KindWrongArgType, "Provide needs a struct class or constructor, got %T", cls)
	}
	name = c.String()
	if g.onlyExplicit && !c.ctor.explicit {
		return nil, newError(KindNonExplicitlyBoundClass,
			"%s is not marked injectable and only explicit bindings are in use", c)
	}

	ic := newRootContext(withOwner(ctx), pinjectreflect.Caller().String(), g.usable)
	v, err = g.provider.provideClass(ic, c, directArgs{})
	if err != nil {
		return nil, err
	}
	if isNil(v) && !g.provider.allowNone {
		return nil, newError(KindInjectingNoneDisallowed, "constructor of %s returned nil", c).withContext(ic)
	}
	return v, nil
}

// ProvideAs provides an instance of the class T points to.
//
//	server, err := pinject.ProvideAs[*Server](graph)
func ProvideAs[T any](g *ObjectGraph) (T, error) {
	return ProvideAsContext[T](context.Background(), g)
}

// ProvideAsContext is ProvideAs with a context.
func ProvideAsContext[T any](ctx context.Context, g *ObjectGraph) (T, error) {
	var zero T
	v, err := g.ProvideContext(ctx, reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, newError(KindWrongArgType, "provided %T, which is not a %T", v, zero)
	}
	return t, nil
}

// Wrap returns a function of the same type as fn that injects the zero
// fields of fn's parameter objects before calling it. Fields the caller sets
// are passed as they are, as are parameters that are not parameter objects.
// A context.Context parameter becomes the context of the injection.
//
// If injection fails, the wrapper returns the error through fn's trailing
// error result, or panics if fn has none.
func (g *ObjectGraph) Wrap(fn interface{}) (interface{}, error) {
	fnV := reflect.ValueOf(fn)
	if fn == nil || fnV.Kind() != reflect.Func || fnV.IsNil() {
		return nil, newError(KindWrongArgType, "Wrap needs a function, got %T", fn)
	}
	inj, err := newFuncInjectable(fnV, pinjectreflect.FuncName(fn), pinjectreflect.FuncSymbol(fn))
	if err != nil {
		return nil, err
	}
	g.log.LogEvent(&pinjectevent.Wrapped{Function: fn})

	ft := fnV.Type()
	wrapper := reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
		start := g.clock.Now()
		values, ctx, err := g.injectWrapped(inj, args)
		if err == nil {
			results := inj.invoke(ctx, values)
			g.log.LogEvent(&pinjectevent.Invoked{Function: fn, Runtime: g.clock.Since(start)})
			return results
		}

		g.log.LogEvent(&pinjectevent.Invoked{Function: fn, Runtime: g.clock.Since(start), Err: err})
		if !inj.returnsErr {
			panic(err)
		}
		out := make([]reflect.Value, ft.NumOut())
		for i := range out {
			out[i] = reflect.Zero(ft.Out(i))
		}
		out[len(out)-1] = reflect.ValueOf(&err).Elem()
		return out
	})
	return wrapper.Interface(), nil
}

// WrapFunc is the typed form of Wrap.
//
//	handle, err := pinject.WrapFunc(graph, func(p HandlerParams, req *Request) error { ... })
func WrapFunc[F any](g *ObjectGraph, fn F) (F, error) {
	var zero F
	w, err := g.Wrap(fn)
	if err != nil {
		return zero, err
	}
	return w.(F), nil
}

// injectWrapped computes the arguments of a wrapped call.
func (g *ObjectGraph) injectWrapped(inj *injectable, args []reflect.Value) ([]reflect.Value, context.Context, error) {
	ctx := context.Background()
	for i, s := range inj.slots {
		if s.kind != slotContext {
			continue
		}
		if c, ok := args[i].Interface().(context.Context); ok && c != nil {
			ctx = c
		}
		break
	}
	ic := newRootContext(withOwner(ctx), pinjectreflect.Caller().String(), g.usable)

	values := make([]reflect.Value, len(inj.params))
	for i, p := range inj.params {
		if p.field < 0 {
			values[i] = args[p.slot]
			continue
		}
		fv := args[p.slot].Field(p.field)
		if !fv.IsZero() || !p.injected() {
			values[i] = fv
			continue
		}
		v, err := g.provider.provideFromArgKey(ic.withSite(fmt.Sprintf("%s of %s", p, inj.name)), p.argKey(), p.typ)
		if err != nil {
			return nil, nil, err
		}
		values[i] = v
	}
	return values, ic.ctx, nil
}
