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
	"reflect"
	"sort"
	"sync"

	"github.com/objectgraph/pinject/internal/pinjectreflect"
)

// metadata is what decorators record about a class, constructor or
// function.
type metadata struct {
	injectable  bool
	injected    bool
	selection   *injectSelection
	annotations map[string]Annotation

	provides providesOptions
}

func (md *metadata) explicit() bool { return md.injectable || md.injected }

// passThroughNames lists the selected pass-through parameters among names,
// the injectable names of the target.
func (md *metadata) passThroughNames(names []string) []string {
	if md.selection == nil {
		return nil
	}
	if md.selection.allExcept {
		return md.selection.names
	}

	inject := make(map[string]bool, len(md.selection.names))
	for _, n := range md.selection.names {
		inject[n] = true
	}
	var out []string
	for _, n := range names {
		if !inject[n] {
			out = append(out, n)
		}
	}
	return out
}

func (md *metadata) clone() *metadata {
	c := *md
	c.annotations = make(map[string]Annotation, len(md.annotations))
	for k, v := range md.annotations {
		c.annotations[k] = v
	}
	return &c
}

// _decorations is the side table of decorator metadata. Struct classes are
// keyed by their reflect.Type and functions by their symbol.
var _decorations = struct {
	sync.RWMutex
	m map[interface{}]*metadata
}{m: make(map[interface{}]*metadata)}

func lookupMetadata(key interface{}) *metadata {
	_decorations.RLock()
	defer _decorations.RUnlock()

	if md, ok := _decorations.m[key]; ok {
		return md.clone()
	}
	return nil
}

// decorate applies f to the metadata of key under the table lock. Changes
// are discarded if f fails.
func decorate(key interface{}, f func(*metadata) error) error {
	_decorations.Lock()
	defer _decorations.Unlock()

	md, ok := _decorations.m[key]
	if ok {
		md = md.clone()
	} else {
		md = &metadata{annotations: make(map[string]Annotation)}
	}
	if err := f(md); err != nil {
		return err
	}
	_decorations.m[key] = md
	return nil
}

// inspectTarget introspects a decorator target: a class designator or any
// function. It returns the undecorated injectable.
func inspectTarget(target interface{}) (*injectable, bool, error) {
	if t, ctor, ok := classOf(target); ok {
		if ctor.IsValid() {
			inj, err := inspectFunc(ctor, pinjectreflect.FuncName(target), pinjectreflect.FuncSymbol(target))
			return inj, true, err
		}
		inj, err := inspectStruct(t)
		return inj, true, err
	}

	v := reflect.ValueOf(target)
	if target == nil || v.Kind() != reflect.Func || v.IsNil() {
		return nil, false, nil
	}
	inj, err := inspectFunc(v, pinjectreflect.FuncName(target), pinjectreflect.FuncSymbol(target))
	return inj, false, err
}

// Injectable marks a class as explicitly injectable. Explicitly injectable
// classes are the only ones bound by class name when the object graph is
// built with OnlyUseExplicitBindings.
//
// The target is a struct class designator (Foo{}, (*Foo)(nil) or its
// reflect.Type) or a constructor function. Decorators are meant to run from
// package init functions or package-level variable declarations.
//
//	var _ = pinject.Injectable(NewServer)
func Injectable(target interface{}) error {
	inj, isClass, err := inspectTarget(target)
	if err != nil {
		return err
	}
	if !isClass {
		return newError(KindDecoratorAppliedToNonInit,
			"Injectable applied to %T, which is not a struct class or constructor", target)
	}

	return decorate(inj.key, func(md *metadata) error {
		if md.explicit() {
			return newError(KindDuplicateDecorator, "%s is already marked injectable", inj.name)
		}
		md.injectable = true
		return nil
	})
}

// InjectOption selects which parameters Inject injects.
type InjectOption interface {
	applyInject(*injectSelection)
}

type injectSelection struct {
	names     []string
	allExcept bool
	options   int
}

type injectOptionFunc func(*injectSelection)

func (f injectOptionFunc) applyInject(s *injectSelection) { f(s) }

// ArgNames injects only the named parameters. The others pass through and
// must be supplied by the caller of a provider function.
func ArgNames(names ...string) InjectOption {
	return injectOptionFunc(func(s *injectSelection) {
		s.names = append([]string(nil), names...)
		s.options++
	})
}

// AllExcept injects every parameter except the named ones, which pass
// through.
func AllExcept(names ...string) InjectOption {
	return injectOptionFunc(func(s *injectSelection) {
		s.names = append([]string(nil), names...)
		s.allExcept = true
		s.options++
	})
}

// Inject marks a class as explicitly injectable, like Injectable, and
// optionally selects the parameters that injection leaves to the caller.
//
//	var _ = pinject.Inject(NewClient, pinject.AllExcept("timeout"))
func Inject(target interface{}, opts ...InjectOption) error {
	inj, isClass, err := inspectTarget(target)
	if err != nil {
		return err
	}
	if !isClass {
		return newError(KindDecoratorAppliedToNonInit,
			"Inject applied to %T, which is not a struct class or constructor", target)
	}

	var sel *injectSelection
	if len(opts) > 0 {
		sel = new(injectSelection)
		for _, opt := range opts {
			opt.applyInject(sel)
		}
		if sel.options > 1 {
			return newError(KindTooManyArgsToInjectDecorator,
				"Inject on %s accepts either ArgNames or AllExcept, not both", inj.name)
		}
		if err := checkSelection(inj, sel); err != nil {
			return err
		}
	}

	return decorate(inj.key, func(md *metadata) error {
		if md.explicit() {
			return newError(KindDuplicateDecorator, "%s is already marked injectable", inj.name)
		}
		md.injected = true
		md.selection = sel
		return nil
	})
}

func checkSelection(inj *injectable, sel *injectSelection) error {
	names := inj.injectableNames()
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	var unknown []string
	for _, n := range sel.names {
		if !known[n] {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return newError(KindNoSuchArgToInject, "%s has no injectable parameter(s) %q", inj.name, unknown)
	}

	remaining := len(sel.names)
	if sel.allExcept {
		remaining = len(names) - len(dedup(sel.names))
	}
	if remaining <= 0 {
		return newError(KindNoRemainingArgsToInject, "Inject on %s leaves no parameter to inject", inj.name)
	}
	return nil
}

func dedup(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// AnnotateArg makes the named parameter of target ask for the binding
// annotated with token. target is a class designator or a function, including
// method expressions of binding spec provider methods.
//
//	var _ = pinject.AnnotateArg(NewCache, "backend", "redis")
func AnnotateArg(target interface{}, argName string, token interface{}) error {
	inj, _, err := inspectTarget(target)
	if err != nil {
		return err
	}
	if inj == nil {
		return newError(KindWrongArgType, "cannot annotate the parameters of %T", target)
	}
	a, err := NewAnnotation(token)
	if err != nil {
		return err
	}
	if a.IsZero() {
		return newError(KindWrongArgType, "annotation of %q on %s must not be nil", argName, inj.name)
	}

	p := inj.param(argName)
	if p == nil {
		return newError(KindNoSuchArgToInject, "%s has no parameter %q", inj.name, argName)
	}
	if !p.annotation.IsZero() {
		return newError(KindMultipleAnnotationsForSameArg,
			"parameter %q of %s is already %s", argName, inj.name, p.annotation)
	}

	return decorate(inj.key, func(md *metadata) error {
		if prev, ok := md.annotations[argName]; ok {
			return newError(KindMultipleAnnotationsForSameArg,
				"parameter %q of %s is already %s", argName, inj.name, prev)
		}
		md.annotations[argName] = a
		return nil
	})
}

// ProvidesOption configures the binding a provider method contributes.
type ProvidesOption interface {
	applyProvides(*providesOptions) error
}

type providesOptions struct {
	argName    string
	annotation Annotation
	scope      ScopeID

	hasArgName, hasAnnotation, hasScope bool
}

// merge copies the options set in o into p. Setting an option twice fails.
func (p *providesOptions) merge(o providesOptions, what string) error {
	if (o.hasArgName && p.hasArgName) || (o.hasAnnotation && p.hasAnnotation) || (o.hasScope && p.hasScope) {
		return newError(KindDuplicateDecorator, "Provides already configured %s", what)
	}
	if o.hasArgName {
		p.argName, p.hasArgName = o.argName, true
	}
	if o.hasAnnotation {
		p.annotation, p.hasAnnotation = o.annotation, true
	}
	if o.hasScope {
		p.scope, p.hasScope = o.scope, true
	}
	return nil
}

type argNameOption string

func (o argNameOption) applyProvides(p *providesOptions) error {
	return p.merge(providesOptions{argName: string(o), hasArgName: true}, "the arg name")
}

// ArgName overrides the arg name a provider method binds, which defaults to
// its name without the Provide prefix.
func ArgName(name string) ProvidesOption { return argNameOption(name) }

// Provides configures the binding a binding spec provider method
// contributes. method is a method expression of the binding spec type.
//
//	var _ = pinject.Provides((*Spec).ProvideDB, pinject.InScope(pinject.Prototype))
//
// Provides may be applied more than once as long as each option is set only
// once.
func Provides(method interface{}, opts ...ProvidesOption) error {
	if len(opts) == 0 {
		return newError(KindEmptyProvidesDecorator,
			"Provides on %s needs at least one of ArgName, AnnotatedWith or InScope", pinjectreflect.FuncName(method))
	}
	symbol := pinjectreflect.FuncSymbol(method)
	if symbol == "" {
		return newError(KindWrongArgType, "Provides applied to %T, which is not a function", method)
	}

	var o providesOptions
	for _, opt := range opts {
		if err := opt.applyProvides(&o); err != nil {
			return err
		}
	}
	if o.hasArgName && o.argName == "" {
		return newError(KindWrongArgType, "Provides on %s needs a non-empty arg name", symbol)
	}

	return decorate(symbol, func(md *metadata) error {
		return md.provides.merge(o, "an option of "+symbol)
	})
}
