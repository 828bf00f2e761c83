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
	"sync"

	"github.com/objectgraph/pinject/internal/pinjectreflect"
	"go.uber.org/multierr"
)

// BindFunc binds an arg name to a target. It is passed to the Configure
// method of binding specs.
//
//	func (s *Spec) Configure(bind pinject.BindFunc) {
//		bind("db", pinject.ToProvider(openDB), pinject.InScope(pinject.Singleton))
//		bind("timeout", pinject.ToInstance(5*time.Second))
//	}
//
// Exactly one of ToClass, ToInstance and ToProvider must be passed.
// Failures are reported once Configure returns.
type BindFunc func(argName string, opts ...BindOption)

// RequireFunc declares that an arg name must be bound once the object graph
// is composed. It accepts only AnnotatedWith.
type RequireFunc func(argName string, opts ...BindOption)

// BindOption configures a call to BindFunc or RequireFunc.
type BindOption interface {
	applyBind(*bindOptions)
}

// KeyOption qualifies a binding. It is accepted both by BindFunc and by
// Provides.
type KeyOption interface {
	BindOption
	ProvidesOption
}

type targetKind uint8

const (
	toClass targetKind = iota + 1
	toInstance
	toProvider
)

type bindTarget struct {
	kind  targetKind
	value interface{}
}

type bindOptions struct {
	annotation Annotation
	scope      ScopeID
	hasScope   bool
	targets    []bindTarget
	err        error
}

type annotatedWithOption struct{ token interface{} }

// AnnotatedWith qualifies the binding with an annotation token. Parameters
// ask for it with the `annotated` struct tag or with AnnotateArg.
func AnnotatedWith(token interface{}) KeyOption { return annotatedWithOption{token} }

func (o annotatedWithOption) applyBind(opts *bindOptions) {
	a, err := NewAnnotation(o.token)
	opts.err = multierr.Append(opts.err, err)
	opts.annotation = a
}

func (o annotatedWithOption) applyProvides(p *providesOptions) error {
	a, err := NewAnnotation(o.token)
	if err != nil {
		return err
	}
	return p.merge(providesOptions{annotation: a, hasAnnotation: true}, "the annotation")
}

type inScopeOption ScopeID

// InScope puts the binding in the given scope instead of the default one.
func InScope(id ScopeID) KeyOption { return inScopeOption(id) }

func (o inScopeOption) applyBind(opts *bindOptions) {
	opts.scope, opts.hasScope = ScopeID(o), true
}

func (o inScopeOption) applyProvides(p *providesOptions) error {
	return p.merge(providesOptions{scope: ScopeID(o), hasScope: true}, "the scope")
}

type targetOption bindTarget

func (o targetOption) applyBind(opts *bindOptions) {
	opts.targets = append(opts.targets, bindTarget(o))
}

// ToClass binds to instances of a struct class, given the same way as to
// ObjectGraph.Provide.
func ToClass(cls interface{}) BindOption { return targetOption{kind: toClass, value: cls} }

// ToInstance binds to v itself.
func ToInstance(v interface{}) BindOption { return targetOption{kind: toInstance, value: v} }

// ToProvider binds to the result of calling fn, whose parameter objects are
// injected. fn returns the value and optionally an error.
func ToProvider(fn interface{}) BindOption { return targetOption{kind: toProvider, value: fn} }

// binder collects the bindings declared by one Configure call.
type binder struct {
	defaultScope ScopeID

	mu       sync.Mutex
	bindings []*binding
	required []requiredBinding
	errs     error
}

func (b *binder) fail(err error) {
	b.mu.Lock()
	b.errs = multierr.Append(b.errs, err)
	b.mu.Unlock()
}

func (b *binder) bind(argName string, opts ...BindOption) {
	origin := pinjectreflect.Caller().String()

	var o bindOptions
	for _, opt := range opts {
		opt.applyBind(&o)
	}
	if o.err != nil {
		b.fail(o.err)
		return
	}

	var target bindTarget
	switch len(o.targets) {
	case 0:
		b.fail(newError(KindNoBindingTargetArgs, "binding of %q at %s has no target", argName, origin))
		return
	case 1:
		target = o.targets[0]
	default:
		b.fail(newError(KindMultipleBindingTargetArgs,
			"binding of %q at %s has %d targets", argName, origin, len(o.targets)))
		return
	}

	scope := b.defaultScope
	if o.hasScope {
		scope = o.scope
	}
	key := BindingKey{Name: argName, Annotation: o.annotation}

	bd, err := newTargetBinding(key, target, scope, origin)
	if err != nil {
		b.fail(err)
		return
	}

	b.mu.Lock()
	b.bindings = append(b.bindings, bd)
	b.mu.Unlock()
}

func newTargetBinding(key BindingKey, target bindTarget, scope ScopeID, origin string) (*binding, error) {
	switch target.kind {
	case toClass:
		c, ok, err := newClass(target.value)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, newError(KindInvalidBindingTarget,
				"binding of %s at %s: ToClass needs a struct class, got %T", key, origin, target.value)
		}
		return newClassBinding(key, c, scope, origin, false), nil

	case toProvider:
		v := reflect.ValueOf(target.value)
		if target.value == nil || v.Kind() != reflect.Func || v.IsNil() || !isProviderFuncType(v.Type()) {
			return nil, newError(KindInvalidBindingTarget,
				"binding of %s at %s: ToProvider needs a func returning a value, got %T", key, origin, target.value)
		}
		inj, err := newFuncInjectable(v, pinjectreflect.FuncName(target.value), pinjectreflect.FuncSymbol(target.value))
		if err != nil {
			return nil, err
		}
		return newFuncBinding(key, inj, scope, origin), nil

	default:
		return newInstanceBinding(key, target.value, scope, origin), nil
	}
}

func (b *binder) require(argName string, opts ...BindOption) {
	origin := pinjectreflect.Caller().String()

	var o bindOptions
	for _, opt := range opts {
		if _, ok := opt.(annotatedWithOption); !ok {
			b.fail(newError(KindWrongArgType, "require of %q at %s accepts only AnnotatedWith", argName, origin))
			return
		}
		opt.applyBind(&o)
	}
	if o.err != nil {
		b.fail(o.err)
		return
	}

	b.mu.Lock()
	b.required = append(b.required, requiredBinding{
		key:    BindingKey{Name: argName, Annotation: o.annotation},
		origin: origin,
	})
	b.mu.Unlock()
}
