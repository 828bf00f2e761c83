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

	"github.com/pkg/errors"
)

// objectProvider resolves bindings into values.
type objectProvider struct {
	mapping   *bindingMapping
	scopes    *scopeRegistry
	allowNone bool
}

// provideFromArgKey returns the value for a parameter of type typ asking
// for ak.
func (p *objectProvider) provideFromArgKey(ic *injectionContext, ak argKey, typ reflect.Type) (reflect.Value, error) {
	b, err := p.mapping.get(ak.key)
	if err != nil {
		return reflect.Value{}, asError(err).withContext(ic)
	}

	if ak.indirection == viaProvider {
		return p.providerFunc(ic, b, typ)
	}
	if b.needsDirectArgs {
		return reflect.Value{}, newError(KindOnlyInstantiableViaProviderFunction,
			"%s has pass-through parameters; ask for provide_%s instead", b, ak.key.Name).withContext(ic)
	}

	v, err := p.provideBinding(ic, b, directArgs{})
	if err != nil {
		return reflect.Value{}, err
	}
	return assignable(ic, v, typ)
}

// provideBinding builds or reuses the value of b through its scope.
func (p *objectProvider) provideBinding(ic *injectionContext, b *binding, direct directArgs) (interface{}, error) {
	child, err := ic.child(b)
	if err != nil {
		return nil, err
	}
	scope, ok := p.scopes.get(b.scope)
	if !ok {
		return nil, newError(KindUnknownScope, "%s is in unknown scope %q", b, b.scope).withContext(ic)
	}

	v, err := scope.Provide(ic.ctx, b.cacheKey, func() (interface{}, error) {
		return b.provide(child, p, direct)
	})
	if err != nil {
		if e, ok := err.(*Error); ok {
			return nil, e.withContext(child)
		}
		return nil, err
	}
	if isNil(v) && !p.allowNone {
		return nil, newError(KindInjectingNoneDisallowed, "%s provided nil", b).withContext(child)
	}
	return v, nil
}

// providerFunc returns a function of type typ that provides b each time it
// is called. Its arguments become the direct arguments of b: a single
// Args parameter gives keyword arguments, anything else positional ones.
// Every call is a call tree of its own, so calls from several goroutines
// wait on each other's singletons.
func (p *objectProvider) providerFunc(ic *injectionContext, b *binding, typ reflect.Type) (reflect.Value, error) {
	if typ.Kind() != reflect.Func || !isProviderFuncType(typ) {
		return reflect.Value{}, newError(KindWrongArgType,
			"provider of %s must be a func returning a value and optionally an error, not %v", b.key, typ).withContext(ic)
	}
	keyword := typ.NumIn() == 1 && typ.In(0) == _argsType
	out := typ.Out(0)

	fn := reflect.MakeFunc(typ, func(args []reflect.Value) []reflect.Value {
		var direct directArgs
		if keyword {
			direct.keyword, _ = args[0].Interface().(Args)
		} else {
			direct.positional = args
		}

		v, err := p.provideBinding(ic.inCallTree(newCallTree(ic.ctx)), b, direct)
		var rv reflect.Value
		if err == nil {
			rv, err = assignable(ic, v, out)
		}

		if typ.NumOut() == 1 {
			if err != nil {
				panic(err)
			}
			return []reflect.Value{rv}
		}
		errV := reflect.Zero(_errType)
		if err != nil {
			rv = reflect.Zero(out)
			errV = reflect.ValueOf(&err).Elem()
		}
		return []reflect.Value{rv, errV}
	})
	return fn, nil
}

func (p *objectProvider) provideClass(ic *injectionContext, c *class, direct directArgs) (interface{}, error) {
	return p.callInjectable(ic, c.ctor, direct)
}

// callInjectable calls inj with its injected parameters resolved in
// declaration order and its pass-through parameters filled from direct.
func (p *objectProvider) callInjectable(ic *injectionContext, inj *injectable, direct directArgs) (interface{}, error) {
	values := make([]reflect.Value, len(inj.params))
	if err := p.fillDirect(ic, inj, direct, values); err != nil {
		return nil, err
	}

	for i, prm := range inj.params {
		if !prm.injected() {
			continue
		}
		v, err := p.provideFromArgKey(ic.withSite(fmt.Sprintf("%s of %s", prm, inj.name)), prm.argKey(), prm.typ)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	v, err := inj.call(ic.ctx, values)
	if err != nil {
		return nil, userError(err, inj.name, ic)
	}
	return v, nil
}

// fillDirect stores the direct arguments in values.
func (p *objectProvider) fillDirect(ic *injectionContext, inj *injectable, direct directArgs, values []reflect.Value) error {
	passThrough := inj.passThroughParams()
	if direct.empty() {
		if len(passThrough) > 0 {
			return newError(KindOnlyInstantiableViaProviderFunction,
				"%s needs %s, which only a provider function can pass", inj.name, passThrough[0]).withContext(ic)
		}
		return nil
	}

	if len(direct.positional) > len(passThrough) {
		return newError(KindDirectlyPassingInjectedArgs,
			"%s takes %d pass-through argument(s), got %d", inj.name, len(passThrough), len(direct.positional)).withContext(ic)
	}
	for i, arg := range direct.positional {
		prm := passThrough[i]
		v, err := assignable(ic, arg.Interface(), prm.typ)
		if err != nil {
			return err
		}
		values[inj.index(prm)] = v
	}

	for name, arg := range direct.keyword {
		prm := inj.param(name)
		switch {
		case prm == nil:
			return newError(KindWrongArgType, "%s has no parameter %q", inj.name, name).withContext(ic)
		case prm.injected():
			return newError(KindDirectlyPassingInjectedArgs,
				"%s of %s is injected and cannot be passed directly", prm, inj.name).withContext(ic)
		}
		v, err := assignable(ic, arg, prm.typ)
		if err != nil {
			return err
		}
		values[inj.index(prm)] = v
	}
	return nil
}

// assignable converts v for a parameter of type typ.
func assignable(ic *injectionContext, v interface{}, typ reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(typ), nil
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(typ) {
		return reflect.Value{}, newError(KindWrongArgType,
			"cannot use %v as %v", rv.Type(), typ).withContext(ic)
	}
	return rv, nil
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// asError returns err as an *Error, wrapping it if needed.
func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindUnknown, Cause: err}
}
