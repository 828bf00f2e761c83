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
	"strings"

	"github.com/objectgraph/pinject/internal/pinjectreflect"
	"github.com/objectgraph/pinject/pinjectevent"
)

var (
	_bindFuncType    = reflect.TypeOf(BindFunc(nil))
	_requireFuncType = reflect.TypeOf(RequireFunc(nil))
	_specListType    = reflect.TypeOf([]interface{}(nil))
)

// specProcessor walks binding specs and collects their bindings.
type specProcessor struct {
	configureName    string
	dependenciesName string
	providerNames    func(string) []string
	defaultScope     ScopeID
	log              pinjectevent.Logger
}

type specResult struct {
	bindings []*binding
	required []requiredBinding
}

// process visits specs and their dependencies breadth first. A spec reached
// twice is processed once, unless it holds values that cannot be compared.
func (sp *specProcessor) process(specs []interface{}) (*specResult, error) {
	res := new(specResult)
	seen := make(map[interface{}]struct{})

	queue := append([]interface{}(nil), specs...)
	for len(queue) > 0 {
		spec := queue[0]
		queue = queue[1:]

		if reflect.ValueOf(spec).Comparable() {
			if _, ok := seen[spec]; ok {
				continue
			}
			seen[spec] = struct{}{}
		}

		before := len(res.bindings)
		deps, err := sp.visit(spec, res)
		sp.log.LogEvent(&pinjectevent.BindingSpecConfigured{
			Spec:     pinjectreflect.TypeName(reflect.TypeOf(spec)),
			Bindings: len(res.bindings) - before,
			Err:      err,
		})
		if err != nil {
			return nil, err
		}
		queue = append(queue, deps...)
	}
	return res, nil
}

// visit collects the bindings of one spec and returns its dependencies.
func (sp *specProcessor) visit(spec interface{}, res *specResult) ([]interface{}, error) {
	v, err := specValue(spec)
	if err != nil {
		return nil, err
	}
	name := pinjectreflect.TypeName(v.Type())

	configure := v.MethodByName(sp.configureName)
	dependencies := v.MethodByName(sp.dependenciesName)

	if configure.IsValid() {
		if err := sp.configure(name, configure, res); err != nil {
			return nil, err
		}
	}

	var deps []interface{}
	if dependencies.IsValid() {
		if deps, err = sp.dependencies(name, dependencies); err != nil {
			return nil, err
		}
	}

	n, err := sp.providerMethods(v, res)
	if err != nil {
		return nil, err
	}

	if !configure.IsValid() && !dependencies.IsValid() && n == 0 {
		return nil, newError(KindEmptyBindingSpec,
			"%s has no %s method, no %s method and no provider methods", name, sp.configureName, sp.dependenciesName)
	}
	return deps, nil
}

// specValue returns a pointer to spec so that methods with either receiver
// kind are found.
func specValue(spec interface{}) (reflect.Value, error) {
	v := reflect.ValueOf(spec)
	switch {
	case v.Kind() == reflect.Ptr && !v.IsNil() && v.Elem().Kind() == reflect.Struct:
		return v, nil
	case v.Kind() == reflect.Struct:
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		return p, nil
	default:
		return reflect.Value{}, newError(KindWrongArgElementType,
			"binding specs must be structs or non-nil pointers to structs, got %T", spec)
	}
}

func (sp *specProcessor) configure(name string, m reflect.Value, res *specResult) error {
	mt := m.Type()
	withRequire := mt.NumIn() == 2 && mt.In(1) == _requireFuncType
	validIn := mt.NumIn() >= 1 && mt.In(0) == _bindFuncType && (mt.NumIn() == 1 || withRequire)
	validOut := mt.NumOut() == 0 || (mt.NumOut() == 1 && mt.Out(0) == _errType)
	if !validIn || !validOut {
		return newError(KindWrongArgType,
			"%s.%s must be func(pinject.BindFunc[, pinject.RequireFunc]) [error], not %v", name, sp.configureName, mt)
	}

	b := &binder{defaultScope: sp.defaultScope}
	args := []reflect.Value{reflect.ValueOf(BindFunc(b.bind))}
	if withRequire {
		args = append(args, reflect.ValueOf(RequireFunc(b.require)))
	}

	out := m.Call(args)
	if len(out) == 1 {
		if err, _ := out[0].Interface().(error); err != nil {
			return userError(err, name+"."+sp.configureName, nil)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.errs != nil {
		return b.errs
	}
	res.bindings = append(res.bindings, b.bindings...)
	res.required = append(res.required, b.required...)
	return nil
}

func (sp *specProcessor) dependencies(name string, m reflect.Value) ([]interface{}, error) {
	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() != 1 || mt.Out(0) != _specListType {
		return nil, newError(KindWrongArgType,
			"%s.%s must be func() []interface{}, not %v", name, sp.dependenciesName, mt)
	}
	deps, _ := m.Call(nil)[0].Interface().([]interface{})
	for _, d := range deps {
		if d == nil {
			return nil, newError(KindWrongArgElementType, "%s.%s returned a nil binding spec", name, sp.dependenciesName)
		}
	}
	return deps, nil
}

// providerMethods binds the provider methods of the binding spec behind v and
// returns the number of bindings they contributed.
func (sp *specProcessor) providerMethods(v reflect.Value, res *specResult) (int, error) {
	t := v.Type()

	var n int
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if m.Name == sp.configureName || m.Name == sp.dependenciesName {
			continue
		}

		symbol := pinjectreflect.MethodSymbol(t, m.Name)
		var opts providesOptions
		if md := lookupMetadata(symbol); md != nil {
			opts = md.provides
		}
		decorated := opts.hasArgName || opts.hasAnnotation || opts.hasScope

		fnName := snakeCase(m.Name)
		if !decorated && !strings.HasPrefix(fnName, _providePrefix) {
			continue
		}

		names := sp.providerNames(fnName)
		if opts.hasArgName {
			names = []string{opts.argName}
		}
		if len(names) == 0 {
			continue
		}

		method := v.Method(i)
		if !isProviderFuncType(method.Type()) {
			return n, newError(KindWrongArgType,
				"provider method %s must return a value and optionally an error, not %v", symbol, method.Type())
		}
		inj, err := newFuncInjectable(method, fmt.Sprintf("%s()", symbol), symbol)
		if err != nil {
			return n, err
		}

		scope := sp.defaultScope
		if opts.hasScope {
			scope = opts.scope
		}
		origin := fmt.Sprintf("%s()", symbol)
		for _, name := range names {
			res.bindings = append(res.bindings,
				newFuncBinding(BindingKey{Name: name, Annotation: opts.annotation}, inj, scope, origin))
			n++
		}
	}
	return n, nil
}
