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

	"github.com/objectgraph/pinject/internal/pinjectreflect"
)

// In may be embedded into structs to mark them as parameter objects. Each
// exported field of a parameter object accepted by a constructor or provider
// function is injected as if it were a parameter of the function.
//
//	type HandlerParams struct {
//		pinject.In
//
//		Logger      *zap.Logger
//		ProvideConn func() *sql.Conn
//		Retries     int `inject:"-"`
//	}
//
//	func NewHandler(p HandlerParams) *Handler { ... }
//
// Field names become parameter names in snake_case (ProvideConn is
// provide_conn); the `inject:"name"` tag overrides the derived name and
// `inject:"-"` marks a field that has a default and is never injected. The
// `annotated:"token"` tag requests the binding annotated with token.
//
// Struct classes that are built without a constructor function need no In:
// their exported fields are their parameters.
type In struct{}

// Args holds keyword arguments passed to a provider function. A provider
// parameter of type func(pinject.Args) T forwards its argument to the
// pass-through parameters of the binding it provides.
type Args map[string]interface{}

var (
	_inType      = reflect.TypeOf(In{})
	_argsType    = reflect.TypeOf(Args(nil))
	_errType     = reflect.TypeOf((*error)(nil)).Elem()
	_contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
)

// param is one parameter of an injectable.
type param struct {
	// name is the snake_case parameter name; empty for positional
	// parameters of functions.
	name       string
	typ        reflect.Type
	annotation Annotation

	// hasDefault parameters are never injected.
	hasDefault bool

	// passThrough parameters are not injected; they receive the direct
	// arguments of a provider function call.
	passThrough bool

	// slot is the index of the function parameter holding this parameter;
	// field is the index within the parameter object, or -1 if the function
	// parameter is the parameter itself.
	slot  int
	field int
}

func (p *param) injected() bool { return !p.hasDefault && !p.passThrough }

func (p *param) argKey() argKey { return newArgKey(p.name, p.annotation) }

func (p *param) String() string {
	if p.name == "" {
		return fmt.Sprintf("positional parameter %d (%v)", p.slot, p.typ)
	}
	return fmt.Sprintf("parameter %q", p.name)
}

type slotKind uint8

const (
	slotObject slotKind = iota
	slotPositional
	slotContext
)

// slot is one parameter of a function as Go sees it.
type slot struct {
	kind slotKind
	typ  reflect.Type
}

// injectable is something pinject calls with injected arguments: a struct
// class, whose exported fields are assigned, or a function.
type injectable struct {
	name string

	// key identifies the injectable in the decorator side table.
	key interface{}

	// structType is set for struct classes, fn for everything else.
	structType reflect.Type
	fn         reflect.Value

	slots      []slot
	params     []*param
	returnsErr bool

	// explicit is set when the injectable was decorated with Injectable or
	// Inject.
	explicit bool
}

func isParamObject(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == _inType {
			return true
		}
	}
	return false
}

// objectParams lists the parameters carried by the fields of t.
func objectParams(t reflect.Type, slot int) ([]*param, error) {
	var params []*param
	seen := make(map[string]string)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == _inType {
			continue
		}
		if f.PkgPath != "" {
			// Unexported fields cannot be set and keep their zero value.
			continue
		}

		p := &param{name: snakeCase(f.Name), typ: f.Type, slot: slot, field: i}
		switch tag := f.Tag.Get("inject"); tag {
		case "":
		case "-":
			p.hasDefault = true
		default:
			p.name = tag
		}
		if tok, ok := f.Tag.Lookup("annotated"); ok {
			p.annotation = Annotation{token: tok}
		}

		if other, ok := seen[p.name]; ok {
			return nil, newError(KindWrongArgType,
				"fields %s and %s of %v both declare parameter %q", other, f.Name, t, p.name)
		}
		seen[p.name] = f.Name
		params = append(params, p)
	}
	return params, nil
}

func newStructInjectable(t reflect.Type) (*injectable, error) {
	inj, err := inspectStruct(t)
	if err != nil {
		return nil, err
	}
	return inj, inj.applyMetadata(lookupMetadata(t))
}

// newFuncInjectable introspects fn. key is the decorator side table key of
// fn, which differs from its symbol for methods bound to a receiver.
func newFuncInjectable(fn reflect.Value, name string, key interface{}) (*injectable, error) {
	inj, err := inspectFunc(fn, name, key)
	if err != nil {
		return nil, err
	}
	return inj, inj.applyMetadata(lookupMetadata(key))
}

// inspectStruct and inspectFunc list the declared parameters of a target
// without consulting decorator metadata.
func inspectStruct(t reflect.Type) (*injectable, error) {
	params, err := objectParams(t, 0)
	if err != nil {
		return nil, err
	}
	return &injectable{
		name:       pinjectreflect.TypeName(t),
		key:        t,
		structType: t,
		slots:      []slot{{kind: slotObject, typ: t}},
		params:     params,
	}, nil
}

func inspectFunc(fn reflect.Value, name string, key interface{}) (*injectable, error) {
	ft := fn.Type()
	inj := &injectable{name: name, key: key, fn: fn}

	seen := make(map[string]bool)
	for i := 0; i < ft.NumIn(); i++ {
		in := ft.In(i)
		switch {
		case in == _contextType:
			inj.slots = append(inj.slots, slot{kind: slotContext, typ: in})
		case isParamObject(in):
			inj.slots = append(inj.slots, slot{kind: slotObject, typ: in})
			params, err := objectParams(in, i)
			if err != nil {
				return nil, err
			}
			for _, p := range params {
				if seen[p.name] {
					return nil, newError(KindWrongArgType,
						"parameter %q of %s is declared twice", p.name, name)
				}
				seen[p.name] = true
			}
			inj.params = append(inj.params, params...)
		default:
			inj.slots = append(inj.slots, slot{kind: slotPositional, typ: in})
			inj.params = append(inj.params, &param{typ: in, slot: i, field: -1, passThrough: true})
		}
	}

	if n := ft.NumOut(); n > 0 && ft.Out(n-1) == _errType {
		inj.returnsErr = true
	}
	return inj, nil
}

func (inj *injectable) applyMetadata(md *metadata) error {
	if md == nil {
		return nil
	}
	inj.explicit = md.explicit()

	for name, a := range md.annotations {
		p := inj.param(name)
		if p == nil {
			return newError(KindNoSuchArgToInject, "cannot annotate %q: %s has no such parameter", name, inj.name)
		}
		if !p.annotation.IsZero() {
			return newError(KindMultipleAnnotationsForSameArg,
				"parameter %q of %s is both %s and %s", name, inj.name, p.annotation, a)
		}
		p.annotation = a
	}

	for _, name := range md.passThroughNames(inj.injectableNames()) {
		if p := inj.param(name); p != nil {
			p.passThrough = true
		}
	}
	return nil
}

// param returns the named parameter, if any.
func (inj *injectable) param(name string) *param {
	for _, p := range inj.params {
		if p.name != "" && p.name == name {
			return p
		}
	}
	return nil
}

func (inj *injectable) index(p *param) int {
	for i, other := range inj.params {
		if other == p {
			return i
		}
	}
	return -1
}

// injectableNames lists the named parameters that have no default.
func (inj *injectable) injectableNames() []string {
	var names []string
	for _, p := range inj.params {
		if p.name != "" && !p.hasDefault {
			names = append(names, p.name)
		}
	}
	return names
}

// passThroughParams lists the parameters direct arguments are assigned to,
// in declaration order.
func (inj *injectable) passThroughParams() []*param {
	var params []*param
	for _, p := range inj.params {
		if p.passThrough {
			params = append(params, p)
		}
	}
	return params
}

// call invokes the injectable. values is indexed like inj.params; invalid
// entries leave the parameter at its zero value.
func (inj *injectable) call(ctx context.Context, values []reflect.Value) (interface{}, error) {
	if inj.structType != nil {
		obj := reflect.New(inj.structType)
		for i, p := range inj.params {
			if values[i].IsValid() {
				obj.Elem().Field(p.field).Set(values[i])
			}
		}
		return obj.Interface(), nil
	}

	results := inj.invoke(ctx, values)
	if inj.returnsErr {
		if err, _ := results[len(results)-1].Interface().(error); err != nil {
			return nil, err
		}
		results = results[:len(results)-1]
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0].Interface(), nil
}

// invoke calls the function and returns its raw results.
func (inj *injectable) invoke(ctx context.Context, values []reflect.Value) []reflect.Value {
	args := make([]reflect.Value, len(inj.slots))
	for i, s := range inj.slots {
		switch s.kind {
		case slotObject:
			args[i] = reflect.New(s.typ).Elem()
		case slotContext:
			if ctx == nil {
				ctx = context.Background()
			}
			args[i] = reflect.ValueOf(&ctx).Elem()
		default:
			args[i] = reflect.Zero(s.typ)
		}
	}
	for i, p := range inj.params {
		if !values[i].IsValid() {
			continue
		}
		if p.field < 0 {
			args[p.slot] = values[i]
		} else {
			args[p.slot].Field(p.field).Set(values[i])
		}
	}

	if inj.fn.Type().IsVariadic() {
		return inj.fn.CallSlice(args)
	}
	return inj.fn.Call(args)
}

// classOf interprets a class designator: a struct value, a pointer to a
// struct, a reflect.Type of either, or a constructor function returning a
// pointer to a struct and optionally an error. It returns the struct type
// and, for constructor functions, the function.
func classOf(cls interface{}) (reflect.Type, reflect.Value, bool) {
	if cls == nil {
		return nil, reflect.Value{}, false
	}
	if t, ok := cls.(reflect.Type); ok {
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		return t, reflect.Value{}, t.Kind() == reflect.Struct
	}

	v := reflect.ValueOf(cls)
	t := v.Type()
	if t.Kind() == reflect.Func {
		if v.IsNil() || !isConstructorType(t) {
			return nil, reflect.Value{}, false
		}
		return t.Out(0).Elem(), v, true
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t, reflect.Value{}, t.Kind() == reflect.Struct
}

func isConstructorType(t reflect.Type) bool {
	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != _errType {
			return false
		}
	default:
		return false
	}
	out := t.Out(0)
	return out.Kind() == reflect.Ptr && out.Elem().Kind() == reflect.Struct
}

// isProviderFuncType reports whether t can be called for a value: it returns
// one value, optionally followed by an error.
func isProviderFuncType(t reflect.Type) bool {
	switch t.NumOut() {
	case 1:
		return t.Out(0) != _errType
	case 2:
		return t.Out(1) == _errType
	default:
		return false
	}
}

// class is a struct type pinject knows how to build.
type class struct {
	typ  reflect.Type
	ctor *injectable
}

func newClass(cls interface{}) (*class, bool, error) {
	t, ctor, ok := classOf(cls)
	if !ok {
		return nil, false, nil
	}

	var (
		inj *injectable
		err error
	)
	if ctor.IsValid() {
		symbol := pinjectreflect.FuncSymbol(ctor.Interface())
		inj, err = newFuncInjectable(ctor, pinjectreflect.FuncName(ctor.Interface()), symbol)
	} else {
		inj, err = newStructInjectable(t)
	}
	if err != nil {
		return nil, true, err
	}
	return &class{typ: t, ctor: inj}, true, nil
}

// identity tells classes apart: a struct class is its type, a constructor
// class its constructor, so two constructors of one type are two classes.
func (c *class) identity() interface{} {
	if c.ctor.fn.IsValid() {
		return c.ctor.key
	}
	return c.typ
}

// Name is the Go type name of the class, the input of ClassNameToArgNames.
func (c *class) Name() string { return c.typ.Name() }

func (c *class) String() string { return pinjectreflect.TypeName(c.typ) }
