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
	"sort"
	"strings"

	"github.com/objectgraph/pinject/internal/pinjectclock"
	"github.com/objectgraph/pinject/internal/pinjectreflect"
	"github.com/objectgraph/pinject/pinjectevent"
)

// An Option configures an ObjectGraph.
type Option interface {
	fmt.Stringer

	apply(*config)
}

// config is the validated input of NewObjectGraph.
type config struct {
	modules []Module
	classes []interface{}
	specs   []interface{}

	onlyExplicit bool
	allowNone    bool

	classNames    func(string) []string
	providerNames func(string) []string

	scopes       map[ScopeID]Scope
	usable       ScopeUsableFromScopeFunc
	defaultScope ScopeID

	configureName    string
	dependenciesName string

	logger pinjectevent.Logger
	clock  pinjectclock.Clock

	// err is the first invalid option.
	err error
}

func newConfig(opts []Option) *config {
	c := &config{
		classNames:       DefaultClassNameToArgNames,
		providerNames:    DefaultProviderFnNameToArgNames,
		usable:           AllScopesUsable,
		defaultScope:     Singleton,
		configureName:    "Configure",
		dependenciesName: "Dependencies",
		logger:           pinjectevent.NopLogger,
		clock:            pinjectclock.System,
	}
	for _, opt := range opts {
		if opt == nil {
			c.fail(newError(KindWrongArgElementType, "options must not be nil"))
			continue
		}
		opt.apply(c)
	}
	return c
}

func (c *config) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Modules adds the classes listed by each module.
func Modules(mods ...Module) Option {
	return modulesOption(mods)
}

type modulesOption []Module

func (o modulesOption) apply(c *config) {
	for i, m := range o {
		if m == nil {
			c.fail(newError(KindWrongArgElementType, "module %d passed to Modules is nil", i))
			return
		}
	}
	c.modules = append(c.modules, o...)
}

func (o modulesOption) String() string {
	names := make([]string, len(o))
	for i, m := range o {
		if m == nil {
			names[i] = "<nil>"
			continue
		}
		names[i] = m.Name()
	}
	return fmt.Sprintf("pinject.Modules(%s)", strings.Join(names, ", "))
}

// Classes adds classes to the object graph. Each class is designated by a
// struct value, a pointer to a struct, a reflect.Type or a constructor
// function.
func Classes(classes ...interface{}) Option {
	return classesOption(classes)
}

type classesOption []interface{}

func (o classesOption) apply(c *config) {
	for _, cls := range o {
		if _, _, ok := classOf(cls); !ok {
			c.fail(newError(KindWrongArgElementType,
				"Classes accepts struct classes and constructors, got %T", cls))
			return
		}
	}
	c.classes = append(c.classes, o...)
}

func (o classesOption) String() string {
	return fmt.Sprintf("pinject.Classes(%s)", describeAll(o))
}

// BindingSpecs adds binding specs to the object graph.
//
// A binding spec is a struct value or pointer whose methods contribute
// bindings. Configure receives a BindFunc and optionally a RequireFunc;
// Dependencies returns more binding specs; every other method named
// Provide<Name> binds the arg name derived from its name to its result,
// injecting the fields of its parameter objects.
func BindingSpecs(specs ...interface{}) Option {
	return specsOption(specs)
}

type specsOption []interface{}

func (o specsOption) apply(c *config) {
	for _, spec := range o {
		if _, err := specValue(spec); err != nil {
			c.fail(err)
			return
		}
	}
	c.specs = append(c.specs, o...)
}

func (o specsOption) String() string {
	return fmt.Sprintf("pinject.BindingSpecs(%s)", describeAll(o))
}

func describeAll(vs []interface{}) string {
	descs := make([]string, len(vs))
	for i, v := range vs {
		if fn := reflect.ValueOf(v); fn.Kind() == reflect.Func {
			descs[i] = pinjectreflect.FuncName(v)
			continue
		}
		descs[i] = fmt.Sprintf("%T", v)
	}
	return strings.Join(descs, ", ")
}

// OnlyUseExplicitBindings disables implicit class bindings. Only classes
// marked with Injectable or Inject are bound by name and may be provided.
func OnlyUseExplicitBindings() Option { return onlyExplicitOption{} }

type onlyExplicitOption struct{}

func (onlyExplicitOption) apply(c *config) { c.onlyExplicit = true }

func (onlyExplicitOption) String() string { return "pinject.OnlyUseExplicitBindings()" }

// AllowInjectingNone permits provided values to be nil, including values
// returned through provider functions.
func AllowInjectingNone() Option { return allowNoneOption{} }

type allowNoneOption struct{}

func (allowNoneOption) apply(c *config) { c.allowNone = true }

func (allowNoneOption) String() string { return "pinject.AllowInjectingNone()" }

// ClassNameToArgNames replaces DefaultClassNameToArgNames.
func ClassNameToArgNames(f func(className string) []string) Option {
	return namingOption{f: f, class: true}
}

// ProviderFnNameToArgNames replaces DefaultProviderFnNameToArgNames. The
// function receives provider method names in snake_case.
func ProviderFnNameToArgNames(f func(fnName string) []string) Option {
	return namingOption{f: f}
}

type namingOption struct {
	f     func(string) []string
	class bool
}

func (o namingOption) apply(c *config) {
	if o.f == nil {
		c.fail(newError(KindWrongArgType, "%v needs a non-nil function", o))
		return
	}
	if o.class {
		c.classNames = o.f
	} else {
		c.providerNames = o.f
	}
}

func (o namingOption) String() string {
	if o.class {
		return fmt.Sprintf("pinject.ClassNameToArgNames(%s)", pinjectreflect.FuncName(o.f))
	}
	return fmt.Sprintf("pinject.ProviderFnNameToArgNames(%s)", pinjectreflect.FuncName(o.f))
}

// Scopes adds user scopes. The built-in Singleton and Prototype scopes
// cannot be replaced.
func Scopes(scopes map[ScopeID]Scope) Option { return scopesOption(scopes) }

type scopesOption map[ScopeID]Scope

func (o scopesOption) apply(c *config) {
	if c.scopes == nil {
		c.scopes = make(map[ScopeID]Scope, len(o))
	}
	for id, s := range o {
		if s == nil {
			c.fail(newError(KindWrongArgElementType, "scope %q passed to Scopes is nil", id))
			return
		}
		if v := reflect.ValueOf(s); v.Kind() == reflect.Ptr && v.IsNil() {
			c.fail(newError(KindWrongArgElementType, "scope %q passed to Scopes is a nil %T", id, s))
			return
		}
		c.scopes[id] = s
	}
}

func (o scopesOption) String() string {
	ids := make([]string, 0, len(o))
	for id := range o {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	return fmt.Sprintf("pinject.Scopes(%s)", strings.Join(ids, ", "))
}

// ScopeUsableFromScope sets the policy deciding whether a binding in one
// scope may be injected into something built in another. By default every
// scope is usable from every scope.
func ScopeUsableFromScope(f ScopeUsableFromScopeFunc) Option { return usableOption{f} }

type usableOption struct{ f ScopeUsableFromScopeFunc }

func (o usableOption) apply(c *config) {
	if o.f == nil {
		c.fail(newError(KindWrongArgType, "ScopeUsableFromScope needs a non-nil function"))
		return
	}
	c.usable = o.f
}

func (o usableOption) String() string {
	return fmt.Sprintf("pinject.ScopeUsableFromScope(%s)", pinjectreflect.FuncName(o.f))
}

// DefaultScope sets the scope of bindings that name none. It defaults to
// Singleton.
func DefaultScope(id ScopeID) Option { return defaultScopeOption(id) }

type defaultScopeOption ScopeID

func (o defaultScopeOption) apply(c *config) {
	if o == "" {
		c.fail(newError(KindWrongArgType, "DefaultScope needs a scope id"))
		return
	}
	c.defaultScope = ScopeID(o)
}

func (o defaultScopeOption) String() string {
	return fmt.Sprintf("pinject.DefaultScope(%q)", string(o))
}

// ConfigureMethodName changes the name of the binding spec method that
// receives BindFunc. It defaults to "Configure".
func ConfigureMethodName(name string) Option { return methodNameOption{name: name, configure: true} }

// DependenciesMethodName changes the name of the binding spec method that
// returns other binding specs. It defaults to "Dependencies".
func DependenciesMethodName(name string) Option { return methodNameOption{name: name} }

type methodNameOption struct {
	name      string
	configure bool
}

func (o methodNameOption) apply(c *config) {
	if o.name == "" {
		c.fail(newError(KindWrongArgType, "%v needs a method name", o))
		return
	}
	if o.configure {
		c.configureName = o.name
	} else {
		c.dependenciesName = o.name
	}
}

func (o methodNameOption) String() string {
	if o.configure {
		return fmt.Sprintf("pinject.ConfigureMethodName(%q)", o.name)
	}
	return fmt.Sprintf("pinject.DependenciesMethodName(%q)", o.name)
}

// WithLogger sends the events of the object graph to logger.
func WithLogger(logger pinjectevent.Logger) Option { return loggerOption{logger} }

type loggerOption struct{ logger pinjectevent.Logger }

func (o loggerOption) apply(c *config) {
	if o.logger == nil {
		c.fail(newError(KindWrongArgType, "WithLogger needs a non-nil logger"))
		return
	}
	c.logger = o.logger
}

func (o loggerOption) String() string {
	return fmt.Sprintf("pinject.WithLogger(%T)", o.logger)
}

// withClock sets the clock event runtimes are measured with.
func withClock(clock pinjectclock.Clock) Option { return clockOption{clock} }

type clockOption struct{ clock pinjectclock.Clock }

func (o clockOption) apply(c *config) { c.clock = o.clock }

func (o clockOption) String() string { return fmt.Sprintf("withClock(%v)", o.clock) }
