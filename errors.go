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
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind classifies the failures reported by pinject.
type ErrorKind uint8

// Error kinds raised while building an object graph, while resolving
// dependencies, and while decorating user types.
const (
	KindUnknown ErrorKind = iota
	KindNothingInjectableForArg
	KindAmbiguousArgName
	KindCyclicInjection
	KindBadDependencyScope
	KindConflictingExplicitBindings
	KindMissingRequiredBinding
	KindConflictingRequiredBinding
	KindUnknownScope
	KindOverridingDefaultScope
	KindNoBindingTargetArgs
	KindMultipleBindingTargetArgs
	KindInvalidBindingTarget
	KindDuplicateDecorator
	KindEmptyProvidesDecorator
	KindDecoratorAppliedToNonInit
	KindNoSuchArgToInject
	KindMultipleAnnotationsForSameArg
	KindTooManyArgsToInjectDecorator
	KindNoRemainingArgsToInject
	KindEmptyBindingSpec
	KindInjectingNoneDisallowed
	KindNonExplicitlyBoundClass
	KindDirectlyPassingInjectedArgs
	KindOnlyInstantiableViaProviderFunction
	KindWrongArgType
	KindWrongArgElementType
)

var _kindNames = map[ErrorKind]string{
	KindUnknown:                             "unknown",
	KindNothingInjectableForArg:             "nothing injectable for arg",
	KindAmbiguousArgName:                    "ambiguous arg name",
	KindCyclicInjection:                     "cyclic injection",
	KindBadDependencyScope:                  "bad dependency scope",
	KindConflictingExplicitBindings:         "conflicting explicit bindings",
	KindMissingRequiredBinding:              "missing required binding",
	KindConflictingRequiredBinding:          "conflicting required binding",
	KindUnknownScope:                        "unknown scope",
	KindOverridingDefaultScope:              "overriding default scope",
	KindNoBindingTargetArgs:                 "no binding target args",
	KindMultipleBindingTargetArgs:           "multiple binding target args",
	KindInvalidBindingTarget:                "invalid binding target",
	KindDuplicateDecorator:                  "duplicate decorator",
	KindEmptyProvidesDecorator:              "empty provides decorator",
	KindDecoratorAppliedToNonInit:           "decorator applied to non-constructor",
	KindNoSuchArgToInject:                   "no such arg to inject",
	KindMultipleAnnotationsForSameArg:       "multiple annotations for same arg",
	KindTooManyArgsToInjectDecorator:        "too many args to inject decorator",
	KindNoRemainingArgsToInject:             "no remaining args to inject",
	KindEmptyBindingSpec:                    "empty binding spec",
	KindInjectingNoneDisallowed:             "injecting nil disallowed",
	KindNonExplicitlyBoundClass:             "non-explicitly bound class",
	KindDirectlyPassingInjectedArgs:         "directly passing injected args",
	KindOnlyInstantiableViaProviderFunction: "only instantiable via provider function",
	KindWrongArgType:                        "wrong arg type",
	KindWrongArgElementType:                 "wrong arg element type",
}

func (k ErrorKind) String() string {
	if name, ok := _kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Sentinels for use with errors.Is. An *Error matches a sentinel when their
// kinds are equal.
var (
	ErrNothingInjectableForArg             = &Error{Kind: KindNothingInjectableForArg}
	ErrAmbiguousArgName                    = &Error{Kind: KindAmbiguousArgName}
	ErrCyclicInjection                     = &Error{Kind: KindCyclicInjection}
	ErrBadDependencyScope                  = &Error{Kind: KindBadDependencyScope}
	ErrConflictingExplicitBindings         = &Error{Kind: KindConflictingExplicitBindings}
	ErrMissingRequiredBinding              = &Error{Kind: KindMissingRequiredBinding}
	ErrConflictingRequiredBinding          = &Error{Kind: KindConflictingRequiredBinding}
	ErrUnknownScope                        = &Error{Kind: KindUnknownScope}
	ErrOverridingDefaultScope              = &Error{Kind: KindOverridingDefaultScope}
	ErrNoBindingTargetArgs                 = &Error{Kind: KindNoBindingTargetArgs}
	ErrMultipleBindingTargetArgs           = &Error{Kind: KindMultipleBindingTargetArgs}
	ErrInvalidBindingTarget                = &Error{Kind: KindInvalidBindingTarget}
	ErrDuplicateDecorator                  = &Error{Kind: KindDuplicateDecorator}
	ErrEmptyProvidesDecorator              = &Error{Kind: KindEmptyProvidesDecorator}
	ErrDecoratorAppliedToNonInit           = &Error{Kind: KindDecoratorAppliedToNonInit}
	ErrNoSuchArgToInject                   = &Error{Kind: KindNoSuchArgToInject}
	ErrMultipleAnnotationsForSameArg       = &Error{Kind: KindMultipleAnnotationsForSameArg}
	ErrTooManyArgsToInjectDecorator        = &Error{Kind: KindTooManyArgsToInjectDecorator}
	ErrNoRemainingArgsToInject             = &Error{Kind: KindNoRemainingArgsToInject}
	ErrEmptyBindingSpec                    = &Error{Kind: KindEmptyBindingSpec}
	ErrInjectingNoneDisallowed             = &Error{Kind: KindInjectingNoneDisallowed}
	ErrNonExplicitlyBoundClass             = &Error{Kind: KindNonExplicitlyBoundClass}
	ErrDirectlyPassingInjectedArgs         = &Error{Kind: KindDirectlyPassingInjectedArgs}
	ErrOnlyInstantiableViaProviderFunction = &Error{Kind: KindOnlyInstantiableViaProviderFunction}
	ErrWrongArgType                        = &Error{Kind: KindWrongArgType}
	ErrWrongArgElementType                 = &Error{Kind: KindWrongArgElementType}
)

// Error is the error type returned by every pinject operation.
type Error struct {
	Kind    ErrorKind
	Message string

	// Site describes where the failing injection was requested, if known.
	Site string

	// Stack lists the bindings being resolved when the error occurred,
	// outermost first.
	Stack []string

	// Cause is the underlying error, if any.
	Cause error
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Site != "" {
		b.WriteString(" (at ")
		b.WriteString(e.Site)
		b.WriteString(")")
	}
	if len(e.Stack) > 0 {
		b.WriteString("; while providing ")
		b.WriteString(strings.Join(e.Stack, " -> "))
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// withContext records the injection site and binding stack on e unless an
// inner frame already did.
func (e *Error) withContext(ic *injectionContext) *Error {
	if ic == nil {
		return e
	}
	if e.Site == "" {
		e.Site = ic.site
	}
	if len(e.Stack) == 0 {
		e.Stack = ic.stackDescription()
	}
	return e
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// userError wraps an error returned by a user constructor or provider with
// the description of the callee.
func userError(err error, callee string, ic *injectionContext) error {
	wrapped := errors.Wrapf(err, "%s failed", callee)
	if ic != nil && len(ic.stack) > 0 {
		wrapped = errors.WithMessagef(wrapped, "while providing %s", strings.Join(ic.stackDescription(), " -> "))
	}
	return wrapped
}
