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
)

// Annotation distinguishes bindings that share an arg name. It wraps an
// opaque, comparable token chosen by the user.
type Annotation struct {
	token interface{}
}

// NoAnnotation is the annotation of bindings and parameters that carry none.
var NoAnnotation = Annotation{}

// NewAnnotation returns an annotation for token. A nil token yields
// NoAnnotation. The token must be comparable.
func NewAnnotation(token interface{}) (Annotation, error) {
	if token == nil {
		return NoAnnotation, nil
	}
	if !reflect.TypeOf(token).Comparable() {
		return NoAnnotation, newError(KindWrongArgType,
			"annotation %v of type %T is not comparable", token, token)
	}
	return Annotation{token: token}, nil
}

// Token returns the user token, or nil for NoAnnotation.
func (a Annotation) Token() interface{} { return a.token }

// IsZero reports whether a is NoAnnotation.
func (a Annotation) IsZero() bool { return a.token == nil }

func (a Annotation) String() string {
	if a.token == nil {
		return "unannotated"
	}
	return fmt.Sprintf("annotated with %v", a.token)
}

// BindingKey identifies a dependency: an arg name and an optional
// annotation.
type BindingKey struct {
	Name       string
	Annotation Annotation
}

// NewBindingKey returns the key for name annotated with token. A nil token
// means no annotation.
func NewBindingKey(name string, token interface{}) (BindingKey, error) {
	a, err := NewAnnotation(token)
	if err != nil {
		return BindingKey{}, err
	}
	return BindingKey{Name: name, Annotation: a}, nil
}

func (k BindingKey) String() string {
	return fmt.Sprintf("%q %s", k.Name, k.Annotation)
}

// classToken annotates the synthetic keys under which class instances are
// cached by their scope. id is the identity of the class.
type classToken struct{ id interface{} }

func (t classToken) String() string { return fmt.Sprintf("class %v", t.id) }

func classCacheKey(c *class) BindingKey {
	id := c.identity()
	return BindingKey{Name: fmt.Sprint(id), Annotation: Annotation{token: classToken{id}}}
}

// _providePrefix marks a parameter that receives a provider function rather
// than a value.
const _providePrefix = "provide_"

type indirection uint8

const (
	direct indirection = iota
	viaProvider
)

func (i indirection) String() string {
	if i == viaProvider {
		return "provider"
	}
	return "direct"
}

// argKey is the binding key a parameter asks for, and whether it asks for
// the value itself or for a function that provides it.
type argKey struct {
	key         BindingKey
	indirection indirection
}

func newArgKey(paramName string, annotation Annotation) argKey {
	if strings.HasPrefix(paramName, _providePrefix) {
		return argKey{
			key:         BindingKey{Name: strings.TrimPrefix(paramName, _providePrefix), Annotation: annotation},
			indirection: viaProvider,
		}
	}
	return argKey{
		key:         BindingKey{Name: paramName, Annotation: annotation},
		indirection: direct,
	}
}

func (k argKey) String() string {
	if k.indirection == viaProvider {
		return "provider of " + k.key.String()
	}
	return k.key.String()
}
