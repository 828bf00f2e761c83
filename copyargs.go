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

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// CopyArgsToFields copies the fields of a parameter object onto the
// same-named fields of dst, which must be a pointer to a struct. It spares
// constructors the assignments of
//
//	func NewServer(p ServerParams) *Server {
//		s := &Server{}
//		if err := pinject.CopyArgsToFields(s, p); err != nil {
//			panic(err)
//		}
//		return s
//	}
//
// Fields of args without a counterpart in dst are ignored.
func CopyArgsToFields(dst, args interface{}) error {
	dv := reflect.ValueOf(dst)
	if dst == nil || dv.Kind() != reflect.Ptr || dv.IsNil() || dv.Elem().Kind() != reflect.Struct {
		return newError(KindWrongArgType, "CopyArgsToFields needs a non-nil pointer to a struct, got %T", dst)
	}
	av := reflect.ValueOf(args)
	if av.Kind() == reflect.Ptr && !av.IsNil() {
		av = av.Elem()
	}
	if av.Kind() != reflect.Struct {
		return newError(KindWrongArgType, "CopyArgsToFields copies from a struct, got %T", args)
	}

	if err := copier.Copy(dst, av.Interface()); err != nil {
		return errors.Wrapf(err, "cannot copy %T onto %T", args, dst)
	}
	return nil
}
