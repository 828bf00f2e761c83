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
)

// injectionContext is the state of one branch of a resolution call tree:
// the bindings being resolved, outermost first, and the scope the innermost
// one lives in. It is immutable; child returns a new context.
type injectionContext struct {
	ctx    context.Context
	stack  []*binding
	scope  ScopeID
	site   string
	usable ScopeUsableFromScopeFunc
}

// newRootContext starts a call tree. ctx must already carry an owner token.
func newRootContext(ctx context.Context, site string, usable ScopeUsableFromScopeFunc) *injectionContext {
	if usable == nil {
		usable = AllScopesUsable
	}
	return &injectionContext{ctx: ctx, scope: _unscoped, site: site, usable: usable}
}

// child returns the context in which b is built.
func (ic *injectionContext) child(b *binding) (*injectionContext, error) {
	for _, other := range ic.stack {
		if other == b {
			return nil, newError(KindCyclicInjection, "%s depends on itself", b.key).withContext(ic)
		}
	}
	if !ic.usable(b.scope, ic.scope) {
		return nil, newError(KindBadDependencyScope,
			"%s in scope %q is not usable from scope %q", b.key, b.scope, ic.scope).withContext(ic)
	}

	stack := make([]*binding, len(ic.stack), len(ic.stack)+1)
	copy(stack, ic.stack)
	return &injectionContext{
		ctx:    ic.ctx,
		stack:  append(stack, b),
		scope:  b.scope,
		site:   ic.site,
		usable: ic.usable,
	}, nil
}

// withSite returns a copy of ic whose injection site is site.
func (ic *injectionContext) withSite(site string) *injectionContext {
	c := *ic
	c.site = site
	return &c
}

// inCallTree returns a copy of ic that resolves within ctx.
func (ic *injectionContext) inCallTree(ctx context.Context) *injectionContext {
	c := *ic
	c.ctx = ctx
	return &c
}

func (ic *injectionContext) stackDescription() []string {
	descs := make([]string, len(ic.stack))
	for i, b := range ic.stack {
		descs[i] = b.key.String()
	}
	return descs
}

func (ic *injectionContext) String() string {
	return fmt.Sprintf("injection context in scope %q at %s", ic.scope, ic.site)
}
