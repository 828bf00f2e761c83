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

// Package pinject builds object graphs by reflection.
//
// An ObjectGraph knows a set of classes, struct types it can instantiate, and
// a set of bindings from arg names to the values injected for them. A class
// is requested with Provide; pinject allocates it and fills each of its
// exported fields with the value bound to the field's name in snake_case,
// recursively providing whatever that value needs.
//
//	type Database struct{ DSN string `inject:"-"` }
//
//	type UserStore struct {
//		Database *Database
//	}
//
//	graph, err := pinject.NewObjectGraph(pinject.Classes(Database{}, UserStore{}))
//	...
//	store, err := pinject.ProvideAs[*UserStore](graph)
//
// # Bindings
//
// Every class is implicitly bound to the arg name derived from its type
// name, so UserStore is injected into fields named UserStore (user_store).
// Two classes deriving the same name make that name ambiguous, which is only
// an error if something asks for it.
//
// Binding specs declare explicit bindings, which take precedence over
// implicit ones. The Configure method of a spec receives a BindFunc; its
// Provide methods bind the arg name they are named after.
//
//	type StorageSpec struct{}
//
//	func (StorageSpec) Configure(bind pinject.BindFunc) {
//		bind("database", pinject.ToClass(Database{}))
//	}
//
//	func (StorageSpec) ProvideDSN() string { return "postgres://" }
//
// Annotations distinguish bindings that share an arg name. Struct fields ask
// for an annotated binding with the `annotated` tag.
//
// # Provider functions
//
// A field whose name starts with Provide, like ProvideConn, receives a
// function providing the binding of the rest of its name instead of a value.
// Each call resolves the binding again, so prototype-scoped bindings yield a
// new value every time. Arguments of the function fill the parameters that
// injection leaves to the caller, as selected with Inject. The function may
// be called from several goroutines; a singleton is still built once.
//
// # Scopes
//
// Bindings live in the Singleton scope unless InScope or DefaultScope says
// otherwise. Prototype creates a value per injection; user scopes implement
// Scope. ScopeUsableFromScope restricts which scopes may be injected into
// which.
//
// # Constructors
//
// Classes may also be given by constructor functions returning a pointer to
// the struct and optionally an error. Their parameters are declared as the
// fields of parameter objects, structs embedding In. Each constructor is a
// class of its own, so two constructors of one struct type yield separate
// singletons.
//
//	type UserStoreParams struct {
//		pinject.In
//
//		Database *Database
//	}
//
//	func NewUserStore(p UserStoreParams) (*UserStore, error) { ... }
package pinject
