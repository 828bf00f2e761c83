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
	"regexp"
	"strings"
	"unicode"
)

var _camelPart = regexp.MustCompile(`^[A-Z][a-z]+`)

// DefaultClassNameToArgNames derives the implicit arg name of a class from
// its type name: one leading underscore is dropped, then CamelCase words are
// consumed from the start of the name and joined in snake_case.
//
//	FooBar      -> ["foo_bar"]
//	_Colliding  -> ["colliding"]
//	HTTPServer  -> []
//	fooBar      -> []
func DefaultClassNameToArgNames(className string) []string {
	rest := strings.TrimPrefix(className, "_")

	var parts []string
	for {
		part := _camelPart.FindString(rest)
		if part == "" {
			break
		}
		parts = append(parts, strings.ToLower(part))
		rest = rest[len(part):]
	}
	if len(parts) == 0 {
		return nil
	}
	return []string{strings.Join(parts, "_")}
}

// DefaultProviderFnNameToArgNames derives the arg name a provider method
// binds from its snake_case name by stripping the "provide_" prefix.
func DefaultProviderFnNameToArgNames(fnName string) []string {
	if !strings.HasPrefix(fnName, _providePrefix) {
		return nil
	}
	name := strings.TrimPrefix(fnName, _providePrefix)
	if name == "" {
		return nil
	}
	return []string{name}
}

// snakeCase converts a Go identifier to snake_case. Runs of capitals are
// kept together, so HTTPClient becomes http_client.
func snakeCase(ident string) string {
	runes := []rune(ident)

	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 && runes[i-1] != '_' {
			prev := runes[i-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextIsLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
