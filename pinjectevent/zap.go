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

package pinjectevent

import (
	"github.com/objectgraph/pinject/internal/pinjectreflect"
	"go.uber.org/zap"
)

// ZapLogger is a pinject event logger that logs events to Zap.
type ZapLogger struct {
	Logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// LogEvent logs the given event to the provided Zap logger.
func (l *ZapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Bound:
		l.Logger.Debug("bound",
			zap.String("key", e.Key),
			zap.String("scope", e.Scope),
			zap.String("origin", e.Origin),
			zap.Bool("implicit", e.Implicit),
		)
	case *BindingSpecConfigured:
		if e.Err != nil {
			l.Logger.Error("binding spec failed",
				zap.String("spec", e.Spec),
				zap.Error(e.Err))
		} else {
			l.Logger.Info("binding spec configured",
				zap.String("spec", e.Spec),
				zap.Int("bindings", e.Bindings))
		}
	case *GraphBuilt:
		if e.Err != nil {
			l.Logger.Error("object graph construction failed", zap.Error(e.Err))
		} else {
			l.Logger.Info("object graph built",
				zap.Int("bindings", e.Bindings),
				zap.Int("ambiguous", e.Ambiguous),
				zap.String("runtime", e.Runtime.String()))
		}
	case *Provided:
		if e.Err != nil {
			l.Logger.Error("provide failed",
				zap.String("class", e.Class),
				zap.Error(e.Err))
		} else {
			l.Logger.Info("provided",
				zap.String("class", e.Class),
				zap.String("runtime", e.Runtime.String()))
		}
	case *Wrapped:
		l.Logger.Info("wrapped",
			zap.String("function", pinjectreflect.FuncName(e.Function)))
	case *Invoked:
		if e.Err != nil {
			l.Logger.Error("invoke failed",
				zap.String("function", pinjectreflect.FuncName(e.Function)),
				zap.Error(e.Err))
		} else {
			l.Logger.Info("invoked",
				zap.String("function", pinjectreflect.FuncName(e.Function)),
				zap.String("runtime", e.Runtime.String()))
		}
	}
}
