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
	"context"
	"log/slog"

	"github.com/objectgraph/pinject/internal/pinjectreflect"
)

var _ Logger = (*SlogLogger)(nil)

// SlogLogger is a pinject event logger that logs events to a slog logger.
type SlogLogger struct {
	Logger *slog.Logger

	ctx        context.Context
	logLevel   slog.Level
	errorLevel *slog.Level
}

// UseContext sets the context passed to slog with every event.
func (l *SlogLogger) UseContext(ctx context.Context) {
	l.ctx = ctx
}

// UseLogLevel sets the level of non-error events. It defaults to
// slog.LevelInfo.
func (l *SlogLogger) UseLogLevel(level slog.Level) {
	l.logLevel = level
}

// UseErrorLevel sets the level of error events. It defaults to
// slog.LevelError.
func (l *SlogLogger) UseErrorLevel(level slog.Level) {
	l.errorLevel = &level
}

func (l *SlogLogger) context() context.Context {
	if l.ctx == nil {
		return context.Background()
	}
	return l.ctx
}

func (l *SlogLogger) logEvent(msg string, attrs ...any) {
	l.Logger.Log(l.context(), l.logLevel, msg, attrs...)
}

func (l *SlogLogger) logError(msg string, attrs ...any) {
	lvl := slog.LevelError
	if l.errorLevel != nil {
		lvl = *l.errorLevel
	}
	l.Logger.Log(l.context(), lvl, msg, attrs...)
}

// LogEvent logs the given event to the provided slog logger.
func (l *SlogLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Bound:
		l.logEvent("bound",
			slog.String("key", e.Key),
			slog.String("scope", e.Scope),
			slog.String("origin", e.Origin),
			slog.Bool("implicit", e.Implicit),
		)
	case *BindingSpecConfigured:
		if e.Err != nil {
			l.logError("binding spec failed",
				slog.String("spec", e.Spec),
				slogErr(e.Err))
		} else {
			l.logEvent("binding spec configured",
				slog.String("spec", e.Spec),
				slog.Int("bindings", e.Bindings))
		}
	case *GraphBuilt:
		if e.Err != nil {
			l.logError("object graph construction failed", slogErr(e.Err))
		} else {
			l.logEvent("object graph built",
				slog.Int("bindings", e.Bindings),
				slog.Int("ambiguous", e.Ambiguous),
				slog.String("runtime", e.Runtime.String()))
		}
	case *Provided:
		if e.Err != nil {
			l.logError("provide failed",
				slog.String("class", e.Class),
				slogErr(e.Err))
		} else {
			l.logEvent("provided",
				slog.String("class", e.Class),
				slog.String("runtime", e.Runtime.String()))
		}
	case *Wrapped:
		l.logEvent("wrapped",
			slog.String("function", pinjectreflect.FuncName(e.Function)))
	case *Invoked:
		if e.Err != nil {
			l.logError("invoke failed",
				slog.String("function", pinjectreflect.FuncName(e.Function)),
				slogErr(e.Err))
		} else {
			l.logEvent("invoked",
				slog.String("function", pinjectreflect.FuncName(e.Function)),
				slog.String("runtime", e.Runtime.String()))
		}
	}
}

func slogErr(err error) slog.Attr {
	return slog.String("error", err.Error())
}
