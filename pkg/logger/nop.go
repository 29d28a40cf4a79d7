package logger

import "context"

// Nop returns a Logger that discards everything. Components use it as their
// default so they can be built before Init runs (e.g. in tests).
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...Field)  {}
func (nopLogger) Error(context.Context, string, ...Field) {}
func (nopLogger) Debug(context.Context, string, ...Field) {}
func (nopLogger) Warn(context.Context, string, ...Field)  {}
func (n nopLogger) Named(string) Logger                   { return n }
