// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package clog provides context aware logging.
// It stores labels (scan id, build unit, file) in each context and
// renders them in front of every log entry, so log lines emitted while
// analyzing a build unit can be attributed to it without plumbing.
package clog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/logging"
	"github.com/golang/glog"
)

type contextKeyType int

var contextKey contextKeyType

// DefaultFormatter renders labels as "k=v" pairs sorted by key, followed by payload.
func DefaultFormatter(e logging.Entry) string {
	if len(e.Labels) == 0 {
		return fmt.Sprintf("%v", e.Payload)
	}
	keys := make([]string, 0, len(e.Labels))
	for k := range e.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s=%s ", k, e.Labels[k])
	}
	fmt.Fprintf(&sb, "%v", e.Payload)
	return sb.String()
}

var defaultLogger = &Logger{Formatter: DefaultFormatter}

// New creates a new Logger.
func New() *Logger {
	return &Logger{
		Formatter: DefaultFormatter,
	}
}

// NewContext sets the given logger to the context.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey, logger)
}

// FromContext returns a logger in the context, or the default logger if it's not set.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey).(*Logger)
	if !ok || logger == nil {
		return defaultLogger
	}
	return logger
}

// With returns a context whose logger carries an additional label.
func With(ctx context.Context, key, value string) context.Context {
	return NewContext(ctx, FromContext(ctx).With(key, value))
}

// Logger holds labels of the context.
// It also can have custom formatter to generate a log content.
type Logger struct {
	// Formatter is a formatter of the entry for glog.
	// Default to DefaultFormatter.
	Formatter func(e logging.Entry) string

	labels map[string]string
}

// With returns a sub logger with key=value added to its labels.
func (l *Logger) With(key, value string) *Logger {
	labels := make(map[string]string, len(l.labels)+1)
	for k, v := range l.labels {
		labels[k] = v
	}
	labels[key] = value
	return &Logger{
		Formatter: l.Formatter,
		labels:    labels,
	}
}

// Labels returns a copy of labels of the logger.
func (l *Logger) Labels() map[string]string {
	m := make(map[string]string, len(l.labels))
	for k, v := range l.labels {
		m[k] = v
	}
	return m
}

func (l *Logger) log(e logging.Entry) {
	format := l.Formatter
	if format == nil {
		format = DefaultFormatter
	}
	msg := format(e)
	switch e.Severity {
	case logging.Info:
		glog.InfoDepth(2, msg)
	case logging.Warning:
		glog.WarningDepth(2, msg)
	case logging.Error:
		glog.ErrorDepth(2, msg)
	case logging.Critical:
		glog.FatalDepth(2, msg)
	default:
		glog.InfoDepth(2, fmt.Sprintf("%s %s", e.Severity, msg))
	}
}

// Entry creates a new log entry for the given severity.
func (l *Logger) Entry(severity logging.Severity, payload any) logging.Entry {
	return logging.Entry{
		Timestamp: time.Now(),
		Severity:  severity,
		Payload:   payload,
		Labels:    l.labels,
	}
}

// Infof logs at info log level in the manner of fmt.Printf.
func (l *Logger) Infof(format string, args ...any) {
	l.log(l.Entry(logging.Info, fmt.Sprintf(format, args...)))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func (l *Logger) Warningf(format string, args ...any) {
	l.log(l.Entry(logging.Warning, fmt.Sprintf(format, args...)))
}

// Errorf logs at error log level in the manner of fmt.Printf.
func (l *Logger) Errorf(format string, args ...any) {
	l.log(l.Entry(logging.Error, fmt.Sprintf(format, args...)))
}

// Fatalf logs at fatal log level in the manner of fmt.Printf with stacktrace, and exit.
func (l *Logger) Fatalf(format string, args ...any) {
	l.log(l.Entry(logging.Critical, fmt.Sprintf(format, args...)))
}

// V checks at verbose log level.
func (l *Logger) V(level int) bool {
	return bool(glog.V(glog.Level(level)))
}

// Infof logs at info log level in the manner of fmt.Printf.
func Infof(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.log(logger.Entry(logging.Info, fmt.Sprintf(format, args...)))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func Warningf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.log(logger.Entry(logging.Warning, fmt.Sprintf(format, args...)))
}

// Errorf logs at error log level in the manner of fmt.Printf.
func Errorf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.log(logger.Entry(logging.Error, fmt.Sprintf(format, args...)))
}

// Fatalf logs at fatal log level in the manner of fmt.Printf with stacktrace, and exit.
func Fatalf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.log(logger.Entry(logging.Critical, fmt.Sprintf(format, args...)))
}

// Close flushes log entries.
func Close() {
	glog.Flush()
}
