// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package trace manages execution traces of a scan.
package trace

import (
	"context"
	"sync"
	"time"

	log "github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/williamjshipman/cppsbom/o11y/clog"
)

// Context is a trace context for one scan.
type Context struct {
	id uuid.UUID

	mu sync.Mutex
	// first span is the top span in the trace.
	spans []*Span
}

// New creates a new trace context with a random id.
func New(ctx context.Context) *Context {
	id := uuid.New()
	if log.V(2) {
		clog.Infof(ctx, "new trace context %s", id)
	}
	return &Context{id: id}
}

// ID returns the trace id.
func (t *Context) ID() string {
	if t == nil {
		return ""
	}
	return t.id.String()
}

// Spans returns span data in the trace context, in creation order.
func (t *Context) Spans() []SpanData {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	data := make([]SpanData, 0, len(t.spans))
	for _, s := range t.spans {
		data = append(data, s.data())
	}
	return data
}

func (t *Context) newSpan(ctx context.Context, name string, parent *Span) *Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	if parent == nil && len(t.spans) > 0 {
		parent = t.spans[0]
	}
	span := &Span{
		name:   name,
		parent: parent,
		start:  time.Now(),
		attrs:  make(map[string]any),
	}
	if log.V(3) {
		clog.Infof(ctx, "new span %s parent=%s", name, parent.Name())
	}
	t.spans = append(t.spans, span)
	return span
}

type contextKeyType int

const (
	contextKey contextKeyType = iota
	spanKey
)

// NewContext returns new context with a trace context.
func NewContext(ctx context.Context, t *Context) context.Context {
	return context.WithValue(ctx, contextKey, t)
}

// FromContext returns the trace context, or nil.
func FromContext(ctx context.Context) *Context {
	t, _ := ctx.Value(contextKey).(*Context)
	return t
}

// NewSpan returns new contexts and span.
// If no trace context, returns nil span.
func NewSpan(ctx context.Context, name string) (context.Context, *Span) {
	t := FromContext(ctx)
	if t == nil {
		return ctx, nil
	}
	parent, _ := ctx.Value(spanKey).(*Span)
	span := t.newSpan(ctx, name, parent)
	return context.WithValue(ctx, spanKey, span), span
}

// Span is a trace span.
type Span struct {
	name   string
	parent *Span

	mu    sync.Mutex
	start time.Time
	end   time.Time
	attrs map[string]any
	err   error
}

// Name returns name of the span.
func (s *Span) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// SetAttr sets attributes in the span.
func (s *Span) SetAttr(key string, value any) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs[key] = value
}

// Close closes the span.
func (s *Span) Close(err error) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.end = time.Now()
	s.err = err
}

func (s *Span) data() SpanData {
	s.mu.Lock()
	defer s.mu.Unlock()
	end := s.end
	if end.IsZero() {
		end = time.Now()
	}
	attrs := make(map[string]any, len(s.attrs))
	for k, v := range s.attrs {
		attrs[k] = v
	}
	return SpanData{
		Name:   s.name,
		Parent: s.parent.Name(),
		Start:  s.start,
		End:    end,
		Attrs:  attrs,
		Err:    s.err,
	}
}

// SpanData is a span data.
type SpanData struct {
	Name   string
	Parent string
	Start  time.Time
	End    time.Time
	Attrs  map[string]any
	Err    error
}

// Duration returns duration of the span.
func (sd SpanData) Duration() time.Duration {
	return sd.End.Sub(sd.Start)
}
