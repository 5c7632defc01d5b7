package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// NewLogger builds the text logger used by all commands and wraps it in a
// Collector so warnings and errors can be counted afterwards.
func NewLogger(w io.Writer, verbose bool) (*slog.Logger, *Collector) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	collector := NewCollector(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return slog.New(collector), collector
}

// Issue is a warning or error recorded by a Collector.
type Issue struct {
	Level   slog.Level
	Message string
	Attrs   []slog.Attr
}

func (i Issue) String() string {
	if len(i.Attrs) == 0 {
		return i.Message
	}
	parts := make([]string, 0, len(i.Attrs))
	for _, a := range i.Attrs {
		parts = append(parts, a.String())
	}
	return fmt.Sprintf("%s (%s)", i.Message, strings.Join(parts, ", "))
}

type issueLog struct {
	mu     sync.Mutex
	issues []Issue
}

// Collector is a slog.Handler that records every warning and error before
// passing records on. Handlers derived through WithAttrs and WithGroup
// share the recorded issues.
type Collector struct {
	inner slog.Handler
	log   *issueLog
	attrs []slog.Attr
	group string
}

// NewCollector wraps inner. A nil inner discards all output.
func NewCollector(inner slog.Handler) *Collector {
	if inner == nil {
		inner = slog.NewTextHandler(io.Discard, nil)
	}
	return &Collector{inner: inner, log: &issueLog{}}
}

func (c *Collector) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= slog.LevelWarn || c.inner.Enabled(ctx, level)
}

func (c *Collector) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		issue := Issue{Level: r.Level, Message: r.Message}
		issue.Attrs = append(issue.Attrs, c.attrs...)
		r.Attrs(func(a slog.Attr) bool {
			if c.group != "" {
				a.Key = c.group + "." + a.Key
			}
			issue.Attrs = append(issue.Attrs, a)
			return true
		})
		c.log.mu.Lock()
		c.log.issues = append(c.log.issues, issue)
		c.log.mu.Unlock()
	}
	if !c.inner.Enabled(ctx, r.Level) {
		return nil
	}
	return c.inner.Handle(ctx, r)
}

func (c *Collector) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *c
	next.inner = c.inner.WithAttrs(attrs)
	next.attrs = append(append([]slog.Attr(nil), c.attrs...), attrs...)
	return &next
}

func (c *Collector) WithGroup(name string) slog.Handler {
	next := *c
	next.inner = c.inner.WithGroup(name)
	if c.group != "" {
		name = c.group + "." + name
	}
	next.group = name
	return &next
}

// Issues returns all recorded issues at or above level.
func (c *Collector) Issues(level slog.Level) []Issue {
	c.log.mu.Lock()
	defer c.log.mu.Unlock()
	var result []Issue
	for _, issue := range c.log.issues {
		if issue.Level >= level {
			result = append(result, issue)
		}
	}
	return result
}

func (c *Collector) Errors() []Issue {
	return c.Issues(slog.LevelError)
}

func (c *Collector) Warnings() []Issue {
	var result []Issue
	for _, issue := range c.Issues(slog.LevelWarn) {
		if issue.Level < slog.LevelError {
			result = append(result, issue)
		}
	}
	return result
}

func (c *Collector) HasErrors() bool {
	return len(c.Errors()) > 0
}

// Reset forgets all recorded issues.
func (c *Collector) Reset() {
	c.log.mu.Lock()
	c.log.issues = nil
	c.log.mu.Unlock()
}
