package server

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jba/slog/withsupport"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Level     string            `json:"level"` // "debug", "info", "warn", "error"
	Attrs     map[string]string `json:"attrs,omitempty"`
}

// Console keeps the most recent log messages for the web console
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	limit    int
}

// NewConsole creates a console holding at most limit messages
func NewConsole(limit int) *Console {
	if limit < 1 {
		limit = 1
	}
	return &Console{limit: limit}
}

func (c *Console) add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	if over := len(c.messages) - c.limit; over > 0 {
		c.messages = append(c.messages[:0:0], c.messages[over:]...)
	}
}

// Messages returns a copy of the recorded messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage(nil), c.messages...)
}

// Handler returns a slog handler that records into the console and, when
// next is non-nil, also passes every record on to next
func (c *Console) Handler(level slog.Leveler, next slog.Handler) slog.Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &consoleHandler{console: c, level: level, next: next}
}

// Built by following the guide:
// https://github.com/golang/example/blob/master/slog-handler-guide/README.md
type consoleHandler struct {
	console *Console
	level   slog.Leveler
	with    *withsupport.GroupOrAttrs
	next    slog.Handler
}

func (h *consoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	next := h.next
	if next != nil {
		next = next.WithGroup(name)
	}
	return &consoleHandler{h.console, h.level, h.with.WithGroup(name), next}
}

func (h *consoleHandler) WithAttrs(as []slog.Attr) slog.Handler {
	next := h.next
	if next != nil {
		next = next.WithAttrs(as)
	}
	return &consoleHandler{h.console, h.level, h.with.WithAttrs(as), next}
}

func (h *consoleHandler) Handle(ctx context.Context, r slog.Record) error {
	msg := ConsoleMessage{
		Message:   r.Message,
		Timestamp: r.Time,
		Level:     strings.ToLower(r.Level.String()),
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	attrs := map[string]string{}
	groups := h.with.Apply(func(groups []string, a slog.Attr) {
		flatten(attrs, groups, a)
	})
	r.Attrs(func(a slog.Attr) bool {
		flatten(attrs, groups, a)
		return true
	})
	if len(attrs) > 0 {
		msg.Attrs = attrs
	}
	h.console.add(msg)

	if h.next != nil && h.next.Enabled(ctx, r.Level) {
		return h.next.Handle(ctx, r)
	}
	return nil
}

// flatten writes a into attrs under its dotted group path
func flatten(attrs map[string]string, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		// Groups with empty keys are inlined into their parents
		if a.Key != "" {
			groups = append(groups[:len(groups):len(groups)], a.Key)
		}
		for _, ga := range a.Value.Group() {
			flatten(attrs, groups, ga)
		}
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	if a.Value.Kind() == slog.KindTime {
		attrs[key] = a.Value.Time().Format(time.RFC3339Nano)
		return
	}
	attrs[key] = a.Value.String()
}
