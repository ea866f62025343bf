package server

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestConsole_RecordsMessages(t *testing.T) {
	console := NewConsole(10)
	logger := slog.New(console.Handler(slog.LevelInfo, nil))

	logger.Info("render started", "width", 640, "height", 480)
	logger.Debug("hidden")
	logger.Warn("texture unavailable", "location", "sky.png")

	messages := console.Messages()
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d: %+v", len(messages), messages)
	}

	if messages[0].Message != "render started" || messages[0].Level != "info" {
		t.Errorf("Unexpected first message %+v", messages[0])
	}
	if diff := cmp.Diff(map[string]string{"width": "640", "height": "480"}, messages[0].Attrs); diff != "" {
		t.Errorf("Unexpected attrs (-want +got):\n%s", diff)
	}
	if messages[1].Level != "warn" || messages[1].Attrs["location"] != "sky.png" {
		t.Errorf("Unexpected second message %+v", messages[1])
	}
	if time.Since(messages[0].Timestamp) > time.Minute {
		t.Errorf("Timestamp seems too old: %v", messages[0].Timestamp)
	}
}

func TestConsole_GroupsAndAttrs(t *testing.T) {
	console := NewConsole(10)
	logger := slog.New(console.Handler(nil, nil)).
		With("render_id", "abc").
		WithGroup("scene").
		With("name", "planes")

	logger.Info("rendered", "pixels", 4, slog.Group("stats", "hit", 3, "miss", 1), slog.Group("", "inline", true))

	messages := console.Messages()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	expected := map[string]string{
		"render_id":        "abc",
		"scene.name":       "planes",
		"scene.pixels":     "4",
		"scene.stats.hit":  "3",
		"scene.stats.miss": "1",
		"scene.inline":     "true",
	}
	if diff := cmp.Diff(expected, messages[0].Attrs); diff != "" {
		t.Errorf("Unexpected attrs (-want +got):\n%s", diff)
	}
}

func TestConsole_KeepsMostRecent(t *testing.T) {
	console := NewConsole(3)
	logger := slog.New(console.Handler(slog.LevelInfo, nil))

	for _, msg := range []string{"one", "two", "three", "four", "five"} {
		logger.Info(msg)
	}

	var got []string
	for _, m := range console.Messages() {
		got = append(got, m.Message)
	}
	if diff := cmp.Diff([]string{"three", "four", "five"}, got); diff != "" {
		t.Errorf("Unexpected messages (-want +got):\n%s", diff)
	}
}

func TestConsole_MessagesIsACopy(t *testing.T) {
	console := NewConsole(3)
	slog.New(console.Handler(slog.LevelInfo, nil)).Info("original")

	messages := console.Messages()
	messages[0].Message = "changed"
	if console.Messages()[0].Message != "original" {
		t.Error("Expected Messages to return a copy")
	}
}

func TestConsole_ForwardsToNext(t *testing.T) {
	var buf bytes.Buffer
	next := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})

	console := NewConsole(10)
	logger := slog.New(console.Handler(slog.LevelInfo, next)).With("render_id", "xyz")

	logger.Info("kept only in the console")
	logger.Warn("forwarded")

	if len(console.Messages()) != 2 {
		t.Errorf("Expected both messages in the console, got %d", len(console.Messages()))
	}
	out := buf.String()
	if strings.Contains(out, "kept only in the console") {
		t.Errorf("Expected the info message to stay below the next handler's level, got:\n%s", out)
	}
	if !strings.Contains(out, "forwarded") || !strings.Contains(out, "render_id=xyz") {
		t.Errorf("Expected the warning with its attrs to be forwarded, got:\n%s", out)
	}
}
