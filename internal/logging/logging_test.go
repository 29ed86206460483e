package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "ssh")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "user", "alice")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "user=alice") {
		t.Fatalf("warn line missing: %q", out)
	}
	if !strings.Contains(out, "ssh") {
		t.Fatalf("prefix missing: %q", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "chatty", ""); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	logger, closer, err := NewFile(path, "debug", "")
	if err != nil {
		t.Fatalf("new file: %v", err)
	}
	logger.Debug("frame", "n", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "n=3") {
		t.Fatalf("log file = %q", data)
	}
}

func TestNewFileWithoutPathDiscards(t *testing.T) {
	logger, closer, err := NewFile("", "info", "")
	if err != nil {
		t.Fatalf("new file: %v", err)
	}
	logger.Info("nowhere")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
