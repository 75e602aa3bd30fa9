package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")

	logger, sync := New(path, zapcore.InfoLevel)
	logger.Info("floor ready")
	logger.Debug("suppressed at info level")
	sync()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	text := string(content)
	if !strings.Contains(text, "floor ready") {
		t.Errorf("Expected log entry in file, got %q", text)
	}
	if strings.Contains(text, "suppressed") {
		t.Error("Debug entry should be filtered at info level")
	}
}
