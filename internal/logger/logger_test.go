package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_DebugWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	log := New(true, &buf)
	log.Debug("loaded tasks", zap.Int("count", 3))

	out := buf.String()
	if !strings.Contains(out, "loaded tasks") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, `"count": 3`) {
		t.Errorf("expected field in output, got %q", out)
	}
	if !strings.Contains(out, "DEBUG") {
		t.Errorf("expected level in output, got %q", out)
	}
}

func TestNew_DisabledIsSilent(t *testing.T) {
	var buf bytes.Buffer
	log := New(false, &buf)
	log.Debug("hidden")
	log.Error("also hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
