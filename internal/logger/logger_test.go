package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gg"
)

func TestSet(t *testing.T) {
	if Get().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should be silent")
	}

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	Set(l)
	defer Set(nil)

	Get().Info("hello", "k", 1)
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if gg.Logger() != l {
		t.Error("logger should be propagated to gg")
	}

	Set(nil)
	if Get().Enabled(t.Context(), slog.LevelError) {
		t.Error("nil should restore the silent logger")
	}
}
