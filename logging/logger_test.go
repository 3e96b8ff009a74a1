package logging

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerSingleton(t *testing.T) {
	a := NewLogger("test-component")
	b := NewLogger("test-component")
	if a != b {
		t.Error("NewLogger should return the same entry for the same component")
	}

	c := NewLogger("other-component")
	if a == c {
		t.Error("NewLogger should return distinct entries for distinct components")
	}
}

func TestTextFormatter(t *testing.T) {
	formatter := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Now(),
		Level:   logrus.WarnLevel,
		Message: "history push failed",
		Data:    logrus.Fields{"component": "history", "screen": "inventory"},
	}

	out, err := formatter.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	s := string(out)
	if !strings.Contains(s, "[WARN]") {
		t.Errorf("formatted entry missing level: %q", s)
	}
	if !strings.Contains(s, "history push failed") {
		t.Errorf("formatted entry missing message: %q", s)
	}
	if !strings.Contains(s, "screen=inventory") {
		t.Errorf("formatted entry missing field: %q", s)
	}
}
