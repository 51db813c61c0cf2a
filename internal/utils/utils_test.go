package utils

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLogLevel(t *testing.T) {
	defer Log.SetLevel(logrus.InfoLevel)

	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"INFO":    logrus.InfoLevel,
		"warning": logrus.WarnLevel,
		"warn":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
	}
	for in, want := range tests {
		if err := SetLogLevel(in); err != nil {
			t.Fatalf("SetLogLevel(%q): %v", in, err)
		}
		if Log.GetLevel() != want {
			t.Fatalf("expected %v, got %v", want, Log.GetLevel())
		}
	}
	if err := SetLogLevel("chatty"); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
}

func TestDBLock(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "settings.sqlite")

	l, err := NewDBLock(dbPath)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	if err := l.Lock(); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if err := l.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if l.path != dbPath+".lock" {
		t.Fatalf("unexpected lock path %s", l.path)
	}
}
