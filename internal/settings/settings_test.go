package settings

import (
	"log/slog"
	"testing"

	"github.com/Leochens/LifeOs-sub001/internal/storage"
)

func TestParse(t *testing.T) {
	s, err := Parse([]byte("theme: light\nclaudeCodeEnabled: true\nclaudeCodePath: /usr/local/bin/claude\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Theme != "light" || !s.ClaudeCodeEnabled || s.ClaudeCodePath != "/usr/local/bin/claude" {
		t.Errorf("settings = %+v", s)
	}
}

func TestParse_BlankThemeDefaults(t *testing.T) {
	s, err := Parse([]byte("claudeCodeEnabled: false\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Theme != "dark" {
		t.Errorf("theme = %q, want dark default", s.Theme)
	}
}

func TestEncodeParse_RoundTrip(t *testing.T) {
	in := Settings{Theme: "light", ClaudeCodeEnabled: true, ClaudeCodePath: "/opt/claude"}
	out, err := Parse(in.Encode())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	// Missing file yields defaults.
	s := Load(store, slog.Default())
	if s != Defaults() {
		t.Errorf("load on empty vault = %+v, want defaults", s)
	}

	s.Theme = "light"
	if err := Save(store, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := Load(store, slog.Default())
	if got.Theme != "light" {
		t.Errorf("theme = %q after save/load", got.Theme)
	}
}
