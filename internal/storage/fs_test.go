package storage

import (
	"testing"
)

func tempVault(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempVault(t)
	content := []byte("# Hello\nWorld\n")
	if err := s.Write("note.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempVault(t)
	if err := s.Write("daily/tasks/2026-03-01.md", []byte("deep")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("daily/tasks/2026-03-01.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestWriteOverwritesAtomically(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("a.md", []byte("v1"))
	if err := s.Write("a.md", []byte("v2")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("a.md")
	if string(got) != "v2" {
		t.Errorf("content = %q, want v2", got)
	}
	// No temp files left behind.
	infos, err := s.List("", true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 {
		t.Errorf("files = %d, want 1 (no temp leftovers)", len(infos))
	}
}

func TestDelete(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("del.md", []byte("bye"))
	if err := s.Delete("del.md"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("del.md"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestMove(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("projects/backlog/app.md", []byte("data"))
	if err := s.Move("projects/backlog/app.md", "projects/active/app.md"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	got, err := s.Read("projects/active/app.md")
	if err != nil {
		t.Fatalf("Read after move: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("content = %q", got)
	}
	if _, err := s.Read("projects/backlog/app.md"); err == nil {
		t.Error("old path should not exist")
	}
}

func TestList_FlatVsRecursive(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("diary/2026-03-01.md", []byte("a"))
	_ = s.Write("diary/templates/daily.md", []byte("b"))
	_ = s.Write("diary/notes.txt", []byte("not markdown"))

	flat, err := s.List("diary", false)
	if err != nil {
		t.Fatalf("List flat: %v", err)
	}
	if len(flat) != 1 || flat[0].Path != "diary/2026-03-01.md" {
		t.Errorf("flat = %+v", flat)
	}

	rec, err := s.List("diary", true)
	if err != nil {
		t.Fatalf("List recursive: %v", err)
	}
	if len(rec) != 2 {
		t.Errorf("recursive = %d files, want 2", len(rec))
	}
}

func TestList_MissingDirIsEmpty(t *testing.T) {
	s := tempVault(t)
	infos, err := s.List("does/not/exist", true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("infos = %+v, want empty", infos)
	}
}

func TestList_PathsAreSlashRelative(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("planning/goals/fitness.md", []byte("x"))
	infos, err := s.List("planning", true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 || infos[0].Path != "planning/goals/fitness.md" {
		t.Errorf("infos = %+v", infos)
	}
	if infos[0].Name != "fitness.md" {
		t.Errorf("name = %q", infos[0].Name)
	}
}

func TestTraversalRejected(t *testing.T) {
	s := tempVault(t)
	if _, err := s.Read("../outside.md"); err == nil {
		t.Error("read outside vault should fail")
	}
	if err := s.Write("../outside.md", []byte("x")); err == nil {
		t.Error("write outside vault should fail")
	}
	if err := s.Write("a/../../outside.md", []byte("x")); err == nil {
		t.Error("nested traversal should fail")
	}
	if _, err := s.Read("/etc/passwd"); err == nil {
		t.Error("absolute path should fail")
	}
}

func TestExists(t *testing.T) {
	s := tempVault(t)
	if s.Exists("nope.md") {
		t.Error("Exists on missing file")
	}
	_ = s.Write("yes.md", []byte("x"))
	if !s.Exists("yes.md") {
		t.Error("Exists on present file")
	}
}

func TestStat(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("stat.md", []byte("x"))
	info, err := s.Stat("stat.md")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Name != "stat.md" || info.Modified.IsZero() {
		t.Errorf("info = %+v", info)
	}
}
