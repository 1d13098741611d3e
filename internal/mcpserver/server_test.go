package mcpserver

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Leochens/LifeOs-sub001/internal/index"
	"github.com/Leochens/LifeOs-sub001/internal/storage"
	"github.com/Leochens/LifeOs-sub001/internal/vault"
)

func testServer(t *testing.T) (*Server, storage.Provider) {
	t.Helper()

	vaultDir := t.TempDir()
	if err := vault.Scaffold(vaultDir); err != nil {
		t.Fatal(err)
	}
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}

	dbFile, err := os.CreateTemp("", "lifeos-mcp-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	loader := vault.NewLoader(store, slog.Default())
	return New(loader, db), store
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestGetTodayTasks(t *testing.T) {
	srv, _ := testServer(t)
	r, err := srv.getTodayTasks(context.Background(), toolRequest("get_today_tasks", nil))
	if err != nil {
		t.Fatalf("tool error: %v", err)
	}
	text := resultText(r)
	if !strings.Contains(text, `"date"`) {
		t.Errorf("result = %q, want day note JSON", text)
	}
}

func TestCheckinHabit(t *testing.T) {
	srv, _ := testServer(t)
	r, err := srv.checkinHabit(context.Background(), toolRequest("checkin_habit", map[string]interface{}{
		"habit_id": "exercise",
		"date":     "2026-03-01",
	}))
	if err != nil {
		t.Fatalf("tool error: %v", err)
	}
	if text := resultText(r); !strings.Contains(text, "checked") {
		t.Errorf("result = %q", text)
	}
}

func TestCheckinHabit_MissingID(t *testing.T) {
	srv, _ := testServer(t)
	r, err := srv.checkinHabit(context.Background(), toolRequest("checkin_habit", nil))
	if err != nil {
		t.Fatalf("tool error: %v", err)
	}
	if !r.IsError {
		t.Error("missing habit_id should produce a tool error result")
	}
}

func TestListProjects_StatusFilter(t *testing.T) {
	srv, store := testServer(t)
	_ = store.Write("projects/active/app.md", []byte("---\nstatus: active\n---\n# App"))
	_ = store.Write("projects/done/old.md", []byte("---\nstatus: done\n---\n# Old"))

	r, err := srv.listProjects(context.Background(), toolRequest("list_projects", map[string]interface{}{
		"status": "active",
	}))
	if err != nil {
		t.Fatalf("tool error: %v", err)
	}
	text := resultText(r)
	if !strings.Contains(text, "App") || strings.Contains(text, "Old") {
		t.Errorf("filtered result = %q", text)
	}
}

func TestCreateAndReadNote(t *testing.T) {
	srv, _ := testServer(t)

	r, err := srv.createNote(context.Background(), toolRequest("create_note", map[string]interface{}{
		"path":    "decisions/test.md",
		"content": "# Test\nHello",
	}))
	if err != nil {
		t.Fatalf("tool error: %v", err)
	}
	if text := resultText(r); text != "created decisions/test.md" {
		t.Errorf("create result = %q", text)
	}

	r, err = srv.readNote(context.Background(), toolRequest("read_note", map[string]interface{}{
		"path": "decisions/test.md",
	}))
	if err != nil {
		t.Fatalf("tool error: %v", err)
	}
	if text := resultText(r); text != "# Test\nHello" {
		t.Errorf("read result = %q", text)
	}
}

func TestSearchVault(t *testing.T) {
	srv, _ := testServer(t)
	_, err := srv.createNote(context.Background(), toolRequest("create_note", map[string]interface{}{
		"path":    "a.md",
		"content": "# Groceries\nbuy milk",
	}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	r, err := srv.searchVault(context.Background(), toolRequest("search_vault", map[string]interface{}{
		"query": "milk",
	}))
	if err != nil {
		t.Fatalf("tool error: %v", err)
	}
	if text := resultText(r); !strings.Contains(text, "a.md") {
		t.Errorf("search result = %q", text)
	}
}

func TestVaultLayoutResource(t *testing.T) {
	srv, _ := testServer(t)
	req := mcp.ReadResourceRequest{}
	req.Params.URI = "lifeos://vault-layout"
	res, err := srv.readVaultLayoutResource(context.Background(), req)
	if err != nil {
		t.Fatalf("resource error: %v", err)
	}
	if len(res) != 1 {
		t.Fatalf("contents = %d", len(res))
	}
	tc, ok := res[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatal("expected text contents")
	}
	if !strings.Contains(tc.Text, "daily/tasks") {
		t.Error("layout doc missing directory conventions")
	}
}
