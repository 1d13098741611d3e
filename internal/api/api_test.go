package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Leochens/LifeOs-sub001/internal/habits"
	"github.com/Leochens/LifeOs-sub001/internal/index"
	"github.com/Leochens/LifeOs-sub001/internal/menu"
	"github.com/Leochens/LifeOs-sub001/internal/storage"
	"github.com/Leochens/LifeOs-sub001/internal/vault"
)

// testEnv sets up a temp vault, SQLite DB, service, and router.
// An empty authToken means auth disabled.
func testEnv(t *testing.T, authToken string) (*Service, http.Handler, storage.Provider) {
	t.Helper()

	vaultDir := t.TempDir()
	if err := vault.Scaffold(vaultDir); err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	dbFile, err := os.CreateTemp("", "lifeos-api-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	loader := vault.NewLoader(store, slog.Default())
	svc := NewService(loader, db)
	router := NewRouter(svc, authToken != "", authToken, nil, vaultDir)
	return svc, router, store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetVault_BeforeLoad(t *testing.T) {
	_, router, _ := testEnv(t, "")
	w := doJSON(t, router, http.MethodGet, "/vault", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 before first load", w.Code)
	}
}

func TestReloadThenGetVault(t *testing.T) {
	_, router, _ := testEnv(t, "")
	w := doJSON(t, router, http.MethodPost, "/vault/reload", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reload = %d, body = %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodGet, "/vault", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get vault = %d", w.Code)
	}
	var snap struct {
		Projects []any       `json:"projects"`
		Menu     menu.Config `json:"menu"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &snap)
	if snap.Projects == nil {
		t.Error("projects should be present (empty list)")
	}
	if len(snap.Menu.Plugins) == 0 {
		t.Error("menu missing from snapshot")
	}
}

func TestTodayRoundTrip(t *testing.T) {
	_, router, _ := testEnv(t, "")

	w := doJSON(t, router, http.MethodGet, "/today", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get today = %d, body = %s", w.Code, w.Body.String())
	}
	var day struct {
		Date  string `json:"date"`
		Tasks []any  `json:"tasks"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &day)
	if day.Date == "" {
		t.Error("day note has no date")
	}
	if len(day.Tasks) != 0 {
		t.Errorf("fresh day note tasks = %v, want none", day.Tasks)
	}

	w = doJSON(t, router, http.MethodPut, "/today", map[string]string{
		"energy":  "high",
		"mood":    "😊",
		"content": "## Tasks\n\n- [ ] ship it\n",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("put today = %d, body = %s", w.Code, w.Body.String())
	}
	var saved struct {
		Energy string `json:"energy"`
		Tasks  []struct {
			Text string `json:"text"`
			Done bool   `json:"done"`
		} `json:"tasks"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &saved)
	if saved.Energy != "high" {
		t.Errorf("energy = %q", saved.Energy)
	}
	if len(saved.Tasks) != 1 || saved.Tasks[0].Text != "ship it" {
		t.Errorf("tasks = %+v", saved.Tasks)
	}
}

func TestToggleHabit(t *testing.T) {
	_, router, store := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/habits/exercise/checkin?date=2026-03-01", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("checkin = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID      string `json:"id"`
		Checked bool   `json:"checked"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Checked {
		t.Error("first toggle should check in")
	}

	// The habits file now records the checkin.
	data, err := store.Read(vault.HabitsFile)
	if err != nil {
		t.Fatalf("Read habits: %v", err)
	}
	hs, err := habits.Parse(data)
	if err != nil {
		t.Fatalf("Parse habits: %v", err)
	}
	if ids := hs.Checkins["2026-03-01"]; len(ids) != 1 || ids[0] != "exercise" {
		t.Errorf("checkins = %v", hs.Checkins)
	}

	// Second toggle unchecks.
	w = doJSON(t, router, http.MethodPost, "/habits/exercise/checkin?date=2026-03-01", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Checked {
		t.Error("second toggle should uncheck")
	}
}

func TestMenuGetAndSave(t *testing.T) {
	_, router, _ := testEnv(t, "")

	w := doJSON(t, router, http.MethodGet, "/menu", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get menu = %d", w.Code)
	}
	var cfg menu.Config
	_ = json.Unmarshal(w.Body.Bytes(), &cfg)
	if len(cfg.Plugins) == 0 {
		t.Fatal("menu has no plugins")
	}

	// Saving a stripped-down config must not drop shipped modules.
	stale := menu.Config{
		Groups:  []menu.Group{{ID: "daily", Name: "Daily", Order: 1, PluginIDs: []string{"tasks"}}},
		Plugins: []menu.Plugin{{ID: "tasks", Name: "Tasks", Component: "daily-tasks", Enabled: true}},
	}
	w = doJSON(t, router, http.MethodPut, "/menu", stale)
	if w.Code != http.StatusOK {
		t.Fatalf("put menu = %d, body = %s", w.Code, w.Body.String())
	}
	var merged menu.Config
	_ = json.Unmarshal(w.Body.Bytes(), &merged)
	if len(merged.Plugins) != len(menu.DefaultConfig().Plugins) {
		t.Errorf("plugins = %d, want shipped modules restored", len(merged.Plugins))
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	_, router, _ := testEnv(t, "")

	w := doJSON(t, router, http.MethodPut, "/settings", map[string]any{
		"theme":             "light",
		"claudeCodeEnabled": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("put settings = %d", w.Code)
	}

	// Settings are read back from disk on the next reload.
	doJSON(t, router, http.MethodPost, "/vault/reload", nil)
	w = doJSON(t, router, http.MethodGet, "/settings", nil)
	var got struct {
		Theme string `json:"theme"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Theme != "light" {
		t.Errorf("theme = %q, want light", got.Theme)
	}
}

func TestCreateAndGetNote(t *testing.T) {
	_, router, _ := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/notes", map[string]string{
		"path": "decisions/switch-db.md", "content": "# Switch DB\nrationale",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/notes/decisions/switch-db.md", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get = %d", w.Code)
	}
	var n NoteDetail
	_ = json.Unmarshal(w.Body.Bytes(), &n)
	if n.Title != "Switch DB" {
		t.Errorf("title = %q", n.Title)
	}
	if n.Checksum == "" {
		t.Error("checksum missing")
	}
}

func TestCreateDuplicate(t *testing.T) {
	_, router, _ := testEnv(t, "")
	body := map[string]string{"path": "dup.md", "content": "a"}
	if w := doJSON(t, router, http.MethodPost, "/notes", body); w.Code != http.StatusCreated {
		t.Fatalf("first create = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/notes", body); w.Code != http.StatusConflict {
		t.Errorf("duplicate create = %d, want 409", w.Code)
	}
}

func TestUpdateWithOptimisticLocking(t *testing.T) {
	_, router, _ := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/notes", map[string]string{"path": "lock.md", "content": "v1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d", w.Code)
	}
	var created NoteDetail
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	// Correct checksum succeeds.
	raw, _ := json.Marshal(map[string]string{"content": "v2"})
	req := httptest.NewRequest(http.MethodPut, "/notes/lock.md", bytes.NewReader(raw))
	req.Header.Set("If-Match", created.Checksum)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d, body = %s", w.Code, w.Body.String())
	}

	// Stale checksum conflicts.
	raw, _ = json.Marshal(map[string]string{"content": "v3"})
	req = httptest.NewRequest(http.MethodPut, "/notes/lock.md", bytes.NewReader(raw))
	req.Header.Set("If-Match", created.Checksum)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Errorf("stale update = %d, want 409", w.Code)
	}
}

func TestDeleteNote(t *testing.T) {
	_, router, _ := testEnv(t, "")
	doJSON(t, router, http.MethodPost, "/notes", map[string]string{"path": "gone.md", "content": "x"})
	if w := doJSON(t, router, http.MethodDelete, "/notes/gone.md", nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/notes/gone.md", nil); w.Code != http.StatusNotFound {
		t.Errorf("get deleted = %d, want 404", w.Code)
	}
}

func TestSearch(t *testing.T) {
	_, router, _ := testEnv(t, "")
	doJSON(t, router, http.MethodPost, "/notes", map[string]string{
		"path": "a.md", "content": "# Groceries\nbuy milk",
	})

	w := doJSON(t, router, http.MethodGet, "/search?q=milk", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search = %d", w.Code)
	}
	var resp struct {
		Results []index.SearchResult `json:"results"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Results) != 1 || resp.Results[0].Path != "a.md" {
		t.Errorf("results = %+v", resp.Results)
	}
}

func TestAuth(t *testing.T) {
	_, router, _ := testEnv(t, "secret-token")

	// No token: rejected.
	w := doJSON(t, router, http.MethodGet, "/today", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token = %d, want 401", w.Code)
	}

	// Wrong token: rejected.
	req := httptest.NewRequest(http.MethodGet, "/today", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", w.Code)
	}

	// Correct token: accepted.
	req = httptest.NewRequest(http.MethodGet, "/today", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid token = %d, want 200", w.Code)
	}
}

func TestAssetUploadAndServe(t *testing.T) {
	_, router, _ := testEnv(t, "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "pic.png")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte("fake png bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/assets", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Filename string `json:"filename"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Filename != "pic.png" {
		t.Errorf("filename = %q", resp.Filename)
	}

	w = doJSON(t, router, http.MethodGet, "/assets/pic.png", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("serve = %d", w.Code)
	}
	if w.Body.String() != "fake png bytes" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := sanitizeFilename("my photo (1).png"); got != "my_photo__1_.png" {
		t.Errorf("sanitized = %q", got)
	}
	if got := sanitizeFilename("../../etc/passwd"); got != "passwd" {
		t.Errorf("sanitized = %q", got)
	}
	// Nothing usable left: a generated name is substituted.
	if got := sanitizeFilename("..."); got == "..." || got == "" {
		t.Errorf("sanitized = %q, want generated name", got)
	}
}
