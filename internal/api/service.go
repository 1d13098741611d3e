package api

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Leochens/LifeOs-sub001/internal/apperr"
	"github.com/Leochens/LifeOs-sub001/internal/checksum"
	"github.com/Leochens/LifeOs-sub001/internal/domain"
	"github.com/Leochens/LifeOs-sub001/internal/habits"
	"github.com/Leochens/LifeOs-sub001/internal/index"
	"github.com/Leochens/LifeOs-sub001/internal/menu"
	"github.com/Leochens/LifeOs-sub001/internal/note"
	"github.com/Leochens/LifeOs-sub001/internal/settings"
	"github.com/Leochens/LifeOs-sub001/internal/vault"
)

// NoteDetail is the full representation of a raw vault note.
type NoteDetail struct {
	Path        string            `json:"path"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Frontmatter map[string]string `json:"frontmatter"`
	Checksum    string            `json:"checksum"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Service coordinates the vault loader, raw note storage, and the search
// index for the HTTP layer.
type Service struct {
	loader *vault.Loader
	db     *index.DB
}

// NewService creates a new API service.
func NewService(loader *vault.Loader, db *index.DB) *Service {
	return &Service{loader: loader, db: db}
}

// Snapshot returns the current vault snapshot, or ErrNotFound before the
// first load has completed.
func (s *Service) Snapshot(_ context.Context) (*vault.Snapshot, error) {
	snap := s.loader.Snapshot()
	if snap == nil {
		return nil, apperr.ErrNotFound
	}
	return snap, nil
}

// Reload re-reads the whole vault from disk and returns the new snapshot.
func (s *Service) Reload(ctx context.Context) *vault.Snapshot {
	return s.loader.LoadAll(ctx)
}

// Today returns today's day note, bootstrapping the file when absent.
func (s *Service) Today(_ context.Context) (*domain.DayNote, error) {
	return s.loader.EnsureDayNote(time.Now().Format("2006-01-02"))
}

// SaveToday overwrites today's day note. Write failures surface directly to
// the caller; there is no retry.
func (s *Service) SaveToday(_ context.Context, energy, mood, content string) (*domain.DayNote, error) {
	today := time.Now().Format("2006-01-02")
	d := domain.DayNote{
		Date:    today,
		Energy:  energy,
		Mood:    mood,
		Content: content,
	}
	if d.Energy == "" {
		d.Energy = "medium"
	}
	if err := s.loader.Store().Write(vault.DayNotePath(today), d.Encode()); err != nil {
		return nil, err
	}
	return s.loader.EnsureDayNote(today)
}

// ToggleHabit flips the checkin of a habit for the given date (today when
// empty) and persists the file. Returns the new checked state.
func (s *Service) ToggleHabit(_ context.Context, habitID, date string) (bool, error) {
	if habitID == "" {
		return false, fmt.Errorf("habit id is required")
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	store := habits.NewStore()
	if data, err := s.loader.Store().Read(vault.HabitsFile); err == nil {
		if parsed, parseErr := habits.Parse(data); parseErr == nil {
			store = parsed
		}
	}
	checked := store.Toggle(date, habitID)
	if err := s.loader.Store().Write(vault.HabitsFile, store.Encode()); err != nil {
		return false, err
	}
	return checked, nil
}

// Menu returns the current merged menu configuration.
func (s *Service) Menu(_ context.Context) *menu.Config {
	if snap := s.loader.Snapshot(); snap != nil && snap.Menu != nil {
		return snap.Menu
	}
	return menu.DefaultConfig()
}

// SaveMenu persists a menu configuration, re-merging it against the
// defaults first so shipped modules can never be dropped by a stale client.
func (s *Service) SaveMenu(_ context.Context, cfg *menu.Config) (*menu.Config, error) {
	return menu.Save(s.loader.Store(), cfg)
}

// Settings returns the current app settings.
func (s *Service) Settings(_ context.Context) settings.Settings {
	if snap := s.loader.Snapshot(); snap != nil {
		return snap.Settings
	}
	return settings.Defaults()
}

// SaveSettings persists app settings.
func (s *Service) SaveSettings(_ context.Context, st settings.Settings) error {
	return settings.Save(s.loader.Store(), st)
}

// GetNote reads a raw note from the vault.
func (s *Service) GetNote(_ context.Context, path string) (*NoteDetail, error) {
	data, err := s.loader.Store().Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.buildNoteDetail(path, data), nil
}

// CreateNote writes a new note and indexes it.
func (s *Service) CreateNote(_ context.Context, path string, content []byte) (*NoteDetail, error) {
	if s.loader.Store().Exists(path) {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.loader.Store().Write(path, content); err != nil {
		return nil, err
	}
	if err := s.indexNote(path, content); err != nil {
		return nil, err
	}
	return s.buildNoteDetail(path, content), nil
}

// UpdateNote writes updated content with optimistic concurrency.
func (s *Service) UpdateNote(_ context.Context, path string, content []byte, ifMatch string) (*NoteDetail, error) {
	existing, err := s.loader.Store().Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.loader.Store().Write(path, content); err != nil {
		return nil, err
	}
	if err := s.indexNote(path, content); err != nil {
		return nil, err
	}
	return s.buildNoteDetail(path, content), nil
}

// DeleteNote removes a note from storage and index.
func (s *Service) DeleteNote(_ context.Context, path string) error {
	if err := s.loader.Store().Delete(path); err != nil {
		return err
	}
	return s.db.DeleteNote(path)
}

// ListNotes returns indexed notes with optional tag filter.
func (s *Service) ListNotes(_ context.Context, limit, offset int, tag string) ([]index.NoteRow, int, error) {
	return s.db.ListNotes(limit, offset, tag)
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

func (s *Service) indexNote(path string, data []byte) error {
	fm, body := note.Split(data)
	return s.db.UpsertNote(index.NoteRow{
		Path:      path,
		Title:     note.Title(fm, body),
		Checksum:  checksum.Sum(data),
		Tags:      splitTrim(fm["tags"]),
		UpdatedAt: time.Now(),
	}, body)
}

func splitTrim(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (s *Service) buildNoteDetail(path string, data []byte) *NoteDetail {
	fm, body := note.Split(data)
	return &NoteDetail{
		Path:        path,
		Title:       note.Title(fm, body),
		Content:     string(data),
		Frontmatter: fm,
		Checksum:    checksum.Sum(data),
		UpdatedAt:   time.Now(),
	}
}
