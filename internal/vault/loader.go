package vault

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Leochens/LifeOs-sub001/internal/domain"
	"github.com/Leochens/LifeOs-sub001/internal/habits"
	"github.com/Leochens/LifeOs-sub001/internal/menu"
	"github.com/Leochens/LifeOs-sub001/internal/note"
	"github.com/Leochens/LifeOs-sub001/internal/settings"
	"github.com/Leochens/LifeOs-sub001/internal/storage"
)

// Snapshot is one immutable, fully loaded projection of the vault. A reload
// builds a fresh Snapshot and swaps it in atomically; readers never see a
// half-populated state.
type Snapshot struct {
	LoadedAt      time.Time              `json:"loadedAt"`
	Menu          *menu.Config           `json:"menu"`
	Settings      settings.Settings      `json:"settings"`
	Today         domain.DayNote         `json:"today"`
	Projects      []domain.Project       `json:"projects"`
	Diary         []domain.DiaryEntry    `json:"diary"`
	Decisions     []domain.Decision      `json:"decisions"`
	Goals         []domain.Goal          `json:"goals"`
	Habits        *habits.Store          `json:"habits"`
	Finance       []domain.FinanceRecord `json:"finance"`
	Subscriptions []domain.Subscription  `json:"subscriptions"`
	Servers       []domain.ServerInfo    `json:"servers"`
	Emails        []domain.EmailAccount  `json:"emails"`
}

// Loader aggregates all vault collections into snapshots.
type Loader struct {
	store  storage.Provider
	logger *slog.Logger
	now    func() time.Time

	reloadMu sync.Mutex // serializes overlapping reloads
	loading  atomic.Bool
	current  atomic.Pointer[Snapshot]
}

// NewLoader creates a Loader over the given vault storage.
func NewLoader(store storage.Provider, logger *slog.Logger) *Loader {
	return &Loader{store: store, logger: logger, now: time.Now}
}

// Snapshot returns the most recently loaded snapshot, or nil before the
// first LoadAll completes.
func (l *Loader) Snapshot() *Snapshot {
	return l.current.Load()
}

// Loading reports whether a reload is currently in flight.
func (l *Loader) Loading() bool {
	return l.loading.Load()
}

// Store exposes the underlying vault storage.
func (l *Loader) Store() storage.Provider {
	return l.store
}

// LoadAll re-reads every collection from disk and swaps in the resulting
// snapshot. Menu and settings load first (later steps may depend on them);
// the domain collections then fan out concurrently, each writing a disjoint
// snapshot field. Every collection failure is logged and absorbed — one
// broken collection never blocks the rest, and LoadAll itself never fails.
// Concurrent calls are serialized: the file system is the source of truth,
// so the second caller simply rebuilds from the latest files.
func (l *Loader) LoadAll(ctx context.Context) *Snapshot {
	l.reloadMu.Lock()
	defer l.reloadMu.Unlock()

	l.loading.Store(true)
	defer l.loading.Store(false)

	snap := &Snapshot{
		LoadedAt:      l.now(),
		Projects:      []domain.Project{},
		Diary:         []domain.DiaryEntry{},
		Decisions:     []domain.Decision{},
		Goals:         []domain.Goal{},
		Finance:       []domain.FinanceRecord{},
		Subscriptions: []domain.Subscription{},
		Servers:       []domain.ServerInfo{},
		Emails:        []domain.EmailAccount{},
		Habits:        habits.NewStore(),
	}

	snap.Menu = menu.Load(l.store, l.logger)
	snap.Settings = settings.Load(l.store, l.logger)

	type step struct {
		name string
		load func() error
	}
	steps := []step{
		{"daynote", func() error {
			today, err := l.EnsureDayNote(l.now().Format("2006-01-02"))
			if err != nil {
				return err
			}
			snap.Today = *today
			return nil
		}},
		{"projects", func() error {
			return loadCollection(l.store, ProjectsDir, true, notReserved, domain.ParseProject, &snap.Projects)
		}},
		{"diary", func() error {
			return loadCollection(l.store, DiaryDir, true, IsDiaryEntry, domain.ParseDiaryEntry, &snap.Diary)
		}},
		{"decisions", func() error {
			return loadCollection(l.store, DecisionsDir, false, notReserved, domain.ParseDecision, &snap.Decisions)
		}},
		{"goals", func() error {
			return loadCollection(l.store, GoalsDir, false, notReserved, domain.ParseGoal, &snap.Goals)
		}},
		{"habits", func() error {
			store, err := l.loadHabits()
			if err != nil {
				return err
			}
			snap.Habits = store
			return nil
		}},
		{"finance", func() error {
			return loadCollection(l.store, FinanceDir, true, notReserved, domain.ParseFinanceRecord, &snap.Finance)
		}},
		{"subscriptions", func() error {
			return loadCollection(l.store, SubscriptionsDir, false, notReserved, domain.ParseSubscription, &snap.Subscriptions)
		}},
		{"servers", func() error {
			return loadCollection(l.store, ServersDir, false, notReserved, domain.ParseServerInfo, &snap.Servers)
		}},
		{"emails", func() error {
			return loadCollection(l.store, EmailsDir, false, notReserved, domain.ParseEmailAccount, &snap.Emails)
		}},
	}

	g, _ := errgroup.WithContext(ctx)
	for _, s := range steps {
		g.Go(func() error {
			if err := s.load(); err != nil {
				l.logger.Error("vault: collection load failed",
					slog.String("collection", s.name),
					slog.String("error", err.Error()))
			}
			return nil // settle-all: failures never abort sibling loads
		})
	}
	_ = g.Wait()

	l.current.Store(snap)
	l.logger.Info("vault: loaded",
		slog.Int("projects", len(snap.Projects)),
		slog.Int("diary", len(snap.Diary)),
		slog.Int("goals", len(snap.Goals)))
	return snap
}

// EnsureDayNote returns the day note for date, creating it first when
// absent so callers always receive a note. The created file goes through
// the normal read→parse pipeline.
func (l *Loader) EnsureDayNote(date string) (*domain.DayNote, error) {
	rel := DayNotePath(date)
	if !l.store.Exists(rel) {
		if err := l.store.Write(rel, renderDayNote(l.store, date)); err != nil {
			return nil, err
		}
		l.logger.Info("vault: bootstrapped day note", slog.String("date", date))
	}
	n, err := note.Read(l.store, rel)
	if err != nil {
		return nil, err
	}
	d := domain.ParseDayNote(n)
	return &d, nil
}

func (l *Loader) loadHabits() (*habits.Store, error) {
	data, err := l.store.Read(HabitsFile)
	if err != nil {
		// Absent file is an empty tracker, not an error.
		return habits.NewStore(), nil
	}
	store, parseErr := habits.Parse(data)
	if parseErr != nil {
		l.logger.Warn("vault: habits file unreadable, starting empty",
			slog.String("error", parseErr.Error()))
		return habits.NewStore(), nil
	}
	return store, nil
}

func notReserved(filename string) bool {
	return !IsReserved(filename)
}

// loadCollection lists dir, filters filenames, and parses each note into
// *out. Individual note read failures are skipped; only the listing itself
// can fail.
func loadCollection[T any](
	store storage.Provider,
	dir string,
	recursive bool,
	keep func(filename string) bool,
	parse func(*note.Note) T,
	out *[]T,
) error {
	infos, err := store.List(dir, recursive)
	if err != nil {
		return err
	}
	records := make([]T, 0, len(infos))
	for _, info := range infos {
		if !keep(info.Name) {
			continue
		}
		n, readErr := note.Read(store, info.Path)
		if readErr != nil {
			continue
		}
		records = append(records, parse(n))
	}
	*out = records
	return nil
}
