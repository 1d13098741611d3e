// Package habits loads and saves the habit tracker file
// (daily/habits/habits.yaml): a list of habit definitions plus a map of
// ISO date to the habit ids checked in on that day.
package habits

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Habit is one tracked habit definition.
type Habit struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Icon       string `yaml:"icon,omitempty" json:"icon"`
	TargetDays []int  `yaml:"target_days,omitempty" json:"targetDays"` // 1=Mon .. 7=Sun
	Created    string `yaml:"created,omitempty" json:"created"`
}

// Store is the parsed habits file.
type Store struct {
	Habits   []Habit             `yaml:"habits" json:"habits"`
	Checkins map[string][]string `yaml:"checkins" json:"checkins"` // YYYY-MM-DD -> habit ids
}

// NewStore returns an empty store with non-nil collections.
func NewStore() *Store {
	return &Store{Habits: []Habit{}, Checkins: map[string][]string{}}
}

// Parse decodes the habits file. A whole-file parse failure is the only
// error; entries with no id are dropped rather than reported.
func Parse(data []byte) (*Store, error) {
	var s Store
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("habits: parse: %w", err)
	}
	out := NewStore()
	for _, h := range s.Habits {
		if strings.TrimSpace(h.ID) == "" {
			continue
		}
		out.Habits = append(out.Habits, h)
	}
	for date, ids := range s.Checkins {
		if len(ids) == 0 {
			continue
		}
		out.Checkins[date] = ids
	}
	return out, nil
}

// Encode renders the store deterministically: habit definition order is
// preserved, checkin dates are emitted sorted. Encode(Parse(Encode(s)))
// is stable.
func (s *Store) Encode() []byte {
	var b strings.Builder
	b.WriteString("# Habit Definitions\n")
	b.WriteString("habits:\n")
	for _, h := range s.Habits {
		b.WriteString("  - id: " + h.ID + "\n")
		b.WriteString(fmt.Sprintf("    name: %q\n", h.Name))
		if h.Icon != "" {
			b.WriteString(fmt.Sprintf("    icon: %q\n", h.Icon))
		}
		if len(h.TargetDays) > 0 {
			days := make([]string, len(h.TargetDays))
			for i, d := range h.TargetDays {
				days[i] = fmt.Sprintf("%d", d)
			}
			b.WriteString("    target_days: [" + strings.Join(days, ",") + "]\n")
		}
		if h.Created != "" {
			b.WriteString(fmt.Sprintf("    created: %q\n", h.Created))
		}
	}
	b.WriteString("\n# Check-in records (YYYY-MM-DD: [habit_ids])\n")
	b.WriteString("checkins:\n")
	dates := make([]string, 0, len(s.Checkins))
	for d := range s.Checkins {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		ids := s.Checkins[d]
		if len(ids) == 0 {
			continue
		}
		b.WriteString("  " + d + ": [" + strings.Join(ids, ", ") + "]\n")
	}
	return []byte(b.String())
}

// Find returns the habit definition with the given id.
func (s *Store) Find(id string) (Habit, bool) {
	for _, h := range s.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

// Toggle flips the checkin state of habit id on date and reports the new
// state. Unknown ids are still recorded; the parser never enforced the
// definition/checkin invariant and user files rely on that.
func (s *Store) Toggle(date, id string) bool {
	ids := s.Checkins[date]
	for i, existing := range ids {
		if existing == id {
			s.Checkins[date] = append(ids[:i], ids[i+1:]...)
			if len(s.Checkins[date]) == 0 {
				delete(s.Checkins, date)
			}
			return false
		}
	}
	s.Checkins[date] = append(ids, id)
	return true
}
