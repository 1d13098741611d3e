// Package vault implements the Life OS directory conventions: where each
// collection lives, how files are named, and the full-reload aggregation
// that turns the on-disk vault into an in-memory snapshot.
package vault

import (
	"regexp"
	"strings"
)

// Conventional locations inside the vault, relative to its root.
const (
	DailyTasksDir    = "daily/tasks"
	HabitsFile       = "daily/habits/habits.yaml"
	DiaryDir         = "diary"
	DiaryTemplates   = "diary/templates"
	ProjectsDir      = "projects"
	BoardFile        = "projects/_board.yaml"
	DecisionsDir     = "decisions"
	GoalsDir         = "planning/goals"
	FinanceDir       = "finance"
	SubscriptionsDir = "subscriptions"
	ServersDir       = ".lifeos/servers"
	EmailsDir        = ".lifeos/emails"
	MetaDir          = ".life-os"
	ConnectorsFile   = ".life-os/connectors.yaml"
	AssetsDir        = "assets/images"

	// DayNoteTemplate, when present, seeds newly bootstrapped day notes.
	DayNoteTemplate = "daily/tasks/_template.md"

	// ReservedPrefix marks metadata files excluded from content listings.
	ReservedPrefix = "_"
)

// diaryNameRe matches diary entry filenames: YYYY-MM-DD.md or
// YYYY-MM-DD-HHMM.md for multiple entries per day.
var diaryNameRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(-\d{4})?\.md$`)

// IsDiaryEntry reports whether filename follows the diary naming pattern.
func IsDiaryEntry(filename string) bool {
	return diaryNameRe.MatchString(filename)
}

// IsReserved reports whether filename is a metadata file (reserved prefix).
func IsReserved(filename string) bool {
	return strings.HasPrefix(filename, ReservedPrefix)
}

// DayNotePath returns the day note path for an ISO date.
func DayNotePath(date string) string {
	return DailyTasksDir + "/" + date + ".md"
}
