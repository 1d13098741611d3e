package domain

import (
	"strings"
	"time"

	"github.com/Leochens/LifeOs-sub001/internal/note"
)

// Goal is one note under planning/goals.
type Goal struct {
	Path     string    `json:"path"`
	Title    string    `json:"title"`
	Status   string    `json:"status"`
	Progress int       `json:"progress"` // 0-100
	Horizon  string    `json:"horizon"`  // year, quarter, month
	Target   string    `json:"target"`   // target date, free-form
	Tags     []string  `json:"tags"`
	Content  string    `json:"content"`
	Modified time.Time `json:"modified"`
}

// ParseGoal builds a Goal from a raw note.
func ParseGoal(n *note.Note) Goal {
	title := note.Title(n.Frontmatter, n.Content)
	if title == "" {
		title = strings.TrimSuffix(n.Filename, ".md")
	}
	progress := fieldInt(n.Frontmatter, "progress", 0)
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return Goal{
		Path:     n.Path,
		Title:    title,
		Status:   fieldEnum(n.Frontmatter, "status", DefaultStatus, "active", "achieved", "abandoned"),
		Progress: progress,
		Horizon:  fieldEnum(n.Frontmatter, "horizon", "year", "year", "quarter", "month"),
		Target:   fieldStr(n.Frontmatter, "target", ""),
		Tags:     fieldTags(n.Frontmatter, "tags"),
		Content:  n.Content,
		Modified: n.Modified,
	}
}
