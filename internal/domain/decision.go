package domain

import (
	"strings"
	"time"

	"github.com/Leochens/LifeOs-sub001/internal/note"
)

// Decision is one note under decisions/.
type Decision struct {
	Path     string    `json:"path"`
	Title    string    `json:"title"`
	Date     string    `json:"date"`
	Status   string    `json:"status"`
	Outcome  string    `json:"outcome"`
	Tags     []string  `json:"tags"`
	Content  string    `json:"content"`
	Modified time.Time `json:"modified"`
}

// ParseDecision builds a Decision from a raw note.
func ParseDecision(n *note.Note) Decision {
	title := note.Title(n.Frontmatter, n.Content)
	if title == "" {
		title = strings.TrimSuffix(n.Filename, ".md")
	}
	return Decision{
		Path:     n.Path,
		Title:    title,
		Date:     fieldStr(n.Frontmatter, "date", ""),
		Status:   fieldEnum(n.Frontmatter, "status", DefaultStatus, "active", "decided", "revisit"),
		Outcome:  fieldStr(n.Frontmatter, "outcome", ""),
		Tags:     fieldTags(n.Frontmatter, "tags"),
		Content:  n.Content,
		Modified: n.Modified,
	}
}
