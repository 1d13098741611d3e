package domain

import (
	"strings"
	"time"

	"github.com/Leochens/LifeOs-sub001/internal/note"
)

// Project statuses mirror the kanban column the note lives in.
const (
	ProjectBacklog = "backlog"
	ProjectTodo    = "todo"
	ProjectActive  = "active"
	ProjectPaused  = "paused"
	ProjectDone    = "done"
)

// Project is one note under projects/.
type Project struct {
	Path     string    `json:"path"`
	Title    string    `json:"title"`
	Status   string    `json:"status"`
	Priority string    `json:"priority"`
	Progress int       `json:"progress"` // 0-100
	Tags     []string  `json:"tags"`
	Created  string    `json:"created"`
	Due      string    `json:"due"`
	Content  string    `json:"content"`
	Modified time.Time `json:"modified"`
}

// ParseProject builds a Project from a raw note. Title falls back to the
// frontmatter title, then the first H1, then the filename stem.
func ParseProject(n *note.Note) Project {
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
	return Project{
		Path:     n.Path,
		Title:    title,
		Status:   fieldEnum(n.Frontmatter, "status", DefaultStatus, ProjectBacklog, ProjectTodo, ProjectActive, ProjectPaused, ProjectDone),
		Priority: fieldEnum(n.Frontmatter, "priority", DefaultPriority, "low", "medium", "high"),
		Progress: progress,
		Tags:     fieldTags(n.Frontmatter, "tags"),
		Created:  fieldStr(n.Frontmatter, "created", ""),
		Due:      fieldStr(n.Frontmatter, "due", ""),
		Content:  n.Content,
		Modified: n.Modified,
	}
}
