package domain

import (
	"strings"
	"time"

	"github.com/Leochens/LifeOs-sub001/internal/note"
)

// Task is one checkbox line from a day note body.
type Task struct {
	Text string   `json:"text"`
	Done bool     `json:"done"`
	Tags []string `json:"tags"`
}

// DayNote is one daily/tasks/<date>.md file.
type DayNote struct {
	Path     string    `json:"path"`
	Date     string    `json:"date"` // YYYY-MM-DD
	Energy   string    `json:"energy"`
	Mood     string    `json:"mood"`
	Tasks    []Task    `json:"tasks"`
	Content  string    `json:"content"`
	Modified time.Time `json:"modified"`
}

// dayNoteKeys is the canonical frontmatter key order for serialization.
var dayNoteKeys = []string{"date", "energy", "mood"}

// ParseDayNote builds a DayNote from a raw note. The date falls back to the
// filename stem when the frontmatter omits it.
func ParseDayNote(n *note.Note) DayNote {
	date := fieldStr(n.Frontmatter, "date", strings.TrimSuffix(n.Filename, ".md"))
	return DayNote{
		Path:     n.Path,
		Date:     date,
		Energy:   fieldEnum(n.Frontmatter, "energy", "medium", "low", "medium", "high"),
		Mood:     fieldStr(n.Frontmatter, "mood", ""),
		Tasks:    ExtractTasks(n.Content),
		Content:  n.Content,
		Modified: n.Modified,
	}
}

// Encode renders the day note back to its file form.
func (d DayNote) Encode() []byte {
	fm := map[string]string{
		"date":   d.Date,
		"energy": d.Energy,
	}
	if d.Mood != "" {
		fm["mood"] = d.Mood
	}
	return note.Encode(dayNoteKeys, fm, d.Content)
}

// ExtractTasks scans a Markdown body for checkbox list items. Inline #tags
// on a task line are collected and stripped from the text.
func ExtractTasks(body string) []Task {
	tasks := []Task{}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		var done bool
		switch {
		case strings.HasPrefix(trimmed, "- [ ] "):
			done = false
		case strings.HasPrefix(trimmed, "- [x] "), strings.HasPrefix(trimmed, "- [X] "):
			done = true
		default:
			continue
		}
		text := strings.TrimSpace(trimmed[6:])

		tags := []string{}
		words := strings.Fields(text)
		kept := make([]string, 0, len(words))
		for _, w := range words {
			if len(w) > 1 && strings.HasPrefix(w, "#") {
				tags = append(tags, strings.TrimPrefix(w, "#"))
				continue
			}
			kept = append(kept, w)
		}
		tasks = append(tasks, Task{
			Text: strings.Join(kept, " "),
			Done: done,
			Tags: tags,
		})
	}
	return tasks
}
