package domain

import (
	"strings"
	"time"

	"github.com/Leochens/LifeOs-sub001/internal/note"
)

// DiaryEntry is one date-named note under diary/.
type DiaryEntry struct {
	Path     string    `json:"path"`
	Date     string    `json:"date"` // YYYY-MM-DD
	Mood     string    `json:"mood"`
	Weather  string    `json:"weather"`
	Energy   string    `json:"energy"`
	Tags     []string  `json:"tags"`
	Content  string    `json:"content"`
	Modified time.Time `json:"modified"`
}

// ParseDiaryEntry builds a DiaryEntry from a raw note. The date falls back
// to the leading YYYY-MM-DD of the filename (entries may carry an -HHMM
// suffix for multiple entries per day).
func ParseDiaryEntry(n *note.Note) DiaryEntry {
	stem := strings.TrimSuffix(n.Filename, ".md")
	if len(stem) > 10 {
		stem = stem[:10]
	}
	return DiaryEntry{
		Path:     n.Path,
		Date:     fieldStr(n.Frontmatter, "date", stem),
		Mood:     fieldStr(n.Frontmatter, "mood", ""),
		Weather:  fieldStr(n.Frontmatter, "weather", ""),
		Energy:   fieldEnum(n.Frontmatter, "energy", "medium", "low", "medium", "high"),
		Tags:     fieldTags(n.Frontmatter, "tags"),
		Content:  n.Content,
		Modified: n.Modified,
	}
}
