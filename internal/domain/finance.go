package domain

import (
	"path"
	"strings"
	"time"

	"github.com/Leochens/LifeOs-sub001/internal/note"
)

// FinanceRecord is one note under finance/records/<personId>/.
type FinanceRecord struct {
	Path     string    `json:"path"`
	Person   string    `json:"person"`
	Date     string    `json:"date"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
	Category string    `json:"category"`
	Note     string    `json:"note"`
	Modified time.Time `json:"modified"`
}

// ParseFinanceRecord builds a FinanceRecord from a raw note. The person id
// falls back to the record's parent directory name, matching the per-person
// nesting convention.
func ParseFinanceRecord(n *note.Note) FinanceRecord {
	person := fieldStr(n.Frontmatter, "person", "")
	if person == "" {
		parent := path.Base(path.Dir(n.Path))
		if parent != "finance" && parent != "records" && parent != "." {
			person = parent
		}
	}
	return FinanceRecord{
		Path:     n.Path,
		Person:   person,
		Date:     fieldStr(n.Frontmatter, "date", strings.TrimSuffix(n.Filename, ".md")),
		Amount:   fieldFloat(n.Frontmatter, "amount", 0),
		Currency: fieldStr(n.Frontmatter, "currency", "CNY"),
		Category: fieldStr(n.Frontmatter, "category", "other"),
		Note:     n.Content,
		Modified: n.Modified,
	}
}
