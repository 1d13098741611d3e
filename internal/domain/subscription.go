package domain

import (
	"strings"
	"time"

	"github.com/Leochens/LifeOs-sub001/internal/note"
)

// Subscription is one note under subscriptions/.
type Subscription struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Currency string    `json:"currency"`
	Cycle    string    `json:"cycle"` // monthly, yearly, weekly
	Renews   string    `json:"renews"`
	Status   string    `json:"status"`
	Tags     []string  `json:"tags"`
	Content  string    `json:"content"`
	Modified time.Time `json:"modified"`
}

// ParseSubscription builds a Subscription from a raw note.
func ParseSubscription(n *note.Note) Subscription {
	name := fieldStr(n.Frontmatter, "name", "")
	if name == "" {
		name = note.Title(n.Frontmatter, n.Content)
	}
	if name == "" {
		name = strings.TrimSuffix(n.Filename, ".md")
	}
	return Subscription{
		Path:     n.Path,
		Name:     name,
		Price:    fieldFloat(n.Frontmatter, "price", 0),
		Currency: fieldStr(n.Frontmatter, "currency", "CNY"),
		Cycle:    fieldEnum(n.Frontmatter, "cycle", "monthly", "weekly", "monthly", "yearly"),
		Renews:   fieldStr(n.Frontmatter, "renews", ""),
		Status:   fieldEnum(n.Frontmatter, "status", DefaultStatus, "active", "paused", "cancelled"),
		Tags:     fieldTags(n.Frontmatter, "tags"),
		Content:  n.Content,
		Modified: n.Modified,
	}
}
