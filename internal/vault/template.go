package vault

import (
	"fmt"
	"strings"

	"github.com/Leochens/LifeOs-sub001/internal/storage"
)

// daySkeleton is the fallback day note used when no template file exists.
const daySkeleton = `---
date: %s
energy: high
mood: 😊
---

## Tasks

## Notes
`

// renderDayNote produces the initial content of a bootstrapped day note.
// A user template at daily/tasks/_template.md wins; {{date}} and {{content}}
// placeholders are substituted. Without a template the fixed skeleton is
// used.
func renderDayNote(store storage.Provider, date string) []byte {
	tmpl, err := store.Read(DayNoteTemplate)
	if err != nil {
		return []byte(fmt.Sprintf(daySkeleton, date))
	}
	out := strings.ReplaceAll(string(tmpl), "{{date}}", date)
	out = strings.ReplaceAll(out, "{{content}}", "")
	return []byte(out)
}
