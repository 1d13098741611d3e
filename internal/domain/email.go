package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/Leochens/LifeOs-sub001/internal/note"
)

// EmailAccount is one note under .lifeos/emails/. Only the account
// description lives in the vault; mail sync itself is an external concern.
type EmailAccount struct {
	Path     string    `json:"path"`
	ID       string    `json:"id"`
	Address  string    `json:"address"`
	Protocol string    `json:"protocol"` // imap or pop3
	Host     string    `json:"host"`
	Port     int       `json:"port"`
	Username string    `json:"username"`
	Enabled  bool      `json:"enabled"`
	Modified time.Time `json:"modified"`
}

// emailKeys is the canonical frontmatter key order for serialization.
var emailKeys = []string{"id", "address", "protocol", "host", "port", "username", "enabled"}

// ParseEmailAccount builds an EmailAccount from a raw note.
func ParseEmailAccount(n *note.Note) EmailAccount {
	id := fieldStr(n.Frontmatter, "id", strings.TrimSuffix(n.Filename, ".md"))
	return EmailAccount{
		Path:     n.Path,
		ID:       id,
		Address:  fieldStr(n.Frontmatter, "address", ""),
		Protocol: fieldEnum(n.Frontmatter, "protocol", "imap", "imap", "pop3"),
		Host:     fieldStr(n.Frontmatter, "host", ""),
		Port:     fieldInt(n.Frontmatter, "port", 993),
		Username: fieldStr(n.Frontmatter, "username", ""),
		Enabled:  fieldBool(n.Frontmatter, "enabled", true),
		Modified: n.Modified,
	}
}

// Encode renders the account record back to its file form.
func (e EmailAccount) Encode() []byte {
	fm := map[string]string{
		"id":       e.ID,
		"address":  e.Address,
		"protocol": e.Protocol,
		"host":     e.Host,
		"port":     itoa(e.Port),
		"username": e.Username,
		"enabled":  strconv.FormatBool(e.Enabled),
	}
	return note.Encode(emailKeys, fm, "")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
