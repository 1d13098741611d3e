package domain

import (
	"strings"
	"time"

	"github.com/Leochens/LifeOs-sub001/internal/note"
)

// ServerInfo is one note under .lifeos/servers/. Files are named by
// generated id.
type ServerInfo struct {
	Path     string    `json:"path"`
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Host     string    `json:"host"`
	Port     int       `json:"port"`
	User     string    `json:"user"`
	Tags     []string  `json:"tags"`
	Content  string    `json:"content"`
	Modified time.Time `json:"modified"`
}

// serverKeys is the canonical frontmatter key order for serialization.
var serverKeys = []string{"id", "name", "host", "port", "user", "tags"}

// ParseServerInfo builds a ServerInfo from a raw note.
func ParseServerInfo(n *note.Note) ServerInfo {
	id := fieldStr(n.Frontmatter, "id", strings.TrimSuffix(n.Filename, ".md"))
	name := fieldStr(n.Frontmatter, "name", id)
	return ServerInfo{
		Path:     n.Path,
		ID:       id,
		Name:     name,
		Host:     fieldStr(n.Frontmatter, "host", ""),
		Port:     fieldInt(n.Frontmatter, "port", 22),
		User:     fieldStr(n.Frontmatter, "user", ""),
		Tags:     fieldTags(n.Frontmatter, "tags"),
		Content:  n.Content,
		Modified: n.Modified,
	}
}

// Encode renders the server record back to its file form.
func (s ServerInfo) Encode() []byte {
	fm := map[string]string{
		"id":   s.ID,
		"name": s.Name,
		"host": s.Host,
		"port": itoa(s.Port),
		"user": s.User,
	}
	if len(s.Tags) > 0 {
		fm["tags"] = strings.Join(s.Tags, ", ")
	}
	return note.Encode(serverKeys, fm, s.Content)
}
