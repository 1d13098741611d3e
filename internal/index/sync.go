package index

import (
	"log/slog"
	"strings"
	"time"

	"github.com/Leochens/LifeOs-sub001/internal/checksum"
	"github.com/Leochens/LifeOs-sub001/internal/note"
	"github.com/Leochens/LifeOs-sub001/internal/storage"
)

// Sync walks the vault and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	infos, err := store.List("", true)
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(infos))
	for _, info := range infos {
		disk[info.Path] = struct{}{}

		data, readErr := store.Read(info.Path)
		if readErr != nil {
			logger.Warn("sync: read failed", slog.String("path", info.Path), slog.String("error", readErr.Error()))
			continue
		}
		if checksums[info.Path] == checksum.Sum(data) {
			continue
		}
		if idxErr := indexFile(db, info.Path, data); idxErr != nil {
			logger.Warn("sync: index failed", slog.String("path", info.Path), slog.String("error", idxErr.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", info.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteNote(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile parses note data and upserts it into the DB.
func indexFile(db *DB, path string, data []byte) error {
	fm, body := note.Split(data)

	tags := []string{}
	for _, t := range strings.Split(fm["tags"], ",") {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	row := NoteRow{
		Path:      path,
		Title:     note.Title(fm, body),
		Checksum:  checksum.Sum(data),
		Tags:      tags,
		UpdatedAt: time.Now(),
	}
	return db.UpsertNote(row, body)
}
