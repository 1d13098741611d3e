package menu

import (
	"log/slog"

	"github.com/Leochens/LifeOs-sub001/internal/storage"
)

// Load reads the persisted menu config and reconciles it against the
// defaults. A missing or unparseable file falls back to the defaults
// wholesale; the result is written back only when the merge changed the
// persisted form, so repeated launches do not keep rewriting the file.
func Load(store storage.Provider, logger *slog.Logger) *Config {
	defaults := DefaultConfig()

	data, err := store.Read(FilePath)
	if err != nil {
		logger.Info("menu: no persisted config, using defaults")
		return defaults
	}
	persisted, parseErr := Parse(data)
	if parseErr != nil {
		logger.Warn("menu: config unreadable, using defaults", slog.String("error", parseErr.Error()))
		return defaults
	}

	merged := Merge(persisted, defaults)
	if string(merged.Encode()) != string(data) {
		if writeErr := store.Write(FilePath, merged.Encode()); writeErr != nil {
			logger.Warn("menu: persist merged config failed", slog.String("error", writeErr.Error()))
		}
	}
	return merged
}

// Save merges cfg against the defaults (so a stale client can never drop a
// shipped module) and persists the result.
func Save(store storage.Provider, cfg *Config) (*Config, error) {
	merged := Merge(cfg, DefaultConfig())
	if err := store.Write(FilePath, merged.Encode()); err != nil {
		return nil, err
	}
	return merged, nil
}
