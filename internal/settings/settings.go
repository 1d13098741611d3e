// Package settings loads the small app settings file (.life-os/settings.yaml).
package settings

import (
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Leochens/LifeOs-sub001/internal/storage"
)

// FilePath is where settings live inside the vault.
const FilePath = ".life-os/settings.yaml"

// Settings is the flat key:value settings file.
type Settings struct {
	Theme             string `yaml:"theme" json:"theme"`
	ClaudeCodeEnabled bool   `yaml:"claudeCodeEnabled" json:"claudeCodeEnabled"`
	ClaudeCodePath    string `yaml:"claudeCodePath" json:"claudeCodePath"`
}

// Defaults returns the settings used when no file exists.
func Defaults() Settings {
	return Settings{Theme: "dark"}
}

// Parse decodes the settings file, substituting defaults for missing fields.
func Parse(data []byte) (Settings, error) {
	s := Defaults()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Defaults(), fmt.Errorf("settings: parse: %w", err)
	}
	if strings.TrimSpace(s.Theme) == "" {
		s.Theme = Defaults().Theme
	}
	return s, nil
}

// Encode renders the fixed three-line settings form.
func (s Settings) Encode() []byte {
	return []byte(fmt.Sprintf("theme: %s\nclaudeCodeEnabled: %t\nclaudeCodePath: %s\n",
		s.Theme, s.ClaudeCodeEnabled, s.ClaudeCodePath))
}

// Load reads settings from the vault, falling back to defaults on any
// read or parse failure.
func Load(store storage.Provider, logger *slog.Logger) Settings {
	data, err := store.Read(FilePath)
	if err != nil {
		return Defaults()
	}
	s, parseErr := Parse(data)
	if parseErr != nil {
		logger.Warn("settings: unreadable, using defaults", slog.String("error", parseErr.Error()))
		return Defaults()
	}
	return s
}

// Save persists settings to the vault.
func Save(store storage.Provider, s Settings) error {
	return store.Write(FilePath, s.Encode())
}
