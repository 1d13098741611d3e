package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// scaffoldDirs is the directory tree created for a fresh vault.
var scaffoldDirs = []string{
	MetaDir,
	ServersDir,
	EmailsDir,
	DailyTasksDir,
	"daily/habits",
	ProjectsDir + "/active",
	ProjectsDir + "/backlog",
	ProjectsDir + "/paused",
	ProjectsDir + "/done",
	GoalsDir,
	"planning/reviews",
	DiaryTemplates,
	DecisionsDir,
	FinanceDir + "/records",
	SubscriptionsDir,
	AssetsDir,
}

const seedHabits = `# Habit Definitions
habits:
  - id: morning_meditation
    name: "Morning meditation"
    icon: "🧘"
    target_days: [1,2,3,4,5,6,7]
  - id: exercise
    name: "Exercise"
    icon: "💪"
    target_days: [1,2,3,4,5,6,7]
  - id: reading
    name: "Reading"
    icon: "📖"
    target_days: [1,2,3,4,5,6,7]

# Check-in records (YYYY-MM-DD: [habit_ids])
checkins:
`

const seedBoard = `columns:
  - id: backlog
    name: "💤 Backlog"
    color: "#5a6a82"
  - id: todo
    name: "📋 Planned"
    color: "#00c8ff"
  - id: active
    name: "⚡ In progress"
    color: "#7b61ff"
  - id: done
    name: "✅ Done"
    color: "#00ffa3"
`

const seedDiaryTemplate = `---
date: {{date}}
mood: 😊
weather: ~
energy: high
tags: []
---

## What happened today

{{content}}

## Takeaways

-

## Plan for tomorrow

-
`

const seedConnectors = `# Life OS connectors configuration
# Do not commit this file to public repositories.

github:
  enabled: false
  token: ""
  username: ""

gmail:
  enabled: false

calendar:
  enabled: false
`

// Scaffold creates the conventional vault directory tree under root and
// seeds the starter files, never overwriting anything that already exists.
// It is safe to run on an existing vault.
func Scaffold(root string) error {
	for _, dir := range scaffoldDirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o755); err != nil {
			return fmt.Errorf("vault: scaffold %s: %w", dir, err)
		}
	}

	today := time.Now().Format("2006-01-02")
	seeds := map[string]string{
		MetaDir + "/config.yaml":     fmt.Sprintf("vault_path: %q\ncreated: %q\nversion: \"0.1.0\"\n", root, today),
		HabitsFile:                   seedHabits,
		BoardFile:                    seedBoard,
		DiaryTemplates + "/daily.md": seedDiaryTemplate,
		ConnectorsFile:               seedConnectors,
	}
	for rel, content := range seeds {
		if err := writeIfAbsent(filepath.Join(root, filepath.FromSlash(rel)), content); err != nil {
			return err
		}
	}
	return nil
}

func writeIfAbsent(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("vault: seed %s: %w", path, err)
	}
	return nil
}
