package menu

// FilePath is where the menu config lives inside the vault.
const FilePath = ".life-os/menu.yaml"

// DefaultConfig returns the compiled-in menu: every shipped module, grouped
// the way the sidebar shows them on first launch.
func DefaultConfig() *Config {
	return &Config{
		Groups: []Group{
			{ID: "daily", Name: "Daily", Order: 1, PluginIDs: []string{"tasks", "habits", "diary"}},
			{ID: "planning", Name: "Planning", Order: 2, PluginIDs: []string{"projects", "goals", "decisions"}},
			{ID: "life", Name: "Life", Order: 3, PluginIDs: []string{"finance", "subscriptions"}},
			{ID: "tools", Name: "Tools", Order: 4, Collapsed: true, PluginIDs: []string{"servers", "mail", "notes", "skills"}},
		},
		Plugins: []Plugin{
			{ID: "tasks", Name: "Daily Tasks", Icon: "✅", Component: "daily-tasks", Enabled: true, Builtin: true},
			{ID: "habits", Name: "Habits", Icon: "🔥", Component: "habit-tracker", Enabled: true, Builtin: true},
			{ID: "diary", Name: "Diary", Icon: "📔", Component: "diary", Enabled: true, Builtin: true},
			{ID: "projects", Name: "Projects", Icon: "📋", Component: "kanban", Enabled: true, Builtin: true},
			{ID: "goals", Name: "Goals", Icon: "🎯", Component: "goal-planner", Enabled: true},
			{ID: "decisions", Name: "Decisions", Icon: "⚖️", Component: "decision-log", Enabled: true},
			{ID: "finance", Name: "Finance", Icon: "💰", Component: "finance", Enabled: true},
			{ID: "subscriptions", Name: "Subscriptions", Icon: "🔁", Component: "subscriptions", Enabled: true},
			{ID: "servers", Name: "Servers", Icon: "🖥️", Component: "server-list", Enabled: false},
			{ID: "mail", Name: "Mail", Icon: "✉️", Component: "mail", Enabled: false},
			{ID: "notes", Name: "Notes", Icon: "📝", Component: "notes", Enabled: true},
			{ID: "skills", Name: "Skills", Icon: "🧩", Component: "skills", Enabled: false},
		},
	}
}
