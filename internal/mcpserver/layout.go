package mcpserver

// vaultLayoutDoc describes the vault directory conventions for LLM
// consumers creating notes through the MCP tools.
const vaultLayoutDoc = `# Life OS Vault Layout

A vault is a plain directory of Markdown files. Every note is YAML
frontmatter followed by a Markdown body.

## Directories

- ` + "`daily/tasks/YYYY-MM-DD.md`" + ` — one day note per date. Frontmatter:
  date, energy (low/medium/high), mood. Tasks are checkbox list items
  (` + "`- [ ]`" + ` / ` + "`- [x]`" + `) in the body; inline #tags are allowed.
- ` + "`daily/habits/habits.yaml`" + ` — habit definitions plus per-date checkins.
  Do not edit directly; use the checkin_habit tool.
- ` + "`diary/`" + ` — entries named ` + "`YYYY-MM-DD.md`" + ` or ` + "`YYYY-MM-DD-HHMM.md`" + `.
  Files with any other name are ignored. Frontmatter: date, mood, weather,
  energy, tags.
- ` + "`projects/<status>/`" + ` — one note per project under active/, backlog/,
  paused/, done/. Frontmatter: title, status, priority (low/medium/high),
  progress (0-100), tags, created, due. Filenames starting with ` + "`_`" + `
  are metadata and are skipped.
- ` + "`planning/goals/`" + ` — frontmatter: title, status, progress, horizon
  (year/quarter/month), target, tags.
- ` + "`decisions/`" + ` — frontmatter: title, date, status, outcome, tags.
- ` + "`finance/records/<personId>/`" + ` — frontmatter: person, date, amount,
  currency, category. The body is the free-form note.
- ` + "`subscriptions/`" + ` — frontmatter: name, price, currency, cycle
  (weekly/monthly/yearly), renews, status, tags.

## Rules

1. Frontmatter values are flat scalars; tags are a comma-separated string.
2. Every field is optional — readers substitute documented defaults.
3. File and directory names use forward slashes and end with ` + "`.md`" + `.
4. Encoding is UTF-8.
`
