// Package menu holds the sidebar plugin/group configuration: which modules
// are enabled and how they are grouped for navigation. The persisted file is
// reconciled against the compiled-in defaults on every load so that modules
// added in newer releases show up without clobbering user customizations.
package menu

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Plugin is one selectable module in the sidebar.
type Plugin struct {
	ID        string `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	Icon      string `yaml:"icon,omitempty" json:"icon"`
	Component string `yaml:"component" json:"component"`
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Builtin   bool   `yaml:"builtin,omitempty" json:"builtin"`
}

// Group is an ordered, collapsible set of plugins.
type Group struct {
	ID        string   `yaml:"id" json:"id"`
	Name      string   `yaml:"name" json:"name"`
	Order     int      `yaml:"order" json:"order"`
	Collapsed bool     `yaml:"collapsed,omitempty" json:"collapsed"`
	PluginIDs []string `yaml:"pluginIds" json:"pluginIds"`
}

// Config is the full menu configuration.
type Config struct {
	Groups  []Group  `yaml:"groups" json:"groups"`
	Plugins []Plugin `yaml:"plugins" json:"plugins"`
}

// Parse decodes a persisted menu config. Any whole-file failure is returned
// to the caller, which falls back to defaults wholesale.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("menu: parse: %w", err)
	}
	if c.Groups == nil {
		c.Groups = []Group{}
	}
	if c.Plugins == nil {
		c.Plugins = []Plugin{}
	}
	return &c, nil
}

// Encode renders the config deterministically (fixed key order, fixed
// indentation) so repeated load→save cycles produce no spurious diffs.
func (c *Config) Encode() []byte {
	var b strings.Builder
	b.WriteString("groups:\n")
	for _, g := range c.Groups {
		b.WriteString("  - id: " + g.ID + "\n")
		b.WriteString(fmt.Sprintf("    name: %q\n", g.Name))
		b.WriteString(fmt.Sprintf("    order: %d\n", g.Order))
		if g.Collapsed {
			b.WriteString("    collapsed: true\n")
		}
		b.WriteString("    pluginIds: [" + strings.Join(g.PluginIDs, ", ") + "]\n")
	}
	b.WriteString("plugins:\n")
	for _, p := range c.Plugins {
		b.WriteString("  - id: " + p.ID + "\n")
		b.WriteString(fmt.Sprintf("    name: %q\n", p.Name))
		if p.Icon != "" {
			b.WriteString(fmt.Sprintf("    icon: %q\n", p.Icon))
		}
		b.WriteString("    component: " + p.Component + "\n")
		b.WriteString(fmt.Sprintf("    enabled: %t\n", p.Enabled))
		if p.Builtin {
			b.WriteString("    builtin: true\n")
		}
	}
	return []byte(b.String())
}

// Merge reconciles a persisted config against defaults:
//   - plugins present only in defaults are appended with enabled=true
//   - groups present only in defaults are appended verbatim
//   - for groups present in both, the defaults' pluginIds are unioned into
//     the persisted group (user order preserved, nothing ever removed)
//
// Merge is idempotent; re-merging an already merged config changes nothing.
func Merge(persisted, defaults *Config) *Config {
	out := &Config{
		Groups:  make([]Group, len(persisted.Groups)),
		Plugins: make([]Plugin, len(persisted.Plugins)),
	}
	copy(out.Groups, persisted.Groups)
	copy(out.Plugins, persisted.Plugins)

	havePlugin := make(map[string]bool, len(out.Plugins))
	for _, p := range out.Plugins {
		havePlugin[p.ID] = true
	}
	for _, p := range defaults.Plugins {
		if havePlugin[p.ID] {
			continue
		}
		p.Enabled = true // new modules opt in by default
		out.Plugins = append(out.Plugins, p)
		havePlugin[p.ID] = true
	}

	groupIdx := make(map[string]int, len(out.Groups))
	for i, g := range out.Groups {
		groupIdx[g.ID] = i
	}
	for _, dg := range defaults.Groups {
		i, ok := groupIdx[dg.ID]
		if !ok {
			g := dg
			g.PluginIDs = append([]string(nil), dg.PluginIDs...)
			out.Groups = append(out.Groups, g)
			groupIdx[g.ID] = len(out.Groups) - 1
			continue
		}
		have := make(map[string]bool, len(out.Groups[i].PluginIDs))
		merged := append([]string(nil), out.Groups[i].PluginIDs...)
		for _, id := range merged {
			have[id] = true
		}
		for _, id := range dg.PluginIDs {
			if !have[id] {
				merged = append(merged, id)
				have[id] = true
			}
		}
		out.Groups[i].PluginIDs = merged
	}
	return out
}
