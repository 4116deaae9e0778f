package describe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the describe data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(renderHeader(data))
	b.WriteString("\n\n")

	b.WriteString(renderCommands(data))
	b.WriteString("\n\n")

	b.WriteString(renderHandlers(data))

	if len(data.Templates) > 0 || len(data.ValueLists) > 0 || len(data.Exec) > 0 {
		b.WriteString("\n\n")
		b.WriteString(renderSources(data))
	}

	return b.String()
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📄 Definitions: ") + valueStyle.Render(data.DefinitionsPath) + "\n")
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	if data.LogLevel != "" {
		b.WriteString("\n" + titleStyle.Render("📝 Log level: ") + valueStyle.Render(data.LogLevel))
	}
	return b.String()
}

func renderCommands(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("⌨️  Commands:") + "\n")

	if len(data.Commands) == 0 {
		b.WriteString("   " + subtleStyle.Render("No commands defined"))
		return b.String()
	}

	for _, cmd := range data.Commands {
		b.WriteString("   " + valueStyle.Render(cmd.Name))
		if cmd.Description != "" {
			b.WriteString(" " + subtleStyle.Render(cmd.Description))
		}
		b.WriteString("\n")

		for i, p := range cmd.Parameters {
			b.WriteString(fmt.Sprintf("      %d. %s %s%s\n",
				i,
				keyStyle.Render(p.Name+":"),
				valueStyle.Render(p.Type),
				renderParameterNotes(p)))
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderParameterNotes(p ParameterInfo) string {
	var notes []string
	if p.Optional {
		notes = append(notes, "optional")
	}
	if p.Default != "" {
		notes = append(notes, "default="+p.Default)
	}

	out := ""
	if len(notes) > 0 {
		out = " " + subtleStyle.Render("("+strings.Join(notes, ", ")+")")
	}
	if p.Completion != "" {
		status := successStyle.Render("✓")
		if !p.Known {
			status = errorStyle.Render("✗ unknown handler")
		}
		out += fmt.Sprintf(" %s %s %s", subtleStyle.Render("→"), valueStyle.Render(p.Completion), status)
	}
	return out
}

func renderHandlers(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🔄 Completion handlers:") + "\n")
	if len(data.Handlers) == 0 {
		b.WriteString("   " + subtleStyle.Render("None registered"))
		return b.String()
	}
	b.WriteString("   " + valueStyle.Render(strings.Join(data.Handlers, ", ")))
	return b.String()
}

func renderSources(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📚 Completion sources:") + "\n")

	if len(data.Templates) > 0 {
		b.WriteString("   " + keyStyle.Render("Templates: ") + valueStyle.Render(strings.Join(data.Templates, ", ")) + "\n")
	}

	if len(data.ValueLists) > 0 {
		b.WriteString("   " + keyStyle.Render("Value lists:") + "\n")
		for _, name := range sortedKeys(data.ValueLists) {
			b.WriteString(fmt.Sprintf("      %s (%s)\n",
				valueStyle.Render(name),
				subtleStyle.Render(fmt.Sprintf("%d values", data.ValueLists[name]))))
		}
	}

	if len(data.Exec) > 0 {
		b.WriteString("   " + keyStyle.Render("Commands:") + "\n")
		for _, name := range sortedKeys(data.Exec) {
			b.WriteString(fmt.Sprintf("      %s → %s\n",
				valueStyle.Render(name),
				subtleStyle.Render(truncateString(data.Exec[name], 50))))
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// truncateString shortens s to maxWidth terminal cells
func truncateString(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "...")
}
