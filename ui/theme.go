package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Index    lipgloss.Style
	Label    lipgloss.Style
	Tag      lipgloss.Style
	Error    lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		Selected: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("205")),
		Index: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Label: lipgloss.NewStyle().Faint(true),
		Tag:   lipgloss.NewStyle().Foreground(lipgloss.Color("36")),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
