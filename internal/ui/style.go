package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Sidebar        lipgloss.Style
	SidebarHeader  lipgloss.Style
	ConvItem       lipgloss.Style
	ConvItemActive lipgloss.Style
	ConvDate       lipgloss.Style
	UserMessage    lipgloss.Style
	AssistMessage  lipgloss.Style
	ErrorBanner    lipgloss.Style
	Muted          lipgloss.Style
	StatusBar      lipgloss.Style
}

func DefaultStyles() *Styles {
	return &Styles{
		Sidebar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("240")).
			PaddingRight(1),
		SidebarHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1),
		ConvItem: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		ConvItemActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("62")),
		ConvDate: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		UserMessage: lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("231")),
		AssistMessage: lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("252")),
		ErrorBanner: lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("52")).
			Foreground(lipgloss.Color("217")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}
