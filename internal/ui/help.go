package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders the one-line help footer for keys.
func RenderHelp(h help.Model, keys help.KeyMap, width int) string {
	h.Width = width - 2
	return FooterStyle.Width(width).Render(h.ShortHelpView(keys.ShortHelp()))
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(h help.Model, keys KeyMap, width, height int) string {
	h.Width = width - 4
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render("Keys"),
		"",
		h.FullHelpView(keys.FullHelp()),
		"",
		LabelStyle.Render("Filter mode"),
		"",
		h.FullHelpView(DefaultFilterKeyMap().FullHelp()),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		content.Render(sections),
		FooterStyle.Width(width).Render(h.Styles.ShortKey.Render("esc")+" "+h.Styles.ShortDesc.Render("close help")),
	)
}
