package ui

import (
	"fmt"
	"strings"

	"adminviews/internal/dom"
	"adminviews/internal/util"

	"github.com/charmbracelet/lipgloss"
)

const (
	maxCellWidth = 28
	cellGap      = 2
)

// renderTable paints the header and rows the view manager rendered into
// the page container. When numbered, the first cell of each row is the
// row number.
func renderTable(page *Page, cursor, offset, width, height int, numbered bool, status string) string {
	headers := page.HeaderCells()
	rows := page.Rows()

	statusLine := StatusBarStyle.Render(status)
	if len(headers) == 0 {
		return EmptyStateStyle.Width(width).Render("Loading…")
	}

	cells := make([][]string, len(rows))
	actions := make([]string, len(rows))
	for i, row := range rows {
		for _, td := range row.ChildrenByTag("td") {
			cells[i] = append(cells[i], util.OrDash(td.Text))
		}
		actions[i] = renderActions(RowActions(row))
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, rowCells := range cells {
		for i, c := range rowCells {
			if i < len(widths) {
				widths[i] = min(maxCellWidth, max(widths[i], lipgloss.Width(c)))
			}
		}
	}

	headerLine := TableHeaderStyle.Width(width).Render(" " + joinCells(headers, widths))
	divider := BreadcrumbStyle.Render(strings.Repeat("─", max(0, width)))

	if len(rows) == 0 {
		empty := EmptyStateStyle.Width(width).Render("No rows match.")
		return lipgloss.JoinVertical(lipgloss.Left, headerLine, divider, empty, statusLine)
	}

	visible := max(1, height-4)
	var lines []string
	for i := offset; i < len(rows) && i < offset+visible; i++ {
		style := NormalRowStyle
		if i == cursor {
			style = SelectedRowStyle
		}
		padded := padCells(cells[i], widths)
		if numbered && i != cursor && len(padded) > 0 {
			padded[0] = RowNumberStyle.Render(padded[0])
		}
		line := " " + strings.Join(padded, strings.Repeat(" ", cellGap))
		if actions[i] != "" {
			line += strings.Repeat(" ", cellGap) + actions[i]
		}
		lines = append(lines, style.Width(width).Render(line))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, headerLine, divider, strings.Join(lines, "\n"))
	spacer := lipgloss.NewStyle().Height(max(0, height-lipgloss.Height(content)-1)).Render("")
	return lipgloss.JoinVertical(lipgloss.Left, content, spacer, statusLine)
}

func joinCells(cells []string, widths []int) string {
	return strings.Join(padCells(cells, widths), strings.Repeat(" ", cellGap))
}

func padCells(cells []string, widths []int) []string {
	padded := make([]string, 0, len(widths))
	for i, w := range widths {
		var c string
		if i < len(cells) {
			c = cells[i]
		}
		padded = append(padded, util.PadRight(c, w))
	}
	return padded
}

func renderActions(actions []*dom.Element) string {
	parts := make([]string, 0, len(actions))
	for i, a := range actions {
		label := fmt.Sprintf("[%d %s]", i+1, a.Text)
		if a.Tag == "a" {
			parts = append(parts, LinkStyle.Render(label))
			continue
		}
		parts = append(parts, ActionStyle.Render(label))
	}
	return strings.Join(parts, " ")
}
