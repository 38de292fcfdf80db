package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTableRowNumbers(t *testing.T) {
	f := newFixture(t, "/admin/manage/songs", nil)
	page := f.model.Page()

	numbered := strings.Split(renderTable(page, 1, 0, 120, 20, true, "7 rows"), "\n")
	plain := strings.Split(renderTable(page, 1, 0, 120, 20, false, "7 rows"), "\n")

	assert.Contains(t, strings.Join(numbered, "\n"), "Computer Love")
	require.Equal(t, len(plain), len(numbered))
	// styling the number column never changes the layout
	for i := range plain {
		assert.Equal(t, lipgloss.Width(plain[i]), lipgloss.Width(numbered[i]), "line %d", i)
	}
}
