package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func componentTable(n int) tableModel {
	t := newViewTable("linkerd")
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("comp-%02d", i), "linkerd", "running", fmt.Sprintf("%d/1", i%2)}
	}
	t.SetRows(rows)
	return t
}

func TestTableModel_SortsByFirstColumnByDefault(t *testing.T) {
	tbl := newViewTable("dashboard")
	tbl.SetRows([][]string{{"linkerd", "Linkerd", "", ""}, {"istio", "Istio", "", ""}})
	assert.Equal(t, "istio", tbl.display[0][0])
}

func TestTableModel_DigitKeyTogglesSort(t *testing.T) {
	tbl := componentTable(3)

	tbl, _ = tbl.Update(runeKey("4"))
	assert.Equal(t, 3, tbl.sortCol)
	assert.False(t, tbl.sortDesc)
	assert.Equal(t, "0/1", tbl.display[0][3])

	tbl, _ = tbl.Update(runeKey("4"))
	assert.True(t, tbl.sortDesc)
	assert.Equal(t, "1/1", tbl.display[0][3])

	// out of range column ignored
	tbl, _ = tbl.Update(runeKey("9"))
	assert.Equal(t, 3, tbl.sortCol)
}

func TestTableModel_Paging(t *testing.T) {
	tbl := componentTable(25)
	require.Equal(t, 3, pageCount(len(tbl.display), tbl.pageSize))
	assert.Len(t, tbl.pageRows(), 10)

	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyRight})
	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, tbl.page)
	assert.Len(t, tbl.pageRows(), 5)

	// clamped at the last page
	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, tbl.page)

	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, tbl.page)

	// shrinking data pulls the page back in range
	tbl.SetRows(tbl.allRows[:3])
	assert.Equal(t, 0, tbl.page)
}

func TestTableModel_SearchFlow(t *testing.T) {
	tbl := componentTable(12)

	tbl, _ = tbl.Update(runeKey("/"))
	require.True(t, tbl.searching)

	tbl, _ = tbl.Update(runeKey("1"))
	tbl, _ = tbl.Update(runeKey("1"))
	assert.Equal(t, "11", tbl.input.Value())
	assert.Len(t, tbl.display, 12, "filter applies on enter")

	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, tbl.searching)
	assert.Equal(t, "11", tbl.search)
	require.Len(t, tbl.display, 1)
	assert.Equal(t, "comp-11", tbl.display[0][0])

	// new rows are filtered too
	tbl.SetRows(componentTable(15).allRows)
	assert.Len(t, tbl.display, 1)

	// esc outside search mode clears the filter
	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, tbl.search)
	assert.Len(t, tbl.display, 15)
}

func TestTableModel_EscCancelsEmptySearch(t *testing.T) {
	tbl := componentTable(4)
	tbl, _ = tbl.Update(runeKey("/"))
	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, tbl.searching)
	assert.Empty(t, tbl.search)
	assert.Len(t, tbl.display, 4)
}

func TestTableModel_EmptyTableIgnoresInput(t *testing.T) {
	tbl := newViewTable("header")
	assert.True(t, tbl.empty())

	tbl, cmd := tbl.Update(runeKey("/"))
	assert.Nil(t, cmd)
	assert.False(t, tbl.searching)
	assert.Empty(t, tbl.render(80))
}

func TestTableModel_Render(t *testing.T) {
	tbl := componentTable(2)
	out := stripANSI(tbl.render(100))

	assert.Contains(t, out, "Control Plane")
	assert.Contains(t, out, "Page 1/1")
	assert.Contains(t, out, "Name↑")
	assert.Contains(t, out, "comp-00")
	assert.Contains(t, out, "comp-01")

	empty := newViewTable("monitoring")
	assert.Contains(t, stripANSI(empty.render(100)), "(none)")
}

func TestDigitToCol(t *testing.T) {
	assert.Equal(t, 0, digitToCol("1"))
	assert.Equal(t, 8, digitToCol("9"))
	assert.Equal(t, -1, digitToCol("0"))
	assert.Equal(t, -1, digitToCol("a"))
	assert.Equal(t, -1, digitToCol("12"))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, pageCount(0, 10))
	assert.Equal(t, 1, pageCount(10, 10))
	assert.Equal(t, 2, pageCount(11, 10))
	assert.Equal(t, 1, pageCount(5, 0))
}
