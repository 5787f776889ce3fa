package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

// columnDef describes a single column in a table.
type columnDef struct {
	Title   string
	Numeric bool // sort numerically instead of by text
}

// tableModel is a sortable, paginated, searchable table of string rows.
type tableModel struct {
	title     string
	columns   []columnDef
	allRows   [][]string // unfiltered source data
	display   [][]string // after filter + sort applied
	sortCol   int        // -1 = unsorted
	sortDesc  bool
	page      int // 0-indexed
	pageSize  int // default 10
	search    string
	searching bool
	input     textinput.Model
}

// newTableModel initialises a tableModel sorted by its first column.
func newTableModel(title string, cols []columnDef) tableModel {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 80
	return tableModel{
		title:    title,
		columns:  cols,
		sortCol:  0,
		pageSize: 10,
		input:    ti,
	}
}

// empty reports whether the table has no columns and should not render.
func (t tableModel) empty() bool {
	return len(t.columns) == 0
}

// SetRows replaces the data and re-applies the current filter and sort.
func (t *tableModel) SetRows(rows [][]string) {
	t.allRows = rows
	t.refresh()
}

func (t *tableModel) refresh() {
	numeric := false
	if t.sortCol >= 0 && t.sortCol < len(t.columns) {
		numeric = t.columns[t.sortCol].Numeric
	}
	t.display = sortRows(filterRows(t.allRows, t.search), t.sortCol, t.sortDesc, numeric)
	t.clampPage(len(t.display))
}

// Update handles keyboard input for sorting, pagination, and search.
func (t tableModel) Update(msg tea.Msg) (tableModel, tea.Cmd) {
	if t.empty() {
		return t, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if t.searching {
			switch {
			case key.Matches(msg, keys.Escape):
				t.searching = false
				t.input.Blur()
				if t.input.Value() == "" {
					t.search = ""
					t.refresh()
				}
				return t, nil
			case msg.String() == "enter":
				t.search = t.input.Value()
				t.searching = false
				t.input.Blur()
				t.page = 0
				t.refresh()
				return t, nil
			default:
				var cmd tea.Cmd
				t.input, cmd = t.input.Update(msg)
				return t, cmd
			}
		}

		switch {
		case key.Matches(msg, keys.Search):
			t.searching = true
			t.input.SetValue(t.search)
			t.input.Focus()
			return t, textinput.Blink
		case key.Matches(msg, keys.Escape):
			t.search = ""
			t.input.SetValue("")
			t.page = 0
			t.refresh()
			return t, nil
		case key.Matches(msg, keys.PrevPage):
			if t.page > 0 {
				t.page--
			}
			return t, nil
		case key.Matches(msg, keys.NextPage):
			t.page++
			t.clampPage(len(t.display))
			return t, nil
		default:
			col := digitToCol(msg.String())
			if col >= 0 && col < len(t.columns) {
				if col == t.sortCol {
					t.sortDesc = !t.sortDesc
				} else {
					t.sortCol = col
					t.sortDesc = false
				}
				t.page = 0
				t.refresh()
			}
		}
	}
	return t, nil
}

// digitToCol converts a "1"–"9" key string to a 0-indexed column number.
// Returns -1 for any other string.
func digitToCol(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1')
	}
	return -1
}

// pageCount returns the total number of pages for totalRows rows at pageSize rows per page.
// Always at least 1.
func pageCount(totalRows, pageSize int) int {
	if totalRows == 0 || pageSize <= 0 {
		return 1
	}
	c := totalRows / pageSize
	if totalRows%pageSize != 0 {
		c++
	}
	return c
}

// clampPage keeps the page index within bounds for totalRows.
func (t *tableModel) clampPage(totalRows int) {
	pc := pageCount(totalRows, t.pageSize)
	if t.page >= pc {
		t.page = pc - 1
	}
	if t.page < 0 {
		t.page = 0
	}
}

// pageRows returns the rows visible on the current page.
func (t tableModel) pageRows() [][]string {
	if t.pageSize <= 0 || len(t.display) == 0 {
		return t.display
	}
	start := t.page * t.pageSize
	if start >= len(t.display) {
		start = 0
	}
	end := min(start+t.pageSize, len(t.display))
	return t.display[start:end]
}

// render draws the title bar and the current page.
func (t tableModel) render(width int) string {
	if t.empty() {
		return ""
	}
	hdr := t.renderHeader()

	rows := t.pageRows()
	if len(rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, hdr, StyleDim.Render("  (none)"))
	}

	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Title
		if i == t.sortCol {
			if t.sortDesc {
				headers[i] += "↓"
			} else {
				headers[i] += "↑"
			}
		}
	}

	sortCol := t.sortCol
	statusCol := t.statusColumn()
	tbl := ltable.New().
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				if col == sortCol {
					return lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
				}
				return lipgloss.NewStyle().Bold(true).Foreground(colorGray)
			}
			base := lipgloss.NewStyle().Foreground(colorWhite)
			if row%2 == 0 {
				base = base.Background(colorAlt)
			}
			if col == statusCol && row >= 0 && row < len(rows) {
				return base.Foreground(statusColor(rows[row][col]))
			}
			return base
		}).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(false)

	if width > 0 {
		tbl = tbl.Width(width)
	}
	for _, r := range rows {
		tbl = tbl.Row(r...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, hdr, tbl.String())
}

// statusColumn returns the index of the "Status" column or -1.
func (t tableModel) statusColumn() int {
	for i, c := range t.columns {
		if c.Title == "Status" {
			return i
		}
	}
	return -1
}

// renderHeader renders the title bar with search/sort/page hints.
func (t tableModel) renderHeader() string {
	pageInfo := fmt.Sprintf("Page %d/%d", t.page+1, pageCount(len(t.display), t.pageSize))

	var right string
	switch {
	case t.searching:
		right = "Search: " + t.input.View()
	case t.search != "":
		right = fmt.Sprintf("filter=%q  %s", t.search, pageInfo)
	default:
		right = fmt.Sprintf("[/: search]  [1-%d: sort]  [←→: page]  %s", len(t.columns), pageInfo)
	}
	return StyleDim.Render(t.title + "  " + right)
}
