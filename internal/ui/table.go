package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/harrylevesque/gallery/internal/gallery"
)

var tableHeaders = []string{"Name", "URL", ""}

// Table is the gallery list view. Every Replace swaps the whole row set.
type Table struct {
	mu     sync.RWMutex
	title  string
	rows   []gallery.Row
	styles Styles
}

// NewTable creates an empty table.
func NewTable(title string, styles Styles) *Table {
	return &Table{title: title, styles: styles}
}

// Replace discards the current rows and installs rows.
func (t *Table) Replace(rows []gallery.Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append([]gallery.Row(nil), rows...)
}

// Rows returns a copy of the displayed rows.
func (t *Table) Rows() []gallery.Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]gallery.Row(nil), t.rows...)
}

// View renders the table.
func (t *Table) View() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(t.styles.Title.Render(t.title))
		sb.WriteString("\n")
	}
	if len(t.rows) == 0 {
		sb.WriteString(t.styles.Muted.Render("no images"))
		sb.WriteString("\n")
		return sb.String()
	}

	cells := make([][]string, len(t.rows))
	for i, r := range t.rows {
		cells[i] = []string{r.Name, r.URL, deleteTag(string(r.ID))}
	}

	colWidths := make([]int, len(tableHeaders))
	for i, h := range tableHeaders {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}
	// Width includes padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := t.styles.Bold.Padding(0, 1)
	sep := t.styles.Muted.Render("|")

	for i, h := range tableHeaders {
		sb.WriteString(headerStyle.Width(colWidths[i]).Render(h))
		if i < len(tableHeaders)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")

	total := len(tableHeaders) - 1
	for _, w := range colWidths {
		total += w
	}
	sb.WriteString(t.styles.Muted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	cellStyles := []lipgloss.Style{t.styles.Body, t.styles.Link, t.styles.Error}
	for _, row := range cells {
		for i, cell := range row {
			sb.WriteString(cellStyles[i].Padding(0, 1).Width(colWidths[i]).Render(cell))
			if i < len(row)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func deleteTag(id string) string {
	return "[delete " + id + "]"
}
