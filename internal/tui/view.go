package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"expensetracker/internal/core"
)

const (
	colAmount      = 12
	colCategory    = 14
	colDate        = 10
	colDescription = 28
	fieldWidth     = 22
)

func (m Model) View() string {
	if m.showReport {
		return m.reportView()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.formView(), " ", m.tableView())
	if m.width > 0 && lipgloss.Width(body) > m.width {
		body = lipgloss.JoinVertical(lipgloss.Left, m.formView(), m.tableView())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Expense Tracker"),
		body,
		m.feedbackView(),
		mutedStyle.Render("tab next field  enter add  ctrl+d delete  ctrl+r report  ctrl+l clear  ctrl+c quit"),
	)
}

func (m Model) formView() string {
	lines := []string{
		titleStyle.Render("Add New Expense"),
		"",
		m.fieldLine(focusAmount, fmt.Sprintf("Amount (%s):", m.symbol), m.amount),
		m.fieldLine(focusCategory, "Category:", "< "+m.category()+" >"),
		m.fieldLine(focusDate, "Date (YYYY-MM-DD):", m.date),
		m.fieldLine(focusDescription, "Description:", m.description),
	}
	style := panelStyle
	if m.focus != focusTable {
		style = focusedPanelStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) fieldLine(f focus, label, value string) string {
	value = ansi.Truncate(value, fieldWidth, "…")
	if m.focus == f {
		if f != focusCategory {
			value += "_"
		}
		return focusStyle.Render("> "+label) + "\n  " + value
	}
	return labelStyle.Render("  "+label) + "\n  " + value
}

func (m Model) tableView() string {
	header := headerStyle.Render(row(
		fmt.Sprintf("Amount (%s)", m.symbol), "Category", "Date", "Description"))
	lines := []string{header}

	if len(m.rows) == 0 {
		lines = append(lines, mutedStyle.Render("No expenses recorded yet."))
	}
	for i, e := range m.rows {
		line := row(core.FormatAmount(e.Amount), e.Category, e.Date, e.Description)
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	style := panelStyle
	if m.focus == focusTable {
		style = focusedPanelStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) feedbackView() string {
	if m.feedback == "" {
		return " "
	}
	if m.feedbackErr {
		return errorStyle.Render(m.feedback)
	}
	return successStyle.Render(m.feedback)
}

func (m Model) reportView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		focusedPanelStyle.Render(titleStyle.Render("Monthly Report")+"\n\n"+strings.TrimRight(m.report, "\n")),
		mutedStyle.Render("esc close"),
	)
}

func row(amount, category, date, description string) string {
	return strings.Join([]string{
		cell(amount, colAmount),
		cell(category, colCategory),
		cell(date, colDate),
		cell(description, colDescription),
	}, "  ")
}

// cell truncates s to width display columns and pads it on the right.
func cell(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
