// Package tui is the terminal front end: an entry form, the expense table and
// the monthly report, driven by bubbletea.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/services"
)

// Tracker is the part of services.Tracker the UI depends on.
type Tracker interface {
	AddExpense(ctx context.Context, amountText, category, dateText, description string) error
	DeleteExpense(ctx context.Context, index int) error
	ListExpenses() []core.Expense
	MonthlyReport() ([]core.MonthTotal, error)
	Categories() []string
}

var _ Tracker = (*services.Tracker)(nil)

type focus int

const (
	focusAmount focus = iota
	focusCategory
	focusDate
	focusDescription
	focusTable
	focusCount
)

const (
	msgAdded    = "Expense added successfully!"
	msgDeleted  = "Expense deleted successfully."
	msgNoSelect = "No expense selected to delete."
	msgNoReport = "No expenses to show report."
)

// Model is the bubbletea model. Rows mirror tracker.ListExpenses() and are
// re-read after every mutation; selected indexes into rows, -1 for none.
type Model struct {
	ctx     context.Context
	tracker Tracker
	symbol  string
	logger  *log.Logger

	categories  []string
	amount      string
	categoryIdx int
	date        string
	description string
	focus       focus

	rows     []core.Expense
	selected int

	feedback    string
	feedbackErr bool

	report     string
	showReport bool

	width int
}

// New builds the model. symbol prefixes amounts in the table and the report.
// A nil logger discards.
func New(ctx context.Context, tracker Tracker, symbol string, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Discard()
	}
	m := Model{
		ctx:        ctx,
		tracker:    tracker,
		symbol:     symbol,
		logger:     logger.WithComponent(log.ComponentUI),
		categories: tracker.Categories(),
		selected:   -1,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showReport {
		switch key {
		case "esc", "enter", "q":
			m.showReport = false
		}
		return m, nil
	}

	switch key {
	case "tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case "ctrl+r":
		m.showMonthlyReport()
		return m, nil
	case "ctrl+l":
		m.clearForm()
		return m, nil
	case "ctrl+d":
		m.deleteSelected()
		return m, nil
	}

	switch m.focus {
	case focusTable:
		m.handleTableKey(key)
	case focusCategory:
		m.handleCategoryKey(key)
	default:
		m.handleFieldKey(msg)
	}
	return m, nil
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusTable && m.selected == -1 && len(m.rows) > 0 {
		m.selected = 0
	}
}

func (m *Model) handleTableKey(key string) {
	switch key {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.rows)-1 {
			m.selected++
		}
	case "delete", "d":
		m.deleteSelected()
	}
}

func (m *Model) handleCategoryKey(key string) {
	n := len(m.categories)
	if n == 0 {
		return
	}
	switch key {
	case "left", "h":
		m.categoryIdx = (m.categoryIdx + n - 1) % n
	case "right", "l", " ":
		m.categoryIdx = (m.categoryIdx + 1) % n
	case "enter":
		m.addExpense()
	}
}

func (m *Model) handleFieldKey(msg tea.KeyMsg) {
	field := m.activeField()
	switch msg.Type {
	case tea.KeyEnter:
		m.addExpense()
	case tea.KeyBackspace:
		if r := []rune(*field); len(r) > 0 {
			*field = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		*field += string(msg.Runes)
	}
}

func (m *Model) activeField() *string {
	switch m.focus {
	case focusDate:
		return &m.date
	case focusDescription:
		return &m.description
	default:
		return &m.amount
	}
}

func (m *Model) category() string {
	if len(m.categories) == 0 {
		return ""
	}
	return m.categories[m.categoryIdx]
}

func (m *Model) addExpense() {
	err := m.tracker.AddExpense(m.ctx, m.amount, m.category(), m.date, m.description)
	if err != nil {
		m.fail(err)
		return
	}
	m.refresh()
	m.clearForm()
	m.succeed(msgAdded)
}

func (m *Model) deleteSelected() {
	err := m.tracker.DeleteExpense(m.ctx, m.selected)
	if err != nil {
		m.fail(err)
		return
	}
	m.refresh()
	m.succeed(msgDeleted)
}

func (m *Model) showMonthlyReport() {
	totals, err := m.tracker.MonthlyReport()
	if err != nil {
		m.fail(err)
		return
	}
	m.report = core.FormatReport(totals, m.symbol)
	m.showReport = true
	m.logger.DebugContext(m.ctx, "Showing monthly report",
		log.NewFields().WithOperation(log.OpReport).WithCount(len(totals)).ToSlice()...)
}

// clearForm resets the inputs to their initial state.
func (m *Model) clearForm() {
	m.amount = ""
	m.categoryIdx = 0
	m.date = ""
	m.description = ""
	m.feedback = ""
	m.feedbackErr = false
}

// refresh re-reads the rows and drops the selection, which may no longer
// point at the same record.
func (m *Model) refresh() {
	m.rows = m.tracker.ListExpenses()
	m.selected = -1
}

func (m *Model) succeed(text string) {
	m.feedback = text
	m.feedbackErr = false
}

func (m *Model) fail(err error) {
	m.logger.DebugContext(m.ctx, "Showing error feedback", log.FieldError, err.Error())
	m.feedbackErr = true
	switch {
	case errors.Is(err, core.ErrNothingSelected):
		m.feedback = msgNoSelect
	case errors.Is(err, core.ErrEmptyDataset):
		m.feedback = msgNoReport
	default:
		m.feedback = err.Error()
	}
}
