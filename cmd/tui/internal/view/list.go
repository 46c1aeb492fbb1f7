package view

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

type ListModel struct {
	svc   *expense.Service
	owner string

	table   table.Model
	records []*expense.Record

	// Filter cycling. Only one of period and category is active at a time,
	// since a month filter always takes precedence over category.
	period      Period
	categories  []string
	categoryIdx int

	loading bool
	err     error
}

func NewListModel(svc *expense.Service, owner string) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Category", Width: 18},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		svc:     svc,
		owner:   owner,
		table:   t,
		loading: true,
	}
}

func (m ListModel) Title() string { return "Expenses" }

func (m ListModel) ShortHelp() string {
	return "Esc: back | m: month filter | c: category filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.records = msg.records
			m.rememberCategories()
			m.refreshTable()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "m":
			m.period = m.period.Next()
			m.categoryIdx = 0
			m.loading = true

			return m, m.loadCmd()
		case "c":
			if len(m.categories) == 0 {
				return m, nil
			}

			m.categoryIdx = (m.categoryIdx + 1) % (len(m.categories) + 1)
			m.period = PeriodAll
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	header := fmt.Sprintf(
		"Filter: [m] Month: %s | [c] Category: %s",
		activeStyle(m.period.String()),
		activeStyle(m.categoryLabel()),
	)

	var total float64
	for _, r := range m.records {
		total += r.Amount
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	footer := lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("%d expenses | total %s", len(m.records), FormatAmount(total)),
	)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		footer,
	))
}

func (m ListModel) categoryLabel() string {
	if m.categoryIdx == 0 {
		return "All"
	}

	return m.categories[m.categoryIdx-1]
}

func (m ListModel) filter() expense.ListFilter {
	if m.categoryIdx > 0 {
		return expense.ListFilter{Category: m.categories[m.categoryIdx-1]}
	}

	return m.period.Filter(time.Now())
}

// rememberCategories keeps every category seen so far as a cycling option.
func (m *ListModel) rememberCategories() {
	for _, r := range m.records {
		if !slices.Contains(m.categories, r.Category) {
			m.categories = append(m.categories, r.Category)
		}
	}

	current := m.categoryLabel()
	slices.Sort(m.categories)

	if m.categoryIdx > 0 {
		m.categoryIdx = slices.Index(m.categories, current) + 1
	}
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.records))
	for _, r := range m.records {
		rows = append(rows, table.Row{
			r.Date,
			r.Category,
			FormatAmount(r.Amount),
			r.Description,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	records []*expense.Record
	err     error
}

func (m ListModel) loadCmd() tea.Cmd {
	filter := m.filter()

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		records, err := m.svc.List(ctx, m.owner, filter)

		return loadListMsg{records: records, err: err}
	}
}
