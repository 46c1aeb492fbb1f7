package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

type ReportModel struct {
	svc   *expense.Service
	owner string

	grouping expense.Grouping
	period   Period
	table    table.Model
	report   expense.Report

	loading bool
	err     error
}

func NewReportModel(svc *expense.Service, owner string) ReportModel {
	t := table.New(table.WithFocused(true), table.WithHeight(15))

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	t.SetStyles(s)

	return ReportModel{
		svc:      svc,
		owner:    owner,
		grouping: expense.GroupByMonth,
		table:    t,
		loading:  true,
	}
}

func (m ReportModel) Title() string { return "Reports" }

func (m ReportModel) ShortHelp() string {
	return "Esc: back | g: toggle grouping | m: month filter | r: refresh"
}

func (m ReportModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.report = msg.report
			m.refreshTable()
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "g":
			if m.grouping == expense.GroupByMonth {
				m.grouping = expense.GroupByCategory
			} else {
				m.grouping = expense.GroupByMonth
			}

			m.loading = true

			return m, m.loadCmd()
		case "m":
			m.period = m.period.Next()
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *ReportModel) refreshTable() {
	var (
		columns []table.Column
		rows    []table.Row
	)

	switch m.report.Grouping {
	case expense.GroupByCategory:
		columns = []table.Column{
			{Title: "Category", Width: 18},
			{Title: "Total", Width: 12},
			{Title: "By Month", Width: 60},
		}
		for _, c := range m.report.Categories {
			rows = append(rows, table.Row{c.Category, FormatAmount(c.TotalAmount), FormatBreakdown(c.MonthBreakdown)})
		}
	default:
		columns = []table.Column{
			{Title: "Month", Width: 10},
			{Title: "Total", Width: 12},
			{Title: "By Category", Width: 60},
		}
		for _, mo := range m.report.Months {
			rows = append(rows, table.Row{mo.YearMonth, FormatAmount(mo.TotalAmount), FormatBreakdown(mo.CategoryBreakdown)})
		}
	}

	m.table.SetColumns(columns)
	m.table.SetRows(rows)
}

func (m ReportModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Building report...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	header := fmt.Sprintf(
		"[g] Grouped by: %s | [m] Month: %s",
		activeStyle(m.grouping.String()),
		activeStyle(m.period.String()),
	)

	body := m.table.View()
	if len(m.report.Months) == 0 && len(m.report.Categories) == 0 {
		body = lipgloss.NewStyle().Faint(true).Render("No expenses in this period.")
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		body,
	))
}

type reportMsg struct {
	report expense.Report
	err    error
}

func (m ReportModel) loadCmd() tea.Cmd {
	filter := m.period.Filter(time.Now())
	grouping := m.grouping

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		rep, err := m.svc.Report(ctx, m.owner, filter, grouping)

		return reportMsg{report: rep, err: err}
	}
}
