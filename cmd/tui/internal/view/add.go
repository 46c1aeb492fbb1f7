package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
)

type addState int

const (
	addStateForm addState = iota
	addStateSaving
	addStateResult
)

// addFields holds the form bindings. It lives behind a pointer so the huh
// inputs keep writing to the same values across model copies.
type addFields struct {
	category    string
	amount      string
	description string
	date        string
}

type AddModel struct {
	svc   *expense.Service
	owner string

	state  addState
	form   *huh.Form
	fields *addFields

	created *expense.Record
	err     error
}

func NewAddModel(svc *expense.Service, owner string) AddModel {
	m := AddModel{svc: svc, owner: owner}
	m.reset()

	return m
}

func (m *AddModel) reset() {
	m.state = addStateForm
	m.created = nil
	m.err = nil
	m.fields = &addFields{date: time.Now().Format(time.DateOnly)}
	m.form = buildAddForm(m.fields)
}

func buildAddForm(f *addFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&f.category).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("category cannot be empty")
					}

					return nil
				}),
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&f.amount).
				Validate(func(s string) error {
					if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
						return errors.New("amount must be a number")
					}

					return nil
				}),
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&f.description),
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.date).
				Validate(func(s string) error {
					_, err := expense.ParseDate(s)
					return err
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AddModel) Title() string { return "Add Expense" }

func (m AddModel) ShortHelp() string {
	if m.state == addStateResult {
		return "Enter: add another | Esc: back"
	}

	return "Tab: next field | Enter: submit | Esc: back"
}

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(addResultMsg); ok {
		m.state = addStateResult
		m.created = res.record
		m.err = res.err

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.Type == tea.KeyEsc:
			return m, Back
		case keyMsg.Type == tea.KeyEnter && m.state == addStateResult:
			m.reset()
			return m, m.form.Init()
		}
	}

	if m.state != addStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = addStateSaving

	return m, m.createCmd()
}

func (m AddModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case addStateSaving:
		return style.Render("Saving...")
	case addStateResult:
		if m.err != nil {
			return style.Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Enter to try again, Esc to go back)")
		}

		return style.Render(successStyle(fmt.Sprintf(
			"Saved %s %s on %s (%s)",
			m.created.Category, FormatAmount(m.created.Amount), m.created.Date, m.created.YearMonth,
		)) + "\n\n(Enter to add another, Esc to go back)")
	}

	return style.Render(m.form.View())
}

type addResultMsg struct {
	record *expense.Record
	err    error
}

func (m AddModel) createCmd() tea.Cmd {
	f := *m.fields

	return func() tea.Msg {
		amount, err := strconv.ParseFloat(strings.TrimSpace(f.amount), 64)
		if err != nil {
			return addResultMsg{err: err}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		rec, err := m.svc.Create(ctx, m.owner, expense.CreateParams{
			Category:    strings.TrimSpace(f.category),
			Amount:      &amount,
			Description: strings.TrimSpace(f.description),
			Date:        strings.TrimSpace(f.date),
		})

		return addResultMsg{record: rec, err: err}
	}
}
