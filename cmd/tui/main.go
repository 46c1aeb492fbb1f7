package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendwise/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/spendwise/internal/backend"
	"github.com/MrJamesThe3rd/spendwise/internal/config"
	"github.com/MrJamesThe3rd/spendwise/internal/expense"
	"github.com/MrJamesThe3rd/spendwise/internal/export"
	"github.com/MrJamesThe3rd/spendwise/internal/importer"
)

type model struct {
	owner          string
	expenseService *expense.Service
	importService  *importer.Service
	exportService  *export.Service

	currentView View

	listView   view.ListModel
	addView    view.AddModel
	reportView view.ReportModel
	importView view.ImportModel
	exportView view.ExportModel
}

type View int

const (
	ViewMenu   View = 0
	ViewList   View = 1
	ViewAdd    View = 2
	ViewReport View = 3
	ViewImport View = 4
	ViewExport View = 5
)

func initialModel(cfg *config.Config, store expense.Store) model {
	expSvc := expense.NewService(store)
	owner := cfg.TUI.Owner

	return model{
		owner:          owner,
		expenseService: expSvc,
		importService:  importer.NewService(expSvc),
		exportService:  export.NewService(expSvc),
		currentView:    ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.expenseService, m.owner)

				return m, m.listView.Init()
			case "2":
				m.currentView = ViewAdd
				m.addView = view.NewAddModel(m.expenseService, m.owner)

				return m, m.addView.Init()
			case "3":
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.expenseService, m.owner)

				return m, m.reportView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService, m.owner)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.owner)

				return m, m.exportView.Init()
			}
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Spendwise\n\n" +
				"1. List Expenses\n" +
				"2. Add Expense\n" +
				"3. Reports\n" +
				"4. Import CSV\n" +
				"5. Export CSV\n\n" +
				"q. Quit",
		)
	case ViewList:
		current = m.listView
	case ViewAdd:
		current = m.addView
	case ViewReport:
		current = m.reportView
	case ViewImport:
		current = m.importView
	case ViewExport:
		current = m.exportView
	default:
		return "Unknown View"
	}

	title := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(current.Title())
	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, current.View(), help)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.TUI.Owner == "" {
		slog.Error("TUI_OWNER must be set to the identity whose expenses are managed")
		os.Exit(1)
	}

	res, err := backend.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(cfg, res.Store))

	_, err = p.Run()

	if cerr := res.Cleanup(); cerr != nil {
		slog.Error("failed to close store", "error", cerr)
	}

	if err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
