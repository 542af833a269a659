package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"colegios-cli/internal/api"
	"colegios-cli/internal/model"
	"colegios-cli/internal/query"
	"colegios-cli/internal/session"
	"colegios-cli/internal/store"
)

type screen int

const (
	screenModeSelect screen = iota
	screenMenu
	screenForm
	screenResults
	screenStats
	screenConfirm
)

type resultsMsg struct {
	title   string
	schools []model.School
}

type statsMsg struct {
	summary *query.Summary
}

type matchMsg struct {
	next action
	m    session.Match
}

type savedMsg struct {
	text string
}

type errMsg struct {
	err error
}

type appModel struct {
	cfg  Config
	sess *session.Session

	width  int
	height int

	screen   screen
	modeMenu list.Model
	menu     list.Model

	form     form
	formKind action
	pending  session.Match // record being edited or deleted

	resultsTitle string
	results      []model.School
	summary      *query.Summary

	status    string // one-line feedback rendered under the menu
	statusErr bool
}

// newAppModel starts on the backend-select screen unless --api already made
// the choice.
func newAppModel(cfg Config) appModel {
	m := appModel{
		cfg:      cfg,
		modeMenu: newModeMenu(cfg.File, cfg.BaseURL),
	}
	if cfg.Remote {
		m.selectMode(true)
	}
	return m
}

// selectMode opens the session for the chosen backend and enters the menu.
func (m *appModel) selectMode(remote bool) {
	if remote {
		backend := session.NewRemoteBacked(api.NewClient(m.cfg.BaseURL), store.FileStore{Path: m.cfg.File})
		m.sess = session.NewRemote(backend)
	} else {
		m.sess = session.NewLocal(m.cfg.File)
	}
	m.menu = newMenu(remote)
	m.menu.SetSize(max(m.width-2, 0), max(m.height-4, 0))
	m.screen = screenMenu
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.modeMenu.SetSize(msg.Width-2, msg.Height-4)
		if m.sess != nil {
			m.menu.SetSize(msg.Width-2, msg.Height-4)
		}
		return m, nil

	case resultsMsg:
		m.screen = screenResults
		m.resultsTitle = msg.title
		m.results = msg.schools
		return m, nil

	case statsMsg:
		m.screen = screenStats
		m.summary = msg.summary
		return m, nil

	case matchMsg:
		return m.startMatchStage(msg)

	case savedMsg:
		m.screen = screenMenu
		m.status = msg.text
		m.statusErr = false
		return m, nil

	case errMsg:
		m.screen = screenMenu
		m.status = msg.err.Error()
		m.statusErr = true
		return m, nil
	}

	switch m.screen {
	case screenModeSelect:
		return m.updateModeSelect(msg)
	case screenMenu:
		return m.updateMenu(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenConfirm:
		return m.updateConfirm(msg)
	default: // results and stats are read-only
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc", "enter", "q":
				m.screen = screenMenu
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
		}
		return m, nil
	}
}

func (m appModel) updateModeSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			item, ok := m.modeMenu.SelectedItem().(menuItem)
			if !ok {
				return m, nil
			}
			switch item.action {
			case actionQuit:
				return m, tea.Quit
			case actionModeLocal:
				m.selectMode(false)
			case actionModeRemote:
				m.selectMode(true)
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.modeMenu, cmd = m.modeMenu.Update(msg)
	return m, cmd
}

func (m appModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			item, ok := m.menu.SelectedItem().(menuItem)
			if !ok {
				return m, nil
			}
			return m.startAction(item.action)
		}
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m appModel) startAction(a action) (tea.Model, tea.Cmd) {
	m.status = ""
	switch a {
	case actionQuit:
		return m, tea.Quit

	case actionList:
		return m, m.loadAll()

	case actionStats:
		sess := m.sess
		return m, func() tea.Msg {
			sum, err := sess.Stats(context.Background())
			if err != nil {
				return errMsg{err}
			}
			return statsMsg{summary: sum}
		}

	case actionSearch:
		m.form = newForm("Search by name", "Name contains")
	case actionProvince:
		m.form = newForm("Filter by province", "Province")
	case actionStudents:
		m.form = newForm("Filter by student count", "Minimum", "Maximum")
	case actionFounded:
		m.form = newForm("Filter by founding year", "Minimum year", "Maximum year")
	case actionSort:
		m.form = newForm("Sort", "Column", "Descending? (y/n)")
		m.form.setPlaceholder(0, strings.Join(model.Fields(), " | "))
		m.form.setPlaceholder(1, "n")
	case actionAdd:
		m.form = newForm("Add a school", "Province", "Name", "Students", "Founding year")
	case actionEditFind:
		m.form = newForm("Edit: find the school", "Name contains")
	case actionDeleteFind:
		m.form = newForm("Delete: find the school", "Name contains")
	default:
		return m, nil
	}
	m.formKind = a
	m.screen = screenForm
	return m, nil
}

// startMatchStage runs after a find-by-name resolved to exactly one record,
// for the two-stage edit and delete flows.
func (m appModel) startMatchStage(msg matchMsg) (tea.Model, tea.Cmd) {
	m.pending = msg.m
	switch msg.next {
	case actionEditApply:
		rec := msg.m.School
		m.form = newForm("Edit "+rec.Name, "Province", "Name", "Students", "Founding year")
		m.form.setValue(0, rec.Province)
		m.form.setValue(1, rec.Name)
		m.form.setValue(2, strconv.Itoa(rec.Students))
		m.form.setValue(3, strconv.Itoa(rec.Founded))
		m.formKind = actionEditApply
		m.screen = screenForm
	default:
		m.screen = screenConfirm
	}
	return m, nil
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.screen = screenMenu
			return m, nil
		}
	}
	cmd, submitted := m.form.update(msg)
	if !submitted {
		return m, cmd
	}
	return m.submitForm()
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	sess := m.sess
	switch m.formKind {
	case actionSearch:
		name := m.form.value(0)
		return m, func() tea.Msg {
			out, err := sess.Search(context.Background(), name)
			if err != nil {
				return errMsg{err}
			}
			return resultsMsg{title: fmt.Sprintf("Name contains %q", name), schools: out}
		}

	case actionProvince:
		prov := m.form.value(0)
		return m, func() tea.Msg {
			out, err := sess.FilterProvince(context.Background(), prov)
			if err != nil {
				return errMsg{err}
			}
			return resultsMsg{title: "Province " + prov, schools: out}
		}

	case actionStudents, actionFounded:
		min, err := m.form.intValue(0, 0)
		if err != nil {
			return m, func() tea.Msg { return errMsg{err} }
		}
		max, err := m.form.intValue(1, 0)
		if err != nil {
			return m, func() tea.Msg { return errMsg{err} }
		}
		kind := m.formKind
		return m, func() tea.Msg {
			var out []model.School
			var title string
			var ferr error
			if kind == actionStudents {
				out, ferr = sess.FilterStudents(context.Background(), min, max)
				title = fmt.Sprintf("Students %d-%d", min, max)
			} else {
				out, ferr = sess.FilterFounded(context.Background(), min, max)
				title = fmt.Sprintf("Founded %d-%d", min, max)
			}
			if ferr != nil {
				return errMsg{ferr}
			}
			return resultsMsg{title: title, schools: out}
		}

	case actionSort:
		col := m.form.value(0)
		desc := strings.EqualFold(m.form.value(1), "y")
		return m, func() tea.Msg {
			out, err := sess.SortBy(context.Background(), col, desc)
			if err != nil {
				return errMsg{err}
			}
			dir := "ascending"
			if desc {
				dir = "descending"
			}
			return resultsMsg{title: "Sorted by " + col + ", " + dir, schools: out}
		}

	case actionAdd:
		rec, err := m.formSchool()
		if err != nil {
			return m, func() tea.Msg { return errMsg{err} }
		}
		return m, func() tea.Msg {
			created, err := sess.Create(context.Background(), rec)
			if err != nil {
				return errMsg{err}
			}
			return savedMsg{text: "Added " + created.Name}
		}

	case actionEditFind, actionDeleteFind:
		name := m.form.value(0)
		next := actionEditApply
		if m.formKind == actionDeleteFind {
			next = actionDeleteFind
		}
		return m, func() tea.Msg {
			match, err := sess.Resolve(context.Background(), name)
			if err != nil {
				return errMsg{err}
			}
			return matchMsg{next: next, m: match}
		}

	case actionEditApply:
		edited, err := m.formSchool()
		if err != nil {
			return m, func() tea.Msg { return errMsg{err} }
		}
		ch := changesBetween(m.pending.School, edited)
		if ch.Empty() {
			m.screen = screenMenu
			m.status = "Nothing changed."
			m.statusErr = false
			return m, nil
		}
		pending := m.pending
		return m, func() tea.Msg {
			updated, err := sess.Update(context.Background(), pending, ch)
			if err != nil {
				return errMsg{err}
			}
			return savedMsg{text: "Updated " + updated.Name}
		}
	}
	m.screen = screenMenu
	return m, nil
}

// formSchool reads the standard 4-field record form.
func (m *appModel) formSchool() (model.School, error) {
	students, err := m.form.intValue(2, 0)
	if err != nil {
		return model.School{}, err
	}
	founded, err := m.form.intValue(3, 0)
	if err != nil {
		return model.School{}, err
	}
	return model.School{
		Province: m.form.value(0),
		Name:     m.form.value(1),
		Students: students,
		Founded:  founded,
	}, nil
}

func changesBetween(old, edited model.School) model.Changes {
	var ch model.Changes
	if edited.Province != old.Province {
		ch.Province = &edited.Province
	}
	if edited.Name != old.Name {
		ch.Name = &edited.Name
	}
	if edited.Students != old.Students {
		ch.Students = &edited.Students
	}
	if edited.Founded != old.Founded {
		ch.Founded = &edited.Founded
	}
	return ch
}

func (m appModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		sess := m.sess
		pending := m.pending
		return m, func() tea.Msg {
			if err := sess.Delete(context.Background(), pending); err != nil {
				return errMsg{err}
			}
			return savedMsg{text: "Deleted " + pending.School.Name}
		}
	case "n", "N", "esc":
		m.screen = screenMenu
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) loadAll() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		if err := sess.Refresh(context.Background()); err != nil {
			return errMsg{err}
		}
		title := "All records"
		if n := sess.Skipped(); n > 0 {
			title = fmt.Sprintf("All records (%d malformed row(s) skipped)", n)
		}
		return resultsMsg{title: title, schools: sess.Schools()}
	}
}

func (m appModel) View() string {
	var body string
	switch m.screen {
	case screenModeSelect:
		body = m.modeMenu.View() + "\n" +
			styleMuted().Render("Pick where your records live · enter: select · q: quit")
	case screenForm:
		body = m.form.view()
	case screenResults:
		body = styleTitle().Render(m.resultsTitle) + "\n\n" +
			renderSchools(m.width-2, m.results) + "\n\n" +
			styleMuted().Render("esc: back")
	case screenStats:
		body = renderStats(m.summary) + "\n" + styleMuted().Render("esc: back")
	case screenConfirm:
		rec := m.pending.School
		body = styleTitle().Render("Delete this school?") + "\n\n" +
			renderSchools(m.width-2, []model.School{rec}) + "\n\n" +
			styleError().Render("y: delete") + "  " + styleMuted().Render("n: cancel")
	default:
		body = m.menu.View()
		footer := styleMuted().Render(m.sess.Describe() + " · enter: select · q: quit")
		if m.status != "" {
			st := styleOK()
			if m.statusErr {
				st = styleError()
			}
			footer = st.Render(m.status) + "\n" + footer
		}
		body += "\n" + footer
	}
	return lipgloss.NewStyle().Padding(1, 1).Render(body)
}
