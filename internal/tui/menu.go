package tui

import (
	"github.com/charmbracelet/bubbles/list"
)

type action int

const (
	actionModeLocal action = iota
	actionModeRemote
	actionList
	actionSearch
	actionProvince
	actionStudents
	actionFounded
	actionSort
	actionStats
	actionAdd
	actionEditFind
	actionEditApply
	actionDeleteFind
	actionQuit
)

type menuItem struct {
	action action
	title  string
	desc   string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

func menuItems(remote bool) []list.Item {
	source := "the CSV file"
	if remote {
		source = "the API"
	}
	return []list.Item{
		menuItem{actionList, "List records", "Show every school in " + source},
		menuItem{actionSearch, "Search by name", "Accent- and case-insensitive substring match"},
		menuItem{actionProvince, "Filter by province", "Schools in a given province"},
		menuItem{actionStudents, "Filter by student count", "Inclusive min/max range"},
		menuItem{actionFounded, "Filter by founding year", "Inclusive min/max range"},
		menuItem{actionSort, "Sort", "Order by any column, ascending or descending"},
		menuItem{actionStats, "Statistics", "Counts, extremes and means"},
		menuItem{actionAdd, "Add a school", "Create a new record"},
		menuItem{actionEditFind, "Edit a school", "Find a record by name and change its fields"},
		menuItem{actionDeleteFind, "Delete a school", "Find a record by name and remove it"},
		menuItem{actionQuit, "Quit", "Leave the program"},
	}
}

func newModeMenu(file, baseURL string) list.Model {
	items := []list.Item{
		menuItem{actionModeLocal, "Local CSV file", file},
		menuItem{actionModeRemote, "Remote API", baseURL},
		menuItem{actionQuit, "Quit", "Leave the program"},
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Colegios"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetKeys("q")
	return l
}

func newMenu(remote bool) list.Model {
	l := list.New(menuItems(remote), list.NewDefaultDelegate(), 0, 0)
	l.Title = "Colegios"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	// ESC is "back" everywhere else; on the menu only q quits.
	l.KeyMap.Quit.SetKeys("q")
	return l
}
