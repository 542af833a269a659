package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type field struct {
	label string
	input textinput.Model
}

// form is a vertical stack of labelled text inputs with tab/shift+tab focus
// cycling. Enter on the last field (or anywhere once every field is optional)
// submits.
type form struct {
	title  string
	fields []field
	focus  int
}

func newForm(title string, labels ...string) form {
	f := form{title: title, fields: make([]field, 0, len(labels))}
	for i, label := range labels {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 120
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		f.fields = append(f.fields, field{label: label, input: ti})
	}
	return f
}

func (f *form) setValue(i int, v string) {
	f.fields[i].input.SetValue(v)
}

func (f *form) setPlaceholder(i int, v string) {
	f.fields[i].input.Placeholder = v
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

// intValue parses field i, treating a blank value as def.
func (f *form) intValue(i int, def int) (int, error) {
	v := f.value(i)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", f.fields[i].label, v)
	}
	return n, nil
}

func (f *form) setFocus(i int) tea.Cmd {
	var cmd tea.Cmd
	for j := range f.fields {
		if j == i {
			cmd = f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
	f.focus = i
	return cmd
}

// update advances focus on tab/enter and reports submitted=true when enter is
// pressed on the last field.
func (f *form) update(msg tea.Msg) (tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return f.setFocus((f.focus + 1) % len(f.fields)), false
		case "shift+tab", "up":
			return f.setFocus((f.focus + len(f.fields) - 1) % len(f.fields)), false
		case "enter":
			if f.focus == len(f.fields)-1 {
				return nil, true
			}
			return f.setFocus(f.focus + 1), false
		}
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd, false
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render(f.title))
	b.WriteString("\n\n")
	for i := range f.fields {
		b.WriteString(styleMuted().Render(f.fields[i].label))
		b.WriteString("\n")
		b.WriteString(f.fields[i].input.View())
		b.WriteString("\n\n")
	}
	b.WriteString(styleMuted().Render("enter: next/submit · tab: move · esc: back"))
	return b.String()
}
