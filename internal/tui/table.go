package tui

import (
	"fmt"
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"colegios-cli/internal/model"
	"colegios-cli/internal/query"
)

// pad truncates s to w cells and right-pads with spaces. Width is measured in
// terminal cells so styled or multi-byte text lines up.
func pad(s string, w int) string {
	s = xansi.Truncate(s, w, "…")
	if gap := w - xansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

func renderSchools(width int, schools []model.School) string {
	if len(schools) == 0 {
		return styleMuted().Render("No records.")
	}
	const (
		provW    = 18
		numW     = 12
		yearW    = 6
		colGap   = 2
		minNameW = 12
	)
	nameW := width - provW - numW - yearW - 3*colGap
	if nameW < minNameW {
		nameW = minNameW
	}
	gap := strings.Repeat(" ", colGap)

	var b strings.Builder
	b.WriteString(styleHeader().Render(
		pad("Provincia", provW) + gap + pad("Colegio", nameW) + gap +
			pad("Estudiantes", numW) + gap + pad("Año", yearW)))
	b.WriteString("\n")
	for _, s := range schools {
		year := ""
		if s.Founded > 0 {
			year = strconv.Itoa(s.Founded)
		}
		b.WriteString(pad(s.Province, provW))
		b.WriteString(gap)
		b.WriteString(pad(s.Name, nameW))
		b.WriteString(gap)
		b.WriteString(pad(strconv.Itoa(s.Students), numW))
		b.WriteString(gap)
		b.WriteString(pad(year, yearW))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(fmt.Sprintf("%d record(s)", len(schools))))
	return b.String()
}

func renderStats(sum *query.Summary) string {
	if sum == nil {
		return styleMuted().Render("No records to summarize.")
	}
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(pad(label, 26))
		b.WriteString(value)
		b.WriteString("\n")
	}
	b.WriteString(styleTitle().Render("Statistics"))
	b.WriteString("\n\n")
	row("Records", strconv.Itoa(sum.Count))
	row("Oldest", fmt.Sprintf("%s (%d)", sum.Oldest.Name, sum.Oldest.Founded))
	row("Newest", fmt.Sprintf("%s (%d)", sum.Newest.Name, sum.Newest.Founded))
	row("Mean founding year", strconv.Itoa(sum.MeanFounded))
	row("Total students", strconv.Itoa(sum.TotalStudents))
	row("Mean students", strconv.Itoa(sum.MeanStudents))
	row("Most students", fmt.Sprintf("%s (%d)", sum.MostStudents.Name, sum.MostStudents.Students))
	row("Least students", fmt.Sprintf("%s (%d)", sum.LeastStudents.Name, sum.LeastStudents.Students))
	b.WriteString("\n")
	b.WriteString(styleTitle().Render("Schools per province"))
	b.WriteString("\n")
	for _, prov := range sum.Provinces {
		row(prov.Province, strconv.Itoa(prov.Count))
	}
	return b.String()
}
