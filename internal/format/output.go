package format

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"colegios-cli/internal/model"
	"colegios-cli/internal/query"
	"colegios-cli/internal/store"
)

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - table
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "table":
		return WriteTable(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteTable renders the known payload shapes as aligned text. Anything it
// does not recognize falls back to pretty JSON so output is never lost.
func WriteTable(w io.Writer, v any) error {
	// Commands wrap payloads as {"data": ...}; unwrap for table rendering.
	if m, ok := v.(map[string]any); ok {
		if data, ok := m["data"]; ok {
			v = data
		}
	}

	switch t := v.(type) {
	case []model.School:
		return writeSchools(w, t)
	case model.School:
		return writeSchools(w, []model.School{t})
	case *query.Summary:
		return writeSummary(w, t)
	case store.SubgroupsInfo:
		return writeSubgroups(w, t)
	default:
		return WriteJSON(w, v, true)
	}
}

func writeSchools(w io.Writer, schools []model.School) error {
	if len(schools) == 0 {
		_, err := fmt.Fprintln(w, "no schools")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", model.FieldName, model.FieldProvince, model.FieldStudents, model.FieldFounded)
	for _, s := range schools {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", s.Name, s.Province, s.Students, s.Founded)
	}
	return tw.Flush()
}

func writeSummary(w io.Writer, s *query.Summary) error {
	if s == nil {
		_, err := fmt.Fprintln(w, "no data")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "schools\t%d\n", s.Count)
	fmt.Fprintf(tw, "oldest\t%s (%d)\n", s.Oldest.Name, s.Oldest.Founded)
	fmt.Fprintf(tw, "newest\t%s (%d)\n", s.Newest.Name, s.Newest.Founded)
	fmt.Fprintf(tw, "mean founding year\t%d\n", s.MeanFounded)
	fmt.Fprintf(tw, "total students\t%d\n", s.TotalStudents)
	fmt.Fprintf(tw, "mean students\t%d\n", s.MeanStudents)
	fmt.Fprintf(tw, "most students\t%s (%d)\n", s.MostStudents.Name, s.MostStudents.Students)
	fmt.Fprintf(tw, "fewest students\t%s (%d)\n", s.LeastStudents.Name, s.LeastStudents.Students)
	for _, p := range s.Provinces {
		fmt.Fprintf(tw, "  %s\t%d\n", p.Province, p.Count)
	}
	return tw.Flush()
}

func writeSubgroups(w io.Writer, info store.SubgroupsInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "root\t%s\n", info.Root)
	for _, dim := range []string{store.DimProvince, store.DimStudentCount, store.DimFoundingYear} {
		d := info.Dimensions[dim]
		fmt.Fprintf(tw, "%s\t%d file(s)\n", dim, d.Count)
		for _, f := range d.Files {
			fmt.Fprintf(tw, "  %s\t\n", f)
		}
	}
	return tw.Flush()
}
