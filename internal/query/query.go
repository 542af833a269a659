// Package query implements search, filtering, sorting and statistics over an
// in-memory school collection. Every function is pure: inputs are never
// mutated, and the same engine runs over records regardless of whether they
// came from the local file or the remote API.
package query

import (
	"fmt"
	"sort"
	"strings"

	"colegios-cli/internal/model"
	"colegios-cli/internal/textutil"
)

// SearchName keeps the records whose normalized name contains the normalized
// query substring. An empty query matches nothing.
func SearchName(schools []model.School, q string) []model.School {
	return filterText(schools, q, func(s model.School) string { return s.Name })
}

// FilterProvince applies the same containment rule to the province field.
func FilterProvince(schools []model.School, province string) []model.School {
	return filterText(schools, province, func(s model.School) string { return s.Province })
}

func filterText(schools []model.School, q string, field func(model.School) string) []model.School {
	out := []model.School{}
	nq := textutil.Normalize(q)
	if nq == "" {
		return out
	}
	for _, s := range schools {
		if strings.Contains(textutil.Normalize(field(s)), nq) {
			out = append(out, s)
		}
	}
	return out
}

// FilterStudents keeps records with min <= Students <= max. A min greater
// than max simply yields an empty result.
func FilterStudents(schools []model.School, min, max int) []model.School {
	return filterRange(schools, min, max, func(s model.School) int { return s.Students })
}

// FilterFounded keeps records with min <= Founded <= max.
func FilterFounded(schools []model.School, min, max int) []model.School {
	return filterRange(schools, min, max, func(s model.School) int { return s.Founded })
}

func filterRange(schools []model.School, min, max int, field func(model.School) int) []model.School {
	out := []model.School{}
	for _, s := range schools {
		if v := field(s); v >= min && v <= max {
			out = append(out, s)
		}
	}
	return out
}

// SortBy returns a stably-sorted copy. Text fields compare by normalized
// value so case and accents do not affect order; numeric fields compare raw.
// An unknown field is an error and the returned slice preserves the input
// order.
func SortBy(schools []model.School, field string, desc bool) ([]model.School, error) {
	out := append([]model.School(nil), schools...)

	var less func(a, b model.School) bool
	switch field {
	case model.FieldProvince:
		less = func(a, b model.School) bool {
			return textutil.Normalize(a.Province) < textutil.Normalize(b.Province)
		}
	case model.FieldName:
		less = func(a, b model.School) bool {
			return textutil.Normalize(a.Name) < textutil.Normalize(b.Name)
		}
	case model.FieldStudents:
		less = func(a, b model.School) bool { return a.Students < b.Students }
	case model.FieldFounded:
		less = func(a, b model.School) bool { return a.Founded < b.Founded }
	default:
		return out, fmt.Errorf("unknown sort field %q (valid: %s)",
			field, strings.Join(model.Fields(), ", "))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out, nil
}
