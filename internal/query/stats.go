package query

import (
	"sort"

	"colegios-cli/internal/model"
)

// ProvinceCount is one entry of the per-province breakdown.
type ProvinceCount struct {
	Province string `json:"Provincia"`
	Count    int    `json:"count"`
}

// Summary aggregates the whole collection. Mean values are
// integer-truncated.
type Summary struct {
	Count         int             `json:"count"`
	Oldest        model.School    `json:"oldest"`
	Newest        model.School    `json:"newest"`
	MeanFounded   int             `json:"meanFounded"`
	TotalStudents int             `json:"totalStudents"`
	MeanStudents  int             `json:"meanStudents"`
	MostStudents  model.School    `json:"mostStudents"`
	LeastStudents model.School    `json:"leastStudents"`
	Provinces     []ProvinceCount `json:"provinces"`
}

// Stats computes the aggregate summary. It returns nil for an empty
// collection ("no data" is not an error). Ties are broken by original order:
// the first occurrence wins for every min/max.
func Stats(schools []model.School) *Summary {
	if len(schools) == 0 {
		return nil
	}

	s := &Summary{
		Count:         len(schools),
		Oldest:        schools[0],
		Newest:        schools[0],
		MostStudents:  schools[0],
		LeastStudents: schools[0],
	}

	var yearSum, yearCount int
	counts := make(map[string]int)
	for i, c := range schools {
		if i > 0 {
			if c.Founded < s.Oldest.Founded {
				s.Oldest = c
			}
			if c.Founded > s.Newest.Founded {
				s.Newest = c
			}
			if c.Students > s.MostStudents.Students {
				s.MostStudents = c
			}
			if c.Students < s.LeastStudents.Students {
				s.LeastStudents = c
			}
		}
		if c.Founded > 0 {
			yearSum += c.Founded
			yearCount++
		}
		s.TotalStudents += c.Students
		counts[c.Province]++
	}

	if yearCount > 0 {
		s.MeanFounded = yearSum / yearCount
	}
	s.MeanStudents = s.TotalStudents / len(schools)

	provinces := make([]string, 0, len(counts))
	for p := range counts {
		provinces = append(provinces, p)
	}
	sort.Strings(provinces)
	for _, p := range provinces {
		s.Provinces = append(s.Provinces, ProvinceCount{Province: p, Count: counts[p]})
	}
	return s
}
