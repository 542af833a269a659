package session

import (
	"context"
	"fmt"

	"colegios-cli/internal/model"
	"colegios-cli/internal/store"
	"colegios-cli/internal/textutil"
)

// FileBacked serves a session from the local CSV store. Every mutation
// rewrites the whole authoritative file, which regenerates the subgroup
// projections as a side effect of the save path.
type FileBacked struct {
	Store store.FileStore
}

func (f *FileBacked) Describe() string {
	return fmt.Sprintf("local CSV file (%s)", f.Store.Path)
}

// List ignores the query hints: the engine filters locally either way.
func (f *FileBacked) List(ctx context.Context, _ ListQuery) (Collection, error) {
	schools, skipped, err := f.Store.Load()
	if err != nil {
		return Collection{}, err
	}
	return Collection{Schools: schools, Skipped: skipped}, nil
}

func (f *FileBacked) Find(ctx context.Context, name string) ([]Match, error) {
	schools, _, err := f.Store.Load()
	if err != nil {
		return nil, err
	}
	var matches []Match
	for i, s := range schools {
		if textutil.Contains(s.Name, name) {
			matches = append(matches, Match{Index: i, School: s})
		}
	}
	return matches, nil
}

func (f *FileBacked) Create(ctx context.Context, rec model.School) (model.School, error) {
	rec.ID = 0 // ids belong to the remote store
	if err := f.Store.Add(rec); err != nil {
		return model.School{}, err
	}
	return rec, nil
}

func (f *FileBacked) Update(ctx context.Context, m Match, ch model.Changes) (model.School, error) {
	schools, _, err := f.Store.Load()
	if err != nil {
		return model.School{}, err
	}
	if m.Index < 0 || m.Index >= len(schools) {
		return model.School{}, &NotFoundError{Name: m.School.Name}
	}
	updated := ch.Apply(schools[m.Index])
	if err := updated.Validate(); err != nil {
		return model.School{}, err
	}
	if err := f.Store.Update(m.Index, updated); err != nil {
		return model.School{}, err
	}
	return updated, nil
}

func (f *FileBacked) Delete(ctx context.Context, m Match) error {
	if m.Index < 0 {
		return &NotFoundError{Name: m.School.Name}
	}
	return f.Store.Delete(m.Index)
}
