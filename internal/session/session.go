// Package session holds the mutable state of one run: which backend is
// active (local file or remote API) and the cached record collection. Every
// operation takes the session explicitly, so the backend is swappable and
// nothing is shared behind the caller's back.
package session

import (
	"context"
	"fmt"

	"colegios-cli/internal/model"
	"colegios-cli/internal/query"
	"colegios-cli/internal/store"
)

type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// Collection is a loaded record set plus the number of rows dropped as
// invalid while loading (always 0 for the remote backend).
type Collection struct {
	Schools []model.School
	Skipped int
}

// ListQuery carries the optional server-side filter/sort hints. The local
// backend ignores them (the query engine does the work either way); the
// remote backend forwards them as request parameters.
type ListQuery struct {
	Query    string
	Province string
	SortBy   string
	Desc     bool
}

// Match is one record located by a name lookup. Index is its position in the
// local collection, -1 for remote records (which are addressed by ID).
type Match struct {
	Index  int
	School model.School
}

// Backend is the record-store capability: one implementation over the local
// CSV file, one over the remote API.
type Backend interface {
	Describe() string
	List(ctx context.Context, q ListQuery) (Collection, error)
	Find(ctx context.Context, name string) ([]Match, error)
	Create(ctx context.Context, s model.School) (model.School, error)
	Update(ctx context.Context, m Match, ch model.Changes) (model.School, error)
	Delete(ctx context.Context, m Match) error
}

type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no school matching %q", e.Name)
}

type AmbiguousError struct {
	Name    string
	Matches []Match
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%d schools match %q; be more specific", len(e.Matches), e.Name)
}

type Session struct {
	backend Backend
	mode    Mode

	schools []model.School
	skipped int
}

// NewLocal opens a session over the CSV file at path.
func NewLocal(path string) *Session {
	return &Session{backend: &FileBacked{Store: store.FileStore{Path: path}}, mode: ModeLocal}
}

// NewRemote opens a session over a remote backend.
func NewRemote(b *RemoteBacked) *Session {
	return &Session{backend: b, mode: ModeRemote}
}

func (s *Session) Mode() Mode       { return s.mode }
func (s *Session) Backend() Backend { return s.backend }
func (s *Session) Describe() string { return s.backend.Describe() }
func (s *Session) Skipped() int     { return s.skipped }

// Schools returns the cached collection from the last Refresh.
func (s *Session) Schools() []model.School { return s.schools }

// Refresh reloads the cached collection from the active backend.
func (s *Session) Refresh(ctx context.Context) error {
	col, err := s.backend.List(ctx, ListQuery{})
	if err != nil {
		return err
	}
	s.schools = col.Schools
	s.skipped = col.Skipped
	return nil
}

// Search lists (passing the query through to a remote backend) and applies
// the engine's name match, so both backends return identical semantics.
func (s *Session) Search(ctx context.Context, name string) ([]model.School, error) {
	col, err := s.backend.List(ctx, ListQuery{Query: name})
	if err != nil {
		return nil, err
	}
	return query.SearchName(col.Schools, name), nil
}

// FilterProvince works like Search over the province field.
func (s *Session) FilterProvince(ctx context.Context, province string) ([]model.School, error) {
	col, err := s.backend.List(ctx, ListQuery{Province: province})
	if err != nil {
		return nil, err
	}
	return query.FilterProvince(col.Schools, province), nil
}

// FilterStudents keeps records whose student count falls in [min, max].
func (s *Session) FilterStudents(ctx context.Context, min, max int) ([]model.School, error) {
	col, err := s.backend.List(ctx, ListQuery{})
	if err != nil {
		return nil, err
	}
	return query.FilterStudents(col.Schools, min, max), nil
}

// FilterFounded keeps records whose founding year falls in [min, max].
func (s *Session) FilterFounded(ctx context.Context, min, max int) ([]model.School, error) {
	col, err := s.backend.List(ctx, ListQuery{})
	if err != nil {
		return nil, err
	}
	return query.FilterFounded(col.Schools, min, max), nil
}

// SortBy returns the full collection sorted by one of the canonical fields.
func (s *Session) SortBy(ctx context.Context, field string, desc bool) ([]model.School, error) {
	col, err := s.backend.List(ctx, ListQuery{SortBy: field, Desc: desc})
	if err != nil {
		return nil, err
	}
	return query.SortBy(col.Schools, field, desc)
}

// Stats aggregates the full collection; nil means no data.
func (s *Session) Stats(ctx context.Context) (*query.Summary, error) {
	col, err := s.backend.List(ctx, ListQuery{})
	if err != nil {
		return nil, err
	}
	return query.Stats(col.Schools), nil
}

// Find returns every record whose name contains the given text.
func (s *Session) Find(ctx context.Context, name string) ([]Match, error) {
	return s.backend.Find(ctx, name)
}

// Resolve narrows a name lookup to exactly one record, failing with
// NotFoundError or AmbiguousError otherwise.
func (s *Session) Resolve(ctx context.Context, name string) (Match, error) {
	matches, err := s.backend.Find(ctx, name)
	if err != nil {
		return Match{}, err
	}
	switch len(matches) {
	case 0:
		return Match{}, &NotFoundError{Name: name}
	case 1:
		return matches[0], nil
	default:
		return Match{}, &AmbiguousError{Name: name, Matches: matches}
	}
}

// Create validates and stores a new record, then refreshes the cache.
func (s *Session) Create(ctx context.Context, rec model.School) (model.School, error) {
	if err := rec.Validate(); err != nil {
		return model.School{}, err
	}
	created, err := s.backend.Create(ctx, rec)
	if err != nil {
		return model.School{}, err
	}
	return created, s.Refresh(ctx)
}

// Update validates and applies a partial edit, then refreshes the cache.
func (s *Session) Update(ctx context.Context, m Match, ch model.Changes) (model.School, error) {
	if ch.Empty() {
		return model.School{}, &model.ValidationError{Field: "changes", Reason: "nothing to change"}
	}
	if err := ch.Validate(); err != nil {
		return model.School{}, err
	}
	updated, err := s.backend.Update(ctx, m, ch)
	if err != nil {
		return model.School{}, err
	}
	return updated, s.Refresh(ctx)
}

// Delete removes a previously-resolved record, then refreshes the cache.
func (s *Session) Delete(ctx context.Context, m Match) error {
	if err := s.backend.Delete(ctx, m); err != nil {
		return err
	}
	return s.Refresh(ctx)
}
