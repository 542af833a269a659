package session

import (
	"context"
	"fmt"
	"os"

	"colegios-cli/internal/api"
	"colegios-cli/internal/model"
	"colegios-cli/internal/store"
	"colegios-cli/internal/textutil"
)

// RemoteBacked serves a session from the remote API. After every successful
// mutation it mirrors the full remote state into the local store, so the
// authoritative file and its projections stay representative of the server.
// Mirroring is best-effort: its failure is reported, never propagated.
type RemoteBacked struct {
	Client *api.Client
	Mirror store.FileStore

	// Warnf reports best-effort failures. Defaults to stderr.
	Warnf func(format string, args ...any)
}

func NewRemoteBacked(client *api.Client, mirror store.FileStore) *RemoteBacked {
	return &RemoteBacked{Client: client, Mirror: mirror}
}

func (r *RemoteBacked) Describe() string {
	return fmt.Sprintf("remote API (%s)", r.Client.BaseURL())
}

func (r *RemoteBacked) List(ctx context.Context, q ListQuery) (Collection, error) {
	schools, err := r.Client.List(ctx, api.ListOptions{
		Query:    q.Query,
		Province: q.Province,
		SortBy:   q.SortBy,
		Desc:     q.Desc,
	})
	if err != nil {
		return Collection{}, err
	}
	return Collection{Schools: schools}, nil
}

// Find narrows server-side by q first, then applies the engine's name rule:
// the server matches q against name or province, we want name-only matches.
func (r *RemoteBacked) Find(ctx context.Context, name string) ([]Match, error) {
	schools, err := r.Client.List(ctx, api.ListOptions{Query: name})
	if err != nil {
		return nil, err
	}
	var matches []Match
	for _, s := range schools {
		if textutil.Contains(s.Name, name) {
			matches = append(matches, Match{Index: -1, School: s})
		}
	}
	return matches, nil
}

func (r *RemoteBacked) Create(ctx context.Context, rec model.School) (model.School, error) {
	created, err := r.Client.Create(ctx, rec)
	if err != nil {
		return model.School{}, err
	}
	r.mirror(ctx)
	return created, nil
}

func (r *RemoteBacked) Update(ctx context.Context, m Match, ch model.Changes) (model.School, error) {
	if m.School.ID == 0 {
		return model.School{}, &NotFoundError{Name: m.School.Name}
	}
	updated, err := r.Client.Patch(ctx, m.School.ID, ch)
	if err != nil {
		return model.School{}, err
	}
	r.mirror(ctx)
	return updated, nil
}

func (r *RemoteBacked) Delete(ctx context.Context, m Match) error {
	if m.School.ID == 0 {
		return &NotFoundError{Name: m.School.Name}
	}
	if err := r.Client.Delete(ctx, m.School.ID); err != nil {
		return err
	}
	r.mirror(ctx)
	return nil
}

// mirror re-lists everything and pushes it through the local save path
// (authoritative file + subgroup regeneration).
func (r *RemoteBacked) mirror(ctx context.Context) {
	schools, err := r.Client.List(ctx, api.ListOptions{})
	if err != nil {
		r.warnf("mirror sync: %v", err)
		return
	}
	if err := r.Mirror.SaveAll(schools); err != nil {
		r.warnf("mirror sync: %v", err)
	}
}

func (r *RemoteBacked) warnf(format string, args ...any) {
	if r.Warnf != nil {
		r.Warnf(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
