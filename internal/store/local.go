package store

import (
	"fmt"
	"os"

	"colegios-cli/internal/model"
)

// DefaultCSVPath is where the authoritative file lives unless overridden by
// flag or environment.
const DefaultCSVPath = "data/colegios.csv"

// FileStore is the local backend: a flat CSV file plus its projection trees.
type FileStore struct {
	Path string
}

// Load reads the full collection and the count of rows dropped as invalid.
func (f FileStore) Load() ([]model.School, int, error) {
	return ReadCSV(f.Path)
}

// SaveAll overwrites the authoritative file with the full collection and
// regenerates the subgroup trees.
func (f FileStore) SaveAll(schools []model.School) error {
	return WriteCSV(f.Path, schools)
}

// Add appends one record and persists the whole collection.
func (f FileStore) Add(rec model.School) error {
	schools, _, err := f.Load()
	if err != nil {
		return err
	}
	return f.SaveAll(append(schools, rec))
}

// Update replaces the record at index and persists the whole collection.
func (f FileStore) Update(index int, rec model.School) error {
	schools, _, err := f.Load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(schools) {
		return fmt.Errorf("record %d out of range (have %d)", index, len(schools))
	}
	schools[index] = rec
	return f.SaveAll(schools)
}

// Delete removes the record at index and persists the whole collection.
func (f FileStore) Delete(index int) error {
	schools, _, err := f.Load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(schools) {
		return fmt.Errorf("record %d out of range (have %d)", index, len(schools))
	}
	return f.SaveAll(append(schools[:index], schools[index+1:]...))
}

// Init makes sure the authoritative file exists (header-only when new) and
// the subgroup skeleton is in place.
func (f FileStore) Init() error {
	if _, err := os.Stat(f.Path); err == nil {
		return InitSubgroups(f.Path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", f.Path, err)
	}
	if err := writeDelimited(f.Path, nil); err != nil {
		return err
	}
	return InitSubgroups(f.Path)
}
