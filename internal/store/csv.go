// Package store persists the authoritative school collection as a delimited
// file and keeps the derived subgroup trees in sync with it.
package store

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"colegios-cli/internal/model"
)

// Excel wants a BOM on UTF-8 CSV files; we write one and tolerate one on
// read.
const utf8BOM = "\xef\xbb\xbf"

// ReadCSV loads the authoritative collection from path. A missing file is an
// empty collection, not an error. Rows with a blank province or name, or with
// unparsable numeric fields, are dropped; the second return value counts them.
func ReadCSV(path string) ([]model.School, int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read %s header: %w", path, err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	var (
		schools []model.School
		skipped int
	)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				// Malformed row: drop it like any other invalid row.
				skipped++
				continue
			}
			return nil, skipped, fmt.Errorf("read %s: %w", path, err)
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		province := field(model.FieldProvince)
		name := field(model.FieldName)
		if province == "" || name == "" {
			skipped++
			continue
		}
		students, ok := parseOptionalInt(field(model.FieldStudents))
		if !ok {
			skipped++
			continue
		}
		founded, ok := parseOptionalInt(field(model.FieldFounded))
		if !ok {
			skipped++
			continue
		}

		schools = append(schools, model.School{
			Province: province,
			Name:     name,
			Students: students,
			Founded:  founded,
		})
	}
	return schools, skipped, nil
}

// parseOptionalInt treats blank as 0 (unknown), matching the load rules.
func parseOptionalInt(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// WriteCSV overwrites path with the full collection. Content is buffered
// first so a marshal-stage failure leaves the prior file untouched. On a
// successful write the subgroup trees are regenerated; that step is
// best-effort and its failure is reported on stderr, never returned.
func WriteCSV(path string, schools []model.School) error {
	if err := writeDelimited(path, schools); err != nil {
		return err
	}
	if err := SyncSubgroups(schools, path); err != nil {
		fmt.Fprintf(os.Stderr, "warning: subgroup sync: %v\n", err)
	}
	return nil
}

// writeDelimited writes header + rows to path without touching subgroups.
// Shared by the authoritative save and the per-bucket projection writes.
func writeDelimited(path string, schools []model.School) error {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(model.Fields()); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	for _, s := range schools {
		row := []string{s.Province, s.Name, strconv.Itoa(s.Students), strconv.Itoa(s.Founded)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
