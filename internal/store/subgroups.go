package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"colegios-cli/internal/model"
)

// The subgroup trees live beside the authoritative file. Each dimension holds
// one CSV per bucket, fully regenerated from the flat collection on every
// save — buckets are never patched incrementally, so they cannot drift from
// the authoritative data (stale files for vanished keys excepted; those are
// left behind on purpose).
const (
	SubgroupsDirName = "subgroups"
	DimProvince      = "by-province"
	DimStudentCount  = "by-student-count"
	DimFoundingYear  = "by-founding-decade"

	unknownProvince = "Unknown"
	unnamedBucket   = "Unnamed"
)

func dimensions() []string {
	return []string{DimProvince, DimStudentCount, DimFoundingYear}
}

// SubgroupsRoot returns the subgroups directory for a given authoritative
// file location.
func SubgroupsRoot(csvPath string) string {
	return filepath.Join(filepath.Dir(csvPath), SubgroupsDirName)
}

// InitSubgroups creates the three dimension directories. Idempotent; safe to
// call before any data exists.
func InitSubgroups(csvPath string) error {
	root := SubgroupsRoot(csvPath)
	for _, dim := range dimensions() {
		if err := os.MkdirAll(filepath.Join(root, dim), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Join(root, dim), err)
		}
	}
	return nil
}

// StudentBucket maps a student count onto its fixed range bucket.
func StudentBucket(students int) string {
	switch {
	case students < 300:
		return "under-300"
	case students < 500:
		return "300-499"
	case students < 700:
		return "500-699"
	default:
		return "700-plus"
	}
}

// DecadeBucket maps a founding year onto its fixed decade bucket.
func DecadeBucket(year int) string {
	switch {
	case year < 1970:
		return "pre-1970"
	case year < 1980:
		return "1970-1979"
	case year < 1990:
		return "1980-1989"
	case year < 2000:
		return "1990-1999"
	default:
		return "2000-onward"
	}
}

var bucketNameReplacer = strings.NewReplacer(
	"/", "-", "\\", "-", ":", "-", "*", "-",
	"?", "-", `"`, "-", "<", "-", ">", "-", "|", "-",
)

// SanitizeBucketName makes a bucket key safe to use as a filename.
func SanitizeBucketName(name string) string {
	name = strings.TrimSpace(bucketNameReplacer.Replace(name))
	if name == "" {
		return unnamedBucket
	}
	return name
}

// SyncSubgroups regenerates every bucket file under the three dimension trees
// from the full collection. Bucket files whose key no longer occurs in the
// data are not removed.
func SyncSubgroups(schools []model.School, csvPath string) error {
	if err := InitSubgroups(csvPath); err != nil {
		return err
	}
	root := SubgroupsRoot(csvPath)

	if err := writeBuckets(filepath.Join(root, DimProvince), schools, provinceKey); err != nil {
		return err
	}
	if err := writeBuckets(filepath.Join(root, DimStudentCount), schools, func(s model.School) string {
		return StudentBucket(s.Students)
	}); err != nil {
		return err
	}
	return writeBuckets(filepath.Join(root, DimFoundingYear), schools, func(s model.School) string {
		return DecadeBucket(s.Founded)
	})
}

// provinceKey buckets by the literal, unnormalized province string. The
// record invariant says province is never blank, but the projector must not
// choke on one that is.
func provinceKey(s model.School) string {
	if strings.TrimSpace(s.Province) == "" {
		return unknownProvince
	}
	return s.Province
}

func writeBuckets(dir string, schools []model.School, key func(model.School) string) error {
	buckets := make(map[string][]model.School)
	for _, s := range schools {
		k := key(s)
		buckets[k] = append(buckets[k], s)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := filepath.Join(dir, SanitizeBucketName(k)+".csv")
		if err := writeDelimited(path, buckets[k]); err != nil {
			return err
		}
	}
	return nil
}

// ReadSubgroup parses one bucket file back into records using the same
// row-validation rules as the authoritative loader. Diagnostics/recovery
// only; the main flow never reads buckets back.
func ReadSubgroup(path string) ([]model.School, int, error) {
	return ReadCSV(path)
}

// DimensionInfo describes the materialized bucket files of one dimension.
type DimensionInfo struct {
	Count int      `json:"count"`
	Files []string `json:"files"`
}

// SubgroupsInfo is a diagnostic snapshot of the projection trees.
type SubgroupsInfo struct {
	Root       string                   `json:"root"`
	Dimensions map[string]DimensionInfo `json:"dimensions"`
}

// Info reports, per dimension, how many bucket files exist and their names.
func Info(csvPath string) (SubgroupsInfo, error) {
	root := SubgroupsRoot(csvPath)
	info := SubgroupsInfo{Root: root, Dimensions: make(map[string]DimensionInfo, 3)}
	for _, dim := range dimensions() {
		matches, err := filepath.Glob(filepath.Join(root, dim, "*.csv"))
		if err != nil {
			return SubgroupsInfo{}, fmt.Errorf("list %s: %w", dim, err)
		}
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, filepath.Base(m))
		}
		sort.Strings(names)
		info.Dimensions[dim] = DimensionInfo{Count: len(names), Files: names}
	}
	return info, nil
}
