package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"colegios-cli/internal/model"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func dataEnvelope(t *testing.T, raw string) json.RawMessage {
	t.Helper()
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		t.Fatalf("output is not a JSON envelope: %v\n%s", err, raw)
	}
	data, ok := envelope["data"]
	if !ok {
		t.Fatalf("envelope missing data key: %s", raw)
	}
	return data
}

func TestAddListRoundTrip(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "colegios.csv")

	out, err := run(t, "--file", file, "add",
		"--province", "Córdoba", "--name", "Colegio A", "--students", "350", "--year", "1985")
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	var created model.School
	if err := json.Unmarshal(dataEnvelope(t, out), &created); err != nil {
		t.Fatal(err)
	}
	if created.Name != "Colegio A" {
		t.Fatalf("created = %+v", created)
	}

	out, err = run(t, "--file", file, "list")
	if err != nil {
		t.Fatal(err)
	}
	var schools []model.School
	if err := json.Unmarshal(dataEnvelope(t, out), &schools); err != nil {
		t.Fatal(err)
	}
	if len(schools) != 1 || schools[0].Province != "Córdoba" {
		t.Fatalf("list = %+v", schools)
	}
}

func TestAddValidationFailure(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "colegios.csv")
	_, err := run(t, "--file", file, "add", "--province", "Córdoba", "--name", "X", "--year", "1750")
	if err == nil {
		t.Fatal("out-of-range year must fail")
	}

	// The failed add left nothing behind.
	out, err := run(t, "--file", file, "list")
	if err != nil {
		t.Fatal(err)
	}
	var schools []model.School
	if err := json.Unmarshal(dataEnvelope(t, out), &schools); err != nil {
		t.Fatal(err)
	}
	if len(schools) != 0 {
		t.Fatalf("rejected record was persisted: %+v", schools)
	}
}

func TestSearchCommand(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "colegios.csv")
	for _, rec := range [][]string{
		{"--province", "Córdoba", "--name", "Colegio San Martín"},
		{"--province", "Salta", "--name", "Escuela Norte"},
	} {
		if _, err := run(t, append([]string{"--file", file, "add"}, rec...)...); err != nil {
			t.Fatal(err)
		}
	}

	out, err := run(t, "--file", file, "search", "MARTIN")
	if err != nil {
		t.Fatal(err)
	}
	var schools []model.School
	if err := json.Unmarshal(dataEnvelope(t, out), &schools); err != nil {
		t.Fatal(err)
	}
	if len(schools) != 1 || schools[0].Name != "Colegio San Martín" {
		t.Fatalf("search = %+v", schools)
	}
}

func TestDeleteRequiresYes(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "colegios.csv")
	if _, err := run(t, "--file", file, "add", "--province", "Salta", "--name", "Colegio Borrable"); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "--file", file, "delete", "borrable"); err == nil {
		t.Fatal("delete without --yes must fail")
	}

	if _, err := run(t, "--file", file, "delete", "borrable", "--yes"); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "--file", file, "list")
	if err != nil {
		t.Fatal(err)
	}
	var schools []model.School
	if err := json.Unmarshal(dataEnvelope(t, out), &schools); err != nil {
		t.Fatal(err)
	}
	if len(schools) != 0 {
		t.Fatalf("record survived delete: %+v", schools)
	}
}

func TestSortTableOutput(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "colegios.csv")
	for _, rec := range [][]string{
		{"--province", "Salta", "--name", "B Colegio", "--students", "100"},
		{"--province", "Córdoba", "--name", "A Colegio", "--students", "200"},
	} {
		if _, err := run(t, append([]string{"--file", file, "add"}, rec...)...); err != nil {
			t.Fatal(err)
		}
	}

	out, err := run(t, "--file", file, "--format", "table", "sort", "--by", model.FieldName)
	if err != nil {
		t.Fatal(err)
	}
	aIdx := strings.Index(out, "A Colegio")
	bIdx := strings.Index(out, "B Colegio")
	if aIdx < 0 || bIdx < 0 || aIdx > bIdx {
		t.Fatalf("table output not sorted by name:\n%s", out)
	}
}

func TestSortUnknownField(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "colegios.csv")
	if _, err := run(t, "--file", file, "sort", "--by", "Nope"); err == nil {
		t.Fatal("unknown sort field must fail")
	}
}

func TestInitAndSubgroups(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "data", "colegios.csv")
	if _, err := run(t, "--file", file, "init"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "--file", file, "add", "--province", "Chubut", "--name", "Colegio Sur", "--students", "720"); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--file", file, "subgroups")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "700-plus.csv") || !strings.Contains(out, "Chubut.csv") {
		t.Fatalf("subgroups output missing bucket files:\n%s", out)
	}
}

func TestRemoteOnlyCommandsNeedAPIFlag(t *testing.T) {
	t.Parallel()

	if _, err := run(t, "health"); err == nil {
		t.Fatal("health without --api must fail")
	}
	if _, err := run(t, "get", "1"); err == nil {
		t.Fatal("get without --api must fail")
	}
}
