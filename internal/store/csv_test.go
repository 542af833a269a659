package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"colegios-cli/internal/model"
)

func sample() []model.School {
	return []model.School{
		{Province: "Córdoba", Name: "Colegio A", Students: 350, Founded: 1985},
		{Province: "Buenos Aires", Name: "Escuela B", Students: 720, Founded: 2003},
		{Province: "Salta", Name: "Instituto C", Students: 120, Founded: 1955},
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	t.Parallel()

	schools, skipped, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(schools) != 0 || skipped != 0 {
		t.Fatalf("expected empty collection, got %d records, %d skipped", len(schools), skipped)
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "colegios.csv")
	content := "Provincia,Colegio,Cantidad de Estudiantes,Año de Creación\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	schools, skipped, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(schools) != 0 || skipped != 0 {
		t.Fatalf("0-row file: want empty collection and zero skipped, got %d/%d", len(schools), skipped)
	}
}

func TestReadCSVDropsInvalidRows(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "colegios.csv")
	content := strings.Join([]string{
		"Provincia,Colegio,Cantidad de Estudiantes,Año de Creación",
		"Córdoba,Colegio A,350,1985",
		"cordoba,Colegio B,not-a-number,1990",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	schools, skipped, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}
	want := []model.School{{Province: "Córdoba", Name: "Colegio A", Students: 350, Founded: 1985}}
	if !reflect.DeepEqual(schools, want) {
		t.Fatalf("got %+v, want %+v", schools, want)
	}
}

func TestReadCSVRowRules(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "colegios.csv")
	content := strings.Join([]string{
		"Provincia,Colegio,Cantidad de Estudiantes,Año de Creación",
		",Colegio Sin Provincia,100,1990",  // blank province: dropped
		"Mendoza,,100,1990",                // blank name: dropped
		"Mendoza,Colegio Sin Números,,",    // blank numerics default to 0
		"  Salta , Colegio Espacios ,10,1990", // fields are trimmed
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	schools, skipped, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 2 {
		t.Fatalf("skipped = %d, want 2", skipped)
	}
	want := []model.School{
		{Province: "Mendoza", Name: "Colegio Sin Números", Students: 0, Founded: 0},
		{Province: "Salta", Name: "Colegio Espacios", Students: 10, Founded: 1990},
	}
	if !reflect.DeepEqual(schools, want) {
		t.Fatalf("got %+v, want %+v", schools, want)
	}
}

func TestReadCSVToleratesBOM(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "colegios.csv")
	content := "\xef\xbb\xbfProvincia,Colegio,Cantidad de Estudiantes,Año de Creación\nCórdoba,Colegio A,350,1985\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	schools, _, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(schools) != 1 || schools[0].Province != "Córdoba" {
		t.Fatalf("BOM-prefixed header not handled: %+v", schools)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "colegios.csv")
	in := sample()
	if err := WriteCSV(path, in); err != nil {
		t.Fatal(err)
	}

	out, skipped, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 0 {
		t.Fatalf("round trip skipped %d rows", skipped)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestWriteCSVCreatesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "colegios.csv")
	if err := WriteCSV(path, sample()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not created: %v", err)
	}
}

func TestWriteCSVQuotedFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "colegios.csv")
	in := []model.School{{Province: "Tierra del Fuego", Name: `Colegio "Los Andes", Anexo`, Students: 90, Founded: 1991}}
	if err := WriteCSV(path, in); err != nil {
		t.Fatal(err)
	}
	out, _, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("quoting broke round trip: got %+v", out)
	}
}

func TestFileStoreInit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fs := FileStore{Path: filepath.Join(dir, "data", "colegios.csv")}
	if err := fs.Init(); err != nil {
		t.Fatal(err)
	}
	// Init twice must be safe.
	if err := fs.Init(); err != nil {
		t.Fatal(err)
	}

	schools, skipped, err := fs.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(schools) != 0 || skipped != 0 {
		t.Fatalf("fresh store should be empty, got %d/%d", len(schools), skipped)
	}
	for _, dim := range dimensions() {
		p := filepath.Join(SubgroupsRoot(fs.Path), dim)
		if st, err := os.Stat(p); err != nil || !st.IsDir() {
			t.Fatalf("missing subgroup dir %s", p)
		}
	}
}

func TestFileStoreMutations(t *testing.T) {
	t.Parallel()

	fs := FileStore{Path: filepath.Join(t.TempDir(), "colegios.csv")}

	if err := fs.Add(model.School{Province: "Salta", Name: "Colegio A", Students: 100, Founded: 1980}); err != nil {
		t.Fatal(err)
	}
	if err := fs.Add(model.School{Province: "Chubut", Name: "Colegio B", Students: 400, Founded: 1999}); err != nil {
		t.Fatal(err)
	}

	if err := fs.Update(1, model.School{Province: "Chubut", Name: "Colegio B", Students: 450, Founded: 1999}); err != nil {
		t.Fatal(err)
	}
	if err := fs.Update(5, model.School{Province: "x", Name: "y"}); err == nil {
		t.Fatal("out-of-range update must fail")
	}

	if err := fs.Delete(0); err != nil {
		t.Fatal(err)
	}
	if err := fs.Delete(3); err == nil {
		t.Fatal("out-of-range delete must fail")
	}

	schools, skipped, err := fs.Load()
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 0 || len(schools) != 1 {
		t.Fatalf("load = %d schools, %d skipped", len(schools), skipped)
	}
	if schools[0].Name != "Colegio B" || schools[0].Students != 450 {
		t.Fatalf("surviving record = %+v", schools[0])
	}
}
