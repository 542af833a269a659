package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"colegios-cli/internal/model"
)

func TestWriteJSONEnvelope(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	payload := map[string]any{"data": []model.School{{Province: "Salta", Name: "Colegio A"}}}
	if err := Write(&buf, payload, "json", false); err != nil {
		t.Fatal(err)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("not valid JSON: %v\n%s", err, buf.String())
	}
	if _, ok := out["data"]; !ok {
		t.Fatalf("missing data key: %s", buf.String())
	}
}

func TestWriteTableUnwrapsEnvelope(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	payload := map[string]any{"data": []model.School{
		{Province: "Salta", Name: "Colegio A", Students: 120, Founded: 1955},
	}}
	if err := Write(&buf, payload, "table", false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Colegio A") || !strings.Contains(out, model.FieldProvince) {
		t.Fatalf("table output = %q", out)
	}
	if strings.Contains(out, "{") {
		t.Fatalf("table output fell back to JSON: %q", out)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	t.Parallel()

	if err := Write(&bytes.Buffer{}, nil, "yaml", false); err == nil {
		t.Fatal("unknown format must error")
	}
}

func TestWriteTableUnknownShapeFallsBack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": map[string]any{"status": "ok"}}, "table", false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "status") {
		t.Fatalf("fallback output = %q", buf.String())
	}
}
