package format

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

type sample struct {
	ID            string    `json:"id"`
	DateSubmitted time.Time `json:"dateSubmitted"`
	Tags          []string  `json:"tags"`
	Notes         *string   `json:"notes"`
	Count         int       `json:"count"`
}

func sampleValue() map[string]any {
	return map[string]any{"data": sample{
		ID:            "1",
		DateSubmitted: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
		Tags:          []string{"Research", "Python"},
		Count:         2,
	}}
}

func TestWriteEDN_Compact(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleValue(), "edn", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{:data {:count 2 :date-submitted #inst "2025-01-15T10:30:00Z" :id "1" :notes nil :tags ["Research" "Python"]}}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected edn:\n got: %s\nwant: %s", got, want)
	}
}

func TestWriteEDN_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"tags": []string{"a"}, "empty": []string{}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :empty []\n  :tags [\n    \"a\"\n  ]\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected pretty edn:\n%q\nwant\n%q", got, want)
	}
}

func TestWrite_JSONAndYAML(t *testing.T) {
	var j bytes.Buffer
	if err := Write(&j, sampleValue(), "", false); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(j.String(), `"dateSubmitted":"2025-01-15T10:30:00Z"`) {
		t.Fatalf("unexpected json: %s", j.String())
	}

	var y bytes.Buffer
	if err := Write(&y, sampleValue(), "yaml", false); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(y.String(), "dateSubmitted:") || !strings.Contains(y.String(), "2025-01-15T10:30:00Z") {
		t.Fatalf("unexpected yaml: %s", y.String())
	}

	if err := Write(&y, 1, "xml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestEDNKeyword(t *testing.T) {
	for in, want := range map[string]string{
		"questionText":  "question-text",
		"id":            "id",
		"known_tags":    "known-tags",
		"Applications":  "applications",
		"dateSubmitted": "date-submitted",
	} {
		if got := ednKeyword(in); got != want {
			t.Fatalf("ednKeyword(%q)=%q; want %q", in, got, want)
		}
	}
}
