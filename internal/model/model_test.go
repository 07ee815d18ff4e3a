package model

import (
	"errors"
	"testing"
	"time"
)

func TestApplicationClone_DoesNotAliasSlices(t *testing.T) {
	a := Application{
		ID:            "1",
		Name:          "A",
		DateSubmitted: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
		Status:        StatusSubmitted,
		Notes:         StringPtr("n"),
		Questions: []Question{
			{ID: "q1", Tags: []string{"Leadership", "Teamwork"}},
		},
	}

	c := a.Clone()
	c.Questions[0].Tags[0] = "changed"
	*c.Notes = "changed"
	c.Questions = append(c.Questions, Question{ID: "q2"})

	if a.Questions[0].Tags[0] != "Leadership" {
		t.Fatalf("expected original tags untouched; got %v", a.Questions[0].Tags)
	}
	if *a.Notes != "n" {
		t.Fatalf("expected original notes untouched; got %q", *a.Notes)
	}
	if len(a.Questions) != 1 {
		t.Fatalf("expected original questions untouched; got %d", len(a.Questions))
	}
}

func TestParseStatus(t *testing.T) {
	for _, in := range []string{"draft", " Submitted ", "ACCEPTED", "rejected"} {
		if _, err := ParseStatus(in); err != nil {
			t.Fatalf("ParseStatus(%q): %v", in, err)
		}
	}
	if _, err := ParseStatus("pending"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if got := StatusAccepted.Label(); got != "Accepted" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestSortOrder(t *testing.T) {
	o, err := ParseSortOrder("")
	if err != nil || o != SortDateDesc {
		t.Fatalf("expected default date-desc; got %q err=%v", o, err)
	}
	if SortDateDesc.Toggle() != SortDateAsc || SortDateAsc.Toggle() != SortDateDesc {
		t.Fatalf("toggle should flip between orders")
	}
	if SortDateDesc.Label() != "Newest first" || SortDateAsc.Label() != "Oldest first" {
		t.Fatalf("unexpected labels")
	}
	if _, err := ParseSortOrder("name"); err == nil {
		t.Fatalf("expected error for unknown sort order")
	}
}

func TestValidate(t *testing.T) {
	ok := []Application{
		{ID: "1", Status: StatusDraft, Questions: []Question{{ID: "q1"}}},
		{ID: "2", Status: StatusDraft, Questions: []Question{{ID: "q1"}}},
	}
	if err := Validate(ok); err != nil {
		t.Fatalf("question ids may repeat across applications: %v", err)
	}

	bad := []Application{
		{ID: "1", Status: StatusDraft, Questions: []Question{{ID: "q1"}, {ID: "q1"}}},
		{ID: "1", Status: "pending"},
	}
	err := Validate(bad)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError; got %v", err)
	}
	if len(verr.Problems) != 3 {
		t.Fatalf("expected 3 problems; got %v", verr.Problems)
	}
}

func TestValidate_TagsAndExactStatus(t *testing.T) {
	bad := []Application{
		{ID: "1", Status: "Submitted", Questions: []Question{{ID: "q1", Tags: []string{"A", "A", "  "}}}},
	}
	err := Validate(bad)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError; got %v", err)
	}
	if len(verr.Problems) != 3 {
		t.Fatalf("expected status, duplicate and blank tag problems; got %v", verr.Problems)
	}

	if !StatusSubmitted.Valid() || Status("Submitted").Valid() {
		t.Fatalf("Valid must match lowercase statuses exactly")
	}
}

func TestDisplayHelpers(t *testing.T) {
	ts := time.Date(2025, 1, 15, 10, 30, 0, 0, time.Local)
	if got := FormatDate(ts); got != "Jan 15, 2025, 10:30 AM" {
		t.Fatalf("unexpected date %q", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Fatalf("zero time should render empty; got %q", got)
	}
	if CountLabel(1) != "1 application" || CountLabel(0) != "0 applications" || CountLabel(3) != "3 applications" {
		t.Fatalf("unexpected count labels")
	}
	if QuestionCountLabel(1) != "1 question" || QuestionCountLabel(2) != "2 questions" {
		t.Fatalf("unexpected question labels")
	}
}
