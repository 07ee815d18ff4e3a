package model

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

// Statuses lists every status in display order.
func Statuses() []Status {
	return []Status{StatusDraft, StatusSubmitted, StatusAccepted, StatusRejected}
}

func (s Status) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusSubmitted:
		return "Submitted"
	case StatusAccepted:
		return "Accepted"
	case StatusRejected:
		return "Rejected"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the known statuses, spelled exactly.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusDraft, StatusSubmitted, StatusAccepted, StatusRejected:
		return st, nil
	default:
		return "", fmt.Errorf("invalid status: %q (expected draft|submitted|accepted|rejected)", s)
	}
}

type Question struct {
	ID           string   `json:"id" yaml:"id"`
	QuestionText string   `json:"questionText" yaml:"questionText"`
	Response     string   `json:"response" yaml:"response"`
	Tags         []string `json:"tags" yaml:"tags"`
}

type Application struct {
	ID            string     `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Purpose       string     `json:"purpose" yaml:"purpose"`
	DateSubmitted time.Time  `json:"dateSubmitted" yaml:"dateSubmitted"`
	Status        Status     `json:"status" yaml:"status"`
	Notes         *string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	Questions     []Question `json:"questions" yaml:"questions"`
}

// Clone returns a copy that shares no slices with q.
func (q Question) Clone() Question {
	out := q
	if q.Tags != nil {
		out.Tags = append(make([]string, 0, len(q.Tags)), q.Tags...)
	}
	return out
}

// Clone returns a deep copy of a; the result can be modified without
// affecting a or any collection that holds it.
func (a Application) Clone() Application {
	out := a
	if a.Notes != nil {
		n := *a.Notes
		out.Notes = &n
	}
	if a.Questions != nil {
		out.Questions = make([]Question, len(a.Questions))
		for i, q := range a.Questions {
			out.Questions[i] = q.Clone()
		}
	}
	return out
}

func (a Application) NotesText() string {
	if a.Notes == nil {
		return ""
	}
	return *a.Notes
}

func (a Application) FindQuestion(id string) (Question, bool) {
	for _, q := range a.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// FindApplication returns the application with the given id.
func FindApplication(apps []Application, id string) (Application, bool) {
	for _, a := range apps {
		if a.ID == id {
			return a, true
		}
	}
	return Application{}, false
}

// CloneAll deep-copies a collection, preserving order.
func CloneAll(apps []Application) []Application {
	if apps == nil {
		return nil
	}
	out := make([]Application, len(apps))
	for i, a := range apps {
		out[i] = a.Clone()
	}
	return out
}

// StringPtr is a convenience for optional fields such as Notes.
func StringPtr(s string) *string { return &s }

type SortOrder string

const (
	SortDateDesc SortOrder = "date-desc"
	SortDateAsc  SortOrder = "date-asc"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortDateDesc, nil
	case SortDateDesc, SortDateAsc:
		return o, nil
	default:
		return "", fmt.Errorf("invalid sort order: %q (expected date-desc|date-asc)", s)
	}
}

func (o SortOrder) Toggle() SortOrder {
	if o == SortDateAsc {
		return SortDateDesc
	}
	return SortDateAsc
}

func (o SortOrder) Label() string {
	if o == SortDateAsc {
		return "Oldest first"
	}
	return "Newest first"
}
