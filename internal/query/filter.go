// Package query derives the visible, ordered view of an application collection
// from the current filter state. Nothing here mutates its inputs.
package query

import (
	"slices"
	"strings"

	"appresp/internal/model"
)

// Filter is the user-controlled filter state.
type Filter struct {
	Tags   []string        `json:"tags"`
	Search string          `json:"search"`
	Sort   model.SortOrder `json:"sort"`
}

// Active reports whether any narrowing filter is set. Sort order is not a filter.
func (f Filter) Active() bool {
	return len(f.Tags) > 0 || strings.TrimSpace(f.Search) != ""
}

func (f Filter) HasTag(tag string) bool {
	return slices.Contains(f.Tags, tag)
}

// FilterAndSort returns the applications that pass the tag filter and then the
// search filter, stably ordered by submission date. The result is a new slice;
// elements are the caller's values, so treat them as read-only.
func FilterAndSort(apps []model.Application, f Filter) []model.Application {
	out := make([]model.Application, 0, len(apps))
	for _, a := range apps {
		if !MatchesTags(a, f.Tags) {
			continue
		}
		if !MatchesSearch(a, f.Search) {
			continue
		}
		out = append(out, a)
	}

	desc := f.Sort != model.SortDateAsc
	slices.SortStableFunc(out, func(a, b model.Application) int {
		c := a.DateSubmitted.Compare(b.DateSubmitted)
		if desc {
			return -c
		}
		return c
	})
	return out
}

// MatchesTags reports whether any question of a carries any of tags.
// An empty tag set matches everything.
func MatchesTags(a model.Application, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, q := range a.Questions {
		for _, t := range q.Tags {
			if slices.Contains(tags, t) {
				return true
			}
		}
	}
	return false
}

// MatchesSearch does a case-insensitive substring match of q against the
// name, purpose, notes, question texts and responses of a. A blank query
// matches everything. Only blankness is decided on the trimmed query; the
// match itself uses q as typed.
func MatchesSearch(a model.Application, q string) bool {
	if strings.TrimSpace(q) == "" {
		return true
	}
	needle := strings.ToLower(q)
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), needle) }

	if contains(a.Name) || contains(a.Purpose) {
		return true
	}
	if a.Notes != nil && contains(*a.Notes) {
		return true
	}
	for _, qu := range a.Questions {
		if contains(qu.QuestionText) || contains(qu.Response) {
			return true
		}
	}
	return false
}

// AllTags returns the tag list offered for filtering: known first, in order,
// then any other tag used in apps in first-seen order.
func AllTags(known []string, apps []model.Application) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(known))
	for _, t := range known {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	for _, a := range apps {
		for _, q := range a.Questions {
			for _, t := range q.Tags {
				if t == "" || seen[t] {
					continue
				}
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}
