// Package mutate produces new versions of an application collection.
// Every function here leaves its input untouched and returns a collection
// that shares no tag slices with the caller's.
package mutate

import (
	"slices"
	"strings"

	"appresp/internal/model"
)

// NormalizeTag trims s. An empty result means the tag must be rejected.
func NormalizeTag(s string) string {
	return strings.TrimSpace(s)
}

// UpdateTags replaces the tag list of question qID in application appID with
// tags, copied verbatim. An unknown application or question leaves the
// collection unchanged.
func UpdateTags(apps []model.Application, appID, qID string, tags []string) []model.Application {
	out, _ := UpdateTagsStrict(apps, appID, qID, tags)
	return out
}

// UpdateTagsStrict is UpdateTags with a NotFoundError when the target does not
// exist. On error the returned collection is apps itself.
func UpdateTagsStrict(apps []model.Application, appID, qID string, tags []string) ([]model.Application, error) {
	ai := slices.IndexFunc(apps, func(a model.Application) bool { return a.ID == appID })
	if ai < 0 {
		return apps, NotFoundError{Kind: "application", ID: appID}
	}
	qi := slices.IndexFunc(apps[ai].Questions, func(q model.Question) bool { return q.ID == qID })
	if qi < 0 {
		return apps, NotFoundError{Kind: "question", ID: qID}
	}

	out := slices.Clone(apps)
	app := apps[ai].Clone()
	app.Questions[qi].Tags = append(make([]string, 0, len(tags)), tags...)
	out[ai] = app
	return out, nil
}

// AddTag appends candidate (trimmed) to the question's tags. Empty candidates,
// tags already present and unknown targets are no-ops reported as changed=false.
func AddTag(apps []model.Application, appID, qID, candidate string) ([]model.Application, bool) {
	tag := NormalizeTag(candidate)
	if tag == "" {
		return apps, false
	}
	q, ok := findQuestion(apps, appID, qID)
	if !ok || slices.Contains(q.Tags, tag) {
		return apps, false
	}
	next := append(slices.Clone(q.Tags), tag)
	return UpdateTags(apps, appID, qID, next), true
}

// RemoveTag removes the first exact match of tag from the question's tags.
func RemoveTag(apps []model.Application, appID, qID, tag string) ([]model.Application, bool) {
	q, ok := findQuestion(apps, appID, qID)
	if !ok {
		return apps, false
	}
	i := slices.Index(q.Tags, tag)
	if i < 0 {
		return apps, false
	}
	next := slices.Delete(slices.Clone(q.Tags), i, i+1)
	return UpdateTags(apps, appID, qID, next), true
}

// SetTags replaces the question's tags with the trimmed, de-duplicated
// non-empty entries of tags, keeping first occurrences in order.
func SetTags(apps []model.Application, appID, qID string, tags []string) ([]model.Application, error) {
	return UpdateTagsStrict(apps, appID, qID, CleanTags(tags))
}

// CleanTags trims every entry, drops empties and keeps the first occurrence
// of each tag.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = NormalizeTag(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func findQuestion(apps []model.Application, appID, qID string) (model.Question, bool) {
	a, ok := model.FindApplication(apps, appID)
	if !ok {
		return model.Question{}, false
	}
	return a.FindQuestion(qID)
}
