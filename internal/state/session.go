// Package state holds the selection and filter state shared by the front-ends.
//
// A Session is a value. Every reducer returns a new Session and leaves the
// receiver usable, so hosts can keep a single current version and swap it
// atomically.
package state

import (
	"slices"

	"appresp/internal/model"
	"appresp/internal/mutate"
	"appresp/internal/query"
)

type View int

const (
	ViewList View = iota
	ViewDetail
)

func (v View) String() string {
	if v == ViewDetail {
		return "detail"
	}
	return "list"
}

type Session struct {
	Apps       []model.Application
	Filter     query.Filter
	SelectedID string
}

// New returns a session over apps with the default sort order and no selection.
func New(apps []model.Application, sort model.SortOrder) Session {
	if sort == "" {
		sort = model.SortDateDesc
	}
	return Session{Apps: apps, Filter: query.Filter{Sort: sort}}
}

func (s Session) View() View {
	if _, ok := s.Selected(); ok {
		return ViewDetail
	}
	return ViewList
}

// Selected looks the selected application up in the current collection. The
// detail view always reads through here so it never drifts from the list.
func (s Session) Selected() (model.Application, bool) {
	if s.SelectedID == "" {
		return model.Application{}, false
	}
	return model.FindApplication(s.Apps, s.SelectedID)
}

func (s Session) Visible() []model.Application {
	return query.FilterAndSort(s.Apps, s.Filter)
}

func (s Session) Count() int {
	return len(s.Visible())
}

func (s Session) HasActiveFilters() bool {
	return s.Filter.Active()
}

// Select switches to the detail view of id. Unknown ids are ignored.
func (s Session) Select(id string) Session {
	if _, ok := model.FindApplication(s.Apps, id); !ok {
		return s
	}
	s.SelectedID = id
	return s
}

func (s Session) Back() Session {
	s.SelectedID = ""
	return s
}

// ToggleTag adds tag to the filter, or removes it when already selected.
func (s Session) ToggleTag(tag string) Session {
	tags := slices.Clone(s.Filter.Tags)
	if i := slices.Index(tags, tag); i >= 0 {
		tags = slices.Delete(tags, i, i+1)
	} else {
		tags = append(tags, tag)
	}
	s.Filter.Tags = tags
	return s
}

func (s Session) SetSearch(q string) Session {
	s.Filter.Search = q
	return s
}

// ClearFilters drops the tag selection and search text. Sort order is kept.
func (s Session) ClearFilters() Session {
	s.Filter.Tags = nil
	s.Filter.Search = ""
	return s
}

func (s Session) SetSort(o model.SortOrder) Session {
	s.Filter.Sort = o
	return s
}

func (s Session) ToggleSort() Session {
	s.Filter.Sort = s.Filter.Sort.Toggle()
	return s
}

func (s Session) UpdateTags(appID, qID string, tags []string) Session {
	s.Apps = mutate.UpdateTags(s.Apps, appID, qID, tags)
	return s
}

// AddTag reports whether the collection changed.
func (s Session) AddTag(appID, qID, tag string) (Session, bool) {
	var changed bool
	s.Apps, changed = mutate.AddTag(s.Apps, appID, qID, tag)
	return s, changed
}

func (s Session) RemoveTag(appID, qID, tag string) (Session, bool) {
	var changed bool
	s.Apps, changed = mutate.RemoveTag(s.Apps, appID, qID, tag)
	return s, changed
}

// Replace swaps in a freshly loaded collection. The selection survives only
// if its application still exists.
func (s Session) Replace(apps []model.Application) Session {
	s.Apps = apps
	if _, ok := model.FindApplication(apps, s.SelectedID); !ok {
		s.SelectedID = ""
	}
	return s
}
