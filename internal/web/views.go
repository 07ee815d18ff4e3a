package web

import (
	"html/template"

	"appresp/internal/model"
	"appresp/internal/query"
	"appresp/internal/state"
	"appresp/internal/tagcolor"
)

// collapsedTagLimit is how many chips a collapsed question card previews.
const collapsedTagLimit = 5

type chipVM struct {
	Tag      string
	Class    string
	Selected bool
}

type sidebarVM struct {
	Search      string
	Tags        []chipVM
	ActiveTags  []chipVM
	HasSelected bool
}

type appRowVM struct {
	ID            string
	Name          string
	Purpose       string
	Date          string
	Status        string
	StatusClass   string
	Notes         string
	QuestionCount string
}

type listVM struct {
	CountLabel       string
	SortLabel        string
	Rows             []appRowVM
	HasActiveFilters bool
}

type questionVM struct {
	Index        int
	ID           string
	Text         string
	ResponseHTML template.HTML
	Tags         []chipVM
	Preview      []chipVM
	More         int
	Expanded     bool
}

type detailVM struct {
	ID          string
	Name        string
	Purpose     string
	Date        string
	Status      string
	StatusClass string
	Notes       string
	Questions   []questionVM
	KnownTags   []string
}

type pageVM struct {
	Title      string
	DatastarJS string
	ReadOnly   bool
	Detail     bool
	Sidebar    sidebarVM
	List       listVM
	App        detailVM
}

func chip(tag string, selected bool) chipVM {
	return chipVM{Tag: tag, Class: tagcolor.For(tag).Class(), Selected: selected}
}

func (s *Server) buildPage(sess state.Session) pageVM {
	vm := pageVM{
		Title:      "Application Response Manager",
		DatastarJS: DatastarScriptURL,
		ReadOnly:   s.cfg.ReadOnly,
	}
	// The sidebar and the count header stay on screen in both views.
	vm.Sidebar = buildSidebar(s.cfg.Store.KnownTags(), sess)
	vm.List = buildList(sess)
	if a, ok := sess.Selected(); ok {
		vm.Detail = true
		vm.App = s.buildDetail(sess, a)
	}
	return vm
}

func buildSidebar(known []string, sess state.Session) sidebarVM {
	vm := sidebarVM{Search: sess.Filter.Search, HasSelected: len(sess.Filter.Tags) > 0}
	for _, t := range query.AllTags(known, sess.Apps) {
		vm.Tags = append(vm.Tags, chip(t, sess.Filter.HasTag(t)))
	}
	for _, t := range sess.Filter.Tags {
		vm.ActiveTags = append(vm.ActiveTags, chip(t, true))
	}
	return vm
}

func buildList(sess state.Session) listVM {
	visible := sess.Visible()
	vm := listVM{
		CountLabel:       model.CountLabel(len(visible)),
		SortLabel:        sess.Filter.Sort.Label(),
		HasActiveFilters: sess.HasActiveFilters(),
	}
	for _, a := range visible {
		vm.Rows = append(vm.Rows, appRowVM{
			ID:            a.ID,
			Name:          a.Name,
			Purpose:       a.Purpose,
			Date:          model.FormatDate(a.DateSubmitted),
			Status:        a.Status.Label(),
			StatusClass:   tagcolor.StatusPalette(a.Status).Class(),
			Notes:         a.NotesText(),
			QuestionCount: model.QuestionCountLabel(len(a.Questions)),
		})
	}
	return vm
}

func (s *Server) buildDetail(sess state.Session, a model.Application) detailVM {
	vm := detailVM{
		ID:          a.ID,
		Name:        a.Name,
		Purpose:     a.Purpose,
		Date:        model.FormatDate(a.DateSubmitted),
		Status:      a.Status.Label(),
		StatusClass: tagcolor.StatusPalette(a.Status).Class(),
		Notes:       a.NotesText(),
		KnownTags:   query.AllTags(s.cfg.Store.KnownTags(), sess.Apps),
	}
	for i, q := range a.Questions {
		qvm := questionVM{
			Index:        i + 1,
			ID:           q.ID,
			Text:         q.QuestionText,
			ResponseHTML: renderResponseHTML(q.Response),
			Expanded:     i == 0,
		}
		for _, t := range q.Tags {
			qvm.Tags = append(qvm.Tags, chip(t, false))
		}
		qvm.Preview = qvm.Tags
		if len(qvm.Preview) > collapsedTagLimit {
			qvm.Preview = qvm.Preview[:collapsedTagLimit]
			qvm.More = len(qvm.Tags) - collapsedTagLimit
		}
		vm.Questions = append(vm.Questions, qvm)
	}
	return vm
}
