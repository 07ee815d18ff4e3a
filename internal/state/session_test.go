package state

import (
	"testing"

	"appresp/internal/model"
	"appresp/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visibleIDs(s Session) []string {
	var out []string
	for _, a := range s.Visible() {
		out = append(out, a.ID)
	}
	return out
}

func TestSession_SelectAndBack(t *testing.T) {
	s := New(store.MockApplications(), "")
	assert.Equal(t, ViewList, s.View())
	assert.Equal(t, model.SortDateDesc, s.Filter.Sort)

	s2 := s.Select("3")
	assert.Equal(t, ViewDetail, s2.View())
	a, ok := s2.Selected()
	require.True(t, ok)
	assert.Equal(t, "NSF Graduate Research Fellowship", a.Name)
	assert.Equal(t, ViewList, s.View(), "receiver is untouched")

	assert.Equal(t, s2, s2.Select("missing"), "unknown id is ignored")
	assert.Equal(t, ViewList, s2.Back().View())
}

func TestSession_DetailFollowsTagEdits(t *testing.T) {
	s := New(store.MockApplications(), model.SortDateDesc).Select("1")

	s, changed := s.AddTag("1", "q1", "Mentoring")
	require.True(t, changed)
	a, _ := s.Selected()
	q, _ := a.FindQuestion("q1")
	assert.Contains(t, q.Tags, "Mentoring")

	// The list view sees the same version.
	for _, v := range s.Visible() {
		if v.ID == "1" {
			vq, _ := v.FindQuestion("q1")
			assert.Equal(t, q.Tags, vq.Tags)
		}
	}

	s, changed = s.RemoveTag("1", "q1", "Mentoring")
	require.True(t, changed)
	a, _ = s.Selected()
	q, _ = a.FindQuestion("q1")
	assert.NotContains(t, q.Tags, "Mentoring")

	s = s.UpdateTags("1", "q1", nil)
	a, _ = s.Selected()
	q, _ = a.FindQuestion("q1")
	assert.Empty(t, q.Tags)
}

func TestSession_FiltersAndSort(t *testing.T) {
	s := New(store.MockApplications(), model.SortDateDesc)
	assert.Equal(t, []string{"2", "1", "3"}, visibleIDs(s))
	assert.Equal(t, 3, s.Count())
	assert.False(t, s.HasActiveFilters())

	s = s.ToggleTag("Research")
	assert.Equal(t, []string{"3"}, visibleIDs(s))
	assert.True(t, s.HasActiveFilters())

	s = s.ToggleTag("Python")
	assert.Equal(t, []string{"1", "3"}, visibleIDs(s))

	s = s.ToggleTag("Research")
	assert.Equal(t, []string{"Python"}, s.Filter.Tags)

	s = s.ToggleSort()
	assert.Equal(t, model.SortDateAsc, s.Filter.Sort)

	s = s.SetSearch("nothing matches this")
	assert.Equal(t, 0, s.Count())

	s = s.ClearFilters()
	assert.False(t, s.HasActiveFilters())
	assert.Equal(t, model.SortDateAsc, s.Filter.Sort, "clear keeps the sort order")
	assert.Equal(t, []string{"3", "1", "2"}, visibleIDs(s))

	s = s.SetSort(model.SortDateDesc)
	assert.Equal(t, []string{"2", "1", "3"}, visibleIDs(s))
}

func TestSession_ToggleTagDoesNotAliasFilter(t *testing.T) {
	s := New(store.MockApplications(), "").ToggleTag("A").ToggleTag("B")
	s2 := s.ToggleTag("A")
	assert.Equal(t, []string{"A", "B"}, s.Filter.Tags)
	assert.Equal(t, []string{"B"}, s2.Filter.Tags)
}

func TestSession_Replace(t *testing.T) {
	s := New(store.MockApplications(), "").Select("2")

	kept := s.Replace(store.MockApplications()[1:])
	assert.Equal(t, "2", kept.SelectedID)

	dropped := s.Replace(store.MockApplications()[:1])
	assert.Equal(t, "", dropped.SelectedID)
	assert.Equal(t, ViewList, dropped.View())
}
