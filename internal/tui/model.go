package tui

import (
	"context"
	"errors"
	"strings"

	"appresp/internal/model"
	"appresp/internal/query"
	"appresp/internal/state"
	"appresp/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modeTagPicker
	modeAddTag
)

// collapsedTagLimit is how many chips a collapsed question previews.
const collapsedTagLimit = 5

// Rows used by the header and footer around the list or detail body.
const (
	headerLines = 4
	footerLines = 2
)

type reloadMsg struct{}

type appModel struct {
	ctx   context.Context
	store    store.Store
	log      *zap.Logger
	readOnly bool

	sess state.Session

	width  int
	height int

	mode     inputMode
	list     list.Model
	detail   viewport.Model
	search   textinput.Model
	tagInput textinput.Model

	pickerIndex   int
	questionIndex int
	chipIndex     int

	flash   string
	flashOK bool

	reloads chan struct{}
}

func newAppModel(ctx context.Context, opts Options) (appModel, error) {
	if opts.Store == nil {
		return appModel{}, errors.New("tui: store is nil")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	apps, err := opts.Store.Load(ctx)
	if err != nil {
		return appModel{}, err
	}

	l := list.New(nil, applicationDelegate{}, 80, 20)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "Search responses..."

	tagInput := textinput.New()
	tagInput.Prompt = ""
	tagInput.Placeholder = "Type tag name..."
	tagInput.ShowSuggestions = true

	m := appModel{
		ctx:      ctx,
		store:    opts.Store,
		log:      log,
		readOnly: opts.ReadOnly,
		sess:     state.New(apps, opts.DefaultSort),
		width:    80,
		height:   24,
		list:     l,
		detail:   viewport.New(80, 18),
		search:   search,
		tagInput: tagInput,
		reloads:  make(chan struct{}, 1),
	}
	m.refreshList("")
	m.resize()
	return m, nil
}

func waitForReload(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

func (m appModel) Init() tea.Cmd { return waitForReload(m.reloads) }

func (m *appModel) resize() {
	bodyH := m.height - headerLines - footerLines
	if bodyH < 3 {
		bodyH = 3
	}
	m.list.SetSize(m.width, bodyH)
	m.detail.Width = m.width
	m.detail.Height = bodyH
	m.search.Width = m.width - 14
	m.tagInput.Width = m.width - 14
}

// refreshList rebuilds the list rows from the session, keeping the cursor on
// keepID when it is still visible.
func (m *appModel) refreshList(keepID string) {
	if keepID == "" {
		if it, ok := m.list.SelectedItem().(applicationItem); ok {
			keepID = it.app.ID
		}
	}
	visible := m.sess.Visible()
	items := make([]list.Item, 0, len(visible))
	sel := 0
	for i, a := range visible {
		items = append(items, applicationItem{app: a})
		if a.ID == keepID {
			sel = i
		}
	}
	m.list.SetItems(items)
	m.list.Select(sel)
}

func (m *appModel) setSession(next state.Session) {
	m.sess = next
	m.refreshList("")
	m.clampDetailCursor()
}

func (m *appModel) setFlash(msg string, ok bool) {
	m.flash = msg
	m.flashOK = ok
}

func (m *appModel) reload() {
	apps, err := m.store.Load(m.ctx)
	if err != nil {
		m.log.Warn("reload failed", zap.String("path", m.store.Path()), zap.Error(err))
		m.setFlash("reload failed: "+err.Error(), false)
		return
	}
	m.setSession(m.sess.Replace(apps))
	m.log.Info("reloaded data", zap.String("path", m.store.Path()), zap.Int("applications", len(apps)))
}

const readOnlyFlash = "read-only: tag edits are disabled"

func (m *appModel) persist() {
	if m.readOnly || !m.store.Writable() {
		return
	}
	if err := m.store.Save(m.ctx, m.sess.Apps); err != nil {
		m.log.Error("save failed", zap.String("path", m.store.Path()), zap.Error(err))
		m.setFlash("save failed: "+err.Error(), false)
	}
}

func (m appModel) selectedQuestion() (model.Application, model.Question, bool) {
	a, ok := m.sess.Selected()
	if !ok || len(a.Questions) == 0 {
		return a, model.Question{}, false
	}
	i := m.questionIndex
	if i < 0 || i >= len(a.Questions) {
		return a, model.Question{}, false
	}
	return a, a.Questions[i], true
}

func (m *appModel) clampDetailCursor() {
	a, ok := m.sess.Selected()
	if !ok {
		m.questionIndex, m.chipIndex = 0, 0
		return
	}
	if m.questionIndex >= len(a.Questions) {
		m.questionIndex = len(a.Questions) - 1
	}
	if m.questionIndex < 0 {
		m.questionIndex = 0
	}
	_, q, ok := m.selectedQuestion()
	if !ok || m.chipIndex >= len(q.Tags) {
		m.chipIndex = len(q.Tags) - 1
	}
	if m.chipIndex < 0 {
		m.chipIndex = 0
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case reloadMsg:
		m.reload()
		return m, waitForReload(m.reloads)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeTagPicker:
			return m.updateTagPicker(msg)
		case modeAddTag:
			return m.updateAddTag(msg)
		}
		if m.sess.View() == state.ViewDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}

	if m.mode == modeSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	if m.mode == modeAddTag {
		var cmd tea.Cmd
		m.tagInput, cmd = m.tagInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		if it, ok := m.list.SelectedItem().(applicationItem); ok {
			m.sess = m.sess.Select(it.app.ID)
			m.questionIndex, m.chipIndex = 0, 0
			m.detail.GotoTop()
		}
		return m, nil
	case "/":
		m.mode = modeSearch
		m.search.SetValue(m.sess.Filter.Search)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "t":
		m.mode = modeTagPicker
		m.pickerIndex = 0
		return m, nil
	case "c":
		m.setSession(m.sess.ClearFilters())
		return m, nil
	case "s":
		m.setSession(m.sess.ToggleSort())
		return m, nil
	case "r":
		m.reload()
		return m, nil
	case "n":
		m.log.Info("Add new log clicked")
		m.setFlash("Adding new logs is not available yet", true)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeNormal
		m.search.Blur()
		return m, nil
	case "esc":
		m.mode = modeNormal
		m.search.Blur()
		m.search.SetValue("")
		m.setSession(m.sess.SetSearch(""))
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.sess.Filter.Search {
		m.setSession(m.sess.SetSearch(v))
	}
	return m, cmd
}

func (m appModel) pickerTags() []string {
	return query.AllTags(m.store.KnownTags(), m.sess.Apps)
}

func (m appModel) updateTagPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tags := m.pickerTags()
	switch msg.String() {
	case "esc", "t", "q":
		m.mode = modeNormal
	case "up", "k":
		if m.pickerIndex > 0 {
			m.pickerIndex--
		}
	case "down", "j":
		if m.pickerIndex < len(tags)-1 {
			m.pickerIndex++
		}
	case " ", "space", "enter":
		if m.pickerIndex >= 0 && m.pickerIndex < len(tags) {
			m.setSession(m.sess.ToggleTag(tags[m.pickerIndex]))
		}
	case "c":
		m.setSession(m.sess.ClearFilters())
	}
	return m, nil
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	a, ok := m.sess.Selected()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.sess = m.sess.Back()
		m.refreshList(a.ID)
		return m, nil
	case "down", "j":
		if m.questionIndex < len(a.Questions)-1 {
			m.questionIndex++
			m.chipIndex = 0
		}
		return m, nil
	case "up", "k":
		if m.questionIndex > 0 {
			m.questionIndex--
			m.chipIndex = 0
		}
		return m, nil
	case "right", "l":
		if _, q, ok := m.selectedQuestion(); ok && m.chipIndex < len(q.Tags)-1 {
			m.chipIndex++
		}
		return m, nil
	case "left", "h":
		if m.chipIndex > 0 {
			m.chipIndex--
		}
		return m, nil
	case "a":
		if m.readOnly {
			m.setFlash(readOnlyFlash, false)
			return m, nil
		}
		if _, _, ok := m.selectedQuestion(); !ok {
			return m, nil
		}
		m.mode = modeAddTag
		m.tagInput.SetValue("")
		m.tagInput.SetSuggestions(m.pickerTags())
		return m, m.tagInput.Focus()
	case "x", "d":
		if m.readOnly {
			m.setFlash(readOnlyFlash, false)
			return m, nil
		}
		_, q, ok := m.selectedQuestion()
		if !ok || m.chipIndex >= len(q.Tags) {
			return m, nil
		}
		tag := q.Tags[m.chipIndex]
		next, changed := m.sess.RemoveTag(a.ID, q.ID, tag)
		if changed {
			m.setSession(next)
			m.persist()
			m.log.Debug("tag removed", zap.String("application", a.ID), zap.String("question", q.ID), zap.String("tag", tag))
		}
		return m, nil
	case "r":
		m.reload()
		return m, nil
	case "pgdown", "ctrl+d":
		m.detail.HalfViewDown()
		return m, nil
	case "pgup", "ctrl+u":
		m.detail.HalfViewUp()
		return m, nil
	}
	return m, nil
}

func (m appModel) updateAddTag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.tagInput.Blur()
		m.tagInput.SetValue("")
		return m, nil
	case "enter":
		m.mode = modeNormal
		m.tagInput.Blur()
		value := strings.TrimSpace(m.tagInput.Value())
		m.tagInput.SetValue("")
		a, q, ok := m.selectedQuestion()
		if !ok || value == "" {
			return m, nil
		}
		next, changed := m.sess.AddTag(a.ID, q.ID, value)
		if !changed {
			m.setFlash("tag already present: "+value, true)
			return m, nil
		}
		m.setSession(next)
		m.persist()
		if _, nq, ok := m.selectedQuestion(); ok {
			m.chipIndex = len(nq.Tags) - 1
		}
		m.log.Debug("tag added", zap.String("application", a.ID), zap.String("question", q.ID), zap.String("tag", value))
		return m, nil
	}
	var cmd tea.Cmd
	m.tagInput, cmd = m.tagInput.Update(msg)
	return m, cmd
}
