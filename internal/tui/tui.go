// Package tui is the interactive terminal front-end: a filterable list of
// applications and a detail view for editing question tags.
package tui

import (
	"context"

	"appresp/internal/model"
	"appresp/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	Store       store.Store
	Log         *zap.Logger
	DefaultSort model.SortOrder
	// Watch reloads the collection when the data file changes on disk.
	Watch bool
	// ReadOnly disables tag edits.
	ReadOnly bool
}

func Run(ctx context.Context, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	applyColorProfilePreference()

	m, err := newAppModel(ctx, opts)
	if err != nil {
		return err
	}
	if opts.Watch && opts.Store.Path() != "" {
		w, err := store.NewWatcher(opts.Store.Path(), m.log)
		if err != nil {
			m.log.Warn("file watch disabled", zap.Error(err))
		} else {
			go func() {
				_ = w.Run(ctx, func() {
					select {
					case m.reloads <- struct{}{}:
					default:
					}
				})
			}()
		}
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
