package cli

import (
	"errors"
	"slices"
	"strings"

	"appresp/internal/model"
	"appresp/internal/mutate"
	"appresp/internal/query"
	"appresp/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type tagsResult struct {
	ApplicationID string   `json:"applicationId"`
	QuestionID    string   `json:"questionId"`
	Tags          []string `json:"tags"`
	Changed       bool     `json:"changed"`
	Saved         bool     `json:"saved"`
}

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags and edit question tags",
	}
	cmd.AddCommand(newTagsAllCmd(app))
	cmd.AddCommand(newTagsAddCmd(app))
	cmd.AddCommand(newTagsRemoveCmd(app))
	cmd.AddCommand(newTagsSetCmd(app))
	return cmd
}

func newTagsAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "List every tag offered for filtering (known tags first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, st, err := loadApps(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": query.AllTags(st.KnownTags(), apps)})
		},
	}
}

func newTagsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "add <app-id> <question-id> <tag>",
		Short:   "Append a tag to a question (no-op if blank or already present)",
		Example: `appresp --data apps.json tags add 3 q4 "Data Analysis"`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTags(cmd, app, args[0], args[1], func(apps []model.Application, appID, qID string) ([]model.Application, bool, error) {
				next, changed := mutate.AddTag(apps, appID, qID, args[2])
				return next, changed, nil
			})
		},
	}
}

func newTagsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <app-id> <question-id> <tag>",
		Short: "Remove a tag from a question (no-op if absent)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTags(cmd, app, args[0], args[1], func(apps []model.Application, appID, qID string) ([]model.Application, bool, error) {
				next, changed := mutate.RemoveTag(apps, appID, qID, args[2])
				return next, changed, nil
			})
		},
	}
}

func newTagsSetCmd(app *App) *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:     "set <app-id> <question-id> --tag T...",
		Short:   "Replace a question's tags (trimmed, de-duplicated); no --tag clears them",
		Example: `appresp tags set 1 q2 --tag Python --tag Go`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTags(cmd, app, args[0], args[1], func(apps []model.Application, appID, qID string) ([]model.Application, bool, error) {
				before, _ := questionTags(apps, appID, qID)
				next, err := mutate.SetTags(apps, appID, qID, tags)
				if err != nil {
					return apps, false, err
				}
				after, _ := questionTags(next, appID, qID)
				return next, !slices.Equal(before, after), nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag (repeatable)")
	return cmd
}

type tagEdit func(apps []model.Application, appID, qID string) ([]model.Application, bool, error)

// editTags resolves the target strictly, applies edit and saves when the
// collection changed.
func editTags(cmd *cobra.Command, app *App, appID, qID string, edit tagEdit) error {
	appID = strings.TrimSpace(appID)
	qID = strings.TrimSpace(qID)

	apps, st, err := loadApps(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	// A strict no-op update surfaces unknown ids before anything is edited.
	if _, err := mutate.UpdateTagsStrict(apps, appID, qID, nil); err != nil {
		return writeErr(cmd, err)
	}

	updated, changed, err := edit(apps, appID, qID)
	if err != nil {
		return writeErr(cmd, err)
	}

	saved := false
	if changed {
		if err := saveApps(cmd, app, st, updated); err != nil {
			return writeErr(cmd, err)
		}
		saved = st.Writable()
	}
	app.log.Info("tags updated",
		zap.String("app", appID), zap.String("question", qID), zap.Bool("changed", changed), zap.Bool("saved", saved))

	tags, _ := questionTags(updated, appID, qID)
	if tags == nil {
		tags = []string{}
	}
	out := map[string]any{"data": tagsResult{ApplicationID: appID, QuestionID: qID, Tags: tags, Changed: changed, Saved: saved}}
	if changed && !st.Writable() {
		out["_hints"] = []string{"no --data file configured: the change was not persisted"}
	}
	return writeOut(cmd, app, out)
}

func questionTags(apps []model.Application, appID, qID string) ([]string, bool) {
	a, ok := model.FindApplication(apps, appID)
	if !ok {
		return nil, false
	}
	q, ok := a.FindQuestion(qID)
	return q.Tags, ok
}

func saveApps(cmd *cobra.Command, app *App, st store.Store, apps []model.Application) error {
	if app.cfg.ReadOnly && st.Writable() {
		return errors.New("read-only mode is enabled (APPRESP_READ_ONLY)")
	}
	return st.Save(cmd.Context(), apps)
}
