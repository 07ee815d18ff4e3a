package cli

import (
	"strings"

	"appresp/internal/model"
	"appresp/internal/mutate"
	"appresp/internal/query"

	"github.com/spf13/cobra"
)

type listMeta struct {
	Count   int          `json:"count"`
	Total   int          `json:"total"`
	Filter  query.Filter `json:"filter"`
	Summary string       `json:"summary"`
}

func newListCmd(app *App) *cobra.Command {
	var tags []string
	var search string
	var sortFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications (filtered and sorted)",
		Example: strings.TrimSpace(`
appresp list
appresp list --tag Research --tag Python
appresp list --search "bias" --sort date-asc
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sortOrder := app.cfg.DefaultSort
			if cmd.Flags().Changed("sort") {
				o, err := model.ParseSortOrder(sortFlag)
				if err != nil {
					return writeErr(cmd, err)
				}
				sortOrder = o
			}

			apps, _, err := loadApps(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			f := query.Filter{Tags: mutate.CleanTags(tags), Search: search, Sort: sortOrder}
			visible := query.FilterAndSort(apps, f)
			return writeOut(cmd, app, map[string]any{
				"data": visible,
				"meta": listMeta{
					Count:   len(visible),
					Total:   len(apps),
					Filter:  f,
					Summary: model.CountLabel(len(visible)),
				},
			})
		},
	}

	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Only applications with a question tagged with any of these (repeatable)")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring over name, purpose, notes, questions and responses")
	cmd.Flags().StringVar(&sortFlag, "sort", string(model.SortDateDesc), "Sort by submission date (date-desc|date-asc)")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <app-id>",
		Short: "Show one application with its questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			apps, _, err := loadApps(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a, ok := model.FindApplication(apps, id)
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "application", ID: id})
			}
			return writeOut(cmd, app, map[string]any{"data": a})
		},
	}
}
