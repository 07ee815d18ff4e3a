package cli

import (
	"errors"
	"strings"

	"appresp/internal/mutate"
	"appresp/internal/publish"
	"appresp/internal/query"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir string
	var appID string
	var tags []string
	var search string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write applications as Markdown pages (index.md + applications/<id>.md)",
		Example: strings.TrimSpace(`
appresp --data apps.json publish --to ./out
appresp --data apps.json publish --to ./out --tag Leadership --overwrite
appresp --data apps.json publish --to ./out --app 3
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toDir = strings.TrimSpace(toDir)
			if toDir == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}
			apps, _, err := loadApps(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}

			opt := publish.WriteOptions{
				Overwrite: overwrite,
				Filter:    query.Filter{Tags: mutate.CleanTags(tags), Search: search, Sort: app.cfg.DefaultSort},
			}
			var res publish.WriteResult
			if id := strings.TrimSpace(appID); id != "" {
				res, err = publish.WriteApplication(apps, id, toDir, opt)
			} else {
				res, err = publish.WriteCollection(apps, toDir, opt)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("published markdown", zap.String("to", toDir), zap.Int("files", len(res.Written)))
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().StringVar(&appID, "app", "", "Publish a single application")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Only applications with any of these tags (repeatable)")
	cmd.Flags().StringVar(&search, "search", "", "Only applications matching this search")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	return cmd
}
