package cli

import (
	"errors"
	"os"
	"strings"

	"appresp/internal/format"
	"appresp/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current collection to a JSON/YAML file (or stdout)",
		Example: strings.TrimSpace(`
appresp export > applications.json
appresp --data apps.sqlite export --out backup.yaml
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, st, err := loadApps(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc := store.Document{Version: store.DocumentVersion, KnownTags: st.KnownTags(), Applications: apps}

			out = strings.TrimSpace(out)
			if out == "" {
				// Raw document, not the envelope, so the output can be imported.
				return format.WriteJSON(cmd.OutOrStdout(), doc, true)
			}
			if err := store.WriteFile(out, apps, doc.KnownTags); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("exported collection", zap.String("out", out), zap.Int("applications", len(apps)))
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"out": out, "applications": len(apps)}})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Destination file (.json, .yaml or .yml)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the --data collection with the contents of a JSON/YAML/SQLite file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !dst.Writable() {
				return writeErr(cmd, errors.New("import: set --data (or APPRESP_DATA) to the file to import into"))
			}
			if _, err := os.Stat(args[0]); err != nil {
				return writeErr(cmd, err)
			}
			src, err := store.Open(args[0], app.log)
			if err != nil {
				return writeErr(cmd, err)
			}
			apps, err := src.Load(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			dst.SetKnownTags(src.KnownTags())
			if err := saveApps(cmd, app, dst, apps); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("imported collection", zap.String("from", args[0]), zap.String("into", dst.Path()), zap.Int("applications", len(apps)))
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"from": args[0], "into": dst.Path(), "applications": len(apps)}})
		},
	}
}
