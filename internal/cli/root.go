package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"appresp/internal/config"
	"appresp/internal/format"
	"appresp/internal/logging"
	"appresp/internal/model"
	"appresp/internal/store"
	"appresp/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	DataPath   string
	ConfigFile string
	LogLevel   string
	PrettyJSON bool
	Format     string

	cfg *config.Config
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "appresp",
		Short:        "Track application questions, responses and tags (CLI + TUI + web)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI over the built-in sample data
  appresp

  # Use a data file (JSON, YAML or SQLite)
  appresp --data ./applications.yaml

  # Scriptable commands
  appresp list --tag Research --search bias
  appresp tags add 3 q4 "Data Analysis"

  # Serve the web UI
  appresp web --addr 127.0.0.1:3335
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.configure(cmd); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			_ = app.log.Sync()
		}
	}

	cmd.PersistentFlags().StringVar(&app.DataPath, "data", "", "Data file (.json, .yaml, .yml, .sqlite, .db); empty uses the built-in sample data in memory")
	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", envOr("APPRESP_CONFIG", ""), "Config file (default: ./appresp.yaml or $XDG_CONFIG_HOME/appresp/appresp.yaml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("APPRESP_FORMAT", "json"), "Output format (json|edn|yaml)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// configure resolves config and builds the logger. Flags win over config.
func (app *App) configure(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{ConfigFile: app.ConfigFile})
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data = strings.TrimSpace(app.DataPath)
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = app.LogLevel
	}
	app.cfg = cfg

	// The TUI owns the terminal; only log there when a log file is configured.
	if cmd == cmd.Root() && cfg.Log.File == "" {
		app.log = logging.Nop()
		return nil
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	app.log = log
	return nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	st, err := openStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(cmd.Context(), tui.Options{
		Store:       st,
		Log:         app.log,
		DefaultSort: app.cfg.DefaultSort,
		Watch:       app.cfg.Watch,
		ReadOnly:    app.cfg.ReadOnly,
	})
}

func openStore(app *App) (store.Store, error) {
	return store.Open(app.cfg.Data, app.log)
}

func loadApps(ctx context.Context, app *App) ([]model.Application, store.Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := openStore(app)
	if err != nil {
		return nil, nil, err
	}
	apps, err := st.Load(ctx)
	if err != nil {
		return nil, st, err
	}
	return apps, st, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
