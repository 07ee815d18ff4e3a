package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"appresp/internal/config"
	"appresp/internal/web"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWebCmd(app *App) *cobra.Command {
	var addr string
	var open bool
	var readOnly bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the web UI and JSON API",
		Long: strings.TrimSpace(`
Serve the application list, filters and tag editing as server-rendered HTML.

Pages work as plain forms; with JavaScript enabled they update live over
server-sent events (datastar). A JSON API is mounted under /api and Prometheus
metrics under /metrics.
`),
		Example: strings.TrimSpace(`
# Serve a data file on localhost
appresp --data ./applications.json web --addr 127.0.0.1:3335

# Browse without allowing tag edits
appresp --data ./applications.json web --read-only --open=false
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := strings.TrimSpace(addr)
			if !cmd.Flags().Changed("addr") {
				listenAddr = app.cfg.Addr
			}
			if listenAddr == "" {
				return writeErr(cmd, errors.New("web: missing --addr"))
			}
			if cmd.Flags().Changed("read-only") {
				app.cfg.ReadOnly = readOnly
			}

			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := web.NewServer(ctx, web.ServerConfig{
				Store:       st,
				Log:         app.log,
				ReadOnly:    app.cfg.ReadOnly,
				DefaultSort: app.cfg.DefaultSort,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}

			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			opened := false
			openErr := ""
			if open {
				if err := openURL(url); err != nil {
					openErr = err.Error()
				} else {
					opened = true
				}
			}

			hints := []string{}
			if !opened {
				hints = append(hints, "open "+url)
			}
			if !st.Writable() {
				hints = append(hints, "serving built-in sample data; tag edits are kept in memory only")
			}

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      actualAddr,
					"url":       url,
					"data":      st.Path(),
					"readOnly":  app.cfg.ReadOnly,
					"watch":     app.cfg.Watch,
					"opened":    opened,
					"openError": openErr,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": hints,
			})
			fmt.Fprintf(cmd.ErrOrStderr(), "appresp web running at %s\n", url)
			if openErr != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to open browser: %s\n", openErr)
			}

			if app.cfg.Watch {
				go func() {
					if err := srv.Watch(ctx); err != nil {
						app.log.Warn("file watch stopped", zap.Error(err))
					}
				}()
			}

			hs := &http.Server{Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = hs.Shutdown(shutdownCtx)
			}()

			app.log.Info("web server started", zap.String("addr", actualAddr), zap.Bool("readOnly", app.cfg.ReadOnly))
			if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (host:port or :port); default from config ("+config.DefaultAddr+")")
	cmd.Flags().BoolVar(&open, "open", true, "Open the UI in your default browser")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Reject tag edits")
	return cmd
}

func openURL(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("empty url")
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Run()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url).Run()
	default:
		return exec.Command("xdg-open", url).Run()
	}
}
