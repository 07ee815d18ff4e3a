package main

import (
	"os"
	"strings"

	"appresp/internal/cli"
)

func isAppID(s string) bool {
	s = strings.TrimSpace(s)
	// Only generated ids are recognized; bare ids like "1" would shadow commands.
	return strings.HasPrefix(s, "app-") && len(s) > len("app-")
}

// rewriteDirectAppLookupArgs turns `appresp <app-id>` into
// `appresp show <app-id>`. Cobra treats the first non-flag token as a
// subcommand, so argv is rewritten before parsing.
func rewriteDirectAppLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--data":      true,
		"--config":    true,
		"--format":    true,
		"--log-level": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	insertShow := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isAppID(argv[i+1]) {
				return insertShow(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isAppID(a) {
			return insertShow(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectAppLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
