// Package publish writes applications out as markdown pages, for reusing
// responses outside the app.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"appresp/internal/model"
	"appresp/internal/mutate"
	"appresp/internal/query"
)

type WriteOptions struct {
	Overwrite bool
	Filter    query.Filter
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteApplication writes <toDir>/applications/<id>.md.
func WriteApplication(apps []model.Application, appID string, toDir string, opt WriteOptions) (WriteResult, error) {
	appID = strings.TrimSpace(appID)
	if appID == "" {
		return WriteResult{}, errors.New("missing application id")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	a, ok := model.FindApplication(apps, appID)
	if !ok {
		return WriteResult{}, mutate.NotFoundError{Kind: "application", ID: appID}
	}

	outDir := filepath.Join(filepath.Clean(toDir), "applications")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(outDir, fileName(a.ID))
	if err := writeFile(outPath, []byte(RenderApplicationMarkdown(a)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

// WriteCollection writes an index.md plus one page per application passing
// opt.Filter, in the filter's sort order.
func WriteCollection(apps []model.Application, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	visible := query.FilterAndSort(apps, opt.Filter)
	appsDir := filepath.Join(toDir, "applications")
	if err := os.MkdirAll(appsDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderIndexMarkdown(visible, opt.Filter)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	// Stop on the first error.
	written := []string{indexPath}
	for _, a := range visible {
		p := filepath.Join(appsDir, fileName(a.ID))
		if err := writeFile(p, []byte(RenderApplicationMarkdown(a)), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}
	return WriteResult{Written: written}, nil
}

// fileName keeps ids from escaping the output directory.
func fileName(id string) string {
	id = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(id)
	return id + ".md"
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
