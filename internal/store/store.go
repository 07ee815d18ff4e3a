// Package store is the data source boundary: it loads a collection of
// applications and persists new versions of it.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"appresp/internal/model"
	"appresp/internal/mutate"

	"go.uber.org/zap"
)

// DocumentVersion is written into file and SQLite stores.
const DocumentVersion = 1

// Store is implemented by MemoryStore, FileStore and SQLiteStore.
type Store interface {
	// Load returns the collection in insertion order. IDs missing in the
	// source are assigned and the result is validated.
	Load(ctx context.Context) ([]model.Application, error)
	// Save replaces the persisted collection with apps.
	Save(ctx context.Context, apps []model.Application) error
	// KnownTags is the tag list offered for filtering, as of the last Load.
	KnownTags() []string
	// SetKnownTags replaces the tag list written by the next Save.
	SetKnownTags(tags []string)
	// Path is the backing file, or "" for the memory store.
	Path() string
	// Writable reports whether Save persists beyond the process.
	Writable() bool
}

// Document is the on-disk shape of file stores.
type Document struct {
	Version      int                 `json:"version" yaml:"version"`
	KnownTags    []string            `json:"knownTags,omitempty" yaml:"knownTags,omitempty"`
	Applications []model.Application `json:"applications" yaml:"applications"`
}

// Open picks a store by file extension. An empty path means the built-in
// sample collection held in memory.
func Open(path string, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return NewMemoryStore(MockApplications(), KnownTags), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return &FileStore{path: path, codec: jsonCodec{}, log: log}, nil
	case ".yaml", ".yml":
		return &FileStore{path: path, codec: yamlCodec{}, log: log}, nil
	case ".sqlite", ".db":
		return &SQLiteStore{path: path, log: log}, nil
	default:
		return nil, fmt.Errorf("unsupported data file %q (expected .json, .yaml, .yml, .sqlite or .db)", path)
	}
}

// prepare fills missing ids, normalizes statuses and tags, and validates the
// collection.
func prepare(apps []model.Application) ([]model.Application, error) {
	if apps == nil {
		apps = []model.Application{}
	}
	AssignMissingIDs(apps)
	normalize(apps)
	if err := model.Validate(apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// normalize lowercases recognizable statuses and trims and de-duplicates tags
// in place. Unrecognized statuses are left for Validate to report.
func normalize(apps []model.Application) {
	for i := range apps {
		if st, err := model.ParseStatus(string(apps[i].Status)); err == nil {
			apps[i].Status = st
		}
		for j := range apps[i].Questions {
			q := &apps[i].Questions[j]
			if len(q.Tags) > 0 {
				q.Tags = mutate.CleanTags(q.Tags)
			}
		}
	}
}

func knownOrDefault(tags []string) []string {
	if len(tags) == 0 {
		return append([]string(nil), KnownTags...)
	}
	return append([]string(nil), tags...)
}
