package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"appresp/internal/model"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type codec interface {
	decode(b []byte, doc *Document) error
	encode(doc Document) ([]byte, error)
}

type jsonCodec struct{}

func (jsonCodec) decode(b []byte, doc *Document) error { return json.Unmarshal(b, doc) }
func (jsonCodec) encode(doc Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

type yamlCodec struct{}

func (yamlCodec) decode(b []byte, doc *Document) error { return yaml.Unmarshal(b, doc) }
func (yamlCodec) encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileStore reads and writes a whole Document as JSON or YAML. A missing
// file loads as an empty collection and is created on the first Save.
type FileStore struct {
	path  string
	codec codec
	log   *zap.Logger

	mu    sync.Mutex
	known []string
}

func (s *FileStore) Path() string   { return s.path }
func (s *FileStore) Writable() bool { return true }

func (s *FileStore) KnownTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return knownOrDefault(s.known)
}

func (s *FileStore) SetKnownTags(tags []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.known = append([]string(nil), tags...)
}

func (s *FileStore) Load(_ context.Context) ([]model.Application, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("data file does not exist yet", zap.String("path", s.path))
		return []model.Application{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc Document
	if len(bytes.TrimSpace(b)) > 0 {
		if err := s.codec.decode(b, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.path, err)
		}
	}
	apps, err := prepare(doc.Applications)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.known = doc.KnownTags
	s.mu.Unlock()

	s.log.Debug("loaded data file", zap.String("path", s.path), zap.Int("applications", len(apps)))
	return apps, nil
}

func (s *FileStore) Save(_ context.Context, apps []model.Application) error {
	s.mu.Lock()
	known := s.known
	s.mu.Unlock()

	doc := Document{Version: DocumentVersion, KnownTags: known, Applications: apps}
	if doc.Applications == nil {
		doc.Applications = []model.Application{}
	}
	b, err := s.codec.encode(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := atomicWriteFile(dir, filepath.Base(s.path)+".*.tmp", s.path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	s.log.Debug("saved data file", zap.String("path", s.path), zap.Int("applications", len(apps)))
	return nil
}

// WriteFile encodes apps into path as JSON or YAML by extension.
func WriteFile(path string, apps []model.Application, known []string) error {
	st, err := Open(path, nil)
	if err != nil {
		return err
	}
	f, ok := st.(*FileStore)
	if !ok {
		return fmt.Errorf("%s is not a JSON or YAML file", path)
	}
	f.SetKnownTags(known)
	return f.Save(context.Background(), apps)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
