package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// document is the on-disk layout of a JSONStore file
type document struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// JSONStore keeps every key in one JSON file, rewritten atomically on each change
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{
		Version: 1,
		Values:  make(map[string]string),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'moodlit init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Values == nil {
		doc.Values = make(map[string]string)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a temp file in the same directory and renames it over the
// target, so a failed write leaves the previous file intact.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	if s.doc == nil {
		return "", false, ErrNotLoaded
	}
	v, ok := s.doc.Values[key]
	return v, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	prev, had := s.doc.Values[key]
	s.doc.Values[key] = value
	if err := s.save(); err != nil {
		// keep memory in step with the file that is still on disk
		if had {
			s.doc.Values[key] = prev
		} else {
			delete(s.doc.Values, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) Remove(key string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	prev, had := s.doc.Values[key]
	if !had {
		return nil
	}
	delete(s.doc.Values, key)
	if err := s.save(); err != nil {
		s.doc.Values[key] = prev
		return err
	}
	return nil
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.doc.Values))
	for k := range s.doc.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// GetConfigPath returns the path to the backing file.
//
// Concurrency note: JSONStore is not safe for concurrent use, and several
// processes sharing one file overwrite each other (last writer wins).
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
