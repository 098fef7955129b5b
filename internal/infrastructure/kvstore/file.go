package kvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"strategy_dashboard/internal/app/port"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// File keeps every key in one JSON document on disk. Writes go to a temp file that is
// renamed over the original, so a crash never leaves a half-written document.
type File struct {
	path string
	mu   sync.Mutex
}

var _ port.KVStore = (*File)(nil)

// NewFile creates a file-backed store at path. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) read() (map[string]jsoniter.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]jsoniter.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read kv file %s: %w", f.path, err)
	}
	doc := map[string]jsoniter.RawMessage{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse kv file %s: %w", f.path, err)
	}
	return doc, nil
}

func (f *File) write(doc map[string]jsoniter.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode kv file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create kv directory: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write kv file %s: %w", tmp, err)
	}
	return os.Rename(tmp, f.path)
}

func (f *File) Load(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

// Save stores value, which must be valid JSON.
func (f *File) Save(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("kv file store accepts JSON values only (key %q)", key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	doc[key] = append(jsoniter.RawMessage(nil), value...)
	return f.write(doc)
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return f.write(doc)
}
