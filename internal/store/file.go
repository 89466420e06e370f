package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"todo/internal/task"
)

// Save writes every task to path as a JSON array with 2-space indentation.
// The file is replaced atomically: data goes to a temp file in the same
// directory which is then renamed over path. Failures are *task.IOError.
func (s *Store) Save(path string) error {
	records := make([]map[string]any, len(s.tasks))
	for i, t := range s.tasks {
		records[i] = t.ToMap()
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return &task.IOError{Op: "mkdir", Path: dir, Err: err}
	}

	if err := writeAtomic(path, data); err != nil {
		return err
	}

	s.log.Debug("saved tasks", zap.String("path", path), zap.Int("count", len(s.tasks)))
	return nil
}

func writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &task.IOError{Op: "write", Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &task.IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &task.IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &task.IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return &task.IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &task.IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// Load replaces the store's contents with the tasks in path, preserving file order.
//
// A missing file leaves the store empty and is not an error. Unreadable files
// yield a *task.IOError; invalid JSON, schema violations, bad records and
// duplicate ids yield a *task.DeserializationError. On error the store is unchanged.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("no data file, starting empty", zap.String("path", path))
			s.tasks = nil
			return nil
		}
		return &task.IOError{Op: "read", Path: path, Err: err}
	}

	tasks, err := decode(data)
	if err != nil {
		return err
	}

	last := s.lastID
	for _, t := range tasks {
		last = max(last, t.ID)
	}

	s.tasks = tasks
	s.lastID = last
	s.log.Debug("loaded tasks", zap.String("path", path), zap.Int("count", len(tasks)))
	return nil
}

// decode parses and validates a data file body.
func decode(data []byte) ([]task.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &task.DeserializationError{Err: fmt.Errorf("parse data file: %w", err)}
	}
	if dec.More() {
		return nil, &task.DeserializationError{Err: errors.New("parse data file: trailing data after JSON array")}
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	items := doc.([]any)
	tasks := make([]task.Task, 0, len(items))
	seen := make(map[int64]int, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &task.DeserializationError{Path: fmt.Sprintf("[%d]", i), Err: errors.New("expected object")}
		}
		t, err := task.FromMap(m)
		if err != nil {
			var de *task.DeserializationError
			if errors.As(err, &de) {
				return nil, &task.DeserializationError{Path: fmt.Sprintf("[%d].%s", i, de.Path), Err: de.Err}
			}
			return nil, err
		}
		if first, dup := seen[t.ID]; dup {
			return nil, &task.DeserializationError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %d (first at [%d])", t.ID, first),
			}
		}
		seen[t.ID] = i
		tasks = append(tasks, t)
	}
	return tasks, nil
}
