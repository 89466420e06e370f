package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"todo/internal/task"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")

	orig := New()
	a := mustAdd(t, orig, "Task 1")
	mustAdd(t, orig, "Task 2")
	c := mustAdd(t, orig, "Task 3")
	orig.ToggleComplete(a.ID)
	orig.Delete(c.ID)

	if err := orig.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := New()
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	want, got := orig.All(), loaded.All()
	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("task %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSave_FileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	s := New()
	mustAdd(t, s, "Buy groceries")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("expected trailing newline")
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("saved file is not a JSON array: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	r := records[0]
	if r["id"] != float64(1) || r["text"] != "Buy groceries" || r["completed"] != false {
		t.Errorf("record: %v", r)
	}
}

func TestSave_EmptyStoreWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	if err := New().Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "[]\n" {
		t.Errorf("got %q, want %q", data, "[]\n")
	}
}

func TestSave_CreatesParentDirAndLeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deeper")
	path := filepath.Join(dir, "todos.json")

	s := New()
	mustAdd(t, s, "x")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(path); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "todos.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("unexpected directory contents: %v", names)
	}
}

func TestSave_IOError(t *testing.T) {
	// The parent "directory" is a regular file, so neither mkdir nor the write can succeed.
	blocker := filepath.Join(t.TempDir(), "blocker")
	writeFile(t, blocker, "not a dir")

	s := New()
	mustAdd(t, s, "x")
	err := s.Save(filepath.Join(blocker, "todos.json"))
	if !errors.Is(err, task.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	var ioErr *task.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *task.IOError, got %T", err)
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s := New()
	if err := s.Load(filepath.Join(t.TempDir(), "nope.json")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len: got %d", s.Len())
	}
	if tk := mustAdd(t, s, "first"); tk.ID != 1 {
		t.Errorf("first id: got %d, want 1", tk.ID)
	}
}

func TestLoad_EmptyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	writeFile(t, path, "  \n")
	s := New()
	if err := s.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len: got %d", s.Len())
	}
}

func TestLoad_PreservesOrderAndContinuesIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	writeFile(t, path, `[
  {"id": 7, "text": "seventh", "completed": true},
  {"id": "3", "text": "third", "completed": false, "due_date": "2024-12-25"},
  {"id": 12, "text": "twelfth", "completed": false}
]`)

	s := New()
	if err := s.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := texts(s.All()); !equalStrings(got, []string{"seventh", "third", "twelfth"}) {
		t.Errorf("order: %v", got)
	}
	if got, ok := s.Get(3); !ok || got.Text != "third" {
		t.Errorf("string id not loaded: %+v %v", got, ok)
	}
	if tk := mustAdd(t, s, "next"); tk.ID != 13 {
		t.Errorf("next id: got %d, want 13", tk.ID)
	}
}

func TestLoad_IntegralFloatID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	writeFile(t, path, `[{"id": 4.0, "text": "four", "completed": false}]`)

	s := New()
	if err := s.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, ok := s.Get(4); !ok || got.Text != "four" {
		t.Errorf("Get(4): %+v %v", got, ok)
	}
	if tk := mustAdd(t, s, "next"); tk.ID != 5 {
		t.Errorf("next id: got %d, want 5", tk.ID)
	}
}

func TestLoad_MaxIDExhaustsCounter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	writeFile(t, path, `[
  {"id": 1, "text": "a", "completed": false},
  {"id": 9223372036854775807, "text": "b", "completed": false}
]`)

	s := New()
	if err := s.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, err := s.Add("c")
	if !errors.Is(err, ErrIDsExhausted) {
		t.Fatalf("expected ErrIDsExhausted, got %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("store changed by failed Add: len %d", s.Len())
	}
	for _, tk := range s.All() {
		if tk.ID < 1 {
			t.Errorf("non-positive id in store: %d", tk.ID)
		}
	}
}

func TestLoad_Deserialization(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantPath string
	}{
		{name: "invalid json", body: `[{"id": 1,`, wantPath: ""},
		{name: "not an array", body: `{"id": 1, "text": "x", "completed": false}`, wantPath: ""},
		{name: "trailing data", body: `[] []`, wantPath: ""},
		{name: "missing text", body: `[{"id": 1, "completed": false}]`, wantPath: "[0]"},
		{name: "wrong completed type", body: `[{"id": 1, "text": "x", "completed": "no"}]`, wantPath: "[0].completed"},
		{name: "blank text", body: `[{"id": 1, "text": "x", "completed": false}, {"id": 2, "text": "  ", "completed": false}]`, wantPath: "[1].text"},
		{name: "zero id", body: `[{"id": 0, "text": "a", "completed": false}]`, wantPath: "[0].id"},
		{name: "zero string id", body: `[{"id": "0", "text": "a", "completed": false}]`, wantPath: "[0].id"},
		{name: "negative id", body: `[{"id": -9223372036854775808, "text": "a", "completed": false}, {"id": 9223372036854775807, "text": "b", "completed": false}]`, wantPath: "[0].id"},
		{name: "negative string id", body: `[{"id": 1, "text": "a", "completed": false}, {"id": "-2", "text": "b", "completed": false}]`, wantPath: "[1].id"},
		{name: "fractional id", body: `[{"id": 1.5, "text": "a", "completed": false}]`, wantPath: "[0].id"},
		{name: "duplicate id", body: `[{"id": 1, "text": "a", "completed": false}, {"id": 1, "text": "b", "completed": false}]`, wantPath: "[1].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "todos.json")
			writeFile(t, path, tt.body)

			s := New()
			mustAdd(t, s, "keep me")

			err := s.Load(path)
			var de *task.DeserializationError
			if !errors.As(err, &de) {
				t.Fatalf("expected DeserializationError, got %v", err)
			}
			if de.Path != tt.wantPath {
				t.Errorf("Path: got %q, want %q (err: %v)", de.Path, tt.wantPath, err)
			}
			if got := texts(s.All()); !equalStrings(got, []string{"keep me"}) {
				t.Errorf("store changed on failed load: %v", got)
			}
		})
	}
}

func TestLoad_IOError(t *testing.T) {
	// Reading a directory fails with something other than "not exist".
	dir := t.TempDir()
	err := New().Load(dir)
	if !errors.Is(err, task.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":          "",
		"#":         "",
		"/0":        "[0]",
		"/2/text":   "[2].text",
		"#/1/id":    "[1].id",
		"/a~1b/c~0": "a/b.c~",
	}
	for in, want := range tests {
		if got := jsonPointerToPath(in); got != want {
			t.Errorf("jsonPointerToPath(%q) = %q, want %q", in, got, want)
		}
	}
}
