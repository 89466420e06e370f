package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("got %q", got)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv(EnvDataFile, "")
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("Dir: got %q, want %q", cfg.Dir, dir)
	}
	if got, want := cfg.DataPath(), filepath.Join(dir, DataFile); got != want {
		t.Errorf("DataPath: got %q, want %q", got, want)
	}
	if cfg.Debug || cfg.Quiet || cfg.RemoteList != "" {
		t.Errorf("unexpected settings: %+v", cfg)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv(EnvDataFile, "")
	dir := t.TempDir()
	body := `data_file = "lists/home.json"
remote_list = "Groceries"
debug = true
quiet = true
colour = "blue"
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(body), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.DataPath(), filepath.Join(dir, "lists", "home.json"); got != want {
		t.Errorf("DataPath: got %q, want %q", got, want)
	}
	if cfg.RemoteList != "Groceries" || !cfg.Debug || !cfg.Quiet {
		t.Errorf("settings not applied: %+v", cfg)
	}
	if len(cfg.Undecoded) != 1 || cfg.Undecoded[0] != "colour" {
		t.Errorf("Undecoded: %v", cfg.Undecoded)
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("data_file = \n"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for malformed config.toml")
	}
	if !strings.Contains(err.Error(), ConfigFile) {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(`data_file = "from-file.json"`), 0600); err != nil {
		t.Fatal(err)
	}
	abs := filepath.Join(t.TempDir(), "from-env.json")
	t.Setenv(EnvDataFile, abs)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataPath() != abs {
		t.Errorf("DataPath: got %q, want %q", cfg.DataPath(), abs)
	}
}

func TestDataPath_Expansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	t.Setenv("TODO_TEST_DIR", "/srv/todo")

	cfg := &Config{Dir: "/etc/todo"}

	cfg.DataFile = "~/tasks.json"
	if got := cfg.DataPath(); got != filepath.Join(home, "tasks.json") {
		t.Errorf("tilde: got %q", got)
	}

	cfg.DataFile = "$TODO_TEST_DIR/tasks.json"
	if got := cfg.DataPath(); got != "/srv/todo/tasks.json" {
		t.Errorf("env: got %q", got)
	}
}

func TestTokenFiles(t *testing.T) {
	cfg := &Config{Dir: t.TempDir()}
	if cfg.HasToken() || cfg.HasOAuthClient() {
		t.Fatal("fresh dir should have no credentials")
	}
	if err := os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if !cfg.HasToken() {
		t.Error("HasToken should be true after writing token")
	}
	if err := cfg.RemoveToken(); err != nil {
		t.Fatalf("RemoveToken: %v", err)
	}
	if cfg.HasToken() {
		t.Error("HasToken should be false after removal")
	}
}
