package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.TabWidth != 4 {
		t.Errorf("TabWidth = %d", cfg.TabWidth)
	}
	if !cfg.SoftTabs {
		t.Error("SoftTabs should default true")
	}
	if cfg.MaxHistory != 1000 {
		t.Errorf("MaxHistory = %d", cfg.MaxHistory)
	}
	if cfg.CommentPrefix != "// " {
		t.Errorf("CommentPrefix = %q", cfg.CommentPrefix)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "editcore.toml")
	content := `
tab_width = 8
soft_tabs = false
comment_prefix = "# "
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TabWidth != 8 {
		t.Errorf("TabWidth = %d", cfg.TabWidth)
	}
	if cfg.SoftTabs {
		t.Error("SoftTabs should be false")
	}
	if cfg.CommentPrefix != "# " {
		t.Errorf("CommentPrefix = %q", cfg.CommentPrefix)
	}
	// unset keys keep defaults
	if cfg.MaxHistory != 1000 {
		t.Errorf("MaxHistory = %d", cfg.MaxHistory)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("tab_width = ["), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("err = %v, want ParseError", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EDITCORE_TAB_WIDTH", "2")
	t.Setenv("EDITCORE_SOFT_TABS", "false")
	t.Setenv("EDITCORE_MAX_HISTORY", "50")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TabWidth != 2 {
		t.Errorf("TabWidth = %d", cfg.TabWidth)
	}
	if cfg.SoftTabs {
		t.Error("SoftTabs should be false")
	}
	if cfg.MaxHistory != 50 {
		t.Errorf("MaxHistory = %d", cfg.MaxHistory)
	}
}

func TestEnvMalformedIgnored(t *testing.T) {
	t.Setenv("EDITCORE_TAB_WIDTH", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TabWidth != 4 {
		t.Errorf("TabWidth = %d", cfg.TabWidth)
	}
}

func TestNormalizeClampsBadValues(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader("tab_width = -3\npage_size = 0"))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.TabWidth != 4 {
		t.Errorf("TabWidth = %d", cfg.TabWidth)
	}
	if cfg.PageSize != 20 {
		t.Errorf("PageSize = %d", cfg.PageSize)
	}
}

func TestOptionHelpers(t *testing.T) {
	cfg := Default()
	if got := len(cfg.BufferOptions()); got != 3 {
		t.Errorf("BufferOptions count = %d", got)
	}
	if got := len(cfg.ExecutorOptions()); got != 3 {
		t.Errorf("ExecutorOptions count = %d", got)
	}
}
