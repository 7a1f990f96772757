package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/command"
)

// EnvPrefix is the prefix of environment variables that override
// loaded settings.
const EnvPrefix = "EDITCORE_"

// Config holds editor settings.
type Config struct {
	// TabWidth is the display and soft-tab width in spaces.
	TabWidth int `toml:"tab_width"`

	// SoftTabs inserts spaces instead of tab chars when true.
	SoftTabs bool `toml:"soft_tabs"`

	// MaxHistory bounds the per-buffer undo stack.
	MaxHistory int `toml:"max_history"`

	// CommentPrefix is the line comment marker ToggleComment uses.
	CommentPrefix string `toml:"comment_prefix"`

	// PageSize is the line count PageUp/PageDown move by.
	PageSize int `toml:"page_size"`

	// MaxFileSize bounds the files the editor will open, in bytes.
	MaxFileSize int64 `toml:"max_file_size"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TabWidth:      buffer.DefaultTabWidth,
		SoftTabs:      true,
		MaxHistory:    buffer.DefaultMaxHistory,
		CommentPrefix: command.DefaultCommentPrefix,
		PageSize:      command.DefaultPageSize,
		MaxFileSize:   10 * 1024 * 1024,
	}
}

// ParseError reports a malformed config file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads settings from the TOML file at path, applies environment
// overrides, and validates. A missing file is not an error; defaults
// plus environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, &ParseError{Path: path, Err: err}
		}
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

// LoadFromReader reads settings from an io.Reader, without environment
// overrides.
func LoadFromReader(r io.Reader) (Config, error) {
	cfg := Default()
	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ParseError{Path: "<reader>", Err: err}
	}
	cfg.normalize()
	return cfg, nil
}

// applyEnv overrides settings from EDITCORE_* environment variables.
// Malformed values are ignored rather than failing startup.
func (c *Config) applyEnv() {
	if v, ok := envInt("TAB_WIDTH"); ok {
		c.TabWidth = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "SOFT_TABS"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SoftTabs = b
		}
	}
	if v, ok := envInt("MAX_HISTORY"); ok {
		c.MaxHistory = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "COMMENT_PREFIX"); ok && v != "" {
		c.CommentPrefix = v
	}
	if v, ok := envInt("PAGE_SIZE"); ok {
		c.PageSize = v
	}
}

func envInt(name string) (int, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// normalize clamps out-of-range settings back to sane values.
func (c *Config) normalize() {
	if c.TabWidth < 1 {
		c.TabWidth = buffer.DefaultTabWidth
	}
	if c.MaxHistory < 1 {
		c.MaxHistory = buffer.DefaultMaxHistory
	}
	if c.CommentPrefix == "" {
		c.CommentPrefix = command.DefaultCommentPrefix
	}
	if c.PageSize < 1 {
		c.PageSize = command.DefaultPageSize
	}
	if c.MaxFileSize < 0 {
		c.MaxFileSize = 0
	}
}

// BufferOptions returns the buffer options these settings imply.
func (c Config) BufferOptions() []buffer.Option {
	return []buffer.Option{
		buffer.WithTabWidth(c.TabWidth),
		buffer.WithSoftTabs(c.SoftTabs),
		buffer.WithMaxHistory(c.MaxHistory),
	}
}

// ExecutorOptions returns the executor options these settings imply.
func (c Config) ExecutorOptions() []command.ExecutorOption {
	return []command.ExecutorOption{
		command.WithPageSize(c.PageSize),
		command.WithIndentWidth(c.TabWidth),
		command.WithCommentPrefix(c.CommentPrefix),
	}
}
