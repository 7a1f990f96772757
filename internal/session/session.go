package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FileState is the remembered per-file editing state: the primary
// cursor position and the last find query used in that file.
type FileState struct {
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	FindQuery string `json:"find_query,omitempty"`
}

// Session persists lightweight editor state between runs as a single
// JSON document. The engine never reads it; the front end restores
// cursor positions from it when reopening files.
type Session struct {
	path string

	mu  sync.Mutex
	raw string
}

// Open loads the session file at path, or starts an empty session when
// the file does not exist.
func Open(path string) (*Session, error) {
	s := &Session{path: path, raw: "{}"}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("reading session %s: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		// a corrupt session is discarded, not fatal
		return s, nil
	}
	s.raw = string(data)
	return s, nil
}

// FileState returns the remembered state for a file path.
func (s *Session) FileState(file string) (FileState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := gjson.Get(s.raw, "files."+escapeKey(file))
	if !v.Exists() {
		return FileState{}, false
	}
	return FileState{
		Line:      int(v.Get("line").Int()),
		Column:    int(v.Get("column").Int()),
		FindQuery: v.Get("find_query").String(),
	}, true
}

// SetFileState records state for a file path.
func (s *Session) SetFileState(file string, st FileState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := "files." + escapeKey(file)
	raw, err := sjson.Set(s.raw, key+".line", st.Line)
	if err != nil {
		return fmt.Errorf("recording session state: %w", err)
	}
	raw, err = sjson.Set(raw, key+".column", st.Column)
	if err != nil {
		return fmt.Errorf("recording session state: %w", err)
	}
	if st.FindQuery != "" {
		raw, err = sjson.Set(raw, key+".find_query", st.FindQuery)
	} else {
		raw, err = sjson.Delete(raw, key+".find_query")
	}
	if err != nil {
		return fmt.Errorf("recording session state: %w", err)
	}
	s.raw = raw
	return nil
}

// Forget drops the remembered state for a file path.
func (s *Session) Forget(file string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := sjson.Delete(s.raw, "files."+escapeKey(file))
	if err != nil {
		return fmt.Errorf("forgetting session state: %w", err)
	}
	s.raw = raw
	return nil
}

// Files returns the paths with remembered state.
func (s *Session) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	gjson.Get(s.raw, "files").ForEach(func(key, _ gjson.Result) bool {
		out = append(out, key.String())
		return true
	})
	return out
}

// Save writes the session document to its path, creating parent
// directories as needed.
func (s *Session) Save() error {
	s.mu.Lock()
	raw := s.raw
	path := s.path
	s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		return fmt.Errorf("writing session %s: %w", path, err)
	}
	return nil
}

// escapeKey escapes a file path for use as a single gjson/sjson path
// component.
func escapeKey(key string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`.`, `\.`,
		`*`, `\*`,
		`?`, `\?`,
		`|`, `\|`,
		`#`, `\#`,
		`@`, `\@`,
	)
	return r.Replace(key)
}
