package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Namespaces recognized inside a coverage config file.
const (
	nsRun    = "run"
	nsReport = "report"
	nsPaths  = "paths"
)

// FileStore is a TOML file-backed Store. It understands two layouts:
// a dedicated config file with top-level [run] and [report] tables,
// and a pyproject-style file where the same tables live under
// [tool.coverage.run] and [tool.coverage.report]. Content outside the
// coverage tables is preserved across a load/save round trip.
type FileStore struct {
	path    string
	nested  bool
	doc     map[string]any
	options map[string]any
	paths   map[string][]string
}

// Open reads a coverage config file into a FileStore.
func Open(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	doc := make(map[string]any)
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	s := &FileStore{
		path:    path,
		nested:  isNested(path, doc),
		doc:     doc,
		options: make(map[string]any),
		paths:   make(map[string][]string),
	}
	s.extract()
	return s, nil
}

// Create returns an empty FileStore bound to path. Nothing is written
// until Save is called.
func Create(path string) *FileStore {
	return &FileStore{
		path:    path,
		nested:  filepath.Base(path) == "pyproject.toml",
		doc:     make(map[string]any),
		options: make(map[string]any),
		paths:   make(map[string][]string),
	}
}

// isNested reports whether the document uses the pyproject layout.
func isNested(path string, doc map[string]any) bool {
	if tool, ok := doc["tool"].(map[string]any); ok {
		if _, ok := tool["coverage"]; ok {
			return true
		}
	}
	return filepath.Base(path) == "pyproject.toml"
}

// extract pulls the coverage tables out of the parsed document into
// the options map.
func (s *FileStore) extract() {
	root := s.root(false)
	if root == nil {
		return
	}
	for _, ns := range []string{nsRun, nsReport} {
		tbl, ok := root[ns].(map[string]any)
		if !ok {
			continue
		}
		for k, v := range tbl {
			s.options[ns+":"+k] = v
		}
	}
	if tbl, ok := root[nsPaths].(map[string]any); ok {
		for name, v := range tbl {
			if entries, ok := v.([]any); ok {
				paths := make([]string, 0, len(entries))
				for _, e := range entries {
					if str, ok := e.(string); ok {
						paths = append(paths, str)
					}
				}
				s.paths[name] = paths
			}
		}
	}
}

// root returns the table holding the coverage namespaces, creating
// intermediate tables when create is true.
func (s *FileStore) root(create bool) map[string]any {
	if !s.nested {
		return s.doc
	}
	tool, ok := s.doc["tool"].(map[string]any)
	if !ok {
		if !create {
			return nil
		}
		tool = make(map[string]any)
		s.doc["tool"] = tool
	}
	coverage, ok := tool["coverage"].(map[string]any)
	if !ok {
		if !create {
			return nil
		}
		coverage = make(map[string]any)
		tool["coverage"] = coverage
	}
	return coverage
}

// GetOption returns the value for key, if set.
func (s *FileStore) GetOption(key string) (any, bool) {
	v, ok := s.options[key]
	return v, ok
}

// SetOption sets the value for key.
func (s *FileStore) SetOption(key string, value any) {
	s.options[key] = value
}

// Paths returns the mutable path-equivalence table.
func (s *FileStore) Paths() map[string][]string {
	return s.paths
}

// Path returns the file path this store is bound to.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the store back to its file, folding the options into
// the coverage tables and leaving unrelated document content intact.
func (s *FileStore) Save() error {
	root := s.root(true)

	tables := map[string]map[string]any{
		nsRun:    {},
		nsReport: {},
	}
	for key, value := range s.options {
		ns, opt, ok := strings.Cut(key, ":")
		if !ok {
			continue
		}
		tbl, ok := tables[ns]
		if !ok {
			continue
		}
		tbl[opt] = value
	}
	for ns, tbl := range tables {
		if len(tbl) > 0 {
			root[ns] = tbl
		}
	}
	if len(s.paths) > 0 {
		root[nsPaths] = s.paths
	}

	data, err := toml.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("encoding config %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", s.path, err)
	}
	return nil
}

// Compile-time interface checks.
var (
	_ Store = (*MemStore)(nil)
	_ Store = (*FileStore)(nil)
)
