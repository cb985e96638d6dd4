package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// layoutFile is the on-disk YAML form of one layout.
type layoutFile struct {
	Template string              `yaml:"template"`
	Source   string              `yaml:"source,omitempty"`
	Page     pageFile            `yaml:"page"`
	Fields   map[string]Position `yaml:"fields"`
}

type pageFile struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Store persists layouts as one YAML file per template identity inside a
// directory. The zero value is not usable; construct with NewStore.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on the
// first save, not here.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the per-user layout directory
// (<user config dir>/reportforge/layouts).
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "reportforge", "layouts"), nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the file a template's layout is stored at.
func (s *Store) Path(templateID string) string {
	return filepath.Join(s.dir, templateID+".yaml")
}

// Load returns the persisted layout for a template, or a layout built from
// the built-in defaults when nothing usable is persisted. It never fails:
// a missing or unreadable file simply means defaults.
func (s *Store) Load(templateID, source string, pageWidth, pageHeight float64) *Layout {
	l := New(templateID, source, pageWidth, pageHeight)

	data, err := os.ReadFile(s.Path(templateID))
	if err != nil {
		return l
	}

	var f layoutFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return l
	}

	l.applyPersisted(f.Fields)
	return l
}

// Save persists the full layout atomically: the YAML document is written to
// a temporary file in the same directory and renamed over the target, so a
// crash mid-save never leaves a partial layout behind. The in-memory layout
// is untouched by a failed save.
func (s *Store) Save(l *Layout) error {
	f := layoutFile{
		Template: l.TemplateID(),
		Source:   l.Source(),
		Page:     pageFile{Width: l.PageWidth(), Height: l.PageHeight()},
		Fields:   l.Snapshot(),
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create layout dir: %w", err)
	}

	target := s.Path(l.TemplateID())
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}
