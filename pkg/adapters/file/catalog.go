package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Entry is a loaded machine file.
type Entry struct {
	Path       string
	Document   *Document
	Definition *machine.Definition
}

// Load reads a machine file. A document without a name is named after the file.
func Load(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine file: %w", err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	def, err := doc.Definition()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Entry{Path: path, Document: doc, Definition: def}, nil
}

// Catalog implements ports.DefinitionLoader over a directory of machine files.
// It is loaded once and read-only afterwards.
type Catalog struct {
	dir     string
	entries map[string]*Entry
}

// NewCatalog loads every *.yaml and *.yml file in dir (non-recursive).
func NewCatalog(dir string) (*Catalog, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine directory: %w", err)
	}

	c := &Catalog{dir: dir, entries: make(map[string]*Entry)}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := filepath.Ext(f.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		entry, err := Load(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, err
		}
		name := entry.Definition.Name()
		if prev, dup := c.entries[name]; dup {
			return nil, fmt.Errorf("duplicate machine name %q in %s and %s", name, prev.Path, entry.Path)
		}
		c.entries[name] = entry
	}

	return c, nil
}

// Get retrieves a definition by name.
func (c *Catalog) Get(name string) (*machine.Definition, error) {
	e, err := c.Entry(name)
	if err != nil {
		return nil, err
	}
	return e.Definition, nil
}

// Entry retrieves the full loaded entry by name.
func (c *Catalog) Entry(name string) (*Entry, error) {
	e, ok := c.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return e, nil
}

// List returns all machine names, sorted.
func (c *Catalog) List() ([]string, error) {
	names := make([]string, 0, len(c.entries))
	for n := range c.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Dir returns the catalog directory.
func (c *Catalog) Dir() string {
	return c.dir
}
