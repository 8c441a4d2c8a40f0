// Package catalog loads the ordered list of exercises a tutoring session walks
// through. Catalogs are YAML or JSON, either a bare list of tasks or an object
// with a "tasks" key; with no file configured the embedded shell course is used.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/termtutor/internal/errors"
)

//go:embed default.yaml
var defaultCatalog []byte

// BuiltinSource is reported as the Source of the embedded catalog.
const BuiltinSource = "builtin:shell-basics"

// Catalog is an immutable, ordered set of tasks.
type Catalog struct {
	Tasks []Task

	// Source is the file the catalog came from, or BuiltinSource.
	Source string

	// Fingerprint is the hex blake3 digest of the raw catalog bytes.
	Fingerprint string
}

type document struct {
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// Load reads the catalog at path. An empty path loads the built-in course.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog, "yaml", BuiltinSource)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewCatalogNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeCatalogNotFound, fmt.Sprintf("cannot read catalog %s", path), err)
	}

	format, err := formatFor(path)
	if err != nil {
		return nil, err
	}

	return Parse(data, format, path)
}

// Parse decodes raw catalog bytes in the given format ("yaml" or "json").
func Parse(data []byte, format, source string) (*Catalog, error) {
	tasks, err := decode(data, format)
	if err != nil {
		return nil, errors.NewCatalogUnmarshalError(source, strings.ToUpper(format), err)
	}

	c := &Catalog{
		Tasks:       tasks,
		Source:      source,
		Fingerprint: Fingerprint(data),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decode(data []byte, format string) ([]Task, error) {
	trimmed := bytes.TrimSpace(data)

	switch format {
	case "json":
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var tasks []Task
			if err := json.Unmarshal(trimmed, &tasks); err != nil {
				return nil, err
			}
			return tasks, nil
		}
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		return doc.Tasks, nil

	case "yaml":
		var node yaml.Node
		if err := yaml.Unmarshal(trimmed, &node); err != nil {
			return nil, err
		}
		if len(node.Content) == 0 {
			return nil, nil
		}
		if node.Content[0].Kind == yaml.SequenceNode {
			var tasks []Task
			if err := node.Content[0].Decode(&tasks); err != nil {
				return nil, err
			}
			return tasks, nil
		}
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Tasks, nil
	}

	return nil, fmt.Errorf("unsupported format %q", format)
}

func formatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	}
	return "", errors.New(errors.ErrCodeCatalogFormat, fmt.Sprintf("unsupported catalog extension: %s", path)).
		WithSuggestion("Use a .yaml, .yml or .json file")
}

// Validate checks the catalog is non-empty and every task has a solution.
func (c *Catalog) Validate() error {
	if len(c.Tasks) == 0 {
		return errors.NewCatalogInvalidError("catalog has no tasks")
	}
	for i, t := range c.Tasks {
		if strings.TrimSpace(t.ExpectedCommand) == "" {
			return errors.NewCatalogInvalidError(fmt.Sprintf("task %d has no expectedCommand", i+1))
		}
	}
	return nil
}

// Len returns the number of tasks.
func (c *Catalog) Len() int {
	return len(c.Tasks)
}

// Task returns the task at index i.
func (c *Catalog) Task(i int) (Task, bool) {
	if i < 0 || i >= len(c.Tasks) {
		return Task{}, false
	}
	return c.Tasks[i], true
}

// Fingerprint hashes raw catalog bytes so a progress record can tell whether
// it was written against the same catalog.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
