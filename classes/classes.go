// Package classes - Class-name tables for detection models.
package classes

import (
	"bufio"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrClassCountMismatch reports a class table whose size does not match the
// class-field count of the model output layout. Raised once at detector
// construction, before any detection call runs.
var ErrClassCountMismatch = errors.New("class table size does not match model class count")

// Table is an ordered, read-only mapping from class index to class name.
// It is immutable after construction and safe for concurrent readers.
type Table struct {
	names []string
}

// NewTable builds a table from an ordered name list.
func NewTable(names []string) *Table {
	copied := make([]string, len(names))
	copy(copied, names)
	return &Table{names: copied}
}

// Len returns the number of classes in the table.
func (t *Table) Len() int {
	return len(t.names)
}

// Name returns the class name for an index. The boolean is false when the
// index has no entry.
func (t *Table) Name(index int) (string, bool) {
	if index < 0 || index >= len(t.names) {
		return "", false
	}
	return t.names[index], true
}

// Names returns a copy of the ordered name list.
func (t *Table) Names() []string {
	copied := make([]string, len(t.names))
	copy(copied, t.names)
	return copied
}

// Validate checks the table against the model's class-field count.
//
// Arguments:
//   - numClasses: The C in the model's (4 + C) output layout.
//
// Returns:
//   - error: ErrClassCountMismatch when the sizes differ.
func (t *Table) Validate(numClasses int) error {
	if len(t.names) != numClasses {
		return errors.Wrapf(ErrClassCountMismatch, "table has %d names, model expects %d classes",
			len(t.names), numClasses)
	}
	return nil
}

// metadata mirrors the YOLO export metadata.yaml layout. The exporter
// writes `names` either as a plain list or as an index-keyed map.
type metadata struct {
	Names yaml.Node `yaml:"names"`
}

// LoadMetadata reads a class table from a YOLO metadata.yaml file.
//
// Arguments:
//   - path: Path to the metadata YAML file.
//
// Returns:
//   - *Table: The ordered class table.
//   - error: An error if the file cannot be read or parsed.
func LoadMetadata(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read class metadata %s", path)
	}
	return ParseMetadata(b)
}

// ParseMetadata decodes class names from metadata YAML bytes.
func ParseMetadata(b []byte) (*Table, error) {
	var meta metadata
	if err := yaml.Unmarshal(b, &meta); err != nil {
		return nil, errors.Wrap(err, "failed to parse class metadata")
	}

	switch meta.Names.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := meta.Names.Decode(&names); err != nil {
			return nil, errors.Wrap(err, "failed to decode names list")
		}
		return NewTable(names), nil
	case yaml.MappingNode:
		var byIndex map[int]string
		if err := meta.Names.Decode(&byIndex); err != nil {
			return nil, errors.Wrap(err, "failed to decode names map")
		}
		indices := make([]int, 0, len(byIndex))
		for idx := range byIndex {
			indices = append(indices, idx)
		}
		sort.Ints(indices)
		names := make([]string, 0, len(byIndex))
		for i, idx := range indices {
			if idx != i {
				return nil, errors.Errorf("names map is not contiguous: missing index %d", i)
			}
			names = append(names, byIndex[idx])
		}
		return NewTable(names), nil
	default:
		return nil, errors.New("metadata has no names entry")
	}
}

// LoadFile reads a class table from a plain text file with one class name
// per line. Blank lines are skipped.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open class file %s", path)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read class file %s", path)
	}
	return NewTable(names), nil
}
