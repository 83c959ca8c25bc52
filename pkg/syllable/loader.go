package syllable

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader produces validated-on-build records from an external source.
// Lookup never depends on how entries were sourced; loaders only feed New and Extend.
type Loader interface {
	Load() ([]Record, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func() ([]Record, error)

// Load calls f.
func (f LoaderFunc) Load() ([]Record, error) {
	return f()
}

// FSLoader loads records from YAML and JSON files in an fs.FS.
// Each file holds a list of records; files are read in lexical walk order.
//
// Example file (dict/names.yaml):
//
//	- text: ဦး
//	  category: prefix-title
//	  frequency: 0.91
//	  forms:
//	    long: U
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader over fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// Load walks the file system and decodes every .yaml, .yml and .json file.
// Duplicates across files are rejected here so the offending file can be named.
func (l *FSLoader) Load() ([]Record, error) {
	var (
		records []Record
		seen    = make(map[string]string)
	)

	err := fs.WalkDir(l.fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		var unmarshal func([]byte, any) error
		switch strings.ToLower(path.Ext(filePath)) {
		case ".yaml", ".yml":
			unmarshal = yaml.Unmarshal
		case ".json":
			unmarshal = json.Unmarshal
		default:
			return nil
		}

		data, err := fs.ReadFile(l.fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		var batch []Record
		if err := unmarshal(data, &batch); err != nil {
			return fmt.Errorf("%w: parsing %q: %s", ErrMalformedRecord, filePath, err)
		}

		for _, r := range batch {
			if err := Validate(r); err != nil {
				return fmt.Errorf("%w (in %q)", err, filePath)
			}
			key := normalizeKey(r.Text)
			if prev, ok := seen[key]; ok {
				return fmt.Errorf("%w (in %q, first defined in %q)", wrapKey(ErrDuplicateSyllable, key), filePath, prev)
			}
			seen[key] = filePath
			records = append(records, r)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}
