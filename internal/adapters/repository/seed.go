package repository

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/lexrec/internal/domain/model"
)

// seedFile is the YAML layout of a content seed:
//
//	items:
//	  - id: post-1
//	    title: ...
type seedFile struct {
	Items []model.ContentItem `yaml:"items"`
}

// LoadSeedFile reads content items from a YAML seed file. Items without a
// status are treated as active.
func LoadSeedFile(path string) ([]model.ContentItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(raw []byte) ([]model.ContentItem, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSeed, err)
	}
	seen := make(map[string]struct{}, len(f.Items))
	for i := range f.Items {
		it := &f.Items[i]
		if it.ID == "" {
			return nil, fmt.Errorf("%w: item %d has no id", ErrSeed, i)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrSeed, it.ID)
		}
		seen[it.ID] = struct{}{}
		if it.Status == "" {
			it.Status = model.StatusActive
		}
	}
	return f.Items, nil
}
