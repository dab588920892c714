package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Spec entry types accepted in a components config file.
const (
	SpecInstalled = "installed"
	SpecCustom    = "custom"
)

// ComponentSpec is one entry of a catalog-driven components file.
// "installed" entries name a package whose version is looked up through a
// package catalog provider; "custom" entries carry their own version and
// optionally a license.
type ComponentSpec struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	License string `json:"license,omitempty"`
}

// LoadSpecs reads a components config file: a JSON array of ComponentSpec.
// Entries with an unknown type or a missing name are rejected here;
// per-entry semantic problems (missing versions, lookup misses) are handled
// later during resolution so one bad entry cannot sink the whole file.
func LoadSpecs(path string) ([]ComponentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read components config %q: %w", path, err)
	}

	var specs []ComponentSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("components config %q is not a JSON component list: %w", path, err)
	}

	for i, s := range specs {
		if s.Type != SpecInstalled && s.Type != SpecCustom {
			return nil, fmt.Errorf("components config entry %d: unknown type %q (want %q or %q)",
				i, s.Type, SpecInstalled, SpecCustom)
		}
		if s.Name == "" {
			return nil, fmt.Errorf("components config entry %d: missing name", i)
		}
	}
	return specs, nil
}
