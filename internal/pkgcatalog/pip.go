package pkgcatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// PipProvider reads the package catalog of a Python environment by
// shelling out to pip. Pip is the only process this tool ever spawns.
type PipProvider struct {
	// Pip overrides the executable name, mainly for tests. Empty means "pip".
	Pip string
}

func (p *PipProvider) pip() string {
	if p.Pip != "" {
		return p.Pip
	}
	return "pip"
}

// ListInstalled runs `pip list --format json` and returns name → version.
func (p *PipProvider) ListInstalled(ctx context.Context) (map[string]string, error) {
	out, err := exec.CommandContext(ctx, p.pip(), "list", "--format", "json").Output()
	if err != nil {
		return nil, fmt.Errorf("pip list failed: %w", err)
	}
	return parsePipList(out)
}

// Describe runs `pip show <name>` and extracts license and location.
func (p *PipProvider) Describe(ctx context.Context, name string) (PackageInfo, error) {
	out, err := exec.CommandContext(ctx, p.pip(), "show", name).Output()
	if err != nil {
		return PackageInfo{}, fmt.Errorf("pip show %s failed: %w", name, err)
	}
	return parsePipShow(out), nil
}

// parsePipList parses the JSON array emitted by `pip list --format json`.
func parsePipList(out []byte) (map[string]string, error) {
	var entries []struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal(out, &entries); err != nil {
		return nil, fmt.Errorf("unexpected pip list output: %w", err)
	}

	installed := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			installed[e.Name] = e.Version
		}
	}
	return installed, nil
}

// parsePipShow parses the "Key: value" lines emitted by `pip show`.
// Missing keys leave the corresponding fields empty.
func parsePipShow(out []byte) PackageInfo {
	var info PackageInfo
	for _, line := range strings.Split(string(out), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "License":
			info.License = value
		case "Location":
			info.Location = value
		}
	}
	return info
}
