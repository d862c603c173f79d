package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"travelplanner/internal/models/trip_models"

	"gopkg.in/yaml.v3"
)

//go:embed destinations.yaml
var destinationsYAML []byte

// Entry is the static knowledge kept for one destination.
type Entry struct {
	Name        string                     `yaml:"name"`
	Description string                     `yaml:"description"`
	MustSee     []string                   `yaml:"must_see"`
	Transport   []trip_models.TransportTip `yaml:"transport"`
	Coordinates *trip_models.Coordinates   `yaml:"coordinates"`
}

type Catalog struct {
	entries map[string]Entry
}

// Load parses the embedded destination file.
func Load() (*Catalog, error) {
	return Parse(destinationsYAML)
}

func Parse(data []byte) (*Catalog, error) {
	raw := make(map[string]Entry)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse destination catalog: %w", err)
	}

	entries := make(map[string]Entry, len(raw))
	for key, entry := range raw {
		if entry.Name == "" {
			entry.Name = key
		}
		entries[normalize(key)] = entry
	}
	return &Catalog{entries: entries}, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup finds a destination by name, ignoring case.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	entry, ok := c.entries[normalize(name)]
	return entry, ok
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		names = append(names, entry.Name)
	}
	sort.Strings(names)
	return names
}
