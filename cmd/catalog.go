package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/retterrudi/travian-tools/optimizer"
)

// defaultUnitsFilePath is the troop catalog read when --units-file is not given.
const defaultUnitsFilePath = "units.yaml"

// Catalog represents the full units.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Catalog struct {
	Version string           `yaml:"version"`
	Tribes  map[string]Tribe `yaml:"tribes"`
}

// Tribe lists the troops one tribe can train.
type Tribe struct {
	Troops []Troop `yaml:"troops"`
}

// Troop is a trainable unit and its cost as [lumber, clay, iron, crop].
type Troop struct {
	Name string `yaml:"name"`
	Cost []int  `yaml:"cost"`
}

// LoadCatalog parses a troop catalog with strict field checking and verifies
// that every troop has four positive cost components.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read units file: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (Catalog, error) {
	// Typos in field names must cause errors, not silently zero costs.
	var cat Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cat); err != nil {
		return Catalog{}, fmt.Errorf("parse units YAML: %w", err)
	}
	for tribeName, tribe := range cat.Tribes {
		for _, troop := range tribe.Troops {
			cost, err := optimizer.FromSlice(troop.Cost)
			if err != nil {
				return Catalog{}, fmt.Errorf("tribe %q troop %q: %w", tribeName, troop.Name, err)
			}
			for _, kind := range optimizer.Kinds() {
				if cost.Get(kind) <= 0 {
					return Catalog{}, fmt.Errorf("tribe %q troop %q: %s cost must be > 0, got %d", tribeName, troop.Name, kind, cost.Get(kind))
				}
			}
		}
	}
	return cat, nil
}

// TribeNames returns the catalog's tribe names in sorted order.
func (c Catalog) TribeNames() []string {
	names := make([]string, 0, len(c.Tribes))
	for name := range c.Tribes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TroopCost looks up a troop by tribe and name. Both are matched case-insensitively.
func (c Catalog) TroopCost(tribeName, troopName string) (optimizer.Resources, error) {
	for name, tribe := range c.Tribes {
		if !strings.EqualFold(name, tribeName) {
			continue
		}
		for _, troop := range tribe.Troops {
			if strings.EqualFold(troop.Name, troopName) {
				return optimizer.FromSlice(troop.Cost)
			}
		}
		return optimizer.Resources{}, fmt.Errorf("unknown troop %q for tribe %q", troopName, tribeName)
	}
	return optimizer.Resources{}, fmt.Errorf("unknown tribe %q; valid: %s", tribeName, strings.Join(c.TribeNames(), ", "))
}
