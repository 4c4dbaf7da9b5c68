package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retterrudi/travian-tools/optimizer"
)

// repoCatalogPath finds units.yaml from either the repo root or cmd/.
func repoCatalogPath(t *testing.T) string {
	t.Helper()
	path := defaultUnitsFilePath
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = filepath.Join("..", defaultUnitsFilePath)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Skip("units.yaml not found, skipping catalog test")
		}
	}
	return path
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "units.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalog_RepoCatalog_HasSpartans(t *testing.T) {
	// GIVEN the catalog shipped with the repo
	cat, err := LoadCatalog(repoCatalogPath(t))
	require.NoError(t, err)

	// THEN the Spartan troops resolve to their costs
	assert.Contains(t, cat.TribeNames(), "spartans")
	rider, err := cat.TroopCost("spartans", "Elpida Rider")
	require.NoError(t, err)
	assert.Equal(t, optimizer.New(555, 445, 330, 110), rider)

	shieldsman, err := cat.TroopCost("Spartans", "shieldsman")
	require.NoError(t, err, "lookup is case-insensitive")
	assert.Equal(t, optimizer.New(145, 95, 245, 45), shieldsman)
	assert.Len(t, cat.Tribes["spartans"].Troops, 10)
}

func TestLoadCatalog_UnknownField_Rejected(t *testing.T) {
	// GIVEN a catalog with a misspelled key
	path := writeCatalog(t, `
version: "1"
tribes:
  spartans:
    troops:
      - name: Hoplite
        costs: [110, 185, 110, 35]
`)

	// WHEN loaded
	_, err := LoadCatalog(path)

	// THEN strict parsing rejects it
	assert.ErrorContains(t, err, "costs")
}

func TestLoadCatalog_BadCosts_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		cost    string
		wantErr string
	}{
		{"three components", "[1, 2, 3]", "expected 4 resource values"},
		{"zero component", "[1, 0, 3, 4]", "clay cost must be > 0"},
		{"negative component", "[1, 2, 3, -4]", "crop cost must be > 0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeCatalog(t, "tribes:\n  gauls:\n    troops:\n      - name: Phalanx\n        cost: "+tc.cost+"\n")
			_, err := LoadCatalog(path)
			assert.ErrorContains(t, err, tc.wantErr)
			assert.ErrorContains(t, err, `troop "Phalanx"`)
		})
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "read units file")
}

func TestCatalog_TroopCost_UnknownNames(t *testing.T) {
	cat := Catalog{Tribes: map[string]Tribe{
		"romans":  {Troops: []Troop{{Name: "Legionnaire", Cost: []int{120, 100, 150, 30}}}},
		"teutons": {Troops: []Troop{{Name: "Clubswinger", Cost: []int{95, 75, 40, 40}}}},
	}}

	_, err := cat.TroopCost("huns", "Mercenary")
	assert.ErrorContains(t, err, `unknown tribe "huns"; valid: romans, teutons`)

	_, err = cat.TroopCost("romans", "Clubswinger")
	assert.ErrorContains(t, err, `unknown troop "Clubswinger"`)
}

func TestPrintCatalog_FiltersByTribe(t *testing.T) {
	cat := Catalog{Tribes: map[string]Tribe{
		"romans":  {Troops: []Troop{{Name: "Legionnaire", Cost: []int{120, 100, 150, 30}}}},
		"teutons": {Troops: []Troop{{Name: "Clubswinger", Cost: []int{95, 75, 40, 40}}}},
	}}

	var all, one bytes.Buffer
	printCatalog(&all, cat, "")
	printCatalog(&one, cat, "teutons")

	assert.Contains(t, all.String(), "Legionnaire")
	assert.Contains(t, all.String(), "Clubswinger")
	assert.NotContains(t, one.String(), "Legionnaire")
	assert.Contains(t, one.String(), "Clubswinger")
}
