package location

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"romwiki/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "locations.json"), " - ")
}

func TestSplitKey(t *testing.T) {
	s := testStore(t)

	parent, sub := s.SplitKey("Route 1")
	assert.Equal(t, "Route 1", parent)
	assert.Nil(t, sub)

	parent, sub = s.SplitKey("Castelia City - Battle Company/47F")
	assert.Equal(t, "Castelia City", parent)
	assert.Equal(t, []string{"Battle Company", "47F"}, sub)
}

func TestMergeEncountersAppendsWithinRun(t *testing.T) {
	s := testStore(t)

	s.MergeEncounters("Route 1", model.Encounter{Pokemon: "lillipup", Rate: 40})
	s.MergeEncounters("Route 1", model.Encounter{Pokemon: "patrat", Rate: 60})

	got := s.Encounters("Route 1")
	require.Len(t, got, 2)
	assert.Equal(t, "lillipup", got[0].Pokemon)
	assert.Equal(t, "patrat", got[1].Pokemon)
}

func TestMergeEncountersFirstTouchClearsAcrossRuns(t *testing.T) {
	s := testStore(t)

	s.MergeEncounters("Route 1", model.Encounter{Pokemon: "lillipup"})
	require.NoError(t, s.Save())

	// Second run: the key's first merge replaces what the previous run wrote.
	s.Reset()
	s.MergeEncounters("Route 1", model.Encounter{Pokemon: "purrloin"})
	require.NoError(t, s.Save())

	persisted, err := s.Load()
	require.NoError(t, err)
	enc := persisted["Route 1"].Encounters
	require.Len(t, enc, 1)
	assert.Equal(t, "purrloin", enc[0].Pokemon)
}

func TestSavePreservesUntouchedKeys(t *testing.T) {
	s := testStore(t)

	s.MergeEncounters("Route 1", model.Encounter{Pokemon: "lillipup"})
	s.MergeEncounters("Route 2", model.Encounter{Pokemon: "patrat"})
	require.NoError(t, s.Save())

	s.Reset()
	s.MergeEncounters("Route 1", model.Encounter{Pokemon: "purrloin"})
	require.NoError(t, s.Save())

	persisted, err := s.Load()
	require.NoError(t, err)

	require.Contains(t, persisted, "Route 2")
	require.Len(t, persisted["Route 2"].Encounters, 1)
	assert.Equal(t, "patrat", persisted["Route 2"].Encounters[0].Pokemon, "untouched key survives verbatim")
	assert.Equal(t, "purrloin", persisted["Route 1"].Encounters[0].Pokemon)
}

func TestSaveSplicesSublocations(t *testing.T) {
	s := testStore(t)

	s.MergeEncounters("Castelia City - Sewers", model.Encounter{Pokemon: "rattata"})
	s.MergeTrainers("Castelia City - Battle Company/47F", model.Trainer{Name: "Clerk"})
	require.NoError(t, s.Save())

	persisted, err := s.Load()
	require.NoError(t, err)

	city := persisted["Castelia City"]
	require.NotNil(t, city)
	require.Len(t, city.Sublocations["Sewers"].Encounters, 1)
	company := city.Sublocations["Battle Company"]
	require.NotNil(t, company)
	require.Len(t, company.Sublocations["47F"].Trainers, 1)
	assert.Equal(t, "Clerk", company.Sublocations["47F"].Trainers[0].Name)
}

func TestSaveKeepsEncountersWhenOnlyTrainersTouched(t *testing.T) {
	s := testStore(t)

	s.MergeEncounters("Route 1", model.Encounter{Pokemon: "lillipup"})
	require.NoError(t, s.Save())

	s.Reset()
	s.MergeTrainers("Route 1", model.Trainer{Name: "Joey"})
	require.NoError(t, s.Save())

	persisted, err := s.Load()
	require.NoError(t, err)
	loc := persisted["Route 1"]
	assert.Len(t, loc.Encounters, 1, "encounter list untouched this run")
	assert.Len(t, loc.Trainers, 1)
}

func TestLoadMissingFileIsEmptyMap(t *testing.T) {
	s := testStore(t)
	persisted, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewStore(path, " - ").Load()
	require.Error(t, err)
}

func TestSaveWritesValidJSON(t *testing.T) {
	s := testStore(t)
	s.MergeEncounters("Route 1", model.Encounter{Pokemon: "lillipup", Method: "Grass", MinLevel: 2, MaxLevel: 4, Rate: 40})
	require.NoError(t, s.Save())

	raw, err := os.ReadFile(s.path)
	require.NoError(t, err)
	var decoded map[string]*model.Location
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 40, decoded["Route 1"].Encounters[0].Rate)
}
