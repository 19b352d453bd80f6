package pokedb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"romwiki/internal/model"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	db := Open(t.TempDir())

	p := &model.Pokemon{
		ID:    "pikachu",
		Name:  "pikachu",
		Types: []string{"electric"},
		Stats: model.Stats{HP: 35, Attack: 55, Speed: 90},
	}
	require.NoError(t, db.SavePokemon("pikachu", p))

	// Fresh handle forces a disk read past the cache.
	got, err := Open(db.root).Pokemon("pikachu")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestLoadMissingRecord(t *testing.T) {
	db := Open(t.TempDir())
	_, err := db.Pokemon("missingno")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "moves"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "moves", "tackle.json"), []byte("{oops"), 0o644))

	_, err := Open(dir).Move("tackle")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestListReturnsSortedIDs(t *testing.T) {
	db := Open(t.TempDir())
	for _, id := range []string{"zubat", "abra", "mew"} {
		require.NoError(t, db.SavePokemon(id, &model.Pokemon{ID: id, Name: id}))
	}

	ids, err := db.ListPokemon()
	require.NoError(t, err)
	assert.Equal(t, []string{"abra", "mew", "zubat"}, ids)
}

func TestListMissingKindIsEmpty(t *testing.T) {
	db := Open(t.TempDir())
	ids, err := db.ListItems()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCacheReturnsSameRecord(t *testing.T) {
	db := Open(t.TempDir())
	require.NoError(t, db.SaveMove("tackle", &model.Move{ID: "tackle", Name: "tackle", Power: 40}))

	first, err := db.Move("tackle")
	require.NoError(t, err)
	second, err := db.Move("tackle")
	require.NoError(t, err)
	assert.Same(t, first, second, "repeat loads hit the cache")
}

func TestEvolutionChainRoundTrip(t *testing.T) {
	db := Open(t.TempDir())
	chain := &model.EvolutionChain{
		ID: "pichu-line",
		Root: &model.EvolutionNode{
			SpeciesName: "pichu",
			EvolvesTo: []*model.EvolutionNode{{
				SpeciesName: "pikachu",
				Details:     &model.EvolutionDetails{Trigger: "level-up", MinHappiness: 220},
			}},
		},
	}
	require.NoError(t, db.SaveEvolutionChain("pichu-line", chain))

	got, err := Open(db.root).EvolutionChain("pichu-line")
	require.NoError(t, err)
	assert.Equal(t, chain, got)
}
