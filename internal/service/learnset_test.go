package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"romwiki/internal/changes"
	"romwiki/internal/model"
)

func TestUpdateLevelUpMovesReplacesLearnset(t *testing.T) {
	db := testDB(t)
	p := pikachu()
	p.Moves = []model.LearnedMove{
		{Name: "thunder-shock", Method: "level-up", Level: 1},
		{Name: "thunderbolt", Method: "machine"},
	}
	seedPokemon(t, db, p)
	seedMove(t, db)
	tracker := changes.NewTracker("test")
	svc := NewLearnset(db, tracker)

	require.NoError(t, svc.UpdateLevelUpMoves("pikachu", []model.LearnedMove{
		{Name: "Tackle", Level: 1},
		{Name: "Growl", Level: 3},
	}))

	got, err := db.Pokemon("pikachu")
	require.NoError(t, err)
	assert.Equal(t, []model.LearnedMove{
		{Name: "thunderbolt", Method: "machine"},
		{Name: "tackle", Method: "level-up", Level: 1},
		{Name: "growl", Method: "level-up", Level: 3},
	}, got.Moves, "non-level entries survive the replacement")

	recs := tracker.Changes("pikachu")
	require.Len(t, recs, 1)
	assert.Equal(t, "Level-up Moves", recs[0].Field)
	assert.Equal(t, "thunder-shock (1)", recs[0].OldValue)
	assert.Equal(t, "tackle (1) / growl (3)", recs[0].NewValue)
}

func TestUpdateLevelUpMovesRejectsLevelZero(t *testing.T) {
	db := testDB(t)
	seedPokemon(t, db, pikachu())
	svc := NewLearnset(db, changes.NewTracker("test"))

	var verr *ValidationError
	require.ErrorAs(t, svc.UpdateLevelUpMoves("pikachu", []model.LearnedMove{{Name: "Tackle"}}), &verr)

	got, err := db.Pokemon("pikachu")
	require.NoError(t, err)
	assert.Empty(t, got.Moves, "rejected update must not mutate the record")
}

func TestAddMethodMovesValidatesMethod(t *testing.T) {
	db := testDB(t)
	seedPokemon(t, db, pikachu())
	svc := NewLearnset(db, changes.NewTracker("test"))

	var verr *ValidationError
	require.ErrorAs(t, svc.AddMethodMoves("pikachu", "level-up", "tackle"), &verr)
	assert.Equal(t, "learn_method", verr.Field)
}

func TestAddMethodMovesSkipsKnownMoves(t *testing.T) {
	db := testDB(t)
	p := pikachu()
	p.Moves = []model.LearnedMove{{Name: "thunderbolt", Method: "machine"}}
	seedPokemon(t, db, p)
	seedMove(t, db)
	tracker := changes.NewTracker("test")
	svc := NewLearnset(db, tracker)

	require.NoError(t, svc.AddMethodMoves("pikachu", "machine", "Thunderbolt", "Tackle"))

	got, err := db.Pokemon("pikachu")
	require.NoError(t, err)
	require.Len(t, got.Moves, 2, "already-known moves are not duplicated")

	recs := tracker.Changes("pikachu")
	require.Len(t, recs, 1)
	assert.Equal(t, "Machine Moves", recs[0].Field)
	assert.Equal(t, "thunderbolt", recs[0].OldValue)
	assert.Equal(t, "thunderbolt / tackle", recs[0].NewValue)

	// Re-adding only known moves records nothing.
	require.NoError(t, svc.AddMethodMoves("pikachu", "machine", "Tackle"))
	assert.Len(t, tracker.Changes("pikachu"), 1)
}
