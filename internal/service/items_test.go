package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"romwiki/internal/changes"
	"romwiki/internal/model"
	"romwiki/internal/pokedb"
)

func seedItem(t *testing.T, db *pokedb.DB, item *model.Item) {
	t.Helper()
	require.NoError(t, db.SaveItem(item.ID, item))
}

func TestUpdateItemCost(t *testing.T) {
	db := testDB(t)
	seedItem(t, db, &model.Item{ID: "oran-berry", Name: "oran-berry", Category: "berries", Cost: 80})
	tracker := changes.NewTracker("test")
	svc := NewItems(db, tracker)

	require.NoError(t, svc.UpdateCost("oran-berry", 120))

	item, err := db.Item("oran-berry")
	require.NoError(t, err)
	assert.Equal(t, 120, item.Cost)

	recs := tracker.Changes("oran-berry")
	require.Len(t, recs, 1)
	assert.Equal(t, "Cost", recs[0].Field)
	assert.Equal(t, "80", recs[0].OldValue)
	assert.Equal(t, "120", recs[0].NewValue)
}

func TestUpdateItemCostRejectsNegative(t *testing.T) {
	db := testDB(t)
	seedItem(t, db, &model.Item{ID: "oran-berry", Name: "oran-berry", Cost: 80})
	svc := NewItems(db, changes.NewTracker("test"))

	var verr *ValidationError
	require.ErrorAs(t, svc.UpdateCost("oran-berry", -1), &verr)

	item, err := db.Item("oran-berry")
	require.NoError(t, err)
	assert.Equal(t, 80, item.Cost, "rejected update must not mutate the record")
	assert.Empty(t, item.Changes)
}

func TestUpdateItemCostSameValueIsNoOp(t *testing.T) {
	db := testDB(t)
	seedItem(t, db, &model.Item{ID: "oran-berry", Name: "oran-berry", Cost: 80})
	tracker := changes.NewTracker("test")
	svc := NewItems(db, tracker)

	require.NoError(t, svc.UpdateCost("oran-berry", 80))
	assert.Empty(t, tracker.Changes("oran-berry"))
}

func TestUpdateTMMove(t *testing.T) {
	db := testDB(t)
	seedItem(t, db, &model.Item{ID: "tm24", Name: "tm24", Category: "machines"})
	seedMove(t, db)
	require.NoError(t, db.SaveMove("thunderbolt", &model.Move{
		ID: "thunderbolt", Name: "thunderbolt", Type: "electric", Category: "special",
		Power: 90, Accuracy: 100, PP: 15,
	}))
	tracker := changes.NewTracker("test")
	svc := NewItems(db, tracker)

	require.NoError(t, svc.UpdateTMMove("tm24", "thunderbolt"))

	item, err := db.Item("tm24")
	require.NoError(t, err)
	assert.Equal(t, "Teaches Thunderbolt to a compatible Pokémon.", item.Effect)

	recs := tracker.Changes("tm24")
	require.Len(t, recs, 1)
	assert.Equal(t, "Teaches Move", recs[0].Field)
	assert.Equal(t, "(none)", recs[0].OldValue)
	assert.Equal(t, "Thunderbolt", recs[0].NewValue)

	// A second retarget must see the previous move as the old value.
	require.NoError(t, svc.UpdateTMMove("tm24", "tackle"))
	item, err = db.Item("tm24")
	require.NoError(t, err)
	assert.Equal(t, "Teaches Tackle to a compatible Pokémon.", item.Effect)
	recs = tracker.Changes("tm24")
	require.Len(t, recs, 2)
	assert.Equal(t, "Thunderbolt", recs[1].OldValue)
}

func TestUpdateTMMoveRequiresMoveRecord(t *testing.T) {
	db := testDB(t)
	seedItem(t, db, &model.Item{ID: "tm24", Name: "tm24", Category: "machines"})
	svc := NewItems(db, changes.NewTracker("test"))

	require.ErrorIs(t, svc.UpdateTMMove("tm24", "hyperbeam-x"), pokedb.ErrNotFound)

	item, err := db.Item("tm24")
	require.NoError(t, err)
	assert.Empty(t, item.Effect)
	assert.Empty(t, item.Changes)
}
