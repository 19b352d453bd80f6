package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"romwiki/internal/changes"
	"romwiki/internal/model"
	"romwiki/internal/pokedb"
)

func seedMove(t *testing.T, db *pokedb.DB) {
	t.Helper()
	require.NoError(t, db.SaveMove("tackle", &model.Move{
		ID: "tackle", Name: "tackle", Type: "normal", Category: "physical",
		Power: 40, Accuracy: 100, PP: 35,
	}))
}

func TestMoveUpdates(t *testing.T) {
	db := testDB(t)
	seedMove(t, db)
	tracker := changes.NewTracker("test")
	svc := NewMoves(db, tracker)

	require.NoError(t, svc.UpdatePower("tackle", 50))
	require.NoError(t, svc.UpdateAccuracy("tackle", 95))
	require.NoError(t, svc.UpdatePP("tackle", 30))
	require.NoError(t, svc.UpdatePriority("tackle", 1))
	require.NoError(t, svc.UpdateType("tackle", "fighting"))
	require.NoError(t, svc.UpdateCategory("tackle", "special"))
	require.NoError(t, svc.UpdateEffect("tackle", "Now has recoil."))

	m, err := db.Move("tackle")
	require.NoError(t, err)
	assert.Equal(t, 50, m.Power)
	assert.Equal(t, 95, m.Accuracy)
	assert.Equal(t, "fighting", m.Type)
	assert.Len(t, tracker.Changes("tackle"), 7)
	assert.Len(t, m.Changes, 7)
}

func TestMoveValidation(t *testing.T) {
	db := testDB(t)
	seedMove(t, db)
	svc := NewMoves(db, changes.NewTracker("test"))

	var verr *ValidationError
	require.ErrorAs(t, svc.UpdatePower("tackle", -1), &verr)
	require.ErrorAs(t, svc.UpdateAccuracy("tackle", 101), &verr)
	require.ErrorAs(t, svc.UpdatePP("tackle", 0), &verr)
	require.ErrorAs(t, svc.UpdatePriority("tackle", 6), &verr)
	require.ErrorAs(t, svc.UpdatePriority("tackle", -8), &verr)
	require.ErrorAs(t, svc.UpdateType("tackle", "shadow"), &verr)
	require.ErrorAs(t, svc.UpdateCategory("tackle", "magical"), &verr)

	m, err := db.Move("tackle")
	require.NoError(t, err)
	assert.Equal(t, 40, m.Power, "failed validations leave the record untouched")
	assert.Empty(t, m.Changes)
}

func TestMoveUpdateSameValueIsNoOp(t *testing.T) {
	db := testDB(t)
	seedMove(t, db)
	tracker := changes.NewTracker("test")
	svc := NewMoves(db, tracker)

	require.NoError(t, svc.UpdatePower("tackle", 40))
	assert.Empty(t, tracker.Changes("tackle"))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Entity: "tackle", Field: "pp", Value: 0, Reason: "must be positive"}
	assert.Equal(t, `validate pp of "tackle": 0: must be positive`, err.Error())
}
