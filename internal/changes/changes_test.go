package changes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"romwiki/internal/model"
)

func testTracker() *Tracker {
	tr := NewTracker("test-hack")
	tr.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return tr
}

func TestRecordEqualValuesIsNoOp(t *testing.T) {
	tr := testTracker()
	assert.False(t, tr.Record("pikachu", "Type", "electric", "electric", ""))
	assert.Empty(t, tr.Changes("pikachu"))
}

func TestRecordKeepsBranchesWithDifferentOldValues(t *testing.T) {
	tr := testTracker()

	require.True(t, tr.Record("eevee", "Evolution Method", "use-item (water-stone)", "level-up (level 20)", ""))
	require.True(t, tr.Record("eevee", "Evolution Method", "use-item (thunder-stone)", "level-up (level 25)", ""))

	recs := tr.Changes("eevee")
	require.Len(t, recs, 2, "same field with different old values must coexist")
	assert.Equal(t, "use-item (water-stone)", recs[0].OldValue)
	assert.Equal(t, "use-item (thunder-stone)", recs[1].OldValue)
}

func TestRecordRefinesMatchingTransitionInPlace(t *testing.T) {
	tr := testTracker()

	require.True(t, tr.Record("eevee", "Evolution Method", "use-item (water-stone)", "level-up (level 20)", ""))
	require.True(t, tr.Record("eevee", "Evolution Method", "use-item (thunder-stone)", "level-up (level 25)", ""))
	require.True(t, tr.Record("eevee", "Evolution Method", "use-item (water-stone)", "level-up (level 30)", "refined"))

	recs := tr.Changes("eevee")
	require.Len(t, recs, 2, "matching (field, old value) replaces, not appends")
	assert.Equal(t, "level-up (level 30)", recs[0].NewValue)
	assert.Equal(t, "refined", recs[0].Description)
	assert.Equal(t, "level-up (level 25)", recs[1].NewValue)
}

func TestRecordSameTransitionTwiceIsNoOp(t *testing.T) {
	tr := testTracker()

	require.True(t, tr.Record("pikachu", "Stat: hp", "35", "50", ""))
	assert.False(t, tr.Record("pikachu", "Stat: hp", "35", "50", ""))
	require.Len(t, tr.Changes("pikachu"), 1)
}

func TestChangesReturnsCopyInInsertionOrder(t *testing.T) {
	tr := testTracker()
	tr.Record("pikachu", "Stat: hp", "35", "50", "")
	tr.Record("pikachu", "Type", "electric", "electric / steel", "")

	recs := tr.Changes("pikachu")
	require.Len(t, recs, 2)
	assert.Equal(t, "Stat: hp", recs[0].Field)
	assert.Equal(t, "Type", recs[1].Field)

	recs[0].Field = "mutated"
	assert.Equal(t, "Stat: hp", tr.Changes("pikachu")[0].Field, "callers must not alias internal state")
}

func TestFindLocatesTransition(t *testing.T) {
	tr := testTracker()
	tr.Record("pikachu", "Stat: hp", "35", "50", "")

	rec, ok := tr.Find("pikachu", "Stat: hp", "35")
	require.True(t, ok)
	assert.Equal(t, "50", rec.NewValue)
	assert.Equal(t, "test-hack", rec.Source)

	_, ok = tr.Find("pikachu", "Stat: hp", "40")
	assert.False(t, ok)
}

func TestToModelFormatsTimestamp(t *testing.T) {
	tr := testTracker()
	tr.Record("pikachu", "Stat: hp", "35", "50", "HP buffed")

	rec, ok := tr.Find("pikachu", "Stat: hp", "35")
	require.True(t, ok)
	m := rec.ToModel()
	assert.Equal(t, "2026-03-01T12:00:00Z", m.Timestamp)
	assert.Equal(t, "HP buffed", m.Description)
}

func TestApplyToReplacesMatchingTransition(t *testing.T) {
	tr := testTracker()
	tr.Record("pikachu", "Stat: hp", "35", "50", "")
	rec, _ := tr.Find("pikachu", "Stat: hp", "35")

	history := []model.Change{
		{Field: "Stat: hp", OldValue: "35", NewValue: "45"},
		{Field: "Type", OldValue: "electric", NewValue: "electric / steel"},
	}
	history = ApplyTo(history, rec)

	require.Len(t, history, 2)
	assert.Equal(t, "50", history[0].NewValue)

	other := Record{Field: "Stat: hp", OldValue: "40", NewValue: "60"}
	history = ApplyTo(history, other)
	assert.Len(t, history, 3, "different old value appends")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "100 HP / 80 Atk / 70 Def / 90 SAtk / 85 SDef / 60 Spd",
		FormatStats(100, 80, 70, 90, 85, 60))

	assert.Equal(t, "fire / flying", FormatList([]string{"fire", "flying"}))
	assert.Equal(t, "none", FormatList(nil))

	assert.Equal(t, "2 Atk, 1 Spd", FormatEVYield([]string{"2 Atk", "1 Spd"}))
	assert.Equal(t, "none", FormatEVYield(nil))
}

func TestFormatGenderRatio(t *testing.T) {
	assert.Equal(t, "Genderless", FormatGenderRatio(-1))
	assert.Equal(t, "100% Male", FormatGenderRatio(0))
	assert.Equal(t, "100% Female", FormatGenderRatio(8))
	assert.Equal(t, "50.0% Male / 50.0% Female", FormatGenderRatio(4))
	assert.Equal(t, "87.5% Male / 12.5% Female", FormatGenderRatio(1))
}

func TestEntitiesReturnsSortedIDs(t *testing.T) {
	tr := testTracker()
	require.True(t, tr.Record("raichu", "Type", "electric", "electric / psychic", ""))
	require.True(t, tr.Record("eevee", "Stat: hp", "55", "65", ""))
	require.True(t, tr.Record("pikachu", "Stat: hp", "35", "45", ""))

	assert.Equal(t, []string{"eevee", "pikachu", "raichu"}, tr.Entities())
	assert.Empty(t, testTracker().Entities())
}
