// Package changes records field-level modifications made to records during
// one run, so generated pages can show readers what the hack changed.
package changes

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"romwiki/internal/model"
)

// Record is one observed transition of a field.
type Record struct {
	EntityID    string
	Field       string
	OldValue    string
	NewValue    string
	Description string
	Source      string
	Timestamp   time.Time
}

// Tracker accumulates change records for one run. Two records for the same
// entity may share a field as long as their old values differ; this keeps
// both branches when, say, two evolution paths rewrite the same field from
// different starting states. A record matching an existing (field, old
// value) pair refines that record in place instead of appending.
//
// A Tracker is owned by a single run and is not safe for concurrent use.
type Tracker struct {
	records map[string][]Record
	source  string
	now     func() time.Time
}

// NewTracker creates a tracker attributing records to source.
func NewTracker(source string) *Tracker {
	return &Tracker{
		records: make(map[string][]Record),
		source:  source,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Record stores one transition. Returns false when nothing was recorded:
// the values are equal, or an existing record for the same (field, old
// value) already carries the new value.
func (t *Tracker) Record(entityID, field, oldValue, newValue, description string) bool {
	if oldValue == newValue {
		return false
	}

	recs := t.records[entityID]
	for i := range recs {
		if recs[i].Field == field && recs[i].OldValue == oldValue {
			if recs[i].NewValue == newValue {
				return false
			}
			recs[i].NewValue = newValue
			recs[i].Description = description
			recs[i].Source = t.source
			recs[i].Timestamp = t.now()
			log.Debug().Str("entity", entityID).Str("field", field).
				Str("old", oldValue).Str("new", newValue).Msg("Refined change record")
			return true
		}
	}

	t.records[entityID] = append(recs, Record{
		EntityID:    entityID,
		Field:       field,
		OldValue:    oldValue,
		NewValue:    newValue,
		Description: description,
		Source:      t.source,
		Timestamp:   t.now(),
	})
	log.Debug().Str("entity", entityID).Str("field", field).
		Str("old", oldValue).Str("new", newValue).Msg("Recorded change")
	return true
}

// Find returns the record for an exact (field, old value) transition.
func (t *Tracker) Find(entityID, field, oldValue string) (Record, bool) {
	for _, r := range t.records[entityID] {
		if r.Field == field && r.OldValue == oldValue {
			return r, true
		}
	}
	return Record{}, false
}

// Changes returns the records for an entity in insertion order.
func (t *Tracker) Changes(entityID string) []Record {
	recs := t.records[entityID]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}

// Entities returns the IDs that have at least one record, sorted so run
// summaries come out stable.
func (t *Tracker) Entities() []string {
	ids := make([]string, 0, len(t.records))
	for id := range t.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ToModel converts a record to its persisted form.
func (r Record) ToModel() model.Change {
	return model.Change{
		Field:       r.Field,
		OldValue:    r.OldValue,
		NewValue:    r.NewValue,
		Description: r.Description,
		Source:      r.Source,
		Timestamp:   r.Timestamp.Format(time.RFC3339),
	}
}

// ApplyTo merges a record into a persisted change list with the same
// (field, old value) replacement rule the tracker uses, so change history
// stored on records stays consistent with the in-run session.
func ApplyTo(list []model.Change, r Record) []model.Change {
	for i := range list {
		if list[i].Field == r.Field && list[i].OldValue == r.OldValue {
			list[i] = r.ToModel()
			return list
		}
	}
	return append(list, r.ToModel())
}

// FormatStats renders a stats block for change descriptions
// ("100 HP / 80 Atk / 70 Def / 90 SAtk / 85 SDef / 60 Spd").
func FormatStats(hp, atk, def, satk, sdef, spd int) string {
	return fmt.Sprintf("%d HP / %d Atk / %d Def / %d SAtk / %d SDef / %d Spd",
		hp, atk, def, satk, sdef, spd)
}

// FormatList joins values for change descriptions ("fire / flying").
// An empty list renders as "none".
func FormatList(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, " / ")
}

// FormatGenderRatio renders a gender rate (-1..8, female eighths).
func FormatGenderRatio(rate int) string {
	switch {
	case rate < 0:
		return "Genderless"
	case rate == 0:
		return "100% Male"
	case rate >= 8:
		return "100% Female"
	default:
		female := float64(rate) / 8 * 100
		return fmt.Sprintf("%.1f%% Male / %.1f%% Female", 100-female, female)
	}
}

// FormatEVYield renders effort values ("2 Atk, 1 Spd").
func FormatEVYield(pairs []string) string {
	if len(pairs) == 0 {
		return "none"
	}
	return strings.Join(pairs, ", ")
}
