// Package service exposes the per-field update operations generated
// documentation is built from. Every operation takes the target record ID
// explicitly (display names are ambiguous across generations), validates
// the value against its domain, records the change, then persists.
package service

import (
	"fmt"

	"romwiki/internal/changes"
	"romwiki/internal/model"
	"romwiki/internal/pokedb"
)

// ValidationError rejects an update whose value is outside the field's
// domain. The targeted record is left untouched; callers may retry with a
// corrected value.
type ValidationError struct {
	Entity string
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s of %q: %v: %s", e.Field, e.Entity, e.Value, e.Reason)
}

// session bundles the store handle and change-tracking session shared by
// the concrete services of one run.
type session struct {
	db      *pokedb.DB
	tracker *changes.Tracker
}

// record stores a transition in the tracker and mirrors it into the
// change history persisted on the record itself.
func (s *session) record(history *[]model.Change, entityID, field, oldValue, newValue, description string) {
	if !s.tracker.Record(entityID, field, oldValue, newValue, description) {
		return
	}
	if r, ok := s.tracker.Find(entityID, field, oldValue); ok {
		*history = changes.ApplyTo(*history, r)
	}
}
