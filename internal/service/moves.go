package service

import (
	"fmt"

	"romwiki/internal/changes"
	"romwiki/internal/model"
	"romwiki/internal/pokedb"
)

// Moves updates move records.
type Moves struct {
	session
}

// NewMoves creates the move service for one run.
func NewMoves(db *pokedb.DB, tracker *changes.Tracker) *Moves {
	return &Moves{session{db: db, tracker: tracker}}
}

// UpdatePower sets base power. Zero means the move deals fixed or no damage.
func (s *Moves) UpdatePower(moveID string, power int) error {
	if power < 0 {
		return &ValidationError{Entity: moveID, Field: "power", Value: power, Reason: "must be non-negative"}
	}
	return s.updateIntField(moveID, "Power", power, func(m *model.Move) *int { return &m.Power })
}

// UpdateAccuracy sets accuracy as a percentage. Zero means the move never
// misses (no accuracy check).
func (s *Moves) UpdateAccuracy(moveID string, accuracy int) error {
	if accuracy < model.MinPercentage || accuracy > model.MaxPercentage {
		return &ValidationError{Entity: moveID, Field: "accuracy", Value: accuracy,
			Reason: fmt.Sprintf("must be between %d and %d", model.MinPercentage, model.MaxPercentage)}
	}
	return s.updateIntField(moveID, "Accuracy", accuracy, func(m *model.Move) *int { return &m.Accuracy })
}

// UpdatePP sets the move's power points.
func (s *Moves) UpdatePP(moveID string, pp int) error {
	if pp < 1 {
		return &ValidationError{Entity: moveID, Field: "pp", Value: pp, Reason: "must be positive"}
	}
	return s.updateIntField(moveID, "PP", pp, func(m *model.Move) *int { return &m.PP })
}

// UpdatePriority sets the move's priority bracket (-7..5).
func (s *Moves) UpdatePriority(moveID string, priority int) error {
	if priority < model.MinMovePriority || priority > model.MaxMovePriority {
		return &ValidationError{Entity: moveID, Field: "priority", Value: priority,
			Reason: fmt.Sprintf("must be between %d and %d", model.MinMovePriority, model.MaxMovePriority)}
	}
	return s.updateIntField(moveID, "Priority", priority, func(m *model.Move) *int { return &m.Priority })
}

// UpdateType sets the move's type.
func (s *Moves) UpdateType(moveID, typeSlug string) error {
	if !model.IsType(typeSlug) {
		return &ValidationError{Entity: moveID, Field: "type", Value: typeSlug, Reason: "unknown type"}
	}
	return s.updateStringField(moveID, "Type", typeSlug, func(m *model.Move) *string { return &m.Type })
}

// UpdateCategory sets the damage category (physical, special or status).
func (s *Moves) UpdateCategory(moveID, category string) error {
	if !model.IsMoveCategory(category) {
		return &ValidationError{Entity: moveID, Field: "category", Value: category, Reason: "unknown damage category"}
	}
	return s.updateStringField(moveID, "Category", category, func(m *model.Move) *string { return &m.Category })
}

// UpdateEffect replaces the effect text.
func (s *Moves) UpdateEffect(moveID, effect string) error {
	return s.updateStringField(moveID, "Effect", effect, func(m *model.Move) *string { return &m.Effect })
}

func (s *Moves) updateIntField(moveID, field string, value int, sel func(*model.Move) *int) error {
	m, err := s.db.Move(moveID)
	if err != nil {
		return err
	}
	target := sel(m)
	if *target == value {
		return nil
	}
	old := *target
	*target = value

	s.record(&m.Changes, moveID, field, fmt.Sprint(old), fmt.Sprint(value),
		fmt.Sprintf("%s changed from %d to %d", field, old, value))
	return s.db.SaveMove(moveID, m)
}

func (s *Moves) updateStringField(moveID, field, value string, sel func(*model.Move) *string) error {
	m, err := s.db.Move(moveID)
	if err != nil {
		return err
	}
	target := sel(m)
	if *target == value {
		return nil
	}
	old := *target
	*target = value

	s.record(&m.Changes, moveID, field, old, value,
		fmt.Sprintf("%s changed from %s to %s", field, old, value))
	return s.db.SaveMove(moveID, m)
}
