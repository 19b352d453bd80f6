package service

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"romwiki/internal/changes"
	"romwiki/internal/pokedb"
	"romwiki/internal/textutil"
)

// tmEffectFormat is the effect text written for TM and HM items. The
// previously taught move is read back out of it, so writes and reads
// must agree on the shape.
const tmEffectFormat = "Teaches %s to a compatible Pokémon."

// Items updates item records.
type Items struct {
	session
}

// NewItems creates the item service for one run.
func NewItems(db *pokedb.DB, tracker *changes.Tracker) *Items {
	return &Items{session{db: db, tracker: tracker}}
}

// UpdateCost sets the shop price. Zero marks the item as not for sale.
func (s *Items) UpdateCost(itemID string, cost int) error {
	if cost < 0 {
		return &ValidationError{Entity: itemID, Field: "cost", Value: cost, Reason: "must be non-negative"}
	}

	item, err := s.db.Item(itemID)
	if err != nil {
		return err
	}
	if item.Cost == cost {
		return nil
	}
	old := item.Cost
	item.Cost = cost

	s.record(&item.Changes, itemID, "Cost", fmt.Sprint(old), fmt.Sprint(cost),
		fmt.Sprintf("Cost changed from %d to %d", old, cost))
	return s.db.SaveItem(itemID, item)
}

// UpdateTMMove points a TM or HM item at a different move. The move must
// exist as a record; the item's effect text is rewritten to name it.
func (s *Items) UpdateTMMove(itemID, moveID string) error {
	item, err := s.db.Item(itemID)
	if err != nil {
		return err
	}
	m, err := s.db.Move(moveID)
	if err != nil {
		return fmt.Errorf("load move %q: %w", moveID, err)
	}

	old := taughtMove(item.Effect)
	taught := textutil.DisplayName(m.Name)
	if old == taught {
		return nil
	}
	item.Effect = fmt.Sprintf(tmEffectFormat, taught)

	s.record(&item.Changes, itemID, "Teaches Move", old, taught,
		fmt.Sprintf("%s now teaches %s", textutil.DisplayName(item.Name), taught))
	if err := s.db.SaveItem(itemID, item); err != nil {
		return err
	}
	log.Info().Str("item", itemID).Str("move", moveID).Msg("Updated TM move")
	return nil
}

// taughtMove extracts the move name from a TM effect text, or "(none)"
// when the item never taught one.
func taughtMove(effect string) string {
	name := strings.TrimSuffix(strings.TrimPrefix(effect, "Teaches "), " to a compatible Pokémon.")
	if name == "" || name == effect {
		return "(none)"
	}
	return name
}
