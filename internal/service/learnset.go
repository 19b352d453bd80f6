package service

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"romwiki/internal/changes"
	"romwiki/internal/model"
	"romwiki/internal/pokedb"
	"romwiki/internal/textutil"
)

// methodFields maps a non-level learn method to the change-record field
// it writes under.
var methodFields = map[string]string{
	"egg":     "Egg Moves",
	"tutor":   "Tutor Moves",
	"machine": "Machine Moves",
}

// Learnset updates the moves a species learns.
type Learnset struct {
	session
}

// NewLearnset creates the learnset service for one run.
func NewLearnset(db *pokedb.DB, tracker *changes.Tracker) *Learnset {
	return &Learnset{session{db: db, tracker: tracker}}
}

// UpdateLevelUpMoves replaces the level-up learnset, keeping entries for
// other methods. Moves without records are kept with a warning, since
// hacks add moves the dump does not know about.
func (s *Learnset) UpdateLevelUpMoves(pokemonID string, moves []model.LearnedMove) error {
	for _, m := range moves {
		if m.Level < 1 {
			return &ValidationError{Entity: pokemonID, Field: "level_up_moves", Value: m.Level,
				Reason: fmt.Sprintf("%s must be learned at level 1 or above", m.Name)}
		}
	}

	p, err := s.db.Pokemon(pokemonID)
	if err != nil {
		return err
	}
	old := formatLevelUpMoves(p.Moves)

	var kept []model.LearnedMove
	for _, m := range p.Moves {
		if m.Method != "level-up" {
			kept = append(kept, m)
		}
	}
	for _, m := range moves {
		id := textutil.NameToID(m.Name)
		if _, err := s.db.Move(id); err != nil {
			log.Warn().Str("pokemon", pokemonID).Str("move", id).Msg("Move not found in store, keeping anyway")
		}
		kept = append(kept, model.LearnedMove{Name: id, Method: "level-up", Level: m.Level})
	}
	p.Moves = kept

	s.record(&p.Changes, pokemonID, "Level-up Moves", old, formatLevelUpMoves(p.Moves), "Level-up learnset changed")
	return s.db.SavePokemon(pokemonID, p)
}

// AddMethodMoves adds moves learned by egg, tutor or machine, skipping
// ones the species already learns that way. A change is recorded only
// when the set grows.
func (s *Learnset) AddMethodMoves(pokemonID, method string, moveNames ...string) error {
	field, ok := methodFields[method]
	if !ok {
		return &ValidationError{Entity: pokemonID, Field: "learn_method", Value: method,
			Reason: "must be egg, tutor or machine"}
	}

	p, err := s.db.Pokemon(pokemonID)
	if err != nil {
		return err
	}
	old := formatMethodMoves(p.Moves, method)

	added := false
	for _, name := range moveNames {
		id := textutil.NameToID(name)
		if learnsMove(p.Moves, id, method) {
			continue
		}
		if _, err := s.db.Move(id); err != nil {
			log.Warn().Str("pokemon", pokemonID).Str("move", id).Msg("Move not found in store, adding anyway")
		}
		p.Moves = append(p.Moves, model.LearnedMove{Name: id, Method: method})
		added = true
	}
	if !added {
		return nil
	}

	s.record(&p.Changes, pokemonID, field, old, formatMethodMoves(p.Moves, method),
		fmt.Sprintf("%s changed", field))
	return s.db.SavePokemon(pokemonID, p)
}

func learnsMove(moves []model.LearnedMove, id, method string) bool {
	for _, m := range moves {
		if m.Name == id && m.Method == method {
			return true
		}
	}
	return false
}

func formatLevelUpMoves(moves []model.LearnedMove) string {
	var parts []string
	for _, m := range moves {
		if m.Method == "level-up" {
			parts = append(parts, fmt.Sprintf("%s (%d)", m.Name, m.Level))
		}
	}
	return changes.FormatList(parts)
}

func formatMethodMoves(moves []model.LearnedMove, method string) string {
	var names []string
	for _, m := range moves {
		if m.Method == method {
			names = append(names, m.Name)
		}
	}
	return changes.FormatList(names)
}
