package service

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"romwiki/internal/changes"
	"romwiki/internal/model"
	"romwiki/internal/pokedb"
)

// Evolutions updates evolution chains. Change descriptions carry the full
// mechanism (trigger plus its parameters) because they are rendered
// directly on generated pages; a bare "Updated" would be useless to
// readers comparing branching paths.
type Evolutions struct {
	session
}

// NewEvolutions creates the evolution service for one run.
func NewEvolutions(db *pokedb.DB, tracker *changes.Tracker) *Evolutions {
	return &Evolutions{session{db: db, tracker: tracker}}
}

// FormatDetails renders an evolution mechanism ("use-item (thunder-stone)",
// "level-up (level 36)").
func FormatDetails(d *model.EvolutionDetails) string {
	if d == nil || d.Trigger == "" {
		return "unknown"
	}
	parts := []string{d.Trigger}
	switch {
	case d.Item != "":
		parts = append(parts, fmt.Sprintf("(%s)", d.Item))
	case d.HeldItem != "":
		parts = append(parts, fmt.Sprintf("(held: %s)", d.HeldItem))
	case d.MinLevel > 0:
		parts = append(parts, fmt.Sprintf("(level %d)", d.MinLevel))
	case d.MinHappiness > 0:
		if d.TimeOfDay != "" {
			parts = append(parts, fmt.Sprintf("(happiness, %s)", d.TimeOfDay))
		} else {
			parts = append(parts, "(happiness)")
		}
	case d.KnownMove != "":
		parts = append(parts, fmt.Sprintf("(knows %s)", d.KnownMove))
	case d.Location != "":
		parts = append(parts, fmt.Sprintf("(at %s)", d.Location))
	}
	return strings.Join(parts, " ")
}

// UpdateMethod sets the evolution mechanism for the pokemonID -> targetID
// step of a chain. The branch is created when the chain does not have it
// yet. Both records of the transition survive when two branches rewrite
// the same step from different prior mechanisms.
func (s *Evolutions) UpdateMethod(chainID, pokemonID, targetID string, details model.EvolutionDetails) error {
	if details.Trigger == "" {
		return &ValidationError{Entity: pokemonID, Field: "evolution_trigger", Value: details.Trigger, Reason: "cannot be empty"}
	}
	if details.MinLevel < 0 || details.MinLevel > 100 {
		return &ValidationError{Entity: pokemonID, Field: "min_level", Value: details.MinLevel, Reason: "must be between 0 and 100"}
	}

	chain, err := s.db.EvolutionChain(chainID)
	if err != nil {
		return err
	}

	parent := findNode(chain.Root, pokemonID)
	if parent == nil {
		return fmt.Errorf("species %q not in evolution chain %q", pokemonID, chainID)
	}

	var target *model.EvolutionNode
	for _, evo := range parent.EvolvesTo {
		if evo.SpeciesName == targetID {
			target = evo
			break
		}
	}

	oldValue := fmt.Sprintf("%s > %s: %s", pokemonID, targetID, FormatDetails(detailsOf(target)))
	if target == nil {
		target = &model.EvolutionNode{SpeciesName: targetID}
		parent.EvolvesTo = append(parent.EvolvesTo, target)
		log.Debug().Str("pokemon", pokemonID).Str("target", targetID).Msg("Added evolution branch")
	}
	target.Details = &details
	newValue := fmt.Sprintf("%s > %s: %s", pokemonID, targetID, FormatDetails(&details))

	description := fmt.Sprintf("Evolution into %s now happens via %s", targetID, FormatDetails(&details))
	// Record the change on every species of the chain so each generated
	// page shows the new path.
	for _, species := range collectSpecies(chain.Root, nil) {
		p, err := s.db.Pokemon(species)
		if err != nil {
			log.Warn().Str("pokemon", species).Err(err).Msg("Chain member has no record, skipping change entry")
			continue
		}
		s.record(&p.Changes, species, "Evolution Method", oldValue, newValue, description)
		if err := s.db.SavePokemon(species, p); err != nil {
			return err
		}
	}

	return s.db.SaveEvolutionChain(chainID, chain)
}

func detailsOf(n *model.EvolutionNode) *model.EvolutionDetails {
	if n == nil {
		return nil
	}
	return n.Details
}

func findNode(n *model.EvolutionNode, speciesID string) *model.EvolutionNode {
	if n == nil {
		return nil
	}
	if n.SpeciesName == speciesID {
		return n
	}
	for _, evo := range n.EvolvesTo {
		if found := findNode(evo, speciesID); found != nil {
			return found
		}
	}
	return nil
}

func collectSpecies(n *model.EvolutionNode, acc []string) []string {
	if n == nil {
		return acc
	}
	acc = append(acc, n.SpeciesName)
	for _, evo := range n.EvolvesTo {
		acc = collectSpecies(evo, acc)
	}
	return acc
}
