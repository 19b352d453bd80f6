package service

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"romwiki/internal/changes"
	"romwiki/internal/model"
	"romwiki/internal/pokedb"
	"romwiki/internal/textutil"
)

// Attributes updates species records: stats, types, abilities, yields,
// held items and the scalar species fields.
type Attributes struct {
	session
}

// NewAttributes creates the attribute service for one run.
func NewAttributes(db *pokedb.DB, tracker *changes.Tracker) *Attributes {
	return &Attributes{session{db: db, tracker: tracker}}
}

// UpdateStat sets a single base stat. The slug must name a known stat and
// the value must be a non-negative integer.
func (s *Attributes) UpdateStat(pokemonID, stat string, value int) error {
	if !model.IsStatSlug(stat) {
		return &ValidationError{Entity: pokemonID, Field: "stat", Value: stat, Reason: "unknown stat slug"}
	}
	if value < model.MinStatValue {
		return &ValidationError{Entity: pokemonID, Field: stat, Value: value, Reason: "stat value must be non-negative"}
	}

	p, err := s.db.Pokemon(pokemonID)
	if err != nil {
		return err
	}
	old := p.Stats.Get(stat)
	if old == value {
		return nil
	}
	p.Stats.Set(stat, value)

	field := "Stat: " + stat
	s.record(&p.Changes, pokemonID, field, fmt.Sprint(old), fmt.Sprint(value),
		fmt.Sprintf("%s changed from %d to %d", textutil.DisplayName(stat), old, value))
	if err := s.db.SavePokemon(pokemonID, p); err != nil {
		return err
	}
	log.Info().Str("pokemon", pokemonID).Str("stat", stat).Int("old", old).Int("new", value).Msg("Updated stat")
	return nil
}

// UpdateBaseStats replaces all six base stats at once.
func (s *Attributes) UpdateBaseStats(pokemonID string, stats model.Stats) error {
	for _, slug := range model.StatSlugs {
		if stats.Get(slug) < model.MinStatValue {
			return &ValidationError{Entity: pokemonID, Field: slug, Value: stats.Get(slug), Reason: "stat value must be non-negative"}
		}
	}

	p, err := s.db.Pokemon(pokemonID)
	if err != nil {
		return err
	}
	old := formatStats(p.Stats)
	p.Stats = stats
	newVal := formatStats(stats)

	s.record(&p.Changes, pokemonID, "Base Stats", old, newVal, "Base stats changed")
	return s.db.SavePokemon(pokemonID, p)
}

// UpdateTypes replaces the type combination (one or two known types).
func (s *Attributes) UpdateTypes(pokemonID string, types []string) error {
	if len(types) < 1 || len(types) > 2 {
		return &ValidationError{Entity: pokemonID, Field: "types", Value: types, Reason: "must have one or two types"}
	}
	for _, t := range types {
		if !model.IsType(t) {
			return &ValidationError{Entity: pokemonID, Field: "types", Value: t, Reason: "unknown type"}
		}
	}

	p, err := s.db.Pokemon(pokemonID)
	if err != nil {
		return err
	}
	old := changes.FormatList(p.Types)
	p.Types = types

	s.record(&p.Changes, pokemonID, "Type", old, changes.FormatList(types), "Type changed")
	return s.db.SavePokemon(pokemonID, p)
}

// UpdateAbilitySlot assigns an ability to one of the three defined slots.
// Slot 3 is the hidden ability and only valid when the species defines a
// hidden slot.
func (s *Attributes) UpdateAbilitySlot(pokemonID, abilityName string, slot int) error {
	if slot < model.MinAbilitySlot || slot > model.MaxAbilitySlot {
		return &ValidationError{Entity: pokemonID, Field: "ability_slot", Value: slot,
			Reason: fmt.Sprintf("slot must be between %d and %d", model.MinAbilitySlot, model.MaxAbilitySlot)}
	}

	p, err := s.db.Pokemon(pokemonID)
	if err != nil {
		return err
	}
	if slot == model.HiddenSlot && !p.HasHiddenAbility() {
		return &ValidationError{Entity: pokemonID, Field: "ability_slot", Value: slot, Reason: "species defines no hidden ability slot"}
	}

	abilityID := textutil.NameToID(abilityName)
	if _, err := s.db.Ability(abilityID); err != nil {
		// Custom abilities introduced by the hack may not exist as records.
		log.Warn().Str("ability", abilityID).Msg("Ability not found in store, saving anyway")
	}

	old := "(none)"
	replaced := false
	for i := range p.Abilities {
		if p.Abilities[i].Slot == slot {
			if p.Abilities[i].Name == abilityID {
				return nil
			}
			old = p.Abilities[i].Name
			p.Abilities[i] = model.PokemonAbility{Name: abilityID, Slot: slot, IsHidden: slot == model.HiddenSlot}
			replaced = true
			break
		}
	}
	if !replaced {
		p.Abilities = append(p.Abilities, model.PokemonAbility{Name: abilityID, Slot: slot, IsHidden: slot == model.HiddenSlot})
	}

	field := fmt.Sprintf("Ability (slot %d)", slot)
	s.record(&p.Changes, pokemonID, field, old, abilityID,
		fmt.Sprintf("Slot %d ability changed from %s to %s", slot, textutil.DisplayName(old), textutil.DisplayName(abilityID)))
	return s.db.SavePokemon(pokemonID, p)
}

// UpdateEVYield replaces the effort value reward.
func (s *Attributes) UpdateEVYield(pokemonID string, yield []model.EVYield) error {
	for _, ev := range yield {
		if !model.IsStatSlug(ev.Stat) {
			return &ValidationError{Entity: pokemonID, Field: "ev_yield", Value: ev.Stat, Reason: "unknown stat slug"}
		}
		if ev.Effort < model.MinEVYield || ev.Effort > model.MaxEVYield {
			return &ValidationError{Entity: pokemonID, Field: "ev_yield", Value: ev.Effort,
				Reason: fmt.Sprintf("effort must be between %d and %d", model.MinEVYield, model.MaxEVYield)}
		}
	}

	p, err := s.db.Pokemon(pokemonID)
	if err != nil {
		return err
	}
	old := formatEVYield(p.EVYield)
	p.EVYield = yield

	s.record(&p.Changes, pokemonID, "EV Yield", old, formatEVYield(yield), "EV yield changed")
	return s.db.SavePokemon(pokemonID, p)
}

// UpdateCatchRate sets the capture rate (0..255).
func (s *Attributes) UpdateCatchRate(pokemonID string, rate int) error {
	if rate < model.MinCaptureRate || rate > model.MaxCaptureRate {
		return &ValidationError{Entity: pokemonID, Field: "capture_rate", Value: rate,
			Reason: fmt.Sprintf("must be between %d and %d", model.MinCaptureRate, model.MaxCaptureRate)}
	}
	return s.updateIntField(pokemonID, "Catch Rate", rate,
		func(p *model.Pokemon) *int { return &p.CaptureRate })
}

// UpdateBaseHappiness sets base happiness (0..255).
func (s *Attributes) UpdateBaseHappiness(pokemonID string, value int) error {
	if value < model.MinHappiness || value > model.MaxHappiness {
		return &ValidationError{Entity: pokemonID, Field: "base_happiness", Value: value,
			Reason: fmt.Sprintf("must be between %d and %d", model.MinHappiness, model.MaxHappiness)}
	}
	return s.updateIntField(pokemonID, "Base Happiness", value,
		func(p *model.Pokemon) *int { return &p.BaseHappiness })
}

// UpdateBaseExperience sets the base experience reward.
func (s *Attributes) UpdateBaseExperience(pokemonID string, value int) error {
	if value < 0 {
		return &ValidationError{Entity: pokemonID, Field: "base_experience", Value: value, Reason: "must be non-negative"}
	}
	return s.updateIntField(pokemonID, "Base Experience", value,
		func(p *model.Pokemon) *int { return &p.BaseExperience })
}

// UpdateGenderRatio sets the gender rate (-1 genderless, 0..8 female eighths).
func (s *Attributes) UpdateGenderRatio(pokemonID string, rate int) error {
	if rate < model.MinGenderRate || rate > model.MaxGenderRate {
		return &ValidationError{Entity: pokemonID, Field: "gender_rate", Value: rate,
			Reason: fmt.Sprintf("must be between %d and %d", model.MinGenderRate, model.MaxGenderRate)}
	}

	p, err := s.db.Pokemon(pokemonID)
	if err != nil {
		return err
	}
	if p.GenderRate == rate {
		return nil
	}
	old := changes.FormatGenderRatio(p.GenderRate)
	p.GenderRate = rate

	s.record(&p.Changes, pokemonID, "Gender Ratio", old, changes.FormatGenderRatio(rate), "Gender ratio changed")
	return s.db.SavePokemon(pokemonID, p)
}

// UpdateGrowthRate sets the experience growth rate.
func (s *Attributes) UpdateGrowthRate(pokemonID, rate string) error {
	if !model.IsGrowthRate(rate) {
		return &ValidationError{Entity: pokemonID, Field: "growth_rate", Value: rate, Reason: "unknown growth rate"}
	}

	p, err := s.db.Pokemon(pokemonID)
	if err != nil {
		return err
	}
	if p.GrowthRate == rate {
		return nil
	}
	old := p.GrowthRate
	p.GrowthRate = rate

	s.record(&p.Changes, pokemonID, "Growth Rate", old, rate, "Growth rate changed")
	return s.db.SavePokemon(pokemonID, p)
}

// UpdateHeldItem sets the wild-held rarity for an item, adding it to the
// species' held list when absent. A change is recorded only when the
// list itself grows; rarity tweaks save silently.
func (s *Attributes) UpdateHeldItem(pokemonID, itemName string, rarity int) error {
	if rarity < model.MinPercentage || rarity > model.MaxPercentage {
		return &ValidationError{Entity: pokemonID, Field: "held_item", Value: rarity,
			Reason: fmt.Sprintf("rarity must be between %d and %d", model.MinPercentage, model.MaxPercentage)}
	}

	p, err := s.db.Pokemon(pokemonID)
	if err != nil {
		return err
	}

	itemID := textutil.NameToID(itemName)
	if _, err := s.db.Item(itemID); err != nil {
		// Custom items introduced by the hack may not exist as records.
		log.Warn().Str("item", itemID).Msg("Item not found in store, saving anyway")
	}

	old := formatHeldItems(p.HeldItems)
	found := false
	for i := range p.HeldItems {
		if p.HeldItems[i].Name == itemID {
			p.HeldItems[i].Rarity = rarity
			found = true
			break
		}
	}
	if !found {
		p.HeldItems = append(p.HeldItems, model.HeldItem{Name: itemID, Rarity: rarity})
		s.record(&p.Changes, pokemonID, "Held Items", old, formatHeldItems(p.HeldItems),
			fmt.Sprintf("Now holds %s", textutil.DisplayName(itemID)))
	}
	return s.db.SavePokemon(pokemonID, p)
}

func (s *Attributes) updateIntField(pokemonID, field string, value int, sel func(*model.Pokemon) *int) error {
	p, err := s.db.Pokemon(pokemonID)
	if err != nil {
		return err
	}
	target := sel(p)
	if *target == value {
		return nil
	}
	old := *target
	*target = value

	s.record(&p.Changes, pokemonID, field, fmt.Sprint(old), fmt.Sprint(value),
		fmt.Sprintf("%s changed from %d to %d", field, old, value))
	return s.db.SavePokemon(pokemonID, p)
}

func formatHeldItems(items []model.HeldItem) string {
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	return changes.FormatList(names)
}

func formatStats(st model.Stats) string {
	return changes.FormatStats(st.HP, st.Attack, st.Defense, st.SpecialAttack, st.SpecialDefense, st.Speed)
}

func formatEVYield(yield []model.EVYield) string {
	short := map[string]string{
		"hp": "HP", "attack": "Atk", "defense": "Def",
		"special_attack": "SAtk", "special_defense": "SDef", "speed": "Spd",
	}
	var parts []string
	for _, ev := range yield {
		name, ok := short[ev.Stat]
		if !ok {
			name = ev.Stat
		}
		parts = append(parts, fmt.Sprintf("%d %s", ev.Effort, name))
	}
	return changes.FormatEVYield(parts)
}
