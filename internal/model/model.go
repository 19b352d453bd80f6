// Package model defines the record types stored in the PokeDB data
// directory. Field names and JSON tags follow the PokeDB JSON layout.
package model

// Domain ranges for record validation.
const (
	MinAbilitySlot = 1
	MaxAbilitySlot = 3
	HiddenSlot     = 3

	MinEVYield = 0
	MaxEVYield = 3

	MinStatValue = 0

	MinHappiness = 0
	MaxHappiness = 255

	MinCaptureRate = 0
	MaxCaptureRate = 255

	MinGenderRate = -1
	MaxGenderRate = 8

	MinMovePriority = -7
	MaxMovePriority = 5

	MinPercentage = 0
	MaxPercentage = 100
)

// StatSlugs lists the valid stat identifiers in canonical order.
var StatSlugs = []string{"hp", "attack", "defense", "special_attack", "special_defense", "speed"}

// IsStatSlug reports whether slug names a known stat.
func IsStatSlug(slug string) bool {
	for _, s := range StatSlugs {
		if s == slug {
			return true
		}
	}
	return false
}

// GrowthRates lists the valid experience growth rate slugs.
var GrowthRates = []string{"slow", "medium", "fast", "medium-slow", "slow-then-very-fast", "fast-then-very-slow"}

// IsGrowthRate reports whether slug names a known growth rate.
func IsGrowthRate(slug string) bool {
	for _, g := range GrowthRates {
		if g == slug {
			return true
		}
	}
	return false
}

// MoveCategories lists the valid damage categories.
var MoveCategories = []string{"physical", "special", "status"}

// IsMoveCategory reports whether slug names a damage category.
func IsMoveCategory(slug string) bool {
	for _, c := range MoveCategories {
		if c == slug {
			return true
		}
	}
	return false
}

// Stats holds the six base stats of a species.
type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
}

// Get returns the value of the named stat.
func (s *Stats) Get(slug string) int {
	switch slug {
	case "hp":
		return s.HP
	case "attack":
		return s.Attack
	case "defense":
		return s.Defense
	case "special_attack":
		return s.SpecialAttack
	case "special_defense":
		return s.SpecialDefense
	case "speed":
		return s.Speed
	}
	return 0
}

// Set assigns the value of the named stat.
func (s *Stats) Set(slug string, v int) {
	switch slug {
	case "hp":
		s.HP = v
	case "attack":
		s.Attack = v
	case "defense":
		s.Defense = v
	case "special_attack":
		s.SpecialAttack = v
	case "special_defense":
		s.SpecialDefense = v
	case "speed":
		s.Speed = v
	}
}

// Total returns the base stat total.
func (s *Stats) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpecialAttack + s.SpecialDefense + s.Speed
}

// PokemonAbility binds an ability to one of the three ability slots.
// Slot 3 is the hidden ability.
type PokemonAbility struct {
	Name     string `json:"name"`
	Slot     int    `json:"slot"`
	IsHidden bool   `json:"is_hidden"`
}

// EVYield is the effort-value reward for defeating a species.
type EVYield struct {
	Stat   string `json:"stat"`
	Effort int    `json:"effort"`
}

// LearnedMove is one entry of a species' learnset.
type LearnedMove struct {
	Name    string `json:"name"`
	Method  string `json:"method"`
	Level   int    `json:"level,omitempty"`
	Machine string `json:"machine,omitempty"`
}

// HeldItem is an item a wild Pokémon may carry.
type HeldItem struct {
	Name   string `json:"name"`
	Rarity int    `json:"rarity"`
}

// Sprites holds sprite URLs for a species.
type Sprites struct {
	FrontDefault string            `json:"front_default"`
	FrontShiny   string            `json:"front_shiny,omitempty"`
	Versions     map[string]Sprite `json:"versions,omitempty"`
}

// Sprite is one version-specific sprite set.
type Sprite struct {
	FrontDefault string `json:"front_default"`
	Animated     string `json:"animated,omitempty"`
}

// Pokemon is one species record.
type Pokemon struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	DexNumber      int              `json:"dex_number"`
	Types          []string         `json:"types"`
	Stats          Stats            `json:"stats"`
	Abilities      []PokemonAbility `json:"abilities"`
	EVYield        []EVYield        `json:"ev_yield"`
	Moves          []LearnedMove    `json:"moves"`
	HeldItems      []HeldItem       `json:"held_items,omitempty"`
	BaseHappiness  int              `json:"base_happiness"`
	BaseExperience int              `json:"base_experience"`
	CaptureRate    int              `json:"capture_rate"`
	GenderRate     int              `json:"gender_rate"`
	GrowthRate     string           `json:"growth_rate"`
	FormCategory   string           `json:"form_category,omitempty"`
	Sprites        Sprites          `json:"sprites"`
	Changes        []Change         `json:"changes,omitempty"`
}

// HasHiddenAbility reports whether the species defines a hidden ability slot.
func (p *Pokemon) HasHiddenAbility() bool {
	for _, a := range p.Abilities {
		if a.Slot == HiddenSlot {
			return true
		}
	}
	return false
}

// Move is one move record.
type Move struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Category     string   `json:"category"`
	Power        int      `json:"power"`
	Accuracy     int      `json:"accuracy"`
	PP           int      `json:"pp"`
	Priority     int      `json:"priority"`
	Effect       string   `json:"effect,omitempty"`
	EffectChance int      `json:"effect_chance,omitempty"`
	Changes      []Change `json:"changes,omitempty"`
}

// Item is one item record.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Cost     int      `json:"cost"`
	Effect   string   `json:"effect,omitempty"`
	Sprite   string   `json:"sprite,omitempty"`
	Changes  []Change `json:"changes,omitempty"`
}

// Ability is one ability record.
type Ability struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Effect  string   `json:"effect,omitempty"`
	Changes []Change `json:"changes,omitempty"`
}

// Change is a persisted change record attached to an entity. The in-run
// bookkeeping lives in internal/changes; this is the serialized form.
type Change struct {
	Field       string `json:"field"`
	OldValue    string `json:"old_value"`
	NewValue    string `json:"new_value"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// EvolutionDetails describes the mechanism of one evolution step.
type EvolutionDetails struct {
	Trigger      string `json:"trigger"`
	MinLevel     int    `json:"min_level,omitempty"`
	Item         string `json:"item,omitempty"`
	HeldItem     string `json:"held_item,omitempty"`
	MinHappiness int    `json:"min_happiness,omitempty"`
	TimeOfDay    string `json:"time_of_day,omitempty"`
	KnownMove    string `json:"known_move,omitempty"`
	Location     string `json:"location,omitempty"`
}

// EvolutionNode is one species in an evolution chain.
type EvolutionNode struct {
	SpeciesName string            `json:"species_name"`
	Details     *EvolutionDetails `json:"evolution_details,omitempty"`
	EvolvesTo   []*EvolutionNode  `json:"evolves_to,omitempty"`
}

// EvolutionChain is the root of an evolution tree.
type EvolutionChain struct {
	ID   string         `json:"id"`
	Root *EvolutionNode `json:"chain"`
}
