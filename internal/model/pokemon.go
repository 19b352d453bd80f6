package model

import "sort"

// typeChart maps each type to the attacking types it is weak to, resists,
// or is immune to.
var typeChart = map[string]struct {
	weakTo   []string
	resists  []string
	immuneTo []string
}{
	"normal":   {weakTo: []string{"fighting"}, immuneTo: []string{"ghost"}},
	"fire":     {weakTo: []string{"water", "ground", "rock"}, resists: []string{"fire", "grass", "ice", "bug", "steel", "fairy"}},
	"water":    {weakTo: []string{"electric", "grass"}, resists: []string{"fire", "water", "ice", "steel"}},
	"electric": {weakTo: []string{"ground"}, resists: []string{"electric", "flying", "steel"}},
	"grass":    {weakTo: []string{"fire", "ice", "poison", "flying", "bug"}, resists: []string{"water", "grass", "electric", "ground"}},
	"ice":      {weakTo: []string{"fire", "fighting", "rock", "steel"}, resists: []string{"ice"}},
	"fighting": {weakTo: []string{"flying", "psychic", "fairy"}, resists: []string{"bug", "rock", "dark"}},
	"poison":   {weakTo: []string{"ground", "psychic"}, resists: []string{"grass", "fighting", "poison", "bug", "fairy"}},
	"ground":   {weakTo: []string{"water", "grass", "ice"}, resists: []string{"poison", "rock"}, immuneTo: []string{"electric"}},
	"flying":   {weakTo: []string{"electric", "ice", "rock"}, resists: []string{"grass", "fighting", "bug"}, immuneTo: []string{"ground"}},
	"psychic":  {weakTo: []string{"bug", "ghost", "dark"}, resists: []string{"fighting", "psychic"}},
	"bug":      {weakTo: []string{"fire", "flying", "rock"}, resists: []string{"grass", "fighting", "ground"}},
	"rock":     {weakTo: []string{"water", "grass", "fighting", "ground", "steel"}, resists: []string{"normal", "fire", "poison", "flying"}},
	"ghost":    {weakTo: []string{"ghost", "dark"}, resists: []string{"poison", "bug"}, immuneTo: []string{"normal", "fighting"}},
	"dragon":   {weakTo: []string{"ice", "dragon", "fairy"}, resists: []string{"fire", "water", "grass", "electric"}},
	"dark":     {weakTo: []string{"fighting", "bug", "fairy"}, resists: []string{"ghost", "dark"}, immuneTo: []string{"psychic"}},
	"steel":    {weakTo: []string{"fire", "fighting", "ground"}, resists: []string{"normal", "grass", "ice", "flying", "psychic", "bug", "rock", "dragon", "steel", "fairy"}, immuneTo: []string{"poison"}},
	"fairy":    {weakTo: []string{"poison", "steel"}, resists: []string{"fighting", "bug", "dark"}, immuneTo: []string{"dragon"}},
}

// TypeEffectiveness buckets attacking types by the damage multiplier they
// deal to a Pokémon with the given type combination.
type TypeEffectiveness struct {
	QuadWeak   []string // 4x
	Weak       []string // 2x
	Resist     []string // 0.5x
	QuadResist []string // 0.25x
	Immune     []string // 0x
}

// CalculateTypeEffectiveness folds the type chart over one or two types.
func CalculateTypeEffectiveness(types []string) TypeEffectiveness {
	mult := make(map[string]float64)
	immune := make(map[string]bool)

	for _, t := range types {
		entry, ok := typeChart[t]
		if !ok {
			continue
		}
		for _, w := range entry.weakTo {
			if _, seen := mult[w]; !seen {
				mult[w] = 1
			}
			mult[w] *= 2
		}
		for _, r := range entry.resists {
			if _, seen := mult[r]; !seen {
				mult[r] = 1
			}
			mult[r] *= 0.5
		}
		for _, i := range entry.immuneTo {
			immune[i] = true
		}
	}

	var eff TypeEffectiveness
	for atk := range immune {
		eff.Immune = append(eff.Immune, atk)
		delete(mult, atk)
	}
	for atk, m := range mult {
		switch {
		case m >= 4:
			eff.QuadWeak = append(eff.QuadWeak, atk)
		case m == 2:
			eff.Weak = append(eff.Weak, atk)
		case m == 0.5:
			eff.Resist = append(eff.Resist, atk)
		case m <= 0.25:
			eff.QuadResist = append(eff.QuadResist, atk)
		}
	}
	// Deterministic output for page rendering.
	sort.Strings(eff.QuadWeak)
	sort.Strings(eff.Weak)
	sort.Strings(eff.Resist)
	sort.Strings(eff.QuadResist)
	sort.Strings(eff.Immune)
	return eff
}

// IsType reports whether slug is a known type.
func IsType(slug string) bool {
	_, ok := typeChart[slug]
	return ok
}

// StatRange returns the minimum and maximum possible value of a stat at
// level 100 using the Generation III+ formulas. HP uses its own formula.
func StatRange(base int, isHP bool) (int, int) {
	if isHP {
		// 0 IV / 0 EV vs 31 IV / 252 EV.
		return 2*base + 110, 2*base + 204
	}
	// Hindering (0.9) vs beneficial (1.1) nature.
	return int(float64(2*base+5) * 0.9), int(float64(2*base+99) * 1.1)
}
