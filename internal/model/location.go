package model

// Encounter is one wild encounter slot at a location.
type Encounter struct {
	Pokemon  string `json:"pokemon"`
	Method   string `json:"method"`
	MinLevel int    `json:"min_level"`
	MaxLevel int    `json:"max_level"`
	Rate     int    `json:"rate"`
}

// TrainerPokemon is one team member of a trainer.
type TrainerPokemon struct {
	Pokemon string   `json:"pokemon"`
	Level   int      `json:"level"`
	Item    string   `json:"item,omitempty"`
	Moves   []string `json:"moves,omitempty"`
}

// Trainer is one trainer battle at a location.
type Trainer struct {
	Name  string           `json:"name"`
	Class string           `json:"class,omitempty"`
	Team  []TrainerPokemon `json:"team,omitempty"`
}

// Location is one location record, possibly with nested sublocations
// ("Castelia City" -> "Battle Company" -> "47F").
type Location struct {
	Name         string               `json:"name"`
	Encounters   []Encounter          `json:"encounters,omitempty"`
	Trainers     []Trainer            `json:"trainers,omitempty"`
	Sublocations map[string]*Location `json:"sublocations,omitempty"`
}

// Sublocation walks the "/"-separated path below this location, creating
// nodes along the way. An empty path returns the location itself.
func (l *Location) Sublocation(path []string) *Location {
	cur := l
	for _, part := range path {
		if cur.Sublocations == nil {
			cur.Sublocations = make(map[string]*Location)
		}
		next, ok := cur.Sublocations[part]
		if !ok {
			next = &Location{Name: part}
			cur.Sublocations[part] = next
		}
		cur = next
	}
	return cur
}
