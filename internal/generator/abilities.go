package generator

import (
	"fmt"
	"strings"

	"romwiki/internal/config"
	"romwiki/internal/markdown"
	"romwiki/internal/model"
	"romwiki/internal/pokedb"
	"romwiki/internal/textutil"
)

// Abilities generates one page per ability plus the ability index.
type Abilities struct {
	base
}

// NewAbilities creates the ability page generator.
func NewAbilities(cfg *config.Config, db *pokedb.DB) *Abilities {
	return &Abilities{base{cfg: cfg, db: db}}
}

// Run renders every ability record in the store.
func (g *Abilities) Run() error {
	ids, err := g.db.ListAbilities()
	if err != nil {
		return err
	}

	// Species listings on ability pages come from the species records, so
	// one pass over the dex builds the reverse index.
	holders, err := g.holdersByAbility()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, id := range ids {
		a, err := g.db.Ability(id)
		if err != nil {
			return err
		}
		if err := g.writePage(g.page(a, holders[id]), "pokedex", "abilities", id+".md"); err != nil {
			return err
		}
		rows = append(rows, []string{
			markdown.AbilityLink(id, true, "../.."),
			firstSentence(a.Effect),
		})
	}

	table, err := markdown.Table([]string{"Ability", "Effect"}, rows, nil)
	if err != nil {
		return err
	}
	return g.writePage(fmt.Sprintf("# Abilities\n\n%s\n", table), "pokedex", "abilities", "index.md")
}

// abilityHolder is one species carrying an ability.
type abilityHolder struct {
	pokemonID string
	hidden    bool
}

func (g *Abilities) holdersByAbility() (map[string][]abilityHolder, error) {
	ids, err := g.db.ListPokemon()
	if err != nil {
		return nil, err
	}
	holders := make(map[string][]abilityHolder)
	for _, id := range ids {
		p, err := g.db.Pokemon(id)
		if err != nil {
			return nil, err
		}
		for _, a := range p.Abilities {
			aid := textutil.NameToID(a.Name)
			holders[aid] = append(holders[aid], abilityHolder{pokemonID: id, hidden: a.IsHidden})
		}
	}
	return holders, nil
}

func (g *Abilities) page(a *model.Ability, holders []abilityHolder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", textutil.DisplayName(a.Name))

	if a.Effect != "" {
		b.WriteString("## Effect\n\n")
		b.WriteString(a.Effect)
		b.WriteString("\n\n")
	}

	if len(holders) > 0 {
		b.WriteString("## Pokémon with this ability\n\n")
		for _, h := range holders {
			if h.hidden {
				fmt.Fprintf(&b, "- %s *(hidden)*\n", markdown.PokemonLink(h.pokemonID, "../.."))
			} else {
				fmt.Fprintf(&b, "- %s\n", markdown.PokemonLink(h.pokemonID, "../.."))
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString(changesSection(a.Changes))
	return b.String()
}

// firstSentence trims an effect text down to index-table size.
func firstSentence(text string) string {
	if i := strings.Index(text, ". "); i >= 0 {
		return text[:i+1]
	}
	return text
}
