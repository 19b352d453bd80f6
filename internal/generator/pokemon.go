package generator

import (
	"fmt"
	"sort"
	"strings"

	"romwiki/internal/changes"
	"romwiki/internal/config"
	"romwiki/internal/markdown"
	"romwiki/internal/model"
	"romwiki/internal/pokedb"
	"romwiki/internal/textutil"
)

// Pokemon generates one page per species plus the dex index.
type Pokemon struct {
	base
}

// NewPokemon creates the species page generator.
func NewPokemon(cfg *config.Config, db *pokedb.DB) *Pokemon {
	return &Pokemon{base{cfg: cfg, db: db}}
}

// Run renders every species record in the store.
func (g *Pokemon) Run() error {
	ids, err := g.db.ListPokemon()
	if err != nil {
		return err
	}

	type indexRow struct {
		dex  int
		cell []string
	}
	var index []indexRow

	for _, id := range ids {
		p, err := g.db.Pokemon(id)
		if err != nil {
			return err
		}
		if err := g.writePage(g.page(p), "pokedex", "pokemon", id+".md"); err != nil {
			return err
		}
		var badges []string
		for _, t := range p.Types {
			badges = append(badges, markdown.TypeBadge(t))
		}
		index = append(index, indexRow{dex: p.DexNumber, cell: []string{
			fmt.Sprintf("#%03d", p.DexNumber),
			markdown.PokemonLink(id, ".."),
			strings.Join(badges, " "),
			fmt.Sprint(p.Stats.Total()),
		}})
	}

	sort.SliceStable(index, func(i, j int) bool { return index[i].dex < index[j].dex })
	var rows [][]string
	for _, r := range index {
		rows = append(rows, r.cell)
	}
	table, err := markdown.Table([]string{"Dex", "Pokémon", "Type", "BST"}, rows, nil)
	if err != nil {
		return err
	}
	return g.writePage(fmt.Sprintf("# Pokédex\n\n%s\n", table), "pokedex", "index.md")
}

func (g *Pokemon) page(p *model.Pokemon) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", textutil.DisplayName(p.Name))

	if sprite := markdown.SpriteURL(p, g.cfg.SpriteVersion); sprite != "" {
		fmt.Fprintf(&b, "![%s](%s)\n\n", p.Name, sprite)
	}

	var badges []string
	for _, t := range p.Types {
		badges = append(badges, markdown.TypeBadge(t))
	}
	fmt.Fprintf(&b, "**Type:** %s\n\n", strings.Join(badges, " "))

	b.WriteString("## Base Stats\n\n")
	b.WriteString("| Stat | Value | Range (Lv. 100) | |\n|:-----|------:|:----------------|:--|\n")
	for _, slug := range model.StatSlugs {
		v := p.Stats.Get(slug)
		lo, hi := model.StatRange(v, slug == "hp")
		fmt.Fprintf(&b, "| %s | %d | %d – %d | %s |\n",
			textutil.DisplayName(slug), v, lo, hi, markdown.StatBar(v, 255))
	}
	fmt.Fprintf(&b, "| **Total** | **%d** | | |\n\n", p.Stats.Total())

	if len(p.Abilities) > 0 {
		b.WriteString("## Abilities\n\n")
		for _, a := range p.Abilities {
			_, err := g.db.Ability(a.Name)
			link := markdown.AbilityLink(a.Name, err == nil, "../..")
			if a.IsHidden {
				fmt.Fprintf(&b, "- %s *(hidden)*\n", link)
			} else {
				fmt.Fprintf(&b, "- %s\n", link)
			}
		}
		b.WriteByte('\n')
	}

	eff := model.CalculateTypeEffectiveness(p.Types)
	b.WriteString("## Type Effectiveness\n\n")
	writeEffRow(&b, "Weak to (4x)", eff.QuadWeak)
	writeEffRow(&b, "Weak to (2x)", eff.Weak)
	writeEffRow(&b, "Resists (0.5x)", eff.Resist)
	writeEffRow(&b, "Resists (0.25x)", eff.QuadResist)
	writeEffRow(&b, "Immune to", eff.Immune)
	b.WriteByte('\n')

	fmt.Fprintf(&b, "**Catch rate:** %d · **Base happiness:** %d · **Gender:** %s · **Growth:** %s\n\n",
		p.CaptureRate, p.BaseHappiness, changes.FormatGenderRatio(p.GenderRate), textutil.DisplayName(p.GrowthRate))

	if len(p.Moves) > 0 {
		b.WriteString("## Moves\n\n")
		b.WriteString("| Move | Method | Level |\n|:-----|:-------|------:|\n")
		for _, m := range p.Moves {
			level := "—"
			if m.Level > 0 {
				level = fmt.Sprint(m.Level)
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", markdown.MoveLink(m.Name, "../.."), m.Method, level)
		}
		b.WriteByte('\n')
	}

	b.WriteString(changesSection(p.Changes))
	return b.String()
}

func writeEffRow(b *strings.Builder, label string, types []string) {
	if len(types) == 0 {
		return
	}
	var badges []string
	for _, t := range types {
		badges = append(badges, markdown.TypeBadge(t))
	}
	fmt.Fprintf(b, "- **%s:** %s\n", label, strings.Join(badges, " "))
}
