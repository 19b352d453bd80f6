package generator

import (
	"fmt"
	"sort"
	"strings"

	"romwiki/internal/config"
	"romwiki/internal/location"
	"romwiki/internal/markdown"
	"romwiki/internal/model"
	"romwiki/internal/pokedb"
	"romwiki/internal/textutil"
)

// Locations generates one page per parent location plus the location
// index, reading the persisted location store rather than run-local state
// so pages reflect every parse that ever ran.
type Locations struct {
	base
	store *location.Store
}

// NewLocations creates the location page generator.
func NewLocations(cfg *config.Config, db *pokedb.DB) *Locations {
	return &Locations{
		base:  base{cfg: cfg, db: db},
		store: location.NewStore(cfg.LocationStorePath(), cfg.LocationSeparator),
	}
}

// indexColumn pairs an index column header with the cell it renders.
type indexColumn struct {
	header string
	cell   func(loc *model.Location) string
}

func (g *Locations) indexColumns() []indexColumn {
	all := []indexColumn{
		{"Location", func(loc *model.Location) string {
			return fmt.Sprintf("[%s](%s.md)", loc.Name, textutil.SanitizeFilename(loc.Name))
		}},
		{"Encounters", func(loc *model.Location) string {
			return fmt.Sprint(countEncounters(loc))
		}},
		{"Trainers", func(loc *model.Location) string {
			return fmt.Sprint(countTrainers(loc))
		}},
	}
	if len(g.cfg.IndexColumns) == 0 {
		return all
	}
	var picked []indexColumn
	for _, want := range g.cfg.IndexColumns {
		for _, col := range all {
			if strings.EqualFold(col.header, want) {
				picked = append(picked, col)
			}
		}
	}
	if len(picked) == 0 {
		return all
	}
	return picked
}

// Run renders every persisted location.
func (g *Locations) Run() error {
	locations, err := g.store.Load()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(locations))
	for name := range locations {
		names = append(names, name)
	}
	sort.Strings(names)

	columns := g.indexColumns()
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.header
	}

	var rows [][]string
	for _, name := range names {
		loc := locations[name]
		if err := g.writePage(g.page(loc), "locations", textutil.SanitizeFilename(name)+".md"); err != nil {
			return err
		}
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = col.cell(loc)
		}
		rows = append(rows, row)
	}

	table, err := markdown.Table(headers, rows, nil)
	if err != nil {
		return err
	}
	return g.writePage(fmt.Sprintf("# Locations\n\n%s\n", table), "locations", "index.md")
}

func (g *Locations) page(loc *model.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", loc.Name)
	g.writeLocation(&b, loc, 2)
	return b.String()
}

// writeLocation renders one location node and recurses into sublocations,
// deepening the heading level each step.
func (g *Locations) writeLocation(b *strings.Builder, loc *model.Location, level int) {
	if len(loc.Encounters) > 0 {
		fmt.Fprintf(b, "%s Wild Pokémon\n\n", strings.Repeat("#", level))
		b.WriteString("| Pokémon | Method | Levels | Rate |\n|:--------|:-------|:-------|-----:|\n")
		for _, e := range loc.Encounters {
			fmt.Fprintf(b, "| %s | %s | %s | %d%% |\n",
				markdown.PokemonLink(textutil.NameToID(e.Pokemon), ".."),
				textutil.DisplayName(e.Method), levelRange(e.MinLevel, e.MaxLevel), e.Rate)
		}
		b.WriteByte('\n')
	}

	if len(loc.Trainers) > 0 {
		fmt.Fprintf(b, "%s Trainers\n\n", strings.Repeat("#", level))
		for _, t := range loc.Trainers {
			name := t.Name
			if t.Class != "" {
				name = t.Class + " " + t.Name
			}
			fmt.Fprintf(b, "**%s**\n\n", name)
			for _, tp := range t.Team {
				fmt.Fprintf(b, "- %s Lv. %d", markdown.PokemonLink(textutil.NameToID(tp.Pokemon), ".."), tp.Level)
				if tp.Item != "" {
					fmt.Fprintf(b, " @ %s", textutil.DisplayName(tp.Item))
				}
				if len(tp.Moves) > 0 {
					var moves []string
					for _, mv := range tp.Moves {
						moves = append(moves, textutil.DisplayName(mv))
					}
					fmt.Fprintf(b, " (%s)", strings.Join(moves, ", "))
				}
				b.WriteByte('\n')
			}
			b.WriteByte('\n')
		}
	}

	subNames := make([]string, 0, len(loc.Sublocations))
	for name := range loc.Sublocations {
		subNames = append(subNames, name)
	}
	sort.Strings(subNames)
	for _, name := range subNames {
		fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", level), name)
		g.writeLocation(b, loc.Sublocations[name], min(level+1, 6))
	}
}

func levelRange(lo, hi int) string {
	if hi <= lo {
		return fmt.Sprint(lo)
	}
	return fmt.Sprintf("%d–%d", lo, hi)
}

func countEncounters(loc *model.Location) int {
	n := len(loc.Encounters)
	for _, sub := range loc.Sublocations {
		n += countEncounters(sub)
	}
	return n
}

func countTrainers(loc *model.Location) int {
	n := len(loc.Trainers)
	for _, sub := range loc.Sublocations {
		n += countTrainers(sub)
	}
	return n
}
