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

// Moves generates one page per move plus the move index.
type Moves struct {
	base
}

// NewMoves creates the move page generator.
func NewMoves(cfg *config.Config, db *pokedb.DB) *Moves {
	return &Moves{base{cfg: cfg, db: db}}
}

// Run renders every move record in the store.
func (g *Moves) Run() error {
	ids, err := g.db.ListMoves()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, id := range ids {
		m, err := g.db.Move(id)
		if err != nil {
			return err
		}
		if err := g.writePage(g.page(m), "pokedex", "moves", id+".md"); err != nil {
			return err
		}
		rows = append(rows, []string{
			markdown.MoveLink(id, "../.."),
			markdown.TypeBadge(m.Type),
			markdown.CategoryBadge(m.Category),
			powerCell(m.Power),
			accuracyCell(m.Accuracy),
			fmt.Sprint(m.PP),
		})
	}

	table, err := markdown.Table(
		[]string{"Move", "Type", "Category", "Power", "Accuracy", "PP"},
		rows,
		[]markdown.Alignment{markdown.AlignLeft, markdown.AlignCenter, markdown.AlignCenter, markdown.AlignRight, markdown.AlignRight, markdown.AlignRight},
	)
	if err != nil {
		return err
	}
	return g.writePage(fmt.Sprintf("# Moves\n\n%s\n", table), "pokedex", "moves", "index.md")
}

func (g *Moves) page(m *model.Move) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", textutil.DisplayName(m.Name))
	fmt.Fprintf(&b, "%s %s\n\n", markdown.TypeBadge(m.Type), markdown.CategoryBadge(m.Category))

	b.WriteString("| Power | Accuracy | PP | Priority |\n|------:|---------:|---:|---------:|\n")
	fmt.Fprintf(&b, "| %s | %s | %d | %+d |\n\n", powerCell(m.Power), accuracyCell(m.Accuracy), m.PP, m.Priority)

	if m.Effect != "" {
		b.WriteString("## Effect\n\n")
		b.WriteString(m.Effect)
		if m.EffectChance > 0 {
			fmt.Fprintf(&b, " (%d%% chance)", m.EffectChance)
		}
		b.WriteString("\n\n")
	}

	b.WriteString(changesSection(m.Changes))
	return b.String()
}

// powerCell renders a move power, with status moves showing a dash.
func powerCell(power int) string {
	if power <= 0 {
		return "—"
	}
	return fmt.Sprint(power)
}

// accuracyCell renders accuracy, with never-miss moves showing a dash.
func accuracyCell(accuracy int) string {
	if accuracy <= 0 {
		return "—"
	}
	return fmt.Sprintf("%d%%", accuracy)
}
