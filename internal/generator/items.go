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

// Items generates one page per item plus the item index.
type Items struct {
	base
}

// NewItems creates the item page generator.
func NewItems(cfg *config.Config, db *pokedb.DB) *Items {
	return &Items{base{cfg: cfg, db: db}}
}

// Run renders every item record in the store.
func (g *Items) Run() error {
	ids, err := g.db.ListItems()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, id := range ids {
		item, err := g.db.Item(id)
		if err != nil {
			return err
		}
		if err := g.writePage(g.page(item), "pokedex", "items", id+".md"); err != nil {
			return err
		}
		rows = append(rows, []string{
			markdown.Link(textutil.DisplayName(item.Name), "../..", "items", id),
			textutil.DisplayName(item.Category),
			costCell(item.Cost),
		})
	}

	table, err := markdown.Table(
		[]string{"Item", "Category", "Cost"},
		rows,
		[]markdown.Alignment{markdown.AlignLeft, markdown.AlignLeft, markdown.AlignRight},
	)
	if err != nil {
		return err
	}
	return g.writePage(fmt.Sprintf("# Items\n\n%s\n", table), "pokedex", "items", "index.md")
}

func (g *Items) page(item *model.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", textutil.DisplayName(item.Name))

	if item.Sprite != "" {
		fmt.Fprintf(&b, "![%s](%s)\n\n", item.Name, item.Sprite)
	}
	fmt.Fprintf(&b, "**Category:** %s · **Cost:** %s\n\n", textutil.DisplayName(item.Category), costCell(item.Cost))

	if item.Effect != "" {
		b.WriteString("## Effect\n\n")
		b.WriteString(item.Effect)
		b.WriteString("\n\n")
	}

	b.WriteString(changesSection(item.Changes))
	return b.String()
}

// costCell renders an item cost, with unbuyable items showing a dash.
func costCell(cost int) string {
	if cost <= 0 {
		return "—"
	}
	return fmt.Sprintf("₽%d", cost)
}
