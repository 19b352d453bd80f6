// Package markdown provides the formatting helpers shared by all page
// generators: tables with alignment markers, type and category badges,
// stat bars, links and sprite URLs.
package markdown

import (
	"fmt"
	"strings"

	"romwiki/internal/model"
	"romwiki/internal/textutil"
)

// typeColors are the badge background colors per type.
var typeColors = map[string]string{
	"normal":   "#A8A878",
	"fire":     "#F08030",
	"water":    "#6890F0",
	"electric": "#F8D030",
	"grass":    "#78C850",
	"ice":      "#98D8D8",
	"fighting": "#C03028",
	"poison":   "#A040A0",
	"ground":   "#E0C068",
	"flying":   "#A890F0",
	"psychic":  "#F85888",
	"bug":      "#A8B820",
	"rock":     "#B8A038",
	"ghost":    "#705898",
	"dragon":   "#7038F8",
	"dark":     "#705848",
	"steel":    "#B8B8D0",
	"fairy":    "#EE99AC",
}

var categoryColors = map[string]string{
	"physical": "#C03028",
	"special":  "#6890F0",
	"status":   "#A8A878",
}

// Alignment of one table column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// TableHeader renders a table header row plus its separator line. When
// alignments is nil every column aligns left; otherwise it must match the
// column count.
func TableHeader(columns []string, alignments []Alignment) (string, error) {
	if alignments != nil && len(alignments) != len(columns) {
		return "", fmt.Errorf("table header: %d alignments for %d columns", len(alignments), len(columns))
	}

	var sep []string
	for i, col := range columns {
		align := AlignLeft
		if alignments != nil {
			align = alignments[i]
		}
		dashes := strings.Repeat("-", max(len(col), 3))
		switch align {
		case AlignCenter:
			sep = append(sep, ":"+dashes+":")
		case AlignRight:
			sep = append(sep, dashes+":")
		default:
			sep = append(sep, ":"+dashes)
		}
	}
	return TableRow(columns) + "\n|" + strings.Join(sep, "|") + "|", nil
}

// TableRow renders one table row.
func TableRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

// Table renders a complete table.
func Table(columns []string, rows [][]string, alignments []Alignment) (string, error) {
	out, err := TableHeader(columns, alignments)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(out)
	for _, row := range rows {
		b.WriteByte('\n')
		b.WriteString(TableRow(row))
	}
	return b.String(), nil
}

// Checkbox renders a disabled checkbox input.
func Checkbox(checked bool) string {
	if checked {
		return `<input type="checkbox" disabled checked />`
	}
	return `<input type="checkbox" disabled />`
}

// TypeBadge renders a colored badge for a type name.
func TypeBadge(typeName string) string {
	color, ok := typeColors[strings.ToLower(typeName)]
	if !ok {
		color = "#777777"
	}
	return badge("type-badge", textutil.DisplayName(typeName), color)
}

// CategoryBadge renders a colored badge for a damage category.
func CategoryBadge(category string) string {
	color, ok := categoryColors[strings.ToLower(category)]
	if !ok {
		color = "#777777"
	}
	return badge("category-badge", textutil.DisplayName(category), color)
}

func badge(class, label, color string) string {
	style := fmt.Sprintf("background: linear-gradient(135deg, %s 0%%, %sdd 100%%);", color, color)
	return fmt.Sprintf(`<span class=%q style=%q>%s</span>`, class, style, label)
}

// StatBar renders a progress bar for a stat value.
func StatBar(value, maxValue int) string {
	pct := 100 * value / maxValue
	if pct > 100 {
		pct = 100
	}
	return fmt.Sprintf(`<div class="stat-bar"><div class="stat-bar-fill" style="width: %d%%;"></div></div>`, pct)
}

// Link renders a markdown link to an entity page under the docs root.
func Link(displayName, relativePath, kind, id string) string {
	return fmt.Sprintf("[%s](%s/pokedex/%s/%s.md)", displayName, relativePath, kind, id)
}

// AbilityLink links to an ability page, falling back to plain text for
// abilities with no record.
func AbilityLink(id string, exists bool, relativePath string) string {
	name := textutil.DisplayName(id)
	if !exists {
		return name
	}
	return Link(name, relativePath, "abilities", id)
}

// MoveLink links to a move page.
func MoveLink(id, relativePath string) string {
	return Link(textutil.DisplayName(id), relativePath, "moves", id)
}

// PokemonLink links to a species page.
func PokemonLink(id, relativePath string) string {
	return Link(textutil.DisplayName(id), relativePath, "pokemon", id)
}

// SpriteURL picks the sprite for a species: cosmetic forms use the default
// front sprite, everything else prefers the animated version-specific
// sprite when present.
func SpriteURL(p *model.Pokemon, spriteVersion string) string {
	if p.FormCategory == "cosmetic" {
		return p.Sprites.FrontDefault
	}
	if v, ok := p.Sprites.Versions[spriteVersion]; ok {
		if v.Animated != "" {
			return v.Animated
		}
		if v.FrontDefault != "" {
			return v.FrontDefault
		}
	}
	return p.Sprites.FrontDefault
}
