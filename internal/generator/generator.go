// Package generator renders entity records from the PokeDB store into
// markdown pages for the static site.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"romwiki/internal/config"
	"romwiki/internal/model"
	"romwiki/internal/pokedb"
)

// base carries what every concrete generator needs.
type base struct {
	cfg *config.Config
	db  *pokedb.DB
}

// writePage writes one markdown page under the output directory, creating
// parents and replacing atomically so interrupted runs never leave a
// half-written page behind.
func (b *base) writePage(content string, parts ...string) error {
	path := b.cfg.OutputPath(parts...)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create page directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".md-*")
	if err != nil {
		return fmt.Errorf("create temp page: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close page: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace page: %w", err)
	}
	log.Debug().Str("path", path).Msg("Wrote page")
	return nil
}

// changesSection renders the change history carried by a record, or ""
// when nothing changed.
func changesSection(history []model.Change) string {
	if len(history) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Changes\n\n")
	b.WriteString("| Field | Before | After |\n|:------|:-------|:------|\n")
	for _, c := range history {
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", c.Field, c.OldValue, c.NewValue))
	}
	b.WriteByte('\n')
	return b.String()
}
