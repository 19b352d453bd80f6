package location

import (
	"strings"

	"romwiki/internal/config"
	"romwiki/internal/model"
	"romwiki/internal/section"
)

// Parser wraps the generic section engine with the location merge and
// persist capability. Location documentation files use a different heading
// convention than the bracketed default: only bare lines matching a
// registered section name switch sections, so location-name lines inside a
// section reach the section handler (which calls SetCurrent) instead of
// being mistaken for headings.
type Parser struct {
	*section.Parser

	Store   *Store
	current string
	pending *model.Trainer
}

// New builds a location parser for one documentation input file, merging
// into the project's persisted location store.
func New(cfg *config.Config, inputFile string) (*Parser, error) {
	sp, err := section.New(cfg, inputFile)
	if err != nil {
		return nil, err
	}
	sp.SetHeadingRule(func(line string) (string, bool) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.Contains(trimmed, "|") {
			return "", false
		}
		if sp.IsRegistered(trimmed) {
			return trimmed, true
		}
		return "", false
	})
	p := &Parser{
		Parser: sp,
		Store:  NewStore(cfg.LocationStorePath(), cfg.LocationSeparator),
	}
	return p, nil
}

// SetCurrent switches the location block subsequent merges apply to.
func (p *Parser) SetCurrent(rawKey string) {
	p.current = strings.TrimSpace(rawKey)
}

// Current returns the active location key, or "" outside any block.
func (p *Parser) Current() string { return p.current }

// MergeEncounters merges encounters into the active location block.
func (p *Parser) MergeEncounters(entries ...model.Encounter) {
	if p.current == "" {
		return
	}
	p.Store.MergeEncounters(p.current, entries...)
}

// MergeTrainers merges trainers into the active location block.
func (p *Parser) MergeTrainers(entries ...model.Trainer) {
	if p.current == "" {
		return
	}
	p.Store.MergeTrainers(p.current, entries...)
}

// Run resets the run state, parses the input through the section engine
// and persists both outputs. The location store is only written when
// parsing succeeded, matching the no-partial-output rule for markdown.
func (p *Parser) Run() error {
	p.Store.Reset()
	p.current = ""
	p.pending = nil

	if err := p.Parser.Run(); err != nil {
		return err
	}
	p.flushTrainer()
	return p.Store.Save()
}
