package location

import (
	"fmt"
	"strconv"
	"strings"

	"romwiki/internal/config"
	"romwiki/internal/model"
	"romwiki/internal/textutil"
)

// NewWildParser builds the parser for the wild encounter documentation
// file. The file interleaves location blocks inside two sections:
//
//	Wild Pokemon
//	Route 1
//	Lillipup | Grass | 2-4 | 40%
//	Trainers
//	Route 1
//	Youngster Joey
//	- lillipup, Lv. 5 (tackle, leer)
//
// Bare lines that are not section names switch the active location block.
func NewWildParser(cfg *config.Config, inputFile string) (*Parser, error) {
	p, err := New(cfg, inputFile)
	if err != nil {
		return nil, err
	}

	if err := p.Register("Wild Pokemon", p.wildLine); err != nil {
		return nil, err
	}
	if err := p.Register("Trainers", p.trainerLine); err != nil {
		return nil, err
	}
	return p, nil
}

// wildLine handles one line of the Wild Pokemon section: location key or
// encounter row.
func (p *Parser) wildLine(line string) error {
	if !strings.Contains(line, "|") {
		p.SetCurrent(line)
		p.Printf("### %s\n\n", p.Current())
		p.WriteLine("| Pokémon | Method | Levels | Rate |")
		p.WriteLine("|:--------|:-------|:-------|-----:|")
		return nil
	}

	e, err := parseEncounter(line)
	if err != nil {
		return err
	}
	p.MergeEncounters(e)

	levels := strconv.Itoa(e.MinLevel)
	if e.MaxLevel > e.MinLevel {
		levels = fmt.Sprintf("%d-%d", e.MinLevel, e.MaxLevel)
	}
	p.Printf("| %s | %s | %s | %d%% |\n", textutil.DisplayName(e.Pokemon), e.Method, levels, e.Rate)
	return nil
}

// parseEncounter parses "Lillipup | Grass | 2-4 | 40%".
func parseEncounter(line string) (model.Encounter, error) {
	fields := splitFields(line)
	if len(fields) != 4 {
		return model.Encounter{}, fmt.Errorf("encounter row needs 4 fields, got %d: %q", len(fields), line)
	}

	minLevel, maxLevel, err := parseLevels(fields[2])
	if err != nil {
		return model.Encounter{}, err
	}
	rate, err := strconv.Atoi(strings.TrimSuffix(fields[3], "%"))
	if err != nil {
		return model.Encounter{}, fmt.Errorf("bad encounter rate %q: %w", fields[3], err)
	}

	return model.Encounter{
		Pokemon:  textutil.NameToID(fields[0]),
		Method:   fields[1],
		MinLevel: minLevel,
		MaxLevel: maxLevel,
		Rate:     rate,
	}, nil
}

// trainerLine handles one line of the Trainers section: location key,
// trainer header or team member. Team members accumulate on the pending
// trainer, which is merged once the lookahead shows the roster ended.
func (p *Parser) trainerLine(line string) error {
	if strings.HasPrefix(line, "- ") {
		if p.pending == nil {
			return fmt.Errorf("team member before any trainer: %q", line)
		}
		member, err := parseTeamMember(strings.TrimPrefix(line, "- "))
		if err != nil {
			return err
		}
		p.pending.Team = append(p.pending.Team, member)

		if next, ok := p.Peek(); !ok || !strings.HasPrefix(next, "- ") {
			p.flushTrainer()
		}
		return nil
	}

	// A trainer header is always followed by its roster, so the lookahead
	// tells headers and location keys apart.
	if next, ok := p.Peek(); ok && strings.HasPrefix(next, "- ") {
		p.flushTrainer()
		class, name, _ := strings.Cut(strings.TrimSpace(line), " ")
		p.pending = &model.Trainer{Class: class, Name: name}
		p.Printf("**%s**\n\n", strings.TrimSpace(line))
		return nil
	}

	p.flushTrainer()
	p.SetCurrent(line)
	p.Printf("### %s\n\n", p.Current())
	return nil
}

// flushTrainer merges the pending trainer, if any, into the active block.
func (p *Parser) flushTrainer() {
	if p.pending == nil {
		return
	}
	p.MergeTrainers(*p.pending)
	p.pending = nil
}

// parseTeamMember parses "lillipup @ oran-berry, Lv. 5 (tackle, leer)".
func parseTeamMember(s string) (model.TrainerPokemon, error) {
	var tp model.TrainerPokemon

	if open := strings.Index(s, "("); open >= 0 {
		end := strings.LastIndex(s, ")")
		if end < open {
			return tp, fmt.Errorf("unbalanced move list: %q", s)
		}
		for _, mv := range strings.Split(s[open+1:end], ",") {
			tp.Moves = append(tp.Moves, textutil.NameToID(mv))
		}
		s = s[:open]
	}

	name, rest, found := strings.Cut(s, ",")
	if !found {
		return tp, fmt.Errorf("team member needs a level: %q", s)
	}

	if species, item, held := strings.Cut(name, "@"); held {
		name = species
		tp.Item = textutil.NameToID(item)
	}
	tp.Pokemon = textutil.NameToID(name)

	levelStr := strings.TrimSpace(rest)
	levelStr = strings.TrimPrefix(levelStr, "Lv.")
	level, err := strconv.Atoi(strings.TrimSpace(levelStr))
	if err != nil {
		return tp, fmt.Errorf("bad trainer level %q: %w", rest, err)
	}
	tp.Level = level
	return tp, nil
}

// parseLevels parses "2-4" or "5" into a level range.
func parseLevels(s string) (int, int, error) {
	lo, hi, found := strings.Cut(s, "-")
	minLevel, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, fmt.Errorf("bad level range %q: %w", s, err)
	}
	if !found {
		return minLevel, minLevel, nil
	}
	maxLevel, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return 0, 0, fmt.Errorf("bad level range %q: %w", s, err)
	}
	return minLevel, maxLevel, nil
}

// splitFields splits a pipe-delimited row and trims each field.
func splitFields(line string) []string {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
