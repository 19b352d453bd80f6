// Package section implements the heading-driven line parser behind every
// documentation page builder. Input lines are routed to the handler of
// whichever registered section is currently open; handlers append markdown
// to the parser's output buffer, which Run writes out atomically.
package section

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"romwiki/internal/config"
	"romwiki/internal/textutil"
)

// HandlerFunc consumes one line belonging to its section.
type HandlerFunc func(line string) error

// HeadingRule decides whether a line is a section heading and extracts the
// section name. Specializations plug in their own convention.
type HeadingRule func(line string) (name string, ok bool)

// ParseError reports a handler failure at a specific input line.
type ParseError struct {
	Line    int    // index into the parsed line sequence
	Section string // normalized key of the active section
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse line %d (section %q): %v", e.Line, e.Section, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// cursor is the per-Parse state. A fresh cursor is created for every Parse
// call so re-parsing the same input is idempotent.
type cursor struct {
	lines []string
	index int
}

// Parser routes input lines to section handlers and accumulates markdown.
type Parser struct {
	handlers map[string]HandlerFunc
	display  map[string]string // normalized key -> display name
	rule     HeadingRule
	skip     []*regexp.Regexp

	inputPath  string
	outputPath string
	title      string

	buf strings.Builder
	cur *cursor

	// OnSection runs when the parser enters a section. The default writes
	// a level-two heading with the section's display name.
	OnSection func(displayName string)
}

// New builds a parser for one documentation input file. The input is
// resolved under the project's documentation directory and the output
// under the configured output directory, named after the input file stem.
func New(cfg *config.Config, inputFile string) (*Parser, error) {
	stem := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	outName := strings.ToLower(strings.ReplaceAll(stem, " ", "_"))

	p := &Parser{
		handlers:   make(map[string]HandlerFunc),
		display:    make(map[string]string),
		inputPath:  filepath.Join(cfg.DocumentationDir(), inputFile),
		outputPath: cfg.OutputPath(outName + ".md"),
		title:      textutil.DisplayName(outName),
	}
	p.rule = p.defaultHeading
	p.OnSection = func(name string) {
		p.Printf("## %s\n\n", name)
	}

	for _, pattern := range cfg.SkipPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &config.Error{Field: "skip_patterns", Reason: fmt.Sprintf("invalid pattern %q: %v", pattern, err)}
		}
		p.skip = append(p.skip, re)
	}
	return p, nil
}

// Register adds a section and its handler. Two display names that
// normalize to the same key are ambiguous and rejected.
func (p *Parser) Register(displayName string, h HandlerFunc) error {
	key := NormalizeKey(displayName)
	if key == "" {
		return &config.Error{Field: "sections", Reason: fmt.Sprintf("section name %q normalizes to an empty key", displayName)}
	}
	if prev, exists := p.display[key]; exists {
		return &config.Error{Field: "sections", Reason: fmt.Sprintf("sections %q and %q both normalize to %q", prev, displayName, key)}
	}
	p.handlers[key] = h
	p.display[key] = displayName
	return nil
}

// SetHeadingRule replaces the heading recognition strategy.
func (p *Parser) SetHeadingRule(rule HeadingRule) { p.rule = rule }

// IsRegistered reports whether a display name routes to a registered
// section. Heading rules use this to tell headings from content.
func (p *Parser) IsRegistered(displayName string) bool {
	_, ok := p.handlers[NormalizeKey(displayName)]
	return ok
}

// defaultHeading recognizes "[Name]"-decorated headings and bare lines that
// exactly match a registered section name.
func (p *Parser) defaultHeading(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && len(trimmed) > 2 {
		return trimmed[1 : len(trimmed)-1], true
	}
	if _, ok := p.handlers[NormalizeKey(trimmed)]; ok {
		return trimmed, true
	}
	return "", false
}

// ReadInputLines filters raw lines from r: trailing whitespace stripped,
// blank lines and skip-pattern matches dropped, order preserved.
func (p *Parser) ReadInputLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || p.skipLine(line) {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	return lines, nil
}

func (p *Parser) skipLine(line string) bool {
	for _, re := range p.skip {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Parse routes lines to section handlers in a single top-to-bottom pass.
// Content before the first recognized heading is skipped; sections may be
// revisited. A handler error aborts with a ParseError carrying the line
// index and active section.
func (p *Parser) Parse(lines []string) error {
	p.cur = &cursor{lines: lines}
	defer func() { p.cur = nil }()

	p.buf.Reset()
	p.Printf("# %s\n\n", p.title)

	current := ""
	for p.cur.index = 0; p.cur.index < len(lines); p.cur.index++ {
		line := lines[p.cur.index]

		if name, ok := p.rule(line); ok {
			key := NormalizeKey(name)
			if _, registered := p.handlers[key]; !registered {
				log.Warn().Str("section", name).Int("line", p.cur.index).Msg("Unrecognized section heading, skipping until next heading")
				current = ""
				continue
			}
			current = key
			if p.OnSection != nil {
				p.OnSection(p.display[key])
			}
			continue
		}

		if current == "" {
			log.Debug().Int("line", p.cur.index).Msg("Line outside any section, discarded")
			continue
		}
		if h := p.handlers[current]; h != nil {
			if err := h(line); err != nil {
				return &ParseError{Line: p.cur.index, Section: current, Err: err}
			}
		}
	}
	return nil
}

// Peek returns the next input line without consuming it. It is only valid
// while a Parse call is active.
func (p *Parser) Peek() (string, bool) {
	if p.cur == nil {
		return "", false
	}
	next := p.cur.index + 1
	if next >= len(p.cur.lines) {
		return "", false
	}
	return p.cur.lines[next], true
}

// Printf appends formatted markdown to the output buffer.
func (p *Parser) Printf(format string, args ...any) {
	fmt.Fprintf(&p.buf, format, args...)
}

// WriteLine appends one line of markdown to the output buffer.
func (p *Parser) WriteLine(line string) {
	p.buf.WriteString(line)
	p.buf.WriteByte('\n')
}

// Markdown returns the accumulated output.
func (p *Parser) Markdown() string { return p.buf.String() }

// OutputPath returns where SaveMarkdown writes.
func (p *Parser) OutputPath() string { return p.outputPath }

// Title returns the document title derived from the input file name.
func (p *Parser) Title() string { return p.title }

// SaveMarkdown writes the buffer to the output path, creating parent
// directories as needed. The content lands via a temp file and rename so a
// failure never leaves a half-written page.
func (p *Parser) SaveMarkdown() error {
	dir := filepath.Dir(p.outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".md-*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(p.buf.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmpName, p.outputPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace output: %w", err)
	}
	log.Info().Str("path", p.outputPath).Msg("Saved markdown")
	return nil
}

// Run reads the input file, parses it and saves the markdown. The input
// handle is closed on every exit path, and no output is written when
// parsing fails.
func (p *Parser) Run() error {
	file, err := os.Open(p.inputPath)
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}

	lines, err := p.ReadInputLines(file)
	closeErr := file.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return fmt.Errorf("close input file: %w", closeErr)
	}

	if err := p.Parse(lines); err != nil {
		return err
	}
	return p.SaveMarkdown()
}
