// Package pokedb reads and writes the JSON record store that page
// generation and record updates operate on. Records live as one JSON file
// per entity under <data dir>/{pokemon,moves,items,abilities,evolution}.
package pokedb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"romwiki/internal/model"
)

// ErrNotFound is returned when no record exists for an ID.
var ErrNotFound = errors.New("pokedb: record not found")

// DB is a handle on the record store. Reads are cached in memory; writes
// go through the cache and land on disk via temp file + rename.
type DB struct {
	root string

	pokemon   map[string]*model.Pokemon
	moves     map[string]*model.Move
	items     map[string]*model.Item
	abilities map[string]*model.Ability
	chains    map[string]*model.EvolutionChain
}

// Open returns a DB rooted at dir. The directory does not have to exist
// yet; it is created on first save.
func Open(dir string) *DB {
	return &DB{
		root:      dir,
		pokemon:   make(map[string]*model.Pokemon),
		moves:     make(map[string]*model.Move),
		items:     make(map[string]*model.Item),
		abilities: make(map[string]*model.Ability),
		chains:    make(map[string]*model.EvolutionChain),
	}
}

func (db *DB) path(kind, id string) string {
	return filepath.Join(db.root, kind, id+".json")
}

func load[T any](db *DB, cache map[string]*T, kind, id string) (*T, error) {
	if rec, ok := cache[id]; ok {
		return rec, nil
	}
	raw, err := os.ReadFile(db.path(kind, id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, kind, id)
		}
		return nil, fmt.Errorf("read %s record %q: %w", kind, id, err)
	}
	rec := new(T)
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("decode %s record %q: %w", kind, id, err)
	}
	cache[id] = rec
	return rec, nil
}

func save[T any](db *DB, cache map[string]*T, kind, id string, rec *T) error {
	path := db.path(kind, id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s directory: %w", kind, err)
	}

	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s record %q: %w", kind, id, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".json-*")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s record %q: %w", kind, id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s record %q: %w", kind, id, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s record %q: %w", kind, id, err)
	}

	cache[id] = rec
	log.Debug().Str("kind", kind).Str("id", id).Msg("Saved record")
	return nil
}

// list returns the sorted record IDs present on disk for one kind.
func (db *DB) list(kind string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(db.root, kind))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s records: %w", kind, err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Pokemon loads one species record.
func (db *DB) Pokemon(id string) (*model.Pokemon, error) {
	return load(db, db.pokemon, "pokemon", id)
}

// SavePokemon persists one species record.
func (db *DB) SavePokemon(id string, p *model.Pokemon) error {
	return save(db, db.pokemon, "pokemon", id, p)
}

// ListPokemon returns all species IDs in the store.
func (db *DB) ListPokemon() ([]string, error) { return db.list("pokemon") }

// Move loads one move record.
func (db *DB) Move(id string) (*model.Move, error) {
	return load(db, db.moves, "moves", id)
}

// SaveMove persists one move record.
func (db *DB) SaveMove(id string, m *model.Move) error {
	return save(db, db.moves, "moves", id, m)
}

// ListMoves returns all move IDs in the store.
func (db *DB) ListMoves() ([]string, error) { return db.list("moves") }

// Item loads one item record.
func (db *DB) Item(id string) (*model.Item, error) {
	return load(db, db.items, "items", id)
}

// SaveItem persists one item record.
func (db *DB) SaveItem(id string, it *model.Item) error {
	return save(db, db.items, "items", id, it)
}

// ListItems returns all item IDs in the store.
func (db *DB) ListItems() ([]string, error) { return db.list("items") }

// Ability loads one ability record.
func (db *DB) Ability(id string) (*model.Ability, error) {
	return load(db, db.abilities, "abilities", id)
}

// SaveAbility persists one ability record.
func (db *DB) SaveAbility(id string, a *model.Ability) error {
	return save(db, db.abilities, "abilities", id, a)
}

// ListAbilities returns all ability IDs in the store.
func (db *DB) ListAbilities() ([]string, error) { return db.list("abilities") }

// EvolutionChain loads the chain record containing a species.
func (db *DB) EvolutionChain(id string) (*model.EvolutionChain, error) {
	return load(db, db.chains, "evolution", id)
}

// SaveEvolutionChain persists one chain record.
func (db *DB) SaveEvolutionChain(id string, c *model.EvolutionChain) error {
	return save(db, db.chains, "evolution", id, c)
}
