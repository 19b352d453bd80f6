// Package location builds location records from documentation input and
// keeps them in a persisted JSON store. Composite keys like
// "Castelia City - Battle Company/47F" split into a parent location and a
// sublocation path of at most two levels.
package location

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"romwiki/internal/model"
)

// Store accumulates location data for one run and reconciles it with the
// persisted JSON map on Save: keys touched during the run replace their
// persisted lists wholesale, untouched keys are preserved verbatim.
type Store struct {
	path string
	sep  string

	locations       map[string]*model.Location
	touchedEnc      map[string]bool
	touchedTrainers map[string]bool
}

// NewStore creates a store persisting to path, splitting composite keys on
// sep (typically " - ").
func NewStore(path, sep string) *Store {
	s := &Store{path: path, sep: sep}
	s.Reset()
	return s
}

// Reset discards the run's accumulated data and touched-key tracking.
// Called at the start of every run so re-parsing is idempotent.
func (s *Store) Reset() {
	s.locations = make(map[string]*model.Location)
	s.touchedEnc = make(map[string]bool)
	s.touchedTrainers = make(map[string]bool)
}

// SplitKey breaks a composite key into the parent location name and the
// sublocation path below it.
func (s *Store) SplitKey(key string) (string, []string) {
	parent, sub, found := strings.Cut(key, s.sep)
	if !found {
		return key, nil
	}
	return parent, strings.Split(sub, "/")
}

// node resolves the run-local record for a composite key, creating the
// parent and sublocation chain as needed.
func (s *Store) node(key string) *model.Location {
	parent, sub := s.SplitKey(key)
	loc, ok := s.locations[parent]
	if !ok {
		loc = &model.Location{Name: parent}
		s.locations[parent] = loc
	}
	return loc.Sublocation(sub)
}

// MergeEncounters adds wild encounters under a key. The first merge for a
// key in a run clears its encounter list; later merges append.
func (s *Store) MergeEncounters(key string, entries ...model.Encounter) {
	n := s.node(key)
	if !s.touchedEnc[key] {
		n.Encounters = nil
		s.touchedEnc[key] = true
	}
	n.Encounters = append(n.Encounters, entries...)
}

// MergeTrainers adds trainers under a key with the same first-touch-clears
// semantics as MergeEncounters.
func (s *Store) MergeTrainers(key string, entries ...model.Trainer) {
	n := s.node(key)
	if !s.touchedTrainers[key] {
		n.Trainers = nil
		s.touchedTrainers[key] = true
	}
	n.Trainers = append(n.Trainers, entries...)
}

// Encounters returns the run-local encounter list for a key.
func (s *Store) Encounters(key string) []model.Encounter {
	return s.node(key).Encounters
}

// Load reads the persisted location map. A missing store file is an empty
// map, not an error.
func (s *Store) Load() (map[string]*model.Location, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]*model.Location), nil
		}
		return nil, fmt.Errorf("read location store: %w", err)
	}
	persisted := make(map[string]*model.Location)
	if err := json.Unmarshal(raw, &persisted); err != nil {
		return nil, fmt.Errorf("decode location store: %w", err)
	}
	return persisted, nil
}

// Save reconciles the run's data against the persisted store and writes
// the merged map back atomically.
func (s *Store) Save() error {
	persisted, err := s.Load()
	if err != nil {
		return err
	}

	splice := func(key string, apply func(dst, src *model.Location)) {
		parent, sub := s.SplitKey(key)
		runParent, ok := s.locations[parent]
		if !ok {
			return
		}
		dstParent, ok := persisted[parent]
		if !ok {
			dstParent = &model.Location{Name: parent}
			persisted[parent] = dstParent
		}
		apply(dstParent.Sublocation(sub), runParent.Sublocation(sub))
	}

	for key := range s.touchedEnc {
		splice(key, func(dst, src *model.Location) { dst.Encounters = src.Encounters })
	}
	for key := range s.touchedTrainers {
		splice(key, func(dst, src *model.Location) { dst.Trainers = src.Trainers })
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create location data directory: %w", err)
	}
	raw, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("encode location store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".locations-*")
	if err != nil {
		return fmt.Errorf("create temp location store: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write location store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close location store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace location store: %w", err)
	}
	log.Info().Str("path", s.path).Int("locations", len(persisted)).Msg("Saved location store")
	return nil
}
