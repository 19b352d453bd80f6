package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Stats", "stats"},
		{"spaces", "Base Stats", "base_stats"},
		{"punctuation runs", "Moves -- Level Up!", "moves_level_up"},
		{"accents fold", "Pokémon", "pokemon"},
		{"mixed case", "EV Yield", "ev_yield"},
		{"leading trailing", "  [Stats]  ", "stats"},
		{"digits kept", "Route 104", "route_104"},
		{"only punctuation", "***", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.in))
		})
	}
}

func TestNormalizeKeyIdempotent(t *testing.T) {
	for _, in := range []string{"Base Stats", "Pokémon Données", "Route 104", "EV-Yield"} {
		once := NormalizeKey(in)
		assert.Equal(t, once, NormalizeKey(once), "normalizing %q twice must be stable", in)
	}
}
