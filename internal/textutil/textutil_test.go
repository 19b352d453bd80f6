package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameToID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Thunder Stone", "thunder-stone"},
		{"Pokémon", "pokemon"},
		{"Mr. Mime", "mr-mime"},
		{"Farfetch'd", "farfetchd"},
		{"  Oran Berry  ", "oran-berry"},
		{"King's Rock", "kings-rock"},
		{"already-an-id", "already-an-id"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NameToID(tt.in), "NameToID(%q)", tt.in)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"thunder-stone", "Thunder Stone"},
		{"special_attack", "Special Attack"},
		{"mr-mime", "Mr. Mime"},
		{"nidoran-m", "Nidoran♂"},
		{"ho-oh", "Ho-Oh"},
		{"tm-case", "TM Case"},
		{"hp-up", "HP Up"},
		{"exp-share", "Exp. Share"},
		{"route-ix", "Route IX"},
		{"route-iv", "Route IV"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayName(tt.in), "DisplayName(%q)", tt.in)
	}
}

func TestDisplayNameLeavesInitialsAlone(t *testing.T) {
	assert.Equal(t, "Old Rod", DisplayName("old-rod"))
	assert.Equal(t, "Dome Fossil", DisplayName("dome-fossil"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Route_1", SanitizeFilename("Route 1"))
	assert.Equal(t, "Castelia_City_-_Sewers", SanitizeFilename("Castelia City - Sewers"))
	assert.Equal(t, "file.name", SanitizeFilename("file.name"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "lon...", Truncate("long string", 3))
}
