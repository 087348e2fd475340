package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, team := range Teams() {
		assert.False(t, seen[team.ID], "duplicate team id %s", team.ID)
		seen[team.ID] = true
		assert.Contains(t, Leagues, team.League)
	}
	assert.Len(t, seen, 32)
}

func TestByLeague(t *testing.T) {
	assert.Len(t, ByLeague(""), 32)
	assert.Len(t, ByLeague("Ligue 1"), 4)
	assert.Empty(t, ByLeague("Eredivisie"))
}

func TestFind(t *testing.T) {
	team, ok := Find("9")
	assert.True(t, ok)
	assert.Equal(t, "Real Madrid", team.Name)

	_, ok = Find("999")
	assert.False(t, ok)
}

func TestTeamsReturnsCopy(t *testing.T) {
	list := Teams()
	list[0].Name = "changed"

	team, _ := Find(list[0].ID)
	assert.NotEqual(t, "changed", team.Name)
}
