package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Paris", "Rome", "Tokyo"}, c.Names())

	paris, ok := c.Lookup("  PARIS ")
	require.True(t, ok)
	assert.Equal(t, []string{"Eiffel Tower", "Louvre Museum", "Notre-Dame Cathedral"}, paris.MustSee)
	require.NotNil(t, paris.Coordinates)
	assert.InDelta(t, 48.8566, paris.Coordinates.Lat, 1e-9)
	assert.InDelta(t, 2.3522, paris.Coordinates.Lon, 1e-9)

	require.Len(t, paris.Transport, 2)
	assert.Equal(t, "metro", paris.Transport[0].Mode)
	assert.Equal(t, "walking", paris.Transport[1].Mode)
}

func TestLookupUnknownDestination(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	_, ok := c.Lookup("Atlantis")
	assert.False(t, ok)

	var empty *Catalog
	_, ok = empty.Lookup("Paris")
	assert.False(t, ok)
}

func TestParseDefaultsNameToKey(t *testing.T) {
	c, err := Parse([]byte("lisbon:\n  description: Hills and trams\n"))
	require.NoError(t, err)

	entry, ok := c.Lookup("Lisbon")
	require.True(t, ok)
	assert.Equal(t, "lisbon", entry.Name)
	assert.Nil(t, entry.Coordinates)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("paris: [unterminated"))
	assert.Error(t, err)
}
