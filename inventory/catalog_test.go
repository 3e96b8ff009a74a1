package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogParses(t *testing.T) {
	c := Default()
	assert.Greater(t, c.Len(), 0)

	// Cheapest first.
	all := c.All()
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Price, all[i].Price)
	}
}

func TestSearchFilters(t *testing.T) {
	c := Default()

	suvs := c.Search(Filter{BodyStyle: "SUV"})
	require.NotEmpty(t, suvs)
	for _, v := range suvs {
		assert.Equal(t, "SUV", v.BodyStyle)
	}

	cheap := c.Search(Filter{MaxPrice: 30000})
	require.NotEmpty(t, cheap)
	for _, v := range cheap {
		assert.LessOrEqual(t, v.Price, 30000)
	}

	wranglers := c.Search(Filter{Query: "wrangler"})
	require.Len(t, wranglers, 1)
	assert.Equal(t, "E5012", wranglers[0].Stock)

	none := c.Search(Filter{BodyStyle: "Hovercraft"})
	assert.Empty(t, none)
}

func TestByStock(t *testing.T) {
	c := Default()

	v, ok := c.ByStock("a1042")
	require.True(t, ok, "stock lookup is case-insensitive")
	assert.Equal(t, "Compass", v.Model)

	_, ok = c.ByStock("Z9999")
	assert.False(t, ok)
}

func TestBodyStylesAndModels(t *testing.T) {
	c := Default()

	styles := c.BodyStyles()
	assert.Contains(t, styles, "SUV")
	assert.Contains(t, styles, "Truck")

	models := c.Models()
	assert.Contains(t, models, "Jeep Wrangler")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
vehicles:
  - stock: X1
    make: Jeep
    model: Compass
    year: 2023
    body_style: SUV
    price: 28900
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte("vehicles: [}"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
