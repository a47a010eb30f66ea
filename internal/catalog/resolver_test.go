package catalog

import (
	"testing"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var collections = []models.Collection{
	{ID: 1, Slug: "ternos-formais", NamePT: "Ternos Formais", NameEN: "Formal Suits"},
	{ID: 2, Slug: "linho", NamePT: "Linho", NameEN: "Linen"},
}

var products = []models.Product{
	{ID: 10, Name: "Terno Clássico", NameEN: "Classic Suit", Price: 349900, Collection: "Formal Suits"},
	{ID: 11, Name: "Blazer de Linho", NameEN: "Linen Blazer", Price: 189900, Collection: "Linho"},
	{ID: 12, Name: "Smoking", NameEN: "Tuxedo", Price: 499900, Collection: "ternos formais"},
}

func TestResolveCollectionExactSlug(t *testing.T) {
	c := ResolveCollection("ternos-formais", collections)
	require.NotNil(t, c)
	assert.Equal(t, 1, c.ID)
}

func TestResolveCollectionCaseInsensitiveSlug(t *testing.T) {
	c := ResolveCollection("Ternos-Formais", collections)
	require.NotNil(t, c)
	assert.Equal(t, 1, c.ID)
}

func TestResolveCollectionByDisplayName(t *testing.T) {
	// No collection carries this slug; the hyphens-to-spaces form
	// matches the English display name instead.
	renamed := []models.Collection{
		{ID: 3, Slug: "old-slug", NamePT: "Ternos Formais", NameEN: "Formal Suits"},
	}

	c := ResolveCollection("formal-suits", renamed)
	require.NotNil(t, c)
	assert.Equal(t, 3, c.ID)

	c = ResolveCollection("ternos-formais", renamed)
	require.NotNil(t, c)
	assert.Equal(t, 3, c.ID)
}

func TestResolveCollectionMissReturnsNil(t *testing.T) {
	assert.Nil(t, ResolveCollection("nao-existe", collections))
}

func TestResolveProductsMatchesByEnglishName(t *testing.T) {
	c := ResolveCollection("ternos-formais", collections)
	require.NotNil(t, c)

	matched := ResolveProducts("ternos-formais", c, products)
	require.Len(t, matched, 2)
	assert.Equal(t, 10, matched[0].ID)
	assert.Equal(t, 12, matched[1].ID, "slug-with-spaces form also matches")
}

func TestResolveProductsMatchesByPortugueseName(t *testing.T) {
	c := ResolveCollection("linho", collections)
	require.NotNil(t, c)

	matched := ResolveProducts("linho", c, products)
	require.Len(t, matched, 1)
	assert.Equal(t, 11, matched[0].ID)
}

func TestResolveProductsFallbackWithoutCollection(t *testing.T) {
	// The collection row is gone but products still carry the old
	// free-text name; the slug-to-spaces fallback keeps them reachable.
	matched := ResolveProducts("formal-suits", nil, products)
	require.Len(t, matched, 1)
	assert.Equal(t, 10, matched[0].ID)
}

func TestResolveProductsEmptyResultIsNotNil(t *testing.T) {
	matched := ResolveProducts("nao-existe", nil, products)
	require.NotNil(t, matched)
	assert.Empty(t, matched)
}

func TestResolveProductsTrimsAndFoldsCase(t *testing.T) {
	messy := []models.Product{
		{ID: 20, Collection: "  FORMAL SUITS  "},
	}
	c := ResolveCollection("ternos-formais", collections)
	require.NotNil(t, c)

	matched := ResolveProducts("ternos-formais", c, messy)
	require.Len(t, matched, 1)
	assert.Equal(t, 20, matched[0].ID)
}
