package catalog

import (
	"strings"

	"atelier/internal/models"
)

// ResolveCollection maps a URL slug onto a collection record. Products
// reference collections by display name rather than ID, and slugs drift
// in casing and hyphenation through the admin editing flow, so matching
// runs in three tiers and stops at the first hit:
//
//  1. exact slug equality
//  2. case-insensitive slug equality
//  3. slug with hyphens as spaces against either localized display name
//
// A nil result is not an error; products may still match by name.
func ResolveCollection(slug string, collections []models.Collection) *models.Collection {
	for i := range collections {
		if collections[i].Slug == slug {
			return &collections[i]
		}
	}

	for i := range collections {
		if strings.EqualFold(collections[i].Slug, slug) {
			return &collections[i]
		}
	}

	slugSpace := strings.ToLower(strings.ReplaceAll(slug, "-", " "))
	for i := range collections {
		if strings.ToLower(collections[i].NamePT) == slugSpace ||
			strings.ToLower(collections[i].NameEN) == slugSpace {
			return &collections[i]
		}
	}

	return nil
}

// ResolveProducts filters products for a slug. With a resolved
// collection, a product matches when its free-text collection field
// equals the collection's English name, its Portuguese name, or the
// slug-with-spaces form (all trimmed and case-folded). Without one, the
// slug-with-spaces form is matched directly. Always returns a non-nil
// slice; an empty result is a displayable state, not an error.
func ResolveProducts(slug string, collection *models.Collection, products []models.Product) []models.Product {
	slugName := strings.TrimSpace(strings.ToLower(strings.ReplaceAll(slug, "-", " ")))
	matched := []models.Product{}

	if collection == nil {
		for _, p := range products {
			if strings.ToLower(p.Collection) == slugName {
				matched = append(matched, p)
			}
		}
		return matched
	}

	nameEN := strings.TrimSpace(strings.ToLower(collection.NameEN))
	namePT := strings.TrimSpace(strings.ToLower(collection.NamePT))

	for _, p := range products {
		name := strings.TrimSpace(strings.ToLower(p.Collection))
		if name == nameEN || name == namePT || name == slugName {
			matched = append(matched, p)
		}
	}
	return matched
}
