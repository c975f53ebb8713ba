// Package fallback bundles a static snapshot of the catalogue used when
// the remote gateway is unreachable or empty. The storefront must always
// have something to show a purchasing customer, so every read operation
// in the sync engine has a local answer here.
package fallback

import (
	"sort"
	"strings"

	"cucinanostrard/internal/model"
)

// Catalog returns a copy of the bundled product snapshot. Callers may
// mutate the returned slice freely.
func Catalog() []model.Product {
	out := make([]model.Product, len(catalog))
	copy(out, catalog)
	return out
}

// ByCategory returns the bundled products in the given category.
func ByCategory(category string) []model.Product {
	return filter(func(p model.Product) bool {
		return p.Category == category
	})
}

// Featured returns the bundled products flagged as featured.
func Featured() []model.Product {
	return filter(func(p model.Product) bool {
		return p.Featured
	})
}

// FeaturedAvailable returns featured products that are also available,
// ordered by popularity descending and capped at limit. This mirrors the
// remote featured query so a fallback response is shaped identically.
func FeaturedAvailable(limit int) []model.Product {
	featured := filter(func(p model.Product) bool {
		return p.Featured && p.Available
	})
	sort.SliceStable(featured, func(i, j int) bool {
		return featured[i].PopularityScore > featured[j].PopularityScore
	})
	if limit > 0 && len(featured) > limit {
		featured = featured[:limit]
	}
	return featured
}

// Available returns the bundled products currently available.
func Available() []model.Product {
	return filter(func(p model.Product) bool {
		return p.Available
	})
}

// Seasonal returns the bundled seasonal products.
func Seasonal() []model.Product {
	return filter(func(p model.Product) bool {
		return p.Seasonal
	})
}

// ByID returns the bundled product with the given id, or nil.
func ByID(id string) *model.Product {
	for i := range catalog {
		if catalog[i].ID == id {
			p := catalog[i]
			return &p
		}
	}
	return nil
}

// ByPriceRange returns bundled products with price within [min, max].
func ByPriceRange(min, max float64) []model.Product {
	return filter(func(p model.Product) bool {
		return p.Price >= min && p.Price <= max
	})
}

// WithoutAllergen returns bundled products that do NOT list the allergen.
func WithoutAllergen(allergen string) []model.Product {
	return filter(func(p model.Product) bool {
		for _, a := range p.Allergens {
			if strings.EqualFold(a, allergen) {
				return false
			}
		}
		return true
	})
}

// ByDietaryOption returns bundled products matching a dietary option
// (case-insensitive substring).
func ByDietaryOption(option string) []model.Product {
	lower := strings.ToLower(option)
	return filter(func(p model.Product) bool {
		for _, opt := range p.DietaryOptions {
			if strings.Contains(strings.ToLower(opt), lower) {
				return true
			}
		}
		return false
	})
}

// Search runs a case-insensitive substring match over name, description,
// tags and category, the same fields the remote search covers.
func Search(term string) []model.Product {
	lower := strings.ToLower(term)
	return filter(func(p model.Product) bool {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.Description), lower) ||
			strings.Contains(strings.ToLower(p.Category), lower) {
			return true
		}
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), lower) {
				return true
			}
		}
		return false
	})
}

// TopRated returns the bundled products ordered by rating descending,
// capped at limit.
func TopRated(limit int) []model.Product {
	out := Catalog()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MostPopular returns the bundled products ordered by popularity score
// descending, capped at limit.
func MostPopular(limit int) []model.Product {
	out := Catalog()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PopularityScore > out[j].PopularityScore
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func filter(keep func(model.Product) bool) []model.Product {
	out := make([]model.Product, 0, len(catalog))
	for _, p := range catalog {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
