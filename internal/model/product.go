package model

import (
	"encoding/json"
	"strings"
	"time"
)

// CategoryOther is the reserved sentinel a client sends when none of the
// fixed categories fit. It is never persisted: a draft using it must carry
// a custom label, and the label becomes the stored category.
const CategoryOther = "otro"

// Product represents a catalogue entry as served to the storefront.
type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"shortDescription"`
	Price            float64   `json:"price"`
	OriginalPrice    float64   `json:"originalPrice,omitempty"`
	Category         string    `json:"category"`
	Subcategory      string    `json:"subcategory,omitempty"`
	Images           []string  `json:"images"`
	ThumbnailImage   string    `json:"thumbnailImage,omitempty"`
	PreparationTime  string    `json:"preparationTime,omitempty"`
	Serves           string    `json:"serves,omitempty"`
	Customizations   []string  `json:"customizations,omitempty"`
	Allergens        []string  `json:"allergens,omitempty"`
	DietaryOptions   []string  `json:"dietaryOptions,omitempty"`
	Ingredients      []string  `json:"ingredients,omitempty"`
	Tags             []string  `json:"tags,omitempty"`
	Featured         bool      `json:"featured"`
	Available        bool      `json:"available"`
	Seasonal         bool      `json:"seasonal"`
	PopularityScore  float64   `json:"popularityScore"`
	Rating           float64   `json:"rating"`
	ReviewsCount     int       `json:"reviewsCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	SEO              *SEO      `json:"seo,omitempty"`
}

// SEO holds the search-engine metadata sub-record of a product.
type SEO struct {
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

// ProductDraft is the client-supplied payload for creating a product.
// The gateway assigns the id and both timestamps.
type ProductDraft struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Price            float64  `json:"price"`
	OriginalPrice    float64  `json:"originalPrice,omitempty"`
	Category         string   `json:"category"`
	CustomCategory   string   `json:"customCategory,omitempty"`
	Subcategory      string   `json:"subcategory,omitempty"`
	Images           []string `json:"images,omitempty"`
	ThumbnailImage   string   `json:"thumbnailImage,omitempty"`
	PreparationTime  string   `json:"preparationTime,omitempty"`
	Serves           string   `json:"serves,omitempty"`
	Customizations   []string `json:"customizations,omitempty"`
	Allergens        []string `json:"allergens,omitempty"`
	DietaryOptions   []string `json:"dietaryOptions,omitempty"`
	Ingredients      []string `json:"ingredients,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Featured         bool     `json:"featured"`
	Available        bool     `json:"available"`
	Seasonal         bool     `json:"seasonal"`
	PopularityScore  float64  `json:"popularityScore,omitempty"`
	Rating           float64  `json:"rating,omitempty"`
	ReviewsCount     int      `json:"reviewsCount,omitempty"`
	SEO              *SEO     `json:"seo,omitempty"`
}

// ProductPatch is a partial update: only the keys present are applied.
type ProductPatch map[string]interface{}

// Stats is a snapshot of aggregate counts over the resident product list.
type Stats struct {
	Total      int            `json:"total"`
	Featured   int            `json:"featured"`
	Available  int            `json:"available"`
	Categories map[string]int `json:"categories"`
}

// Validate checks the draft invariants before any gateway call: name,
// description, short description and a positive price are mandatory, at
// least one image must be present, and the "otro" category needs a label.
func (d *ProductDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(d.Description) == "" {
		return ErrMissingDescription
	}
	if strings.TrimSpace(d.ShortDescription) == "" {
		return ErrMissingShortDescription
	}
	if d.Price <= 0 {
		return ErrInvalidPrice
	}
	if len(d.Images) == 0 && strings.TrimSpace(d.ThumbnailImage) == "" {
		return ErrMissingImage
	}
	if d.Category == CategoryOther && strings.TrimSpace(d.CustomCategory) == "" {
		return ErrMissingCustomCategory
	}
	return nil
}

// Normalize resolves the stored category: the "otro" sentinel is replaced
// by the trimmed custom label, which is then cleared from the draft.
func (d *ProductDraft) Normalize() {
	if d.Category == CategoryOther {
		d.Category = strings.TrimSpace(d.CustomCategory)
	}
	d.CustomCategory = ""
	d.Name = strings.TrimSpace(d.Name)
}

// Document converts the draft to the map form sent to the gateway, with
// every null-valued key stripped at any depth. The remote store rejects
// nulls inside documents, so they must never reach it.
func (d *ProductDraft) Document() (map[string]interface{}, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	delete(doc, "customCategory")
	return StripNulls(doc), nil
}

// Validate checks only the keys present in the patch. An absent key is
// left untouched by the update; a present key must satisfy the same
// invariants a full draft does.
func (p ProductPatch) Validate() error {
	if v, ok := p["name"]; ok {
		s, _ := v.(string)
		if strings.TrimSpace(s) == "" {
			return ErrMissingName
		}
	}
	if v, ok := p["description"]; ok {
		s, _ := v.(string)
		if strings.TrimSpace(s) == "" {
			return ErrMissingDescription
		}
	}
	if v, ok := p["price"]; ok {
		f, isNum := toFloat(v)
		if !isNum || f <= 0 {
			return ErrInvalidPrice
		}
	}
	if v, ok := p["images"]; ok {
		imgs, _ := v.([]interface{})
		if len(imgs) == 0 {
			return ErrMissingImage
		}
	}
	if v, ok := p["category"]; ok {
		if s, _ := v.(string); s == CategoryOther {
			label, _ := p["customCategory"].(string)
			if strings.TrimSpace(label) == "" {
				return ErrMissingCustomCategory
			}
		}
	}
	return nil
}

// Normalize applies the same category substitution as a full draft and
// strips null-valued keys so the patch is safe to send. Identity and
// creation-time keys are discarded: the gateway owns both.
func (p ProductPatch) Normalize() ProductPatch {
	out := StripNulls(map[string]interface{}(p))
	if v, ok := out["category"]; ok {
		if s, _ := v.(string); s == CategoryOther {
			if label, _ := out["customCategory"].(string); strings.TrimSpace(label) != "" {
				out["category"] = strings.TrimSpace(label)
			}
		}
	}
	delete(out, "customCategory")
	delete(out, "id")
	delete(out, "createdAt")
	delete(out, "updatedAt")
	return out
}

// StripNulls returns a copy of doc with every nil-valued key removed,
// recursing into nested maps and slices.
func StripNulls(doc map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		if cleaned, keep := stripValue(v); keep {
			out[k] = cleaned
		}
	}
	return out
}

func stripValue(v interface{}) (interface{}, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case map[string]interface{}:
		return StripNulls(t), true
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, item := range t {
			if cleaned, keep := stripValue(item); keep {
				out = append(out, cleaned)
			}
		}
		return out, true
	default:
		return v, true
	}
}

// ComputeStats recalculates aggregate counts over the given list.
func ComputeStats(products []Product) Stats {
	stats := Stats{
		Total:      len(products),
		Categories: make(map[string]int),
	}
	for _, p := range products {
		if p.Featured {
			stats.Featured++
		}
		if p.Available {
			stats.Available++
		}
		stats.Categories[p.Category]++
	}
	return stats
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
