package fallback

import (
	"time"

	"cucinanostrard/internal/model"
)

// catalog is the bundled snapshot. Entries are never mutated in place;
// accessors hand out copies.
var catalog = []model.Product{
	{
		ID:               "tarta-chocolate-premium",
		Name:             "Tarta de Chocolate Premium",
		Description:      "Exquisita tarta de chocolate belga con capas de ganache sedoso, crema de vainilla Madagascar y decoración de frutos rojos frescos.",
		ShortDescription: "Tarta de chocolate belga con ganache y frutos rojos",
		Price:            45.00,
		OriginalPrice:    50.00,
		Category:         "tartas",
		Subcategory:      "chocolate",
		Images:           []string{"/images/tarta-chocolate-1.jpg", "/images/tarta-chocolate-2.jpg"},
		ThumbnailImage:   "/images/tarta-chocolate-thumb.jpg",
		PreparationTime:  "2-3 días",
		Serves:           "8-10 personas",
		Customizations:   []string{"Mensaje personalizado", "Decoración temática"},
		Allergens:        []string{"gluten", "huevo", "lácteos"},
		DietaryOptions:   []string{},
		Ingredients:      []string{"chocolate belga", "mantequilla", "huevos", "vainilla Madagascar"},
		Tags:             []string{"chocolate", "premium", "celebración"},
		Featured:         true,
		Available:        true,
		Seasonal:         false,
		PopularityScore:  95,
		Rating:           4.9,
		ReviewsCount:     127,
		CreatedAt:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		UpdatedAt:        time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		SEO: &model.SEO{
			MetaTitle:       "Tarta de Chocolate Premium - Cucinanostrard",
			MetaDescription: "Tarta de chocolate belga artesanal con ganache y frutos rojos.",
			Keywords:        []string{"tarta chocolate", "chocolate belga", "tarta artesanal"},
		},
	},
	{
		ID:               "macarons-franceses-clasicos",
		Name:             "Macarons Franceses Clásicos",
		Description:      "Caja de auténticos macarons franceses en seis sabores: vainilla, chocolate, frambuesa, pistacho, limón y caramelo salado.",
		ShortDescription: "Caja de macarons franceses en seis sabores",
		Price:            24.00,
		Category:         "macarons",
		Images:           []string{"/images/macarons-1.jpg"},
		ThumbnailImage:   "/images/macarons-thumb.jpg",
		PreparationTime:  "1-2 días",
		Serves:           "6 unidades",
		Customizations:   []string{"Selección de sabores", "Caja de regalo"},
		Allergens:        []string{"huevo", "frutos secos", "lácteos"},
		DietaryOptions:   []string{"sin gluten"},
		Ingredients:      []string{"almendra", "azúcar glas", "claras de huevo"},
		Tags:             []string{"macarons", "francés", "regalo"},
		Featured:         true,
		Available:        true,
		Seasonal:         false,
		PopularityScore:  88,
		Rating:           4.8,
		ReviewsCount:     94,
		CreatedAt:        time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		UpdatedAt:        time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		SEO: &model.SEO{
			MetaTitle:       "Macarons Franceses Clásicos - Cucinanostrard",
			MetaDescription: "Auténticos macarons franceses artesanales en seis sabores.",
			Keywords:        []string{"macarons", "macarons franceses", "sin gluten"},
		},
	},
	{
		ID:               "cupcakes-tematicos",
		Name:             "Cupcakes Temáticos",
		Description:      "Media docena de cupcakes decorados a mano para cumpleaños, baby showers y celebraciones, con bizcocho de vainilla o chocolate.",
		ShortDescription: "Cupcakes decorados a mano para celebraciones",
		Price:            18.00,
		Category:         "cupcakes",
		Images:           []string{"/images/cupcakes-1.jpg", "/images/cupcakes-2.jpg"},
		ThumbnailImage:   "/images/cupcakes-thumb.jpg",
		PreparationTime:  "1-2 días",
		Serves:           "6 unidades",
		Customizations:   []string{"Tema personalizado", "Toppers"},
		Allergens:        []string{"gluten", "huevo", "lácteos"},
		DietaryOptions:   []string{"opción vegana disponible"},
		Ingredients:      []string{"harina", "mantequilla", "vainilla", "cacao"},
		Tags:             []string{"cupcakes", "cumpleaños", "personalizado"},
		Featured:         true,
		Available:        true,
		Seasonal:         false,
		PopularityScore:  82,
		Rating:           4.7,
		ReviewsCount:     68,
		CreatedAt:        time.Date(2024, 2, 18, 0, 0, 0, 0, time.UTC),
		UpdatedAt:        time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		SEO: &model.SEO{
			MetaTitle:       "Cupcakes Temáticos - Cucinanostrard",
			MetaDescription: "Cupcakes personalizados decorados a mano para toda ocasión.",
			Keywords:        []string{"cupcakes", "cupcakes personalizados"},
		},
	},
	{
		ID:               "galletas-decoradas-artesanales",
		Name:             "Galletas Decoradas Artesanales",
		Description:      "Galletas de mantequilla decoradas con glasa real, diseños únicos pintados a mano para eventos y detalles corporativos.",
		ShortDescription: "Galletas de mantequilla con glasa real",
		Price:            15.00,
		Category:         "galletas",
		Images:           []string{"/images/galletas-1.jpg"},
		ThumbnailImage:   "/images/galletas-thumb.jpg",
		PreparationTime:  "2-3 días",
		Serves:           "12 unidades",
		Customizations:   []string{"Diseño personalizado", "Empaque individual"},
		Allergens:        []string{"gluten", "huevo", "lácteos"},
		DietaryOptions:   []string{},
		Ingredients:      []string{"harina", "mantequilla", "azúcar", "glasa real"},
		Tags:             []string{"galletas", "eventos", "corporativo"},
		Featured:         false,
		Available:        true,
		Seasonal:         false,
		PopularityScore:  71,
		Rating:           4.6,
		ReviewsCount:     41,
		CreatedAt:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		UpdatedAt:        time.Date(2024, 5, 28, 0, 0, 0, 0, time.UTC),
		SEO: &model.SEO{
			MetaTitle:       "Galletas Decoradas Artesanales - Cucinanostrard",
			MetaDescription: "Galletas artesanales decoradas con glasa real y diseños únicos.",
			Keywords:        []string{"galletas decoradas", "galletas artesanales"},
		},
	},
	{
		ID:               "tiramisu-artesanal",
		Name:             "Tiramisú Artesanal",
		Description:      "Postre italiano clásico con capas de bizcocho empapado en café espresso, crema de mascarpone y cacao amargo espolvoreado.",
		ShortDescription: "Tiramisú clásico con mascarpone y espresso",
		Price:            28.00,
		Category:         "postres-especiales",
		Images:           []string{"/images/tiramisu-1.jpg"},
		ThumbnailImage:   "/images/tiramisu-thumb.jpg",
		PreparationTime:  "1 día",
		Serves:           "6-8 personas",
		Customizations:   []string{"Sin alcohol", "Porciones individuales"},
		Allergens:        []string{"gluten", "huevo", "lácteos"},
		DietaryOptions:   []string{},
		Ingredients:      []string{"mascarpone", "café espresso", "bizcochos de soletilla", "cacao"},
		Tags:             []string{"tiramisú", "italiano", "café"},
		Featured:         true,
		Available:        true,
		Seasonal:         false,
		PopularityScore:  79,
		Rating:           4.8,
		ReviewsCount:     53,
		CreatedAt:        time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC),
		UpdatedAt:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		SEO: &model.SEO{
			MetaTitle:       "Tiramisú Artesanal - Cucinanostrard",
			MetaDescription: "Tiramisú italiano clásico elaborado con mascarpone y espresso.",
			Keywords:        []string{"tiramisú", "postre italiano"},
		},
	},
	{
		ID:               "red-velvet-temporada",
		Name:             "Red Velvet de Temporada",
		Description:      "Clásica tarta Red Velvet con bizcocho aterciopelado, cream cheese frosting y decoración de temporada.",
		ShortDescription: "Tarta Red Velvet con cream cheese frosting",
		Price:            42.00,
		Category:         "temporada",
		Images:           []string{"/images/red-velvet-1.jpg"},
		ThumbnailImage:   "/images/red-velvet-thumb.jpg",
		PreparationTime:  "2-3 días",
		Serves:           "8-10 personas",
		Customizations:   []string{"Decoración estacional"},
		Allergens:        []string{"gluten", "huevo", "lácteos"},
		DietaryOptions:   []string{},
		Ingredients:      []string{"harina", "cacao", "queso crema", "mantequilla"},
		Tags:             []string{"red velvet", "temporada", "celebración"},
		Featured:         false,
		Available:        true,
		Seasonal:         true,
		PopularityScore:  74,
		Rating:           4.7,
		ReviewsCount:     36,
		CreatedAt:        time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
		UpdatedAt:        time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		SEO: &model.SEO{
			MetaTitle:       "Red Velvet de Temporada - Cucinanostrard",
			MetaDescription: "Clásica tarta Red Velvet con decoración de temporada.",
			Keywords:        []string{"red velvet", "tarta temporada"},
		},
	},
}
