// Package seed bundles the static farm and product data served when the live
// directory API and the farms collection are both unavailable. It keeps the
// UI from ever rendering an empty marketplace.
package seed

import "github.com/marlondridley/FarME/internal/domain"

// imageURL returns the bundled placeholder asset for an id.
func imageURL(id string) string {
	return "https://placehold.co/400x300?text=" + id
}

// Products is the bundled product catalog.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:          "heirloom-tomatoes",
			Name:        "Heirloom Tomatoes",
			FarmID:      "green-valley-greens",
			ImageURL:    imageURL("product-tomatoes"),
			Price:       4.99,
			Category:    "Vegetables",
			Description: "Juicy, flavorful heirloom tomatoes, perfect for salads and sauces. Variety of colors and sizes.",
		},
		{
			ID:          "green-lettuce",
			Name:        "Green Leaf Lettuce",
			FarmID:      "green-valley-greens",
			ImageURL:    imageURL("product-lettuce"),
			Price:       2.50,
			Category:    "Vegetables",
			Description: "Crisp and fresh green leaf lettuce, grown organically without pesticides.",
		},
		{
			ID:          "free-range-eggs",
			Name:        "Free-Range Eggs",
			FarmID:      "sunrise-eggs",
			ImageURL:    imageURL("product-eggs"),
			Price:       6.00,
			Category:    "Dairy & Eggs",
			Description: "A dozen of our finest free-range brown and white eggs.",
		},
		{
			ID:          "wildflower-honey",
			Name:        "Wildflower Honey",
			FarmID:      "honeybee-meadows",
			ImageURL:    imageURL("product-honey"),
			Price:       12.00,
			Category:    "Pantry",
			Description: "Pure, raw wildflower honey. Unfiltered and full of natural goodness.",
		},
		{
			ID:          "fresh-strawberries",
			Name:        "Fresh Strawberries",
			FarmID:      "riverside-market",
			ImageURL:    imageURL("product-strawberries"),
			Price:       5.50,
			Category:    "Fruits",
			Description: "Sweet and juicy strawberries, picked at the peak of ripeness.",
		},
		{
			ID:          "organic-zucchini",
			Name:        "Organic Zucchini",
			FarmID:      "riverside-market",
			ImageURL:    imageURL("product-zucchini"),
			Price:       3.00,
			Category:    "Vegetables",
			Description: "Versatile and delicious organic zucchini, great for grilling or baking.",
		},
	}
}

// Farms is the bundled static farm set.
func Farms() []domain.Farm {
	return []domain.Farm{
		{
			ID:   "green-valley-greens",
			Name: "Green Valley Greens",
			Bio:  "Specializing in organic leafy greens and heirloom vegetables.",
			Location: domain.Location{
				Address:  "123 Green Valley Rd, Organica, CA",
				Geopoint: domain.GeoPoint{Latitude: 34.0522, Longitude: -118.2437},
			},
			Products: []string{"heirloom-tomatoes", "green-lettuce"},
			Type:     domain.CategoryFarm,
			Rating:   4.8,
		},
		{
			ID:   "sunrise-eggs",
			Name: "Sunrise Eggs",
			Bio:  "The freshest free-range eggs, from happy chickens.",
			Location: domain.Location{
				Address:  "456 Chicken Run, Cluckington, CA",
				Geopoint: domain.GeoPoint{Latitude: 34.0522, Longitude: -118.2437},
			},
			Products: []string{"free-range-eggs"},
			Type:     domain.CategoryFarm,
			Rating:   4.9,
		},
		{
			ID:   "honeybee-meadows",
			Name: "Honeybee Meadows",
			Bio:  "Artisanal honey from local wildflowers. As pure as it gets.",
			Location: domain.Location{
				Address:  "789 Nectar Ln, Buzzville, CA",
				Geopoint: domain.GeoPoint{Latitude: 34.0522, Longitude: -118.2437},
			},
			Products: []string{"wildflower-honey"},
			Type:     domain.CategoryVendor,
			Rating:   4.7,
		},
		{
			ID:   "riverside-market",
			Name: "Riverside Community Market",
			Bio:  "A collective of local growers and artisans. Your one-stop shop for local goodness.",
			Location: domain.Location{
				Address:  "101 Market St, Riverside, CA",
				Geopoint: domain.GeoPoint{Latitude: 34.0522, Longitude: -118.2437},
			},
			Products: []string{"fresh-strawberries", "organic-zucchini"},
			Type:     domain.CategoryMarket,
			Rating:   4.6,
		},
	}
}

// Listings converts the static farms into explore listings, for use as the
// aggregation fallback.
func Listings() []domain.Listing {
	farms := Farms()
	listings := make([]domain.Listing, 0, len(farms))
	for _, f := range farms {
		listings = append(listings, domain.Listing{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Bio,
			Coordinates: f.Location.Geopoint,
			Address:     f.Location.Address,
			Category:    f.Type,
			Products:    f.Products,
			Rating:      f.Rating,
		})
	}
	return listings
}

// DetailProducts is the enriched product list attached to a farm detail view.
func DetailProducts() []string {
	return []string{
		"heirloom-tomatoes", "green-lettuce", "fresh-strawberries",
		"organic-zucchini", "free-range-eggs", "wildflower-honey",
	}
}
