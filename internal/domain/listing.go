package domain

// GeoPoint is a latitude/longitude pair in floating point degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Category classifies a listing by the kind of operation it is.
type Category string

const (
	CategoryFarm   Category = "farm"
	CategoryMarket Category = "market"
	CategoryVendor Category = "vendor"
)

// Directory identifies one external listing source in the USDA local food portal.
type Directory string

const (
	DirectoryFarmersMarket Directory = "farmersmarket"
	DirectoryCSA           Directory = "csa"
	DirectoryOnFarmMarket  Directory = "onfarmmarket"
	DirectoryFoodHub       Directory = "foodhub"
	DirectoryAgritourism   Directory = "agritourism"
)

// AllDirectories lists every directory the aggregator queries by default.
var AllDirectories = []Directory{
	DirectoryFarmersMarket,
	DirectoryCSA,
	DirectoryOnFarmMarket,
	DirectoryFoodHub,
	DirectoryAgritourism,
}

// CategoryFor maps a source directory to a listing category. The mapping is
// total: unknown directories fall through to vendor.
func CategoryFor(dir Directory) Category {
	switch dir {
	case DirectoryFarmersMarket:
		return CategoryMarket
	case DirectoryCSA, DirectoryOnFarmMarket:
		return CategoryFarm
	default:
		return CategoryVendor
	}
}

// Listing is the canonical, session-scoped representation of a farm, market
// or vendor surfaced by the explore pipeline. Listings are built fresh per
// aggregation call and never persisted.
type Listing struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Coordinates GeoPoint `json:"coordinates"`
	Address     string   `json:"address"`
	Category    Category `json:"category"`
	// Distance is the source-reported distance from the query point. It is a
	// ranking key only; sources are not unit-normalized against each other.
	Distance float64  `json:"distance"`
	Products []string `json:"products"`
	Rating   float64  `json:"rating"`
	LogoURL  string   `json:"logoUrl,omitempty"`
	HeroURL  string   `json:"heroUrl,omitempty"`
}

// Explore result sources.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// ExploreResult is what the explore pipeline hands back to the caller. It is
// always populated: upstream failures surface through Source, Notice and
// FailedDirectories, never as an error.
type ExploreResult struct {
	Listings []Listing `json:"listings"`
	// Source is "live" when listings came from the directory API, "fallback"
	// when the bundled seed data was substituted.
	Source string `json:"source"`
	// FailedDirectories names the directories that errored while the rest of
	// the aggregation proceeded.
	FailedDirectories []string `json:"failedDirectories,omitempty"`
	// Notice carries a human-readable degradation message, independent of the
	// listing data itself.
	Notice string `json:"notice,omitempty"`
}
