package domain

// Location is a farm's physical location.
type Location struct {
	Geopoint GeoPoint `json:"geopoint"`
	Address  string   `json:"address"`
}

// Farm is the persisted, owner-managed business profile. It is distinct from
// the transient Listing: a Farm is long lived, keyed by its owning farmer,
// and mutated only through profile saves.
type Farm struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Bio      string   `json:"bio"`
	Location Location `json:"location"`
	Products []string `json:"products"`
	Type     Category `json:"type"`
	Rating   float64  `json:"rating"`
	Distance float64  `json:"distance,omitempty"`
	LogoURL  string   `json:"logoUrl,omitempty"`
	HeroURL  string   `json:"heroUrl,omitempty"`
}

// ProfileUpdate is the subset of Farm fields a farmer edits on the profile
// form. Saves are merge-on-write: fields absent from the update are preserved
// on the stored document.
type ProfileUpdate struct {
	Name    string `json:"name" binding:"required"`
	Bio     string `json:"bio" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// Product is one catalog entry sold by a farm.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	FarmID      string  `json:"farmId"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}
