package domain

import (
	"context"
	"time"
)

// DirectoryClient queries one external listing directory and returns
// normalized listings. An empty slice with a nil error is a legitimate empty
// result; transport and HTTP failures come back as errors wrapping
// ErrDirectoryUnavailable (or ErrMissingAPIKey before any network call).
type DirectoryClient interface {
	Search(ctx context.Context, dir Directory, center GeoPoint, radiusMiles float64) ([]Listing, error)
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// FarmRepository persists Farm documents. One farm per owning farmer.
type FarmRepository interface {
	GetByID(ctx context.Context, id string) (*Farm, error)
	List(ctx context.Context) ([]Farm, error)
	// Save merges the given fields into the stored document: fields absent
	// from the update are preserved, not cleared.
	Save(ctx context.Context, id string, fields map[string]interface{}) error
}

// UserRepository persists account documents. Role resolution is pull-based:
// callers query the current role per request rather than subscribing to
// document updates.
type UserRepository interface {
	Create(ctx context.Context, user *User, token string) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByToken(ctx context.Context, token string) (*User, error)
}

// OrderRepository persists orders.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByFarm(ctx context.Context, farmID string) ([]Order, error)
}

// NotificationPublisher delivers order notifications to farmers. Publishing
// is best-effort; order placement does not depend on it.
type NotificationPublisher interface {
	PublishOrderNotification(ctx context.Context, farmID, orderID, message string) error
}

// AssetResolver attaches display image URLs to listings and farms. Index
// selects one of a small rotating set of assets.
type AssetResolver interface {
	LogoURL(ctx context.Context, index int) string
	HeroURL(ctx context.Context, index int) string
	ProductURL(ctx context.Context, productID string) string
}

// PlaceholderSource supplies stand-in values where upstream data provides
// none. Implementations with randomness must be swappable for deterministic
// fixtures in tests.
type PlaceholderSource interface {
	// Rating is the default rating assigned to listings whose source reports none.
	Rating() float64
	// GuestDistance synthesizes a distance for guest-visible fallback rows.
	GuestDistance() float64
}
