package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/marlondridley/FarME/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Degradation notices surfaced alongside the listing data, never in place
// of it.
const (
	noticeMissingKey = "Could not fetch live farm data. Showing featured farms instead. Ensure your USDA API key is set."
	noticeAllFailed  = "Could not fetch farm data. Please try again later. Showing featured farms instead."
	noticeBadZip     = "Could not determine a location for that zip code. Showing featured farms instead."
)

// ExploreConfig holds tunables for the explore pipeline.
type ExploreConfig struct {
	// Directories to fan out to. Defaults to every known directory.
	Directories []domain.Directory
	// DefaultRadiusMiles is used when the caller passes no radius.
	DefaultRadiusMiles float64
	// DirectoryTimeout bounds each directory call so one slow upstream
	// cannot stall the whole aggregation.
	DirectoryTimeout time.Duration
	// GuestLimit is how many listings an anonymous caller sees.
	GuestLimit int
	// GeocodeTTL is how long zip-to-coordinate results are cached.
	GeocodeTTL time.Duration
}

// ExploreService is the aggregation pipeline: it fans out one query per
// directory, normalizes and merges the results, and resolves a response for
// the caller. It is stateless per invocation and never caches listings.
type ExploreService struct {
	client       domain.DirectoryClient
	advisor      domain.Advisor
	cache        domain.CacheRepository
	assets       domain.AssetResolver
	placeholders domain.PlaceholderSource
	seeds        []domain.Listing
	config       ExploreConfig
}

// NewExploreService creates the explore pipeline. seeds is the bundled
// fallback listing set served when live aggregation is unavailable.
func NewExploreService(
	client domain.DirectoryClient,
	advisor domain.Advisor,
	cache domain.CacheRepository,
	assets domain.AssetResolver,
	placeholders domain.PlaceholderSource,
	seeds []domain.Listing,
	config ExploreConfig,
) *ExploreService {
	if len(config.Directories) == 0 {
		config.Directories = domain.AllDirectories
	}
	if config.DefaultRadiusMiles <= 0 {
		config.DefaultRadiusMiles = 50
	}
	if config.DirectoryTimeout <= 0 {
		config.DirectoryTimeout = 10 * time.Second
	}
	if config.GuestLimit <= 0 {
		config.GuestLimit = 3
	}
	if config.GeocodeTTL <= 0 {
		config.GeocodeTTL = 720 * time.Hour
	}

	return &ExploreService{
		client:       client,
		advisor:      advisor,
		cache:        cache,
		assets:       assets,
		placeholders: placeholders,
		seeds:        seeds,
		config:       config,
	}
}

// Explore aggregates listings around a center point. It never returns an
// error: upstream failures degrade to the fallback set, and anonymous
// callers get a truncated view.
func (s *ExploreService) Explore(ctx context.Context, center domain.GeoPoint, radiusMiles float64, authenticated bool) domain.ExploreResult {
	if radiusMiles <= 0 {
		radiusMiles = s.config.DefaultRadiusMiles
	}

	listings, failed, missingKey := s.aggregate(ctx, center, radiusMiles)

	// Live data counts as available when at least one directory answered.
	if len(failed) < len(s.config.Directories) {
		result := domain.ExploreResult{
			Listings:          listings,
			Source:            domain.SourceLive,
			FailedDirectories: failed,
		}
		return s.resolveForCaller(ctx, result, authenticated)
	}

	notice := noticeAllFailed
	if missingKey {
		notice = noticeMissingKey
	}
	return s.fallback(ctx, notice, authenticated)
}

// ExploreZip aggregates listings around a zip code, geocoding it through the
// advisor first. Geocode results are cached; listings are not.
func (s *ExploreService) ExploreZip(ctx context.Context, zipCode string, radiusMiles float64, authenticated bool) domain.ExploreResult {
	center, err := s.geocode(ctx, zipCode)
	if err != nil {
		log.Printf("[explore] geocode %q failed: %v", zipCode, err)
		return s.fallback(ctx, noticeBadZip, authenticated)
	}
	return s.Explore(ctx, *center, radiusMiles, authenticated)
}

// aggregate fans out one call per configured directory, waits for all of
// them, and merges the results. Partial failure is tolerated: failed
// directories are reported back by name while the successful subset is used.
func (s *ExploreService) aggregate(ctx context.Context, center domain.GeoPoint, radiusMiles float64) (listings []domain.Listing, failed []string, missingKey bool) {
	dirs := s.config.Directories
	results := make([][]domain.Listing, len(dirs))
	errs := make([]error, len(dirs))

	var g errgroup.Group
	for i, dir := range dirs {
		g.Go(func() error {
			dctx, cancel := context.WithTimeout(ctx, s.config.DirectoryTimeout)
			defer cancel()
			results[i], errs[i] = s.client.Search(dctx, dir, center, radiusMiles)
			return nil
		})
	}
	// The group never carries an error; it is the join barrier.
	g.Wait()

	for i, dir := range dirs {
		if errs[i] != nil {
			if errors.Is(errs[i], domain.ErrMissingAPIKey) {
				missingKey = true
			} else {
				log.Printf("[explore] directory %s failed: %v", dir, errs[i])
			}
			failed = append(failed, string(dir))
			continue
		}
		listings = append(listings, results[i]...)
	}

	listings = dedupe(listings)
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].Distance < listings[j].Distance
	})

	return listings, failed, missingKey
}

// dedupe collapses records sharing a listing id, keeping the most complete
// one. Ties go to the later record.
func dedupe(listings []domain.Listing) []domain.Listing {
	byID := make(map[string]int, len(listings))
	out := make([]domain.Listing, 0, len(listings))

	for _, listing := range listings {
		if at, seen := byID[listing.ID]; seen {
			if completeness(listing) >= completeness(out[at]) {
				out[at] = listing
			}
			continue
		}
		byID[listing.ID] = len(out)
		out = append(out, listing)
	}
	return out
}

// completeness scores how many meaningful fields a listing carries, so dedup
// can prefer the richer of two records describing the same place.
func completeness(l domain.Listing) int {
	score := 0
	if l.Name != "" {
		score++
	}
	if l.Description != "" {
		score++
	}
	if l.Address != "" {
		score++
	}
	if l.Coordinates.Latitude != 0 || l.Coordinates.Longitude != 0 {
		score++
	}
	if l.Distance > 0 {
		score++
	}
	if l.Rating > 0 {
		score++
	}
	return score
}

// fallback serves the bundled seed set with a degradation notice.
func (s *ExploreService) fallback(ctx context.Context, notice string, authenticated bool) domain.ExploreResult {
	listings := make([]domain.Listing, len(s.seeds))
	copy(listings, s.seeds)

	result := domain.ExploreResult{
		Listings: listings,
		Source:   domain.SourceFallback,
		Notice:   notice,
	}
	return s.resolveForCaller(ctx, result, authenticated)
}

// resolveForCaller applies the caller-dependent view: authenticated callers
// see everything; guests see a small teaser slice, with synthesized
// distances when the data is the static fallback.
func (s *ExploreService) resolveForCaller(ctx context.Context, result domain.ExploreResult, authenticated bool) domain.ExploreResult {
	if !authenticated {
		if len(result.Listings) > s.config.GuestLimit {
			result.Listings = result.Listings[:s.config.GuestLimit]
		}
		if result.Source == domain.SourceFallback {
			for i := range result.Listings {
				result.Listings[i].Distance = s.placeholders.GuestDistance()
			}
			sort.SliceStable(result.Listings, func(i, j int) bool {
				return result.Listings[i].Distance < result.Listings[j].Distance
			})
		}
	}

	s.decorate(ctx, result.Listings)
	return result
}

// decorate attaches display assets to the listings.
func (s *ExploreService) decorate(ctx context.Context, listings []domain.Listing) {
	for i := range listings {
		listings[i].LogoURL = s.assets.LogoURL(ctx, i)
		listings[i].HeroURL = s.assets.HeroURL(ctx, i)
	}
}

// geocode resolves a zip code through the cache, then the advisor.
func (s *ExploreService) geocode(ctx context.Context, zipCode string) (*domain.GeoPoint, error) {
	if zipCode == "" {
		return nil, domain.ErrInvalidRequest
	}

	key := "geocode:" + zipCode
	if cached, err := s.cache.Get(ctx, key); err == nil {
		if point, ok := cached.(domain.GeoPoint); ok {
			return &point, nil
		}
	}

	point, err := s.advisor.Geocode(ctx, zipCode)
	if err != nil {
		return nil, fmt.Errorf("geocoding %s: %w", zipCode, err)
	}

	if err := s.cache.Set(ctx, key, *point, s.config.GeocodeTTL); err != nil {
		log.Printf("[explore] caching geocode for %s failed: %v", zipCode, err)
	}
	return point, nil
}
