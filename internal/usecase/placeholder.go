package usecase

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/marlondridley/FarME/internal/domain"
)

// defaultListingRating stands in for listings whose source reports no
// rating. It is a product placeholder, not a computed score.
const defaultListingRating = 4.5

// Guest distances are synthesized inside this range (miles) to obscure
// precision for non-members.
const (
	guestDistanceMin  = 0.5
	guestDistanceSpan = 24.5
)

// Placeholders is the production domain.PlaceholderSource. Its randomness is
// injectable so tests can pin a seed.
type Placeholders struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

var _ domain.PlaceholderSource = (*Placeholders)(nil)

// NewPlaceholders creates a placeholder source. Passing a nil rand uses a
// time-seeded one.
func NewPlaceholders(rnd *rand.Rand) *Placeholders {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Placeholders{rnd: rnd}
}

// Rating returns the default listing rating.
func (p *Placeholders) Rating() float64 {
	return defaultListingRating
}

// GuestDistance synthesizes a plausible distance for a guest-visible
// fallback row, rounded to one decimal like the upstream API reports.
func (p *Placeholders) GuestDistance() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	d := guestDistanceMin + p.rnd.Float64()*guestDistanceSpan
	return math.Round(d*10) / 10
}
