package usda

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/marlondridley/FarME/internal/domain"
)

// defaultDescription fills in for sources that provide no description.
const defaultDescription = "A local market providing fresh produce from various vendors."

// RawRecord is one heterogeneous directory record. Field availability varies
// by directory; only the listing name is required downstream. The portal is
// inconsistent about numeric types (distance arrives as both string and
// number), so the flexible wrappers below absorb that.
type RawRecord struct {
	ID          FlexString `json:"listing_id"`
	Name        string     `json:"listing_name"`
	Description string     `json:"brief_desc"`
	Address     string     `json:"location_address"`
	Street      string     `json:"location_street"`
	City        string     `json:"location_city"`
	State       string     `json:"location_state"`
	Zip         string     `json:"location_zipcode"`
	Longitude   FlexFloat  `json:"location_x"`
	Latitude    FlexFloat  `json:"location_y"`
	Distance    FlexFloat  `json:"distance"`
}

// FlexFloat decodes a JSON number that may arrive as a number, a quoted
// number, null, or an empty string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Not a usable number; treat as absent rather than failing the record.
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// FlexString decodes a JSON value that may arrive as a string or a number.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	if string(data) == "null" {
		*s = ""
		return nil
	}
	*s = FlexString(data)
	return nil
}

// Normalize converts one raw directory record into a canonical Listing. The
// second return value is false when the record fails the minimal validity
// check (no usable name); such records are dropped, not surfaced as errors.
// index disambiguates synthesized ids when the source provides none.
func Normalize(rec RawRecord, dir domain.Directory, index int, defaultRating float64) (domain.Listing, bool) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return domain.Listing{}, false
	}

	id := strings.TrimSpace(string(rec.ID))
	if id == "" {
		id = slugify(name) + "-" + strconv.Itoa(index)
	}

	description := strings.TrimSpace(rec.Description)
	if description == "" {
		description = defaultDescription
	}

	return domain.Listing{
		ID:          id,
		Name:        name,
		Description: description,
		Coordinates: domain.GeoPoint{
			Latitude:  float64(rec.Latitude),
			Longitude: float64(rec.Longitude),
		},
		Address:  buildAddress(rec),
		Category: domain.CategoryFor(dir),
		Distance: float64(rec.Distance),
		Products: []string{},
		Rating:   defaultRating,
	}, true
}

// NormalizeAll normalizes a batch of records, silently dropping invalid ones.
func NormalizeAll(records []RawRecord, dir domain.Directory, defaultRating float64) []domain.Listing {
	listings := make([]domain.Listing, 0, len(records))
	for i, rec := range records {
		if listing, ok := Normalize(rec, dir, i, defaultRating); ok {
			listings = append(listings, listing)
		}
	}
	return listings
}

// buildAddress joins the available address sub-fields with ", ", omitting
// empty parts. A pre-joined address field wins when the source supplies one.
func buildAddress(rec RawRecord) string {
	if addr := strings.TrimSpace(rec.Address); addr != "" {
		return addr
	}

	parts := make([]string, 0, 4)
	for _, part := range []string{rec.Street, rec.City, rec.State, rec.Zip} {
		if p := strings.TrimSpace(part); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// slugify lowercases a name and replaces runs of non-alphanumerics with a
// single hyphen, for synthesized listing ids.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
