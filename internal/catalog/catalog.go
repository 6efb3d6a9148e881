package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	errx "github.com/mealpick-core/server/internal/core/error"
	logx "github.com/mealpick-core/server/pkg/logger"
)

// MenuItem is a single dish on a venue's menu. Price is nil when the source
// data carries no numeric price; such items never pass a budget filter.
type MenuItem struct {
	Name         string `json:"name"`
	Price        *int   `json:"price"`
	DisplayPrice string `json:"price_krw,omitempty"`
}

// Venue is one restaurant record as loaded from the venue database.
// Duration fields are free text and are normalised on demand via ParseDuration.
type Venue struct {
	Name             string     `json:"name"`
	Description      string     `json:"desc"`
	Hours            string     `json:"hours"`
	ClosedDays       string     `json:"holidays"`
	Menu             []MenuItem `json:"menu"`
	DeliveryDuration string     `json:"delivery_duration"`
	DineInDuration   string     `json:"dine_in_duration"`
}

// Catalog is an immutable, ordered collection of venues. It is built once at
// process start and shared read-only across sessions, so no locking is needed.
type Catalog struct {
	venues []Venue
}

// New builds a catalog from the given records. The slice is copied so later
// mutation of the caller's slice cannot leak into the shared handle.
func New(venues []Venue) *Catalog {
	vs := make([]Venue, len(venues))
	copy(vs, venues)
	return &Catalog{venues: vs}
}

// Load reads a venue database from a JSON file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logx.Error().Err(err).Str("path", path).Msg("failed to read venue catalog")
		return nil, errx.WrapCatalog(err)
	}

	var venues []Venue
	if err := json.Unmarshal(raw, &venues); err != nil {
		logx.Error().Err(err).Str("path", path).Msg("failed to decode venue catalog")
		return nil, errx.WrapCatalog(fmt.Errorf("decode %s: %w", path, err))
	}

	logx.Info().Str("path", path).Int("venues", len(venues)).Msg("venue catalog loaded")
	return New(venues), nil
}

// Len returns the number of venues.
func (c *Catalog) Len() int {
	return len(c.venues)
}

// Venue returns the venue at position i in original catalog order.
func (c *Catalog) Venue(i int) Venue {
	return c.venues[i]
}

// Venues returns a copy of all venues in original order.
func (c *Catalog) Venues() []Venue {
	vs := make([]Venue, len(c.venues))
	copy(vs, c.venues)
	return vs
}

// FindByName returns the first venue whose name contains the given text,
// case-insensitively. The second return value is false when nothing matches.
func (c *Catalog) FindByName(name string) (Venue, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Venue{}, false
	}
	for _, v := range c.venues {
		if strings.Contains(strings.ToLower(v.Name), needle) {
			return v, true
		}
	}
	return Venue{}, false
}
