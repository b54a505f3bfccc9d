package filter

import (
	"fmt"

	"github.com/kailas-cloud/workermatch/internal/domain"
	"github.com/kailas-cloud/workermatch/internal/domain/geo"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

// Filter limits.
const (
	MaxRating     = 5.0
	MinDistanceKm = 1.0
	MaxDistanceKm = 200.0
)

// Filters restricts the candidate set of a search. The zero value matches everything.
type Filters struct {
	minRating     *float64
	profession    *worker.Profession
	geoCenter     *geo.Point
	maxDistanceKm *float64
}

// New validates and creates Filters.
// maxDistanceKm requires geoCenter; geoCenter alone only enables proximity scoring.
func New(
	minRating *float64,
	profession *worker.Profession,
	geoCenter *geo.Point,
	maxDistanceKm *float64,
) (Filters, error) {
	if minRating != nil && (*minRating < 0 || *minRating > MaxRating) {
		return Filters{}, fmt.Errorf("%w: min_rating must be between 0 and %.0f", domain.ErrValidation, MaxRating)
	}
	if profession != nil && !profession.IsValid() {
		return Filters{}, fmt.Errorf("%w: unknown profession %q", domain.ErrValidation, *profession)
	}
	if geoCenter != nil && !geo.ValidateCoordinates(geoCenter.Lat, geoCenter.Lng) {
		return Filters{}, fmt.Errorf("%w: latitude must be in [-90,90] and longitude in [-180,180]", domain.ErrValidation)
	}
	if maxDistanceKm != nil {
		if geoCenter == nil {
			return Filters{}, fmt.Errorf("%w: max_distance_km requires latitude and longitude", domain.ErrValidation)
		}
		if *maxDistanceKm < MinDistanceKm || *maxDistanceKm > MaxDistanceKm {
			return Filters{}, fmt.Errorf(
				"%w: max_distance_km must be between %.0f and %.0f", domain.ErrValidation, MinDistanceKm, MaxDistanceKm,
			)
		}
	}
	return Filters{
		minRating:     minRating,
		profession:    profession,
		geoCenter:     geoCenter,
		maxDistanceKm: maxDistanceKm,
	}, nil
}

// MinRating returns the minimum rating, or nil.
func (f Filters) MinRating() *float64 { return f.minRating }

// Profession returns the requested profession, or nil.
func (f Filters) Profession() *worker.Profession { return f.profession }

// GeoCenter returns the query location, or nil.
func (f Filters) GeoCenter() *geo.Point { return f.geoCenter }

// MaxDistanceKm returns the distance cut-off, or nil.
func (f Filters) MaxDistanceKm() *float64 { return f.maxDistanceKm }

// IsEmpty reports whether no filter is set.
func (f Filters) IsEmpty() bool {
	return f.minRating == nil && f.profession == nil && f.geoCenter == nil && f.maxDistanceKm == nil
}

// Matches reports whether p passes every configured constraint.
// Workers without a location never pass a distance constraint.
func (f Filters) Matches(p *worker.Profile) bool {
	if f.minRating != nil && p.Rating < *f.minRating {
		return false
	}
	if f.profession != nil && p.Profession != *f.profession {
		return false
	}
	if f.geoCenter != nil && f.maxDistanceKm != nil {
		d, ok := p.DistanceKm(*f.geoCenter)
		if !ok || d > *f.maxDistanceKm {
			return false
		}
	}
	return true
}

// Map renders the filters for the search log.
func (f Filters) Map() map[string]any {
	m := make(map[string]any)
	if f.minRating != nil {
		m["min_rating"] = *f.minRating
	}
	if f.profession != nil {
		m["profession"] = string(*f.profession)
	}
	if f.geoCenter != nil {
		m["latitude"] = f.geoCenter.Lat
		m["longitude"] = f.geoCenter.Lng
	}
	if f.maxDistanceKm != nil {
		m["max_distance_km"] = *f.maxDistanceKm
	}
	return m
}

// ParseGeoCenter builds a geo center from optional coordinates.
// Both or neither must be set.
func ParseGeoCenter(lat, lng *float64) (*geo.Point, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, fmt.Errorf("%w: latitude and longitude must be provided together", domain.ErrValidation)
	}
	p, err := geo.NewPoint(*lat, *lng)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid geo center: %w", domain.ErrValidation, err)
	}
	return &p, nil
}
