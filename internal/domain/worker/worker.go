package worker

import (
	"strings"
	"time"

	"github.com/kailas-cloud/workermatch/internal/domain/geo"
)

// Profession is the trade a worker offers.
type Profession string

// Profession constants.
const (
	Plumber     Profession = "PLUMBER"
	Electrician Profession = "ELECTRICIAN"
	Mason       Profession = "MASON"
	Painter     Profession = "PAINTER"
	Carpenter   Profession = "CARPENTER"
	Gardener    Profession = "GARDENER"
	Mechanic    Profession = "MECHANIC"
	Other       Profession = "OTHER"
)

var professionLabels = map[Profession]string{
	Plumber:     "Plumber",
	Electrician: "Electrician",
	Mason:       "Mason",
	Painter:     "Painter",
	Carpenter:   "Carpenter",
	Gardener:    "Gardener",
	Mechanic:    "Mechanic",
	Other:       "Other",
}

// ParseProfession normalizes case and validates p.
func ParseProfession(p string) (Profession, bool) {
	prof := Profession(strings.ToUpper(strings.TrimSpace(p)))
	return prof, prof.IsValid()
}

// IsValid checks if the profession is one of the supported values.
func (p Profession) IsValid() bool {
	_, ok := professionLabels[p]
	return ok
}

// Label returns the human-readable profession name.
func (p Profession) Label() string {
	if l, ok := professionLabels[p]; ok {
		return l
	}
	return string(p)
}

// Professions lists all supported professions in declaration order.
func Professions() []Profession {
	return []Profession{Plumber, Electrician, Mason, Painter, Carpenter, Gardener, Mechanic, Other}
}

// Profile is the read model of a worker exposed by the profile store.
type Profile struct {
	ID              string
	FullName        string
	Biography       string
	Profession      Profession
	YearsExperience int
	HourlyRate      float64
	Rating          float64
	IsVerified      bool
	IsActive        bool
	Location        *geo.Point
	UpdatedAt       time.Time
}

// HasBiography reports whether the profile has a non-blank biography.
func (p *Profile) HasBiography() bool {
	return strings.TrimSpace(p.Biography) != ""
}

// Document renders the text used to train the similarity model.
func (p *Profile) Document() string {
	return p.Biography + " " + p.Profession.Label()
}

// DistanceKm returns the distance from center, or false when the worker has no location.
func (p *Profile) DistanceKm(center geo.Point) (float64, bool) {
	if p.Location == nil {
		return 0, false
	}
	return p.Location.DistanceKm(center), true
}
