package profile

import (
	"time"

	"github.com/kailas-cloud/workermatch/internal/domain/geo"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

// row is the persisted shape of a worker profile.
type row struct {
	ID              string `gorm:"primaryKey;size:36"`
	FullName        string `gorm:"size:200;not null"`
	Biography       string `gorm:"type:text"`
	Profession      string `gorm:"size:32;index;not null"`
	YearsExperience int
	HourlyRate      float64
	Rating          float64 `gorm:"index"`
	IsVerified      bool
	IsActive        bool `gorm:"index"`
	Latitude        *float64
	Longitude       *float64
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (row) TableName() string { return "worker_profiles" }

func toRow(p *worker.Profile) row {
	r := row{
		ID:              p.ID,
		FullName:        p.FullName,
		Biography:       p.Biography,
		Profession:      string(p.Profession),
		YearsExperience: p.YearsExperience,
		HourlyRate:      p.HourlyRate,
		Rating:          p.Rating,
		IsVerified:      p.IsVerified,
		IsActive:        p.IsActive,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Location != nil {
		lat, lng := p.Location.Lat, p.Location.Lng
		r.Latitude, r.Longitude = &lat, &lng
	}
	return r
}

func (r *row) toDomain() worker.Profile {
	p := worker.Profile{
		ID:              r.ID,
		FullName:        r.FullName,
		Biography:       r.Biography,
		Profession:      worker.Profession(r.Profession),
		YearsExperience: r.YearsExperience,
		HourlyRate:      r.HourlyRate,
		Rating:          r.Rating,
		IsVerified:      r.IsVerified,
		IsActive:        r.IsActive,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Latitude != nil && r.Longitude != nil {
		p.Location = &geo.Point{Lat: *r.Latitude, Lng: *r.Longitude}
	}
	return p
}

func toDomainSlice(rows []row) []worker.Profile {
	out := make([]worker.Profile, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out
}
