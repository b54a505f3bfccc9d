package profile

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kailas-cloud/workermatch/internal/domain/geo"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// one connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	r := New(db)
	if err := r.Migrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func seed(t *testing.T, r *Repo, profiles ...worker.Profile) {
	t.Helper()
	for i := range profiles {
		if _, err := r.Upsert(context.Background(), &profiles[i]); err != nil {
			t.Fatalf("seed %s: %v", profiles[i].ID, err)
		}
	}
}

func sampleProfile(id string, prof worker.Profession, bio string, active bool) worker.Profile {
	return worker.Profile{
		ID:              id,
		FullName:        "Worker " + id,
		Biography:       bio,
		Profession:      prof,
		YearsExperience: 5,
		HourlyRate:      20,
		Rating:          4.5,
		IsActive:        active,
		Location:        &geo.Point{Lat: -34.6, Lng: -58.4},
	}
}
