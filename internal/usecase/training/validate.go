package training

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

// MinBiographyRunes is the shortest biography considered useful for training.
const MinBiographyRunes = 50

// maxSamples bounds the example ids listed per issue.
const maxSamples = 5

// Grade classifies corpus readiness.
type Grade string

// Grade values by share of ML-ready workers.
const (
	GradeExcellent  Grade = "excellent"  // >= 80%
	GradeAcceptable Grade = "acceptable" // >= 60%
	GradePoor       Grade = "poor"
)

// ProfessionCount is one row of the profession distribution.
type ProfessionCount struct {
	Profession worker.Profession
	Count      int
}

// RatingStats summarises worker ratings.
type RatingStats struct {
	Avg, Min, Max float64
	Unrated       int
}

// CorpusReport describes the quality of the active worker corpus.
type CorpusReport struct {
	ActiveWorkers   int
	EmptyBiography  int
	ShortBiography  int
	UsefulBiography int
	WithLocation    int
	MissingLocation int
	Professions     []ProfessionCount // count desc, then profession asc
	Ratings         RatingStats
	MLReady         int
	ReadyPercentage float64
	Grade           Grade
	Recommendations []string

	// Samples list up to five worker ids per issue; filled only when detailed.
	EmptySamples      []string
	ShortSamples      []string
	NoLocationSamples []string
}

// ValidateCorpus inspects active workers and reports training readiness.
// A worker is ML-ready with a useful biography and a location.
func (s *Service) ValidateCorpus(ctx context.Context, detailed bool) (CorpusReport, error) {
	profiles, err := s.profiles.ListActive(ctx, nil)
	if err != nil {
		return CorpusReport{}, fmt.Errorf("list active profiles: %w", err)
	}
	return buildReport(profiles, detailed), nil
}

func buildReport(profiles []worker.Profile, detailed bool) CorpusReport {
	r := CorpusReport{ActiveWorkers: len(profiles)}
	byProf := make(map[worker.Profession]int)
	ratingSum := 0.0
	r.Ratings.Min = math.Inf(1)

	for i := range profiles {
		p := &profiles[i]
		bio := strings.TrimSpace(p.Biography)
		useful := false

		switch n := utf8.RuneCountInString(bio); {
		case n == 0:
			r.EmptyBiography++
			r.EmptySamples = sample(r.EmptySamples, p.ID, detailed)
		case n < MinBiographyRunes:
			r.ShortBiography++
			r.ShortSamples = sample(r.ShortSamples, p.ID, detailed)
		default:
			r.UsefulBiography++
			useful = true
		}

		if p.Location != nil {
			r.WithLocation++
			if useful {
				r.MLReady++
			}
		} else {
			r.MissingLocation++
			r.NoLocationSamples = sample(r.NoLocationSamples, p.ID, detailed)
		}

		byProf[p.Profession]++

		ratingSum += p.Rating
		r.Ratings.Min = math.Min(r.Ratings.Min, p.Rating)
		r.Ratings.Max = math.Max(r.Ratings.Max, p.Rating)
		if p.Rating == 0 {
			r.Ratings.Unrated++
		}
	}

	if len(profiles) == 0 {
		r.Ratings.Min = 0
		r.Grade = GradePoor
		r.Recommendations = []string{"no active workers: onboard workers before training"}
		return r
	}

	r.Ratings.Avg = ratingSum / float64(len(profiles))
	r.Professions = professionCounts(byProf)
	r.ReadyPercentage = math.Round(float64(r.MLReady)/float64(len(profiles))*1000) / 10

	switch {
	case r.ReadyPercentage >= 80:
		r.Grade = GradeExcellent
	case r.ReadyPercentage >= 60:
		r.Grade = GradeAcceptable
	default:
		r.Grade = GradePoor
	}

	if r.EmptyBiography > 0 {
		r.Recommendations = append(r.Recommendations,
			fmt.Sprintf("add a biography to %d workers", r.EmptyBiography))
	}
	if r.ShortBiography > 0 {
		r.Recommendations = append(r.Recommendations,
			fmt.Sprintf("extend %d biographies to at least %d characters", r.ShortBiography, MinBiographyRunes))
	}
	if r.MissingLocation > 0 {
		r.Recommendations = append(r.Recommendations,
			fmt.Sprintf("add a location to %d workers", r.MissingLocation))
	}
	return r
}

func professionCounts(m map[worker.Profession]int) []ProfessionCount {
	out := make([]ProfessionCount, 0, len(m))
	for p, n := range m {
		out = append(out, ProfessionCount{Profession: p, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Profession < out[j].Profession
	})
	return out
}

func sample(ids []string, id string, detailed bool) []string {
	if !detailed || len(ids) >= maxSamples {
		return ids
	}
	return append(ids, id)
}
