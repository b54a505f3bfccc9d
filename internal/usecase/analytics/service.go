// Package analytics aggregates search logs into engagement and quality metrics.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kailas-cloud/workermatch/internal/domain"
	"github.com/kailas-cloud/workermatch/internal/domain/search/result"
	"github.com/kailas-cloud/workermatch/internal/domain/search/strategy"
	"github.com/kailas-cloud/workermatch/internal/domain/searchlog"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

// Window limits in days.
const (
	DefaultDays = 30
	MaxDays     = 365
	topTerms    = 10
)

// TermCount is a processed query term and its frequency.
type TermCount struct {
	Term  string
	Count int
}

// StrategyStats compares strategies over the window.
type StrategyStats struct {
	Queries        int
	CTR            float64
	ConversionRate float64
	AvgResponseMs  float64
}

// CorpusHealth summarises the active worker corpus.
type CorpusHealth struct {
	TotalWorkers      int
	WorkersWithBio    int
	AvgBioLength      int
	WorkersNeedUpdate int // no biography or no location
	HealthPercentage  float64
}

// Report is the analytics view over a time window.
type Report struct {
	Days           int
	From, To       time.Time
	TotalQueries   int
	UniqueUsers    int
	AvgResponseMs  float64
	CacheHitRate   float64
	AvgResults     float64
	CTR            float64
	ConversionRate float64
	MRR            float64
	TopTerms       []TermCount
	Strategies     map[strategy.Strategy]StrategyStats
	Corpus         CorpusHealth
}

// Service computes analytics reports.
type Service struct {
	logs     LogReader
	profiles ProfileLister
	now      func() time.Time
}

// New creates an analytics service.
func New(logs LogReader, profiles ProfileLister) *Service {
	return &Service{logs: logs, profiles: profiles, now: time.Now}
}

// Report aggregates the last days of searches. days=0 means DefaultDays.
func (s *Service) Report(ctx context.Context, days int) (Report, error) {
	if days == 0 {
		days = DefaultDays
	}
	if days < 1 || days > MaxDays {
		return Report{}, domain.NewValidation("days", fmt.Sprintf("must be between 1 and %d", MaxDays))
	}

	to := s.now().UTC()
	from := to.Add(-time.Duration(days) * 24 * time.Hour)

	logs, err := s.logs.ListSince(ctx, from)
	if err != nil {
		return Report{}, fmt.Errorf("list search logs: %w", err)
	}
	profiles, err := s.profiles.ListActive(ctx, nil)
	if err != nil {
		return Report{}, fmt.Errorf("list active profiles: %w", err)
	}

	r := aggregate(logs)
	r.Days, r.From, r.To = days, from, to
	r.Corpus = corpusHealth(profiles)
	return r, nil
}

func aggregate(logs []searchlog.Record) Report {
	r := Report{TotalQueries: len(logs), Strategies: make(map[strategy.Strategy]StrategyStats)}
	if len(logs) == 0 {
		return r
	}

	users := make(map[string]struct{})
	terms := make(map[string]int)
	type acc struct {
		queries, clicks, hires int
		ms                     float64
	}
	per := make(map[strategy.Strategy]*acc)

	var ms, results float64
	var hits, clicks, hires, ranked int
	var reciprocal float64

	for i := range logs {
		l := &logs[i]
		if l.UserID != "" {
			users[l.UserID] = struct{}{}
		}
		ms += l.ResponseTimeMs
		results += float64(l.TotalResults())
		if l.CacheHit {
			hits++
		}
		if l.Clicked() {
			clicks++
			if l.ClickPosition > 0 {
				ranked++
				reciprocal += 1 / float64(l.ClickPosition)
			}
		}
		if l.Hired() {
			hires++
		}
		for _, t := range strings.Fields(l.ProcessedQuery) {
			terms[t]++
		}

		a, ok := per[l.Strategy]
		if !ok {
			a = &acc{}
			per[l.Strategy] = a
		}
		a.queries++
		a.ms += l.ResponseTimeMs
		if l.Clicked() {
			a.clicks++
		}
		if l.Hired() {
			a.hires++
		}
	}

	n := float64(len(logs))
	r.UniqueUsers = len(users)
	r.AvgResponseMs = result.Round(ms/n, 2)
	r.CacheHitRate = result.Round(float64(hits)/n, 4)
	r.AvgResults = result.Round(results/n, 2)
	r.CTR = result.Round(float64(clicks)/n, 4)
	r.ConversionRate = result.Round(float64(hires)/n, 4)
	if ranked > 0 {
		r.MRR = result.Round(reciprocal/float64(ranked), 4)
	}
	r.TopTerms = topTermCounts(terms, topTerms)

	for st, a := range per {
		q := float64(a.queries)
		r.Strategies[st] = StrategyStats{
			Queries:        a.queries,
			CTR:            result.Round(float64(a.clicks)/q, 4),
			ConversionRate: result.Round(float64(a.hires)/q, 4),
			AvgResponseMs:  result.Round(a.ms/q, 2),
		}
	}
	return r
}

// topTermCounts returns the k most frequent terms, ties broken alphabetically.
func topTermCounts(terms map[string]int, k int) []TermCount {
	out := make([]TermCount, 0, len(terms))
	for t, c := range terms {
		out = append(out, TermCount{Term: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

func corpusHealth(profiles []worker.Profile) CorpusHealth {
	h := CorpusHealth{TotalWorkers: len(profiles)}
	bioRunes := 0
	for i := range profiles {
		p := &profiles[i]
		if p.HasBiography() {
			h.WorkersWithBio++
			bioRunes += utf8.RuneCountInString(p.Biography)
		}
		if !p.HasBiography() || p.Location == nil {
			h.WorkersNeedUpdate++
		}
	}
	if h.WorkersWithBio > 0 {
		h.AvgBioLength = int(result.Round(float64(bioRunes)/float64(h.WorkersWithBio), 0))
	}
	if h.TotalWorkers > 0 {
		h.HealthPercentage = result.Round(float64(h.WorkersWithBio)/float64(h.TotalWorkers)*100, 1)
	}
	return h
}
