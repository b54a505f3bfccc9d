package chi

import (
	"github.com/kailas-cloud/workermatch/internal/domain/geo"
	"github.com/kailas-cloud/workermatch/internal/domain/search/result"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
	"github.com/kailas-cloud/workermatch/internal/transport/api"
	analyticsuc "github.com/kailas-cloud/workermatch/internal/usecase/analytics"
	healthuc "github.com/kailas-cloud/workermatch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/workermatch/internal/usecase/recommend"
	traininguc "github.com/kailas-cloud/workermatch/internal/usecase/training"
)

// Display precision of explanation values.
const (
	scorePlaces    = 3
	distancePlaces = 2
)

func recommendResponseToAPI(resp *recommenduc.Response) api.RecommendResponse {
	out := api.RecommendResponse{
		Query:           resp.Query,
		ProcessedQuery:  resp.ProcessedQuery,
		StrategyUsed:    string(resp.Strategy),
		TotalResults:    resp.TotalResults(),
		Recommendations: make([]api.Recommendation, len(resp.Candidates)),
		PerformanceMs:   result.Round(resp.PerformanceMs, 2),
		CacheHit:        resp.CacheHit,
	}
	if resp.LogID != "" {
		id := resp.LogID
		out.LogID = &id
	}
	for i := range resp.Candidates {
		out.Recommendations[i] = candidateToAPI(&resp.Candidates[i])
	}
	return out
}

func candidateToAPI(c *result.Candidate) api.Recommendation {
	w := c.Worker
	return api.Recommendation{
		WorkerID:            w.ID,
		Score:               result.Round(c.Score, scorePlaces),
		RelevancePercentage: c.RelevancePercentage(),
		Explanation:         explanationToAPI(c.Explanation),
		Summary:             c.Summary(),
		FullName:            w.FullName,
		Profession:          string(w.Profession),
		ProfessionLabel:     w.Profession.Label(),
		YearsExperience:     w.YearsExperience,
		HourlyRate:          w.HourlyRate,
		Rating:              w.Rating,
		IsVerified:          w.IsVerified,
		Location:            locationToAPI(w.Location),
	}
}

func explanationToAPI(e result.Explanation) api.Explanation {
	switch v := e.(type) {
	case result.ContentMatch:
		cm := contentMatchToAPI(v)
		return api.Explanation{Type: string(v.Kind()), Content: &cm}
	case result.RatingBased:
		rating, years := v.Rating, v.YearsExperience
		return api.Explanation{Type: string(v.Kind()), Rating: &rating, YearsExperience: &years}
	case result.HybridBreakdown:
		cm := contentMatchToAPI(v.Content)
		out := api.Explanation{
			Type:           string(v.Kind()),
			Content:        &cm,
			ContentScore:   rounded(v.ContentComponent, scorePlaces),
			RatingScore:    rounded(v.RatingComponent, scorePlaces),
			ProximityScore: rounded(v.ProximityComponent, scorePlaces),
			Total:          rounded(v.Total, scorePlaces),
		}
		if v.DistanceKm != nil {
			out.DistanceKm = rounded(*v.DistanceKm, distancePlaces)
		}
		return out
	default:
		return api.Explanation{Type: "none"}
	}
}

func contentMatchToAPI(cm result.ContentMatch) api.ContentMatch {
	out := api.ContentMatch{
		MatchedKeywords: make([]api.KeywordMatch, len(cm.MatchedKeywords)),
		TopTerms:        cm.TopTerms,
		Similarity:      result.Round(cm.Similarity, scorePlaces),
	}
	if out.TopTerms == nil {
		out.TopTerms = []string{}
	}
	for i, k := range cm.MatchedKeywords {
		out.MatchedKeywords[i] = api.KeywordMatch{
			Term:         k.Term,
			QueryWeight:  result.Round(k.QueryWeight, scorePlaces),
			WorkerWeight: result.Round(k.WorkerWeight, scorePlaces),
		}
	}
	return out
}

func rounded(v float64, places int) *float64 {
	r := result.Round(v, places)
	return &r
}

func workerFromAPI(id string, body *api.WorkerRequest) worker.Profile {
	prof, _ := worker.ParseProfession(body.Profession)
	p := worker.Profile{
		ID:              id,
		FullName:        body.FullName,
		Biography:       body.Biography,
		Profession:      prof,
		YearsExperience: body.YearsExperience,
		HourlyRate:      body.HourlyRate,
		Rating:          body.Rating,
		IsVerified:      body.IsVerified,
		IsActive:        body.IsActive == nil || *body.IsActive,
	}
	if body.Location != nil {
		p.Location = &geo.Point{Lat: body.Location.Latitude, Lng: body.Location.Longitude}
	}
	return p
}

func workerToAPI(p *worker.Profile) api.WorkerResponse {
	return api.WorkerResponse{
		ID:              p.ID,
		FullName:        p.FullName,
		Biography:       p.Biography,
		Profession:      string(p.Profession),
		YearsExperience: p.YearsExperience,
		HourlyRate:      p.HourlyRate,
		Rating:          p.Rating,
		IsVerified:      p.IsVerified,
		IsActive:        p.IsActive,
		Location:        locationToAPI(p.Location),
		UpdatedAt:       p.UpdatedAt,
	}
}

func analyticsToAPI(r *analyticsuc.Report) api.AnalyticsResponse {
	terms := make([]api.TermCount, len(r.TopTerms))
	for i, t := range r.TopTerms {
		terms[i] = api.TermCount{Term: t.Term, Count: t.Count}
	}
	ab := make(map[string]api.StrategyStats, len(r.Strategies))
	for st, v := range r.Strategies {
		ab[string(st)] = api.StrategyStats{
			Queries:           v.Queries,
			AvgCtr:            v.CTR,
			AvgConversionRate: v.ConversionRate,
			AvgResponseTimeMs: v.AvgResponseMs,
		}
	}
	return api.AnalyticsResponse{
		TotalQueries:       r.TotalQueries,
		UniqueUsers:        r.UniqueUsers,
		AvgResponseTimeMs:  r.AvgResponseMs,
		CacheHitRate:       r.CacheHitRate,
		AvgResultsPerQuery: r.AvgResults,
		AvgCtr:             r.CTR,
		AvgConversionRate:  r.ConversionRate,
		AvgMrr:             r.MRR,
		TopSearchTerms:     terms,
		AbTestResults:      ab,
		CorpusHealth: api.CorpusHealth{
			TotalWorkers:      r.Corpus.TotalWorkers,
			WorkersWithBio:    r.Corpus.WorkersWithBio,
			AvgBioLength:      r.Corpus.AvgBioLength,
			WorkersNeedUpdate: r.Corpus.WorkersNeedUpdate,
			HealthPercentage:  r.Corpus.HealthPercentage,
		},
		DateRange: api.DateRange{From: r.From, To: r.To, Days: r.Days},
	}
}

func recommendationHealthToAPI(r *healthuc.RecommendationReport) api.RecommendationHealthResponse {
	advice := r.Recommendations
	if advice == nil {
		advice = []string{}
	}
	return api.RecommendationHealthResponse{
		Status:            string(r.Status),
		ModelTrained:      r.ModelTrained,
		CorpusSize:        r.CorpusSize,
		VocabularySize:    r.VocabularySize,
		ModelLastTrained:  r.LastTrained,
		CacheStatus:       r.CacheStatus,
		ActiveWorkers:     r.ActiveWorkers,
		AvgResponseTimeMs: r.AvgResponseMs,
		Recommendations:   advice,
	}
}

func corpusReportToAPI(r *traininguc.CorpusReport) api.CorpusReportResponse {
	profs := make([]api.ProfessionCount, len(r.Professions))
	for i, p := range r.Professions {
		profs[i] = api.ProfessionCount{Profession: string(p.Profession), Count: p.Count}
	}
	return api.CorpusReportResponse{
		ActiveWorkers:   r.ActiveWorkers,
		EmptyBiography:  r.EmptyBiography,
		ShortBiography:  r.ShortBiography,
		UsefulBiography: r.UsefulBiography,
		WithLocation:    r.WithLocation,
		MissingLocation: r.MissingLocation,
		Professions:     profs,
		Ratings: api.RatingStats{
			Avg:     r.Ratings.Avg,
			Min:     r.Ratings.Min,
			Max:     r.Ratings.Max,
			Unrated: r.Ratings.Unrated,
		},
		MLReady:           r.MLReady,
		ReadyPercentage:   r.ReadyPercentage,
		Grade:             string(r.Grade),
		Recommendations:   r.Recommendations,
		EmptySamples:      r.EmptySamples,
		ShortSamples:      r.ShortSamples,
		NoLocationSamples: r.NoLocationSamples,
	}
}
