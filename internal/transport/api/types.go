// Package api holds the HTTP wire types and the chi router binding for the
// workermatch API. Handlers implement ServerInterface.
package api

import "time"

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// ErrorResponseCode values.
const (
	ErrorResponseCodeBadRequest         ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized       ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed   ErrorResponseCode = "validation_failed"
	ErrorResponseCodeInvalidStrategy    ErrorResponseCode = "invalid_strategy"
	ErrorResponseCodeNotFound           ErrorResponseCode = "not_found"
	ErrorResponseCodeRateLimited        ErrorResponseCode = "rate_limited"
	ErrorResponseCodeInsufficientCorpus ErrorResponseCode = "insufficient_corpus"
	ErrorResponseCodeEngineUnavailable  ErrorResponseCode = "engine_unavailable"
	ErrorResponseCodeInternalError      ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
	Hint    *string           `json:"hint,omitempty"`
}

// LogID identifies a search log record.
type LogID = string

// WorkerID identifies a worker profile.
type WorkerID = string

// RecommendRequest is the body of POST /workers/recommend.
type RecommendRequest struct {
	Query         string   `json:"query"`
	Strategy      *string  `json:"strategy,omitempty"`
	TopN          *int     `json:"top_n,omitempty"`
	MinRating     *float64 `json:"min_rating,omitempty"`
	Profession    *string  `json:"profession,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	MaxDistanceKm *float64 `json:"max_distance_km,omitempty"`
	UserID        *string  `json:"user_id,omitempty"`
}

// KeywordMatch is one matched term of a content explanation.
type KeywordMatch struct {
	Term         string  `json:"term"`
	QueryWeight  float64 `json:"query_weight"`
	WorkerWeight float64 `json:"worker_weight"`
}

// ContentMatch explains a similarity-based score.
type ContentMatch struct {
	MatchedKeywords []KeywordMatch `json:"matched_keywords"`
	TopTerms        []string       `json:"top_terms"`
	Similarity      float64        `json:"similarity"`
}

// Explanation is a tagged union keyed by Type.
type Explanation struct {
	Type            string        `json:"type"`
	Content         *ContentMatch `json:"content,omitempty"`
	Rating          *float64      `json:"rating,omitempty"`
	YearsExperience *int          `json:"years_experience,omitempty"`
	ContentScore    *float64      `json:"content_score,omitempty"`
	RatingScore     *float64      `json:"rating_score,omitempty"`
	ProximityScore  *float64      `json:"proximity_score,omitempty"`
	Total           *float64      `json:"total,omitempty"`
	DistanceKm      *float64      `json:"distance_km,omitempty"`
}

// Location is a WGS84 coordinate.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Recommendation is one ranked worker.
type Recommendation struct {
	WorkerID            string      `json:"worker_id"`
	Score               float64     `json:"score"`
	RelevancePercentage float64     `json:"relevance_percentage"`
	Explanation         Explanation `json:"explanation"`
	Summary             string      `json:"summary"`
	FullName            string      `json:"full_name"`
	Profession          string      `json:"profession"`
	ProfessionLabel     string      `json:"profession_label"`
	YearsExperience     int         `json:"years_experience"`
	HourlyRate          float64     `json:"hourly_rate"`
	Rating              float64     `json:"rating"`
	IsVerified          bool        `json:"is_verified"`
	Location            *Location   `json:"location,omitempty"`
}

// RecommendResponse is the body of a successful search.
type RecommendResponse struct {
	Query           string           `json:"query"`
	ProcessedQuery  string           `json:"processed_query"`
	StrategyUsed    string           `json:"strategy_used"`
	TotalResults    int              `json:"total_results"`
	Recommendations []Recommendation `json:"recommendations"`
	PerformanceMs   float64          `json:"performance_ms"`
	CacheHit        bool             `json:"cache_hit"`
	LogID           *string          `json:"log_id,omitempty"`
}

// ClickRequest is the body of POST /recommendations/{log_id}/click.
type ClickRequest struct {
	WorkerID string `json:"worker_id"`
	Position *int   `json:"position,omitempty"`
}

// ClickResponse acknowledges a click.
type ClickResponse struct {
	LogID    string `json:"log_id"`
	WorkerID string `json:"worker_id"`
	Position int    `json:"position"`
}

// HireRequest is the body of POST /recommendations/{log_id}/hire.
type HireRequest struct {
	WorkerID string `json:"worker_id"`
}

// HireResponse acknowledges a hire.
type HireResponse struct {
	LogID    string `json:"log_id"`
	WorkerID string `json:"worker_id"`
}

// WorkerRequest is the body of PUT /workers/{worker_id}.
type WorkerRequest struct {
	FullName        string    `json:"full_name"`
	Biography       string    `json:"biography"`
	Profession      string    `json:"profession"`
	YearsExperience int       `json:"years_experience"`
	HourlyRate      float64   `json:"hourly_rate"`
	Rating          float64   `json:"rating"`
	IsVerified      bool      `json:"is_verified"`
	IsActive        *bool     `json:"is_active,omitempty"`
	Location        *Location `json:"location,omitempty"`
}

// WorkerResponse is a stored worker profile.
type WorkerResponse struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name"`
	Biography       string    `json:"biography"`
	Profession      string    `json:"profession"`
	YearsExperience int       `json:"years_experience"`
	HourlyRate      float64   `json:"hourly_rate"`
	Rating          float64   `json:"rating"`
	IsVerified      bool      `json:"is_verified"`
	IsActive        bool      `json:"is_active"`
	Location        *Location `json:"location,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// GetAnalyticsParams are the query parameters of GET /recommendations/analytics.
type GetAnalyticsParams struct {
	Days *int `form:"days,omitempty" json:"days,omitempty"`
}

// TermCount is a query term frequency.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// StrategyStats compares one strategy.
type StrategyStats struct {
	Queries           int     `json:"queries"`
	AvgCtr            float64 `json:"avg_ctr"`
	AvgConversionRate float64 `json:"avg_conversion_rate"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
}

// CorpusHealth summarises the active corpus.
type CorpusHealth struct {
	TotalWorkers      int     `json:"total_workers"`
	WorkersWithBio    int     `json:"workers_with_bio"`
	AvgBioLength      int     `json:"avg_bio_length"`
	WorkersNeedUpdate int     `json:"workers_need_update"`
	HealthPercentage  float64 `json:"health_percentage"`
}

// DateRange is the analytics window.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	Days int       `json:"days"`
}

// AnalyticsResponse is the body of GET /recommendations/analytics.
type AnalyticsResponse struct {
	TotalQueries       int                      `json:"total_queries"`
	UniqueUsers        int                      `json:"unique_users"`
	AvgResponseTimeMs  float64                  `json:"avg_response_time_ms"`
	CacheHitRate       float64                  `json:"cache_hit_rate"`
	AvgResultsPerQuery float64                  `json:"avg_results_per_query"`
	AvgCtr             float64                  `json:"avg_ctr"`
	AvgConversionRate  float64                  `json:"avg_conversion_rate"`
	AvgMrr             float64                  `json:"avg_mrr"`
	TopSearchTerms     []TermCount              `json:"top_search_terms"`
	AbTestResults      map[string]StrategyStats `json:"ab_test_results"`
	CorpusHealth       CorpusHealth             `json:"corpus_health"`
	DateRange          DateRange                `json:"date_range"`
}

// RecommendationHealthResponse is the body of GET /recommendations/health.
type RecommendationHealthResponse struct {
	Status            string     `json:"status"`
	ModelTrained      bool       `json:"model_trained"`
	CorpusSize        int        `json:"corpus_size"`
	VocabularySize    int        `json:"vocabulary_size"`
	ModelLastTrained  *time.Time `json:"model_last_trained,omitempty"`
	CacheStatus       string     `json:"cache_status"`
	ActiveWorkers     int64      `json:"active_workers"`
	AvgResponseTimeMs *float64   `json:"avg_response_time_ms,omitempty"`
	Recommendations   []string   `json:"recommendations"`
}

// TrainModelParams are the query parameters of POST /models/train.
type TrainModelParams struct {
	Force *bool `form:"force,omitempty" json:"force,omitempty"`
}

// TrainResponse reports a training call.
type TrainResponse struct {
	Status         string    `json:"status"`
	WorkersCount   int       `json:"workers_count"`
	VocabularySize int       `json:"vocabulary_size"`
	MatrixShape    [2]int    `json:"matrix_shape"`
	TrainingTimeMs float64   `json:"training_time_ms"`
	ModelID        string    `json:"model_id"`
	TrainedAt      time.Time `json:"trained_at"`
}

// ValidateCorpusParams are the query parameters of GET /models/corpus.
type ValidateCorpusParams struct {
	Detailed *bool `form:"detailed,omitempty" json:"detailed,omitempty"`
}

// ProfessionCount is one row of the profession distribution.
type ProfessionCount struct {
	Profession string `json:"profession"`
	Count      int    `json:"count"`
}

// RatingStats summarises ratings.
type RatingStats struct {
	Avg     float64 `json:"avg"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Unrated int     `json:"unrated"`
}

// CorpusReportResponse is the body of GET /models/corpus.
type CorpusReportResponse struct {
	ActiveWorkers     int               `json:"active_workers"`
	EmptyBiography    int               `json:"empty_biography"`
	ShortBiography    int               `json:"short_biography"`
	UsefulBiography   int               `json:"useful_biography"`
	WithLocation      int               `json:"with_location"`
	MissingLocation   int               `json:"missing_location"`
	Professions       []ProfessionCount `json:"professions"`
	Ratings           RatingStats       `json:"ratings"`
	MLReady           int               `json:"ml_ready"`
	ReadyPercentage   float64           `json:"ready_percentage"`
	Grade             string            `json:"grade"`
	Recommendations   []string          `json:"recommendations"`
	EmptySamples      []string          `json:"empty_samples,omitempty"`
	ShortSamples      []string          `json:"short_samples,omitempty"`
	NoLocationSamples []string          `json:"no_location_samples,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
