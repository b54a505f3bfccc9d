package chi

import (
	"context"

	"github.com/kailas-cloud/workermatch/internal/domain/search/request"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
	analyticsuc "github.com/kailas-cloud/workermatch/internal/usecase/analytics"
	healthuc "github.com/kailas-cloud/workermatch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/workermatch/internal/usecase/recommend"
	traininguc "github.com/kailas-cloud/workermatch/internal/usecase/training"
)

// Recommender runs searches.
type Recommender interface {
	Search(ctx context.Context, req request.Request) (recommenduc.Response, error)
}

// Trainer manages the similarity model.
type Trainer interface {
	Train(ctx context.Context, force bool) (traininguc.Metrics, error)
	Invalidate(ctx context.Context) error
	ValidateCorpus(ctx context.Context, detailed bool) (traininguc.CorpusReport, error)
}

// Profiles reads and writes worker profiles.
type Profiles interface {
	Save(ctx context.Context, p *worker.Profile) (created bool, err error)
	Get(ctx context.Context, id string) (worker.Profile, error)
}

// Feedback records engagement against search logs.
type Feedback interface {
	RecordClick(ctx context.Context, logID, workerID string, position int) (int, error)
	RecordHire(ctx context.Context, logID, workerID string) error
}

// Analytics aggregates search logs.
type Analytics interface {
	Report(ctx context.Context, days int) (analyticsuc.Report, error)
}

// Health reports component and engine health.
type Health interface {
	Check(ctx context.Context) healthuc.Report
	Recommendation(ctx context.Context) (healthuc.RecommendationReport, error)
}

// Services groups the use cases served over HTTP.
type Services struct {
	Recommend Recommender
	Training  Trainer
	Profiles  Profiles
	Feedback  Feedback
	Analytics Analytics
	Health    Health
}
