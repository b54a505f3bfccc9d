package workermatch

import (
	"context"

	"github.com/kailas-cloud/workermatch/internal/domain/search/request"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
	healthuc "github.com/kailas-cloud/workermatch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/workermatch/internal/usecase/recommend"
	traininguc "github.com/kailas-cloud/workermatch/internal/usecase/training"
)

// --- recommendUseCase mock ---

type mockRecommendUC struct {
	searchFn func(ctx context.Context, req request.Request) (recommenduc.Response, error)
}

func (m *mockRecommendUC) Search(ctx context.Context, req request.Request) (recommenduc.Response, error) {
	return m.searchFn(ctx, req)
}

// --- trainingUseCase mock ---

type mockTrainingUC struct {
	trainFn      func(ctx context.Context, force bool) (traininguc.Metrics, error)
	invalidateFn func(ctx context.Context) error
}

func (m *mockTrainingUC) Train(ctx context.Context, force bool) (traininguc.Metrics, error) {
	return m.trainFn(ctx, force)
}

func (m *mockTrainingUC) Invalidate(ctx context.Context) error {
	return m.invalidateFn(ctx)
}

// --- profileUseCase mock ---

type mockProfileUC struct {
	saveFn func(ctx context.Context, p *worker.Profile) (bool, error)
	getFn  func(ctx context.Context, id string) (worker.Profile, error)
}

func (m *mockProfileUC) Save(ctx context.Context, p *worker.Profile) (bool, error) {
	return m.saveFn(ctx, p)
}

func (m *mockProfileUC) Get(ctx context.Context, id string) (worker.Profile, error) {
	return m.getFn(ctx, id)
}

// --- feedbackUseCase mock ---

type mockFeedbackUC struct {
	clickFn func(ctx context.Context, logID, workerID string, position int) (int, error)
	hireFn  func(ctx context.Context, logID, workerID string) error
}

func (m *mockFeedbackUC) RecordClick(ctx context.Context, logID, workerID string, position int) (int, error) {
	return m.clickFn(ctx, logID, workerID, position)
}

func (m *mockFeedbackUC) RecordHire(ctx context.Context, logID, workerID string) error {
	return m.hireFn(ctx, logID, workerID)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
	engine healthuc.RecommendationReport
	err    error
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

func (m *mockHealthUC) Recommendation(_ context.Context) (healthuc.RecommendationReport, error) {
	return m.engine, m.err
}

// --- helpers ---

func testClient() *Client {
	return &Client{
		recommendSvc: &mockRecommendUC{},
		trainingSvc:  &mockTrainingUC{},
		profileSvc:   &mockProfileUC{},
		feedbackSvc:  &mockFeedbackUC{},
		healthSvc:    &mockHealthUC{},
	}
}
