package workermatch

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/workermatch/internal/domain"
	"github.com/kailas-cloud/workermatch/internal/domain/search/filter"
	"github.com/kailas-cloud/workermatch/internal/domain/search/request"
	"github.com/kailas-cloud/workermatch/internal/domain/search/strategy"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

// Recommend ranks workers for q and logs the search.
func (c *Client) Recommend(ctx context.Context, q Query) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", start, err) }()

	req, err := buildRequest(&q)
	if err != nil {
		return Result{}, err
	}
	resp, err := c.recommendSvc.Search(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("recommend: %w", err)
	}
	return resultFromDomain(&resp), nil
}

func buildRequest(q *Query) (request.Request, error) {
	var prof *worker.Profession
	if q.Profession != "" {
		p, ok := worker.ParseProfession(q.Profession)
		if !ok {
			return request.Request{}, domain.NewValidation("profession", fmt.Sprintf("unknown profession %q", q.Profession))
		}
		prof = &p
	}

	var lat, lng *float64
	if q.Near != nil {
		lat, lng = &q.Near.Lat, &q.Near.Lng
	}
	center, err := filter.ParseGeoCenter(lat, lng)
	if err != nil {
		return request.Request{}, err
	}

	filters, err := filter.New(q.MinRating, prof, center, q.MaxDistanceKm)
	if err != nil {
		return request.Request{}, err
	}

	req, err := request.New(q.Text, strategy.Strategy(q.Strategy), q.TopN, filters)
	if err != nil {
		return request.Request{}, err
	}
	if q.UserID != "" {
		req = req.WithUserID(q.UserID)
	}
	return req, nil
}

// Train fits the model, or reuses the cached one unless force is set.
func (c *Client) Train(ctx context.Context, force bool) (res TrainResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("train", start, err) }()

	m, err := c.trainingSvc.Train(ctx, force)
	if err != nil {
		return TrainResult{}, fmt.Errorf("train: %w", err)
	}
	return trainResultFromDomain(&m), nil
}

// Invalidate drops the cached model. The next model-backed search retrains.
func (c *Client) Invalidate(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("invalidate", start, err) }()

	if err = c.trainingSvc.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate: %w", err)
	}
	return nil
}

// RecordClick attributes a click to a logged search. position is the
// worker's 1-based rank, or 0 to take it from the log. Returns the stored position.
func (c *Client) RecordClick(ctx context.Context, logID, workerID string, position int) (pos int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("record_click", start, err) }()

	pos, err = c.feedbackSvc.RecordClick(ctx, logID, workerID, position)
	if err != nil {
		return 0, fmt.Errorf("record click: %w", err)
	}
	return pos, nil
}

// RecordHire attributes a hire to a logged search.
func (c *Client) RecordHire(ctx context.Context, logID, workerID string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("record_hire", start, err) }()

	if err = c.feedbackSvc.RecordHire(ctx, logID, workerID); err != nil {
		return fmt.Errorf("record hire: %w", err)
	}
	return nil
}

// UpsertWorker creates or replaces a worker profile. Returns true if created.
// Updating an existing worker invalidates the cached model.
func (c *Client) UpsertWorker(ctx context.Context, w *Worker) (created bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("upsert_worker", start, err) }()

	p := workerToDomain(w)
	created, err = c.profileSvc.Save(ctx, &p)
	if err != nil {
		return false, fmt.Errorf("upsert worker: %w", err)
	}
	w.ID = p.ID
	return created, nil
}

// GetWorker returns a worker profile by id.
func (c *Client) GetWorker(ctx context.Context, id string) (w Worker, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_worker", start, err) }()

	p, err := c.profileSvc.Get(ctx, id)
	if err != nil {
		return Worker{}, fmt.Errorf("get worker: %w", err)
	}
	return workerFromDomain(&p), nil
}
