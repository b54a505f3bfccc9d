package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface is implemented by the HTTP handlers.
type ServerInterface interface {
	// Recommend ranks workers (POST /workers/recommend).
	Recommend(w http.ResponseWriter, r *http.Request)
	// GetWorker returns a profile (GET /workers/{worker_id}).
	GetWorker(w http.ResponseWriter, r *http.Request, workerID WorkerID)
	// UpsertWorker creates or replaces a profile (PUT /workers/{worker_id}).
	UpsertWorker(w http.ResponseWriter, r *http.Request, workerID WorkerID)
	// RecordClick records a click (POST /recommendations/{log_id}/click).
	RecordClick(w http.ResponseWriter, r *http.Request, logID LogID)
	// RecordHire records a hire (POST /recommendations/{log_id}/hire).
	RecordHire(w http.ResponseWriter, r *http.Request, logID LogID)
	// GetAnalytics reports search analytics (GET /recommendations/analytics).
	GetAnalytics(w http.ResponseWriter, r *http.Request, params GetAnalyticsParams)
	// GetRecommendationHealth reports engine health (GET /recommendations/health).
	GetRecommendationHealth(w http.ResponseWriter, r *http.Request)
	// TrainModel trains or reuses the model (POST /models/train).
	TrainModel(w http.ResponseWriter, r *http.Request, params TrainModelParams)
	// InvalidateModel drops the cached model (DELETE /models/current).
	InvalidateModel(w http.ResponseWriter, r *http.Request)
	// ValidateCorpus reports corpus readiness (GET /models/corpus).
	ValidateCorpus(w http.ResponseWriter, r *http.Request, params ValidateCorpusParams)
	// HealthCheck reports liveness (GET /health).
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// Metrics serves Prometheus metrics (GET /metrics).
	Metrics(w http.ResponseWriter, r *http.Request)
}

// InvalidParamFormatError reports a path or query parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// MiddlewareFunc wraps a single route handler.
type MiddlewareFunc func(http.Handler) http.Handler

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// serverInterfaceWrapper binds parameters before calling the handler.
type serverInterfaceWrapper struct {
	handler     ServerInterface
	middlewares []MiddlewareFunc
	onError     func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) wrap(h http.Handler) http.Handler {
	for _, m := range siw.middlewares {
		h = m(h)
	}
	return h
}

func (siw *serverInterfaceWrapper) pathParam(r *http.Request, name string, dest *string) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

func (siw *serverInterfaceWrapper) queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

func (siw *serverInterfaceWrapper) Recommend(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.handler.Recommend)).ServeHTTP(w, r)
}

func (siw *serverInterfaceWrapper) GetWorker(w http.ResponseWriter, r *http.Request) {
	var workerID WorkerID
	if err := siw.pathParam(r, "worker_id", &workerID); err != nil {
		siw.onError(w, r, err)
		return
	}
	siw.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.handler.GetWorker(w, r, workerID)
	})).ServeHTTP(w, r)
}

func (siw *serverInterfaceWrapper) UpsertWorker(w http.ResponseWriter, r *http.Request) {
	var workerID WorkerID
	if err := siw.pathParam(r, "worker_id", &workerID); err != nil {
		siw.onError(w, r, err)
		return
	}
	siw.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.handler.UpsertWorker(w, r, workerID)
	})).ServeHTTP(w, r)
}

func (siw *serverInterfaceWrapper) RecordClick(w http.ResponseWriter, r *http.Request) {
	var logID LogID
	if err := siw.pathParam(r, "log_id", &logID); err != nil {
		siw.onError(w, r, err)
		return
	}
	siw.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.handler.RecordClick(w, r, logID)
	})).ServeHTTP(w, r)
}

func (siw *serverInterfaceWrapper) RecordHire(w http.ResponseWriter, r *http.Request) {
	var logID LogID
	if err := siw.pathParam(r, "log_id", &logID); err != nil {
		siw.onError(w, r, err)
		return
	}
	siw.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.handler.RecordHire(w, r, logID)
	})).ServeHTTP(w, r)
}

func (siw *serverInterfaceWrapper) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	var params GetAnalyticsParams
	if err := siw.queryParam(r, "days", &params.Days); err != nil {
		siw.onError(w, r, err)
		return
	}
	siw.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.handler.GetAnalytics(w, r, params)
	})).ServeHTTP(w, r)
}

func (siw *serverInterfaceWrapper) GetRecommendationHealth(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.handler.GetRecommendationHealth)).ServeHTTP(w, r)
}

func (siw *serverInterfaceWrapper) TrainModel(w http.ResponseWriter, r *http.Request) {
	var params TrainModelParams
	if err := siw.queryParam(r, "force", &params.Force); err != nil {
		siw.onError(w, r, err)
		return
	}
	siw.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.handler.TrainModel(w, r, params)
	})).ServeHTTP(w, r)
}

func (siw *serverInterfaceWrapper) InvalidateModel(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.handler.InvalidateModel)).ServeHTTP(w, r)
}

func (siw *serverInterfaceWrapper) ValidateCorpus(w http.ResponseWriter, r *http.Request) {
	var params ValidateCorpusParams
	if err := siw.queryParam(r, "detailed", &params.Detailed); err != nil {
		siw.onError(w, r, err)
		return
	}
	siw.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.handler.ValidateCorpus(w, r, params)
	})).ServeHTTP(w, r)
}

func (siw *serverInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.handler.HealthCheck)).ServeHTTP(w, r)
}

func (siw *serverInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.handler.Metrics)).ServeHTTP(w, r)
}

// Handler mounts si on a fresh chi router.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions mounts si on options.BaseRouter (or a fresh router).
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := &serverInterfaceWrapper{
		handler:     si,
		middlewares: options.Middlewares,
		onError:     options.ErrorHandlerFunc,
	}

	base := options.BaseURL
	r.Group(func(r chi.Router) {
		r.Post(base+"/workers/recommend", wrapper.Recommend)
		r.Get(base+"/workers/{worker_id}", wrapper.GetWorker)
		r.Put(base+"/workers/{worker_id}", wrapper.UpsertWorker)
		r.Post(base+"/recommendations/{log_id}/click", wrapper.RecordClick)
		r.Post(base+"/recommendations/{log_id}/hire", wrapper.RecordHire)
		r.Get(base+"/recommendations/analytics", wrapper.GetAnalytics)
		r.Get(base+"/recommendations/health", wrapper.GetRecommendationHealth)
		r.Post(base+"/models/train", wrapper.TrainModel)
		r.Delete(base+"/models/current", wrapper.InvalidateModel)
		r.Get(base+"/models/corpus", wrapper.ValidateCorpus)
		r.Get(base+"/health", wrapper.HealthCheck)
		r.Get(base+"/metrics", wrapper.Metrics)
	})
	return r
}
