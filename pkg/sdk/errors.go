package workermatch

import "github.com/kailas-cloud/workermatch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrValidation         = domain.ErrValidation
	ErrInvalidStrategy    = domain.ErrInvalidStrategy
	ErrInsufficientCorpus = domain.ErrInsufficientCorpus
	ErrEngineUnavailable  = domain.ErrEngineUnavailable
)
