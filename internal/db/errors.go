package db

import "errors"

// Domain-level database error sentinels.
var (
	// Evaluation cache errors
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrDuplicateCacheKey  = errors.New("cache key already exists")
)
