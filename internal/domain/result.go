package domain

import (
	"time"

	"github.com/navkit/navkit/internal/constants"
)

// Result is the terminal outcome of one behavior instance. Exactly one
// Result is produced per accepted goal and delivered to the client that
// owns the corresponding goal handle.
//
// Example JSON representation:
//
//	{
//	    "status": "succeeded",
//	    "error": "",
//	    "path": {...},
//	    "started_at": "2026-01-10T10:00:00Z",
//	    "completed_at": "2026-01-10T10:00:05Z"
//	}
type Result struct {
	// Status classifies the terminal outcome.
	Status constants.ResultStatus `json:"status"`

	// Error holds the failure diagnostic when Status is failed.
	Error string `json:"error,omitempty"`

	// Path is the optional result payload produced by planning
	// behaviors. Nil for recovery behaviors.
	Path *Path `json:"path,omitempty"`

	// StartedAt is when the behavior instance began initializing.
	StartedAt time.Time `json:"started_at"`

	// CompletedAt is when the instance reached its terminal state.
	CompletedAt time.Time `json:"completed_at"`
}

// Succeeded reports whether the result carries an explicit success.
func (r *Result) Succeeded() bool {
	return r != nil && r.Status == constants.ResultSucceeded
}
