package api

import (
	"time"

	"github.com/artor/studysearch/pkg/updater"
)

// ErrorResponse is the error envelope shared by every endpoint. Details
// carries the underlying error text on 500s.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	Details   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
	Update    *updater.Status `json:"update,omitempty"`
}
