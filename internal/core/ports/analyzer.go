// Package ports defines the interfaces between the core and its adapters.
package ports

import (
	"context"

	"github.com/vestigehq/vestige/internal/core/domain"
)

// Analyzer runs one forensic analysis operation against a memory dump.
//
// Implementations must be deterministic with respect to their inputs: the
// same (path, operation, filter) against unchanged file content yields the
// same logical report. The caching layer depends on this. Calls may take
// seconds to tens of seconds and may parallelize internally; the caller
// must never hold a cache lock across an Analyze call.
//
//go:generate mockgen -source=analyzer.go -destination=mocks/mock_analyzer.go -package=mocks
type Analyzer interface {
	// Analyze runs the operation and returns its report. Errors are
	// propagated unchanged and must never be cached.
	Analyze(ctx context.Context, path string, op domain.OperationType, filter domain.Filter) (*domain.Report, error)
}
