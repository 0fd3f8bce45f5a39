package contract

import (
	"context"
	"time"
)

// Store is the read-only document-store capability the tools depend on.
// Implementations must honor the ordering invariants: both lookups return
// results non-increasing by their timestamp column.
type Store interface {
	// RecentChunks returns at most limit knowledge chunks, most recent
	// first. A positive window restricts results to chunks no older than
	// now minus window; zero disables the restriction.
	RecentChunks(ctx context.Context, window time.Duration, limit int) ([]KnowledgeChunk, error)

	// LatestReports returns trend reports matching q, newest first.
	LatestReports(ctx context.Context, q ReportQuery) ([]TrendReport, error)
}
