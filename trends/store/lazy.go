package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/napatsw/trendscope/trends/contract"
)

// DialFunc opens a concrete store connection.
type DialFunc func(ctx context.Context) (contractx.Store, error)

// Lazy defers store connection until the first query and keeps the handle for
// the process lifetime. The mutex ensures at most one dial attempt runs at a
// time; a failed dial is retried on the next call.
type Lazy struct {
	mu    sync.Mutex
	dial  DialFunc
	store contractx.Store
}

func NewLazy(dial DialFunc) *Lazy {
	return &Lazy{dial: dial}
}

func (l *Lazy) acquire(ctx context.Context) (contractx.Store, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store != nil {
		return l.store, nil
	}

	s, err := l.dial(ctx)
	if err != nil {
		// Every call fails until the store comes back, so this is
		// worth a loud log line. The error itself stays per-call.
		log.Error().Err(err).Msg("document store initialization failed")
		return nil, fmt.Errorf("%w: %v", contractx.ErrStoreUnavailable, err)
	}

	l.store = s
	log.Info().Msg("document store connected")
	return s, nil
}

func (l *Lazy) RecentChunks(ctx context.Context, window time.Duration, limit int) ([]contractx.KnowledgeChunk, error) {
	s, err := l.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return s.RecentChunks(ctx, window, limit)
}

func (l *Lazy) LatestReports(ctx context.Context, q contractx.ReportQuery) ([]contractx.TrendReport, error) {
	s, err := l.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return s.LatestReports(ctx, q)
}
