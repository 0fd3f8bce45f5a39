package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	contractx "github.com/napatsw/trendscope/trends/contract"
)

type fakeStore struct {
	chunks  []contractx.KnowledgeChunk
	reports []contractx.TrendReport
}

func (f *fakeStore) RecentChunks(_ context.Context, _ time.Duration, _ int) ([]contractx.KnowledgeChunk, error) {
	return f.chunks, nil
}

func (f *fakeStore) LatestReports(_ context.Context, _ contractx.ReportQuery) ([]contractx.TrendReport, error) {
	return f.reports, nil
}

func TestLazyDialsOnce(t *testing.T) {
	t.Parallel()

	dials := 0
	lazy := NewLazy(func(_ context.Context) (contractx.Store, error) {
		dials++
		return &fakeStore{chunks: []contractx.KnowledgeChunk{{ID: "1", Content: "x"}}}, nil
	})

	for i := 0; i < 3; i++ {
		chunks, err := lazy.RecentChunks(context.Background(), 0, 10)
		if err != nil {
			t.Fatalf("RecentChunks() error = %v", err)
		}
		if len(chunks) != 1 {
			t.Fatalf("RecentChunks() = %d chunks, want 1", len(chunks))
		}
	}

	if dials != 1 {
		t.Fatalf("dialed %d times, want 1", dials)
	}
}

func TestLazyRetriesAfterDialFailure(t *testing.T) {
	t.Parallel()

	dials := 0
	lazy := NewLazy(func(_ context.Context) (contractx.Store, error) {
		dials++
		if dials == 1 {
			return nil, errors.New("connection refused")
		}
		return &fakeStore{}, nil
	})

	_, err := lazy.LatestReports(context.Background(), contractx.ReportQuery{Limit: 10})
	if !errors.Is(err, contractx.ErrStoreUnavailable) {
		t.Fatalf("first call error = %v, want ErrStoreUnavailable", err)
	}

	if _, err := lazy.LatestReports(context.Background(), contractx.ReportQuery{Limit: 10}); err != nil {
		t.Fatalf("second call error = %v, want retry to succeed", err)
	}
	if dials != 2 {
		t.Fatalf("dialed %d times, want 2", dials)
	}
}

func TestLazyConcurrentFirstCallsDialOnce(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	dials := 0
	lazy := NewLazy(func(_ context.Context) (contractx.Store, error) {
		mu.Lock()
		dials++
		mu.Unlock()
		return &fakeStore{}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := lazy.RecentChunks(context.Background(), 0, 1); err != nil {
				t.Errorf("RecentChunks() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if dials != 1 {
		t.Fatalf("dialed %d times under concurrent first calls, want 1", dials)
	}
}
