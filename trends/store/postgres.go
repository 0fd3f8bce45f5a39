package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/napatsw/trendscope/trends/contract"
)

type Config struct {
	DSN         string        `split_words:"true"`
	DialTimeout time.Duration `split_words:"true" default:"10s"`
}

type chunkRow struct {
	bun.BaseModel `bun:"table:knowledge_chunks,alias:c"`

	ID        string     `bun:"id,pk"`
	Content   string     `bun:"content"`
	Timestamp *time.Time `bun:"timestamp,nullzero"`
}

type reportRow struct {
	bun.BaseModel `bun:"table:trend_reports,alias:r"`

	ID              string         `bun:"id,pk"`
	TrendName       string         `bun:"trend_name"`
	Analysis        string         `bun:"analysis"`
	Field           string         `bun:"field,nullzero"`
	ConfidenceScore float64        `bun:"confidence_score,nullzero"`
	CreatedAt       time.Time      `bun:"created_at"`
	Extra           map[string]any `bun:"extra,nullzero,type:jsonb"`
}

// Postgres reads knowledge chunks and trend reports from Postgres via bun.
type Postgres struct {
	db *bun.DB
}

// Dial opens and verifies a Postgres connection.
func Dial(ctx context.Context, cfg Config) (*Postgres, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("store dsn is required")
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 10 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithDialTimeout(dialTimeout),
	))
	db := bun.NewDB(sqldb, pgdialect.New())

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) recentChunksQuery(rows *[]chunkRow, window time.Duration, limit int) *bun.SelectQuery {
	q := p.db.NewSelect().Model(rows)
	if window > 0 {
		q = q.Where("c.timestamp >= ?", time.Now().UTC().Add(-window))
	}
	return q.OrderExpr("c.timestamp DESC NULLS LAST").Limit(limit)
}

func (p *Postgres) RecentChunks(ctx context.Context, window time.Duration, limit int) ([]contractx.KnowledgeChunk, error) {
	var rows []chunkRow

	if err := p.recentChunksQuery(&rows, window, limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: recent chunks: %v", contractx.ErrQuery, err)
	}

	chunks := make([]contractx.KnowledgeChunk, 0, len(rows))
	for _, row := range rows {
		chunks = append(chunks, contractx.KnowledgeChunk{
			ID:        row.ID,
			Content:   row.Content,
			Timestamp: row.Timestamp,
		})
	}
	return chunks, nil
}

func (p *Postgres) latestReportsQuery(rows *[]reportRow, query contractx.ReportQuery) *bun.SelectQuery {
	q := p.db.NewSelect().Model(rows).
		Where("r.confidence_score >= ?", query.MinConfidence)
	if field := strings.TrimSpace(query.Field); field != "" {
		q = q.Where("r.field = ?", field)
	}
	return q.OrderExpr("r.created_at DESC").Limit(query.Limit)
}

func (p *Postgres) LatestReports(ctx context.Context, query contractx.ReportQuery) ([]contractx.TrendReport, error) {
	var rows []reportRow

	if err := p.latestReportsQuery(&rows, query).Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: latest reports: %v", contractx.ErrQuery, err)
	}

	reports := make([]contractx.TrendReport, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, contractx.TrendReport{
			ID:              row.ID,
			TrendName:       row.TrendName,
			Analysis:        row.Analysis,
			Field:           row.Field,
			ConfidenceScore: row.ConfidenceScore,
			CreatedAt:       row.CreatedAt,
			Extra:           row.Extra,
		})
	}
	return reports, nil
}
