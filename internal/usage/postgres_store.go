package usage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PostgresStore struct {
	db     DB
	tracer trace.Tracer
}

func NewPostgresStore(db DB, tracer trace.Tracer) Store {
	return &PostgresStore{db: db, tracer: tracer}
}

func (s *PostgresStore) QueryByModel(ctx context.Context, rng Range) ([]Row, error) {
	ctx, span := s.tracer.Start(ctx, "usage.query_by_model")
	defer span.End()
	span.SetAttributes(
		attribute.String("usage.from", rng.FromDate()),
		attribute.String("usage.to", rng.ToDate()),
	)

	query := `
		SELECT model,
		       COUNT(*),
		       COALESCE(SUM(tokens_used), 0)::bigint,
		       COALESCE(SUM(cost), 0)::text
		FROM ai_usage_logs
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		GROUP BY model
	`
	rows, err := s.db.Query(ctx, query, rng.From, rng.To)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to query usage: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r    Row
			cost string
		)
		if err := rows.Scan(&r.Model, &r.RequestCount, &r.TokensUsed, &cost); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		r.Cost, err = decimal.NewFromString(cost)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cost %q for model %s: %w", cost, r.Model, err)
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating usage rows: %w", err)
	}

	span.SetAttributes(attribute.Int("usage.models", len(out)))
	return out, nil
}
