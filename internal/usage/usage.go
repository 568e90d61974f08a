package usage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vnmchuo/ai-admin/internal/provider"
)

// Row is the usage of one model over a Range.
type Row struct {
	Model        string          `json:"model"`
	RequestCount int64           `json:"request_count"`
	TokensUsed   int64           `json:"tokens_used"`
	Cost         decimal.Decimal `json:"cost"`
}

func (r Row) Provider() provider.Provider {
	return provider.Classify(r.Model)
}

type Totals struct {
	Requests int64           `json:"requests"`
	Tokens   int64           `json:"tokens"`
	Cost     decimal.Decimal `json:"cost"`
}

type Report struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Rows   []Row  `json:"rows"`
	Totals Totals `json:"totals"`
}

// Store reads the usage log written by the request logger.
type Store interface {
	QueryByModel(ctx context.Context, rng Range) ([]Row, error)
}

func Summarize(rows []Row) Totals {
	t := Totals{Cost: decimal.Zero}
	for _, r := range rows {
		t.Requests += r.RequestCount
		t.Tokens += r.TokensUsed
		t.Cost = t.Cost.Add(r.Cost)
	}
	return t
}

// BuildReport runs the aggregate query and attaches totals.
func BuildReport(ctx context.Context, store Store, rng Range) (*Report, error) {
	rows, err := store.QueryByModel(ctx, rng)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}
	return &Report{
		From:   rng.FromDate(),
		To:     rng.ToDate(),
		Rows:   rows,
		Totals: Summarize(rows),
	}, nil
}
