package marketdata

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver registration
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// quotesQuery pulls one class strip. Numeric values arrive as text so
// they reach the decimal parser without a float round trip.
const quotesQuery = `
SELECT term, value::text, scale
FROM curve_quotes
WHERE class = $1 AND curve_date = $2
ORDER BY position`

// Store reads quote tables from Postgres.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open connects to Postgres and verifies the connection. A nil logger
// silences load diagnostics.
func Open(dsn string, logger *zerolog.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open store: ping: %w", err)
	}
	lg := zerolog.Nop()
	if logger != nil {
		lg = *logger
	}
	return &Store{db: db, log: lg}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Table loads the quote strip of one class for one curve date.
func (s *Store) Table(ctx context.Context, class string, curveDate time.Time) (*Table, error) {
	started := time.Now()
	rows, err := s.db.QueryContext(ctx, quotesQuery, class, curveDate)
	if err != nil {
		return nil, fmt.Errorf("quotes %s: %w", class, err)
	}
	defer rows.Close()

	t := &Table{Class: class, CurveDate: curveDate}
	for rows.Next() {
		var term, raw, scale string
		if err := rows.Scan(&term, &raw, &scale); err != nil {
			return nil, fmt.Errorf("quotes %s: scan: %w", class, err)
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("quotes %s %s: %w", class, term, err)
		}
		sc, err := ParseScale(scale)
		if err != nil {
			return nil, fmt.Errorf("quotes %s %s: %w", class, term, err)
		}
		if t.Scale == "" {
			t.Scale = sc
		} else if t.Scale != sc {
			return nil, fmt.Errorf("quotes %s: mixed scales %s and %s", class, t.Scale, sc)
		}
		t.Rows = append(t.Rows, Row{Term: term, Value: v})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quotes %s: %w", class, err)
	}
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("quotes %s: nothing stored for %s", class, curveDate.Format("2006-01-02"))
	}
	s.log.Debug().
		Str("class", class).
		Int("rows", len(t.Rows)).
		Dur("elapsed", time.Since(started)).
		Msg("loaded quote table")
	return t, nil
}

// Catalog loads several classes concurrently and keys them by class.
func (s *Store) Catalog(ctx context.Context, curveDate time.Time, classes ...string) (Catalog, error) {
	tables := make([]*Table, len(classes))
	g, gctx := errgroup.WithContext(ctx)
	for i, class := range classes {
		g.Go(func() error {
			t, err := s.Table(gctx, class, curveDate)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(Catalog, len(classes))
	for _, t := range tables {
		out[t.Class] = t
	}
	return out, nil
}
