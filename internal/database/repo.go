package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	// ErrDuplicateSymbol is returned by Create when the symbol already has a
	// row in the portfolio. Symbol is the natural key.
	ErrDuplicateSymbol = errors.New("holding already exists")

	// ErrNoSuchSymbol is returned by Update and Delete when no row matched.
	ErrNoSuchSymbol = errors.New("no holding with that symbol")
)

type Repo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func New(db *sqlx.DB, log *logrus.Logger) *Repo {
	return &Repo{db: db, log: log}
}

// Portfolio returns a store view bound to a single portfolio. The portfolios
// are fully independent; a bound store never sees another portfolio's rows.
func (r *Repo) Portfolio(name string) *PortfolioStore {
	return &PortfolioStore{repo: r, portfolio: name}
}

type PortfolioStore struct {
	repo      *Repo
	portfolio string
}

func (s *PortfolioStore) List(ctx context.Context) ([]Holding, error) {
	rows, err := s.repo.db.QueryxContext(ctx,
		`SELECT symbol, shares FROM holdings WHERE portfolio = $1 ORDER BY symbol ASC`, s.portfolio)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []Holding{}
	for rows.Next() {
		var h Holding
		if err := rows.StructScan(&h); err != nil {
			s.repo.log.Warnf("scan holding failed: %v", err)
			continue
		}
		res = append(res, h)
	}
	return res, nil
}

func (s *PortfolioStore) Create(ctx context.Context, symbol string, shares decimal.Decimal) error {
	_, err := s.repo.db.ExecContext(ctx,
		`INSERT INTO holdings (portfolio, symbol, shares, updated_at) VALUES ($1, $2, $3::numeric, now())`,
		s.portfolio, symbol, shares.String())
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("%w: %s", ErrDuplicateSymbol, symbol)
		}
		return err
	}
	return nil
}

func (s *PortfolioStore) Update(ctx context.Context, symbol string, shares decimal.Decimal) error {
	res, err := s.repo.db.ExecContext(ctx,
		`UPDATE holdings SET shares = $1::numeric, updated_at = now() WHERE portfolio = $2 AND symbol = $3`,
		shares.String(), s.portfolio, symbol)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchSymbol, symbol)
	}
	return nil
}

func (s *PortfolioStore) Delete(ctx context.Context, symbol string) error {
	res, err := s.repo.db.ExecContext(ctx,
		`DELETE FROM holdings WHERE portfolio = $1 AND symbol = $2`, s.portfolio, symbol)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchSymbol, symbol)
	}
	return nil
}
