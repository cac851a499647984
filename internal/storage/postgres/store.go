package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ndtswap/internal/model"
	"ndtswap/internal/storage"
)

// Store provides Postgres persistence for pools, price history, and an audit
// trail of executed swaps.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// GetPool loads a pool row and its retained price history, oldest first.
func (s *Store) GetPool(ctx context.Context, id string) (model.LiquidityPool, error) {
	var p model.LiquidityPool
	row := s.pool.QueryRow(ctx, `
		SELECT pool_id, asset_a, asset_b, reserve_a, reserve_b, total_liquidity, volatility, last_update
		FROM pools WHERE pool_id = $1
	`, id)
	if err := row.Scan(&p.ID, &p.AssetA, &p.AssetB, &p.ReserveA, &p.ReserveB,
		&p.TotalLiquidity, &p.Volatility, &p.LastUpdate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LiquidityPool{}, fmt.Errorf("%w: %s", storage.ErrPoolNotFound, id)
		}
		return model.LiquidityPool{}, fmt.Errorf("load pool: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT ts, price, volume FROM price_points
		WHERE pool_id = $1
		ORDER BY ts DESC, seq DESC
		LIMIT $2
	`, id, model.PriceHistoryLimit)
	if err != nil {
		return model.LiquidityPool{}, fmt.Errorf("load price history: %w", err)
	}
	defer rows.Close()

	points := make([]model.PricePoint, 0, model.PriceHistoryLimit)
	for rows.Next() {
		var pt model.PricePoint
		if err := rows.Scan(&pt.Timestamp, &pt.Price, &pt.Volume); err != nil {
			return model.LiquidityPool{}, fmt.Errorf("scan price point: %w", err)
		}
		points = append(points, pt)
	}
	if err := rows.Err(); err != nil {
		return model.LiquidityPool{}, fmt.Errorf("read price history: %w", err)
	}

	// Query is newest-first for the LIMIT; history is kept oldest-first.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	p.PriceHistory = points

	return p, nil
}

// SavePool upserts the pool row and replaces its retained price history in a
// single transaction.
func (s *Store) SavePool(ctx context.Context, pool model.LiquidityPool) error {
	if pool.ID == "" {
		return fmt.Errorf("pool id is required")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO pools (
			pool_id, asset_a, asset_b, reserve_a, reserve_b, total_liquidity, volatility, last_update, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		ON CONFLICT (pool_id)
		DO UPDATE SET
			reserve_a = EXCLUDED.reserve_a,
			reserve_b = EXCLUDED.reserve_b,
			total_liquidity = EXCLUDED.total_liquidity,
			volatility = EXCLUDED.volatility,
			last_update = EXCLUDED.last_update,
			updated_at = now()
	`,
		pool.ID,
		pool.AssetA,
		pool.AssetB,
		pool.ReserveA,
		pool.ReserveB,
		pool.TotalLiquidity,
		pool.Volatility,
		pool.LastUpdate,
	); err != nil {
		return fmt.Errorf("upsert pool: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM price_points WHERE pool_id = $1`, pool.ID); err != nil {
		return fmt.Errorf("clear price history: %w", err)
	}

	batch := &pgx.Batch{}
	for seq, point := range pool.PriceHistory {
		batch.Queue(`
			INSERT INTO price_points (pool_id, seq, ts, price, volume)
			VALUES ($1, $2, $3, $4, $5)
		`, pool.ID, seq, point.Timestamp, point.Price, point.Volume)
	}
	br := tx.SendBatch(ctx, batch)
	for range pool.PriceHistory {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert price point: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RecordSwap appends an audit row for an executed swap.
func (s *Store) RecordSwap(ctx context.Context, poolID string, req model.SwapRequest, quote model.SwapQuote) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO swaps (
			pool_id, from_asset, to_asset, amount_in, amount_out, fee, algorithm, price_impact, volatility, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
	`,
		poolID,
		req.FromAsset,
		req.ToAsset,
		req.Amount,
		quote.OutputAmount,
		quote.FeeAmount,
		string(quote.Algorithm),
		quote.PriceImpact,
		quote.Volatility,
	)
	if err != nil {
		return fmt.Errorf("record swap: %w", err)
	}
	return nil
}
