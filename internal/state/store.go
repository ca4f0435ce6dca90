// ./internal/state/store.go
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/poolwatch/poolwatch/internal/logger"
	"github.com/poolwatch/poolwatch/internal/provider"
	"github.com/poolwatch/poolwatch/internal/types"
	"github.com/poolwatch/poolwatch/internal/utils"
)

var storeLogger = logger.GetForComponent("state_store")

// Store exposes the Postgres-backed pool, token and price providers, plus
// persistence of computed valuation snapshots. It rides on the global DB
// pool initialized by InitDB.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store over the initialized global connection pool.
func NewStore() (*Store, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return &Store{db: DB}, nil
}

// GetPool loads a pool snapshot and its ordered token rows by id or address.
func (s *Store) GetPool(ctx context.Context, id string) (types.PoolSnapshot, error) {
	var pool types.PoolSnapshot
	var swapFee sql.NullString

	row := s.db.QueryRowContext(ctx, `
		SELECT pool_id, address, pool_type, swap_fee
		FROM pools
		WHERE pool_id = $1 OR LOWER(address) = LOWER($1)
	`, id)
	if err := row.Scan(&pool.ID, &pool.Address, (*string)(&pool.Type), &swapFee); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.PoolSnapshot{}, fmt.Errorf("%w: %s", provider.ErrPoolNotFound, id)
		}
		return types.PoolSnapshot{}, fmt.Errorf("failed to query pool %s: %w", id, err)
	}
	if swapFee.Valid {
		fee, err := sdkmath.LegacyNewDecFromStr(swapFee.String)
		if err != nil {
			return types.PoolSnapshot{}, fmt.Errorf("invalid swap fee for pool %s: %w", id, err)
		}
		pool.SwapFee = fee
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT token_address, raw_balance, weight, price_rate
		FROM pool_tokens
		WHERE pool_id = $1
		ORDER BY token_index
	`, pool.ID)
	if err != nil {
		return types.PoolSnapshot{}, fmt.Errorf("failed to query tokens of pool %s: %w", id, err)
	}
	defer rows.Close()

	var haveWeights, haveRates bool
	for rows.Next() {
		var address, rawBalance string
		var weight, priceRate sql.NullString
		if err := rows.Scan(&address, &rawBalance, &weight, &priceRate); err != nil {
			return types.PoolSnapshot{}, fmt.Errorf("failed to scan token row of pool %s: %w", id, err)
		}

		balance, err := utils.ParseRawBalance(rawBalance)
		if err != nil {
			return types.PoolSnapshot{}, fmt.Errorf("invalid balance for pool %s token %s: %w", id, address, err)
		}
		pool.Tokens = append(pool.Tokens, address)
		pool.Balances = append(pool.Balances, balance)

		w, ok, err := parseOptionalDec(weight)
		if err != nil {
			return types.PoolSnapshot{}, fmt.Errorf("invalid weight for pool %s token %s: %w", id, address, err)
		}
		if ok {
			haveWeights = true
		}
		pool.Weights = append(pool.Weights, w)

		r, ok, err := parseOptionalDec(priceRate)
		if err != nil {
			return types.PoolSnapshot{}, fmt.Errorf("invalid price rate for pool %s token %s: %w", id, address, err)
		}
		if ok {
			haveRates = true
		}
		pool.PriceRates = append(pool.PriceRates, r)
	}
	if err := rows.Err(); err != nil {
		return types.PoolSnapshot{}, fmt.Errorf("failed to iterate token rows of pool %s: %w", id, err)
	}

	// Columns absent for the whole pool mean the attribute does not apply to
	// this variant; drop the parallel slice entirely in that case.
	if !haveWeights {
		pool.Weights = nil
	}
	if !haveRates {
		pool.PriceRates = nil
	}

	return pool, nil
}

// ListPools loads every stored pool snapshot.
func (s *Store) ListPools(ctx context.Context) ([]types.PoolSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pool_id FROM pools ORDER BY pool_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan pool id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pool ids: %w", err)
	}

	pools := make([]types.PoolSnapshot, 0, len(ids))
	for _, id := range ids {
		pool, err := s.GetPool(ctx, id)
		if err != nil {
			return nil, err
		}
		pools = append(pools, pool)
	}
	return pools, nil
}

// GetToken loads token decimal metadata by address.
func (s *Store) GetToken(ctx context.Context, address string) (types.TokenInfo, error) {
	var token types.TokenInfo
	row := s.db.QueryRowContext(ctx, `
		SELECT address, symbol, decimals FROM tokens WHERE LOWER(address) = LOWER($1)
	`, address)
	if err := row.Scan(&token.Address, &token.Symbol, &token.Decimals); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.TokenInfo{}, fmt.Errorf("%w: %s", provider.ErrTokenNotFound, address)
		}
		return types.TokenInfo{}, fmt.Errorf("failed to query token %s: %w", address, err)
	}
	return token, nil
}

// GetPrice loads a token's USD price. A missing row is the price-unknown
// state, not an error.
func (s *Store) GetPrice(ctx context.Context, address string) (types.PriceInfo, bool, error) {
	var priceStr string
	var asOf time.Time
	row := s.db.QueryRowContext(ctx, `
		SELECT price_usd, as_of FROM prices WHERE LOWER(token_address) = LOWER($1)
	`, address)
	if err := row.Scan(&priceStr, &asOf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.PriceInfo{}, false, nil
		}
		return types.PriceInfo{}, false, fmt.Errorf("failed to query price of %s: %w", address, err)
	}

	price, err := sdkmath.LegacyNewDecFromStr(priceStr)
	if err != nil {
		return types.PriceInfo{}, false, fmt.Errorf("invalid stored price for %s: %w", address, err)
	}
	return types.PriceInfo{Address: address, PriceUSD: price, AsOf: asOf}, true, nil
}

// SaveValuationSnapshot persists a computed liquidity figure for audit and
// history queries.
func (s *Store) SaveValuationSnapshot(ctx context.Context, poolID, liquidityUSD string) (int64, error) {
	var snapshotID int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO valuation_snapshots (pool_id, liquidity_usd)
		VALUES ($1, $2)
		RETURNING snapshot_id
	`, poolID, liquidityUSD).Scan(&snapshotID)
	if err != nil {
		return 0, fmt.Errorf("failed to save valuation snapshot for pool %s: %w", poolID, err)
	}

	storeLogger.Debug().
		Str("poolID", poolID).
		Str("liquidityUSD", liquidityUSD).
		Int64("snapshotID", snapshotID).
		Msg("Saved valuation snapshot")

	return snapshotID, nil
}

func parseOptionalDec(v sql.NullString) (sdkmath.LegacyDec, bool, error) {
	if !v.Valid || v.String == "" {
		return sdkmath.LegacyDec{}, false, nil
	}
	d, err := sdkmath.LegacyNewDecFromStr(v.String)
	if err != nil {
		return sdkmath.LegacyDec{}, false, err
	}
	return d, true, nil
}
