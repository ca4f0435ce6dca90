package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/poolwatch/poolwatch/internal/logger"
	"github.com/poolwatch/poolwatch/internal/types"
)

var staticLogger = logger.GetForComponent("static_store")

// StaticStore is an in-memory implementation of all three provider
// capabilities, loadable from a JSON fixture file. Safe for concurrent
// readers. Addresses are matched case-insensitively.
type StaticStore struct {
	mu     sync.RWMutex
	pools  map[string]types.PoolSnapshot
	tokens map[string]types.TokenInfo
	prices map[string]types.PriceInfo
}

// fixtureFile is the on-disk shape of a static data set.
type fixtureFile struct {
	Pools  []types.PoolSnapshot `json:"pools"`
	Tokens []types.TokenInfo    `json:"tokens"`
	Prices []types.PriceInfo    `json:"prices"`
}

func NewStaticStore() *StaticStore {
	return &StaticStore{
		pools:  make(map[string]types.PoolSnapshot),
		tokens: make(map[string]types.TokenInfo),
		prices: make(map[string]types.PriceInfo),
	}
}

// LoadStaticStore reads a JSON fixture file and builds a store from it.
func LoadStaticStore(path string) (*StaticStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var fixture fixtureFile
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file %s: %w", path, err)
	}

	store := NewStaticStore()
	for _, pool := range fixture.Pools {
		store.AddPool(pool)
	}
	for _, token := range fixture.Tokens {
		store.AddToken(token)
	}
	for _, price := range fixture.Prices {
		store.AddPrice(price)
	}

	staticLogger.Info().
		Str("path", path).
		Int("pools", len(fixture.Pools)).
		Int("tokens", len(fixture.Tokens)).
		Int("prices", len(fixture.Prices)).
		Msg("Loaded static fixture data")

	return store, nil
}

// AddPool registers a pool snapshot, keyed by both id and address.
func (s *StaticStore) AddPool(pool types.PoolSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pools[strings.ToLower(pool.ID)] = pool
	if pool.Address != "" {
		s.pools[strings.ToLower(pool.Address)] = pool
	}
}

func (s *StaticStore) AddToken(token types.TokenInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[strings.ToLower(token.Address)] = token
}

func (s *StaticStore) AddPrice(price types.PriceInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[strings.ToLower(price.Address)] = price
}

// RemovePrice drops a token's price, returning the store to the
// price-unknown state for that address.
func (s *StaticStore) RemovePrice(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.prices, strings.ToLower(address))
}

func (s *StaticStore) GetPool(_ context.Context, id string) (types.PoolSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pool, ok := s.pools[strings.ToLower(id)]
	if !ok {
		return types.PoolSnapshot{}, fmt.Errorf("%w: %s", ErrPoolNotFound, id)
	}
	return pool, nil
}

func (s *StaticStore) ListPools(_ context.Context) ([]types.PoolSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool, len(s.pools))
	pools := make([]types.PoolSnapshot, 0, len(s.pools))
	for _, pool := range s.pools {
		if seen[pool.ID] {
			continue
		}
		seen[pool.ID] = true
		pools = append(pools, pool)
	}
	return pools, nil
}

func (s *StaticStore) GetToken(_ context.Context, address string) (types.TokenInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[strings.ToLower(address)]
	if !ok {
		return types.TokenInfo{}, fmt.Errorf("%w: %s", ErrTokenNotFound, address)
	}
	return token, nil
}

func (s *StaticStore) GetPrice(_ context.Context, address string) (types.PriceInfo, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	price, ok := s.prices[strings.ToLower(address)]
	if !ok {
		return types.PriceInfo{}, false, nil
	}
	return price, true, nil
}
