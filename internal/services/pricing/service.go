package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "folio/internal/errors"
	"folio/internal/logger"
	"folio/internal/utils"
)

const (
	priceTTL    = 5 * time.Minute
	coinListTTL = 24 * time.Hour

	fetchAttempts = 3
	fetchBackoff  = 500 * time.Millisecond
)

type service struct {
	gecko    CoinGeckoAPI
	coinbase CoinbaseAPI
	cache    Cache
}

// NewService creates a new pricing service.
func NewService(gecko CoinGeckoAPI, coinbase CoinbaseAPI, cache Cache) Service {
	if gecko == nil {
		panic("coingecko client is required")
	}
	return &service{
		gecko:    gecko,
		coinbase: coinbase,
		cache:    cache,
	}
}

func (s *service) GetPrices(ctx context.Context, ids []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(ids))
	var missing []string

	for _, id := range ids {
		if id == "" {
			continue
		}
		var cached float64
		if s.cache != nil {
			if ok, err := s.cache.Get(ctx, s.cache.PriceKey(id), &cached); err == nil && ok {
				prices[id] = cached
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return prices, nil
	}

	var fetched map[string]float64
	err := utils.Retry(ctx, fetchAttempts, fetchBackoff, func() error {
		var ferr error
		fetched, ferr = s.gecko.SimplePrice(ctx, missing)
		return ferr
	})
	if err != nil {
		return nil, fmt.Errorf("price batch failed: %w", err)
	}

	for id, price := range fetched {
		prices[id] = price
		if s.cache != nil {
			if cerr := s.cache.SetWithTTL(ctx, s.cache.PriceKey(id), price, priceTTL); cerr != nil {
				logger.GetLogger().WithError(cerr).Debug("price cache fill failed")
			}
		}
	}
	return prices, nil
}

func (s *service) GetPrice(ctx context.Context, id, symbol string) (float64, error) {
	if id != "" {
		prices, err := s.GetPrices(ctx, []string{id})
		if err == nil {
			if price, ok := prices[id]; ok {
				return price, nil
			}
		}
	}

	// CoinGecko miss: fall back to a Coinbase spot quote by symbol.
	if s.coinbase != nil && symbol != "" {
		price, err := s.coinbase.SpotPrice(ctx, symbol)
		if err == nil {
			return price, nil
		}
		logger.GetLogger().WithError(err).WithField("symbol", symbol).Debug("coinbase fallback failed")
	}

	return 0, apperrors.ErrPriceUnavailable
}

func (s *service) ResolveID(ctx context.Context, symbol string) (string, error) {
	if symbol == "" {
		return "", nil
	}

	catalogue, err := s.symbolCatalogue(ctx)
	if err != nil {
		return "", err
	}
	return catalogue[strings.ToLower(symbol)], nil
}

// symbolCatalogue returns the lowercase symbol-to-id map built from
// coins/list, cached for a day. On symbol collisions the first listing
// wins, matching coins/list order.
func (s *service) symbolCatalogue(ctx context.Context) (map[string]string, error) {
	var catalogue map[string]string
	if s.cache != nil {
		if ok, err := s.cache.Get(ctx, s.cache.CoinListKey(), &catalogue); err == nil && ok {
			return catalogue, nil
		}
	}

	entries, err := s.gecko.CoinsList(ctx)
	if err != nil {
		return nil, fmt.Errorf("coin list fetch failed: %w", err)
	}

	catalogue = make(map[string]string, len(entries))
	for _, e := range entries {
		key := strings.ToLower(e.Symbol)
		if _, exists := catalogue[key]; !exists {
			catalogue[key] = e.ID
		}
	}

	if s.cache != nil {
		if cerr := s.cache.SetWithTTL(ctx, s.cache.CoinListKey(), catalogue, coinListTTL); cerr != nil {
			logger.GetLogger().WithError(cerr).Debug("coin list cache fill failed")
		}
	}
	return catalogue, nil
}
