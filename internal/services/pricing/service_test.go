package pricing

import (
	"context"
	"testing"
	"time"

	"folio/internal/clients"
	apperrors "folio/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockGecko struct {
	mock.Mock
}

func (m *MockGecko) SimplePrice(ctx context.Context, ids []string) (map[string]float64, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *MockGecko) CoinsList(ctx context.Context) ([]clients.CoinListEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clients.CoinListEntry), args.Error(1)
}

type MockCoinbase struct {
	mock.Mock
}

func (m *MockCoinbase) SpotPrice(ctx context.Context, symbol string) (float64, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(float64), args.Error(1)
}

type MockPriceCache struct {
	mock.Mock
}

func (m *MockPriceCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockPriceCache) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockPriceCache) PriceKey(coinID string) string {
	args := m.Called(coinID)
	return args.String(0)
}

func (m *MockPriceCache) CoinListKey() string {
	args := m.Called()
	return args.String(0)
}

func TestPricingService_GetPrices(t *testing.T) {
	gecko := new(MockGecko)
	gecko.On("SimplePrice", mock.Anything, []string{"bitcoin", "tether"}).
		Return(map[string]float64{"bitcoin": 50000, "tether": 1.0}, nil)

	svc := NewService(gecko, nil, nil)

	prices, err := svc.GetPrices(context.Background(), []string{"bitcoin", "tether", ""})
	assert.NoError(t, err)
	assert.Equal(t, 50000.0, prices["bitcoin"])
	assert.Equal(t, 1.0, prices["tether"])
	gecko.AssertExpectations(t)
}

func TestPricingService_GetPricesCacheHitSkipsFetch(t *testing.T) {
	gecko := new(MockGecko)
	cache := new(MockPriceCache)

	cache.On("PriceKey", "bitcoin").Return("price:usd:bitcoin")
	cache.On("Get", mock.Anything, "price:usd:bitcoin", mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*float64) = 48000
		}).
		Return(true, nil)

	svc := NewService(gecko, nil, cache)

	prices, err := svc.GetPrices(context.Background(), []string{"bitcoin"})
	assert.NoError(t, err)
	assert.Equal(t, 48000.0, prices["bitcoin"])

	gecko.AssertNotCalled(t, "SimplePrice", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestPricingService_GetPriceCoinbaseFallback(t *testing.T) {
	gecko := new(MockGecko)
	coinbase := new(MockCoinbase)

	// CoinGecko knows nothing about the id.
	gecko.On("SimplePrice", mock.Anything, []string{"obscure-id"}).
		Return(map[string]float64{}, nil)
	coinbase.On("SpotPrice", mock.Anything, "OBS").Return(12.5, nil)

	svc := NewService(gecko, coinbase, nil)

	price, err := svc.GetPrice(context.Background(), "obscure-id", "OBS")
	assert.NoError(t, err)
	assert.Equal(t, 12.5, price)
	coinbase.AssertExpectations(t)
}

func TestPricingService_GetPriceUnavailable(t *testing.T) {
	gecko := new(MockGecko)
	coinbase := new(MockCoinbase)

	gecko.On("SimplePrice", mock.Anything, mock.Anything).
		Return(map[string]float64{}, nil)
	coinbase.On("SpotPrice", mock.Anything, "GHOST").Return(0.0, assert.AnError)

	svc := NewService(gecko, coinbase, nil)

	_, err := svc.GetPrice(context.Background(), "ghost-id", "GHOST")
	assert.ErrorIs(t, err, apperrors.ErrPriceUnavailable)
}

func TestPricingService_ResolveID(t *testing.T) {
	gecko := new(MockGecko)
	gecko.On("CoinsList", mock.Anything).Return([]clients.CoinListEntry{
		{ID: "tether", Symbol: "usdt", Name: "Tether"},
		{ID: "usdt-clone", Symbol: "usdt", Name: "Copycat"},
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"},
	}, nil)

	svc := NewService(gecko, nil, nil)
	ctx := context.Background()

	id, err := svc.ResolveID(ctx, "USDT")
	assert.NoError(t, err)
	assert.Equal(t, "tether", id, "first listing wins on symbol collision")

	id, err = svc.ResolveID(ctx, "btc")
	assert.NoError(t, err)
	assert.Equal(t, "bitcoin", id)

	id, err = svc.ResolveID(ctx, "NOPE")
	assert.NoError(t, err)
	assert.Empty(t, id)

	id, err = svc.ResolveID(ctx, "")
	assert.NoError(t, err)
	assert.Empty(t, id)
}
