package portfolio

import (
	"context"
	"fmt"
	"time"

	"folio/internal/clients"
	"folio/internal/logger"
	"folio/internal/models"
	"folio/internal/repositories"
	"folio/internal/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	snapshotTTL = 2 * time.Minute

	fetchAttempts = 2
	fetchBackoff  = time.Second

	// dashboardConcurrency bounds the per-user provider fan-out.
	dashboardConcurrency = 4
)

type service struct {
	fetcher   BalanceFetcher
	overrides OverrideResolver
	pricing   PriceSource
	wallets   WalletLister
	cache     Cache
	snapshots repositories.SnapshotRepository
}

// NewService creates a new portfolio service.
func NewService(
	fetcher BalanceFetcher,
	overrides OverrideResolver,
	pricing PriceSource,
	wallets WalletLister,
	cache Cache,
	snapshots repositories.SnapshotRepository,
) Service {
	if fetcher == nil {
		panic("balance fetcher is required")
	}
	if overrides == nil {
		panic("override resolver is required")
	}
	if pricing == nil {
		panic("pricing service is required")
	}
	return &service{
		fetcher:   fetcher,
		overrides: overrides,
		pricing:   pricing,
		wallets:   wallets,
		cache:     cache,
		snapshots: snapshots,
	}
}

func (s *service) GetPortfolio(ctx context.Context, userID uint, walletAddress, chain string) (*Portfolio, error) {
	if s.cache != nil {
		var cached Portfolio
		key := s.cache.PortfolioKey(userID, walletAddress, chain)
		if ok, err := s.cache.Get(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	p, err := s.buildPortfolio(ctx, userID, walletAddress, chain)
	if err != nil {
		return nil, err
	}

	s.store(ctx, userID, p)
	return p, nil
}

func (s *service) GetDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	wallets, err := s.wallets.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	if len(wallets) == 0 {
		return nil, ErrNoTrackedWallets
	}

	entries := make([]DashboardEntry, len(wallets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dashboardConcurrency)

	for i, w := range wallets {
		i, w := i, w
		g.Go(func() error {
			p, perr := s.GetPortfolio(gctx, userID, w.Address, w.Chain)
			if perr != nil {
				// Degrade per wallet instead of failing the dashboard.
				entries[i] = DashboardEntry{Wallet: w, Error: perr.Error()}
				return nil
			}
			entries[i] = DashboardEntry{Wallet: w, Portfolio: p}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, e := range entries {
		if e.Portfolio != nil {
			total = total.Add(e.Portfolio.TotalValueUSD)
		}
	}

	return &Dashboard{
		Wallets:       entries,
		TotalValueUSD: total,
		UpdatedAt:     time.Now().UTC(),
	}, nil
}

func (s *service) RefreshSnapshot(ctx context.Context, snapshot models.PortfolioSnapshot) error {
	if s.cache != nil {
		key := s.cache.PortfolioKey(snapshot.UserID, snapshot.WalletAddress, snapshot.Chain)
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.GetLogger().WithError(err).Debug("failed to drop stale portfolio key")
		}
	}

	p, err := s.buildPortfolio(ctx, snapshot.UserID, snapshot.WalletAddress, snapshot.Chain)
	if err != nil {
		return fmt.Errorf("refresh failed for %s: %w", snapshot.WalletAddress, err)
	}

	s.store(ctx, snapshot.UserID, p)
	if s.snapshots != nil {
		return s.snapshots.ClearNeedsRefresh(ctx, snapshot.ID)
	}
	return nil
}

// buildPortfolio runs the full fetch-normalize-resolve-price-aggregate
// pipeline for one wallet.
func (s *service) buildPortfolio(ctx context.Context, userID uint, walletAddress, chain string) (*Portfolio, error) {
	chainBalance, err := s.fetchWithRetry(ctx, walletAddress, chain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBalanceFetchFailed, err)
	}

	balances, err := Normalize(chainBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize balances: %w", err)
	}

	ov, err := s.overrides.Resolve(ctx, userID, &walletAddress, true)
	if err != nil {
		return nil, err
	}

	plan := BuildPlan(balances, ov)

	// Tokens with no override still get a best-effort coingecko id from
	// the symbol catalogue.
	for i := range balances {
		if plan.IDs[i] == "" && !plan.Excluded[i] {
			id, rerr := s.pricing.ResolveID(ctx, balances[i].Symbol)
			if rerr == nil {
				plan.IDs[i] = id
			}
		}
	}

	prices, err := s.pricing.GetPrices(ctx, plan.UniqueIDs())
	if err != nil {
		// Partial degradation: continue unpriced, per-symbol fallback below.
		logger.GetLogger().WithError(err).Warn("price batch failed")
		prices = map[string]float64{}
	}

	// Per-symbol fallback for tokens the batch could not price.
	for i := range balances {
		if plan.Excluded[i] || balances[i].Symbol == "" {
			continue
		}
		if _, ok := prices[plan.IDs[i]]; ok && plan.IDs[i] != "" {
			continue
		}
		price, perr := s.pricing.GetPrice(ctx, plan.IDs[i], balances[i].Symbol)
		if perr == nil {
			balances[i].PriceUSD = decimal.NewFromFloat(price)
		}
	}

	tokens, total := Aggregate(balances, plan, prices)

	return &Portfolio{
		WalletAddress: walletAddress,
		Chain:         chain,
		Tokens:        tokens,
		TotalValueUSD: total,
		UpdatedAt:     time.Now().UTC(),
	}, nil
}

func (s *service) fetchWithRetry(ctx context.Context, walletAddress, chain string) (clients.ChainBalance, error) {
	var cb clients.ChainBalance
	err := utils.Retry(ctx, fetchAttempts, fetchBackoff, func() error {
		var ferr error
		cb, ferr = s.fetcher.FetchBalances(ctx, walletAddress, chain)
		return ferr
	})
	return cb, err
}

// store caches the portfolio and persists the durable snapshot row.
// Both writes are best-effort.
func (s *service) store(ctx context.Context, userID uint, p *Portfolio) {
	if s.cache != nil {
		key := s.cache.PortfolioKey(userID, p.WalletAddress, p.Chain)
		if err := s.cache.SetWithTTL(ctx, key, p, snapshotTTL); err != nil {
			logger.GetLogger().WithError(err).Debug("portfolio cache write failed")
		}
	}

	if s.snapshots != nil {
		totalValue, _ := p.TotalValueUSD.Float64()
		snapshot := &models.PortfolioSnapshot{
			UserID:        userID,
			WalletAddress: p.WalletAddress,
			Chain:         p.Chain,
			Data:          models.JSON{"tokens": p.Tokens},
			TotalValueUSD: totalValue,
			NeedsRefresh:  false,
		}
		if err := s.snapshots.Upsert(ctx, snapshot); err != nil {
			logger.GetLogger().WithError(err).Debug("snapshot write failed")
		}
	}
}
