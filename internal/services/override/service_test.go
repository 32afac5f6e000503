package override

import (
	"context"
	"sort"
	"testing"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// fakeOverrideRepo is an in-memory OverrideRepository with the same
// scoping rules as the real implementation, so service round-trips can
// be exercised without a database.
type fakeOverrideRepo struct {
	rows   []models.TokenOverride
	nextID uint
}

func newFakeOverrideRepo() *fakeOverrideRepo {
	return &fakeOverrideRepo{nextID: 1}
}

func (f *fakeOverrideRepo) GetActive(_ context.Context, userID uint, walletAddress *string, includeGlobal bool) ([]models.TokenOverride, error) {
	var out []models.TokenOverride
	for _, r := range f.rows {
		if r.UserID != userID || !r.IsActive {
			continue
		}
		switch {
		case walletAddress == nil:
			if r.WalletAddress != nil {
				continue
			}
		case includeGlobal:
			if r.WalletAddress != nil && *r.WalletAddress != *walletAddress {
				continue
			}
		default:
			if r.WalletAddress == nil || *r.WalletAddress != *walletAddress {
				continue
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeOverrideRepo) matchesKey(r models.TokenOverride, userID uint, contractAddress, symbol, chain, overrideType string, walletAddress *string) bool {
	if r.UserID != userID || !r.IsActive || r.Chain != chain || r.OverrideType != overrideType {
		return false
	}
	if contractAddress != "" {
		if r.ContractAddress != contractAddress {
			return false
		}
	} else if r.Symbol != symbol {
		return false
	}
	if walletAddress == nil {
		return r.WalletAddress == nil
	}
	return r.WalletAddress != nil && *r.WalletAddress == *walletAddress
}

func (f *fakeOverrideRepo) ReplaceActive(_ context.Context, o *models.TokenOverride) error {
	for i, r := range f.rows {
		if f.matchesKey(r, o.UserID, o.ContractAddress, o.Symbol, o.Chain, o.OverrideType, o.WalletAddress) {
			f.rows[i].IsActive = false
			f.rows[i].Action = models.OverrideActionUpdate
		}
	}
	row := *o
	row.ID = f.nextID
	f.nextID++
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeOverrideRepo) Deactivate(_ context.Context, key repositories.OverrideKey) (int64, error) {
	var affected int64
	for i, r := range f.rows {
		if f.matchesKey(r, key.UserID, key.ContractAddress, key.Symbol, key.Chain, key.OverrideType, key.WalletAddress) {
			f.rows[i].IsActive = false
			f.rows[i].Action = models.OverrideActionDelete
			affected++
		}
	}
	return affected, nil
}

func (f *fakeOverrideRepo) DeactivateWallet(_ context.Context, userID uint, walletAddress string) (int64, error) {
	var affected int64
	for i, r := range f.rows {
		if r.UserID != userID || !r.IsActive || r.WalletAddress == nil || *r.WalletAddress != walletAddress {
			continue
		}
		f.rows[i].IsActive = false
		f.rows[i].Action = models.OverrideActionBulkDelete
		affected++
	}
	return affected, nil
}

func (f *fakeOverrideRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]models.TokenOverride, int64, error) {
	var all []models.TokenOverride
	for _, r := range f.rows {
		if r.UserID == userID {
			all = append(all, r)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// activeCount counts the active rows per compound key to check the
// one-active-row-per-key property after mutations.
func (f *fakeOverrideRepo) activeCount(userID uint, contractAddress, symbol, chain, overrideType string, walletAddress *string) int {
	n := 0
	for _, r := range f.rows {
		if f.matchesKey(r, userID, contractAddress, symbol, chain, overrideType, walletAddress) {
			n++
		}
	}
	return n
}

type MockOverrideRepo struct {
	mock.Mock
}

func (m *MockOverrideRepo) GetActive(ctx context.Context, userID uint, walletAddress *string, includeGlobal bool) ([]models.TokenOverride, error) {
	args := m.Called(ctx, userID, walletAddress, includeGlobal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TokenOverride), args.Error(1)
}

func (m *MockOverrideRepo) ReplaceActive(ctx context.Context, o *models.TokenOverride) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOverrideRepo) Deactivate(ctx context.Context, key repositories.OverrideKey) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOverrideRepo) DeactivateWallet(ctx context.Context, userID uint, walletAddress string) (int64, error) {
	args := m.Called(ctx, userID, walletAddress)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOverrideRepo) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.TokenOverride, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.TokenOverride), args.Get(1).(int64), args.Error(2)
}

func strptr(s string) *string { return &s }

func upsertReq(symbol, chain string, value *string, wallet *string) MutationRequest {
	return MutationRequest{
		Symbol:        symbol,
		Chain:         chain,
		OverrideType:  models.OverrideTypeSymbol,
		OverrideValue: value,
		WalletAddress: wallet,
		Action:        models.OverrideActionUpsert,
	}
}

func TestOverrideService_UpsertThenResolve(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	err := svc.Upsert(ctx, 1, upsertReq("NEWTOKEN", "eth", strptr("newtoken-id"), nil))
	assert.NoError(t, err)

	wallet := "0xabc"
	resolved, err := svc.Resolve(ctx, 1, &wallet, true)
	assert.NoError(t, err)

	v, ok := resolved.SymbolValue("NEWTOKEN")
	assert.True(t, ok)
	if assert.NotNil(t, v) {
		assert.Equal(t, "newtoken-id", *v)
	}
}

func TestOverrideService_WalletOverrideWinsOverGlobal(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	wallet := "0xabc"

	assert.NoError(t, svc.Upsert(ctx, 1, upsertReq("USDT", "eth", strptr("tether"), nil)))
	assert.NoError(t, svc.Upsert(ctx, 1, upsertReq("USDT", "eth", strptr("tether-wallet"), &wallet)))

	resolved, err := svc.Resolve(ctx, 1, &wallet, true)
	assert.NoError(t, err)

	v, ok := resolved.SymbolValue("USDT")
	assert.True(t, ok)
	if assert.NotNil(t, v) {
		assert.Equal(t, "tether-wallet", *v)
	}

	// A different wallet only sees the global row.
	other := "0xdef"
	resolved, err = svc.Resolve(ctx, 1, &other, true)
	assert.NoError(t, err)
	v, ok = resolved.SymbolValue("USDT")
	assert.True(t, ok)
	if assert.NotNil(t, v) {
		assert.Equal(t, "tether", *v)
	}
}

func TestOverrideService_NilValueIsExclusionNotAbsence(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	assert.NoError(t, svc.Upsert(ctx, 1, upsertReq("SCAM", "eth", nil, nil)))

	wallet := "0xabc"
	resolved, err := svc.Resolve(ctx, 1, &wallet, true)
	assert.NoError(t, err)

	v, ok := resolved.SymbolValue("SCAM")
	assert.True(t, ok, "excluded token must be present in the map")
	assert.Nil(t, v)

	_, ok = resolved.SymbolValue("ABSENT")
	assert.False(t, ok, "tokens with no override must be absent")
}

func TestOverrideService_LegacyRowResolvesByContractAddress(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	// Legacy symbol override recorded without a symbol.
	err := svc.Upsert(ctx, 1, MutationRequest{
		ContractAddress: "0xfeed",
		Chain:           "eth",
		OverrideType:    models.OverrideTypeSymbol,
		OverrideValue:   strptr("some-id"),
		Action:          models.OverrideActionUpsert,
	})
	assert.NoError(t, err)

	wallet := "0xabc"
	resolved, err := svc.Resolve(ctx, 1, &wallet, true)
	assert.NoError(t, err)

	v, ok := resolved.SymbolValue("0xfeed")
	assert.True(t, ok)
	if assert.NotNil(t, v) {
		assert.Equal(t, "some-id", *v)
	}
}

func TestOverrideService_UpsertReplacesNotDuplicates(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	assert.NoError(t, svc.Upsert(ctx, 1, upsertReq("USDT", "eth", strptr("tether"), nil)))
	assert.NoError(t, svc.Upsert(ctx, 1, upsertReq("USDT", "eth", strptr("tether-v2"), nil)))

	assert.Equal(t, 1, repo.activeCount(1, "", "USDT", "eth", models.OverrideTypeSymbol, nil))

	wallet := "0xabc"
	resolved, err := svc.Resolve(ctx, 1, &wallet, true)
	assert.NoError(t, err)
	v, _ := resolved.SymbolValue("USDT")
	if assert.NotNil(t, v) {
		assert.Equal(t, "tether-v2", *v)
	}

	// History keeps the superseded row.
	history, total, err := svc.History(ctx, 1, 0, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, history, 2)
}

func TestOverrideService_DeleteRemovesFromResolution(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	assert.NoError(t, svc.Upsert(ctx, 1, upsertReq("USDT", "eth", strptr("tether"), nil)))
	assert.NoError(t, svc.Delete(ctx, 1, MutationRequest{
		Symbol:       "USDT",
		Chain:        "eth",
		OverrideType: models.OverrideTypeSymbol,
		Action:       models.OverrideActionDelete,
	}))

	wallet := "0xabc"
	resolved, err := svc.Resolve(ctx, 1, &wallet, true)
	assert.NoError(t, err)
	_, ok := resolved.SymbolValue("USDT")
	assert.False(t, ok)
}

func TestOverrideService_DeleteMissingReturnsNotFound(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := NewService(repo, nil)

	err := svc.Delete(context.Background(), 1, MutationRequest{
		Symbol:       "GHOST",
		Chain:        "eth",
		OverrideType: models.OverrideTypeSymbol,
		Action:       models.OverrideActionDelete,
	})
	assert.ErrorIs(t, err, apperrors.ErrOverrideNotFound)
}

func TestOverrideService_BulkDeleteScopesToWallet(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	wallet := "0xabc"

	assert.NoError(t, svc.Upsert(ctx, 1, upsertReq("AAA", "eth", strptr("aaa"), &wallet)))
	assert.NoError(t, svc.Upsert(ctx, 1, upsertReq("BBB", "eth", strptr("bbb"), &wallet)))
	assert.NoError(t, svc.Upsert(ctx, 1, upsertReq("GGG", "eth", strptr("ggg"), nil)))

	assert.NoError(t, svc.BulkDelete(ctx, 1, wallet))

	resolved, err := svc.Resolve(ctx, 1, &wallet, true)
	assert.NoError(t, err)
	_, ok := resolved.SymbolValue("AAA")
	assert.False(t, ok)
	_, ok = resolved.SymbolValue("BBB")
	assert.False(t, ok)

	// Global rows survive a wallet bulk delete.
	_, ok = resolved.SymbolValue("GGG")
	assert.True(t, ok)
}

func TestOverrideService_ResolveWithoutGlobals(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	wallet := "0xabc"

	assert.NoError(t, svc.Upsert(ctx, 1, upsertReq("GGG", "eth", strptr("ggg"), nil)))
	assert.NoError(t, svc.Upsert(ctx, 1, upsertReq("WWW", "eth", strptr("www"), &wallet)))

	resolved, err := svc.Resolve(ctx, 1, &wallet, false)
	assert.NoError(t, err)
	_, ok := resolved.SymbolValue("GGG")
	assert.False(t, ok)
	_, ok = resolved.SymbolValue("WWW")
	assert.True(t, ok)
}

func TestOverrideService_Apply(t *testing.T) {
	tests := []struct {
		name    string
		req     MutationRequest
		wantErr error
	}{
		{
			name:    "unknown action rejected",
			req:     MutationRequest{Action: "restore"},
			wantErr: apperrors.ErrInvalidOverrideAction,
		},
		{
			name: "bulk delete needs wallet",
			req:  MutationRequest{Action: models.OverrideActionBulkDelete},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeOverrideRepo(), nil)
			err := svc.Apply(context.Background(), 1, tt.req)
			assert.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestOverrideService_UpsertConflict(t *testing.T) {
	repo := new(MockOverrideRepo)
	repo.On("ReplaceActive", mock.Anything, mock.Anything).Return(repositories.ErrOverrideConflict)

	svc := NewService(repo, nil)
	err := svc.Upsert(context.Background(), 1, upsertReq("USDT", "eth", strptr("tether"), nil))
	assert.ErrorIs(t, err, apperrors.ErrOverrideConflict)
	repo.AssertExpectations(t)
}

func TestOverrideService_ResolveRepoFailure(t *testing.T) {
	repo := new(MockOverrideRepo)
	repo.On("GetActive", mock.Anything, uint(1), mock.Anything, true).
		Return(nil, assert.AnError)

	svc := NewService(repo, nil)
	wallet := "0xabc"
	_, err := svc.Resolve(context.Background(), 1, &wallet, true)
	assert.ErrorIs(t, err, ErrFetchFailed)
	repo.AssertExpectations(t)
}
