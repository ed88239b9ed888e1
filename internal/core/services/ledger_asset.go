package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// --- Fixed Assets ---

func (s *ledgerService) RegisterAsset(ctx context.Context, req dto.CreateAssetRequest, actor string) (*domain.FixedAsset, error) {
	name, id, err := entityNameAndID(req.Name, req.AssetID)
	if err != nil {
		return nil, err
	}
	if !req.Cost.IsPositive() {
		return nil, fmt.Errorf("%w: asset cost", ErrNonPositiveAmount)
	}
	if err := checkAmount("asset cost", req.Cost); err != nil {
		return nil, err
	}
	if req.DepreciationAmount.IsNegative() || req.DepreciationAmount.GreaterThan(req.Cost) {
		return nil, fmt.Errorf("%w: depreciation amount must be between zero and the cost", apperrors.ErrValidation)
	}
	if err := checkAmount("depreciation amount", req.DepreciationAmount); err != nil {
		return nil, err
	}
	acquired, err := time.Parse(domain.DateLayout, strings.TrimSpace(req.AcquiredOn))
	if err != nil {
		return nil, fmt.Errorf("%w: acquisition date must look like %s", apperrors.ErrValidation, domain.DateLayout)
	}
	actor = actorOr(actor)

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts.get(req.AccountID)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrAccountNotFound, req.AccountID)
	}
	if account.AccountType != domain.Asset {
		return nil, fmt.Errorf("%w: account '%s' is not an asset", apperrors.ErrValidation, account.AccountID)
	}
	if s.assets.has(id) {
		return nil, fmt.Errorf("%w: asset '%s'", apperrors.ErrDuplicate, id)
	}
	now := s.now()
	asset := domain.FixedAsset{
		AssetID:            id,
		Name:               name,
		AccountID:          account.AccountID,
		Cost:               req.Cost,
		DepreciationAmount: req.DepreciationAmount,
		AcquiredOn:         acquired,
		AuditFields:        domain.AuditFields{CreatedAt: now, CreatedBy: actor},
	}
	audit := s.newAudit(now, actor, fmt.Sprintf("Registered asset %s at %s", name, req.Cost.StringFixed(2)), domain.ModuleAssets)

	if s.store != nil {
		if err := s.store.SaveAsset(ctx, asset, audit); err != nil {
			s.LogError(ctx, err, "Failed to persist asset", slog.String("asset_id", id))
			return nil, fmt.Errorf("failed to persist asset: %w", err)
		}
	}
	s.assets.add(id, asset)
	s.audit = append(s.audit, audit)
	return &asset, nil
}

func (s *ledgerService) GetAsset(ctx context.Context, assetID string) (*domain.AssetValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	asset, ok := s.assets.get(assetID)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrAssetNotFound, assetID)
	}
	value := domain.NewAssetValue(asset, s.accumulatedDepreciation(asset))
	return &value, nil
}

func (s *ledgerService) ListAssets(ctx context.Context) []domain.AssetValue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assets := s.assets.list()
	out := make([]domain.AssetValue, len(assets))
	for i, a := range assets {
		out[i] = domain.NewAssetValue(a, s.accumulatedDepreciation(a))
	}
	return out
}

// accumulatedDepreciation nets the credits tagged journals made to the
// asset's account. Caller holds the lock.
func (s *ledgerService) accumulatedDepreciation(asset domain.FixedAsset) decimal.Decimal {
	total := decimal.Zero
	for _, j := range s.journals {
		if j.Metadata[domain.MetaAssetID] != asset.AssetID {
			continue
		}
		for _, l := range j.Lines {
			if l.AccountID == asset.AccountID {
				total = total.Add(l.Credit).Sub(l.Debit)
			}
		}
	}
	return total
}

// assetCharge checks a journal tagged to a fixed asset: it must credit the
// asset's account and may not depreciate it below zero. Caller holds the lock.
func (s *ledgerService) assetCharge(assetID string, deltas map[string]decimal.Decimal) error {
	asset, ok := s.assets.get(assetID)
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrAssetNotFound, assetID)
	}
	delta, ok := deltas[asset.AccountID]
	if !ok || !delta.IsNegative() {
		return fmt.Errorf("%w: expected a credit to account '%s' for asset %s", apperrors.ErrValidation, asset.AccountID, assetID)
	}
	bookValue := asset.Cost.Sub(s.accumulatedDepreciation(asset))
	if delta.Neg().GreaterThan(bookValue) {
		return fmt.Errorf("%w: depreciation of %s exceeds the book value %s of %s",
			apperrors.ErrValidation, delta.Neg().String(), bookValue.String(), asset.Name)
	}
	return nil
}
