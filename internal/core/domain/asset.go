package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetaAssetID tags a depreciation journal to a registered fixed asset.
const MetaAssetID = "assetId"

// FixedAsset is an item of property or equipment carried on an asset account.
type FixedAsset struct {
	AssetID            string          `json:"assetID"`
	Name               string          `json:"name"`
	AccountID          string          `json:"accountID"`
	Cost               decimal.Decimal `json:"cost"`
	DepreciationAmount decimal.Decimal `json:"depreciationAmount"` // Charge per depreciation run
	AcquiredOn         time.Time       `json:"acquiredOn"`
	AuditFields
}

// AssetValue is a fixed asset with the depreciation posted against it so far.
type AssetValue struct {
	FixedAsset
	AccumulatedDepreciation decimal.Decimal `json:"accumulatedDepreciation"`
	BookValue               decimal.Decimal `json:"bookValue"` // Cost - AccumulatedDepreciation
}

// NewAssetValue derives the book value of asset.
func NewAssetValue(asset FixedAsset, accumulated decimal.Decimal) AssetValue {
	return AssetValue{
		FixedAsset:              asset,
		AccumulatedDepreciation: accumulated,
		BookValue:               asset.Cost.Sub(accumulated),
	}
}
