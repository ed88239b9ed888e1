package services

import (
	"fmt"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// Ledger errors wrap the apperrors kinds so callers can branch with errors.Is
// on either the specific condition or its category.
var (
	ErrUnbalancedTransaction    = fmt.Errorf("%w: debits and credits do not balance", apperrors.ErrValidation)
	ErrEmptyTransaction         = fmt.Errorf("%w: transaction has no active lines", apperrors.ErrValidation)
	ErrUnknownAccount           = fmt.Errorf("%w: line references an unknown account", apperrors.ErrValidation)
	ErrTransactionNotFound      = fmt.Errorf("%w: transaction not found", apperrors.ErrNotFound)
	ErrAccountNotFound          = fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
	ErrSubsidiaryNotFound       = fmt.Errorf("%w: subsidiary entity not found", apperrors.ErrNotFound)
	ErrFeeTemplateNotFound      = fmt.Errorf("%w: fee template not found", apperrors.ErrNotFound)
	ErrAmbiguousSubsidiaryMatch = domain.ErrAmbiguousSubsidiary
	ErrControlAccountMissing    = fmt.Errorf("%w: subsidiary journal has no line on its control account", apperrors.ErrValidation)
	ErrNonPositiveAmount        = fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	ErrAmountPrecision          = fmt.Errorf("%w: amount is not storable", apperrors.ErrValidation)
	ErrSubsidiaryOverdrawn      = fmt.Errorf("%w: posting exceeds the outstanding balance", apperrors.ErrValidation)
	ErrAssetNotFound            = fmt.Errorf("%w: fixed asset not found", apperrors.ErrNotFound)
)
