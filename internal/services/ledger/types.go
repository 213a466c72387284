package ledger

import "errors"

// SystemSenderID marks mint records: supply created out of nothing has no
// real sender account.
const SystemSenderID = "system"

const (
	// StartingCredits is granted to every account on first touch.
	StartingCredits int64 = 200

	// TokensPerCredit is the fixed conversion rate for token trades.
	TokensPerCredit int64 = 10

	// EnergyPerActivation is what turning an appliance on costs.
	EnergyPerActivation int64 = 1
)

// TransferKind selects one of the balance-to-balance trades against the
// bank account.
type TransferKind string

const (
	BuyCredits TransferKind = "BuyCredits"
	BuyTokens  TransferKind = "BuyTokens"
	SellTokens TransferKind = "SellTokens"
)

// Record types written to the transaction log.
const (
	RecordMintCredits = "MintCredits"
	RecordMintTokens  = "MintTokens"
	RecordBuyCredits  = "BuyCredits"
	RecordBuyTokens   = "BuyTokens"
	RecordSellTokens  = "SellTokens"
	RecordPurchase    = "Purchase"
	RecordApplianceOn = "ApplianceOn"
	RecordDeduct      = "Deduct"
)

var (
	ErrUnauthorized = errors.New("caller is not authorized")
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidAmount covers non-positive amounts and token amounts that
	// break the 10-tokens-per-credit granularity.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrApplianceCountMismatch is returned by DeductConsumption when fewer
	// appliances are running than the tick asked to meter.
	ErrApplianceCountMismatch = errors.New("fewer active appliances than requested")

	// ErrConflict surfaces after the storage layer exhausted its
	// serialization retries; the caller may retry the whole operation.
	ErrConflict = errors.New("operation lost a concurrency race")
)
