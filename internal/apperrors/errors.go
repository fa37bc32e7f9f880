package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrFundNotFound indicates that a fund with the given ID does not exist.
	ErrFundNotFound = errors.New("fund not found")

	// ErrInvestorNotFound indicates that an investor with the given ID does not exist.
	ErrInvestorNotFound = errors.New("investor not found")

	// ErrAccountNotFound indicates that a cash or unit account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrOrderNotFound indicates that an order with the given ID does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNAVNotFound indicates no validated NAV quote for a fund/date combination.
	ErrNAVNotFound = errors.New("nav quote not found")
)

// Input validation errors are rejected before any state mutation.
var (
	// ErrInvalidNAV indicates a non-positive NAV value.
	ErrInvalidNAV = errors.New("nav must be positive")

	// ErrInsufficientAmount indicates the subscription amount does not cover
	// a single unit at the fee-inclusive unit price.
	ErrInsufficientAmount = errors.New("amount insufficient to subscribe at least one unit")

	// ErrNonIntegerUnits indicates fractional units were requested from a
	// fund that only deals in whole units.
	ErrNonIntegerUnits = errors.New("fund does not allow fractional units")

	// ErrNonPositiveAmount indicates a zero or negative cash amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrNonPositiveUnits indicates a zero or negative unit quantity.
	ErrNonPositiveUnits = errors.New("units must be positive")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")
)

// Policy violation errors are rejected at the specific transition that needs
// the resource, leaving prior state untouched.
var (
	// ErrInsufficientFunds indicates the cash account balance derived from
	// the ledger does not cover the subscription.
	ErrInsufficientFunds = errors.New("insufficient cash balance")

	// ErrInsufficientUnits indicates the unit account holding derived from
	// the ledger does not cover the redemption.
	ErrInsufficientUnits = errors.New("insufficient unit holding")

	// ErrInvestorNotEligible indicates the investor has not passed the
	// compliance gate for the fund.
	ErrInvestorNotEligible = errors.New("investor not eligible for fund")

	// ErrAccountNotActive indicates an operation against a draft or
	// suspended account.
	ErrAccountNotActive = errors.New("account is not active")

	// ErrFundNotActive indicates an order against a non-active fund.
	ErrFundNotActive = errors.New("fund is not active")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Concurrency/staleness errors surface recoverable conditions requiring
// explicit operator re-confirmation; they are never auto-applied.
var (
	// ErrStaleNAV indicates the NAV applicable at settlement differs from the
	// NAV captured at validation.
	ErrStaleNAV = errors.New("nav changed since validation")

	// ErrConfirmationRequired indicates a transition needs an explicit
	// operator acknowledgment before it can complete.
	ErrConfirmationRequired = errors.New("operator confirmation required")

	// ErrInvalidConfirmToken indicates a missing, expired, or tampered
	// confirmation token.
	ErrInvalidConfirmToken = errors.New("invalid confirmation token")
)

// Invariant violation errors represent workflow misuse; ledger state is never
// touched by the failing call.
var (
	// ErrAlreadySettled indicates a settlement attempt on an order that has
	// already posted its ledger entries.
	ErrAlreadySettled = errors.New("order already settled")

	// ErrOrderNotCancellable indicates a cancel attempt on a settled order.
	ErrOrderNotCancellable = errors.New("settled order cannot be cancelled")

	// ErrInvalidStateTransition indicates the order is not in the state the
	// requested transition requires.
	ErrInvalidStateTransition = errors.New("invalid order state for transition")
)
