package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/solasterfm/fund-engine/internal/apperrors"
	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/model"
	"github.com/solasterfm/fund-engine/internal/quant"
	"github.com/solasterfm/fund-engine/internal/repository"
)

// NavDriftError reports that the validated NAV moved between submission and
// validation. It carries the replacement NAV and a signed token; presenting
// the token to Confirm accepts the new NAV. The order is left untouched.
type NavDriftError struct {
	OrderID      string    `json:"orderId"`
	CapturedNAV  float64   `json:"capturedNav"`
	CurrentNAV   float64   `json:"currentNav"`
	NavDate      time.Time `json:"navDate"`
	ConfirmToken string    `json:"confirmToken"`
}

func (e *NavDriftError) Error() string {
	return fmt.Sprintf("nav drifted from %g to %g for order %s; confirmation required",
		e.CapturedNAV, e.CurrentNAV, e.OrderID)
}

func (e *NavDriftError) Unwrap() error {
	return apperrors.ErrConfirmationRequired
}

// OrderService drives the subscription/redemption lifecycle:
// draft -> submitted -> validated -> accounted, with cancel available until
// the order is accounted. Only Settle writes ledger entries.
type OrderService struct {
	db           *sql.DB
	orderRepo    *repository.OrderRepository
	fundRepo     *repository.FundRepository
	investorRepo *repository.InvestorRepository
	accountRepo  *repository.AccountRepository
	ledgerRepo   *repository.LedgerRepository
	navRepo      *repository.NAVRepository
	confirmKey   *fernet.Key
}

// NewOrderService creates a new OrderService with the provided repository dependencies.
func NewOrderService(
	db *sql.DB,
	orderRepo *repository.OrderRepository,
	fundRepo *repository.FundRepository,
	investorRepo *repository.InvestorRepository,
	accountRepo *repository.AccountRepository,
	ledgerRepo *repository.LedgerRepository,
	navRepo *repository.NAVRepository,
	confirmKey *fernet.Key,
) *OrderService {
	return &OrderService{
		db:           db,
		orderRepo:    orderRepo,
		fundRepo:     fundRepo,
		investorRepo: investorRepo,
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		navRepo:      navRepo,
		confirmKey:   confirmKey,
	}
}

// CreateOrder records a draft order against an existing, active fund and an
// open account pair. No NAV is captured and nothing is previewed yet.
func (s *OrderService) CreateOrder(ctx context.Context, req request.CreateOrderRequest) (*model.Order, error) {
	fund, err := s.fundRepo.GetByID(ctx, req.FundID)
	if err != nil {
		return nil, err
	}
	if fund.State != model.FundStateActive {
		return nil, apperrors.ErrFundNotActive
	}

	if _, err := s.investorRepo.GetByID(ctx, req.InvestorID); err != nil {
		return nil, err
	}

	cash, units, err := s.accountRepo.GetPair(ctx, req.InvestorID, req.FundID)
	if err != nil {
		return nil, err
	}

	redemptionType := req.RedemptionType
	if req.Side == model.OrderSideRedemption && redemptionType == "" {
		redemptionType = model.RedemptionTypePartial
	}

	order := &model.Order{
		ID:              uuid.New().String(),
		Side:            req.Side,
		FundID:          req.FundID,
		InvestorID:      req.InvestorID,
		CashAccountID:   cash.ID,
		UnitAccountID:   units.ID,
		RedemptionType:  redemptionType,
		RequestedAmount: req.RequestedAmount,
		RequestedUnits:  req.RequestedUnits,
		State:           model.OrderStateDraft,
		CreatedAt:       time.Now(),
	}

	if err := s.orderRepo.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// GetOrder retrieves a single order by its ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// ListOrders retrieves all orders of an investor.
func (s *OrderService) ListOrders(ctx context.Context, investorID string) ([]model.Order, error) {
	return s.orderRepo.ListByInvestor(ctx, investorID)
}

// Submit moves a draft order to submitted, capturing the applicable NAV and a
// preview of the economics. Nothing touches the ledger. For redemptions the
// applicable NAV is the one dated by the fund's settlement delay; a total
// redemption resolves its unit count to the full current holding here.
func (s *OrderService) Submit(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.State != model.OrderStateDraft {
		return nil, apperrors.ErrInvalidStateTransition
	}

	fund, err := s.fundRepo.GetByID(ctx, order.FundID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccountsActive(ctx, order); err != nil {
		return nil, err
	}

	if order.Side == model.OrderSideRedemption && order.RedemptionType == model.RedemptionTypeTotal {
		holding, err := s.ledgerRepo.UnitHolding(ctx, s.db, order.UnitAccountID)
		if err != nil {
			return nil, err
		}
		if holding <= 0 {
			return nil, apperrors.ErrInsufficientUnits
		}
		order.RequestedUnits = holding
	}

	quote, err := s.applicableNAV(ctx, order, fund)
	if err != nil {
		return nil, err
	}
	order.NavDate = quote.Date
	order.AppliedNAV = quote.Value

	if err := s.applyEconomics(order, fund); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateEconomics(ctx, order, model.OrderStateSubmitted); err != nil {
		return nil, err
	}
	order.State = model.OrderStateSubmitted

	return order, nil
}

// Validate moves a submitted order to validated. The applicable NAV is
// refetched: if it still matches the captured one the order advances; if it
// drifted, a NavDriftError carrying a confirmation token is returned and the
// order stays submitted.
func (s *OrderService) Validate(ctx context.Context, id string) (*model.Order, error) {
	return s.validate(ctx, id, "")
}

// Confirm completes a validation that was interrupted by NAV drift. The token
// must be the one minted for this order at the drifted NAV.
func (s *OrderService) Confirm(ctx context.Context, id, confirmToken string) (*model.Order, error) {
	if confirmToken == "" {
		return nil, apperrors.ErrInvalidConfirmToken
	}
	return s.validate(ctx, id, confirmToken)
}

func (s *OrderService) validate(ctx context.Context, id, confirmToken string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.State != model.OrderStateSubmitted {
		return nil, apperrors.ErrInvalidStateTransition
	}

	fund, err := s.fundRepo.GetByID(ctx, order.FundID)
	if err != nil {
		return nil, err
	}

	investor, err := s.investorRepo.GetByID(ctx, order.InvestorID)
	if err != nil {
		return nil, err
	}
	if !investor.Eligible() {
		return nil, apperrors.ErrInvestorNotEligible
	}

	quote, err := s.applicableNAV(ctx, order, fund)
	if err != nil {
		return nil, err
	}

	if quote.Value != order.AppliedNAV {
		if confirmToken == "" {
			token, err := mintConfirmToken(s.confirmKey, order.ID, quote.Value, quote.Date)
			if err != nil {
				return nil, err
			}
			return nil, &NavDriftError{
				OrderID:      order.ID,
				CapturedNAV:  order.AppliedNAV,
				CurrentNAV:   quote.Value,
				NavDate:      quote.Date,
				ConfirmToken: token,
			}
		}

		payload, err := verifyConfirmToken(s.confirmKey, confirmToken)
		if err != nil {
			return nil, err
		}
		// The token must acknowledge this order at the NAV that is still
		// current; a further move restarts the drift cycle.
		if payload.OrderID != order.ID || payload.NAV != quote.Value {
			return nil, apperrors.ErrInvalidConfirmToken
		}
	}

	order.NavDate = quote.Date
	order.AppliedNAV = quote.Value

	if err := s.applyEconomics(order, fund); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateEconomics(ctx, order, model.OrderStateValidated); err != nil {
		return nil, err
	}
	order.State = model.OrderStateValidated

	return order, nil
}

// Settle posts a validated order to the ledger and flips it to accounted,
// all inside one transaction. A second settlement attempt matches zero rows
// on the state-guarded update and fails with ErrAlreadySettled before any
// entry is written. Any failure rolls the whole posting back.
func (s *OrderService) Settle(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch order.State {
	case model.OrderStateValidated:
	case model.OrderStateAccounted:
		return nil, apperrors.ErrAlreadySettled
	default:
		return nil, apperrors.ErrInvalidStateTransition
	}

	fund, err := s.fundRepo.GetByID(ctx, order.FundID)
	if err != nil {
		return nil, err
	}

	investor, err := s.investorRepo.GetByID(ctx, order.InvestorID)
	if err != nil {
		return nil, err
	}
	if !investor.Eligible() {
		return nil, apperrors.ErrInvestorNotEligible
	}

	quote, err := s.applicableNAV(ctx, order, fund)
	if err != nil {
		return nil, err
	}
	if quote.Value != order.AppliedNAV {
		return nil, apperrors.ErrStaleNAV
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	defer tx.Rollback()

	// The state guard on this update is the idempotency barrier: a settlement
	// that raced past the check above still fails here without posting.
	if err := s.orderRepo.MarkAccounted(ctx, tx, order.ID); err != nil {
		return nil, err
	}

	switch order.Side {
	case model.OrderSideSubscription:
		err = s.postSubscription(ctx, tx, order)
	case model.OrderSideRedemption:
		err = s.postRedemption(ctx, tx, order)
	default:
		err = apperrors.ErrInvalidStateTransition
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}

	return s.orderRepo.GetByID(ctx, id)
}

// Cancel abandons an order. Accounted orders have posted ledger entries and
// can never be cancelled.
func (s *OrderService) Cancel(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.State == model.OrderStateAccounted {
		return nil, apperrors.ErrOrderNotCancellable
	}
	if order.State == model.OrderStateCancelled {
		return nil, apperrors.ErrInvalidStateTransition
	}

	if err := s.orderRepo.UpdateState(ctx, order.ID, model.OrderStateCancelled); err != nil {
		return nil, err
	}
	order.State = model.OrderStateCancelled

	return order, nil
}

// applicableNAV returns the quote an order settles against: the current
// validated quote for subscriptions, the validated quote as of today plus the
// fund's settlement delay for redemptions.
func (s *OrderService) applicableNAV(ctx context.Context, order *model.Order, fund model.Fund) (*model.NAVQuote, error) {
	if order.Side == model.OrderSideRedemption {
		asOf := time.Now().AddDate(0, 0, fund.RedemptionDelayDays())
		return s.navRepo.GetValidatedAsOf(ctx, fund.ID, fund.ShareClass, asOf)
	}
	return s.navRepo.GetCurrentValidated(ctx, fund.ID, fund.ShareClass)
}

// applyEconomics fills the order's computed quantities from the captured NAV
// and the fund's fee policy.
func (s *OrderService) applyEconomics(order *model.Order, fund model.Fund) error {
	switch order.Side {
	case model.OrderSideSubscription:
		sub, err := quant.Subscribe(order.RequestedAmount, order.AppliedNAV,
			fund.SubscriptionFeeRate, fund.AllowFractionalUnits)
		if err != nil {
			return err
		}
		order.Units = sub.Units
		order.CashUsed = sub.CashUsed
		order.Fee = sub.Fee
		order.Refund = sub.Refund
	case model.OrderSideRedemption:
		red, err := quant.Redeem(order.RequestedUnits, order.AppliedNAV,
			fund.RedemptionFeeRate, fund.AllowFractionalUnits)
		if err != nil {
			return err
		}
		order.Units = red.Units
		order.CashUsed = red.Gross
		order.Fee = red.Fee
		order.Refund = 0
	}
	return nil
}

func (s *OrderService) checkAccountsActive(ctx context.Context, order *model.Order) error {
	cash, err := s.accountRepo.GetCashAccount(ctx, order.CashAccountID)
	if err != nil {
		return err
	}
	units, err := s.accountRepo.GetUnitAccount(ctx, order.UnitAccountID)
	if err != nil {
		return err
	}
	if cash.State != model.AccountStateActive || units.State != model.AccountStateActive {
		return apperrors.ErrAccountNotActive
	}
	return nil
}

// postSubscription debits the requested amount, split into the invested net
// and the fee, and credits back the unusable residual. The three entries net
// out to exactly -(cash_used + fee).
func (s *OrderService) postSubscription(ctx context.Context, tx *sql.Tx, order *model.Order) error {
	balance, err := s.ledgerRepo.CashBalance(ctx, tx, order.CashAccountID)
	if err != nil {
		return err
	}
	if balance < order.CashUsed+order.Fee {
		return apperrors.ErrInsufficientFunds
	}

	net := order.RequestedAmount - order.Fee

	entries := []model.CashEntry{
		{Kind: model.CashKindSubscriptionNet, Amount: net},
		{Kind: model.CashKindSubscriptionFee, Amount: order.Fee},
	}
	if order.Refund > 0 {
		entries = append(entries, model.CashEntry{Kind: model.CashKindRefund, Amount: order.Refund})
	}

	for _, entry := range entries {
		if entry.Amount == 0 {
			continue
		}
		entry.ID = uuid.New().String()
		entry.CashAccountID = order.CashAccountID
		entry.OrderID = order.ID
		if err := s.ledgerRepo.InsertCashEntry(ctx, tx, &entry); err != nil {
			return err
		}
	}

	return s.ledgerRepo.InsertUnitEntry(ctx, tx, &model.UnitEntry{
		ID:            uuid.New().String(),
		UnitAccountID: order.UnitAccountID,
		Kind:          model.UnitKindSubscription,
		Units:         order.Units,
		OrderID:       order.ID,
	})
}

// postRedemption removes the redeemed units and credits the gross proceeds
// less the fee, netting to the payout.
func (s *OrderService) postRedemption(ctx context.Context, tx *sql.Tx, order *model.Order) error {
	holding, err := s.ledgerRepo.UnitHolding(ctx, tx, order.UnitAccountID)
	if err != nil {
		return err
	}
	if holding < order.Units {
		return apperrors.ErrInsufficientUnits
	}

	if err := s.ledgerRepo.InsertUnitEntry(ctx, tx, &model.UnitEntry{
		ID:            uuid.New().String(),
		UnitAccountID: order.UnitAccountID,
		Kind:          model.UnitKindRedemption,
		Units:         order.Units,
		OrderID:       order.ID,
	}); err != nil {
		return err
	}

	if err := s.ledgerRepo.InsertCashEntry(ctx, tx, &model.CashEntry{
		ID:            uuid.New().String(),
		CashAccountID: order.CashAccountID,
		Kind:          model.CashKindRedemptionNet,
		Amount:        order.CashUsed,
		OrderID:       order.ID,
	}); err != nil {
		return err
	}

	if order.Fee > 0 {
		return s.ledgerRepo.InsertCashEntry(ctx, tx, &model.CashEntry{
			ID:            uuid.New().String(),
			CashAccountID: order.CashAccountID,
			Kind:          model.CashKindRedemptionFee,
			Amount:        order.Fee,
			OrderID:       order.ID,
		})
	}

	return nil
}
