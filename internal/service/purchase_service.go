package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fsanano/garden-shop/internal/model"
)

const defaultPurchaseTimeout = 10 * time.Second

type PurchaseConfig struct {
	// TrustClientTotal charges the client's totalCost instead of the price sum.
	TrustClientTotal bool
	// Timeout bounds the purchase transaction independently of the caller's context.
	Timeout time.Duration
}

type PurchaseService struct {
	tx       Transactor
	users    UserRepository
	items    ItemRepository
	holdings HoldingRepository
	cfg      PurchaseConfig
	log      *logrus.Logger
}

func NewPurchaseService(
	tx Transactor,
	users UserRepository,
	items ItemRepository,
	holdings HoldingRepository,
	cfg PurchaseConfig,
	log *logrus.Logger,
) *PurchaseService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultPurchaseTimeout
	}
	return &PurchaseService{
		tx:       tx,
		users:    users,
		items:    items,
		holdings: holdings,
		cfg:      cfg,
		log:      log,
	}
}

// Purchase debits the basket's total from the user and adds the items to their holdings in one
// transaction. Either everything is written or nothing is.
func (s *PurchaseService) Purchase(ctx context.Context, req model.PurchaseRequest) (model.Receipt, error) {
	if err := checkBasket(req); err != nil {
		return model.Receipt{}, err
	}
	lines, err := req.Merge()
	if err != nil {
		return model.Receipt{}, err
	}

	// A client going away must not cut the transaction short.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeout)
	defer cancel()

	var receipt model.Receipt
	err = s.tx.RunAtomic(ctx, func(ctx context.Context) error {
		// 1. Lock user row and get balance
		balance, err := s.users.LockBalance(ctx, req.UserID)
		if err != nil {
			return err
		}

		// 2. Price the basket
		total, err := s.total(ctx, req, lines)
		if err != nil {
			return err
		}

		// 3. Check balance
		if balance.LessThan(total) {
			return model.ErrInsufficientBalance
		}

		// 4. Debit
		newBalance, err := s.users.ApplyBalanceDelta(ctx, req.UserID, total.Neg(), model.BalanceConstrained)
		if err != nil {
			return err
		}

		// 5. Upsert holdings
		holdings, err := s.holdings.Upsert(ctx, req.UserID, lines)
		if err != nil {
			return err
		}

		receipt = model.Receipt{
			UserID:   req.UserID,
			Total:    total,
			Balance:  newBalance,
			Holdings: holdings,
		}
		return nil
	})
	if err != nil {
		s.logFailure(req, err)
		return model.Receipt{}, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": req.UserID,
		"total":   receipt.Total.String(),
		"lines":   len(lines),
	}).Info("purchase completed")

	return receipt, nil
}

// Holdings lists what a user owns. An unknown user is model.ErrUserNotFound.
func (s *PurchaseService) Holdings(ctx context.Context, userID int64) ([]model.Holding, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.holdings.ListByUser(ctx, userID)
}

func (s *PurchaseService) total(ctx context.Context, req model.PurchaseRequest, lines []model.BasketLine) (decimal.Decimal, error) {
	ids := make([]int64, len(lines))
	for i, line := range lines {
		ids[i] = line.ItemID
	}

	prices, err := s.items.Prices(ctx, ids)
	if err != nil {
		return decimal.Decimal{}, err
	}

	sum := decimal.Zero
	for _, line := range lines {
		price, ok := prices[line.ItemID]
		if !ok {
			return decimal.Decimal{}, model.ErrItemNotFound
		}
		sum = sum.Add(price.Mul(decimal.NewFromInt(line.Quantity)))
	}

	if s.cfg.TrustClientTotal {
		return req.TotalCost, nil
	}
	if !sum.Equal(req.TotalCost) {
		return decimal.Decimal{}, model.NewValidationError(
			"total cost mismatch: expected %s, got %s", sum.String(), req.TotalCost.String())
	}
	return sum, nil
}

func (s *PurchaseService) logFailure(req model.PurchaseRequest, err error) {
	entry := s.log.WithFields(logrus.Fields{
		"user_id": req.UserID,
		"lines":   len(req.Items),
	}).WithError(err)

	var perr *model.PersistenceError
	switch {
	case errors.As(err, &perr), errors.Is(err, context.DeadlineExceeded):
		entry.Error("purchase failed")
	default:
		entry.Debug("purchase rejected")
	}
}

func checkBasket(req model.PurchaseRequest) error {
	if req.UserID <= 0 {
		return model.NewValidationError("userId must be positive")
	}
	if len(req.Items) == 0 {
		return model.NewValidationError("items must not be empty")
	}
	for _, line := range req.Items {
		if line.ItemID <= 0 {
			return model.NewValidationError("itemId must be positive")
		}
		if line.Quantity <= 0 {
			return model.NewValidationError("quantitat must be positive")
		}
		if line.Quantity > model.MaxQuantity {
			return model.NewValidationError("quantitat must not exceed %d", model.MaxQuantity)
		}
	}
	if req.TotalCost.IsNegative() {
		return model.NewValidationError("totalCost must not be negative")
	}
	return nil
}
