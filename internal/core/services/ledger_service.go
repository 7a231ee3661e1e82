package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/penger_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// accountLedger applies signed balance deltas to accounts the caller has
// already locked inside its transaction. It is shared by the ledger and the
// transfer coordinator so both enforce the same non-negativity rule.
type accountLedger struct {
	repo portsrepo.AccountTransactionSupport
}

// validAmount reports whether amount is positive and storable without rounding.
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && domain.FitsBalanceScale(amount)
}

// apply adds delta to the account balance and persists it. A result below zero
// is refused with ErrInsufficientFunds and one at or above domain.MaxBalance with
// ErrBalanceLimit, both before anything is written.
func (l accountLedger) apply(ctx context.Context, tx portsrepo.Tx, acc domain.Account, delta decimal.Decimal, at time.Time) (domain.Account, error) {
	next := acc.Balance.Add(delta)
	if next.IsNegative() {
		return acc, ErrInsufficientFunds
	}
	if next.GreaterThanOrEqual(domain.MaxBalance) {
		return acc, ErrBalanceLimit
	}
	acc.Balance = next
	acc.UpdatedAt = at

	stored, err := l.repo.SaveBalanceInTx(ctx, tx, acc)
	if err != nil {
		if errors.Is(err, apperrors.ErrStateConflict) {
			return acc, ErrInsufficientFunds.Wrap(err)
		}
		if errors.Is(err, apperrors.ErrValidation) {
			return acc, ErrBalanceLimit.Wrap(err)
		}
		return acc, err
	}
	acc.Balance = stored
	return acc, nil
}

// lockAccounts locks the given accounts for the rest of tx.
func lockAccounts(ctx context.Context, repo portsrepo.AccountTransactionSupport, tx portsrepo.Tx, ids ...string) (map[string]domain.Account, error) {
	locked, err := repo.FindAccountsByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountNotFound.Wrap(err)
		}
		return nil, err
	}
	return locked, nil
}

// ledgerService implements deposit and withdraw.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
	ledger      accountLedger
	tx          txRunner
}

// NewLedgerService creates a new LedgerSvc.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryWithTx, options ...Option) portssvc.LedgerSvc {
	opts := newServiceOptions(options...)
	return &ledgerService{
		BaseService: BaseService{clock: opts.clock},
		accountRepo: accountRepo,
		ledger:      accountLedger{repo: accountRepo},
		tx:          newTxRunner(accountRepo, opts.retry),
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.BalanceReceipt, error) {
	return s.mutate(ctx, "deposit", accountID, amount, amount)
}

func (s *ledgerService) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.BalanceReceipt, error) {
	return s.mutate(ctx, "withdraw", accountID, amount, amount.Neg())
}

func (s *ledgerService) mutate(ctx context.Context, op string, accountID string, amount, delta decimal.Decimal) (*domain.BalanceReceipt, error) {
	if !validAmount(amount) {
		s.LogWarn(ctx, ErrInvalidAmount, "Ledger operation rejected",
			slog.String("operation", op),
			slog.String("account_id", accountID),
			slog.String("amount", amount.String()))
		return nil, ErrInvalidAmount
	}

	var receipt domain.BalanceReceipt
	err := s.tx.run(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		locked, err := lockAccounts(ctx, s.accountRepo, tx, accountID)
		if err != nil {
			return err
		}
		now := s.Now()
		updated, err := s.ledger.apply(ctx, tx, locked[accountID], delta, now)
		if err != nil {
			return err
		}
		receipt = domain.BalanceReceipt{
			AccountID:     updated.AccountID,
			AccountNumber: updated.AccountNumber,
			CurrencyCode:  updated.CurrencyCode,
			Amount:        amount,
			Balance:       updated.Balance,
			Timestamp:     now,
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Ledger operation failed",
			slog.String("operation", op),
			slog.String("account_id", accountID),
			slog.String("amount", amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger operation applied",
		slog.String("operation", op),
		slog.String("account_id", accountID),
		slog.String("amount", amount.String()),
		slog.String("balance", receipt.Balance.String()))
	return &receipt, nil
}
