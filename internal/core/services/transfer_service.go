package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/penger_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// transferService moves funds between two accounts in one transaction.
type transferService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
	ledger      accountLedger
	tx          txRunner
}

// NewTransferService creates a new TransferSvc.
func NewTransferService(accountRepo portsrepo.AccountRepositoryWithTx, options ...Option) portssvc.TransferSvc {
	opts := newServiceOptions(options...)
	return &transferService{
		BaseService: BaseService{clock: opts.clock},
		accountRepo: accountRepo,
		ledger:      accountLedger{repo: accountRepo},
		tx:          newTxRunner(accountRepo, opts.retry),
	}
}

var _ portssvc.TransferSvc = (*transferService)(nil)

// Transfer debits fromAccountID and credits toAccountID by amount. Both rows are
// locked (in ascending id order) before either is changed, and both writes
// commit or roll back together.
func (s *transferService) Transfer(ctx context.Context, fromAccountID string, toAccountID string, amount decimal.Decimal) (*domain.TransferReceipt, error) {
	logAttrs := []any{
		slog.String("from_account_id", fromAccountID),
		slog.String("to_account_id", toAccountID),
		slog.String("amount", amount.String()),
	}

	if !validAmount(amount) {
		s.LogWarn(ctx, ErrInvalidAmount, "Transfer rejected", logAttrs...)
		return nil, ErrInvalidAmount
	}
	if fromAccountID == toAccountID {
		s.LogWarn(ctx, ErrInvalidTransfer, "Transfer rejected", logAttrs...)
		return nil, ErrInvalidTransfer
	}

	var receipt domain.TransferReceipt
	err := s.tx.run(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		locked, err := lockAccounts(ctx, s.accountRepo, tx, fromAccountID, toAccountID)
		if err != nil {
			return err
		}
		source, destination := locked[fromAccountID], locked[toAccountID]

		if source.CurrencyCode != destination.CurrencyCode {
			return ErrCurrencyMismatch
		}
		if !source.CanWithdraw(amount) {
			return ErrInsufficientFunds
		}

		now := s.Now()
		if _, err := s.ledger.apply(ctx, tx, source, amount.Neg(), now); err != nil {
			return err
		}
		if _, err := s.ledger.apply(ctx, tx, destination, amount, now); err != nil {
			return err
		}

		receipt = domain.TransferReceipt{
			FromAccountNumber: source.AccountNumber,
			ToAccountNumber:   destination.AccountNumber,
			Amount:            amount,
			CurrencyCode:      source.CurrencyCode,
			Timestamp:         now,
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Transfer failed", logAttrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Transfer committed", logAttrs...)
	return &receipt, nil
}
