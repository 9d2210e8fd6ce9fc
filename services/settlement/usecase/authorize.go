package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/piresc/cardsettle/internal/pkg/logger"
	"github.com/piresc/cardsettle/internal/pkg/models"
	nrpkg "github.com/piresc/cardsettle/internal/pkg/newrelic"
	"github.com/piresc/cardsettle/services/settlement"
)

// funds is the on-chain position of a wallet towards the platform signer
type funds struct {
	allowance *big.Int
	balance   *big.Int
}

// readFunds reads allowance and balance concurrently
func (uc *settlementUC) readFunds(ctx context.Context, owner string) (funds, error) {
	var wg sync.WaitGroup
	var out funds
	var allowanceErr, balanceErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		out.allowance, allowanceErr = uc.chainGW.ReadAllowance(ctx, owner)
	}()
	go func() {
		defer wg.Done()
		out.balance, balanceErr = uc.chainGW.ReadBalance(ctx, owner)
	}()
	wg.Wait()

	if err := errors.Join(allowanceErr, balanceErr); err != nil {
		return funds{}, err
	}
	if out.allowance == nil || out.balance == nil {
		return funds{}, fmt.Errorf("%w: empty read", settlement.ErrChainUnavailable)
	}
	return out, nil
}

// shortfall reports which of allowance or balance cannot cover required
func (f funds) shortfall(required *big.Int) (models.DeclineReason, *big.Int, bool) {
	if f.allowance.Cmp(required) < 0 {
		return models.DeclineInsufficientAllowance, f.allowance, true
	}
	if f.balance.Cmp(required) < 0 {
		return models.DeclineInsufficientBalance, f.balance, true
	}
	return "", nil, false
}

// resolveOwner follows Card to User and returns the user's wallet.
// The decline reason is set when the chain cannot be resolved.
func (uc *settlementUC) resolveOwner(ctx context.Context, payment *models.Payment) (*models.Card, *models.User, models.DeclineReason, error) {
	card, err := uc.ledger.GetCardByID(ctx, payment.CardID)
	if err != nil {
		if errors.Is(err, settlement.ErrCardNotFound) {
			return nil, nil, models.DeclineCardNotFound, err
		}
		return nil, nil, models.DeclineLedgerUnavailable, err
	}

	user, err := uc.ledger.GetUserByID(ctx, card.UserID)
	if err != nil {
		if errors.Is(err, settlement.ErrUserNotFound) {
			return card, nil, models.DeclineUserNotFound, err
		}
		return card, nil, models.DeclineLedgerUnavailable, err
	}
	if user.WalletAddress == "" {
		return card, nil, models.DeclineUserNotFound, settlement.ErrUserNotFound
	}

	return card, user, "", nil
}

// Authorize decides a payment on its pending amount. It only reads; every
// failure becomes a decline.
func (uc *settlementUC) Authorize(ctx context.Context, payment *models.Payment) models.AuthorizationDecision {
	segment := nrpkg.StartSegment(nrpkg.FromContext(ctx), "Settlement.Authorize")
	if segment != nil {
		defer segment.End()
	}

	paymentID := payment.ID.String()
	decline := func(reason models.DeclineReason, err error) models.AuthorizationDecision {
		fields := []logger.Field{
			logger.String("payment_id", paymentID),
			logger.String("external_id", payment.ExternalID),
			logger.String("reason", string(reason)),
		}
		if err != nil {
			fields = append(fields, logger.Err(err))
		}
		logger.InfoCtx(ctx, "Authorization declined", fields...)
		return models.Decline(paymentID, reason)
	}

	card, user, reason, err := uc.resolveOwner(ctx, payment)
	if err != nil {
		return decline(reason, err)
	}
	if card.Status != models.CardStatusActive {
		return decline(models.DeclineCardInactive, nil)
	}

	amount, ok := new(big.Int).SetString(payment.ProgramAmountMinor, 10)
	if !ok || amount.Sign() < 0 {
		return decline(models.DeclineInvalidAmount, nil)
	}

	// The rate lookup overlaps the two chain reads
	type fundsResult struct {
		funds funds
		err   error
	}
	fundsCh := make(chan fundsResult, 1)
	go func() {
		f, err := uc.readFunds(ctx, user.WalletAddress)
		fundsCh <- fundsResult{f, err}
	}()

	rate, rateErr := uc.rateGW.GetRate(ctx, payment.ProgramCurrency, uc.cfg.FX.QuoteAsset)
	read := <-fundsCh

	if rateErr != nil {
		return decline(models.DeclineRateUnavailable, rateErr)
	}
	conversion, err := uc.converter.Convert(amount, rate)
	if err != nil {
		return decline(models.DeclineRateUnavailable, err)
	}
	if read.err != nil {
		return decline(models.DeclineChainUnavailable, read.err)
	}

	required := conversion.AmountMinor
	if reason, _, short := read.funds.shortfall(required); short {
		return decline(reason, nil)
	}

	logger.InfoCtx(ctx, "Authorization approved",
		logger.String("payment_id", paymentID),
		logger.String("external_id", payment.ExternalID),
		logger.String("required", required.String()),
		logger.Float64("rate", conversion.Rate))

	return models.Approve(paymentID, required)
}
