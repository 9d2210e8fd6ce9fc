package usecase

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/services/settlement"
)

// memLedger is an in-memory LedgerRepo with the same claim semantics as the SQL one
type memLedger struct {
	mu         sync.Mutex
	cards      map[uuid.UUID]*models.Card
	users      map[uuid.UUID]*models.User
	payments   map[uuid.UUID]*models.Payment
	claims     map[uuid.UUID]*models.ExecutionClaim
	executions map[uuid.UUID]*models.Execution
	transfers  []*models.Transfer
}

func newMemLedger(card *models.Card, user *models.User) *memLedger {
	return &memLedger{
		cards:      map[uuid.UUID]*models.Card{card.ID: card},
		users:      map[uuid.UUID]*models.User{user.ID: user},
		payments:   map[uuid.UUID]*models.Payment{},
		claims:     map[uuid.UUID]*models.ExecutionClaim{},
		executions: map[uuid.UUID]*models.Execution{},
	}
}

func (l *memLedger) GetCardByExternalID(_ context.Context, externalID string) (*models.Card, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range l.cards {
		if c.ExternalID == externalID {
			return c, nil
		}
	}
	return nil, settlement.ErrCardNotFound
}

func (l *memLedger) GetCardByID(_ context.Context, id uuid.UUID) (*models.Card, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.cards[id]; ok {
		return c, nil
	}
	return nil, settlement.ErrCardNotFound
}

func (l *memLedger) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if u, ok := l.users[id]; ok {
		return u, nil
	}
	return nil, settlement.ErrUserNotFound
}

func (l *memLedger) UpsertPayment(_ context.Context, payment *models.Payment) (*models.Payment, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.payments {
		if p.ExternalID == payment.ExternalID {
			cp := *p
			return &cp, false, nil
		}
	}
	stored := *payment
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	l.payments[stored.ID] = &stored
	cp := stored
	return &cp, true, nil
}

func (l *memLedger) FinalizePayment(_ context.Context, params models.FinalizePaymentParams) (*models.Payment, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.payments {
		if p.ExternalID != params.ExternalID {
			continue
		}
		if p.Status != models.PaymentStatusStarted {
			cp := *p
			return &cp, false, nil
		}
		p.Status = params.Status
		p.ProgramAmountMinor = params.ProgramAmountMinor
		p.ProgramCurrency = params.ProgramCurrency
		p.MerchantName = params.MerchantName
		p.MerchantAmountMinor = params.MerchantAmountMinor
		p.MerchantCurrency = params.MerchantCurrency
		p.UpdatedAt = time.Now()
		cp := *p
		return &cp, true, nil
	}
	return nil, false, settlement.ErrPaymentNotFound
}

func (l *memLedger) GetPaymentByID(_ context.Context, id uuid.UUID) (*models.Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok := l.payments[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, settlement.ErrPaymentNotFound
}

func (l *memLedger) GetPaymentByExternalID(_ context.Context, externalID string) (*models.Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.payments {
		if p.ExternalID == externalID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, settlement.ErrPaymentNotFound
}

func (l *memLedger) ClaimExecution(_ context.Context, paymentID uuid.UUID) (*models.ExecutionClaim, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.claims[paymentID]; ok {
		cp := *c
		return &cp, false, nil
	}
	c := &models.ExecutionClaim{PaymentID: paymentID, Status: models.ExecutionStatusPending, CreatedAt: time.Now()}
	l.claims[paymentID] = c
	cp := *c
	return &cp, true, nil
}

func (l *memLedger) ReleaseExecutionClaim(_ context.Context, paymentID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.claims[paymentID]; ok && c.Status == models.ExecutionStatusPending && c.TxHash == nil {
		delete(l.claims, paymentID)
	}
	return nil
}

func (l *memLedger) UpdateExecutionClaim(_ context.Context, paymentID uuid.UUID, status models.ExecutionStatus, txHash, errMsg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.claims[paymentID]
	if !ok {
		return settlement.ErrNotFound
	}
	c.Status = status
	if txHash != "" {
		h := txHash
		c.TxHash = &h
	}
	if errMsg != "" {
		e := errMsg
		c.Error = &e
	}
	return nil
}

func (l *memLedger) GetExecutionClaim(_ context.Context, paymentID uuid.UUID) (*models.ExecutionClaim, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.claims[paymentID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, settlement.ErrNotFound
}

func (l *memLedger) RecordExecution(_ context.Context, execution *models.Execution, transfer *models.Transfer) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.executions[execution.PaymentID]; ok {
		return fmt.Errorf("execution for payment %s already recorded", execution.PaymentID)
	}
	l.executions[execution.PaymentID] = execution
	l.transfers = append(l.transfers, transfer)
	return nil
}

func (l *memLedger) GetExecutionByPaymentID(_ context.Context, paymentID uuid.UUID) (*models.Execution, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.executions[paymentID]; ok {
		return e, nil
	}
	return nil, settlement.ErrNotFound
}

func (l *memLedger) claimStatus(paymentID uuid.UUID) models.ExecutionStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.claims[paymentID]; ok {
		return c.Status
	}
	return ""
}

// fakeChain counts broadcasts and holds a fixed allowance and balance
type fakeChain struct {
	allowance *big.Int
	balance   *big.Int
	transfers atomic.Int64
	awards    atomic.Int64
	// gate, when set, holds PullTransfer until closed
	gate chan struct{}
}

func (c *fakeChain) ReadAllowance(context.Context, string) (*big.Int, error) {
	return new(big.Int).Set(c.allowance), nil
}

func (c *fakeChain) ReadBalance(context.Context, string) (*big.Int, error) {
	return new(big.Int).Set(c.balance), nil
}

func (c *fakeChain) PullTransfer(_ context.Context, _ string, _ *big.Int) (string, error) {
	if c.gate != nil {
		<-c.gate
	}
	n := c.transfers.Add(1)
	return fmt.Sprintf("0x%064x", n), nil
}

func (c *fakeChain) WaitForConfirmation(context.Context, string) error { return nil }

func (c *fakeChain) AwardPoints(context.Context, string, *big.Int) (string, error) {
	n := c.awards.Add(1)
	return fmt.Sprintf("0x%064x", 1000+n), nil
}

func (c *fakeChain) TokenAddress() string    { return tokenAddress }
func (c *fakeChain) TreasuryAddress() string { return treasuryAddress }

type staticRate struct {
	rate float64
}

func (r staticRate) GetRate(_ context.Context, base, quote string) (models.FXRate, error) {
	return models.FXRate{Base: base, Quote: quote, Rate: r.rate, AsOf: time.Now()}, nil
}

type recordingEvents struct {
	mu        sync.Mutex
	awards    []models.PointsAwardEvent
	reconcile []models.ReconcileEvent
}

func (e *recordingEvents) PublishPointsAward(_ context.Context, event models.PointsAwardEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.awards = append(e.awards, event)
	return nil
}

func (e *recordingEvents) PublishReconcile(_ context.Context, event models.ReconcileEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reconcile = append(e.reconcile, event)
	return nil
}

func (e *recordingEvents) awardCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.awards)
}
