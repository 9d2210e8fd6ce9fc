package gateway

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/piresc/cardsettle/internal/pkg/chain"
	"github.com/piresc/cardsettle/internal/pkg/logger"
	"github.com/piresc/cardsettle/internal/pkg/models"
	nrpkg "github.com/piresc/cardsettle/internal/pkg/newrelic"
	"github.com/piresc/cardsettle/services/settlement"
)

const rpcLibrary = "go-ethereum"

// ChainClient is the part of chain.Client the gateway uses
type ChainClient interface {
	From() common.Address
	BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error)
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	SendContractTx(ctx context.Context, contract common.Address, data []byte) (common.Hash, error)
	WaitForReceipt(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error)
}

// ChainGW adapts the chain client to settlement operations
type ChainGW struct {
	client   ChainClient
	rpcURL   string
	token    common.Address
	points   common.Address
	treasury common.Address
	timeout  time.Duration
}

// NewChainGW creates a new chain gateway
func NewChainGW(cfg models.ChainConfig, client ChainClient) (*ChainGW, error) {
	token, err := parseAddress("token", cfg.TokenAddress)
	if err != nil {
		return nil, err
	}
	treasury, err := parseAddress("treasury", cfg.TreasuryAddress)
	if err != nil {
		return nil, err
	}

	gw := &ChainGW{
		client:   client,
		rpcURL:   cfg.RPCURL,
		token:    token,
		treasury: treasury,
		timeout:  time.Duration(cfg.ConfirmationTimeout) * time.Second,
	}
	// The points contract is optional; awards fail until it is configured
	if cfg.PointsContractAddress != "" {
		if gw.points, err = parseAddress("points contract", cfg.PointsContractAddress); err != nil {
			return nil, err
		}
	}
	return gw, nil
}

func parseAddress(name, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", name, value)
	}
	return common.HexToAddress(value), nil
}

// TokenAddress returns the settlement token contract
func (g *ChainGW) TokenAddress() string { return g.token.Hex() }

// TreasuryAddress returns the address receiving settled funds
func (g *ChainGW) TreasuryAddress() string { return g.treasury.Hex() }

// ReadAllowance reads how much of owner's token the platform signer may pull
func (g *ChainGW) ReadAllowance(ctx context.Context, owner string) (*big.Int, error) {
	ownerAddr, err := parseAddress("owner", owner)
	if err != nil {
		return nil, err
	}

	var amount *big.Int
	err = nrpkg.WithExternalSegment(ctx, rpcLibrary, "allowance", g.rpcURL, func() error {
		var readErr error
		amount, readErr = g.client.Allowance(ctx, g.token, ownerAddr, g.client.From())
		return readErr
	})
	if err != nil {
		return nil, mapReadError(err)
	}
	return amount, nil
}

// ReadBalance reads owner's token balance
func (g *ChainGW) ReadBalance(ctx context.Context, owner string) (*big.Int, error) {
	ownerAddr, err := parseAddress("owner", owner)
	if err != nil {
		return nil, err
	}

	var amount *big.Int
	err = nrpkg.WithExternalSegment(ctx, rpcLibrary, "balanceOf", g.rpcURL, func() error {
		var readErr error
		amount, readErr = g.client.BalanceOf(ctx, g.token, ownerAddr)
		return readErr
	})
	if err != nil {
		return nil, mapReadError(err)
	}
	return amount, nil
}

func mapReadError(err error) error {
	if errors.Is(err, chain.ErrTransient) {
		return fmt.Errorf("%w: %v", settlement.ErrChainUnavailable, err)
	}
	return err
}

// PullTransfer broadcasts transferFrom(owner, treasury, amount) signed by the platform key
func (g *ChainGW) PullTransfer(ctx context.Context, owner string, amount *big.Int) (string, error) {
	ownerAddr, err := parseAddress("owner", owner)
	if err != nil {
		return "", err
	}

	data, err := chain.PackTransferFrom(ownerAddr, g.treasury, amount)
	if err != nil {
		return "", fmt.Errorf("encode transferFrom: %w", err)
	}
	return g.send(ctx, "transferFrom", g.token, data)
}

// AwardPoints broadcasts award(to, amount) on the points contract
func (g *ChainGW) AwardPoints(ctx context.Context, to string, amount *big.Int) (string, error) {
	if g.points == (common.Address{}) {
		return "", errors.New("points contract not configured")
	}
	toAddr, err := parseAddress("recipient", to)
	if err != nil {
		return "", err
	}

	data, err := chain.PackAward(toAddr, amount)
	if err != nil {
		return "", fmt.Errorf("encode award: %w", err)
	}
	return g.send(ctx, "award", g.points, data)
}

func (g *ChainGW) send(ctx context.Context, method string, contract common.Address, data []byte) (string, error) {
	var hash common.Hash
	err := nrpkg.WithExternalSegment(ctx, rpcLibrary, method, g.rpcURL, func() error {
		var sendErr error
		hash, sendErr = g.client.SendContractTx(ctx, contract, data)
		return sendErr
	})
	if err != nil {
		if errors.Is(err, chain.ErrBroadcastUnknown) {
			logger.Warn("Broadcast outcome unknown",
				logger.String("method", method),
				logger.String("tx_hash", hash.Hex()),
				logger.Err(err))
			return hash.Hex(), fmt.Errorf("%w: %v", settlement.ErrBroadcastUnknown, err)
		}
		return "", err
	}
	return hash.Hex(), nil
}

// WaitForConfirmation blocks until txHash is mined or the confirmation timeout elapses
func (g *ChainGW) WaitForConfirmation(ctx context.Context, txHash string) error {
	hash := common.HexToHash(txHash)

	_, err := g.client.WaitForReceipt(ctx, hash, g.timeout)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, chain.ErrReverted):
		return fmt.Errorf("%w: %s", settlement.ErrTxReverted, txHash)
	case errors.Is(err, chain.ErrReceiptTimeout):
		return fmt.Errorf("%w: %v", settlement.ErrConfirmationTimeout, err)
	default:
		return err
	}
}
