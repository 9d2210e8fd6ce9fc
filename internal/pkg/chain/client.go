// Package chain talks to the settlement EVM chain: token reads, signed
// submissions from the platform key and receipt polling.
package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/piresc/cardsettle/internal/pkg/logger"
	"github.com/piresc/cardsettle/internal/pkg/retry"
)

// Backend is the subset of the JSON-RPC API the client needs.
// *ethclient.Client satisfies it.
type Backend interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Config configures a Client
type Config struct {
	ChainID    int64
	PrivateKey string // hex, optional 0x prefix; empty makes the client read-only
	GasLimit   uint64 // zero estimates gas per transaction
	// PollInterval is the receipt polling period
	PollInterval time.Duration
}

// Client reads token state and submits transactions from a single signing key.
// Submissions are serialized so the nonce sequence of the key stays intact.
type Client struct {
	backend  Backend
	chainID  *big.Int
	signer   types.Signer
	key      *ecdsa.PrivateKey
	from     common.Address
	gasLimit uint64
	poll     time.Duration
	reads    *retry.Retrier

	sendMu sync.Mutex
	nonce  *uint64
}

// Dial connects to an RPC endpoint
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial chain rpc: %w", err)
	}
	return client, nil
}

// NewClient builds a client over backend. reads may be nil for no retries.
func NewClient(backend Backend, cfg Config, reads *retry.Retrier) (*Client, error) {
	if backend == nil {
		return nil, errors.New("chain: backend is required")
	}

	c := &Client{
		backend:  backend,
		chainID:  big.NewInt(cfg.ChainID),
		gasLimit: cfg.GasLimit,
		poll:     cfg.PollInterval,
		reads:    reads,
	}
	c.signer = types.NewEIP155Signer(c.chainID)
	if c.poll <= 0 {
		c.poll = time.Second
	}
	if c.reads == nil {
		c.reads = retry.New(retry.Config{MaxRetries: 0}, nil)
	}

	if cfg.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid signer private key: %w", err)
		}
		c.key = key
		c.from = crypto.PubkeyToAddress(key.PublicKey)
	}

	return c, nil
}

// From returns the platform signer address
func (c *Client) From() common.Address {
	return c.from
}

// BalanceOf reads token.balanceOf(owner)
func (c *Client) BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	data, err := erc20ABI.Pack("balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return c.readUint256(ctx, token, "balanceOf", data)
}

// Allowance reads token.allowance(owner, spender)
func (c *Client) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	data, err := erc20ABI.Pack("allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	return c.readUint256(ctx, token, "allowance", data)
}

func (c *Client) readUint256(ctx context.Context, contract common.Address, method string, data []byte) (*big.Int, error) {
	var out []byte
	err := c.reads.Execute(ctx, func(ctx context.Context) error {
		var callErr error
		out, callErr = c.backend.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
		return callErr
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrTransient, method, err)
	}
	return unpackUint256(method, out)
}

// Ping checks the RPC endpoint is reachable
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.backend.BlockNumber(ctx)
	return err
}

// SendContractTx signs and broadcasts a call to contract with the platform key.
// The returned hash is set whenever a transaction was signed, including on
// ErrBroadcastUnknown.
func (c *Client) SendContractTx(ctx context.Context, contract common.Address, data []byte) (common.Hash, error) {
	if c.key == nil {
		return common.Hash{}, ErrSignerNotConfigured
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	nonce, err := c.nextNonce(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("get nonce: %w", err)
	}

	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("suggest gas price: %w", err)
	}

	gasLimit := c.gasLimit
	if gasLimit == 0 {
		estimated, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{From: c.from, To: &contract, Data: data})
		if err != nil {
			return common.Hash{}, fmt.Errorf("estimate gas: %w", err)
		}
		gasLimit = estimated + estimated/5
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &contract,
		Value:    new(big.Int),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, c.signer, c.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign transaction: %w", err)
	}
	hash := signed.Hash()

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		c.nonce = nil
		if retry.IsNetworkError(err) || mayBeInPool(err) {
			return hash, fmt.Errorf("%w: %v", ErrBroadcastUnknown, err)
		}
		return common.Hash{}, fmt.Errorf("send transaction: %w", err)
	}

	next := nonce + 1
	c.nonce = &next

	logger.Info("Transaction broadcast",
		logger.String("tx_hash", hash.Hex()),
		logger.String("to", contract.Hex()),
		logger.Int64("nonce", int64(nonce)))

	return hash, nil
}

// Node replies meaning this or a conflicting transaction may already be pending
var inPoolMarkers = []string{
	"already known",
	"known transaction",
	"nonce too low",
	"replacement transaction underpriced",
}

func mayBeInPool(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range inPoolMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// nextNonce must be called with sendMu held
func (c *Client) nextNonce(ctx context.Context) (uint64, error) {
	if c.nonce != nil {
		return *c.nonce, nil
	}
	nonce, err := c.backend.PendingNonceAt(ctx, c.from)
	if err != nil {
		return 0, err
	}
	return nonce, nil
}

// WaitForReceipt polls until the transaction is mined or timeout elapses.
// A mined transaction with failed status returns the receipt and ErrReverted.
func (c *Client) WaitForReceipt(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		switch {
		case err == nil && receipt != nil:
			if receipt.Status == types.ReceiptStatusFailed {
				return receipt, ErrReverted
			}
			return receipt, nil
		case err != nil && !errors.Is(err, ethereum.NotFound) && ctx.Err() == nil:
			logger.Debug("Receipt lookup failed, polling again",
				logger.String("tx_hash", hash.Hex()),
				logger.Err(err))
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrReceiptTimeout, hash.Hex())
		case <-ticker.C:
		}
	}
}
