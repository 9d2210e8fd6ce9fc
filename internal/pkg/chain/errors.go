package chain

import "errors"

var (
	// ErrTransient marks a read that kept failing after retries; callers may retry later
	ErrTransient = errors.New("chain: transient rpc failure")
	// ErrReverted means the transaction was mined with a failed status
	ErrReverted = errors.New("chain: transaction reverted")
	// ErrReceiptTimeout means no receipt arrived in time; the outcome is unknown
	ErrReceiptTimeout = errors.New("chain: timed out waiting for receipt")
	// ErrBroadcastUnknown means the node may have accepted the transaction even though the send call failed
	ErrBroadcastUnknown = errors.New("chain: broadcast outcome unknown")
	// ErrSignerNotConfigured is returned by writes when no private key was provided
	ErrSignerNotConfigured = errors.New("chain: signer key not configured")
)
