package context

import (
	"context"
)

// ContextKey represents a key for context values
type ContextKey string

const (
	// RequestIDKey is the key for request ID in context
	RequestIDKey ContextKey = "request_id"
	// PaymentIDKey is the key for the payment being settled
	PaymentIDKey ContextKey = "payment_id"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithPaymentID tags the context with the payment it works on
func WithPaymentID(ctx context.Context, paymentID string) context.Context {
	return context.WithValue(ctx, PaymentIDKey, paymentID)
}

// GetPaymentID retrieves the payment ID from context
func GetPaymentID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if paymentID, ok := ctx.Value(PaymentIDKey).(string); ok {
		return paymentID
	}
	return ""
}
