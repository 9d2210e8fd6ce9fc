package newrelic

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// FromEchoContext extracts the New Relic transaction from an Echo context
func FromEchoContext(c echo.Context) *newrelic.Transaction {
	return nrecho.FromContext(c)
}

// FromContext extracts the New Relic transaction from a standard context
func FromContext(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

// StartSegment returns nil when there is no transaction
func StartSegment(txn *newrelic.Transaction, name string) *newrelic.Segment {
	if txn == nil {
		return nil
	}
	return txn.StartSegment(name)
}

// SetTransactionName sets the name of the transaction
func SetTransactionName(txn *newrelic.Transaction, name string) {
	if txn != nil {
		txn.SetName(name)
	}
}

// AddTransactionAttribute adds a custom attribute to the transaction
func AddTransactionAttribute(txn *newrelic.Transaction, key string, value interface{}) {
	if txn != nil {
		txn.AddAttribute(key, value)
	}
}

// NoticeTransactionError reports an error to New Relic
func NoticeTransactionError(txn *newrelic.Transaction, err error) {
	if txn != nil && err != nil {
		txn.NoticeError(err)
	}
}

// TraceUseCase wraps a use case step in a segment
func TraceUseCase(ctx context.Context, name string, fn func(context.Context) error) error {
	segment := StartSegment(FromContext(ctx), name)
	if segment != nil {
		defer segment.End()
	}
	return fn(ctx)
}

// TraceUseCaseWithReturn wraps a use case step that returns a value in a segment
func TraceUseCaseWithReturn[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) (T, error) {
	segment := StartSegment(FromContext(ctx), name)
	if segment != nil {
		defer segment.End()
	}
	return fn(ctx)
}

// StartBackgroundTransaction starts a non-web transaction for queue consumers.
// The returned end func is always safe to call.
func StartBackgroundTransaction(ctx context.Context, app *newrelic.Application, name string) (context.Context, func()) {
	if app == nil {
		return ctx, func() {}
	}
	txn := app.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), txn.End
}
