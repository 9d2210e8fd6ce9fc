package gateway

import (
	"context"

	"github.com/piresc/cardsettle/internal/pkg/models"
	nsqpkg "github.com/piresc/cardsettle/internal/pkg/nsq"
)

// Publisher is the part of the NSQ producer the gateway uses
type Publisher interface {
	Publish(topic string, message interface{}) error
}

// EventGW publishes settlement events to NSQ
type EventGW struct {
	producer       Publisher
	pointsTopic    string
	reconcileTopic string
}

// NewEventGW creates a new event gateway
func NewEventGW(cfg models.NSQConfig, producer Publisher) *EventGW {
	return &EventGW{
		producer:       producer,
		pointsTopic:    cfg.PointsTopic,
		reconcileTopic: cfg.ReconcileTopic,
	}
}

// PublishPointsAward emits a points award request
func (g *EventGW) PublishPointsAward(ctx context.Context, event models.PointsAwardEvent) error {
	return g.producer.Publish(g.pointsTopic, event)
}

// PublishReconcile flags a settlement for manual reconciliation
func (g *EventGW) PublishReconcile(ctx context.Context, event models.ReconcileEvent) error {
	return g.producer.Publish(g.reconcileTopic, event)
}

var _ Publisher = (*nsqpkg.Producer)(nil)
