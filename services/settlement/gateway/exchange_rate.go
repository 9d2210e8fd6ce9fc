package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	httpclient "github.com/piresc/cardsettle/internal/pkg/http"
	"github.com/piresc/cardsettle/internal/pkg/logger"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/services/settlement"
)

// latestRatesResponse is the body of GET /latest
type latestRatesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// RateGW fetches exchange rates from the rates API and caches them in Redis
type RateGW struct {
	client *httpclient.Client
	cache  settlement.CacheRepo
	ttl    time.Duration
	now    func() time.Time
}

// NewRateGW creates a new exchange-rate gateway
func NewRateGW(cfg models.FXConfig, client *httpclient.Client, cache settlement.CacheRepo) *RateGW {
	return &RateGW{
		client: client,
		cache:  cache,
		ttl:    time.Duration(cfg.CacheTTL) * time.Second,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GetRate returns the base to quote rate, from cache when fresh
func (g *RateGW) GetRate(ctx context.Context, base, quote string) (models.FXRate, error) {
	base, quote = strings.ToUpper(base), strings.ToUpper(quote)

	if base == quote {
		return models.FXRate{Base: base, Quote: quote, Rate: 1, AsOf: g.now()}, nil
	}

	if cached, err := g.cache.GetRate(ctx, base, quote); err != nil {
		logger.Warn("Rate cache read failed",
			logger.String("pair", base+"/"+quote),
			logger.Err(err))
	} else if cached != nil {
		return *cached, nil
	}

	var body latestRatesResponse
	query := url.Values{"from": {base}, "to": {quote}}
	if err := g.client.GetJSON(ctx, "/latest", query, &body); err != nil {
		return models.FXRate{}, fmt.Errorf("fetch %s/%s rate: %w", base, quote, err)
	}

	value, ok := body.Rates[quote]
	if !ok || value <= 0 {
		return models.FXRate{}, fmt.Errorf("rates response has no usable %s/%s rate", base, quote)
	}

	rate := models.FXRate{Base: base, Quote: quote, Rate: value, AsOf: g.now()}
	if asOf, err := time.Parse("2006-01-02", body.Date); err == nil {
		rate.AsOf = asOf
	}

	if g.ttl > 0 {
		if err := g.cache.SetRate(ctx, rate, g.ttl); err != nil {
			logger.Warn("Rate cache write failed",
				logger.String("pair", base+"/"+quote),
				logger.Err(err))
		}
	}

	return rate, nil
}
