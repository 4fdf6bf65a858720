// Package feed provides live market quotes for open positions.
package feed

import (
	"context"
	"sync"

	"github.com/Bni3259/trading-journal/internal/errors"
)

// PriceFeed returns the latest trade price for a ticker. Implementations may
// fail at any time (network, rate limits); callers treat a failure as "no
// live price available", never as fatal.
type PriceFeed interface {
	LatestPrice(ctx context.Context, ticker string) (float64, error)
	LatestPrices(ctx context.Context, tickers []string) (map[string]float64, error)
}

// StaticFeed is an in-memory feed for tests and offline use.
type StaticFeed struct {
	mu     sync.RWMutex
	prices map[string]float64
}

// NewStaticFeed creates a StaticFeed with the given prices.
func NewStaticFeed(prices map[string]float64) *StaticFeed {
	if prices == nil {
		prices = make(map[string]float64)
	}
	return &StaticFeed{prices: prices}
}

// SetPrice sets the quoted price for a ticker.
func (f *StaticFeed) SetPrice(ticker string, price float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[ticker] = price
}

// LatestPrice returns the stored price, or ErrPriceUnavailable for unknown
// tickers.
func (f *StaticFeed) LatestPrice(ctx context.Context, ticker string) (float64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	price, ok := f.prices[ticker]
	if !ok {
		return 0, errors.Wrapf(errors.ErrPriceUnavailable, "no quote for %s", ticker)
	}
	return price, nil
}

// LatestPrices returns prices for the tickers it knows about. Unknown tickers
// are simply absent from the result.
func (f *StaticFeed) LatestPrices(ctx context.Context, tickers []string) (map[string]float64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make(map[string]float64, len(tickers))
	for _, t := range tickers {
		if price, ok := f.prices[t]; ok {
			out[t] = price
		}
	}
	return out, nil
}
