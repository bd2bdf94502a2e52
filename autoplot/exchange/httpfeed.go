package exchange

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jpillora/backoff"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/tools/log"
)

// ErrFeedRejected is returned for client errors, which are never retried.
var ErrFeedRejected = errors.New("feed rejected the request")

// HTTPFeed fetches candles from a JSON endpoint answering
// GET {base}?pair=...&timeframe=...&start=...&end=... with a candle list.
type HTTPFeed struct {
	client  *resty.Client
	baseURL string
	retries int
	backoff backoff.Backoff
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

type HTTPOption func(*HTTPFeed)

// WithRetries sets how many times a failed request is retried (default 3)
func WithRetries(retries int) HTTPOption {
	return func(feed *HTTPFeed) {
		feed.retries = retries
	}
}

// WithTimeout sets the timeout of every request (default 30s)
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(feed *HTTPFeed) {
		feed.client.SetTimeout(timeout)
	}
}

// WithBackoff sets the wait between retries
func WithBackoff(min, max time.Duration) HTTPOption {
	return func(feed *HTTPFeed) {
		feed.backoff.Min = min
		feed.backoff.Max = max
	}
}

// WithRateLimit caps the request rate (default 10 per second, burst 5)
func WithRateLimit(perSecond float64, burst int) HTTPOption {
	return func(feed *HTTPFeed) {
		feed.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

func NewHTTPFeed(baseURL string, options ...HTTPOption) *HTTPFeed {
	feed := &HTTPFeed{
		client:  resty.New().SetTimeout(30 * time.Second),
		baseURL: baseURL,
		retries: 3,
		backoff: backoff.Backoff{
			Min:    200 * time.Millisecond,
			Max:    5 * time.Second,
			Factor: 2,
			Jitter: true,
		},
		limiter: rate.NewLimiter(10, 5),
	}

	for _, option := range options {
		option(feed)
	}

	// the breaker opens after consecutive server failures and sheds load
	// until the feed had a minute to recover
	feed.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "candle-feed",
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > uint32(feed.retries)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrFeedRejected)
		},
	})

	return feed
}

// CandlesByPeriod fetches the candles of pair between start and end, oldest first.
func (f *HTTPFeed) CandlesByPeriod(ctx context.Context, pair, timeframe string,
	start, end time.Time) ([]model.Candle, error) {

	params := map[string]string{
		"pair":      pair,
		"timeframe": timeframe,
		"start":     start.UTC().Format(time.RFC3339),
		"end":       end.UTC().Format(time.RFC3339),
	}

	retry := f.backoff
	for attempt := 0; ; attempt++ {
		candles, err := f.fetch(ctx, pair, params)
		if err == nil || errors.Is(err, ErrFeedRejected) || errors.Is(err, gobreaker.ErrOpenState) ||
			attempt >= f.retries || ctx.Err() != nil {
			return candles, err
		}

		wait := retry.Duration()
		log.Warnf("%v, retrying in %s", err, wait)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (f *HTTPFeed) fetch(ctx context.Context, pair string, params map[string]string) ([]model.Candle, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := f.breaker.Execute(func() (interface{}, error) {
		var candles []model.Candle
		resp, err := f.client.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetResult(&candles).
			Get(f.baseURL)

		switch {
		case err != nil:
			return nil, fmt.Errorf("fetch candles %s: %w", pair, err)
		case resp.StatusCode() >= http.StatusInternalServerError:
			return nil, fmt.Errorf("fetch candles %s: %s", pair, resp.Status())
		case resp.IsError():
			return nil, fmt.Errorf("fetch candles %s: %s: %w", pair, resp.Status(), ErrFeedRejected)
		}
		return candles, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]model.Candle), nil
}
