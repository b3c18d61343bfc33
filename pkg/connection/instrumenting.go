package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/metrics"
)

type instrumentingMiddleware struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	next           Session
}

func NewInstrumentingMiddleware(counter metrics.Counter, latency metrics.Histogram) Middleware {
	return func(next Session) Session {
		return &instrumentingMiddleware{
			requestCount:   counter,
			requestLatency: latency,
			next:           next,
		}
	}
}

func (mw *instrumentingMiddleware) Get(ctx context.Context, uri string, accept string) (resp *Response, err error) {
	defer func(begin time.Time) {
		lvs := []string{"method", "GET", "error", fmt.Sprint(err != nil)}
		mw.requestCount.With(lvs...).Add(1)
		mw.requestLatency.With(lvs...).Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.Get(ctx, uri, accept)
}

func (mw *instrumentingMiddleware) Post(ctx context.Context, uri string, body []byte) (resp *Response, err error) {
	defer func(begin time.Time) {
		lvs := []string{"method", "POST", "error", fmt.Sprint(err != nil)}
		mw.requestCount.With(lvs...).Add(1)
		mw.requestLatency.With(lvs...).Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.Post(ctx, uri, body)
}

func (mw *instrumentingMiddleware) Put(ctx context.Context, uri string, body []byte) (resp *Response, err error) {
	defer func(begin time.Time) {
		lvs := []string{"method", "PUT", "error", fmt.Sprint(err != nil)}
		mw.requestCount.With(lvs...).Add(1)
		mw.requestLatency.With(lvs...).Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.Put(ctx, uri, body)
}

func (mw *instrumentingMiddleware) Delete(ctx context.Context, uri string) (resp *Response, err error) {
	defer func(begin time.Time) {
		lvs := []string{"method", "DELETE", "error", fmt.Sprint(err != nil)}
		mw.requestCount.With(lvs...).Add(1)
		mw.requestLatency.With(lvs...).Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.Delete(ctx, uri)
}
