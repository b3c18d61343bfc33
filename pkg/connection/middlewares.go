package connection

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/opentracing/opentracing-go"
)

type Middleware func(Session) Session

func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next Session) Session {
		return &loggingMiddleware{
			next:   next,
			logger: logger,
		}
	}
}

type loggingMiddleware struct {
	next   Session
	logger log.Logger
}

func (mw loggingMiddleware) Get(ctx context.Context, uri string, accept string) (resp *Response, err error) {
	defer func(begin time.Time) {
		level.Debug(mw.logger).Log(
			"method", "GET",
			"uri", uri,
			"status", statusOf(resp),
			"took", time.Since(begin),
			"trace_id", opentracing.SpanFromContext(ctx),
			"err", err,
		)
	}(time.Now())
	return mw.next.Get(ctx, uri, accept)
}

func (mw loggingMiddleware) Post(ctx context.Context, uri string, body []byte) (resp *Response, err error) {
	defer func(begin time.Time) {
		level.Debug(mw.logger).Log(
			"method", "POST",
			"uri", uri,
			"request_bytes", len(body),
			"status", statusOf(resp),
			"took", time.Since(begin),
			"trace_id", opentracing.SpanFromContext(ctx),
			"err", err,
		)
	}(time.Now())
	return mw.next.Post(ctx, uri, body)
}

func (mw loggingMiddleware) Put(ctx context.Context, uri string, body []byte) (resp *Response, err error) {
	defer func(begin time.Time) {
		level.Debug(mw.logger).Log(
			"method", "PUT",
			"uri", uri,
			"request_bytes", len(body),
			"status", statusOf(resp),
			"took", time.Since(begin),
			"trace_id", opentracing.SpanFromContext(ctx),
			"err", err,
		)
	}(time.Now())
	return mw.next.Put(ctx, uri, body)
}

func (mw loggingMiddleware) Delete(ctx context.Context, uri string) (resp *Response, err error) {
	defer func(begin time.Time) {
		level.Debug(mw.logger).Log(
			"method", "DELETE",
			"uri", uri,
			"status", statusOf(resp),
			"took", time.Since(begin),
			"trace_id", opentracing.SpanFromContext(ctx),
			"err", err,
		)
	}(time.Now())
	return mw.next.Delete(ctx, uri)
}

func statusOf(resp *Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
