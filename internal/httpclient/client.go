package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultRetryMax     = 3
	DefaultRetryWaitMin = 250 * time.Millisecond
	DefaultRetryWaitMax = 2 * time.Second
	DefaultTimeout      = 30 * time.Second
)

// New creates a retrying HTTP client. Requests are retried on connection errors and on 502, 503 and 504 responses.
// The last response is returned when retries are exhausted, so callers can inspect its status code.
func New(retryMax int, logger zerolog.Logger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = retryLogger{logger: logger}
	client.RetryMax = retryMax
	client.RetryWaitMin = DefaultRetryWaitMin
	client.RetryWaitMax = DefaultRetryWaitMax
	client.HTTPClient.Timeout = DefaultTimeout
	client.CheckRetry = retryOnUnavailable
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return client
}

// Default creates a retrying HTTP client with the default retry count, logging with the global logger
func Default() *retryablehttp.Client {
	return New(DefaultRetryMax, log.Logger)
}

func retryOnUnavailable(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	switch resp.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true, nil
	default:
		return false, nil
	}
}

type retryLogger struct {
	logger zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Trace().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}
