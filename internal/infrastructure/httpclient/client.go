package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"strategy_dashboard/internal/domain/entity"
	"strategy_dashboard/internal/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// upstream is the shared fasthttp plumbing of every outbound client: base URL,
// static headers, default timeout, a token-bucket limiter and metrics.
type upstream struct {
	name    string
	client  *fasthttp.Client
	baseURL string
	headers map[string]string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// UpstreamOptions configures an upstream.
type UpstreamOptions struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables limiting
	Burst             int
	Headers           map[string]string
}

func newUpstream(name string, opts UpstreamOptions, logger *zap.Logger) *upstream {
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &upstream{
		name:    name,
		client:  &fasthttp.Client{Name: "strategy-dashboard"},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		headers: opts.Headers,
		timeout: timeout,
		limiter: limiter,
		logger:  logger.Named(name),
	}
}

type rawResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// do performs one request. Transport failures are returned as *entity.UpstreamError
// with status 0; HTTP status codes are left to the caller.
func (u *upstream) do(ctx context.Context, method, path, rawQuery string, body []byte) (*rawResponse, error) {
	if u.limiter != nil {
		if err := u.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s rate limiter: %w", u.name, err)
		}
	}

	requestURL := u.baseURL + path
	if rawQuery != "" {
		requestURL += "?" + rawQuery
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	for k, v := range u.headers {
		req.Header.Set(k, v)
	}
	if len(body) > 0 {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	u.logger.Debug("Upstream request", zap.String("method", method), zap.String("url", requestURL))
	started := time.Now()

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = u.client.DoDeadline(req, resp, deadline)
	} else {
		err = u.client.DoTimeout(req, resp, u.timeout)
	}
	if err != nil {
		metrics.ObserveUpstream(u.name, metrics.OutcomeError, started)
		u.logger.Warn("Upstream request failed", zap.String("url", requestURL), zap.Error(err))
		return nil, &entity.UpstreamError{Upstream: u.name, Body: err.Error()}
	}

	outcome := metrics.OutcomeOK
	if resp.StatusCode() >= fasthttp.StatusBadRequest {
		outcome = metrics.OutcomeHTTPError
	}
	metrics.ObserveUpstream(u.name, outcome, started)

	return &rawResponse{
		StatusCode:  resp.StatusCode(),
		ContentType: string(resp.Header.ContentType()),
		Body:        append([]byte(nil), resp.Body()...),
	}, nil
}

// getJSON performs a GET and decodes a 2xx JSON body into out.
func (u *upstream) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := u.do(ctx, fasthttp.MethodGet, path, query.Encode(), nil)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		u.logger.Warn("Upstream returned error status",
			zap.String("path", path),
			zap.Int("statusCode", resp.StatusCode),
			zap.ByteString("responseBody", truncate(resp.Body, 512)))
		return &entity.UpstreamError{Upstream: u.name, StatusCode: resp.StatusCode, Body: string(truncate(resp.Body, 512))}
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(u.name, metrics.OutcomeDecode).Inc()
		return fmt.Errorf("%w: %s: decode %s: %v", entity.ErrUpstream, u.name, path, err)
	}
	return nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
