package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/discordx/config"
	"github.com/questx-lab/discordx/internal/common"
	"github.com/questx-lab/discordx/pkg/api"
	"github.com/questx-lab/discordx/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

type Downloader func(ctx context.Context, url string) ([]byte, error)

// Client is the HTTP implementation of Requester.
type Client struct {
	token      string
	userAgent  string
	maxRetries uint64

	apiGenerator api.Generator
	newBackOff   func() backoff.BackOff
	download     Downloader

	// rateLimitResource maps a major resource to the reset time of each of its
	// routes.
	rateLimitResource *xsync.MapOf[string, *xsync.MapOf[string, time.Time]]
}

type Option func(*Client)

func WithGenerator(g api.Generator) Option {
	return func(c *Client) {
		c.apiGenerator = g
	}
}

func WithBackOff(f func() backoff.BackOff) Option {
	return func(c *Client) {
		c.newBackOff = f
	}
}

func WithDownloader(d Downloader) Option {
	return func(c *Client) {
		c.download = d
	}
}

func New(cfg config.DiscordConfigs, opts ...Option) *Client {
	c := &Client{
		token:             cfg.BotToken,
		userAgent:         cfg.UserAgent,
		maxRetries:        cfg.MaxRetries,
		apiGenerator:      api.NewGenerator(cfg.APIURL),
		newBackOff:        func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		download:          httpDownload,
		rateLimitResource: xsync.NewMapOf[*xsync.MapOf[string, time.Time]](),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Request(ctx context.Context, req Request) (*Response, error) {
	requestID := uuid.NewString()
	route := Route(req.Endpoint)
	resource := majorResource(req.Endpoint)
	identifier := req.Method + " " + route

	if err := c.checkLimitingResource(resource, identifier); err != nil {
		return nil, err
	}

	body, err := c.body(ctx, req)
	if err != nil {
		return nil, err
	}

	opts := []api.Opt{api.AuditReason(req.Reason)}
	if req.Authenticated {
		opts = append(opts, api.OAuth2("Bot", c.token))
	}

	var result *Response
	attempt := 0
	operation := func() error {
		attempt++
		client := c.apiGenerator.New("%s", req.Endpoint).Header("User-Agent", c.userAgent)
		if len(req.Query) > 0 {
			client = client.Query(req.Query)
		}

		if body != nil {
			client = client.Body(body)
		}

		start := time.Now()
		resp, err := send(ctx, client, req.Method, opts...)
		common.PromHistograms[common.DiscordRequestDurationSeconds].
			WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
		if err != nil {
			common.PromCounters[common.DiscordRequestTotal].WithLabelValues(req.Method, route, "error").Inc()
			xcontext.Logger(ctx).Warnf("[%s] %s %s attempt %d failed: %v",
				requestID, req.Method, req.Endpoint, attempt, err)
			return err
		}

		common.PromCounters[common.DiscordRequestTotal].
			WithLabelValues(req.Method, route, strconv.Itoa(resp.Code)).Inc()
		xcontext.Logger(ctx).Debugf("[%s] %s %s -> %d", requestID, req.Method, req.Endpoint, resp.Code)

		if err := c.checkTooManyRequest(resp, resource, identifier); err != nil {
			return backoff.Permanent(err)
		}

		if resp.Code >= http.StatusInternalServerError {
			return newAPIError(req, resp)
		}

		if resp.Code >= http.StatusBadRequest {
			return backoff.Permanent(newAPIError(req, resp))
		}

		result = &Response{Code: resp.Code, Header: resp.Header, Raw: resp.RawBody}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) body(ctx context.Context, req Request) (api.Body, error) {
	if len(req.Files) == 0 {
		if req.Body == nil {
			return nil, nil
		}

		return api.Marshal(req.Body), nil
	}

	files := make([]api.FormFile, len(req.Files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range req.Files {
		i, f := i, f
		g.Go(func() error {
			data := f.Data
			if data == nil {
				var err error
				data, err = c.download(gctx, f.URL)
				if err != nil {
					return fmt.Errorf("cannot download %s: %w", f.Name, err)
				}
			}

			files[i] = api.FormFile{Field: fmt.Sprintf("files[%d]", i), Name: f.Name, Data: data}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return api.Multipart{Payload: req.Body, Files: files}, nil
}

func (c *Client) checkLimitingResource(resource, identifier string) error {
	if limit, ok := c.rateLimitResource.Load(resource); ok {
		if resetAt, ok := limit.Load(identifier); ok {
			if resetAt.After(time.Now()) {
				return wrapRateLimit(resetAt)
			}

			// If the rate limit is reset, delete the limit for this resource.
			limit.Delete(identifier)
		}
	}

	return nil
}

// checkTooManyRequest records the reset time of a limited route. A route whose
// bucket is exhausted is recorded as well, but the response is still valid.
func (c *Client) checkTooManyRequest(resp *api.Response, resource, identifier string) error {
	exhausted := resp.Header.Get("X-Ratelimit-Remaining") == "0"
	if resp.Code != http.StatusTooManyRequests && !exhausted {
		return nil
	}

	resetAt, ok := parseResetAt(resp)
	if !ok {
		if resp.Code == http.StatusTooManyRequests {
			return ErrRateLimit
		}
		return nil
	}

	resourceLimiter, _ := c.rateLimitResource.LoadOrStore(resource, xsync.NewMapOf[time.Time]())
	resourceLimiter.Store(identifier, resetAt)

	if resp.Code == http.StatusTooManyRequests {
		return wrapRateLimit(resetAt)
	}

	return nil
}

func parseResetAt(resp *api.Response) (time.Time, bool) {
	if reset := resp.Header.Get("X-Ratelimit-Reset"); reset != "" {
		if seconds, err := strconv.ParseFloat(reset, 64); err == nil {
			return time.UnixMilli(int64(seconds * 1000)), true
		}
	}

	if after := resp.Header.Get("Retry-After"); after != "" {
		if seconds, err := strconv.ParseFloat(after, 64); err == nil {
			return time.Now().Add(time.Duration(seconds * float64(time.Second))), true
		}
	}

	if body, ok := resp.Body.(api.JSON); ok {
		if seconds, err := body.GetFloat("retry_after"); err == nil {
			return time.Now().Add(time.Duration(seconds * float64(time.Second))), true
		}
	}

	return time.Time{}, false
}

func newAPIError(req Request, resp *api.Response) *APIError {
	apiErr := &APIError{
		Status:   resp.Code,
		Message:  http.StatusText(resp.Code),
		Method:   req.Method,
		Endpoint: req.Endpoint,
	}

	if body, ok := resp.Body.(api.JSON); ok {
		if code, err := body.GetInt("code"); err == nil {
			apiErr.Code = code
		}

		if msg, err := body.GetString("message"); err == nil {
			apiErr.Message = msg
		}
	}

	return apiErr
}

func send(ctx context.Context, client api.Client, method string, opts ...api.Opt) (*api.Response, error) {
	switch method {
	case http.MethodGet:
		return client.GET(ctx, opts...)
	case http.MethodPost:
		return client.POST(ctx, opts...)
	case http.MethodPut:
		return client.PUT(ctx, opts...)
	case http.MethodPatch:
		return client.PATCH(ctx, opts...)
	case http.MethodDelete:
		return client.DELETE(ctx, opts...)
	}

	return nil, backoff.Permanent(fmt.Errorf("unsupported method %s", method))
}

func httpDownload(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := xcontext.HTTPClient(ctx).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New(resp.Status)
	}

	return io.ReadAll(resp.Body)
}
