package clash

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/briangreenhill/clashclient/cache"
)

// DefaultBaseURL is the public API host.
const DefaultBaseURL = "https://api.clashofclans.com"

// ResponsePreference is the cache lifetime applied to successful responses.
const ResponsePreference = cache.ShortLivedSliding

// maxBodyBytes caps how much of a response body is read.
var maxBodyBytes int64 = 16 << 20

// statuses for which the API documents an ErrorResponse body
var documentedErrors = map[int]bool{
	http.StatusBadRequest:          true,
	http.StatusForbidden:           true,
	http.StatusNotFound:            true,
	http.StatusInternalServerError: true,
	http.StatusServiceUnavailable:  true,
}

// Client issues API calls. It is safe for concurrent use.
type Client struct {
	http      *http.Client
	config    ConfigProvider
	cache     *cache.Store // optional; nil means no cache
	formatter QueryStringFormatter
	log       zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithCache shares a response store with the client.
func WithCache(s *cache.Store) Option {
	return func(c *Client) { c.cache = s }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithFormatter(f QueryStringFormatter) Option {
	return func(c *Client) { c.formatter = f }
}

// New creates a client that reads its endpoint and token from provider on every call.
func New(provider ConfigProvider, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, ErrNoConfig
	}
	c := &Client{
		http:   http.DefaultClient,
		config: provider,
		log:    zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Cache returns the client's store, which may be nil.
func (c *Client) Cache() *cache.Store {
	return c.cache
}

// Load executes req and decodes a successful body into T. Successful responses are
// served from the cache while fresh. The returned error covers invalid requests and
// missing configuration only; everything that happens on the wire is reported in
// the response's messages.
func Load[T any](ctx context.Context, c *Client, req Request) (*Response[T], error) {
	if req == nil || isNil(req) {
		return nil, ErrNilRequest
	}
	if v, ok := req.(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	cfg, err := resolveConfig(c.config)
	if err != nil {
		return nil, err
	}

	query, err := QueryString(req, c.formatter)
	if err != nil {
		return nil, err
	}
	path := URLPath(req)
	key := cache.NormalizeKey(path + query)
	target := requestURL(cfg, path, query)

	if entry := cache.Read[Response[T]](c.cache, key); entry.CacheHit() {
		resp := entry.LoadCachedData()
		return &resp, nil
	}

	resp := fetch[T](ctx, c, cfg.token, target)

	if resp.Successful {
		if err := cache.Set(c.cache, key, cache.NewEntry(resp, ResponsePreference)); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("failed to cache response")
		}
	}
	return resp, nil
}

func (c *Client) newReq(ctx context.Context, token, target string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// fetch performs the GET and classifies the outcome into a response envelope.
func fetch[T any](ctx context.Context, c *Client, token, target string) *Response[T] {
	resp := NewResponse[T]()
	requestID := uuid.NewString()
	start := time.Now()
	defer func() {
		resp.addMessage(CategoryDiagnostic, CodeRequestSummary,
			"request %s: GET %s -> %d in %s", requestID, target, resp.HTTPStatusCode, time.Since(start).Round(time.Millisecond))
	}()

	req, err := c.newReq(ctx, token, target)
	if err != nil {
		resp.addMessage(CategoryFailure, CodeResponseUnavailable, "could not build request for %s: %v", target, err)
		return resp
	}

	c.log.Debug().Str("request_id", requestID).Str("url", target).Msg("outbound request")
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("request_id", requestID).Msg("no response")
		resp.addMessage(CategoryFailure, CodeResponseUnavailable, "no response was received from %s: %v", target, err)
		return resp
	}
	defer res.Body.Close()

	resp.HTTPStatusCode = res.StatusCode
	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes+1))
	if err != nil {
		resp.addMessage(CategoryFailure, CodeResponseUnavailable, "reading the response from %s failed: %v", target, err)
		return resp
	}
	if int64(len(body)) > maxBodyBytes {
		resp.addMessage(CategoryFailure, CodeResponseUnavailable, "the response from %s exceeded %d bytes", target, maxBodyBytes)
		return resp
	}

	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		if len(bytes.TrimSpace(body)) == 0 {
			resp.Successful = true
			resp.addMessage(CategoryProblem, CodeNoContent, "%s returned no content", target)
			return resp
		}
		if err := json.Unmarshal(body, &resp.Data); err != nil {
			var zero T
			resp.Data = zero
			resp.addMessage(CategoryFailure, CodeParseFailure, "the response from %s could not be parsed: %v", target, err)
			return resp
		}
		resp.Successful = true
	case documentedErrors[res.StatusCode]:
		var e ErrorResponse
		if err := json.Unmarshal(body, &e); err != nil || (e.Reason == "" && e.Message == "") {
			resp.addMessage(CategoryFailure, CodeErrorUnreadable, "%s returned %d and an unreadable error body", target, res.StatusCode)
			return resp
		}
		resp.addMessage(CategoryFailure, e.Reason, "%s: %s", e.Reason, e.Message)
	default:
		resp.addMessage(CategoryFailure, CodeUnknownStatus, "%s returned an unexpected status: %s", target, res.Status)
	}
	return resp
}

// SearchClans finds clans matching req.
func (c *Client) SearchClans(ctx context.Context, req ClanSearchRequest) (*Response[ClanSearchResponse], error) {
	return Load[ClanSearchResponse](ctx, c, req)
}

func (c *Client) GetClan(ctx context.Context, tag string) (*Response[DetailedClanResult], error) {
	return Load[DetailedClanResult](ctx, c, ClanInfoRequest{Tag: tag})
}

func (c *Client) GetClanMembers(ctx context.Context, tag string, page Paging) (*Response[ClanMembersResponse], error) {
	return Load[ClanMembersResponse](ctx, c, ClanMembersRequest{Tag: tag, Paging: page})
}

func (c *Client) GetClanWarLog(ctx context.Context, tag string, page Paging) (*Response[ClanWarLogResponse], error) {
	return Load[ClanWarLogResponse](ctx, c, ClanWarLogRequest{Tag: tag, Paging: page})
}

func (c *Client) GetCurrentWar(ctx context.Context, tag string) (*Response[CurrentWar], error) {
	return Load[CurrentWar](ctx, c, CurrentWarRequest{Tag: tag})
}

func (c *Client) GetPlayer(ctx context.Context, tag string) (*Response[DetailedPlayer], error) {
	return Load[DetailedPlayer](ctx, c, PlayerInfoRequest{Tag: tag})
}
