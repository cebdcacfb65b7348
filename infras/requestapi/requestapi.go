package requestapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"rentro/config"
	"rentro/infras/metrics"
	"rentro/internal/domains/booking/model"
	requestDto "rentro/internal/domains/request/model/dto"
	"rentro/shared/constant"
	"rentro/shared/failure"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const maxErrorBody = 4 << 10

type envelope[T any] struct {
	Data  *T     `json:"data"`
	Error string `json:"error"`
}

// Client reaches a remote deployment of the booking-request endpoints. BaseURL
// includes the version prefix, e.g. "https://api.example.vn/v1".
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func New(cfg *config.Config) (*Client, error) {
	api := cfg.External.RequestAPI

	if _, err := url.ParseRequestURI(api.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid request api base url: %w", err)
	}

	timeout := time.Duration(api.TimeoutSeconds) * time.Second
	limit := rate.Inf

	if api.RatePerSecond > 0 {
		limit = rate.Limit(api.RatePerSecond)
	}

	return &Client{
		baseURL: strings.TrimRight(api.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter: rate.NewLimiter(limit, max(api.Burst, 1)),
	}, nil
}

func (c *Client) Create(ctx context.Context, session model.Session, req requestDto.CreateRequest) (requestDto.RequestResponse, error) {
	var res requestDto.RequestResponse
	err := c.do(ctx, session, "create", http.MethodPost, "/request/create", req, &res)

	return res, err
}

func (c *Client) ListByUser(ctx context.Context, session model.Session, userID string) ([]requestDto.RequestResponse, error) {
	var res []requestDto.RequestResponse
	err := c.do(ctx, session, "list_by_user", http.MethodGet, "/request/user/"+url.PathEscape(userID), nil, &res)

	return res, err
}

func (c *Client) ListByPost(ctx context.Context, session model.Session, postID string) ([]requestDto.RequestResponse, error) {
	var res []requestDto.RequestResponse
	err := c.do(ctx, session, "list_by_post", http.MethodGet, "/request/post/"+url.PathEscape(postID), nil, &res)

	return res, err
}

func (c *Client) Update(ctx context.Context, session model.Session, id string, req requestDto.UpdateRequest) (requestDto.RequestResponse, error) {
	var res requestDto.RequestResponse
	err := c.do(ctx, session, "update", http.MethodPut, "/request/"+url.PathEscape(id), req, &res)

	return res, err
}

func (c *Client) Accept(ctx context.Context, session model.Session, id string) (requestDto.RequestResponse, error) {
	var res requestDto.RequestResponse
	err := c.do(ctx, session, "accept", http.MethodPut, "/request/"+url.PathEscape(id)+"/accept", nil, &res)

	return res, err
}

func (c *Client) Decline(ctx context.Context, session model.Session, id string) (requestDto.RequestResponse, error) {
	var res requestDto.RequestResponse
	err := c.do(ctx, session, "decline", http.MethodPut, "/request/"+url.PathEscape(id)+"/decline", nil, &res)

	return res, err
}

func (c *Client) Delete(ctx context.Context, session model.Session, id string) error {
	return c.do(ctx, session, "delete", http.MethodDelete, "/request/"+url.PathEscape(id), nil, nil)
}

// do sends one request. There is no retry: a failed call is reported to the caller as is.
func (c *Client) do(ctx context.Context, session model.Session, operation, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("request api %s: %w", operation, err)
	}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", operation, err)
		}

		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}

	httpReq.Header.Set("Accept", constant.ContentTypeJSON)

	if body != nil {
		httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	if session.Token != constant.Empty {
		httpReq.Header.Set(constant.RequestHeaderAuthorization, constant.BearerPrefix+session.Token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.IncUpstream(operation, 0)
		log.Error().Err(err).Str("operation", operation).Msg("request api call failed")

		return failure.BadGateway("booking request service unreachable") // nolint:wrapcheck
	}
	defer resp.Body.Close()

	metrics.IncUpstream(operation, resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeFailure(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	wrapped := envelope[json.RawMessage]{}
	if err = json.NewDecoder(resp.Body).Decode(&wrapped); err != nil {
		return failure.BadGateway(fmt.Sprintf("invalid %s response: %v", operation, err)) // nolint:wrapcheck
	}

	if wrapped.Data == nil {
		return nil
	}

	if err = json.Unmarshal(*wrapped.Data, out); err != nil {
		return failure.BadGateway(fmt.Sprintf("invalid %s payload: %v", operation, err)) // nolint:wrapcheck
	}

	return nil
}

func decodeFailure(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	message := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &body) == nil {
		message = body.Error
		if message == constant.Empty {
			message = body.Message
		}
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return failure.BadGateway(fmt.Sprintf("booking request service failed: %s", http.StatusText(resp.StatusCode)))
	}

	return failure.FromStatus(resp.StatusCode, message)
}
