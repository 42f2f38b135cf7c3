package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Client is a traced JSON HTTP client for calls between services. Every
// call gets its own client span, trace propagation headers, and a bounded
// timeout. The raw status code is returned so callers can map 404 and
// other responses to their own failure variants.
type Client struct {
	tracer     trace.Tracer
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient builds a client whose calls each time out after timeout.
// The underlying http.Client has no global timeout; cancellation is
// entirely context driven.
func NewClient(tracer trace.Tracer, timeout time.Duration) *Client {
	return &Client{
		tracer: tracer,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
		},
		timeout: timeout,
	}
}

// DoJSON performs method against rawURL with body marshalled as JSON (nil
// means no body) and decodes a 2xx response into out (nil means discard).
// A non-2xx response is not an error here; the status code carries it.
func (c *Client) DoJSON(ctx context.Context, method, rawURL string, body, out any) (int, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, err
	}
	spanName := fmt.Sprintf("call-%s", strings.Split(parsed.Host, ":")[0])

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			return 0, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	span.SetAttributes(
		attribute.String("http.url", rawURL),
		attribute.String("http.method", method),
	)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= 200 && resp.StatusCode < 300 && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			span.RecordError(err)
			return resp.StatusCode, err
		}
		return resp.StatusCode, nil
	}
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) (int, error) {
	return c.DoJSON(ctx, http.MethodGet, rawURL, nil, out)
}

func (c *Client) PostJSON(ctx context.Context, rawURL string, body, out any) (int, error) {
	return c.DoJSON(ctx, http.MethodPost, rawURL, body, out)
}

func (c *Client) PutJSON(ctx context.Context, rawURL string, body, out any) (int, error) {
	return c.DoJSON(ctx, http.MethodPut, rawURL, body, out)
}
