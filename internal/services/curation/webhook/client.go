// Package webhook sends JSON payloads to the external automation endpoints
// and classifies their failures.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName       = "github.com/louisbranch/curation/internal/services/curation/webhook"
	maxResponseBytes = 16 << 20
)

// Poster sends one payload to one webhook URL.
type Poster interface {
	Post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
}

// Client is a single-attempt JSON webhook client.
type Client struct {
	http *http.Client
}

// NewClient builds a Client. A nil httpClient uses a client without its own
// timeout, so only ctx bounds a call.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{http: httpClient}
}

// Post serializes payload as JSON, sends it once, and returns the parsed body.
func (c *Client) Post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode webhook payload: %w", err)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "webhook.post", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	if u, err := url.Parse(endpoint); err == nil {
		span.SetAttributes(attribute.String("server.address", u.Host), attribute.String("url.path", u.Path))
	}

	raw, err := c.post(ctx, endpoint, body, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return raw, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte, span trace.Span) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, &RemoteError{StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if len(data) > maxResponseBytes {
		return nil, &MalformedResponseError{Err: errors.New("response body too large")}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &EmptyResponseError{}
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	return raw, nil
}
