// Package gateway relays requests to the external ML inference service and
// the hosted chatbot model.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventhub/internal/common"
	"eventhub/internal/logging"
	"eventhub/internal/metrics"
)

// Fallback is returned when the chatbot reply cannot be read.
const Fallback = "Sorry, I didn't get that."

// Inference service endpoints.
const (
	EndpointRecommend = "recommend"
	EndpointResume    = "resume"
	EndpointChatbot   = "chatbot"
)

// maxBody caps an upstream reply; a longer one is an error, never truncated.
var maxBody int64 = 10 << 20

var endpoints = map[string]bool{
	EndpointRecommend: true,
	EndpointResume:    true,
	EndpointChatbot:   true,
}

type Options struct {
	BaseURL string
	ChatURL string
	ChatKey string
	Timeout time.Duration
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	Client  *http.Client
}

// Gateway is stateless apart from its HTTP client. No retries, no caching.
type Gateway struct {
	baseURL string
	chatURL string
	chatKey string
	client  *http.Client
	metrics *metrics.Metrics
	log     *slog.Logger
}

func New(opts Options) *Gateway {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Gateway{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		chatURL: opts.ChatURL,
		chatKey: opts.ChatKey,
		client:  client,
		metrics: opts.Metrics,
		log:     log,
	}
}

// Forward posts payload to <base>/<endpoint> and returns the reply body as is.
func (g *Gateway) Forward(ctx context.Context, endpoint string, payload []byte) ([]byte, error) {
	const op = "gateway.Forward"

	if !endpoints[endpoint] {
		return nil, fmt.Errorf("%s: unknown endpoint %q: %w", op, endpoint, common.ErrNotFound)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = []byte("{}")
	}

	body, err := g.post(ctx, g.baseURL+"/"+endpoint, payload, nil)
	if err != nil {
		g.metrics.GatewayCall(endpoint, "error")
		g.log.ErrorContext(ctx, "ml service call failed", slog.String("endpoint", endpoint), logging.Err(err))
		return nil, fmt.Errorf("%s: %s: %w", op, endpoint, err)
	}
	g.metrics.GatewayCall(endpoint, "ok")

	if endpoint == EndpointChatbot && !json.Valid(body) {
		return json.Marshal(map[string]string{"response": Fallback})
	}
	return body, nil
}

type chatReply struct {
	GeneratedText string `json:"generated_text"`
}

// Chat sends a message to the hosted model. An unreadable reply yields
// Fallback; transport failures and non-2xx replies are errors.
func (g *Gateway) Chat(ctx context.Context, message string) (string, error) {
	const op = "gateway.Chat"

	payload, err := json.Marshal(map[string]string{"inputs": message})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	headers := map[string]string{}
	if g.chatKey != "" {
		headers["Authorization"] = "Bearer " + g.chatKey
	}

	body, err := g.post(ctx, g.chatURL, payload, headers)
	if err != nil {
		g.metrics.GatewayCall("chat", "error")
		g.log.ErrorContext(ctx, "chatbot call failed", logging.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}
	g.metrics.GatewayCall("chat", "ok")

	var replies []chatReply
	if err := json.Unmarshal(body, &replies); err != nil || len(replies) == 0 || replies[0].GeneratedText == "" {
		return Fallback, nil
	}
	return replies[0].GeneratedText, nil
}

func (g *Gateway) post(ctx context.Context, url string, payload []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", common.ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read reply: %v", common.ErrGateway, err)
	}
	if int64(len(body)) > maxBody {
		return nil, fmt.Errorf("%w: reply exceeds %d bytes", common.ErrGateway, maxBody)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status: %s", common.ErrGateway, resp.Status)
	}
	return body, nil
}
