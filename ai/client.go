package ai

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"prism/apierr"
)

const (
	// DefaultBaseURL is the Upstage Solar OpenAI-compatible endpoint
	DefaultBaseURL = "https://api.upstage.ai/v1/solar"

	// DefaultModel is the chat model used for every request
	DefaultModel = "solar-pro"
)

// Role is the author of a chat message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a chat conversation
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionOptions controls a single completion request
type CompletionOptions struct {
	MaxTokens   int
	Temperature float64
}

// Client sends chat completion requests
type Client struct {
	client openai.Client
	model  string
	logger *zap.Logger
}

type clientConfig struct {
	baseURL    string
	model      string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

// ClientOption configures the Client
type ClientOption func(*clientConfig)

// WithBaseURL sets a custom base URL for the API
func WithBaseURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithModel sets the chat model
func WithModel(model string) ClientOption {
	return func(c *clientConfig) {
		c.model = model
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for request metadata
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// NewClient creates a completion client. The API key must be non-empty.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, apierr.MissingCredential("UPSTAGE_API_KEY")
	}

	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithBaseURL(cfg.baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if cfg.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.httpClient))
	}
	if cfg.timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(cfg.timeout))
	}

	return &Client{
		client: openai.NewClient(reqOpts...),
		model:  cfg.model,
		logger: cfg.logger,
	}, nil
}

// Complete sends messages exactly as given and returns the first choice's text
func (c *Client) Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toParams(messages),
		Temperature: openai.Float(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	start := time.Now()
	c.logger.Debug("chat completion request",
		zap.String("model", c.model),
		zap.Int("messages", len(messages)),
		zap.Int("max_tokens", opts.MaxTokens),
	)

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		mapped := classify(err)
		c.logger.Warn("chat completion failed",
			zap.String("kind", mapped.Kind.String()),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return "", mapped
	}

	if len(resp.Choices) == 0 {
		return "", apierr.New(apierr.KindUnknown, errors.New("no choices in response"))
	}

	content := resp.Choices[0].Message.Content
	c.logger.Info("chat completion done",
		zap.Duration("latency", time.Since(start)),
		zap.Int64("total_tokens", resp.Usage.TotalTokens),
		zap.Int("chars", len(content)),
	)
	return content, nil
}

func toParams(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		case RoleAssistant:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		default:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		}
	}
	return out
}

// classify maps SDK and transport errors onto the apierr taxonomy
func classify(err error) *apierr.Error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &apierr.Error{Kind: apierr.KindAuth, Status: apiErr.StatusCode, Err: err}
		default:
			return &apierr.Error{Kind: apierr.KindUnknown, Status: apiErr.StatusCode, Err: err}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return apierr.New(apierr.KindConnection, err)
	}

	return apierr.New(apierr.KindUnknown, eris.Wrap(err, "ai: completion"))
}
