package docparse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"prism/apierr"
)

const (
	// BaseURL is the Upstage API base URL
	BaseURL = "https://api.upstage.ai"

	// DocumentParsePath is the Document Parse endpoint
	DocumentParsePath = "/v1/document-digitization"

	// DefaultTimeout for API requests (OCR on multi-page PDFs is slow)
	DefaultTimeout = 2 * time.Minute

	// Model is the Document Parse model name sent with every request
	Model = "document-parse"
)

// Client is the Upstage Document Parse API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (for testing)
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout. It applies to a copy of the HTTP
// client, whichever option order is used.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for request metadata
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Document Parse client
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, apierr.MissingCredential("UPSTAGE_API_KEY")
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c, nil
}

// ExtractFile reads path and extracts its text. The extension is checked
// before the file is read.
func ExtractFile(ctx context.Context, ex Extractor, path string) (*Result, error) {
	name := filepath.Base(path)
	if !IsSupported(name) {
		return nil, apierr.UnsupportedFormat("." + extension(name))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "docparse: read file")
	}
	return ex.Extract(ctx, name, data)
}

// Extract uploads a document and recovers its text. Unsupported extensions
// are rejected before any request is made.
func (c *Client) Extract(ctx context.Context, fileName string, data []byte) (*Result, error) {
	mimeType, ok := MIMEType(fileName)
	if !ok {
		return nil, apierr.UnsupportedFormat("." + extension(fileName))
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("ocr", "force"); err != nil {
		return nil, eris.Wrap(err, "docparse: write ocr field")
	}
	if err := writer.WriteField("model", Model); err != nil {
		return nil, eris.Wrap(err, "docparse: write model field")
	}

	// CreateFormFile would force application/octet-stream
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="document"; filename="`+escapeQuotes(fileName)+`"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, eris.Wrap(err, "docparse: create form file")
	}
	if _, err := part.Write(data); err != nil {
		return nil, eris.Wrap(err, "docparse: copy file to form")
	}

	if err := writer.Close(); err != nil {
		return nil, eris.Wrap(err, "docparse: close multipart writer")
	}

	url := c.baseURL + DocumentParsePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, eris.Wrap(err, "docparse: create request")
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	c.logger.Debug("document parse request",
		zap.String("url", url),
		zap.String("file", fileName),
		zap.Int("bytes", len(data)),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		mapped := classifyTransport(err)
		c.logger.Warn("document parse failed",
			zap.String("kind", mapped.Kind.String()),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return nil, mapped
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(err)
	}

	c.logger.Debug("document parse response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.Int("bytes", len(respBody)),
	)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, &apierr.Error{Kind: apierr.KindAuth, Status: resp.StatusCode, Detail: snippet(respBody)}
	case http.StatusRequestEntityTooLarge:
		return nil, &apierr.Error{Kind: apierr.KindPayloadTooLarge, Status: resp.StatusCode}
	default:
		return nil, apierr.Server(resp.StatusCode, snippet(respBody))
	}

	var parsed map[string]any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, apierr.New(apierr.KindUnknown, eris.Wrap(err, "docparse: parse response"))
	}

	text, source := recoverText(parsed)
	if text == "" {
		keys := topLevelKeys(parsed)
		c.logger.Warn("no text in document parse response", zap.Strings("keys", keys))
		return nil, apierr.NoTextFound(keys)
	}

	c.logger.Info("document parsed",
		zap.String("file", fileName),
		zap.String("source", source),
		zap.Int("chars", len(text)),
	)

	return &Result{Text: text, FileName: fileName, Source: source}, nil
}

// classifyTransport maps a failed round trip to Timeout or Connection
func classifyTransport(err error) *apierr.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apierr.New(apierr.KindTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return apierr.New(apierr.KindTimeout, err)
		}
		return apierr.New(apierr.KindConnection, err)
	}
	return apierr.New(apierr.KindUnknown, err)
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// snippet trims an error body for logs and messages
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
