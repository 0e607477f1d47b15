package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/harrylevesque/gallery/internal/models"
	"github.com/harrylevesque/gallery/internal/utils"
)

const (
	imagesPath = "/api/images"
	uploadPath = "/upload"

	// RequestIDHeader carries a per-request uuid for correlating with server logs.
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody bounds how much of a failure body is read for a detail message.
	maxErrorBody = 64 << 10
)

// Client talks to the gallery service's upload and image list endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets a per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithRootCAs trusts pool for TLS connections to the service. It keeps the
// transport set by WithHTTPClient when that is an *http.Transport.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(c *Client) {
		base := c.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		tr, ok := base.(*http.Transport)
		if !ok {
			return
		}
		tr = tr.Clone()
		if tr.TLSClientConfig == nil {
			tr.TLSClientConfig = &tls.Config{}
		}
		tr.TLSClientConfig.RootCAs = pool
		if tr.TLSClientConfig.MinVersion < tls.VersionTLS12 {
			tr.TLSClientConfig.MinVersion = tls.VersionTLS12
		}
		hc := *c.http
		hc.Transport = tr
		c.http = &hc
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables it.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListImages fetches the full image list.
func (c *Client) ListImages(ctx context.Context) ([]models.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+imagesPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !ok(resp.StatusCode) {
		return nil, readRequestError(resp, "failed to load images")
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, utils.Invalid("body", fmt.Sprintf("decode image list: %v", err))
	}
	// null would decode to a nil slice and clear the table.
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, utils.Invalid("body", "image list is not an array")
	}
	var images []models.Image
	if err := json.Unmarshal(raw, &images); err != nil {
		return nil, utils.Invalid("body", fmt.Sprintf("decode image list: %v", err))
	}
	for _, img := range images {
		if err := img.Validate(); err != nil {
			return nil, err
		}
	}
	return images, nil
}

// DeleteImage removes one image by id. Any non-success status is a failure.
func (c *Client) DeleteImage(ctx context.Context, id models.ImageID) error {
	if strings.TrimSpace(string(id)) == "" {
		return utils.Invalid("id", "missing image id")
	}
	endpoint := c.baseURL + imagesPath + "/" + url.PathEscape(string(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !ok(resp.StatusCode) {
		return readRequestError(resp, "failed to delete image")
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// UploadImage posts r as the multipart form field "file".
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (*models.UploadResponse, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreatePart(filePartHeader(filename, contentType))
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, pr)
	if err != nil {
		pr.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		pr.Close()
		return nil, err
	}
	defer resp.Body.Close()

	if !ok(resp.StatusCode) {
		return nil, readRequestError(resp, "")
	}

	var out models.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, utils.Invalid("body", fmt.Sprintf("decode upload response: %v", err))
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	op := req.Method + " " + req.URL.Path
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, &utils.NetworkError{Op: op, Err: err}
		}
	}

	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("op", op), zap.String("request_id", reqID), zap.Error(err))
		return nil, &utils.NetworkError{Op: op, Err: err}
	}
	c.logger.Debug("request done",
		zap.String("op", op),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

func ok(code int) bool { return code >= 200 && code < 300 }

// readRequestError builds a RequestError, preferring the server's "detail".
// fallback is used when the body carries no detail.
func readRequestError(resp *http.Response, fallback string) error {
	var body models.ErrorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if len(data) > 0 {
		_ = json.Unmarshal(data, &body)
	}
	msg := strings.TrimSpace(body.Detail)
	if msg == "" {
		msg = fallback
	}
	return utils.New(resp.StatusCode, msg)
}

func filePartHeader(filename, contentType string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return h
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
