// Package upload validates a selected image, posts it to the gallery
// service and reports the outcome to a status view.
package upload

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/harrylevesque/gallery/internal/models"
	"github.com/harrylevesque/gallery/internal/utils"
)

// DefaultMaxBytes is the largest file accepted (5 MiB).
const DefaultMaxBytes int64 = 5 * 1024 * 1024

// DefaultAllowedTypes are the MIME types accepted for upload.
var DefaultAllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/jpg"}

// ErrNoFile is returned when Submit is called without a file.
var ErrNoFile = errors.New("upload: no file selected")

// Uploader posts a file to the service.
type Uploader interface {
	UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (*models.UploadResponse, error)
}

// StatusView is the form's status area, URL field and alert box.
type StatusView interface {
	ShowStatus(s Status)
	SetURL(url string)
	Alert(msg string)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Result is the outcome of one attempt: a URL on success, an error otherwise.
type Result struct {
	State  State
	URL    string
	Digest string // BLAKE2b-256 of the bytes sent, hex
	Err    error
}

// Controller runs upload attempts for one form.
type Controller struct {
	client    Uploader
	view      StatusView
	clipboard Clipboard
	logger    *zap.Logger

	maxBytes int64
	allowed  map[string]bool
	unique   bool
	onState  func(State)

	mu    sync.Mutex
	state State
	url   string
}

// Option configures a Controller.
type Option func(*Controller)

// WithMaxBytes overrides the size limit.
func WithMaxBytes(n int64) Option {
	return func(c *Controller) { c.maxBytes = n }
}

// WithAllowedTypes overrides the MIME allow-list.
func WithAllowedTypes(types []string) Option {
	return func(c *Controller) {
		c.allowed = make(map[string]bool, len(types))
		for _, t := range types {
			c.allowed[baseType(t)] = true
		}
	}
}

// WithUniqueNames renames each file with UniqueName before sending.
func WithUniqueNames(on bool) Option {
	return func(c *Controller) { c.unique = on }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(cb Clipboard) Option {
	return func(c *Controller) { c.clipboard = cb }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithStateHook calls fn on every state transition.
func WithStateHook(fn func(State)) Option {
	return func(c *Controller) { c.onState = fn }
}

// NewController creates a controller in the Idle state.
func NewController(client Uploader, view StatusView, opts ...Option) *Controller {
	c := &Controller{
		client:    client,
		view:      view,
		clipboard: systemClipboard{},
		logger:    zap.NewNop(),
		maxBytes:  DefaultMaxBytes,
	}
	WithAllowedTypes(DefaultAllowedTypes)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the state of the latest attempt.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// URL returns the URL field's current value.
func (c *Controller) URL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.url
}

// Validate checks f against the allow-list and size limit without any
// network call. The returned error is a *utils.ValidationError whose
// Message is the user-facing text.
func (c *Controller) Validate(f *File) error {
	if !c.allowed[baseType(f.Type)] {
		return &utils.ValidationError{Field: "type", Message: MsgBadType}
	}
	if f.Size > c.maxBytes {
		return &utils.ValidationError{Field: "size", Message: TooLargeMessage(c.maxBytes)}
	}
	return nil
}

// Submit runs one attempt: Validating, then Rejected or Submitting, then
// Succeeded or Failed. A nil file leaves the controller Idle. Nothing is
// sent unless the file passes validation and its content can be read
// within the size limit.
func (c *Controller) Submit(ctx context.Context, f *File) Result {
	if f == nil {
		return Result{State: Idle, Err: ErrNoFile}
	}

	c.transition(Validating)
	if err := c.Validate(f); err != nil {
		var v *utils.ValidationError
		errors.As(err, &v)
		c.logger.Info("upload rejected", zap.String("file", f.Name), zap.String("type", f.Type), zap.Int64("size", f.Size), zap.String("reason", v.Field))
		return c.fail(Rejected, v.Message, err, "")
	}

	data, err := readAll(f, c.maxBytes)
	if err != nil {
		c.logger.Error("failed to read file", zap.String("file", f.Name), zap.Error(err))
		return c.fail(Rejected, MsgUnreadable, err, "")
	}
	if int64(len(data)) > c.maxBytes {
		msg := TooLargeMessage(c.maxBytes)
		c.logger.Info("upload rejected", zap.String("file", f.Name), zap.Int("read", len(data)), zap.String("reason", "size"))
		return c.fail(Rejected, msg, &utils.ValidationError{Field: "size", Message: msg}, "")
	}

	c.transition(Submitting)
	name := f.Name
	if c.unique {
		name = UniqueName(name)
	}

	sum := blake2b.Sum256(data)
	digest := hex.EncodeToString(sum[:])
	resp, err := c.client.UploadImage(ctx, name, baseType(f.Type), bytes.NewReader(data))
	if err != nil {
		c.logger.Error("upload failed", zap.String("file", name), zap.String("digest", digest), zap.Error(err))
		return c.fail(Failed, failureMessage(err), err, digest)
	}

	c.mu.Lock()
	c.url = resp.URL
	c.mu.Unlock()
	c.view.SetURL(resp.URL)
	c.view.ShowStatus(Status{Title: StatusSucceeded, Message: MsgSucceeded, Tone: ToneSuccess})
	c.transition(Succeeded)
	c.logger.Info("upload succeeded", zap.String("file", name), zap.String("url", resp.URL), zap.String("digest", digest))

	return Result{State: Succeeded, URL: resp.URL, Digest: digest}
}

// CopyURL writes the URL field to the clipboard and alerts on success.
// An empty field does nothing.
func (c *Controller) CopyURL() error {
	url := c.URL()
	if url == "" {
		return nil
	}
	if err := c.clipboard.WriteAll(url); err != nil {
		c.logger.Error("failed to copy url", zap.Error(err))
		return err
	}
	c.view.Alert(MsgCopied)
	return nil
}

// readAll reads at most max+1 bytes of f, enough to notice a file that
// grew past the limit after it was selected.
func readAll(f *File, max int64) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, max+1))
}

func (c *Controller) fail(to State, msg string, err error, digest string) Result {
	c.view.ShowStatus(Status{Title: StatusFailed, Message: msg, Tone: ToneError})
	c.transition(to)
	return Result{State: to, Digest: digest, Err: err}
}

func (c *Controller) transition(to State) {
	c.mu.Lock()
	c.state = to
	c.mu.Unlock()
	if c.onState != nil {
		c.onState(to)
	}
}

// failureMessage picks the user-facing text for a failed submission: the
// server's detail, a generic failure, or a retry hint for transport errors.
func failureMessage(err error) string {
	if re, ok := utils.AsRequest(err); ok {
		if msg := strings.TrimSpace(re.Message); msg != "" {
			return msg
		}
		return MsgUploadFailed
	}
	if utils.IsValidation(err) {
		return MsgUploadFailed
	}
	return MsgNetworkRetry
}
