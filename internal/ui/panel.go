package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/harrylevesque/gallery/internal/upload"
)

// UploadPanel is the upload form's status area plus its read-only URL field.
type UploadPanel struct {
	mu      sync.RWMutex
	status  upload.Status
	visible bool
	url     string

	alerts io.Writer
	styles Styles
}

// NewUploadPanel returns a hidden panel. Alerts are written to alerts.
func NewUploadPanel(alerts io.Writer, styles Styles) *UploadPanel {
	return &UploadPanel{alerts: alerts, styles: styles}
}

// ShowStatus makes the status area visible with s.
func (p *UploadPanel) ShowStatus(s upload.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = s
	p.visible = true
}

// SetURL fills the URL field.
func (p *UploadPanel) SetURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}

// URL returns the URL field's value.
func (p *UploadPanel) URL() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.url
}

// Status returns the last status shown and whether the area is visible.
func (p *UploadPanel) Status() (upload.Status, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status, p.visible
}

// Alert writes msg on its own line.
func (p *UploadPanel) Alert(msg string) {
	if p.alerts == nil {
		return
	}
	fmt.Fprintln(p.alerts, msg)
}

// View renders the status area and URL field.
func (p *UploadPanel) View() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.visible {
		return ""
	}

	style := p.styles.Error
	if p.status.Tone == upload.ToneSuccess {
		style = p.styles.Success
	}

	var sb strings.Builder
	sb.WriteString(p.styles.Bold.Render(p.status.Title))
	sb.WriteString("\n")
	sb.WriteString(style.Render(p.status.Message))
	sb.WriteString("\n")
	if p.url != "" {
		sb.WriteString(p.styles.Muted.Render("URL: "))
		sb.WriteString(p.styles.Link.Render(p.url))
		sb.WriteString("\n")
	}
	return sb.String()
}
