// Package gallery keeps a rendered image table in step with the gallery service.
package gallery

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/harrylevesque/gallery/internal/models"
)

// ImageAPI is the part of the service the controller talks to.
type ImageAPI interface {
	ListImages(ctx context.Context) ([]models.Image, error)
	DeleteImage(ctx context.Context, id models.ImageID) error
}

// Row is one rendered table line: the name, a link, and a delete control
// tagged with the image id.
type Row struct {
	ID   models.ImageID
	Name string
	URL  string
}

// TableView receives the full row set after every successful fetch.
type TableView interface {
	Replace(rows []Row)
}

// ActionKind names a user action routed through Dispatch.
type ActionKind string

const (
	ActionDelete ActionKind = "delete"
	ActionOpen   ActionKind = "open"
)

// Action is a user interaction on the table.
type Action struct {
	Kind    ActionKind
	ImageID models.ImageID
}

// Controller fetches the image list, renders it, and handles deletes.
// Errors are logged and returned but never shown in the view.
type Controller struct {
	api    ImageAPI
	view   TableView
	logger *zap.Logger

	fetches atomic.Int64
}

// NewController wires a controller to its API and view.
func NewController(api ImageAPI, view TableView, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{api: api, view: view, logger: logger}
}

// FetchImages reloads the list and replaces the table. On failure the
// current table is left as is.
func (c *Controller) FetchImages(ctx context.Context) error {
	seq := c.fetches.Add(1)
	images, err := c.api.ListImages(ctx)
	if err != nil {
		c.logger.Error("failed to load images", zap.Int64("fetch", seq), zap.Error(err))
		return fmt.Errorf("fetch images: %w", err)
	}

	rows := make([]Row, 0, len(images))
	for _, img := range images {
		rows = append(rows, Row{ID: img.ID, Name: img.Name, URL: img.URL})
	}
	c.view.Replace(rows)
	c.logger.Debug("images rendered", zap.Int64("fetch", seq), zap.Int("count", len(rows)))
	return nil
}

// Delete removes one image and, once the delete has completed, re-fetches
// the list. A failed delete leaves the stale table displayed.
func (c *Controller) Delete(ctx context.Context, id models.ImageID) error {
	if err := c.api.DeleteImage(ctx, id); err != nil {
		c.logger.Error("failed to delete image", zap.String("id", string(id)), zap.Error(err))
		return fmt.Errorf("delete image %s: %w", id, err)
	}
	c.logger.Info("image deleted", zap.String("id", string(id)))
	return c.FetchImages(ctx)
}

// Dispatch is the single entry point for table interactions. Only delete
// actions are acted on; anything else is ignored.
func (c *Controller) Dispatch(ctx context.Context, a Action) error {
	if a.Kind != ActionDelete {
		return nil
	}
	return c.Delete(ctx, a.ImageID)
}
