package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	sperrors "github.com/openspaces/spaces-cli/pkg/errors"
	"github.com/openspaces/spaces-cli/pkg/logging"
)

// ingestService is the slice of the remote client an IngestionController needs.
type ingestService interface {
	UploadDocument(ctx context.Context, spaceID int64, filename string, content io.Reader) error
	TriggerIngestion(ctx context.Context, spaceID int64) error
}

// IngestionController manages document upload and ingestion-trigger requests
// for a space. Upload and trigger are independent operations; the remote
// service owns idempotency of repeated triggers, this layer only surfaces
// pending, success, and error. It never mutates the document list; the
// session owning the list refreshes or appends after a successful upload.
type IngestionController struct {
	notifier

	mu        sync.Mutex
	spaceID   int64
	svc       ingestService
	log       logging.Logger
	uploading bool
	ingesting bool
}

// NewIngestionController creates a controller bound to the given space.
func NewIngestionController(spaceID int64, svc ingestService, log logging.Logger) *IngestionController {
	if log == nil {
		log = logging.Nop()
	}
	return &IngestionController{spaceID: spaceID, svc: svc, log: log}
}

// Uploading reports whether an upload is in flight.
func (c *IngestionController) Uploading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploading
}

// Ingesting reports whether an ingestion trigger is in flight.
func (c *IngestionController) Ingesting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ingesting
}

// UploadDocument uploads one document. A missing file is rejected locally
// with ErrValidation before any request is issued. A remote failure comes
// back as an error for the caller to surface as a notification.
func (c *IngestionController) UploadDocument(ctx context.Context, filename string, content io.Reader) error {
	if content == nil {
		return fmt.Errorf("%w: no file selected", sperrors.ErrValidation)
	}

	c.mu.Lock()
	c.uploading = true
	c.mu.Unlock()
	c.notify()

	err := c.svc.UploadDocument(ctx, c.spaceID, filename, content)

	c.mu.Lock()
	c.uploading = false
	c.mu.Unlock()
	c.notify()

	if err != nil {
		c.log.Error("upload failed",
			logging.F("space_id", c.spaceID),
			logging.F("file", filename),
			logging.Err(err))
		return fmt.Errorf("uploading %s: %w", filename, err)
	}
	return nil
}

// TriggerIngestion fires the ingestion-start request for the space. There is
// no payload and no client-side serialization: repeated triggers are allowed.
func (c *IngestionController) TriggerIngestion(ctx context.Context) error {
	c.mu.Lock()
	c.ingesting = true
	c.mu.Unlock()
	c.notify()

	err := c.svc.TriggerIngestion(ctx, c.spaceID)

	c.mu.Lock()
	c.ingesting = false
	c.mu.Unlock()
	c.notify()

	if err != nil {
		c.log.Error("ingestion trigger failed", logging.F("space_id", c.spaceID), logging.Err(err))
		return fmt.Errorf("triggering ingestion: %w", err)
	}
	return nil
}
