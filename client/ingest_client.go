package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	sperrors "github.com/openspaces/spaces-cli/pkg/errors"
)

// uploadFieldName is the multipart field the service expects uploads under.
const uploadFieldName = "files"

// UploadDocument uploads one document to a space as a multipart form.
// The caller owns refreshing the document list afterwards; uploading does not
// imply ingestion.
func (c *Client) UploadDocument(ctx context.Context, spaceID int64, filename string, content io.Reader) error {
	if content == nil {
		return fmt.Errorf("%w: no file provided", sperrors.ErrValidation)
	}
	if filename == "" {
		return fmt.Errorf("%w: file name must not be empty", sperrors.ErrValidation)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(uploadFieldName, filename)
	if err != nil {
		return fmt.Errorf("building multipart payload: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing multipart payload: %w", err)
	}

	path := fmt.Sprintf("/upload/?space_id=%d", spaceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	// Success payload is opaque; only the status matters.
	if _, err := c.do(req); err != nil {
		return fmt.Errorf("uploading %s: %w", filename, err)
	}
	return nil
}

// TriggerIngestion starts the server-side ingestion pipeline for a space.
// The request carries no payload; the service owns idempotency and ordering.
func (c *Client) TriggerIngestion(ctx context.Context, spaceID int64) error {
	path := fmt.Sprintf("/ingestion/%d", spaceID)
	if err := c.postJSON(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("triggering ingestion for space %d: %w", spaceID, err)
	}
	return nil
}
