package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	sperrors "github.com/openspaces/spaces-cli/pkg/errors"
)

// Space is a user-defined workspace holding one document collection, one chat
// history, and at most one active podcast episode.
type Space struct {
	ID   int64  `json:"space_id" yaml:"space_id"`
	Name string `json:"space_name" yaml:"space_name"`
}

// SpaceDocuments is a space's document collection as reported by the service.
type SpaceDocuments struct {
	SpaceName string   `json:"space_name" yaml:"space_name"`
	Documents []string `json:"documents" yaml:"documents"`
}

// spacesResponse is the wire shape of GET /spaces/.
type spacesResponse struct {
	Spaces []Space `json:"spaces"`
}

// ListSpaces returns all spaces known to the service.
func (c *Client) ListSpaces(ctx context.Context) ([]Space, error) {
	var resp spacesResponse
	err := c.withRetry(ctx, func() error {
		return c.getJSON(ctx, "/spaces/", &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("listing spaces: %w", err)
	}
	return resp.Spaces, nil
}

// CreateSpace creates a new space. The service takes the name as a query
// parameter, not a body.
func (c *Client) CreateSpace(ctx context.Context, name string) (*Space, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: space name must not be empty", sperrors.ErrValidation)
	}
	path := "/createspace/?space_name=" + url.QueryEscape(name)

	var space Space
	if err := c.postJSON(ctx, path, nil, &space); err != nil {
		return nil, fmt.Errorf("creating space %q: %w", name, err)
	}
	return &space, nil
}

// ListDocuments returns the document collection for a space.
func (c *Client) ListDocuments(ctx context.Context, spaceID int64) (*SpaceDocuments, error) {
	var resp SpaceDocuments
	err := c.withRetry(ctx, func() error {
		return c.getJSON(ctx, fmt.Sprintf("/spaces/%d/documents", spaceID), &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("listing documents for space %d: %w", spaceID, err)
	}
	if resp.Documents == nil {
		resp.Documents = []string{}
	}
	return &resp, nil
}
