package client

import (
	"context"
	"fmt"
)

// queryRequest is the wire shape of POST /query/{id}.
type queryRequest struct {
	QueryText string `json:"query_text"`
}

// queryResponse is the wire shape of the query answer.
type queryResponse struct {
	Response string `json:"response"`
}

// Query submits a retrieval-augmented question against a space's ingested
// documents and returns the answer text. An empty answer is returned as-is;
// the session layer owns the user-facing fallback.
func (c *Client) Query(ctx context.Context, spaceID int64, queryText string) (string, error) {
	var resp queryResponse
	path := fmt.Sprintf("/query/%d", spaceID)
	if err := c.postJSON(ctx, path, queryRequest{QueryText: queryText}, &resp); err != nil {
		return "", fmt.Errorf("querying space %d: %w", spaceID, err)
	}
	return resp.Response, nil
}
