package client

import (
	"context"
	"fmt"

	sperrors "github.com/openspaces/spaces-cli/pkg/errors"
)

// PodcastEpisode is a generated audio artifact plus its textual transcript.
// AudioURL is resolved against the service origin and always absolute here.
type PodcastEpisode struct {
	AudioURL   string `json:"audio_url" yaml:"audio_url"`
	Transcript string `json:"transcript" yaml:"transcript"`
}

// podcastData is the wire shape of a podcast payload.
type podcastData struct {
	AudioURL   string `json:"audio_url"`
	Transcript string `json:"transcript"`
}

// podcastResponse wraps the payload; an empty object means no episode exists.
type podcastResponse struct {
	Data *podcastData `json:"data"`
}

// generateRequest is the wire shape of POST /createpodcast/{id}.
type generateRequest struct {
	FocusTopic string `json:"focus_topic"`
}

// FetchLatestPodcast returns the most recent episode for a space, or nil when
// none exists yet. Absence is a normal empty result, not an error.
func (c *Client) FetchLatestPodcast(ctx context.Context, spaceID int64) (*PodcastEpisode, error) {
	var resp podcastResponse
	err := c.withRetry(ctx, func() error {
		return c.getJSON(ctx, fmt.Sprintf("/podcast/%d", spaceID), &resp)
	})
	if err != nil {
		if sperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching podcast for space %d: %w", spaceID, err)
	}
	if resp.Data == nil {
		return nil, nil
	}
	return c.episodeFromData(resp.Data), nil
}

// GeneratePodcast asks the service to generate a new episode from the space's
// ingested documents. focusTopic is optional free text narrowing the subject.
func (c *Client) GeneratePodcast(ctx context.Context, spaceID int64, focusTopic string) (*PodcastEpisode, error) {
	var resp podcastResponse
	path := fmt.Sprintf("/createpodcast/%d", spaceID)
	if err := c.postJSON(ctx, path, generateRequest{FocusTopic: focusTopic}, &resp); err != nil {
		return nil, fmt.Errorf("generating podcast for space %d: %w", spaceID, err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: podcast response carried no episode data", sperrors.ErrService)
	}
	return c.episodeFromData(resp.Data), nil
}

// episodeFromData maps a wire payload to an episode with an absolute audio URL.
func (c *Client) episodeFromData(d *podcastData) *PodcastEpisode {
	return &PodcastEpisode{
		AudioURL:   c.ResolveURL(d.AudioURL),
		Transcript: d.Transcript,
	}
}
