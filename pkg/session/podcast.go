package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/openspaces/spaces-cli/client"
	"github.com/openspaces/spaces-cli/pkg/audio"
	sperrors "github.com/openspaces/spaces-cli/pkg/errors"
	"github.com/openspaces/spaces-cli/pkg/logging"
	"github.com/openspaces/spaces-cli/pkg/transcript"
)

// podcastService is the slice of the remote client a PodcastController needs.
type podcastService interface {
	FetchLatestPodcast(ctx context.Context, spaceID int64) (*client.PodcastEpisode, error)
	GeneratePodcast(ctx context.Context, spaceID int64, focusTopic string) (*client.PodcastEpisode, error)
}

// PodcastController manages podcast generation and retrieval for a space.
// It holds at most one current episode and swaps it wholesale: the audio
// source handed to the player and the parsed transcript always come from the
// same episode, so observers never see a mismatched pair.
type PodcastController struct {
	notifier

	mu         sync.Mutex
	spaceID    int64
	svc        podcastService
	player     *audio.Player
	log        logging.Logger
	generating bool
	episode    *client.PodcastEpisode
	parsed     transcript.Result
}

// NewPodcastController creates a controller bound to the given space.
// player may be nil when no playback surface exists (one-shot commands).
func NewPodcastController(spaceID int64, svc podcastService, player *audio.Player, log logging.Logger) *PodcastController {
	if log == nil {
		log = logging.Nop()
	}
	return &PodcastController{spaceID: spaceID, svc: svc, player: player, log: log}
}

// Generating reports whether a generation request is in flight.
func (c *PodcastController) Generating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generating
}

// Episode returns the current episode, or nil when none exists.
func (c *PodcastController) Episode() *client.PodcastEpisode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.episode == nil {
		return nil
	}
	ep := *c.episode
	return &ep
}

// Transcript returns the parsed transcript of the current episode. A zero
// Result when no episode exists.
func (c *PodcastController) Transcript() transcript.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parsed
}

// FetchLatest loads the most recent episode for the space. Absence of an
// episode is a normal empty result, not an error.
func (c *PodcastController) FetchLatest(ctx context.Context) error {
	ep, err := c.svc.FetchLatestPodcast(ctx, c.spaceID)
	if err != nil {
		c.log.Error("fetching latest podcast failed", logging.F("space_id", c.spaceID), logging.Err(err))
		return fmt.Errorf("fetching latest podcast: %w", err)
	}
	if ep == nil {
		return nil
	}
	return c.applyEpisode(ep)
}

// Generate requests a new episode from the space's ingested documents.
// focusTopic optionally narrows the subject. A second Generate while one is
// pending returns ErrBusy and leaves the displayed episode untouched. On
// failure the previous episode, if any, remains unchanged.
func (c *PodcastController) Generate(ctx context.Context, focusTopic string) error {
	c.mu.Lock()
	if c.generating {
		c.mu.Unlock()
		return fmt.Errorf("%w: a podcast generation is already pending", sperrors.ErrBusy)
	}
	c.generating = true
	c.mu.Unlock()
	c.notify()

	ep, err := c.svc.GeneratePodcast(ctx, c.spaceID, focusTopic)

	if err != nil {
		c.mu.Lock()
		c.generating = false
		c.mu.Unlock()
		c.notify()
		c.log.Error("podcast generation failed", logging.F("space_id", c.spaceID), logging.Err(err))
		return fmt.Errorf("generating podcast: %w", err)
	}

	applyErr := c.applyEpisode(ep)

	c.mu.Lock()
	c.generating = false
	c.mu.Unlock()
	c.notify()

	return applyErr
}

// applyEpisode replaces the current episode wholesale: episode, parsed
// transcript, and the player's source all change under one lock so no
// observer sees old audio with a new transcript or vice versa.
func (c *PodcastController) applyEpisode(ep *client.PodcastEpisode) error {
	c.mu.Lock()
	c.episode = ep
	c.parsed = transcript.Parse(ep.Transcript)

	var loadErr error
	if c.player != nil {
		loadErr = c.player.Load(ep.AudioURL)
	}
	c.mu.Unlock()
	c.notify()

	if loadErr != nil {
		c.log.Error("loading episode audio failed", logging.F("space_id", c.spaceID), logging.Err(loadErr))
		return fmt.Errorf("loading episode audio: %w", loadErr)
	}
	return nil
}
