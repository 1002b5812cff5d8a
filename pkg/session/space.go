package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/openspaces/spaces-cli/client"
	"github.com/openspaces/spaces-cli/pkg/audio"
	"github.com/openspaces/spaces-cli/pkg/logging"
)

// Service is the full remote surface a SpaceSession composes over.
// *client.Client satisfies it.
type Service interface {
	queryService
	ingestService
	podcastService
	ListDocuments(ctx context.Context, spaceID int64) (*client.SpaceDocuments, error)
}

// SpaceSession is the composition root for one space: its identity, its
// document list, and the controllers operating on it. A session is built
// fresh per space and shares no mutable state with any other session.
type SpaceSession struct {
	notifier

	spaceID int64
	svc     Service
	log     logging.Logger

	mu        sync.Mutex
	spaceName string
	documents []string

	// Chat owns the ordered conversation.
	Chat *ChatSession
	// Ingestion owns upload and ingestion-trigger requests.
	Ingestion *IngestionController
	// Podcast owns episode generation and retrieval.
	Podcast *PodcastController
	// Player owns the single audio device; nil when the session has no
	// playback surface.
	Player *audio.Player
}

// NewSpaceSession builds a session bound to spaceID and reconciles initial
// state against the remote service: the document list and the latest podcast
// episode. dev may be nil for sessions without playback.
func NewSpaceSession(ctx context.Context, spaceID int64, svc Service, dev audio.Device, log logging.Logger) (*SpaceSession, error) {
	if log == nil {
		log = logging.Nop()
	}

	s := &SpaceSession{
		spaceID: spaceID,
		svc:     svc,
		log:     log.With(logging.F("space_id", spaceID)),
	}

	if dev != nil {
		s.Player = audio.NewPlayer(dev, s.log)
	}
	s.Chat = NewChatSession(spaceID, svc, s.log)
	s.Ingestion = NewIngestionController(spaceID, svc, s.log)
	s.Podcast = NewPodcastController(spaceID, svc, s.Player, s.log)

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	// A space without a podcast yet is normal; a fetch failure is logged by
	// the controller and must not block opening the space.
	if err := s.Podcast.FetchLatest(ctx); err != nil {
		s.log.Warn("initial podcast load failed", logging.Err(err))
	}

	return s, nil
}

// SpaceID returns the space identifier this session is bound to.
func (s *SpaceSession) SpaceID() int64 {
	return s.spaceID
}

// SpaceName returns the space name as last reported by the service.
func (s *SpaceSession) SpaceName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spaceName
}

// Documents returns a copy of the current document list.
func (s *SpaceSession) Documents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.documents))
	copy(out, s.documents)
	return out
}

// Refresh re-reads the space's document collection from the service.
func (s *SpaceSession) Refresh(ctx context.Context) error {
	docs, err := s.svc.ListDocuments(ctx, s.spaceID)
	if err != nil {
		return fmt.Errorf("loading space %d: %w", s.spaceID, err)
	}

	s.mu.Lock()
	s.spaceName = docs.SpaceName
	s.documents = docs.Documents
	s.mu.Unlock()
	s.notify()
	return nil
}

// UploadDocument uploads through the ingestion controller and, on success,
// appends the document name optimistically. The next Refresh reconciles the
// list with the server's view.
func (s *SpaceSession) UploadDocument(ctx context.Context, filename string, content io.Reader) error {
	if err := s.Ingestion.UploadDocument(ctx, filename, content); err != nil {
		return err
	}

	s.mu.Lock()
	s.documents = append(s.documents, filename)
	s.mu.Unlock()
	s.notify()
	return nil
}
