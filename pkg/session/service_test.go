package session

import (
	"context"
	"io"

	"github.com/openspaces/spaces-cli/client"
)

// fakeService scripts the remote surface for controller tests. Unset
// functions behave as benign no-ops.
type fakeService struct {
	queryFn   func(ctx context.Context, spaceID int64, text string) (string, error)
	uploadFn  func(ctx context.Context, spaceID int64, filename string, content io.Reader) error
	triggerFn func(ctx context.Context, spaceID int64) error
	fetchFn   func(ctx context.Context, spaceID int64) (*client.PodcastEpisode, error)
	genFn     func(ctx context.Context, spaceID int64, focusTopic string) (*client.PodcastEpisode, error)
	listFn    func(ctx context.Context, spaceID int64) (*client.SpaceDocuments, error)
}

func (f *fakeService) Query(ctx context.Context, spaceID int64, text string) (string, error) {
	if f.queryFn == nil {
		return "", nil
	}
	return f.queryFn(ctx, spaceID, text)
}

func (f *fakeService) UploadDocument(ctx context.Context, spaceID int64, filename string, content io.Reader) error {
	if f.uploadFn == nil {
		return nil
	}
	return f.uploadFn(ctx, spaceID, filename, content)
}

func (f *fakeService) TriggerIngestion(ctx context.Context, spaceID int64) error {
	if f.triggerFn == nil {
		return nil
	}
	return f.triggerFn(ctx, spaceID)
}

func (f *fakeService) FetchLatestPodcast(ctx context.Context, spaceID int64) (*client.PodcastEpisode, error) {
	if f.fetchFn == nil {
		return nil, nil
	}
	return f.fetchFn(ctx, spaceID)
}

func (f *fakeService) GeneratePodcast(ctx context.Context, spaceID int64, focusTopic string) (*client.PodcastEpisode, error) {
	if f.genFn == nil {
		return &client.PodcastEpisode{}, nil
	}
	return f.genFn(ctx, spaceID, focusTopic)
}

func (f *fakeService) ListDocuments(ctx context.Context, spaceID int64) (*client.SpaceDocuments, error) {
	if f.listFn == nil {
		return &client.SpaceDocuments{Documents: []string{}}, nil
	}
	return f.listFn(ctx, spaceID)
}
