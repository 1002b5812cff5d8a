package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sperrors "github.com/openspaces/spaces-cli/pkg/errors"
)

func TestSubmitQuery_RoundTrip(t *testing.T) {
	svc := &fakeService{
		queryFn: func(ctx context.Context, spaceID int64, text string) (string, error) {
			assert.Equal(t, int64(7), spaceID)
			assert.Equal(t, "What is mitosis?", text)
			return "Cell division.", nil
		},
	}
	s := NewChatSession(7, svc, nil)

	require.NoError(t, s.SubmitQuery(context.Background(), "What is mitosis?"))

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "What is mitosis?", msgs[0].Content)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Cell division.", msgs[1].Content)
	assert.False(t, s.Pending())
}

func TestSubmitQuery_EmptyInputIsNoOp(t *testing.T) {
	var dispatched bool
	svc := &fakeService{
		queryFn: func(context.Context, int64, string) (string, error) {
			dispatched = true
			return "", nil
		},
	}
	s := NewChatSession(7, svc, nil)

	for _, input := range []string{"", "   ", "\t\n"} {
		err := s.SubmitQuery(context.Background(), input)
		require.Error(t, err)
		assert.True(t, sperrors.IsValidation(err))
	}

	assert.Empty(t, s.Messages(), "rejection appends nothing")
	assert.False(t, dispatched, "rejection dispatches nothing")
}

func TestSubmitQuery_SecondWhilePendingIsNoOp(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	svc := &fakeService{
		queryFn: func(context.Context, int64, string) (string, error) {
			close(started)
			<-release
			return "answer", nil
		},
	}
	s := NewChatSession(7, svc, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.SubmitQuery(context.Background(), "first")
	}()

	<-started
	assert.True(t, s.Pending())

	err := s.SubmitQuery(context.Background(), "second")
	require.Error(t, err)
	assert.True(t, sperrors.IsBusy(err))

	close(release)
	wg.Wait()

	msgs := s.Messages()
	require.Len(t, msgs, 2, "the rejected submission added nothing")
	assert.Equal(t, "first", msgs[0].Content)
}

func TestSubmitQuery_FailureBecomesErrorMessage(t *testing.T) {
	svc := &fakeService{
		queryFn: func(context.Context, int64, string) (string, error) {
			return "", fmt.Errorf("%w: status 500", sperrors.ErrService)
		},
	}
	s := NewChatSession(7, svc, nil)

	// The failure is converted, never re-thrown.
	require.NoError(t, s.SubmitQuery(context.Background(), "question"))

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, ErrorAnswer, msgs[1].Content)
	assert.False(t, s.Pending(), "failure returns to idle")
}

func TestSubmitQuery_EmptyAnswerBecomesFallback(t *testing.T) {
	svc := &fakeService{
		queryFn: func(context.Context, int64, string) (string, error) {
			return "  ", nil
		},
	}
	s := NewChatSession(7, svc, nil)

	require.NoError(t, s.SubmitQuery(context.Background(), "question"))

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, FallbackAnswer, msgs[1].Content)
}

func TestSubmitQuery_MessageSequenceInvariant(t *testing.T) {
	var n int
	svc := &fakeService{
		queryFn: func(context.Context, int64, string) (string, error) {
			n++
			if n%2 == 0 {
				return "", errors.New("flaky")
			}
			return fmt.Sprintf("answer %d", n), nil
		},
	}
	s := NewChatSession(7, svc, nil)

	const rounds = 5
	for i := 0; i < rounds; i++ {
		require.NoError(t, s.SubmitQuery(context.Background(), fmt.Sprintf("question %d", i)))
	}

	msgs := s.Messages()
	require.Len(t, msgs, 2*rounds, "exactly 2N messages after N completed round trips")
	for i := 0; i < rounds; i++ {
		user, assistant := msgs[2*i], msgs[2*i+1]
		assert.Equal(t, RoleUser, user.Role)
		assert.Equal(t, RoleAssistant, assistant.Role)
		assert.Less(t, user.Seq, assistant.Seq, "user message precedes its assistant message")
	}

	// IDs are unique across the session.
	seen := make(map[string]bool)
	for _, m := range msgs {
		assert.False(t, seen[m.ID], "duplicate message id %s", m.ID)
		seen[m.ID] = true
	}
}

func TestChatSession_Notifications(t *testing.T) {
	svc := &fakeService{}
	s := NewChatSession(7, svc, nil)

	var mu sync.Mutex
	var count int
	s.Subscribe(func() {
		mu.Lock()
		count++
		mu.Unlock()
	})

	require.NoError(t, s.SubmitQuery(context.Background(), "question"))

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, count, 2, "pending entry and completion both notify")
}
