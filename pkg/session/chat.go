package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	sperrors "github.com/openspaces/spaces-cli/pkg/errors"
	"github.com/openspaces/spaces-cli/pkg/logging"
)

// Fixed user-visible strings for assistant turns the service did not author.
const (
	// FallbackAnswer stands in for a successful response that carried no
	// answer text.
	FallbackAnswer = "Sorry, I couldn't generate a response."
	// ErrorAnswer stands in for any failed query round trip.
	ErrorAnswer = "Sorry, there was an error processing your request."
)

// queryService is the slice of the remote client a ChatSession needs.
type queryService interface {
	Query(ctx context.Context, spaceID int64, queryText string) (string, error)
}

// ChatSession manages the ordered conversation for one space, with at most
// one query in flight at a time. The message sequence is append-only: a user
// message and its resulting assistant message always appear in submission
// order, and nothing is ever removed or reordered.
type ChatSession struct {
	notifier

	mu       sync.Mutex
	spaceID  int64
	svc      queryService
	log      logging.Logger
	pending  bool
	nextSeq  int
	messages []Message
}

// NewChatSession creates an idle ChatSession bound to the given space.
func NewChatSession(spaceID int64, svc queryService, log logging.Logger) *ChatSession {
	if log == nil {
		log = logging.Nop()
	}
	return &ChatSession{spaceID: spaceID, svc: svc, log: log}
}

// Messages returns a copy of the conversation in order.
func (s *ChatSession) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Pending reports whether a query is currently in flight.
func (s *ChatSession) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// SubmitQuery submits a question against the space's documents.
//
// Empty (after trimming) input returns ErrValidation and a submission while
// a query is pending returns ErrBusy; neither appends a message nor reaches
// the network. Otherwise the user message is appended immediately and the
// query dispatched; the round trip always completes back to idle with an
// assistant message appended, so a remote failure is reported through the
// conversation rather than returned. Exactly two messages per completed
// round trip.
func (s *ChatSession) SubmitQuery(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("%w: query text must not be empty", sperrors.ErrValidation)
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return fmt.Errorf("%w: a query is already pending", sperrors.ErrBusy)
	}
	s.pending = true
	s.appendLocked(RoleUser, trimmed)
	s.mu.Unlock()
	s.notify()

	answer, err := s.svc.Query(ctx, s.spaceID, trimmed)

	s.mu.Lock()
	switch {
	case err != nil:
		s.log.Error("query failed", logging.F("space_id", s.spaceID), logging.Err(err))
		s.appendLocked(RoleAssistant, ErrorAnswer)
	case strings.TrimSpace(answer) == "":
		s.appendLocked(RoleAssistant, FallbackAnswer)
	default:
		s.appendLocked(RoleAssistant, answer)
	}
	s.pending = false
	s.mu.Unlock()
	s.notify()

	return nil
}

// appendLocked appends a message at the next sequence position. Callers hold s.mu.
func (s *ChatSession) appendLocked(role Role, content string) {
	s.nextSeq++
	s.messages = append(s.messages, newMessage(s.nextSeq, role, content))
}
