package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"knowledgehub/internal/repository"
)

var ErrMessageRequired = errors.New("message is required")

// Completer is the chat-completion dependency of the assistant service.
// *assistant.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, docContext, userMessage string) (string, error)
}

// AssistantAnswer is the reply to an assistant question.
type AssistantAnswer struct {
	Answer     string `json:"answer"`
	DocumentID string `json:"document_id,omitempty"`
}

// AssistantService answers free-text questions, optionally grounded on a
// single document the caller is allowed to read.
type AssistantService interface {
	// Ask forwards the message to the completion endpoint. When documentID is
	// non-empty the document's content is included as context; the document
	// must be visible to the actor.
	Ask(ctx context.Context, actor Actor, documentID, message string) (*AssistantAnswer, error)
}

// assistantContextLimit caps how much document text is sent along.
const assistantContextLimit = 8000

type assistantService struct {
	completer Completer
	docs      repository.DocumentRepository
	activity  repository.ActivityLogRepository
}

// NewAssistantService constructs a new AssistantService.
func NewAssistantService(completer Completer, docs repository.DocumentRepository, activity repository.ActivityLogRepository) AssistantService {
	return &assistantService{completer: completer, docs: docs, activity: activity}
}

func (s *assistantService) Ask(ctx context.Context, actor Actor, documentID, message string) (*AssistantAnswer, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrMessageRequired
	}

	docContext := ""
	if documentID != "" {
		doc, err := s.docs.FindByID(ctx, documentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !doc.Visible() && doc.CreatedBy != actor.ID && !actor.IsAdmin() {
			return nil, ErrForbidden
		}

		content := doc.Content
		if len(content) > assistantContextLimit {
			cut := assistantContextLimit
			for cut > 0 && !utf8.RuneStart(content[cut]) {
				cut--
			}
			content = content[:cut]
		}
		docContext = doc.Title + "\n\n" + content
	}

	answer, err := s.completer.Complete(ctx, docContext, message)
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, s.activity, actor.ID, "assistant.ask", "document", documentID)
	return &AssistantAnswer{Answer: answer, DocumentID: documentID}, nil
}
